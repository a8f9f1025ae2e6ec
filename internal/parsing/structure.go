package parsing

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/jonathan/resume-tailor/internal/llm"
	"github.com/jonathan/resume-tailor/internal/prompts"
	"github.com/jonathan/resume-tailor/internal/types"
	"github.com/jonathan/resume-tailor/internal/validation"
)

// StructureJobPosting asks the model to split a job description into title,
// company and requirement lists. The job text is screened and quoted before it
// is placed in the prompt.
func StructureJobPosting(ctx context.Context, client llm.Client, jobText string, tier llm.ModelTier) (*types.JobPosting, error) {
	if client == nil {
		return nil, &APICallError{Message: "LLM client is required"}
	}
	if strings.TrimSpace(jobText) == "" {
		return nil, &ValidationError{Field: "job_text", Message: "job description is empty"}
	}

	prompt, err := buildStructurePrompt(jobText)
	if err != nil {
		return nil, err
	}

	responseText, err := client.GenerateJSON(ctx, prompt, tier)
	if err != nil {
		return nil, &APICallError{
			Message: "failed to structure job posting",
			Cause:   err,
		}
	}

	var posting types.JobPosting
	if err := json.Unmarshal([]byte(llm.CleanJSONBlock(responseText)), &posting); err != nil {
		return nil, &ParseError{
			Message: "failed to parse job posting JSON",
			Cause:   err,
		}
	}

	postProcessPosting(&posting)
	return &posting, nil
}

func buildStructurePrompt(jobText string) (string, error) {
	schema := llm.JobPostingSchema()
	return prompts.Render("parsing.json", "structure-job-posting", map[string]string{
		"Description": schema.Description,
		"Fields":      schema.FieldBlock(),
		"JobText":     validation.PrepareForPrompt("job posting", jobText),
	})
}

// postProcessPosting trims every field and drops empty or repeated list items.
func postProcessPosting(posting *types.JobPosting) {
	posting.Title = strings.TrimSpace(posting.Title)
	posting.Company = strings.TrimSpace(posting.Company)
	posting.Location = strings.TrimSpace(posting.Location)
	posting.Requirements = cleanList(posting.Requirements)
	posting.Responsibilities = cleanList(posting.Responsibilities)
	posting.NiceToHave = cleanList(posting.NiceToHave)
}

func cleanList(items []string) []string {
	out := make([]string, 0, len(items))
	seen := make(map[string]bool, len(items))
	for _, item := range items {
		item = strings.TrimSpace(strings.TrimLeft(strings.TrimSpace(item), "•-*"))
		key := strings.ToLower(item)
		if item == "" || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, item)
	}
	return out
}
