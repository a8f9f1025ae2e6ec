package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/jonathan/resume-tailor/internal/analysis"
	"github.com/jonathan/resume-tailor/internal/db"
	"github.com/jonathan/resume-tailor/internal/fetch"
	"github.com/jonathan/resume-tailor/internal/ingestion"
	"github.com/jonathan/resume-tailor/internal/keywords"
	"github.com/jonathan/resume-tailor/internal/llm"
	"github.com/jonathan/resume-tailor/internal/logger"
	"github.com/jonathan/resume-tailor/internal/parsing"
	"github.com/jonathan/resume-tailor/internal/profile"
	"github.com/jonathan/resume-tailor/internal/rendering"
	"github.com/jonathan/resume-tailor/internal/schemas"
	"github.com/jonathan/resume-tailor/internal/types"
	"github.com/jonathan/resume-tailor/internal/validation"
	schemafiles "github.com/jonathan/resume-tailor/schemas"
)

// Step names reported through ProgressEvent.
const (
	StepLoadProfile = "load_profile"
	StepIngestJob   = "ingest_job"
	StepAnalyze     = "analyze"
	StepStructure   = "structure"
	StepTailor      = "tailor"
	StepRender      = "render"
	StepWriteOutput = "write_output"
	StepWriteReport = "write_report"
	StepSaveHistory = "save_history"
)

// Step categories.
const (
	CategoryIngestion = "ingestion"
	CategoryAnalysis  = "analysis"
	CategoryTailoring = "tailoring"
	CategoryExport    = "export"
	CategoryStorage   = "storage"
)

// ProgressEvent represents a progress update during a run
type ProgressEvent struct {
	Step     string `json:"step"`
	Category string `json:"category"`
	Message  string `json:"message"`
	RunID    string `json:"run_id,omitempty"`
	Content  any    `json:"content,omitempty"`
}

// ProgressCallback is called when run progress occurs
type ProgressCallback func(event ProgressEvent)

// RunOptions holds everything a single tailoring run needs. Exactly one job
// source (JobText, JobURL or JobPath) and one profile source (Profile or
// ProfilePath) must be set.
type RunOptions struct {
	Assembler *Assembler // nil uses the default keyword table and limits

	Profile     *types.UserProfile
	ProfilePath string

	JobText string
	JobURL  string
	JobPath string
	Fetcher fetch.Fetcher // used for JobURL; nil fetches directly

	FocusAreas []string

	// ValidationRules enables advisory profile checks. With Strict set any
	// issue aborts the run.
	ValidationRules *validation.Rules
	Strict          bool

	Format        rendering.Format
	RenderOptions rendering.Options
	PDF           rendering.PDFFunc
	OutputPath    string // empty keeps the output in RunResult only

	ReportPath   string
	ReportConfig any

	// LLM structures the posting when rule-based extraction finds no requirements.
	LLM     llm.Client
	LLMTier llm.ModelTier

	Store db.Store // nil disables history

	OnProgress ProgressCallback
}

// RunResult is the outcome of Run
type RunResult struct {
	RunID         uuid.UUID
	Resume        *types.TailoredResume
	Output        []byte
	Job           *ingestion.Metadata
	Posting       *types.JobPosting
	ProfileIssues []string
}

// emitProgress calls the progress callback if configured
func emitProgress(opts *RunOptions, runID uuid.UUID, step, category, message string, content any) {
	if opts.OnProgress != nil {
		opts.OnProgress(ProgressEvent{
			Step:     step,
			Category: category,
			Message:  message,
			RunID:    runID.String(),
			Content:  content,
		})
	}
}

// DefaultAssembler builds an assembler over the built-in keyword table.
func DefaultAssembler() *Assembler {
	return NewAssembler(analysis.NewAnalyzer(keywords.DefaultTable()), DefaultConfig())
}

// Run loads the profile and job description, tailors the resume, renders it,
// writes the requested files and records the run in history.
func Run(ctx context.Context, opts RunOptions) (*RunResult, error) {
	assembler := opts.Assembler
	if assembler == nil {
		assembler = DefaultAssembler()
	}
	if opts.Format == "" {
		opts.Format = rendering.FormatMarkdown
	}

	result := &RunResult{RunID: uuid.New()}
	log := logger.Ctx(ctx).With().Str("run_id", result.RunID.String()).Logger()

	// Step 1: Load profile
	userProfile, err := loadProfile(&opts)
	if err != nil {
		return nil, err
	}
	emitProgress(&opts, result.RunID, StepLoadProfile, CategoryIngestion,
		fmt.Sprintf("Loaded profile for %s", userProfile.Name), nil)

	if opts.ValidationRules != nil {
		result.ProfileIssues = validation.CheckProfile(userProfile, *opts.ValidationRules)
		for _, issue := range result.ProfileIssues {
			log.Warn().Str("issue", issue).Msg("profile validation issue")
		}
		if opts.Strict && len(result.ProfileIssues) > 0 {
			return nil, &validation.ProfileError{Issues: result.ProfileIssues}
		}
	}

	// Step 2: Ingest job description
	jobText, meta, err := loadJob(ctx, &opts)
	if err != nil {
		return nil, err
	}
	result.Job = meta
	log.Info().Str("source", meta.Source).Str("hash", meta.Hash).Bool("from_cache", meta.FromCache).Msg("ingested job description")
	emitProgress(&opts, result.RunID, StepIngestJob, CategoryIngestion,
		fmt.Sprintf("Ingested job description from %s", meta.Source), meta)

	// Step 3: Analyze
	jobAnalysis := assembler.Analyzer().Analyze(jobText)
	emitProgress(&opts, result.RunID, StepAnalyze, CategoryAnalysis,
		fmt.Sprintf("Found %d keywords and %d requirements", jobAnalysis.TotalKeywords(), len(jobAnalysis.Requirements)), nil)

	if opts.LLM != nil && len(jobAnalysis.Requirements) == 0 {
		posting, err := parsing.StructureJobPosting(ctx, opts.LLM, jobText, opts.LLMTier)
		if err != nil {
			log.Warn().Err(err).Msg("LLM structuring failed, continuing with rule-based analysis")
		} else {
			result.Posting = posting
			requirements := posting.Requirements
			if len(requirements) > analysis.MaxRequirements {
				requirements = requirements[:analysis.MaxRequirements]
			}
			jobAnalysis.Requirements = requirements
			jobAnalysis.AnalysisSummary = analysis.Summarize(jobAnalysis.Keywords, len(requirements))
			emitProgress(&opts, result.RunID, StepStructure, CategoryAnalysis,
				fmt.Sprintf("Structured posting: %d requirements", len(requirements)), posting)
		}
	}

	// Step 4: Tailor
	result.Resume = assembler.TailorWithAnalysis(userProfile, jobAnalysis, opts.FocusAreas)
	emitProgress(&opts, result.RunID, StepTailor, CategoryTailoring,
		fmt.Sprintf("Selected %d experiences and %d skills", len(result.Resume.Experiences), len(result.Resume.Skills)), nil)

	// Step 5: Render
	result.Output, err = rendering.Render(ctx, result.Resume, opts.Format, opts.RenderOptions, opts.PDF)
	if err != nil {
		return nil, err
	}
	emitProgress(&opts, result.RunID, StepRender, CategoryExport,
		fmt.Sprintf("Rendered %s (%d bytes)", opts.Format, len(result.Output)), nil)
	if opts.Format == rendering.FormatJSON {
		if err := schemas.Validate(schemafiles.TailoredResume, result.Output); err != nil {
			log.Warn().Err(err).Msg("tailored resume does not match its schema")
		}
	}

	if opts.OutputPath != "" {
		if err := writeFile(opts.OutputPath, result.Output); err != nil {
			return nil, err
		}
		emitProgress(&opts, result.RunID, StepWriteOutput, CategoryExport,
			fmt.Sprintf("Wrote resume to %s", opts.OutputPath), nil)
	}

	if opts.ReportPath != "" {
		if err := schemas.ValidateValue(schemafiles.JobAnalysis, jobAnalysis); err != nil {
			log.Warn().Err(err).Msg("job analysis does not match its schema")
		}
		report, err := rendering.Report(jobAnalysis, parsing.ExtractJobFacts(jobText), opts.ReportConfig, time.Now())
		if err != nil {
			return nil, err
		}
		if err := writeFile(opts.ReportPath, report); err != nil {
			return nil, err
		}
		emitProgress(&opts, result.RunID, StepWriteReport, CategoryExport,
			fmt.Sprintf("Wrote analysis report to %s", opts.ReportPath), nil)
	}

	// Step 6: Record history. A failed save does not fail the run.
	if opts.Store != nil {
		if err := saveRun(ctx, opts.Store, result, userProfile, jobAnalysis, opts.RenderOptions); err != nil {
			log.Warn().Err(err).Msg("failed to save run history")
		} else {
			emitProgress(&opts, result.RunID, StepSaveHistory, CategoryStorage, "Saved run to history", nil)
		}
	}

	log.Info().
		Int("experiences", len(result.Resume.Experiences)).
		Int("skills", len(result.Resume.Skills)).
		Str("format", string(opts.Format)).
		Msg("tailoring run complete")
	return result, nil
}

func loadProfile(opts *RunOptions) (*types.UserProfile, error) {
	switch {
	case opts.Profile != nil:
		return opts.Profile, nil
	case opts.ProfilePath != "":
		return profile.LoadProfile(opts.ProfilePath)
	default:
		return nil, fmt.Errorf("a profile or profile path is required")
	}
}

func loadJob(ctx context.Context, opts *RunOptions) (string, *ingestion.Metadata, error) {
	var (
		text string
		meta *ingestion.Metadata
		err  error
	)
	switch {
	case opts.JobText != "":
		text, meta = ingestion.FromText(opts.JobText, "inline")
	case opts.JobURL != "":
		text, meta, err = ingestion.FromURL(ctx, opts.JobURL, opts.Fetcher)
	case opts.JobPath != "":
		text, meta, err = ingestion.FromFile(opts.JobPath)
	default:
		return "", nil, fmt.Errorf("a job description, URL or file is required")
	}
	if err != nil {
		return "", nil, err
	}
	return text, meta, nil
}

func saveRun(ctx context.Context, store db.Store, result *RunResult, p *types.UserProfile, jobAnalysis *types.JobAnalysis, opts rendering.Options) error {
	resumeJSON, err := rendering.JSON(result.Resume, opts)
	if err != nil {
		return err
	}
	run := &db.Run{
		ID:           result.RunID,
		ProfileName:  p.Name,
		JobSource:    result.Job.Source,
		JobHash:      result.Job.Hash,
		KeywordCount: jobAnalysis.TotalKeywords(),
		Summary:      result.Resume.Summary,
		ResumeJSON:   resumeJSON,
	}
	if top, ok := jobAnalysis.TopCategory(); ok {
		run.TopCategory = top
	}
	return store.SaveRun(ctx, run)
}

func writeFile(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
