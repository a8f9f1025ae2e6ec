package rendering

import (
	"fmt"
	"strings"

	"github.com/jonathan/resume-tailor/internal/summary"
	"github.com/jonathan/resume-tailor/internal/types"
)

// maxAnalysisKeywords bounds the keyword table in the job analysis appendix,
// which lists the highest scores first.
const maxAnalysisKeywords = 10

// Markdown renders a tailored resume. The github style uses bold labels and a
// bullet-joined skills line; the basic style uses plain labels and a skills list.
func Markdown(resume *types.TailoredResume, opts Options) string {
	basic := opts.MarkdownStyle == StyleBasic
	var md []string

	p := resume.PersonalInfo
	md = append(md, "# "+p.Name)
	if basic {
		md = append(md,
			fmt.Sprintf("Email: %s | Phone: %s", p.Email, p.Phone),
			fmt.Sprintf("LinkedIn: %s | Location: %s", p.LinkedIn, p.Location))
	} else {
		md = append(md,
			fmt.Sprintf("**Email:** %s | **Phone:** %s", p.Email, p.Phone),
			fmt.Sprintf("**LinkedIn:** %s | **Location:** %s", p.LinkedIn, p.Location))
	}
	md = append(md, "")

	md = append(md, "## Professional Summary", resume.Summary, "")

	md = append(md, "## Professional Experience")
	for _, exp := range resume.Experiences {
		md = append(md, fmt.Sprintf("### %s | %s", exp.Title, exp.Company))
		line := emphasize(exp.Duration, basic)
		if opts.IncludeRelevanceScores {
			line += fmt.Sprintf(" | Relevance Score: %.1f", exp.RelevanceScore)
		}
		md = append(md, line)
		for _, achievement := range exp.Achievements {
			md = append(md, "- "+achievement)
		}
		md = append(md, "")
	}

	md = append(md, "## Core Skills")
	if basic {
		for _, skill := range resume.Skills {
			md = append(md, "- "+skill)
		}
	} else {
		md = append(md, strings.Join(resume.Skills, " • "))
	}
	md = append(md, "")

	md = append(md, "## Education")
	for _, edu := range resume.Education {
		md = append(md, fmt.Sprintf("%s | %s | %s", strong(edu.Degree, basic), edu.Institution, edu.Year))
		for _, detail := range edu.Details {
			md = append(md, "- "+detail)
		}
	}
	md = append(md, "")

	if len(resume.Certifications) > 0 {
		md = append(md, "## Certifications")
		for _, cert := range resume.Certifications {
			md = append(md, "- "+cert)
		}
		md = append(md, "")
	}

	if opts.IncludeOptimizationNotes {
		md = append(md, "## Resume Optimization Notes")
		for _, note := range resume.OptimizationNotes {
			md = append(md, "- "+note)
		}
	}

	if opts.IncludeJobAnalysis && resume.JobAnalysis != nil {
		md = append(md, "", analysisMarkdown(resume.JobAnalysis))
	}

	return strings.TrimRight(strings.Join(md, "\n"), "\n") + "\n"
}

// AnalysisMarkdown renders a job analysis on its own, for the analyze command.
func AnalysisMarkdown(analysis *types.JobAnalysis) string {
	return analysisMarkdown(analysis) + "\n"
}

func analysisMarkdown(analysis *types.JobAnalysis) string {
	md := []string{"## Job Analysis", analysis.AnalysisSummary, ""}

	if info := analysis.CompanyInfo; info.Industry != "" || info.Stage != "" {
		md = append(md, fmt.Sprintf("Industry: %s | Stage: %s", orDash(info.Industry), orDash(info.Stage)), "")
	}

	if analysis.KeywordScores.Len() > 0 {
		md = append(md, "### Top Keywords", "", "| Keyword | Score |", "|---|---|")
		for _, k := range summary.TopKeywords(analysis.KeywordScores, maxAnalysisKeywords) {
			md = append(md, fmt.Sprintf("| %s | %.1f |", k, analysis.KeywordScores.Score(k)))
		}
		md = append(md, "")
	}

	if len(analysis.Requirements) > 0 {
		md = append(md, "### Key Requirements")
		for _, req := range analysis.Requirements {
			md = append(md, "- "+req)
		}
	}
	return strings.TrimRight(strings.Join(md, "\n"), "\n")
}

func emphasize(s string, basic bool) string {
	if basic || s == "" {
		return s
	}
	return "*" + s + "*"
}

func strong(s string, basic bool) string {
	if basic || s == "" {
		return s
	}
	return "**" + s + "**"
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
