package rendering

import (
	"encoding/json"
	"time"

	"github.com/jonathan/resume-tailor/internal/types"
)

// JSON renders a tailored resume as indented JSON. The job analysis is only
// included when opts asks for it; notes become an empty list when excluded.
func JSON(resume *types.TailoredResume, opts Options) ([]byte, error) {
	out := *resume
	if !opts.IncludeJobAnalysis {
		out.JobAnalysis = nil
	}
	if !opts.IncludeOptimizationNotes || out.OptimizationNotes == nil {
		out.OptimizationNotes = []string{}
	}
	if out.Skills == nil {
		out.Skills = []string{}
	}
	if out.Experiences == nil {
		out.Experiences = []types.ScoredExperience{}
	}
	if out.Education == nil {
		out.Education = []types.Education{}
	}
	if out.Certifications == nil {
		out.Certifications = []string{}
	}

	data, err := json.MarshalIndent(&out, "", "  ")
	if err != nil {
		return nil, &RenderError{Message: "failed to marshal resume", Cause: err}
	}
	return append(data, '\n'), nil
}

// AnalysisReport is the standalone report written next to a tailored resume.
type AnalysisReport struct {
	Timestamp  string             `json:"timestamp"`
	Analysis   *types.JobAnalysis `json:"analysis"`
	Facts      any                `json:"facts,omitempty"`
	ConfigUsed any                `json:"config_used"`
}

// Report renders an analysis report as indented JSON. configUsed is embedded as-is.
func Report(analysis *types.JobAnalysis, facts, configUsed any, now time.Time) ([]byte, error) {
	report := AnalysisReport{
		Timestamp:  now.Format(time.RFC3339),
		Analysis:   analysis,
		Facts:      facts,
		ConfigUsed: configUsed,
	}
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return nil, &RenderError{Message: "failed to marshal analysis report", Cause: err}
	}
	return append(data, '\n'), nil
}
