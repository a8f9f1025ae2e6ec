package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/jonathan/resume-tailor/internal/formatter"
	"github.com/jonathan/resume-tailor/internal/ingestion"
	"github.com/jonathan/resume-tailor/internal/parsing"
	"github.com/jonathan/resume-tailor/internal/pipeline"
	"github.com/jonathan/resume-tailor/internal/profile"
	"github.com/jonathan/resume-tailor/internal/rendering"
	"github.com/jonathan/resume-tailor/internal/schemas"
	"github.com/jonathan/resume-tailor/internal/types"
	"github.com/jonathan/resume-tailor/internal/validation"
	schemafiles "github.com/jonathan/resume-tailor/schemas"
)

// JobRequest identifies a job description by text or URL. Whitespace-only
// text is a valid, if uninformative, description.
type JobRequest struct {
	JobDescription string `json:"job_description,omitempty"`
	JobURL         string `json:"job_url,omitempty"`
}

func (j JobRequest) validate() error {
	hasText := j.JobDescription != ""
	switch {
	case !hasText && j.JobURL == "":
		return &ErrValidation{Field: "job_description", Message: "either job_description or job_url is required"}
	case hasText && j.JobURL != "":
		return &ErrValidation{Field: "job_url", Message: "job_description and job_url are mutually exclusive"}
	}
	return nil
}

// AnalyzeResponse represents the response for /analyze
type AnalyzeResponse struct {
	Analysis *types.JobAnalysis  `json:"analysis"`
	Facts    parsing.JobFacts    `json:"facts"`
	Source   *ingestion.Metadata `json:"source"`
}

// TailorRequest represents the request body for /tailor
type TailorRequest struct {
	JobRequest
	Profile    json.RawMessage `json:"profile"`
	FocusAreas []string        `json:"focus_areas,omitempty"`
	Format     string          `json:"format,omitempty"` // markdown (default), json or html
}

// ValidateRequest represents the request body for /validate
type ValidateRequest struct {
	Profile json.RawMessage `json:"profile"`
}

// ValidateResponse represents the response for /validate
type ValidateResponse struct {
	Valid        bool     `json:"valid"`
	Issues       []string `json:"issues"`
	SchemaErrors []string `json:"schema_errors"`
}

// FormatRequest represents the request body for /format
type FormatRequest struct {
	Text     string              `json:"text"`
	HTML     bool                `json:"html,omitempty"`
	Settings *formatter.Settings `json:"settings,omitempty"`
}

// FormatResponse represents the response for /format
type FormatResponse struct {
	Sections []string `json:"sections"`
	Text     string   `json:"text,omitempty"`
	HTML     string   `json:"html,omitempty"`
}

// RunsResponse represents the response for /runs
type RunsResponse struct {
	Runs []runSummary `json:"runs"`
}

type runSummary struct {
	ID           string `json:"id"`
	CreatedAt    string `json:"created_at"`
	ProfileName  string `json:"profile_name"`
	JobSource    string `json:"job_source"`
	KeywordCount int    `json:"keyword_count"`
	TopCategory  string `json:"top_category,omitempty"`
}

func isEmptyJSON(raw json.RawMessage) bool {
	trimmed := strings.TrimSpace(string(raw))
	return trimmed == "" || trimmed == "null"
}

// handleAnalyze runs keyword analysis on a job description
func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	var req JobRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}
	if err := req.validate(); err != nil {
		s.errorFrom(w, r, err)
		return
	}

	var (
		text string
		meta *ingestion.Metadata
		err  error
	)
	if req.JobURL != "" {
		text, meta, err = ingestion.FromURL(r.Context(), req.JobURL, s.fetcher)
		if err != nil {
			s.errorFrom(w, r, err)
			return
		}
	} else {
		text, meta = ingestion.FromText(req.JobDescription, "request")
	}

	s.jsonResponse(w, http.StatusOK, AnalyzeResponse{
		Analysis: s.assembler.Analyzer().Analyze(text),
		Facts:    parsing.ExtractJobFacts(text),
		Source:   meta,
	})
}

// handleTailor tailors a profile to a job description and returns the rendered resume
func (s *Server) handleTailor(w http.ResponseWriter, r *http.Request) {
	var req TailorRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}
	if err := req.validate(); err != nil {
		s.errorFrom(w, r, err)
		return
	}
	if isEmptyJSON(req.Profile) {
		s.errorFrom(w, r, &ErrValidation{Field: "profile", Message: "profile is required"})
		return
	}

	format := rendering.FormatMarkdown
	if req.Format != "" {
		parsed, err := rendering.ParseFormat(req.Format)
		if err != nil || parsed == rendering.FormatPDF {
			s.errorFrom(w, r, &ErrValidation{Field: "format", Message: "format must be markdown, json or html"})
			return
		}
		format = parsed
	}

	userProfile, err := profile.ParseProfile(req.Profile, "request.json")
	if err != nil {
		s.errorFrom(w, r, err)
		return
	}

	result, err := pipeline.Run(r.Context(), pipeline.RunOptions{
		Assembler:     s.assembler,
		Profile:       userProfile,
		JobText:       req.JobDescription,
		JobURL:        req.JobURL,
		Fetcher:       s.fetcher,
		FocusAreas:    req.FocusAreas,
		Format:        format,
		RenderOptions: s.renderOptions,
		Store:         s.store,
	})
	if err != nil {
		s.errorFrom(w, r, err)
		return
	}

	w.Header().Set("Content-Type", format.ContentType())
	w.Header().Set("X-Run-ID", result.RunID.String())
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(result.Output)
}

// handleValidate checks a profile against the JSON schema and the validation rules
func (s *Server) handleValidate(w http.ResponseWriter, r *http.Request) {
	var req ValidateRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}
	if isEmptyJSON(req.Profile) {
		s.errorFrom(w, r, &ErrValidation{Field: "profile", Message: "profile is required"})
		return
	}

	resp := ValidateResponse{Issues: []string{}, SchemaErrors: []string{}}

	if err := schemas.Validate(schemafiles.UserProfile, req.Profile); err != nil {
		var schemaErr *schemas.ValidationError
		if !errors.As(err, &schemaErr) {
			s.errorFrom(w, r, err)
			return
		}
		for _, fe := range schemaErr.Errors {
			resp.SchemaErrors = append(resp.SchemaErrors, fmt.Sprintf("%s: %s", fe.Field, fe.Message))
		}
	}

	userProfile, err := profile.ParseProfile(req.Profile, "request.json")
	if err != nil {
		s.errorFrom(w, r, err)
		return
	}
	if issues := validation.CheckProfile(userProfile, s.rules); len(issues) > 0 {
		resp.Issues = issues
	}

	resp.Valid = len(resp.Issues) == 0 && len(resp.SchemaErrors) == 0
	s.jsonResponse(w, http.StatusOK, resp)
}

// handleFormat reformats plain resume text
func (s *Server) handleFormat(w http.ResponseWriter, r *http.Request) {
	var req FormatRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		s.errorFrom(w, r, &ErrValidation{Field: "text", Message: "text is required"})
		return
	}

	settings := s.settings
	if req.Settings != nil {
		settings = *req.Settings
	}
	if len(settings.Sections) == 0 {
		settings = formatter.DefaultSettings()
	}

	sections := formatter.Parse(req.Text)
	resp := FormatResponse{Sections: make([]string, 0, len(sections))}
	for _, sec := range sections {
		resp.Sections = append(resp.Sections, sec.Name)
	}

	if req.HTML {
		html, err := formatter.FormatHTML(sections, settings)
		if err != nil {
			s.errorFrom(w, r, err)
			return
		}
		resp.HTML = html
	} else {
		resp.Text = formatter.FormatText(sections, settings)
	}
	s.jsonResponse(w, http.StatusOK, resp)
}

// handleListRuns lists recent tailoring runs
func (s *Server) handleListRuns(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		s.errorResponse(w, http.StatusServiceUnavailable, "run history is disabled")
		return
	}

	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			s.errorFrom(w, r, &ErrValidation{Field: "limit", Message: "limit must be a non-negative integer"})
			return
		}
		limit = n
	}

	runs, err := s.store.ListRuns(r.Context(), limit)
	if err != nil {
		s.errorFrom(w, r, err)
		return
	}

	resp := RunsResponse{Runs: make([]runSummary, 0, len(runs))}
	for _, run := range runs {
		resp.Runs = append(resp.Runs, runSummary{
			ID:           run.ID.String(),
			CreatedAt:    run.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
			ProfileName:  run.ProfileName,
			JobSource:    run.JobSource,
			KeywordCount: run.KeywordCount,
			TopCategory:  run.TopCategory,
		})
	}
	s.jsonResponse(w, http.StatusOK, resp)
}

// handleGetRun returns one run including the stored resume
func (s *Server) handleGetRun(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		s.errorResponse(w, http.StatusServiceUnavailable, "run history is disabled")
		return
	}

	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorFrom(w, r, &ErrValidation{Field: "id", Message: "invalid run ID"})
		return
	}

	run, err := s.store.GetRun(r.Context(), id)
	if err != nil {
		s.errorFrom(w, r, err)
		return
	}
	if run == nil {
		s.errorResponse(w, http.StatusNotFound, "run not found")
		return
	}
	s.jsonResponse(w, http.StatusOK, run)
}
