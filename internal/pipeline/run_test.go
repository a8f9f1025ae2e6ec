package pipeline

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-tailor/internal/analysis"
	"github.com/jonathan/resume-tailor/internal/db"
	"github.com/jonathan/resume-tailor/internal/llm"
	"github.com/jonathan/resume-tailor/internal/rendering"
	"github.com/jonathan/resume-tailor/internal/validation"
)

type fakeStore struct {
	mu   sync.Mutex
	runs []db.Run
	err  error
}

func (s *fakeStore) SaveRun(_ context.Context, run *db.Run) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	s.runs = append(s.runs, *run)
	return nil
}

func (s *fakeStore) ListRuns(context.Context, int) ([]db.Run, error) { return s.runs, nil }

func (s *fakeStore) GetRun(context.Context, uuid.UUID) (*db.Run, error) { return nil, nil }

func (s *fakeStore) Close() error { return nil }

type fakeLLM struct {
	response string
	err      error
	calls    int
}

func (f *fakeLLM) GenerateJSON(context.Context, string, llm.ModelTier) (string, error) {
	f.calls++
	return f.response, f.err
}

func (f *fakeLLM) Close() error { return nil }

func TestRun_WritesOutputReportAndHistory(t *testing.T) {
	dir := t.TempDir()
	store := &fakeStore{}
	var events []ProgressEvent

	result, err := Run(context.Background(), RunOptions{
		Assembler:     newTestAssembler(DefaultConfig()),
		Profile:       testProfile(),
		JobText:       testJob,
		Format:        rendering.FormatMarkdown,
		RenderOptions: rendering.DefaultOptions(),
		OutputPath:    filepath.Join(dir, "out", "resume.md"),
		ReportPath:    filepath.Join(dir, "out", "report.json"),
		ReportConfig:  map[string]int{"max_experiences": 5},
		Store:         store,
		OnProgress:    func(e ProgressEvent) { events = append(events, e) },
	})
	require.NoError(t, err)

	written, err := os.ReadFile(filepath.Join(dir, "out", "resume.md"))
	require.NoError(t, err)
	assert.Equal(t, result.Output, written)
	assert.True(t, strings.HasPrefix(string(written), "# Jane Doe"))

	report, err := os.ReadFile(filepath.Join(dir, "out", "report.json"))
	require.NoError(t, err)
	assert.Contains(t, string(report), `"config_used"`)

	require.Len(t, store.runs, 1)
	assert.Equal(t, result.RunID, store.runs[0].ID)
	assert.Equal(t, "Jane Doe", store.runs[0].ProfileName)
	assert.Equal(t, "inline", store.runs[0].JobSource)
	assert.Greater(t, store.runs[0].KeywordCount, 0)
	assert.NotEmpty(t, store.runs[0].ResumeJSON)

	var steps []string
	for _, e := range events {
		steps = append(steps, e.Step)
		assert.Equal(t, result.RunID.String(), e.RunID)
	}
	assert.Equal(t, []string{
		StepLoadProfile, StepIngestJob, StepAnalyze, StepTailor,
		StepRender, StepWriteOutput, StepWriteReport, StepSaveHistory,
	}, steps)
}

func TestRun_HistoryFailureDoesNotFailRun(t *testing.T) {
	store := &fakeStore{err: errors.New("disk full")}
	result, err := Run(context.Background(), RunOptions{
		Profile: testProfile(),
		JobText: testJob,
		Store:   store,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, result.Output)
}

func TestRun_JobFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "job.txt")
	require.NoError(t, os.WriteFile(path, []byte(testJob), 0644))

	result, err := Run(context.Background(), RunOptions{
		Profile: testProfile(),
		JobPath: path,
		Format:  rendering.FormatJSON,
	})
	require.NoError(t, err)
	assert.Equal(t, path, result.Job.Source)
	assert.Contains(t, string(result.Output), `"experiences"`)
}

func TestRun_MissingInputs(t *testing.T) {
	_, err := Run(context.Background(), RunOptions{JobText: testJob})
	assert.ErrorContains(t, err, "profile")

	_, err = Run(context.Background(), RunOptions{Profile: testProfile()})
	assert.ErrorContains(t, err, "job description")

	_, err = Run(context.Background(), RunOptions{Profile: testProfile(), JobPath: filepath.Join(t.TempDir(), "missing.txt")})
	assert.Error(t, err)
}

func TestRun_BlankJobDescription(t *testing.T) {
	emptyFile := filepath.Join(t.TempDir(), "empty.txt")
	require.NoError(t, os.WriteFile(emptyFile, nil, 0644))

	tests := []struct {
		name string
		opts RunOptions
	}{
		{"whitespace text", RunOptions{JobText: "   \n  "}},
		{"empty file", RunOptions{JobPath: emptyFile}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.opts.Profile = testProfile()
			tt.opts.Format = rendering.FormatJSON
			result, err := Run(context.Background(), tt.opts)
			require.NoError(t, err)
			assert.Equal(t, 0, result.Resume.JobAnalysis.TotalKeywords())
			assert.Empty(t, result.Resume.JobAnalysis.Requirements)
			assert.NotEmpty(t, result.Output)
		})
	}
}

func TestRun_StrictValidation(t *testing.T) {
	p := testProfile()
	p.Phone = ""
	rules := validation.DefaultRules()

	_, err := Run(context.Background(), RunOptions{Profile: p, JobText: testJob, ValidationRules: &rules, Strict: true})
	var profileErr *validation.ProfileError
	require.True(t, errors.As(err, &profileErr))

	result, err := Run(context.Background(), RunOptions{Profile: p, JobText: testJob, ValidationRules: &rules})
	require.NoError(t, err)
	assert.Contains(t, result.ProfileIssues, "Missing required field: phone")
}

func TestRun_LLMStructuringOnlyWhenNoRequirements(t *testing.T) {
	client := &fakeLLM{response: `{"title": "PM", "company": "Acme", "requirements": ["5+ years of product management"]}`}

	result, err := Run(context.Background(), RunOptions{Profile: testProfile(), JobText: testJob, LLM: client})
	require.NoError(t, err)
	assert.Equal(t, 0, client.calls)
	assert.Nil(t, result.Posting)

	result, err = Run(context.Background(), RunOptions{
		Profile: testProfile(),
		JobText: "We want a product manager who loves agile teams.",
		LLM:     client,
	})
	require.NoError(t, err)
	assert.Equal(t, 1, client.calls)
	require.NotNil(t, result.Posting)
	assert.Equal(t, []string{"5+ years of product management"}, result.Resume.JobAnalysis.Requirements)
}

func TestRun_LLMRequirementsAreCapped(t *testing.T) {
	items := make([]string, 12)
	for i := range items {
		items[i] = fmt.Sprintf("%q", fmt.Sprintf("requirement %d", i+1))
	}
	client := &fakeLLM{response: `{"title": "PM", "requirements": [` + strings.Join(items, ", ") + `]}`}

	result, err := Run(context.Background(), RunOptions{
		Profile: testProfile(),
		JobText: "We want a product manager who loves agile teams.",
		LLM:     client,
	})
	require.NoError(t, err)
	got := result.Resume.JobAnalysis
	require.Len(t, got.Requirements, analysis.MaxRequirements)
	assert.Equal(t, "requirement 1", got.Requirements[0])
	assert.Equal(t, "requirement 10", got.Requirements[9])
	assert.Contains(t, got.AnalysisSummary, "Identified 10 key requirements.")
	assert.Len(t, result.Posting.Requirements, 12)
}

func TestRun_LLMFailureFallsBack(t *testing.T) {
	client := &fakeLLM{err: errors.New("quota exceeded")}
	result, err := Run(context.Background(), RunOptions{
		Profile: testProfile(),
		JobText: "We want a product manager who loves agile teams.",
		LLM:     client,
	})
	require.NoError(t, err)
	assert.Nil(t, result.Posting)
	assert.Empty(t, result.Resume.JobAnalysis.Requirements)
}

func TestRun_PDFUsesRenderer(t *testing.T) {
	var gotHTML string
	result, err := Run(context.Background(), RunOptions{
		Profile:       testProfile(),
		JobText:       testJob,
		Format:        rendering.FormatPDF,
		RenderOptions: rendering.DefaultOptions(),
		PDF: func(_ context.Context, html string) ([]byte, error) {
			gotHTML = html
			return []byte("%PDF-1.4"), nil
		},
	})
	require.NoError(t, err)
	assert.Equal(t, []byte("%PDF-1.4"), result.Output)
	assert.Contains(t, gotHTML, "Jane Doe")
}
