package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/jonathan/resume-tailor/internal/ingestion"
	"github.com/jonathan/resume-tailor/internal/logger"
	"github.com/jonathan/resume-tailor/internal/types"
)

// DefaultBatchConcurrency bounds RunBatch when concurrency is not positive.
const DefaultBatchConcurrency = 4

// Job is one job description in a batch.
type Job struct {
	Name   string // used for output file names
	Source string
	Text   string
}

// Result is the outcome of tailoring one batch job.
type Result struct {
	Job    Job
	Resume *types.TailoredResume
	Err    error
}

// RunBatch tailors profile against every job concurrently. Results are returned
// in input order; a failing job records its error without stopping the others.
func RunBatch(ctx context.Context, assembler *Assembler, profile *types.UserProfile, jobs []Job, concurrency int) []Result {
	if concurrency <= 0 {
		concurrency = DefaultBatchConcurrency
	}

	results := make([]Result, len(jobs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	for i, job := range jobs {
		results[i].Job = job
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				results[i].Err = err
				return nil
			}
			results[i].Resume = assembler.Tailor(profile, job.Text, nil)
			logger.Ctx(ctx).Debug().Str("job", job.Name).Int("experiences", len(results[i].Resume.Experiences)).Msg("tailored batch job")
			return nil
		})
	}

	// Goroutines never return errors; failures are per job.
	_ = g.Wait()
	return results
}

var batchExtensions = map[string]bool{".txt": true, ".md": true, ".html": true, ".htm": true}

// LoadJobsDir reads every .txt, .md and .html file in dir, sorted by name.
func LoadJobsDir(dir string) ([]Job, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read jobs directory %s: %w", dir, err)
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() || !batchExtensions[strings.ToLower(filepath.Ext(e.Name()))] {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)

	jobs := make([]Job, 0, len(names))
	for _, name := range names {
		path := filepath.Join(dir, name)
		text, _, err := ingestion.FromFile(path)
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, Job{
			Name:   strings.TrimSuffix(name, filepath.Ext(name)),
			Source: path,
			Text:   text,
		})
	}
	return jobs, nil
}
