package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-tailor/internal/config"
	"github.com/jonathan/resume-tailor/internal/pipeline"
	"github.com/jonathan/resume-tailor/internal/profile"
	"github.com/jonathan/resume-tailor/internal/rendering"
)

var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Tailor one profile to every job description in a directory",
	Long: `Tailor a profile to each .txt, .md or .html job description in --jobs-dir concurrently
and write one resume per job to --output-dir. A failing job is reported without stopping the others.`,
	RunE: runBatch,
}

var (
	batchProfile     string
	batchJobsDir     string
	batchOutputDir   string
	batchConcurrency int
	batchFormat      string
)

func init() {
	batchCmd.Flags().StringVarP(&batchProfile, "profile", "p", "", "Path to profile JSON or YAML file (required)")
	batchCmd.Flags().StringVar(&batchJobsDir, "jobs-dir", "", "Directory of job description files (required)")
	batchCmd.Flags().StringVarP(&batchOutputDir, "output-dir", "o", "", "Directory for tailored resumes (required)")
	batchCmd.Flags().IntVar(&batchConcurrency, "concurrency", pipeline.DefaultBatchConcurrency, "Number of jobs tailored in parallel")
	batchCmd.Flags().StringVarP(&batchFormat, "format", "f", "markdown", "Output format: markdown, json, html or pdf")
	config.RegisterFlags(batchCmd.Flags())

	_ = batchCmd.MarkFlagRequired("profile")
	_ = batchCmd.MarkFlagRequired("jobs-dir")
	_ = batchCmd.MarkFlagRequired("output-dir")

	rootCmd.AddCommand(batchCmd)
}

func runBatch(cmd *cobra.Command, _ []string) error {
	format, err := rendering.ParseFormat(batchFormat)
	if err != nil {
		return err
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	assembler, err := newAssembler(cfg)
	if err != nil {
		return err
	}
	p, err := profile.LoadProfile(batchProfile)
	if err != nil {
		return err
	}
	jobs, err := pipeline.LoadJobsDir(batchJobsDir)
	if err != nil {
		return err
	}
	if len(jobs) == 0 {
		return fmt.Errorf("no job descriptions found in %s", batchJobsDir)
	}
	if err := os.MkdirAll(batchOutputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	ctx := cmd.Context()
	out := cmd.OutOrStdout()
	opts := cfg.ExportOptions()
	failed := 0
	for _, result := range pipeline.RunBatch(ctx, assembler, p, jobs, batchConcurrency) {
		if result.Err != nil {
			failed++
			_, _ = fmt.Fprintf(out, "✗ %s: %v\n", result.Job.Name, result.Err)
			continue
		}
		data, err := rendering.Render(ctx, result.Resume, format, opts, rendering.PDF)
		if err != nil {
			failed++
			_, _ = fmt.Fprintf(out, "✗ %s: %v\n", result.Job.Name, err)
			continue
		}
		path := batchOutputPath(batchOutputDir, result.Job.Name, format)
		if err := os.WriteFile(path, data, 0644); err != nil {
			return fmt.Errorf("failed to write %s: %w", path, err)
		}
		_, _ = fmt.Fprintf(out, "✓ %s -> %s\n", result.Job.Name, path)
	}

	_, _ = fmt.Fprintf(out, "Successfully tailored %d of %d resumes to %s\n", len(jobs)-failed, len(jobs), batchOutputDir)
	if failed > 0 {
		return fmt.Errorf("%d of %d jobs failed", failed, len(jobs))
	}
	return nil
}

// batchOutputPath returns "<dir>/<name>_resume.<ext>".
func batchOutputPath(dir, name string, format rendering.Format) string {
	return filepath.Join(dir, name+"_resume."+formatExtension(format))
}

func formatExtension(format rendering.Format) string {
	switch format {
	case rendering.FormatMarkdown:
		return "md"
	default:
		return string(format)
	}
}
