package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-tailor/internal/ingestion"
	"github.com/jonathan/resume-tailor/internal/observability"
	"github.com/jonathan/resume-tailor/internal/parsing"
	"github.com/jonathan/resume-tailor/internal/rendering"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Analyze a job description for keywords and requirements",
	Long:  "Extract keywords by category, requirements, company signals and job facts (experience, salary, contact) from a job description.",
	RunE:  runAnalyze,
}

var (
	analyzeJobDescription string
	analyzeJobURL         string
	analyzeOutput         string
)

func init() {
	analyzeCmd.Flags().StringVarP(&analyzeJobDescription, "job-description", "j", "", "Path to job description file (mutually exclusive with --job-url)")
	analyzeCmd.Flags().StringVar(&analyzeJobURL, "job-url", "", "URL to fetch job description from (mutually exclusive with --job-description)")
	analyzeCmd.Flags().StringVarP(&analyzeOutput, "output", "o", "", "Write the JSON analysis report to this path")

	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, _ []string) error {
	if err := checkJobSource(analyzeJobDescription, analyzeJobURL); err != nil {
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

	ctx := cmd.Context()
	var (
		jobText string
		meta    *ingestion.Metadata
	)
	if analyzeJobURL != "" {
		fetcher, closeFetcher := newFetcher(ctx, cfg)
		defer closeFetcher()
		jobText, meta, err = ingestion.FromURL(ctx, analyzeJobURL, fetcher)
	} else {
		jobText, meta, err = ingestion.FromFile(analyzeJobDescription)
	}
	if err != nil {
		return err
	}

	jobAnalysis := assembler.Analyzer().Analyze(jobText)
	facts := parsing.ExtractJobFacts(jobText)

	out := cmd.OutOrStdout()
	observability.NewPrinter(out).PrintJobAnalysis(jobAnalysis)
	if facts.YearsOfExperience != nil {
		_, _ = fmt.Fprintf(out, "Years of experience: %d+\n", *facts.YearsOfExperience)
	}
	if facts.Salary != nil {
		_, _ = fmt.Fprintf(out, "Salary range: $%d - $%d\n", facts.Salary.Min, facts.Salary.Max)
	}

	if analyzeOutput == "" {
		return nil
	}
	report, err := rendering.Report(jobAnalysis, facts, cfg, time.Now())
	if err != nil {
		return err
	}
	if dir := filepath.Dir(analyzeOutput); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	if err := os.WriteFile(analyzeOutput, report, 0644); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}

	_, _ = fmt.Fprintf(out, "Successfully wrote analysis of %s to %s\n", meta.Source, analyzeOutput)
	return nil
}
