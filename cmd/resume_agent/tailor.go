package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-tailor/internal/config"
	"github.com/jonathan/resume-tailor/internal/observability"
	"github.com/jonathan/resume-tailor/internal/pipeline"
	"github.com/jonathan/resume-tailor/internal/rendering"
)

var tailorCmd = &cobra.Command{
	Use:   "tailor",
	Short: "Tailor a resume profile to a job description",
	Long: `Analyze a job description, rank the profile's experiences and skills against it and
export the tailored resume.

Configuration can be loaded from a YAML or JSON file using --config. Command-line flags override config file values.`,
	RunE: runTailor,
}

var (
	tailorProfile        string
	tailorJobDescription string
	tailorJobURL         string
	tailorOutput         string
	tailorFormat         string
	tailorFocus          []string
	tailorReport         string
	tailorStrict         bool
	tailorNoHistory      bool
)

func init() {
	tailorCmd.Flags().StringVarP(&tailorProfile, "profile", "p", "", "Path to profile JSON or YAML file (required)")
	tailorCmd.Flags().StringVarP(&tailorJobDescription, "job-description", "j", "", "Path to job description file (mutually exclusive with --job-url)")
	tailorCmd.Flags().StringVar(&tailorJobURL, "job-url", "", "URL to fetch job description from (mutually exclusive with --job-description)")
	tailorCmd.Flags().StringVarP(&tailorOutput, "output", "o", "", "Output file path (required)")
	tailorCmd.Flags().StringVarP(&tailorFormat, "format", "f", "markdown", "Output format: markdown, json, html or pdf")
	tailorCmd.Flags().StringSliceVar(&tailorFocus, "focus", nil, "Focus areas to highlight in the summary (repeatable or comma separated)")
	tailorCmd.Flags().StringVar(&tailorReport, "report", "", "Write a JSON job analysis report to this path")
	tailorCmd.Flags().BoolVar(&tailorStrict, "strict", false, "Fail when the profile has validation issues")
	tailorCmd.Flags().BoolVar(&tailorNoHistory, "no-history", false, "Do not record this run in history")
	config.RegisterFlags(tailorCmd.Flags())

	_ = tailorCmd.MarkFlagRequired("profile")
	_ = tailorCmd.MarkFlagRequired("output")

	rootCmd.AddCommand(tailorCmd)
}

func runTailor(cmd *cobra.Command, _ []string) error {
	if err := checkJobSource(tailorJobDescription, tailorJobURL); err != nil {
		return err
	}
	format, err := rendering.ParseFormat(tailorFormat)
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

	ctx := cmd.Context()
	opts := pipeline.RunOptions{
		Assembler:       assembler,
		ProfilePath:     tailorProfile,
		JobPath:         tailorJobDescription,
		JobURL:          tailorJobURL,
		FocusAreas:      tailorFocus,
		ValidationRules: &cfg.Validation,
		Strict:          tailorStrict,
		Format:          format,
		RenderOptions:   cfg.ExportOptions(),
		PDF:             rendering.PDF,
		OutputPath:      tailorOutput,
		ReportPath:      tailorReport,
		ReportConfig:    cfg,
	}

	if tailorJobURL != "" {
		fetcher, closeFetcher := newFetcher(ctx, cfg)
		defer closeFetcher()
		opts.Fetcher = fetcher
	}

	client, tier, err := newLLMClient(ctx, cfg)
	if err != nil {
		return err
	}
	if client != nil {
		defer func() { _ = client.Close() }()
		opts.LLM = client
		opts.LLMTier = tier
	}

	if !tailorNoHistory {
		store, err := openStore(ctx, cfg)
		if err != nil {
			return err
		}
		if store != nil {
			defer func() { _ = store.Close() }()
			opts.Store = store
		}
	}

	out := cmd.OutOrStdout()
	if verbose {
		opts.OnProgress = func(event pipeline.ProgressEvent) {
			_, _ = fmt.Fprintf(out, "[%s] %s\n", event.Step, event.Message)
		}
	}

	result, err := pipeline.Run(ctx, opts)
	if err != nil {
		return err
	}

	if verbose {
		printer := observability.NewPrinter(out)
		printer.PrintJobAnalysis(result.Resume.JobAnalysis)
		printer.PrintRankedExperiences(result.Resume.Experiences)
		printer.PrintSkills(result.Resume.Skills)
		printer.PrintProfileIssues(result.ProfileIssues)
	} else if len(result.ProfileIssues) > 0 {
		_, _ = fmt.Fprintf(out, "Profile has %d validation issues (run validate-profile for details)\n", len(result.ProfileIssues))
	}

	_, _ = fmt.Fprintf(out, "Successfully tailored resume to %s\n", tailorOutput)
	if tailorReport != "" {
		_, _ = fmt.Fprintf(out, "Analysis report: %s\n", tailorReport)
	}
	if opts.Store != nil {
		_, _ = fmt.Fprintf(out, "Run ID: %s\n", result.RunID)
	}
	return nil
}
