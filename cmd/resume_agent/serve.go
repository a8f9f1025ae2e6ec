package main

import (
	"github.com/spf13/cobra"

	"github.com/jonathan/resume-tailor/internal/formatter"
	"github.com/jonathan/resume-tailor/internal/logger"
	"github.com/jonathan/resume-tailor/internal/server"
	"github.com/jonathan/resume-tailor/internal/server/ratelimit"
)

var (
	servePort int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long:  `Start an HTTP server that exposes REST endpoints for analyzing job descriptions, tailoring resumes and browsing run history.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 8080, "Port to listen on")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	assembler, err := newAssembler(cfg)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	store, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	if store != nil {
		defer func() { _ = store.Close() }()
	} else {
		logger.Warn().Msg("run history disabled; /runs endpoints will return 503")
	}

	fetcher, closeFetcher := newFetcher(ctx, cfg)
	defer closeFetcher()

	srv := server.New(server.Config{
		Port:          servePort,
		Assembler:     assembler,
		RenderOptions: cfg.ExportOptions(),
		Rules:         cfg.Validation,
		Settings:      formatter.DefaultSettings(),
		Store:         store,
		Fetcher:       fetcher,
		RateLimit:     ratelimit.LoadConfig(),
	})
	return srv.Run(ctx)
}
