package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-tailor/internal/analysis"
	"github.com/jonathan/resume-tailor/internal/cache"
	"github.com/jonathan/resume-tailor/internal/config"
	"github.com/jonathan/resume-tailor/internal/db"
	"github.com/jonathan/resume-tailor/internal/fetch"
	"github.com/jonathan/resume-tailor/internal/llm"
	"github.com/jonathan/resume-tailor/internal/logger"
	"github.com/jonathan/resume-tailor/internal/pipeline"
)

// loadConfig loads the config file, applies environment and flag overrides,
// validates the result and initialises logging.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.ApplyFlags(cmd.Flags()); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if verbose {
		cfg.Log.Level = "debug"
	}
	logger.Init(cfg.Log)
	return cfg, nil
}

// newAssembler builds the assembler for the configured keyword table and limits.
func newAssembler(cfg *config.Config) (*pipeline.Assembler, error) {
	table, err := cfg.KeywordTable()
	if err != nil {
		return nil, fmt.Errorf("failed to build keyword table: %w", err)
	}
	return pipeline.NewAssembler(analysis.NewAnalyzer(table), cfg.PipelineConfig()), nil
}

// openStore opens run history. It returns a nil store when history is disabled.
func openStore(ctx context.Context, cfg *config.Config) (db.Store, error) {
	store, err := db.Open(ctx, cfg.StoreConfig())
	if err != nil {
		return nil, fmt.Errorf("failed to open run history: %w", err)
	}
	return store, nil
}

// newFetcher builds the job page fetcher. An unreachable Redis only disables
// caching. The returned function releases the cache connection.
func newFetcher(ctx context.Context, cfg *config.Config) (fetch.Fetcher, func()) {
	var pageCache cache.Cache
	if cfg.Cache.RedisURL != "" {
		redisCache, err := cache.NewRedis(ctx, cfg.Cache.RedisURL)
		if err != nil {
			logger.Warn().Err(err).Msg("page cache disabled")
		} else {
			pageCache = redisCache
		}
	}

	closer := func() {}
	if pageCache != nil {
		closer = func() { _ = pageCache.Close() }
	}
	return fetch.NewCachedFetcher(cfg.FetcherConfig(pageCache)), closer
}

// newLLMClient returns the Gemini client when LLM structuring is enabled, or nil.
func newLLMClient(ctx context.Context, cfg *config.Config) (llm.Client, llm.ModelTier, error) {
	if !cfg.LLM.Enabled {
		return nil, "", nil
	}
	if cfg.LLM.APIKey == "" {
		return nil, "", fmt.Errorf("GEMINI_API_KEY environment variable is required when llm.enabled is set")
	}
	tier, err := llm.ParseTier(cfg.LLM.Tier)
	if err != nil {
		return nil, "", err
	}
	client, err := llm.NewGeminiClient(ctx, llm.DefaultConfig(), cfg.LLM.APIKey)
	if err != nil {
		return nil, "", fmt.Errorf("failed to create LLM client: %w", err)
	}
	return client, tier, nil
}

// checkJobSource enforces exactly one of a job description file and a job URL.
func checkJobSource(jobPath, jobURL string) error {
	if jobPath == "" && jobURL == "" {
		return fmt.Errorf("either --job-description or --job-url must be provided")
	}
	if jobPath != "" && jobURL != "" {
		return fmt.Errorf("--job-description and --job-url are mutually exclusive; provide only one")
	}
	return nil
}
