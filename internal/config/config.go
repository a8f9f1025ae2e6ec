// Package config provides configuration loading and validation for the CLI and API server.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"

	"github.com/jonathan/resume-tailor/internal/cache"
	"github.com/jonathan/resume-tailor/internal/db"
	"github.com/jonathan/resume-tailor/internal/fetch"
	"github.com/jonathan/resume-tailor/internal/keywords"
	"github.com/jonathan/resume-tailor/internal/logger"
	"github.com/jonathan/resume-tailor/internal/pipeline"
	"github.com/jonathan/resume-tailor/internal/rendering"
	"github.com/jonathan/resume-tailor/internal/validation"
)

// DefaultPath is loaded when no --config flag is given and the file exists.
const DefaultPath = "resume_agent.yaml"

// Config is the full application configuration. It can be loaded from YAML or JSON;
// values missing from the file keep their defaults.
type Config struct {
	Resume     ResumeConfig     `json:"resume" yaml:"resume"`
	Keywords   KeywordConfig    `json:"keywords" yaml:"keywords"`
	Export     ExportConfig     `json:"export" yaml:"export"`
	Validation validation.Rules `json:"validation" yaml:"validation"`
	Log        logger.Config    `json:"log" yaml:"log"`
	Storage    StorageConfig    `json:"storage" yaml:"storage"`
	Cache      CacheConfig      `json:"cache" yaml:"cache"`
	Fetch      FetchConfig      `json:"fetch" yaml:"fetch"`
	LLM        LLMConfig        `json:"llm" yaml:"llm"`
}

// ResumeConfig limits the size of a tailored resume.
type ResumeConfig struct {
	MaxExperiences         int     `json:"max_experiences" yaml:"max_experiences"`
	MaxSkills              int     `json:"max_skills" yaml:"max_skills"`
	MaxAchievementsPerRole int     `json:"max_achievements_per_role" yaml:"max_achievements_per_role"` // 0 keeps all
	MinRelevanceScore      float64 `json:"min_relevance_score" yaml:"min_relevance_score"`
	ApplyMinRelevance      bool    `json:"apply_min_relevance" yaml:"apply_min_relevance"`
}

// KeywordConfig selects the keyword table and scoring bonuses. Weights declared
// in TableFile win over CategoryWeights for the categories the file defines.
//
// A phrase that appears in more than one category is scored with the weight of
// the last category containing it; scores are overwritten, not summed.
type KeywordConfig struct {
	CategoryWeights   map[string]float64 `json:"category_weights" yaml:"category_weights"`
	PMTitleBonus      float64            `json:"pm_title_bonus" yaml:"pm_title_bonus"`
	KeywordMatchBonus float64            `json:"keyword_match_bonus" yaml:"keyword_match_bonus"`
	CustomCategories  bool               `json:"custom_categories" yaml:"custom_categories"`
	Industry          string             `json:"industry" yaml:"industry"`
	TableFile         string             `json:"table_file" yaml:"table_file"`
}

// ExportConfig controls rendered output.
type ExportConfig struct {
	IncludeRelevanceScores   bool   `json:"include_relevance_scores" yaml:"include_relevance_scores"`
	IncludeOptimizationNotes bool   `json:"include_optimization_notes" yaml:"include_optimization_notes"`
	IncludeJobAnalysis       bool   `json:"include_job_analysis" yaml:"include_job_analysis"`
	MarkdownStyle            string `json:"markdown_style" yaml:"markdown_style"`
	Template                 string `json:"template" yaml:"template"`
}

// StorageConfig selects the run history backend.
type StorageConfig struct {
	Driver string `json:"driver" yaml:"driver"` // sqlite, postgres or none
	DSN    string `json:"dsn" yaml:"dsn"`
}

// CacheConfig configures the fetched job description cache.
type CacheConfig struct {
	RedisURL   string `json:"redis_url" yaml:"redis_url"` // empty disables caching
	TTLMinutes int    `json:"ttl_minutes" yaml:"ttl_minutes"`
}

// FetchConfig configures job description fetching.
type FetchConfig struct {
	TimeoutSeconds    int     `json:"timeout_seconds" yaml:"timeout_seconds"`
	UserAgent         string  `json:"user_agent" yaml:"user_agent"`
	UseBrowser        bool    `json:"use_browser" yaml:"use_browser"`
	RequestsPerSecond float64 `json:"requests_per_second" yaml:"requests_per_second"`
}

// LLMConfig configures optional job description structuring.
type LLMConfig struct {
	Enabled bool   `json:"enabled" yaml:"enabled"`
	Tier    string `json:"tier" yaml:"tier"`
	APIKey  string `json:"-" yaml:"-"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Resume: ResumeConfig{
			MaxExperiences:    5,
			MaxSkills:         15,
			MinRelevanceScore: 0.5,
		},
		Keywords: KeywordConfig{
			CategoryWeights: map[string]float64{
				keywords.CoreSkills:      1.0,
				keywords.TechnicalSkills: 0.8,
				keywords.SoftSkills:      0.6,
				keywords.Industries:      0.7,
			},
			PMTitleBonus:      5.0,
			KeywordMatchBonus: 2.0,
		},
		Export: ExportConfig{
			IncludeRelevanceScores:   true,
			IncludeOptimizationNotes: true,
			IncludeJobAnalysis:       false,
			MarkdownStyle:            rendering.StyleGitHub,
			Template:                 rendering.TemplateProfessional,
		},
		Validation: validation.DefaultRules(),
		Log: logger.Config{
			Level:  "info",
			Format: "pretty",
		},
		Storage: StorageConfig{
			Driver: db.DriverSQLite,
			DSN:    "resume_agent.db",
		},
		Cache: CacheConfig{
			TTLMinutes: 60,
		},
		Fetch: FetchConfig{
			TimeoutSeconds:    30,
			UserAgent:         "Mozilla/5.0 (compatible; ResumeTailor/1.0)",
			RequestsPerSecond: 1,
		},
		LLM: LLMConfig{
			Tier: "lite",
		},
	}
}

// LoadConfig loads configuration from a YAML or JSON file on top of the defaults.
// Files ending in .json are parsed as JSON; anything else as YAML.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	cfg := Default()
	if strings.EqualFold(filepath.Ext(path), ".json") {
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config JSON: %w", err)
		}
	} else {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config YAML: %w", err)
		}
	}

	return cfg, nil
}

// Load loads path if given, otherwise DefaultPath when it exists, otherwise the defaults.
// Environment overrides are applied afterwards.
func Load(path string) (*Config, error) {
	var cfg *Config
	switch {
	case path != "":
		loaded, err := LoadConfig(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	case fileExists(DefaultPath):
		loaded, err := LoadConfig(DefaultPath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	default:
		cfg = Default()
	}
	cfg.ApplyEnv()
	return cfg, nil
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// ApplyEnv overrides settings from environment variables.
func (c *Config) ApplyEnv() {
	if v := os.Getenv("DATABASE_URL"); v != "" {
		c.Storage.Driver = db.DriverPostgres
		c.Storage.DSN = v
	}
	if v := os.Getenv("REDIS_URL"); v != "" {
		c.Cache.RedisURL = v
	}
	if v := os.Getenv("GEMINI_API_KEY"); v != "" {
		c.LLM.APIKey = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
}

// RegisterFlags adds the flags understood by ApplyFlags to fs.
func RegisterFlags(fs *pflag.FlagSet) {
	fs.Int("max-experiences", 0, "maximum number of experiences to include")
	fs.Int("max-skills", 0, "maximum number of skills to include")
	fs.Int("max-achievements", 0, "maximum achievements per role (0 keeps all)")
	fs.Float64("min-relevance", 0, "drop experiences scoring below this value")
	fs.String("industry", "", "add an industry keyword category (fintech, healthcare, e-commerce, enterprise)")
	fs.String("keywords-file", "", "YAML keyword table replacing the built-in one")
	fs.Bool("custom-categories", false, "add the PM frameworks, metrics and tools categories")
	fs.String("template", "", "HTML/PDF template (professional, modern, compact)")
	fs.String("log-level", "", "log level (debug, info, warn, error)")
}

// ApplyFlags copies explicitly set flags from fs onto the configuration.
// Flags that were not registered or not changed are ignored.
func (c *Config) ApplyFlags(fs *pflag.FlagSet) error {
	var err error
	visit := func(name string, apply func(*pflag.Flag) error) {
		if err != nil {
			return
		}
		if f := fs.Lookup(name); f != nil && f.Changed {
			err = apply(f)
		}
	}

	visit("max-experiences", func(*pflag.Flag) (e error) {
		c.Resume.MaxExperiences, e = fs.GetInt("max-experiences")
		return e
	})
	visit("max-skills", func(*pflag.Flag) (e error) {
		c.Resume.MaxSkills, e = fs.GetInt("max-skills")
		return e
	})
	visit("max-achievements", func(*pflag.Flag) (e error) {
		c.Resume.MaxAchievementsPerRole, e = fs.GetInt("max-achievements")
		return e
	})
	visit("min-relevance", func(*pflag.Flag) (e error) {
		c.Resume.MinRelevanceScore, e = fs.GetFloat64("min-relevance")
		c.Resume.ApplyMinRelevance = true
		return e
	})
	visit("industry", func(f *pflag.Flag) error {
		c.Keywords.Industry = f.Value.String()
		return nil
	})
	visit("keywords-file", func(f *pflag.Flag) error {
		c.Keywords.TableFile = f.Value.String()
		return nil
	})
	visit("custom-categories", func(*pflag.Flag) (e error) {
		c.Keywords.CustomCategories, e = fs.GetBool("custom-categories")
		return e
	})
	visit("template", func(f *pflag.Flag) error {
		c.Export.Template = f.Value.String()
		return nil
	})
	visit("log-level", func(f *pflag.Flag) error {
		c.Log.Level = f.Value.String()
		return nil
	})

	if err != nil {
		return fmt.Errorf("failed to apply flags: %w", err)
	}
	return nil
}

// Validate checks that the configuration has valid values.
func (c *Config) Validate() error {
	if c.Resume.MaxExperiences < 0 {
		return fmt.Errorf("config error: 'resume.max_experiences' must be non-negative")
	}
	if c.Resume.MaxSkills < 0 {
		return fmt.Errorf("config error: 'resume.max_skills' must be non-negative")
	}
	if c.Resume.MaxAchievementsPerRole < 0 {
		return fmt.Errorf("config error: 'resume.max_achievements_per_role' must be non-negative")
	}
	if c.Resume.MinRelevanceScore < 0 {
		return fmt.Errorf("config error: 'resume.min_relevance_score' must be non-negative")
	}

	for name, weight := range c.Keywords.CategoryWeights {
		if weight < 0 {
			return fmt.Errorf("config error: weight for category %q must be non-negative", name)
		}
	}
	if c.Keywords.PMTitleBonus < 0 || c.Keywords.KeywordMatchBonus < 0 {
		return fmt.Errorf("config error: keyword bonuses must be non-negative")
	}
	if c.Keywords.Industry != "" {
		if _, ok := keywords.IndustryCategory(c.Keywords.Industry); !ok {
			return fmt.Errorf("config error: unknown industry %q (known: %s)",
				c.Keywords.Industry, strings.Join(keywords.IndustryNames(), ", "))
		}
	}
	if c.Keywords.TableFile != "" {
		if _, err := os.Stat(c.Keywords.TableFile); os.IsNotExist(err) {
			return fmt.Errorf("config error: keyword table file not found: %s", c.Keywords.TableFile)
		}
	}

	switch c.Export.MarkdownStyle {
	case rendering.StyleGitHub, rendering.StyleBasic:
	default:
		return fmt.Errorf("config error: unknown markdown style %q", c.Export.MarkdownStyle)
	}
	if _, ok := rendering.LookupTemplate(c.Export.Template); !ok {
		return fmt.Errorf("config error: unknown template %q", c.Export.Template)
	}

	switch c.Storage.Driver {
	case db.DriverSQLite, db.DriverPostgres, db.DriverNone:
	default:
		return fmt.Errorf("config error: unknown storage driver %q", c.Storage.Driver)
	}
	if c.Storage.Driver != db.DriverNone && c.Storage.DSN == "" {
		return fmt.Errorf("config error: 'storage.dsn' is required for driver %s", c.Storage.Driver)
	}

	if c.Fetch.TimeoutSeconds < 0 {
		return fmt.Errorf("config error: 'fetch.timeout_seconds' must be non-negative")
	}
	if c.Fetch.RequestsPerSecond < 0 {
		return fmt.Errorf("config error: 'fetch.requests_per_second' must be non-negative")
	}

	return c.Validation.Validate()
}

// KeywordTable builds the keyword table described by the configuration.
func (c *Config) KeywordTable() (keywords.Table, error) {
	table := keywords.DefaultTable()
	weights := c.Keywords.CategoryWeights
	if c.Keywords.TableFile != "" {
		loaded, err := keywords.LoadTable(c.Keywords.TableFile)
		if err != nil {
			return keywords.Table{}, err
		}
		table = loaded
		weights = withoutCategories(weights, loaded)
	}

	if c.Keywords.CustomCategories {
		table = keywords.MergeTables(table, keywords.CustomCategories())
	}
	if c.Keywords.Industry != "" {
		category, ok := keywords.IndustryCategory(c.Keywords.Industry)
		if !ok {
			return keywords.Table{}, fmt.Errorf("unknown industry %q", c.Keywords.Industry)
		}
		table = keywords.Merge(table, category)
	}

	return table.WithWeights(weights), nil
}

// withoutCategories drops the weights of categories defined by table, whose
// own weights take precedence.
func withoutCategories(weights map[string]float64, table keywords.Table) map[string]float64 {
	out := make(map[string]float64, len(weights))
	for name, w := range weights {
		if _, ok := table.Category(name); !ok {
			out[name] = w
		}
	}
	return out
}

// PipelineConfig returns the assembler settings.
func (c *Config) PipelineConfig() pipeline.Config {
	cfg := pipeline.Config{
		MaxExperiences:         c.Resume.MaxExperiences,
		MaxSkills:              c.Resume.MaxSkills,
		MaxAchievementsPerRole: c.Resume.MaxAchievementsPerRole,
		TitleBonus:             c.Keywords.PMTitleBonus,
		ExactMatchBonus:        c.Keywords.KeywordMatchBonus,
	}
	if c.Resume.ApplyMinRelevance {
		cfg.MinRelevanceScore = c.Resume.MinRelevanceScore
	}
	return cfg
}

// ExportOptions returns the rendering options.
func (c *Config) ExportOptions() rendering.Options {
	return rendering.Options{
		IncludeRelevanceScores:   c.Export.IncludeRelevanceScores,
		IncludeOptimizationNotes: c.Export.IncludeOptimizationNotes,
		IncludeJobAnalysis:       c.Export.IncludeJobAnalysis,
		MarkdownStyle:            c.Export.MarkdownStyle,
		Template:                 c.Export.Template,
	}
}

// StoreConfig returns the run history settings.
func (c *Config) StoreConfig() db.Config {
	return db.Config{Driver: c.Storage.Driver, DSN: c.Storage.DSN}
}

// CacheTTL returns the fetched page cache lifetime.
func (c *Config) CacheTTL() time.Duration {
	if c.Cache.TTLMinutes <= 0 {
		return fetch.DefaultCacheTTL
	}
	return time.Duration(c.Cache.TTLMinutes) * time.Minute
}

// FetcherConfig returns the fetcher settings backed by pageCache, which may be nil.
func (c *Config) FetcherConfig(pageCache cache.Cache) *fetch.CachedFetcherConfig {
	cfg := fetch.DefaultCachedFetcherConfig()
	if c.Fetch.TimeoutSeconds > 0 {
		cfg.Options.Timeout = time.Duration(c.Fetch.TimeoutSeconds) * time.Second
	}
	if c.Fetch.UserAgent != "" {
		cfg.Options.UserAgent = c.Fetch.UserAgent
	}
	cfg.RequestsPerSecond = c.Fetch.RequestsPerSecond
	cfg.UseBrowser = c.Fetch.UseBrowser
	cfg.Cache = pageCache
	cfg.CacheTTL = c.CacheTTL()
	return cfg
}
