package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-tailor/internal/cache"
	"github.com/jonathan/resume-tailor/internal/db"
	"github.com/jonathan/resume-tailor/internal/keywords"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadConfig_ValidYAML(t *testing.T) {
	path := writeFile(t, "resume_agent.yaml", `
resume:
  max_experiences: 3
  max_skills: 10
keywords:
  industry: fintech
  category_weights:
    core_skills: 2.0
export:
  template: modern
log:
  level: debug
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, 3, cfg.Resume.MaxExperiences)
	assert.Equal(t, 10, cfg.Resume.MaxSkills)
	assert.Equal(t, "fintech", cfg.Keywords.Industry)
	assert.Equal(t, 2.0, cfg.Keywords.CategoryWeights["core_skills"])
	assert.Equal(t, "modern", cfg.Export.Template)
	assert.Equal(t, "debug", cfg.Log.Level)

	// untouched values keep their defaults
	assert.Equal(t, 5.0, cfg.Keywords.PMTitleBonus)
	assert.Equal(t, "sqlite", cfg.Storage.Driver)
	assert.True(t, cfg.Export.IncludeRelevanceScores)
}

func TestLoadConfig_ValidJSON(t *testing.T) {
	path := writeFile(t, "config.json", `{
		"resume": {"max_skills": 8, "max_achievements_per_role": 3},
		"storage": {"driver": "none"}
	}`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, 8, cfg.Resume.MaxSkills)
	assert.Equal(t, 3, cfg.Resume.MaxAchievementsPerRole)
	assert.Equal(t, 5, cfg.Resume.MaxExperiences)
	assert.Equal(t, "none", cfg.Storage.Driver)
}

func TestLoadConfig_InvalidJSON(t *testing.T) {
	path := writeFile(t, "config.json", `{ invalid json }`)

	cfg, err := LoadConfig(path)
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "failed to parse config JSON")
}

func TestLoadConfig_InvalidYAML(t *testing.T) {
	path := writeFile(t, "config.yaml", "resume: [unclosed")

	cfg, err := LoadConfig(path)
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "failed to parse config YAML")
}

func TestLoadConfig_FileNotFound(t *testing.T) {
	cfg, err := LoadConfig("/nonexistent/path/config.yaml")
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestLoadConfig_EmptyPath(t *testing.T) {
	cfg, err := LoadConfig("")
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "config path is empty")
}

func TestApplyEnv(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/resumes")
	t.Setenv("REDIS_URL", "redis://localhost:6379/0")
	t.Setenv("GEMINI_API_KEY", "secret")
	t.Setenv("LOG_LEVEL", "warn")

	cfg := Default()
	cfg.ApplyEnv()

	assert.Equal(t, "postgres", cfg.Storage.Driver)
	assert.Equal(t, "postgres://localhost/resumes", cfg.Storage.DSN)
	assert.Equal(t, "redis://localhost:6379/0", cfg.Cache.RedisURL)
	assert.Equal(t, "secret", cfg.LLM.APIKey)
	assert.Equal(t, "warn", cfg.Log.Level)
}

func TestApplyFlags_OnlyChangedFlags(t *testing.T) {
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	RegisterFlags(fs)
	require.NoError(t, fs.Parse([]string{"--max-skills", "7", "--industry", "healthcare", "--min-relevance", "2.5"}))

	cfg := Default()
	require.NoError(t, cfg.ApplyFlags(fs))

	assert.Equal(t, 7, cfg.Resume.MaxSkills)
	assert.Equal(t, 5, cfg.Resume.MaxExperiences)
	assert.Equal(t, "healthcare", cfg.Keywords.Industry)
	assert.Equal(t, 2.5, cfg.Resume.MinRelevanceScore)
	assert.True(t, cfg.Resume.ApplyMinRelevance)
	assert.Equal(t, "professional", cfg.Export.Template)
}

func TestApplyFlags_UnregisteredFlagsIgnored(t *testing.T) {
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.String("output", "", "")
	require.NoError(t, fs.Parse([]string{"--output", "out.md"}))

	cfg := Default()
	require.NoError(t, cfg.ApplyFlags(fs))
	assert.Equal(t, Default(), cfg)
}

func TestValidate_Defaults(t *testing.T) {
	assert.NoError(t, Default().Validate())
}

func TestValidate_Errors(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"negative experiences", func(c *Config) { c.Resume.MaxExperiences = -1 }, "max_experiences"},
		{"negative skills", func(c *Config) { c.Resume.MaxSkills = -1 }, "max_skills"},
		{"negative weight", func(c *Config) { c.Keywords.CategoryWeights["soft_skills"] = -0.1 }, "soft_skills"},
		{"unknown industry", func(c *Config) { c.Keywords.Industry = "mining" }, "unknown industry"},
		{"missing table file", func(c *Config) { c.Keywords.TableFile = "/nonexistent/table.yaml" }, "keyword table file not found"},
		{"unknown style", func(c *Config) { c.Export.MarkdownStyle = "fancy" }, "markdown style"},
		{"unknown template", func(c *Config) { c.Export.Template = "retro" }, "unknown template"},
		{"unknown driver", func(c *Config) { c.Storage.Driver = "mongo" }, "storage driver"},
		{"missing dsn", func(c *Config) { c.Storage.DSN = "" }, "storage.dsn"},
		{"negative rate", func(c *Config) { c.Fetch.RequestsPerSecond = -1 }, "requests_per_second"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestValidate_NoneDriverNeedsNoDSN(t *testing.T) {
	cfg := Default()
	cfg.Storage.Driver = "none"
	cfg.Storage.DSN = ""
	assert.NoError(t, cfg.Validate())
}

func TestKeywordTable(t *testing.T) {
	cfg := Default()
	cfg.Keywords.CustomCategories = true
	cfg.Keywords.Industry = "fintech"
	cfg.Keywords.CategoryWeights[keywords.CoreSkills] = 3.0

	table, err := cfg.KeywordTable()
	require.NoError(t, err)

	assert.Equal(t, 3.0, table.Weight(keywords.CoreSkills))
	_, ok := table.Category("industry_fintech")
	assert.True(t, ok)
	_, ok = table.Category("pm_frameworks")
	assert.True(t, ok)
}

func TestKeywordTable_FromFile(t *testing.T) {
	path := writeFile(t, "table.yaml", `
categories:
  - name: platform
    weight: 0.9
    phrases: [kubernetes, terraform]
`)
	cfg := Default()
	cfg.Keywords.TableFile = path

	table, err := cfg.KeywordTable()
	require.NoError(t, err)
	assert.Equal(t, []string{"kubernetes", "terraform"}, table.Phrases())
	assert.Equal(t, 0.9, table.Weight("platform"))
}

func TestKeywordTable_FileWeightsWinOverDefaults(t *testing.T) {
	path := writeFile(t, "table.yaml", `
categories:
  - name: core_skills
    weight: 2.0
    phrases: [roadmap]
`)
	cfg := Default()
	cfg.Keywords.TableFile = path
	cfg.Keywords.Industry = "fintech"
	cfg.Keywords.CategoryWeights["industry_fintech"] = 0.9

	table, err := cfg.KeywordTable()
	require.NoError(t, err)
	assert.Equal(t, 2.0, table.Weight("core_skills"))
	assert.Equal(t, 0.9, table.Weight("industry_fintech"))
	assert.Equal(t, 1.0, cfg.Keywords.CategoryWeights[keywords.CoreSkills], "config map is not modified")
}

func TestPipelineConfig(t *testing.T) {
	cfg := Default()
	cfg.Resume.MaxAchievementsPerRole = 4

	pc := cfg.PipelineConfig()
	assert.Equal(t, 5, pc.MaxExperiences)
	assert.Equal(t, 15, pc.MaxSkills)
	assert.Equal(t, 4, pc.MaxAchievementsPerRole)
	assert.Zero(t, pc.MinRelevanceScore)
	assert.Equal(t, 5.0, pc.TitleBonus)
	assert.Equal(t, 2.0, pc.ExactMatchBonus)

	cfg.Resume.ApplyMinRelevance = true
	assert.Equal(t, 0.5, cfg.PipelineConfig().MinRelevanceScore)
}

func TestExportOptions(t *testing.T) {
	opts := Default().ExportOptions()
	assert.True(t, opts.IncludeRelevanceScores)
	assert.True(t, opts.IncludeOptimizationNotes)
	assert.False(t, opts.IncludeJobAnalysis)
	assert.Equal(t, "github", opts.MarkdownStyle)
	assert.Equal(t, "professional", opts.Template)
}

func TestStoreConfig(t *testing.T) {
	cfg := Default()
	assert.Equal(t, db.Config{Driver: db.DriverSQLite, DSN: "resume_agent.db"}, cfg.StoreConfig())
}

func TestFetcherConfig(t *testing.T) {
	cfg := Default()
	cfg.Fetch.TimeoutSeconds = 5
	cfg.Fetch.UseBrowser = true
	cfg.Cache.TTLMinutes = 10
	pageCache := cache.NewMemory()

	fc := cfg.FetcherConfig(pageCache)
	assert.Equal(t, 5*time.Second, fc.Options.Timeout)
	assert.Equal(t, cfg.Fetch.UserAgent, fc.Options.UserAgent)
	assert.Equal(t, 1.0, fc.RequestsPerSecond)
	assert.True(t, fc.UseBrowser)
	assert.Equal(t, 10*time.Minute, fc.CacheTTL)
	assert.Same(t, pageCache, fc.Cache)

	cfg.Cache.TTLMinutes = 0
	assert.Nil(t, cfg.FetcherConfig(nil).Cache)
	assert.Equal(t, time.Hour, cfg.CacheTTL())
}
