// Package config provides configuration management for the bibliometric
// collector.
package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)
	require.NotNil(t, cfg)

	// Institution defaults
	assert.Equal(t, "I4210117444", cfg.Institution.OpenAlexID)
	assert.Equal(t, "Universitas Komputer Indonesia", cfg.Institution.Name)

	// Pipeline defaults
	assert.Equal(t, ModeProduction, cfg.Pipeline.Mode)
	assert.Equal(t, 0, cfg.Pipeline.MaxAuthors)
	assert.Equal(t, 10, cfg.Pipeline.SaveInterval)
	assert.False(t, cfg.Pipeline.OneRowPerWork)
	assert.Equal(t, NameMatchBest, cfg.Pipeline.NameMatch)

	// OpenAlex defaults
	assert.True(t, cfg.Sources.OpenAlex.Enabled)
	assert.Equal(t, "https://api.openalex.org", cfg.Sources.OpenAlex.BaseURL)
	assert.Equal(t, 15*time.Second, cfg.Sources.OpenAlex.Timeout)
	assert.Equal(t, 3, cfg.Sources.OpenAlex.MaxRetries)
	assert.Equal(t, time.Second, cfg.Sources.OpenAlex.RetryBaseDelay)
	assert.Equal(t, 100*time.Millisecond, cfg.Sources.OpenAlex.InterCallDelay)
	assert.Equal(t, 200, cfg.Sources.OpenAlex.PerPage)
	assert.Equal(t, 100, cfg.Sources.OpenAlex.MaxPages)

	// Crossref on, optional sources off
	assert.True(t, cfg.Sources.Crossref.Enabled)
	assert.False(t, cfg.Sources.DOAJ.Enabled)
	assert.False(t, cfg.Sources.DOIPages.Enabled)

	// Export defaults
	assert.Equal(t, "output", cfg.Export.OutputDir)
	assert.True(t, cfg.Export.CSV)
	assert.True(t, cfg.Export.JSON)
	assert.False(t, cfg.Export.SQLite)

	// Logging defaults
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
}

func TestLoad_EnvironmentOverride(t *testing.T) {
	t.Setenv("BIBLIO_INSTITUTION_OPENALEX_ID", "I999")
	t.Setenv("BIBLIO_PIPELINE_MODE", "sample")
	t.Setenv("BIBLIO_PIPELINE_SAVE_INTERVAL", "25")
	t.Setenv("BIBLIO_SOURCES_OPENALEX_EMAIL", "riset@example.ac.id")
	t.Setenv("BIBLIO_SOURCES_DOAJ_ENABLED", "true")
	t.Setenv("BIBLIO_EXPORT_OUTPUT_DIR", "/tmp/biblio-out")
	t.Setenv("BIBLIO_LOGGING_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "I999", cfg.Institution.OpenAlexID)
	assert.Equal(t, ModeSample, cfg.Pipeline.Mode)
	assert.Equal(t, 25, cfg.Pipeline.SaveInterval)
	assert.Equal(t, "riset@example.ac.id", cfg.Sources.OpenAlex.Email)
	assert.True(t, cfg.Sources.DOAJ.Enabled)
	assert.Equal(t, "/tmp/biblio-out", cfg.Export.OutputDir)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestValidate(t *testing.T) {
	valid := func(t *testing.T) *Config {
		t.Helper()
		cfg, err := Load()
		require.NoError(t, err)
		return cfg
	}

	tests := []struct {
		name        string
		modifyFunc  func(*Config)
		expectedErr string
	}{
		{
			name:        "missing institution id",
			modifyFunc:  func(c *Config) { c.Institution.OpenAlexID = "" },
			expectedErr: "institution openalex_id is required",
		},
		{
			name:        "invalid mode",
			modifyFunc:  func(c *Config) { c.Pipeline.Mode = "dry-run" },
			expectedErr: "invalid pipeline mode",
		},
		{
			name:        "negative max authors",
			modifyFunc:  func(c *Config) { c.Pipeline.MaxAuthors = -1 },
			expectedErr: "max_authors must not be negative",
		},
		{
			name:        "zero save interval",
			modifyFunc:  func(c *Config) { c.Pipeline.SaveInterval = 0 },
			expectedErr: "save_interval must be positive",
		},
		{
			name:        "invalid name match",
			modifyFunc:  func(c *Config) { c.Pipeline.NameMatch = "fuzzy" },
			expectedErr: "invalid pipeline name_match",
		},
		{
			name:        "openalex cannot be disabled",
			modifyFunc:  func(c *Config) { c.Sources.OpenAlex.Enabled = false },
			expectedErr: "openalex source cannot be disabled",
		},
		{
			name:        "zero per page",
			modifyFunc:  func(c *Config) { c.Sources.OpenAlex.PerPage = 0 },
			expectedErr: "per_page must be positive",
		},
		{
			name: "no export format",
			modifyFunc: func(c *Config) {
				c.Export.CSV = false
				c.Export.JSON = false
				c.Export.SQLite = false
			},
			expectedErr: "at least one export format",
		},
		{
			name:        "invalid log level",
			modifyFunc:  func(c *Config) { c.Logging.Level = "verbose" },
			expectedErr: "invalid log level",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid(t)
			tt.modifyFunc(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.expectedErr)
		})
	}
}

func TestAuthorCap(t *testing.T) {
	tests := []struct {
		name string
		cfg  PipelineConfig
		want int
	}{
		{"test mode", PipelineConfig{Mode: ModeTest}, 10},
		{"sample mode", PipelineConfig{Mode: ModeSample}, 50},
		{"production unlimited", PipelineConfig{Mode: ModeProduction}, 0},
		{"explicit override wins", PipelineConfig{Mode: ModeTest, MaxAuthors: 3}, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.cfg.AuthorCap())
		})
	}
}

func TestSQLiteFile(t *testing.T) {
	c := ExportConfig{OutputDir: "out"}
	assert.Equal(t, "out/bibliometrics.db", c.SQLiteFile())

	c.SQLitePath = "/data/custom.db"
	assert.Equal(t, "/data/custom.db", c.SQLiteFile())
}
