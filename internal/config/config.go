// Package config provides configuration management for the bibliometric
// collector.
package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Run modes. The mode caps how many institution authors a run processes;
// production is unlimited.
const (
	ModeTest       = "test"
	ModeSample     = "sample"
	ModeProduction = "production"
)

const (
	testModeAuthorCap   = 10
	sampleModeAuthorCap = 50
)

// Name-match policies for roster-seeded runs.
const (
	// NameMatchBest takes the highest-relevance search candidate.
	NameMatchBest = "best"
	// NameMatchExact accepts only an exact display-name match.
	NameMatchExact = "exact"
)

// Config holds all configuration for the collector.
type Config struct {
	// Institution identifies the institution whose authors are collected.
	Institution InstitutionConfig `mapstructure:"institution"`
	// Pipeline contains run orchestration settings.
	Pipeline PipelineConfig `mapstructure:"pipeline"`
	// Sources contains per-source API settings.
	Sources SourcesConfig `mapstructure:"sources"`
	// Export contains output settings.
	Export ExportConfig `mapstructure:"export"`
	// Logging contains structured logging settings.
	Logging LoggingConfig `mapstructure:"logging"`
}

// InstitutionConfig identifies the collected institution.
type InstitutionConfig struct {
	// OpenAlexID is the institution's OpenAlex identifier (e.g. I4210117444).
	OpenAlexID string `mapstructure:"openalex_id"`
	// Name is the institution display name used as the affiliation fallback.
	Name string `mapstructure:"name"`
}

// PipelineConfig holds run orchestration settings.
type PipelineConfig struct {
	// Mode is the run mode (test, sample, production).
	Mode string `mapstructure:"mode"`
	// MaxAuthors overrides the mode's author cap when positive.
	MaxAuthors int `mapstructure:"max_authors"`
	// SaveInterval is how many authors to process between checkpoints.
	SaveInterval int `mapstructure:"save_interval"`
	// OneRowPerWork emits a single publication row per work instead of one
	// per collected co-author.
	OneRowPerWork bool `mapstructure:"one_row_per_work"`
	// LecturerRoster is an optional path to a roster JSON file; when set the
	// run resolves authors by name search instead of the institution listing.
	LecturerRoster string `mapstructure:"lecturer_roster"`
	// NameMatch is the roster name-search policy (best, exact).
	NameMatch string `mapstructure:"name_match"`
}

// SourcesConfig holds configuration for all upstream APIs.
type SourcesConfig struct {
	// OpenAlex contains OpenAlex API settings.
	OpenAlex OpenAlexConfig `mapstructure:"openalex"`
	// Crossref contains Crossref API settings.
	Crossref SourceConfig `mapstructure:"crossref"`
	// DOAJ contains DOAJ API settings.
	DOAJ SourceConfig `mapstructure:"doaj"`
	// DOIPages contains DOI landing-page scraper settings.
	DOIPages SourceConfig `mapstructure:"doi_pages"`
}

// SourceConfig holds settings shared by every upstream source.
type SourceConfig struct {
	// Enabled controls whether this source is consulted.
	Enabled bool `mapstructure:"enabled"`
	// BaseURL is the API base URL.
	BaseURL string `mapstructure:"base_url"`
	// Timeout is the per-request timeout.
	Timeout time.Duration `mapstructure:"timeout"`
	// MaxRetries is the retry attempts per call.
	MaxRetries int `mapstructure:"max_retries"`
	// RetryBaseDelay is the base delay for linear retry backoff.
	RetryBaseDelay time.Duration `mapstructure:"retry_base_delay"`
	// InterCallDelay is the fixed pause between consecutive calls.
	InterCallDelay time.Duration `mapstructure:"inter_call_delay"`
}

// OpenAlexConfig extends SourceConfig with pagination settings.
type OpenAlexConfig struct {
	SourceConfig `mapstructure:",squash"`
	// Email is sent as the mailto parameter for the polite pool.
	Email string `mapstructure:"email"`
	// PerPage is the page size for listing endpoints.
	PerPage int `mapstructure:"per_page"`
	// MaxPages caps cursor pagination per listing.
	MaxPages int `mapstructure:"max_pages"`
}

// ExportConfig holds output settings.
type ExportConfig struct {
	// OutputDir is the directory CSV and JSON files are written to.
	OutputDir string `mapstructure:"output_dir"`
	// CSV enables the CSV table files.
	CSV bool `mapstructure:"csv"`
	// JSON enables the analytics JSON file.
	JSON bool `mapstructure:"json"`
	// SQLite enables the SQLite database export.
	SQLite bool `mapstructure:"sqlite"`
	// SQLitePath is the database file path; defaults under OutputDir.
	SQLitePath string `mapstructure:"sqlite_path"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	// Level is the log level (trace, debug, info, warn, error, fatal, panic).
	Level string `mapstructure:"level"`
	// Format is the log format (json, console).
	Format string `mapstructure:"format"`
	// Output is the log output destination (stdout, stderr).
	Output string `mapstructure:"output"`
	// AddSource adds source file and line to log output.
	AddSource bool `mapstructure:"add_source"`
	// TimeFormat is the timestamp format.
	TimeFormat string `mapstructure:"time_format"`
}

// AuthorCap returns the maximum number of authors this run processes;
// zero means unlimited. An explicit MaxAuthors overrides the mode cap.
func (c *PipelineConfig) AuthorCap() int {
	if c.MaxAuthors > 0 {
		return c.MaxAuthors
	}
	switch c.Mode {
	case ModeTest:
		return testModeAuthorCap
	case ModeSample:
		return sampleModeAuthorCap
	default:
		return 0
	}
}

// SQLiteFile returns the SQLite database path, defaulting under OutputDir.
func (c *ExportConfig) SQLiteFile() string {
	if c.SQLitePath != "" {
		return c.SQLitePath
	}
	return filepath.Join(c.OutputDir, "bibliometrics.db")
}

// Load loads configuration from environment variables and config files.
func Load() (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetEnvPrefix("BIBLIO")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/bibliometrics")

	if err := v.ReadInConfig(); err != nil {
		var configNotFound viper.ConfigFileNotFoundError
		if !errors.As(err, &configNotFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// Config file not found is OK, we'll use env vars and defaults
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// setDefaults sets default configuration values.
func setDefaults(v *viper.Viper) {
	// Institution defaults
	v.SetDefault("institution.openalex_id", "I4210117444")
	v.SetDefault("institution.name", "Universitas Komputer Indonesia")

	// Pipeline defaults
	v.SetDefault("pipeline.mode", ModeProduction)
	v.SetDefault("pipeline.max_authors", 0)
	v.SetDefault("pipeline.save_interval", 10)
	v.SetDefault("pipeline.one_row_per_work", false)
	v.SetDefault("pipeline.lecturer_roster", "")
	v.SetDefault("pipeline.name_match", NameMatchBest)

	// OpenAlex defaults
	v.SetDefault("sources.openalex.enabled", true)
	v.SetDefault("sources.openalex.base_url", "https://api.openalex.org")
	v.SetDefault("sources.openalex.timeout", "15s")
	v.SetDefault("sources.openalex.max_retries", 3)
	v.SetDefault("sources.openalex.retry_base_delay", "1s")
	v.SetDefault("sources.openalex.inter_call_delay", "100ms")
	v.SetDefault("sources.openalex.email", "")
	v.SetDefault("sources.openalex.per_page", 200)
	v.SetDefault("sources.openalex.max_pages", 100)

	// Crossref defaults
	v.SetDefault("sources.crossref.enabled", true)
	v.SetDefault("sources.crossref.base_url", "https://api.crossref.org/works")
	v.SetDefault("sources.crossref.timeout", "15s")
	v.SetDefault("sources.crossref.max_retries", 3)
	v.SetDefault("sources.crossref.retry_base_delay", "1s")
	v.SetDefault("sources.crossref.inter_call_delay", "100ms")

	// DOAJ defaults (off unless asked for)
	v.SetDefault("sources.doaj.enabled", false)
	v.SetDefault("sources.doaj.base_url", "https://doaj.org/api/search/journals")
	v.SetDefault("sources.doaj.timeout", "15s")
	v.SetDefault("sources.doaj.max_retries", 3)
	v.SetDefault("sources.doaj.retry_base_delay", "1s")
	v.SetDefault("sources.doaj.inter_call_delay", "100ms")

	// DOI landing-page scraper defaults (off unless asked for)
	v.SetDefault("sources.doi_pages.enabled", false)
	v.SetDefault("sources.doi_pages.base_url", "https://doi.org")
	v.SetDefault("sources.doi_pages.timeout", "15s")
	v.SetDefault("sources.doi_pages.max_retries", 3)
	v.SetDefault("sources.doi_pages.retry_base_delay", "1s")
	v.SetDefault("sources.doi_pages.inter_call_delay", "100ms")

	// Export defaults
	v.SetDefault("export.output_dir", "output")
	v.SetDefault("export.csv", true)
	v.SetDefault("export.json", true)
	v.SetDefault("export.sqlite", false)
	v.SetDefault("export.sqlite_path", "")

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
	v.SetDefault("logging.output", "stdout")
	v.SetDefault("logging.add_source", false)
	v.SetDefault("logging.time_format", time.RFC3339)
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Institution.OpenAlexID == "" {
		return fmt.Errorf("institution openalex_id is required")
	}
	if c.Institution.Name == "" {
		return fmt.Errorf("institution name is required")
	}

	switch c.Pipeline.Mode {
	case ModeTest, ModeSample, ModeProduction:
	default:
		return fmt.Errorf("invalid pipeline mode: %s", c.Pipeline.Mode)
	}
	if c.Pipeline.MaxAuthors < 0 {
		return fmt.Errorf("pipeline max_authors must not be negative")
	}
	if c.Pipeline.SaveInterval <= 0 {
		return fmt.Errorf("pipeline save_interval must be positive")
	}
	switch c.Pipeline.NameMatch {
	case NameMatchBest, NameMatchExact:
	default:
		return fmt.Errorf("invalid pipeline name_match: %s", c.Pipeline.NameMatch)
	}

	if !c.Sources.OpenAlex.Enabled {
		return fmt.Errorf("the openalex source cannot be disabled")
	}
	if c.Sources.OpenAlex.PerPage <= 0 {
		return fmt.Errorf("openalex per_page must be positive")
	}
	if c.Sources.OpenAlex.MaxPages <= 0 {
		return fmt.Errorf("openalex max_pages must be positive")
	}

	if c.Export.OutputDir == "" {
		return fmt.Errorf("export output_dir is required")
	}
	if !c.Export.CSV && !c.Export.JSON && !c.Export.SQLite {
		return fmt.Errorf("at least one export format must be enabled")
	}

	validLogLevels := map[string]bool{
		"trace": true, "debug": true, "info": true,
		"warn": true, "error": true, "fatal": true, "panic": true,
	}
	if !validLogLevels[strings.ToLower(c.Logging.Level)] {
		return fmt.Errorf("invalid log level: %s", c.Logging.Level)
	}

	return nil
}
