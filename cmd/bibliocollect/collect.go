package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/unikom-riset/bibliometrics/internal/classify"
	"github.com/unikom-riset/bibliometrics/internal/config"
	"github.com/unikom-riset/bibliometrics/internal/export"
	"github.com/unikom-riset/bibliometrics/internal/lecturers"
	"github.com/unikom-riset/bibliometrics/internal/observability"
	"github.com/unikom-riset/bibliometrics/internal/pipeline"
	"github.com/unikom-riset/bibliometrics/internal/sources"
	"github.com/unikom-riset/bibliometrics/internal/sources/crossref"
	"github.com/unikom-riset/bibliometrics/internal/sources/doaj"
	"github.com/unikom-riset/bibliometrics/internal/sources/doipage"
	"github.com/unikom-riset/bibliometrics/internal/sources/openalex"
)

var (
	flagMode       string
	flagMaxAuthors int
	flagOutput     string
	flagRoster     string
	flagNameMatch  string
	flagScrapeDOI  bool
	flagOneRow     bool
)

func init() {
	collectCmd.Flags().StringVar(&flagMode, "mode", "", "run mode: test, sample or production")
	collectCmd.Flags().IntVar(&flagMaxAuthors, "max-authors", 0, "cap on authors processed (overrides the mode cap)")
	collectCmd.Flags().StringVar(&flagOutput, "output", "", "output directory")
	collectCmd.Flags().StringVar(&flagRoster, "roster", "", "lecturer roster JSON; seeds the run by name search")
	collectCmd.Flags().StringVar(&flagNameMatch, "name-match", "", "roster name-search policy: best or exact")
	collectCmd.Flags().BoolVar(&flagScrapeDOI, "scrape-doi", false, "scrape DOI landing pages for missing fields")
	collectCmd.Flags().BoolVar(&flagOneRow, "one-row-per-work", false, "emit one publication row per work instead of one per co-author")
	rootCmd.AddCommand(collectCmd)
}

var collectCmd = &cobra.Command{
	Use:   "collect",
	Short: "Run a full collection",
	Long: `Run a full collection: list or resolve the institution's authors,
fetch and enrich their works, aggregate journals, compute analytics and
write the export set.

Examples:
  bibliocollect collect --mode test
  bibliocollect collect --mode production --output ./output
  bibliocollect collect --roster dosen.json --scrape-doi`,
	Args: cobra.NoArgs,
	RunE: runCollect,
}

func runCollect(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	applyFlags(cmd, cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger := observability.NewLogger(observability.LoggingConfig{
		Level:      cfg.Logging.Level,
		Format:     cfg.Logging.Format,
		Output:     cfg.Logging.Output,
		AddSource:  cfg.Logging.AddSource,
		TimeFormat: cfg.Logging.TimeFormat,
	})

	p, cleanup, err := buildPipeline(cfg, logger)
	if err != nil {
		return err
	}
	defer cleanup()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	result, err := p.Run(ctx)
	if err != nil {
		return err
	}

	fmt.Printf("run %s: %d authors processed, %d skipped, %d publications, output in %s\n",
		result.RunID, result.AuthorsProcessed, result.AuthorsSkipped,
		len(result.Tables.Publications), cfg.Export.OutputDir)
	return nil
}

func applyFlags(cmd *cobra.Command, cfg *config.Config) {
	if cmd.Flags().Changed("mode") {
		cfg.Pipeline.Mode = flagMode
	}
	if cmd.Flags().Changed("max-authors") {
		cfg.Pipeline.MaxAuthors = flagMaxAuthors
	}
	if cmd.Flags().Changed("output") {
		cfg.Export.OutputDir = flagOutput
	}
	if cmd.Flags().Changed("roster") {
		cfg.Pipeline.LecturerRoster = flagRoster
	}
	if cmd.Flags().Changed("name-match") {
		cfg.Pipeline.NameMatch = flagNameMatch
	}
	if cmd.Flags().Changed("scrape-doi") {
		cfg.Sources.DOIPages.Enabled = flagScrapeDOI
	}
	if cmd.Flags().Changed("one-row-per-work") {
		cfg.Pipeline.OneRowPerWork = flagOneRow
	}
}

func buildPipeline(cfg *config.Config, logger zerolog.Logger) (*pipeline.Pipeline, func(), error) {
	openalexClient := openalex.New(openalex.Config{
		BaseURL:       cfg.Sources.OpenAlex.BaseURL,
		InstitutionID: cfg.Institution.OpenAlexID,
		Email:         cfg.Sources.OpenAlex.Email,
		PerPage:       cfg.Sources.OpenAlex.PerPage,
		MaxPages:      cfg.Sources.OpenAlex.MaxPages,
	}, newFetcher(cfg.Sources.OpenAlex.SourceConfig, logger), logger)

	var doiLookup pipeline.DOILookup
	if cfg.Sources.Crossref.Enabled {
		doiLookup = crossref.New(crossref.Config{BaseURL: cfg.Sources.Crossref.BaseURL},
			newFetcher(cfg.Sources.Crossref, logger), logger)
	}

	var doajLookup pipeline.DOAJLookup
	if cfg.Sources.DOAJ.Enabled {
		doajLookup = doaj.New(doaj.Config{
			BaseURL: cfg.Sources.DOAJ.BaseURL,
			Enabled: true,
		}, newFetcher(cfg.Sources.DOAJ, logger), logger)
	}

	var scraper pipeline.PageScraper
	if cfg.Sources.DOIPages.Enabled {
		scraper = doipage.New(newFetcher(cfg.Sources.DOIPages, logger), logger)
	}

	exporter, cleanup, err := buildExporter(cfg)
	if err != nil {
		return nil, nil, err
	}

	opts := pipeline.Options{
		Mode:          cfg.Pipeline.Mode,
		MaxAuthors:    cfg.Pipeline.AuthorCap(),
		SaveInterval:  cfg.Pipeline.SaveInterval,
		OneRowPerWork: cfg.Pipeline.OneRowPerWork,
		Institution:   cfg.Institution.Name,
		CurrentYear:   time.Now().Year(),
	}
	if cfg.Pipeline.LecturerRoster != "" {
		records, err := lecturers.Load(cfg.Pipeline.LecturerRoster)
		if err != nil {
			cleanup()
			return nil, nil, err
		}
		opts.Roster = records
		if cfg.Pipeline.NameMatch == config.NameMatchExact {
			opts.Disambiguator = openalex.ExactMatchOnly{}
		}
	}

	p := pipeline.New(openalexClient, doiLookup, doajLookup, scraper,
		classify.Defaults(time.Now().Year()), exporter, opts, logger)
	return p, cleanup, nil
}

func newFetcher(src config.SourceConfig, logger zerolog.Logger) *sources.Client {
	return sources.NewClient(sources.ClientConfig{
		Timeout:        src.Timeout,
		MaxRetries:     src.MaxRetries,
		RetryBaseDelay: src.RetryBaseDelay,
		InterCallDelay: src.InterCallDelay,
	}, logger)
}

func buildExporter(cfg *config.Config) (export.Exporter, func(), error) {
	var multi export.Multi
	cleanup := func() {}

	if cfg.Export.CSV {
		multi = append(multi, export.NewCSVExporter(cfg.Export.OutputDir))
	}
	if cfg.Export.JSON {
		multi = append(multi, export.NewJSONExporter(cfg.Export.OutputDir))
	}
	if cfg.Export.SQLite {
		if err := os.MkdirAll(cfg.Export.OutputDir, 0o755); err != nil {
			return nil, nil, fmt.Errorf("failed to create output directory: %w", err)
		}
		sqlite, err := export.NewSQLiteExporter(cfg.Export.SQLiteFile())
		if err != nil {
			return nil, nil, err
		}
		multi = append(multi, sqlite)
		cleanup = func() { sqlite.Close() }
	}
	return multi, cleanup, nil
}
