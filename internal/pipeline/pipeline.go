// Package pipeline orchestrates a collection run: author discovery, work
// enrichment, journal aggregation, analytics and export.
package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/unikom-riset/bibliometrics/internal/analytics"
	"github.com/unikom-riset/bibliometrics/internal/classify"
	"github.com/unikom-riset/bibliometrics/internal/domain"
	"github.com/unikom-riset/bibliometrics/internal/export"
	"github.com/unikom-riset/bibliometrics/internal/observability"
	"github.com/unikom-riset/bibliometrics/internal/reconcile"
	"github.com/unikom-riset/bibliometrics/internal/sources/crossref"
	"github.com/unikom-riset/bibliometrics/internal/sources/doipage"
	"github.com/unikom-riset/bibliometrics/internal/sources/openalex"
)

// Phase names a pipeline stage, mostly for logging.
type Phase string

const (
	PhaseFetchingAuthors     Phase = "fetching_authors"
	PhaseProcessingAuthors   Phase = "processing_authors"
	PhaseAggregatingJournals Phase = "aggregating_journals"
	PhaseComputingAnalytics  Phase = "computing_analytics"
	PhaseExporting           Phase = "exporting"
	PhaseDone                Phase = "done"
)

// AuthorSource discovers authors and lists their works.
type AuthorSource interface {
	ListInstitutionAuthors(ctx context.Context) ([]openalex.Author, error)
	SearchAuthorByName(ctx context.Context, name string, pick openalex.Disambiguator) (*openalex.Author, error)
	ListAuthorWorks(ctx context.Context, authorID string) ([]openalex.Work, error)
}

// DOILookup resolves a DOI to its Crossref record.
type DOILookup interface {
	GetByDOI(ctx context.Context, doi string) (*crossref.Work, error)
}

// DOAJLookup reports whether an ISSN belongs to a DOAJ-listed journal.
type DOAJLookup interface {
	HasJournal(ctx context.Context, issn string) bool
}

// PageScraper extracts supplementary fields from a DOI landing page.
type PageScraper interface {
	Scrape(ctx context.Context, doi string) *doipage.PageRecord
}

// Options holds the run parameters.
type Options struct {
	// Mode is the run mode label carried into logs.
	Mode string
	// MaxAuthors caps how many authors are processed; zero is unlimited.
	MaxAuthors int
	// SaveInterval is how many authors to process between checkpoints.
	SaveInterval int
	// OneRowPerWork emits a single publication row per work instead of one
	// per collected co-author.
	OneRowPerWork bool
	// Roster seeds the run by name search when non-empty; otherwise the
	// institution listing is used.
	Roster []domain.Lecturer
	// Disambiguator picks one author from a name search's candidates.
	// Nil defaults to openalex.AcceptBestMatch.
	Disambiguator openalex.Disambiguator
	// Institution is the affiliation fallback for authors without one.
	Institution string
	// CurrentYear anchors the age-sensitive statistics.
	CurrentYear int
}

// Pipeline runs a full collection. The optional sources may be nil.
type Pipeline struct {
	authors  AuthorSource
	crossref DOILookup
	doaj     DOAJLookup
	pages    PageScraper

	cls      classify.Set
	exporter export.Exporter
	opts     Options
	log      zerolog.Logger
}

// Result is the output of a completed run.
type Result struct {
	RunID     string
	Tables    *domain.Tables
	Analytics *domain.Analytics

	AuthorsProcessed int
	AuthorsSkipped   int
}

// New assembles a pipeline. authors and exporter are required; crossref,
// doaj and pages may be nil to skip those sources.
func New(authors AuthorSource, cr DOILookup, doaj DOAJLookup, pages PageScraper,
	cls classify.Set, exporter export.Exporter, opts Options, log zerolog.Logger) *Pipeline {
	if opts.CurrentYear == 0 {
		opts.CurrentYear = time.Now().Year()
	}
	if opts.SaveInterval <= 0 {
		opts.SaveInterval = 10
	}
	if opts.Disambiguator == nil {
		opts.Disambiguator = openalex.AcceptBestMatch{}
	}
	return &Pipeline{
		authors:  authors,
		crossref: cr,
		doaj:     doaj,
		pages:    pages,
		cls:      cls,
		exporter: exporter,
		opts:     opts,
		log:      log,
	}
}

// Run executes the full pipeline. A failing author is logged and skipped;
// only discovery and export failures abort the run.
func (p *Pipeline) Run(ctx context.Context) (*Result, error) {
	runID := uuid.NewString()
	log := observability.WithRunContext(p.log, runID, p.opts.Mode)
	ctx = observability.WithRunID(ctx, runID)
	ctx = observability.WithMode(ctx, p.opts.Mode)

	log.Info().Str("phase", string(PhaseFetchingAuthors)).Msg("collection started")
	candidates, err := p.discoverAuthors(ctx, log)
	if err != nil {
		return nil, err
	}
	if len(candidates) == 0 {
		return nil, domain.ErrNoAuthors
	}
	if limit := p.opts.MaxAuthors; limit > 0 && len(candidates) > limit {
		log.Info().Int("cap", limit).Int("found", len(candidates)).Msg("capping author list")
		candidates = candidates[:limit]
	}

	result := &Result{RunID: runID, Tables: &domain.Tables{}}

	log.Info().Str("phase", string(PhaseProcessingAuthors)).
		Int("authors", len(candidates)).Msg("processing authors")
	seenPubs := make(map[string]bool)
	seenLinks := make(map[string]bool)
	for i, candidate := range candidates {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		if err := p.processAuthor(ctx, log, candidate, result.Tables, seenPubs, seenLinks); err != nil {
			authorLog := observability.WithAuthorContext(log, "", candidate.author.DisplayName)
			authorLog.Err(err).Msg("author failed, skipping")
			result.AuthorsSkipped++
		} else {
			result.AuthorsProcessed++
		}

		if (i+1)%p.opts.SaveInterval == 0 {
			if err := p.exporter.ExportTables(result.Tables); err != nil {
				log.Warn().Err(err).Int("processed", i+1).Msg("checkpoint failed")
			} else {
				log.Info().Int("processed", i+1).Msg("checkpoint saved")
			}
		}
	}

	log.Info().Str("phase", string(PhaseAggregatingJournals)).Msg("aggregating journals")
	result.Tables.Journals = analytics.Journals(result.Tables.Publications, p.cls.Accreditation)

	log.Info().Str("phase", string(PhaseComputingAnalytics)).Msg("computing analytics")
	report := analytics.Compute(result.Tables, p.cls.Accreditation, p.opts.CurrentYear)
	result.Analytics = &report

	log.Info().Str("phase", string(PhaseExporting)).Msg("exporting")
	if err := p.exporter.ExportTables(result.Tables); err != nil {
		return nil, fmt.Errorf("failed to export tables: %w", err)
	}
	if err := p.exporter.ExportAnalytics(result.Analytics); err != nil {
		return nil, fmt.Errorf("failed to export analytics: %w", err)
	}

	log.Info().Str("phase", string(PhaseDone)).
		Int("authors_processed", result.AuthorsProcessed).
		Int("authors_skipped", result.AuthorsSkipped).
		Int("publications", len(result.Tables.Publications)).
		Msg("collection finished")
	return result, nil
}

// candidate pairs a discovered author with its optional roster record.
type candidate struct {
	author openalex.Author
	nidn   string
}

func (p *Pipeline) discoverAuthors(ctx context.Context, log zerolog.Logger) ([]candidate, error) {
	if len(p.opts.Roster) == 0 {
		authors, err := p.authors.ListInstitutionAuthors(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list institution authors: %w", err)
		}
		candidates := make([]candidate, 0, len(authors))
		for _, a := range authors {
			candidates = append(candidates, candidate{author: a})
		}
		return candidates, nil
	}

	var candidates []candidate
	for _, lecturer := range p.opts.Roster {
		found, err := p.authors.SearchAuthorByName(ctx, lecturer.FullName, p.opts.Disambiguator)
		if err != nil {
			log.Warn().Err(err).Str("name", lecturer.FullName).Msg("name search failed, skipping")
			continue
		}
		if found == nil {
			log.Warn().Str("name", lecturer.FullName).Msg("no author match, skipping")
			continue
		}
		candidates = append(candidates, candidate{author: *found, nidn: lecturer.NIDN})
	}
	return candidates, nil
}

func (p *Pipeline) processAuthor(ctx context.Context, log zerolog.Logger, c candidate,
	tables *domain.Tables, seenPubs, seenLinks map[string]bool) error {

	author := reconcile.Author(&c.author, p.opts.Institution, p.cls)
	author.NIDN = c.nidn
	alog := observability.WithAuthorContext(log, author.AuthorKey, author.DisplayName)

	works, err := p.authors.ListAuthorWorks(ctx, c.author.ID)
	if err != nil {
		return err
	}
	alog.Debug().Int("works", len(works)).Msg("fetched works")

	var authorPubs []domain.Publication
	for i := range works {
		work := &works[i]
		pub := p.enrichWork(ctx, work)
		authorPubs = append(authorPubs, pub)

		// Without one_row_per_work every collected co-author contributes
		// a row, matching the legacy export shape.
		if !p.opts.OneRowPerWork || !seenPubs[pub.PublicationKey] {
			tables.Publications = append(tables.Publications, pub)
		}
		seenPubs[pub.PublicationKey] = true

		if link := reconcile.Authorship(work, author.AuthorKey, author.DisplayName); link != nil {
			pairKey := link.AuthorKey + "|" + link.PublicationKey
			if !seenLinks[pairKey] {
				tables.Authorships = append(tables.Authorships, *link)
				seenLinks[pairKey] = true
			}
		}
	}

	tables.Authors = append(tables.Authors, author)
	tables.Metrics = append(tables.Metrics,
		analytics.AuthorMetrics(author, authorPubs, p.opts.CurrentYear))
	return nil
}

// enrichWork consults the optional sources for one work and reconciles the
// publication row.
func (p *Pipeline) enrichWork(ctx context.Context, work *openalex.Work) domain.Publication {
	doi := domain.NormalizeDOI(work.DOI)

	var cr *crossref.Work
	if p.crossref != nil && doi != "" {
		// Lookup failures degrade to OpenAlex-only data.
		cr, _ = p.crossref.GetByDOI(ctx, doi)
	}

	inDOAJ := false
	if p.doaj != nil {
		if issn := primaryISSN(work); issn != "" {
			inDOAJ = p.doaj.HasJournal(ctx, issn)
		}
	}

	var page *doipage.PageRecord
	if p.pages != nil && doi != "" {
		page = p.pages.Scrape(ctx, doi)
	}

	return reconcile.Publication(work, cr, page, inDOAJ, p.cls)
}

func primaryISSN(work *openalex.Work) string {
	if work.PrimaryLocation == nil || work.PrimaryLocation.Source == nil {
		return ""
	}
	src := work.PrimaryLocation.Source
	if len(src.ISSN) > 0 {
		return src.ISSN[0]
	}
	return src.ISSNL
}
