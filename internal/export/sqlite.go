package export

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/unikom-riset/bibliometrics/internal/domain"

	_ "modernc.org/sqlite"
)

// SQLiteExporter mirrors the tables into a SQLite database. Rows are
// upserted by key so checkpoint writes stay idempotent. The mirror is
// relational: publications are keyed by publication_key, so a work shared
// by several collected co-authors is stored once regardless of the
// configured row shape, with the co-author join carried by authorships.
// The legacy repeated-row form exists only in the CSV export.
type SQLiteExporter struct {
	db *sql.DB
}

const schema = `
CREATE TABLE IF NOT EXISTS authors (
	author_key TEXT PRIMARY KEY,
	nidn TEXT,
	name TEXT,
	openalex_id TEXT,
	orcid TEXT,
	institution TEXT,
	faculty TEXT,
	program TEXT,
	research_areas TEXT,
	works_count INTEGER,
	cited_by_count INTEGER,
	h_index INTEGER,
	i10_index INTEGER
);
CREATE TABLE IF NOT EXISTS publications (
	publication_key TEXT PRIMARY KEY,
	journal_key TEXT,
	openalex_id TEXT,
	doi TEXT,
	title TEXT,
	year INTEGER,
	type TEXT,
	cited_by_count INTEGER,
	author_count INTEGER,
	reference_count INTEGER,
	open_access INTEGER,
	oa_status TEXT,
	indexing TEXT,
	quality_tier TEXT,
	journal_name TEXT,
	publisher TEXT,
	issn TEXT,
	volume TEXT,
	issue TEXT,
	pages TEXT,
	abstract TEXT,
	keywords TEXT,
	topics TEXT,
	sdgs TEXT,
	grants TEXT
);
CREATE TABLE IF NOT EXISTS authorships (
	author_key TEXT,
	publication_key TEXT,
	role TEXT,
	author_position TEXT,
	institutions TEXT,
	PRIMARY KEY (author_key, publication_key)
);
CREATE TABLE IF NOT EXISTS journals (
	journal_key TEXT PRIMARY KEY,
	name TEXT,
	issn TEXT,
	accreditation TEXT,
	indexing TEXT,
	total_publications INTEGER,
	avg_citations REAL
);
CREATE TABLE IF NOT EXISTS author_metrics (
	author_key TEXT PRIMARY KEY,
	nidn TEXT,
	name TEXT,
	openalex_id TEXT,
	faculty TEXT,
	total_publications INTEGER,
	total_citations INTEGER,
	h_index INTEGER,
	i10_index INTEGER,
	avg_citations_per_paper REAL,
	publications_last_5_years INTEGER,
	citations_last_5_years INTEGER,
	most_cited_title TEXT,
	most_cited_citations INTEGER,
	first_publication_year INTEGER,
	latest_publication_year INTEGER,
	open_access_percentage REAL
);
CREATE TABLE IF NOT EXISTS analytics (
	id INTEGER PRIMARY KEY CHECK (id = 1),
	report TEXT
);
`

// NewSQLiteExporter opens or creates the database at path and ensures the
// schema exists. Close releases the connection.
func NewSQLiteExporter(path string) (*SQLiteExporter, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite doesn't support concurrent writes
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}
	return &SQLiteExporter{db: db}, nil
}

// Close closes the underlying database.
func (e *SQLiteExporter) Close() error {
	return e.db.Close()
}

func (e *SQLiteExporter) ExportTables(tables *domain.Tables) error {
	tx, err := e.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	for _, a := range tables.Authors {
		if _, err := tx.Exec(`INSERT OR REPLACE INTO authors VALUES
			(?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			a.AuthorKey, a.NIDN, a.DisplayName, a.OpenAlexID, a.ORCID,
			a.Institution, a.Faculty, a.Program, a.ResearchAreas,
			a.WorksCount, a.CitedByCount, a.HIndex, a.I10Index); err != nil {
			return fmt.Errorf("failed to insert author: %w", err)
		}
	}

	for _, p := range tables.Publications {
		if _, err := tx.Exec(`INSERT OR REPLACE INTO publications VALUES
			(?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			p.PublicationKey, p.JournalKey, p.OpenAlexID, p.DOI, p.Title,
			p.Year, p.Type, p.CitedByCount, p.AuthorCount, p.ReferenceCount,
			p.OpenAccess, p.OAStatus, p.Indexing, p.QualityTier,
			p.JournalName, p.Publisher, p.ISSN, p.Volume, p.Issue, p.Pages,
			p.Abstract, p.Keywords, p.Topics, p.SDGs, p.Grants); err != nil {
			return fmt.Errorf("failed to insert publication: %w", err)
		}
	}

	for _, a := range tables.Authorships {
		if _, err := tx.Exec(`INSERT OR REPLACE INTO authorships VALUES
			(?, ?, ?, ?, ?)`,
			a.AuthorKey, a.PublicationKey, a.Role, a.AuthorPosition,
			a.Institutions); err != nil {
			return fmt.Errorf("failed to insert authorship: %w", err)
		}
	}

	for _, j := range tables.Journals {
		if _, err := tx.Exec(`INSERT OR REPLACE INTO journals VALUES
			(?, ?, ?, ?, ?, ?, ?)`,
			j.JournalKey, j.Name, j.ISSN, j.Accreditation, j.Indexing,
			j.TotalPublications, j.AvgCitations); err != nil {
			return fmt.Errorf("failed to insert journal: %w", err)
		}
	}

	for _, m := range tables.Metrics {
		if _, err := tx.Exec(`INSERT OR REPLACE INTO author_metrics VALUES
			(?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			m.AuthorKey, m.NIDN, m.DisplayName, m.OpenAlexID, m.Faculty,
			m.TotalPublications, m.TotalCitations, m.HIndex, m.I10Index,
			m.AvgCitationsPerPaper, m.PublicationsLast5Years,
			m.CitationsLast5Years, m.MostCitedTitle, m.MostCitedCitations,
			m.FirstPublicationYear, m.LatestPublicationYear,
			m.OpenAccessPercentage); err != nil {
			return fmt.Errorf("failed to insert metrics: %w", err)
		}
	}

	return tx.Commit()
}

func (e *SQLiteExporter) ExportAnalytics(report *domain.Analytics) error {
	data, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("failed to marshal analytics: %w", err)
	}
	if _, err := e.db.Exec(
		`INSERT OR REPLACE INTO analytics (id, report) VALUES (1, ?)`,
		string(data)); err != nil {
		return fmt.Errorf("failed to store analytics: %w", err)
	}
	return nil
}
