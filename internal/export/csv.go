package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/unikom-riset/bibliometrics/internal/domain"
)

// Output file names. The numbering fixes the reading order of the export
// set; the Indonesian names match the downstream reporting templates.
const (
	FileAuthors          = "1_DOSEN.csv"
	FilePublications     = "2_PUBLIKASI.csv"
	FileAuthorships      = "3_PENULIS.csv"
	FileJournals         = "4_JURNAL.csv"
	FileMetrics          = "5_METRIK.csv"
	FileLowPerformers    = "6_LOW_PERFORMERS.csv"
	FileZeroPublications = "7_ZERO_PUBLICATIONS.csv"
)

// CSVExporter writes one CSV file per table into its output directory.
type CSVExporter struct {
	dir string
}

// NewCSVExporter creates a CSV exporter writing into dir.
func NewCSVExporter(dir string) *CSVExporter {
	return &CSVExporter{dir: dir}
}

func (e *CSVExporter) ExportTables(tables *domain.Tables) error {
	if err := os.MkdirAll(e.dir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	if err := e.writeFile(FileAuthors, authorHeader, len(tables.Authors), func(i int) []string {
		return authorRow(tables.Authors[i])
	}); err != nil {
		return err
	}
	if err := e.writeFile(FilePublications, publicationHeader, len(tables.Publications), func(i int) []string {
		return publicationRow(tables.Publications[i])
	}); err != nil {
		return err
	}
	if err := e.writeFile(FileAuthorships, authorshipHeader, len(tables.Authorships), func(i int) []string {
		return authorshipRow(tables.Authorships[i])
	}); err != nil {
		return err
	}
	if err := e.writeFile(FileJournals, journalHeader, len(tables.Journals), func(i int) []string {
		return journalRow(tables.Journals[i])
	}); err != nil {
		return err
	}
	return e.writeFile(FileMetrics, metricsHeader, len(tables.Metrics), func(i int) []string {
		return metricsRow(tables.Metrics[i])
	})
}

func (e *CSVExporter) ExportAnalytics(report *domain.Analytics) error {
	if err := os.MkdirAll(e.dir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	if err := e.writeFile(FileLowPerformers, summaryHeader, len(report.LowPerformers), func(i int) []string {
		return summaryRow(report.LowPerformers[i])
	}); err != nil {
		return err
	}
	return e.writeFile(FileZeroPublications, summaryHeader, len(report.ZeroPublications), func(i int) []string {
		return summaryRow(report.ZeroPublications[i])
	})
}

func (e *CSVExporter) writeFile(name string, header []string, rows int, row func(int) []string) error {
	path := filepath.Join(e.dir, name)
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", name, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		return fmt.Errorf("failed to write %s: %w", name, err)
	}
	for i := 0; i < rows; i++ {
		if err := w.Write(row(i)); err != nil {
			return fmt.Errorf("failed to write %s: %w", name, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("failed to flush %s: %w", name, err)
	}
	return f.Close()
}

var authorHeader = []string{
	"author_key", "nidn", "name", "openalex_id", "orcid", "institution",
	"faculty", "program", "research_areas", "works_count", "cited_by_count",
	"h_index", "i10_index",
}

func authorRow(a domain.Author) []string {
	return []string{
		a.AuthorKey, a.NIDN, a.DisplayName, a.OpenAlexID, a.ORCID,
		a.Institution, a.Faculty, a.Program, a.ResearchAreas,
		itoa(a.WorksCount), itoa(a.CitedByCount), itoa(a.HIndex), itoa(a.I10Index),
	}
}

var publicationHeader = []string{
	"publication_key", "journal_key", "openalex_id", "doi", "title", "year",
	"type", "cited_by_count", "author_count", "reference_count",
	"open_access", "oa_status", "indexing", "quality_tier", "journal_name",
	"publisher", "issn", "volume", "issue", "pages", "abstract", "keywords",
	"topics", "sdgs", "grants",
}

func publicationRow(p domain.Publication) []string {
	return []string{
		p.PublicationKey, p.JournalKey, p.OpenAlexID, p.DOI, p.Title,
		itoa(p.Year), p.Type, itoa(p.CitedByCount), itoa(p.AuthorCount),
		itoa(p.ReferenceCount), strconv.FormatBool(p.OpenAccess), p.OAStatus,
		p.Indexing, p.QualityTier, p.JournalName, p.Publisher, p.ISSN,
		p.Volume, p.Issue, p.Pages, p.Abstract, p.Keywords, p.Topics,
		p.SDGs, p.Grants,
	}
}

var authorshipHeader = []string{
	"author_key", "publication_key", "role", "author_position", "institutions",
}

func authorshipRow(a domain.Authorship) []string {
	return []string{a.AuthorKey, a.PublicationKey, a.Role, a.AuthorPosition, a.Institutions}
}

var journalHeader = []string{
	"journal_key", "name", "issn", "accreditation", "indexing",
	"total_publications", "avg_citations",
}

func journalRow(j domain.Journal) []string {
	return []string{
		j.JournalKey, j.Name, j.ISSN, j.Accreditation, j.Indexing,
		itoa(j.TotalPublications), ftoa(j.AvgCitations),
	}
}

var metricsHeader = []string{
	"author_key", "nidn", "name", "openalex_id", "faculty",
	"total_publications", "total_citations", "h_index", "i10_index",
	"avg_citations_per_paper", "publications_last_5_years",
	"citations_last_5_years", "most_cited_title", "most_cited_citations",
	"first_publication_year", "latest_publication_year",
	"open_access_percentage",
}

func metricsRow(m domain.AuthorMetrics) []string {
	return []string{
		m.AuthorKey, m.NIDN, m.DisplayName, m.OpenAlexID, m.Faculty,
		itoa(m.TotalPublications), itoa(m.TotalCitations), itoa(m.HIndex),
		itoa(m.I10Index), ftoa(m.AvgCitationsPerPaper),
		itoa(m.PublicationsLast5Years), itoa(m.CitationsLast5Years),
		m.MostCitedTitle, itoa(m.MostCitedCitations),
		itoa(m.FirstPublicationYear), itoa(m.LatestPublicationYear),
		ftoa(m.OpenAccessPercentage),
	}
}

var summaryHeader = []string{"author_key", "name", "faculty", "total_works"}

func summaryRow(s domain.AuthorSummary) []string {
	return []string{s.AuthorKey, s.DisplayName, s.Faculty, itoa(s.WorksCount)}
}

func itoa(n int) string {
	return strconv.Itoa(n)
}

// ftoa formats derived averages and percentages with two decimals.
func ftoa(f float64) string {
	return strconv.FormatFloat(f, 'f', 2, 64)
}
