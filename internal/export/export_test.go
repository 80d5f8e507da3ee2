package export

import (
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unikom-riset/bibliometrics/internal/domain"
)

func sampleTables() *domain.Tables {
	return &domain.Tables{
		Authors: []domain.Author{{
			AuthorKey:   "DSN_11111111",
			DisplayName: "Budi, \"Santoso\"",
			Institution: "UNIKOM",
			Faculty:     "Fakultas Teknik dan Ilmu Komputer",
			WorksCount:  2,
		}},
		Publications: []domain.Publication{{
			PublicationKey: "PUB_22222222",
			JournalKey:     "JRN_33333333",
			Title:          "A title, with commas",
			Year:           2024,
			CitedByCount:   5,
			OpenAccess:     true,
			Indexing:       "Scopus; Crossref",
			QualityTier:    "Q2",
			ISSN:           "1111-2222",
		}},
		Authorships: []domain.Authorship{{
			AuthorKey:      "DSN_11111111",
			PublicationKey: "PUB_22222222",
			Role:           domain.RoleLeadAuthor,
			AuthorPosition: "first",
		}},
		Journals: []domain.Journal{{
			JournalKey:        "JRN_33333333",
			Name:              "Journal of Pipelines",
			ISSN:              "1111-2222",
			TotalPublications: 1,
			AvgCitations:      5,
		}},
		Metrics: []domain.AuthorMetrics{{
			AuthorKey:            "DSN_11111111",
			DisplayName:          "Budi, \"Santoso\"",
			TotalPublications:    1,
			TotalCitations:       5,
			AvgCitationsPerPaper: 5,
			OpenAccessPercentage: 100,
		}},
	}
}

func sampleAnalytics() *domain.Analytics {
	return &domain.Analytics{
		Overview:    domain.Overview{TotalAuthors: 1, TotalPublications: 1, TotalCitations: 5},
		Trend3Years: []domain.YearCount{{Year: 2024, Count: 0}, {Year: 2025, Count: 0}, {Year: 2026, Count: 1}},
		LowPerformers: []domain.AuthorSummary{
			{AuthorKey: "DSN_11111111", DisplayName: "Budi", WorksCount: 1},
		},
	}
}

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	return rows
}

func TestCSVExporterWritesAllTables(t *testing.T) {
	dir := t.TempDir()
	e := NewCSVExporter(dir)

	require.NoError(t, e.ExportTables(sampleTables()))
	require.NoError(t, e.ExportAnalytics(sampleAnalytics()))

	for _, name := range []string{
		FileAuthors, FilePublications, FileAuthorships,
		FileJournals, FileMetrics, FileLowPerformers, FileZeroPublications,
	} {
		_, err := os.Stat(filepath.Join(dir, name))
		assert.NoError(t, err, name)
	}
}

func TestCSVAuthorsContent(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, NewCSVExporter(dir).ExportTables(sampleTables()))

	rows := readCSV(t, filepath.Join(dir, FileAuthors))
	require.Len(t, rows, 2)
	assert.Equal(t, authorHeader, rows[0])
	assert.Equal(t, "DSN_11111111", rows[1][0])
	// Quotes and commas survive the round trip.
	assert.Equal(t, "Budi, \"Santoso\"", rows[1][2])
	assert.Equal(t, "2", rows[1][9])
}

func TestCSVJournalsFormatsAverages(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, NewCSVExporter(dir).ExportTables(sampleTables()))

	rows := readCSV(t, filepath.Join(dir, FileJournals))
	require.Len(t, rows, 2)
	assert.Equal(t, "5.00", rows[1][6])
}

func TestCSVEmptyTablesStillWriteHeaders(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, NewCSVExporter(dir).ExportTables(&domain.Tables{}))

	rows := readCSV(t, filepath.Join(dir, FilePublications))
	require.Len(t, rows, 1)
	assert.Equal(t, publicationHeader, rows[0])
}

func TestJSONExporter(t *testing.T) {
	dir := t.TempDir()
	e := NewJSONExporter(dir)

	require.NoError(t, e.ExportTables(sampleTables()), "tables are a no-op")
	require.NoError(t, e.ExportAnalytics(sampleAnalytics()))

	data, err := os.ReadFile(filepath.Join(dir, FileAnalytics))
	require.NoError(t, err)

	var report domain.Analytics
	require.NoError(t, json.Unmarshal(data, &report))
	assert.Equal(t, 1, report.Overview.TotalAuthors)
	assert.Len(t, report.Trend3Years, 3)
	require.Len(t, report.LowPerformers, 1)
	assert.Equal(t, "DSN_11111111", report.LowPerformers[0].AuthorKey)
}

func TestSQLiteExporter(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")
	e, err := NewSQLiteExporter(path)
	require.NoError(t, err)
	defer e.Close()

	require.NoError(t, e.ExportTables(sampleTables()))
	// Checkpoint writes are idempotent.
	require.NoError(t, e.ExportTables(sampleTables()))
	require.NoError(t, e.ExportAnalytics(sampleAnalytics()))

	var count int
	require.NoError(t, e.db.QueryRow(`SELECT COUNT(*) FROM authors`).Scan(&count))
	assert.Equal(t, 1, count)

	var title string
	require.NoError(t, e.db.QueryRow(
		`SELECT title FROM publications WHERE publication_key = ?`,
		"PUB_22222222").Scan(&title))
	assert.Equal(t, "A title, with commas", title)

	var report string
	require.NoError(t, e.db.QueryRow(`SELECT report FROM analytics`).Scan(&report))
	assert.Contains(t, report, "total_authors")
}

func TestSQLiteStoresSharedWorkOnce(t *testing.T) {
	// The legacy CSV shape may repeat a co-authored work once per collected
	// author; the relational mirror collapses those to one row per work.
	tables := sampleTables()
	tables.Publications = append(tables.Publications, tables.Publications[0])

	dir := t.TempDir()
	require.NoError(t, NewCSVExporter(dir).ExportTables(tables))
	rows := readCSV(t, filepath.Join(dir, FilePublications))
	assert.Len(t, rows, 3, "CSV keeps the repeated row")

	e, err := NewSQLiteExporter(filepath.Join(dir, "test.db"))
	require.NoError(t, err)
	defer e.Close()
	require.NoError(t, e.ExportTables(tables))

	var count int
	require.NoError(t, e.db.QueryRow(`SELECT COUNT(*) FROM publications`).Scan(&count))
	assert.Equal(t, 1, count)
}

func TestMultiExporterStopsAtFirstFailure(t *testing.T) {
	dir := t.TempDir()
	m := Multi{NewCSVExporter(dir), NewJSONExporter(dir)}

	require.NoError(t, m.ExportTables(sampleTables()))
	require.NoError(t, m.ExportAnalytics(sampleAnalytics()))

	_, err := os.Stat(filepath.Join(dir, FileAuthors))
	assert.NoError(t, err)
	_, err = os.Stat(filepath.Join(dir, FileAnalytics))
	assert.NoError(t, err)
}
