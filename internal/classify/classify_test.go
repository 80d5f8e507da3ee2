package classify

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFacultyFirstMatchWins(t *testing.T) {
	table := DefaultFacultyTable()

	tests := []struct {
		name     string
		concepts []string
		want     string
	}{
		{"computer science", []string{"Computer Science"}, "Fakultas Teknik dan Ilmu Komputer"},
		{"substring containment", []string{"Theoretical Computer Science"}, "Fakultas Teknik dan Ilmu Komputer"},
		{"only top concept inspected", []string{"Underwater Basket Weaving", "Computer Science"}, FacultyUnclassified},
		{"economics", []string{"Economics"}, "Fakultas Ekonomi dan Bisnis"},
		{"law", []string{"Law"}, "Fakultas Hukum"},
		{"case sensitive", []string{"computer science"}, FacultyUnclassified},
		{"empty", nil, FacultyUnclassified},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, table.Faculty(tt.concepts))
		})
	}
}

func TestProgramScopedByFaculty(t *testing.T) {
	table := DefaultProgramTable()

	assert.Equal(t, "Teknik Informatika",
		table.Program([]string{"Computer Science"}, "Fakultas Teknik dan Ilmu Komputer"))
	assert.Equal(t, "Manajemen",
		table.Program([]string{"Management"}, "Fakultas Ekonomi dan Bisnis"))
	// A keyword outside its faculty scope does not match.
	assert.Equal(t, ProgramUnclassified,
		table.Program([]string{"Management"}, "Fakultas Hukum"))
	assert.Equal(t, ProgramUnclassified, table.Program(nil, "Fakultas Hukum"))
}

func TestIndexingFromSourceIDs(t *testing.T) {
	c := SourceIDIndexing{}

	got := c.Indexing([]string{
		"https://openalex.org/S123-scopus",
		"https://openalex.org/S456-PubMed",
	}, false, false)
	assert.Equal(t, "Scopus; PubMed", got)
}

func TestIndexingAddsCrossrefForDOI(t *testing.T) {
	c := SourceIDIndexing{}
	assert.Equal(t, "Crossref", c.Indexing(nil, true, false))
}

func TestIndexingAddsDOAJWhenListed(t *testing.T) {
	c := SourceIDIndexing{}
	assert.Equal(t, "DOAJ", c.Indexing(nil, false, true))
}

func TestIndexingNoneSentinel(t *testing.T) {
	c := SourceIDIndexing{}
	assert.Equal(t, IndexingNone, c.Indexing(nil, false, false))
	assert.Equal(t, IndexingNone, c.Indexing([]string{"https://openalex.org/S1"}, false, false))
}

func TestIndexingGoogleScholarAssumption(t *testing.T) {
	c := SourceIDIndexing{AssumeGoogleScholar: true}
	assert.Equal(t, "Google Scholar", c.Indexing(nil, false, false))
	assert.Equal(t, "Crossref; Google Scholar", c.Indexing(nil, true, false))
}

func TestQualityTierBoundaries(t *testing.T) {
	const currentYear = 2026
	c := CitationAgeQuality{CurrentYear: currentYear}

	tests := []struct {
		name      string
		citations int
		year      int
		oa        bool
		want      string
	}{
		{"q1 just above threshold", 21, currentYear - 1, false, TierQ1},
		{"q1 boundary not inclusive", 20, currentYear - 1, false, TierQ2},
		{"q2", 11, currentYear - 1, false, TierQ2},
		{"q3", 6, currentYear - 1, false, TierQ3},
		{"q4", 1, currentYear - 1, false, TierQ4},
		{"zero citations unranked", 0, currentYear, true, TierUnranked},
		{"age normalization", 30, currentYear - 10, false, TierQ4},
		{"current year no divide by zero", 25, currentYear, false, TierQ1},
		{"missing year treated as new", 25, 0, false, TierQ1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, c.Quality(tt.citations, tt.year, tt.oa))
		})
	}
}

func TestAccreditationTiers(t *testing.T) {
	c := IndexingAccreditation{}

	tests := []struct {
		name     string
		indexing string
		issn     string
		want     string
	}{
		{"scopus wins", "Scopus; Crossref", "1234-5678", AccreditationInternationalReputable},
		{"wos wins", "WoS", "", AccreditationInternationalReputable},
		{"doaj second", "DOAJ; Crossref", "1234-5678", AccreditationInternational},
		{"issn pattern national", "Crossref", "1234-5678", AccreditationNational},
		{"issn with check digit X", "None", "2088-543X", AccreditationNational},
		{"issn set any member", "Crossref", "invalid; 1234-5678", AccreditationNational},
		{"nothing", "None", "not-an-issn", AccreditationNone},
		{"empty", "", "", AccreditationNone},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, c.Accreditation(tt.indexing, tt.issn))
		})
	}
}
