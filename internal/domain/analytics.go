package domain

// Analytics is the corpus-wide report computed once from the final tables.
// It is recomputed fully each run and never persisted as an entity.
type Analytics struct {
	Overview Overview `json:"overview"`

	// Trend3Years always holds exactly three buckets for
	// [currentYear-2, currentYear-1, currentYear], zero-filled.
	Trend3Years []YearCount `json:"trend_3_years"`

	ByFaculty    map[string]FacultyStats    `json:"by_faculty"`
	AvgByFaculty map[string]FacultyAverages `json:"avg_by_faculty"`

	// LowPerformers lists authors with fewer than two publications dated
	// within the trailing 3-year window.
	LowPerformers []AuthorSummary `json:"low_performers"`

	// ZeroPublications lists authors whose upstream works count is zero.
	ZeroPublications []AuthorSummary `json:"zero_publications"`

	QualityDistribution QualityDistribution `json:"quality_distribution"`
}

// Overview holds the corpus totals.
type Overview struct {
	TotalAuthors             int     `json:"total_authors"`
	TotalPublications        int     `json:"total_publications"`
	TotalCitations           int     `json:"total_citations"`
	AvgPublicationsPerAuthor float64 `json:"avg_publications_per_author"`
	HighQualityPercentage    float64 `json:"high_quality_percentage"`
}

// YearCount is one bucket of the yearly trend.
type YearCount struct {
	Year  int `json:"year"`
	Count int `json:"count"`
}

// FacultyStats aggregates authors of one faculty.
type FacultyStats struct {
	Authors      int `json:"authors"`
	Publications int `json:"publications"`
	Citations    int `json:"citations"`
}

// FacultyAverages holds per-author averages within one faculty.
type FacultyAverages struct {
	AvgPublications float64 `json:"avg_publications"`
	AvgCitations    float64 `json:"avg_citations"`
}

// AuthorSummary identifies an author in analytics listings.
type AuthorSummary struct {
	AuthorKey   string `json:"author_key"`
	DisplayName string `json:"name"`
	Faculty     string `json:"faculty"`
	WorksCount  int    `json:"total_works"`
}

// QualityDistribution counts publications matching simple quality
// predicates over the full publication set. Counts are not normalized.
type QualityDistribution struct {
	ScopusIndexed      int `json:"scopus_indexed"`
	NationalAccredited int `json:"national_accredited"`
	HighlyCited        int `json:"highly_cited"`
}
