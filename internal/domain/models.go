// Package domain defines the entities produced by a collection run and the
// pure functions that derive their identifiers.
package domain

// Author roles derived from the author's position in a work's authorship
// list.
const (
	RoleLeadAuthor          = "lead author"
	RoleCorrespondingAuthor = "corresponding author"
	RoleCoAuthor            = "co-author"
)

// Author is one university researcher as returned by the author listing.
// Authors are created once per distinct OpenAlex author and never mutated
// afterwards within a run.
type Author struct {
	// AuthorKey is the derived local key, DeriveKey("DSN", OpenAlexID).
	// It is the foreign key used by Authorship rows.
	AuthorKey string

	// OpenAlexID is the canonical primary identifier (short form, e.g. A5012345678).
	OpenAlexID string

	// ORCID is a secondary identifier; frequently absent, never used as a key.
	ORCID string

	// NIDN is the national lecturer registration number, present only when
	// the run was seeded from a lecturer roster.
	NIDN string

	DisplayName string
	Institution string

	// Faculty and Program are heuristic classifications from the author's
	// top-ranked concept label.
	Faculty string
	Program string

	// ResearchAreas is the top-5 concept display names, "; "-joined.
	ResearchAreas string

	// Metrics are consumed as given by the upstream source, not recomputed.
	WorksCount   int
	CitedByCount int
	HIndex       int
	I10Index     int
}

// Publication is one collected work. Depending on configuration a work
// co-authored by several collected authors appears either once per
// (author, work) pair or once globally with the join expressed by
// Authorship rows.
type Publication struct {
	// PublicationKey is DeriveKey("PUB", OpenAlexID).
	PublicationKey string

	// JournalKey is DeriveKey("JRN", JournalName, ISSN) — name and ISSN are
	// the only identity OpenAlex and Crossref share.
	JournalKey string

	OpenAlexID string

	// DOI is the normalized bare DOI, empty when the work has none.
	DOI string

	Title string
	Year  int
	Type  string

	CitedByCount   int
	AuthorCount    int
	ReferenceCount int

	OpenAccess bool
	OAStatus   string

	// Indexing is the "; "-joined indexing set, or "None" when nothing
	// matched (sentinel, so downstream joins never see an empty string).
	Indexing string

	// QualityTier is the estimated quartile (Q1..Q4, Unranked). It is a
	// citation-by-age heuristic, not a true journal-quartile lookup.
	QualityTier string

	// Reconciled bibliographic fields. Crossref overrides OpenAlex for
	// Publisher, Volume, Issue and Pages; ISSN is the union of both.
	JournalName string
	Publisher   string
	ISSN        string
	Volume      string
	Issue       string
	Pages       string

	Abstract string
	Keywords string
	Topics   string
	SDGs     string
	Grants   string
}

// Authorship links an Author to a Publication. A row exists only when the
// author's display name was found (case-insensitively) in the work's
// authorship list.
type Authorship struct {
	AuthorKey      string
	PublicationKey string

	// Role is derived from AuthorPosition: first -> lead author,
	// last -> corresponding author, otherwise co-author.
	Role           string
	AuthorPosition string

	// Institutions is the "; "-joined affiliation list from the authorship entry.
	Institutions string
}

// Journal is materialized after all publications are collected by folding
// over every publication sharing the same JournalKey.
type Journal struct {
	JournalKey string
	Name       string

	// ISSN is the deduplicated union of every ISSN seen for this journal.
	ISSN string

	// Accreditation is the locally derived tier, distinct from any official
	// accreditation body's ranking.
	Accreditation string

	Indexing          string
	TotalPublications int
	AvgCitations      float64
}

// AuthorMetrics is the per-author derived statistics row, folded over that
// author's publications at the end of the run.
type AuthorMetrics struct {
	AuthorKey   string
	NIDN        string
	DisplayName string
	OpenAlexID  string
	Faculty     string

	TotalPublications int
	TotalCitations    int
	HIndex            int
	I10Index          int

	AvgCitationsPerPaper float64

	PublicationsLast5Years int
	CitationsLast5Years    int

	// MostCitedTitle is the flagship publication; ties break to the first
	// encountered in insertion order.
	MostCitedTitle     string
	MostCitedCitations int

	FirstPublicationYear  int
	LatestPublicationYear int

	OpenAccessPercentage float64
}

// Tables is the full relational-like dataset of a run, handed to exporters.
type Tables struct {
	Authors      []Author
	Publications []Publication
	Authorships  []Authorship
	Journals     []Journal
	Metrics      []AuthorMetrics
}

// Lecturer is one roster record supplied externally when the run is seeded
// by name search rather than an institution filter.
type Lecturer struct {
	FullName string `json:"fullname" validate:"required"`
	NIDN     string `json:"nidn" validate:"required"`
}
