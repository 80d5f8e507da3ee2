// Package classify derives categorical attributes (faculty, program,
// indexing set, quality tier, accreditation tier) from fuzzy signals.
//
// Every classifier here is a heuristic approximation over noisy data, not
// ground truth: quality tiers come from age-normalized citations rather
// than a real journal-quartile lookup, and accreditation tiers from
// indexing membership and an ISSN pattern rather than an accreditation
// body. Each classifier is a single-method strategy so a better
// implementation can replace it without touching the reconciler.
package classify

// Sentinels returned when no signal matches. Downstream joins rely on
// these never being empty strings.
const (
	FacultyUnclassified = "Unclassified"
	ProgramUnclassified = "Unclassified"
	IndexingNone        = "None"
	TierUnranked        = "Unranked"
)

// FacultyClassifier derives a faculty from an author's ordered concept labels.
type FacultyClassifier interface {
	Faculty(concepts []string) string
}

// ProgramClassifier derives a study program from the concept labels and the
// already-derived faculty.
type ProgramClassifier interface {
	Program(concepts []string, faculty string) string
}

// IndexingClassifier derives the indexing set of a publication from its
// hosting source IDs and enrichment signals.
type IndexingClassifier interface {
	Indexing(sourceIDs []string, hasDOI, inDOAJ bool) string
}

// QualityClassifier estimates a quality tier for a publication.
type QualityClassifier interface {
	Quality(citedByCount, year int, openAccess bool) string
}

// AccreditationClassifier derives a journal accreditation tier from the
// journal's indexing set and ISSN.
type AccreditationClassifier interface {
	Accreditation(indexing, issn string) string
}

// Set bundles the classifier strategies the reconciler consumes.
type Set struct {
	Faculty       FacultyClassifier
	Program       ProgramClassifier
	Indexing      IndexingClassifier
	Quality       QualityClassifier
	Accreditation AccreditationClassifier
}

// Defaults returns the default heuristic classifier set. currentYear
// anchors the age normalization of the quality classifier; tests pass a
// fixed year for determinism.
func Defaults(currentYear int) Set {
	return Set{
		Faculty:       DefaultFacultyTable(),
		Program:       DefaultProgramTable(),
		Indexing:      SourceIDIndexing{AssumeGoogleScholar: true},
		Quality:       CitationAgeQuality{CurrentYear: currentYear},
		Accreditation: IndexingAccreditation{},
	}
}
