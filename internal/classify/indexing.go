package classify

import (
	"strings"

	"github.com/unikom-riset/bibliometrics/internal/domain"
)

// Indexing service labels.
const (
	IndexScopus        = "Scopus"
	IndexPubMed        = "PubMed"
	IndexDOAJ          = "DOAJ"
	IndexCrossref      = "Crossref"
	IndexGoogleScholar = "Google Scholar"
)

// SourceIDIndexing derives the indexing set from case-insensitive
// substring matches on the work's hosting source IDs, plus the enrichment
// signals: Crossref whenever a DOI exists and DOAJ when the journal lookup
// confirmed it. With AssumeGoogleScholar set, Google Scholar is always
// included (a coverage assumption of the collection methodology, not a
// verified lookup).
type SourceIDIndexing struct {
	AssumeGoogleScholar bool
}

// Indexing implements IndexingClassifier. The result is never empty: with
// no matches at all it is the "None" sentinel.
func (c SourceIDIndexing) Indexing(sourceIDs []string, hasDOI, inDOAJ bool) string {
	var found []string
	add := func(label string) {
		for _, f := range found {
			if f == label {
				return
			}
		}
		found = append(found, label)
	}

	for _, id := range sourceIDs {
		lower := strings.ToLower(id)
		if strings.Contains(lower, "scopus") {
			add(IndexScopus)
		}
		if strings.Contains(lower, "pubmed") {
			add(IndexPubMed)
		}
		if strings.Contains(lower, "doaj") {
			add(IndexDOAJ)
		}
		if strings.Contains(lower, "crossref") {
			add(IndexCrossref)
		}
	}

	if hasDOI {
		add(IndexCrossref)
	}
	if inDOAJ {
		add(IndexDOAJ)
	}
	if c.AssumeGoogleScholar {
		add(IndexGoogleScholar)
	}

	if len(found) == 0 {
		return IndexingNone
	}
	return domain.JoinSet(found)
}
