package classify

import (
	"regexp"
	"strings"
)

// Accreditation tier labels. The tiers are a coarse local proxy derived
// from indexing membership and the ISSN pattern, distinct from any
// official accreditation body's ranking.
const (
	AccreditationInternationalReputable = "International (Reputable)"
	AccreditationInternational          = "International"
	AccreditationNational               = "National (SINTA)"
	AccreditationNone                   = "Non-accredited"
)

// issnPattern is the 4digit-hyphen-3digit+checkdigit ISSN shape used as a
// rough national-registration signal.
var issnPattern = regexp.MustCompile(`^\d{4}-\d{3}[\dX]$`)

// IndexingAccreditation derives the accreditation tier: Scopus or WoS
// membership wins, then DOAJ, then a well-formed ISSN.
type IndexingAccreditation struct{}

// Accreditation implements AccreditationClassifier. indexing is the
// "; "-joined indexing set of the journal's publications; issn may be a
// "; "-joined set of which any well-formed member counts.
func (IndexingAccreditation) Accreditation(indexing, issn string) string {
	if strings.Contains(indexing, IndexScopus) || strings.Contains(indexing, "WoS") {
		return AccreditationInternationalReputable
	}
	if strings.Contains(indexing, IndexDOAJ) {
		return AccreditationInternational
	}
	for _, candidate := range strings.Split(issn, ";") {
		if issnPattern.MatchString(strings.TrimSpace(candidate)) {
			return AccreditationNational
		}
	}
	return AccreditationNone
}
