package classify

// Quality tier labels. These are citation-by-age estimates, not journal
// quartiles from an official ranking.
const (
	TierQ1 = "Q1"
	TierQ2 = "Q2"
	TierQ3 = "Q3"
	TierQ4 = "Q4"
)

// CitationAgeQuality estimates a quality tier by normalizing a
// publication's citations by its age in years. The age floor is 1 so
// current-year works are not divided by zero.
type CitationAgeQuality struct {
	// CurrentYear anchors the age computation; injected so tests are
	// deterministic.
	CurrentYear int
}

// Quality implements QualityClassifier. The open-access flag is accepted
// for interface stability but does not influence the estimate.
func (c CitationAgeQuality) Quality(citedByCount, year int, openAccess bool) string {
	age := 0
	if year > 0 {
		age = c.CurrentYear - year
	}

	normalized := float64(citedByCount)
	if age > 0 {
		normalized = float64(citedByCount) / float64(age)
	}

	switch {
	case normalized > 20:
		return TierQ1
	case normalized > 10:
		return TierQ2
	case normalized > 5:
		return TierQ3
	case normalized > 0:
		return TierQ4
	default:
		return TierUnranked
	}
}
