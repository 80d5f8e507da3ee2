// Package analytics folds the collected tables into per-author and
// per-journal statistics and the corpus-wide report.
package analytics

import (
	"strings"

	"github.com/unikom-riset/bibliometrics/internal/classify"
	"github.com/unikom-riset/bibliometrics/internal/domain"
)

const (
	// trailingWindowYears is the trend and low-performer window: the
	// buckets [currentYear-2, currentYear-1, currentYear].
	trailingWindowYears = 3

	// recentWindowYears is the per-author "recent activity" window.
	recentWindowYears = 5

	// lowPerformerThreshold is the minimum number of publications within
	// the trailing window below which an author is flagged.
	lowPerformerThreshold = 2

	// highlyCitedThreshold marks a publication as highly cited.
	highlyCitedThreshold = 20
)

// AuthorMetrics folds one author's publications into the derived
// statistics row.
func AuthorMetrics(author domain.Author, pubs []domain.Publication, currentYear int) domain.AuthorMetrics {
	m := domain.AuthorMetrics{
		AuthorKey:   author.AuthorKey,
		NIDN:        author.NIDN,
		DisplayName: author.DisplayName,
		OpenAlexID:  author.OpenAlexID,
		Faculty:     author.Faculty,

		TotalPublications: len(pubs),
		HIndex:            author.HIndex,
		I10Index:          author.I10Index,
	}

	openAccess := 0
	first, latest := 0, 0
	for _, pub := range pubs {
		m.TotalCitations += pub.CitedByCount

		if pub.Year >= currentYear-recentWindowYears && pub.Year > 0 {
			m.PublicationsLast5Years++
			m.CitationsLast5Years += pub.CitedByCount
		}
		if pub.OpenAccess {
			openAccess++
		}

		// Flagship: strict comparison keeps the first encountered on ties.
		if pub.CitedByCount > m.MostCitedCitations || m.MostCitedTitle == "" {
			m.MostCitedTitle = pub.Title
			m.MostCitedCitations = pub.CitedByCount
		}

		// First/latest years fold over non-empty years only.
		if pub.Year > 0 {
			if first == 0 || pub.Year < first {
				first = pub.Year
			}
			if pub.Year > latest {
				latest = pub.Year
			}
		}
	}

	m.FirstPublicationYear = first
	m.LatestPublicationYear = latest

	if len(pubs) > 0 {
		m.AvgCitationsPerPaper = float64(m.TotalCitations) / float64(len(pubs))
		m.OpenAccessPercentage = float64(openAccess) / float64(len(pubs)) * 100
	}

	return m
}

// Journals materializes the journal table by folding over all publications
// sharing a journal key, in first-seen order. The ISSN column is the union
// of every ISSN seen for the journal; accreditation is derived from the
// combined indexing of its publications.
func Journals(pubs []domain.Publication, accreditation classify.AccreditationClassifier) []domain.Journal {
	var order []string
	groups := make(map[string][]domain.Publication)
	for _, pub := range pubs {
		if _, ok := groups[pub.JournalKey]; !ok {
			order = append(order, pub.JournalKey)
		}
		groups[pub.JournalKey] = append(groups[pub.JournalKey], pub)
	}

	journals := make([]domain.Journal, 0, len(order))
	for _, key := range order {
		group := groups[key]
		first := group[0]

		var issnSets [][]string
		indexings := make([]string, 0, len(group))
		citations := 0
		for _, pub := range group {
			issnSets = append(issnSets, []string{pub.ISSN})
			indexings = append(indexings, pub.Indexing)
			citations += pub.CitedByCount
		}
		issn := domain.MergeISSN(issnSets...)
		combinedIndexing := domain.JoinSet(indexings)

		journals = append(journals, domain.Journal{
			JournalKey:        key,
			Name:              first.JournalName,
			ISSN:              issn,
			Accreditation:     accreditation.Accreditation(combinedIndexing, issn),
			Indexing:          first.Indexing,
			TotalPublications: len(group),
			AvgCitations:      float64(citations) / float64(len(group)),
		})
	}
	return journals
}

// Compute derives the corpus-wide analytics snapshot from the final
// tables. currentYear anchors the trailing windows.
func Compute(tables *domain.Tables, accreditation classify.AccreditationClassifier, currentYear int) domain.Analytics {
	report := domain.Analytics{
		ByFaculty:    make(map[string]domain.FacultyStats),
		AvgByFaculty: make(map[string]domain.FacultyAverages),
	}

	// Overview.
	totalCitations := 0
	highQuality := 0
	for _, pub := range tables.Publications {
		totalCitations += pub.CitedByCount
		if pubIsHighQuality(pub) {
			highQuality++
		}
	}
	report.Overview = domain.Overview{
		TotalAuthors:      len(tables.Authors),
		TotalPublications: len(tables.Publications),
		TotalCitations:    totalCitations,
	}
	if len(tables.Authors) > 0 {
		report.Overview.AvgPublicationsPerAuthor =
			float64(len(tables.Publications)) / float64(len(tables.Authors))
	}
	if len(tables.Publications) > 0 {
		report.Overview.HighQualityPercentage =
			float64(highQuality) / float64(len(tables.Publications)) * 100
	}

	report.Trend3Years = trend(tables.Publications, currentYear)

	// Faculty distribution folds the upstream author-level metrics.
	for _, author := range tables.Authors {
		stats := report.ByFaculty[author.Faculty]
		stats.Authors++
		stats.Publications += author.WorksCount
		stats.Citations += author.CitedByCount
		report.ByFaculty[author.Faculty] = stats
	}
	for faculty, stats := range report.ByFaculty {
		report.AvgByFaculty[faculty] = domain.FacultyAverages{
			AvgPublications: float64(stats.Publications) / float64(stats.Authors),
			AvgCitations:    float64(stats.Citations) / float64(stats.Authors),
		}
	}

	report.LowPerformers = lowPerformers(tables, currentYear)
	for _, author := range tables.Authors {
		if author.WorksCount == 0 {
			report.ZeroPublications = append(report.ZeroPublications, summaryOf(author))
		}
	}

	report.QualityDistribution = qualityDistribution(tables.Publications, accreditation)
	return report
}

// trend returns exactly trailingWindowYears buckets for
// [currentYear-2 .. currentYear], zero-filled for years with no
// publications.
func trend(pubs []domain.Publication, currentYear int) []domain.YearCount {
	counts := make(map[int]int)
	for _, pub := range pubs {
		counts[pub.Year]++
	}

	buckets := make([]domain.YearCount, 0, trailingWindowYears)
	for year := currentYear - trailingWindowYears + 1; year <= currentYear; year++ {
		buckets = append(buckets, domain.YearCount{Year: year, Count: counts[year]})
	}
	return buckets
}

// lowPerformers flags authors with fewer than lowPerformerThreshold
// publications dated within the trailing window, joining through the
// authorship table so co-authored works count once per author.
func lowPerformers(tables *domain.Tables, currentYear int) []domain.AuthorSummary {
	pubYears := make(map[string]int, len(tables.Publications))
	for _, pub := range tables.Publications {
		pubYears[pub.PublicationKey] = pub.Year
	}

	recentCount := make(map[string]int)
	for _, link := range tables.Authorships {
		year, ok := pubYears[link.PublicationKey]
		if !ok {
			continue
		}
		if year > currentYear-trailingWindowYears && year <= currentYear {
			recentCount[link.AuthorKey]++
		}
	}

	var flagged []domain.AuthorSummary
	for _, author := range tables.Authors {
		if recentCount[author.AuthorKey] < lowPerformerThreshold {
			flagged = append(flagged, summaryOf(author))
		}
	}
	return flagged
}

func qualityDistribution(pubs []domain.Publication, accreditation classify.AccreditationClassifier) domain.QualityDistribution {
	var dist domain.QualityDistribution
	for _, pub := range pubs {
		if containsIndex(pub.Indexing, classify.IndexScopus) {
			dist.ScopusIndexed++
		}
		if accreditation.Accreditation(pub.Indexing, pub.ISSN) == classify.AccreditationNational {
			dist.NationalAccredited++
		}
		if pub.CitedByCount >= highlyCitedThreshold {
			dist.HighlyCited++
		}
	}
	return dist
}

func pubIsHighQuality(pub domain.Publication) bool {
	return containsIndex(pub.Indexing, classify.IndexScopus) || pub.CitedByCount >= 10
}

func containsIndex(indexing, label string) bool {
	for _, part := range strings.Split(indexing, "; ") {
		if part == label {
			return true
		}
	}
	return false
}

func summaryOf(author domain.Author) domain.AuthorSummary {
	return domain.AuthorSummary{
		AuthorKey:   author.AuthorKey,
		DisplayName: author.DisplayName,
		Faculty:     author.Faculty,
		WorksCount:  author.WorksCount,
	}
}
