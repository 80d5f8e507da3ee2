// Package openalex provides the OpenAlex adapter: author listing by
// institution, best-effort author search by name, and works-by-author
// listing with cursor pagination.
//
// API documentation: https://docs.openalex.org/
package openalex

import "sort"

// AuthorListResponse is the top-level response of the /authors endpoint.
type AuthorListResponse struct {
	Meta    Meta     `json:"meta"`
	Results []Author `json:"results"`
}

// WorkListResponse is the top-level response of the /works endpoint.
type WorkListResponse struct {
	Meta    Meta   `json:"meta"`
	Results []Work `json:"results"`
}

// Meta carries pagination state. NextCursor is empty on the last page.
type Meta struct {
	Count      int    `json:"count"`
	NextCursor string `json:"next_cursor"`
}

// Author is an OpenAlex author record.
type Author struct {
	ID           string        `json:"id"`
	DisplayName  string        `json:"display_name"`
	Orcid        string        `json:"orcid"`
	WorksCount   int           `json:"works_count"`
	CitedByCount int           `json:"cited_by_count"`
	SummaryStats SummaryStats  `json:"summary_stats"`
	Concepts     []Concept     `json:"x_concepts"`
	Institutions []Institution `json:"last_known_institutions"`
}

// SummaryStats holds the citation-impact metrics OpenAlex precomputes.
type SummaryStats struct {
	HIndex   int `json:"h_index"`
	I10Index int `json:"i10_index"`
}

// Concept is a ranked research concept attached to an author.
type Concept struct {
	DisplayName string  `json:"display_name"`
	Score       float64 `json:"score"`
}

// Institution is an affiliated institution.
type Institution struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
}

// Work is an OpenAlex work record.
type Work struct {
	ID              string       `json:"id"`
	DOI             string       `json:"doi"`
	Title           string       `json:"title"`
	DisplayName     string       `json:"display_name"`
	PublicationYear int          `json:"publication_year"`
	PublicationDate string       `json:"publication_date"`
	Type            string       `json:"type"`
	CitedByCount    int          `json:"cited_by_count"`
	Authorships     []Authorship `json:"authorships"`
	PrimaryLocation *Location    `json:"primary_location"`
	Locations       []Location   `json:"locations"`
	Biblio          Biblio       `json:"biblio"`
	OpenAccess      *OpenAccess  `json:"open_access"`
	Topics          []Topic      `json:"topics"`
	Keywords        []Keyword    `json:"keywords"`
	SDGs            []SDG        `json:"sustainable_development_goals"`
	Grants          []Grant      `json:"grants"`

	ReferencedWorksCount int `json:"referenced_works_count"`

	// AbstractInvertedIndex maps words to their positions; the abstract is
	// reconstructed locally when present.
	AbstractInvertedIndex map[string][]int `json:"abstract_inverted_index"`
}

// Authorship is an author's contribution to a work.
type Authorship struct {
	AuthorPosition string        `json:"author_position"`
	Author         AuthorRef     `json:"author"`
	Institutions   []Institution `json:"institutions"`
}

// AuthorRef is the author reference inside an authorship entry.
type AuthorRef struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
	Orcid       string `json:"orcid"`
}

// Location is one place a work is hosted.
type Location struct {
	Source *Source `json:"source"`
}

// Source is a hosting venue (journal, repository).
type Source struct {
	ID                   string   `json:"id"`
	DisplayName          string   `json:"display_name"`
	HostOrganizationName string   `json:"host_organization_name"`
	ISSN                 []string `json:"issn"`
	ISSNL                string   `json:"issn_l"`
	Type                 string   `json:"type"`
}

// Biblio holds the bibliographic fields OpenAlex extracts.
type Biblio struct {
	Volume    string `json:"volume"`
	Issue     string `json:"issue"`
	FirstPage string `json:"first_page"`
	LastPage  string `json:"last_page"`
}

// OpenAccess holds open-access status for a work.
type OpenAccess struct {
	IsOA     bool   `json:"is_oa"`
	OAStatus string `json:"oa_status"`
	OAURL    string `json:"oa_url"`
}

// Topic is a ranked topic attached to a work.
type Topic struct {
	DisplayName string `json:"display_name"`
}

// Keyword is a keyword attached to a work.
type Keyword struct {
	DisplayName string `json:"display_name"`
}

// SDG is a sustainable development goal tag.
type SDG struct {
	DisplayName string `json:"display_name"`
}

// Grant is a funding record attached to a work.
type Grant struct {
	FunderDisplayName string `json:"funder_display_name"`
}

// ReconstructAbstract rebuilds the abstract text from the inverted index.
func ReconstructAbstract(invertedIndex map[string][]int) string {
	if len(invertedIndex) == 0 {
		return ""
	}

	type posWord struct {
		pos  int
		word string
	}
	const maxAbstractWords = 100_000
	total := 0
	for _, positions := range invertedIndex {
		total += len(positions)
	}
	// Guard against pathological payloads with excessive position entries.
	if total > maxAbstractWords {
		return ""
	}

	pairs := make([]posWord, 0, total)
	for word, positions := range invertedIndex {
		for _, pos := range positions {
			pairs = append(pairs, posWord{pos: pos, word: word})
		}
	}
	sort.Slice(pairs, func(i, j int) bool { return pairs[i].pos < pairs[j].pos })

	out := make([]byte, 0, total*7)
	for i, p := range pairs {
		if i > 0 {
			out = append(out, ' ')
		}
		out = append(out, p.word...)
	}
	return string(out)
}
