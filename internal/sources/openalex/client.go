package openalex

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"github.com/unikom-riset/bibliometrics/internal/sources"
)

const (
	// DefaultBaseURL is the default OpenAlex API base URL.
	DefaultBaseURL = "https://api.openalex.org"

	// DefaultPerPage is the page size for list endpoints (OpenAlex maximum
	// is 200).
	DefaultPerPage = 200

	// DefaultMaxPages is the safety cap on cursor-following. Exceeding it
	// truncates results with a warning, never an error, so a misbehaving
	// upstream cursor cannot keep the run alive forever.
	DefaultMaxPages = 100

	// firstCursor starts a cursor-paginated listing.
	firstCursor = "*"
)

// Config holds configuration for the OpenAlex adapter.
type Config struct {
	// BaseURL is the OpenAlex API base URL.
	BaseURL string

	// InstitutionID is the OpenAlex institution ID used by the
	// authoritative author-listing mode (e.g. I4210117444).
	InstitutionID string

	// Email is the contact email for the polite pool, sent as mailto.
	Email string

	// PerPage is the list page size.
	PerPage int

	// MaxPages is the pagination safety cap per listing.
	MaxPages int
}

func (c *Config) applyDefaults() {
	if c.BaseURL == "" {
		c.BaseURL = DefaultBaseURL
	}
	if c.PerPage == 0 {
		c.PerPage = DefaultPerPage
	}
	if c.MaxPages == 0 {
		c.MaxPages = DefaultMaxPages
	}
}

// Disambiguator picks one author from the candidates a free-text name
// search returned. Name search is a known source of misattribution, so the
// policy is pluggable rather than hardcoded.
type Disambiguator interface {
	// Pick returns the chosen candidate, or nil when none is acceptable.
	Pick(name string, candidates []Author) *Author
}

// AcceptBestMatch takes the first (highest-relevance) candidate.
type AcceptBestMatch struct{}

// Pick implements Disambiguator.
func (AcceptBestMatch) Pick(_ string, candidates []Author) *Author {
	if len(candidates) == 0 {
		return nil
	}
	return &candidates[0]
}

// ExactMatchOnly accepts only a case-insensitive exact display-name match.
type ExactMatchOnly struct{}

// Pick implements Disambiguator.
func (ExactMatchOnly) Pick(name string, candidates []Author) *Author {
	for i := range candidates {
		if strings.EqualFold(candidates[i].DisplayName, name) {
			return &candidates[i]
		}
	}
	return nil
}

// Client is the OpenAlex adapter. Results are cached by request key for the
// lifetime of the run; nothing is evicted, the key space is bounded by one
// institution's corpus.
type Client struct {
	config  Config
	fetcher *sources.Client
	log     zerolog.Logger

	worksCache  map[string][]Work
	searchCache map[string]*Author
}

// New creates an OpenAlex adapter on top of the shared fetch client.
func New(cfg Config, fetcher *sources.Client, log zerolog.Logger) *Client {
	cfg.applyDefaults()
	return &Client{
		config:      cfg,
		fetcher:     fetcher,
		log:         log.With().Str("source", "openalex").Logger(),
		worksCache:  make(map[string][]Work),
		searchCache: make(map[string]*Author),
	}
}

// ListInstitutionAuthors lists every author whose last known institution is
// the configured one, following cursors up to the safety cap.
func (c *Client) ListInstitutionAuthors(ctx context.Context) ([]Author, error) {
	if c.config.InstitutionID == "" {
		return nil, fmt.Errorf("openalex: institution ID not configured")
	}

	var all []Author
	cursor := firstCursor
	for page := 1; cursor != ""; page++ {
		if page > c.config.MaxPages {
			c.log.Warn().
				Int("max_pages", c.config.MaxPages).
				Int("collected", len(all)).
				Msg("author listing exceeded page cap, truncating")
			break
		}

		listURL := c.listURL("/authors",
			"last_known_institutions.id:"+c.config.InstitutionID, cursor)

		var resp AuthorListResponse
		if err := c.fetcher.GetJSON(ctx, listURL, &resp); err != nil {
			return nil, err
		}

		c.log.Debug().Int("page", page).Int("results", len(resp.Results)).Msg("fetched author page")
		all = append(all, resp.Results...)
		cursor = resp.Meta.NextCursor
	}
	return all, nil
}

// SearchAuthorByName searches authors by display name and resolves the
// candidates through the disambiguation strategy. Returns nil when nothing
// acceptable was found; that is a skip, not an error.
func (c *Client) SearchAuthorByName(ctx context.Context, name string, pick Disambiguator) (*Author, error) {
	if cached, ok := c.searchCache[name]; ok {
		return cached, nil
	}

	base, err := url.Parse(c.config.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("parsing base URL: %w", err)
	}
	base.Path = "/authors"
	query := url.Values{}
	query.Set("search", name)
	query.Set("per-page", strconv.Itoa(c.config.PerPage))
	if c.config.Email != "" {
		query.Set("mailto", c.config.Email)
	}
	base.RawQuery = query.Encode()

	var resp AuthorListResponse
	if err := c.fetcher.GetJSON(ctx, base.String(), &resp); err != nil {
		return nil, err
	}

	chosen := pick.Pick(name, resp.Results)
	c.searchCache[name] = chosen
	return chosen, nil
}

// ListAuthorWorks lists every work of the given author, following cursors
// up to the safety cap. Results are cached by author ID since co-authored
// works revisit the same author listing.
func (c *Client) ListAuthorWorks(ctx context.Context, authorID string) ([]Work, error) {
	if cached, ok := c.worksCache[authorID]; ok {
		return cached, nil
	}

	var all []Work
	cursor := firstCursor
	for page := 1; cursor != ""; page++ {
		if page > c.config.MaxPages {
			c.log.Warn().
				Str("author_id", authorID).
				Int("max_pages", c.config.MaxPages).
				Int("collected", len(all)).
				Msg("works listing exceeded page cap, truncating")
			break
		}

		listURL := c.listURL("/works", "author.id:"+authorID, cursor)

		var resp WorkListResponse
		if err := c.fetcher.GetJSON(ctx, listURL, &resp); err != nil {
			return nil, err
		}

		all = append(all, resp.Results...)
		cursor = resp.Meta.NextCursor
	}

	c.worksCache[authorID] = all
	return all, nil
}

func (c *Client) listURL(path, filter, cursor string) string {
	base, err := url.Parse(c.config.BaseURL)
	if err != nil {
		// BaseURL is validated by config loading; a parse failure here
		// means a programming error.
		panic(fmt.Sprintf("openalex: invalid base URL %q: %v", c.config.BaseURL, err))
	}
	base.Path = path

	query := url.Values{}
	query.Set("filter", filter)
	query.Set("per-page", strconv.Itoa(c.config.PerPage))
	query.Set("cursor", cursor)
	if c.config.Email != "" {
		query.Set("mailto", c.config.Email)
	}
	base.RawQuery = query.Encode()
	return base.String()
}
