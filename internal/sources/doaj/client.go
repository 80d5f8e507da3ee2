// Package doaj provides a best-effort DOAJ journal lookup by ISSN, used to
// enrich the indexing set of a publication.
package doaj

import (
	"context"
	"net/url"

	"github.com/rs/zerolog"

	"github.com/unikom-riset/bibliometrics/internal/sources"
)

// DefaultBaseURL is the default DOAJ journal search endpoint.
const DefaultBaseURL = "https://doaj.org/api/search/journals"

// Config holds configuration for the DOAJ adapter.
type Config struct {
	// BaseURL is the DOAJ journal search endpoint.
	BaseURL string

	// Enabled controls whether lookups happen at all; when disabled,
	// HasJournal always reports false.
	Enabled bool
}

// searchResponse is the subset of the DOAJ search payload we consume.
type searchResponse struct {
	Total   int              `json:"total"`
	Results []map[string]any `json:"results"`
}

// Client is the DOAJ adapter. Lookups are cached by ISSN for the lifetime
// of the run; failures are treated as "not in DOAJ".
type Client struct {
	config  Config
	fetcher *sources.Client
	log     zerolog.Logger

	cache map[string]bool
}

// New creates a DOAJ adapter on top of the shared fetch client.
func New(cfg Config, fetcher *sources.Client, log zerolog.Logger) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	return &Client{
		config:  cfg,
		fetcher: fetcher,
		log:     log.With().Str("source", "doaj").Logger(),
		cache:   make(map[string]bool),
	}
}

// HasJournal reports whether a journal with the given ISSN is listed in
// DOAJ. Best effort: an empty ISSN, a disabled adapter, or any fetch
// failure reports false.
func (c *Client) HasJournal(ctx context.Context, issn string) bool {
	if !c.config.Enabled || issn == "" {
		return false
	}
	if cached, ok := c.cache[issn]; ok {
		return cached
	}

	lookupURL := c.config.BaseURL + "/" + url.PathEscape("issn:"+issn)

	var resp searchResponse
	if err := c.fetcher.GetJSON(ctx, lookupURL, &resp); err != nil {
		c.log.Debug().Str("issn", issn).Err(err).Msg("doaj lookup failed, assuming not listed")
		return false
	}

	listed := len(resp.Results) > 0
	c.cache[issn] = listed
	return listed
}
