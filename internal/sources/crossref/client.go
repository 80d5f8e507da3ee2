// Package crossref provides the Crossref work-by-DOI enrichment adapter.
//
// Crossref enrichment is optional by design: any failure (network, non-2xx,
// malformed payload) yields a nil record, never an error, and field
// reconciliation falls back to the next source.
package crossref

import (
	"context"
	"net/url"

	"github.com/rs/zerolog"

	"github.com/unikom-riset/bibliometrics/internal/domain"
	"github.com/unikom-riset/bibliometrics/internal/sources"
)

// DefaultBaseURL is the default Crossref works endpoint.
const DefaultBaseURL = "https://api.crossref.org/works"

// Config holds configuration for the Crossref adapter.
type Config struct {
	// BaseURL is the Crossref works endpoint.
	BaseURL string
}

// Client is the Crossref adapter. Successful lookups are cached by
// normalized DOI for the lifetime of the run.
type Client struct {
	config  Config
	fetcher *sources.Client
	log     zerolog.Logger

	cache map[string]*Work
}

// New creates a Crossref adapter on top of the shared fetch client.
func New(cfg Config, fetcher *sources.Client, log zerolog.Logger) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	return &Client{
		config:  cfg,
		fetcher: fetcher,
		log:     log.With().Str("source", "crossref").Logger(),
		cache:   make(map[string]*Work),
	}
}

// GetByDOI fetches citation metadata for the given DOI. The DOI may carry a
// https://doi.org/ prefix; it is normalized before the lookup. Returns
// (nil, nil) for an empty DOI or on any failure.
func (c *Client) GetByDOI(ctx context.Context, doi string) (*Work, error) {
	clean := domain.NormalizeDOI(doi)
	if clean == "" {
		return nil, nil
	}
	if cached, ok := c.cache[clean]; ok {
		return cached, nil
	}

	var resp Response
	lookupURL := c.config.BaseURL + "/" + url.PathEscape(clean)
	if err := c.fetcher.GetJSON(ctx, lookupURL, &resp); err != nil {
		c.log.Debug().Str("doi", clean).Err(err).Msg("crossref lookup failed, continuing without enrichment")
		return nil, nil
	}

	work := resp.Message
	c.cache[clean] = work
	return work, nil
}
