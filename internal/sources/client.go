// Package sources provides the rate-limited fetch client shared by all
// external source adapters (OpenAlex, Crossref, DOAJ, DOI landing pages).
package sources

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/unikom-riset/bibliometrics/internal/domain"
)

const (
	// DefaultTimeout is the per-call request timeout.
	DefaultTimeout = 15 * time.Second

	// DefaultMaxRetries is the total number of attempts per fetch.
	DefaultMaxRetries = 3

	// DefaultRetryBaseDelay is the base for the linear backoff between
	// attempts (base * attempt number).
	DefaultRetryBaseDelay = time.Second

	// DefaultInterCallDelay is the fixed spacing between calls that keeps
	// the collector under third-party rate limits.
	DefaultInterCallDelay = 100 * time.Millisecond

	// maxResponseBytes caps response decoding to guard against
	// pathological payloads.
	maxResponseBytes = 10 << 20
)

// ClientConfig configures the fetch client.
type ClientConfig struct {
	// Timeout is the per-request timeout.
	Timeout time.Duration

	// MaxRetries is the total number of attempts on any failure
	// (network error, timeout, non-2xx status).
	MaxRetries int

	// RetryBaseDelay is the base delay for linear backoff: the wait before
	// attempt n+1 is RetryBaseDelay * n.
	RetryBaseDelay time.Duration

	// InterCallDelay is the fixed minimum spacing between calls. It is
	// enforced with an interval token bucket, so the delay applies to
	// every call regardless of whether the previous one was retried.
	InterCallDelay time.Duration

	// UserAgent is sent with every request.
	UserAgent string
}

func (c *ClientConfig) applyDefaults() {
	if c.Timeout == 0 {
		c.Timeout = DefaultTimeout
	}
	if c.MaxRetries == 0 {
		c.MaxRetries = DefaultMaxRetries
	}
	if c.RetryBaseDelay == 0 {
		c.RetryBaseDelay = DefaultRetryBaseDelay
	}
	if c.InterCallDelay == 0 {
		c.InterCallDelay = DefaultInterCallDelay
	}
	if c.UserAgent == "" {
		c.UserAgent = "unikom-bibliometrics/1.0"
	}
}

// Client fetches JSON documents with a per-call timeout, bounded retry with
// linear backoff, and a fixed inter-call delay. The pipeline is strictly
// sequential, but the client is still safe for concurrent use because the
// limiter is.
type Client struct {
	httpClient *http.Client
	limiter    *rate.Limiter
	config     ClientConfig
	log        zerolog.Logger
}

// NewClient creates a fetch client.
func NewClient(cfg ClientConfig, log zerolog.Logger) *Client {
	cfg.applyDefaults()
	return &Client{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		limiter:    rate.NewLimiter(rate.Every(cfg.InterCallDelay), 1),
		config:     cfg,
		log:        log,
	}
}

// GetJSON fetches rawURL and decodes the response body into out. Every
// attempt waits on the inter-call limiter first. On exhaustion the final
// failure is returned as a *domain.FetchError carrying the URL and attempt
// count; the caller decides whether that is fatal or a skip.
func (c *Client) GetJSON(ctx context.Context, rawURL string, out any) error {
	var lastErr error

	for attempt := 1; attempt <= c.config.MaxRetries; attempt++ {
		if err := c.limiter.Wait(ctx); err != nil {
			return fmt.Errorf("rate limiter wait: %w", err)
		}

		lastErr = c.fetchOnce(ctx, rawURL, out)
		if lastErr == nil {
			return nil
		}
		// Cancellation is never retried.
		if errors.Is(lastErr, context.Canceled) || errors.Is(lastErr, context.DeadlineExceeded) {
			break
		}

		if attempt < c.config.MaxRetries {
			c.log.Warn().
				Str("url", rawURL).
				Int("attempt", attempt).
				Err(lastErr).
				Msg("fetch failed, retrying")
			if err := c.sleep(ctx, c.config.RetryBaseDelay*time.Duration(attempt)); err != nil {
				return err
			}
		}
	}

	return domain.NewFetchError(rawURL, c.config.MaxRetries, lastErr)
}

// Get fetches rawURL and returns the raw body. Used by the landing-page
// scraper, which parses HTML instead of JSON. The same retry and delay
// discipline applies.
func (c *Client) Get(ctx context.Context, rawURL string, header http.Header) ([]byte, error) {
	var body []byte
	var lastErr error

	for attempt := 1; attempt <= c.config.MaxRetries; attempt++ {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limiter wait: %w", err)
		}

		body, lastErr = c.readOnce(ctx, rawURL, header)
		if lastErr == nil {
			return body, nil
		}
		if errors.Is(lastErr, context.Canceled) || errors.Is(lastErr, context.DeadlineExceeded) {
			break
		}

		if attempt < c.config.MaxRetries {
			if err := c.sleep(ctx, c.config.RetryBaseDelay*time.Duration(attempt)); err != nil {
				return nil, err
			}
		}
	}

	return nil, domain.NewFetchError(rawURL, c.config.MaxRetries, lastErr)
}

func (c *Client) fetchOnce(ctx context.Context, rawURL string, out any) error {
	body, err := c.readOnce(ctx, rawURL, nil)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}

func (c *Client) readOnce(ctx context.Context, rawURL string, header http.Header) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", c.config.UserAgent)
	for k, vs := range header {
		for _, v := range vs {
			req.Header.Set(k, v)
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer func() {
		_, _ = io.Copy(io.Discard, resp.Body)
		resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("server returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}
	return body, nil
}

func (c *Client) sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
