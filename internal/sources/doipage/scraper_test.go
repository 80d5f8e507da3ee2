package doipage

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unikom-riset/bibliometrics/internal/sources"
)

func newTestScraper() *Scraper {
	fetcher := sources.NewClient(sources.ClientConfig{
		Timeout:        2 * time.Second,
		MaxRetries:     1,
		RetryBaseDelay: time.Millisecond,
		InterCallDelay: time.Microsecond,
	}, zerolog.Nop())
	return New(fetcher, zerolog.Nop())
}

const samplePage = `<!DOCTYPE html>
<html><head>
<meta name="description" content="This study investigates the effect of incremental reconciliation on multi-source bibliographic pipelines.">
<meta name="keywords" content="bibliometrics; reconciliation; pipelines">
<meta name="dc.type" content="journal-article">
<meta name="citation_firstpage" content="101">
<meta name="citation_lastpage" content="115">
<meta name="citation_volume" content="7">
<meta name="citation_issue" content="2">
</head><body>
<section class="references"><ul><li>ref one</li><li>ref two</li></ul></section>
<a href="/article.pdf">Download</a>
</body></html>`

func TestScrapeExtractsFields(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(samplePage))
	}))
	defer srv.Close()

	record := newTestScraper().scrapeURL(context.Background(), srv.URL)
	require.NotNil(t, record)
	assert.Contains(t, record.Abstract, "incremental reconciliation")
	assert.Equal(t, "bibliometrics; reconciliation; pipelines", record.Keywords)
	assert.Equal(t, 2, record.ReferencesCount)
	assert.Equal(t, "/article.pdf", record.FullTextLinks)
	assert.Equal(t, "journal-article", record.ArticleType)
	assert.Equal(t, "101-115", record.PageRange)
	assert.Equal(t, "Vol 7, No 2", record.VolumeIssue)
}

func TestScrapeEmptyDOI(t *testing.T) {
	assert.Nil(t, newTestScraper().Scrape(context.Background(), ""))
}

func TestScrapeFetchFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	assert.Nil(t, newTestScraper().scrapeURL(context.Background(), srv.URL))
}
