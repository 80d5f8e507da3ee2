// Package doipage scrapes DOI landing pages for fields the APIs do not
// carry (abstract, keywords, full-text links). It is a best-effort
// enrichment source: every failure, at fetch or parse time, yields a nil
// record and the reconciler continues without it.
package doipage

import (
	"bytes"
	"context"
	"net/http"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/rs/zerolog"

	"github.com/unikom-riset/bibliometrics/internal/domain"
	"github.com/unikom-riset/bibliometrics/internal/sources"
)

// maxAbstractLen truncates scraped abstracts to keep rows manageable.
const maxAbstractLen = 1000

// PageRecord is the nullable structured record scraped from one landing page.
type PageRecord struct {
	Abstract        string
	Keywords        string
	ReferencesCount int
	FullTextLinks   string
	ArticleType     string
	PageRange       string
	VolumeIssue     string
}

// Scraper fetches and parses DOI landing pages.
type Scraper struct {
	fetcher *sources.Client
	log     zerolog.Logger
}

// New creates a landing-page scraper on top of the shared fetch client.
func New(fetcher *sources.Client, log zerolog.Logger) *Scraper {
	return &Scraper{
		fetcher: fetcher,
		log:     log.With().Str("source", "doipage").Logger(),
	}
}

// Scrape resolves the DOI and extracts whatever structured fields the
// landing page exposes. Returns nil on an empty DOI or any failure.
func (s *Scraper) Scrape(ctx context.Context, doi string) *PageRecord {
	clean := domain.NormalizeDOI(doi)
	if clean == "" {
		return nil
	}
	return s.scrapeURL(ctx, "https://doi.org/"+clean)
}

func (s *Scraper) scrapeURL(ctx context.Context, pageURL string) *PageRecord {
	header := http.Header{}
	header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")

	body, err := s.fetcher.Get(ctx, pageURL, header)
	if err != nil {
		s.log.Debug().Str("url", pageURL).Err(err).Msg("landing page fetch failed")
		return nil
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		s.log.Debug().Str("url", pageURL).Err(err).Msg("landing page parse failed")
		return nil
	}

	return &PageRecord{
		Abstract:        extractAbstract(doc),
		Keywords:        extractKeywords(doc),
		ReferencesCount: doc.Find(`section[class*="references"] li, .references li, #references li`).Length(),
		FullTextLinks:   extractFullTextLinks(doc),
		ArticleType:     extractArticleType(doc),
		PageRange:       extractPageRange(doc),
		VolumeIssue:     extractVolumeIssue(doc),
	}
}

func extractAbstract(doc *goquery.Document) string {
	selectors := []string{
		`meta[name="description"]`,
		`meta[name="dc.description"]`,
		`meta[property="og:description"]`,
		".abstract",
		"#abstract",
		`section[class*="abstract"]`,
	}
	for _, sel := range selectors {
		text := metaOrText(doc, sel)
		// Short meta descriptions are usually navigation chrome, not abstracts.
		if len(text) > 50 {
			if len(text) > maxAbstractLen {
				text = text[:maxAbstractLen]
			}
			return strings.TrimSpace(text)
		}
	}
	return ""
}

func extractKeywords(doc *goquery.Document) string {
	selectors := []string{
		`meta[name="keywords"]`,
		`meta[name="dc.subject"]`,
		".keywords",
		"#keywords",
	}
	for _, sel := range selectors {
		if text := metaOrText(doc, sel); text != "" {
			return text
		}
	}
	return ""
}

func extractFullTextLinks(doc *goquery.Document) string {
	var links []string
	doc.Find(`a[href*=".pdf"]`).Each(func(_ int, sel *goquery.Selection) {
		if href, ok := sel.Attr("href"); ok && href != "" {
			links = append(links, href)
		}
	})
	doc.Find("a").Each(func(_ int, sel *goquery.Selection) {
		label := strings.TrimSpace(sel.Text())
		if label != "PDF" && !strings.Contains(label, "Full Text") {
			return
		}
		if href, ok := sel.Attr("href"); ok && href != "" {
			links = append(links, href)
		}
	})
	return domain.JoinSet(links)
}

func extractArticleType(doc *goquery.Document) string {
	if t, ok := doc.Find(`meta[name="dc.type"]`).Attr("content"); ok && t != "" {
		return t
	}
	if t, ok := doc.Find(`meta[property="og:type"]`).Attr("content"); ok {
		return t
	}
	return ""
}

func extractPageRange(doc *goquery.Document) string {
	first, _ := doc.Find(`meta[name="citation_firstpage"]`).Attr("content")
	last, _ := doc.Find(`meta[name="citation_lastpage"]`).Attr("content")
	if first != "" && last != "" {
		return first + "-" + last
	}
	return ""
}

func extractVolumeIssue(doc *goquery.Document) string {
	volume, _ := doc.Find(`meta[name="citation_volume"]`).Attr("content")
	issue, _ := doc.Find(`meta[name="citation_issue"]`).Attr("content")
	if volume != "" && issue != "" {
		return "Vol " + volume + ", No " + issue
	}
	return ""
}

func metaOrText(doc *goquery.Document, selector string) string {
	sel := doc.Find(selector).First()
	if content, ok := sel.Attr("content"); ok && content != "" {
		return strings.TrimSpace(content)
	}
	return strings.TrimSpace(sel.Text())
}
