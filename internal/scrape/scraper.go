// Package scrape fetches web pages and extracts lightweight metadata,
// used to enrich merchant and product research with page context.
package scrape

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/wonny/folio/pkg/httputil"
	"github.com/wonny/folio/pkg/logger"
)

// maxLinks caps how many links one page contributes.
const maxLinks = 50

// PageMetadata is the distilled view of one fetched page.
type PageMetadata struct {
	URL         string    `json:"url"`
	Domain      string    `json:"domain,omitempty"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Headings    []string  `json:"headings,omitempty"`
	Links       []string  `json:"links,omitempty"`
	WordCount   int       `json:"word_count"`
	FetchedAt   time.Time `json:"fetched_at"`
}

// Scraper fetches pages through the shared HTTP client.
type Scraper struct {
	client *httputil.Client
	logger *logger.Logger
}

// New creates a scraper with its own rate-limited HTTP client.
func New(log *logger.Logger) *Scraper {
	return &Scraper{
		client: httputil.New(log, 15*time.Second).
			WithRateLimit(2).
			WithUserAgent("Mozilla/5.0 (compatible; folio/1.0)"),
		logger: log,
	}
}

// NewWithClient creates a scraper on an existing HTTP client.
func NewWithClient(client *httputil.Client, log *logger.Logger) *Scraper {
	return &Scraper{client: client, logger: log}
}

// FetchPageMetadata downloads the page and extracts its metadata.
func (s *Scraper) FetchPageMetadata(ctx context.Context, pageURL string) (PageMetadata, error) {
	resp, err := s.client.Get(ctx, pageURL)
	if err != nil {
		return PageMetadata{}, fmt.Errorf("failed to fetch %s: %w", pageURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return PageMetadata{}, fmt.Errorf("unexpected status %d fetching %s", resp.StatusCode, pageURL)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return PageMetadata{}, fmt.Errorf("failed to parse HTML from %s: %w", pageURL, err)
	}

	meta := extractMetadata(doc, pageURL)
	meta.FetchedAt = time.Now().UTC()

	s.logger.WithFields(map[string]interface{}{
		"url":      pageURL,
		"title":    meta.Title,
		"headings": len(meta.Headings),
		"links":    len(meta.Links),
	}).Debug("Page metadata extracted")

	return meta, nil
}

func extractMetadata(doc *goquery.Document, pageURL string) PageMetadata {
	meta := PageMetadata{URL: pageURL}
	if parsed, err := url.Parse(pageURL); err == nil {
		meta.Domain = parsed.Hostname()
	}

	meta.Title = extractTitle(doc)

	if description, exists := doc.Find("meta[name='description']").Attr("content"); exists {
		meta.Description = strings.TrimSpace(description)
	} else if ogDesc, exists := doc.Find("meta[property='og:description']").Attr("content"); exists {
		meta.Description = strings.TrimSpace(ogDesc)
	}

	doc.Find("h1, h2, h3").Each(func(i int, sel *goquery.Selection) {
		if heading := strings.TrimSpace(sel.Text()); heading != "" {
			meta.Headings = append(meta.Headings, heading)
		}
	})

	meta.Links = extractLinks(doc, pageURL)

	// Word count ignores script and style text.
	body := doc.Clone()
	body.Find("script, style, noscript").Remove()
	meta.WordCount = len(strings.Fields(body.Find("body").Text()))

	return meta
}

// extractTitle prefers the title tag, then Open Graph, then the first h1.
func extractTitle(doc *goquery.Document) string {
	if title := strings.TrimSpace(doc.Find("title").First().Text()); title != "" {
		return title
	}
	if ogTitle, exists := doc.Find("meta[property='og:title']").Attr("content"); exists {
		if title := strings.TrimSpace(ogTitle); title != "" {
			return title
		}
	}
	return strings.TrimSpace(doc.Find("h1").First().Text())
}

// extractLinks collects deduplicated absolute links, resolving relative
// hrefs against the page URL.
func extractLinks(doc *goquery.Document, pageURL string) []string {
	baseURL, err := url.Parse(pageURL)
	if err != nil {
		baseURL = nil
	}

	seen := make(map[string]bool)
	var links []string

	doc.Find("a[href]").EachWithBreak(func(i int, sel *goquery.Selection) bool {
		href, exists := sel.Attr("href")
		if !exists || shouldSkipLink(href) {
			return true
		}

		if baseURL != nil {
			if resolved, err := baseURL.Parse(href); err == nil {
				href = resolved.String()
			}
		}

		if !seen[href] {
			seen[href] = true
			links = append(links, href)
		}
		return len(links) < maxLinks
	})

	return links
}

func shouldSkipLink(href string) bool {
	href = strings.ToLower(strings.TrimSpace(href))
	return href == "" ||
		strings.HasPrefix(href, "#") ||
		strings.HasPrefix(href, "javascript:") ||
		strings.HasPrefix(href, "mailto:") ||
		strings.HasPrefix(href, "tel:") ||
		strings.HasPrefix(href, "data:")
}
