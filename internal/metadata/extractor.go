// Package metadata fetches an external support-resource URL and extracts a
// link preview (title, description, canonical URL, image) so editors can
// verify outbound links before publishing them.
package metadata

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/petalhealth/content-service/internal/logger"
)

const (
	defaultHTTPTimeout = 30 * time.Second

	// maxPreviewBytes caps how much HTML is read for a preview.
	maxPreviewBytes = 2 << 20

	userAgent = "Mozilla/5.0 (compatible; PetalHealth-ContentService/1.0)"
)

// Preview holds the extracted link metadata.
type Preview struct {
	URL         string `json:"url"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	SiteName    string `json:"site_name,omitempty"`
	Canonical   string `json:"canonical,omitempty"`
	ImageURL    string `json:"image_url,omitempty"`
}

// Extractor fetches and parses pages for link previews.
type Extractor struct {
	logger logger.Logger
	client *http.Client
}

// NewExtractor creates a new link preview extractor.
func NewExtractor(log logger.Logger) *Extractor {
	return &Extractor{
		logger: log,
		client: &http.Client{Timeout: defaultHTTPTimeout},
	}
}

// Extract fetches a URL and builds a link preview from its markup.
func (e *Extractor) Extract(ctx context.Context, pageURL string) (*Preview, error) {
	parsedURL, err := url.Parse(pageURL)
	if err != nil {
		return nil, fmt.Errorf("invalid URL: %w", err)
	}
	if parsedURL.Scheme != "http" && parsedURL.Scheme != "https" {
		return nil, fmt.Errorf("unsupported URL scheme %q", parsedURL.Scheme)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := e.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch URL: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "" && !strings.Contains(ct, "html") {
		return nil, fmt.Errorf("not an HTML page: %s", ct)
	}

	doc, err := goquery.NewDocumentFromReader(io.LimitReader(resp.Body, maxPreviewBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	preview := &Preview{
		URL:         pageURL,
		Title:       extractTitle(doc, parsedURL),
		Description: metaContent(doc, "meta[property='og:description']", "meta[name='description']"),
		SiteName:    attrContent(doc, "meta[property='og:site_name']", "content"),
		Canonical:   attrContent(doc, "link[rel='canonical']", "href"),
		ImageURL:    attrContent(doc, "meta[property='og:image']", "content"),
	}

	e.logger.Debug("Link preview extracted",
		logger.String("url", pageURL),
		logger.String("title", preview.Title),
	)
	return preview, nil
}

// extractTitle picks the best available page title, falling back to the host.
func extractTitle(doc *goquery.Document, parsedURL *url.URL) string {
	if ogTitle := attrContent(doc, "meta[property='og:title']", "content"); ogTitle != "" {
		return ogTitle
	}
	if title := strings.TrimSpace(doc.Find("title").First().Text()); title != "" {
		return title
	}
	return parsedURL.Host
}

// metaContent returns the content attribute of the first matching selector.
func metaContent(doc *goquery.Document, selectors ...string) string {
	for _, sel := range selectors {
		if val := attrContent(doc, sel, "content"); val != "" {
			return val
		}
	}
	return ""
}

func attrContent(doc *goquery.Document, selector, attr string) string {
	val, _ := doc.Find(selector).First().Attr(attr)
	return strings.TrimSpace(val)
}
