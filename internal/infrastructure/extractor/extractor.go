// Package extractor fetches a URL and distills it into a cleaned article.
package extractor

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html/charset"

	"NewsTrust/internal/domain"
	"NewsTrust/internal/ports"
)

// contentSelectors is tried in order until enough paragraphs are found.
var contentSelectors = []string{
	"article p",
	".article-body p",
	".article-content p",
	".post-content p",
	".entry-content p",
	".content p",
	"main p",
	"#content p",
	"p",
}

// titleSelectors is tried in order for the article headline.
var titleSelectors = []string{
	"h1",
	".article-title",
	".headline",
	".entry-title",
	"title",
}

// publishTimeFormats covers the timestamp shapes seen in article meta tags.
var publishTimeFormats = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// Extractor downloads pages and harvests their full text with goquery.
type Extractor struct {
	client    *http.Client
	userAgent string
}

var _ ports.Extractor = (*Extractor)(nil)

// New wires an HTTP client; a nil client gets a 20s timeout default.
func New(client *http.Client, userAgent string) *Extractor {
	if client == nil {
		client = &http.Client{Timeout: 20 * time.Second}
	}
	return &Extractor{client: client, userAgent: userAgent}
}

// Extract fetches the URL and returns its title, cleaned text, and publish
// time when the page declares one.
func (e *Extractor) Extract(ctx context.Context, rawURL string) (*domain.Article, error) {
	parsed, err := url.Parse(rawURL)
	if err != nil || parsed.Host == "" || (parsed.Scheme != "http" && parsed.Scheme != "https") {
		return nil, fmt.Errorf("%w: %s", ports.ErrInvalidURL, rawURL)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, parsed.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ports.ErrInvalidURL, rawURL)
	}
	req.Header.Set("User-Agent", e.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml")

	resp, err := e.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ports.ErrUnreachable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 400 {
		return nil, fmt.Errorf("%w: status %s", ports.ErrUnreachable, resp.Status)
	}

	body, err := charset.NewReader(resp.Body, resp.Header.Get("Content-Type"))
	if err != nil {
		return nil, fmt.Errorf("decode body: %w", err)
	}

	doc, err := goquery.NewDocumentFromReader(body)
	if err != nil {
		return nil, fmt.Errorf("parse document: %w", err)
	}

	doc.Find("script,noscript,style").Each(func(i int, s *goquery.Selection) {
		s.Remove()
	})

	return &domain.Article{
		URL:         rawURL,
		Title:       extractTitle(doc),
		CleanedText: extractText(doc),
		PublishedAt: extractPublishTime(doc),
	}, nil
}

func extractTitle(doc *goquery.Document) string {
	for _, selector := range titleSelectors {
		title := strings.TrimSpace(doc.Find(selector).First().Text())
		if title != "" {
			return title
		}
	}
	return ""
}

func extractText(doc *goquery.Document) string {
	var paragraphs []string
	for _, selector := range contentSelectors {
		doc.Find(selector).Each(func(i int, s *goquery.Selection) {
			text := strings.TrimSpace(s.Text())
			if len(text) > 20 {
				paragraphs = append(paragraphs, text)
			}
		})
		if len(paragraphs) >= 3 {
			break
		}
		paragraphs = paragraphs[:0]
	}

	// A page with fewer than three long paragraphs still counts; retry the
	// most permissive selector before giving up.
	if len(paragraphs) == 0 {
		doc.Find("p").Each(func(i int, s *goquery.Selection) {
			text := strings.TrimSpace(s.Text())
			if len(text) > 20 {
				paragraphs = append(paragraphs, text)
			}
		})
	}

	return strings.TrimSpace(strings.Join(paragraphs, "\n\n"))
}

func extractPublishTime(doc *goquery.Document) *time.Time {
	raw := doc.Find(`meta[property="article:published_time"]`).AttrOr("content", "")
	if raw == "" {
		raw = doc.Find(`meta[itemprop="datePublished"]`).AttrOr("content", "")
	}
	if raw == "" {
		return nil
	}

	for _, format := range publishTimeFormats {
		if ts, err := time.Parse(format, raw); err == nil {
			return &ts
		}
	}
	return nil
}
