package scrape

import (
	"context"
	"fmt"
	"html"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"
)

// browserUserAgent is sent when scraping arbitrary pages; many sites refuse
// requests without a browser-looking agent.
const browserUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/115.0 Safari/537.36"

// maxPageBytes bounds how much of a page body is read.
const maxPageBytes = 10 << 20

var (
	titlePattern     = regexp.MustCompile(`(?is)<title[^>]*>(.*?)</title>`)
	paragraphPattern = regexp.MustCompile(`(?is)<p[^>]*>(.*?)</p>`)
	scriptPattern    = regexp.MustCompile(`(?is)<(?:script|style)[^>]*>.*?</(?:script|style)>`)
	tagPattern       = regexp.MustCompile(`<[^>]*>`)
	spacePattern     = regexp.MustCompile(`\s+`)
)

// PageScraper fetches arbitrary web pages and extracts their readable
// paragraph text. Extraction is regex-based tag stripping, which is
// sufficient for article-like pages; it makes no attempt to execute scripts
// or resolve dynamic content.
type PageScraper struct {
	client *http.Client
}

// NewPageScraper creates a page scraper. A zero timeout defaults to ten
// seconds.
func NewPageScraper(timeout time.Duration) *PageScraper {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &PageScraper{
		client: &http.Client{Timeout: timeout},
	}
}

// FetchURL downloads a page and returns its title and the concatenated text
// of its paragraph elements. Pages without readable paragraph text return
// ErrNoContent.
func (s *PageScraper) FetchURL(ctx context.Context, pageURL string) (*Page, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", pageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", browserUserAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", pageURL, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("bad status %d fetching %s", resp.StatusCode, pageURL)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxPageBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", pageURL, err)
	}

	doc := scriptPattern.ReplaceAllString(string(body), " ")

	text := extractParagraphs(doc)
	if text == "" {
		return nil, ErrNoContent
	}

	return &Page{
		Title: extractTitle(doc),
		URL:   pageURL,
		Text:  text,
	}, nil
}

// extractTitle pulls the page title, falling back to "Unknown" when the
// document has none.
func extractTitle(doc string) string {
	if m := titlePattern.FindStringSubmatch(doc); m != nil {
		if title := cleanFragment(m[1]); title != "" {
			return title
		}
	}
	return "Unknown"
}

// extractParagraphs joins the text of every <p> element.
func extractParagraphs(doc string) string {
	var parts []string
	for _, m := range paragraphPattern.FindAllStringSubmatch(doc, -1) {
		if p := cleanFragment(m[1]); p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, " ")
}

// cleanFragment strips nested tags, unescapes entities and collapses
// whitespace in one HTML fragment.
func cleanFragment(fragment string) string {
	text := tagPattern.ReplaceAllString(fragment, " ")
	text = html.UnescapeString(text)
	text = spacePattern.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}
