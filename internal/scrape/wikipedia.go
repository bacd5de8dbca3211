package scrape

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// DefaultWikipediaBaseURL is the English Wikipedia action API endpoint.
const DefaultWikipediaBaseURL = "https://en.wikipedia.org/w/api.php"

// wikipediaUserAgent identifies the bot to the MediaWiki API, which rejects
// anonymous clients.
const wikipediaUserAgent = "ResearchBot/2.0"

var (
	// ErrPageNotFound is returned when a topic resolves to no page.
	ErrPageNotFound = errors.New("page not found")
	// ErrNoContent is returned when a source yields no readable text.
	ErrNoContent = errors.New("no readable content")
)

// Page is the extracted text of one scraped source.
type Page struct {
	Title string
	URL   string
	Text  string
}

// WikipediaClient resolves topics against the MediaWiki action API and
// fetches plain-text page extracts.
type WikipediaClient struct {
	BaseURL string
	client  *http.Client
}

// NewWikipediaClient creates a Wikipedia client. An empty baseURL uses the
// English Wikipedia endpoint; a zero timeout defaults to ten seconds.
func NewWikipediaClient(baseURL string, timeout time.Duration) *WikipediaClient {
	if baseURL == "" {
		baseURL = DefaultWikipediaBaseURL
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &WikipediaClient{
		BaseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
	}
}

type searchResponse struct {
	Query struct {
		Search []struct {
			Title string `json:"title"`
		} `json:"search"`
	} `json:"query"`
}

type extractResponse struct {
	Query struct {
		Pages map[string]struct {
			PageID  int    `json:"pageid"`
			Title   string `json:"title"`
			Extract string `json:"extract"`
			FullURL string `json:"fullurl"`
		} `json:"pages"`
	} `json:"query"`
}

// FetchTopic resolves a free-text topic to its best-matching page and
// returns the page's canonical title, URL and plain-text body. A topic with
// no search hits or a page without text returns ErrPageNotFound or
// ErrNoContent respectively.
func (c *WikipediaClient) FetchTopic(ctx context.Context, topic string) (*Page, error) {
	title, err := c.searchTitle(ctx, topic)
	if err != nil {
		return nil, err
	}
	return c.fetchExtract(ctx, title)
}

// searchTitle runs a search query and returns the top hit's title.
func (c *WikipediaClient) searchTitle(ctx context.Context, topic string) (string, error) {
	params := url.Values{
		"action":   {"query"},
		"list":     {"search"},
		"srsearch": {topic},
		"srlimit":  {"1"},
		"format":   {"json"},
	}

	var resp searchResponse
	if err := c.get(ctx, params, &resp); err != nil {
		return "", fmt.Errorf("failed to search topic %q: %w", topic, err)
	}
	if len(resp.Query.Search) == 0 {
		return "", ErrPageNotFound
	}
	return resp.Query.Search[0].Title, nil
}

// fetchExtract fetches the plain-text extract and canonical URL for a title.
func (c *WikipediaClient) fetchExtract(ctx context.Context, title string) (*Page, error) {
	params := url.Values{
		"action":      {"query"},
		"prop":        {"extracts|info"},
		"explaintext": {"1"},
		"redirects":   {"1"},
		"inprop":      {"url"},
		"titles":      {title},
		"format":      {"json"},
	}

	var resp extractResponse
	if err := c.get(ctx, params, &resp); err != nil {
		return nil, fmt.Errorf("failed to fetch page %q: %w", title, err)
	}

	for _, page := range resp.Query.Pages {
		if page.PageID == 0 {
			// The API reports missing titles as a page without an ID.
			continue
		}
		if strings.TrimSpace(page.Extract) == "" {
			return nil, ErrNoContent
		}
		return &Page{
			Title: page.Title,
			URL:   page.FullURL,
			Text:  page.Extract,
		}, nil
	}
	return nil, ErrPageNotFound
}

// get performs one API request and decodes the JSON response into out.
func (c *WikipediaClient) get(ctx context.Context, params url.Values, out any) error {
	req, err := http.NewRequestWithContext(ctx, "GET", c.BaseURL+"?"+params.Encode(), nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", wikipediaUserAgent)

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("bad status %d: %s", resp.StatusCode, string(raw))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
