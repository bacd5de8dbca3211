package scrape

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
)

// fakeWikipedia serves canned search and extract responses in the MediaWiki
// action API shape.
func fakeWikipedia(t *testing.T, searchHits []string, extract string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("User-Agent") == "" {
			t.Error("missing User-Agent header")
		}

		q := r.URL.Query()
		w.Header().Set("Content-Type", "application/json")

		switch q.Get("list") {
		case "search":
			hits := ""
			for i, title := range searchHits {
				if i > 0 {
					hits += ","
				}
				hits += fmt.Sprintf(`{"title":%q}`, title)
			}
			fmt.Fprintf(w, `{"query":{"search":[%s]}}`, hits)
		default:
			fmt.Fprintf(w,
				`{"query":{"pages":{"42":{"pageid":42,"title":"Ada Lovelace","extract":%q,"fullurl":"https://en.wikipedia.org/wiki/Ada_Lovelace"}}}}`,
				extract)
		}
	}))
}

func TestWikipediaClient_FetchTopic(t *testing.T) {
	server := fakeWikipedia(t, []string{"Ada Lovelace"}, "Ada Lovelace was a mathematician. She wrote the first program.")
	defer server.Close()

	client := NewWikipediaClient(server.URL, 0)
	page, err := client.FetchTopic(context.Background(), "ada lovelace")
	if err != nil {
		t.Fatalf("FetchTopic() unexpected error: %v", err)
	}

	if page.Title != "Ada Lovelace" {
		t.Errorf("Title = %q, want canonical title from source", page.Title)
	}
	if page.URL != "https://en.wikipedia.org/wiki/Ada_Lovelace" {
		t.Errorf("URL = %q, want full page URL", page.URL)
	}
	if page.Text == "" {
		t.Error("Text is empty")
	}
}

func TestWikipediaClient_FetchTopic_NotFound(t *testing.T) {
	server := fakeWikipedia(t, nil, "")
	defer server.Close()

	client := NewWikipediaClient(server.URL, 0)
	_, err := client.FetchTopic(context.Background(), "no such topic")
	if !errors.Is(err, ErrPageNotFound) {
		t.Errorf("FetchTopic() error = %v, want ErrPageNotFound", err)
	}
}

func TestWikipediaClient_FetchTopic_EmptyExtract(t *testing.T) {
	server := fakeWikipedia(t, []string{"Stub"}, "   ")
	defer server.Close()

	client := NewWikipediaClient(server.URL, 0)
	_, err := client.FetchTopic(context.Background(), "stub")
	if !errors.Is(err, ErrNoContent) {
		t.Errorf("FetchTopic() error = %v, want ErrNoContent", err)
	}
}

func TestWikipediaClient_FetchTopic_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client := NewWikipediaClient(server.URL, 0)
	if _, err := client.FetchTopic(context.Background(), "anything"); err == nil {
		t.Error("FetchTopic() expected error for server failure, got nil")
	}
}

func TestNewWikipediaClient_Defaults(t *testing.T) {
	client := NewWikipediaClient("", 0)
	if client.BaseURL != DefaultWikipediaBaseURL {
		t.Errorf("BaseURL = %q, want default endpoint", client.BaseURL)
	}
}
