package scrape

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestPageScraper_FetchURL(t *testing.T) {
	tests := []struct {
		name      string
		html      string
		wantTitle string
		wantText  string
		wantErr   error
	}{
		{
			name: "title and paragraphs extracted",
			html: `<html><head><title> Profile Page </title></head>
				<body><h1>Ignored</h1><p>First paragraph.</p><div><p>Second <b>bold</b> paragraph.</p></div></body></html>`,
			wantTitle: "Profile Page",
			wantText:  "First paragraph. Second bold paragraph.",
		},
		{
			name:      "entities unescaped",
			html:      `<title>A &amp; B</title><p>Worth &gt; $5&nbsp;billion</p>`,
			wantTitle: "A & B",
			wantText:  "Worth > $5 billion",
		},
		{
			name:      "scripts and styles stripped",
			html:      `<title>T</title><script>var p = "<p>not text</p>";</script><p>Real text.</p><style>p { color: red }</style>`,
			wantTitle: "T",
			wantText:  "Real text.",
		},
		{
			name:      "missing title falls back",
			html:      `<p>Content only.</p>`,
			wantTitle: "Unknown",
			wantText:  "Content only.",
		},
		{
			name:    "no paragraphs",
			html:    `<title>Empty</title><div>No paragraph elements here</div>`,
			wantErr: ErrNoContent,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if !strings.Contains(r.Header.Get("User-Agent"), "Mozilla") {
					t.Error("missing browser User-Agent")
				}
				_, _ = w.Write([]byte(tt.html))
			}))
			defer server.Close()

			page, err := NewPageScraper(0).FetchURL(context.Background(), server.URL)

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("FetchURL() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("FetchURL() unexpected error: %v", err)
			}
			if page.Title != tt.wantTitle {
				t.Errorf("Title = %q, want %q", page.Title, tt.wantTitle)
			}
			if page.Text != tt.wantText {
				t.Errorf("Text = %q, want %q", page.Text, tt.wantText)
			}
			if page.URL != server.URL {
				t.Errorf("URL = %q, want %q", page.URL, server.URL)
			}
		})
	}
}

func TestPageScraper_FetchURL_BadStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer server.Close()

	if _, err := NewPageScraper(0).FetchURL(context.Background(), server.URL); err == nil {
		t.Error("FetchURL() expected error for 404, got nil")
	}
}

func TestPageScraper_FetchURL_Unreachable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // connection refused

	if _, err := NewPageScraper(0).FetchURL(context.Background(), server.URL); err == nil {
		t.Error("FetchURL() expected error for unreachable host, got nil")
	}
}
