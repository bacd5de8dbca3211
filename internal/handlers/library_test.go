package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go.uber.org/mock/gomock"

	"researchbot/internal/corpus"
	"researchbot/internal/storage"
	storage_mocks "researchbot/internal/storage/mocks"
)

func TestLibraryHandler_Empty(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	entities := storage_mocks.NewMockEntityStore(ctrl)
	documents := storage_mocks.NewMockDocumentStore(ctrl)
	entities.EXPECT().ListAll(gomock.Any()).Return(nil, nil)

	handler := NewLibraryHandler(entities, documents)

	req := httptest.NewRequest(http.MethodGet, "/api/library", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %v, want %v", w.Code, http.StatusOK)
	}

	var resp LibraryResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Entities == nil {
		t.Error("entities should encode as an empty array, not null")
	}
	if len(resp.Entities) != 0 {
		t.Errorf("got %d entities, want 0", len(resp.Entities))
	}
}

func TestLibraryHandler_Listing(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	entities := storage_mocks.NewMockEntityStore(ctrl)
	documents := storage_mocks.NewMockDocumentStore(ctrl)

	entities.EXPECT().ListAll(gomock.Any()).Return([]storage.EntityRecord{
		{ID: "entity-1", Name: "Ada Lovelace"},
	}, nil)

	longText := strings.Repeat("word ", 40) // well past the preview cut
	documents.EXPECT().LoadCorpus(gomock.Any(), "entity-1").Return([]corpus.Document{
		{
			Source: corpus.SourceWikipedia,
			URL:    "https://en.wikipedia.org/wiki/Ada_Lovelace",
			Chunks: []corpus.Chunk{{Text: longText}, {Text: "second chunk"}},
		},
		{
			Source: corpus.SourceWeb,
			URL:    "https://example.com/ada",
			Chunks: []corpus.Chunk{{Text: "short"}},
		},
	}, nil)

	handler := NewLibraryHandler(entities, documents)

	req := httptest.NewRequest(http.MethodGet, "/api/library", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %v, body: %s", w.Code, w.Body.String())
	}

	var resp LibraryResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(resp.Entities) != 1 {
		t.Fatalf("got %d entities, want 1", len(resp.Entities))
	}

	entry := resp.Entities[0]
	if entry.Entity != "Ada Lovelace" {
		t.Errorf("entity = %q", entry.Entity)
	}
	if len(entry.Documents) != 2 {
		t.Fatalf("got %d documents, want 2", len(entry.Documents))
	}

	first := entry.Documents[0]
	if first.ChunkCount != 2 {
		t.Errorf("first document chunk count = %d, want 2", first.ChunkCount)
	}
	if !strings.HasSuffix(first.Preview, "...") {
		t.Errorf("long preview should be truncated, got %q", first.Preview)
	}
	if len([]rune(first.Preview)) != libraryPreviewRunes+3 {
		t.Errorf("preview length = %d runes", len([]rune(first.Preview)))
	}

	second := entry.Documents[1]
	if second.Preview != "short" {
		t.Errorf("short preview should pass through, got %q", second.Preview)
	}
}

func TestLibraryHandler_StorageFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	entities := storage_mocks.NewMockEntityStore(ctrl)
	documents := storage_mocks.NewMockDocumentStore(ctrl)
	entities.EXPECT().ListAll(gomock.Any()).Return(nil, errors.New("disk error"))

	handler := NewLibraryHandler(entities, documents)

	req := httptest.NewRequest(http.MethodGet, "/api/library", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	if w.Code != http.StatusInternalServerError {
		t.Errorf("status = %v, want %v", w.Code, http.StatusInternalServerError)
	}
}

func TestLibraryHandler_MethodNotAllowed(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	handler := NewLibraryHandler(
		storage_mocks.NewMockEntityStore(ctrl),
		storage_mocks.NewMockDocumentStore(ctrl))

	req := httptest.NewRequest(http.MethodPost, "/api/library", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	if w.Code != http.StatusMethodNotAllowed {
		t.Errorf("status = %v, want %v", w.Code, http.StatusMethodNotAllowed)
	}
}

func TestTruncateRunes(t *testing.T) {
	tests := []struct {
		name string
		text string
		n    int
		want string
	}{
		{"shorter than limit", "hello", 10, "hello"},
		{"exactly at limit", "hello", 5, "hello"},
		{"over limit", "hello world", 5, "hello..."},
		{"multibyte runes", "héllo wörld", 5, "héllo..."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := truncateRunes(tt.text, tt.n); got != tt.want {
				t.Errorf("truncateRunes(%q, %d) = %q, want %q", tt.text, tt.n, got, tt.want)
			}
		})
	}
}
