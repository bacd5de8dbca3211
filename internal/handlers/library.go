package handlers

import (
	"encoding/json"
	"net/http"

	"researchbot/internal/contextutil"
	"researchbot/internal/storage"
)

// libraryPreviewRunes is how much of a document's opening text the library
// listing shows.
const libraryPreviewRunes = 80

// LibraryHandler handles HTTP requests for the ingested data summary.
type LibraryHandler struct {
	entities  storage.EntityStore
	documents storage.DocumentStore
}

// NewLibraryHandler creates a new LibraryHandler.
func NewLibraryHandler(entities storage.EntityStore, documents storage.DocumentStore) *LibraryHandler {
	return &LibraryHandler{entities: entities, documents: documents}
}

// LibraryEntry summarizes one entity in the library listing.
type LibraryEntry struct {
	Entity    string           `json:"entity"`
	Documents []DocumentSummary `json:"documents"`
}

// DocumentSummary summarizes one ingested document.
type DocumentSummary struct {
	Source     string `json:"source"`
	URL        string `json:"url"`
	ChunkCount int    `json:"chunk_count"`
	Preview    string `json:"preview"`
}

// LibraryResponse represents the library listing response.
type LibraryResponse struct {
	Entities []LibraryEntry `json:"entities"`
}

// ServeHTTP handles HTTP requests for the library listing.
func (h *LibraryHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	if r.Method != http.MethodGet {
		logger.WarnContext(ctx, "method not allowed", "method", r.Method)
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	records, err := h.entities.ListAll(ctx)
	if err != nil {
		logger.ErrorContext(ctx, "failed to list entities", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to list entities")
		return
	}

	resp := LibraryResponse{Entities: []LibraryEntry{}}
	for _, record := range records {
		documents, err := h.documents.LoadCorpus(ctx, record.ID)
		if err != nil {
			logger.ErrorContext(ctx, "failed to load documents", "entity", record.Name, "error", err)
			writeError(w, http.StatusInternalServerError, "Failed to load documents")
			return
		}

		entry := LibraryEntry{Entity: record.Name, Documents: []DocumentSummary{}}
		for _, doc := range documents {
			summary := DocumentSummary{
				Source:     string(doc.Source),
				URL:        doc.URL,
				ChunkCount: len(doc.Chunks),
			}
			if len(doc.Chunks) > 0 {
				summary.Preview = truncateRunes(doc.Chunks[0].Text, libraryPreviewRunes)
			}
			entry.Documents = append(entry.Documents, summary)
		}
		resp.Entities = append(resp.Entities, entry)
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		logger.ErrorContext(ctx, "failed to encode response", "error", err)
	}
}

// truncateRunes shortens text to at most n runes, appending "..." when cut.
func truncateRunes(text string, n int) string {
	runes := []rune(text)
	if len(runes) <= n {
		return text
	}
	return string(runes[:n]) + "..."
}
