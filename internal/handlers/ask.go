package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/yuin/goldmark"

	"researchbot/internal/answer"
	"researchbot/internal/contextutil"
	"researchbot/internal/corpus"
	"researchbot/internal/service"
	"researchbot/internal/storage"
)

// Answer modes supported by the ask endpoint.
const (
	// ModeConcise answers from the whole corpus without citations.
	ModeConcise = "concise"
	// ModeCited answers from ranked chunks and lists the sources used.
	ModeCited = "cited"
)

// AskHandler handles HTTP requests for question answering.
type AskHandler struct {
	resolver   answer.Resolver
	entities   storage.EntityStore
	documents  storage.DocumentStore
	transcript *service.Transcript
	markdown   goldmark.Markdown
}

// NewAskHandler creates a new AskHandler.
func NewAskHandler(resolver answer.Resolver, entities storage.EntityStore, documents storage.DocumentStore, transcript *service.Transcript) *AskHandler {
	return &AskHandler{
		resolver:   resolver,
		entities:   entities,
		documents:  documents,
		transcript: transcript,
		markdown:   goldmark.New(),
	}
}

// AskRequest represents the HTTP request payload for questions.
type AskRequest struct {
	Entity   string `json:"entity"`
	Question string `json:"question"`
	Mode     string `json:"mode,omitempty"`
}

// AskResponse represents the HTTP response payload for questions.
type AskResponse struct {
	// The answer text, markdown when produced remotely.
	Answer string `json:"answer"`

	// The answer rendered as HTML for direct display.
	AnswerHTML string `json:"answer_html"`

	// Where the answer came from: "remote" or "local".
	Provenance string `json:"provenance"`

	// Sources consulted, present in cited mode only.
	Citations []CitationResponse `json:"citations,omitempty"`
}

// CitationResponse represents one consulted source in the HTTP response.
type CitationResponse struct {
	Source string `json:"source"`
	URL    string `json:"url"`
}

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// ServeHTTP handles HTTP requests for question answering.
func (h *AskHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	if r.Method != http.MethodPost {
		logger.WarnContext(ctx, "method not allowed", "method", r.Method)
		h.writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	var req AskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.WarnContext(ctx, "invalid request body", "error", err)
		h.writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	req.Entity = strings.TrimSpace(req.Entity)
	req.Question = strings.TrimSpace(req.Question)
	if req.Entity == "" {
		logger.WarnContext(ctx, "empty entity in request")
		h.writeError(w, http.StatusBadRequest, "Entity is required")
		return
	}
	if req.Question == "" {
		logger.WarnContext(ctx, "empty question in request")
		h.writeError(w, http.StatusBadRequest, "Question is required")
		return
	}

	mode := strings.ToLower(strings.TrimSpace(req.Mode))
	switch mode {
	case "":
		mode = ModeConcise
	case ModeConcise, ModeCited:
	default:
		logger.WarnContext(ctx, "invalid answer mode", "mode", req.Mode)
		h.writeError(w, http.StatusBadRequest, "Mode must be \"concise\" or \"cited\"")
		return
	}

	entity, err := h.loadEntity(r, req.Entity)
	if err == storage.ErrNotFound {
		logger.WarnContext(ctx, "unknown entity", "entity", req.Entity)
		h.writeError(w, http.StatusNotFound, "No data for that entity. Scrape it first.")
		return
	}
	if err != nil {
		logger.ErrorContext(ctx, "failed to load entity corpus", "entity", req.Entity, "error", err)
		h.writeError(w, http.StatusInternalServerError, "Failed to load entity data")
		return
	}

	var result answer.Result
	if mode == ModeCited {
		result, err = h.resolver.AskMultiSource(ctx, entity, req.Question)
	} else {
		result, err = h.resolver.Ask(ctx, entity, req.Question)
	}
	if err != nil {
		logger.ErrorContext(ctx, "failed to resolve answer", "entity", req.Entity, "error", err)
		h.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	h.transcript.Append(entity.Name, service.Exchange{
		Question:   req.Question,
		Answer:     result.Answer,
		Provenance: string(result.Provenance),
		AskedAt:    time.Now().UTC(),
	})

	resp := AskResponse{
		Answer:     result.Answer,
		AnswerHTML: h.renderHTML(result.Answer),
		Provenance: string(result.Provenance),
	}
	for _, citation := range result.Citations {
		resp.Citations = append(resp.Citations, CitationResponse{
			Source: citation.Source,
			URL:    citation.URL,
		})
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		logger.ErrorContext(ctx, "failed to encode response", "error", err)
	}
}

// loadEntity loads the named entity and all its documents from storage.
func (h *AskHandler) loadEntity(r *http.Request, name string) (*corpus.Entity, error) {
	ctx := r.Context()

	record, err := h.entities.GetByName(ctx, name)
	if err != nil {
		return nil, err
	}

	documents, err := h.documents.LoadCorpus(ctx, record.ID)
	if err != nil {
		return nil, err
	}

	return &corpus.Entity{
		Name:      record.Name,
		Documents: documents,
	}, nil
}

// renderHTML converts a markdown answer to HTML. Remote answers often
// contain markdown; local extracts pass through as plain paragraphs.
func (h *AskHandler) renderHTML(markdown string) string {
	var buf bytes.Buffer
	if err := h.markdown.Convert([]byte(markdown), &buf); err != nil {
		return markdown
	}
	return buf.String()
}

// writeError writes an error response.
func (h *AskHandler) writeError(w http.ResponseWriter, statusCode int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(ErrorResponse{
		Error: message,
	})
}
