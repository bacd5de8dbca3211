package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"researchbot/internal/contextutil"
	"researchbot/internal/service"
)

// TranscriptHandler handles HTTP requests for the per-entity question log.
type TranscriptHandler struct {
	transcript *service.Transcript
}

// NewTranscriptHandler creates a new TranscriptHandler.
func NewTranscriptHandler(transcript *service.Transcript) *TranscriptHandler {
	return &TranscriptHandler{transcript: transcript}
}

// TranscriptResponse represents the recorded exchanges for one entity.
type TranscriptResponse struct {
	Entity    string             `json:"entity"`
	Exchanges []service.Exchange `json:"exchanges"`
}

// ServeHTTP handles GET (read) and DELETE (clear) for an entity's transcript.
// The entity is passed as the "entity" query parameter.
func (h *TranscriptHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	entity := strings.TrimSpace(r.URL.Query().Get("entity"))
	if entity == "" {
		logger.WarnContext(ctx, "missing entity parameter")
		writeError(w, http.StatusBadRequest, "Entity query parameter is required")
		return
	}

	switch r.Method {
	case http.MethodGet:
		exchanges := h.transcript.Get(entity)
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(TranscriptResponse{
			Entity:    entity,
			Exchanges: exchanges,
		}); err != nil {
			logger.ErrorContext(ctx, "failed to encode response", "error", err)
		}

	case http.MethodDelete:
		h.transcript.Clear(entity)
		logger.InfoContext(ctx, "transcript cleared", "entity", entity)
		w.WriteHeader(http.StatusNoContent)

	default:
		logger.WarnContext(ctx, "method not allowed", "method", r.Method)
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
	}
}
