package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"researchbot/internal/contextutil"
	"researchbot/internal/ingest"
	"researchbot/internal/scrape"
	"researchbot/internal/service"
)

// WikipediaScrapeHandler handles HTTP requests to ingest a Wikipedia article.
type WikipediaScrapeHandler struct {
	pipeline *ingest.Pipeline
}

// NewWikipediaScrapeHandler creates a new WikipediaScrapeHandler.
func NewWikipediaScrapeHandler(pipeline *ingest.Pipeline) *WikipediaScrapeHandler {
	return &WikipediaScrapeHandler{pipeline: pipeline}
}

// WikipediaScrapeRequest represents the request payload for Wikipedia ingestion.
type WikipediaScrapeRequest struct {
	Topic string `json:"topic"`
}

// ServeHTTP handles HTTP requests to ingest a Wikipedia article.
func (h *WikipediaScrapeHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	if r.Method != http.MethodPost {
		logger.WarnContext(ctx, "method not allowed", "method", r.Method)
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	var req WikipediaScrapeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.WarnContext(ctx, "invalid request body", "error", err)
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Topic == "" {
		logger.WarnContext(ctx, "empty topic in request")
		writeError(w, http.StatusBadRequest, "Topic is required")
		return
	}

	report, err := h.pipeline.IngestTopic(ctx, req.Topic)
	if err != nil {
		h.handleIngestError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(report); err != nil {
		logger.ErrorContext(ctx, "failed to encode response", "error", err)
	}
}

func (h *WikipediaScrapeHandler) handleIngestError(w http.ResponseWriter, r *http.Request, err error) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)
	logger.ErrorContext(ctx, "wikipedia ingestion failed", "error", err)

	if errors.Is(err, service.ErrInvalidInput) {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if errors.Is(err, scrape.ErrPageNotFound) {
		writeError(w, http.StatusNotFound, "No Wikipedia article found for that topic")
		return
	}
	if errors.Is(err, scrape.ErrNoContent) {
		writeError(w, http.StatusUnprocessableEntity, "Article has no extractable text")
		return
	}
	writeError(w, http.StatusBadGateway, "Failed to fetch the article")
}

// URLScrapeHandler handles HTTP requests to ingest an arbitrary web page.
type URLScrapeHandler struct {
	pipeline *ingest.Pipeline
}

// NewURLScrapeHandler creates a new URLScrapeHandler.
func NewURLScrapeHandler(pipeline *ingest.Pipeline) *URLScrapeHandler {
	return &URLScrapeHandler{pipeline: pipeline}
}

// URLScrapeRequest represents the request payload for web page ingestion.
// Entity is optional; an omitted entity files the page under its own title.
type URLScrapeRequest struct {
	Entity string `json:"entity,omitempty"`
	URL    string `json:"url"`
}

// ServeHTTP handles HTTP requests to ingest an arbitrary web page.
func (h *URLScrapeHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	if r.Method != http.MethodPost {
		logger.WarnContext(ctx, "method not allowed", "method", r.Method)
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	var req URLScrapeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.WarnContext(ctx, "invalid request body", "error", err)
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.URL == "" {
		logger.WarnContext(ctx, "empty url in request")
		writeError(w, http.StatusBadRequest, "URL is required")
		return
	}

	report, err := h.pipeline.IngestURL(ctx, req.Entity, req.URL)
	if err != nil {
		logger.ErrorContext(ctx, "web page ingestion failed", "url", req.URL, "error", err)
		if errors.Is(err, service.ErrInvalidInput) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		if errors.Is(err, scrape.ErrNoContent) {
			writeError(w, http.StatusUnprocessableEntity, "Page has no extractable text")
			return
		}
		writeError(w, http.StatusBadGateway, "Failed to fetch the page")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(report); err != nil {
		logger.ErrorContext(ctx, "failed to encode response", "error", err)
	}
}

// writeError writes an error response shared by the scrape handlers.
func writeError(w http.ResponseWriter, statusCode int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(ErrorResponse{
		Error: message,
	})
}
