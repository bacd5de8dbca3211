package http

import (
	"database/sql"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"researchbot/internal/answer"
	"researchbot/internal/handlers"
	"researchbot/internal/ingest"
	"researchbot/internal/service"
	"researchbot/internal/storage"
)

// Deps holds dependencies for the HTTP router.
type Deps struct {
	Resolver       answer.Resolver
	Entities       storage.EntityStore
	Documents      storage.DocumentStore
	Pipeline       *ingest.Pipeline
	Transcript     *service.Transcript
	DB             *sql.DB
	GeneratorReady bool
	IndexHTML      string // Embedded HTML content
}

// NewRouter creates a new HTTP router with the provided dependencies.
func NewRouter(deps *Deps) http.Handler {
	r := chi.NewRouter()

	// Add chi middleware
	r.Use(middleware.Recoverer)
	r.Use(LoggerMiddleware)

	// Add CORS middleware
	r.Use(CORS)

	askHandler := handlers.NewAskHandler(deps.Resolver, deps.Entities, deps.Documents, deps.Transcript)
	wikipediaHandler := handlers.NewWikipediaScrapeHandler(deps.Pipeline)
	urlHandler := handlers.NewURLScrapeHandler(deps.Pipeline)
	libraryHandler := handlers.NewLibraryHandler(deps.Entities, deps.Documents)
	transcriptHandler := handlers.NewTranscriptHandler(deps.Transcript)
	healthHandler := handlers.NewHealthHandler(deps.DB, deps.GeneratorReady)

	// Register API routes
	r.Route("/api", func(r chi.Router) {
		r.Method(http.MethodPost, "/ask", askHandler)
		r.Method(http.MethodPost, "/scrape/wikipedia", wikipediaHandler)
		r.Method(http.MethodPost, "/scrape/url", urlHandler)
		r.Method(http.MethodGet, "/library", libraryHandler)
		r.Method(http.MethodGet, "/transcript", transcriptHandler)
		r.Method(http.MethodDelete, "/transcript", transcriptHandler)
		r.Method(http.MethodGet, "/health", healthHandler)
	})

	// Serve HTML page at root
	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(deps.IndexHTML))
	})

	return r
}
