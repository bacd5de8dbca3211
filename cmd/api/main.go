package main

import (
	_ "embed"
	"log"
	"log/slog"
	nethttp "net/http"
	"os"

	"researchbot/internal/answer"
	"researchbot/internal/config"
	"researchbot/internal/genai"
	"researchbot/internal/http"
	"researchbot/internal/ingest"
	"researchbot/internal/relevance"
	"researchbot/internal/scrape"
	"researchbot/internal/service"
	"researchbot/internal/storage"
)

//go:embed index.html
var indexHTML string

func main() {
	// Load configuration first (needed for log level)
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Configure structured logging with configurable level and format
	opts := &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}
	var handler slog.Handler
	if cfg.LogFormat == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}
	logger := slog.New(handler)
	slog.SetDefault(logger)
	slog.Debug("Logging configured", "level", cfg.LogLevel.String(), "format", cfg.LogFormat)

	// Initialize database
	db, err := storage.New(cfg.DBPath)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer func() {
		_ = db.Close()
	}()

	if err := storage.Migrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	slog.Info("Database initialized", "path", cfg.DBPath)

	// Create repository instances
	entityRepo := storage.NewEntityRepo(db)
	documentRepo := storage.NewDocumentRepo(db)

	// Create scrapers and the ingestion pipeline
	wikipediaClient := scrape.NewWikipediaClient(cfg.WikipediaAPIURL, cfg.ScrapeTimeout)
	pageScraper := scrape.NewPageScraper(cfg.ScrapeTimeout)
	pipeline := ingest.NewPipeline(wikipediaClient, pageScraper, entityRepo, documentRepo)
	slog.Info("Ingestion pipeline initialized", "wikipedia_api", cfg.WikipediaAPIURL)

	// Load category boost rules
	categories := relevance.DefaultCategories()
	if cfg.CategoryRulesPath != "" {
		categories, err = relevance.LoadCategories(cfg.CategoryRulesPath)
		if err != nil {
			log.Fatalf("Failed to load category rules: %v", err)
		}
		slog.Info("Category rules loaded", "path", cfg.CategoryRulesPath, "categories", len(categories))
	}

	// Create the remote generator when a key is configured. Without one the
	// resolver answers from local keyword search only.
	var generator answer.Generator
	if cfg.GenAIAPIKey != "" {
		generator = genai.NewClient(cfg.GenAIBaseURL, cfg.GenAIAPIKey, cfg.GenAIModel)
		slog.Info("Remote generator configured", "model", cfg.GenAIModel)
	} else {
		slog.Warn("GENAI_API_KEY not set, answering from local data only")
	}

	resolver := answer.NewResolver(generator, categories, cfg.GenAITimeout)
	transcript := service.NewTranscript(0)

	// Create router with dependencies
	deps := &http.Deps{
		Resolver:       resolver,
		Entities:       entityRepo,
		Documents:      documentRepo,
		Pipeline:       pipeline,
		Transcript:     transcript,
		DB:             db,
		GeneratorReady: generator != nil,
		IndexHTML:      indexHTML,
	}
	router := http.NewRouter(deps)

	// Start API server
	addr := ":" + cfg.APIPort
	slog.Info("Starting API server", "addr", addr)
	if err := nethttp.ListenAndServe(addr, router); err != nil {
		log.Fatalf("API server failed to start: %v", err)
	}
}
