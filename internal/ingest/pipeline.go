package ingest

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"researchbot/internal/corpus"
	"researchbot/internal/scrape"
	"researchbot/internal/service"
	"researchbot/internal/storage"
)

// TopicScraper fetches an article for a named topic.
type TopicScraper interface {
	FetchTopic(ctx context.Context, topic string) (*scrape.Page, error)
}

// URLScraper fetches the readable text of an arbitrary web page.
type URLScraper interface {
	FetchURL(ctx context.Context, pageURL string) (*scrape.Page, error)
}

// Report summarizes one ingestion.
type Report struct {
	EntityID   string `json:"entity_id"`
	EntityName string `json:"entity"`
	DocumentID string `json:"document_id"`
	Source     string `json:"source"`
	URL        string `json:"url"`
	Title      string `json:"title"`
	ChunkCount int    `json:"chunk_count"`
}

// Pipeline orchestrates scraping, chunking and storage of source documents.
type Pipeline struct {
	topics    TopicScraper
	pages     URLScraper
	entities  storage.EntityStore
	documents storage.DocumentStore
	logger    *slog.Logger
}

// NewPipeline creates a new ingestion pipeline.
func NewPipeline(topics TopicScraper, pages URLScraper, entities storage.EntityStore, documents storage.DocumentStore) *Pipeline {
	return &Pipeline{
		topics:    topics,
		pages:     pages,
		entities:  entities,
		documents: documents,
		logger:    slog.Default(),
	}
}

// getLogger extracts logger from context or returns default logger.
func (p *Pipeline) getLogger(ctx context.Context) *slog.Logger {
	type loggerKeyType string
	const loggerKey loggerKeyType = "logger"
	if ctxLogger := ctx.Value(loggerKey); ctxLogger != nil {
		if l, ok := ctxLogger.(*slog.Logger); ok {
			return l
		}
	}
	return p.logger
}

// IngestTopic looks the topic up on Wikipedia, chunks the article text and
// stores it under an entity named after the resolved article title.
func (p *Pipeline) IngestTopic(ctx context.Context, topic string) (*Report, error) {
	logger := p.getLogger(ctx)

	topic = strings.TrimSpace(topic)
	if topic == "" {
		return nil, service.WrapError(service.ErrInvalidInput, "topic must not be empty")
	}

	page, err := p.topics.FetchTopic(ctx, topic)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch topic %q: %w", topic, err)
	}

	report, err := p.store(ctx, page.Title, string(corpus.SourceWikipedia), page)
	if err != nil {
		return nil, err
	}

	logger.InfoContext(ctx, "ingested wikipedia article",
		"topic", topic, "title", page.Title, "chunks", report.ChunkCount)
	return report, nil
}

// IngestURL fetches an arbitrary web page and stores its readable text under
// the named entity. An empty entityName files the page under its own title.
func (p *Pipeline) IngestURL(ctx context.Context, entityName, pageURL string) (*Report, error) {
	logger := p.getLogger(ctx)

	pageURL = strings.TrimSpace(pageURL)
	if pageURL == "" {
		return nil, service.WrapError(service.ErrInvalidInput, "url must not be empty")
	}

	page, err := p.pages.FetchURL(ctx, pageURL)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch page %s: %w", pageURL, err)
	}

	entityName = strings.TrimSpace(entityName)
	if entityName == "" {
		entityName = page.Title
	}

	report, err := p.store(ctx, entityName, string(corpus.SourceWeb), page)
	if err != nil {
		return nil, err
	}

	logger.InfoContext(ctx, "ingested web page",
		"entity", entityName, "url", pageURL, "chunks", report.ChunkCount)
	return report, nil
}

// store chunks the page text and writes the entity (if new), the document and
// its chunks. Chunk rows are written in a single transaction by the document
// store so a failed ingestion leaves no partial document behind.
func (p *Pipeline) store(ctx context.Context, entityName, source string, page *scrape.Page) (*Report, error) {
	chunks := corpus.SplitChunks(page.Text)
	if len(chunks) == 0 {
		return nil, fmt.Errorf("no content extracted from %s", page.URL)
	}

	entity, err := p.getOrCreateEntity(ctx, entityName)
	if err != nil {
		return nil, err
	}

	doc := &storage.DocumentRecord{
		ID:       uuid.New().String(),
		EntityID: entity.ID,
		Source:   source,
		URL:      page.URL,
	}
	records := make([]storage.ChunkRecord, len(chunks))
	for i, chunk := range chunks {
		records[i] = storage.ChunkRecord{
			ID:         uuid.New().String(),
			DocumentID: doc.ID,
			ChunkIndex: i,
			Text:       chunk.Text,
		}
	}

	if err := p.documents.Insert(ctx, doc, records); err != nil {
		return nil, fmt.Errorf("failed to store document: %w", err)
	}

	return &Report{
		EntityID:   entity.ID,
		EntityName: entity.Name,
		DocumentID: doc.ID,
		Source:     source,
		URL:        page.URL,
		Title:      page.Title,
		ChunkCount: len(chunks),
	}, nil
}

// getOrCreateEntity returns the existing entity for the name, creating it on
// first use. Lookup is case-insensitive, so re-ingesting "ada lovelace"
// appends to the entity created as "Ada Lovelace".
func (p *Pipeline) getOrCreateEntity(ctx context.Context, name string) (*storage.EntityRecord, error) {
	entity, err := p.entities.GetByName(ctx, name)
	if err == nil {
		return entity, nil
	}
	if err != storage.ErrNotFound {
		return nil, fmt.Errorf("failed to look up entity: %w", err)
	}

	entity = &storage.EntityRecord{
		ID:   uuid.New().String(),
		Name: name,
	}
	if err := p.entities.Insert(ctx, entity); err != nil {
		return nil, fmt.Errorf("failed to create entity: %w", err)
	}
	return entity, nil
}
