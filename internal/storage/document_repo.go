package storage

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_document_store.go -package=mocks researchbot/internal/storage DocumentStore

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"researchbot/internal/corpus"
)

// DocumentStore defines the interface for document storage operations.
type DocumentStore interface {
	// Insert appends a document and its chunks to an entity in one
	// transaction. The document's Position is assigned from the entity's
	// current document count; IDs must be set (UUID) before calling.
	Insert(ctx context.Context, doc *DocumentRecord, chunks []ChunkRecord) error
	// LoadCorpus assembles an entity's documents with their chunks, in
	// append order. Returns an empty slice for an entity with no documents.
	LoadCorpus(ctx context.Context, entityID string) ([]corpus.Document, error)
}

// DocumentRepo provides methods for document and chunk operations.
// It implements the DocumentStore interface.
type DocumentRepo struct {
	db *sql.DB
}

// NewDocumentRepo creates a new DocumentRepo.
func NewDocumentRepo(db *sql.DB) *DocumentRepo {
	return &DocumentRepo{db: db}
}

// Insert appends a document and its chunks to an entity in one transaction.
func (r *DocumentRepo) Insert(ctx context.Context, doc *DocumentRecord, chunks []ChunkRecord) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	// Documents are append-only: the next position is the current count.
	err = tx.QueryRowContext(ctx,
		"SELECT COALESCE(MAX(position) + 1, 0) FROM documents WHERE entity_id = ?",
		doc.EntityID,
	).Scan(&doc.Position)
	if err != nil {
		return fmt.Errorf("failed to compute document position: %w", err)
	}

	_, err = tx.ExecContext(ctx,
		"INSERT INTO documents (id, entity_id, source, url, position) VALUES (?, ?, ?, ?, ?)",
		doc.ID, doc.EntityID, doc.Source, doc.URL, doc.Position,
	)
	if err != nil {
		return fmt.Errorf("failed to insert document: %w", err)
	}

	for _, chunk := range chunks {
		_, err = tx.ExecContext(ctx,
			"INSERT INTO chunks (id, document_id, chunk_index, text) VALUES (?, ?, ?, ?)",
			chunk.ID, chunk.DocumentID, chunk.ChunkIndex, chunk.Text,
		)
		if err != nil {
			return fmt.Errorf("failed to insert chunk: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit document: %w", err)
	}
	return nil
}

// LoadCorpus assembles an entity's documents with their chunks, in append
// order. Rows with blank chunk text are skipped rather than aborting the
// load.
func (r *DocumentRepo) LoadCorpus(ctx context.Context, entityID string) ([]corpus.Document, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT id, source, url FROM documents WHERE entity_id = ? ORDER BY position",
		entityID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query documents: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	type docRow struct {
		id  string
		doc corpus.Document
	}
	var docs []docRow
	for rows.Next() {
		var d docRow
		var source string
		if err := rows.Scan(&d.id, &source, &d.doc.URL); err != nil {
			return nil, fmt.Errorf("failed to scan document: %w", err)
		}
		d.doc.Source = corpus.SourceKind(source)
		docs = append(docs, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	documents := make([]corpus.Document, 0, len(docs))
	for _, d := range docs {
		chunks, err := r.loadChunks(ctx, d.id)
		if err != nil {
			return nil, err
		}
		d.doc.Chunks = chunks
		documents = append(documents, d.doc)
	}
	return documents, nil
}

// loadChunks returns a document's chunks ordered by chunk index.
func (r *DocumentRepo) loadChunks(ctx context.Context, documentID string) ([]corpus.Chunk, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT text FROM chunks WHERE document_id = ? ORDER BY chunk_index",
		documentID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query chunks: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var chunks []corpus.Chunk
	for rows.Next() {
		var text string
		if err := rows.Scan(&text); err != nil {
			return nil, fmt.Errorf("failed to scan chunk: %w", err)
		}
		if strings.TrimSpace(text) == "" {
			continue
		}
		chunks = append(chunks, corpus.Chunk{Text: text})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}
	return chunks, nil
}
