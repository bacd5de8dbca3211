package storage

import "time"

// EntityRecord represents a research subject in the database.
type EntityRecord struct {
	ID        string // UUID
	Name      string // Canonical display name from the source
	CreatedAt time.Time
}

// DocumentRecord represents one ingested source document.
type DocumentRecord struct {
	ID        string // UUID
	EntityID  string // Foreign key to entities.id
	Source    string // Source kind ("Wikipedia", "Web")
	URL       string // Origin URL
	Position  int    // Append order within the entity (starts at 0)
	CreatedAt time.Time
}

// ChunkRecord represents one fixed-size word window of a document.
type ChunkRecord struct {
	ID         string // UUID
	DocumentID string // Foreign key to documents.id
	ChunkIndex int    // Index within document (starts at 0)
	Text       string // Chunk text content, non-empty
}
