package storage

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_entity_store.go -package=mocks researchbot/internal/storage EntityStore

import (
	"context"
	"database/sql"
	"fmt"
)

// EntityStore defines the interface for entity storage operations.
type EntityStore interface {
	// Insert inserts a new entity. The record's ID must be set (UUID).
	// Inserting a name that already exists case-insensitively fails.
	Insert(ctx context.Context, entity *EntityRecord) error
	// GetByName looks an entity up by name, case-insensitively.
	// Returns ErrNotFound if no such entity exists.
	GetByName(ctx context.Context, name string) (*EntityRecord, error)
	// ListAll returns all entities ordered by creation time.
	ListAll(ctx context.Context) ([]EntityRecord, error)
}

// EntityRepo provides methods for entity operations.
// It implements the EntityStore interface.
type EntityRepo struct {
	db *sql.DB
}

// NewEntityRepo creates a new EntityRepo.
func NewEntityRepo(db *sql.DB) *EntityRepo {
	return &EntityRepo{db: db}
}

// Insert inserts a new entity. The unique index on the name column is
// case-insensitive, so "Ada Lovelace" and "ada lovelace" collide.
func (r *EntityRepo) Insert(ctx context.Context, entity *EntityRecord) error {
	_, err := r.db.ExecContext(ctx,
		"INSERT INTO entities (id, name) VALUES (?, ?)",
		entity.ID, entity.Name,
	)
	if err != nil {
		return fmt.Errorf("failed to insert entity: %w", err)
	}
	return nil
}

// GetByName looks an entity up by name, case-insensitively.
func (r *EntityRepo) GetByName(ctx context.Context, name string) (*EntityRecord, error) {
	var entity EntityRecord
	err := r.db.QueryRowContext(ctx,
		"SELECT id, name, created_at FROM entities WHERE name = ? COLLATE NOCASE",
		name,
	).Scan(&entity.ID, &entity.Name, &entity.CreatedAt)

	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query entity: %w", err)
	}

	return &entity, nil
}

// ListAll returns all entities ordered by creation time, oldest first.
func (r *EntityRepo) ListAll(ctx context.Context) ([]EntityRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT id, name, created_at FROM entities ORDER BY created_at, name",
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query entities: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var entities []EntityRecord
	for rows.Next() {
		var entity EntityRecord
		if err := rows.Scan(&entity.ID, &entity.Name, &entity.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan entity: %w", err)
		}
		entities = append(entities, entity)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return entities, nil
}
