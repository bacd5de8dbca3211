package storage

import (
	"context"
	"testing"

	"github.com/google/uuid"
)

func TestEntityRepo_InsertAndGetByName(t *testing.T) {
	repo := NewEntityRepo(testDB(t))
	ctx := context.Background()

	record := &EntityRecord{ID: uuid.New().String(), Name: "Ada Lovelace"}
	if err := repo.Insert(ctx, record); err != nil {
		t.Fatalf("Insert() unexpected error: %v", err)
	}

	tests := []struct {
		name   string
		lookup string
	}{
		{"exact name", "Ada Lovelace"},
		{"lowercase", "ada lovelace"},
		{"uppercase", "ADA LOVELACE"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := repo.GetByName(ctx, tt.lookup)
			if err != nil {
				t.Fatalf("GetByName(%q) unexpected error: %v", tt.lookup, err)
			}
			if got.ID != record.ID {
				t.Errorf("GetByName(%q) ID = %q, want %q", tt.lookup, got.ID, record.ID)
			}
			// The canonical form from the source is preserved.
			if got.Name != "Ada Lovelace" {
				t.Errorf("GetByName(%q) Name = %q, want canonical form", tt.lookup, got.Name)
			}
		})
	}
}

func TestEntityRepo_GetByName_NotFound(t *testing.T) {
	repo := NewEntityRepo(testDB(t))

	_, err := repo.GetByName(context.Background(), "nobody")
	if err != ErrNotFound {
		t.Errorf("GetByName() error = %v, want ErrNotFound", err)
	}
}

func TestEntityRepo_Insert_CaseInsensitiveDuplicate(t *testing.T) {
	repo := NewEntityRepo(testDB(t))
	ctx := context.Background()

	if err := repo.Insert(ctx, &EntityRecord{ID: uuid.New().String(), Name: "Grace Hopper"}); err != nil {
		t.Fatalf("Insert() unexpected error: %v", err)
	}

	err := repo.Insert(ctx, &EntityRecord{ID: uuid.New().String(), Name: "grace hopper"})
	if err == nil {
		t.Error("Insert() expected error for case-insensitive duplicate, got nil")
	}
}

func TestEntityRepo_ListAll(t *testing.T) {
	repo := NewEntityRepo(testDB(t))
	ctx := context.Background()

	empty, err := repo.ListAll(ctx)
	if err != nil {
		t.Fatalf("ListAll() unexpected error: %v", err)
	}
	if len(empty) != 0 {
		t.Errorf("ListAll() on empty store returned %d entities", len(empty))
	}

	for _, name := range []string{"Alpha", "Beta"} {
		if err := repo.Insert(ctx, &EntityRecord{ID: uuid.New().String(), Name: name}); err != nil {
			t.Fatalf("Insert(%q) unexpected error: %v", name, err)
		}
	}

	all, err := repo.ListAll(ctx)
	if err != nil {
		t.Fatalf("ListAll() unexpected error: %v", err)
	}
	if len(all) != 2 {
		t.Errorf("ListAll() returned %d entities, want 2", len(all))
	}
}
