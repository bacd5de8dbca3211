package storage

import (
	"database/sql"
	"path/filepath"
	"testing"
)

func TestNew(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	tests := []struct {
		name    string
		path    string
		wantErr bool
	}{
		{
			name:    "valid path",
			path:    dbPath,
			wantErr: false,
		},
		{
			name:    "invalid path",
			path:    "/invalid/path/to/db.db",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, err := New(tt.path)

			if tt.wantErr {
				if err == nil {
					t.Errorf("New() expected error, got nil")
				}
				if db != nil {
					_ = db.Close()
				}
				return
			}

			if err != nil {
				t.Errorf("New() unexpected error: %v", err)
				return
			}

			if db == nil {
				t.Fatal("New() returned nil database")
			}

			// Verify connection pool settings
			if db.Stats().MaxOpenConnections != 25 {
				t.Errorf("New() MaxOpenConnections = %v, want 25", db.Stats().MaxOpenConnections)
			}

			_ = db.Close()
		})
	}
}

func TestMigrate(t *testing.T) {
	db := testDB(t)

	// Idempotent: a second run must not fail.
	if err := Migrate(db); err != nil {
		t.Fatalf("Migrate() second run failed: %v", err)
	}

	for _, table := range []string{"entities", "documents", "chunks"} {
		var name string
		err := db.QueryRow(
			"SELECT name FROM sqlite_master WHERE type='table' AND name=?", table,
		).Scan(&name)
		if err != nil {
			t.Errorf("table %s missing after Migrate(): %v", table, err)
		}
	}
}

// testDB opens a fresh migrated database in a temp directory.
func testDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	t.Cleanup(func() {
		_ = db.Close()
	})

	if err := Migrate(db); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	return db
}
