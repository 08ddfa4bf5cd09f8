package db

import (
	"path/filepath"
	"testing"
)

func TestEnsureSchemaIsIdempotent(t *testing.T) {
	database := NewTestDB(t)

	if err := EnsureSchema(database); err != nil {
		t.Fatalf("second EnsureSchema: %v", err)
	}

	var count int
	err := database.QueryRow(
		`SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name IN ('sheets', 'sheet_cells')`,
	).Scan(&count)
	if err != nil {
		t.Fatalf("querying sqlite_master: %v", err)
	}
	if count != 2 {
		t.Errorf("expected 2 tables, got %d", count)
	}
}

func TestOpenFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "garderoba.sqlite3")

	database, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer database.Close()

	var mode string
	if err := database.QueryRow("PRAGMA journal_mode").Scan(&mode); err != nil {
		t.Fatalf("reading journal_mode: %v", err)
	}
	if mode != "wal" {
		t.Errorf("expected journal_mode wal, got %q", mode)
	}
}

func TestOpenAppliesPragmas(t *testing.T) {
	database := NewTestDB(t)

	tests := []struct {
		pragma string
		want   int
	}{
		{"busy_timeout", 5000},
		{"foreign_keys", 1},
	}
	for _, tt := range tests {
		var got int
		if err := database.QueryRow("PRAGMA " + tt.pragma).Scan(&got); err != nil {
			t.Fatalf("reading %s: %v", tt.pragma, err)
		}
		if got != tt.want {
			t.Errorf("%s = %d, want %d", tt.pragma, got, tt.want)
		}
	}
}

func TestCellsRequireSheet(t *testing.T) {
	database := NewTestDB(t)

	_, err := database.Exec(`INSERT INTO sheet_cells (sheet, row, col, value) VALUES ('missing', 1, 1, 'x')`)
	if err == nil {
		t.Fatal("expected foreign key violation for a cell of an unknown sheet")
	}

	if _, err := database.Exec(`INSERT INTO sheets (name) VALUES ('cells')`); err != nil {
		t.Fatalf("creating sheet: %v", err)
	}
	if _, err := database.Exec(`INSERT INTO sheet_cells (sheet, row, col, value) VALUES ('cells', 1, 1, 'ID')`); err != nil {
		t.Errorf("inserting cell of existing sheet: %v", err)
	}
}
