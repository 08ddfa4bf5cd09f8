package db

import (
	"database/sql"
	"fmt"
)

// schema stores spreadsheet tables cell by cell. Row 1 of every sheet is its
// header; rows and columns are 1-based like a spreadsheet.
const schema = `
CREATE TABLE IF NOT EXISTS sheets (
    name       TEXT PRIMARY KEY,
    created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS sheet_cells (
    sheet TEXT NOT NULL REFERENCES sheets(name),
    row   INTEGER NOT NULL CHECK (row > 0),
    col   INTEGER NOT NULL CHECK (col > 0),
    value TEXT NOT NULL DEFAULT '',
    PRIMARY KEY (sheet, row, col)
);
`

// EnsureSchema creates all tables and indexes if they don't already exist.
func EnsureSchema(db *sql.DB) error {
	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("creating schema: %w", err)
	}
	return nil
}
