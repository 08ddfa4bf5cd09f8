package sheet

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/erazemk/garderoba/internal/db"
)

// SQLite is a Backend that stores every table cell by cell in a SQLite
// database.
type SQLite struct {
	db *sql.DB
}

// OpenSQLite opens (or creates) the database at path and ensures its schema.
func OpenSQLite(path string) (*SQLite, error) {
	database, err := db.Open(path)
	if err != nil {
		return nil, err
	}
	if err := db.EnsureSchema(database); err != nil {
		database.Close()
		return nil, err
	}
	return &SQLite{db: database}, nil
}

// NewSQLite uses an already opened database with the schema applied.
func NewSQLite(database *sql.DB) *SQLite {
	return &SQLite{db: database}
}

func (s *SQLite) Tables(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT name FROM sheets ORDER BY rowid`)
	if err != nil {
		return nil, fmt.Errorf("listing sheets: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scanning sheet: %w", err)
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

func (s *SQLite) CreateTable(ctx context.Context, name string, header []string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	exists, err := sheetExists(ctx, tx, name)
	if err != nil {
		return err
	}
	if exists {
		return fmt.Errorf("%w: %s", ErrTableExists, name)
	}

	if _, err := tx.ExecContext(ctx, `INSERT INTO sheets (name) VALUES (?)`, name); err != nil {
		return fmt.Errorf("creating sheet: %w", err)
	}
	if err := insertRow(ctx, tx, name, 1, header); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing sheet creation: %w", err)
	}
	return nil
}

func (s *SQLite) Rows(ctx context.Context, table string) ([][]string, error) {
	exists, err := sheetExists(ctx, s.db, table)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, fmt.Errorf("%w: %s", ErrTableNotFound, table)
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT row, col, value FROM sheet_cells WHERE sheet = ? ORDER BY row, col`, table,
	)
	if err != nil {
		return nil, fmt.Errorf("reading sheet: %w", err)
	}
	defer rows.Close()

	var out [][]string
	for rows.Next() {
		var r, c int
		var value string
		if err := rows.Scan(&r, &c, &value); err != nil {
			return nil, fmt.Errorf("scanning cell: %w", err)
		}
		for len(out) < r {
			out = append(out, nil)
		}
		line := out[r-1]
		for len(line) < c {
			line = append(line, "")
		}
		line[c-1] = value
		out[r-1] = line
	}
	return out, rows.Err()
}

func (s *SQLite) AppendRows(ctx context.Context, table string, rows [][]string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	exists, err := sheetExists(ctx, tx, table)
	if err != nil {
		return err
	}
	if !exists {
		return fmt.Errorf("%w: %s", ErrTableNotFound, table)
	}

	var last int
	err = tx.QueryRowContext(ctx,
		`SELECT COALESCE(MAX(row), 0) FROM sheet_cells WHERE sheet = ? AND value != ''`, table,
	).Scan(&last)
	if err != nil {
		return fmt.Errorf("finding last row: %w", err)
	}

	for i, r := range rows {
		if err := insertRow(ctx, tx, table, last+i+1, r); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing append: %w", err)
	}
	return nil
}

func (s *SQLite) SetCell(ctx context.Context, table string, row, col int, value string) error {
	if row < 1 || col < 1 {
		return fmt.Errorf("%w: row %d, column %d", ErrInvalidCell, row, col)
	}

	exists, err := sheetExists(ctx, s.db, table)
	if err != nil {
		return err
	}
	if !exists {
		return fmt.Errorf("%w: %s", ErrTableNotFound, table)
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO sheet_cells (sheet, row, col, value) VALUES (?, ?, ?, ?)
		 ON CONFLICT (sheet, row, col) DO UPDATE SET value = excluded.value`,
		table, row, col, value,
	)
	if err != nil {
		return fmt.Errorf("setting cell: %w", err)
	}
	return nil
}

func (s *SQLite) Close() error {
	return s.db.Close()
}

type querier interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func sheetExists(ctx context.Context, q querier, name string) (bool, error) {
	var count int
	err := q.QueryRowContext(ctx, `SELECT COUNT(*) FROM sheets WHERE name = ?`, name).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("checking sheet: %w", err)
	}
	return count > 0, nil
}

func insertRow(ctx context.Context, tx *sql.Tx, sheet string, row int, values []string) error {
	for i, v := range values {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO sheet_cells (sheet, row, col, value) VALUES (?, ?, ?, ?)
			 ON CONFLICT (sheet, row, col) DO UPDATE SET value = excluded.value`,
			sheet, row, i+1, v,
		)
		if err != nil {
			return fmt.Errorf("writing row %d: %w", row, err)
		}
	}
	return nil
}
