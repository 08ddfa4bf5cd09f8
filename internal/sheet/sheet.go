// Package sheet is the record store garderoba keeps its tables in. A Backend
// holds spreadsheet-shaped tables (a header row followed by data rows) and
// Store layers record lookups, header handling and error classification on
// top of it.
package sheet

import (
	"context"
	"errors"
)

// Backend is a spreadsheet-like table store. Rows and columns are 1-based and
// row 1 of every table is its header.
type Backend interface {
	// Tables lists the names of existing tables.
	Tables(ctx context.Context) ([]string, error)

	// CreateTable adds a table whose first row is header.
	CreateTable(ctx context.Context, name string, header []string) error

	// Rows returns every row of the table, header included.
	Rows(ctx context.Context, table string) ([][]string, error)

	// AppendRows adds rows after the last non-empty row.
	AppendRows(ctx context.Context, table string, rows [][]string) error

	// SetCell writes a single value.
	SetCell(ctx context.Context, table string, row, col int, value string) error

	Close() error
}

var (
	// ErrStoreUnavailable wraps every failure of the underlying backend.
	ErrStoreUnavailable = errors.New("sheet store unavailable")

	ErrTableNotFound = errors.New("table not found")
	ErrTableExists   = errors.New("table already exists")
	ErrInvalidCell   = errors.New("invalid cell address")
)

// Row is the list of cell values of one data row.
type Row []string

// Get returns the value in column col, or "" when the row is shorter.
func (r Row) Get(col int) string {
	if col < 0 || col >= len(r) {
		return ""
	}
	return r[col]
}

// Record is a data row together with its position in the table. Index is
// 0-based and excludes the header; pass it back to Store.UpdateCell.
type Record struct {
	Index  int
	Values Row
}

// Predicate selects rows in Find and FindAll.
type Predicate func(Row) bool
