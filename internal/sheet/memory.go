package sheet

import (
	"context"
	"fmt"
	"slices"
	"sync"
)

// Memory is a Backend that keeps tables in process memory.
type Memory struct {
	mu     sync.Mutex
	order  []string
	tables map[string][][]string
}

// NewMemory returns an empty in-memory backend.
func NewMemory() *Memory {
	return &Memory{tables: make(map[string][][]string)}
}

func (m *Memory) Tables(_ context.Context) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.Clone(m.order), nil
}

func (m *Memory) CreateTable(_ context.Context, name string, header []string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.tables[name]; ok {
		return fmt.Errorf("%w: %s", ErrTableExists, name)
	}
	m.tables[name] = [][]string{slices.Clone(header)}
	m.order = append(m.order, name)
	return nil
}

func (m *Memory) Rows(_ context.Context, table string) ([][]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	rows, ok := m.tables[table]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrTableNotFound, table)
	}
	out := make([][]string, len(rows))
	for i, r := range rows {
		out[i] = slices.Clone(r)
	}
	return out, nil
}

func (m *Memory) AppendRows(_ context.Context, table string, rows [][]string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	existing, ok := m.tables[table]
	if !ok {
		return fmt.Errorf("%w: %s", ErrTableNotFound, table)
	}
	for _, r := range rows {
		existing = append(existing, slices.Clone(r))
	}
	m.tables[table] = existing
	return nil
}

func (m *Memory) SetCell(_ context.Context, table string, row, col int, value string) error {
	if row < 1 || col < 1 {
		return fmt.Errorf("%w: row %d, column %d", ErrInvalidCell, row, col)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	rows, ok := m.tables[table]
	if !ok {
		return fmt.Errorf("%w: %s", ErrTableNotFound, table)
	}
	for len(rows) < row {
		rows = append(rows, nil)
	}
	r := rows[row-1]
	for len(r) < col {
		r = append(r, "")
	}
	r[col-1] = value
	rows[row-1] = r
	m.tables[table] = rows
	return nil
}

func (m *Memory) Close() error { return nil }
