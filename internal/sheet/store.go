package sheet

import (
	"context"
	"fmt"
	"slices"
	"sync"
)

// Options configures a Store.
type Options struct {
	// Cache keeps the last ReadAll result per table until the next write to
	// that table goes through this Store.
	Cache bool
}

// Store is the record store over a Backend. It hides the header row and the
// 1-based addressing of the backend; callers work with Records.
type Store struct {
	backend Backend

	mu    sync.Mutex
	cache map[string][]Record // nil when caching is disabled
}

// New wraps a backend. The Store owns the backend and closes it in Close.
func New(backend Backend, opts Options) *Store {
	s := &Store{backend: backend}
	if opts.Cache {
		s.cache = make(map[string][]Record)
	}
	return s
}

// Close releases the backend.
func (s *Store) Close() error {
	if err := s.backend.Close(); err != nil {
		return unavailable("closing store", err)
	}
	return nil
}

// EnsureTables creates any missing standard table with its header row. An
// existing table with no rows at all gets the header written into row 1, so
// its first data row is not read back as the header.
func (s *Store) EnsureTables(ctx context.Context) error {
	existing, err := s.backend.Tables(ctx)
	if err != nil {
		return unavailable("listing tables", err)
	}

	for _, name := range StandardTables {
		if !slices.Contains(existing, name) {
			if err := s.backend.CreateTable(ctx, name, Headers[name]); err != nil {
				return unavailable("creating table "+name, err)
			}
			continue
		}

		rows, err := s.backend.Rows(ctx, name)
		if err != nil {
			return unavailable("reading "+name, err)
		}
		if len(rows) > 0 {
			continue
		}
		if err := s.backend.AppendRows(ctx, name, [][]string{Headers[name]}); err != nil {
			return unavailable("writing header of "+name, err)
		}
		s.invalidate(name)
	}
	return nil
}

// ReadAll returns the data rows of a table in table order. Rows shorter than
// the header are padded with empty values.
func (s *Store) ReadAll(ctx context.Context, table string) ([]Record, error) {
	if records, ok := s.cached(table); ok {
		return records, nil
	}

	rows, err := s.backend.Rows(ctx, table)
	if err != nil {
		return nil, unavailable("reading "+table, err)
	}
	if len(rows) == 0 {
		return nil, nil
	}

	width := len(rows[0])
	if header, ok := Headers[table]; ok && len(header) > width {
		width = len(header)
	}

	records := make([]Record, 0, len(rows)-1)
	for i, row := range rows[1:] {
		values := make(Row, max(width, len(row)))
		copy(values, row)
		records = append(records, Record{Index: i, Values: values})
	}

	s.store(table, records)
	return copyRecords(records), nil
}

// Find returns the first record matching pred. The boolean is false when no
// record matches; absence is not an error.
func (s *Store) Find(ctx context.Context, table string, pred Predicate) (Record, bool, error) {
	records, err := s.ReadAll(ctx, table)
	if err != nil {
		return Record{}, false, err
	}
	for _, r := range records {
		if pred(r.Values) {
			return r, true, nil
		}
	}
	return Record{}, false, nil
}

// FindAll returns every record matching pred, in table order.
func (s *Store) FindAll(ctx context.Context, table string, pred Predicate) ([]Record, error) {
	records, err := s.ReadAll(ctx, table)
	if err != nil {
		return nil, err
	}

	var matched []Record
	for _, r := range records {
		if pred(r.Values) {
			matched = append(matched, r)
		}
	}
	return matched, nil
}

// Append adds a data row at the end of the table.
func (s *Store) Append(ctx context.Context, table string, values Row) error {
	defer s.invalidate(table)

	if err := s.backend.AppendRows(ctx, table, [][]string{values}); err != nil {
		return unavailable("appending to "+table, err)
	}
	return nil
}

// UpdateCell sets column col of the record at index. Both are 0-based; the
// header row and the backend's 1-based addressing are accounted for here.
func (s *Store) UpdateCell(ctx context.Context, table string, index, col int, value string) error {
	if index < 0 || col < 0 {
		return fmt.Errorf("%w: record %d, column %d", ErrInvalidCell, index, col)
	}
	defer s.invalidate(table)

	if err := s.backend.SetCell(ctx, table, index+2, col+1, value); err != nil {
		return unavailable("updating "+table, err)
	}
	return nil
}

func (s *Store) cached(table string) ([]Record, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cache == nil {
		return nil, false
	}
	records, ok := s.cache[table]
	if !ok {
		return nil, false
	}
	return copyRecords(records), true
}

func (s *Store) store(table string, records []Record) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cache != nil {
		s.cache[table] = records
	}
}

func (s *Store) invalidate(table string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cache != nil {
		delete(s.cache, table)
	}
}

func copyRecords(records []Record) []Record {
	out := make([]Record, len(records))
	for i, r := range records {
		out[i] = Record{Index: r.Index, Values: slices.Clone(r.Values)}
	}
	return out
}

// unavailable marks a backend failure as ErrStoreUnavailable while keeping
// the original error in the chain.
func unavailable(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, ErrStoreUnavailable, err)
}
