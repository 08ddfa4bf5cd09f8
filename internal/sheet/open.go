package sheet

import (
	"context"
	"fmt"

	"github.com/erazemk/garderoba/internal/config"
)

// Open opens the backend selected by cfg, wraps it in a Store and makes sure
// the standard tables exist. The caller closes the returned Store.
func Open(ctx context.Context, cfg config.Config) (*Store, error) {
	var backend Backend
	var err error

	switch cfg.Backend {
	case config.BackendSQLite:
		backend, err = OpenSQLite(cfg.Document)
	case config.BackendXLSX:
		backend, err = OpenWorkbook(cfg.Document)
	case config.BackendMemory:
		backend = NewMemory()
	default:
		return nil, fmt.Errorf("%w: %q", config.ErrBackendUnknown, cfg.Backend)
	}
	if err != nil {
		return nil, unavailable("opening "+cfg.Backend+" store", err)
	}

	s := New(backend, Options{Cache: cfg.Cache})
	if err := s.EnsureTables(ctx); err != nil {
		s.Close()
		return nil, err
	}
	return s, nil
}
