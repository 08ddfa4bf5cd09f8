package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/erazemk/garderoba/internal/model"
	"github.com/erazemk/garderoba/internal/sheet"
)

// newTestStore returns an empty in-memory store with the standard tables.
func newTestStore(t *testing.T) *sheet.Store {
	t.Helper()
	s := sheet.New(sheet.NewMemory(), sheet.Options{})
	require.NoError(t, s.EnsureTables(context.Background()))
	t.Cleanup(func() { s.Close() })
	return s
}

// fixClock pins the package clock for the duration of the test.
func fixClock(t *testing.T, at time.Time) {
	t.Helper()
	prev := now
	now = func() time.Time { return at }
	t.Cleanup(func() { now = prev })
}

func addResponse(t *testing.T, s *sheet.Store, timestamp, name, phone, processed string) {
	t.Helper()
	err := s.Append(context.Background(), sheet.TableResponses, sheet.Row{timestamp, name, phone, processed})
	require.NoError(t, err)
}

func addCell(t *testing.T, s *sheet.Store, id, room, row, column, level string) {
	t.Helper()
	_, err := CreateCell(context.Background(), s, id, model.Coordinates{Room: room, Row: row, Column: column, Level: level})
	require.NoError(t, err)
}
