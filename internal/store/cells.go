package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/erazemk/garderoba/internal/model"
	"github.com/erazemk/garderoba/internal/sheet"
)

// ErrCellExists is returned when adding a cell whose ID or coordinates are
// already taken.
var ErrCellExists = errors.New("cell already exists")

// CreateCell adds a free cell to the static cell set.
func CreateCell(ctx context.Context, s *sheet.Store, id string, coords model.Coordinates) (*model.Cell, error) {
	if id == "" {
		return nil, fmt.Errorf("cell id must not be empty")
	}

	_, taken, err := s.Find(ctx, sheet.TableCells, func(r sheet.Row) bool {
		return r.Get(sheet.CellID) == id || coordinatesOf(r) == coords
	})
	if err != nil {
		return nil, fmt.Errorf("checking cell: %w", err)
	}
	if taken {
		return nil, fmt.Errorf("%w: %s (%s)", ErrCellExists, id, coords)
	}

	row := sheet.Row{id, coords.Room, coords.Row, coords.Column, coords.Level, formatBool(false)}
	if err := s.Append(ctx, sheet.TableCells, row); err != nil {
		return nil, fmt.Errorf("creating cell: %w", err)
	}
	return &model.Cell{ID: id, Coordinates: coords}, nil
}

// FindCellID returns the ID of the cell at exactly these coordinates, or ""
// if there is none.
func FindCellID(ctx context.Context, s *sheet.Store, coords model.Coordinates) (string, error) {
	rec, ok, err := s.Find(ctx, sheet.TableCells, func(r sheet.Row) bool {
		return coordinatesOf(r) == coords
	})
	if err != nil {
		return "", fmt.Errorf("finding cell: %w", err)
	}
	if !ok {
		return "", nil
	}
	return rec.Values.Get(sheet.CellID), nil
}

// GetCell returns a cell by ID, or nil if there is none.
func GetCell(ctx context.Context, s *sheet.Store, id string) (*model.Cell, error) {
	rec, ok, err := findCell(ctx, s, id)
	if err != nil {
		return nil, fmt.Errorf("getting cell: %w", err)
	}
	if !ok {
		return nil, nil
	}
	return cellFromRow(rec.Values), nil
}

// SetCellOccupied sets the occupancy flag of a cell. It reports false if the
// cell does not exist. Occupancy conflicts are not checked here.
func SetCellOccupied(ctx context.Context, s *sheet.Store, id string, occupied bool) (bool, error) {
	rec, ok, err := findCell(ctx, s, id)
	if err != nil {
		return false, fmt.Errorf("finding cell: %w", err)
	}
	if !ok {
		return false, nil
	}

	if err := s.UpdateCell(ctx, sheet.TableCells, rec.Index, sheet.CellOccupied, formatBool(occupied)); err != nil {
		return false, fmt.Errorf("setting cell occupancy: %w", err)
	}
	return true, nil
}

// ListCells returns all cells in table order, optionally only free ones.
func ListCells(ctx context.Context, s *sheet.Store, freeOnly bool) ([]model.Cell, error) {
	records, err := s.ReadAll(ctx, sheet.TableCells)
	if err != nil {
		return nil, fmt.Errorf("listing cells: %w", err)
	}

	var cells []model.Cell
	for _, r := range records {
		c := cellFromRow(r.Values)
		if freeOnly && c.Occupied {
			continue
		}
		cells = append(cells, *c)
	}
	return cells, nil
}

func findCell(ctx context.Context, s *sheet.Store, id string) (sheet.Record, bool, error) {
	return s.Find(ctx, sheet.TableCells, func(r sheet.Row) bool {
		return r.Get(sheet.CellID) == id
	})
}

func coordinatesOf(r sheet.Row) model.Coordinates {
	return model.Coordinates{
		Room:   r.Get(sheet.CellRoom),
		Row:    r.Get(sheet.CellRow),
		Column: r.Get(sheet.CellColumn),
		Level:  r.Get(sheet.CellLevel),
	}
}

func cellFromRow(r sheet.Row) *model.Cell {
	return &model.Cell{
		ID:          r.Get(sheet.CellID),
		Coordinates: coordinatesOf(r),
		Occupied:    parseBool(r.Get(sheet.CellOccupied)),
	}
}
