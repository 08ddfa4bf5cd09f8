package sheet

import (
	"context"
	"errors"
	"fmt"
	"os"
	"slices"
	"sync"

	"github.com/xuri/excelize/v2"
)

// defaultSheet is the sheet excelize puts into a new workbook.
const defaultSheet = "Sheet1"

// Workbook is a Backend over an XLSX file. Every write is saved to disk
// before the call returns.
type Workbook struct {
	mu   sync.Mutex
	path string
	f    *excelize.File

	// placeholder is true while the workbook only has the default sheet
	// excelize created; it is removed once a real table exists.
	placeholder bool
}

// OpenWorkbook opens the workbook at path, creating it if it does not exist.
func OpenWorkbook(path string) (*Workbook, error) {
	_, err := os.Stat(path)
	if errors.Is(err, os.ErrNotExist) {
		w := &Workbook{path: path, f: excelize.NewFile(), placeholder: true}
		if err := w.save(); err != nil {
			w.f.Close()
			return nil, err
		}
		return w, nil
	}
	if err != nil {
		return nil, fmt.Errorf("checking workbook: %w", err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("opening workbook: %w", err)
	}
	w := &Workbook{path: path, f: f}
	if sheets := f.GetSheetList(); len(sheets) == 1 && sheets[0] == defaultSheet {
		rows, err := f.GetRows(defaultSheet)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("reading workbook: %w", err)
		}
		w.placeholder = len(rows) == 0
	}
	return w, nil
}

func (w *Workbook) Tables(_ context.Context) ([]string, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	names := w.f.GetSheetList()
	if w.placeholder {
		names = slices.DeleteFunc(names, func(n string) bool { return n == defaultSheet })
	}
	return names, nil
}

func (w *Workbook) CreateTable(_ context.Context, name string, header []string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.exists(name) && !(w.placeholder && name == defaultSheet) {
		return fmt.Errorf("%w: %s", ErrTableExists, name)
	}

	index, err := w.f.NewSheet(name)
	if err != nil {
		return fmt.Errorf("creating sheet: %w", err)
	}
	if err := w.f.SetSheetRow(name, "A1", &header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	if w.placeholder && name != defaultSheet {
		if err := w.f.DeleteSheet(defaultSheet); err != nil {
			return fmt.Errorf("removing default sheet: %w", err)
		}
		w.f.SetActiveSheet(index)
	}
	w.placeholder = false

	return w.save()
}

func (w *Workbook) Rows(_ context.Context, table string) ([][]string, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if !w.exists(table) {
		return nil, fmt.Errorf("%w: %s", ErrTableNotFound, table)
	}
	rows, err := w.f.GetRows(table)
	if err != nil {
		return nil, fmt.Errorf("reading sheet: %w", err)
	}
	return rows, nil
}

func (w *Workbook) AppendRows(_ context.Context, table string, rows [][]string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if !w.exists(table) {
		return fmt.Errorf("%w: %s", ErrTableNotFound, table)
	}
	existing, err := w.f.GetRows(table)
	if err != nil {
		return fmt.Errorf("reading sheet: %w", err)
	}

	for i, r := range rows {
		cell, err := excelize.CoordinatesToCellName(1, len(existing)+i+1)
		if err != nil {
			return fmt.Errorf("converting coordinates: %w", err)
		}
		if err := w.f.SetSheetRow(table, cell, &r); err != nil {
			return fmt.Errorf("writing row %s: %w", cell, err)
		}
	}

	return w.save()
}

func (w *Workbook) SetCell(_ context.Context, table string, row, col int, value string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if !w.exists(table) {
		return fmt.Errorf("%w: %s", ErrTableNotFound, table)
	}
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidCell, err)
	}
	if err := w.f.SetCellStr(table, cell, value); err != nil {
		return fmt.Errorf("setting cell %s: %w", cell, err)
	}

	return w.save()
}

func (w *Workbook) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.f.Close()
}

func (w *Workbook) exists(name string) bool {
	index, err := w.f.GetSheetIndex(name)
	return err == nil && index >= 0
}

func (w *Workbook) save() error {
	if err := w.f.SaveAs(w.path); err != nil {
		return fmt.Errorf("saving workbook: %w", err)
	}
	return nil
}
