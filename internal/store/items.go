package store

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/erazemk/garderoba/internal/model"
	"github.com/erazemk/garderoba/internal/sheet"
)

// CreateItem records a newly deposited item as stored in cellID.
func CreateItem(ctx context.Context, s *sheet.Store, name, ownerID, receiptNumber, cellID, description string) (*model.Item, error) {
	item := &model.Item{
		ID:            uuid.NewString(),
		Name:          name,
		OwnerID:       ownerID,
		ReceiptNumber: receiptNumber,
		CellID:        cellID,
		Description:   description,
		Status:        model.ItemStatusStored,
		DepositedAt:   now().Truncate(time.Second),
	}

	row := sheet.Row{
		item.ID,
		item.Name,
		item.OwnerID,
		item.ReceiptNumber,
		item.CellID,
		item.Description,
		formatTime(item.DepositedAt),
		encodeStatus(item.Status),
		"",
	}
	if err := s.Append(ctx, sheet.TableItems, row); err != nil {
		return nil, fmt.Errorf("creating item: %w", err)
	}
	return item, nil
}

// GetItem returns an item by ID, or nil if there is none.
func GetItem(ctx context.Context, s *sheet.Store, id string) (*model.Item, error) {
	rec, ok, err := findItem(ctx, s, id)
	if err != nil {
		return nil, fmt.Errorf("getting item: %w", err)
	}
	if !ok {
		return nil, nil
	}
	return itemFromRow(rec.Values)
}

// MarkItemPickedUp records that an item left the cloakroom. It reports false
// if the item does not exist. An item that is already picked up keeps its
// original pickup time.
func MarkItemPickedUp(ctx context.Context, s *sheet.Store, id string) (bool, error) {
	rec, ok, err := findItem(ctx, s, id)
	if err != nil {
		return false, fmt.Errorf("finding item: %w", err)
	}
	if !ok {
		return false, nil
	}

	status, err := decodeStatus(rec.Values.Get(sheet.ItemStatus))
	if err != nil {
		return false, fmt.Errorf("item %s: %w", id, err)
	}
	if status == model.ItemStatusPickedUp {
		return true, nil
	}

	// The status cell is written last: an item only counts as picked up
	// once it is set.
	pickedUp := formatTime(now())
	if err := s.UpdateCell(ctx, sheet.TableItems, rec.Index, sheet.ItemPickedUp, pickedUp); err != nil {
		return false, fmt.Errorf("setting pickup time: %w", err)
	}
	if err := s.UpdateCell(ctx, sheet.TableItems, rec.Index, sheet.ItemStatus, statusPickedUp); err != nil {
		return false, fmt.Errorf("setting item status: %w", err)
	}
	return true, nil
}

// RevertPickup returns a picked-up item to the stored state and clears its
// pickup time. It reports false if the item does not exist.
func RevertPickup(ctx context.Context, s *sheet.Store, id string) (bool, error) {
	rec, ok, err := findItem(ctx, s, id)
	if err != nil {
		return false, fmt.Errorf("finding item: %w", err)
	}
	if !ok {
		return false, nil
	}

	if err := s.UpdateCell(ctx, sheet.TableItems, rec.Index, sheet.ItemStatus, statusStored); err != nil {
		return false, fmt.Errorf("setting item status: %w", err)
	}
	if err := s.UpdateCell(ctx, sheet.TableItems, rec.Index, sheet.ItemPickedUp, ""); err != nil {
		return false, fmt.Errorf("clearing pickup time: %w", err)
	}
	return true, nil
}

// ListItemsByOwner returns the items of one owner in table order.
func ListItemsByOwner(ctx context.Context, s *sheet.Store, ownerID string) ([]model.Item, error) {
	records, err := s.FindAll(ctx, sheet.TableItems, func(r sheet.Row) bool {
		return r.Get(sheet.ItemOwner) == ownerID
	})
	if err != nil {
		return nil, fmt.Errorf("listing owner items: %w", err)
	}
	return scanItems(records, "")
}

// ListItems returns all items in table order, optionally filtered by status.
func ListItems(ctx context.Context, s *sheet.Store, status string) ([]model.Item, error) {
	records, err := s.ReadAll(ctx, sheet.TableItems)
	if err != nil {
		return nil, fmt.Errorf("listing items: %w", err)
	}
	return scanItems(records, status)
}

func findItem(ctx context.Context, s *sheet.Store, id string) (sheet.Record, bool, error) {
	return s.Find(ctx, sheet.TableItems, func(r sheet.Row) bool {
		return r.Get(sheet.ItemID) == id
	})
}

func scanItems(records []sheet.Record, status string) ([]model.Item, error) {
	var items []model.Item
	for _, r := range records {
		item, err := itemFromRow(r.Values)
		if err != nil {
			return nil, fmt.Errorf("%s row %d: %w", sheet.TableItems, sheetRow(r), err)
		}
		if status != "" && item.Status != status {
			continue
		}
		items = append(items, *item)
	}
	return items, nil
}

// sheetRow is the 1-based row a record occupies in the sheet, header
// included.
func sheetRow(r sheet.Record) int {
	return r.Index + 2
}

func itemFromRow(r sheet.Row) (*model.Item, error) {
	item := &model.Item{
		ID:            r.Get(sheet.ItemID),
		Name:          r.Get(sheet.ItemName),
		OwnerID:       r.Get(sheet.ItemOwner),
		ReceiptNumber: r.Get(sheet.ItemReceipt),
		CellID:        r.Get(sheet.ItemCell),
		Description:   r.Get(sheet.ItemDescription),
	}

	var err error
	item.Status, err = decodeStatus(r.Get(sheet.ItemStatus))
	if err != nil {
		return nil, fmt.Errorf("item %s: %w", item.ID, err)
	}

	item.DepositedAt, err = parseTime(r.Get(sheet.ItemDeposited))
	if err != nil {
		return nil, fmt.Errorf("item %s: parsing deposit time: %w", item.ID, err)
	}

	// A pickup time without the picked-up status is a pickup that never
	// completed.
	if item.Status == model.ItemStatusPickedUp {
		t, err := parseTime(r.Get(sheet.ItemPickedUp))
		if err != nil {
			return nil, fmt.Errorf("item %s: parsing pickup time: %w", item.ID, err)
		}
		item.PickedUpAt = &t
	}
	return item, nil
}
