// Package desk runs the cloakroom counter: registering people, taking items
// in and handing them back. It coordinates the person, cell and item
// registries and undoes completed steps when a later one fails.
package desk

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/erazemk/garderoba/internal/model"
	"github.com/erazemk/garderoba/internal/sheet"
	"github.com/erazemk/garderoba/internal/store"
)

var (
	ErrCellNotFound   = errors.New("cell not found")
	ErrCellOccupied   = errors.New("cell is occupied")
	ErrItemNotFound   = errors.New("item not found")
	ErrPersonNotFound = errors.New("person not found")
	ErrInvalidRequest = errors.New("invalid request")
)

// Desk performs cloakroom operations against one store.
type Desk struct {
	Store *sheet.Store

	// Logger defaults to slog.Default().
	Logger *slog.Logger
}

// DepositRequest describes an item handed in at the counter.
type DepositRequest struct {
	Name          string
	OwnerID       string
	ReceiptNumber string
	Cell          model.Coordinates
	Description   string
}

// Intake registers all new form responses.
func (d *Desk) Intake(ctx context.Context) (int, error) {
	n, err := store.IntakeNewResponses(ctx, d.Store)
	if err != nil {
		return n, fmt.Errorf("intake: %w", err)
	}
	d.log().Info("responses registered", "count", n)
	return n, nil
}

// Deposit stores an item in the cell at req.Cell. The cell must exist and be
// free. If the item cannot be recorded the cell is released again.
func (d *Desk) Deposit(ctx context.Context, req DepositRequest) (*model.Item, error) {
	if req.Name == "" {
		return nil, fmt.Errorf("%w: item name must not be empty", ErrInvalidRequest)
	}

	owner, err := store.GetPerson(ctx, d.Store, req.OwnerID)
	if err != nil {
		return nil, fmt.Errorf("deposit: %w", err)
	}
	if owner == nil {
		return nil, fmt.Errorf("deposit: %w: %s", ErrPersonNotFound, req.OwnerID)
	}

	cellID, err := store.FindCellID(ctx, d.Store, req.Cell)
	if err != nil {
		return nil, fmt.Errorf("deposit: %w", err)
	}
	if cellID == "" {
		return nil, fmt.Errorf("deposit: %w: %s", ErrCellNotFound, req.Cell)
	}

	cell, err := store.GetCell(ctx, d.Store, cellID)
	if err != nil {
		return nil, fmt.Errorf("deposit: %w", err)
	}
	if cell == nil {
		return nil, fmt.Errorf("deposit: %w: %s", ErrCellNotFound, cellID)
	}
	if cell.Occupied {
		return nil, fmt.Errorf("deposit: %w: %s", ErrCellOccupied, cellID)
	}

	var item *model.Item
	err = d.run(ctx, []step{
		{
			name: "occupy cell",
			do: func(ctx context.Context) error {
				return d.setOccupied(ctx, cellID, true)
			},
			undo: func(ctx context.Context) error {
				return d.setOccupied(ctx, cellID, false)
			},
		},
		{
			name: "record item",
			do: func(ctx context.Context) error {
				var err error
				item, err = store.CreateItem(ctx, d.Store, req.Name, req.OwnerID, req.ReceiptNumber, cellID, req.Description)
				return err
			},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("deposit: %w", err)
	}

	d.log().Info("item deposited",
		"item", item.ID, "name", item.Name, "owner", owner.Name, "cell", cellID, "receipt", item.ReceiptNumber)
	return item, nil
}

// Pickup hands an item back and frees its cell. Picking up an item twice is
// not an error; the second call changes nothing.
func (d *Desk) Pickup(ctx context.Context, itemID string) (*model.Item, error) {
	item, err := store.GetItem(ctx, d.Store, itemID)
	if err != nil {
		return nil, fmt.Errorf("pickup: %w", err)
	}
	if item == nil {
		return nil, fmt.Errorf("pickup: %w: %s", ErrItemNotFound, itemID)
	}
	if item.IsPickedUp() {
		d.log().Info("item already picked up", "item", item.ID, "picked_up_at", item.PickedUpAt)
		return item, nil
	}

	err = d.run(ctx, []step{
		{
			name: "mark picked up",
			do: func(ctx context.Context) error {
				ok, err := store.MarkItemPickedUp(ctx, d.Store, itemID)
				if err == nil && !ok {
					err = fmt.Errorf("%w: %s", ErrItemNotFound, itemID)
				}
				return err
			},
			undo: func(ctx context.Context) error {
				_, err := store.RevertPickup(ctx, d.Store, itemID)
				return err
			},
		},
		{
			name: "free cell",
			do: func(ctx context.Context) error {
				ok, err := store.SetCellOccupied(ctx, d.Store, item.CellID, false)
				if err == nil && !ok {
					// Nothing to free; the item is still handed back.
					d.log().Warn("item cell does not exist", "item", itemID, "cell", item.CellID)
				}
				return err
			},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("pickup: %w", err)
	}

	item, err = store.GetItem(ctx, d.Store, itemID)
	if err != nil {
		return nil, fmt.Errorf("pickup: %w", err)
	}
	d.log().Info("item picked up", "item", item.ID, "name", item.Name, "cell", item.CellID)
	return item, nil
}

// OwnerItems lists the items deposited by the person with this name and
// phone.
func (d *Desk) OwnerItems(ctx context.Context, name, phone string) ([]model.Item, error) {
	ownerID, err := store.FindPersonID(ctx, d.Store, name, phone)
	if err != nil {
		return nil, fmt.Errorf("owner items: %w", err)
	}
	if ownerID == "" {
		return nil, fmt.Errorf("owner items: %w: %s (%s)", ErrPersonNotFound, name, phone)
	}
	return store.ListItemsByOwner(ctx, d.Store, ownerID)
}

func (d *Desk) setOccupied(ctx context.Context, cellID string, occupied bool) error {
	ok, err := store.SetCellOccupied(ctx, d.Store, cellID, occupied)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: %s", ErrCellNotFound, cellID)
	}
	return nil
}

func (d *Desk) log() *slog.Logger {
	if d.Logger != nil {
		return d.Logger
	}
	return slog.Default()
}
