package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erazemk/garderoba/internal/model"
	"github.com/erazemk/garderoba/internal/sheet"
)

func TestCreateAndGetItem(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	deposited := time.Date(2026, 10, 19, 18, 30, 0, 0, time.Local)
	fixClock(t, deposited)

	item, err := CreateItem(ctx, s, "backpack", "owner-1", "R100", "7", "red")
	require.NoError(t, err)
	assert.NotEmpty(t, item.ID)
	assert.Equal(t, model.ItemStatusStored, item.Status)
	assert.Nil(t, item.PickedUpAt)

	got, err := GetItem(ctx, s, item.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "backpack", got.Name)
	assert.Equal(t, "owner-1", got.OwnerID)
	assert.Equal(t, "R100", got.ReceiptNumber)
	assert.Equal(t, "7", got.CellID)
	assert.Equal(t, "red", got.Description)
	assert.True(t, got.DepositedAt.Equal(deposited))
	assert.Equal(t, model.ItemStatusStored, got.Status)

	records, err := s.ReadAll(ctx, sheet.TableItems)
	require.NoError(t, err)
	assert.Equal(t, "19/10/2026 18:30:00", records[0].Values.Get(sheet.ItemDeposited))
	assert.Equal(t, "X", records[0].Values.Get(sheet.ItemStatus))
}

func TestGetItemUnknown(t *testing.T) {
	s := newTestStore(t)

	item, err := GetItem(context.Background(), s, "missing")
	require.NoError(t, err)
	assert.Nil(t, item)
}

func TestMarkItemPickedUp(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	item, err := CreateItem(ctx, s, "coat", "owner-1", "R1", "1", "")
	require.NoError(t, err)

	pickup := time.Date(2026, 10, 19, 23, 0, 0, 0, time.Local)
	fixClock(t, pickup)

	ok, err := MarkItemPickedUp(ctx, s, item.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	got, err := GetItem(ctx, s, item.ID)
	require.NoError(t, err)
	assert.Equal(t, model.ItemStatusPickedUp, got.Status)
	require.NotNil(t, got.PickedUpAt)
	assert.True(t, got.PickedUpAt.Equal(pickup))
}

func TestMarkItemPickedUpKeepsFirstTime(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	item, err := CreateItem(ctx, s, "coat", "owner-1", "R1", "1", "")
	require.NoError(t, err)

	first := time.Date(2026, 10, 19, 23, 0, 0, 0, time.Local)
	fixClock(t, first)
	_, err = MarkItemPickedUp(ctx, s, item.ID)
	require.NoError(t, err)

	fixClock(t, first.Add(time.Hour))
	ok, err := MarkItemPickedUp(ctx, s, item.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	got, err := GetItem(ctx, s, item.ID)
	require.NoError(t, err)
	assert.True(t, got.PickedUpAt.Equal(first))
}

func TestMarkItemPickedUpUnknown(t *testing.T) {
	s := newTestStore(t)

	ok, err := MarkItemPickedUp(context.Background(), s, "missing")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRevertPickup(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	item, err := CreateItem(ctx, s, "hat", "owner-1", "R2", "1", "")
	require.NoError(t, err)
	_, err = MarkItemPickedUp(ctx, s, item.ID)
	require.NoError(t, err)

	ok, err := RevertPickup(ctx, s, item.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	got, err := GetItem(ctx, s, item.ID)
	require.NoError(t, err)
	assert.Equal(t, model.ItemStatusStored, got.Status)
	assert.Nil(t, got.PickedUpAt)
}

func TestPickupTimeSetIffPickedUp(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	var ids []string
	for _, name := range []string{"a", "b", "c", "d"} {
		item, err := CreateItem(ctx, s, name, "owner", "R", "1", "")
		require.NoError(t, err)
		ids = append(ids, item.ID)
	}
	_, err := MarkItemPickedUp(ctx, s, ids[1])
	require.NoError(t, err)
	_, err = MarkItemPickedUp(ctx, s, ids[3])
	require.NoError(t, err)

	// A pickup time written without the status change does not count.
	records, err := s.ReadAll(ctx, sheet.TableItems)
	require.NoError(t, err)
	require.NoError(t, s.UpdateCell(ctx, sheet.TableItems, records[0].Index, sheet.ItemPickedUp, "19/10/2026 20:00:00"))

	items, err := ListItems(ctx, s, "")
	require.NoError(t, err)
	require.Len(t, items, 4)
	for _, item := range items {
		assert.Equal(t, item.IsPickedUp(), item.PickedUpAt != nil, "item %s", item.Name)
	}

	stored, err := ListItems(ctx, s, model.ItemStatusStored)
	require.NoError(t, err)
	assert.Len(t, stored, 2)
}

func TestListItemsByOwner(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	_, err := CreateItem(ctx, s, "coat", "alice", "R1", "1", "")
	require.NoError(t, err)
	_, err = CreateItem(ctx, s, "umbrella", "bob", "R2", "2", "")
	require.NoError(t, err)
	_, err = CreateItem(ctx, s, "scarf", "alice", "R3", "3", "")
	require.NoError(t, err)

	items, err := ListItemsByOwner(ctx, s, "alice")
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "coat", items[0].Name)
	assert.Equal(t, "scarf", items[1].Name)

	none, err := ListItemsByOwner(ctx, s, "nobody")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestItemRowsFromSpreadsheet(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	// Rows as typed into the sheet by hand: text-marked timestamps.
	require.NoError(t, s.Append(ctx, sheet.TableItems, sheet.Row{
		"i1", "bag", "p1", "0999", "7", "something nice", "'19/10/2026 18:00:00", "V", "'19/10/2026 22:15:00",
	}))
	require.NoError(t, s.Append(ctx, sheet.TableItems, sheet.Row{"i2", "bad", "p1", "", "7", "", "yesterday", "X"}))

	item, err := GetItem(ctx, s, "i1")
	require.NoError(t, err)
	assert.True(t, item.IsPickedUp())
	assert.Equal(t, 22, item.PickedUpAt.Hour())

	_, err = GetItem(ctx, s, "i2")
	assert.Error(t, err)
}

func TestListItemsNamesBadRow(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	fixClock(t, time.Date(2026, 10, 19, 12, 0, 0, 0, time.Local))

	_, err := CreateItem(ctx, s, "coat", "p1", "R1", "c1", "")
	require.NoError(t, err)
	require.NoError(t, s.Append(ctx, sheet.TableItems, sheet.Row{"i2", "scarf", "p1", "", "c2", "", "19/10/2026 12:00:00", "?"}))

	_, err = ListItems(ctx, s, "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "items row 3")
	assert.Contains(t, err.Error(), "i2")

	_, err = ListItemsByOwner(ctx, s, "p1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "items row 3")
}
