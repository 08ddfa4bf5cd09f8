package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/erazemk/garderoba/internal/config"
	"github.com/erazemk/garderoba/internal/sheet"
)

func TestIntakeRegistersNewResponse(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	addResponse(t, s, "19/10/2026 10:00:00", "Alice", "555-1234", "")

	n, err := IntakeNewResponses(ctx, s)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	people, err := ListPeople(ctx, s)
	require.NoError(t, err)
	require.Len(t, people, 1)
	assert.Equal(t, "Alice", people[0].Name)
	assert.Equal(t, "555-1234", people[0].Phone)
	assert.Equal(t, "19/10/2026 10:00:00", people[0].RegisteredAt)
	assert.NotEmpty(t, people[0].ID)

	responses, err := ListResponses(ctx, s, false)
	require.NoError(t, err)
	require.Len(t, responses, 1)
	assert.True(t, responses[0].Processed)

	records, err := s.ReadAll(ctx, sheet.TableResponses)
	require.NoError(t, err)
	assert.Equal(t, "V", records[0].Values.Get(sheet.ResponseProcessed))
}

func TestIntakeIsIdempotent(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	addResponse(t, s, "t1", "Alice", "1", "")
	addResponse(t, s, "t2", "Bob", "2", "")

	n, err := IntakeNewResponses(ctx, s)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	n, err = IntakeNewResponses(ctx, s)
	require.NoError(t, err)
	assert.Equal(t, 0, n)

	people, err := ListPeople(ctx, s)
	require.NoError(t, err)
	assert.Len(t, people, 2)
}

func TestIntakeSkipsEmptyAndProcessed(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	addResponse(t, s, "t1", "", "1", "")
	addResponse(t, s, "t2", "Done", "2", "V")
	addResponse(t, s, "t3", "Carol", "3", "")

	n, err := IntakeNewResponses(ctx, s)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	pending, err := ListResponses(ctx, s, true)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, "", pending[0].Name)
}

func TestFindPersonIDMatchesIntake(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	pairs := [][2]string{{"Alice", "1"}, {"Alice", "2"}, {"Bob", "1"}}
	for _, p := range pairs {
		addResponse(t, s, "t", p[0], p[1], "")
	}
	_, err := IntakeNewResponses(ctx, s)
	require.NoError(t, err)

	people, err := ListPeople(ctx, s)
	require.NoError(t, err)
	require.Len(t, people, len(pairs))

	for _, p := range people {
		id, err := FindPersonID(ctx, s, p.Name, p.Phone)
		require.NoError(t, err)
		assert.Equal(t, p.ID, id, "lookup of %s/%s", p.Name, p.Phone)
	}

	id, err := FindPersonID(ctx, s, "Bob", "2")
	require.NoError(t, err)
	assert.Empty(t, id)
}

func TestIntakeIntoEmptyRegisteredSheet(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "cloakroom.xlsx")

	f := excelize.NewFile()
	_, err := f.NewSheet(sheet.TableResponses)
	require.NoError(t, err)
	_, err = f.NewSheet(sheet.TableRegistered)
	require.NoError(t, err)
	require.NoError(t, f.SetSheetRow(sheet.TableResponses, "A1", &[]string{"Timestamp", "Name", "Phone", "Processed"}))
	require.NoError(t, f.SetSheetRow(sheet.TableResponses, "A2", &[]string{"19/10/2026 10:00:00", "Alice", "555-1234"}))
	require.NoError(t, f.DeleteSheet("Sheet1"))
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	s, err := sheet.Open(ctx, config.Config{Backend: config.BackendXLSX, Document: path})
	require.NoError(t, err)
	defer s.Close()

	n, err := IntakeNewResponses(ctx, s)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	id, err := FindPersonID(ctx, s, "Alice", "555-1234")
	require.NoError(t, err)
	assert.NotEmpty(t, id)

	people, err := ListPeople(ctx, s)
	require.NoError(t, err)
	require.Len(t, people, 1)
	assert.Equal(t, id, people[0].ID)
}

func TestFindPersonIDReturnsFirstDuplicate(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Append(ctx, sheet.TableRegistered, sheet.Row{"first", "Alice", "1", ""}))
	require.NoError(t, s.Append(ctx, sheet.TableRegistered, sheet.Row{"second", "Alice", "1", ""}))

	id, err := FindPersonID(ctx, s, "Alice", "1")
	require.NoError(t, err)
	assert.Equal(t, "first", id)
}

func TestFindPersonName(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Append(ctx, sheet.TableRegistered, sheet.Row{"p1", "Alice", "555", ""}))

	name, phone, err := FindPersonName(ctx, s, "p1")
	require.NoError(t, err)
	assert.Equal(t, "Alice", name)
	assert.Equal(t, "555", phone)

	name, phone, err = FindPersonName(ctx, s, "nobody")
	require.NoError(t, err)
	assert.Empty(t, name)
	assert.Empty(t, phone)

	p, err := GetPerson(ctx, s, "nobody")
	require.NoError(t, err)
	assert.Nil(t, p)
}
