package store

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/erazemk/garderoba/internal/model"
	"github.com/erazemk/garderoba/internal/sheet"
)

// IntakeNewResponses registers every unprocessed form response with a name
// and flags the response as processed. It returns the number of people
// registered.
//
// The person is appended before the response is flagged, so a failure in
// between registers the same response again on the next run.
func IntakeNewResponses(ctx context.Context, s *sheet.Store) (int, error) {
	responses, err := s.ReadAll(ctx, sheet.TableResponses)
	if err != nil {
		return 0, fmt.Errorf("reading responses: %w", err)
	}

	registered := 0
	for _, r := range responses {
		name := r.Values.Get(sheet.ResponseName)
		if name == "" || isFlagSet(r.Values.Get(sheet.ResponseProcessed)) {
			continue
		}

		row := sheet.Row{
			uuid.NewString(),
			name,
			r.Values.Get(sheet.ResponsePhone),
			r.Values.Get(sheet.ResponseTimestamp),
		}
		if err := s.Append(ctx, sheet.TableRegistered, row); err != nil {
			return registered, fmt.Errorf("registering %q: %w", name, err)
		}
		if err := s.UpdateCell(ctx, sheet.TableResponses, r.Index, sheet.ResponseProcessed, flagSet); err != nil {
			return registered, fmt.Errorf("marking response processed: %w", err)
		}
		registered++
	}
	return registered, nil
}

// ListResponses returns form responses in table order, optionally only those
// not yet processed.
func ListResponses(ctx context.Context, s *sheet.Store, pendingOnly bool) ([]model.Response, error) {
	records, err := s.ReadAll(ctx, sheet.TableResponses)
	if err != nil {
		return nil, fmt.Errorf("listing responses: %w", err)
	}

	var responses []model.Response
	for _, r := range records {
		resp := model.Response{
			Timestamp: r.Values.Get(sheet.ResponseTimestamp),
			Name:      r.Values.Get(sheet.ResponseName),
			Phone:     r.Values.Get(sheet.ResponsePhone),
			Processed: isFlagSet(r.Values.Get(sheet.ResponseProcessed)),
		}
		if pendingOnly && resp.Processed {
			continue
		}
		responses = append(responses, resp)
	}
	return responses, nil
}

// FindPersonID returns the ID of the first person with exactly this name and
// phone, or "" if there is none.
func FindPersonID(ctx context.Context, s *sheet.Store, name, phone string) (string, error) {
	rec, ok, err := s.Find(ctx, sheet.TableRegistered, func(r sheet.Row) bool {
		return r.Get(sheet.PersonName) == name && r.Get(sheet.PersonPhone) == phone
	})
	if err != nil {
		return "", fmt.Errorf("finding person: %w", err)
	}
	if !ok {
		return "", nil
	}
	return rec.Values.Get(sheet.PersonID), nil
}

// GetPerson returns a person by ID, or nil if there is none.
func GetPerson(ctx context.Context, s *sheet.Store, id string) (*model.Person, error) {
	rec, ok, err := s.Find(ctx, sheet.TableRegistered, func(r sheet.Row) bool {
		return r.Get(sheet.PersonID) == id
	})
	if err != nil {
		return nil, fmt.Errorf("getting person: %w", err)
	}
	if !ok {
		return nil, nil
	}
	return personFromRow(rec.Values), nil
}

// FindPersonName returns the name and phone of a person, or two empty
// strings if the ID is unknown.
func FindPersonName(ctx context.Context, s *sheet.Store, id string) (string, string, error) {
	p, err := GetPerson(ctx, s, id)
	if err != nil || p == nil {
		return "", "", err
	}
	return p.Name, p.Phone, nil
}

// ListPeople returns all registered people in table order.
func ListPeople(ctx context.Context, s *sheet.Store) ([]model.Person, error) {
	records, err := s.ReadAll(ctx, sheet.TableRegistered)
	if err != nil {
		return nil, fmt.Errorf("listing people: %w", err)
	}

	people := make([]model.Person, 0, len(records))
	for _, r := range records {
		people = append(people, *personFromRow(r.Values))
	}
	return people, nil
}

func personFromRow(r sheet.Row) *model.Person {
	return &model.Person{
		ID:           r.Get(sheet.PersonID),
		Name:         r.Get(sheet.PersonName),
		Phone:        r.Get(sheet.PersonPhone),
		RegisteredAt: r.Get(sheet.PersonRegistered),
	}
}
