package model

import "fmt"

// Coordinates locate a storage cell inside the cloakroom.
type Coordinates struct {
	Room   string `json:"room"`
	Row    string `json:"row"`
	Column string `json:"column"`
	Level  string `json:"level"`
}

func (c Coordinates) String() string {
	return fmt.Sprintf("room %s, row %s, column %s, level %s", c.Room, c.Row, c.Column, c.Level)
}

// Cell is a storage slot. The set of cells is fixed at setup; only the
// occupancy flag changes afterwards.
type Cell struct {
	ID string `json:"id"`
	Coordinates
	Occupied bool `json:"occupied"`
}
