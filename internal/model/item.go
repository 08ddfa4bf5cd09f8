package model

import "time"

// Item is a physical object deposited at the cloakroom and tracked until pickup.
type Item struct {
	ID            string     `json:"id"`
	Name          string     `json:"name"`
	OwnerID       string     `json:"owner_id"`
	ReceiptNumber string     `json:"receipt_number"`
	CellID        string     `json:"cell_id"`
	Description   string     `json:"description,omitempty"`
	Status        string     `json:"status"`
	DepositedAt   time.Time  `json:"deposited_at"`
	PickedUpAt    *time.Time `json:"picked_up_at,omitempty"`
}

// Item statuses.
const (
	ItemStatusStored   = "stored"
	ItemStatusPickedUp = "picked_up"
)

// IsPickedUp reports whether the item has left the cloakroom.
func (i *Item) IsPickedUp() bool {
	return i.Status == ItemStatusPickedUp
}
