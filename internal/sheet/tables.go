package sheet

// Standard table names.
const (
	TableResponses  = "responses"
	TableRegistered = "registered"
	TableItems      = "items"
	TableCells      = "cells"
)

// Columns of the responses table.
const (
	ResponseTimestamp = iota
	ResponseName
	ResponsePhone
	ResponseProcessed
)

// Columns of the registered table.
const (
	PersonID = iota
	PersonName
	PersonPhone
	PersonRegistered
)

// Columns of the items table.
const (
	ItemID = iota
	ItemName
	ItemOwner
	ItemReceipt
	ItemCell
	ItemDescription
	ItemDeposited
	ItemStatus
	ItemPickedUp
)

// Columns of the cells table.
const (
	CellID = iota
	CellRoom
	CellRow
	CellColumn
	CellLevel
	CellOccupied
)

// StandardTables lists the tables EnsureTables creates, in creation order.
var StandardTables = []string{
	TableResponses,
	TableRegistered,
	TableItems,
	TableCells,
}

// Headers holds the header row of each standard table.
var Headers = map[string][]string{
	TableResponses:  {"Timestamp", "Name", "Phone", "Processed"},
	TableRegistered: {"ID", "Name", "Phone", "Registered"},
	TableItems:      {"ID", "Name", "Owner", "Receipt", "Cell", "Description", "Deposited", "Status", "Picked Up"},
	TableCells:      {"ID", "Room", "Row", "Column", "Level", "Occupied"},
}
