package models

// SplitMode is the unit a room splits its expenses by.
type SplitMode string

const (
	SplitByUser      SplitMode = "USER"
	SplitByHousehold SplitMode = "HOUSEHOLD"
)

// Valid reports whether m is a known split mode.
func (m SplitMode) Valid() bool {
	return m == SplitByUser || m == SplitByHousehold
}

// Room is the shared expense scope that owns transactions and participants.
type Room struct {
	// ID is the unique identifier for the room (UUID format).
	ID string

	// Name is the display name of the room (e.g., "Apartment 4B").
	Name string

	// SplitBy selects whether users or households are the participants.
	SplitBy SplitMode

	// Currency is the ISO 4217 code all of the room's amounts are in.
	// Empty means the configured default currency.
	Currency string

	// MemberIDs lists the user ids (user mode) or household ids
	// (household mode) that take part in the room.
	MemberIDs []string

	// CreatedAt is the Unix timestamp when the room was created.
	CreatedAt int64
}

// Category carries the display metadata of an expense category.
type Category struct {
	ID    string
	Name  string
	Icon  string
	Color string

	// RoomID is empty for system categories shared by every room.
	RoomID string
}
