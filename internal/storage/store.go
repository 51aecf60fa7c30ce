// Package storage defines the collaborators the report engine reads from.
package storage

import (
	"context"
	"errors"

	"github.com/mmynk/roomledger/internal/models"
)

// ErrNotFound is returned when a room or transaction does not exist.
var ErrNotFound = errors.New("not found")

// ExpenseFeed supplies the transactions of one room.
type ExpenseFeed interface {
	// ListExpenses returns the non-deleted expenses of a room whose date
	// falls within [from, to], both inclusive. A zero from or to leaves that
	// side of the range open. Ordering is not significant.
	ListExpenses(ctx context.Context, roomID string, from, to models.Date) ([]models.ExpenseRecord, error)
}

// ParticipantRoster supplies the split units of one room.
type ParticipantRoster interface {
	// ListParticipants returns the room's users or households, depending on
	// its split mode, in a stable roster order.
	ListParticipants(ctx context.Context, roomID string) ([]models.Participant, error)
}

// Store bundles everything a report request reads.
// This abstraction allows swapping storage backends without changing the
// report layer.
type Store interface {
	ExpenseFeed
	ParticipantRoster

	// GetRoom retrieves a room by its ID.
	// Returns ErrNotFound if the room does not exist.
	GetRoom(ctx context.Context, roomID string) (*models.Room, error)

	// ListCategories returns the system categories plus the room's own.
	ListCategories(ctx context.Context, roomID string) ([]models.Category, error)

	// PayerAssignments maps every user who may pay in the room to the
	// participant id that user's payments count towards: the user itself in
	// user mode, the owning household in household mode.
	PayerAssignments(ctx context.Context, roomID string) (map[string]string, error)

	// Close releases any resources held by the store.
	Close() error
}
