package models

import (
	"errors"
	"fmt"
	"time"

	"github.com/mmynk/roomledger/internal/money"
)

// DateLayout is the wire and storage format of a calendar day.
const DateLayout = "2006-01-02"

var ErrInvalidDate = errors.New("invalid date")

// Date is a calendar day without a time component, held at UTC midnight.
type Date struct {
	time.Time
}

// NewDate creates a Date from year, month and day.
func NewDate(year int, month time.Month, day int) Date {
	return Date{Time: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// DateOf truncates t to its calendar day in t's own location.
func DateOf(t time.Time) Date {
	return NewDate(t.Year(), t.Month(), t.Day())
}

// ParseDate parses a YYYY-MM-DD string.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return Date{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return Date{Time: t}, nil
}

// String formats the date as YYYY-MM-DD, or "" for the zero date.
func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.Format(DateLayout)
}

// Before reports whether d is strictly earlier than other.
func (d Date) Before(other Date) bool {
	return d.Time.Before(other.Time)
}

// After reports whether d is strictly later than other.
func (d Date) After(other Date) bool {
	return d.Time.After(other.Time)
}

// ExpenseRecord is one non-deleted expense of a room.
// It is built once per report request and never mutated by the engine.
type ExpenseRecord struct {
	// ID is the unique identifier of the transaction (UUID format).
	ID string

	// Date is the calendar day the expense happened on.
	Date Date

	// Amount is the non-negative value of the expense.
	Amount money.Amount

	// CategoryID references the category the expense is filed under.
	CategoryID string

	// PayerID is the participant responsible for having paid.
	// In household mode the feed carries the paying user; the report layer
	// rewrites it to the owning household before balances are computed.
	PayerID string

	// Note is the free-text description entered with the expense.
	Note string
}
