package calculator

import (
	"errors"
	"fmt"

	"github.com/mmynk/roomledger/internal/models"
	"github.com/mmynk/roomledger/internal/money"
)

var (
	// ErrInvalidInput covers an empty roster, negative amounts and
	// malformed dates. Nothing is computed when it is returned.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnknownParticipant is returned when a record's payer is not one of
	// the supplied participants.
	ErrUnknownParticipant = errors.New("unknown participant")
)

// PrecisionWarning reports rounding drift that exceeds the tolerance.
// It is not fatal: results are still returned alongside it.
type PrecisionWarning struct {
	// Drift is the sum of all nets after rounding each to the display unit.
	Drift     money.Amount
	Tolerance money.Amount
}

func (w *PrecisionWarning) Error() string {
	return fmt.Sprintf("rounded balances drift by %s (tolerance %s)", w.Drift, w.Tolerance)
}

// validateRecords rejects records the engine cannot reduce safely.
func validateRecords(records []models.ExpenseRecord) error {
	for _, r := range records {
		if r.Amount < 0 {
			return fmt.Errorf("%w: record %s has negative amount %s", ErrInvalidInput, r.ID, r.Amount)
		}
		if r.Date.IsZero() {
			return fmt.Errorf("%w: record %s has no date", ErrInvalidInput, r.ID)
		}
	}
	return nil
}

// grandTotal sums every record amount.
func grandTotal(records []models.ExpenseRecord) money.Amount {
	var total money.Amount
	for _, r := range records {
		total += r.Amount
	}
	return total
}
