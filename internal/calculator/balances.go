package calculator

import (
	"fmt"
	"sort"

	"github.com/mmynk/roomledger/internal/models"
	"github.com/mmynk/roomledger/internal/money"
)

// ComputeBalances reduces a room's expenses into one balance per participant.
//
// Algorithm:
//   - grand total = sum of all amounts
//   - owed = grand total split equally across participants; the indivisible
//     remainder (smaller than one 1/10 000 unit per participant) goes to the
//     first participants in roster order so that owed sums to the total
//   - paid = sum of amounts whose payer is the participant
//   - net = paid - owed
//
// Balances are returned in roster order. Use SortByNet for display order.
func ComputeBalances(records []models.ExpenseRecord, participants []models.Participant) ([]models.Balance, error) {
	if len(participants) == 0 {
		return nil, fmt.Errorf("%w: participants must not be empty", ErrInvalidInput)
	}
	if err := validateRecords(records); err != nil {
		return nil, err
	}

	index := make(map[string]int, len(participants))
	for i, p := range participants {
		if _, dup := index[p.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate participant %s", ErrInvalidInput, p.ID)
		}
		index[p.ID] = i
	}

	paid := make([]money.Amount, len(participants))
	for _, r := range records {
		i, ok := index[r.PayerID]
		if !ok {
			return nil, fmt.Errorf("%w: record %s paid by %q", ErrUnknownParticipant, r.ID, r.PayerID)
		}
		paid[i] += r.Amount
	}

	share, rem := grandTotal(records).Split(len(participants))

	balances := make([]models.Balance, len(participants))
	for i, p := range participants {
		owed := share
		if money.Amount(i) < rem {
			owed++
		}
		balances[i] = models.Balance{
			ParticipantID: p.ID,
			DisplayName:   p.DisplayName,
			Paid:          paid[i],
			Owed:          owed,
			Net:           paid[i] - owed,
		}
	}
	return balances, nil
}

// SortByNet orders balances creditors first (net descending). Ties keep
// their relative order. The input slice is not modified.
func SortByNet(balances []models.Balance) []models.Balance {
	sorted := make([]models.Balance, len(balances))
	copy(sorted, balances)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Net > sorted[j].Net
	})
	return sorted
}

// NetSum adds up the nets of all balances. It is zero for the output of
// ComputeBalances.
func NetSum(balances []models.Balance) money.Amount {
	var sum money.Amount
	for _, b := range balances {
		sum += b.Net
	}
	return sum
}
