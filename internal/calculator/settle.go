package calculator

import (
	"sort"

	"github.com/mmynk/roomledger/internal/models"
	"github.com/mmynk/roomledger/internal/money"
)

// party is one side of the matching with its outstanding magnitude.
type party struct {
	id        string
	name      string
	remaining money.Amount // always positive while unsettled
}

// ComputeSettlements turns net balances into transfers that bring every
// balance to zero.
//
// The matching is greedy: the largest creditor is paired with the largest
// debtor, the smaller of the two outstanding amounts is transferred, and
// whichever side reaches zero is dropped. This keeps the list short and
// deterministic but is not a guaranteed minimum; finding the minimum number
// of transfers is NP-hard in general.
//
// Parties within money.Epsilon of zero are treated as settled. The running
// remainders keep full precision and rounding happens only at emission, on
// the cumulative amount transferred so far: each transfer carries
// round(total after) - round(total before). A sub-unit share that rounds
// to nothing is therefore picked up by a later transfer instead of being
// lost. Every participant's transfers are consecutive in the matching, so
// after settlement each net is within one display unit plus money.Epsilon
// of zero. At most len(creditors)+len(debtors)-1 transfers are produced.
func ComputeSettlements(balances []models.Balance, currency money.Currency) []models.Settlement {
	var creditors, debtors []party
	for _, b := range balances {
		if money.Negligible(b.Net) {
			continue
		}
		p := party{id: b.ParticipantID, name: b.DisplayName, remaining: b.Net.Abs()}
		if b.Net > 0 {
			creditors = append(creditors, p)
		} else {
			debtors = append(debtors, p)
		}
	}
	sortByRemaining(creditors)
	sortByRemaining(debtors)

	settlements := []models.Settlement{}
	var transferred, emitted money.Amount
	i, j := 0, 0
	for i < len(debtors) && j < len(creditors) {
		debtor, creditor := &debtors[i], &creditors[j]

		amount := money.Min(debtor.remaining, creditor.remaining)
		transferred += amount
		if rounded := currency.Round(transferred) - emitted; rounded > 0 {
			settlements = append(settlements, models.Settlement{
				From:     debtor.id,
				FromName: debtor.name,
				To:       creditor.id,
				ToName:   creditor.name,
				Amount:   rounded,
			})
			emitted += rounded
		}

		debtor.remaining -= amount
		creditor.remaining -= amount

		if money.Negligible(debtor.remaining) {
			i++
		}
		if money.Negligible(creditor.remaining) {
			j++
		}
	}
	return settlements
}

// sortByRemaining orders parties by magnitude, largest first. Ties keep the
// input order.
func sortByRemaining(parties []party) {
	sort.SliceStable(parties, func(a, b int) bool {
		return parties[a].remaining > parties[b].remaining
	})
}

// ApplySettlements returns each participant's net after the transfers are
// carried out: the debtor's net goes up by the amount, the creditor's goes
// down.
func ApplySettlements(balances []models.Balance, settlements []models.Settlement) map[string]money.Amount {
	residual := make(map[string]money.Amount, len(balances))
	for _, b := range balances {
		residual[b.ParticipantID] = b.Net
	}
	for _, s := range settlements {
		residual[s.From] += s.Amount
		residual[s.To] -= s.Amount
	}
	return residual
}

// CheckPrecision rounds every net to the currency's display unit and
// returns a warning when the rounded nets no longer sum to zero within
// money.Epsilon. It returns nil when the balances are consistent.
func CheckPrecision(balances []models.Balance, currency money.Currency) *PrecisionWarning {
	var drift money.Amount
	for _, b := range balances {
		drift += currency.Round(b.Net)
	}
	if money.Negligible(drift) {
		return nil
	}
	return &PrecisionWarning{Drift: drift, Tolerance: money.Epsilon}
}
