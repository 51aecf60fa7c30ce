package models

import "github.com/mmynk/roomledger/internal/money"

// Balance is one participant's position over a set of expenses.
type Balance struct {
	// ParticipantID identifies the participant.
	ParticipantID string

	// DisplayName is copied from the participant for presentation.
	DisplayName string

	// Paid is the sum of expenses this participant paid for.
	Paid money.Amount

	// Owed is this participant's equal share of the grand total.
	Owed money.Amount

	// Net is Paid minus Owed.
	// Positive means the group owes the participant; negative means the
	// participant owes the group.
	Net money.Amount
}

// Settlement is a transfer instruction: From pays To the given Amount.
type Settlement struct {
	// From is the debtor settling up.
	From     string
	FromName string

	// To is the creditor being paid.
	To     string
	ToName string

	// Amount is positive and rounded to the currency's display unit.
	Amount money.Amount
}
