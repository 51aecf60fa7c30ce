package calculator

import (
	"time"

	"github.com/mmynk/roomledger/internal/models"
	"github.com/mmynk/roomledger/internal/money"
)

var day = models.NewDate(2024, time.March, 15)

// expense builds a record on a fixed day.
func expense(id, amount, category, payer string) models.ExpenseRecord {
	return models.ExpenseRecord{
		ID:         id,
		Date:       day,
		Amount:     money.MustParse(amount),
		CategoryID: category,
		PayerID:    payer,
	}
}

// expenseOn builds a record on the given day.
func expenseOn(id string, date models.Date, amount, payer string) models.ExpenseRecord {
	r := expense(id, amount, "misc", payer)
	r.Date = date
	return r
}

// users builds a user-mode roster whose display names equal their ids.
func users(ids ...string) []models.Participant {
	participants := make([]models.Participant, len(ids))
	for i, id := range ids {
		participants[i] = models.Participant{ID: id, DisplayName: id, Kind: models.KindUser, MemberCount: 1}
	}
	return participants
}

func balanceOf(balances []models.Balance, id string) models.Balance {
	for _, b := range balances {
		if b.ParticipantID == id {
			return b
		}
	}
	return models.Balance{}
}
