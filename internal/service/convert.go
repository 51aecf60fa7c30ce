package service

import (
	"github.com/mmynk/roomledger/internal/models"
	"github.com/mmynk/roomledger/internal/money"
	"github.com/mmynk/roomledger/internal/report"
	"github.com/mmynk/roomledger/pkg/reportapi"
)

// ReportToAPI converts a built report to its wire form.
func ReportToAPI(r *report.Report) *reportapi.GetReportResponse {
	resp := &reportapi.GetReportResponse{
		RoomID:      r.Room.ID,
		RoomName:    r.Room.Name,
		Currency:    currencyToAPI(r.Currency),
		From:        r.From.String(),
		To:          r.To.String(),
		GrandTotal:  r.GrandTotal.String(),
		RecordCount: r.RecordCount,
		Balances:    make([]reportapi.Balance, len(r.Balances)),
		Settlements: make([]reportapi.Settlement, len(r.Settlements)),
		Categories:  make([]reportapi.CategorySummary, len(r.Categories)),
		Daily:       bucketsToAPI(r.Daily),
		Spending:    make([]reportapi.ParticipantSpending, len(r.Spending)),
		GeneratedAt: r.GeneratedAt.Unix(),
	}

	for i, b := range r.Balances {
		resp.Balances[i] = reportapi.Balance{
			ParticipantID: b.ParticipantID,
			DisplayName:   b.DisplayName,
			Paid:          b.Paid.String(),
			Owed:          b.Owed.String(),
			Net:           b.Net.String(),
			NetDisplay:    r.Currency.Format(b.Net),
		}
	}
	for i, s := range r.Settlements {
		resp.Settlements[i] = reportapi.Settlement{
			From:     s.From,
			FromName: s.FromName,
			To:       s.To,
			ToName:   s.ToName,
			Amount:   s.Amount.String(),
		}
	}
	for i, c := range r.Categories {
		resp.Categories[i] = reportapi.CategorySummary{
			CategoryID: c.Category.ID,
			Name:       c.Category.Name,
			Icon:       c.Category.Icon,
			Color:      c.Category.Color,
			Total:      c.Total.String(),
			Count:      c.Count,
			Share:      c.Share,
		}
	}
	for i, p := range r.Spending {
		resp.Spending[i] = reportapi.ParticipantSpending{
			ParticipantID: p.ParticipantID,
			DisplayName:   p.DisplayName,
			Total:         p.Total.String(),
			Count:         p.Count,
			Share:         p.Share,
		}
	}
	if r.Warning != nil {
		resp.PrecisionWarning = &reportapi.PrecisionWarning{
			Drift:     r.Warning.Drift.String(),
			Tolerance: r.Warning.Tolerance.String(),
			Message:   r.Warning.Error(),
		}
	}
	return resp
}

func currencyToAPI(c money.Currency) reportapi.Currency {
	return reportapi.Currency{Code: c.Code, Decimals: c.Decimals, Symbol: c.Symbol}
}

func bucketsToAPI(buckets []models.TimeBucketSummary) []reportapi.TimeBucket {
	out := make([]reportapi.TimeBucket, len(buckets))
	for i, b := range buckets {
		out[i] = reportapi.TimeBucket{
			Key:   b.Key.String(),
			Total: b.Total.String(),
			Count: b.Count,
		}
		if b.ByParticipant != nil {
			out[i].ByParticipant = make(map[string]string, len(b.ByParticipant))
			for id, amount := range b.ByParticipant {
				out[i].ByParticipant[id] = amount.String()
			}
		}
	}
	return out
}
