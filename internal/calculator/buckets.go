package calculator

import (
	"fmt"
	"sort"

	"github.com/mmynk/roomledger/internal/models"
	"github.com/mmynk/roomledger/internal/money"
)

// BucketFunc maps a record's date to the bucket it is counted in.
type BucketFunc func(models.Date) models.BucketKey

// ByDay buckets records per calendar day.
func ByDay(d models.Date) models.BucketKey {
	return models.BucketKey{Year: d.Year(), Month: d.Month(), Day: d.Day()}
}

// ByMonth buckets records per calendar month.
func ByMonth(d models.Date) models.BucketKey {
	return models.BucketKey{Year: d.Year(), Month: d.Month()}
}

// Order selects the chronological direction of bucket output.
type Order int

const (
	// Ascending suits chart axes.
	Ascending Order = iota
	// Descending suits list views, newest first.
	Descending
)

// PayerResolver maps a record's payer id to the participant it belongs to.
// In user mode it is the identity over the roster; in household mode it maps
// a paying user to the household that owns them.
type PayerResolver func(payerID string) (participantID string, ok bool)

// IdentityResolver accepts exactly the ids of the given participants.
func IdentityResolver(participants []models.Participant) PayerResolver {
	ids := make(map[string]struct{}, len(participants))
	for _, p := range participants {
		ids[p.ID] = struct{}{}
	}
	return func(payerID string) (string, bool) {
		_, ok := ids[payerID]
		return payerID, ok
	}
}

// MapResolver resolves payers through a precomputed payer -> participant map.
func MapResolver(assignments map[string]string) PayerResolver {
	return func(payerID string) (string, bool) {
		id, ok := assignments[payerID]
		return id, ok
	}
}

// ResolvePayers returns a copy of records with every PayerID rewritten to
// its participant id. A payer the resolver does not know is an error.
func ResolvePayers(records []models.ExpenseRecord, resolve PayerResolver) ([]models.ExpenseRecord, error) {
	resolved := make([]models.ExpenseRecord, len(records))
	for i, r := range records {
		id, ok := resolve(r.PayerID)
		if !ok {
			return nil, fmt.Errorf("%w: record %s paid by %q", ErrUnknownParticipant, r.ID, r.PayerID)
		}
		r.PayerID = id
		resolved[i] = r
	}
	return resolved, nil
}

// SummarizeByTimeBucket groups records into time buckets.
//
// When resolve is non-nil each bucket also carries a per-participant
// breakdown, keyed by the participant the payer resolves to. Bucket totals
// always add up to the grand total of records.
func SummarizeByTimeBucket(records []models.ExpenseRecord, key BucketFunc, order Order, resolve PayerResolver) ([]models.TimeBucketSummary, error) {
	if key == nil {
		return nil, fmt.Errorf("%w: bucket function is required", ErrInvalidInput)
	}
	if err := validateRecords(records); err != nil {
		return nil, err
	}

	buckets := make(map[models.BucketKey]*models.TimeBucketSummary)
	for _, r := range records {
		k := key(r.Date)
		b, ok := buckets[k]
		if !ok {
			b = &models.TimeBucketSummary{Key: k}
			if resolve != nil {
				b.ByParticipant = make(map[string]money.Amount)
			}
			buckets[k] = b
		}
		b.Total += r.Amount
		b.Count++

		if resolve != nil {
			id, ok := resolve(r.PayerID)
			if !ok {
				return nil, fmt.Errorf("%w: record %s paid by %q", ErrUnknownParticipant, r.ID, r.PayerID)
			}
			b.ByParticipant[id] += r.Amount
		}
	}

	summaries := make([]models.TimeBucketSummary, 0, len(buckets))
	for _, b := range buckets {
		summaries = append(summaries, *b)
	}
	sort.Slice(summaries, func(i, j int) bool {
		if order == Descending {
			return summaries[j].Key.Before(summaries[i].Key)
		}
		return summaries[i].Key.Before(summaries[j].Key)
	})
	return summaries, nil
}
