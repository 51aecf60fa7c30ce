package models

import (
	"fmt"
	"time"

	"github.com/mmynk/roomledger/internal/money"
)

// CategorySummary aggregates the expenses filed under one category.
type CategorySummary struct {
	Category Category
	Total    money.Amount
	Count    int

	// Share is Total divided by the grand total, between 0 and 1.
	Share float64
}

// BucketKey identifies a time bucket. Day is 0 for month buckets.
type BucketKey struct {
	Year  int
	Month time.Month
	Day   int
}

// IsMonth reports whether k is a whole-month bucket.
func (k BucketKey) IsMonth() bool {
	return k.Day == 0
}

// Start returns the first day covered by the bucket.
func (k BucketKey) Start() Date {
	day := k.Day
	if day == 0 {
		day = 1
	}
	return NewDate(k.Year, k.Month, day)
}

// Before orders bucket keys chronologically.
func (k BucketKey) Before(other BucketKey) bool {
	if k.Year != other.Year {
		return k.Year < other.Year
	}
	if k.Month != other.Month {
		return k.Month < other.Month
	}
	return k.Day < other.Day
}

// String renders "2024-03" for month buckets and "2024-03-15" for days.
func (k BucketKey) String() string {
	if k.IsMonth() {
		return fmt.Sprintf("%04d-%02d", k.Year, int(k.Month))
	}
	return fmt.Sprintf("%04d-%02d-%02d", k.Year, int(k.Month), k.Day)
}

// TimeBucketSummary aggregates the expenses that fall into one bucket.
type TimeBucketSummary struct {
	Key   BucketKey
	Total money.Amount
	Count int

	// ByParticipant holds the per-participant subtotal for stacked charts.
	// It is nil unless a payer resolver was supplied.
	ByParticipant map[string]money.Amount
}

// ParticipantSpending is what one participant actually paid for.
type ParticipantSpending struct {
	ParticipantID string
	DisplayName   string
	Total         money.Amount
	Count         int
	Share         float64
}
