package calculator

import (
	"fmt"
	"sort"

	"github.com/mmynk/roomledger/internal/models"
	"github.com/mmynk/roomledger/internal/money"
)

// CategoryLookup resolves a category id to its display metadata.
type CategoryLookup func(categoryID string) (models.Category, bool)

// CategoriesByID builds a CategoryLookup over a category catalog.
func CategoriesByID(categories []models.Category) CategoryLookup {
	byID := make(map[string]models.Category, len(categories))
	for _, c := range categories {
		byID[c.ID] = c
	}
	return func(id string) (models.Category, bool) {
		c, ok := byID[id]
		return c, ok
	}
}

// SummarizeByCategory groups records by category and returns one summary
// per observed category, largest total first. Categories with no records
// never appear. A nil lookup, or a lookup miss, leaves the id as the name.
func SummarizeByCategory(records []models.ExpenseRecord, lookup CategoryLookup) ([]models.CategorySummary, error) {
	if err := validateRecords(records); err != nil {
		return nil, err
	}

	groups := make(map[string]*models.CategorySummary)
	for _, r := range records {
		g, ok := groups[r.CategoryID]
		if !ok {
			g = &models.CategorySummary{Category: describeCategory(r.CategoryID, lookup)}
			groups[r.CategoryID] = g
		}
		g.Total += r.Amount
		g.Count++
	}

	total := grandTotal(records)
	summaries := make([]models.CategorySummary, 0, len(groups))
	for _, g := range groups {
		g.Share = money.Ratio(g.Total, total)
		summaries = append(summaries, *g)
	}
	sort.Slice(summaries, func(i, j int) bool {
		if summaries[i].Total != summaries[j].Total {
			return summaries[i].Total > summaries[j].Total
		}
		return summaries[i].Category.ID < summaries[j].Category.ID
	})
	return summaries, nil
}

func describeCategory(id string, lookup CategoryLookup) models.Category {
	if lookup != nil {
		if c, ok := lookup(id); ok {
			c.ID = id
			return c
		}
	}
	return models.Category{ID: id, Name: id}
}

// SummarizeByParticipant reports what each participant actually paid for.
// Every participant gets an entry, including those who paid nothing;
// entries are ordered by total descending, ties in roster order.
func SummarizeByParticipant(records []models.ExpenseRecord, participants []models.Participant) ([]models.ParticipantSpending, error) {
	if len(participants) == 0 {
		return nil, fmt.Errorf("%w: participants must not be empty", ErrInvalidInput)
	}
	if err := validateRecords(records); err != nil {
		return nil, err
	}

	spending := make([]models.ParticipantSpending, len(participants))
	index := make(map[string]int, len(participants))
	for i, p := range participants {
		index[p.ID] = i
		spending[i] = models.ParticipantSpending{ParticipantID: p.ID, DisplayName: p.DisplayName}
	}

	for _, r := range records {
		i, ok := index[r.PayerID]
		if !ok {
			return nil, fmt.Errorf("%w: record %s paid by %q", ErrUnknownParticipant, r.ID, r.PayerID)
		}
		spending[i].Total += r.Amount
		spending[i].Count++
	}

	total := grandTotal(records)
	for i := range spending {
		spending[i].Share = money.Ratio(spending[i].Total, total)
	}
	sort.SliceStable(spending, func(i, j int) bool {
		return spending[i].Total > spending[j].Total
	})
	return spending, nil
}
