// Package report assembles balances, settlements and summaries for a room.
//
// A Builder fetches everything a request needs from the store once, resolves
// payers to participants at that boundary and then runs the pure calculator
// functions over the snapshot. Nothing it computes is persisted.
package report

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/mmynk/roomledger/internal/calculator"
	"github.com/mmynk/roomledger/internal/metrics"
	"github.com/mmynk/roomledger/internal/models"
	"github.com/mmynk/roomledger/internal/money"
	"github.com/mmynk/roomledger/internal/storage"
)

// Request selects a room and an inclusive date range.
// A zero From or To leaves that side open.
type Request struct {
	RoomID string
	From   models.Date
	To     models.Date
}

// Report is the full result for one room over one date range.
type Report struct {
	Room     models.Room
	Currency money.Currency
	From     models.Date
	To       models.Date

	GrandTotal  money.Amount
	RecordCount int

	// Balances are in roster order.
	Balances    []models.Balance
	Settlements []models.Settlement
	Categories  []models.CategorySummary

	// Daily buckets are ascending and carry a per-participant breakdown.
	Daily    []models.TimeBucketSummary
	Spending []models.ParticipantSpending

	// Warning is set when rounded balances drift beyond tolerance.
	Warning *calculator.PrecisionWarning

	GeneratedAt time.Time
}

// Builder produces reports from a storage.Store.
type Builder struct {
	store           storage.Store
	metrics         *metrics.Metrics
	defaultCurrency money.Currency
	now             func() time.Time
}

// NewBuilder creates a Builder. Rooms without a currency of their own use
// defaultCurrency. m may be nil.
func NewBuilder(store storage.Store, m *metrics.Metrics, defaultCurrency money.Currency) *Builder {
	return &Builder{
		store:           store,
		metrics:         m,
		defaultCurrency: defaultCurrency,
		now:             time.Now,
	}
}

// snapshot is everything read from the store for one request, with payers
// already resolved to participant ids.
type snapshot struct {
	room         *models.Room
	currency     money.Currency
	records      []models.ExpenseRecord
	participants []models.Participant
	categories   []models.Category
}

// load fetches the room, its expenses, roster, categories and payer
// assignments concurrently.
func (b *Builder) load(ctx context.Context, roomID string, from, to models.Date) (*snapshot, error) {
	if roomID == "" {
		return nil, fmt.Errorf("%w: room id is required", calculator.ErrInvalidInput)
	}
	if !from.IsZero() && !to.IsZero() && from.After(to) {
		return nil, fmt.Errorf("%w: from %s is after to %s", calculator.ErrInvalidInput, from, to)
	}

	var (
		snap        snapshot
		assignments map[string]string
	)
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		room, err := b.store.GetRoom(ctx, roomID)
		if err != nil {
			return fmt.Errorf("failed to get room: %w", err)
		}
		snap.room = room
		return nil
	})
	g.Go(func() error {
		records, err := b.store.ListExpenses(ctx, roomID, from, to)
		if err != nil {
			return fmt.Errorf("failed to list expenses: %w", err)
		}
		snap.records = records
		return nil
	})
	g.Go(func() error {
		participants, err := b.store.ListParticipants(ctx, roomID)
		if err != nil {
			return fmt.Errorf("failed to list participants: %w", err)
		}
		snap.participants = participants
		return nil
	})
	g.Go(func() error {
		categories, err := b.store.ListCategories(ctx, roomID)
		if err != nil {
			return fmt.Errorf("failed to list categories: %w", err)
		}
		snap.categories = categories
		return nil
	})
	g.Go(func() error {
		a, err := b.store.PayerAssignments(ctx, roomID)
		if err != nil {
			return fmt.Errorf("failed to get payer assignments: %w", err)
		}
		assignments = a
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	snap.currency = b.defaultCurrency
	if snap.room.Currency != "" {
		c, err := money.LookupCurrency(snap.room.Currency)
		if err != nil {
			return nil, fmt.Errorf("room %s: %w", roomID, err)
		}
		snap.currency = c
	}

	records, err := calculator.ResolvePayers(snap.records, calculator.MapResolver(assignments))
	if err != nil {
		return nil, err
	}
	snap.records = records
	return &snap, nil
}

// Build computes the report for req.
func (b *Builder) Build(ctx context.Context, req Request) (*Report, error) {
	start := time.Now()
	r, err := b.build(ctx, req)
	b.metrics.ObserveReport(err, time.Since(start))
	if err != nil {
		slog.Error("Report build failed", "room_id", req.RoomID, "error", err)
		return nil, err
	}

	slog.Info("Report built",
		"room_id", req.RoomID,
		"records", r.RecordCount,
		"participants", len(r.Balances),
		"settlements", len(r.Settlements),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return r, nil
}

func (b *Builder) build(ctx context.Context, req Request) (*Report, error) {
	snap, err := b.load(ctx, req.RoomID, req.From, req.To)
	if err != nil {
		return nil, err
	}

	balances, err := calculator.ComputeBalances(snap.records, snap.participants)
	if err != nil {
		return nil, err
	}
	settlements := calculator.ComputeSettlements(balances, snap.currency)

	categories, err := calculator.SummarizeByCategory(snap.records, calculator.CategoriesByID(snap.categories))
	if err != nil {
		return nil, err
	}
	daily, err := calculator.SummarizeByTimeBucket(snap.records, calculator.ByDay, calculator.Ascending,
		calculator.IdentityResolver(snap.participants))
	if err != nil {
		return nil, err
	}
	spending, err := calculator.SummarizeByParticipant(snap.records, snap.participants)
	if err != nil {
		return nil, err
	}

	report := &Report{
		Room:        *snap.room,
		Currency:    snap.currency,
		From:        req.From,
		To:          req.To,
		GrandTotal:  categoryTotal(categories),
		RecordCount: len(snap.records),
		Balances:    balances,
		Settlements: settlements,
		Categories:  categories,
		Daily:       daily,
		Spending:    spending,
		GeneratedAt: b.now(),
	}

	b.metrics.ObserveSettlements(len(settlements))
	if w := calculator.CheckPrecision(balances, snap.currency); w != nil {
		report.Warning = w
		b.metrics.IncPrecisionWarning()
		slog.Warn("Rounded balances do not sum to zero",
			"room_id", req.RoomID,
			"drift", w.Drift.String(),
			"tolerance", w.Tolerance.String(),
		)
	}

	if slog.Default().Enabled(ctx, slog.LevelDebug) {
		for id, residual := range calculator.ApplySettlements(balances, settlements) {
			if residual != 0 {
				slog.Debug("Residual after settlement", "room_id", req.RoomID, "participant_id", id, "residual", residual.String())
			}
		}
	}
	return report, nil
}

// Months returns the room's month buckets, newest first.
func (b *Builder) Months(ctx context.Context, req Request) ([]models.TimeBucketSummary, money.Currency, error) {
	snap, err := b.load(ctx, req.RoomID, req.From, req.To)
	if err != nil {
		return nil, money.Currency{}, err
	}
	months, err := calculator.SummarizeByTimeBucket(snap.records, calculator.ByMonth, calculator.Descending, nil)
	if err != nil {
		return nil, money.Currency{}, err
	}
	return months, snap.currency, nil
}

// DayBreakdown returns the day buckets of one month, oldest first, each with
// a per-participant breakdown.
func (b *Builder) DayBreakdown(ctx context.Context, roomID string, year int, month time.Month) ([]models.TimeBucketSummary, []models.Participant, money.Currency, error) {
	if year < 1 || month < time.January || month > time.December {
		return nil, nil, money.Currency{}, fmt.Errorf("%w: month %d-%02d", models.ErrInvalidDate, year, int(month))
	}
	from := models.BucketKey{Year: year, Month: month}.Start()
	to := models.DateOf(from.AddDate(0, 1, -1))

	snap, err := b.load(ctx, roomID, from, to)
	if err != nil {
		return nil, nil, money.Currency{}, err
	}
	days, err := calculator.SummarizeByTimeBucket(snap.records, calculator.ByDay, calculator.Ascending,
		calculator.IdentityResolver(snap.participants))
	if err != nil {
		return nil, nil, money.Currency{}, err
	}
	return days, snap.participants, snap.currency, nil
}

func categoryTotal(categories []models.CategorySummary) money.Amount {
	var total money.Amount
	for _, c := range categories {
		total += c.Total
	}
	return total
}
