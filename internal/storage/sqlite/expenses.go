package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mmynk/roomledger/internal/models"
	"github.com/mmynk/roomledger/internal/money"
	"github.com/mmynk/roomledger/internal/storage"
)

// Open bounds used when one side of a date range is left zero.
const (
	minDate = "0000-01-01"
	maxDate = "9999-12-31"
)

// AddExpense records an expense in a room.
func (s *SQLiteStore) AddExpense(ctx context.Context, roomID string, expense *models.ExpenseRecord) error {
	if expense.ID == "" {
		expense.ID = uuid.New().String()
	}
	if expense.Date.IsZero() {
		return fmt.Errorf("expense date: %w", models.ErrInvalidDate)
	}
	if expense.Amount < 0 {
		return fmt.Errorf("expense amount %s: %w", expense.Amount, money.ErrInvalidAmount)
	}

	_, err := s.db.ExecContext(ctx,
		"INSERT INTO transactions (id, room_id, date, amount, note, category_id, paid_by, created_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?)",
		expense.ID, roomID, expense.Date.String(), expense.Amount.String(),
		expense.Note, expense.CategoryID, expense.PayerID, time.Now().Unix(),
	)
	if err != nil {
		return fmt.Errorf("failed to add expense: %w", err)
	}
	return nil
}

// DeleteExpense soft-deletes an expense so it no longer appears in reports.
func (s *SQLiteStore) DeleteExpense(ctx context.Context, expenseID string) error {
	result, err := s.db.ExecContext(ctx,
		"UPDATE transactions SET is_deleted = 1 WHERE id = ? AND is_deleted = 0",
		expenseID,
	)
	if err != nil {
		return fmt.Errorf("failed to delete expense: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("expense %s: %w", expenseID, storage.ErrNotFound)
	}
	return nil
}

// ListExpenses returns the room's non-deleted expenses dated within
// [from, to], oldest first.
func (s *SQLiteStore) ListExpenses(ctx context.Context, roomID string, from, to models.Date) ([]models.ExpenseRecord, error) {
	lower, upper := minDate, maxDate
	if !from.IsZero() {
		lower = from.String()
	}
	if !to.IsZero() {
		upper = to.String()
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, date, amount, category_id, paid_by, note
		FROM transactions
		WHERE room_id = ? AND is_deleted = 0 AND date >= ? AND date <= ?
		ORDER BY date ASC, created_at ASC, id ASC`,
		roomID, lower, upper,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}
	defer rows.Close()

	var expenses []models.ExpenseRecord
	for rows.Next() {
		var e models.ExpenseRecord
		var date, amount string
		if err := rows.Scan(&e.ID, &date, &amount, &e.CategoryID, &e.PayerID, &e.Note); err != nil {
			return nil, fmt.Errorf("failed to scan expense: %w", err)
		}
		if e.Date, err = models.ParseDate(date); err != nil {
			return nil, fmt.Errorf("expense %s: %w", e.ID, err)
		}
		if e.Amount, err = money.Parse(amount); err != nil {
			return nil, fmt.Errorf("expense %s: %w", e.ID, err)
		}
		expenses = append(expenses, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate expenses: %w", err)
	}
	return expenses, nil
}
