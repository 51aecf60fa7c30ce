package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mmynk/roomledger/internal/models"
)

// CreateCategory inserts a room-scoped category.
func (s *SQLiteStore) CreateCategory(ctx context.Context, category *models.Category) error {
	if category.ID == "" {
		category.ID = uuid.New().String()
	}

	var roomID any
	if category.RoomID != "" {
		roomID = category.RoomID
	}

	_, err := s.db.ExecContext(ctx,
		"INSERT INTO categories (id, name, icon, color, room_id, is_system, created_at) VALUES (?, ?, ?, ?, ?, 0, ?)",
		category.ID, category.Name, category.Icon, category.Color, roomID, time.Now().Unix(),
	)
	if err != nil {
		return fmt.Errorf("failed to create category: %w", err)
	}
	return nil
}

// ListCategories returns the system categories followed by the room's own,
// each group ordered by name.
func (s *SQLiteStore) ListCategories(ctx context.Context, roomID string) ([]models.Category, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, icon, color, room_id
		FROM categories
		WHERE is_system = 1 OR room_id = ?
		ORDER BY is_system DESC, name ASC`,
		roomID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	defer rows.Close()

	var categories []models.Category
	for rows.Next() {
		var c models.Category
		var room sql.NullString
		if err := rows.Scan(&c.ID, &c.Name, &c.Icon, &c.Color, &room); err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		c.RoomID = room.String
		categories = append(categories, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate categories: %w", err)
	}
	return categories, nil
}
