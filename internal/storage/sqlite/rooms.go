package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mmynk/roomledger/internal/models"
	"github.com/mmynk/roomledger/internal/storage"
)

// CreateRoom persists a room and its members in roster order.
// MemberIDs are user ids or household ids depending on SplitBy.
func (s *SQLiteStore) CreateRoom(ctx context.Context, room *models.Room) error {
	if room.ID == "" {
		room.ID = uuid.New().String()
	}
	if room.CreatedAt == 0 {
		room.CreatedAt = time.Now().Unix()
	}
	if room.SplitBy == "" {
		room.SplitBy = models.SplitByUser
	}
	if !room.SplitBy.Valid() {
		return fmt.Errorf("invalid split mode %q", room.SplitBy)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		"INSERT INTO rooms (id, name, split_by, currency, created_at) VALUES (?, ?, ?, ?, ?)",
		room.ID, room.Name, string(room.SplitBy), room.Currency, room.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert room: %w", err)
	}

	column := "user_id"
	if room.SplitBy == models.SplitByHousehold {
		column = "household_id"
	}
	for i, memberID := range room.MemberIDs {
		_, err = tx.ExecContext(ctx,
			"INSERT INTO room_members (room_id, "+column+", position) VALUES (?, ?, ?)",
			room.ID, memberID, i,
		)
		if err != nil {
			return fmt.Errorf("failed to insert room member: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// GetRoom retrieves a room by ID, including its member ids.
func (s *SQLiteStore) GetRoom(ctx context.Context, roomID string) (*models.Room, error) {
	room := &models.Room{}
	var splitBy string
	err := s.db.QueryRowContext(ctx,
		"SELECT id, name, split_by, currency, created_at FROM rooms WHERE id = ?",
		roomID,
	).Scan(&room.ID, &room.Name, &splitBy, &room.Currency, &room.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("room %s: %w", roomID, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get room: %w", err)
	}
	room.SplitBy = models.SplitMode(splitBy)

	rows, err := s.db.QueryContext(ctx,
		"SELECT COALESCE(user_id, household_id) FROM room_members WHERE room_id = ? ORDER BY position",
		roomID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get room members: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan room member: %w", err)
		}
		room.MemberIDs = append(room.MemberIDs, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate room members: %w", err)
	}
	return room, nil
}

// splitMode returns the split mode of a room, or storage.ErrNotFound.
func (s *SQLiteStore) splitMode(ctx context.Context, roomID string) (models.SplitMode, error) {
	var splitBy string
	err := s.db.QueryRowContext(ctx, "SELECT split_by FROM rooms WHERE id = ?", roomID).Scan(&splitBy)
	if errors.Is(err, sql.ErrNoRows) {
		return "", fmt.Errorf("room %s: %w", roomID, storage.ErrNotFound)
	}
	if err != nil {
		return "", fmt.Errorf("failed to get room split mode: %w", err)
	}
	return models.SplitMode(splitBy), nil
}

// ListParticipants returns the room's users or households in roster order.
func (s *SQLiteStore) ListParticipants(ctx context.Context, roomID string) ([]models.Participant, error) {
	mode, err := s.splitMode(ctx, roomID)
	if err != nil {
		return nil, err
	}

	var query string
	kind := models.KindUser
	if mode == models.SplitByHousehold {
		kind = models.KindHousehold
		query = `
			SELECT h.id, h.name,
			       (SELECT COUNT(*) FROM household_members hm WHERE hm.household_id = h.id)
			FROM room_members rm
			JOIN households h ON h.id = rm.household_id
			WHERE rm.room_id = ?
			ORDER BY rm.position`
	} else {
		query = `
			SELECT u.id, u.display_name, 1
			FROM room_members rm
			JOIN users u ON u.id = rm.user_id
			WHERE rm.room_id = ?
			ORDER BY rm.position`
	}

	rows, err := s.db.QueryContext(ctx, query, roomID)
	if err != nil {
		return nil, fmt.Errorf("failed to list participants: %w", err)
	}
	defer rows.Close()

	var participants []models.Participant
	for rows.Next() {
		p := models.Participant{Kind: kind}
		if err := rows.Scan(&p.ID, &p.DisplayName, &p.MemberCount); err != nil {
			return nil, fmt.Errorf("failed to scan participant: %w", err)
		}
		participants = append(participants, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate participants: %w", err)
	}
	return participants, nil
}

// PayerAssignments maps paying users to the participant they count towards.
// A user who belongs to several of the room's households counts towards the
// first one in roster order.
func (s *SQLiteStore) PayerAssignments(ctx context.Context, roomID string) (map[string]string, error) {
	mode, err := s.splitMode(ctx, roomID)
	if err != nil {
		return nil, err
	}

	query := "SELECT user_id, user_id FROM room_members WHERE room_id = ? AND user_id IS NOT NULL ORDER BY position"
	if mode == models.SplitByHousehold {
		query = `
			SELECT hm.user_id, hm.household_id
			FROM room_members rm
			JOIN household_members hm ON hm.household_id = rm.household_id
			WHERE rm.room_id = ?
			ORDER BY rm.position`
	}

	rows, err := s.db.QueryContext(ctx, query, roomID)
	if err != nil {
		return nil, fmt.Errorf("failed to list payer assignments: %w", err)
	}
	defer rows.Close()

	assignments := make(map[string]string)
	for rows.Next() {
		var userID, participantID string
		if err := rows.Scan(&userID, &participantID); err != nil {
			return nil, fmt.Errorf("failed to scan payer assignment: %w", err)
		}
		if _, seen := assignments[userID]; !seen {
			assignments[userID] = participantID
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate payer assignments: %w", err)
	}
	return assignments, nil
}
