package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mmynk/roomledger/internal/models"
)

// CreateUser inserts a new user into the database.
func (s *SQLiteStore) CreateUser(ctx context.Context, user *models.User) error {
	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	if user.CreatedAt == 0 {
		user.CreatedAt = time.Now().Unix()
	}

	var email any
	if user.Email != "" {
		email = user.Email
	}

	_, err := s.db.ExecContext(ctx,
		"INSERT INTO users (id, display_name, email, created_at) VALUES (?, ?, ?, ?)",
		user.ID, user.DisplayName, email, user.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// CreateHousehold persists a household and its members.
// The first member becomes the owner.
func (s *SQLiteStore) CreateHousehold(ctx context.Context, household *models.Household) error {
	if household.ID == "" {
		household.ID = uuid.New().String()
	}
	if household.CreatedAt == 0 {
		household.CreatedAt = time.Now().Unix()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		"INSERT INTO households (id, name, created_at) VALUES (?, ?, ?)",
		household.ID, household.Name, household.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert household: %w", err)
	}

	for i, userID := range household.MemberIDs {
		role := "member"
		if i == 0 {
			role = "owner"
		}
		_, err = tx.ExecContext(ctx,
			"INSERT INTO household_members (household_id, user_id, role) VALUES (?, ?, ?)",
			household.ID, userID, role,
		)
		if err != nil {
			return fmt.Errorf("failed to insert household member: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}
