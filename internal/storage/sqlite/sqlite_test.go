package sqlite

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/mmynk/roomledger/internal/models"
	"github.com/mmynk/roomledger/internal/money"
	"github.com/mmynk/roomledger/internal/storage"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()

	tempDir, err := os.MkdirTemp("", "roomledger-test-*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	t.Cleanup(func() { os.RemoveAll(tempDir) })

	store, err := New(filepath.Join(tempDir, "test.db"))
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func mustCreateUsers(t *testing.T, store *SQLiteStore, names ...string) []string {
	t.Helper()
	ids := make([]string, len(names))
	for i, name := range names {
		user := &models.User{DisplayName: name}
		if err := store.CreateUser(context.Background(), user); err != nil {
			t.Fatalf("CreateUser(%s) failed: %v", name, err)
		}
		ids[i] = user.ID
	}
	return ids
}

func TestSQLiteStore(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	userIDs := mustCreateUsers(t, store, "An", "Binh", "Chi")
	room := &models.Room{Name: "Apartment 4B", Currency: "VND", MemberIDs: userIDs}
	if err := store.CreateRoom(ctx, room); err != nil {
		t.Fatalf("CreateRoom failed: %v", err)
	}

	t.Run("CreateRoom generates ID and defaults split mode", func(t *testing.T) {
		if room.ID == "" {
			t.Error("Expected room ID to be generated")
		}
		if room.SplitBy != models.SplitByUser {
			t.Errorf("Expected split mode USER, got %s", room.SplitBy)
		}
		if room.CreatedAt == 0 {
			t.Error("Expected CreatedAt to be set")
		}
	})

	t.Run("GetRoom retrieves members in order", func(t *testing.T) {
		got, err := store.GetRoom(ctx, room.ID)
		if err != nil {
			t.Fatalf("GetRoom failed: %v", err)
		}
		if got.Name != room.Name || got.Currency != "VND" {
			t.Errorf("Unexpected room: %+v", got)
		}
		if len(got.MemberIDs) != 3 {
			t.Fatalf("Expected 3 members, got %d", len(got.MemberIDs))
		}
		for i, id := range userIDs {
			if got.MemberIDs[i] != id {
				t.Errorf("Member %d: expected %s, got %s", i, id, got.MemberIDs[i])
			}
		}
	})

	t.Run("GetRoom returns ErrNotFound", func(t *testing.T) {
		_, err := store.GetRoom(ctx, "non-existent-id")
		if !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("Expected ErrNotFound, got %v", err)
		}
	})

	t.Run("ListParticipants returns users in roster order", func(t *testing.T) {
		participants, err := store.ListParticipants(ctx, room.ID)
		if err != nil {
			t.Fatalf("ListParticipants failed: %v", err)
		}
		want := []string{"An", "Binh", "Chi"}
		if len(participants) != len(want) {
			t.Fatalf("Expected %d participants, got %d", len(want), len(participants))
		}
		for i, p := range participants {
			if p.DisplayName != want[i] || p.ID != userIDs[i] {
				t.Errorf("Participant %d: got %+v", i, p)
			}
			if p.Kind != models.KindUser || p.MemberCount != 1 {
				t.Errorf("Participant %d: expected a single user, got %+v", i, p)
			}
		}
	})

	t.Run("PayerAssignments is identity in user mode", func(t *testing.T) {
		assignments, err := store.PayerAssignments(ctx, room.ID)
		if err != nil {
			t.Fatalf("PayerAssignments failed: %v", err)
		}
		for _, id := range userIDs {
			if assignments[id] != id {
				t.Errorf("Expected %s to map to itself, got %q", id, assignments[id])
			}
		}
	})

	t.Run("ListCategories includes system and room categories", func(t *testing.T) {
		custom := &models.Category{Name: "Cleaning", Icon: "🧹", RoomID: room.ID}
		if err := store.CreateCategory(ctx, custom); err != nil {
			t.Fatalf("CreateCategory failed: %v", err)
		}

		categories, err := store.ListCategories(ctx, room.ID)
		if err != nil {
			t.Fatalf("ListCategories failed: %v", err)
		}
		if len(categories) != 7 {
			t.Fatalf("Expected 6 system + 1 room category, got %d", len(categories))
		}
		last := categories[len(categories)-1]
		if last.ID != custom.ID || last.RoomID != room.ID {
			t.Errorf("Expected room category last, got %+v", last)
		}

		other, err := store.ListCategories(ctx, "another-room")
		if err != nil {
			t.Fatalf("ListCategories failed: %v", err)
		}
		if len(other) != 6 {
			t.Errorf("Expected only system categories for another room, got %d", len(other))
		}
	})

	t.Run("ListExpenses filters by inclusive date range", func(t *testing.T) {
		expenses := []*models.ExpenseRecord{
			{Date: models.NewDate(2024, time.February, 29), Amount: money.New(50000), CategoryID: "sys-food", PayerID: userIDs[0]},
			{Date: models.NewDate(2024, time.March, 1), Amount: money.New(90000), CategoryID: "sys-rent", PayerID: userIDs[1], Note: "march rent"},
			{Date: models.NewDate(2024, time.March, 31), Amount: money.MustParse("12345.6789"), CategoryID: "sys-food", PayerID: userIDs[2]},
			{Date: models.NewDate(2024, time.April, 1), Amount: money.New(10000), CategoryID: "sys-other", PayerID: userIDs[0]},
		}
		for _, e := range expenses {
			if err := store.AddExpense(ctx, room.ID, e); err != nil {
				t.Fatalf("AddExpense failed: %v", err)
			}
		}

		got, err := store.ListExpenses(ctx, room.ID, models.NewDate(2024, time.March, 1), models.NewDate(2024, time.March, 31))
		if err != nil {
			t.Fatalf("ListExpenses failed: %v", err)
		}
		if len(got) != 2 {
			t.Fatalf("Expected 2 expenses in March, got %d", len(got))
		}
		if got[0].Note != "march rent" || got[0].Amount != money.New(90000) {
			t.Errorf("Unexpected first expense: %+v", got[0])
		}
		if got[1].Amount != money.MustParse("12345.6789") {
			t.Errorf("Expected amount to round-trip exactly, got %s", got[1].Amount)
		}

		all, err := store.ListExpenses(ctx, room.ID, models.Date{}, models.Date{})
		if err != nil {
			t.Fatalf("ListExpenses failed: %v", err)
		}
		if len(all) != 4 {
			t.Errorf("Expected open range to return 4 expenses, got %d", len(all))
		}
	})

	t.Run("DeleteExpense hides the expense", func(t *testing.T) {
		e := &models.ExpenseRecord{Date: models.NewDate(2023, time.December, 24), Amount: money.New(1), CategoryID: "sys-other", PayerID: userIDs[0]}
		if err := store.AddExpense(ctx, room.ID, e); err != nil {
			t.Fatalf("AddExpense failed: %v", err)
		}
		if err := store.DeleteExpense(ctx, e.ID); err != nil {
			t.Fatalf("DeleteExpense failed: %v", err)
		}

		got, err := store.ListExpenses(ctx, room.ID, models.NewDate(2023, time.December, 1), models.NewDate(2023, time.December, 31))
		if err != nil {
			t.Fatalf("ListExpenses failed: %v", err)
		}
		if len(got) != 0 {
			t.Errorf("Expected deleted expense to be hidden, got %d", len(got))
		}

		if err := store.DeleteExpense(ctx, e.ID); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("Expected ErrNotFound on second delete, got %v", err)
		}
	})

	t.Run("AddExpense rejects negative amounts", func(t *testing.T) {
		e := &models.ExpenseRecord{Date: models.NewDate(2024, time.May, 1), Amount: -money.New(1), CategoryID: "sys-other", PayerID: userIDs[0]}
		if err := store.AddExpense(ctx, room.ID, e); !errors.Is(err, money.ErrInvalidAmount) {
			t.Errorf("Expected ErrInvalidAmount, got %v", err)
		}
	})
}

func TestHouseholdRoom(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	ids := mustCreateUsers(t, store, "An", "Binh", "Chi")

	nguyen := &models.Household{Name: "Nguyen", MemberIDs: []string{ids[0], ids[1]}}
	tran := &models.Household{Name: "Tran", MemberIDs: []string{ids[2], ids[1]}}
	for _, h := range []*models.Household{nguyen, tran} {
		if err := store.CreateHousehold(ctx, h); err != nil {
			t.Fatalf("CreateHousehold failed: %v", err)
		}
	}

	room := &models.Room{Name: "Shared house", SplitBy: models.SplitByHousehold, MemberIDs: []string{nguyen.ID, tran.ID}}
	if err := store.CreateRoom(ctx, room); err != nil {
		t.Fatalf("CreateRoom failed: %v", err)
	}

	t.Run("ListParticipants returns households", func(t *testing.T) {
		participants, err := store.ListParticipants(ctx, room.ID)
		if err != nil {
			t.Fatalf("ListParticipants failed: %v", err)
		}
		if len(participants) != 2 {
			t.Fatalf("Expected 2 households, got %d", len(participants))
		}
		if participants[0].ID != nguyen.ID || participants[0].Kind != models.KindHousehold || participants[0].MemberCount != 2 {
			t.Errorf("Unexpected first participant: %+v", participants[0])
		}
		if participants[1].DisplayName != "Tran" {
			t.Errorf("Unexpected second participant: %+v", participants[1])
		}
	})

	t.Run("PayerAssignments maps users to their first household", func(t *testing.T) {
		assignments, err := store.PayerAssignments(ctx, room.ID)
		if err != nil {
			t.Fatalf("PayerAssignments failed: %v", err)
		}
		want := map[string]string{
			ids[0]: nguyen.ID,
			ids[1]: nguyen.ID,
			ids[2]: tran.ID,
		}
		for user, household := range want {
			if assignments[user] != household {
				t.Errorf("User %s: expected %s, got %q", user, household, assignments[user])
			}
		}
	})

	t.Run("missing room", func(t *testing.T) {
		if _, err := store.ListParticipants(ctx, "nope"); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("Expected ErrNotFound, got %v", err)
		}
		if _, err := store.PayerAssignments(ctx, "nope"); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("Expected ErrNotFound, got %v", err)
		}
	})
}

func TestMigrateIsIdempotent(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "migrate.db")
	for i := 0; i < 2; i++ {
		if err := Migrate(dbPath); err != nil {
			t.Fatalf("Migrate run %d failed: %v", i+1, err)
		}
	}
}
