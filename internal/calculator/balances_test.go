package calculator

import (
	"errors"
	"testing"

	"github.com/mmynk/roomledger/internal/models"
	"github.com/mmynk/roomledger/internal/money"
)

func TestComputeBalances(t *testing.T) {
	tests := []struct {
		name         string
		records      []models.ExpenseRecord
		participants []models.Participant
		wantErr      error
		want         map[string][3]string // id -> paid, owed, net
	}{
		{
			name:         "one payer covers three participants",
			records:      []models.ExpenseRecord{expense("t1", "300", "food", "P1")},
			participants: users("P1", "P2", "P3"),
			want: map[string][3]string{
				"P1": {"300", "100", "200"},
				"P2": {"0", "100", "-100"},
				"P3": {"0", "100", "-100"},
			},
		},
		{
			name: "equal payments cancel out",
			records: []models.ExpenseRecord{
				expense("t1", "100", "food", "A"),
				expense("t2", "100", "food", "B"),
			},
			participants: users("A", "B"),
			want: map[string][3]string{
				"A": {"100", "100", "0"},
				"B": {"100", "100", "0"},
			},
		},
		{
			name:         "no records leaves everyone at zero",
			participants: users("A", "B"),
			want: map[string][3]string{
				"A": {"0", "0", "0"},
				"B": {"0", "0", "0"},
			},
		},
		{
			name: "household size does not weight the split",
			records: []models.ExpenseRecord{
				expense("t1", "600", "rent", "H1"),
			},
			participants: []models.Participant{
				{ID: "H1", DisplayName: "North", Kind: models.KindHousehold, MemberCount: 5},
				{ID: "H2", DisplayName: "South", Kind: models.KindHousehold, MemberCount: 1},
			},
			want: map[string][3]string{
				"H1": {"600", "300", "300"},
				"H2": {"0", "300", "-300"},
			},
		},
		{
			name:    "empty roster is rejected",
			records: []models.ExpenseRecord{expense("t1", "10", "food", "A")},
			wantErr: ErrInvalidInput,
		},
		{
			name:         "negative amount is rejected",
			records:      []models.ExpenseRecord{expense("t1", "-10", "food", "A")},
			participants: users("A"),
			wantErr:      ErrInvalidInput,
		},
		{
			name:         "missing date is rejected",
			records:      []models.ExpenseRecord{{ID: "t1", Amount: money.New(10), PayerID: "A"}},
			participants: users("A"),
			wantErr:      ErrInvalidInput,
		},
		{
			name:         "duplicate participant is rejected",
			participants: users("A", "A"),
			wantErr:      ErrInvalidInput,
		},
		{
			name:         "payer outside the roster is surfaced",
			records:      []models.ExpenseRecord{expense("t1", "10", "food", "Z")},
			participants: users("A", "B"),
			wantErr:      ErrUnknownParticipant,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			balances, err := ComputeBalances(tt.records, tt.participants)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("ComputeBalances() error = %v, want %v", err, tt.wantErr)
				}
				if balances != nil {
					t.Errorf("expected no partial result, got %v", balances)
				}
				return
			}
			if err != nil {
				t.Fatalf("ComputeBalances() unexpected error: %v", err)
			}
			if len(balances) != len(tt.participants) {
				t.Fatalf("got %d balances, want %d", len(balances), len(tt.participants))
			}
			for id, want := range tt.want {
				b := balanceOf(balances, id)
				if b.Paid != money.MustParse(want[0]) {
					t.Errorf("%s paid = %s, want %s", id, b.Paid, want[0])
				}
				if b.Owed != money.MustParse(want[1]) {
					t.Errorf("%s owed = %s, want %s", id, b.Owed, want[1])
				}
				if b.Net != money.MustParse(want[2]) {
					t.Errorf("%s net = %s, want %s", id, b.Net, want[2])
				}
			}
			if sum := NetSum(balances); sum != 0 {
				t.Errorf("nets sum to %s, want 0", sum)
			}
		})
	}
}

func TestComputeBalances_RemainderKeepsZeroSum(t *testing.T) {
	records := []models.ExpenseRecord{expense("t1", "100", "food", "A")}
	balances, err := ComputeBalances(records, users("A", "B", "C"))
	if err != nil {
		t.Fatalf("ComputeBalances failed: %v", err)
	}

	var owed money.Amount
	for _, b := range balances {
		owed += b.Owed
		if d := (b.Owed - money.MustParse("33.3333")).Abs(); d > 1 {
			t.Errorf("%s owed = %s, want 33.3333 within one unit", b.ParticipantID, b.Owed)
		}
	}
	if owed != money.New(100) {
		t.Errorf("owed shares sum to %s, want 100", owed)
	}
	if sum := NetSum(balances); sum != 0 {
		t.Errorf("nets sum to %s, want 0", sum)
	}
}

func TestComputeBalances_DoesNotMutateInput(t *testing.T) {
	records := []models.ExpenseRecord{expense("t1", "50", "food", "A")}
	participants := users("A", "B")
	before := records[0]

	if _, err := ComputeBalances(records, participants); err != nil {
		t.Fatalf("ComputeBalances failed: %v", err)
	}
	if records[0] != before {
		t.Error("ComputeBalances modified its input records")
	}
}

func TestSortByNet(t *testing.T) {
	balances := []models.Balance{
		{ParticipantID: "A", Net: money.New(-50)},
		{ParticipantID: "B", Net: money.New(100)},
		{ParticipantID: "C", Net: money.New(-50)},
	}
	sorted := SortByNet(balances)

	want := []string{"B", "A", "C"}
	for i, id := range want {
		if sorted[i].ParticipantID != id {
			t.Errorf("position %d = %s, want %s", i, sorted[i].ParticipantID, id)
		}
	}
	if balances[0].ParticipantID != "A" {
		t.Error("SortByNet modified its input")
	}
}
