package calculator

import (
	"fmt"
	"reflect"
	"testing"

	"github.com/mmynk/roomledger/internal/models"
	"github.com/mmynk/roomledger/internal/money"
)

func net(id, amount string) models.Balance {
	return models.Balance{ParticipantID: id, DisplayName: id, Net: money.MustParse(amount)}
}

func TestComputeSettlements(t *testing.T) {
	tests := []struct {
		name     string
		balances []models.Balance
		currency money.Currency
		want     []models.Settlement
	}{
		{
			name:     "two debtors pay one creditor",
			balances: []models.Balance{net("P1", "200"), net("P2", "-100"), net("P3", "-100")},
			currency: money.VND,
			want: []models.Settlement{
				{From: "P2", FromName: "P2", To: "P1", ToName: "P1", Amount: money.New(100)},
				{From: "P3", FromName: "P3", To: "P1", ToName: "P1", Amount: money.New(100)},
			},
		},
		{
			name:     "balanced room needs no transfers",
			balances: []models.Balance{net("A", "0"), net("B", "0")},
			currency: money.VND,
			want:     []models.Settlement{},
		},
		{
			name:     "sub-epsilon balances are already settled",
			balances: []models.Balance{net("A", "0.0075"), net("B", "-0.0075")},
			currency: money.VND,
			want:     []models.Settlement{},
		},
		{
			name:     "largest debtor is matched with largest creditor first",
			balances: []models.Balance{net("A", "30"), net("B", "70"), net("C", "-60"), net("D", "-40")},
			currency: money.USD,
			want: []models.Settlement{
				{From: "C", FromName: "C", To: "B", ToName: "B", Amount: money.New(60)},
				{From: "D", FromName: "D", To: "B", ToName: "B", Amount: money.New(10)},
				{From: "D", FromName: "D", To: "A", ToName: "A", Amount: money.New(30)},
			},
		},
		{
			name:     "emitted amounts are rounded to the display unit",
			balances: []models.Balance{net("A", "66.6667"), net("B", "-33.3333"), net("C", "-33.3334")},
			currency: money.VND,
			want: []models.Settlement{
				{From: "C", FromName: "C", To: "A", ToName: "A", Amount: money.New(33)},
				{From: "B", FromName: "B", To: "A", ToName: "A", Amount: money.New(34)},
			},
		},
		{
			name:     "cents survive for two-decimal currencies",
			balances: []models.Balance{net("A", "10.005"), net("B", "-10.005")},
			currency: money.USD,
			want: []models.Settlement{
				{From: "B", FromName: "B", To: "A", ToName: "A", Amount: money.MustParse("10.01")},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeSettlements(tt.balances, tt.currency)
			if got == nil {
				t.Fatal("ComputeSettlements returned nil, want empty slice")
			}
			if len(got) != len(tt.want) {
				t.Fatalf("got %d settlements %v, want %d %v", len(got), got, len(tt.want), tt.want)
			}
			for i := range tt.want {
				if got[i] != tt.want[i] {
					t.Errorf("settlement %d = %+v, want %+v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestComputeSettlements_TiesKeepInputOrder(t *testing.T) {
	balances := []models.Balance{net("X", "-50"), net("C", "100"), net("Y", "-50")}
	got := ComputeSettlements(balances, money.VND)

	if len(got) != 2 {
		t.Fatalf("got %d settlements, want 2", len(got))
	}
	if got[0].From != "X" || got[1].From != "Y" {
		t.Errorf("tie order = [%s %s], want [X Y]", got[0].From, got[1].From)
	}
}

func TestComputeSettlements_RoundingDoesNotCompound(t *testing.T) {
	tests := []struct {
		name     string
		balances []models.Balance
		currency money.Currency
		settled  money.Amount
	}{
		{
			name:     "thirds in a zero-decimal currency",
			balances: []models.Balance{net("A", "100"), net("B", "-33.4"), net("C", "-33.3"), net("D", "-33.3")},
			currency: money.VND,
			settled:  money.New(100),
		},
		{
			name: "sub-unit debtors still pay a whole creditor",
			balances: []models.Balance{
				net("A", "4"),
				net("D0", "-0.4"), net("D1", "-0.4"), net("D2", "-0.4"), net("D3", "-0.4"), net("D4", "-0.4"),
				net("D5", "-0.4"), net("D6", "-0.4"), net("D7", "-0.4"), net("D8", "-0.4"), net("D9", "-0.4"),
			},
			currency: money.VND,
			settled:  money.New(4),
		},
		{
			name:     "half cents in a two-decimal currency",
			balances: []models.Balance{net("A", "0.045"), net("B", "-0.015"), net("C", "-0.015"), net("D", "-0.015")},
			currency: money.USD,
			settled:  money.MustParse("0.05"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			settlements := ComputeSettlements(tt.balances, tt.currency)

			var total money.Amount
			for _, s := range settlements {
				if s.Amount <= 0 {
					t.Fatalf("non-positive settlement %+v", s)
				}
				total += s.Amount
			}
			if total != tt.settled {
				t.Errorf("settled %s in %d transfers, want %s", total, len(settlements), tt.settled)
			}

			bound := money.FromMinor(1, tt.currency) + money.Epsilon
			for id, r := range ApplySettlements(tt.balances, settlements) {
				if r.Abs() > bound {
					t.Errorf("%s residual = %s, want at most %s", id, r, bound)
				}
			}
		})
	}
}

func TestComputeSettlements_SubUnitDebtorsReportDrift(t *testing.T) {
	balances := []models.Balance{net("A", "4")}
	for i := 0; i < 10; i++ {
		balances = append(balances, net(fmt.Sprintf("D%d", i), "-0.4"))
	}

	settlements := ComputeSettlements(balances, money.VND)
	if len(settlements) != 4 {
		t.Fatalf("got %d settlements %v, want 4", len(settlements), settlements)
	}
	payers := []string{settlements[0].From, settlements[1].From, settlements[2].From, settlements[3].From}
	if want := []string{"D1", "D3", "D6", "D8"}; !reflect.DeepEqual(payers, want) {
		t.Errorf("payers = %v, want %v", payers, want)
	}
	if r := ApplySettlements(balances, settlements)["A"]; r != 0 {
		t.Errorf("creditor residual = %s, want 0", r)
	}

	// Each -0.4 rounds to 0 while +4 stays 4.
	w := CheckPrecision(balances, money.VND)
	if w == nil {
		t.Fatal("expected a precision warning")
	}
	if w.Drift != money.New(4) {
		t.Errorf("drift = %s, want 4", w.Drift)
	}
}

func TestApplySettlements(t *testing.T) {
	balances := []models.Balance{net("P1", "200"), net("P2", "-100"), net("P3", "-100")}
	settlements := ComputeSettlements(balances, money.VND)

	for id, r := range ApplySettlements(balances, settlements) {
		if !money.Negligible(r) {
			t.Errorf("%s residual = %s, want zero", id, r)
		}
	}
}

func TestCheckPrecision(t *testing.T) {
	records := []models.ExpenseRecord{expense("t1", "100", "food", "A")}
	balances, err := ComputeBalances(records, users("A", "B", "C"))
	if err != nil {
		t.Fatalf("ComputeBalances failed: %v", err)
	}

	// 66.6666, -33.3333, -33.3333 round to 67, -33, -33 in VND.
	w := CheckPrecision(balances, money.VND)
	if w == nil {
		t.Fatal("expected a precision warning for VND")
	}
	if w.Drift != money.New(1) {
		t.Errorf("drift = %s, want 1", w.Drift)
	}
	if w.Error() == "" {
		t.Error("warning must describe itself")
	}

	if w := CheckPrecision(balances, money.USD); w != nil {
		t.Errorf("unexpected warning for USD: %v", w)
	}
}
