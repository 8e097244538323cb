package entity

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func TestReceiptStatus_CanTransitionTo(t *testing.T) {
	tests := []struct {
		from ReceiptStatus
		to   ReceiptStatus
		want bool
	}{
		{ReceiptStatusPending, ReceiptStatusProcessing, true},
		{ReceiptStatusPending, ReceiptStatusCompleted, false},
		{ReceiptStatusPending, ReceiptStatusFailed, false},
		{ReceiptStatusProcessing, ReceiptStatusCompleted, true},
		{ReceiptStatusProcessing, ReceiptStatusFailed, true},
		{ReceiptStatusProcessing, ReceiptStatusPending, false},
		{ReceiptStatusCompleted, ReceiptStatusProcessing, false},
		{ReceiptStatusFailed, ReceiptStatusPending, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"->"+string(tt.to), func(t *testing.T) {
			if got := tt.from.CanTransitionTo(tt.to); got != tt.want {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestReceiptImageKey(t *testing.T) {
	userID := uuid.MustParse("11111111-2222-3333-4444-555555555555")
	receiptID := uuid.MustParse("aaaaaaaa-bbbb-cccc-dddd-eeeeeeeeeeee")
	at := time.Date(2026, time.March, 7, 9, 5, 3, 0, time.UTC)

	got := ReceiptImageKey(userID, receiptID, "png", at)
	want := "receipts/user_11111111-2222-3333-4444-555555555555/2026/03/receipt_20260307_090503_aaaaaaaa-bbbb-cccc-dddd-eeeeeeeeeeee.png"
	if got != want {
		t.Errorf("expected %s, got %s", want, got)
	}

	if other := ReceiptImageKey(userID, uuid.New(), "png", at); other == got {
		t.Error("expected distinct keys for receipts uploaded in the same second")
	}
}

func TestBudget_ShouldNotify(t *testing.T) {
	budget := NewBudget(uuid.New(), decimal.NewFromInt(100), BudgetPeriodWeekly, CurrencyUSD, decimal.NewFromInt(80))

	tests := []struct {
		name  string
		spent decimal.Decimal
		sent  bool
		want  bool
	}{
		{name: "below threshold", spent: decimal.RequireFromString("79.99"), want: false},
		{name: "exactly at threshold", spent: decimal.NewFromInt(80), want: true},
		{name: "above threshold", spent: decimal.NewFromInt(120), want: true},
		{name: "already sent", spent: decimal.NewFromInt(120), sent: true, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			budget.NotificationSent = tt.sent
			if got := budget.ShouldNotify(tt.spent); got != tt.want {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestBudget_UsagePercentage(t *testing.T) {
	budget := NewBudget(uuid.New(), decimal.NewFromInt(200), BudgetPeriodMonthly, CurrencyEUR, decimal.NewFromInt(150))

	if got := budget.UsagePercentage(decimal.NewFromInt(50)); !got.Equal(decimal.NewFromInt(25)) {
		t.Errorf("expected 25, got %s", got)
	}
	if got := budget.Remaining(decimal.NewFromInt(250)); !got.Equal(decimal.NewFromInt(-50)) {
		t.Errorf("expected -50, got %s", got)
	}

	budget.Amount = decimal.Zero
	if got := budget.UsagePercentage(decimal.NewFromInt(50)); !got.IsZero() {
		t.Errorf("expected 0 for zero amount, got %s", got)
	}
}

func TestCurrency_Symbol(t *testing.T) {
	tests := map[Currency]string{
		CurrencyUSD: "$",
		CurrencyEUR: "€",
		CurrencyGBP: "£",
		CurrencyINR: "₹",
		CurrencyJPY: "¥",
		"CHF":       "CHF",
	}

	for currency, want := range tests {
		if got := currency.Symbol(); got != want {
			t.Errorf("%s: expected %s, got %s", currency, want, got)
		}
	}
	if Currency("CHF").IsValid() {
		t.Error("expected CHF to be unsupported")
	}
}

func TestShoppingList_Totals(t *testing.T) {
	list := NewShoppingList(uuid.New(), "Weekly", nil, "")
	price := decimal.RequireFromString("2.50")

	list.Items = []*ShoppingListItem{
		NewShoppingListItem(list.ID, "Milk", nil, decimal.NewFromInt(2), "", &price, PriorityHigh, ""),
		NewShoppingListItem(list.ID, "Salt", nil, decimal.NewFromInt(1), "", nil, "urgent", ""),
	}

	if !list.TotalEstimatedCost().Equal(decimal.NewFromInt(5)) {
		t.Errorf("expected 5, got %s", list.TotalEstimatedCost())
	}
	if list.Items[1].Priority != PriorityMedium {
		t.Errorf("expected invalid priority to default to medium, got %s", list.Items[1].Priority)
	}
	if list.Items[1].Unit != DefaultUnit {
		t.Errorf("expected default unit, got %s", list.Items[1].Unit)
	}
	if list.AllPurchased() {
		t.Error("expected list with unpurchased items to be incomplete")
	}

	for _, item := range list.Items {
		item.IsPurchased = true
	}
	if !list.AllPurchased() || list.CompletedItems() != 2 {
		t.Error("expected all items purchased")
	}

	empty := NewShoppingList(uuid.New(), "Empty", nil, "")
	if empty.AllPurchased() {
		t.Error("expected empty list to be incomplete")
	}
}
