// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// BudgetPeriod represents the window a budget applies to.
type BudgetPeriod string

const (
	BudgetPeriodWeekly  BudgetPeriod = "weekly"
	BudgetPeriodMonthly BudgetPeriod = "monthly"
)

// IsValid reports whether p is a supported period.
func (p BudgetPeriod) IsValid() bool {
	return p == BudgetPeriodWeekly || p == BudgetPeriodMonthly
}

// Currency is an ISO currency code.
type Currency string

const (
	CurrencyUSD Currency = "USD"
	CurrencyEUR Currency = "EUR"
	CurrencyGBP Currency = "GBP"
	CurrencyINR Currency = "INR"
	CurrencyJPY Currency = "JPY"
)

var currencySymbols = map[Currency]string{
	CurrencyUSD: "$",
	CurrencyEUR: "€",
	CurrencyGBP: "£",
	CurrencyINR: "₹",
	CurrencyJPY: "¥",
}

// IsValid reports whether c is a supported currency.
func (c Currency) IsValid() bool {
	_, ok := currencySymbols[c]
	return ok
}

// Symbol returns the display symbol, or the code itself when unknown.
func (c Currency) Symbol() string {
	if s, ok := currencySymbols[c]; ok {
		return s
	}
	return string(c)
}

// Budget represents a spending limit for a user over a period.
// NotificationSent is a one-way latch: once set, no further alert is sent for this budget.
type Budget struct {
	ID                    uuid.UUID
	UserID                uuid.UUID
	Amount                decimal.Decimal
	Period                BudgetPeriod
	Currency              Currency
	NotificationThreshold decimal.Decimal
	NotificationSent      bool
	CreatedAt             time.Time
	UpdatedAt             time.Time
}

// NewBudget creates a new Budget entity.
func NewBudget(userID uuid.UUID, amount decimal.Decimal, period BudgetPeriod, currency Currency, threshold decimal.Decimal) *Budget {
	now := time.Now().UTC()

	return &Budget{
		ID:                    uuid.New(),
		UserID:                userID,
		Amount:                amount,
		Period:                period,
		Currency:              currency,
		NotificationThreshold: threshold,
		CreatedAt:             now,
		UpdatedAt:             now,
	}
}

// ShouldNotify reports whether an alert is due for the given spend.
// Reaching the threshold exactly counts.
func (b *Budget) ShouldNotify(spent decimal.Decimal) bool {
	return !b.NotificationSent && spent.GreaterThanOrEqual(b.NotificationThreshold)
}

// Remaining returns the amount left before the budget is exhausted. May be negative.
func (b *Budget) Remaining(spent decimal.Decimal) decimal.Decimal {
	return b.Amount.Sub(spent)
}

// UsagePercentage returns spent as a percentage of the budget amount, rounded to 2 places.
func (b *Budget) UsagePercentage(spent decimal.Decimal) decimal.Decimal {
	if b.Amount.IsZero() {
		return decimal.Zero
	}
	return spent.Mul(decimal.NewFromInt(100)).Div(b.Amount).Round(2)
}
