package budget

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/spend-smart/backend/internal/application/adapter"
	"github.com/spend-smart/backend/internal/domain/entity"
)

// UncategorizedName labels spend on items without a category.
const UncategorizedName = "Uncategorized"

var hundred = decimal.NewFromInt(100)

// CategorySpend is one row of a spend breakdown.
type CategorySpend struct {
	CategoryID   *uuid.UUID
	CategoryName string
	Amount       decimal.Decimal
	Percentage   decimal.Decimal
}

// SpendSummary is the spend of one user over one budget window.
type SpendSummary struct {
	Window     Window
	TotalSpent decimal.Decimal
	Breakdown  []CategorySpend
}

// SpendCalculator aggregates line item spend for a budget's current period.
// It only reads.
type SpendCalculator struct {
	lineItemRepo adapter.LineItemRepository
	location     *time.Location
	now          func() time.Time
}

// NewSpendCalculator creates a new SpendCalculator. Windows are computed in loc.
func NewSpendCalculator(lineItemRepo adapter.LineItemRepository, loc *time.Location) *SpendCalculator {
	if loc == nil {
		loc = time.UTC
	}
	return &SpendCalculator{
		lineItemRepo: lineItemRepo,
		location:     loc,
		now:          time.Now,
	}
}

// Calculate sums the price of every item the budget's owner recorded in the
// current window. Price is summed as recorded, not multiplied by quantity.
func (c *SpendCalculator) Calculate(ctx context.Context, budget *entity.Budget) (*SpendSummary, error) {
	window := PeriodWindow(budget.Period, c.now(), c.location)

	items, err := c.lineItemRepo.FindByUserCreatedBetween(ctx, budget.UserID, window.Start, window.End)
	if err != nil {
		return nil, fmt.Errorf("failed to load spend for budget %s: %w", budget.ID, err)
	}

	total, breakdown := aggregate(items)
	return &SpendSummary{
		Window:     window,
		TotalSpent: total,
		Breakdown:  breakdown,
	}, nil
}

// aggregate groups items by category, largest spend first.
func aggregate(items []*entity.LineItemWithCategory) (decimal.Decimal, []CategorySpend) {
	total := decimal.Zero
	index := make(map[uuid.UUID]int)
	var breakdown []CategorySpend

	for _, item := range items {
		total = total.Add(item.Item.Price)

		var key uuid.UUID
		if item.Category != nil {
			key = item.Category.ID
		}

		i, ok := index[key]
		if !ok {
			row := CategorySpend{CategoryName: UncategorizedName}
			if item.Category != nil {
				id := item.Category.ID
				row.CategoryID = &id
				row.CategoryName = item.Category.Name
			}
			breakdown = append(breakdown, row)
			i = len(breakdown) - 1
			index[key] = i
		}
		breakdown[i].Amount = breakdown[i].Amount.Add(item.Item.Price)
	}

	for i := range breakdown {
		if total.IsZero() {
			breakdown[i].Percentage = decimal.Zero
			continue
		}
		breakdown[i].Percentage = breakdown[i].Amount.Mul(hundred).Div(total).Round(2)
	}

	sort.SliceStable(breakdown, func(a, b int) bool {
		if !breakdown[a].Amount.Equal(breakdown[b].Amount) {
			return breakdown[a].Amount.GreaterThan(breakdown[b].Amount)
		}
		return breakdown[a].CategoryName < breakdown[b].CategoryName
	})

	return total, breakdown
}
