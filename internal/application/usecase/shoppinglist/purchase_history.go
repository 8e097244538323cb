package shoppinglist

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/spend-smart/backend/internal/domain/entity"
)

// HistoryEntry summarizes how a user buys one product.
type HistoryEntry struct {
	Name          string          `json:"name"`
	Category      string          `json:"category"`
	Unit          string          `json:"unit"`
	PurchaseCount int             `json:"purchase_count"`
	AvgQuantity   decimal.Decimal `json:"avg_quantity"`
	AvgPrice      decimal.Decimal `json:"avg_price"`
	LastPurchased time.Time       `json:"last_purchased"`
}

// BudgetContext is the budget summary given to the generator.
type BudgetContext struct {
	Amount         decimal.Decimal `json:"amount"`
	Currency       string          `json:"currency"`
	CurrencySymbol string          `json:"currency_symbol"`
	Period         string          `json:"period"`
}

// generationContext is serialized as the generator's textual input.
type generationContext struct {
	PurchaseHistory []HistoryEntry `json:"purchase_history"`
	Budget          *BudgetContext `json:"budget"`
}

type historyKey struct {
	name     string
	category string
	unit     string
}

type historyAccumulator struct {
	entry       HistoryEntry
	quantitySum decimal.Decimal
	priceSum    decimal.Decimal
}

// summarizeHistory groups items by (name, category, unit), most bought first.
func summarizeHistory(items []*entity.LineItemWithCategory) []HistoryEntry {
	groups := make(map[historyKey]*historyAccumulator)
	var order []historyKey

	for _, item := range items {
		key := historyKey{
			name:     item.Item.Name,
			category: item.CategoryName(),
			unit:     item.Item.Unit,
		}

		acc, ok := groups[key]
		if !ok {
			acc = &historyAccumulator{
				entry: HistoryEntry{Name: key.name, Category: key.category, Unit: key.unit},
			}
			groups[key] = acc
			order = append(order, key)
		}

		acc.entry.PurchaseCount++
		acc.quantitySum = acc.quantitySum.Add(item.Item.Quantity)
		acc.priceSum = acc.priceSum.Add(item.Item.Price)
		if item.Item.CreatedAt.After(acc.entry.LastPurchased) {
			acc.entry.LastPurchased = item.Item.CreatedAt
		}
	}

	entries := make([]HistoryEntry, 0, len(order))
	for _, key := range order {
		acc := groups[key]
		count := decimal.NewFromInt(int64(acc.entry.PurchaseCount))
		acc.entry.AvgQuantity = acc.quantitySum.Div(count).Round(2)
		acc.entry.AvgPrice = acc.priceSum.Div(count).Round(2)
		entries = append(entries, acc.entry)
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].PurchaseCount > entries[j].PurchaseCount
	})
	return entries
}

func budgetContext(budget *entity.Budget) *BudgetContext {
	if budget == nil {
		return nil
	}
	return &BudgetContext{
		Amount:         budget.Amount,
		Currency:       string(budget.Currency),
		CurrencySymbol: budget.Currency.Symbol(),
		Period:         string(budget.Period),
	}
}
