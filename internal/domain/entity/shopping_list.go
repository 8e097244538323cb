// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ShoppingListStatus represents the lifecycle state of a shopping list.
type ShoppingListStatus string

const (
	ShoppingListStatusDraft     ShoppingListStatus = "draft"
	ShoppingListStatusActive    ShoppingListStatus = "active"
	ShoppingListStatusCompleted ShoppingListStatus = "completed"
	ShoppingListStatusArchived  ShoppingListStatus = "archived"
)

// IsValid reports whether s is a known list status.
func (s ShoppingListStatus) IsValid() bool {
	switch s {
	case ShoppingListStatusDraft, ShoppingListStatusActive, ShoppingListStatusCompleted, ShoppingListStatusArchived:
		return true
	}
	return false
}

// Priority ranks shopping list items.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// IsValid reports whether p is a known priority.
func (p Priority) IsValid() bool {
	return p == PriorityLow || p == PriorityMedium || p == PriorityHigh
}

// Rank orders priorities, high first.
func (p Priority) Rank() int {
	switch p {
	case PriorityHigh:
		return 0
	case PriorityMedium:
		return 1
	}
	return 2
}

// ShoppingList represents a recommended or user-managed list of items to buy.
type ShoppingList struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Name      string
	Status    ShoppingListStatus
	BudgetID  *uuid.UUID
	Notes     string
	Items     []*ShoppingListItem
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewShoppingList creates a new draft ShoppingList entity.
func NewShoppingList(userID uuid.UUID, name string, budgetID *uuid.UUID, notes string) *ShoppingList {
	now := time.Now().UTC()

	return &ShoppingList{
		ID:        uuid.New(),
		UserID:    userID,
		Name:      name,
		Status:    ShoppingListStatusDraft,
		BudgetID:  budgetID,
		Notes:     notes,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// TotalEstimatedCost sums estimated price times quantity over items with a price.
func (l *ShoppingList) TotalEstimatedCost() decimal.Decimal {
	total := decimal.Zero
	for _, item := range l.Items {
		if item.EstimatedPrice != nil {
			total = total.Add(item.EstimatedPrice.Mul(item.Quantity))
		}
	}
	return total
}

// CompletedItems counts purchased items.
func (l *ShoppingList) CompletedItems() int {
	n := 0
	for _, item := range l.Items {
		if item.IsPurchased {
			n++
		}
	}
	return n
}

// AllPurchased reports whether every item has been purchased.
// An empty list is not considered complete.
func (l *ShoppingList) AllPurchased() bool {
	return len(l.Items) > 0 && l.CompletedItems() == len(l.Items)
}

// ShoppingListItem is a single entry on a shopping list.
type ShoppingListItem struct {
	ID                uuid.UUID
	ShoppingListID    uuid.UUID
	Name              string
	CategoryID        *uuid.UUID
	Category          *Category // populated on reads
	Quantity          decimal.Decimal
	Unit              string
	EstimatedPrice    *decimal.Decimal
	Priority          Priority
	IsPurchased       bool
	PurchaseFrequency int
	LastPurchaseDate  *time.Time
	Notes             string
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// NewShoppingListItem creates a new unpurchased ShoppingListItem entity.
func NewShoppingListItem(listID uuid.UUID, name string, categoryID *uuid.UUID, quantity decimal.Decimal, unit string, estimatedPrice *decimal.Decimal, priority Priority, notes string) *ShoppingListItem {
	now := time.Now().UTC()
	if unit == "" {
		unit = DefaultUnit
	}
	if !priority.IsValid() {
		priority = PriorityMedium
	}

	return &ShoppingListItem{
		ID:             uuid.New(),
		ShoppingListID: listID,
		Name:           name,
		CategoryID:     categoryID,
		Quantity:       quantity,
		Unit:           unit,
		EstimatedPrice: estimatedPrice,
		Priority:       priority,
		Notes:          notes,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}
