// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DefaultUnit is the unit used when none is given.
const DefaultUnit = "piece"

// LineItem represents a single purchased product.
// Price is the per-unit price; spend aggregation sums Price as recorded.
type LineItem struct {
	ID         uuid.UUID
	UserID     uuid.UUID
	ReceiptID  *uuid.UUID // nil for items entered directly
	Name       string
	CategoryID *uuid.UUID
	Price      decimal.Decimal
	Quantity   decimal.Decimal
	Unit       string
	Platform   string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// NewLineItem creates a new LineItem entity.
func NewLineItem(userID uuid.UUID, receiptID *uuid.UUID, name string, categoryID *uuid.UUID, price, quantity decimal.Decimal, unit, platform string) *LineItem {
	now := time.Now().UTC()
	if unit == "" {
		unit = DefaultUnit
	}

	return &LineItem{
		ID:         uuid.New(),
		UserID:     userID,
		ReceiptID:  receiptID,
		Name:       name,
		CategoryID: categoryID,
		Price:      price,
		Quantity:   quantity,
		Unit:       unit,
		Platform:   platform,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

// TotalPrice returns price multiplied by quantity.
func (i *LineItem) TotalPrice() decimal.Decimal {
	return i.Price.Mul(i.Quantity)
}

// LineItemWithCategory represents a line item with its associated category.
type LineItemWithCategory struct {
	Item     *LineItem
	Category *Category // nil when uncategorized
}

// CategoryName returns the category name or an empty string.
func (l *LineItemWithCategory) CategoryName() string {
	if l.Category == nil {
		return ""
	}
	return l.Category.Name
}
