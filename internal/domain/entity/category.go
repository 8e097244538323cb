// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// DefaultFallbackCategoryName is the category assigned to line items whose
// extracted category does not match the known vocabulary.
const DefaultFallbackCategoryName = "Other"

// Category represents a named grouping for line items and shopping list items.
// Names are unique system-wide.
type Category struct {
	ID          uuid.UUID
	Name        string
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewCategory creates a new Category entity.
func NewCategory(name, description string) *Category {
	now := time.Now().UTC()

	return &Category{
		ID:          uuid.New(),
		Name:        name,
		Description: description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// CategorySeed is a name/description pair used to populate the vocabulary.
type CategorySeed struct {
	Name        string
	Description string
}

// DefaultCategories is the vocabulary seeded on a fresh install.
var DefaultCategories = []CategorySeed{
	{Name: "Fruits & Vegetables", Description: "Fresh produce"},
	{Name: "Dairy & Eggs", Description: "Milk, cheese, yogurt and eggs"},
	{Name: "Pantry", Description: "Staples, grains, canned and dry goods"},
	{Name: "Snacks", Description: "Chips, sweets and other snacks"},
	{Name: "Beverages", Description: "Drinks of all kinds"},
	{Name: "Meat & Seafood", Description: "Fresh and frozen meat and fish"},
	{Name: "Household", Description: "Cleaning and home supplies"},
	{Name: DefaultFallbackCategoryName, Description: "Everything else"},
}

// CategoryNames returns the names of the given categories in order.
func CategoryNames(categories []*Category) []string {
	names := make([]string, 0, len(categories))
	for _, c := range categories {
		names = append(names, c.Name)
	}
	return names
}
