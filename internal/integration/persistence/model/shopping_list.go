// Package model defines database models for persistence layer.
package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/spend-smart/backend/internal/domain/entity"
)

// ShoppingListModel represents the shopping_lists table in the database.
type ShoppingListModel struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey"`
	UserID    uuid.UUID  `gorm:"type:uuid;not null;index"`
	Name      string     `gorm:"type:varchar(200);not null"`
	Status    string     `gorm:"type:varchar(20);not null;index"`
	BudgetID  *uuid.UUID `gorm:"type:uuid"`
	Notes     string     `gorm:"type:text"`
	CreatedAt time.Time  `gorm:"not null"`
	UpdatedAt time.Time  `gorm:"not null"`

	// Relationships
	Items []ShoppingListItemModel `gorm:"foreignKey:ShoppingListID;references:ID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for the ShoppingListModel.
func (ShoppingListModel) TableName() string {
	return "shopping_lists"
}

// ToEntity converts a ShoppingListModel and any loaded items to a domain ShoppingList entity.
func (m *ShoppingListModel) ToEntity() *entity.ShoppingList {
	items := make([]*entity.ShoppingListItem, len(m.Items))
	for i := range m.Items {
		items[i] = m.Items[i].ToEntity()
	}

	return &entity.ShoppingList{
		ID:        m.ID,
		UserID:    m.UserID,
		Name:      m.Name,
		Status:    entity.ShoppingListStatus(m.Status),
		BudgetID:  m.BudgetID,
		Notes:     m.Notes,
		Items:     items,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

// ShoppingListFromEntity creates a ShoppingListModel, including items, from a domain entity.
func ShoppingListFromEntity(list *entity.ShoppingList) *ShoppingListModel {
	items := make([]ShoppingListItemModel, len(list.Items))
	for i, item := range list.Items {
		items[i] = *ShoppingListItemFromEntity(item)
	}

	return &ShoppingListModel{
		ID:        list.ID,
		UserID:    list.UserID,
		Name:      list.Name,
		Status:    string(list.Status),
		BudgetID:  list.BudgetID,
		Notes:     list.Notes,
		Items:     items,
		CreatedAt: list.CreatedAt,
		UpdatedAt: list.UpdatedAt,
	}
}

// ShoppingListItemModel represents the shopping_list_items table in the database.
type ShoppingListItemModel struct {
	ID                uuid.UUID        `gorm:"type:uuid;primaryKey"`
	ShoppingListID    uuid.UUID        `gorm:"type:uuid;not null;index"`
	Name              string           `gorm:"type:varchar(200);not null"`
	CategoryID        *uuid.UUID       `gorm:"type:uuid;index"`
	Quantity          decimal.Decimal  `gorm:"type:decimal(12,3);not null"`
	Unit              string           `gorm:"type:varchar(50);not null"`
	EstimatedPrice    *decimal.Decimal `gorm:"type:decimal(12,2)"`
	Priority          string           `gorm:"type:varchar(10);not null"`
	IsPurchased       bool             `gorm:"not null;default:false"`
	PurchaseFrequency int              `gorm:"not null;default:0"`
	LastPurchaseDate  *time.Time
	Notes             string    `gorm:"type:text"`
	CreatedAt         time.Time `gorm:"not null"`
	UpdatedAt         time.Time `gorm:"not null"`

	// Relationships (not loaded by default, use Preload)
	Category *CategoryModel `gorm:"foreignKey:CategoryID;references:ID;constraint:OnDelete:SET NULL"`
}

// TableName returns the table name for the ShoppingListItemModel.
func (ShoppingListItemModel) TableName() string {
	return "shopping_list_items"
}

// ToEntity converts a ShoppingListItemModel to a domain ShoppingListItem entity.
func (m *ShoppingListItemModel) ToEntity() *entity.ShoppingListItem {
	item := &entity.ShoppingListItem{
		ID:                m.ID,
		ShoppingListID:    m.ShoppingListID,
		Name:              m.Name,
		CategoryID:        m.CategoryID,
		Quantity:          m.Quantity,
		Unit:              m.Unit,
		EstimatedPrice:    m.EstimatedPrice,
		Priority:          entity.Priority(m.Priority),
		IsPurchased:       m.IsPurchased,
		PurchaseFrequency: m.PurchaseFrequency,
		LastPurchaseDate:  m.LastPurchaseDate,
		Notes:             m.Notes,
		CreatedAt:         m.CreatedAt,
		UpdatedAt:         m.UpdatedAt,
	}
	if m.Category != nil {
		item.Category = m.Category.ToEntity()
	}
	return item
}

// ShoppingListItemFromEntity creates a ShoppingListItemModel from a domain entity.
// The category relation is never written through the item.
func ShoppingListItemFromEntity(item *entity.ShoppingListItem) *ShoppingListItemModel {
	return &ShoppingListItemModel{
		ID:                item.ID,
		ShoppingListID:    item.ShoppingListID,
		Name:              item.Name,
		CategoryID:        item.CategoryID,
		Quantity:          item.Quantity,
		Unit:              item.Unit,
		EstimatedPrice:    item.EstimatedPrice,
		Priority:          string(item.Priority),
		IsPurchased:       item.IsPurchased,
		PurchaseFrequency: item.PurchaseFrequency,
		LastPurchaseDate:  item.LastPurchaseDate,
		Notes:             item.Notes,
		CreatedAt:         item.CreatedAt,
		UpdatedAt:         item.UpdatedAt,
	}
}
