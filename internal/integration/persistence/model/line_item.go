// Package model defines database models for persistence layer.
package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/spend-smart/backend/internal/domain/entity"
)

// LineItemModel represents the line_items table in the database.
type LineItemModel struct {
	ID         uuid.UUID       `gorm:"type:uuid;primaryKey"`
	UserID     uuid.UUID       `gorm:"type:uuid;not null;index:idx_line_items_user_created"`
	ReceiptID  *uuid.UUID      `gorm:"type:uuid;index"`
	Name       string          `gorm:"type:varchar(200);not null"`
	CategoryID *uuid.UUID      `gorm:"type:uuid;index"`
	Price      decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Quantity   decimal.Decimal `gorm:"type:decimal(12,3);not null"`
	Unit       string          `gorm:"type:varchar(50);not null"`
	Platform   string          `gorm:"type:varchar(100)"`
	CreatedAt  time.Time       `gorm:"not null;index:idx_line_items_user_created"`
	UpdatedAt  time.Time       `gorm:"not null"`

	// Relationships (not loaded by default, use Preload)
	Category *CategoryModel `gorm:"foreignKey:CategoryID;references:ID;constraint:OnDelete:SET NULL"`
}

// TableName returns the table name for the LineItemModel.
func (LineItemModel) TableName() string {
	return "line_items"
}

// ToEntity converts a LineItemModel to a domain LineItem entity.
func (m *LineItemModel) ToEntity() *entity.LineItem {
	return &entity.LineItem{
		ID:         m.ID,
		UserID:     m.UserID,
		ReceiptID:  m.ReceiptID,
		Name:       m.Name,
		CategoryID: m.CategoryID,
		Price:      m.Price,
		Quantity:   m.Quantity,
		Unit:       m.Unit,
		Platform:   m.Platform,
		CreatedAt:  m.CreatedAt,
		UpdatedAt:  m.UpdatedAt,
	}
}

// ToEntityWithCategory converts the model and its preloaded category.
func (m *LineItemModel) ToEntityWithCategory() *entity.LineItemWithCategory {
	result := &entity.LineItemWithCategory{Item: m.ToEntity()}
	if m.Category != nil {
		result.Category = m.Category.ToEntity()
	}
	return result
}

// LineItemFromEntity creates a LineItemModel from a domain LineItem entity.
func LineItemFromEntity(item *entity.LineItem) *LineItemModel {
	return &LineItemModel{
		ID:         item.ID,
		UserID:     item.UserID,
		ReceiptID:  item.ReceiptID,
		Name:       item.Name,
		CategoryID: item.CategoryID,
		Price:      item.Price,
		Quantity:   item.Quantity,
		Unit:       item.Unit,
		Platform:   item.Platform,
		CreatedAt:  item.CreatedAt,
		UpdatedAt:  item.UpdatedAt,
	}
}
