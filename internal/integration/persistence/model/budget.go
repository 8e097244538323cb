// Package model defines database models for persistence layer.
package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/spend-smart/backend/internal/domain/entity"
)

// BudgetModel represents the budgets table in the database.
// (user_id, period) is unique.
type BudgetModel struct {
	ID                    uuid.UUID       `gorm:"type:uuid;primaryKey"`
	UserID                uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_budgets_user_period"`
	Amount                decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Period                string          `gorm:"type:varchar(10);not null;uniqueIndex:idx_budgets_user_period"`
	Currency              string          `gorm:"type:varchar(3);not null"`
	NotificationThreshold decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	NotificationSent      bool            `gorm:"not null;default:false;index"`
	CreatedAt             time.Time       `gorm:"not null"`
	UpdatedAt             time.Time       `gorm:"not null"`
}

// TableName returns the table name for the BudgetModel.
func (BudgetModel) TableName() string {
	return "budgets"
}

// ToEntity converts a BudgetModel to a domain Budget entity.
func (m *BudgetModel) ToEntity() *entity.Budget {
	return &entity.Budget{
		ID:                    m.ID,
		UserID:                m.UserID,
		Amount:                m.Amount,
		Period:                entity.BudgetPeriod(m.Period),
		Currency:              entity.Currency(m.Currency),
		NotificationThreshold: m.NotificationThreshold,
		NotificationSent:      m.NotificationSent,
		CreatedAt:             m.CreatedAt,
		UpdatedAt:             m.UpdatedAt,
	}
}

// BudgetFromEntity creates a BudgetModel from a domain Budget entity.
func BudgetFromEntity(budget *entity.Budget) *BudgetModel {
	return &BudgetModel{
		ID:                    budget.ID,
		UserID:                budget.UserID,
		Amount:                budget.Amount,
		Period:                string(budget.Period),
		Currency:              string(budget.Currency),
		NotificationThreshold: budget.NotificationThreshold,
		NotificationSent:      budget.NotificationSent,
		CreatedAt:             budget.CreatedAt,
		UpdatedAt:             budget.UpdatedAt,
	}
}
