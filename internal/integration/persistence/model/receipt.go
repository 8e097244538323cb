// Package model defines database models for persistence layer.
package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/spend-smart/backend/internal/domain/entity"
)

// ReceiptModel represents the receipts table in the database.
type ReceiptModel struct {
	ID               uuid.UUID        `gorm:"type:uuid;primaryKey"`
	UserID           uuid.UUID        `gorm:"type:uuid;not null;index"`
	ImageKey         string           `gorm:"type:varchar(255);not null"`
	ImageContentType string           `gorm:"type:varchar(50)"`
	Platform         string           `gorm:"type:varchar(100);not null"`
	Status           string           `gorm:"type:varchar(20);not null;index"`
	TotalAmount      *decimal.Decimal `gorm:"type:decimal(12,2)"`
	RawPayload       string           `gorm:"type:text"`
	CreatedAt        time.Time        `gorm:"not null;index"`
	UpdatedAt        time.Time        `gorm:"not null"`
}

// TableName returns the table name for the ReceiptModel.
func (ReceiptModel) TableName() string {
	return "receipts"
}

// ToEntity converts a ReceiptModel to a domain Receipt entity.
func (m *ReceiptModel) ToEntity() *entity.Receipt {
	return &entity.Receipt{
		ID:               m.ID,
		UserID:           m.UserID,
		ImageKey:         m.ImageKey,
		ImageContentType: m.ImageContentType,
		Platform:         m.Platform,
		Status:           entity.ReceiptStatus(m.Status),
		TotalAmount:      m.TotalAmount,
		RawPayload:       m.RawPayload,
		CreatedAt:        m.CreatedAt,
		UpdatedAt:        m.UpdatedAt,
	}
}

// ReceiptFromEntity creates a ReceiptModel from a domain Receipt entity.
func ReceiptFromEntity(receipt *entity.Receipt) *ReceiptModel {
	return &ReceiptModel{
		ID:               receipt.ID,
		UserID:           receipt.UserID,
		ImageKey:         receipt.ImageKey,
		ImageContentType: receipt.ImageContentType,
		Platform:         receipt.Platform,
		Status:           string(receipt.Status),
		TotalAmount:      receipt.TotalAmount,
		RawPayload:       receipt.RawPayload,
		CreatedAt:        receipt.CreatedAt,
		UpdatedAt:        receipt.UpdatedAt,
	}
}
