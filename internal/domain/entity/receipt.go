// Package entity defines the core business entities for the domain layer.
package entity

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ReceiptStatus represents the processing state of a receipt.
type ReceiptStatus string

const (
	ReceiptStatusPending    ReceiptStatus = "pending"
	ReceiptStatusProcessing ReceiptStatus = "processing"
	ReceiptStatusCompleted  ReceiptStatus = "completed"
	ReceiptStatusFailed     ReceiptStatus = "failed"
)

// IsValid reports whether s is a known receipt status.
func (s ReceiptStatus) IsValid() bool {
	switch s {
	case ReceiptStatusPending, ReceiptStatusProcessing, ReceiptStatusCompleted, ReceiptStatusFailed:
		return true
	}
	return false
}

// CanTransitionTo reports whether the lifecycle allows moving from s to next.
// pending -> processing -> (completed | failed), nothing else.
func (s ReceiptStatus) CanTransitionTo(next ReceiptStatus) bool {
	switch s {
	case ReceiptStatusPending:
		return next == ReceiptStatusProcessing
	case ReceiptStatusProcessing:
		return next == ReceiptStatusCompleted || next == ReceiptStatusFailed
	}
	return false
}

// Receipt represents an uploaded receipt image and its extraction result.
type Receipt struct {
	ID               uuid.UUID
	UserID           uuid.UUID
	ImageKey         string
	ImageContentType string
	Platform         string
	Status           ReceiptStatus
	TotalAmount      *decimal.Decimal
	RawPayload       string // Extraction output on success, structured error on failure
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// NewReceipt creates a new pending Receipt entity.
func NewReceipt(userID uuid.UUID, imageKey, contentType, platform string) *Receipt {
	now := time.Now().UTC()

	return &Receipt{
		ID:               uuid.New(),
		UserID:           userID,
		ImageKey:         imageKey,
		ImageContentType: contentType,
		Platform:         platform,
		Status:           ReceiptStatusPending,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
}

// ReceiptImageKey builds the object key for a receipt image uploaded at the given time.
// The receipt ID keeps keys distinct for uploads within the same second.
func ReceiptImageKey(userID, receiptID uuid.UUID, ext string, uploadedAt time.Time) string {
	t := uploadedAt.UTC()
	return fmt.Sprintf("receipts/user_%s/%04d/%02d/receipt_%s_%s.%s",
		userID, t.Year(), int(t.Month()), t.Format("20060102_150405"), receiptID, ext)
}

// ReceiptWithItems is a receipt together with the line items extracted from it.
type ReceiptWithItems struct {
	Receipt *Receipt
	Items   []*LineItemWithCategory
}
