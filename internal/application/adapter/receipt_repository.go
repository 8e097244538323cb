// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/spend-smart/backend/internal/domain/entity"
)

// ReceiptRepository defines the interface for receipt persistence operations.
// Status changes are compare-and-set: each Mark method only succeeds when the
// receipt is in the expected source state and reports whether it won.
type ReceiptRepository interface {
	// Create creates a new receipt in the database.
	Create(ctx context.Context, receipt *entity.Receipt) error

	// FindByID retrieves a receipt by its ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Receipt, error)

	// FindByUser retrieves a user's receipts, newest first.
	FindByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entity.Receipt, int64, error)

	// FindByStatus retrieves receipts in the given status, oldest first.
	FindByStatus(ctx context.Context, status entity.ReceiptStatus, limit int) ([]*entity.Receipt, error)

	// MarkProcessing moves a pending receipt to processing.
	MarkProcessing(ctx context.Context, id uuid.UUID) (bool, error)

	// MarkCompleted moves a processing receipt to completed, storing the total and payload.
	MarkCompleted(ctx context.Context, id uuid.UUID, total decimal.Decimal, rawPayload string) (bool, error)

	// MarkFailed moves a processing receipt to failed, storing the diagnostic payload.
	MarkFailed(ctx context.Context, id uuid.UUID, rawPayload string) (bool, error)
}
