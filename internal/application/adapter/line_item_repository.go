// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/spend-smart/backend/internal/domain/entity"
)

// LineItemRepository defines the interface for line item persistence operations.
type LineItemRepository interface {
	// Create creates a single line item.
	Create(ctx context.Context, item *entity.LineItem) error

	// CreateBatch creates all items or none.
	CreateBatch(ctx context.Context, items []*entity.LineItem) error

	// FindByID retrieves a line item with its category.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.LineItemWithCategory, error)

	// FindByUser retrieves a user's line items, newest first.
	FindByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entity.LineItemWithCategory, int64, error)

	// FindByReceipt retrieves the items extracted from a receipt.
	FindByReceipt(ctx context.Context, receiptID uuid.UUID) ([]*entity.LineItemWithCategory, error)

	// FindByUserCreatedBetween retrieves items created in [start, end).
	FindByUserCreatedBetween(ctx context.Context, userID uuid.UUID, start, end time.Time) ([]*entity.LineItemWithCategory, error)

	// UpdateCategory reassigns the item's category.
	UpdateCategory(ctx context.Context, id uuid.UUID, categoryID *uuid.UUID) error
}
