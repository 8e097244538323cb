// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/spend-smart/backend/internal/domain/entity"
)

// ShoppingListRepository defines the interface for shopping list persistence operations.
type ShoppingListRepository interface {
	// Create creates a list together with its items.
	Create(ctx context.Context, list *entity.ShoppingList) error

	// FindByID retrieves a list with its items.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.ShoppingList, error)

	// FindByUser retrieves a user's lists with their items, newest first.
	FindByUser(ctx context.Context, userID uuid.UUID) ([]*entity.ShoppingList, error)

	// MarkItemsPurchased marks the given items of a list purchased, bumping their
	// purchase frequency. Returns the number of items updated.
	MarkItemsPurchased(ctx context.Context, listID uuid.UUID, itemIDs []uuid.UUID, purchasedAt time.Time) (int64, error)

	// CountUnpurchased counts the list's items that are not yet purchased.
	CountUnpurchased(ctx context.Context, listID uuid.UUID) (int64, error)

	// UpdateStatus sets the list status.
	UpdateStatus(ctx context.Context, listID uuid.UUID, status entity.ShoppingListStatus) error
}
