// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/spend-smart/backend/internal/domain/entity"
)

// BudgetRepository defines the interface for budget persistence operations.
type BudgetRepository interface {
	// Create creates a new budget. Returns ErrBudgetAlreadyExists on a (user, period) clash.
	Create(ctx context.Context, budget *entity.Budget) error

	// FindByID retrieves a budget by its ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Budget, error)

	// FindByUser retrieves a user's budgets, newest first.
	FindByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Budget, error)

	// FindLatestByUser retrieves the user's most recently created budget.
	FindLatestByUser(ctx context.Context, userID uuid.UUID) (*entity.Budget, error)

	// FindUnnotified retrieves every budget whose notification latch is still open.
	FindUnnotified(ctx context.Context) ([]*entity.Budget, error)

	// UpdateSettings persists amount, threshold and currency. The notification latch is untouched.
	UpdateSettings(ctx context.Context, budget *entity.Budget) error

	// Delete removes a budget.
	Delete(ctx context.Context, id uuid.UUID) error

	// ClaimNotification atomically flips notification_sent from false to true.
	// Returns false when another caller already holds the latch.
	ClaimNotification(ctx context.Context, id uuid.UUID) (bool, error)

	// ReleaseNotification reopens a latch claimed by a send that then failed.
	ReleaseNotification(ctx context.Context, id uuid.UUID) error
}
