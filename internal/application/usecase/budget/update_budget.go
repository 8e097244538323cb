package budget

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/spend-smart/backend/internal/application/adapter"
	"github.com/spend-smart/backend/internal/domain/entity"
)

// UpdateBudgetInput represents the input for budget update.
// The period and the notification latch cannot be changed.
type UpdateBudgetInput struct {
	BudgetID              uuid.UUID
	UserID                uuid.UUID
	Amount                *decimal.Decimal
	Currency              *entity.Currency
	NotificationThreshold *decimal.Decimal
}

// UpdateBudgetOutput represents the output of budget update.
type UpdateBudgetOutput struct {
	Budget *entity.Budget
}

// UpdateBudgetUseCase handles budget update logic.
type UpdateBudgetUseCase struct {
	budgetRepo adapter.BudgetRepository
}

// NewUpdateBudgetUseCase creates a new UpdateBudgetUseCase instance.
func NewUpdateBudgetUseCase(budgetRepo adapter.BudgetRepository) *UpdateBudgetUseCase {
	return &UpdateBudgetUseCase{
		budgetRepo: budgetRepo,
	}
}

// Execute performs the budget update.
func (uc *UpdateBudgetUseCase) Execute(ctx context.Context, input UpdateBudgetInput) (*UpdateBudgetOutput, error) {
	budget, err := findOwnedBudget(ctx, uc.budgetRepo, input.BudgetID, input.UserID)
	if err != nil {
		return nil, err
	}

	if input.Amount != nil {
		budget.Amount = *input.Amount
	}
	if input.NotificationThreshold != nil {
		budget.NotificationThreshold = *input.NotificationThreshold
	}
	if input.Currency != nil {
		currency, err := normalizeCurrency(*input.Currency)
		if err != nil {
			return nil, err
		}
		budget.Currency = currency
	}
	if err := validateAmounts(budget.Amount, budget.NotificationThreshold); err != nil {
		return nil, err
	}

	budget.UpdatedAt = time.Now().UTC()
	if err := uc.budgetRepo.UpdateSettings(ctx, budget); err != nil {
		return nil, fmt.Errorf("failed to update budget: %w", err)
	}

	updated, err := uc.budgetRepo.FindByID(ctx, budget.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to reload budget: %w", err)
	}

	return &UpdateBudgetOutput{
		Budget: updated,
	}, nil
}
