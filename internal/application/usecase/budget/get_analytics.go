package budget

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/spend-smart/backend/internal/application/adapter"
	"github.com/spend-smart/backend/internal/domain/entity"
	domainerror "github.com/spend-smart/backend/internal/domain/error"
)

// GetAnalyticsInput represents the input for budget analytics.
type GetAnalyticsInput struct {
	UserID uuid.UUID
}

// GetAnalyticsOutput represents the spend of the user's latest budget.
type GetAnalyticsOutput struct {
	Budget          *entity.Budget
	Window          Window
	Spent           decimal.Decimal
	Remaining       decimal.Decimal
	UsagePercentage decimal.Decimal
	Breakdown       []CategorySpend
}

// GetAnalyticsUseCase reports spend against the user's most recently created
// budget and sends the threshold alert when it is due.
type GetAnalyticsUseCase struct {
	budgetRepo adapter.BudgetRepository
	calculator *SpendCalculator
	notifier   *Notifier
	logger     *slog.Logger
}

// NewGetAnalyticsUseCase creates a new GetAnalyticsUseCase instance.
func NewGetAnalyticsUseCase(budgetRepo adapter.BudgetRepository, calculator *SpendCalculator, notifier *Notifier) *GetAnalyticsUseCase {
	return &GetAnalyticsUseCase{
		budgetRepo: budgetRepo,
		calculator: calculator,
		notifier:   notifier,
		logger:     slog.Default().With("usecase", "budget_analytics"),
	}
}

// Execute computes the analytics. Alert failures are logged, never returned.
func (uc *GetAnalyticsUseCase) Execute(ctx context.Context, input GetAnalyticsInput) (*GetAnalyticsOutput, error) {
	budget, err := uc.budgetRepo.FindLatestByUser(ctx, input.UserID)
	if err != nil {
		if errors.Is(err, domainerror.ErrBudgetNotFound) {
			return nil, domainerror.NewBudgetError(
				domainerror.ErrCodeNoBudget,
				"no budget found, please set a budget first",
				domainerror.ErrNoBudget,
			)
		}
		return nil, fmt.Errorf("failed to find budget: %w", err)
	}

	summary, err := uc.calculator.Calculate(ctx, budget)
	if err != nil {
		return nil, err
	}

	if _, err := uc.notifier.Evaluate(ctx, budget, summary.TotalSpent); err != nil {
		uc.logger.Error("budget alert failed", "budget_id", budget.ID, "error", err)
	}

	return &GetAnalyticsOutput{
		Budget:          budget,
		Window:          summary.Window,
		Spent:           summary.TotalSpent,
		Remaining:       budget.Remaining(summary.TotalSpent),
		UsagePercentage: budget.UsagePercentage(summary.TotalSpent),
		Breakdown:       summary.Breakdown,
	}, nil
}
