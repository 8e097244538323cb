package budget

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/spend-smart/backend/internal/application/adapter"
	"github.com/spend-smart/backend/internal/domain/entity"
	domainerror "github.com/spend-smart/backend/internal/domain/error"
)

// CreateBudgetInput represents the input for budget creation.
type CreateBudgetInput struct {
	UserID                uuid.UUID
	Email                 string // Alert recipient, taken from the access token
	Amount                decimal.Decimal
	Period                entity.BudgetPeriod
	Currency              entity.Currency // Optional, defaults to USD
	NotificationThreshold decimal.Decimal
}

// CreateBudgetOutput represents the output of budget creation.
type CreateBudgetOutput struct {
	Budget *entity.Budget
}

// CreateBudgetUseCase handles budget creation. A user has at most one budget per period.
// The owner is recorded so threshold alerts have an address to go to.
type CreateBudgetUseCase struct {
	budgetRepo adapter.BudgetRepository
	userRepo   adapter.UserRepository
}

// NewCreateBudgetUseCase creates a new CreateBudgetUseCase instance.
func NewCreateBudgetUseCase(budgetRepo adapter.BudgetRepository, userRepo adapter.UserRepository) *CreateBudgetUseCase {
	return &CreateBudgetUseCase{
		budgetRepo: budgetRepo,
		userRepo:   userRepo,
	}
}

// Execute performs the budget creation.
func (uc *CreateBudgetUseCase) Execute(ctx context.Context, input CreateBudgetInput) (*CreateBudgetOutput, error) {
	period := entity.BudgetPeriod(strings.ToLower(string(input.Period)))
	if !period.IsValid() {
		return nil, domainerror.NewBudgetError(
			domainerror.ErrCodeInvalidBudgetPeriod,
			"period must be 'weekly' or 'monthly'",
			domainerror.ErrInvalidBudgetPeriod,
		)
	}

	currency, err := normalizeCurrency(input.Currency)
	if err != nil {
		return nil, err
	}
	if err := validateAmounts(input.Amount, input.NotificationThreshold); err != nil {
		return nil, err
	}

	if input.Email != "" {
		owner := entity.NewUser(input.Email, "")
		owner.ID = input.UserID
		if err := uc.userRepo.Save(ctx, owner); err != nil {
			return nil, fmt.Errorf("failed to record budget owner: %w", err)
		}
	}

	budget := entity.NewBudget(input.UserID, input.Amount, period, currency, input.NotificationThreshold)
	if err := uc.budgetRepo.Create(ctx, budget); err != nil {
		if errors.Is(err, domainerror.ErrBudgetAlreadyExists) {
			return nil, domainerror.NewBudgetError(
				domainerror.ErrCodeBudgetAlreadyExists,
				fmt.Sprintf("a %s budget already exists", period),
				domainerror.ErrBudgetAlreadyExists,
			)
		}
		return nil, fmt.Errorf("failed to create budget: %w", err)
	}

	return &CreateBudgetOutput{
		Budget: budget,
	}, nil
}

func normalizeCurrency(c entity.Currency) (entity.Currency, error) {
	if c == "" {
		return entity.CurrencyUSD, nil
	}
	currency := entity.Currency(strings.ToUpper(string(c)))
	if !currency.IsValid() {
		return "", domainerror.NewBudgetError(
			domainerror.ErrCodeInvalidCurrency,
			"currency must be one of USD, EUR, GBP, INR, JPY",
			domainerror.ErrInvalidCurrency,
		)
	}
	return currency, nil
}

func validateAmounts(amount, threshold decimal.Decimal) error {
	if !amount.IsPositive() {
		return domainerror.NewBudgetError(
			domainerror.ErrCodeInvalidBudgetAmount,
			"amount must be greater than zero",
			domainerror.ErrInvalidBudgetAmount,
		)
	}
	if !threshold.IsPositive() {
		return domainerror.NewBudgetError(
			domainerror.ErrCodeInvalidThreshold,
			"notification threshold must be greater than zero",
			domainerror.ErrInvalidThreshold,
		)
	}
	return nil
}

// findOwnedBudget loads a budget, hiding budgets of other users.
func findOwnedBudget(ctx context.Context, repo adapter.BudgetRepository, budgetID, userID uuid.UUID) (*entity.Budget, error) {
	budget, err := repo.FindByID(ctx, budgetID)
	if err != nil {
		if errors.Is(err, domainerror.ErrBudgetNotFound) {
			return nil, budgetNotFound()
		}
		return nil, fmt.Errorf("failed to find budget: %w", err)
	}
	if budget.UserID != userID {
		return nil, budgetNotFound()
	}
	return budget, nil
}

func budgetNotFound() error {
	return domainerror.NewBudgetError(
		domainerror.ErrCodeBudgetNotFound,
		"budget not found",
		domainerror.ErrBudgetNotFound,
	)
}
