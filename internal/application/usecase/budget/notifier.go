package budget

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/shopspring/decimal"

	"github.com/spend-smart/backend/internal/application/adapter"
	"github.com/spend-smart/backend/internal/domain/entity"
)

// Notifier sends at most one threshold alert per budget.
//
// The latch is claimed with a compare-and-set before sending, so concurrent
// evaluations of the same budget cannot both send. A failed send reopens it.
// The latch is never reset when a new period starts.
type Notifier struct {
	budgetRepo adapter.BudgetRepository
	userRepo   adapter.UserRepository
	alerts     adapter.BudgetAlertNotifier
	logger     *slog.Logger
}

// NewNotifier creates a new Notifier instance.
func NewNotifier(budgetRepo adapter.BudgetRepository, userRepo adapter.UserRepository, alerts adapter.BudgetAlertNotifier) *Notifier {
	return &Notifier{
		budgetRepo: budgetRepo,
		userRepo:   userRepo,
		alerts:     alerts,
		logger:     slog.Default().With("component", "budget_notifier"),
	}
}

// Evaluate sends the alert when due and reports whether this call sent it.
// On success budget.NotificationSent is set.
func (n *Notifier) Evaluate(ctx context.Context, budget *entity.Budget, spent decimal.Decimal) (bool, error) {
	if !budget.ShouldNotify(spent) {
		return false, nil
	}

	logger := n.logger.With("budget_id", budget.ID, "user_id", budget.UserID)

	claimed, err := n.budgetRepo.ClaimNotification(ctx, budget.ID)
	if err != nil {
		return false, fmt.Errorf("failed to claim notification: %w", err)
	}
	if !claimed {
		logger.Debug("notification already claimed")
		budget.NotificationSent = true
		return false, nil
	}

	if err := n.send(ctx, budget, spent); err != nil {
		if releaseErr := n.budgetRepo.ReleaseNotification(ctx, budget.ID); releaseErr != nil {
			logger.Error("failed to release notification latch", "error", releaseErr)
		}
		return false, err
	}

	budget.NotificationSent = true
	logger.Info("budget alert sent", "spent", spent.String(), "threshold", budget.NotificationThreshold.String())
	return true, nil
}

func (n *Notifier) send(ctx context.Context, budget *entity.Budget, spent decimal.Decimal) error {
	user, err := n.userRepo.FindByID(ctx, budget.UserID)
	if err != nil {
		return fmt.Errorf("failed to load budget owner: %w", err)
	}

	err = n.alerts.SendBudgetAlert(ctx, adapter.BudgetAlert{
		BudgetID:       budget.ID,
		RecipientEmail: user.Email,
		RecipientName:  user.DisplayName(),
		Period:         string(budget.Period),
		Currency:       string(budget.Currency),
		CurrencySymbol: budget.Currency.Symbol(),
		Amount:         budget.Amount,
		Spent:          spent,
		Threshold:      budget.NotificationThreshold,
		Remaining:      budget.Remaining(spent),
	})
	if err != nil {
		return fmt.Errorf("failed to send budget alert: %w", err)
	}
	return nil
}
