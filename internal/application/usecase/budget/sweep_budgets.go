package budget

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/spend-smart/backend/internal/application/adapter"
	domainerror "github.com/spend-smart/backend/internal/domain/error"
)

// SweepLockKey names the lock that keeps sweeps single-pass across workers.
const SweepLockKey = "budget-sweep"

// SweepBudgetsInput represents the input for a budget sweep.
// RunID identifies the run in logs and the summary; one is generated when empty.
type SweepBudgetsInput struct {
	RunID string
}

// SweepSummary reports the outcome of one sweep.
type SweepSummary struct {
	RunID             string `json:"run_id"`
	Date              string `json:"date"`
	BudgetsProcessed  int    `json:"budgets_processed"`
	NotificationsSent int    `json:"notifications_sent"`
	Errors            int    `json:"errors"`
}

// SweepBudgetsUseCase evaluates every budget whose latch is still open.
// A failing budget is counted and skipped.
type SweepBudgetsUseCase struct {
	budgetRepo adapter.BudgetRepository
	calculator *SpendCalculator
	notifier   *Notifier
	locker     adapter.Locker // optional
	lockTTL    time.Duration
	location   *time.Location
	now        func() time.Time
	logger     *slog.Logger
}

// NewSweepBudgetsUseCase creates a new SweepBudgetsUseCase instance.
// locker may be nil, in which case overlapping sweeps rely on the latch alone.
func NewSweepBudgetsUseCase(
	budgetRepo adapter.BudgetRepository,
	calculator *SpendCalculator,
	notifier *Notifier,
	locker adapter.Locker,
	lockTTL time.Duration,
	loc *time.Location,
) *SweepBudgetsUseCase {
	if lockTTL <= 0 {
		lockTTL = 10 * time.Minute
	}
	if loc == nil {
		loc = time.UTC
	}
	return &SweepBudgetsUseCase{
		budgetRepo: budgetRepo,
		calculator: calculator,
		notifier:   notifier,
		locker:     locker,
		lockTTL:    lockTTL,
		location:   loc,
		now:        time.Now,
		logger:     slog.Default().With("usecase", "budget_sweep"),
	}
}

// Execute performs the sweep.
func (uc *SweepBudgetsUseCase) Execute(ctx context.Context, input SweepBudgetsInput) (*SweepSummary, error) {
	runID := input.RunID
	if runID == "" {
		runID = uuid.NewString()
	}
	logger := uc.logger.With("run_id", runID)

	if uc.locker != nil {
		lock, ok, err := uc.locker.TryLock(ctx, SweepLockKey, uc.lockTTL)
		if err != nil {
			return nil, fmt.Errorf("failed to acquire sweep lock: %w", err)
		}
		if !ok {
			return nil, domainerror.NewBudgetError(
				domainerror.ErrCodeSweepInProgress,
				"another budget sweep is running",
				domainerror.ErrSweepInProgress,
			)
		}
		defer func() {
			if err := lock.Release(context.WithoutCancel(ctx)); err != nil {
				logger.Warn("failed to release sweep lock", "error", err)
			}
		}()
	}

	summary := &SweepSummary{
		RunID: runID,
		Date:  uc.now().In(uc.location).Format("2006-01-02"),
	}

	budgets, err := uc.budgetRepo.FindUnnotified(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list budgets: %w", err)
	}
	summary.BudgetsProcessed = len(budgets)
	logger.Info("budget sweep started", "date", summary.Date, "budgets", len(budgets))

	for _, budget := range budgets {
		spend, err := uc.calculator.Calculate(ctx, budget)
		if err != nil {
			summary.Errors++
			logger.Error("failed to compute spend", "budget_id", budget.ID, "error", err)
			continue
		}

		sent, err := uc.notifier.Evaluate(ctx, budget, spend.TotalSpent)
		if err != nil {
			summary.Errors++
			logger.Error("failed to send budget alert", "budget_id", budget.ID, "error", err)
			continue
		}
		if sent {
			summary.NotificationsSent++
		}
	}

	logger.Info("budget sweep finished",
		"budgets_processed", summary.BudgetsProcessed,
		"notifications_sent", summary.NotificationsSent,
		"errors", summary.Errors,
	)
	return summary, nil
}
