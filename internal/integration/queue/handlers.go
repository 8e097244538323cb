package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/hibiken/asynq"

	"github.com/spend-smart/backend/internal/application/usecase/budget"
	"github.com/spend-smart/backend/internal/application/usecase/receipt"
	domainerror "github.com/spend-smart/backend/internal/domain/error"
)

// ReceiptProcessor runs one receipt through extraction.
type ReceiptProcessor interface {
	Execute(ctx context.Context, input receipt.ProcessReceiptInput) (*receipt.ProcessReceiptOutput, error)
}

// BudgetSweeper evaluates all budgets once.
type BudgetSweeper interface {
	Execute(ctx context.Context, input budget.SweepBudgetsInput) (*budget.SweepSummary, error)
}

// Handlers is plugged into the asynq worker loop.
type Handlers struct {
	processor ReceiptProcessor
	sweeper   BudgetSweeper
	logger    *slog.Logger
}

// NewHandlers constructs the task handlers.
func NewHandlers(processor ReceiptProcessor, sweeper BudgetSweeper) *Handlers {
	return &Handlers{
		processor: processor,
		sweeper:   sweeper,
		logger:    slog.Default().With("component", "worker"),
	}
}

// Mux registers every task handler.
func (h *Handlers) Mux() *asynq.ServeMux {
	mux := asynq.NewServeMux()
	mux.HandleFunc(TaskProcessReceipt, h.HandleProcessReceipt)
	mux.HandleFunc(TaskBudgetSweep, h.HandleBudgetSweep)
	return mux
}

// HandleProcessReceipt processes one receipt. A receipt that already left the
// pending state is acknowledged so redeliveries never process it twice.
func (h *Handlers) HandleProcessReceipt(ctx context.Context, task *asynq.Task) error {
	var payload ProcessReceiptPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return fmt.Errorf("decode payload: %v: %w", err, asynq.SkipRetry)
	}
	logger := h.logger.With("receipt_id", payload.ReceiptID)

	output, err := h.processor.Execute(ctx, receipt.ProcessReceiptInput{ReceiptID: payload.ReceiptID})
	if err != nil {
		if errors.Is(err, domainerror.ErrReceiptNotPending) {
			logger.Info("receipt no longer pending, skipping")
			return nil
		}
		if errors.Is(err, domainerror.ErrReceiptNotFound) {
			logger.Warn("receipt not found, dropping task")
			return fmt.Errorf("%w: %w", err, asynq.SkipRetry)
		}
		return err
	}

	if output.Failure != nil {
		logger.Warn("receipt ended in failed state", "error", output.Failure)
	}
	return nil
}

// HandleBudgetSweep runs one sweep. Overlapping runs are skipped.
func (h *Handlers) HandleBudgetSweep(ctx context.Context, task *asynq.Task) error {
	var payload BudgetSweepPayload
	if len(task.Payload()) > 0 {
		if err := json.Unmarshal(task.Payload(), &payload); err != nil {
			return fmt.Errorf("decode payload: %v: %w", err, asynq.SkipRetry)
		}
	}
	if payload.RunID == "" {
		payload.RunID, _ = asynq.GetTaskID(ctx)
	}

	summary, err := h.sweeper.Execute(ctx, budget.SweepBudgetsInput{RunID: payload.RunID})
	if err != nil {
		if errors.Is(err, domainerror.ErrSweepInProgress) {
			h.logger.Info("budget sweep already running, skipping", "run_id", payload.RunID)
			return nil
		}
		return err
	}

	h.logger.Info("budget sweep finished",
		"run_id", summary.RunID,
		"processed", summary.BudgetsProcessed,
		"sent", summary.NotificationsSent,
		"errors", summary.Errors,
	)
	return nil
}
