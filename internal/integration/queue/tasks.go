// Package queue runs receipt processing and budget sweeps as background tasks.
package queue

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
)

const (
	// TaskProcessReceipt is enqueued for each uploaded or re-dispatched receipt.
	TaskProcessReceipt = "receipt:process"

	// TaskBudgetSweep is scheduled periodically to evaluate every budget.
	TaskBudgetSweep = "budget:sweep"
)

// ProcessReceiptPayload identifies the receipt to process.
type ProcessReceiptPayload struct {
	ReceiptID uuid.UUID `json:"receipt_id"`
}

// BudgetSweepPayload carries an optional run id for the sweep.
type BudgetSweepPayload struct {
	RunID string `json:"run_id,omitempty"`
}

// NewProcessReceiptTask builds the task for one receipt.
func NewProcessReceiptTask(receiptID uuid.UUID) (*asynq.Task, error) {
	data, err := json.Marshal(ProcessReceiptPayload{ReceiptID: receiptID})
	if err != nil {
		return nil, fmt.Errorf("marshal payload: %w", err)
	}
	return asynq.NewTask(TaskProcessReceipt, data), nil
}

// NewBudgetSweepTask builds a sweep task.
func NewBudgetSweepTask(runID string) (*asynq.Task, error) {
	data, err := json.Marshal(BudgetSweepPayload{RunID: runID})
	if err != nil {
		return nil, fmt.Errorf("marshal payload: %w", err)
	}
	return asynq.NewTask(TaskBudgetSweep, data), nil
}
