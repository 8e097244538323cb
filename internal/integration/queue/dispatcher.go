package queue

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"

	"github.com/spend-smart/backend/internal/application/adapter"
)

// DefaultMaxRetry bounds redelivery of a receipt task that failed before its
// outcome could be recorded.
const DefaultMaxRetry = 5

// AsynqReceiptDispatcher enqueues receipts for the worker.
type AsynqReceiptDispatcher struct {
	client   *asynq.Client
	maxRetry int
}

var _ adapter.ReceiptDispatcher = (*AsynqReceiptDispatcher)(nil)

// NewAsynqReceiptDispatcher creates a dispatcher backed by client.
func NewAsynqReceiptDispatcher(client *asynq.Client) *AsynqReceiptDispatcher {
	return &AsynqReceiptDispatcher{
		client:   client,
		maxRetry: DefaultMaxRetry,
	}
}

// Dispatch enqueues the receipt for processing.
func (d *AsynqReceiptDispatcher) Dispatch(ctx context.Context, receiptID uuid.UUID) error {
	task, err := NewProcessReceiptTask(receiptID)
	if err != nil {
		return err
	}
	if _, err := d.client.EnqueueContext(ctx, task, asynq.MaxRetry(d.maxRetry)); err != nil {
		return fmt.Errorf("enqueue receipt task: %w", err)
	}
	return nil
}
