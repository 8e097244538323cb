// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/google/uuid"
)

// ReceiptDispatcher hands a pending receipt to the processing pipeline,
// either inline or through a background queue.
type ReceiptDispatcher interface {
	Dispatch(ctx context.Context, receiptID uuid.UUID) error
}
