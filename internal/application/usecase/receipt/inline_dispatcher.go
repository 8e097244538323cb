package receipt

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/spend-smart/backend/internal/application/adapter"
	domainerror "github.com/spend-smart/backend/internal/domain/error"
)

// InlineDispatcher processes a receipt within the dispatching request.
type InlineDispatcher struct {
	process *ProcessReceiptUseCase
}

var _ adapter.ReceiptDispatcher = (*InlineDispatcher)(nil)

// NewInlineDispatcher creates a dispatcher that runs processing synchronously.
func NewInlineDispatcher(process *ProcessReceiptUseCase) *InlineDispatcher {
	return &InlineDispatcher{process: process}
}

// Dispatch runs the pipeline. A receipt already claimed elsewhere is not an error,
// and neither is a failed extraction, which is recorded on the receipt.
func (d *InlineDispatcher) Dispatch(ctx context.Context, receiptID uuid.UUID) error {
	_, err := d.process.Execute(ctx, ProcessReceiptInput{ReceiptID: receiptID})
	if errors.Is(err, domainerror.ErrReceiptNotPending) {
		return nil
	}
	return err
}
