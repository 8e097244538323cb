package receipt

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/spend-smart/backend/internal/application/adapter"
	"github.com/spend-smart/backend/internal/domain/entity"
	domainerror "github.com/spend-smart/backend/internal/domain/error"
)

// ReprocessReceiptInput represents the input for re-dispatching a receipt.
// UserID may be uuid.Nil for operator calls.
type ReprocessReceiptInput struct {
	ReceiptID uuid.UUID
	UserID    uuid.UUID
}

// ReprocessReceiptOutput represents the output of re-dispatching a receipt.
type ReprocessReceiptOutput struct {
	Receipt *entity.Receipt
}

// ReprocessReceiptUseCase re-dispatches a receipt that is still pending,
// for example after a crash between upload and dispatch.
type ReprocessReceiptUseCase struct {
	receiptRepo adapter.ReceiptRepository
	dispatcher  adapter.ReceiptDispatcher
}

// NewReprocessReceiptUseCase creates a new ReprocessReceiptUseCase instance.
func NewReprocessReceiptUseCase(receiptRepo adapter.ReceiptRepository, dispatcher adapter.ReceiptDispatcher) *ReprocessReceiptUseCase {
	return &ReprocessReceiptUseCase{
		receiptRepo: receiptRepo,
		dispatcher:  dispatcher,
	}
}

// Execute performs the re-dispatch.
func (uc *ReprocessReceiptUseCase) Execute(ctx context.Context, input ReprocessReceiptInput) (*ReprocessReceiptOutput, error) {
	receipt, err := findOwnedReceipt(ctx, uc.receiptRepo, input.ReceiptID, input.UserID)
	if err != nil {
		return nil, err
	}
	if receipt.Status != entity.ReceiptStatusPending {
		return nil, domainerror.NewReceiptError(
			domainerror.ErrCodeReceiptNotPending,
			fmt.Sprintf("receipt is %s, only pending receipts can be reprocessed", receipt.Status),
			domainerror.ErrReceiptNotPending,
		)
	}

	if err := uc.dispatcher.Dispatch(ctx, receipt.ID); err != nil {
		return nil, domainerror.NewReceiptError(
			domainerror.ErrCodeReceiptDispatchFailed,
			"failed to dispatch receipt",
			fmt.Errorf("%w: %w", domainerror.ErrReceiptDispatchFailed, err),
		)
	}

	reloaded, err := uc.receiptRepo.FindByID(ctx, receipt.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to reload receipt: %w", err)
	}

	return &ReprocessReceiptOutput{
		Receipt: reloaded,
	}, nil
}

// DispatchPendingInput represents the input for re-dispatching pending receipts.
type DispatchPendingInput struct {
	Limit int
}

// DispatchPendingOutput represents the output of a pending receipt re-dispatch.
type DispatchPendingOutput struct {
	Dispatched int
	Errors     int
}

// DispatchPendingUseCase re-dispatches every pending receipt, oldest first.
// One receipt's failure does not stop the others.
type DispatchPendingUseCase struct {
	receiptRepo adapter.ReceiptRepository
	dispatcher  adapter.ReceiptDispatcher
	logger      *slog.Logger
}

// NewDispatchPendingUseCase creates a new DispatchPendingUseCase instance.
func NewDispatchPendingUseCase(receiptRepo adapter.ReceiptRepository, dispatcher adapter.ReceiptDispatcher) *DispatchPendingUseCase {
	return &DispatchPendingUseCase{
		receiptRepo: receiptRepo,
		dispatcher:  dispatcher,
		logger:      slog.Default().With("usecase", "dispatch_pending"),
	}
}

// Execute performs the re-dispatch.
func (uc *DispatchPendingUseCase) Execute(ctx context.Context, input DispatchPendingInput) (*DispatchPendingOutput, error) {
	receipts, err := uc.receiptRepo.FindByStatus(ctx, entity.ReceiptStatusPending, input.Limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list pending receipts: %w", err)
	}

	output := &DispatchPendingOutput{}
	for _, receipt := range receipts {
		if err := uc.dispatcher.Dispatch(ctx, receipt.ID); err != nil {
			uc.logger.Error("receipt dispatch failed", "receipt_id", receipt.ID, "error", err)
			output.Errors++
			continue
		}
		output.Dispatched++
	}
	return output, nil
}
