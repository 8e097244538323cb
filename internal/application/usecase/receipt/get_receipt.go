package receipt

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/spend-smart/backend/internal/application/adapter"
	"github.com/spend-smart/backend/internal/domain/entity"
	domainerror "github.com/spend-smart/backend/internal/domain/error"
)

// GetReceiptInput represents the input for fetching a receipt.
type GetReceiptInput struct {
	ReceiptID uuid.UUID
	UserID    uuid.UUID
}

// GetReceiptOutput represents the output of fetching a receipt.
type GetReceiptOutput struct {
	Receipt *entity.ReceiptWithItems
}

// GetReceiptUseCase handles fetching one receipt with its line items.
type GetReceiptUseCase struct {
	receiptRepo  adapter.ReceiptRepository
	lineItemRepo adapter.LineItemRepository
}

// NewGetReceiptUseCase creates a new GetReceiptUseCase instance.
func NewGetReceiptUseCase(receiptRepo adapter.ReceiptRepository, lineItemRepo adapter.LineItemRepository) *GetReceiptUseCase {
	return &GetReceiptUseCase{
		receiptRepo:  receiptRepo,
		lineItemRepo: lineItemRepo,
	}
}

// Execute fetches the receipt.
func (uc *GetReceiptUseCase) Execute(ctx context.Context, input GetReceiptInput) (*GetReceiptOutput, error) {
	receipt, err := findOwnedReceipt(ctx, uc.receiptRepo, input.ReceiptID, input.UserID)
	if err != nil {
		return nil, err
	}

	items, err := uc.lineItemRepo.FindByReceipt(ctx, receipt.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load receipt items: %w", err)
	}

	return &GetReceiptOutput{
		Receipt: &entity.ReceiptWithItems{
			Receipt: receipt,
			Items:   items,
		},
	}, nil
}

// findOwnedReceipt loads a receipt, hiding receipts of other users.
// A nil userID skips the ownership check.
func findOwnedReceipt(ctx context.Context, repo adapter.ReceiptRepository, receiptID, userID uuid.UUID) (*entity.Receipt, error) {
	receipt, err := repo.FindByID(ctx, receiptID)
	if err != nil {
		if errors.Is(err, domainerror.ErrReceiptNotFound) {
			return nil, receiptNotFound()
		}
		return nil, fmt.Errorf("failed to get receipt: %w", err)
	}
	if userID != uuid.Nil && receipt.UserID != userID {
		return nil, receiptNotFound()
	}
	return receipt, nil
}

func receiptNotFound() error {
	return domainerror.NewReceiptError(
		domainerror.ErrCodeReceiptNotFound,
		"receipt not found",
		domainerror.ErrReceiptNotFound,
	)
}
