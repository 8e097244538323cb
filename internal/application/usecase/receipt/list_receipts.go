package receipt

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/spend-smart/backend/internal/application/adapter"
	"github.com/spend-smart/backend/internal/domain/entity"
)

const (
	defaultPageLimit = 20
	maxPageLimit     = 100
)

// ListReceiptsInput represents the input for listing receipts.
type ListReceiptsInput struct {
	UserID uuid.UUID
	Limit  int
	Offset int
}

// ListReceiptsOutput represents the output of listing receipts.
type ListReceiptsOutput struct {
	Receipts []*entity.Receipt
	Total    int64
	Limit    int
	Offset   int
}

// ListReceiptsUseCase handles listing a user's receipts, newest first.
type ListReceiptsUseCase struct {
	receiptRepo adapter.ReceiptRepository
}

// NewListReceiptsUseCase creates a new ListReceiptsUseCase instance.
func NewListReceiptsUseCase(receiptRepo adapter.ReceiptRepository) *ListReceiptsUseCase {
	return &ListReceiptsUseCase{
		receiptRepo: receiptRepo,
	}
}

// Execute performs the listing.
func (uc *ListReceiptsUseCase) Execute(ctx context.Context, input ListReceiptsInput) (*ListReceiptsOutput, error) {
	limit := input.Limit
	if limit <= 0 {
		limit = defaultPageLimit
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}
	offset := input.Offset
	if offset < 0 {
		offset = 0
	}

	receipts, total, err := uc.receiptRepo.FindByUser(ctx, input.UserID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list receipts: %w", err)
	}

	return &ListReceiptsOutput{
		Receipts: receipts,
		Total:    total,
		Limit:    limit,
		Offset:   offset,
	}, nil
}
