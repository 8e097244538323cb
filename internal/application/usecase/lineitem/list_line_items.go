package lineitem

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/spend-smart/backend/internal/application/adapter"
	"github.com/spend-smart/backend/internal/domain/entity"
)

const (
	defaultPageLimit = 50
	maxPageLimit     = 200
)

// ListLineItemsInput represents the input for listing line items.
type ListLineItemsInput struct {
	UserID uuid.UUID
	Limit  int
	Offset int
}

// ListLineItemsOutput represents the output of listing line items.
type ListLineItemsOutput struct {
	Items  []*entity.LineItemWithCategory
	Total  int64
	Limit  int
	Offset int
}

// ListLineItemsUseCase handles listing a user's line items, newest first.
type ListLineItemsUseCase struct {
	lineItemRepo adapter.LineItemRepository
}

// NewListLineItemsUseCase creates a new ListLineItemsUseCase instance.
func NewListLineItemsUseCase(lineItemRepo adapter.LineItemRepository) *ListLineItemsUseCase {
	return &ListLineItemsUseCase{
		lineItemRepo: lineItemRepo,
	}
}

// Execute performs the listing.
func (uc *ListLineItemsUseCase) Execute(ctx context.Context, input ListLineItemsInput) (*ListLineItemsOutput, error) {
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

	items, total, err := uc.lineItemRepo.FindByUser(ctx, input.UserID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list line items: %w", err)
	}

	return &ListLineItemsOutput{
		Items:  items,
		Total:  total,
		Limit:  limit,
		Offset: offset,
	}, nil
}
