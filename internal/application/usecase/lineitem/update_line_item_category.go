package lineitem

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/spend-smart/backend/internal/application/adapter"
	"github.com/spend-smart/backend/internal/domain/entity"
	domainerror "github.com/spend-smart/backend/internal/domain/error"
)

// UpdateLineItemCategoryInput represents the input for reassigning an item's category.
// A nil CategoryID moves the item to the fallback category.
type UpdateLineItemCategoryInput struct {
	ItemID     uuid.UUID
	UserID     uuid.UUID
	CategoryID *uuid.UUID
}

// UpdateLineItemCategoryOutput represents the output of a category reassignment.
type UpdateLineItemCategoryOutput struct {
	Item *entity.LineItemWithCategory
}

// UpdateLineItemCategoryUseCase handles the only mutation line items allow.
type UpdateLineItemCategoryUseCase struct {
	lineItemRepo adapter.LineItemRepository
	categoryRepo adapter.CategoryRepository
	fallback     *entity.Category
}

// NewUpdateLineItemCategoryUseCase creates a new UpdateLineItemCategoryUseCase instance.
func NewUpdateLineItemCategoryUseCase(
	lineItemRepo adapter.LineItemRepository,
	categoryRepo adapter.CategoryRepository,
	fallback *entity.Category,
) *UpdateLineItemCategoryUseCase {
	return &UpdateLineItemCategoryUseCase{
		lineItemRepo: lineItemRepo,
		categoryRepo: categoryRepo,
		fallback:     fallback,
	}
}

// Execute performs the reassignment.
func (uc *UpdateLineItemCategoryUseCase) Execute(ctx context.Context, input UpdateLineItemCategoryInput) (*UpdateLineItemCategoryOutput, error) {
	existing, err := uc.lineItemRepo.FindByID(ctx, input.ItemID)
	if err != nil {
		if errors.Is(err, domainerror.ErrLineItemNotFound) {
			return nil, lineItemNotFound()
		}
		return nil, fmt.Errorf("failed to find line item: %w", err)
	}
	if existing.Item.UserID != input.UserID {
		return nil, lineItemNotFound()
	}

	category := uc.fallback
	if input.CategoryID != nil {
		category, err = findCategory(ctx, uc.categoryRepo, *input.CategoryID)
		if err != nil {
			return nil, err
		}
	}

	var categoryID *uuid.UUID
	if category != nil {
		id := category.ID
		categoryID = &id
	}

	if err := uc.lineItemRepo.UpdateCategory(ctx, input.ItemID, categoryID); err != nil {
		return nil, fmt.Errorf("failed to update line item category: %w", err)
	}

	updated, err := uc.lineItemRepo.FindByID(ctx, input.ItemID)
	if err != nil {
		return nil, fmt.Errorf("failed to reload line item: %w", err)
	}

	return &UpdateLineItemCategoryOutput{
		Item: updated,
	}, nil
}

func lineItemNotFound() error {
	return domainerror.NewLineItemError(
		domainerror.ErrCodeLineItemNotFound,
		"line item not found",
		domainerror.ErrLineItemNotFound,
	)
}
