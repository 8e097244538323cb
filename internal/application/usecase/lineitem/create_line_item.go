// Package lineitem contains line item use cases.
package lineitem

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/spend-smart/backend/internal/application/adapter"
	"github.com/spend-smart/backend/internal/domain/entity"
	domainerror "github.com/spend-smart/backend/internal/domain/error"
)

// CreateLineItemInput represents the input for direct line item entry.
type CreateLineItemInput struct {
	UserID     uuid.UUID
	Name       string
	Price      decimal.Decimal
	Quantity   decimal.Decimal
	Unit       string // Optional, defaults to entity.DefaultUnit
	Platform   string
	CategoryID *uuid.UUID // Optional, defaults to the fallback category
}

// CreateLineItemOutput represents the output of line item creation.
type CreateLineItemOutput struct {
	Item *entity.LineItemWithCategory
}

// CreateLineItemUseCase handles direct line item entry.
type CreateLineItemUseCase struct {
	lineItemRepo adapter.LineItemRepository
	categoryRepo adapter.CategoryRepository
	fallback     *entity.Category
}

// NewCreateLineItemUseCase creates a new CreateLineItemUseCase instance.
func NewCreateLineItemUseCase(
	lineItemRepo adapter.LineItemRepository,
	categoryRepo adapter.CategoryRepository,
	fallback *entity.Category,
) *CreateLineItemUseCase {
	return &CreateLineItemUseCase{
		lineItemRepo: lineItemRepo,
		categoryRepo: categoryRepo,
		fallback:     fallback,
	}
}

// Execute performs the line item creation.
func (uc *CreateLineItemUseCase) Execute(ctx context.Context, input CreateLineItemInput) (*CreateLineItemOutput, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, domainerror.NewLineItemError(
			domainerror.ErrCodeItemNameRequired,
			"item name is required",
			domainerror.ErrItemNameRequired,
		)
	}
	if !input.Price.IsPositive() {
		return nil, domainerror.NewLineItemError(
			domainerror.ErrCodeInvalidPrice,
			"price must be greater than zero",
			domainerror.ErrInvalidPrice,
		)
	}
	if !input.Quantity.IsPositive() {
		return nil, domainerror.NewLineItemError(
			domainerror.ErrCodeInvalidQuantity,
			"quantity must be greater than zero",
			domainerror.ErrInvalidQuantity,
		)
	}

	category := uc.fallback
	if input.CategoryID != nil {
		found, err := findCategory(ctx, uc.categoryRepo, *input.CategoryID)
		if err != nil {
			return nil, err
		}
		category = found
	}

	var categoryID *uuid.UUID
	if category != nil {
		id := category.ID
		categoryID = &id
	}

	item := entity.NewLineItem(
		input.UserID,
		nil,
		name,
		categoryID,
		input.Price,
		input.Quantity,
		strings.TrimSpace(input.Unit),
		strings.TrimSpace(input.Platform),
	)

	if err := uc.lineItemRepo.Create(ctx, item); err != nil {
		return nil, fmt.Errorf("failed to create line item: %w", err)
	}

	return &CreateLineItemOutput{
		Item: &entity.LineItemWithCategory{
			Item:     item,
			Category: category,
		},
	}, nil
}

func findCategory(ctx context.Context, repo adapter.CategoryRepository, id uuid.UUID) (*entity.Category, error) {
	category, err := repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, domainerror.ErrCategoryNotFound) {
			return nil, domainerror.NewLineItemError(
				domainerror.ErrCodeItemCategory,
				"category not found",
				domainerror.ErrCategoryNotFound,
			)
		}
		return nil, fmt.Errorf("failed to find category: %w", err)
	}
	return category, nil
}
