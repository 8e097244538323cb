package shoppinglist

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/spend-smart/backend/internal/application/adapter"
	"github.com/spend-smart/backend/internal/domain/entity"
)

// ListShoppingListsInput represents the input for listing shopping lists.
type ListShoppingListsInput struct {
	UserID uuid.UUID
}

// ListShoppingListsOutput represents the output of listing shopping lists.
type ListShoppingListsOutput struct {
	Lists []*entity.ShoppingList
}

// ListShoppingListsUseCase handles listing a user's shopping lists, newest first.
type ListShoppingListsUseCase struct {
	shoppingListRepo adapter.ShoppingListRepository
}

// NewListShoppingListsUseCase creates a new ListShoppingListsUseCase instance.
func NewListShoppingListsUseCase(shoppingListRepo adapter.ShoppingListRepository) *ListShoppingListsUseCase {
	return &ListShoppingListsUseCase{
		shoppingListRepo: shoppingListRepo,
	}
}

// Execute performs the listing.
func (uc *ListShoppingListsUseCase) Execute(ctx context.Context, input ListShoppingListsInput) (*ListShoppingListsOutput, error) {
	lists, err := uc.shoppingListRepo.FindByUser(ctx, input.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to list shopping lists: %w", err)
	}
	return &ListShoppingListsOutput{Lists: lists}, nil
}
