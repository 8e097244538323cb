package shoppinglist

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/spend-smart/backend/internal/application/adapter"
	"github.com/spend-smart/backend/internal/domain/entity"
	domainerror "github.com/spend-smart/backend/internal/domain/error"
)

// GetShoppingListInput represents the input for fetching a list.
type GetShoppingListInput struct {
	ListID uuid.UUID
	UserID uuid.UUID
}

// GetShoppingListOutput represents the output of fetching a list.
type GetShoppingListOutput struct {
	List *entity.ShoppingList
}

// GetShoppingListUseCase handles fetching one list with its items.
type GetShoppingListUseCase struct {
	shoppingListRepo adapter.ShoppingListRepository
}

// NewGetShoppingListUseCase creates a new GetShoppingListUseCase instance.
func NewGetShoppingListUseCase(shoppingListRepo adapter.ShoppingListRepository) *GetShoppingListUseCase {
	return &GetShoppingListUseCase{
		shoppingListRepo: shoppingListRepo,
	}
}

// Execute fetches the list.
func (uc *GetShoppingListUseCase) Execute(ctx context.Context, input GetShoppingListInput) (*GetShoppingListOutput, error) {
	list, err := findOwnedList(ctx, uc.shoppingListRepo, input.ListID, input.UserID)
	if err != nil {
		return nil, err
	}
	return &GetShoppingListOutput{List: list}, nil
}

// findOwnedList loads a list, hiding lists of other users.
func findOwnedList(ctx context.Context, repo adapter.ShoppingListRepository, listID, userID uuid.UUID) (*entity.ShoppingList, error) {
	list, err := repo.FindByID(ctx, listID)
	if err != nil {
		if errors.Is(err, domainerror.ErrShoppingListNotFound) {
			return nil, listNotFound()
		}
		return nil, fmt.Errorf("failed to find shopping list: %w", err)
	}
	if list.UserID != userID {
		return nil, listNotFound()
	}
	return list, nil
}

func listNotFound() error {
	return domainerror.NewShoppingListError(
		domainerror.ErrCodeShoppingListNotFound,
		"shopping list not found",
		domainerror.ErrShoppingListNotFound,
	)
}
