package shoppinglist

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/spend-smart/backend/internal/application/adapter"
	"github.com/spend-smart/backend/internal/domain/entity"
	domainerror "github.com/spend-smart/backend/internal/domain/error"
)

// UpdateStatusInput represents the input for a manual status change.
type UpdateStatusInput struct {
	ListID uuid.UUID
	UserID uuid.UUID
	Status entity.ShoppingListStatus
}

// UpdateStatusOutput represents the list after the change.
type UpdateStatusOutput struct {
	List *entity.ShoppingList
}

// UpdateStatusUseCase handles manual status changes. A list is completed
// exactly when every item is purchased; archiving is the only way out.
type UpdateStatusUseCase struct {
	shoppingListRepo adapter.ShoppingListRepository
}

// NewUpdateStatusUseCase creates a new UpdateStatusUseCase instance.
func NewUpdateStatusUseCase(shoppingListRepo adapter.ShoppingListRepository) *UpdateStatusUseCase {
	return &UpdateStatusUseCase{
		shoppingListRepo: shoppingListRepo,
	}
}

// Execute performs the change.
func (uc *UpdateStatusUseCase) Execute(ctx context.Context, input UpdateStatusInput) (*UpdateStatusOutput, error) {
	status := entity.ShoppingListStatus(strings.ToLower(string(input.Status)))
	if !status.IsValid() {
		return nil, domainerror.NewShoppingListError(
			domainerror.ErrCodeInvalidListStatus,
			"status must be one of draft, active, completed, archived",
			domainerror.ErrInvalidListStatus,
		)
	}

	list, err := findOwnedList(ctx, uc.shoppingListRepo, input.ListID, input.UserID)
	if err != nil {
		return nil, err
	}

	if status == entity.ShoppingListStatusCompleted && !list.AllPurchased() {
		return nil, domainerror.NewShoppingListError(
			domainerror.ErrCodeListNotFullyPurchased,
			"all items must be purchased before the list is completed",
			domainerror.ErrListNotFullyPurchased,
		)
	}

	if list.AllPurchased() && status != entity.ShoppingListStatusCompleted && status != entity.ShoppingListStatusArchived {
		return nil, domainerror.NewShoppingListError(
			domainerror.ErrCodeListFullyPurchased,
			"a fully purchased list can only be completed or archived",
			domainerror.ErrListFullyPurchased,
		)
	}

	if status != list.Status {
		if err := uc.shoppingListRepo.UpdateStatus(ctx, list.ID, status); err != nil {
			return nil, fmt.Errorf("failed to update shopping list status: %w", err)
		}
		list.Status = status
	}

	return &UpdateStatusOutput{List: list}, nil
}
