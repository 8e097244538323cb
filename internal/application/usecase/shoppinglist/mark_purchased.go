package shoppinglist

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/spend-smart/backend/internal/application/adapter"
	"github.com/spend-smart/backend/internal/domain/entity"
	domainerror "github.com/spend-smart/backend/internal/domain/error"
)

// MarkPurchasedInput represents the input for marking list items purchased.
type MarkPurchasedInput struct {
	ListID  uuid.UUID
	UserID  uuid.UUID
	ItemIDs []uuid.UUID
}

// MarkPurchasedOutput represents the list after the update.
type MarkPurchasedOutput struct {
	List *entity.ShoppingList
}

// MarkPurchasedUseCase marks items purchased and completes the list once
// nothing is left to buy.
type MarkPurchasedUseCase struct {
	shoppingListRepo adapter.ShoppingListRepository
	transactor       adapter.Transactor
	now              func() time.Time
}

// NewMarkPurchasedUseCase creates a new MarkPurchasedUseCase instance.
func NewMarkPurchasedUseCase(shoppingListRepo adapter.ShoppingListRepository, transactor adapter.Transactor) *MarkPurchasedUseCase {
	return &MarkPurchasedUseCase{
		shoppingListRepo: shoppingListRepo,
		transactor:       transactor,
		now:              time.Now,
	}
}

// Execute performs the update.
func (uc *MarkPurchasedUseCase) Execute(ctx context.Context, input MarkPurchasedInput) (*MarkPurchasedOutput, error) {
	itemIDs := uniqueIDs(input.ItemIDs)
	if len(itemIDs) == 0 {
		return nil, domainerror.NewShoppingListError(
			domainerror.ErrCodeNoItemsSelected,
			"no items provided",
			domainerror.ErrNoItemsSelected,
		)
	}

	if _, err := findOwnedList(ctx, uc.shoppingListRepo, input.ListID, input.UserID); err != nil {
		return nil, err
	}

	err := uc.transactor.WithinTransaction(ctx, func(txCtx context.Context) error {
		updated, err := uc.shoppingListRepo.MarkItemsPurchased(txCtx, input.ListID, itemIDs, uc.now())
		if err != nil {
			return fmt.Errorf("failed to mark items purchased: %w", err)
		}
		if updated != int64(len(itemIDs)) {
			return domainerror.NewShoppingListError(
				domainerror.ErrCodeItemsNotInList,
				"some items do not belong to this shopping list",
				domainerror.ErrItemsNotInList,
			)
		}

		open, err := uc.shoppingListRepo.CountUnpurchased(txCtx, input.ListID)
		if err != nil {
			return fmt.Errorf("failed to count open items: %w", err)
		}
		if open == 0 {
			if err := uc.shoppingListRepo.UpdateStatus(txCtx, input.ListID, entity.ShoppingListStatusCompleted); err != nil {
				return fmt.Errorf("failed to complete shopping list: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	list, err := uc.shoppingListRepo.FindByID(ctx, input.ListID)
	if err != nil {
		return nil, fmt.Errorf("failed to reload shopping list: %w", err)
	}
	return &MarkPurchasedOutput{List: list}, nil
}

func uniqueIDs(ids []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(ids))
	out := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
