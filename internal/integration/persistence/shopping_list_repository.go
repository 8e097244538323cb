// Package persistence implements repository interfaces for database operations.
package persistence

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/spend-smart/backend/internal/application/adapter"
	"github.com/spend-smart/backend/internal/domain/entity"
	domainerror "github.com/spend-smart/backend/internal/domain/error"
	"github.com/spend-smart/backend/internal/integration/persistence/model"
)

// shoppingListRepository implements the adapter.ShoppingListRepository interface.
type shoppingListRepository struct {
	db *gorm.DB
}

// NewShoppingListRepository creates a new shopping list repository instance.
func NewShoppingListRepository(db *gorm.DB) adapter.ShoppingListRepository {
	return &shoppingListRepository{
		db: db,
	}
}

// Create inserts the list and its items.
func (r *shoppingListRepository) Create(ctx context.Context, list *entity.ShoppingList) error {
	return conn(ctx, r.db).Create(model.ShoppingListFromEntity(list)).Error
}

// FindByID retrieves a list with its items and their categories.
func (r *shoppingListRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.ShoppingList, error) {
	var listModel model.ShoppingListModel
	result := conn(ctx, r.db).
		Preload("Items").
		Preload("Items.Category").
		Where("id = ?", id).
		First(&listModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrShoppingListNotFound
		}
		return nil, result.Error
	}

	list := listModel.ToEntity()
	sortItems(list.Items)
	return list, nil
}

// FindByUser retrieves a user's lists, newest first.
func (r *shoppingListRepository) FindByUser(ctx context.Context, userID uuid.UUID) ([]*entity.ShoppingList, error) {
	var listModels []model.ShoppingListModel
	result := conn(ctx, r.db).
		Preload("Items").
		Preload("Items.Category").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&listModels)
	if result.Error != nil {
		return nil, result.Error
	}

	lists := make([]*entity.ShoppingList, len(listModels))
	for i := range listModels {
		lists[i] = listModels[i].ToEntity()
		sortItems(lists[i].Items)
	}
	return lists, nil
}

// MarkItemsPurchased marks the given items purchased and bumps their frequency.
func (r *shoppingListRepository) MarkItemsPurchased(ctx context.Context, listID uuid.UUID, itemIDs []uuid.UUID, purchasedAt time.Time) (int64, error) {
	if len(itemIDs) == 0 {
		return 0, nil
	}

	result := conn(ctx, r.db).
		Model(&model.ShoppingListItemModel{}).
		Where("shopping_list_id = ? AND id IN ?", listID, itemIDs).
		Updates(map[string]interface{}{
			"is_purchased":       true,
			"purchase_frequency": gorm.Expr("purchase_frequency + ?", 1),
			"last_purchase_date": purchasedAt.UTC(),
			"updated_at":         time.Now().UTC(),
		})
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

// CountUnpurchased counts the list's open items.
func (r *shoppingListRepository) CountUnpurchased(ctx context.Context, listID uuid.UUID) (int64, error) {
	var count int64
	result := conn(ctx, r.db).
		Model(&model.ShoppingListItemModel{}).
		Where("shopping_list_id = ? AND is_purchased = ?", listID, false).
		Count(&count)
	return count, result.Error
}

// UpdateStatus sets the list status.
func (r *shoppingListRepository) UpdateStatus(ctx context.Context, listID uuid.UUID, status entity.ShoppingListStatus) error {
	result := conn(ctx, r.db).
		Model(&model.ShoppingListModel{}).
		Where("id = ?", listID).
		Updates(map[string]interface{}{
			"status":     string(status),
			"updated_at": time.Now().UTC(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerror.ErrShoppingListNotFound
	}
	return nil
}

// sortItems orders items high priority first, then by name.
func sortItems(items []*entity.ShoppingListItem) {
	sort.SliceStable(items, func(i, j int) bool {
		if items[i].Priority.Rank() != items[j].Priority.Rank() {
			return items[i].Priority.Rank() < items[j].Priority.Rank()
		}
		return items[i].Name < items[j].Name
	})
}
