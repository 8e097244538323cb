// Package persistence implements repository interfaces for database operations.
package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/spend-smart/backend/internal/application/adapter"
	"github.com/spend-smart/backend/internal/domain/entity"
	domainerror "github.com/spend-smart/backend/internal/domain/error"
	"github.com/spend-smart/backend/internal/integration/persistence/model"
)

// lineItemRepository implements the adapter.LineItemRepository interface.
type lineItemRepository struct {
	db *gorm.DB
}

// NewLineItemRepository creates a new line item repository instance.
func NewLineItemRepository(db *gorm.DB) adapter.LineItemRepository {
	return &lineItemRepository{
		db: db,
	}
}

// Create creates a single line item.
func (r *lineItemRepository) Create(ctx context.Context, item *entity.LineItem) error {
	return conn(ctx, r.db).Create(model.LineItemFromEntity(item)).Error
}

// CreateBatch inserts all items in one statement.
func (r *lineItemRepository) CreateBatch(ctx context.Context, items []*entity.LineItem) error {
	if len(items) == 0 {
		return nil
	}

	itemModels := make([]*model.LineItemModel, len(items))
	for i, item := range items {
		itemModels[i] = model.LineItemFromEntity(item)
	}
	return conn(ctx, r.db).Create(&itemModels).Error
}

// FindByID retrieves a line item with its category.
func (r *lineItemRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.LineItemWithCategory, error) {
	var itemModel model.LineItemModel
	result := conn(ctx, r.db).Preload("Category").Where("id = ?", id).First(&itemModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrLineItemNotFound
		}
		return nil, result.Error
	}
	return itemModel.ToEntityWithCategory(), nil
}

// FindByUser retrieves a user's line items, newest first, with the total count.
func (r *lineItemRepository) FindByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entity.LineItemWithCategory, int64, error) {
	db := conn(ctx, r.db)

	var total int64
	if err := db.Model(&model.LineItemModel{}).Where("user_id = ?", userID).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query := db.Preload("Category").Where("user_id = ?", userID).Order("created_at DESC")
	if limit > 0 {
		query = query.Limit(limit).Offset(offset)
	}

	var itemModels []model.LineItemModel
	if err := query.Find(&itemModels).Error; err != nil {
		return nil, 0, err
	}
	return toLineItemsWithCategory(itemModels), total, nil
}

// FindByReceipt retrieves the items extracted from a receipt.
func (r *lineItemRepository) FindByReceipt(ctx context.Context, receiptID uuid.UUID) ([]*entity.LineItemWithCategory, error) {
	var itemModels []model.LineItemModel
	result := conn(ctx, r.db).
		Preload("Category").
		Where("receipt_id = ?", receiptID).
		Order("created_at ASC").
		Find(&itemModels)
	if result.Error != nil {
		return nil, result.Error
	}
	return toLineItemsWithCategory(itemModels), nil
}

// FindByUserCreatedBetween retrieves items created in [start, end).
func (r *lineItemRepository) FindByUserCreatedBetween(ctx context.Context, userID uuid.UUID, start, end time.Time) ([]*entity.LineItemWithCategory, error) {
	var itemModels []model.LineItemModel
	result := conn(ctx, r.db).
		Preload("Category").
		Where("user_id = ? AND created_at >= ? AND created_at < ?", userID, start.UTC(), end.UTC()).
		Order("created_at ASC").
		Find(&itemModels)
	if result.Error != nil {
		return nil, result.Error
	}
	return toLineItemsWithCategory(itemModels), nil
}

// UpdateCategory reassigns the item's category.
func (r *lineItemRepository) UpdateCategory(ctx context.Context, id uuid.UUID, categoryID *uuid.UUID) error {
	result := conn(ctx, r.db).
		Model(&model.LineItemModel{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"category_id": categoryID,
			"updated_at":  time.Now().UTC(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerror.ErrLineItemNotFound
	}
	return nil
}

func toLineItemsWithCategory(itemModels []model.LineItemModel) []*entity.LineItemWithCategory {
	items := make([]*entity.LineItemWithCategory, len(itemModels))
	for i := range itemModels {
		items[i] = itemModels[i].ToEntityWithCategory()
	}
	return items
}
