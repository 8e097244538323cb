// Package persistence implements repository interfaces for database operations.
package persistence

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/spend-smart/backend/internal/application/adapter"
	"github.com/spend-smart/backend/internal/domain/entity"
	domainerror "github.com/spend-smart/backend/internal/domain/error"
	"github.com/spend-smart/backend/internal/integration/persistence/model"
)

// receiptRepository implements the adapter.ReceiptRepository interface.
type receiptRepository struct {
	db *gorm.DB
}

// NewReceiptRepository creates a new receipt repository instance.
func NewReceiptRepository(db *gorm.DB) adapter.ReceiptRepository {
	return &receiptRepository{
		db: db,
	}
}

// Create creates a new receipt in the database.
func (r *receiptRepository) Create(ctx context.Context, receipt *entity.Receipt) error {
	return conn(ctx, r.db).Create(model.ReceiptFromEntity(receipt)).Error
}

// FindByID retrieves a receipt by its ID.
func (r *receiptRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Receipt, error) {
	var receiptModel model.ReceiptModel
	result := conn(ctx, r.db).Where("id = ?", id).First(&receiptModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrReceiptNotFound
		}
		return nil, result.Error
	}
	return receiptModel.ToEntity(), nil
}

// FindByUser retrieves a user's receipts, newest first, with the total count.
func (r *receiptRepository) FindByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entity.Receipt, int64, error) {
	db := conn(ctx, r.db)

	var total int64
	if err := db.Model(&model.ReceiptModel{}).Where("user_id = ?", userID).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query := db.Where("user_id = ?", userID).Order("created_at DESC")
	if limit > 0 {
		query = query.Limit(limit).Offset(offset)
	}

	var receiptModels []model.ReceiptModel
	if err := query.Find(&receiptModels).Error; err != nil {
		return nil, 0, err
	}

	receipts := make([]*entity.Receipt, len(receiptModels))
	for i := range receiptModels {
		receipts[i] = receiptModels[i].ToEntity()
	}
	return receipts, total, nil
}

// FindByStatus retrieves receipts in the given status, oldest first.
func (r *receiptRepository) FindByStatus(ctx context.Context, status entity.ReceiptStatus, limit int) ([]*entity.Receipt, error) {
	query := conn(ctx, r.db).Where("status = ?", string(status)).Order("created_at ASC")
	if limit > 0 {
		query = query.Limit(limit)
	}

	var receiptModels []model.ReceiptModel
	if err := query.Find(&receiptModels).Error; err != nil {
		return nil, err
	}

	receipts := make([]*entity.Receipt, len(receiptModels))
	for i := range receiptModels {
		receipts[i] = receiptModels[i].ToEntity()
	}
	return receipts, nil
}

// MarkProcessing moves a pending receipt to processing.
func (r *receiptRepository) MarkProcessing(ctx context.Context, id uuid.UUID) (bool, error) {
	return r.transition(ctx, id, entity.ReceiptStatusPending, entity.ReceiptStatusProcessing, map[string]interface{}{})
}

// MarkCompleted moves a processing receipt to completed.
func (r *receiptRepository) MarkCompleted(ctx context.Context, id uuid.UUID, total decimal.Decimal, rawPayload string) (bool, error) {
	return r.transition(ctx, id, entity.ReceiptStatusProcessing, entity.ReceiptStatusCompleted, map[string]interface{}{
		"total_amount": total,
		"raw_payload":  rawPayload,
	})
}

// MarkFailed moves a processing receipt to failed.
func (r *receiptRepository) MarkFailed(ctx context.Context, id uuid.UUID, rawPayload string) (bool, error) {
	return r.transition(ctx, id, entity.ReceiptStatusProcessing, entity.ReceiptStatusFailed, map[string]interface{}{
		"raw_payload": rawPayload,
	})
}

// transition moves the row from one status to another, applying updates only
// when the row is still in the from status.
func (r *receiptRepository) transition(ctx context.Context, id uuid.UUID, from, to entity.ReceiptStatus, updates map[string]interface{}) (bool, error) {
	if !from.CanTransitionTo(to) {
		return false, fmt.Errorf("receipt cannot move from %s to %s", from, to)
	}
	updates["status"] = string(to)
	updates["updated_at"] = time.Now().UTC()

	result := conn(ctx, r.db).
		Model(&model.ReceiptModel{}).
		Where("id = ? AND status = ?", id, string(from)).
		Updates(updates)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected == 1, nil
}
