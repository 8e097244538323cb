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

// budgetRepository implements the adapter.BudgetRepository interface.
type budgetRepository struct {
	db *gorm.DB
}

// NewBudgetRepository creates a new budget repository instance.
func NewBudgetRepository(db *gorm.DB) adapter.BudgetRepository {
	return &budgetRepository{
		db: db,
	}
}

// Create creates a new budget in the database.
func (r *budgetRepository) Create(ctx context.Context, budget *entity.Budget) error {
	result := conn(ctx, r.db).Create(model.BudgetFromEntity(budget))
	if result.Error != nil {
		if isUniqueViolation(result.Error) {
			return domainerror.ErrBudgetAlreadyExists
		}
		return result.Error
	}
	return nil
}

// FindByID retrieves a budget by its ID.
func (r *budgetRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Budget, error) {
	var budgetModel model.BudgetModel
	result := conn(ctx, r.db).Where("id = ?", id).First(&budgetModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrBudgetNotFound
		}
		return nil, result.Error
	}
	return budgetModel.ToEntity(), nil
}

// FindByUser retrieves a user's budgets, newest first.
func (r *budgetRepository) FindByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Budget, error) {
	var budgetModels []model.BudgetModel
	result := conn(ctx, r.db).Where("user_id = ?", userID).Order("created_at DESC").Find(&budgetModels)
	if result.Error != nil {
		return nil, result.Error
	}
	return toBudgets(budgetModels), nil
}

// FindLatestByUser retrieves the user's most recently created budget.
func (r *budgetRepository) FindLatestByUser(ctx context.Context, userID uuid.UUID) (*entity.Budget, error) {
	var budgetModel model.BudgetModel
	result := conn(ctx, r.db).Where("user_id = ?", userID).Order("created_at DESC").First(&budgetModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrBudgetNotFound
		}
		return nil, result.Error
	}
	return budgetModel.ToEntity(), nil
}

// FindUnnotified retrieves every budget whose notification latch is still open.
func (r *budgetRepository) FindUnnotified(ctx context.Context) ([]*entity.Budget, error) {
	var budgetModels []model.BudgetModel
	result := conn(ctx, r.db).Where("notification_sent = ?", false).Order("created_at ASC").Find(&budgetModels)
	if result.Error != nil {
		return nil, result.Error
	}
	return toBudgets(budgetModels), nil
}

// UpdateSettings persists the user-editable fields only.
func (r *budgetRepository) UpdateSettings(ctx context.Context, budget *entity.Budget) error {
	result := conn(ctx, r.db).
		Model(&model.BudgetModel{}).
		Where("id = ?", budget.ID).
		Updates(map[string]interface{}{
			"amount":                 budget.Amount,
			"notification_threshold": budget.NotificationThreshold,
			"currency":               string(budget.Currency),
			"updated_at":             budget.UpdatedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerror.ErrBudgetNotFound
	}
	return nil
}

// Delete removes a budget from the database.
func (r *budgetRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := conn(ctx, r.db).Delete(&model.BudgetModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerror.ErrBudgetNotFound
	}
	return nil
}

// ClaimNotification flips the latch with a conditional update; only one caller can win.
func (r *budgetRepository) ClaimNotification(ctx context.Context, id uuid.UUID) (bool, error) {
	result := conn(ctx, r.db).
		Model(&model.BudgetModel{}).
		Where("id = ? AND notification_sent = ?", id, false).
		Updates(map[string]interface{}{
			"notification_sent": true,
			"updated_at":        time.Now().UTC(),
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected == 1, nil
}

// ReleaseNotification reopens the latch after a failed send.
func (r *budgetRepository) ReleaseNotification(ctx context.Context, id uuid.UUID) error {
	return conn(ctx, r.db).
		Model(&model.BudgetModel{}).
		Where("id = ? AND notification_sent = ?", id, true).
		Updates(map[string]interface{}{
			"notification_sent": false,
			"updated_at":        time.Now().UTC(),
		}).Error
}

func toBudgets(budgetModels []model.BudgetModel) []*entity.Budget {
	budgets := make([]*entity.Budget, len(budgetModels))
	for i := range budgetModels {
		budgets[i] = budgetModels[i].ToEntity()
	}
	return budgets
}
