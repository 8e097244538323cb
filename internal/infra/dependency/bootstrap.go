package dependency

import (
	"context"
	"fmt"
	"log/slog"

	"gorm.io/gorm"

	"github.com/spend-smart/backend/internal/application/usecase/category"
	"github.com/spend-smart/backend/internal/integration/persistence"
	"github.com/spend-smart/backend/internal/integration/persistence/model"
)

// PrepareDatabase migrates the schema and seeds the default category
// vocabulary. Both steps are idempotent.
func PrepareDatabase(ctx context.Context, db *gorm.DB) error {
	if err := db.WithContext(ctx).AutoMigrate(model.All()...); err != nil {
		return fmt.Errorf("failed to run auto-migration: %w", err)
	}

	output, err := category.NewSeedCategoriesUseCase(persistence.NewCategoryRepository(db)).
		Execute(ctx, category.SeedCategoriesInput{})
	if err != nil {
		return err
	}

	slog.Info("Database prepared", "categories", len(output.Categories))
	return nil
}
