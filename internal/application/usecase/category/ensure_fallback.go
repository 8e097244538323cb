package category

import (
	"context"
	"errors"
	"fmt"

	"github.com/spend-smart/backend/internal/application/adapter"
	"github.com/spend-smart/backend/internal/domain/entity"
	domainerror "github.com/spend-smart/backend/internal/domain/error"
)

// EnsureFallbackCategory loads the category that receipt items fall back to
// when the extraction names an unknown category. It must exist before the
// receipt pipeline starts; a missing row is reported, never created here.
func EnsureFallbackCategory(ctx context.Context, categoryRepo adapter.CategoryRepository, name string) (*entity.Category, error) {
	if name == "" {
		name = entity.DefaultFallbackCategoryName
	}

	category, err := categoryRepo.FindByName(ctx, name)
	if err != nil {
		if errors.Is(err, domainerror.ErrCategoryNotFound) {
			return nil, domainerror.NewCategoryError(
				domainerror.ErrCodeFallbackCategoryMissing,
				fmt.Sprintf("fallback category %q is not seeded", name),
				domainerror.ErrFallbackCategoryMissing,
			)
		}
		return nil, fmt.Errorf("failed to load fallback category: %w", err)
	}

	return category, nil
}
