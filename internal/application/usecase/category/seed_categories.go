package category

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/spend-smart/backend/internal/application/adapter"
	"github.com/spend-smart/backend/internal/domain/entity"
	domainerror "github.com/spend-smart/backend/internal/domain/error"
)

// MaxCategoryNameLength is the maximum allowed length for category names.
const MaxCategoryNameLength = 100

// SeedCategoriesInput represents the input for seeding categories.
// An empty Seeds slice seeds entity.DefaultCategories.
type SeedCategoriesInput struct {
	Seeds []entity.CategorySeed
}

// SeedCategoriesOutput represents the output of category seeding.
type SeedCategoriesOutput struct {
	Categories []*entity.Category
}

// SeedCategoriesUseCase get-or-creates the category vocabulary.
// Running it repeatedly is harmless.
type SeedCategoriesUseCase struct {
	categoryRepo adapter.CategoryRepository
	logger       *slog.Logger
}

// NewSeedCategoriesUseCase creates a new SeedCategoriesUseCase instance.
func NewSeedCategoriesUseCase(categoryRepo adapter.CategoryRepository) *SeedCategoriesUseCase {
	return &SeedCategoriesUseCase{
		categoryRepo: categoryRepo,
		logger:       slog.Default().With("usecase", "seed_categories"),
	}
}

// Execute performs the seeding.
func (uc *SeedCategoriesUseCase) Execute(ctx context.Context, input SeedCategoriesInput) (*SeedCategoriesOutput, error) {
	seeds := input.Seeds
	if len(seeds) == 0 {
		seeds = entity.DefaultCategories
	}

	categories := make([]*entity.Category, 0, len(seeds))
	for _, seed := range seeds {
		name := strings.TrimSpace(seed.Name)
		if name == "" {
			return nil, domainerror.NewCategoryError(
				domainerror.ErrCodeMissingCategoryFields,
				"category name is required",
				nil,
			)
		}
		if len(name) > MaxCategoryNameLength {
			return nil, domainerror.NewCategoryError(
				domainerror.ErrCodeCategoryNameTooLong,
				fmt.Sprintf("category name must not exceed %d characters", MaxCategoryNameLength),
				domainerror.ErrCategoryNameTooLong,
			)
		}

		category, err := uc.categoryRepo.GetOrCreateByName(ctx, name, seed.Description)
		if err != nil {
			return nil, fmt.Errorf("failed to seed category %q: %w", name, err)
		}
		categories = append(categories, category)
	}

	uc.logger.Info("categories seeded", "count", len(categories))

	return &SeedCategoriesOutput{
		Categories: categories,
	}, nil
}
