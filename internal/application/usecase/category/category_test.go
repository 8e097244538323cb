package category

import (
	"context"
	"errors"
	"testing"

	"github.com/spend-smart/backend/internal/domain/entity"
	domainerror "github.com/spend-smart/backend/internal/domain/error"
	"github.com/spend-smart/backend/internal/integration/persistence"
	"github.com/spend-smart/backend/internal/integration/persistence/persistencetest"
)

func TestSeedCategories_Idempotent(t *testing.T) {
	ctx := context.Background()
	repo := persistence.NewCategoryRepository(persistencetest.NewTestDB(t))
	uc := NewSeedCategoriesUseCase(repo)

	first, err := uc.Execute(ctx, SeedCategoriesInput{})
	if err != nil {
		t.Fatalf("first seed: %v", err)
	}
	if len(first.Categories) != len(entity.DefaultCategories) {
		t.Fatalf("expected %d categories, got %d", len(entity.DefaultCategories), len(first.Categories))
	}

	second, err := uc.Execute(ctx, SeedCategoriesInput{})
	if err != nil {
		t.Fatalf("second seed: %v", err)
	}
	for i := range first.Categories {
		if first.Categories[i].ID != second.Categories[i].ID {
			t.Errorf("category %q was recreated", first.Categories[i].Name)
		}
	}

	all, err := NewListCategoriesUseCase(repo).Execute(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(all.Categories) != len(entity.DefaultCategories) {
		t.Errorf("expected no duplicates, got %d categories", len(all.Categories))
	}
}

func TestSeedCategories_RejectsBlankName(t *testing.T) {
	repo := persistence.NewCategoryRepository(persistencetest.NewTestDB(t))

	_, err := NewSeedCategoriesUseCase(repo).Execute(context.Background(), SeedCategoriesInput{
		Seeds: []entity.CategorySeed{{Name: "  "}},
	})

	var catErr *domainerror.CategoryError
	if !errors.As(err, &catErr) || catErr.Code != domainerror.ErrCodeMissingCategoryFields {
		t.Fatalf("expected missing fields error, got %v", err)
	}
}

func TestEnsureFallbackCategory(t *testing.T) {
	ctx := context.Background()
	repo := persistence.NewCategoryRepository(persistencetest.NewTestDB(t))

	_, err := EnsureFallbackCategory(ctx, repo, "Other")
	if !errors.Is(err, domainerror.ErrFallbackCategoryMissing) {
		t.Fatalf("expected ErrFallbackCategoryMissing before seeding, got %v", err)
	}

	if _, err := NewSeedCategoriesUseCase(repo).Execute(ctx, SeedCategoriesInput{}); err != nil {
		t.Fatalf("seed: %v", err)
	}

	fallback, err := EnsureFallbackCategory(ctx, repo, "")
	if err != nil {
		t.Fatalf("expected fallback after seeding, got %v", err)
	}
	if fallback.Name != entity.DefaultFallbackCategoryName {
		t.Errorf("expected %q, got %q", entity.DefaultFallbackCategoryName, fallback.Name)
	}
}
