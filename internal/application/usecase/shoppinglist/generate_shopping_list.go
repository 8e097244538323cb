// Package shoppinglist contains shopping list use cases.
package shoppinglist

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/spend-smart/backend/internal/application/adapter"
	"github.com/spend-smart/backend/internal/domain/entity"
	domainerror "github.com/spend-smart/backend/internal/domain/error"
)

// HistoryWindow is how far back purchase history is summarized.
const HistoryWindow = 90 * 24 * time.Hour

// MaxListNameLength bounds list names.
const MaxListNameLength = 200

// GenerateShoppingListInput represents the input for list generation.
// Name overrides the suggested list name when set.
type GenerateShoppingListInput struct {
	UserID uuid.UUID
	Name   string
}

// GenerateShoppingListOutput represents the output of list generation.
type GenerateShoppingListOutput struct {
	List               *entity.ShoppingList
	SuggestedTotalCost string
	Suggestions        []string
}

// GenerateShoppingListUseCase builds a draft shopping list from purchase history.
// Either the whole list is saved or nothing is.
type GenerateShoppingListUseCase struct {
	lineItemRepo     adapter.LineItemRepository
	budgetRepo       adapter.BudgetRepository
	categoryRepo     adapter.CategoryRepository
	shoppingListRepo adapter.ShoppingListRepository
	extractor        adapter.ExtractionClient
	transactor       adapter.Transactor
	now              func() time.Time
	logger           *slog.Logger
}

// NewGenerateShoppingListUseCase creates a new GenerateShoppingListUseCase instance.
func NewGenerateShoppingListUseCase(
	lineItemRepo adapter.LineItemRepository,
	budgetRepo adapter.BudgetRepository,
	categoryRepo adapter.CategoryRepository,
	shoppingListRepo adapter.ShoppingListRepository,
	extractor adapter.ExtractionClient,
	transactor adapter.Transactor,
) *GenerateShoppingListUseCase {
	return &GenerateShoppingListUseCase{
		lineItemRepo:     lineItemRepo,
		budgetRepo:       budgetRepo,
		categoryRepo:     categoryRepo,
		shoppingListRepo: shoppingListRepo,
		extractor:        extractor,
		transactor:       transactor,
		now:              time.Now,
		logger:           slog.Default().With("usecase", "generate_shopping_list"),
	}
}

// Execute performs the generation.
func (uc *GenerateShoppingListUseCase) Execute(ctx context.Context, input GenerateShoppingListInput) (*GenerateShoppingListOutput, error) {
	name := strings.TrimSpace(input.Name)
	if len(name) > MaxListNameLength {
		return nil, domainerror.NewShoppingListError(
			domainerror.ErrCodeListNameTooLong,
			fmt.Sprintf("list name must not exceed %d characters", MaxListNameLength),
			domainerror.ErrListNameTooLong,
		)
	}
	logger := uc.logger.With("user_id", input.UserID)

	now := uc.now().UTC()
	history, err := uc.lineItemRepo.FindByUserCreatedBetween(ctx, input.UserID, now.Add(-HistoryWindow), now)
	if err != nil {
		return nil, generationError(domainerror.ErrCodeGenerationPersistence, "failed to load purchase history", err)
	}

	budget, err := uc.budgetRepo.FindLatestByUser(ctx, input.UserID)
	if err != nil && !errors.Is(err, domainerror.ErrBudgetNotFound) {
		return nil, generationError(domainerror.ErrCodeGenerationPersistence, "failed to load budget", err)
	}

	categories, err := uc.categoryRepo.FindAll(ctx)
	if err != nil {
		return nil, generationError(domainerror.ErrCodeGenerationPersistence, "failed to load categories", err)
	}

	contextJSON, err := json.Marshal(generationContext{
		PurchaseHistory: summarizeHistory(history),
		Budget:          budgetContext(budget),
	})
	if err != nil {
		return nil, generationError(domainerror.ErrCodeGenerationPersistence, "failed to encode purchase history", err)
	}

	raw, err := uc.extractor.Extract(ctx, adapter.ExtractionRequest{
		Kind:       adapter.PromptHistoryToShoppingList,
		Context:    string(contextJSON),
		Categories: entity.CategoryNames(categories),
	})
	if err != nil {
		logger.Warn("shopping list generation failed", "error", err)
		var extErr *domainerror.ExtractionError
		if errors.As(err, &extErr) && extErr.Kind == domainerror.ExtractionErrorMalformed {
			return nil, generationError(domainerror.ErrCodeGenerationMalformed, "the recommendation service returned an unreadable response", err)
		}
		return nil, generationError(domainerror.ErrCodeGenerationUnavailable, "the recommendation service is unavailable", err)
	}

	rec, err := decodeRecommendation(raw.Text)
	if err != nil {
		logger.Warn("recommendation did not match schema", "error", err)
		return nil, generationError(domainerror.ErrCodeGenerationMalformed, "the recommendation response does not match the expected shape", err)
	}

	if name == "" {
		name = rec.ListName
	}
	if name == "" {
		name = fmt.Sprintf("Shopping list %s", now.Format("2006-01-02"))
	}

	var budgetID *uuid.UUID
	if budget != nil {
		id := budget.ID
		budgetID = &id
	}

	list := entity.NewShoppingList(input.UserID, name, budgetID, strings.Join(rec.Suggestions, "\n"))

	err = uc.transactor.WithinTransaction(ctx, func(txCtx context.Context) error {
		resolved := make(map[string]*entity.Category)
		for _, item := range rec.Items {
			category, ok := resolved[item.Category]
			if !ok {
				created, err := uc.categoryRepo.GetOrCreateByName(txCtx, item.Category, fmt.Sprintf("Category for %s items", item.Category))
				if err != nil {
					return fmt.Errorf("failed to resolve category %q: %w", item.Category, err)
				}
				category = created
				resolved[item.Category] = category
			}

			categoryID := category.ID
			price := item.EstimatedPrice
			listItem := entity.NewShoppingListItem(list.ID, item.Name, &categoryID, item.Quantity, item.Unit, &price, item.Priority, item.Notes)
			listItem.Category = category
			list.Items = append(list.Items, listItem)
		}

		if err := uc.shoppingListRepo.Create(txCtx, list); err != nil {
			return fmt.Errorf("failed to save shopping list: %w", err)
		}
		return nil
	})
	if err != nil {
		logger.Error("failed to persist generated list", "error", err)
		return nil, generationError(domainerror.ErrCodeGenerationPersistence, "failed to save the generated shopping list", err)
	}

	saved, err := uc.shoppingListRepo.FindByID(ctx, list.ID)
	if err != nil {
		return nil, generationError(domainerror.ErrCodeGenerationPersistence, "failed to reload the generated shopping list", err)
	}

	logger.Info("shopping list generated", "list_id", saved.ID, "items", len(saved.Items))
	return &GenerateShoppingListOutput{
		List:               saved,
		SuggestedTotalCost: rec.TotalEstimatedCost.StringFixed(2),
		Suggestions:        rec.Suggestions,
	}, nil
}

func generationError(code domainerror.ShoppingListErrorCode, message string, err error) error {
	return domainerror.NewShoppingListError(code, message, fmt.Errorf("%w: %w", domainerror.ErrGenerationFailed, err))
}
