// Package dependency provides dependency injection for the application.
package dependency

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/spend-smart/backend/config"
	"github.com/spend-smart/backend/internal/application/adapter"
	"github.com/spend-smart/backend/internal/application/usecase/budget"
	"github.com/spend-smart/backend/internal/application/usecase/category"
	"github.com/spend-smart/backend/internal/application/usecase/lineitem"
	"github.com/spend-smart/backend/internal/application/usecase/receipt"
	"github.com/spend-smart/backend/internal/application/usecase/shoppinglist"
	database "github.com/spend-smart/backend/internal/infra/db"
	"github.com/spend-smart/backend/internal/infra/server/router"
	"github.com/spend-smart/backend/internal/integration/email"
	"github.com/spend-smart/backend/internal/integration/email/templates"
	"github.com/spend-smart/backend/internal/integration/entrypoint/controller"
	"github.com/spend-smart/backend/internal/integration/entrypoint/middleware"
	"github.com/spend-smart/backend/internal/integration/persistence"
	"github.com/spend-smart/backend/internal/integration/queue"
)

// Services are the external collaborators the use cases depend on.
type Services struct {
	ImageStore    adapter.ImageStore
	Extractor     adapter.ExtractionClient
	EmailSender   adapter.EmailSender
	TokenVerifier adapter.TokenVerifier

	// Locker guards the budget sweep. Optional.
	Locker adapter.Locker

	// Dispatcher overrides inline processing, e.g. with the asynq dispatcher.
	// Optional.
	Dispatcher adapter.ReceiptDispatcher

	// HealthChecks are reported by /health next to the database.
	HealthChecks map[string]controller.HealthCheck
}

// Injector holds all application dependencies.
type Injector struct {
	Config *config.Config
	DB     *gorm.DB
	Router *router.Router

	ProcessReceipt  *receipt.ProcessReceiptUseCase
	DispatchPending *receipt.DispatchPendingUseCase
	SweepBudgets    *budget.SweepBudgetsUseCase
	SeedCategories  *category.SeedCategoriesUseCase
	WorkerHandlers  *queue.Handlers
}

// NewInjector creates a new dependency injector with all dependencies wired.
// It fails when the fallback category has not been seeded.
func NewInjector(ctx context.Context, cfg *config.Config, db *gorm.DB, services Services) (*Injector, error) {
	// Create repositories
	userRepo := persistence.NewUserRepository(db)
	categoryRepo := persistence.NewCategoryRepository(db)
	receiptRepo := persistence.NewReceiptRepository(db)
	lineItemRepo := persistence.NewLineItemRepository(db)
	budgetRepo := persistence.NewBudgetRepository(db)
	shoppingListRepo := persistence.NewShoppingListRepository(db)
	transactor := persistence.NewTransactor(db)

	fallback, err := category.EnsureFallbackCategory(ctx, categoryRepo, cfg.Receipt.FallbackCategory)
	if err != nil {
		return nil, err
	}

	renderer, err := templates.NewRenderer()
	if err != nil {
		return nil, fmt.Errorf("failed to load email templates: %w", err)
	}
	alerts := email.NewBudgetAlertMailer(services.EmailSender, renderer, cfg.Email.AppBaseURL)
	location := cfg.Budget.Location()

	// Create category use cases
	listCategoriesUseCase := category.NewListCategoriesUseCase(categoryRepo)
	seedCategoriesUseCase := category.NewSeedCategoriesUseCase(categoryRepo)

	// Create receipt use cases
	processReceiptUseCase := receipt.NewProcessReceiptUseCase(
		receiptRepo, lineItemRepo, categoryRepo, services.ImageStore, services.Extractor, transactor, fallback,
	)
	dispatcher := services.Dispatcher
	if dispatcher == nil {
		dispatcher = receipt.NewInlineDispatcher(processReceiptUseCase)
	}
	uploadReceiptUseCase := receipt.NewUploadReceiptUseCase(receiptRepo, services.ImageStore, dispatcher, cfg.Receipt.MaxImageBytes)
	getReceiptUseCase := receipt.NewGetReceiptUseCase(receiptRepo, lineItemRepo)
	listReceiptsUseCase := receipt.NewListReceiptsUseCase(receiptRepo)
	reprocessReceiptUseCase := receipt.NewReprocessReceiptUseCase(receiptRepo, dispatcher)
	dispatchPendingUseCase := receipt.NewDispatchPendingUseCase(receiptRepo, dispatcher)

	// Create line item use cases
	createLineItemUseCase := lineitem.NewCreateLineItemUseCase(lineItemRepo, categoryRepo, fallback)
	listLineItemsUseCase := lineitem.NewListLineItemsUseCase(lineItemRepo)
	updateLineItemCategoryUseCase := lineitem.NewUpdateLineItemCategoryUseCase(lineItemRepo, categoryRepo, fallback)

	// Create budget use cases
	calculator := budget.NewSpendCalculator(lineItemRepo, location)
	notifier := budget.NewNotifier(budgetRepo, userRepo, alerts)
	createBudgetUseCase := budget.NewCreateBudgetUseCase(budgetRepo, userRepo)
	listBudgetsUseCase := budget.NewListBudgetsUseCase(budgetRepo)
	updateBudgetUseCase := budget.NewUpdateBudgetUseCase(budgetRepo)
	deleteBudgetUseCase := budget.NewDeleteBudgetUseCase(budgetRepo)
	analyticsUseCase := budget.NewGetAnalyticsUseCase(budgetRepo, calculator, notifier)
	sweepUseCase := budget.NewSweepBudgetsUseCase(budgetRepo, calculator, notifier, services.Locker, cfg.Budget.SweepLockTTL, location)

	// Create shopping list use cases
	generateListUseCase := shoppinglist.NewGenerateShoppingListUseCase(
		lineItemRepo, budgetRepo, categoryRepo, shoppingListRepo, services.Extractor, transactor,
	)
	getListUseCase := shoppinglist.NewGetShoppingListUseCase(shoppingListRepo)
	listListsUseCase := shoppinglist.NewListShoppingListsUseCase(shoppingListRepo)
	markPurchasedUseCase := shoppinglist.NewMarkPurchasedUseCase(shoppingListRepo, transactor)
	updateListStatusUseCase := shoppinglist.NewUpdateStatusUseCase(shoppingListRepo)

	// Create controllers
	healthChecks := map[string]controller.HealthCheck{
		"database": func(ctx context.Context) error { return database.Ping(ctx, db) },
	}
	for name, check := range services.HealthChecks {
		healthChecks[name] = check
	}
	healthController := controller.NewHealthController(healthChecks)
	categoryController := controller.NewCategoryController(listCategoriesUseCase)
	receiptController := controller.NewReceiptController(
		uploadReceiptUseCase, getReceiptUseCase, listReceiptsUseCase, reprocessReceiptUseCase, cfg.Receipt.MaxImageBytes,
	)
	lineItemController := controller.NewLineItemController(createLineItemUseCase, listLineItemsUseCase, updateLineItemCategoryUseCase)
	budgetController := controller.NewBudgetController(
		createBudgetUseCase, listBudgetsUseCase, updateBudgetUseCase, deleteBudgetUseCase, analyticsUseCase,
	)
	shoppingListController := controller.NewShoppingListController(
		generateListUseCase, getListUseCase, listListsUseCase, markPurchasedUseCase, updateListStatusUseCase,
	)

	// Create middleware
	// Use higher rate limits for E2E/test environments to prevent flaky tests
	var extractionRateLimiter *middleware.RateLimiter
	if cfg.Server.Environment == "e2e" || cfg.Server.Environment == "test" {
		extractionRateLimiter = middleware.NewRateLimiterWithConfig(1000, 1*time.Minute)
	} else {
		extractionRateLimiter = middleware.NewRateLimiter()
	}
	authMiddleware := middleware.NewAuthMiddleware(services.TokenVerifier)

	r := router.NewRouter(
		healthController,
		categoryController,
		receiptController,
		lineItemController,
		budgetController,
		shoppingListController,
		extractionRateLimiter,
		authMiddleware,
	)

	return &Injector{
		Config:          cfg,
		DB:              db,
		Router:          r,
		ProcessReceipt:  processReceiptUseCase,
		DispatchPending: dispatchPendingUseCase,
		SweepBudgets:    sweepUseCase,
		SeedCategories:  seedCategoriesUseCase,
		WorkerHandlers:  queue.NewHandlers(processReceiptUseCase, sweepUseCase),
	}, nil
}
