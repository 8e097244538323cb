// Package router sets up the HTTP routing for the application.
package router

import (
	"github.com/gin-gonic/gin"

	"github.com/spend-smart/backend/internal/integration/entrypoint/controller"
	"github.com/spend-smart/backend/internal/integration/entrypoint/middleware"
)

// Router holds the Gin engine and controller dependencies.
type Router struct {
	engine                 *gin.Engine
	healthController       *controller.HealthController
	categoryController     *controller.CategoryController
	receiptController      *controller.ReceiptController
	lineItemController     *controller.LineItemController
	budgetController       *controller.BudgetController
	shoppingListController *controller.ShoppingListController
	extractionRateLimiter  *middleware.RateLimiter
	authMiddleware         *middleware.AuthMiddleware
}

// NewRouter creates a new router instance with all dependencies.
func NewRouter(
	healthController *controller.HealthController,
	categoryController *controller.CategoryController,
	receiptController *controller.ReceiptController,
	lineItemController *controller.LineItemController,
	budgetController *controller.BudgetController,
	shoppingListController *controller.ShoppingListController,
	extractionRateLimiter *middleware.RateLimiter,
	authMiddleware *middleware.AuthMiddleware,
) *Router {
	return &Router{
		healthController:       healthController,
		categoryController:     categoryController,
		receiptController:      receiptController,
		lineItemController:     lineItemController,
		budgetController:       budgetController,
		shoppingListController: shoppingListController,
		extractionRateLimiter:  extractionRateLimiter,
		authMiddleware:         authMiddleware,
	}
}

// Setup configures and returns the Gin engine with all routes.
func (r *Router) Setup(environment string) *gin.Engine {
	if environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else if environment == "test" {
		gin.SetMode(gin.TestMode)
	}

	// Create router with default middleware (logger and recovery)
	r.engine = gin.Default()

	r.setupHealthRoutes()
	r.setupAPIRoutes()

	return r.engine
}

// setupHealthRoutes configures health check endpoints.
func (r *Router) setupHealthRoutes() {
	r.engine.GET("/health", r.healthController.Check)
}

// setupAPIRoutes configures the main API routes. Everything under /api/v1
// requires authentication.
func (r *Router) setupAPIRoutes() {
	v1 := r.engine.Group("/api/v1")
	v1.Use(r.authMiddleware.Authenticate())

	limited := r.extractionLimit()

	categories := v1.Group("/categories")
	{
		categories.GET("", r.categoryController.List)
	}

	receipts := v1.Group("/receipts")
	{
		receipts.POST("", limited, r.receiptController.Upload)
		receipts.GET("", r.receiptController.List)
		receipts.GET("/:id", r.receiptController.Get)
		receipts.POST("/:id/reprocess", r.receiptController.Reprocess)
	}

	lineItems := v1.Group("/line-items")
	{
		lineItems.POST("", r.lineItemController.Create)
		lineItems.GET("", r.lineItemController.List)
		lineItems.PATCH("/:id/category", r.lineItemController.UpdateCategory)
	}

	budgets := v1.Group("/budgets")
	{
		budgets.POST("", r.budgetController.Create)
		budgets.GET("", r.budgetController.List)
		budgets.GET("/analytics", r.budgetController.Analytics)
		budgets.PATCH("/:id", r.budgetController.Update)
		budgets.DELETE("/:id", r.budgetController.Delete)
	}

	shoppingLists := v1.Group("/shopping-lists")
	{
		shoppingLists.POST("/generate", limited, r.shoppingListController.Generate)
		shoppingLists.GET("", r.shoppingListController.List)
		shoppingLists.GET("/:id", r.shoppingListController.Get)
		shoppingLists.POST("/:id/purchase", r.shoppingListController.MarkPurchased)
		shoppingLists.PATCH("/:id/status", r.shoppingListController.UpdateStatus)
	}
}

func (r *Router) extractionLimit() gin.HandlerFunc {
	if r.extractionRateLimiter == nil {
		return func(c *gin.Context) { c.Next() }
	}
	return r.extractionRateLimiter.Middleware()
}
