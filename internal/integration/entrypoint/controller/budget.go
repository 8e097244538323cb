package controller

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/spend-smart/backend/internal/application/usecase/budget"
	"github.com/spend-smart/backend/internal/domain/entity"
	"github.com/spend-smart/backend/internal/integration/entrypoint/dto"
	"github.com/spend-smart/backend/internal/integration/entrypoint/middleware"
)

// BudgetController handles budget endpoints.
type BudgetController struct {
	createUseCase    *budget.CreateBudgetUseCase
	listUseCase      *budget.ListBudgetsUseCase
	updateUseCase    *budget.UpdateBudgetUseCase
	deleteUseCase    *budget.DeleteBudgetUseCase
	analyticsUseCase *budget.GetAnalyticsUseCase
}

// NewBudgetController creates a new budget controller instance.
func NewBudgetController(
	createUseCase *budget.CreateBudgetUseCase,
	listUseCase *budget.ListBudgetsUseCase,
	updateUseCase *budget.UpdateBudgetUseCase,
	deleteUseCase *budget.DeleteBudgetUseCase,
	analyticsUseCase *budget.GetAnalyticsUseCase,
) *BudgetController {
	return &BudgetController{
		createUseCase:    createUseCase,
		listUseCase:      listUseCase,
		updateUseCase:    updateUseCase,
		deleteUseCase:    deleteUseCase,
		analyticsUseCase: analyticsUseCase,
	}
}

// Create handles POST /budgets requests.
func (c *BudgetController) Create(ctx *gin.Context) {
	userID, ok := requireUser(ctx)
	if !ok {
		return
	}

	var req dto.CreateBudgetRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, "Invalid request body", err)
		return
	}

	email, _ := middleware.GetUserEmailFromContext(ctx)

	output, err := c.createUseCase.Execute(ctx.Request.Context(), budget.CreateBudgetInput{
		UserID:                userID,
		Email:                 email,
		Amount:                *req.Amount,
		Period:                entity.BudgetPeriod(req.Period),
		Currency:              entity.Currency(req.Currency),
		NotificationThreshold: *req.NotificationThreshold,
	})
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToBudgetResponse(output.Budget))
}

// List handles GET /budgets requests.
func (c *BudgetController) List(ctx *gin.Context) {
	userID, ok := requireUser(ctx)
	if !ok {
		return
	}

	output, err := c.listUseCase.Execute(ctx.Request.Context(), budget.ListBudgetsInput{UserID: userID})
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToBudgetListResponse(output.Budgets))
}

// Update handles PATCH /budgets/:id requests.
func (c *BudgetController) Update(ctx *gin.Context) {
	userID, ok := requireUser(ctx)
	if !ok {
		return
	}
	budgetID, ok := parseIDParam(ctx, "id", "budget")
	if !ok {
		return
	}

	var req dto.UpdateBudgetRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, "Invalid request body", err)
		return
	}

	input := budget.UpdateBudgetInput{
		BudgetID:              budgetID,
		UserID:                userID,
		Amount:                req.Amount,
		NotificationThreshold: req.NotificationThreshold,
	}
	if req.Currency != nil {
		currency := entity.Currency(strings.ToUpper(strings.TrimSpace(*req.Currency)))
		input.Currency = &currency
	}

	output, err := c.updateUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToBudgetResponse(output.Budget))
}

// Delete handles DELETE /budgets/:id requests.
func (c *BudgetController) Delete(ctx *gin.Context) {
	userID, ok := requireUser(ctx)
	if !ok {
		return
	}
	budgetID, ok := parseIDParam(ctx, "id", "budget")
	if !ok {
		return
	}

	if err := c.deleteUseCase.Execute(ctx.Request.Context(), budget.DeleteBudgetInput{
		BudgetID: budgetID,
		UserID:   userID,
	}); err != nil {
		respondError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// Analytics handles GET /budgets/analytics requests.
// Evaluating the threshold here may send the budget alert.
func (c *BudgetController) Analytics(ctx *gin.Context) {
	userID, ok := requireUser(ctx)
	if !ok {
		return
	}

	output, err := c.analyticsUseCase.Execute(ctx.Request.Context(), budget.GetAnalyticsInput{UserID: userID})
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToBudgetAnalyticsResponse(output))
}
