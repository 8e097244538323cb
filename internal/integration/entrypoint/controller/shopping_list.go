package controller

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/spend-smart/backend/internal/application/usecase/shoppinglist"
	"github.com/spend-smart/backend/internal/domain/entity"
	"github.com/spend-smart/backend/internal/integration/entrypoint/dto"
)

// ShoppingListController handles shopping list endpoints.
type ShoppingListController struct {
	generateUseCase      *shoppinglist.GenerateShoppingListUseCase
	getUseCase           *shoppinglist.GetShoppingListUseCase
	listUseCase          *shoppinglist.ListShoppingListsUseCase
	markPurchasedUseCase *shoppinglist.MarkPurchasedUseCase
	updateStatusUseCase  *shoppinglist.UpdateStatusUseCase
}

// NewShoppingListController creates a new shopping list controller instance.
func NewShoppingListController(
	generateUseCase *shoppinglist.GenerateShoppingListUseCase,
	getUseCase *shoppinglist.GetShoppingListUseCase,
	listUseCase *shoppinglist.ListShoppingListsUseCase,
	markPurchasedUseCase *shoppinglist.MarkPurchasedUseCase,
	updateStatusUseCase *shoppinglist.UpdateStatusUseCase,
) *ShoppingListController {
	return &ShoppingListController{
		generateUseCase:      generateUseCase,
		getUseCase:           getUseCase,
		listUseCase:          listUseCase,
		markPurchasedUseCase: markPurchasedUseCase,
		updateStatusUseCase:  updateStatusUseCase,
	}
}

// Generate handles POST /shopping-lists/generate requests.
// The body is optional.
func (c *ShoppingListController) Generate(ctx *gin.Context) {
	userID, ok := requireUser(ctx)
	if !ok {
		return
	}

	var req dto.GenerateShoppingListRequest
	if ctx.Request.ContentLength > 0 {
		if err := ctx.ShouldBindJSON(&req); err != nil {
			badRequest(ctx, "Invalid request body", err)
			return
		}
	}

	output, err := c.generateUseCase.Execute(ctx.Request.Context(), shoppinglist.GenerateShoppingListInput{
		UserID: userID,
		Name:   req.Name,
	})
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.GeneratedShoppingListResponse{
		ShoppingListResponse: dto.ToShoppingListResponse(output.List),
		SuggestedTotalCost:   output.SuggestedTotalCost,
		Suggestions:          output.Suggestions,
	})
}

// List handles GET /shopping-lists requests.
func (c *ShoppingListController) List(ctx *gin.Context) {
	userID, ok := requireUser(ctx)
	if !ok {
		return
	}

	output, err := c.listUseCase.Execute(ctx.Request.Context(), shoppinglist.ListShoppingListsInput{UserID: userID})
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToShoppingListListResponse(output.Lists))
}

// Get handles GET /shopping-lists/:id requests.
func (c *ShoppingListController) Get(ctx *gin.Context) {
	userID, ok := requireUser(ctx)
	if !ok {
		return
	}
	listID, ok := parseIDParam(ctx, "id", "shopping list")
	if !ok {
		return
	}

	output, err := c.getUseCase.Execute(ctx.Request.Context(), shoppinglist.GetShoppingListInput{
		ListID: listID,
		UserID: userID,
	})
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToShoppingListResponse(output.List))
}

// MarkPurchased handles POST /shopping-lists/:id/purchase requests.
func (c *ShoppingListController) MarkPurchased(ctx *gin.Context) {
	userID, ok := requireUser(ctx)
	if !ok {
		return
	}
	listID, ok := parseIDParam(ctx, "id", "shopping list")
	if !ok {
		return
	}

	var req dto.MarkPurchasedRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, "Invalid request body", err)
		return
	}

	itemIDs := make([]uuid.UUID, 0, len(req.ItemIDs))
	for _, raw := range req.ItemIDs {
		id, err := uuid.Parse(raw)
		if err != nil {
			badRequest(ctx, "Invalid item ID format", err)
			return
		}
		itemIDs = append(itemIDs, id)
	}

	output, err := c.markPurchasedUseCase.Execute(ctx.Request.Context(), shoppinglist.MarkPurchasedInput{
		ListID:  listID,
		UserID:  userID,
		ItemIDs: itemIDs,
	})
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToShoppingListResponse(output.List))
}

// UpdateStatus handles PATCH /shopping-lists/:id/status requests.
func (c *ShoppingListController) UpdateStatus(ctx *gin.Context) {
	userID, ok := requireUser(ctx)
	if !ok {
		return
	}
	listID, ok := parseIDParam(ctx, "id", "shopping list")
	if !ok {
		return
	}

	var req dto.UpdateShoppingListStatusRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, "Invalid request body", err)
		return
	}

	output, err := c.updateStatusUseCase.Execute(ctx.Request.Context(), shoppinglist.UpdateStatusInput{
		ListID: listID,
		UserID: userID,
		Status: entity.ShoppingListStatus(strings.TrimSpace(req.Status)),
	})
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToShoppingListResponse(output.List))
}
