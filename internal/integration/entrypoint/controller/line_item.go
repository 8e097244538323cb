package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/spend-smart/backend/internal/application/usecase/lineitem"
	"github.com/spend-smart/backend/internal/integration/entrypoint/dto"
)

// LineItemController handles line item endpoints.
type LineItemController struct {
	createUseCase         *lineitem.CreateLineItemUseCase
	listUseCase           *lineitem.ListLineItemsUseCase
	updateCategoryUseCase *lineitem.UpdateLineItemCategoryUseCase
}

// NewLineItemController creates a new line item controller instance.
func NewLineItemController(
	createUseCase *lineitem.CreateLineItemUseCase,
	listUseCase *lineitem.ListLineItemsUseCase,
	updateCategoryUseCase *lineitem.UpdateLineItemCategoryUseCase,
) *LineItemController {
	return &LineItemController{
		createUseCase:         createUseCase,
		listUseCase:           listUseCase,
		updateCategoryUseCase: updateCategoryUseCase,
	}
}

// Create handles POST /line-items requests.
func (c *LineItemController) Create(ctx *gin.Context) {
	userID, ok := requireUser(ctx)
	if !ok {
		return
	}

	var req dto.CreateLineItemRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, "Invalid request body", err)
		return
	}

	categoryID, ok := parseOptionalID(ctx, req.CategoryID)
	if !ok {
		return
	}

	output, err := c.createUseCase.Execute(ctx.Request.Context(), lineitem.CreateLineItemInput{
		UserID:     userID,
		Name:       req.Name,
		Price:      *req.Price,
		Quantity:   *req.Quantity,
		Unit:       req.Unit,
		Platform:   req.Platform,
		CategoryID: categoryID,
	})
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToLineItemResponse(output.Item))
}

// List handles GET /line-items requests.
func (c *LineItemController) List(ctx *gin.Context) {
	userID, ok := requireUser(ctx)
	if !ok {
		return
	}

	limit, offset := parsePagination(ctx)
	output, err := c.listUseCase.Execute(ctx.Request.Context(), lineitem.ListLineItemsInput{
		UserID: userID,
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.LineItemListResponse{
		Items:      dto.ToLineItemResponses(output.Items),
		Pagination: dto.PaginationResponse{Total: output.Total, Limit: output.Limit, Offset: output.Offset},
	})
}

// UpdateCategory handles PATCH /line-items/:id/category requests.
func (c *LineItemController) UpdateCategory(ctx *gin.Context) {
	userID, ok := requireUser(ctx)
	if !ok {
		return
	}
	itemID, ok := parseIDParam(ctx, "id", "line item")
	if !ok {
		return
	}

	var req dto.UpdateLineItemCategoryRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, "Invalid request body", err)
		return
	}

	categoryID, ok := parseOptionalID(ctx, req.CategoryID)
	if !ok {
		return
	}

	output, err := c.updateCategoryUseCase.Execute(ctx.Request.Context(), lineitem.UpdateLineItemCategoryInput{
		ItemID:     itemID,
		UserID:     userID,
		CategoryID: categoryID,
	})
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToLineItemResponse(output.Item))
}

func parseOptionalID(ctx *gin.Context, raw *string) (*uuid.UUID, bool) {
	if raw == nil || *raw == "" {
		return nil, true
	}
	id, err := uuid.Parse(*raw)
	if err != nil {
		badRequest(ctx, "Invalid category ID format", err)
		return nil, false
	}
	return &id, true
}
