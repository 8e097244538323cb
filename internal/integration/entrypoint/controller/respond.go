package controller

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	domainerror "github.com/spend-smart/backend/internal/domain/error"
	"github.com/spend-smart/backend/internal/integration/entrypoint/dto"
	"github.com/spend-smart/backend/internal/integration/entrypoint/middleware"
)

// requireUser returns the authenticated user or writes a 401.
func requireUser(ctx *gin.Context) (uuid.UUID, bool) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "User not authenticated",
			Code:  string(domainerror.ErrCodeMissingToken),
		})
		return uuid.Nil, false
	}
	return userID, true
}

// parseIDParam parses a UUID path parameter or writes a 400.
func parseIDParam(ctx *gin.Context, name, label string) (uuid.UUID, bool) {
	id, err := uuid.Parse(ctx.Param(name))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid " + label + " ID format",
		})
		return uuid.Nil, false
	}
	return id, true
}

// parsePagination reads limit and offset query parameters. Invalid values are
// ignored and left to the use case defaults.
func parsePagination(ctx *gin.Context) (limit, offset int) {
	if v := ctx.Query("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			limit = n
		}
	}
	if v := ctx.Query("offset"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			offset = n
		}
	}
	return limit, offset
}

func badRequest(ctx *gin.Context, message string, err error) {
	response := dto.ErrorResponse{Error: message}
	if err != nil {
		response.Details = err.Error()
	}
	ctx.JSON(http.StatusBadRequest, response)
}

// respondError maps a coded domain error to its HTTP status.
func respondError(ctx *gin.Context, err error) {
	status, code, message := classify(err)
	if status >= http.StatusInternalServerError {
		slog.Default().Error("request failed",
			"method", ctx.Request.Method,
			"path", ctx.FullPath(),
			"error", err,
		)
	}
	ctx.JSON(status, dto.ErrorResponse{Error: message, Code: code})
}

func classify(err error) (int, string, string) {
	var (
		receiptErr  *domainerror.ReceiptError
		itemErr     *domainerror.LineItemError
		budgetErr   *domainerror.BudgetError
		listErr     *domainerror.ShoppingListError
		categoryErr *domainerror.CategoryError
	)

	switch {
	case errors.As(err, &receiptErr):
		return receiptStatus(receiptErr.Code), string(receiptErr.Code), receiptErr.Message
	case errors.As(err, &itemErr):
		return lineItemStatus(itemErr.Code), string(itemErr.Code), itemErr.Message
	case errors.As(err, &budgetErr):
		return budgetStatus(budgetErr.Code), string(budgetErr.Code), budgetErr.Message
	case errors.As(err, &listErr):
		return shoppingListStatus(listErr.Code), string(listErr.Code), listErr.Message
	case errors.As(err, &categoryErr):
		return categoryStatus(categoryErr.Code), string(categoryErr.Code), categoryErr.Message
	}
	return http.StatusInternalServerError, "", "An internal error occurred"
}

func receiptStatus(code domainerror.ReceiptErrorCode) int {
	switch code {
	case domainerror.ErrCodeInvalidImageFormat,
		domainerror.ErrCodePlatformRequired,
		domainerror.ErrCodeEmptyImage:
		return http.StatusBadRequest
	case domainerror.ErrCodeImageTooLarge:
		return http.StatusRequestEntityTooLarge
	case domainerror.ErrCodeReceiptNotFound:
		return http.StatusNotFound
	case domainerror.ErrCodeReceiptNotPending,
		domainerror.ErrCodeReceiptStateConflict:
		return http.StatusConflict
	case domainerror.ErrCodeReceiptDispatchFailed,
		domainerror.ErrCodeReceiptStorageFailed:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func lineItemStatus(code domainerror.LineItemErrorCode) int {
	switch code {
	case domainerror.ErrCodeInvalidPrice,
		domainerror.ErrCodeInvalidQuantity,
		domainerror.ErrCodeItemNameRequired,
		domainerror.ErrCodeItemCategory:
		return http.StatusBadRequest
	case domainerror.ErrCodeLineItemNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func budgetStatus(code domainerror.BudgetErrorCode) int {
	switch code {
	case domainerror.ErrCodeInvalidBudgetAmount,
		domainerror.ErrCodeInvalidThreshold,
		domainerror.ErrCodeInvalidBudgetPeriod,
		domainerror.ErrCodeInvalidCurrency:
		return http.StatusBadRequest
	case domainerror.ErrCodeBudgetNotFound,
		domainerror.ErrCodeNoBudget:
		return http.StatusNotFound
	case domainerror.ErrCodeBudgetAlreadyExists,
		domainerror.ErrCodeSweepInProgress:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func shoppingListStatus(code domainerror.ShoppingListErrorCode) int {
	switch code {
	case domainerror.ErrCodeInvalidListStatus,
		domainerror.ErrCodeNoItemsSelected,
		domainerror.ErrCodeItemsNotInList,
		domainerror.ErrCodeListNameTooLong:
		return http.StatusBadRequest
	case domainerror.ErrCodeListNotFullyPurchased,
		domainerror.ErrCodeListFullyPurchased:
		return http.StatusConflict
	case domainerror.ErrCodeShoppingListNotFound:
		return http.StatusNotFound
	case domainerror.ErrCodeGenerationUnavailable:
		return http.StatusServiceUnavailable
	case domainerror.ErrCodeGenerationMalformed:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func categoryStatus(code domainerror.CategoryErrorCode) int {
	switch code {
	case domainerror.ErrCodeCategoryNameTooLong,
		domainerror.ErrCodeMissingCategoryFields:
		return http.StatusBadRequest
	case domainerror.ErrCodeCategoryNotFound:
		return http.StatusNotFound
	case domainerror.ErrCodeCategoryNameExists:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
