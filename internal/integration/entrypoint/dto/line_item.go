package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/spend-smart/backend/internal/domain/entity"
)

// CreateLineItemRequest represents the request body for direct line item entry.
type CreateLineItemRequest struct {
	Name       string           `json:"name" binding:"required"`
	Price      *decimal.Decimal `json:"price" binding:"required"`
	Quantity   *decimal.Decimal `json:"quantity" binding:"required"`
	Unit       string           `json:"unit,omitempty"`
	Platform   string           `json:"platform,omitempty"`
	CategoryID *string          `json:"category_id,omitempty"`
}

// UpdateLineItemCategoryRequest represents the request body for reassigning a category.
// A null category_id assigns the default category.
type UpdateLineItemCategoryRequest struct {
	CategoryID *string `json:"category_id"`
}

// LineItemResponse represents a line item in API responses.
type LineItemResponse struct {
	ID           string    `json:"id"`
	ReceiptID    *string   `json:"receipt_id"`
	Name         string    `json:"name"`
	Price        string    `json:"price"`
	Quantity     string    `json:"quantity"`
	Unit         string    `json:"unit"`
	TotalPrice   string    `json:"total_price"`
	Platform     string    `json:"platform"`
	CategoryID   *string   `json:"category_id"`
	CategoryName string    `json:"category_name"`
	CreatedAt    time.Time `json:"created_at"`
}

// LineItemListResponse represents a page of line items.
type LineItemListResponse struct {
	Items      []LineItemResponse `json:"items"`
	Pagination PaginationResponse `json:"pagination"`
}

// ToLineItemResponse converts a line item with its category to a LineItemResponse DTO.
func ToLineItemResponse(item *entity.LineItemWithCategory) LineItemResponse {
	return LineItemResponse{
		ID:           item.Item.ID.String(),
		ReceiptID:    optionalID(item.Item.ReceiptID),
		Name:         item.Item.Name,
		Price:        Money(item.Item.Price),
		Quantity:     item.Item.Quantity.String(),
		Unit:         item.Item.Unit,
		TotalPrice:   Money(item.Item.TotalPrice()),
		Platform:     item.Item.Platform,
		CategoryID:   optionalID(item.Item.CategoryID),
		CategoryName: item.CategoryName(),
		CreatedAt:    item.Item.CreatedAt,
	}
}

// ToLineItemResponses converts a slice of line items.
func ToLineItemResponses(items []*entity.LineItemWithCategory) []LineItemResponse {
	responses := make([]LineItemResponse, 0, len(items))
	for _, item := range items {
		responses = append(responses, ToLineItemResponse(item))
	}
	return responses
}
