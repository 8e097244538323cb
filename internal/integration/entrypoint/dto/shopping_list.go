package dto

import (
	"time"

	"github.com/spend-smart/backend/internal/domain/entity"
)

// GenerateShoppingListRequest represents the request body for list generation.
type GenerateShoppingListRequest struct {
	Name string `json:"name,omitempty"`
}

// MarkPurchasedRequest represents the request body for marking items purchased.
type MarkPurchasedRequest struct {
	ItemIDs []string `json:"item_ids" binding:"required"`
}

// UpdateShoppingListStatusRequest represents the request body for a status change.
type UpdateShoppingListStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// ShoppingListItemResponse represents a shopping list item in API responses.
type ShoppingListItemResponse struct {
	ID                string     `json:"id"`
	Name              string     `json:"name"`
	CategoryID        *string    `json:"category_id"`
	CategoryName      string     `json:"category_name"`
	Quantity          string     `json:"quantity"`
	Unit              string     `json:"unit"`
	EstimatedPrice    *string    `json:"estimated_price"`
	Priority          string     `json:"priority"`
	IsPurchased       bool       `json:"is_purchased"`
	PurchaseFrequency int        `json:"purchase_frequency"`
	LastPurchaseDate  *time.Time `json:"last_purchase_date"`
	Notes             string     `json:"notes"`
}

// ShoppingListResponse represents a shopping list with derived totals.
type ShoppingListResponse struct {
	ID                 string                     `json:"id"`
	Name               string                     `json:"name"`
	Status             string                     `json:"status"`
	BudgetID           *string                    `json:"budget_id"`
	Notes              string                     `json:"notes"`
	TotalEstimatedCost string                     `json:"total_estimated_cost"`
	TotalItems         int                        `json:"total_items"`
	CompletedItems     int                        `json:"completed_items"`
	Items              []ShoppingListItemResponse `json:"items"`
	CreatedAt          time.Time                  `json:"created_at"`
	UpdatedAt          time.Time                  `json:"updated_at"`
}

// GeneratedShoppingListResponse adds the generator's own estimate and tips.
type GeneratedShoppingListResponse struct {
	ShoppingListResponse
	SuggestedTotalCost string   `json:"suggested_total_cost"`
	Suggestions        []string `json:"suggestions"`
}

// ShoppingListListResponse represents the response for listing shopping lists.
type ShoppingListListResponse struct {
	ShoppingLists []ShoppingListResponse `json:"shopping_lists"`
}

// ToShoppingListResponse converts a domain ShoppingList entity to a ShoppingListResponse DTO.
func ToShoppingListResponse(list *entity.ShoppingList) ShoppingListResponse {
	response := ShoppingListResponse{
		ID:                 list.ID.String(),
		Name:               list.Name,
		Status:             string(list.Status),
		BudgetID:           optionalID(list.BudgetID),
		Notes:              list.Notes,
		TotalEstimatedCost: Money(list.TotalEstimatedCost()),
		TotalItems:         len(list.Items),
		CompletedItems:     list.CompletedItems(),
		Items:              make([]ShoppingListItemResponse, 0, len(list.Items)),
		CreatedAt:          list.CreatedAt,
		UpdatedAt:          list.UpdatedAt,
	}
	for _, item := range list.Items {
		itemResponse := ShoppingListItemResponse{
			ID:                item.ID.String(),
			Name:              item.Name,
			CategoryID:        optionalID(item.CategoryID),
			Quantity:          item.Quantity.String(),
			Unit:              item.Unit,
			EstimatedPrice:    optionalMoney(item.EstimatedPrice),
			Priority:          string(item.Priority),
			IsPurchased:       item.IsPurchased,
			PurchaseFrequency: item.PurchaseFrequency,
			LastPurchaseDate:  item.LastPurchaseDate,
			Notes:             item.Notes,
		}
		if item.Category != nil {
			itemResponse.CategoryName = item.Category.Name
		}
		response.Items = append(response.Items, itemResponse)
	}
	return response
}

// ToShoppingListListResponse converts lists to a ShoppingListListResponse.
func ToShoppingListListResponse(lists []*entity.ShoppingList) ShoppingListListResponse {
	response := ShoppingListListResponse{ShoppingLists: make([]ShoppingListResponse, 0, len(lists))}
	for _, list := range lists {
		response.ShoppingLists = append(response.ShoppingLists, ToShoppingListResponse(list))
	}
	return response
}
