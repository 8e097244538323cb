package shoppinglist

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/spend-smart/backend/internal/domain/entity"
)

type recommendationPayload struct {
	ListName           *string                      `json:"list_name"`
	Items              *[]recommendationPayloadItem `json:"items"`
	TotalEstimatedCost *decimal.Decimal             `json:"total_estimated_cost"`
	Suggestions        []string                     `json:"suggestions"`
}

type recommendationPayloadItem struct {
	Name           *string          `json:"name"`
	Category       *string          `json:"category"`
	Quantity       *decimal.Decimal `json:"quantity"`
	Unit           *string          `json:"unit"`
	EstimatedPrice *decimal.Decimal `json:"estimated_price"`
	Priority       *string          `json:"priority"`
	Notes          *string          `json:"notes"`
}

type recommendedItem struct {
	Name           string
	Category       string
	Quantity       decimal.Decimal
	Unit           string
	EstimatedPrice decimal.Decimal
	Priority       entity.Priority
	Notes          string
}

type recommendation struct {
	ListName           string
	Items              []recommendedItem
	TotalEstimatedCost decimal.Decimal
	Suggestions        []string
}

// decodeRecommendation strictly decodes the generator's response.
func decodeRecommendation(text string) (*recommendation, error) {
	dec := json.NewDecoder(strings.NewReader(text))
	dec.DisallowUnknownFields()

	var payload recommendationPayload
	if err := dec.Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode recommendation: %w", err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, errors.New("decode recommendation: unexpected data after document")
	}

	switch {
	case payload.ListName == nil:
		return nil, errors.New("list_name is required")
	case payload.Items == nil:
		return nil, errors.New("items is required")
	case payload.TotalEstimatedCost == nil:
		return nil, errors.New("total_estimated_cost is required")
	}

	result := &recommendation{
		ListName:           strings.TrimSpace(*payload.ListName),
		Items:              make([]recommendedItem, 0, len(*payload.Items)),
		TotalEstimatedCost: *payload.TotalEstimatedCost,
	}
	for _, s := range payload.Suggestions {
		if s = strings.TrimSpace(s); s != "" {
			result.Suggestions = append(result.Suggestions, s)
		}
	}

	for i, item := range *payload.Items {
		parsed, err := validateRecommendedItem(item)
		if err != nil {
			return nil, fmt.Errorf("items[%d]: %w", i, err)
		}
		result.Items = append(result.Items, parsed)
	}
	return result, nil
}

func validateRecommendedItem(item recommendationPayloadItem) (recommendedItem, error) {
	switch {
	case item.Name == nil || strings.TrimSpace(*item.Name) == "":
		return recommendedItem{}, errors.New("name is required")
	case item.Category == nil || strings.TrimSpace(*item.Category) == "":
		return recommendedItem{}, errors.New("category is required")
	case item.Quantity == nil:
		return recommendedItem{}, errors.New("quantity is required")
	case item.EstimatedPrice == nil:
		return recommendedItem{}, errors.New("estimated_price is required")
	case item.Priority == nil:
		return recommendedItem{}, errors.New("priority is required")
	}

	if !item.Quantity.IsPositive() {
		return recommendedItem{}, errors.New("quantity must be greater than zero")
	}
	if item.EstimatedPrice.IsNegative() {
		return recommendedItem{}, errors.New("estimated_price must not be negative")
	}

	priority := entity.Priority(strings.ToLower(strings.TrimSpace(*item.Priority)))
	if !priority.IsValid() {
		return recommendedItem{}, fmt.Errorf("unknown priority %q", *item.Priority)
	}

	parsed := recommendedItem{
		Name:           strings.TrimSpace(*item.Name),
		Category:       strings.TrimSpace(*item.Category),
		Quantity:       *item.Quantity,
		EstimatedPrice: *item.EstimatedPrice,
		Priority:       priority,
	}
	if item.Unit != nil {
		parsed.Unit = strings.TrimSpace(*item.Unit)
	}
	if item.Notes != nil {
		parsed.Notes = strings.TrimSpace(*item.Notes)
	}
	return parsed, nil
}
