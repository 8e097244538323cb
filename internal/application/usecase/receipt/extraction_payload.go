package receipt

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"
)

// receiptPayload is the document the extraction service must return for a receipt.
// Pointer fields distinguish a missing key from a zero value.
type receiptPayload struct {
	Platform    *string               `json:"platform"`
	TotalAmount *decimal.Decimal      `json:"total_amount"`
	Items       *[]receiptPayloadItem `json:"items"`
}

type receiptPayloadItem struct {
	Name       *string          `json:"name"`
	Quantity   *decimal.Decimal `json:"quantity"`
	UnitPrice  *decimal.Decimal `json:"unit_price"`
	TotalPrice *decimal.Decimal `json:"total_price"`
	Category   *string          `json:"category"`
}

// extractedItem is a validated receipt line.
type extractedItem struct {
	Name       string
	Quantity   decimal.Decimal
	UnitPrice  decimal.Decimal
	TotalPrice decimal.Decimal
	Category   string
}

// extractedReceipt is a validated receipt payload.
type extractedReceipt struct {
	Platform    string
	TotalAmount decimal.Decimal
	Items       []extractedItem
}

// decodeReceiptPayload strictly decodes text. Unknown fields, missing fields,
// trailing data and non-positive prices or quantities reject the whole payload.
func decodeReceiptPayload(text string) (*extractedReceipt, error) {
	dec := json.NewDecoder(strings.NewReader(text))
	dec.DisallowUnknownFields()

	var payload receiptPayload
	if err := dec.Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode receipt payload: %w", err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, errors.New("decode receipt payload: unexpected data after document")
	}

	if payload.TotalAmount == nil {
		return nil, errors.New("total_amount is required")
	}
	if payload.TotalAmount.IsNegative() {
		return nil, errors.New("total_amount must not be negative")
	}
	if payload.Items == nil {
		return nil, errors.New("items is required")
	}

	result := &extractedReceipt{
		TotalAmount: *payload.TotalAmount,
		Items:       make([]extractedItem, 0, len(*payload.Items)),
	}
	if payload.Platform != nil {
		result.Platform = strings.TrimSpace(*payload.Platform)
	}

	for i, item := range *payload.Items {
		parsed, err := validateItem(item)
		if err != nil {
			return nil, fmt.Errorf("items[%d]: %w", i, err)
		}
		result.Items = append(result.Items, parsed)
	}

	return result, nil
}

func validateItem(item receiptPayloadItem) (extractedItem, error) {
	switch {
	case item.Name == nil || strings.TrimSpace(*item.Name) == "":
		return extractedItem{}, errors.New("name is required")
	case item.Quantity == nil:
		return extractedItem{}, errors.New("quantity is required")
	case item.UnitPrice == nil:
		return extractedItem{}, errors.New("unit_price is required")
	case item.TotalPrice == nil:
		return extractedItem{}, errors.New("total_price is required")
	case item.Category == nil:
		return extractedItem{}, errors.New("category is required")
	}

	if !item.Quantity.IsPositive() {
		return extractedItem{}, errors.New("quantity must be greater than zero")
	}
	if !item.UnitPrice.IsPositive() {
		return extractedItem{}, errors.New("unit_price must be greater than zero")
	}

	return extractedItem{
		Name:       strings.TrimSpace(*item.Name),
		Quantity:   *item.Quantity,
		UnitPrice:  *item.UnitPrice,
		TotalPrice: *item.TotalPrice,
		Category:   strings.TrimSpace(*item.Category),
	}, nil
}

// failurePayload is stored on a failed receipt for later inspection.
type failurePayload struct {
	Error string `json:"error"`
	Kind  string `json:"kind"`
	Code  string `json:"code,omitempty"`
	Raw   string `json:"raw,omitempty"`
}

func (p failurePayload) encode() string {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(p); err != nil {
		return fmt.Sprintf(`{"error":%q,"kind":%q}`, p.Error, p.Kind)
	}
	return strings.TrimSpace(buf.String())
}
