// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import "context"

// PromptKind selects the prompt template sent to the extraction service.
type PromptKind string

const (
	// PromptReceiptToItems turns a receipt image into line items.
	PromptReceiptToItems PromptKind = "receipt-to-items"

	// PromptHistoryToShoppingList turns a purchase history summary into a shopping list.
	PromptHistoryToShoppingList PromptKind = "history-to-shoppinglist"
)

// ExtractionRequest carries either an image or a textual context, plus the
// category vocabulary the response must stick to.
type ExtractionRequest struct {
	Kind             PromptKind
	Image            []byte
	ImageMIMEType    string
	Context          string
	Categories       []string
	FallbackCategory string
}

// RawExtraction is the unwrapped JSON text returned by the service.
// The client only guarantees it is a syntactically valid JSON object.
type RawExtraction struct {
	Text  string
	Model string
}

// ExtractionClient defines the interface to the external vision/language model.
// Implementations return *domainerror.ExtractionError on failure and never retry.
type ExtractionClient interface {
	Extract(ctx context.Context, req ExtractionRequest) (*RawExtraction, error)
}
