package dto

import (
	"encoding/json"
	"time"

	"github.com/spend-smart/backend/internal/domain/entity"
)

// ReceiptResponse represents a receipt in API responses.
// Payload holds the extraction output on success and a diagnostic on failure.
type ReceiptResponse struct {
	ID          string          `json:"id"`
	Platform    string          `json:"platform"`
	Status      string          `json:"status"`
	TotalAmount *string         `json:"total_amount"`
	Payload     json.RawMessage `json:"payload,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// ReceiptDetailResponse is a receipt with its line items.
type ReceiptDetailResponse struct {
	ReceiptResponse
	Items []LineItemResponse `json:"items"`
}

// ReceiptListResponse represents a page of receipts.
type ReceiptListResponse struct {
	Receipts   []ReceiptResponse  `json:"receipts"`
	Pagination PaginationResponse `json:"pagination"`
}

// ToReceiptResponse converts a domain Receipt entity to a ReceiptResponse DTO.
func ToReceiptResponse(r *entity.Receipt) ReceiptResponse {
	response := ReceiptResponse{
		ID:          r.ID.String(),
		Platform:    r.Platform,
		Status:      string(r.Status),
		TotalAmount: optionalMoney(r.TotalAmount),
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
	if r.RawPayload != "" && json.Valid([]byte(r.RawPayload)) {
		response.Payload = json.RawMessage(r.RawPayload)
	}
	return response
}

// ToReceiptDetailResponse converts a receipt with its items.
func ToReceiptDetailResponse(r *entity.ReceiptWithItems) ReceiptDetailResponse {
	return ReceiptDetailResponse{
		ReceiptResponse: ToReceiptResponse(r.Receipt),
		Items:           ToLineItemResponses(r.Items),
	}
}

// ToReceiptListResponse converts a page of receipts.
func ToReceiptListResponse(receipts []*entity.Receipt, total int64, limit, offset int) ReceiptListResponse {
	response := ReceiptListResponse{
		Receipts:   make([]ReceiptResponse, 0, len(receipts)),
		Pagination: PaginationResponse{Total: total, Limit: limit, Offset: offset},
	}
	for _, r := range receipts {
		response.Receipts = append(response.Receipts, ToReceiptResponse(r))
	}
	return response
}
