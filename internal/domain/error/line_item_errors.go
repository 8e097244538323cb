// Package error defines domain-specific errors for the SpendSmart application.
package error

import "errors"

// Line item domain errors.
var (
	// ErrLineItemNotFound is returned when a line item is not found or belongs to another user.
	ErrLineItemNotFound = errors.New("line item not found")

	// ErrInvalidPrice is returned when the price is not strictly positive.
	ErrInvalidPrice = errors.New("price must be greater than zero")

	// ErrInvalidQuantity is returned when the quantity is not strictly positive.
	ErrInvalidQuantity = errors.New("quantity must be greater than zero")

	// ErrItemNameRequired is returned when the item name is blank.
	ErrItemNameRequired = errors.New("item name is required")
)

// LineItemErrorCode defines error codes for line item errors.
// Format: ITM-XXYYYY where XX is category and YYYY is specific error.
type LineItemErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeInvalidPrice     LineItemErrorCode = "ITM-010001"
	ErrCodeInvalidQuantity  LineItemErrorCode = "ITM-010002"
	ErrCodeItemNameRequired LineItemErrorCode = "ITM-010003"
	ErrCodeItemCategory     LineItemErrorCode = "ITM-010004"

	// Lookup errors (02XXXX)
	ErrCodeLineItemNotFound LineItemErrorCode = "ITM-020001"
)

// LineItemError represents a line item error with code and message.
type LineItemError struct {
	Code    LineItemErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *LineItemError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *LineItemError) Unwrap() error {
	return e.Err
}

// NewLineItemError creates a new LineItemError with the given code and message.
func NewLineItemError(code LineItemErrorCode, message string, err error) *LineItemError {
	return &LineItemError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
