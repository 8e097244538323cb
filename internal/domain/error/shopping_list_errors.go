// Package error defines domain-specific errors for the SpendSmart application.
package error

import "errors"

// Shopping list domain errors.
var (
	// ErrShoppingListNotFound is returned when a list is not found or belongs to another user.
	ErrShoppingListNotFound = errors.New("shopping list not found")

	// ErrInvalidListStatus is returned when the requested status is unknown.
	ErrInvalidListStatus = errors.New("invalid shopping list status")

	// ErrListNotFullyPurchased is returned when completing a list that still has open items.
	ErrListNotFullyPurchased = errors.New("shopping list still has unpurchased items")

	// ErrListFullyPurchased is returned when moving a fully purchased list back to an open status.
	ErrListFullyPurchased = errors.New("shopping list has every item purchased")

	// ErrNoItemsSelected is returned when a purchase request names no items.
	ErrNoItemsSelected = errors.New("no items selected")

	// ErrItemsNotInList is returned when a purchase request names items of another list.
	ErrItemsNotInList = errors.New("items do not belong to this shopping list")

	// ErrListNameTooLong is returned when a list name exceeds the maximum length.
	ErrListNameTooLong = errors.New("shopping list name too long")

	// ErrGenerationFailed is returned when a list could not be generated.
	ErrGenerationFailed = errors.New("failed to generate shopping list")
)

// ShoppingListErrorCode defines error codes for shopping list errors.
// Format: SHL-XXYYYY where XX is category and YYYY is specific error.
type ShoppingListErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeInvalidListStatus     ShoppingListErrorCode = "SHL-010001"
	ErrCodeNoItemsSelected       ShoppingListErrorCode = "SHL-010002"
	ErrCodeItemsNotInList        ShoppingListErrorCode = "SHL-010003"
	ErrCodeListNotFullyPurchased ShoppingListErrorCode = "SHL-010004"
	ErrCodeListNameTooLong       ShoppingListErrorCode = "SHL-010005"
	ErrCodeListFullyPurchased    ShoppingListErrorCode = "SHL-010006"

	// Lookup errors (02XXXX)
	ErrCodeShoppingListNotFound ShoppingListErrorCode = "SHL-020001"

	// Generation errors (03XXXX)
	ErrCodeGenerationUnavailable ShoppingListErrorCode = "SHL-030001"
	ErrCodeGenerationMalformed   ShoppingListErrorCode = "SHL-030002"
	ErrCodeGenerationPersistence ShoppingListErrorCode = "SHL-030003"
)

// ShoppingListError represents a shopping list error with code and message.
type ShoppingListError struct {
	Code    ShoppingListErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *ShoppingListError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *ShoppingListError) Unwrap() error {
	return e.Err
}

// NewShoppingListError creates a new ShoppingListError with the given code and message.
func NewShoppingListError(code ShoppingListErrorCode, message string, err error) *ShoppingListError {
	return &ShoppingListError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
