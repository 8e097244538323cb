// Package error defines domain-specific errors for the SpendSmart application.
package error

import "errors"

// Receipt domain errors.
var (
	// ErrReceiptNotFound is returned when a receipt is not found or belongs to another user.
	ErrReceiptNotFound = errors.New("receipt not found")

	// ErrReceiptNotPending is returned when processing is requested for a receipt that
	// another worker already claimed or that already reached a terminal state.
	ErrReceiptNotPending = errors.New("receipt is not pending")

	// ErrReceiptStateConflict is returned when a status transition lost a race.
	ErrReceiptStateConflict = errors.New("receipt status changed concurrently")

	// ErrInvalidImageFormat is returned when the uploaded file is not a supported image.
	ErrInvalidImageFormat = errors.New("invalid image format")

	// ErrEmptyImage is returned when the uploaded file has no content.
	ErrEmptyImage = errors.New("image is empty")

	// ErrImageTooLarge is returned when the uploaded file exceeds the configured size.
	ErrImageTooLarge = errors.New("image too large")

	// ErrPlatformRequired is returned when the platform label is missing.
	ErrPlatformRequired = errors.New("platform is required")

	// ErrReceiptDispatchFailed is returned when a receipt could not be handed to the processor.
	ErrReceiptDispatchFailed = errors.New("failed to dispatch receipt for processing")
)

// ReceiptErrorCode defines error codes for receipt errors.
// Format: RCP-XXYYYY where XX is category and YYYY is specific error.
type ReceiptErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeInvalidImageFormat ReceiptErrorCode = "RCP-010001"
	ErrCodePlatformRequired   ReceiptErrorCode = "RCP-010002"
	ErrCodeEmptyImage         ReceiptErrorCode = "RCP-010003"
	ErrCodeImageTooLarge      ReceiptErrorCode = "RCP-010004"

	// State errors (02XXXX)
	ErrCodeReceiptNotFound      ReceiptErrorCode = "RCP-020001"
	ErrCodeReceiptNotPending    ReceiptErrorCode = "RCP-020002"
	ErrCodeReceiptStateConflict ReceiptErrorCode = "RCP-020003"

	// Processing errors (03XXXX)
	ErrCodeReceiptDispatchFailed ReceiptErrorCode = "RCP-030001"
	ErrCodeReceiptStorageFailed  ReceiptErrorCode = "RCP-030002"
)

// ReceiptError represents a receipt error with code and message.
type ReceiptError struct {
	Code    ReceiptErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *ReceiptError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *ReceiptError) Unwrap() error {
	return e.Err
}

// NewReceiptError creates a new ReceiptError with the given code and message.
func NewReceiptError(code ReceiptErrorCode, message string, err error) *ReceiptError {
	return &ReceiptError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
