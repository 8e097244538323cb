// Package error defines domain-specific errors for the SpendSmart application.
package error

import "errors"

// Extraction domain errors.
var (
	// ErrExtractionTransport is returned when the extraction service could not be reached in time.
	ErrExtractionTransport = errors.New("extraction service unreachable")

	// ErrExtractionProvider is returned when the extraction service answered with an error.
	ErrExtractionProvider = errors.New("extraction service returned an error")

	// ErrExtractionMalformed is returned when the response is not the expected JSON document.
	ErrExtractionMalformed = errors.New("extraction response is malformed")
)

// ExtractionErrorKind distinguishes the failure modes of the extraction service.
type ExtractionErrorKind string

const (
	ExtractionErrorTransport ExtractionErrorKind = "transport"
	ExtractionErrorProvider  ExtractionErrorKind = "provider"
	ExtractionErrorMalformed ExtractionErrorKind = "malformed"
)

// ExtractionErrorCode defines error codes for extraction errors.
// Format: EXT-XXYYYY where XX is category and YYYY is specific error.
type ExtractionErrorCode string

const (
	ErrCodeExtractionTimeout   ExtractionErrorCode = "EXT-010001"
	ErrCodeExtractionTransport ExtractionErrorCode = "EXT-010002"
	ErrCodeExtractionProvider  ExtractionErrorCode = "EXT-020001"
	ErrCodeExtractionRejected  ExtractionErrorCode = "EXT-020002"
	ErrCodeExtractionMalformed ExtractionErrorCode = "EXT-030001"
	ErrCodeExtractionSchema    ExtractionErrorCode = "EXT-030002"
)

// ExtractionError represents a classified extraction failure.
type ExtractionError struct {
	Kind    ExtractionErrorKind
	Code    ExtractionErrorCode
	Message string
	Raw     string // Response text, when one was received
	Err     error
}

// Error implements the error interface.
func (e *ExtractionError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *ExtractionError) Unwrap() error {
	return e.Err
}

// Retryable reports whether retrying the same request may succeed.
// Transport and provider failures are retryable; malformed content is not.
func (e *ExtractionError) Retryable() bool {
	return e.Kind == ExtractionErrorTransport || e.Kind == ExtractionErrorProvider
}

// NewExtractionError creates a new ExtractionError.
func NewExtractionError(kind ExtractionErrorKind, code ExtractionErrorCode, message string, err error) *ExtractionError {
	return &ExtractionError{
		Kind:    kind,
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// NewMalformedExtractionError creates a non-retryable error carrying the offending response text.
func NewMalformedExtractionError(code ExtractionErrorCode, message, raw string, err error) *ExtractionError {
	return &ExtractionError{
		Kind:    ExtractionErrorMalformed,
		Code:    code,
		Message: message,
		Raw:     raw,
		Err:     err,
	}
}

// IsRetryableExtraction reports whether err is a retryable extraction failure.
func IsRetryableExtraction(err error) bool {
	var extErr *ExtractionError
	if errors.As(err, &extErr) {
		return extErr.Retryable()
	}
	return false
}
