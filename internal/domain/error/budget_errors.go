// Package error defines domain-specific errors for the SpendSmart application.
package error

import "errors"

// Budget domain errors.
var (
	// ErrBudgetNotFound is returned when a budget is not found or belongs to another user.
	ErrBudgetNotFound = errors.New("budget not found")

	// ErrBudgetAlreadyExists is returned when the user already has a budget for the period.
	ErrBudgetAlreadyExists = errors.New("budget already exists for this period")

	// ErrInvalidBudgetAmount is returned when the amount is not strictly positive.
	ErrInvalidBudgetAmount = errors.New("budget amount must be greater than zero")

	// ErrInvalidThreshold is returned when the notification threshold is not strictly positive.
	ErrInvalidThreshold = errors.New("notification threshold must be greater than zero")

	// ErrInvalidBudgetPeriod is returned when the period is not weekly or monthly.
	ErrInvalidBudgetPeriod = errors.New("invalid budget period")

	// ErrInvalidCurrency is returned when the currency is not supported.
	ErrInvalidCurrency = errors.New("invalid currency")

	// ErrNoBudget is returned when analytics are requested by a user with no budget.
	ErrNoBudget = errors.New("no budget configured")

	// ErrSweepInProgress is returned when another sweep holds the lock.
	ErrSweepInProgress = errors.New("budget sweep already in progress")
)

// BudgetErrorCode defines error codes for budget errors.
// Format: BGT-XXYYYY where XX is category and YYYY is specific error.
type BudgetErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeInvalidBudgetAmount BudgetErrorCode = "BGT-010001"
	ErrCodeInvalidThreshold    BudgetErrorCode = "BGT-010002"
	ErrCodeInvalidBudgetPeriod BudgetErrorCode = "BGT-010003"
	ErrCodeInvalidCurrency     BudgetErrorCode = "BGT-010004"

	// Lookup errors (02XXXX)
	ErrCodeBudgetNotFound      BudgetErrorCode = "BGT-020001"
	ErrCodeBudgetAlreadyExists BudgetErrorCode = "BGT-020002"
	ErrCodeNoBudget            BudgetErrorCode = "BGT-020003"

	// Sweep errors (03XXXX)
	ErrCodeSweepInProgress BudgetErrorCode = "BGT-030001"
)

// BudgetError represents a budget error with code and message.
type BudgetError struct {
	Code    BudgetErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *BudgetError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *BudgetError) Unwrap() error {
	return e.Err
}

// NewBudgetError creates a new BudgetError with the given code and message.
func NewBudgetError(code BudgetErrorCode, message string, err error) *BudgetError {
	return &BudgetError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
