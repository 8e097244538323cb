// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SendEmailInput represents the input for sending an email.
type SendEmailInput struct {
	To      string
	Name    string
	Subject string
	HTML    string
	Text    string

	// Category tags the message for filtering at the provider. Optional.
	Category string
}

// SendEmailResult represents the result of sending an email.
type SendEmailResult struct {
	ResendID string
}

// EmailSender defines the interface for sending emails via an external provider.
type EmailSender interface {
	// Send sends an email via the email provider (e.g., Resend).
	Send(ctx context.Context, input SendEmailInput) (*SendEmailResult, error)
}

// BudgetAlert holds everything needed to tell a user their budget threshold was reached.
type BudgetAlert struct {
	BudgetID       uuid.UUID
	RecipientEmail string
	RecipientName  string
	Period         string
	Currency       string
	CurrencySymbol string
	Amount         decimal.Decimal
	Spent          decimal.Decimal
	Threshold      decimal.Decimal
	Remaining      decimal.Decimal
}

// BudgetAlertNotifier delivers budget threshold alerts.
type BudgetAlertNotifier interface {
	SendBudgetAlert(ctx context.Context, alert BudgetAlert) error
}
