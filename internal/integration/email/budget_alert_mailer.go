// Package email provides email sending functionality via Resend.
package email

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/spend-smart/backend/internal/application/adapter"
	domainerror "github.com/spend-smart/backend/internal/domain/error"
	"github.com/spend-smart/backend/internal/integration/email/templates"
)

// BudgetAlertMailer renders budget alerts and hands them to an EmailSender.
type BudgetAlertMailer struct {
	sender     adapter.EmailSender
	renderer   *templates.Renderer
	appBaseURL string
}

// NewBudgetAlertMailer creates a new budget alert mailer.
func NewBudgetAlertMailer(sender adapter.EmailSender, renderer *templates.Renderer, appBaseURL string) *BudgetAlertMailer {
	return &BudgetAlertMailer{
		sender:     sender,
		renderer:   renderer,
		appBaseURL: appBaseURL,
	}
}

// SendBudgetAlert renders and sends one alert. Errors are *domainerror.EmailError.
func (m *BudgetAlertMailer) SendBudgetAlert(ctx context.Context, alert adapter.BudgetAlert) error {
	if alert.RecipientEmail == "" {
		return domainerror.NewEmailError(domainerror.ErrCodeRecipientMissing, "cannot send budget alert", domainerror.ErrRecipientMissing)
	}

	data := templates.BudgetAlertData{
		UserName:   alert.RecipientName,
		Period:     alert.Period,
		Amount:     formatMoney(alert.CurrencySymbol, alert.Amount),
		Spent:      formatMoney(alert.CurrencySymbol, alert.Spent),
		Threshold:  formatMoney(alert.CurrencySymbol, alert.Threshold),
		Remaining:  formatMoney(alert.CurrencySymbol, alert.Remaining),
		Overspent:  alert.Remaining.IsNegative(),
		AppBaseURL: m.appBaseURL,
	}

	html, text, err := m.renderer.Render(templates.BudgetAlertTemplate, data)
	if err != nil {
		return domainerror.NewEmailError(
			domainerror.ErrCodeTemplateRenderFailed,
			"failed to render budget alert",
			fmt.Errorf("%w: %w", domainerror.ErrTemplateRenderFailed, err),
		)
	}

	_, err = m.sender.Send(ctx, adapter.SendEmailInput{
		To:       alert.RecipientEmail,
		Name:     alert.RecipientName,
		Subject:  BudgetAlertSubject(alert),
		HTML:     html,
		Text:     text,
		Category: BudgetAlertCategory,
	})
	return err
}

// BudgetAlertCategory tags budget alerts at the mail provider.
const BudgetAlertCategory = "budget_alert"

// BudgetAlertSubject builds the subject line, e.g. "Budget Alert: $85.00 spent of $100.00".
func BudgetAlertSubject(alert adapter.BudgetAlert) string {
	return fmt.Sprintf("Budget Alert: %s spent of %s",
		formatMoney(alert.CurrencySymbol, alert.Spent),
		formatMoney(alert.CurrencySymbol, alert.Amount))
}

func formatMoney(symbol string, amount decimal.Decimal) string {
	if amount.IsNegative() {
		return "-" + symbol + amount.Abs().StringFixed(2)
	}
	return symbol + amount.StringFixed(2)
}

var _ adapter.BudgetAlertNotifier = (*BudgetAlertMailer)(nil)
