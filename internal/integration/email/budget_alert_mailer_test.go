package email

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/spend-smart/backend/internal/application/adapter"
	domainerror "github.com/spend-smart/backend/internal/domain/error"
	"github.com/spend-smart/backend/internal/integration/email/templates"
)

func newAlert() adapter.BudgetAlert {
	return adapter.BudgetAlert{
		BudgetID:       uuid.New(),
		RecipientEmail: "ana@example.com",
		RecipientName:  "Ana",
		Period:         "weekly",
		Currency:       "USD",
		CurrencySymbol: "$",
		Amount:         decimal.NewFromInt(100),
		Spent:          decimal.NewFromInt(85),
		Threshold:      decimal.NewFromInt(80),
		Remaining:      decimal.NewFromInt(15),
	}
}

func TestBudgetAlertMailer_SendBudgetAlert(t *testing.T) {
	renderer, err := templates.NewRenderer()
	if err != nil {
		t.Fatalf("renderer: %v", err)
	}
	sender := NewMockEmailSender()
	mailer := NewBudgetAlertMailer(sender, renderer, "https://app.example.com")

	if err := mailer.SendBudgetAlert(context.Background(), newAlert()); err != nil {
		t.Fatalf("send: %v", err)
	}

	sent := sender.SentEmails()
	if len(sent) != 1 {
		t.Fatalf("expected 1 email, got %d", len(sent))
	}
	if sent[0].Category != BudgetAlertCategory {
		t.Errorf("expected category %q, got %q", BudgetAlertCategory, sent[0].Category)
	}
	if sent[0].Subject != "Budget Alert: $85.00 spent of $100.00" {
		t.Errorf("unexpected subject %q", sent[0].Subject)
	}
	for _, want := range []string{"Ana", "$100.00", "$85.00", "$80.00", "$15.00", "https://app.example.com/budgets"} {
		if !strings.Contains(sent[0].Text, want) {
			t.Errorf("expected text body to contain %q", want)
		}
		if !strings.Contains(sent[0].HTML, want) {
			t.Errorf("expected html body to contain %q", want)
		}
	}
	if strings.Contains(sent[0].Text, "gone over") {
		t.Error("did not expect overspend notice")
	}
}

func TestBudgetAlertMailer_Overspent(t *testing.T) {
	renderer, err := templates.NewRenderer()
	if err != nil {
		t.Fatalf("renderer: %v", err)
	}
	sender := NewMockEmailSender()
	mailer := NewBudgetAlertMailer(sender, renderer, "")

	alert := newAlert()
	alert.CurrencySymbol = "€"
	alert.Spent = decimal.NewFromInt(130)
	alert.Remaining = decimal.NewFromInt(-30)

	if err := mailer.SendBudgetAlert(context.Background(), alert); err != nil {
		t.Fatalf("send: %v", err)
	}

	sent := sender.SentEmails()[0]
	if sent.Subject != "Budget Alert: €130.00 spent of €100.00" {
		t.Errorf("unexpected subject %q", sent.Subject)
	}
	if !strings.Contains(sent.Text, "-€30.00") || !strings.Contains(sent.Text, "gone over") {
		t.Errorf("expected overspend details in %q", sent.Text)
	}
}

func TestBudgetAlertMailer_Failures(t *testing.T) {
	renderer, err := templates.NewRenderer()
	if err != nil {
		t.Fatalf("renderer: %v", err)
	}

	t.Run("missing recipient", func(t *testing.T) {
		mailer := NewBudgetAlertMailer(NewMockEmailSender(), renderer, "")
		alert := newAlert()
		alert.RecipientEmail = ""

		err := mailer.SendBudgetAlert(context.Background(), alert)
		if !errors.Is(err, domainerror.ErrRecipientMissing) {
			t.Errorf("expected ErrRecipientMissing, got %v", err)
		}
	})

	t.Run("provider failure is returned", func(t *testing.T) {
		sender := NewMockEmailSender()
		sender.SetFailure(errors.New("503 service unavailable"), false)
		mailer := NewBudgetAlertMailer(sender, renderer, "")

		err := mailer.SendBudgetAlert(context.Background(), newAlert())
		var emailErr *domainerror.EmailError
		if !errors.As(err, &emailErr) || emailErr.Code != domainerror.ErrCodeTemporaryEmailFailure {
			t.Errorf("expected temporary email failure, got %v", err)
		}
		if len(sender.SentEmails()) != 0 {
			t.Error("expected nothing recorded as sent")
		}
	})
}

func TestIsPermanentError(t *testing.T) {
	tests := []struct {
		err  error
		want bool
	}{
		{errors.New("401 unauthorized"), true},
		{errors.New("422 validation_error"), true},
		{errors.New("429 rate limit"), false},
		{errors.New("500 internal server error"), false},
		{nil, false},
	}

	for _, tt := range tests {
		if got := isPermanentError(tt.err); got != tt.want {
			t.Errorf("isPermanentError(%v) = %v, want %v", tt.err, got, tt.want)
		}
	}
}
