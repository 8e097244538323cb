// Package email sends budget alerts through Resend.
package email

import (
	"context"
	"fmt"
	"strings"

	"github.com/resend/resend-go/v2"

	"github.com/spend-smart/backend/internal/application/adapter"
	domainerror "github.com/spend-smart/backend/internal/domain/error"
)

// ResendClient implements the adapter.EmailSender interface using Resend.
type ResendClient struct {
	client *resend.Client
	from   string
}

var _ adapter.EmailSender = (*ResendClient)(nil)

// NewResendClient creates a new Resend client sending as "fromName <fromEmail>".
func NewResendClient(apiKey, fromName, fromEmail string) *ResendClient {
	return &ResendClient{
		client: resend.NewClient(apiKey),
		from:   formatAddress(fromName, fromEmail),
	}
}

// Send delivers one message. Failures come back as *domainerror.EmailError
// classified as permanent or temporary.
func (c *ResendClient) Send(ctx context.Context, input adapter.SendEmailInput) (*adapter.SendEmailResult, error) {
	params := &resend.SendEmailRequest{
		From:    c.from,
		To:      []string{formatAddress(input.Name, input.To)},
		Subject: input.Subject,
		Html:    input.HTML,
		Text:    input.Text,
	}
	if input.Category != "" {
		params.Tags = []resend.Tag{{Name: "category", Value: input.Category}}
	}

	resp, err := c.client.Emails.SendWithContext(ctx, params)
	if err != nil {
		return nil, classifySendError(err)
	}

	return &adapter.SendEmailResult{
		ResendID: resp.Id,
	}, nil
}

func formatAddress(name, address string) string {
	name = strings.TrimSpace(strings.NewReplacer("<", "", ">", "", "\"", "").Replace(name))
	if name == "" {
		return address
	}
	return fmt.Sprintf("%s <%s>", name, address)
}

// permanentPatterns mark provider answers that a retry cannot fix.
// 429 and 5xx are left temporary.
var permanentPatterns = []string{
	"401",
	"403",
	"422",
	"unauthorized",
	"forbidden",
	"validation",
	"invalid",
	"bad request",
}

func classifySendError(err error) *domainerror.EmailError {
	msg := strings.ToLower(err.Error())
	for _, pattern := range permanentPatterns {
		if strings.Contains(msg, pattern) {
			return domainerror.NewEmailError(
				domainerror.ErrCodePermanentEmailFailure,
				"permanent email failure",
				fmt.Errorf("%w: %w", domainerror.ErrPermanentEmailFailure, err),
			)
		}
	}
	return domainerror.NewEmailError(
		domainerror.ErrCodeTemporaryEmailFailure,
		"temporary email failure",
		fmt.Errorf("%w: %w", domainerror.ErrTemporaryEmailFailure, err),
	)
}
