// Package email provides email sending functionality via Resend.
package email

import (
	"context"
	"fmt"
	"sync"

	"github.com/spend-smart/backend/internal/application/adapter"
	domainerror "github.com/spend-smart/backend/internal/domain/error"
)

// MockEmailSender is an in-memory sender for tests and local runs without an API key.
// Safe for concurrent use.
type MockEmailSender struct {
	mu          sync.Mutex
	sentEmails  []adapter.SendEmailInput
	shouldFail  bool
	failError   error
	isPermanent bool
}

// NewMockEmailSender creates a new mock email sender.
func NewMockEmailSender() *MockEmailSender {
	return &MockEmailSender{}
}

// Send records the email, or fails when configured to.
func (m *MockEmailSender) Send(ctx context.Context, input adapter.SendEmailInput) (*adapter.SendEmailResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.shouldFail {
		code := domainerror.ErrCodeTemporaryEmailFailure
		if m.isPermanent {
			code = domainerror.ErrCodePermanentEmailFailure
		}
		return nil, domainerror.NewEmailError(code, "mock email failure", m.failError)
	}

	m.sentEmails = append(m.sentEmails, input)
	return &adapter.SendEmailResult{
		ResendID: fmt.Sprintf("mock-%d", len(m.sentEmails)),
	}, nil
}

// SentEmails returns a copy of everything sent so far.
func (m *MockEmailSender) SentEmails() []adapter.SendEmailInput {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]adapter.SendEmailInput, len(m.sentEmails))
	copy(out, m.sentEmails)
	return out
}

// SetFailure configures the mock to fail with the given error.
func (m *MockEmailSender) SetFailure(err error, permanent bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.shouldFail = true
	m.failError = err
	m.isPermanent = permanent
}

// ClearFailure clears the failure configuration.
func (m *MockEmailSender) ClearFailure() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.shouldFail = false
	m.failError = nil
	m.isPermanent = false
}

// Reset clears all sent emails and failure configuration.
func (m *MockEmailSender) Reset() {
	m.mu.Lock()
	m.sentEmails = nil
	m.mu.Unlock()
	m.ClearFailure()
}

var _ adapter.EmailSender = (*MockEmailSender)(nil)
