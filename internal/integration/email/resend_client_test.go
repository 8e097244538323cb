package email

import (
	"errors"
	"testing"

	domainerror "github.com/spend-smart/backend/internal/domain/error"
)

func TestClassifySendError(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		permanent bool
	}{
		{name: "unauthorized", err: errors.New("[ERROR]: 401 Unauthorized"), permanent: true},
		{name: "validation", err: errors.New("validation_error: invalid `to` field"), permanent: true},
		{name: "rate limited", err: errors.New("429 Too Many Requests"), permanent: false},
		{name: "server error", err: errors.New("502 Bad Gateway"), permanent: false},
		{name: "network", err: errors.New("dial tcp: i/o timeout"), permanent: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := classifySendError(tt.err)
			if got.Permanent() != tt.permanent {
				t.Errorf("expected permanent=%v, got code %s", tt.permanent, got.Code)
			}
			if !errors.Is(got, tt.err) {
				t.Error("expected the provider error to stay in the chain")
			}
			sentinel := domainerror.ErrTemporaryEmailFailure
			if tt.permanent {
				sentinel = domainerror.ErrPermanentEmailFailure
			}
			if !errors.Is(got, sentinel) {
				t.Errorf("expected %v in the chain", sentinel)
			}
		})
	}
}

func TestFormatAddress(t *testing.T) {
	tests := map[string]struct {
		name, address, want string
	}{
		"with name":    {name: "Ana", address: "ana@example.com", want: "Ana <ana@example.com>"},
		"without name": {name: " ", address: "ana@example.com", want: "ana@example.com"},
		"strips angle": {name: "<Ana>", address: "ana@example.com", want: "Ana <ana@example.com>"},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			if got := formatAddress(tt.name, tt.address); got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}
