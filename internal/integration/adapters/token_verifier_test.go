package adapters

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	domainerror "github.com/spend-smart/backend/internal/domain/error"
)

func TestTokenVerifier_ValidateAccessToken(t *testing.T) {
	verifier := NewTokenVerifier("secret", "spendsmart")
	userID := uuid.New()

	t.Run("valid token", func(t *testing.T) {
		token, err := verifier.IssueAccessToken(userID, "ana@example.com", time.Hour)
		if err != nil {
			t.Fatalf("issue: %v", err)
		}

		claims, err := verifier.ValidateAccessToken(context.Background(), token)
		if err != nil {
			t.Fatalf("validate: %v", err)
		}
		if claims.UserID != userID || claims.Email != "ana@example.com" {
			t.Errorf("unexpected claims %+v", claims)
		}
	})

	t.Run("expired token", func(t *testing.T) {
		token, err := verifier.IssueAccessToken(userID, "ana@example.com", -time.Minute)
		if err != nil {
			t.Fatalf("issue: %v", err)
		}

		_, err = verifier.ValidateAccessToken(context.Background(), token)
		if !errors.Is(err, domainerror.ErrExpiredToken) {
			t.Errorf("expected ErrExpiredToken, got %v", err)
		}
	})

	t.Run("wrong secret", func(t *testing.T) {
		token, err := NewTokenVerifier("other", "spendsmart").IssueAccessToken(userID, "", time.Hour)
		if err != nil {
			t.Fatalf("issue: %v", err)
		}

		_, err = verifier.ValidateAccessToken(context.Background(), token)
		if !errors.Is(err, domainerror.ErrInvalidToken) {
			t.Errorf("expected ErrInvalidToken, got %v", err)
		}
	})

	t.Run("wrong issuer", func(t *testing.T) {
		token, err := NewTokenVerifier("secret", "someone-else").IssueAccessToken(userID, "", time.Hour)
		if err != nil {
			t.Fatalf("issue: %v", err)
		}

		_, err = verifier.ValidateAccessToken(context.Background(), token)
		if !errors.Is(err, domainerror.ErrInvalidToken) {
			t.Errorf("expected ErrInvalidToken, got %v", err)
		}
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := verifier.ValidateAccessToken(context.Background(), "not-a-jwt")
		if !errors.Is(err, domainerror.ErrInvalidToken) {
			t.Errorf("expected ErrInvalidToken, got %v", err)
		}
	})
}
