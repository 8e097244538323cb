package controller

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestHealthController_Check(t *testing.T) {
	gin.SetMode(gin.TestMode)

	up := func(context.Context) error { return nil }
	down := func(context.Context) error { return errors.New("connection refused") }

	tests := []struct {
		name       string
		checks     map[string]HealthCheck
		wantStatus int
		wantBody   string
		wantDeps   map[string]string
	}{
		{
			name:       "all up",
			checks:     map[string]HealthCheck{"database": up, "redis": up},
			wantStatus: http.StatusOK,
			wantBody:   "ok",
			wantDeps:   map[string]string{"database": "up", "redis": "up"},
		},
		{
			name:       "redis down",
			checks:     map[string]HealthCheck{"database": up, "redis": down},
			wantStatus: http.StatusServiceUnavailable,
			wantBody:   "degraded",
			wantDeps:   map[string]string{"database": "up", "redis": "down"},
		},
		{
			name:       "no checks",
			checks:     nil,
			wantStatus: http.StatusOK,
			wantBody:   "ok",
			wantDeps:   map[string]string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			engine := gin.New()
			engine.GET("/health", NewHealthController(tt.checks).Check)

			rec := httptest.NewRecorder()
			engine.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

			if rec.Code != tt.wantStatus {
				t.Fatalf("expected status %d, got %d", tt.wantStatus, rec.Code)
			}

			var body HealthResponse
			if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
				t.Fatalf("failed to decode body: %v", err)
			}
			if body.Status != tt.wantBody {
				t.Errorf("expected status %q, got %q", tt.wantBody, body.Status)
			}
			if len(body.Dependencies) != len(tt.wantDeps) {
				t.Fatalf("expected %d dependencies, got %v", len(tt.wantDeps), body.Dependencies)
			}
			for name, want := range tt.wantDeps {
				if body.Dependencies[name] != want {
					t.Errorf("dependency %s: expected %q, got %q", name, want, body.Dependencies[name])
				}
			}
		})
	}
}
