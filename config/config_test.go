package config

import (
	"log/slog"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	cfg := Load()

	if cfg.Receipt.FallbackCategory != "Other" {
		t.Errorf("expected fallback category Other, got %q", cfg.Receipt.FallbackCategory)
	}
	if cfg.Gemini.Timeout != 45*time.Second {
		t.Errorf("expected extraction timeout 45s, got %v", cfg.Gemini.Timeout)
	}
	if cfg.Budget.SweepCron != "0 * * * *" {
		t.Errorf("expected hourly sweep, got %q", cfg.Budget.SweepCron)
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("RECEIPT_FALLBACK_CATEGORY", "Misc")
	t.Setenv("RECEIPT_ASYNC_PROCESSING", "true")
	t.Setenv("GEMINI_TIMEOUT", "10s")
	t.Setenv("GEMINI_TEMPERATURE", "0.4")
	t.Setenv("WORKER_CONCURRENCY", "not-a-number")

	cfg := Load()

	if cfg.Receipt.FallbackCategory != "Misc" {
		t.Errorf("expected Misc, got %q", cfg.Receipt.FallbackCategory)
	}
	if !cfg.Receipt.AsyncProcessing {
		t.Error("expected async processing enabled")
	}
	if cfg.Gemini.Timeout != 10*time.Second {
		t.Errorf("expected 10s, got %v", cfg.Gemini.Timeout)
	}
	if cfg.Gemini.Temperature < 0.39 || cfg.Gemini.Temperature > 0.41 {
		t.Errorf("expected temperature 0.4, got %v", cfg.Gemini.Temperature)
	}
	if cfg.Worker.Concurrency != 5 {
		t.Errorf("expected invalid value to fall back to 5, got %d", cfg.Worker.Concurrency)
	}
}

func TestBudgetConfig_Location(t *testing.T) {
	tests := []struct {
		name     string
		timezone string
		want     string
	}{
		{name: "utc", timezone: "UTC", want: "UTC"},
		{name: "unknown zone falls back", timezone: "Mars/Olympus", want: "UTC"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := BudgetConfig{Timezone: tt.timezone}.Location()
			if got.String() != tt.want {
				t.Errorf("expected %s, got %s", tt.want, got.String())
			}
		})
	}
}

func TestLogConfig_SlogLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"WARN":    slog.LevelWarn,
		"error":   slog.LevelError,
		"":        slog.LevelInfo,
		"verbose": slog.LevelInfo,
	}

	for level, want := range tests {
		if got := (LogConfig{Level: level}).SlogLevel(); got != want {
			t.Errorf("level %q: expected %v, got %v", level, want, got)
		}
	}
}
