package dependency

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"

	"github.com/spend-smart/backend/config"
	"github.com/spend-smart/backend/internal/application/adapter"
	"github.com/spend-smart/backend/internal/integration/adapters"
	"github.com/spend-smart/backend/internal/integration/email"
	"github.com/spend-smart/backend/internal/integration/entrypoint/controller"
	"github.com/spend-smart/backend/internal/integration/lock"
	"github.com/spend-smart/backend/internal/integration/queue"
	"github.com/spend-smart/backend/internal/integration/storage"
)

// Runtime owns the production clients behind Services.
type Runtime struct {
	Services Services

	Redis redis.UniversalClient
	Queue *asynq.Client

	closers []func() error
}

// RedisConnOpt returns the asynq connection options for cfg.
func RedisConnOpt(cfg config.RedisConfig) asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	}
}

// NewRuntime connects the production collaborators: MinIO, Gemini, Resend,
// Redis and, when receipts are processed in the background, the asynq client.
func NewRuntime(ctx context.Context, cfg *config.Config) (*Runtime, error) {
	rt := &Runtime{}

	imageStore, err := storage.NewMinIOImageStore(storage.MinIOConfig{
		Endpoint:  cfg.MinIO.Endpoint,
		AccessKey: cfg.MinIO.AccessKey,
		SecretKey: cfg.MinIO.SecretKey,
		Bucket:    cfg.MinIO.Bucket,
		Region:    cfg.MinIO.Region,
		UseSSL:    cfg.MinIO.UseSSL,
	})
	if err != nil {
		return nil, err
	}
	if err := imageStore.EnsureBucket(ctx); err != nil {
		return nil, err
	}

	extractor, err := adapters.NewGeminiExtractionClient(ctx, adapters.GeminiConfig{
		APIKey:      cfg.Gemini.APIKey,
		Model:       cfg.Gemini.Model,
		Temperature: cfg.Gemini.Temperature,
		Timeout:     cfg.Gemini.Timeout,
	})
	if err != nil {
		return nil, err
	}
	rt.closers = append(rt.closers, extractor.Close)

	var sender adapter.EmailSender
	if cfg.Email.ResendAPIKey == "" {
		slog.Warn("RESEND_API_KEY not set, budget alerts are kept in memory and not delivered")
		sender = email.NewMockEmailSender()
	} else {
		sender = email.NewResendClient(cfg.Email.ResendAPIKey, cfg.Email.FromName, cfg.Email.FromEmail)
	}

	rt.Redis = redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	rt.closers = append(rt.closers, rt.Redis.Close)
	if err := rt.Redis.Ping(ctx).Err(); err != nil {
		rt.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	rt.Services = Services{
		ImageStore:    imageStore,
		Extractor:     extractor,
		EmailSender:   sender,
		TokenVerifier: adapters.NewTokenVerifier(cfg.JWT.Secret, cfg.JWT.Issuer),
		Locker:        lock.NewRedisLocker(rt.Redis),
		HealthChecks: map[string]controller.HealthCheck{
			"redis": func(ctx context.Context) error { return rt.Redis.Ping(ctx).Err() },
		},
	}

	if cfg.Receipt.AsyncProcessing {
		rt.Queue = asynq.NewClient(RedisConnOpt(cfg.Redis))
		rt.closers = append(rt.closers, rt.Queue.Close)
		rt.Services.Dispatcher = queue.NewAsynqReceiptDispatcher(rt.Queue)
	}

	return rt, nil
}

// Close releases every client, newest first.
func (rt *Runtime) Close() {
	for i := len(rt.closers) - 1; i >= 0; i-- {
		if err := rt.closers[i](); err != nil {
			slog.Error("Failed to close client", "error", err)
		}
	}
	rt.closers = nil
}
