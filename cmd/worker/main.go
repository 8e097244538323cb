// Package main runs the background worker: receipt processing tasks and the
// periodic budget sweep.
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/hibiken/asynq"
	"github.com/joho/godotenv"

	"github.com/spend-smart/backend/config"
	"github.com/spend-smart/backend/internal/infra/db"
	"github.com/spend-smart/backend/internal/infra/dependency"
	"github.com/spend-smart/backend/internal/integration/queue"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.Log.SlogLevel(),
	}))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	database, err := db.NewPostgresConnection(ctx, &cfg.Database)
	if err != nil {
		slog.Error("Database connection failed", "error", err)
		os.Exit(1)
	}
	defer database.Close()

	runtime, err := dependency.NewRuntime(ctx, cfg)
	if err != nil {
		slog.Error("Failed to initialize external services", "error", err)
		os.Exit(1)
	}
	defer runtime.Close()

	injector, err := dependency.NewInjector(ctx, cfg, database.DB(), runtime.Services)
	if err != nil {
		slog.Error("Failed to wire application", "error", err)
		os.Exit(1)
	}

	redisOpt := dependency.RedisConnOpt(cfg.Redis)
	server := asynq.NewServer(redisOpt, asynq.Config{
		Concurrency: cfg.Worker.Concurrency,
		Logger:      newAsynqLogger(logger),
	})

	scheduler, err := queue.NewScheduler(redisOpt, cfg.Budget.SweepCron, cfg.Budget.Location())
	if err != nil {
		slog.Error("Failed to create scheduler", "error", err)
		os.Exit(1)
	}
	if err := scheduler.Start(); err != nil {
		slog.Error("Failed to start scheduler", "error", err)
		os.Exit(1)
	}
	defer scheduler.Shutdown()

	go func() {
		<-ctx.Done()
		server.Shutdown()
	}()

	slog.Info("Worker started",
		"concurrency", cfg.Worker.Concurrency,
		"sweep_cron", cfg.Budget.SweepCron,
	)
	if err := server.Run(injector.WorkerHandlers.Mux()); err != nil {
		slog.Error("Worker stopped", "error", err)
		os.Exit(1)
	}
}
