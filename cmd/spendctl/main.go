// Package main is the SpendSmart operator CLI.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/spend-smart/backend/config"
)

func main() {
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := config.Load()
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: cfg.Log.SlogLevel(),
	})))

	rootCmd := newRootCommand(cfg)
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "spendctl: %v\n", err)
		os.Exit(1)
	}
}

func newRootCommand(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "spendctl",
		Short: "SpendSmart operator CLI",
		Long: `spendctl runs operational tasks against the configured database and services:
seeding the category vocabulary, sweeping budgets, and (re)processing receipts.`,
		SilenceUsage: true,
	}
	cmd.AddCommand(
		newSeedCategoriesCmd(cfg),
		newSweepCmd(cfg),
		newProcessReceiptCmd(cfg),
		newDispatchPendingCmd(cfg),
		newIssueTokenCmd(cfg),
	)
	return cmd
}
