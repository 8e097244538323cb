package main

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/spend-smart/backend/config"
	"github.com/spend-smart/backend/internal/application/usecase/budget"
	"github.com/spend-smart/backend/internal/application/usecase/category"
	"github.com/spend-smart/backend/internal/application/usecase/receipt"
	"github.com/spend-smart/backend/internal/infra/db"
	"github.com/spend-smart/backend/internal/infra/dependency"
	"github.com/spend-smart/backend/internal/integration/adapters"
	"github.com/spend-smart/backend/internal/integration/persistence"
)

func newSeedCategoriesCmd(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "seed-categories",
		Short: "Migrate the schema and create the default category vocabulary",
		RunE: func(cmd *cobra.Command, args []string) error {
			database, err := db.NewPostgresConnection(cmd.Context(), &cfg.Database)
			if err != nil {
				return err
			}
			defer database.Close()

			if err := dependency.PrepareDatabase(cmd.Context(), database.DB()); err != nil {
				return err
			}
			output, err := category.NewListCategoriesUseCase(persistence.NewCategoryRepository(database.DB())).
				Execute(cmd.Context())
			if err != nil {
				return err
			}
			for _, c := range output.Categories {
				fmt.Fprintln(cmd.OutOrStdout(), c.Name)
			}
			return nil
		},
	}
}

func newSweepCmd(cfg *config.Config) *cobra.Command {
	var runID string
	cmd := &cobra.Command{
		Use:   "sweep",
		Short: "Evaluate every open budget once and send due alerts",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withInjector(cmd, cfg, func(injector *dependency.Injector) error {
				summary, err := injector.SweepBudgets.Execute(cmd.Context(), budget.SweepBudgetsInput{RunID: runID})
				if err != nil {
					return err
				}
				return printJSON(cmd, summary)
			})
		},
	}
	cmd.Flags().StringVar(&runID, "run-id", "", "Identifier recorded in logs and the summary")
	return cmd
}

func newProcessReceiptCmd(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "process-receipt <id>",
		Short: "Process a pending receipt in this process",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			receiptID, err := uuid.Parse(args[0])
			if err != nil {
				return fmt.Errorf("invalid receipt id: %w", err)
			}
			return withInjector(cmd, cfg, func(injector *dependency.Injector) error {
				output, err := injector.ProcessReceipt.Execute(cmd.Context(), receipt.ProcessReceiptInput{ReceiptID: receiptID})
				if err != nil {
					return err
				}
				result := map[string]interface{}{
					"receipt_id": output.Receipt.ID,
					"status":     output.Receipt.Status,
					"items":      len(output.Items),
				}
				if output.Failure != nil {
					result["failure"] = output.Failure.Error()
				}
				return printJSON(cmd, result)
			})
		},
	}
}

func newDispatchPendingCmd(cfg *config.Config) *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "dispatch-pending",
		Short: "Re-dispatch receipts stuck in pending",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withInjector(cmd, cfg, func(injector *dependency.Injector) error {
				output, err := injector.DispatchPending.Execute(cmd.Context(), receipt.DispatchPendingInput{Limit: limit})
				if err != nil {
					return err
				}
				return printJSON(cmd, map[string]int{
					"dispatched": output.Dispatched,
					"errors":     output.Errors,
				})
			})
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 100, "Maximum receipts to dispatch")
	return cmd
}

func newIssueTokenCmd(cfg *config.Config) *cobra.Command {
	var (
		email string
		ttl   time.Duration
	)
	cmd := &cobra.Command{
		Use:   "issue-token <user-id>",
		Short: "Issue an access token for local testing",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			userID, err := uuid.Parse(args[0])
			if err != nil {
				return fmt.Errorf("invalid user id: %w", err)
			}
			token, err := adapters.NewTokenVerifier(cfg.JWT.Secret, cfg.JWT.Issuer).IssueAccessToken(userID, email, ttl)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "Email claim")
	cmd.Flags().DurationVar(&ttl, "ttl", time.Hour, "Token lifetime")
	return cmd
}

func withInjector(cmd *cobra.Command, cfg *config.Config, fn func(*dependency.Injector) error) error {
	ctx := cmd.Context()

	database, err := db.NewPostgresConnection(ctx, &cfg.Database)
	if err != nil {
		return err
	}
	defer database.Close()

	runtime, err := dependency.NewRuntime(ctx, cfg)
	if err != nil {
		return err
	}
	defer runtime.Close()

	injector, err := dependency.NewInjector(ctx, cfg, database.DB(), runtime.Services)
	if err != nil {
		return err
	}
	return fn(injector)
}

func printJSON(cmd *cobra.Command, v interface{}) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
