package main

import (
	"context"
	"fmt"

	"lead_qualification_backend/internal/leads/management"
	"lead_qualification_backend/internal/scheduler"

	"github.com/spf13/cobra"
)

var rescoreCmd = &cobra.Command{
	Use:   "rescore-backfill",
	Short: "Recompute the stored score of every lead",
	Long:  "Walks all leads in creation order and rewrites the stored score and explanation where the current weights disagree.",
	RunE:  runRescore,
}

var rescoreConcurrency int

func init() {
	rescoreCmd.Flags().IntVarP(&rescoreConcurrency, "concurrency", "c", 0, "Leads rescored in parallel (defaults to ASYNQ_CONCURRENCY)")

	rootCmd.AddCommand(rescoreCmd)
}

func runRescore(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	b, err := openBackend(ctx)
	if err != nil {
		return err
	}
	defer b.stop()

	concurrency := rescoreConcurrency
	if concurrency < 1 {
		concurrency = b.cfg.GetAsynqConcurrency()
	}

	b.log.Info("starting lead rescore backfill", "concurrency", concurrency)
	svc := management.New(b.repo, b.bus, b.log)
	stats, err := scheduler.NewBatchRescorer(b.repo, svc, concurrency, b.log).Run(ctx)
	if err != nil {
		return fmt.Errorf("rescore backfill stopped after %d leads: %w", stats.Scanned, err)
	}

	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Rescored %d leads, %d changed, %d skipped\n", stats.Scanned, stats.Changed, stats.Skipped)
	return nil
}
