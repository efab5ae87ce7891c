package main

import (
	"context"
	"fmt"
	"io"

	"lead_qualification_backend/internal/scheduler"
	"lead_qualification_backend/platform/config"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var enqueueRescoreCmd = &cobra.Command{
	Use:   "rescore",
	Short: "Queue a background rescore of one lead",
	Long:  "Enqueues a leads.rescore task for the scheduler worker. Use rescore-backfill to rescore every lead in-process.",
	RunE:  runEnqueueRescore,
}

var enqueueLeadID string

// openEnqueuer is swapped in tests.
var openEnqueuer = func(cfg config.SchedulerConfig) (rescoreEnqueuer, error) {
	return scheduler.NewClient(cfg)
}

type rescoreEnqueuer interface {
	EnqueueRescore(ctx context.Context, leadID uuid.UUID) error
	Close() error
}

func init() {
	enqueueRescoreCmd.Flags().StringVar(&enqueueLeadID, "id", "", "Lead id to rescore (required)")
	_ = enqueueRescoreCmd.MarkFlagRequired("id")

	rootCmd.AddCommand(enqueueRescoreCmd)
}

func runEnqueueRescore(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	leadID, err := uuid.Parse(enqueueLeadID)
	if err != nil {
		return fmt.Errorf("invalid lead id %q", enqueueLeadID)
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	enq, err := openEnqueuer(cfg)
	if err != nil {
		return fmt.Errorf("failed to connect to scheduler: %w", err)
	}
	defer func() { _ = enq.Close() }()

	return enqueueRescore(ctx, enq, leadID, cmd.OutOrStdout())
}

func enqueueRescore(ctx context.Context, enq rescoreEnqueuer, leadID uuid.UUID, out io.Writer) error {
	if err := enq.EnqueueRescore(ctx, leadID); err != nil {
		return fmt.Errorf("enqueue rescore for %s: %w", leadID, err)
	}
	_, _ = fmt.Fprintf(out, "Queued rescore for lead %s\n", leadID)
	return nil
}
