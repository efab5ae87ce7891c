// Package main provides leadctl, the operator CLI for lead scoring.
package main

import (
	"context"
	"fmt"
	"os"

	"lead_qualification_backend/internal/events"
	"lead_qualification_backend/internal/leads/repository"
	"lead_qualification_backend/internal/notification"
	"lead_qualification_backend/platform/config"
	"lead_qualification_backend/platform/db"
	"lead_qualification_backend/platform/logger"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:           "leadctl",
	Short:         "Lead qualification tooling",
	Long:          "leadctl scores lead signals, imports leads from YAML and recomputes stored scores.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// backend is the database-backed environment shared by the write commands.
type backend struct {
	cfg  *config.Config
	log  *logger.Logger
	repo *repository.Repository
	bus  *events.InMemoryBus
	stop func()
}

func openBackend(ctx context.Context) (*backend, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	log := logger.New(cfg.Env)

	pool, err := db.NewPool(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	bus := events.NewInMemoryBus(log)
	notification.New(notification.NewSender(cfg), cfg, log).RegisterHandlers(bus)

	return &backend{
		cfg:  cfg,
		log:  log,
		repo: repository.New(pool),
		bus:  bus,
		stop: func() {
			bus.Wait()
			pool.Close()
		},
	}, nil
}
