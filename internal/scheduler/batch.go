package scheduler

import (
	"context"
	"fmt"
	"sync/atomic"

	"lead_qualification_backend/internal/leads/repository"
	"lead_qualification_backend/internal/leads/transport"
	"lead_qualification_backend/platform/apperr"
	"lead_qualification_backend/platform/logger"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

const (
	defaultBatchPageSize    = 200
	defaultBatchConcurrency = 10
)

// LeadRescorer recomputes stored lead scores.
type LeadRescorer interface {
	Rescore(ctx context.Context, id uuid.UUID) (transport.LeadDetailResponse, error)
	RescoreLead(ctx context.Context, lead repository.Lead) (bool, error)
}

// RescoreStats summarizes a full rescore.
type RescoreStats struct {
	Scanned int
	Changed int
	Skipped int
}

// BatchRescorer walks every lead in creation order and rescores it.
type BatchRescorer struct {
	scanner     repository.LeadScanner
	rescorer    LeadRescorer
	pageSize    int
	concurrency int
	log         *logger.Logger
}

func NewBatchRescorer(scanner repository.LeadScanner, rescorer LeadRescorer, concurrency int, log *logger.Logger) *BatchRescorer {
	if concurrency < 1 {
		concurrency = defaultBatchConcurrency
	}
	return &BatchRescorer{
		scanner:     scanner,
		rescorer:    rescorer,
		pageSize:    defaultBatchPageSize,
		concurrency: concurrency,
		log:         log,
	}
}

// Run rescores all leads. Each page is processed concurrently and the first
// failure cancels the rest of the run. Leads deleted after they were listed
// are skipped.
func (b *BatchRescorer) Run(ctx context.Context) (RescoreStats, error) {
	var (
		stats   RescoreStats
		changed atomic.Int64
		skipped atomic.Int64
		cursor  repository.Cursor
	)

	for {
		page, err := b.scanner.ListAfter(ctx, cursor, b.pageSize)
		if err != nil {
			return stats, fmt.Errorf("list leads after %s: %w", cursor.ID, err)
		}
		if len(page) == 0 {
			break
		}

		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(b.concurrency)
		for _, lead := range page {
			g.Go(func() error {
				updated, err := b.rescorer.RescoreLead(gctx, lead)
				if apperr.Is(err, apperr.KindNotFound) {
					skipped.Add(1)
					if b.log != nil {
						b.log.Info("rescore skipped, lead no longer exists", "leadId", lead.ID)
					}
					return nil
				}
				if err != nil {
					return fmt.Errorf("rescore lead %s: %w", lead.ID, err)
				}
				if updated {
					changed.Add(1)
				}
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			stats.Changed = int(changed.Load())
			stats.Skipped = int(skipped.Load())
			return stats, err
		}

		stats.Scanned += len(page)
		cursor = repository.Next(page[len(page)-1])
		if len(page) < b.pageSize {
			break
		}
	}

	stats.Changed = int(changed.Load())
	stats.Skipped = int(skipped.Load())
	if b.log != nil {
		b.log.Info("lead rescore finished", "scanned", stats.Scanned, "changed", stats.Changed, "skipped", stats.Skipped)
	}
	return stats, nil
}
