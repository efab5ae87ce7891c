package scheduler

import (
	"context"
	"time"

	"lead_qualification_backend/platform/logger"
)

// RescoreAllEnqueuer queues a full rescore.
type RescoreAllEnqueuer interface {
	EnqueueRescoreAll(ctx context.Context) error
}

// RescoreSweep periodically queues a full rescore so stored scores follow
// weight changes without a manual backfill.
type RescoreSweep struct {
	client   RescoreAllEnqueuer
	log      *logger.Logger
	interval time.Duration
}

// NewRescoreSweep returns nil when interval is not positive, which disables the sweep.
func NewRescoreSweep(client RescoreAllEnqueuer, interval time.Duration, log *logger.Logger) *RescoreSweep {
	if interval <= 0 {
		return nil
	}
	return &RescoreSweep{client: client, log: log, interval: interval}
}

func (s *RescoreSweep) Run(ctx context.Context) {
	if s == nil || s.client == nil {
		return
	}

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.enqueue(ctx)
		}
	}
}

func (s *RescoreSweep) enqueue(ctx context.Context) {
	err := s.client.EnqueueRescoreAll(ctx)
	if s.log == nil {
		return
	}
	if err != nil {
		s.log.Warn("rescore sweep enqueue failed", "error", err)
		return
	}
	s.log.Debug("rescore sweep enqueued")
}
