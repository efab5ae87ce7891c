package scheduler

import (
	"context"
	"fmt"
	"io"
	"time"

	"lead_qualification_backend/internal/leads/repository"
	"lead_qualification_backend/platform/apperr"
	"lead_qualification_backend/platform/config"
	"lead_qualification_backend/platform/logger"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"
)

const (
	rescoreAllLockKey = "leads:rescore_all:lock"
	rescoreAllLockTTL = 30 * time.Minute
)

type Worker struct {
	server *asynq.Server
	mux    *asynq.ServeMux
	rdb    *redis.Client
	svc    LeadRescorer
	batch  *BatchRescorer
	locker *Locker
	log    *logger.Logger
}

func NewWorker(cfg config.SchedulerConfig, svc LeadRescorer, scanner repository.LeadScanner, log *logger.Logger) (*Worker, error) {
	redisURL := cfg.GetRedisURL()
	if redisURL == "" {
		return nil, fmt.Errorf("redis url not configured")
	}

	opt, err := redisClientOpt(redisURL, cfg.GetRedisTLSInsecure())
	if err != nil {
		return nil, err
	}
	rdbOpt, err := redisOptions(redisURL, cfg.GetRedisTLSInsecure())
	if err != nil {
		return nil, err
	}

	concurrency := cfg.GetAsynqConcurrency()
	if concurrency < 1 {
		concurrency = 10
	}

	server := asynq.NewServer(opt, asynq.Config{
		Concurrency: concurrency,
		Queues: map[string]int{
			queueName(cfg): 1,
		},
	})

	rdb := redis.NewClient(rdbOpt)
	w := newWorker(svc, NewBatchRescorer(scanner, svc, concurrency, log), NewLocker(rdb), log)
	w.server = server
	w.rdb = rdb
	return w, nil
}

func newWorker(svc LeadRescorer, batch *BatchRescorer, locker *Locker, log *logger.Logger) *Worker {
	if log == nil {
		log = logger.NewWithWriter("production", io.Discard)
	}
	w := &Worker{
		mux:    asynq.NewServeMux(),
		svc:    svc,
		batch:  batch,
		locker: locker,
		log:    log,
	}
	w.mux.HandleFunc(TaskRescoreLead, w.handleRescoreLead)
	w.mux.HandleFunc(TaskRescoreAll, w.handleRescoreAll)
	return w
}

func (w *Worker) Run(ctx context.Context) {
	if w == nil || w.server == nil {
		return
	}

	go func() {
		<-ctx.Done()
		w.server.Shutdown()
	}()

	if err := w.server.Run(w.mux); err != nil {
		w.log.Error("scheduler worker stopped", "error", err)
	}
	if w.rdb != nil {
		_ = w.rdb.Close()
	}
}

func (w *Worker) handleRescoreLead(ctx context.Context, task *asynq.Task) error {
	payload, err := ParseRescoreLeadPayload(task)
	if err != nil {
		return fmt.Errorf("%w: %v", asynq.SkipRetry, err)
	}

	leadID, err := uuid.Parse(payload.LeadID)
	if err != nil {
		return fmt.Errorf("%w: invalid lead id %q", asynq.SkipRetry, payload.LeadID)
	}

	if _, err := w.svc.Rescore(ctx, leadID); err != nil {
		if apperr.Is(err, apperr.KindNotFound) {
			w.log.Info("rescore skipped, lead no longer exists", "leadId", leadID)
			return nil
		}
		return err
	}
	return nil
}

func (w *Worker) handleRescoreAll(ctx context.Context, _ *asynq.Task) error {
	release, ok, err := w.locker.Acquire(ctx, rescoreAllLockKey, rescoreAllLockTTL)
	if err != nil {
		return err
	}
	if !ok {
		w.log.Info("full rescore already running, skipping")
		return nil
	}
	defer func() {
		if err := release(context.WithoutCancel(ctx)); err != nil {
			w.log.Warn("rescore lock release failed", "error", err)
		}
	}()

	_, err = w.batch.Run(ctx)
	return err
}
