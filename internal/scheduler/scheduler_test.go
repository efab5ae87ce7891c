package scheduler

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"lead_qualification_backend/internal/leads/management"
	"lead_qualification_backend/internal/leads/repository"
	"lead_qualification_backend/internal/leads/transport"
	"lead_qualification_backend/platform/logger"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"
)

func testLogger() *logger.Logger { return logger.NewWithWriter("test", io.Discard) }

func newTestLocker(t *testing.T) (*Locker, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return NewLocker(rdb), mr
}

// seedStale stores n leads whose denormalized score is out of date.
func seedStale(t *testing.T, repo *repository.MemoryRepository, n int) {
	t.Helper()
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < n; i++ {
		at := base.Add(time.Duration(i) * time.Minute)
		repo.SetClock(func() time.Time { return at })
		if _, err := repo.Create(context.Background(), repository.CreateLeadParams{
			Name:          "lead",
			Email:         "lead@example.com",
			Source:        "website",
			DemoRequested: i%2 == 0,
			Score:         0,
			Explanation:   "stale",
		}); err != nil {
			t.Fatalf("seed: %v", err)
		}
	}
}

func TestRescoreLeadPayloadRoundTrip(t *testing.T) {
	id := uuid.New()
	task, err := NewRescoreLeadTask(RescoreLeadPayload{LeadID: id.String()})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if task.Type() != TaskRescoreLead {
		t.Fatalf("unexpected task type %q", task.Type())
	}

	payload, err := ParseRescoreLeadPayload(task)
	if err != nil || payload.LeadID != id.String() {
		t.Fatalf("unexpected payload %#v, err %v", payload, err)
	}
}

func TestRedisOptionsTLS(t *testing.T) {
	opt, err := redisOptions("rediss://user:pw@cache.example.com:6380/2", true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if opt.TLSConfig == nil || !opt.TLSConfig.InsecureSkipVerify {
		t.Fatalf("expected insecure TLS config")
	}

	clientOpt, err := redisClientOpt("redis://localhost:6379/1", false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if clientOpt.Addr != "localhost:6379" || clientOpt.DB != 1 || clientOpt.TLSConfig != nil {
		t.Fatalf("unexpected client opt %#v", clientOpt)
	}

	if _, err := redisOptions("not a url", false); err == nil {
		t.Fatalf("expected invalid url to fail")
	}
}

func TestClientEnqueuesRescoreTasks(t *testing.T) {
	mr := miniredis.RunT(t)
	client := &Client{client: asynq.NewClient(asynq.RedisClientOpt{Addr: mr.Addr()}), queue: "leads"}
	t.Cleanup(func() { _ = client.Close() })
	ctx := context.Background()

	if err := client.EnqueueRescore(ctx, uuid.New()); err != nil {
		t.Fatalf("enqueue rescore: %v", err)
	}
	if err := client.EnqueueRescoreAll(ctx); err != nil {
		t.Fatalf("enqueue rescore all: %v", err)
	}
	if err := client.EnqueueRescoreAll(ctx); err != nil {
		t.Fatalf("expected duplicate full rescore to be ignored, got %v", err)
	}

	pending, err := mr.List("asynq:{leads}:pending")
	if err != nil {
		t.Fatalf("read pending queue: %v", err)
	}
	if len(pending) != 2 {
		t.Fatalf("expected 2 pending tasks, got %d", len(pending))
	}
}

func TestNilClientIsNoop(t *testing.T) {
	var client *Client
	if err := client.EnqueueRescore(context.Background(), uuid.New()); err != nil {
		t.Fatalf("expected nil client to be a no-op, got %v", err)
	}
}

func TestLockerSingleHolder(t *testing.T) {
	locker, mr := newTestLocker(t)
	ctx := context.Background()

	release, ok, err := locker.Acquire(ctx, "k", time.Minute)
	if err != nil || !ok {
		t.Fatalf("expected first acquire to succeed, ok=%v err=%v", ok, err)
	}

	if _, ok, err := locker.Acquire(ctx, "k", time.Minute); err != nil || ok {
		t.Fatalf("expected second acquire to fail, ok=%v err=%v", ok, err)
	}

	if err := release(ctx); err != nil {
		t.Fatalf("release: %v", err)
	}
	if mr.Exists("k") {
		t.Fatalf("expected key to be removed on release")
	}

	if _, ok, _ := locker.Acquire(ctx, "k", time.Minute); !ok {
		t.Fatalf("expected lock to be free after release")
	}
}

func TestLockerReleaseKeepsForeignLock(t *testing.T) {
	locker, mr := newTestLocker(t)
	ctx := context.Background()

	release, ok, _ := locker.Acquire(ctx, "k", time.Second)
	if !ok {
		t.Fatalf("expected acquire to succeed")
	}

	mr.FastForward(2 * time.Second)
	if _, ok, _ := locker.Acquire(ctx, "k", time.Minute); !ok {
		t.Fatalf("expected expired lock to be taken over")
	}

	if err := release(ctx); err != nil {
		t.Fatalf("release: %v", err)
	}
	if !mr.Exists("k") {
		t.Fatalf("expected stale release to leave the new holder's lock")
	}
}

func TestBatchRescorerPages(t *testing.T) {
	repo := repository.NewMemory()
	seedStale(t, repo, 7)
	svc := management.New(repo, nil, nil)

	batch := NewBatchRescorer(repo, svc, 3, testLogger())
	batch.pageSize = 2

	stats, err := batch.Run(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stats.Scanned != 7 || stats.Changed != 7 {
		t.Fatalf("unexpected stats %#v", stats)
	}

	leads, _, _ := repo.List(context.Background(), repository.ListParams{})
	for _, lead := range leads {
		want := 30
		if lead.DemoRequested {
			want = 80
		}
		if lead.Score != want {
			t.Fatalf("expected score %d, got %d", want, lead.Score)
		}
	}

	stats, err = batch.Run(context.Background())
	if err != nil || stats.Changed != 0 {
		t.Fatalf("expected second run to change nothing, got %#v err %v", stats, err)
	}
}

type failingRescorer struct{}

func (failingRescorer) Rescore(context.Context, uuid.UUID) (transport.LeadDetailResponse, error) {
	return transport.LeadDetailResponse{}, errors.New("boom")
}

func (failingRescorer) RescoreLead(context.Context, repository.Lead) (bool, error) {
	return false, errors.New("boom")
}

func TestBatchRescorerStopsOnError(t *testing.T) {
	repo := repository.NewMemory()
	seedStale(t, repo, 3)

	if _, err := NewBatchRescorer(repo, failingRescorer{}, 2, testLogger()).Run(context.Background()); err == nil {
		t.Fatalf("expected error")
	}
}

// deletingScanner removes the first lead of every page after handing it out.
type deletingScanner struct {
	repo *repository.MemoryRepository
}

func (d deletingScanner) ListAfter(ctx context.Context, cursor repository.Cursor, limit int) ([]repository.Lead, error) {
	page, err := d.repo.ListAfter(ctx, cursor, limit)
	if err != nil || len(page) == 0 {
		return page, err
	}
	if err := d.repo.Delete(ctx, page[0].ID); err != nil {
		return nil, err
	}
	return page, nil
}

func TestBatchRescorerSkipsDeletedLeads(t *testing.T) {
	repo := repository.NewMemory()
	seedStale(t, repo, 4)
	svc := management.New(repo, nil, nil)

	stats, err := NewBatchRescorer(deletingScanner{repo: repo}, svc, 2, testLogger()).Run(context.Background())
	if err != nil {
		t.Fatalf("expected deleted lead to be skipped, got %v", err)
	}
	if stats.Scanned != 4 || stats.Changed != 3 || stats.Skipped != 1 {
		t.Fatalf("unexpected stats %#v", stats)
	}
}

func TestWorkerHandlers(t *testing.T) {
	repo := repository.NewMemory()
	seedStale(t, repo, 2)
	svc := management.New(repo, nil, nil)
	locker, _ := newTestLocker(t)
	w := newWorker(svc, NewBatchRescorer(repo, svc, 2, testLogger()), locker, testLogger())
	ctx := context.Background()

	missing, _ := NewRescoreLeadTask(RescoreLeadPayload{LeadID: uuid.NewString()})
	if err := w.handleRescoreLead(ctx, missing); err != nil {
		t.Fatalf("expected missing lead to be skipped, got %v", err)
	}

	bad, _ := NewRescoreLeadTask(RescoreLeadPayload{LeadID: "nope"})
	if err := w.handleRescoreLead(ctx, bad); !errors.Is(err, asynq.SkipRetry) {
		t.Fatalf("expected SkipRetry for bad id, got %v", err)
	}

	if err := w.handleRescoreAll(ctx, NewRescoreAllTask()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	leads, _, _ := repo.List(ctx, repository.ListParams{MinScore: intPtr(30)})
	if len(leads) != 2 {
		t.Fatalf("expected both leads rescored, got %d", len(leads))
	}
}

func TestWorkerSkipsWhileLocked(t *testing.T) {
	repo := repository.NewMemory()
	seedStale(t, repo, 1)
	svc := management.New(repo, nil, nil)
	locker, _ := newTestLocker(t)
	w := newWorker(svc, NewBatchRescorer(repo, svc, 1, testLogger()), locker, testLogger())
	ctx := context.Background()

	if _, ok, _ := locker.Acquire(ctx, rescoreAllLockKey, time.Minute); !ok {
		t.Fatalf("expected to take the lock")
	}
	if err := w.handleRescoreAll(ctx, NewRescoreAllTask()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	leads, _, _ := repo.List(ctx, repository.ListParams{})
	if leads[0].Score != 0 {
		t.Fatalf("expected locked run to be skipped")
	}
}

type countingEnqueuer struct {
	calls int
	err   error
}

func (c *countingEnqueuer) EnqueueRescoreAll(context.Context) error {
	c.calls++
	return c.err
}

func TestRescoreSweep(t *testing.T) {
	if NewRescoreSweep(&countingEnqueuer{}, 0, testLogger()) != nil {
		t.Fatalf("expected zero interval to disable the sweep")
	}

	enq := &countingEnqueuer{}
	sweep := NewRescoreSweep(enq, time.Hour, testLogger())
	sweep.enqueue(context.Background())
	if enq.calls != 1 {
		t.Fatalf("expected one enqueue, got %d", enq.calls)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	sweep.Run(ctx)
}

func TestRescoreSweepWithoutLogger(t *testing.T) {
	enq := &countingEnqueuer{err: errors.New("redis down")}
	sweep := NewRescoreSweep(enq, time.Hour, nil)

	sweep.enqueue(context.Background())
	enq.err = nil
	sweep.enqueue(context.Background())

	if enq.calls != 2 {
		t.Fatalf("expected two enqueues, got %d", enq.calls)
	}
}

func TestWorkerWithoutLogger(t *testing.T) {
	repo := repository.NewMemory()
	svc := management.New(repo, nil, nil)
	locker, _ := newTestLocker(t)
	w := newWorker(svc, NewBatchRescorer(repo, svc, 1, nil), locker, nil)

	missing, _ := NewRescoreLeadTask(RescoreLeadPayload{LeadID: uuid.NewString()})
	if err := w.handleRescoreLead(context.Background(), missing); err != nil {
		t.Fatalf("expected missing lead to be skipped, got %v", err)
	}
}

func intPtr(v int) *int { return &v }
