package management

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"testing"

	"lead_qualification_backend/internal/events"
	"lead_qualification_backend/internal/leads/repository"
	"lead_qualification_backend/internal/leads/transport"
	"lead_qualification_backend/platform/apperr"

	"github.com/google/uuid"
)

type recordingBus struct {
	mu     sync.Mutex
	events []events.Event
}

func (b *recordingBus) Publish(_ context.Context, event events.Event) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.events = append(b.events, event)
}

func (b *recordingBus) PublishSync(ctx context.Context, event events.Event) error {
	b.Publish(ctx, event)
	return nil
}

func (b *recordingBus) Subscribe(string, events.Handler) {}

func (b *recordingBus) scored() []events.LeadScored {
	b.mu.Lock()
	defer b.mu.Unlock()
	var out []events.LeadScored
	for _, e := range b.events {
		if scored, ok := e.(events.LeadScored); ok {
			out = append(out, scored)
		}
	}
	return out
}

func newTestService() (*Service, *repository.MemoryRepository, *recordingBus) {
	repo := repository.NewMemory()
	bus := &recordingBus{}
	return New(repo, bus, nil), repo, bus
}

func TestCreateScoresAndNormalizes(t *testing.T) {
	svc, repo, bus := newTestService()
	actor := uuid.New()

	detail, err := svc.Create(context.Background(), transport.CreateLeadRequest{
		Name:              "  Jan <b>de</b> Vries ",
		Email:             " Jan@Example.COM ",
		Phone:             "06 12345678",
		Source:            "Call",
		DemoRequested:     true,
		MultipleEnquiries: true,
	}, &actor)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if detail.Name != "Jan de Vries" {
		t.Fatalf("expected sanitized name, got %q", detail.Name)
	}
	if detail.Email != "jan@example.com" {
		t.Fatalf("expected normalized email, got %q", detail.Email)
	}
	if detail.Phone != "+31612345678" {
		t.Fatalf("expected E.164 phone, got %q", detail.Phone)
	}
	if detail.Source != "call" || detail.SourceLabel != "Call" {
		t.Fatalf("unexpected source %q / %q", detail.Source, detail.SourceLabel)
	}
	if detail.Scoring.Score != 85 || detail.Scoring.Tier != "hot" {
		t.Fatalf("expected hot lead with score 85, got %d (%s)", detail.Scoring.Score, detail.Scoring.Tier)
	}

	stored, err := repo.GetByID(context.Background(), detail.ID)
	if err != nil {
		t.Fatalf("expected lead to be stored: %v", err)
	}
	if stored.Score != 85 || stored.Explanation != detail.Scoring.Explanation {
		t.Fatalf("expected denormalized score to be stored, got %d / %q", stored.Score, stored.Explanation)
	}
	if stored.CreatedByID == nil || *stored.CreatedByID != actor {
		t.Fatalf("expected creator to be recorded")
	}

	scored := bus.scored()
	if len(scored) != 1 || !scored[0].BecameHot() {
		t.Fatalf("expected one hot LeadScored event, got %#v", scored)
	}
}

func TestCreateRejectsBlankName(t *testing.T) {
	svc, _, _ := newTestService()

	_, err := svc.Create(context.Background(), transport.CreateLeadRequest{Name: "<p> </p>", Email: "a@b.nl"}, nil)
	if !apperr.Is(err, apperr.KindValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestPreviewDoesNotStore(t *testing.T) {
	svc, repo, bus := newTestService()

	resp := svc.Preview(context.Background(), transport.ScoreLeadRequest{Source: "referral"})
	if resp.Score != 15 || resp.Tier != "cold" || resp.BadgeClass != "score-low" {
		t.Fatalf("unexpected preview %#v", resp)
	}
	if len(resp.Actions) != 3 || resp.Actions[0] != "Monitor activity (Priority 3)" {
		t.Fatalf("unexpected actions %#v", resp.Actions)
	}

	_, total, _ := repo.List(context.Background(), repository.ListParams{Limit: 10})
	if total != 0 || len(bus.events) != 0 {
		t.Fatalf("expected preview to have no side effects")
	}
}

func TestGetDetailNotFound(t *testing.T) {
	svc, _, _ := newTestService()

	_, err := svc.GetDetail(context.Background(), uuid.New())
	if !apperr.Is(err, apperr.KindNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestListSummaries(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	reqs := []transport.CreateLeadRequest{
		{Name: "Cold", Email: "cold@example.com", Source: "event"},
		{Name: "Warm", Email: "warm@example.com", Source: "website", PricingCompared: true},
		{Name: "Hot", Email: "hot@example.com", Source: "website", DemoRequested: true, PricingCompared: true},
	}
	for _, req := range reqs {
		if _, err := svc.Create(ctx, req, nil); err != nil {
			t.Fatalf("create %s: %v", req.Name, err)
		}
	}

	minScore := 50
	resp, err := svc.List(ctx, transport.ListLeadsRequest{MinScore: &minScore, PageSize: 1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Total != 2 || resp.TotalPages != 2 || resp.Page != 1 || len(resp.Items) != 1 {
		t.Fatalf("unexpected paging %#v", resp)
	}

	all, err := svc.List(ctx, transport.ListLeadsRequest{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if all.PageSize != defaultPageSize || all.Total != 3 {
		t.Fatalf("expected defaults, got %#v", all)
	}

	for _, item := range all.Items {
		switch item.Name {
		case "Hot":
			if item.Score != 100 || item.BadgeClass != "score-90" || item.PriorityClass != "priority-1" {
				t.Fatalf("unexpected hot row %#v", item)
			}
			if item.ExplanationShort != "Strong signals: Demo requested..." {
				t.Fatalf("expected truncated explanation, got %q", item.ExplanationShort)
			}
		case "Cold":
			if item.Phone != "N/A" || item.PrimaryAction != "Monitor activity (Priority 3)" {
				t.Fatalf("unexpected cold row %#v", item)
			}
		}
	}
}

func TestListFiltersBySource(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	for _, src := range []string{"call", "whatsapp", "call"} {
		if _, err := svc.Create(ctx, transport.CreateLeadRequest{Name: src, Email: src + "@example.com", Source: src}, nil); err != nil {
			t.Fatalf("create: %v", err)
		}
	}

	resp, err := svc.List(ctx, transport.ListLeadsRequest{Source: "CALL"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Total != 2 {
		t.Fatalf("expected 2 call leads, got %d", resp.Total)
	}
}

func TestRescoreRepairsStaleScore(t *testing.T) {
	svc, repo, bus := newTestService()
	ctx := context.Background()

	lead, err := repo.Create(ctx, repository.CreateLeadParams{
		Name:          "Stale",
		Email:         "stale@example.com",
		Source:        "website",
		DemoRequested: true,
		Score:         10,
		Explanation:   "outdated",
	})
	if err != nil {
		t.Fatalf("seed: %v", err)
	}

	detail, err := svc.Rescore(ctx, lead.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if detail.Scoring.Score != 80 {
		t.Fatalf("expected score 80, got %d", detail.Scoring.Score)
	}

	stored, _ := repo.GetByID(ctx, lead.ID)
	if stored.Score != 80 {
		t.Fatalf("expected stored score to be updated, got %d", stored.Score)
	}

	scored := bus.scored()
	if len(scored) != 1 || scored[0].PreviousScore == nil || *scored[0].PreviousScore != 10 {
		t.Fatalf("expected LeadScored with previous score, got %#v", scored)
	}
	if !scored[0].BecameHot() {
		t.Fatalf("expected lead to have become hot")
	}

	changed, err := svc.RescoreLead(ctx, stored)
	if err != nil || changed {
		t.Fatalf("expected second rescore to be a no-op, got changed=%v err=%v", changed, err)
	}
	if len(bus.scored()) != 1 {
		t.Fatalf("expected no event for unchanged score")
	}
}

func TestDeleteHidesLead(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	detail, err := svc.Create(ctx, transport.CreateLeadRequest{Name: "Gone", Email: "gone@example.com"}, nil)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := svc.Delete(ctx, detail.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := svc.GetDetail(ctx, detail.ID); !apperr.Is(err, apperr.KindNotFound) {
		t.Fatalf("expected deleted lead to be not found, got %v", err)
	}
	if err := svc.Delete(ctx, detail.ID); !apperr.Is(err, apperr.KindNotFound) {
		t.Fatalf("expected second delete to be not found, got %v", err)
	}
}

func TestMetrics(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	for _, req := range []transport.CreateLeadRequest{
		{Name: "Hot", Email: "hot@example.com", Source: "website", DemoRequested: true},
		{Name: "Warm", Email: "warm@example.com", DemoRequested: true},
		{Name: "Cold", Email: "cold@example.com", Source: "event"},
	} {
		if _, err := svc.Create(ctx, req, nil); err != nil {
			t.Fatalf("create: %v", err)
		}
	}

	m, err := svc.Metrics(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.TotalLeads != 3 || m.HotLeads != 1 || m.WarmLeads != 1 || m.ColdLeads != 1 {
		t.Fatalf("unexpected metrics %#v", m)
	}
	if m.AverageScore != 50 {
		t.Fatalf("expected average 50, got %v", m.AverageScore)
	}
}

type failingCreateRepo struct {
	*repository.MemoryRepository
	err error
}

func (r failingCreateRepo) Create(context.Context, repository.CreateLeadParams) (repository.Lead, error) {
	return repository.Lead{}, r.err
}

func TestCreateWrapsStorageFailure(t *testing.T) {
	cause := errors.New("connection refused")
	bus := &recordingBus{}
	svc := New(failingCreateRepo{MemoryRepository: repository.NewMemory(), err: cause}, bus, nil)

	_, err := svc.Create(context.Background(), transport.CreateLeadRequest{
		Name: "Anna", Email: "anna@example.com", Source: "website",
	}, nil)

	var appErr *apperr.Error
	if !errors.As(err, &appErr) {
		t.Fatalf("expected *apperr.Error, got %v", err)
	}
	if appErr.Kind != apperr.KindInternal || appErr.HTTPStatus() != http.StatusInternalServerError {
		t.Fatalf("expected internal error, got kind %d", appErr.Kind)
	}
	if appErr.Message != "failed to store lead" || appErr.Op != "leads.Create" {
		t.Fatalf("unexpected error %#v", appErr)
	}
	if !errors.Is(err, cause) {
		t.Fatalf("expected cause to stay reachable")
	}
	if len(bus.events) != 0 {
		t.Fatalf("expected no events for a failed create, got %d", len(bus.events))
	}
}
