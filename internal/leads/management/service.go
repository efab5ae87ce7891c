// Package management handles the lead lifecycle around the scoring engine.
// It normalises captured leads, scores them, stores the denormalized result
// and renders summary and detail views.
package management

import (
	"context"
	"errors"
	"fmt"
	"math"

	"lead_qualification_backend/internal/events"
	"lead_qualification_backend/internal/leads/qualification"
	"lead_qualification_backend/internal/leads/repository"
	"lead_qualification_backend/internal/leads/transport"
	"lead_qualification_backend/platform/apperr"
	"lead_qualification_backend/platform/logger"
	"lead_qualification_backend/platform/phone"
	"lead_qualification_backend/platform/sanitize"

	"github.com/google/uuid"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100

	msgLeadNotFound = "lead not found"
	msgStoreFailed  = "failed to store lead"
)

// Repository defines the data access interface needed by the management service.
// This is a consumer-driven interface - only what management needs.
type Repository interface {
	repository.LeadReader
	repository.LeadWriter
	repository.ScoreWriter
	repository.MetricsReader
}

// Service handles lead management operations.
type Service struct {
	repo     Repository
	eventBus events.Bus
	log      *logger.Logger
}

// New creates a new lead management service. eventBus may be nil.
func New(repo Repository, eventBus events.Bus, log *logger.Logger) *Service {
	return &Service{repo: repo, eventBus: eventBus, log: log}
}

// Preview scores lead signals without storing anything.
func (s *Service) Preview(_ context.Context, req transport.ScoreLeadRequest) transport.ScoreResponse {
	a := qualification.Evaluate(qualification.Signals{
		Source:            qualification.ParseSource(req.Source),
		DemoRequested:     req.DemoRequested,
		PricingCompared:   req.PricingCompared,
		MultipleEnquiries: req.MultipleEnquiries,
	})
	return ToScoreResponse(a)
}

// Create scores a captured lead and stores it with its denormalized score.
func (s *Service) Create(ctx context.Context, req transport.CreateLeadRequest, actorID *uuid.UUID) (transport.LeadDetailResponse, error) {
	name := sanitize.Text(req.Name)
	if name == "" {
		return transport.LeadDetailResponse{}, apperr.Validation("name is required").
			WithDetails(map[string]string{"name": "required"})
	}

	source := qualification.ParseSource(req.Source)
	signals := qualification.Signals{
		Source:            source,
		DemoRequested:     req.DemoRequested,
		PricingCompared:   req.PricingCompared,
		MultipleEnquiries: req.MultipleEnquiries,
	}
	a := qualification.Evaluate(signals)

	lead, err := s.repo.Create(ctx, repository.CreateLeadParams{
		Name:              name,
		Email:             sanitize.Email(req.Email),
		Phone:             phone.NormalizeE164(req.Phone),
		Source:            string(source),
		DemoRequested:     signals.DemoRequested,
		PricingCompared:   signals.PricingCompared,
		MultipleEnquiries: signals.MultipleEnquiries,
		Score:             a.Score,
		Explanation:       a.Explanation,
		CreatedByID:       actorID,
	})
	if err != nil {
		return transport.LeadDetailResponse{}, apperr.Wrap(apperr.KindInternal, msgStoreFailed, err).WithOp("leads.Create")
	}

	s.publish(ctx, events.LeadCreated{
		BaseEvent:   events.NewBaseEvent(),
		LeadID:      lead.ID,
		Source:      lead.Source,
		CreatedByID: actorID,
	})
	s.publishScored(ctx, lead, a, nil)

	return toLeadDetail(lead, a), nil
}

// GetDetail returns the full view of a lead. The scoring is recomputed from
// the stored signals rather than read back from the denormalized copy.
func (s *Service) GetDetail(ctx context.Context, id uuid.UUID) (transport.LeadDetailResponse, error) {
	lead, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return transport.LeadDetailResponse{}, mapRepoErr(err)
	}

	return toLeadDetail(lead, qualification.Evaluate(signalsFromLead(lead))), nil
}

// List returns a page of lead summaries, newest first.
func (s *Service) List(ctx context.Context, req transport.ListLeadsRequest) (transport.LeadListResponse, error) {
	if req.Page < 1 {
		req.Page = 1
	}
	if req.PageSize < 1 {
		req.PageSize = defaultPageSize
	}
	if req.PageSize > maxPageSize {
		req.PageSize = maxPageSize
	}

	params := repository.ListParams{
		MinScore: req.MinScore,
		Offset:   (req.Page - 1) * req.PageSize,
		Limit:    req.PageSize,
	}
	if req.Source != "" {
		source := string(qualification.ParseSource(req.Source))
		params.Source = &source
	}

	leads, total, err := s.repo.List(ctx, params)
	if err != nil {
		return transport.LeadListResponse{}, fmt.Errorf("list leads: %w", err)
	}

	items := make([]transport.LeadSummaryResponse, len(leads))
	for i, lead := range leads {
		items[i] = toLeadSummary(lead)
	}

	totalPages := (total + req.PageSize - 1) / req.PageSize

	return transport.LeadListResponse{
		Items:      items,
		Total:      total,
		Page:       req.Page,
		PageSize:   req.PageSize,
		TotalPages: totalPages,
	}, nil
}

// Metrics returns the tier distribution of stored leads.
func (s *Service) Metrics(ctx context.Context) (transport.LeadMetricsResponse, error) {
	m, err := s.repo.GetMetrics(ctx, repository.MetricsParams{
		HotMin:  qualification.HotThreshold,
		WarmMin: qualification.WarmThreshold,
	})
	if err != nil {
		return transport.LeadMetricsResponse{}, fmt.Errorf("lead metrics: %w", err)
	}

	return transport.LeadMetricsResponse{
		TotalLeads:   m.TotalLeads,
		HotLeads:     m.HotLeads,
		WarmLeads:    m.WarmLeads,
		ColdLeads:    m.ColdLeads,
		AverageScore: math.Round(m.AverageScore*10) / 10,
	}, nil
}

// Rescore recomputes a stored lead's score and persists it when it changed.
func (s *Service) Rescore(ctx context.Context, id uuid.UUID) (transport.LeadDetailResponse, error) {
	lead, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return transport.LeadDetailResponse{}, mapRepoErr(err)
	}

	updated, a, err := s.rescoreLead(ctx, lead)
	if err != nil {
		return transport.LeadDetailResponse{}, err
	}
	return toLeadDetail(updated, a), nil
}

// RescoreLead recomputes an already loaded lead. It reports whether the
// stored copy changed. Batch jobs use it to avoid a second read per lead.
func (s *Service) RescoreLead(ctx context.Context, lead repository.Lead) (bool, error) {
	updated, _, err := s.rescoreLead(ctx, lead)
	if err != nil {
		return false, err
	}
	return updated.Score != lead.Score || updated.Explanation != lead.Explanation, nil
}

func (s *Service) rescoreLead(ctx context.Context, lead repository.Lead) (repository.Lead, qualification.Assessment, error) {
	a := qualification.Evaluate(signalsFromLead(lead))
	if a.Score == lead.Score && a.Explanation == lead.Explanation {
		return lead, a, nil
	}

	previous := lead.Score
	updated, err := s.repo.UpdateScore(ctx, lead.ID, repository.UpdateScoreParams{
		Score:       a.Score,
		Explanation: a.Explanation,
	})
	if err != nil {
		return repository.Lead{}, qualification.Assessment{}, mapRepoErr(err)
	}

	s.publishScored(ctx, updated, a, &previous)
	return updated, a, nil
}

// Delete soft-deletes a lead.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return mapRepoErr(err)
	}

	s.publish(ctx, events.LeadDeleted{BaseEvent: events.NewBaseEvent(), LeadID: id})
	return nil
}

func (s *Service) publishScored(ctx context.Context, lead repository.Lead, a qualification.Assessment, previous *int) {
	if s.log != nil {
		s.log.WithContext(ctx).LeadScored(lead.ID.String(), a.Score, a.Plan.Tier.String(), len(a.Factors))
	}

	s.publish(ctx, events.LeadScored{
		BaseEvent:     events.NewBaseEvent(),
		LeadID:        lead.ID,
		Name:          lead.Name,
		Email:         lead.Email,
		Phone:         lead.Phone,
		Source:        lead.Source,
		Score:         a.Score,
		PreviousScore: previous,
		Explanation:   a.Explanation,
		Tier:          a.Plan.Tier.String(),
		Priority:      a.Plan.Tier.Priority(),
		Actions:       a.Plan.List(),
	})
}

func (s *Service) publish(ctx context.Context, event events.Event) {
	if s.eventBus == nil {
		return
	}
	s.eventBus.Publish(ctx, event)
}

func mapRepoErr(err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return apperr.NotFound(msgLeadNotFound)
	}
	return err
}
