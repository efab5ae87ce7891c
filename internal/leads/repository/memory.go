package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryRepository keeps leads in process memory. It is safe for concurrent use
// and mirrors the PostgreSQL repository's ordering and soft-delete rules.
type MemoryRepository struct {
	mu      sync.RWMutex
	leads   map[uuid.UUID]Lead
	deleted map[uuid.UUID]bool
	now     func() time.Time
}

// NewMemory creates an empty in-memory repository.
func NewMemory() *MemoryRepository {
	return &MemoryRepository{
		leads:   make(map[uuid.UUID]Lead),
		deleted: make(map[uuid.UUID]bool),
		now:     func() time.Time { return time.Now().UTC() },
	}
}

// SetClock replaces the time source used for timestamps.
func (r *MemoryRepository) SetClock(now func() time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.now = now
}

func (r *MemoryRepository) Create(_ context.Context, params CreateLeadParams) (Lead, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	lead := Lead{
		ID:                uuid.New(),
		Name:              params.Name,
		Email:             params.Email,
		Phone:             params.Phone,
		Source:            params.Source,
		DemoRequested:     params.DemoRequested,
		PricingCompared:   params.PricingCompared,
		MultipleEnquiries: params.MultipleEnquiries,
		Score:             params.Score,
		Explanation:       params.Explanation,
		CreatedByID:       params.CreatedByID,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	r.leads[lead.ID] = lead
	return lead, nil
}

func (r *MemoryRepository) GetByID(_ context.Context, id uuid.UUID) (Lead, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	lead, ok := r.leads[id]
	if !ok || r.deleted[id] {
		return Lead{}, ErrNotFound
	}
	return lead, nil
}

func (r *MemoryRepository) List(_ context.Context, params ListParams) ([]Lead, int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	matched := make([]Lead, 0, len(r.leads))
	for id, lead := range r.leads {
		if r.deleted[id] {
			continue
		}
		if params.Source != nil && lead.Source != *params.Source {
			continue
		}
		if params.MinScore != nil && lead.Score < *params.MinScore {
			continue
		}
		matched = append(matched, lead)
	}

	sort.Slice(matched, func(i, j int) bool {
		// newest first, ties broken by id descending
		return Next(matched[j]).After(matched[i])
	})

	total := len(matched)
	start := min(max(params.Offset, 0), total)
	end := total
	if params.Limit > 0 {
		end = min(start+params.Limit, total)
	}
	return append([]Lead(nil), matched[start:end]...), total, nil
}

func (r *MemoryRepository) ListAfter(_ context.Context, cursor Cursor, limit int) ([]Lead, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Lead, 0, limit)
	for id, lead := range r.leads {
		if r.deleted[id] || !cursor.After(lead) {
			continue
		}
		out = append(out, lead)
	}

	sort.Slice(out, func(i, j int) bool {
		return Next(out[i]).After(out[j])
	})

	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *MemoryRepository) UpdateScore(_ context.Context, id uuid.UUID, params UpdateScoreParams) (Lead, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	lead, ok := r.leads[id]
	if !ok || r.deleted[id] {
		return Lead{}, ErrNotFound
	}
	lead.Score = params.Score
	lead.Explanation = params.Explanation
	lead.UpdatedAt = r.now()
	r.leads[id] = lead
	return lead, nil
}

func (r *MemoryRepository) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.leads[id]; !ok || r.deleted[id] {
		return ErrNotFound
	}
	r.deleted[id] = true
	return nil
}
