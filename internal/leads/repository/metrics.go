package repository

import "context"

// MetricsParams carries the score thresholds that split leads into tiers.
type MetricsParams struct {
	HotMin  int
	WarmMin int
}

// LeadMetrics aggregates KPI values for the dashboard.
type LeadMetrics struct {
	TotalLeads   int
	HotLeads     int
	WarmLeads    int
	ColdLeads    int
	AverageScore float64
}

// GetMetrics returns KPI aggregates for active (non-deleted) leads.
func (r *Repository) GetMetrics(ctx context.Context, params MetricsParams) (LeadMetrics, error) {
	var metrics LeadMetrics
	err := r.pool.QueryRow(ctx, `
		SELECT
			COUNT(*) AS total_leads,
			COUNT(*) FILTER (WHERE score >= $1) AS hot_leads,
			COUNT(*) FILTER (WHERE score >= $2 AND score < $1) AS warm_leads,
			COUNT(*) FILTER (WHERE score < $2) AS cold_leads,
			COALESCE(AVG(score), 0)::float8 AS average_score
		FROM leads
		WHERE deleted_at IS NULL
	`, params.HotMin, params.WarmMin).Scan(
		&metrics.TotalLeads,
		&metrics.HotLeads,
		&metrics.WarmLeads,
		&metrics.ColdLeads,
		&metrics.AverageScore,
	)
	if err != nil {
		return LeadMetrics{}, err
	}
	return metrics, nil
}

// GetMetrics mirrors the PostgreSQL aggregate over the in-memory leads.
func (r *MemoryRepository) GetMetrics(_ context.Context, params MetricsParams) (LeadMetrics, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var (
		metrics LeadMetrics
		sum     int
	)
	for id, lead := range r.leads {
		if r.deleted[id] {
			continue
		}
		metrics.TotalLeads++
		sum += lead.Score
		switch {
		case lead.Score >= params.HotMin:
			metrics.HotLeads++
		case lead.Score >= params.WarmMin:
			metrics.WarmLeads++
		default:
			metrics.ColdLeads++
		}
	}
	if metrics.TotalLeads > 0 {
		metrics.AverageScore = float64(sum) / float64(metrics.TotalLeads)
	}
	return metrics, nil
}
