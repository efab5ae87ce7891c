package repository

import (
	"context"

	"github.com/google/uuid"
)

// =====================================
// Segregated Interfaces (Interface Segregation Principle)
// =====================================

// LeadReader provides read-only access to lead data.
type LeadReader interface {
	GetByID(ctx context.Context, id uuid.UUID) (Lead, error)
	List(ctx context.Context, params ListParams) ([]Lead, int, error)
}

// LeadWriter provides write operations for lead management.
type LeadWriter interface {
	Create(ctx context.Context, params CreateLeadParams) (Lead, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// ScoreWriter stores the denormalized score and explanation of a lead.
type ScoreWriter interface {
	UpdateScore(ctx context.Context, id uuid.UUID, params UpdateScoreParams) (Lead, error)
}

// LeadScanner walks all live leads in creation order for batch jobs.
type LeadScanner interface {
	ListAfter(ctx context.Context, cursor Cursor, limit int) ([]Lead, error)
}

// MetricsReader aggregates dashboard KPIs.
type MetricsReader interface {
	GetMetrics(ctx context.Context, params MetricsParams) (LeadMetrics, error)
}

// LeadsRepository is the full set of lead persistence operations.
type LeadsRepository interface {
	LeadReader
	LeadWriter
	ScoreWriter
	LeadScanner
	MetricsReader
}

var (
	_ LeadsRepository = (*Repository)(nil)
	_ LeadsRepository = (*MemoryRepository)(nil)
)
