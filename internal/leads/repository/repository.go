package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository stores leads in PostgreSQL.
type Repository struct {
	pool *pgxpool.Pool
}

func New(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

const leadColumns = `id, name, email, phone, source, demo_requested, pricing_compared, multiple_enquiries,
	score, explanation, created_by_id, created_at, updated_at`

func scanLead(row pgx.Row) (Lead, error) {
	var lead Lead
	err := row.Scan(
		&lead.ID, &lead.Name, &lead.Email, &lead.Phone, &lead.Source,
		&lead.DemoRequested, &lead.PricingCompared, &lead.MultipleEnquiries,
		&lead.Score, &lead.Explanation, &lead.CreatedByID, &lead.CreatedAt, &lead.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return Lead{}, ErrNotFound
	}
	return lead, err
}

func (r *Repository) Create(ctx context.Context, params CreateLeadParams) (Lead, error) {
	return scanLead(r.pool.QueryRow(ctx, `
		INSERT INTO leads (
			name, email, phone, source, demo_requested, pricing_compared, multiple_enquiries,
			score, explanation, created_by_id
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING `+leadColumns,
		params.Name, params.Email, params.Phone, params.Source,
		params.DemoRequested, params.PricingCompared, params.MultipleEnquiries,
		params.Score, params.Explanation, params.CreatedByID,
	))
}

func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (Lead, error) {
	return scanLead(r.pool.QueryRow(ctx, `
		SELECT `+leadColumns+`
		FROM leads WHERE id = $1 AND deleted_at IS NULL
	`, id))
}

func (r *Repository) List(ctx context.Context, params ListParams) ([]Lead, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx, `
		SELECT COUNT(*) FROM leads
		WHERE deleted_at IS NULL
		  AND ($1::text IS NULL OR source = $1)
		  AND ($2::int IS NULL OR score >= $2)
	`, params.Source, params.MinScore).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.pool.Query(ctx, `
		SELECT `+leadColumns+`
		FROM leads
		WHERE deleted_at IS NULL
		  AND ($1::text IS NULL OR source = $1)
		  AND ($2::int IS NULL OR score >= $2)
		ORDER BY created_at DESC, id DESC
		LIMIT $3 OFFSET $4
	`, params.Source, params.MinScore, params.Limit, params.Offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	leads := make([]Lead, 0, params.Limit)
	for rows.Next() {
		lead, err := scanLead(rows)
		if err != nil {
			return nil, 0, err
		}
		leads = append(leads, lead)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return leads, total, nil
}

func (r *Repository) ListAfter(ctx context.Context, cursor Cursor, limit int) ([]Lead, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+leadColumns+`
		FROM leads
		WHERE deleted_at IS NULL
		  AND (created_at > $1 OR (created_at = $1 AND id::text > $2::text))
		ORDER BY created_at ASC, id::text ASC
		LIMIT $3
	`, cursor.CreatedAt, cursor.ID.String(), limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	leads := make([]Lead, 0, limit)
	for rows.Next() {
		lead, err := scanLead(rows)
		if err != nil {
			return nil, err
		}
		leads = append(leads, lead)
	}
	return leads, rows.Err()
}

func (r *Repository) UpdateScore(ctx context.Context, id uuid.UUID, params UpdateScoreParams) (Lead, error) {
	return scanLead(r.pool.QueryRow(ctx, `
		UPDATE leads SET score = $2, explanation = $3, updated_at = now()
		WHERE id = $1 AND deleted_at IS NULL
		RETURNING `+leadColumns,
		id, params.Score, params.Explanation,
	))
}

func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.pool.Exec(ctx, `
		UPDATE leads SET deleted_at = now(), updated_at = now()
		WHERE id = $1 AND deleted_at IS NULL
	`, id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
