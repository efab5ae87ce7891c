package repository

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("lead not found")

// Lead is the stored lead record. Score and Explanation are denormalized
// copies of the engine output taken when the lead was (re)scored.
type Lead struct {
	ID                uuid.UUID
	Name              string
	Email             string
	Phone             string
	Source            string
	DemoRequested     bool
	PricingCompared   bool
	MultipleEnquiries bool
	Score             int
	Explanation       string
	CreatedByID       *uuid.UUID
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

type CreateLeadParams struct {
	Name              string
	Email             string
	Phone             string
	Source            string
	DemoRequested     bool
	PricingCompared   bool
	MultipleEnquiries bool
	Score             int
	Explanation       string
	CreatedByID       *uuid.UUID
}

type UpdateScoreParams struct {
	Score       int
	Explanation string
}

// ListParams filters and pages List. Results are newest first.
type ListParams struct {
	Source   *string
	MinScore *int
	Offset   int
	Limit    int
}

// Cursor marks a position in creation order. The zero value starts at the beginning.
type Cursor struct {
	CreatedAt time.Time
	ID        uuid.UUID
}

// After reports whether lead sorts after the cursor.
func (c Cursor) After(lead Lead) bool {
	if lead.CreatedAt.Equal(c.CreatedAt) {
		return lead.ID.String() > c.ID.String()
	}
	return lead.CreatedAt.After(c.CreatedAt)
}

// Next returns the cursor positioned on lead.
func Next(lead Lead) Cursor {
	return Cursor{CreatedAt: lead.CreatedAt, ID: lead.ID}
}
