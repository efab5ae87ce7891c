// Package events defines the lead lifecycle events and re-exports the bus
// from platform/events so publishers and subscribers need one import.
package events

import (
	"lead_qualification_backend/internal/leads/qualification"
	"lead_qualification_backend/platform/events"

	"github.com/google/uuid"
)

type (
	Event       = events.Event
	Bus         = events.Bus
	Handler     = events.Handler
	HandlerFunc = events.HandlerFunc
	BaseEvent   = events.BaseEvent
	InMemoryBus = events.InMemoryBus
)

var (
	NewBaseEvent   = events.NewBaseEvent
	NewInMemoryBus = events.NewInMemoryBus
)

// LeadCreated is published when a new lead is stored.
type LeadCreated struct {
	BaseEvent
	LeadID      uuid.UUID  `json:"leadId"`
	Source      string     `json:"source"`
	CreatedByID *uuid.UUID `json:"createdById,omitempty"`
}

func (e LeadCreated) EventName() string { return "leads.lead.created" }

// LeadScored is published whenever a stored lead gets a (new) score.
type LeadScored struct {
	BaseEvent
	LeadID        uuid.UUID `json:"leadId"`
	Name          string    `json:"name"`
	Email         string    `json:"email"`
	Phone         string    `json:"phone"`
	Source        string    `json:"source"`
	Score         int       `json:"score"`
	PreviousScore *int      `json:"previousScore,omitempty"`
	Explanation   string    `json:"explanation"`
	Tier          string    `json:"tier"`
	Priority      int       `json:"priority"`
	Actions       []string  `json:"actions"`
}

func (e LeadScored) EventName() string { return "leads.lead.scored" }

// BecameHot reports whether this scoring moved the lead into the top tier.
func (e LeadScored) BecameHot() bool {
	if e.Priority != 1 {
		return false
	}
	return e.PreviousScore == nil || *e.PreviousScore < qualification.HotThreshold
}

// LeadDeleted is published when a lead is soft-deleted.
type LeadDeleted struct {
	BaseEvent
	LeadID uuid.UUID `json:"leadId"`
}

func (e LeadDeleted) EventName() string { return "leads.lead.deleted" }
