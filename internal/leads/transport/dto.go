package transport

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

// CreateLeadRequest is the lead capture form. Unchecked flags arrive as false.
type CreateLeadRequest struct {
	Name              string `json:"name" validate:"required,min=1,max=200"`
	Email             string `json:"email" validate:"required,email,max=254"`
	Phone             string `json:"phone,omitempty" validate:"omitempty,min=5,max=32"`
	Source            string `json:"source" validate:"leadsource"`
	DemoRequested     bool   `json:"demoRequested"`
	PricingCompared   bool   `json:"pricingCompared"`
	MultipleEnquiries bool   `json:"multipleEnquiries"`
}

// ScoreLeadRequest scores lead signals without storing anything. Any source
// string is accepted; unknown ones simply score nothing.
type ScoreLeadRequest struct {
	Source            string `json:"source" validate:"max=50"`
	DemoRequested     bool   `json:"demoRequested"`
	PricingCompared   bool   `json:"pricingCompared"`
	MultipleEnquiries bool   `json:"multipleEnquiries"`
}

type ListLeadsRequest struct {
	Page     int    `form:"page" validate:"omitempty,min=1"`
	PageSize int    `form:"pageSize" validate:"omitempty,min=1,max=100"`
	Source   string `form:"source" validate:"leadsource"`
	MinScore *int   `form:"minScore" validate:"omitempty,min=0,max=100"`
}

// Response DTOs

// ScoreResponse is the engine output plus the recommended plan.
type ScoreResponse struct {
	Score         int      `json:"score"`
	Explanation   string   `json:"explanation"`
	Factors       []string `json:"factors"`
	Tier          string   `json:"tier"`
	Priority      int      `json:"priority"`
	PriorityClass string   `json:"priorityClass"`
	BadgeClass    string   `json:"badgeClass"`
	Actions       []string `json:"actions"`
}

// LeadSummaryResponse is one row of the lead table.
type LeadSummaryResponse struct {
	ID               uuid.UUID `json:"id"`
	Name             string    `json:"name"`
	Email            string    `json:"email"`
	Phone            string    `json:"phone"`
	Source           string    `json:"source"`
	SourceLabel      string    `json:"sourceLabel"`
	Score            int       `json:"score"`
	BadgeClass       string    `json:"badgeClass"`
	Explanation      string    `json:"explanation"`
	ExplanationShort string    `json:"explanationShort"`
	PrimaryAction    string    `json:"primaryAction"`
	PriorityClass    string    `json:"priorityClass"`
	CreatedAt        time.Time `json:"createdAt"`
}

// LeadDetailResponse is the full view of a lead with its untruncated scoring.
type LeadDetailResponse struct {
	ID                uuid.UUID     `json:"id"`
	Name              string        `json:"name"`
	Email             string        `json:"email"`
	Phone             string        `json:"phone"`
	Source            string        `json:"source"`
	SourceLabel       string        `json:"sourceLabel"`
	DemoRequested     bool          `json:"demoRequested"`
	PricingCompared   bool          `json:"pricingCompared"`
	MultipleEnquiries bool          `json:"multipleEnquiries"`
	Scoring           ScoreResponse `json:"scoring"`
	CreatedAt         time.Time     `json:"createdAt"`
	UpdatedAt         time.Time     `json:"updatedAt"`
}

type LeadListResponse struct {
	Items      []LeadSummaryResponse `json:"items"`
	Total      int                   `json:"total"`
	Page       int                   `json:"page"`
	PageSize   int                   `json:"pageSize"`
	TotalPages int                   `json:"totalPages"`
}

// LeadMetricsResponse is the dashboard tier distribution.
type LeadMetricsResponse struct {
	TotalLeads   int     `json:"totalLeads"`
	HotLeads     int     `json:"hotLeads"`
	WarmLeads    int     `json:"warmLeads"`
	ColdLeads    int     `json:"coldLeads"`
	AverageScore float64 `json:"averageScore"`
}
