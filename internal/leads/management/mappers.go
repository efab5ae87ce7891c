package management

import (
	"lead_qualification_backend/internal/leads/qualification"
	"lead_qualification_backend/internal/leads/repository"
	"lead_qualification_backend/internal/leads/transport"
)

// signalsFromLead projects a stored lead onto the attributes the engine reads.
func signalsFromLead(lead repository.Lead) qualification.Signals {
	return qualification.Signals{
		Source:            qualification.ParseSource(lead.Source),
		DemoRequested:     lead.DemoRequested,
		PricingCompared:   lead.PricingCompared,
		MultipleEnquiries: lead.MultipleEnquiries,
	}
}

// ToScoreResponse renders an assessment for API consumers.
func ToScoreResponse(a qualification.Assessment) transport.ScoreResponse {
	factors := make([]string, len(a.Factors))
	copy(factors, a.Factors)

	return transport.ScoreResponse{
		Score:         a.Score,
		Explanation:   a.Explanation,
		Factors:       factors,
		Tier:          a.Plan.Tier.String(),
		Priority:      a.Plan.Tier.Priority(),
		PriorityClass: a.Plan.Tier.PriorityClass(),
		BadgeClass:    qualification.BadgeClass(a.Score),
		Actions:       a.Plan.List(),
	}
}

func toLeadSummary(lead repository.Lead) transport.LeadSummaryResponse {
	a := qualification.Evaluate(signalsFromLead(lead))

	return transport.LeadSummaryResponse{
		ID:               lead.ID,
		Name:             lead.Name,
		Email:            lead.Email,
		Phone:            transport.DisplayPhone(lead.Phone),
		Source:           lead.Source,
		SourceLabel:      qualification.ParseSource(lead.Source).Label(),
		Score:            a.Score,
		BadgeClass:       qualification.BadgeClass(a.Score),
		Explanation:      a.Explanation,
		ExplanationShort: transport.TruncateExplanation(a.Explanation),
		PrimaryAction:    a.Plan.Primary(),
		PriorityClass:    a.Plan.Tier.PriorityClass(),
		CreatedAt:        lead.CreatedAt,
	}
}

func toLeadDetail(lead repository.Lead, a qualification.Assessment) transport.LeadDetailResponse {
	return transport.LeadDetailResponse{
		ID:                lead.ID,
		Name:              lead.Name,
		Email:             lead.Email,
		Phone:             transport.DisplayPhone(lead.Phone),
		Source:            lead.Source,
		SourceLabel:       qualification.ParseSource(lead.Source).Label(),
		DemoRequested:     lead.DemoRequested,
		PricingCompared:   lead.PricingCompared,
		MultipleEnquiries: lead.MultipleEnquiries,
		Scoring:           ToScoreResponse(a),
		CreatedAt:         lead.CreatedAt,
		UpdatedAt:         lead.UpdatedAt,
	}
}
