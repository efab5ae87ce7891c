// Package qualification scores sales leads and recommends the next actions for them.
//
// Both Score and Recommend are pure functions over fixed tables: they hold no
// state, perform no I/O and are safe for concurrent use. Callers own storage,
// validation and rendering.
package qualification

import (
	"math"
	"strconv"
	"strings"
)

const (
	// MaxScore is the ceiling every score is clamped to.
	MaxScore = 100

	// LowEngagementExplanation is returned when no rule fired.
	LowEngagementExplanation = "Low engagement - needs nurturing"

	strongSignalsPrefix = "Strong signals: "
	factorSeparator     = ", "
)

// Weights of the individual rules.
const (
	WeightDemoRequested     = 50.0
	WeightPricingCompared   = 30.0
	WeightWebsite           = 30.0
	WeightDirectEnquiry     = 25.0
	WeightEvent             = 20.0
	WeightReferral          = 15.0
	WeightMultipleEnquiries = 10.0
)

// Signals are the lead attributes the engine reads. Contact details and
// timestamps are deliberately absent.
type Signals struct {
	Source            Source
	DemoRequested     bool
	PricingCompared   bool
	MultipleEnquiries bool
}

// Result is the outcome of scoring one lead.
type Result struct {
	Score       int
	Explanation string
	// Factors lists the triggered rules in evaluation order.
	Factors []string
}

// HasSignals reports whether at least one rule fired.
func (r Result) HasSignals() bool {
	return len(r.Factors) > 0
}

// rule is one row of the weight table. Rules are evaluated in slice order.
type rule struct {
	weight float64
	match  func(Signals) bool
	label  func(Signals) string
}

func fixedLabel(text string) func(Signals) string {
	return func(Signals) string { return text }
}

func sourceIs(sources ...Source) func(Signals) bool {
	return func(s Signals) bool {
		for _, src := range sources {
			if s.Source == src {
				return true
			}
		}
		return false
	}
}

// rules is the weight table. The order fixes both summation and factor order.
// The source rules are mutually exclusive because a lead has one source.
var rules = []rule{
	{
		weight: WeightDemoRequested,
		match:  func(s Signals) bool { return s.DemoRequested },
		label:  fixedLabel("Demo requested"),
	},
	{
		weight: WeightPricingCompared,
		match:  func(s Signals) bool { return s.PricingCompared },
		label:  fixedLabel("Pricing comparison viewed"),
	},
	{
		weight: WeightWebsite,
		match:  sourceIs(SourceWebsite),
		label:  fixedLabel("Website registration"),
	},
	{
		// call and whatsapp share one bucket and differ only in label.
		weight: WeightDirectEnquiry,
		match:  sourceIs(SourceCall, SourceWhatsApp),
		label:  func(s Signals) string { return s.Source.Label() + " enquiry" },
	},
	{
		weight: WeightEvent,
		match:  sourceIs(SourceEvent),
		label:  fixedLabel("Event lead"),
	},
	{
		weight: WeightReferral,
		match:  sourceIs(SourceReferral),
		label:  fixedLabel("Referral"),
	},
	{
		weight: WeightMultipleEnquiries,
		match:  func(s Signals) bool { return s.MultipleEnquiries },
		label:  fixedLabel("Multiple enquiries"),
	},
}

// Score evaluates the weight table against the lead signals. It never fails:
// unknown sources and unset flags simply trigger nothing.
func Score(s Signals) Result {
	return scoreWith(rules, s)
}

func scoreWith(table []rule, s Signals) Result {
	total := 0.0
	factors := make([]string, 0, len(table))

	for _, r := range table {
		if !r.match(s) {
			continue
		}
		total += r.weight
		factors = append(factors, formatFactor(r.label(s), r.weight))
	}

	return Result{
		Score:       clampScore(total),
		Explanation: explain(factors),
		Factors:     factors,
	}
}

func clampScore(total float64) int {
	total = math.Min(MaxScore, math.Max(0, total))
	return int(math.Round(total))
}

func formatFactor(label string, weight float64) string {
	return label + " (+" + strconv.FormatFloat(weight, 'f', -1, 64) + ")"
}

func explain(factors []string) string {
	if len(factors) == 0 {
		return LowEngagementExplanation
	}
	return strongSignalsPrefix + strings.Join(factors, factorSeparator)
}
