package qualification

// Tier is a score band that maps to a fixed action plan.
type Tier int

const (
	TierCold Tier = iota
	TierWarm
	TierHot
)

// Tier thresholds, inclusive on the lower bound.
const (
	HotThreshold  = 80
	WarmThreshold = 50
)

// String returns the tier name.
func (t Tier) String() string {
	switch t {
	case TierHot:
		return "hot"
	case TierWarm:
		return "warm"
	default:
		return "cold"
	}
}

// Priority returns 1 for hot, 2 for warm and 3 for cold leads.
func (t Tier) Priority() int {
	switch t {
	case TierHot:
		return 1
	case TierWarm:
		return 2
	default:
		return 3
	}
}

// PriorityClass is the CSS-style class summary rows use for the action column.
func (t Tier) PriorityClass() string {
	switch t {
	case TierHot:
		return "priority-1"
	case TierWarm:
		return "priority-2"
	default:
		return "priority-3"
	}
}

// Plan is the ordered block of next actions for a tier.
type Plan struct {
	Tier    Tier
	Actions [3]string
}

// Primary returns the action shown in summary views.
func (p Plan) Primary() string {
	return p.Actions[0]
}

// List returns the actions as a fresh slice.
func (p Plan) List() []string {
	out := make([]string, len(p.Actions))
	copy(out, p.Actions[:])
	return out
}

type tierRow struct {
	min  int
	plan Plan
}

// tierTable is scanned top to bottom and the first row whose minimum the score
// reaches wins. The last row catches everything else.
var tierTable = []tierRow{
	{
		min: HotThreshold,
		plan: Plan{Tier: TierHot, Actions: [3]string{
			"Immediate sales call/demo (Priority 1)",
			"Send personalized pricing",
			"Assign to top rep",
		}},
	},
	{
		min: WarmThreshold,
		plan: Plan{Tier: TierWarm, Actions: [3]string{
			"Nurture with email/WhatsApp (Priority 2)",
			"Send case studies",
			"Schedule follow-up",
		}},
	},
}

var coldPlan = Plan{Tier: TierCold, Actions: [3]string{
	"Monitor activity (Priority 3)",
	"Add to newsletter",
	"Wait for more signals",
}}

// TierFor returns the tier a score falls into.
func TierFor(score int) Tier {
	return Recommend(score).Tier
}

// Recommend returns the action plan for a score. Out-of-range scores are not
// an error: anything below the warm threshold is cold, anything at or above
// the hot threshold is hot.
func Recommend(score int) Plan {
	for _, row := range tierTable {
		if score >= row.min {
			return row.plan
		}
	}
	return coldPlan
}

// BadgeClass is the score badge band used by table views. The bands are finer
// than the tiers.
func BadgeClass(score int) string {
	switch {
	case score >= 90:
		return "score-90"
	case score >= 70:
		return "score-70"
	case score >= 50:
		return "score-50"
	default:
		return "score-low"
	}
}

// Assessment bundles a score with its recommended plan.
type Assessment struct {
	Result
	Plan Plan
}

// Evaluate scores the signals and picks the plan for the resulting score.
func Evaluate(s Signals) Assessment {
	result := Score(s)
	return Assessment{Result: result, Plan: Recommend(result.Score)}
}
