package scoring

import "github.com/idealmente/idealmente/internal/model"

// Criterion is one of the five fixed evaluation dimensions.
type Criterion struct {
	Key   string
	Label string
}

// Criteria is the fixed evaluation grid. Order matters for display.
var Criteria = []Criterion{
	{Key: "market", Label: "Market Size"},
	{Key: "innovation", Label: "Innovation"},
	{Key: "feasibility", Label: "Feasibility"},
	{Key: "revenue", Label: "Revenue Model"},
	{Key: "competition", Label: "Competition"},
}

// ValidCriterion reports whether key names one of the five criteria.
func ValidCriterion(key string) bool {
	for _, c := range Criteria {
		if c.Key == key {
			return true
		}
	}
	return false
}

// AverageForCriterion averages the values every rater assigned to one
// criterion. Unset and zero entries are excluded, not counted as zero;
// with no data the average is 0.
func AverageForCriterion(ratings map[string]model.Rating, key string) float64 {
	var sum float64
	var n int
	for _, r := range ratings {
		if v, ok := r[key]; ok && v != 0 {
			sum += v
			n++
		}
	}
	if n == 0 {
		return 0
	}
	return sum / float64(n)
}

// OverallScore is the mean of the per-criterion averages over all five
// criteria. The divisor is always 5: a criterion nobody rated
// contributes 0, which penalizes ideas rated on only some dimensions.
func OverallScore(ratings map[string]model.Rating) float64 {
	var sum float64
	for _, c := range Criteria {
		sum += AverageForCriterion(ratings, c.Key)
	}
	return sum / float64(len(Criteria))
}

// Verdict labels, three tiers over the overall score.
const (
	VerdictGo      = "go"
	VerdictCaution = "caution"
	VerdictStop    = "stop"
)

// Verdict maps an overall score to its tier: >=7.5 go, >=5 caution,
// below that stop.
func Verdict(score float64) string {
	switch {
	case score >= 7.5:
		return VerdictGo
	case score >= 5:
		return VerdictCaution
	default:
		return VerdictStop
	}
}

// Badge tiers for list display. Looser cutoffs than the verdict.
const (
	BadgeHigh = "high"
	BadgeMed  = "med"
	BadgeLow  = "low"
)

// Badge maps a score to its list-display tier: >=7 high, >=5 med,
// below that low.
func Badge(score float64) string {
	switch {
	case score >= 7:
		return BadgeHigh
	case score >= 5:
		return BadgeMed
	default:
		return BadgeLow
	}
}
