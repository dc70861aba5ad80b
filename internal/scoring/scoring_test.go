package scoring

import (
	"math"
	"testing"

	"github.com/idealmente/idealmente/internal/model"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestAverageForCriterionExcludesMissing(t *testing.T) {
	ratings := map[string]model.Rating{
		"Alice": {"market": 8, "innovation": 6},
		"Bob":   {"market": 4},
	}

	if got := AverageForCriterion(ratings, "market"); !almostEqual(got, 6.0) {
		t.Errorf("market = %v, want 6.0", got)
	}
	// Bob never rated innovation; his entry must be excluded, not zero.
	if got := AverageForCriterion(ratings, "innovation"); !almostEqual(got, 6.0) {
		t.Errorf("innovation = %v, want 6.0", got)
	}
	if got := AverageForCriterion(ratings, "feasibility"); got != 0 {
		t.Errorf("feasibility = %v, want 0", got)
	}
}

func TestOverallScoreDividesByFive(t *testing.T) {
	ratings := map[string]model.Rating{
		"Alice": {"market": 8, "innovation": 6},
		"Bob":   {"market": 4},
	}
	// (6.0 + 6.0 + 0 + 0 + 0) / 5: unrated criteria drag the score down.
	if got := OverallScore(ratings); !almostEqual(got, 2.4) {
		t.Errorf("overall = %v, want 2.4", got)
	}
}

func TestOverallScoreEmpty(t *testing.T) {
	if got := OverallScore(nil); got != 0 {
		t.Errorf("overall = %v, want 0", got)
	}
	if got := OverallScore(map[string]model.Rating{}); got != 0 {
		t.Errorf("overall = %v, want 0", got)
	}
}

func TestOverallScoreRange(t *testing.T) {
	cases := []map[string]model.Rating{
		{"A": {"market": 10, "innovation": 10, "feasibility": 10, "revenue": 10, "competition": 10}},
		{"A": {"market": 0.5}},
		{"A": {"market": 10}, "B": {"market": 0.5, "competition": 3}},
	}
	for i, ratings := range cases {
		got := OverallScore(ratings)
		if got < 0 || got > 10 {
			t.Errorf("case %d: overall %v out of [0,10]", i, got)
		}
	}
}

func TestVerdictBoundaries(t *testing.T) {
	tests := []struct {
		score float64
		want  string
	}{
		{7.5, VerdictGo},
		{7.49999, VerdictCaution},
		{5.0, VerdictCaution},
		{4.9999, VerdictStop},
		{10, VerdictGo},
		{0, VerdictStop},
	}
	for _, tt := range tests {
		if got := Verdict(tt.score); got != tt.want {
			t.Errorf("Verdict(%v) = %q, want %q", tt.score, got, tt.want)
		}
	}
}

func TestBadgeBoundaries(t *testing.T) {
	tests := []struct {
		score float64
		want  string
	}{
		{7, BadgeHigh},
		{6.9999, BadgeMed},
		{5, BadgeMed},
		{4.9999, BadgeLow},
	}
	for _, tt := range tests {
		if got := Badge(tt.score); got != tt.want {
			t.Errorf("Badge(%v) = %q, want %q", tt.score, got, tt.want)
		}
	}
}

func TestValidCriterion(t *testing.T) {
	for _, c := range Criteria {
		if !ValidCriterion(c.Key) {
			t.Errorf("ValidCriterion(%q) = false", c.Key)
		}
	}
	if ValidCriterion("vibes") {
		t.Error("ValidCriterion accepted an unknown key")
	}
}
