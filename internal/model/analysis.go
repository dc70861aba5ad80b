package model

// AIAnalysisResult is the structured strategic assessment produced by
// the external model. It is shape-validated on decode, never
// semantically validated; absent sequences are normalized to empty.
type AIAnalysisResult struct {
	ExecutiveSummary      string             `json:"executive_summary"`
	MarketOpportunity     string             `json:"market_opportunity"`
	BusinessModel         string             `json:"business_model"`
	GoToMarket            string             `json:"go_to_market"`
	KeyRisks              []string           `json:"key_risks"`
	SWOT                  SWOT               `json:"swot"`
	QuickWins             []string           `json:"quick_wins"`
	StructuralInitiatives []string           `json:"structural_initiatives"`
	AIScore               map[string]float64 `json:"ai_score"`
	Verdict               string             `json:"verdict"`
}

type SWOT struct {
	Strengths     []string `json:"strengths"`
	Weaknesses    []string `json:"weaknesses"`
	Opportunities []string `json:"opportunities"`
	Threats       []string `json:"threats"`
}

// Normalize replaces nil sequences with empty ones so a stored analysis
// round-trips as [] rather than null.
func (a *AIAnalysisResult) Normalize() {
	if a.KeyRisks == nil {
		a.KeyRisks = []string{}
	}
	if a.QuickWins == nil {
		a.QuickWins = []string{}
	}
	if a.StructuralInitiatives == nil {
		a.StructuralInitiatives = []string{}
	}
	if a.AIScore == nil {
		a.AIScore = map[string]float64{}
	}
	if a.SWOT.Strengths == nil {
		a.SWOT.Strengths = []string{}
	}
	if a.SWOT.Weaknesses == nil {
		a.SWOT.Weaknesses = []string{}
	}
	if a.SWOT.Opportunities == nil {
		a.SWOT.Opportunities = []string{}
	}
	if a.SWOT.Threats == nil {
		a.SWOT.Threats = []string{}
	}
}
