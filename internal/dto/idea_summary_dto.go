package dto

import (
	"github.com/idealmente/idealmente/internal/model"
	"github.com/idealmente/idealmente/internal/scoring"
)

// IdeaSummaryDTO is the list projection: the record's header fields
// plus the precomputed scores the sidebar and home grid render.
type IdeaSummaryDTO struct {
	ID            string             `json:"id"`
	Title         string             `json:"title"`
	Description   string             `json:"description"`
	Emoji         string             `json:"emoji"`
	CreatedBy     string             `json:"createdBy"`
	CreatedAt     int64              `json:"createdAt"`
	FileName      string             `json:"fileName,omitempty"`
	CommentCount  int                `json:"commentCount"`
	RaterCount    int                `json:"raterCount"`
	CriteriaAvg   map[string]float64 `json:"criteriaAvg"`
	OverallScore  float64            `json:"overallScore"`
	Verdict       string             `json:"verdict"`
	Badge         string             `json:"badge"`
	HasAIAnalysis bool               `json:"hasAiAnalysis"`
}

// NewIdeaSummary projects one idea. Verdict and badge are only
// meaningful once somebody has rated; with zero raters the UI shows no
// chip, which the raterCount lets clients decide.
func NewIdeaSummary(idea model.Idea) IdeaSummaryDTO {
	avg := map[string]float64{}
	for _, c := range scoring.Criteria {
		avg[c.Key] = scoring.AverageForCriterion(idea.Ratings, c.Key)
	}
	overall := scoring.OverallScore(idea.Ratings)
	return IdeaSummaryDTO{
		ID:            idea.ID,
		Title:         idea.Title,
		Description:   idea.Description,
		Emoji:         idea.Emoji,
		CreatedBy:     idea.CreatedBy,
		CreatedAt:     idea.CreatedAt,
		FileName:      idea.FileName,
		CommentCount:  len(idea.Comments),
		RaterCount:    len(idea.Ratings),
		CriteriaAvg:   avg,
		OverallScore:  overall,
		Verdict:       scoring.Verdict(overall),
		Badge:         scoring.Badge(overall),
		HasAIAnalysis: idea.AIAnalysis != nil,
	}
}
