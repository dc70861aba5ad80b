package dto

import (
	"testing"

	"github.com/idealmente/idealmente/internal/model"
)

func TestNewIdeaSummary(t *testing.T) {
	idea := model.Idea{
		ID:        "x",
		Title:     "Marketplace B2B",
		CreatedBy: "Marco",
		Comments:  []model.Comment{{ID: "c1"}, {ID: "c2"}},
		Ratings: map[string]model.Rating{
			"Marco": {"market": 8, "innovation": 6},
			"Lucia": {"market": 4},
		},
	}
	s := NewIdeaSummary(idea)

	if s.CommentCount != 2 || s.RaterCount != 2 {
		t.Errorf("counts = %d/%d", s.CommentCount, s.RaterCount)
	}
	if s.CriteriaAvg["market"] != 6.0 || s.CriteriaAvg["innovation"] != 6.0 {
		t.Errorf("criteriaAvg = %v", s.CriteriaAvg)
	}
	// Every criterion appears in the projection, rated or not.
	if len(s.CriteriaAvg) != 5 {
		t.Errorf("criteriaAvg has %d keys, want 5", len(s.CriteriaAvg))
	}
	if s.OverallScore != 2.4 {
		t.Errorf("overallScore = %v, want 2.4", s.OverallScore)
	}
	if s.Verdict != "stop" || s.Badge != "low" {
		t.Errorf("verdict/badge = %s/%s", s.Verdict, s.Badge)
	}
	if s.HasAIAnalysis {
		t.Error("hasAiAnalysis = true for an unanalyzed idea")
	}
}

func TestNewMeetingList(t *testing.T) {
	upcoming := []model.Meeting{{ID: "a", Date: "2026-09-05"}, {ID: "b", Date: "2026-09-12"}}
	past := []model.Meeting{{ID: "c", Date: "2026-08-20"}}

	list := NewMeetingList(upcoming, past)
	if list.Next == nil || list.Next.ID != "a" {
		t.Errorf("next = %v", list.Next)
	}

	empty := NewMeetingList([]model.Meeting{}, past)
	if empty.Next != nil {
		t.Errorf("next = %v, want nil", empty.Next)
	}
}
