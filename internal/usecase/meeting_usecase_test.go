package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/idealmente/idealmente/internal/model"
)

func TestCreateMeetingValidation(t *testing.T) {
	uc := NewMeetingUsecase(newFakeStore())
	ctx := context.Background()

	if _, err := uc.Create(ctx, CreateMeetingInput{Date: "2026-09-10"}); !errors.Is(err, ErrValidation) {
		t.Errorf("missing title: err = %v, want ErrValidation", err)
	}
	if _, err := uc.Create(ctx, CreateMeetingInput{Title: "Kickoff"}); !errors.Is(err, ErrValidation) {
		t.Errorf("missing date: err = %v, want ErrValidation", err)
	}
	if _, err := uc.Create(ctx, CreateMeetingInput{Title: "Kickoff", Date: "2026-09-10", Duration: -30}); !errors.Is(err, ErrValidation) {
		t.Errorf("negative duration: err = %v, want ErrValidation", err)
	}
}

func TestCreateMeetingDefaults(t *testing.T) {
	uc := NewMeetingUsecase(newFakeStore())
	m, err := uc.Create(context.Background(), CreateMeetingInput{Title: "Kickoff", Date: "2026-09-10"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if m.Duration != 60 {
		t.Errorf("duration = %d, want 60", m.Duration)
	}
	if m.Participants == nil || len(m.Participants) != 0 {
		t.Errorf("participants = %v, want empty", m.Participants)
	}
	if m.Minutes != nil {
		t.Errorf("minutes = %v, want nil", m.Minutes)
	}
}

func TestAttachMinutes(t *testing.T) {
	uc := NewMeetingUsecase(newFakeStore())
	ctx := context.Background()
	m, err := uc.Create(ctx, CreateMeetingInput{Title: "Review", Date: "2026-09-10"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	m, err = uc.AttachMinutes(ctx, m.ID, "decisioni prese", "verbale.txt")
	if err != nil {
		t.Fatalf("AttachMinutes: %v", err)
	}
	if m.Minutes == nil || m.Minutes.Text != "decisioni prese" || m.Minutes.FileName != "verbale.txt" {
		t.Fatalf("minutes = %+v", m.Minutes)
	}
	if m.Minutes.UploadedAt == 0 {
		t.Error("uploadedAt not set")
	}
}

func TestSplitPartitionsByToday(t *testing.T) {
	meetings := []model.Meeting{
		{ID: "a", Date: "2026-08-20"},
		{ID: "b", Date: "2026-08-30"},
		{ID: "c", Date: "2026-09-01"},
		{ID: "d", Date: "2026-09-15"},
	}
	upcoming, past := Split(meetings, "2026-09-01")

	// Today counts as upcoming.
	if len(upcoming) != 2 || upcoming[0].ID != "c" || upcoming[1].ID != "d" {
		t.Errorf("upcoming = %v", upcoming)
	}
	// Past flips to most recent first.
	if len(past) != 2 || past[0].ID != "b" || past[1].ID != "a" {
		t.Errorf("past = %v", past)
	}
}

func TestSplitEmpty(t *testing.T) {
	upcoming, past := Split(nil, "2026-09-01")
	if upcoming == nil || past == nil {
		t.Error("partitions should be empty slices, not nil")
	}
}
