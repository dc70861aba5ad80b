package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/idealmente/idealmente/internal/model"
	"github.com/idealmente/idealmente/internal/repository"
)

type MeetingUsecase struct {
	store repository.Store
}

func NewMeetingUsecase(store repository.Store) *MeetingUsecase {
	return &MeetingUsecase{store: store}
}

// List returns all meetings ordered by date ascending.
func (uc *MeetingUsecase) List(ctx context.Context) []model.Meeting {
	docs := uc.store.LoadAll(ctx, repository.Meetings)
	meetings := make([]model.Meeting, 0, len(docs))
	for _, d := range docs {
		var m model.Meeting
		if err := json.Unmarshal(d.Data, &m); err != nil {
			log.Printf("meetings: skipping malformed record %s: %v", d.ID, err)
			continue
		}
		meetings = append(meetings, m)
	}
	return meetings
}

func (uc *MeetingUsecase) Get(ctx context.Context, id string) (*model.Meeting, error) {
	for _, m := range uc.List(ctx) {
		if m.ID == id {
			return &m, nil
		}
	}
	return nil, ErrNotFound
}

type CreateMeetingInput struct {
	Title        string   `json:"title"`
	Date         string   `json:"date"`
	Time         string   `json:"time"`
	Duration     int      `json:"duration"`
	Notes        string   `json:"notes"`
	Participants []string `json:"participants"`
}

// Create validates title and date, mints the record and persists it.
// Duration defaults to 60 minutes when unset.
func (uc *MeetingUsecase) Create(ctx context.Context, in CreateMeetingInput) (*model.Meeting, error) {
	if strings.TrimSpace(in.Title) == "" || in.Date == "" {
		return nil, fmt.Errorf("%w: title and date are required", ErrValidation)
	}
	if in.Duration < 0 {
		return nil, fmt.Errorf("%w: duration must be positive", ErrValidation)
	}
	if in.Duration == 0 {
		in.Duration = 60
	}
	if in.Participants == nil {
		in.Participants = []string{}
	}
	meeting := model.Meeting{
		ID:           uuid.NewString(),
		Title:        strings.TrimSpace(in.Title),
		Date:         in.Date,
		Time:         in.Time,
		Duration:     in.Duration,
		Notes:        strings.TrimSpace(in.Notes),
		Participants: in.Participants,
		CreatedAt:    time.Now().UnixMilli(),
		Minutes:      nil,
	}
	uc.persist(ctx, meeting)
	return &meeting, nil
}

// Update applies produce to the current record and writes it back
// whole, same last-writer-wins contract as ideas.
func (uc *MeetingUsecase) Update(ctx context.Context, id string, produce func(model.Meeting) model.Meeting) (*model.Meeting, error) {
	current, err := uc.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	updated := produce(*current)
	updated.ID = current.ID
	uc.persist(ctx, updated)
	return &updated, nil
}

func (uc *MeetingUsecase) Delete(ctx context.Context, id string) {
	uc.store.Delete(ctx, repository.Meetings, id)
}

// AttachMinutes replaces the meeting's minutes with a fresh artifact.
func (uc *MeetingUsecase) AttachMinutes(ctx context.Context, id, text, fileName string) (*model.Meeting, error) {
	minutes := &model.MeetingMinutes{
		Text:       text,
		FileName:   fileName,
		UploadedAt: time.Now().UnixMilli(),
	}
	return uc.Update(ctx, id, func(m model.Meeting) model.Meeting {
		m.Minutes = minutes
		return m
	})
}

// Split partitions meetings into upcoming (today or later, ascending)
// and past (descending), the projection the meetings page renders.
func Split(meetings []model.Meeting, today string) (upcoming, past []model.Meeting) {
	upcoming = []model.Meeting{}
	past = []model.Meeting{}
	for _, m := range meetings {
		if m.Date >= today {
			upcoming = append(upcoming, m)
		} else {
			past = append(past, m)
		}
	}
	// Input is date-ascending; past flips to most recent first.
	for i, j := 0, len(past)-1; i < j; i, j = i+1, j-1 {
		past[i], past[j] = past[j], past[i]
	}
	return upcoming, past
}

func (uc *MeetingUsecase) persist(ctx context.Context, m model.Meeting) {
	data, err := json.Marshal(m)
	if err != nil {
		log.Printf("meetings: encoding %s: %v", m.ID, err)
		return
	}
	uc.store.Save(ctx, repository.Meetings, m.ID, data)
}
