package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/idealmente/idealmente/internal/model"
	"github.com/idealmente/idealmente/internal/repository"
	"github.com/idealmente/idealmente/internal/scoring"
	"github.com/idealmente/idealmente/internal/service"
)

type IdeaUsecase struct {
	store    repository.Store
	analysis service.AnalysisServiceInterface
}

func NewIdeaUsecase(store repository.Store, analysis service.AnalysisServiceInterface) *IdeaUsecase {
	return &IdeaUsecase{store: store, analysis: analysis}
}

// List returns all ideas in the collection's order (newest first).
func (uc *IdeaUsecase) List(ctx context.Context) []model.Idea {
	docs := uc.store.LoadAll(ctx, repository.Ideas)
	ideas := make([]model.Idea, 0, len(docs))
	for _, d := range docs {
		var idea model.Idea
		if err := json.Unmarshal(d.Data, &idea); err != nil {
			log.Printf("ideas: skipping malformed record %s: %v", d.ID, err)
			continue
		}
		ideas = append(ideas, idea)
	}
	return ideas
}

func (uc *IdeaUsecase) Get(ctx context.Context, id string) (*model.Idea, error) {
	for _, idea := range uc.List(ctx) {
		if idea.ID == id {
			return &idea, nil
		}
	}
	return nil, ErrNotFound
}

type CreateIdeaInput struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Emoji       string `json:"emoji"`
	DocText     string `json:"docText"`
	FileName    string `json:"fileName"`
	CreatedBy   string `json:"createdBy"`
}

// Create validates the title, mints the record and persists it whole.
func (uc *IdeaUsecase) Create(ctx context.Context, in CreateIdeaInput) (*model.Idea, error) {
	if strings.TrimSpace(in.Title) == "" {
		return nil, fmt.Errorf("%w: title is required", ErrValidation)
	}
	idea := model.NewIdea(in.Title, in.Description, in.Emoji, in.DocText, in.FileName, in.CreatedBy)
	uc.persist(ctx, idea)
	return &idea, nil
}

// Update fetches the current record, applies produce and writes the
// whole result back. No merge with concurrent writers: last one wins.
func (uc *IdeaUsecase) Update(ctx context.Context, id string, produce func(model.Idea) model.Idea) (*model.Idea, error) {
	current, err := uc.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	updated := produce(*current)
	updated.ID = current.ID
	uc.persist(ctx, updated)
	return &updated, nil
}

// Replace overwrites the record with a caller-supplied value.
func (uc *IdeaUsecase) Replace(ctx context.Context, id string, idea model.Idea) (*model.Idea, error) {
	return uc.Update(ctx, id, func(model.Idea) model.Idea { return idea })
}

func (uc *IdeaUsecase) Delete(ctx context.Context, id string) {
	uc.store.Delete(ctx, repository.Ideas, id)
}

// AddComment appends a fresh comment to the end of the sequence.
// Unknown tags fall back to neutral, matching the discussion UI.
func (uc *IdeaUsecase) AddComment(ctx context.Context, ideaID, author, text, tag string) (*model.Idea, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, fmt.Errorf("%w: comment text is required", ErrValidation)
	}
	if !model.ValidCommentTag(tag) {
		tag = model.TagNeutral
	}
	comment := model.Comment{
		ID:     uuid.NewString(),
		Author: author,
		Text:   text,
		Tag:    tag,
		Ts:     time.Now().UnixMilli(),
	}
	return uc.Update(ctx, ideaID, func(idea model.Idea) model.Idea {
		idea.Comments = append(idea.Comments, comment)
		return idea
	})
}

// DeleteComment removes the matching entry. Only the original author
// may delete; the policy lives here, the store does not enforce it.
func (uc *IdeaUsecase) DeleteComment(ctx context.Context, ideaID, commentID, requestedBy string) (*model.Idea, error) {
	current, err := uc.Get(ctx, ideaID)
	if err != nil {
		return nil, err
	}
	for _, c := range current.Comments {
		if c.ID == commentID && c.Author != requestedBy {
			return nil, fmt.Errorf("%w: only the author can delete a comment", ErrForbidden)
		}
	}
	return uc.Update(ctx, ideaID, func(idea model.Idea) model.Idea {
		kept := idea.Comments[:0]
		for _, c := range idea.Comments {
			if c.ID != commentID {
				kept = append(kept, c)
			}
		}
		idea.Comments = kept
		return idea
	})
}

// SetRating creates or overwrites one criterion in the rater's entry,
// leaving other criteria and other raters untouched. Values must lie
// in [0,10] on 0.5 steps.
func (uc *IdeaUsecase) SetRating(ctx context.Context, ideaID, rater, criterion string, value float64) (*model.Idea, error) {
	if !scoring.ValidCriterion(criterion) {
		return nil, fmt.Errorf("%w: unknown criterion %q", ErrValidation, criterion)
	}
	if value < 0 || value > 10 || math.Mod(value*2, 1) != 0 {
		return nil, fmt.Errorf("%w: rating must be 0-10 in 0.5 steps", ErrValidation)
	}
	return uc.Update(ctx, ideaID, func(idea model.Idea) model.Idea {
		if idea.Ratings == nil {
			idea.Ratings = map[string]model.Rating{}
		}
		r := idea.Ratings[rater]
		if r == nil {
			r = model.Rating{}
		}
		r[criterion] = value
		idea.Ratings[rater] = r
		return idea
	})
}

// Analyze runs the AI pipeline and merges the result into the record.
// On failure the prior analysis stays untouched, so a failed re-run
// never destroys earlier results.
func (uc *IdeaUsecase) Analyze(ctx context.Context, ideaID, apiKey string) (*model.Idea, error) {
	current, err := uc.Get(ctx, ideaID)
	if err != nil {
		return nil, err
	}
	result, err := uc.analysis.Analyze(ctx, *current, apiKey)
	if err != nil {
		return nil, err
	}
	return uc.Update(ctx, ideaID, func(idea model.Idea) model.Idea {
		idea.AIAnalysis = result
		return idea
	})
}

func (uc *IdeaUsecase) persist(ctx context.Context, idea model.Idea) {
	data, err := json.Marshal(idea)
	if err != nil {
		log.Printf("ideas: encoding %s: %v", idea.ID, err)
		return
	}
	uc.store.Save(ctx, repository.Ideas, idea.ID, data)
}
