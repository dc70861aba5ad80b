package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Rating maps a criterion key to the value one rater assigned, in [0,10]
// with 0.5 steps. A rating set may be partial; missing criteria are
// excluded from averaging, not treated as zero.
type Rating map[string]float64

// Idea is a tracked business concept. Records are always written whole;
// there is no field-level patching, last writer wins.
type Idea struct {
	ID          string            `json:"id"`
	Title       string            `json:"title"`
	Description string            `json:"description"`
	Emoji       string            `json:"emoji"`
	DocText     string            `json:"docText"`
	FileName    string            `json:"fileName,omitempty"`
	CreatedBy   string            `json:"createdBy"`
	CreatedAt   int64             `json:"createdAt"`
	Comments    []Comment         `json:"comments"`
	Ratings     map[string]Rating `json:"ratings"`
	AIAnalysis  *AIAnalysisResult `json:"aiAnalysis"`
}

// Comment is one discussion entry on an idea. Comments are appended or
// removed wholesale by their author, never edited in place.
type Comment struct {
	ID     string `json:"id"`
	Author string `json:"author"`
	Text   string `json:"text"`
	Tag    string `json:"tag"`
	Ts     int64  `json:"ts"`
}

// Comment tags as shown in the discussion UI.
const (
	TagPro      = "pro"
	TagCon      = "con"
	TagQuestion = "question"
	TagNeutral  = "neutral"
)

var commentTags = map[string]bool{
	TagPro: true, TagCon: true, TagQuestion: true, TagNeutral: true,
}

// ValidCommentTag reports whether tag is one of the four fixed tags.
func ValidCommentTag(tag string) bool {
	return commentTags[tag]
}

// Emojis is the fixed palette an idea icon is picked from.
var Emojis = []string{"💡", "🚀", "🏪", "🤖", "🌱", "💊", "🎯", "🔧", "📱", "🌍", "💰", "🎮"}

// NewIdea builds a freshly persisted idea record. Title must be
// non-empty after trimming; the caller validates before calling.
func NewIdea(title, description, emoji, docText, fileName, createdBy string) Idea {
	return Idea{
		ID:          uuid.NewString(),
		Title:       strings.TrimSpace(title),
		Description: strings.TrimSpace(description),
		Emoji:       emoji,
		DocText:     docText,
		FileName:    fileName,
		CreatedBy:   createdBy,
		CreatedAt:   time.Now().UnixMilli(),
		Comments:    []Comment{},
		Ratings:     map[string]Rating{},
		AIAnalysis:  nil,
	}
}
