package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/idealmente/idealmente/internal/model"
	"github.com/tidwall/gjson"
)

const (
	anthropicBaseURL = "https://api.anthropic.com"
	anthropicVersion = "2023-06-01"
	analysisModel    = "claude-sonnet-4-20250514"
	maxTokens        = 1500
	// Only the first slice of an attached document goes into the prompt.
	docTextLimit = 3000
)

// AnalysisError is any failure in the analysis pipeline: network,
// non-success status, or a payload that does not parse into the
// expected shape. The message is shown to the user as-is.
type AnalysisError struct {
	Message string
}

func (e *AnalysisError) Error() string {
	return e.Message
}

type AnalysisServiceInterface interface {
	Analyze(ctx context.Context, idea model.Idea, apiKey string) (*model.AIAnalysisResult, error)
}

// AnalysisService calls the Anthropic messages endpoint with a fixed
// prompt and strict-decodes the JSON the model returns.
type AnalysisService struct {
	BaseURL string
	client  *resty.Client
}

func NewAnalysisService() *AnalysisService {
	return &AnalysisService{
		BaseURL: anthropicBaseURL,
		client:  resty.New().SetTimeout(2 * time.Minute),
	}
}

// BuildPrompt composes the instruction for one idea. The template is
// fixed; only title, description and the first 3000 characters of the
// attached document vary.
func BuildPrompt(idea model.Idea) string {
	docText := idea.DocText
	if docText == "" {
		docText = "(nessun documento caricato)"
	}
	// The limit counts characters, not bytes; accented text must not be
	// cut short or split mid-rune.
	if runes := []rune(docText); len(runes) > docTextLimit {
		docText = string(runes[:docTextLimit])
	}
	return fmt.Sprintf(`Sei un consulente strategico senior. Analizza questa idea di business in modo strutturato e conciso.

TITOLO: %s
DESCRIZIONE: %s
DOCUMENTO: %s

Rispondi SOLO in JSON con questa struttura:
{
  "executive_summary": "2-3 frasi che catturano l'essenza e il potenziale dell'idea",
  "market_opportunity": "Analisi del mercato e dimensione stimata",
  "business_model": "Come genera revenue, unit economics",
  "go_to_market": "Strategia di ingresso al mercato",
  "key_risks": ["rischio 1", "rischio 2", "rischio 3"],
  "swot": {
    "strengths": ["punto 1", "punto 2"],
    "weaknesses": ["punto 1", "punto 2"],
    "opportunities": ["punto 1", "punto 2"],
    "threats": ["punto 1", "punto 2"]
  },
  "quick_wins": ["azione 0-3 mesi 1", "azione 0-3 mesi 2"],
  "structural_initiatives": ["iniziativa 6-18 mesi 1", "iniziativa 6-18 mesi 2"],
  "ai_score": {
    "market": 7.5,
    "innovation": 8,
    "feasibility": 6,
    "revenue": 7,
    "competition": 6.5
  },
  "verdict": "Una frase di verdetto finale"
}`, idea.Title, idea.Description, docText)
}

// Analyze runs the full pipeline for one idea. On any failure the
// caller's prior analysis must be left untouched; this function never
// partially fills a result.
func (s *AnalysisService) Analyze(ctx context.Context, idea model.Idea, apiKey string) (*model.AIAnalysisResult, error) {
	resp, err := s.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetHeader("x-api-key", apiKey).
		SetHeader("anthropic-version", anthropicVersion).
		SetBody(map[string]any{
			"model":      analysisModel,
			"max_tokens": maxTokens,
			"messages": []map[string]string{
				{"role": "user", "content": BuildPrompt(idea)},
			},
		}).
		Post(s.BaseURL + "/v1/messages")
	if err != nil {
		return nil, &AnalysisError{Message: err.Error()}
	}

	body := resp.String()
	if resp.IsError() {
		msg := gjson.Get(body, "error.message").String()
		if msg == "" {
			msg = fmt.Sprintf("HTTP %d", resp.StatusCode())
		}
		return nil, &AnalysisError{Message: msg}
	}

	return ParseAnalysis(body)
}

// ParseAnalysis concatenates the text segments of a messages response,
// strips code fences, and strict-decodes the remainder. There is no
// partial recovery: a malformed payload is rejected whole.
func ParseAnalysis(body string) (*model.AIAnalysisResult, error) {
	var text strings.Builder
	for _, seg := range gjson.Get(body, "content").Array() {
		text.WriteString(seg.Get("text").String())
	}

	clean := strings.ReplaceAll(text.String(), "```json", "")
	clean = strings.ReplaceAll(clean, "```", "")
	clean = strings.TrimSpace(clean)

	var result model.AIAnalysisResult
	if err := json.Unmarshal([]byte(clean), &result); err != nil {
		return nil, &AnalysisError{Message: fmt.Sprintf("invalid analysis payload: %v", err)}
	}
	result.Normalize()
	return &result, nil
}
