package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/ppiankov/biaslab/internal/model"
	"github.com/ppiankov/biaslab/internal/util"
)

// Prompt budgets in characters. Article text is truncated per capability
// before it is sent to a backend.
const (
	scoreBudget   = 8000
	summaryBudget = 12000
	claimsBudget  = 8000
)

// ScoreResult is the typed output of a scoring backend.
type ScoreResult struct {
	Scores     model.DimensionScores
	Highlights []model.Highlight
}

// Backend is one remote oracle. Each capability takes raw article text
// and returns the typed result or a *model.BackendError.
type Backend interface {
	Name() string

	// Score rates the text on the five bias dimensions and returns
	// supporting highlights.
	Score(ctx context.Context, text string) (*ScoreResult, error)

	// Summarize writes a neutral single-paragraph summary.
	Summarize(ctx context.Context, text string) (string, error)

	// ExtractClaims pulls out atomic, checkable claims.
	ExtractClaims(ctx context.Context, text string) ([]model.Claim, error)
}

const scoreSystemPrompt = "You are Bias Lab, an expert media-bias analyst. " +
	"Given article text, output strict JSON with: " +
	"{scores:{dimension:0-100}, highlights:[{dimension,text,start,end,reason,confidence}]}. " +
	"Scores: higher is 'more of the thing' (e.g., higher emotional_tone = more emotionally loaded). " +
	"Use short, defensible highlights; no extra commentary."

const scoreUserTemplate = `Article text:
%s

Return ONLY JSON:
{
  "scores": {
    "ideological_stance": <0-100>,
    "factual_grounding": <0-100>,
    "framing_choices": <0-100>,
    "emotional_tone": <0-100>,
    "source_transparency": <0-100>
  },
  "highlights": [
    {"dimension":"framing_choices","text":"...", "start":12, "end":24, "reason":"...", "confidence":0.72}
  ]
}`

const summarySystemPrompt = "You are a neutral news analyst. Write a cohesive single paragraph of 10-12 sentences " +
	"summarizing the article. Be factual and concise. Avoid opinionated language. " +
	"Do not add facts that aren't in the text. No bullets; one paragraph."

const claimsSystemPrompt = "You extract atomic, checkable claims from news articles. " +
	"Return STRICT JSON with key 'claims': " +
	"[{text:..., rationale:..., confidence:0-1}]. 3-8 items, short and factual."

var jsonBlockRe = regexp.MustCompile(`(?s)\{.*\}`)

// coerceJSON parses s as JSON, falling back to the first {...} block when
// the model wrapped its answer in prose.
func coerceJSON(s string, v any) error {
	if err := json.Unmarshal([]byte(s), v); err == nil {
		return nil
	}
	if block := jsonBlockRe.FindString(s); block != "" {
		if err := json.Unmarshal([]byte(block), v); err == nil {
			return nil
		}
	}
	return fmt.Errorf("backend did not return valid JSON")
}

// truncate caps text to the given byte budget on a rune boundary.
func truncate(text string, budget int) string {
	return util.Truncate(text, budget)
}

// parseScorePayload decodes a scoring response. Every dimension must be
// present and numeric or the payload is rejected.
func parseScorePayload(raw string) (*ScoreResult, error) {
	var payload struct {
		Scores     map[string]any   `json:"scores"`
		Highlights []map[string]any `json:"highlights"`
	}
	if err := coerceJSON(raw, &payload); err != nil {
		return nil, err
	}

	scores := make(model.DimensionScores, len(model.Dimensions))
	for _, dim := range model.Dimensions {
		v, ok := payload.Scores[dim]
		if !ok {
			return nil, fmt.Errorf("missing score for %s", dim)
		}
		f, ok := v.(float64)
		if !ok {
			return nil, fmt.Errorf("non-numeric score for %s", dim)
		}
		scores[dim] = f
	}

	highlights := make([]model.Highlight, 0, len(payload.Highlights))
	for _, h := range payload.Highlights {
		highlights = append(highlights, highlightFromMap(h))
	}

	return &ScoreResult{Scores: scores, Highlights: highlights}, nil
}

// highlightFromMap coerces one highlight object. Backends occasionally
// nest the span fields under "data", so both shapes are accepted.
func highlightFromMap(h map[string]any) model.Highlight {
	data, _ := h["data"].(map[string]any)
	pick := func(key string) any {
		if v, ok := h[key]; ok && v != nil {
			return v
		}
		if data != nil {
			return data[key]
		}
		return nil
	}

	return model.Highlight{
		Dimension:  asString(h["dimension"]),
		Text:       asString(pick("text")),
		Start:      asInt(pick("start")),
		End:        asInt(pick("end")),
		Reason:     asString(pick("reason")),
		Confidence: asFloat(pick("confidence")),
	}
}

// parseClaimsPayload decodes a claim-extraction response. Claims without
// text are dropped; at most 8 survive.
func parseClaimsPayload(raw string) ([]model.Claim, error) {
	var payload struct {
		Claims []map[string]any `json:"claims"`
	}
	if err := coerceJSON(raw, &payload); err != nil {
		return nil, err
	}

	var claims []model.Claim
	for _, c := range payload.Claims {
		text := strings.TrimSpace(asString(c["text"]))
		if text == "" {
			continue
		}
		conf := asFloat(c["confidence"])
		if conf == 0 {
			conf = 0.5
		}
		claims = append(claims, model.Claim{
			Text:       text,
			Rationale:  strings.TrimSpace(asString(c["rationale"])),
			Confidence: conf,
		})
		if len(claims) == 8 {
			break
		}
	}
	return claims, nil
}

func asString(v any) string {
	s, _ := v.(string)
	return s
}

func asFloat(v any) float64 {
	f, _ := v.(float64)
	return f
}

func asInt(v any) int {
	f, _ := v.(float64)
	return int(f)
}

func backendErr(provider, capability string, err error) error {
	return &model.BackendError{Provider: provider, Capability: capability, Err: err}
}
