// Package heuristic is the always-available, I/O-free fallback for every
// backend capability. It performs no network calls and cannot fail, so
// the orchestrator accepts its output without a deadline.
package heuristic

import (
	"strings"

	"github.com/ppiankov/biaslab/internal/llm"
	"github.com/ppiankov/biaslab/internal/model"
	"github.com/ppiankov/biaslab/internal/util"
)

var emotionalWords = []string{"outrage", "shocking", "furious", "disaster"}

var vaguePhrases = []string{"critics say", "some say", "sources say"}

// Scorer is the deterministic rule-based fallback.
type Scorer struct{}

// NewScorer creates a new heuristic scorer.
func NewScorer() *Scorer {
	return &Scorer{}
}

// Score derives dimension scores from loaded-word and vague-attribution
// counts. All five dimensions are always present, each in [0,100].
func (s *Scorer) Score(text string) *llm.ScoreResult {
	lower := strings.ToLower(text)

	emotional := 0
	for _, w := range emotionalWords {
		emotional += strings.Count(lower, w)
	}
	vague := 0
	for _, p := range vaguePhrases {
		vague += strings.Count(lower, p)
	}

	scores := model.DimensionScores{
		model.DimIdeologicalStance:  50,
		model.DimFactualGrounding:   maxf(20, 80-float64(vague)*10),
		model.DimFramingChoices:     minf(90, 40+float64(vague)*15),
		model.DimEmotionalTone:      minf(95, 30+float64(emotional)*20),
		model.DimSourceTransparency: maxf(20, 70-float64(vague)*10),
	}

	var highlights []model.Highlight
	for _, phrase := range vaguePhrases {
		i := strings.Index(lower, phrase)
		if i == -1 {
			continue
		}
		highlights = append(highlights, model.Highlight{
			Dimension:  model.DimFramingChoices,
			Text:       text[i : i+len(phrase)],
			Start:      i,
			End:        i + len(phrase),
			Reason:     "vague attribution",
			Confidence: 0.6,
		})
		if len(highlights) == 3 {
			break
		}
	}

	return &llm.ScoreResult{Scores: scores, Highlights: highlights}
}

// Summarize returns the first twelve sentences, capped at 2500 chars.
func (s *Scorer) Summarize(text string) string {
	sents := util.SplitSentences(text)
	if len(sents) > 12 {
		sents = sents[:12]
	}
	return util.Truncate(strings.Join(sents, " "), 2500)
}

// ExtractClaims picks up to four long sentences as stand-in claims.
func (s *Scorer) ExtractClaims(text string) []model.Claim {
	var claims []model.Claim
	for _, sent := range util.SplitSentences(text) {
		if len(sent) <= 60 {
			continue
		}
		claims = append(claims, model.Claim{
			Text:       sent,
			Rationale:  "salient sentence",
			Confidence: 0.4,
		})
		if len(claims) == 4 {
			break
		}
	}
	return claims
}

func minf(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

func maxf(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
