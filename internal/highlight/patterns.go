// Package highlight produces and merges bias-evidence spans.
package highlight

import (
	"regexp"

	"github.com/ppiankov/biaslab/internal/model"
)

type biasPattern struct {
	dimension string
	re        *regexp.Regexp
	reason    string
}

// Stateless pattern table, run unconditionally against the full text.
var biasPatterns = []biasPattern{
	// framing
	{model.DimFramingChoices, regexp.MustCompile(`(?i)\bcritics (?:say|argue|claim)\b`), "Uses the 'critics say' construction."},
	{model.DimFramingChoices, regexp.MustCompile(`(?i)\b(allegedly|reportedly|is said to)\b`), "Distance / hedging phrasing."},
	{model.DimFramingChoices, regexp.MustCompile(`(?i)\b(dubbed|branded|labeled)\b`), "Loaded labeling indicates framing."},
	// emotional tone
	{model.DimEmotionalTone, regexp.MustCompile(`(?i)\b(shocking|outrage|furious|slammed|disgrace|scandal)\b`), "Loaded / emotional adjective."},
	{model.DimEmotionalTone, regexp.MustCompile(`(?i)\b(spiral(?:ling)? out of control|in chaos|in turmoil)\b`), "Catastrophizing language."},
	// source transparency
	{model.DimSourceTransparency, regexp.MustCompile(`(?i)\banonymous sources?\b`), "Opaque attribution to anonymous sources."},
	{model.DimSourceTransparency, regexp.MustCompile(`(?i)\baccording to sources\b`), "Vague attribution ('sources')."},
	{model.DimSourceTransparency, regexp.MustCompile(`(?i)\bpeople familiar with the matter\b`), "Non-specific sourcing."},
	// ideology
	{model.DimIdeologicalStance, regexp.MustCompile(`(?i)\b(leftwing|rightwing|far[- ]?right|far[- ]?left)\b`), "Explicit ideological labeling."},
}

// PatternExtractor is a stateless regex scanner producing candidate
// highlights from raw text.
type PatternExtractor struct{}

// NewPatternExtractor creates a new pattern extractor.
func NewPatternExtractor() *PatternExtractor {
	return &PatternExtractor{}
}

// Extract returns every pattern match as a highlight with its span.
func (e *PatternExtractor) Extract(text string) []model.Highlight {
	if text == "" {
		return nil
	}

	var out []model.Highlight
	for _, p := range biasPatterns {
		for _, span := range p.re.FindAllStringIndex(text, -1) {
			out = append(out, model.Highlight{
				Dimension:  p.dimension,
				Text:       text[span[0]:span[1]],
				Start:      span[0],
				End:        span[1],
				Reason:     p.reason,
				Confidence: 0.8,
			})
		}
	}
	return out
}
