package highlight

import (
	"strings"

	"github.com/ppiankov/biaslab/internal/model"
	"github.com/ppiankov/biaslab/internal/util"
)

const (
	// Merged output never exceeds this many highlights.
	maxHighlights = 20

	// A span wider than this is untrustworthy and gets zeroed, not dropped.
	maxSpanWidth = 2000

	// Prompt-leakage marker; any highlight containing it is discarded.
	leakageMarker = "return only json"
)

// Merger combines highlight lists from heterogeneous producers.
type Merger struct{}

// NewMerger creates a new highlight merger.
func NewMerger() *Merger {
	return &Merger{}
}

// Normalize forces a highlight into canonical shape. Invalid spans are
// zeroed; missing dimension and confidence get defaults.
func Normalize(h model.Highlight) model.Highlight {
	h.Text = strings.TrimSpace(h.Text)
	h.Reason = strings.TrimSpace(h.Reason)
	if h.Dimension == "" {
		h.Dimension = model.DimFramingChoices
	}
	if h.End < h.Start || h.End-h.Start > maxSpanWidth {
		h.Start, h.End = 0, 0
	}
	if h.Confidence <= 0 {
		h.Confidence = 0.6
	}
	return h
}

// Merge assembles backend highlights, then pattern highlights, deduped by
// (dimension, text) with backend entries taking priority. When both lists
// come up empty and a summary exists, up to two highlights are synthesized
// from it. The result is capped at 20 entries in assembly order.
func (m *Merger) Merge(backend, pattern []model.Highlight, summary string) []model.Highlight {
	merged := make([]model.Highlight, 0, len(backend)+len(pattern))
	seen := make(map[[2]string]bool)

	add := func(h model.Highlight) {
		n := Normalize(h)
		if n.Text == "" || strings.Contains(strings.ToLower(n.Text), leakageMarker) {
			return
		}
		key := [2]string{n.Dimension, n.Text}
		if seen[key] {
			return
		}
		seen[key] = true
		merged = append(merged, n)
	}

	for _, h := range backend {
		add(h)
	}
	for _, h := range pattern {
		add(h)
	}

	if len(merged) == 0 && summary != "" {
		merged = synthesizeFromSummary(summary)
	}

	if len(merged) > maxHighlights {
		merged = merged[:maxHighlights]
	}
	return merged
}

// synthesizeFromSummary is the last-resort producer: the first two summary
// sentences with at least eight words, alternating framing/emotional-tone.
func synthesizeFromSummary(summary string) []model.Highlight {
	var out []model.Highlight
	for _, sent := range util.SplitSentences(summary) {
		if len(strings.Fields(sent)) < 8 {
			continue
		}
		text := util.Truncate(sent, 240)
		dim := model.DimFramingChoices
		if len(out) == 1 {
			dim = model.DimEmotionalTone
		}
		out = append(out, model.Highlight{
			Dimension:  dim,
			Text:       text,
			Start:      0,
			End:        0,
			Reason:     "Representative sentence extracted as fallback.",
			Confidence: 0.6,
		})
		if len(out) == 2 {
			break
		}
	}
	return out
}
