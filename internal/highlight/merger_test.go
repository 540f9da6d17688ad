package highlight

import (
	"fmt"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/ppiankov/biaslab/internal/model"
)

func TestNormalize(t *testing.T) {
	h := Normalize(model.Highlight{Text: "  loaded phrase  ", Start: 10, End: 5})
	if h.Text != "loaded phrase" {
		t.Errorf("Text = %q, want trimmed", h.Text)
	}
	if h.Start != 0 || h.End != 0 {
		t.Errorf("inverted span = (%d,%d), want (0,0)", h.Start, h.End)
	}
	if h.Dimension != model.DimFramingChoices {
		t.Errorf("Dimension = %q, want default framing_choices", h.Dimension)
	}
	if h.Confidence != 0.6 {
		t.Errorf("Confidence = %v, want default 0.6", h.Confidence)
	}

	h = Normalize(model.Highlight{Text: "x", Start: 0, End: 2001})
	if h.Start != 0 || h.End != 0 {
		t.Errorf("oversized span = (%d,%d), want (0,0)", h.Start, h.End)
	}

	h = Normalize(model.Highlight{Text: "x", Dimension: model.DimEmotionalTone, Start: 3, End: 9, Confidence: 0.9})
	if h.Start != 3 || h.End != 9 || h.Dimension != model.DimEmotionalTone || h.Confidence != 0.9 {
		t.Errorf("valid highlight mutated: %+v", h)
	}
}

func TestMerge_DedupAndPriority(t *testing.T) {
	m := NewMerger()
	backend := []model.Highlight{
		{Dimension: model.DimFramingChoices, Text: "critics say", Confidence: 0.9, Reason: "model"},
	}
	pattern := []model.Highlight{
		{Dimension: model.DimFramingChoices, Text: "critics say", Confidence: 0.8, Reason: "pattern"},
		{Dimension: model.DimEmotionalTone, Text: "shocking", Confidence: 0.8},
	}

	got := m.Merge(backend, pattern, "")
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2 (duplicate collapsed): %+v", len(got), got)
	}
	if got[0].Reason != "model" {
		t.Errorf("backend entry should win the dedup, got reason %q", got[0].Reason)
	}
	if got[1].Text != "shocking" {
		t.Errorf("got[1].Text = %q, want %q", got[1].Text, "shocking")
	}
}

func TestMerge_SameTextDifferentDimensionKept(t *testing.T) {
	m := NewMerger()
	backend := []model.Highlight{
		{Dimension: model.DimFramingChoices, Text: "sources say", Confidence: 0.7},
		{Dimension: model.DimSourceTransparency, Text: "sources say", Confidence: 0.7},
	}
	if got := m.Merge(backend, nil, ""); len(got) != 2 {
		t.Errorf("len = %d, want 2 (dedup key is dimension+text)", len(got))
	}
}

func TestMerge_DropsLeakageAndEmpty(t *testing.T) {
	m := NewMerger()
	backend := []model.Highlight{
		{Dimension: model.DimFramingChoices, Text: "   ", Confidence: 0.7},
		{Dimension: model.DimFramingChoices, Text: "Return ONLY JSON with keys", Confidence: 0.7},
		{Dimension: model.DimFramingChoices, Text: "kept", Confidence: 0.7},
	}
	got := m.Merge(backend, nil, "")
	if len(got) != 1 || got[0].Text != "kept" {
		t.Errorf("got %+v, want single %q highlight", got, "kept")
	}
}

func TestMerge_Cap(t *testing.T) {
	m := NewMerger()
	var backend []model.Highlight
	for i := 0; i < 30; i++ {
		backend = append(backend, model.Highlight{
			Dimension:  model.DimFramingChoices,
			Text:       fmt.Sprintf("phrase %d", i),
			Confidence: 0.7,
		})
	}
	got := m.Merge(backend, nil, "")
	if len(got) != 20 {
		t.Errorf("len = %d, want cap 20", len(got))
	}
	if got[0].Text != "phrase 0" || got[19].Text != "phrase 19" {
		t.Errorf("cap must keep assembly order, got first %q last %q", got[0].Text, got[19].Text)
	}
}

func TestMerge_SynthesizesFromSummary(t *testing.T) {
	m := NewMerger()
	summary := "Short one. The committee voted along party lines after a heated exchange on funding. " +
		"Officials described the outcome as a major setback for the reform agenda this year. " +
		"Another long sentence that would qualify but must not be used at all here."

	got := m.Merge(nil, nil, summary)
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2 synthesized highlights", len(got))
	}
	if got[0].Dimension != model.DimFramingChoices || got[1].Dimension != model.DimEmotionalTone {
		t.Errorf("dimensions = %q,%q, want framing then emotional tone", got[0].Dimension, got[1].Dimension)
	}
	for _, h := range got {
		if h.Confidence != 0.6 {
			t.Errorf("synthesized confidence = %v, want 0.6", h.Confidence)
		}
		if len(h.Text) > 240 {
			t.Errorf("synthesized text exceeds 240 chars: %d", len(h.Text))
		}
		if h.Start != 0 || h.End != 0 {
			t.Errorf("synthesized span = (%d,%d), want (0,0)", h.Start, h.End)
		}
	}
	// The short first sentence is skipped.
	if got[0].Text == "Short one." {
		t.Errorf("sentence under eight words must be skipped")
	}
}

func TestMerge_SynthesisKeepsValidUTF8(t *testing.T) {
	m := NewMerger()
	// One long sentence of two-byte runes laid out so the 240-byte cap
	// would land inside a rune.
	summary := "A " + strings.Repeat("éé ", 60)

	got := m.Merge(nil, nil, summary)
	if len(got) != 1 {
		t.Fatalf("len = %d, want 1 synthesized highlight", len(got))
	}
	if len(got[0].Text) > 240 {
		t.Errorf("synthesized text is %d bytes, want at most 240", len(got[0].Text))
	}
	if !utf8.ValidString(got[0].Text) {
		t.Errorf("synthesized text is not valid UTF-8: %q", got[0].Text)
	}
}

func TestMerge_NoSynthesisWhenHighlightsExist(t *testing.T) {
	m := NewMerger()
	backend := []model.Highlight{{Dimension: model.DimEmotionalTone, Text: "furious", Confidence: 0.7}}
	got := m.Merge(backend, nil, "A perfectly long summary sentence with more than eight words in it.")
	if len(got) != 1 || got[0].Text != "furious" {
		t.Errorf("got %+v, want only the backend highlight", got)
	}
}
