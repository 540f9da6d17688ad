package score

import (
	"testing"

	"github.com/ppiankov/biaslab/internal/model"
)

func allDims(v float64) model.DimensionScores {
	return model.DimensionScores{
		model.DimIdeologicalStance:  v,
		model.DimFactualGrounding:   v,
		model.DimFramingChoices:     v,
		model.DimEmotionalTone:      v,
		model.DimSourceTransparency: v,
	}
}

func TestBiasIndex_Range(t *testing.T) {
	for _, v := range []float64{0, 13, 27.5, 50, 77, 100} {
		idx := BiasIndex(allDims(v))
		if idx < 0 || idx > 100 {
			t.Errorf("BiasIndex(all=%v) = %d, want in [0,100]", v, idx)
		}
	}
}

func TestBiasIndex_Weights(t *testing.T) {
	// Maximally biased: loaded framing, no factual grounding, opaque
	// sourcing, charged tone, strong stance.
	scores := model.DimensionScores{
		model.DimIdeologicalStance:  100,
		model.DimFactualGrounding:   0,
		model.DimFramingChoices:     100,
		model.DimEmotionalTone:      100,
		model.DimSourceTransparency: 0,
	}
	if got := BiasIndex(scores); got != 100 {
		t.Errorf("BiasIndex(max bias) = %d, want 100", got)
	}

	// Fully grounded and transparent, neutral otherwise.
	scores = model.DimensionScores{
		model.DimIdeologicalStance:  0,
		model.DimFactualGrounding:   100,
		model.DimFramingChoices:     0,
		model.DimEmotionalTone:      0,
		model.DimSourceTransparency: 100,
	}
	if got := BiasIndex(scores); got != 0 {
		t.Errorf("BiasIndex(min bias) = %d, want 0", got)
	}

	// 0.25*60 + 0.25*(100-40) + 0.20*(100-50) + 0.15*30 + 0.15*70 = 55
	scores = model.DimensionScores{
		model.DimIdeologicalStance:  70,
		model.DimFactualGrounding:   40,
		model.DimFramingChoices:     60,
		model.DimEmotionalTone:      30,
		model.DimSourceTransparency: 50,
	}
	if got := BiasIndex(scores); got != 55 {
		t.Errorf("BiasIndex(mixed) = %d, want 55", got)
	}
}

func TestBiasIndex_AllZeroScores(t *testing.T) {
	// A populated map of zeros is not treated as "no scores": the
	// inverted factual and source terms contribute 25 + 20 = 45.
	if got := BiasIndex(allDims(0)); got != 45 {
		t.Errorf("BiasIndex(all zero) = %d, want 45", got)
	}
	overall := Overall(allDims(0))
	if overall.Value != 45 || overall.Band != "medium" {
		t.Errorf("Overall(all zero) = %+v, want value 45 band medium", overall)
	}
}

func TestBiasIndex_Empty(t *testing.T) {
	if got := BiasIndex(nil); got != 0 {
		t.Errorf("BiasIndex(nil) = %d, want 0", got)
	}
	if got := BiasIndex(model.DimensionScores{}); got != 0 {
		t.Errorf("BiasIndex(empty) = %d, want 0", got)
	}
	overall := Overall(nil)
	if overall.Value != 0 || overall.Band != "low" {
		t.Errorf("Overall(nil) = %+v, want value 0 band low", overall)
	}
}

func TestBand_Boundaries(t *testing.T) {
	tests := []struct {
		value int
		want  string
	}{
		{0, "low"},
		{29, "low"},
		{30, "medium"},
		{49, "medium"},
		{50, "high"},
		{69, "high"},
		{70, "extremely_high"},
		{100, "extremely_high"},
	}
	for _, tt := range tests {
		if got := Band(tt.value); got != tt.want {
			t.Errorf("Band(%d) = %q, want %q", tt.value, got, tt.want)
		}
	}
}
