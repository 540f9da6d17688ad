// Package score derives the overall bias index from dimension scores.
package score

import (
	"math"

	"github.com/ppiankov/biaslab/internal/model"
)

// Band thresholds for the overall index.
const (
	bandMedium        = 30
	bandHigh          = 50
	bandExtremelyHigh = 70
)

// BiasIndex computes the weighted overall index from dimension scores.
// Missing dimensions count as 0; an empty score set yields 0.
//
//	0.25*framing + 0.25*(100-factual) + 0.20*(100-source) + 0.15*emotion + 0.15*ideology
func BiasIndex(scores model.DimensionScores) int {
	if len(scores) == 0 {
		return 0
	}

	framing := scores[model.DimFramingChoices]
	factualInv := 100 - scores[model.DimFactualGrounding]
	sourceInv := 100 - scores[model.DimSourceTransparency]
	emotion := scores[model.DimEmotionalTone]
	ideology := scores[model.DimIdeologicalStance]

	val := 0.25*framing + 0.25*factualInv + 0.20*sourceInv + 0.15*emotion + 0.15*ideology
	idx := int(math.Round(val))
	if idx < 0 {
		idx = 0
	}
	if idx > 100 {
		idx = 100
	}
	return idx
}

// Band maps an index value to its bias band.
func Band(value int) string {
	switch {
	case value < bandMedium:
		return "low"
	case value < bandHigh:
		return "medium"
	case value < bandExtremelyHigh:
		return "high"
	default:
		return "extremely_high"
	}
}

// Overall combines BiasIndex and Band.
func Overall(scores model.DimensionScores) model.OverallScore {
	v := BiasIndex(scores)
	return model.OverallScore{Value: v, Band: Band(v)}
}
