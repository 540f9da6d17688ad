package model

import "time"

// The five fixed bias dimensions. Backend scoring responses must carry
// every one of them to be considered valid.
const (
	DimIdeologicalStance  = "ideological_stance"
	DimFactualGrounding   = "factual_grounding"
	DimFramingChoices     = "framing_choices"
	DimEmotionalTone      = "emotional_tone"
	DimSourceTransparency = "source_transparency"
)

// Dimensions lists the bias axes in canonical order.
var Dimensions = []string{
	DimIdeologicalStance,
	DimFactualGrounding,
	DimFramingChoices,
	DimEmotionalTone,
	DimSourceTransparency,
}

// DimensionScores maps each bias dimension to a value in [0,100].
type DimensionScores map[string]float64

// Valid reports whether all five dimensions are present.
func (s DimensionScores) Valid() bool {
	for _, dim := range Dimensions {
		if _, ok := s[dim]; !ok {
			return false
		}
	}
	return true
}

// Highlight is a text span plus metadata evidencing a bias judgment.
// Dedup identity is the (Dimension, Text) pair.
type Highlight struct {
	Dimension  string  `json:"dimension"`
	Text       string  `json:"text"`
	Start      int     `json:"start"`
	End        int     `json:"end"`
	Reason     string  `json:"reason"`
	Confidence float64 `json:"confidence"`
}

// OverallScore is the derived bias index with its band.
type OverallScore struct {
	Value int    `json:"value"` // 0-100
	Band  string `json:"band"`  // low, medium, high, extremely_high
}

// AnalysisRequest is the immutable input to Analyze. Either Text or URL
// must be set; when Text is empty the URL is fetched and stripped.
type AnalysisRequest struct {
	Title  string `json:"title,omitempty"`
	Outlet string `json:"outlet,omitempty"`
	URL    string `json:"url,omitempty"`
	Text   string `json:"text,omitempty"`
	Full   bool   `json:"full"` // include claims + primary sources (slower)
}

// AnalysisReport is the complete output of one analysis run.
type AnalysisReport struct {
	Title      string          `json:"title"`
	Outlet     string          `json:"outlet,omitempty"`
	URL        string          `json:"url,omitempty"`
	Summary    string          `json:"summary,omitempty"`
	Scores     DimensionScores `json:"scores"`
	Highlights []Highlight     `json:"highlights"` // at most 20
	Claims     []Claim         `json:"claims"`     // at most 8, only when Full
	Overall    OverallScore    `json:"overall"`
	AnalyzedAt time.Time       `json:"analyzed_at"`
}
