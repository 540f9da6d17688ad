package model

// Claim is an atomic, checkable assertion extracted from the article.
type Claim struct {
	Text       string   `json:"text"`
	Rationale  string   `json:"rationale,omitempty"`
	Confidence float64  `json:"confidence,omitempty"`
	Sources    []Source `json:"sources"` // at most 2, one per domain
}

// Source is an externally ranked citation judged likely authoritative
// for a claim.
type Source struct {
	Title     string  `json:"title"`
	URL       string  `json:"url"`
	Score     float64 `json:"score"` // 0-1 after re-ranking
	Published string  `json:"published,omitempty"`
}
