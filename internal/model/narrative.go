package model

// ClusterArticle is the slice of a stored article the clusterer reads.
type ClusterArticle struct {
	ID    int64  `json:"id"`
	Title string `json:"title"`
	URL   string `json:"url,omitempty"`
}

// NarrativeCluster groups articles judged to cover the same story by
// token overlap. Produced fresh on every clustering run.
type NarrativeCluster struct {
	Label      string   `json:"label"`
	ArticleIDs []int64  `json:"article_ids"` // deduplicated, sorted descending
	Signature  []string `json:"token_signature"`
}
