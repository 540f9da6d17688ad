// Package narrative groups analyzed articles into labeled story clusters
// by token-set similarity.
package narrative

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/ppiankov/biaslab/internal/model"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Window and threshold bounds.
const (
	MinWindow    = 5
	MaxWindow    = 200
	MinThreshold = 0.1
	MaxThreshold = 0.9
)

var tokenRe = regexp.MustCompile(`[A-Za-z0-9]+`)

var stopWords = map[string]bool{
	"the": true, "a": true, "an": true, "and": true, "or": true,
	"to": true, "of": true, "for": true, "in": true, "on": true,
	"with": true, "at": true, "by": true, "from": true, "about": true,
}

var labelCaser = cases.Title(language.English)

// Clusterer performs greedy first-fit clustering over a recency window.
// It is order-sensitive: articles are assigned to the first existing
// cluster (in creation order) whose signature is similar enough, never
// re-clustered or merged.
type Clusterer struct {
	threshold float64
}

// NewClusterer creates a clusterer with the given Jaccard threshold,
// clamped to [0.1, 0.9].
func NewClusterer(threshold float64) *Clusterer {
	if threshold < MinThreshold {
		threshold = MinThreshold
	}
	if threshold > MaxThreshold {
		threshold = MaxThreshold
	}
	return &Clusterer{threshold: threshold}
}

// ClampWindow bounds a requested window size to [5, 200].
func ClampWindow(n int) int {
	if n < MinWindow {
		return MinWindow
	}
	if n > MaxWindow {
		return MaxWindow
	}
	return n
}

type bucket struct {
	tokens map[string]bool
	ids    []int64
}

// Cluster places each article, most recent first, into the first cluster
// whose accumulated token signature meets the threshold, or starts a new
// one. Cluster labels come from the three longest signature tokens.
func (c *Clusterer) Cluster(articles []model.ClusterArticle) []model.NarrativeCluster {
	if len(articles) == 0 {
		return nil
	}

	var buckets []*bucket
	for _, a := range articles {
		toks := Tokenize(articleKey(a))
		placed := false
		for _, b := range buckets {
			if jaccard(toks, b.tokens) >= c.threshold {
				for t := range toks {
					b.tokens[t] = true
				}
				b.ids = append(b.ids, a.ID)
				placed = true
				break
			}
		}
		if !placed {
			buckets = append(buckets, &bucket{tokens: toks, ids: []int64{a.ID}})
		}
	}

	out := make([]model.NarrativeCluster, 0, len(buckets))
	for _, b := range buckets {
		ids := dedupeDescending(b.ids)
		if len(ids) == 0 {
			continue
		}
		out = append(out, model.NarrativeCluster{
			Label:      label(b.tokens, ids[0], articles),
			ArticleIDs: ids,
			Signature:  sortedTokens(b.tokens),
		})
	}
	return out
}

// articleKey picks the text the token signature is built from.
func articleKey(a model.ClusterArticle) string {
	if a.Title != "" {
		return a.Title
	}
	if a.URL != "" {
		return a.URL
	}
	return fmt.Sprintf("article-%d", a.ID)
}

// Tokenize lowercases s and keeps alphanumeric tokens longer than two
// characters that are not stop words.
func Tokenize(s string) map[string]bool {
	tokens := make(map[string]bool)
	for _, t := range tokenRe.FindAllString(strings.ToLower(s), -1) {
		if len(t) > 2 && !stopWords[t] {
			tokens[t] = true
		}
	}
	return tokens
}

func jaccard(a, b map[string]bool) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	inter := 0
	for t := range a {
		if b[t] {
			inter++
		}
	}
	union := len(a) + len(b) - inter
	return float64(inter) / float64(union)
}

// label joins the three longest-then-lexicographically-first tokens,
// title-cased. An empty signature falls back to the representative
// (highest-id) article's title, or "Narrative".
func label(tokens map[string]bool, repID int64, articles []model.ClusterArticle) string {
	if len(tokens) > 0 {
		top := sortedTokens(tokens)
		if len(top) > 3 {
			top = top[:3]
		}
		return labelCaser.String(strings.Join(top, " / "))
	}
	for _, a := range articles {
		if a.ID == repID && a.Title != "" {
			return a.Title
		}
	}
	return "Narrative"
}

// sortedTokens orders tokens longest first, ties broken lexicographically
// (byte order; non-ASCII tokens sort by codepoint).
func sortedTokens(tokens map[string]bool) []string {
	out := make([]string, 0, len(tokens))
	for t := range tokens {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool {
		if len(out[i]) != len(out[j]) {
			return len(out[i]) > len(out[j])
		}
		return out[i] < out[j]
	})
	return out
}

func dedupeDescending(ids []int64) []int64 {
	seen := make(map[int64]bool, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] > out[j] })
	return out
}
