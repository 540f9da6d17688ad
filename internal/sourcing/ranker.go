// Package sourcing finds and ranks primary sources for extracted claims.
package sourcing

import (
	"context"
	"net/url"
	"sort"
	"strings"

	"github.com/ppiankov/biaslab/internal/model"
)

// Ranker is the external search capability. Implementations return an
// unordered candidate list and fail closed: empty results, never errors
// that would break analysis.
type Ranker interface {
	Search(ctx context.Context, query string, count int) ([]model.Source, error)
}

// Domains that aggregate or repost rather than originate.
var aggregatorDomains = []string{
	"wikipedia.org", "reddit.com", "x.com", "twitter.com", "facebook.com", "medium.com",
}

// DomainBonus is the heuristic bump for likely primary sources, applied
// to the base relevance score. Bonuses and penalties are additive.
func DomainBonus(rawURL, title string) float64 {
	u := strings.ToLower(rawURL)
	t := strings.ToLower(title)
	host := hostOf(u)

	b := 0.0
	if strings.HasSuffix(host, ".gov") || strings.HasSuffix(host, ".mil") || strings.HasSuffix(host, ".edu") {
		b += 0.25
	}
	if strings.HasSuffix(u, ".pdf") || strings.Contains(u, "filetype:pdf") {
		b += 0.15
	}
	if strings.Contains(t, "press") && strings.Contains(t, "release") {
		b += 0.10
	}
	if strings.Contains(t, "official") || strings.Contains(t, "statement") {
		b += 0.08
	}
	for _, bad := range aggregatorDomains {
		if strings.HasSuffix(host, bad) {
			b -= 0.25
			break
		}
	}
	return b
}

// Rerank applies the domain bonus to each candidate's base score, clamps
// to [0,1], orders best first, keeps one result per network domain, and
// trims to k.
func Rerank(items []model.Source, k int) []model.Source {
	ranked := make([]model.Source, 0, len(items))
	for _, it := range items {
		it.Score = clamp01(it.Score + DomainBonus(it.URL, it.Title))
		ranked = append(ranked, it)
	}

	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].Score > ranked[j].Score })

	seen := make(map[string]bool)
	out := make([]model.Source, 0, k)
	for _, it := range ranked {
		host := hostOf(strings.ToLower(it.URL))
		if host == "" || seen[host] {
			continue
		}
		seen[host] = true
		out = append(out, it)
	}

	if k < 1 {
		k = 1
	}
	if len(out) > k {
		out = out[:k]
	}
	return out
}

// FindPrimarySources returns up to k likely-primary sources for a claim.
// Ranker failures yield an empty list rather than breaking analysis.
func FindPrimarySources(ctx context.Context, ranker Ranker, query string, k int) []model.Source {
	if ranker == nil || strings.TrimSpace(query) == "" {
		return nil
	}

	// Pull a few extra so re-ranking and per-domain dedup have room.
	want := k * 3
	if want < 5 {
		want = 5
	}
	if want > 12 {
		want = 12
	}

	raw, err := ranker.Search(ctx, query, want)
	if err != nil || len(raw) == 0 {
		return nil
	}
	return Rerank(raw, k)
}

func hostOf(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return parsed.Host
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
