// Package pipeline orchestrates the complete bias analysis: backend
// fan-out with fallback, highlight merging, claim enrichment and the
// overall index.
package pipeline

import (
	"context"
	"strings"
	"time"

	"github.com/ppiankov/biaslab/internal/cache"
	"github.com/ppiankov/biaslab/internal/highlight"
	"github.com/ppiankov/biaslab/internal/llm"
	"github.com/ppiankov/biaslab/internal/model"
	"github.com/ppiankov/biaslab/internal/score"
	"github.com/ppiankov/biaslab/internal/sourcing"
)

// Analyzer runs the full analysis for one request.
type Analyzer struct {
	fetcher  *Fetcher
	orch     *Orchestrator
	patterns *highlight.PatternExtractor
	merger   *highlight.Merger
	enricher *sourcing.Enricher
}

// New wires an analyzer from configuration: ranked LLM backends, the
// Tavily source ranker when configured, and a cached text fetcher.
func New(cfg *model.Config) (*Analyzer, error) {
	backends, err := llm.BackendsFromConfig(cfg.LLM)
	if err != nil {
		return nil, err
	}

	var ranker sourcing.Ranker
	if cfg.Sourcing.TavilyKey != "" {
		tavily, err := sourcing.NewTavilyRanker(cfg.Sourcing.TavilyKey, cfg.Sourcing.PerClaimTimeout,
			cfg.HTTP.HTTPProxy, cfg.HTTP.HTTPSProxy, cfg.HTTP.NoProxy)
		if err != nil {
			return nil, err
		}
		ranker = tavily
	}

	var textCache cache.Cache
	if cfg.Cache.Enabled {
		if cfg.Cache.Dir != "" {
			textCache = cache.NewLayeredCache(cfg.Cache.TTL, cfg.Cache.Dir, cfg.Cache.TTL)
		} else {
			textCache = cache.NewMemoryCache(cfg.Cache.TTL, 10*time.Minute)
		}
	}

	a := NewWithBackends(backends, ranker, cfg)
	a.fetcher = NewFetcher(cfg.HTTP, textCache, cfg.Cache.TTL)
	return a, nil
}

// NewWithBackends builds an analyzer over explicit collaborators. Used
// directly in tests; New delegates here.
func NewWithBackends(backends []llm.Backend, ranker sourcing.Ranker, cfg *model.Config) *Analyzer {
	return &Analyzer{
		orch:     NewOrchestrator(backends, cfg.Orchestra),
		patterns: highlight.NewPatternExtractor(),
		merger:   highlight.NewMerger(),
		enricher: sourcing.NewEnricher(ranker, cfg.Sourcing),
	}
}

// Analyze produces a report for the request. It fails only when there is
// no analyzable text: backend failures degrade to the heuristic fallback
// and missing sources degrade to empty lists.
func (a *Analyzer) Analyze(ctx context.Context, req model.AnalysisRequest) (*model.AnalysisReport, error) {
	text := strings.TrimSpace(req.Text)
	if text == "" && req.URL != "" && a.fetcher != nil {
		fetched, err := a.fetcher.FetchText(ctx, req.URL)
		if err != nil {
			return nil, err
		}
		text = strings.TrimSpace(fetched)
	}
	if text == "" {
		return nil, model.ErrInvalidInput
	}

	res := a.orch.Gather(ctx, text, req.Full)

	highlights := a.merger.Merge(res.Score.Highlights, a.patterns.Extract(text), res.Summary)

	var claims []model.Claim
	if req.Full && len(res.Claims) > 0 {
		claims = a.enricher.Enrich(ctx, res.Claims)
	}

	title := req.Title
	if title == "" {
		title = req.URL
	}
	if title == "" {
		title = "Untitled"
	}

	return &model.AnalysisReport{
		Title:      title,
		Outlet:     req.Outlet,
		URL:        req.URL,
		Summary:    res.Summary,
		Scores:     res.Score.Scores,
		Highlights: highlights,
		Claims:     claims,
		Overall:    score.Overall(res.Score.Scores),
		AnalyzedAt: time.Now().UTC(),
	}, nil
}
