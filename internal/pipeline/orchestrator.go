package pipeline

import (
	"context"
	"time"

	"github.com/ppiankov/biaslab/internal/heuristic"
	"github.com/ppiankov/biaslab/internal/llm"
	"github.com/ppiankov/biaslab/internal/model"
	"golang.org/x/sync/errgroup"
)

// Orchestrator drives the ranked-backend + timeout + fallback protocol
// for each capability. Backends are tried in order; a candidate fails if
// it errors, times out, or returns structurally invalid data. The
// heuristic fallback performs no I/O and always succeeds, so a request
// never fails because a backend is slow.
type Orchestrator struct {
	backends       []llm.Backend
	fallback       *heuristic.Scorer
	attemptTimeout time.Duration
	gatherTimeout  time.Duration
}

// NewOrchestrator creates an orchestrator over the ranked backend chain.
func NewOrchestrator(backends []llm.Backend, cfg model.OrchestraConfig) *Orchestrator {
	attempt := cfg.AttemptTimeout
	if attempt == 0 {
		attempt = 25 * time.Second
	}
	gather := cfg.GatherTimeout
	if gather == 0 {
		gather = 60 * time.Second
	}
	return &Orchestrator{
		backends:       backends,
		fallback:       heuristic.NewScorer(),
		attemptTimeout: attempt,
		gatherTimeout:  gather,
	}
}

// Results holds the settled output of one gather run. Every field is
// populated by a winning backend or the heuristic fallback.
type Results struct {
	Score   *llm.ScoreResult
	Summary string
	Claims  []model.Claim
}

// Gather runs scoring and summarization (and claim extraction when full)
// concurrently under the gather deadline. If that deadline fires, score
// and summarize are re-run sequentially against fresh attempt deadlines
// and claims degrade to empty rather than failing the request.
func (o *Orchestrator) Gather(ctx context.Context, text string, full bool) *Results {
	gctx, cancel := context.WithTimeout(ctx, o.gatherTimeout)
	defer cancel()

	res := &Results{}
	g, tctx := errgroup.WithContext(gctx)
	g.Go(func() error {
		res.Score = o.score(tctx, text)
		return nil
	})
	g.Go(func() error {
		res.Summary = o.summarize(tctx, text)
		return nil
	})
	if full {
		g.Go(func() error {
			res.Claims = o.claims(tctx, text)
			return nil
		})
	}
	_ = g.Wait()

	// Availability over completeness: on gather timeout the partial
	// results are discarded and score/summarize run again sequentially.
	if gctx.Err() == context.DeadlineExceeded && ctx.Err() == nil {
		res.Score = o.score(ctx, text)
		res.Summary = o.summarize(ctx, text)
		res.Claims = nil
	}
	return res
}

// score walks the backend chain; scores missing any of the five
// dimensions disqualify a candidate.
func (o *Orchestrator) score(ctx context.Context, text string) *llm.ScoreResult {
	for _, b := range o.backends {
		actx, cancel := context.WithTimeout(ctx, o.attemptTimeout)
		res, err := b.Score(actx, text)
		cancel()
		if err != nil || res == nil || !res.Scores.Valid() {
			continue
		}
		return res
	}
	return o.fallback.Score(text)
}

func (o *Orchestrator) summarize(ctx context.Context, text string) string {
	for _, b := range o.backends {
		actx, cancel := context.WithTimeout(ctx, o.attemptTimeout)
		summary, err := b.Summarize(actx, text)
		cancel()
		if err != nil || summary == "" {
			continue
		}
		return summary
	}
	return o.fallback.Summarize(text)
}

func (o *Orchestrator) claims(ctx context.Context, text string) []model.Claim {
	for _, b := range o.backends {
		actx, cancel := context.WithTimeout(ctx, o.attemptTimeout)
		claims, err := b.ExtractClaims(actx, text)
		cancel()
		if err != nil || len(claims) == 0 {
			continue
		}
		return claims
	}
	return o.fallback.ExtractClaims(text)
}
