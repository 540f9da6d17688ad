package sourcing

import (
	"context"
	"strings"
	"time"

	"github.com/ppiankov/biaslab/internal/model"
)

// Enricher attaches primary sources to extracted claims under a strict
// time and count budget.
type Enricher struct {
	ranker          Ranker
	perClaimTimeout time.Duration
	maxClaims       int
	sourcesPerClaim int
	candidates      int
}

// NewEnricher creates a claim enricher. A nil ranker disables lookups;
// claims still pass through with empty sources.
func NewEnricher(ranker Ranker, cfg model.SourcingConfig) *Enricher {
	perClaim := cfg.PerClaimTimeout
	if perClaim == 0 {
		perClaim = 5 * time.Second
	}
	maxClaims := cfg.MaxClaims
	if maxClaims <= 0 {
		maxClaims = 8
	}
	perSource := cfg.SourcesPerClaim
	if perSource <= 0 {
		perSource = 2
	}
	candidates := cfg.CandidatesPerClaim
	if candidates <= 0 {
		candidates = 3
	}
	return &Enricher{
		ranker:          ranker,
		perClaimTimeout: perClaim,
		maxClaims:       maxClaims,
		sourcesPerClaim: perSource,
		candidates:      candidates,
	}
}

// Enrich processes at most the first eight claims, looking up sources for
// each under its own deadline. A timed-out or failed lookup leaves that
// claim with no sources; the claim itself is always emitted. Output order
// follows input claim order.
func (e *Enricher) Enrich(ctx context.Context, claims []model.Claim) []model.Claim {
	if len(claims) == 0 {
		return nil
	}
	if len(claims) > e.maxClaims {
		claims = claims[:e.maxClaims]
	}

	out := make([]model.Claim, 0, len(claims))
	for _, c := range claims {
		query := strings.TrimSpace(c.Text)
		if query == "" {
			continue
		}

		var sources []model.Source
		if e.ranker != nil {
			cctx, cancel := context.WithTimeout(ctx, e.perClaimTimeout)
			sources = FindPrimarySources(cctx, e.ranker, query, e.candidates)
			cancel()
		}
		if len(sources) > e.sourcesPerClaim {
			sources = sources[:e.sourcesPerClaim]
		}

		out = append(out, model.Claim{
			Text:       query,
			Rationale:  c.Rationale,
			Confidence: c.Confidence,
			Sources:    sources,
		})
	}
	return out
}
