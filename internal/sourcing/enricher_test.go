package sourcing

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/ppiankov/biaslab/internal/model"
)

type slowRanker struct {
	delay   time.Duration
	results []model.Source
}

func (s *slowRanker) Search(ctx context.Context, query string, count int) ([]model.Source, error) {
	select {
	case <-time.After(s.delay):
		return s.results, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func TestEnrich_AttachesSources(t *testing.T) {
	f := &fakeRanker{results: []model.Source{
		{Title: "Primary", URL: "https://agency.gov/press", Score: 0.8},
		{Title: "Secondary", URL: "https://news.example.com/a", Score: 0.7},
		{Title: "Tertiary", URL: "https://other.example.org/b", Score: 0.6},
	}}
	e := NewEnricher(f, model.SourcingConfig{})

	claims := []model.Claim{
		{Text: "  The ministry cut funding by 40 percent.  ", Rationale: "key claim", Confidence: 0.8},
	}
	got := e.Enrich(context.Background(), claims)
	if len(got) != 1 {
		t.Fatalf("claims = %d, want 1", len(got))
	}
	if got[0].Text != "The ministry cut funding by 40 percent." {
		t.Errorf("claim text = %q, want trimmed", got[0].Text)
	}
	if got[0].Rationale != "key claim" || got[0].Confidence != 0.8 {
		t.Errorf("claim metadata changed: %+v", got[0])
	}
	if len(got[0].Sources) != 2 {
		t.Fatalf("sources = %d, want trimmed to 2", len(got[0].Sources))
	}
	if got[0].Sources[0].URL != "https://agency.gov/press" {
		t.Errorf("top source = %q, want the .gov result", got[0].Sources[0].URL)
	}
}

func TestEnrich_CapsClaims(t *testing.T) {
	f := &fakeRanker{}
	e := NewEnricher(f, model.SourcingConfig{})

	var claims []model.Claim
	for i := 0; i < 12; i++ {
		claims = append(claims, model.Claim{Text: fmt.Sprintf("claim %d", i)})
	}
	got := e.Enrich(context.Background(), claims)
	if len(got) != 8 {
		t.Errorf("claims = %d, want cap 8", len(got))
	}
	if got[0].Text != "claim 0" || got[7].Text != "claim 7" {
		t.Errorf("input order not preserved: first %q last %q", got[0].Text, got[7].Text)
	}
}

func TestEnrich_TimeoutLeavesClaimWithoutSources(t *testing.T) {
	slow := &slowRanker{
		delay:   200 * time.Millisecond,
		results: []model.Source{{Title: "late", URL: "https://x.example.com", Score: 0.9}},
	}
	e := NewEnricher(slow, model.SourcingConfig{PerClaimTimeout: 20 * time.Millisecond})

	got := e.Enrich(context.Background(), []model.Claim{{Text: "a substantive claim"}})
	if len(got) != 1 {
		t.Fatalf("claims = %d, want claim emitted despite timeout", len(got))
	}
	if len(got[0].Sources) != 0 {
		t.Errorf("sources = %+v, want none after timeout", got[0].Sources)
	}
}

func TestEnrich_NilRankerAndBlankClaims(t *testing.T) {
	e := NewEnricher(nil, model.SourcingConfig{})

	got := e.Enrich(context.Background(), []model.Claim{
		{Text: "kept claim"},
		{Text: "   "},
	})
	if len(got) != 1 {
		t.Fatalf("claims = %d, want blank claim dropped", len(got))
	}
	if len(got[0].Sources) != 0 {
		t.Errorf("sources = %+v, want none with nil ranker", got[0].Sources)
	}

	if got := e.Enrich(context.Background(), nil); got != nil {
		t.Errorf("Enrich(nil) = %+v, want nil", got)
	}
}
