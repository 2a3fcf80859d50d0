package recommend

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Alias1177/Analyst/models"
)

type stubNarrator struct {
	response string
	err      error
	delay    time.Duration
}

func (s *stubNarrator) Narrate(ctx context.Context, system, user string) (string, error) {
	if s.delay > 0 {
		select {
		case <-time.After(s.delay):
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	return s.response, s.err
}

func testContext() *models.AnalysisContext {
	return &models.AnalysisContext{
		Symbol:    "AAPL",
		Technical: summaryWith(models.TrendBullish, models.MomentumNeutral, 1.2, 58, -0.08),
	}
}

func TestRecommendWithNarrative(t *testing.T) {
	gen := NewGenerator(&stubNarrator{response: "## TL;DR\nLooks constructive."}, time.Second)

	rec := gen.Recommend(context.Background(), testContext())
	if rec.Degraded {
		t.Fatalf("Degraded = true, reason %q", rec.DegradedReason)
	}
	if rec.ShortTerm != models.StanceBuy {
		t.Errorf("ShortTerm = %v, want BUY", rec.ShortTerm)
	}
	if rec.Narrative == nil || rec.Narrative.TLDR != "Looks constructive." {
		t.Errorf("Narrative = %+v", rec.Narrative)
	}
}

func TestRecommendNilNarrator(t *testing.T) {
	gen := NewGenerator(nil, time.Second)

	rec := gen.Recommend(context.Background(), testContext())
	if !rec.Degraded {
		t.Fatal("Degraded = false, want degraded without a narrator")
	}
	if rec.ShortTerm != models.StanceBuy || rec.LongTerm != models.StanceBuy {
		t.Errorf("stance = %v/%v, rule stance must survive degradation", rec.ShortTerm, rec.LongTerm)
	}
	if rec.Narrative != nil {
		t.Error("Narrative must be nil when no narrator is configured")
	}
}

func TestRecommendNarratorFailure(t *testing.T) {
	gen := NewGenerator(&stubNarrator{err: errors.New("upstream 500")}, time.Second)

	rec := gen.Recommend(context.Background(), testContext())
	if !rec.Degraded {
		t.Fatal("Degraded = false, want degraded on narrator failure")
	}
	if rec.DegradedReason == "" {
		t.Error("DegradedReason empty, want the cause recorded")
	}
	if rec.Confidence <= 0 {
		t.Errorf("Confidence = %v, rule confidence must survive degradation", rec.Confidence)
	}
}

func TestRecommendNarratorTimeout(t *testing.T) {
	gen := NewGenerator(&stubNarrator{response: "late", delay: 200 * time.Millisecond}, 10*time.Millisecond)

	rec := gen.Recommend(context.Background(), testContext())
	if !rec.Degraded {
		t.Fatal("Degraded = false, want degraded when the narrator times out")
	}
	if rec.ShortTerm != models.StanceBuy {
		t.Errorf("ShortTerm = %v, stance must not change on timeout", rec.ShortTerm)
	}
}
