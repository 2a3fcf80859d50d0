package recommend

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/Alias1177/Analyst/models"
)

// Generator combines the deterministic rule stance with an optional LLM
// narrative. The stance never depends on the narrator succeeding.
type Generator struct {
	narrator models.Narrator
	timeout  time.Duration
	logger   zerolog.Logger
}

// NewGenerator creates a recommendation generator. narrator may be nil, in
// which case every recommendation is rule-based and marked degraded.
func NewGenerator(narrator models.Narrator, timeout time.Duration) *Generator {
	return &Generator{
		narrator: narrator,
		timeout:  timeout,
		logger:   log.With().Str("component", "recommend").Logger(),
	}
}

// Recommend produces the recommendation for an assembled context. The LLM
// call runs under its own timeout; any failure falls back to the rule-based
// stance with Degraded set and the cause recorded, never an error.
func (g *Generator) Recommend(ctx context.Context, actx *models.AnalysisContext) *models.Recommendation {
	shortTerm, longTerm, confidence, factors := RuleStance(actx.Technical, actx.Fundamentals)

	rec := &models.Recommendation{
		ShortTerm:  shortTerm,
		LongTerm:   longTerm,
		Confidence: confidence,
		Factors:    factors,
	}

	if g.narrator == nil {
		rec.Degraded = true
		rec.DegradedReason = "no narrator configured"
		return rec
	}

	narrative, err := g.narrate(ctx, actx)
	if err != nil {
		recErr := &models.RecommendationUnavailableError{Err: err}
		g.logger.Warn().Err(recErr).Str("symbol", actx.Symbol).Msg("Falling back to rule-based stance only")
		rec.Degraded = true
		rec.DegradedReason = recErr.Error()
		return rec
	}

	rec.Narrative = ParseNarrative(narrative)
	return rec
}

func (g *Generator) narrate(ctx context.Context, actx *models.AnalysisContext) (string, error) {
	prompt, err := BuildPrompt(actx)
	if err != nil {
		return "", err
	}

	narrateCtx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	g.logger.Debug().Str("symbol", actx.Symbol).Msg("Requesting LLM narrative")
	return g.narrator.Narrate(narrateCtx, SystemPrompt, prompt)
}
