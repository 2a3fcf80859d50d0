package recommend

import (
	"encoding/json"
	"fmt"

	"github.com/Alias1177/Analyst/models"
)

// SystemPrompt fixes the markdown section contract the narrative parser
// expects. Missing sections are tolerated on the way back.
const SystemPrompt = `You are an expert financial research assistant.

You will be given a JSON context containing: technical summary, fundamentals summary, and optional news/event highlights.

Write your answer in Markdown with the EXACT section headings below (use '## ' headings) and keep it concise:

## TL;DR
- 1-2 bullets.

## Short-Term (Days-Weeks)
- Recommendation: One of [Bullish / Neutral / Cautious]
- 2-4 bullets citing numeric signals (e.g., EMA50 vs EMA200, RSI, MACD, recent return).

## Long-Term (Months+)
- Recommendation: One of [Constructive / Neutral / Cautious]
- 2-4 bullets citing numeric signals (e.g., trend, drawdown, valuation like P/E if provided).

## Key Catalysts
- 2-5 bullets (earnings, macro, product cycles, notable recent headlines if present).

## Key Risks
- 2-5 bullets (valuation, trend deterioration, macro, event risk).

## Confidence
- One of [Low / Medium / High] + 1 sentence why.

Rules:
- Do NOT give financial advice. Use neutral language ("could", "may", "suggests").
- Reference only what is in the provided context; do not invent facts.`

// promptContext is the compact JSON shape handed to the LLM. The full price
// series stays out; the model only needs the derived numbers and highlights.
type promptContext struct {
	Symbol       string                      `json:"symbol"`
	Technical    *models.TechnicalSummary    `json:"technical"`
	Fundamentals *models.FundamentalsSummary `json:"fundamentals,omitempty"`
	NewsCount    int                         `json:"recent_news_count"`
	EventsCount  int                         `json:"upcoming_events_count"`
	News         []models.NewsItem           `json:"news_highlights,omitempty"`
	Events       []models.Event              `json:"event_highlights,omitempty"`
	Partial      map[string]string           `json:"partial_failures,omitempty"`
}

// maxHighlights bounds news/event items serialized into the prompt.
const maxHighlights = 6

// BuildPrompt serializes the analysis context into the user prompt.
func BuildPrompt(actx *models.AnalysisContext) (string, error) {
	pc := promptContext{
		Symbol:       actx.Symbol,
		Technical:    actx.Technical,
		Fundamentals: actx.Fundamentals,
		NewsCount:    len(actx.News),
		EventsCount:  len(actx.Events),
		News:         headOf(actx.News, maxHighlights),
		Events:       headOf(actx.Events, maxHighlights),
		Partial:      actx.Partial,
	}

	data, err := json.MarshalIndent(pc, "", "  ")
	if err != nil {
		return "", fmt.Errorf("serializing context: %w", err)
	}
	return "Please analyze this context:\n" + string(data), nil
}

func headOf[T any](items []T, n int) []T {
	if len(items) <= n {
		return items
	}
	return items[:n]
}
