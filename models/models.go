package models

import (
	"math"
	"time"
)

// Trend classification derived from the fast/slow EMA relationship.
const (
	TrendBullish = "BULLISH"
	TrendBearish = "BEARISH"
	TrendNeutral = "NEUTRAL"
)

// Momentum classification derived from RSI bands.
const (
	MomentumOverbought = "OVERBOUGHT"
	MomentumOversold   = "OVERSOLD"
	MomentumNeutral    = "NEUTRAL"
)

// Recommendation stances.
const (
	StanceBuy  = "BUY"
	StanceHold = "HOLD"
	StanceSell = "SELL"
)

// Data sources recorded in AnalysisResult.Partial on non-fatal failures.
const (
	SourcePrices       = "prices"
	SourceFundamentals = "fundamentals"
	SourceNews         = "news"
	SourceEvents       = "events"
	SourceLLM          = "llm"
)

// PricePoint is one daily OHLCV bar.
type PricePoint struct {
	Date   time.Time `json:"date"`
	Open   float64   `json:"open"`
	High   float64   `json:"high"`
	Low    float64   `json:"low"`
	Close  float64   `json:"close"`
	Volume int64     `json:"volume,omitempty"`
}

// PriceSeries is a daily price history sorted ascending by date.
// It is fetched once per analysis and never mutated afterwards.
type PriceSeries []PricePoint

// Closes extracts the close column in series order.
func (s PriceSeries) Closes() []float64 {
	closes := make([]float64, len(s))
	for i, p := range s {
		closes[i] = p.Close
	}
	return closes
}

// Last returns the most recent point. The series must be non-empty.
func (s PriceSeries) Last() PricePoint {
	return s[len(s)-1]
}

// Validate checks the series invariants: non-empty, strictly increasing
// dates, finite and non-negative values. Violations are reported as
// *InsufficientDataError or *InvalidPriceDataError.
func (s PriceSeries) Validate() error {
	if len(s) == 0 {
		return &InsufficientDataError{Have: 0, Need: 1}
	}
	for i, p := range s {
		for _, v := range []float64{p.Open, p.High, p.Low, p.Close} {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return &InvalidPriceDataError{Index: i, Reason: "non-finite price"}
			}
			if v < 0 {
				return &InvalidPriceDataError{Index: i, Reason: "negative price"}
			}
		}
		if p.Volume < 0 {
			return &InvalidPriceDataError{Index: i, Reason: "negative volume"}
		}
		if i > 0 && !s[i-1].Date.Before(p.Date) {
			return &InvalidPriceDataError{Index: i, Reason: "dates not strictly increasing"}
		}
	}
	return nil
}

// HorizonReturn is a trailing return over a fixed horizon. Approximate is set
// when the series was shorter than the horizon and the earliest available
// point was used instead.
type HorizonReturn struct {
	Value       float64 `json:"value"`
	Approximate bool    `json:"approximate,omitempty"`
}

// IndicatorSet holds all indicators derived from one price series. It is
// recomputed in full on every request and never persisted.
type IndicatorSet struct {
	Close       float64                  `json:"close"`
	EMAFast     float64                  `json:"ema_fast"`
	EMASlow     float64                  `json:"ema_slow"`
	RSI         float64                  `json:"rsi"`
	MACDLine    float64                  `json:"macd_line"`
	MACDSignal  float64                  `json:"macd_signal"`
	MACDHist    float64                  `json:"macd_hist"`
	Volatility  float64                  `json:"volatility"`
	MaxDrawdown float64                  `json:"max_drawdown"`
	Returns     map[string]HorizonReturn `json:"returns"`
}

// TechnicalSummary is the indicator set plus trend/momentum classification.
// Created once per analysis, read-only afterwards.
type TechnicalSummary struct {
	Indicators IndicatorSet `json:"indicators"`
	Trend      string       `json:"trend"`
	Momentum   string       `json:"momentum"`
	AsOf       time.Time    `json:"as_of"`
}

// FundamentalsSummary is a normalized view over the raw fundamentals payload.
// Pointer fields stay nil when the provider did not report the metric.
type FundamentalsSummary struct {
	CompanyName   string   `json:"company_name,omitempty"`
	Sector        string   `json:"sector,omitempty"`
	Industry      string   `json:"industry,omitempty"`
	MarketCap     *float64 `json:"market_cap,omitempty"`
	PERatio       *float64 `json:"pe_ratio,omitempty"`
	Beta          *float64 `json:"beta,omitempty"`
	EPSTTM        *float64 `json:"eps_ttm,omitempty"`
	DividendYield *float64 `json:"dividend_yield,omitempty"`
	High52W       *float64 `json:"high_52w,omitempty"`
	Low52W        *float64 `json:"low_52w,omitempty"`
}

// RawFundamentals is the provider-agnostic fundamentals record: descriptive
// profile fields plus named numeric metrics. Absent keys are simply missing,
// never fabricated.
type RawFundamentals struct {
	CompanyName string             `json:"company_name,omitempty"`
	Sector      string             `json:"sector,omitempty"`
	Industry    string             `json:"industry,omitempty"`
	Metrics     map[string]float64 `json:"metrics,omitempty"`
}

// NewsItem is one headline; adapters return items most recent first.
type NewsItem struct {
	Headline  string    `json:"headline"`
	Source    string    `json:"source,omitempty"`
	Timestamp time.Time `json:"timestamp"`
	URL       string    `json:"url,omitempty"`
}

// Event is an upcoming or past corporate event, typically earnings.
type Event struct {
	Type            string    `json:"type"`
	Date            time.Time `json:"date"`
	EPSEstimate     *float64  `json:"eps_estimate,omitempty"`
	RevenueEstimate *float64  `json:"revenue_estimate,omitempty"`
}

// AnalysisContext aggregates everything fetched and derived for one symbol.
// It is owned by a single Analyze call and read-only after assembly.
type AnalysisContext struct {
	Symbol       string               `json:"symbol"`
	Prices       PriceSeries          `json:"-"`
	Technical    *TechnicalSummary    `json:"technical"`
	Fundamentals *FundamentalsSummary `json:"fundamentals,omitempty"`
	News         []NewsItem           `json:"news,omitempty"`
	Events       []Event              `json:"events,omitempty"`
	Partial      map[string]string    `json:"partial,omitempty"`
}

// Narrative is the parsed LLM explanation. Any section may be empty when the
// model omitted it; Raw always carries the full response text.
type Narrative struct {
	TLDR       string `json:"tldr,omitempty"`
	ShortTerm  string `json:"short_term,omitempty"`
	LongTerm   string `json:"long_term,omitempty"`
	Catalysts  string `json:"catalysts,omitempty"`
	Risks      string `json:"risks,omitempty"`
	Confidence string `json:"confidence,omitempty"`
	Raw        string `json:"raw"`
}

// Recommendation is the rule-based stance, optionally enriched with an LLM
// narrative. Degraded is set when the narrative is missing because the LLM
// call failed or timed out; the stance is always present.
type Recommendation struct {
	ShortTerm      string     `json:"short_term"`
	LongTerm       string     `json:"long_term"`
	Confidence     float64    `json:"confidence"`
	Factors        []string   `json:"factors,omitempty"`
	Narrative      *Narrative `json:"narrative,omitempty"`
	Degraded       bool       `json:"degraded,omitempty"`
	DegradedReason string     `json:"degraded_reason,omitempty"`
}

// AnalysisResult is the consolidated output of one Analyze call: the price
// series every computation used, the derived summaries and the
// recommendation. Consumers render it as-is and never recompute indicators.
type AnalysisResult struct {
	Symbol         string               `json:"symbol"`
	Prices         PriceSeries          `json:"prices"`
	Technical      *TechnicalSummary    `json:"technical"`
	Fundamentals   *FundamentalsSummary `json:"fundamentals,omitempty"`
	News           []NewsItem           `json:"news,omitempty"`
	Events         []Event              `json:"events,omitempty"`
	Recommendation *Recommendation      `json:"recommendation"`
	Partial        map[string]string    `json:"partial,omitempty"`
	GeneratedAt    time.Time            `json:"generated_at"`
}
