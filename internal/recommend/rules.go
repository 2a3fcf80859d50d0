package recommend

import (
	"fmt"

	"github.com/Alias1177/Analyst/models"
)

// Decision-table thresholds. The table is deliberately fixed and small so the
// stance is testable without any LLM involved.
const (
	peExpensive    = 40.0 // long-term Buy demoted to Hold above this P/E
	peCheap        = 10.0 // long-term Sell demoted to Hold below this P/E
	deepDrawdown   = -0.30
	baseConfidence = 0.5
)

// RuleStance derives the short-term and long-term stance from the technical
// summary and fundamentals.
//
// Short-term: Oversold momentum → Buy; Overbought momentum → Sell; otherwise
// the trend decides when the MACD histogram agrees with it, else Hold.
// Long-term: Bullish trend → Buy unless P/E > 40 (Hold); Bearish trend →
// Sell unless P/E < 10 (Hold); Neutral trend → Hold.
// Confidence starts at 0.5, +0.2 when trend and MACD histogram agree, +0.1
// when momentum confirms the trend, −0.2 when max drawdown is below −30%,
// clamped to [0, 1].
func RuleStance(tech *models.TechnicalSummary, fund *models.FundamentalsSummary) (shortTerm, longTerm string, confidence float64, factors []string) {
	ind := tech.Indicators

	shortTerm = models.StanceHold
	switch {
	case tech.Momentum == models.MomentumOversold:
		shortTerm = models.StanceBuy
		factors = append(factors, fmt.Sprintf("RSI %.1f oversold", ind.RSI))
	case tech.Momentum == models.MomentumOverbought:
		shortTerm = models.StanceSell
		factors = append(factors, fmt.Sprintf("RSI %.1f overbought", ind.RSI))
	case tech.Trend == models.TrendBullish && ind.MACDHist > 0:
		shortTerm = models.StanceBuy
		factors = append(factors, "bullish trend confirmed by positive MACD histogram")
	case tech.Trend == models.TrendBearish && ind.MACDHist < 0:
		shortTerm = models.StanceSell
		factors = append(factors, "bearish trend confirmed by negative MACD histogram")
	default:
		factors = append(factors, "mixed short-term signals")
	}

	var pe *float64
	if fund != nil {
		pe = fund.PERatio
	}

	longTerm = models.StanceHold
	switch tech.Trend {
	case models.TrendBullish:
		longTerm = models.StanceBuy
		factors = append(factors, "EMA fast above EMA slow")
		if pe != nil && *pe > peExpensive {
			longTerm = models.StanceHold
			factors = append(factors, fmt.Sprintf("P/E %.1f rich for a fresh long-term entry", *pe))
		}
	case models.TrendBearish:
		longTerm = models.StanceSell
		factors = append(factors, "EMA fast below EMA slow")
		if pe != nil && *pe > 0 && *pe < peCheap {
			longTerm = models.StanceHold
			factors = append(factors, fmt.Sprintf("P/E %.1f already pricing in weakness", *pe))
		}
	default:
		factors = append(factors, "no dominant trend")
	}

	confidence = baseConfidence
	if (tech.Trend == models.TrendBullish && ind.MACDHist > 0) ||
		(tech.Trend == models.TrendBearish && ind.MACDHist < 0) {
		confidence += 0.2
	}
	if (tech.Trend == models.TrendBullish && tech.Momentum != models.MomentumOverbought) ||
		(tech.Trend == models.TrendBearish && tech.Momentum != models.MomentumOversold) {
		confidence += 0.1
	}
	if ind.MaxDrawdown < deepDrawdown {
		confidence -= 0.2
		factors = append(factors, fmt.Sprintf("max drawdown %.0f%% tempers conviction", ind.MaxDrawdown*100))
	}
	if confidence < 0 {
		confidence = 0
	}
	if confidence > 1 {
		confidence = 1
	}

	return shortTerm, longTerm, confidence, factors
}
