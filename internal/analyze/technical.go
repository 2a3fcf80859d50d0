package analyze

import (
	"math"

	"github.com/Alias1177/Analyst/internal/calculate"
	"github.com/Alias1177/Analyst/models"
)

// trendTolerance is the near-equality band for the fast/slow EMA comparison:
// within 0.1% of the slow EMA the trend is Neutral.
const trendTolerance = 0.001

// RSI bands for momentum classification.
const (
	rsiOverbought = 70.0
	rsiOversold   = 30.0
)

// TechnicalSummary classifies trend and momentum on top of the computed
// indicator set. It is a pure function of the series: no I/O, and identical
// input always yields an identical summary.
func TechnicalSummary(series models.PriceSeries, p calculate.Params) (*models.TechnicalSummary, error) {
	set, err := calculate.ComputeIndicatorSet(series, p)
	if err != nil {
		return nil, err
	}

	return &models.TechnicalSummary{
		Indicators: *set,
		Trend:      classifyTrend(set.EMAFast, set.EMASlow),
		Momentum:   classifyMomentum(set.RSI),
		AsOf:       series.Last().Date,
	}, nil
}

func classifyTrend(emaFast, emaSlow float64) string {
	if emaSlow != 0 && math.Abs(emaFast-emaSlow) <= trendTolerance*math.Abs(emaSlow) {
		return models.TrendNeutral
	}
	switch {
	case emaFast > emaSlow:
		return models.TrendBullish
	case emaFast < emaSlow:
		return models.TrendBearish
	default:
		return models.TrendNeutral
	}
}

func classifyMomentum(rsi float64) string {
	switch {
	case rsi > rsiOverbought:
		return models.MomentumOverbought
	case rsi < rsiOversold:
		return models.MomentumOversold
	default:
		return models.MomentumNeutral
	}
}
