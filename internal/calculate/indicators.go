package calculate

import "github.com/Alias1177/Analyst/models"

// Trailing-return horizons in trading days, keyed by their result label.
var returnHorizons = []struct {
	label string
	days  int
}{
	{"5d", 5},
	{"21d", 21},
	{"63d", 63},
	{"252d", 252},
}

// Params holds the indicator periods. Every window degrades to the available
// span when the series is shorter, so Params never makes a series invalid.
type Params struct {
	EMAFast    int
	EMASlow    int
	RSIPeriod  int
	MACDFast   int
	MACDSlow   int
	MACDSignal int
	VolWindow  int
}

// DefaultParams returns the standard daily-chart periods.
func DefaultParams() Params {
	return Params{
		EMAFast:    50,
		EMASlow:    200,
		RSIPeriod:  14,
		MACDFast:   12,
		MACDSlow:   26,
		MACDSignal: 9,
		VolWindow:  21,
	}
}

// ComputeIndicatorSet validates the series and computes every indicator from
// it. An empty series fails with *models.InsufficientDataError; non-finite
// prices fail with *models.InvalidPriceDataError before any computation runs.
func ComputeIndicatorSet(series models.PriceSeries, p Params) (*models.IndicatorSet, error) {
	if err := series.Validate(); err != nil {
		return nil, err
	}

	closes := series.Closes()
	macdLine, macdSignal, macdHist := MACD(closes, p.MACDFast, p.MACDSlow, p.MACDSignal)

	returns := make(map[string]models.HorizonReturn, len(returnHorizons)+1)
	for _, h := range returnHorizons {
		value, approx := TrailingReturn(closes, h.days)
		returns[h.label] = models.HorizonReturn{Value: value, Approximate: approx}
	}
	if ytd, ok := YTDReturn(series); ok {
		returns["YTD"] = models.HorizonReturn{Value: ytd}
	}

	return &models.IndicatorSet{
		Close:       closes[len(closes)-1],
		EMAFast:     EMA(closes, p.EMAFast),
		EMASlow:     EMA(closes, p.EMASlow),
		RSI:         RSI(closes, p.RSIPeriod),
		MACDLine:    macdLine,
		MACDSignal:  macdSignal,
		MACDHist:    macdHist,
		Volatility:  Volatility(closes, p.VolWindow),
		MaxDrawdown: MaxDrawdown(closes),
		Returns:     returns,
	}, nil
}
