package calculate

import "github.com/Alias1177/Analyst/models"

// TrailingReturn computes close[last]/close[last-horizon] − 1. When the
// series has fewer than horizon+1 points, the earliest available close is
// used as the base and approximate is reported true.
func TrailingReturn(prices []float64, horizon int) (value float64, approximate bool) {
	if len(prices) == 0 {
		return 0, true
	}
	last := prices[len(prices)-1]
	baseIdx := len(prices) - 1 - horizon
	if baseIdx < 0 {
		baseIdx = 0
		approximate = true
	}
	base := prices[baseIdx]
	if base == 0 {
		return 0, true
	}
	return last/base - 1, approximate
}

// YTDReturn computes the return from the first close of the latest point's
// calendar year. It reports ok=false when fewer than two points fall inside
// that year, in which case the horizon is absent rather than fabricated.
func YTDReturn(series models.PriceSeries) (value float64, ok bool) {
	if len(series) == 0 {
		return 0, false
	}
	year := series.Last().Date.Year()

	start := -1
	for i, p := range series {
		if p.Date.Year() == year {
			start = i
			break
		}
	}
	if start < 0 || start == len(series)-1 {
		return 0, false
	}
	base := series[start].Close
	if base == 0 {
		return 0, false
	}
	return series.Last().Close/base - 1, true
}
