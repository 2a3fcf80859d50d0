package calculate

// EMASeries returns the exponential moving average at every index of prices.
// The smoothing multiplier is 2/(period+1). When the series is shorter than
// the period, the whole series is used as a fractional span: the effective
// period becomes len(prices), so a value is still produced instead of an
// error. Warm-up values (before the effective period is filled) are the
// expanding simple average, which keeps every output inside
// [min(prices), max(prices)].
func EMASeries(prices []float64, period int) []float64 {
	if len(prices) == 0 {
		return nil
	}
	effective := period
	if len(prices) < effective {
		effective = len(prices)
	}

	out := make([]float64, len(prices))
	var sum float64
	for i := 0; i < effective; i++ {
		sum += prices[i]
		out[i] = sum / float64(i+1)
	}

	multiplier := 2.0 / float64(effective+1)
	for i := effective; i < len(prices); i++ {
		out[i] = (prices[i]-out[i-1])*multiplier + out[i-1]
	}
	return out
}

// EMA returns the latest exponential moving average value, with the same
// fractional-span behavior as EMASeries on short histories.
func EMA(prices []float64, period int) float64 {
	series := EMASeries(prices, period)
	if len(series) == 0 {
		return 0
	}
	return series[len(series)-1]
}
