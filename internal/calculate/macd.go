package calculate

// MACD computes the MACD line (fast EMA − slow EMA), the signal line (EMA of
// the MACD line over signalPeriod) and the histogram (line − signal). The
// fractional-span policy of EMASeries applies uniformly: on short histories
// both component EMAs and the signal line shrink their windows to the
// available data, so a value is always produced for a non-empty series.
func MACD(prices []float64, fastPeriod, slowPeriod, signalPeriod int) (line, signal, histogram float64) {
	if len(prices) == 0 {
		return 0, 0, 0
	}

	fastSeries := EMASeries(prices, fastPeriod)
	slowSeries := EMASeries(prices, slowPeriod)

	macdHistory := make([]float64, len(prices))
	for i := range prices {
		macdHistory[i] = fastSeries[i] - slowSeries[i]
	}

	line = macdHistory[len(macdHistory)-1]
	signal = EMA(macdHistory, signalPeriod)
	histogram = line - signal
	return line, signal, histogram
}
