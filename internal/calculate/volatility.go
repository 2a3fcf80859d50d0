package calculate

import "math"

// tradingDaysPerYear is the annualization base for daily return volatility.
const tradingDaysPerYear = 252

// Volatility computes annualized realized volatility: the sample standard
// deviation of daily simple returns over the trailing window, scaled by
// sqrt(252). The window shrinks to the available history when shorter; fewer
// than two returns yield 0.
func Volatility(prices []float64, window int) float64 {
	if len(prices) < 2 {
		return 0
	}

	returns := make([]float64, 0, len(prices)-1)
	for i := 1; i < len(prices); i++ {
		if prices[i-1] == 0 {
			continue
		}
		returns = append(returns, prices[i]/prices[i-1]-1)
	}
	if len(returns) > window {
		returns = returns[len(returns)-window:]
	}
	if len(returns) < 2 {
		return 0
	}

	var sum float64
	for _, r := range returns {
		sum += r
	}
	mean := sum / float64(len(returns))

	var variance float64
	for _, r := range returns {
		variance += (r - mean) * (r - mean)
	}
	variance /= float64(len(returns) - 1)

	return math.Sqrt(variance) * math.Sqrt(tradingDaysPerYear)
}
