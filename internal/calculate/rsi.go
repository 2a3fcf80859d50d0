package calculate

// RSI computes the Relative Strength Index over the close series using
// Wilder's smoothed gains and losses. If fewer than period+1 points exist the
// window shrinks to the available deltas. With no deltas at all the neutral
// midpoint 50 is returned. If the average loss is zero RSI is 100; if the
// average gain is zero RSI is 0.
func RSI(prices []float64, period int) float64 {
	deltas := len(prices) - 1
	if deltas < 1 {
		return 50.0
	}
	if deltas < period {
		period = deltas
	}

	var gains, losses float64
	for i := 1; i <= period; i++ {
		change := prices[i] - prices[i-1]
		if change > 0 {
			gains += change
		} else {
			losses -= change
		}
	}

	avgGain := gains / float64(period)
	avgLoss := losses / float64(period)

	// Wilder smoothing over the remaining deltas
	for i := period + 1; i < len(prices); i++ {
		change := prices[i] - prices[i-1]
		if change > 0 {
			avgGain = (avgGain*float64(period-1) + change) / float64(period)
			avgLoss = (avgLoss * float64(period-1)) / float64(period)
		} else {
			avgGain = (avgGain * float64(period-1)) / float64(period)
			avgLoss = (avgLoss*float64(period-1) - change) / float64(period)
		}
	}

	if avgLoss == 0 {
		return 100.0
	}

	rs := avgGain / avgLoss
	return 100.0 - (100.0 / (1.0 + rs))
}
