package calculate

// MaxDrawdown computes the most negative peak-to-trough relative decline of
// the close series as a fraction in [-1, 0]. A monotonically non-decreasing
// series yields exactly 0.
func MaxDrawdown(prices []float64) float64 {
	if len(prices) == 0 {
		return 0
	}

	peak := prices[0]
	worst := 0.0
	for _, p := range prices {
		if p > peak {
			peak = p
		}
		if peak > 0 {
			dd := p/peak - 1
			if dd < worst {
				worst = dd
			}
		}
	}
	return worst
}
