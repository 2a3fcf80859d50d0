package calculate

import (
	"math"
	"testing"
)

func TestVolatilityConstantSeries(t *testing.T) {
	prices := []float64{100, 100, 100, 100, 100}
	if got := Volatility(prices, 21); got != 0 {
		t.Errorf("Volatility() = %v, want 0 for constant prices", got)
	}
}

func TestVolatilityKnownValue(t *testing.T) {
	// Alternating +10% / ~-9.09% returns: r = {0.1, -1/11}. Sample stddev of
	// the two returns, annualized.
	prices := []float64{100, 110, 100, 110, 100}
	got := Volatility(prices, 21)

	returns := []float64{0.1, -1.0 / 11, 0.1, -1.0 / 11}
	mean := (returns[0] + returns[1] + returns[2] + returns[3]) / 4
	var variance float64
	for _, r := range returns {
		variance += (r - mean) * (r - mean)
	}
	variance /= 3
	want := math.Sqrt(variance) * math.Sqrt(252)

	if math.Abs(got-want) > 1e-12 {
		t.Errorf("Volatility() = %v, want %v", got, want)
	}
}

func TestVolatilityWindowTrimming(t *testing.T) {
	// Early chaos outside the window must not affect the result.
	calm := make([]float64, 30)
	for i := range calm {
		calm[i] = 100
	}
	noisy := append([]float64{10, 500, 3, 250}, calm...)

	if got := Volatility(noisy, 21); got != 0 {
		t.Errorf("Volatility() = %v, want 0 once the noisy prefix falls outside the window", got)
	}
}

func TestVolatilityNonNegative(t *testing.T) {
	series := [][]float64{
		{100},
		{100, 90},
		{100, 90, 95, 80, 120},
	}
	for _, prices := range series {
		if got := Volatility(prices, 21); got < 0 {
			t.Errorf("Volatility(%v) = %v, want non-negative", prices, got)
		}
	}
}
