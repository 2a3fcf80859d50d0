package calculate

import (
	"math"
	"testing"
)

func TestEMASeriesLengthAndBounds(t *testing.T) {
	tests := []struct {
		name   string
		prices []float64
		period int
	}{
		{
			name:   "series longer than period",
			prices: []float64{10, 11, 12, 11, 13, 14, 13, 15, 16, 17},
			period: 3,
		},
		{
			name:   "series shorter than period",
			prices: []float64{100, 102, 101, 105},
			period: 200,
		},
		{
			name:   "two points",
			prices: []float64{50, 60},
			period: 10,
		},
		{
			name:   "volatile series",
			prices: []float64{100, 80, 120, 90, 110, 70, 130, 100},
			period: 4,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := EMASeries(tt.prices, tt.period)
			if len(out) != len(tt.prices) {
				t.Fatalf("EMASeries() length = %d, want %d", len(out), len(tt.prices))
			}

			lo, hi := tt.prices[0], tt.prices[0]
			for _, p := range tt.prices {
				lo = math.Min(lo, p)
				hi = math.Max(hi, p)
			}
			for i, v := range out {
				if v < lo || v > hi {
					t.Errorf("EMASeries()[%d] = %v outside [%v, %v]", i, v, lo, hi)
				}
			}
		})
	}
}

func TestEMAFractionalSpan(t *testing.T) {
	// 10 points against a 200-period EMA must still produce a value computed
	// over the available span instead of failing.
	prices := []float64{100, 101, 102, 103, 104, 105, 106, 107, 108, 109}
	got := EMA(prices, 200)

	if got < 100 || got > 109 {
		t.Fatalf("EMA() = %v outside close range", got)
	}
	// With the effective period equal to the full series the result is the
	// plain average.
	want := 104.5
	if math.Abs(got-want) > 1e-9 {
		t.Errorf("EMA() = %v, want %v", got, want)
	}
}

func TestEMAConstantSeries(t *testing.T) {
	prices := []float64{42, 42, 42, 42, 42, 42}
	if got := EMA(prices, 3); got != 42 {
		t.Errorf("EMA() = %v, want 42", got)
	}
}

func TestEMAEmpty(t *testing.T) {
	if out := EMASeries(nil, 10); out != nil {
		t.Errorf("EMASeries(nil) = %v, want nil", out)
	}
	if got := EMA(nil, 10); got != 0 {
		t.Errorf("EMA(nil) = %v, want 0", got)
	}
}
