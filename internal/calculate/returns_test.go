package calculate

import (
	"math"
	"testing"
	"time"

	"github.com/Alias1177/Analyst/models"
)

func TestTrailingReturnExact(t *testing.T) {
	prices := make([]float64, 30)
	for i := range prices {
		prices[i] = 100 + float64(i)
	}

	for _, horizon := range []int{1, 5, 21} {
		value, approx := TrailingReturn(prices, horizon)
		want := prices[29]/prices[29-horizon] - 1
		if approx {
			t.Errorf("TrailingReturn(h=%d) approximate on a long series", horizon)
		}
		if math.Abs(value-want) > 1e-12 {
			t.Errorf("TrailingReturn(h=%d) = %v, want %v", horizon, value, want)
		}
	}
}

func TestTrailingReturnFractionalSpan(t *testing.T) {
	prices := []float64{100, 105, 110}

	value, approx := TrailingReturn(prices, 252)
	if !approx {
		t.Error("TrailingReturn() not marked approximate on short series")
	}
	if want := 0.10; math.Abs(value-want) > 1e-12 {
		t.Errorf("TrailingReturn() = %v, want %v from earliest point", value, want)
	}
}

func TestYTDReturn(t *testing.T) {
	day := func(y int, m time.Month, d int) time.Time {
		return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	}

	tests := []struct {
		name   string
		series models.PriceSeries
		want   float64
		wantOK bool
	}{
		{
			name: "spans year boundary",
			series: models.PriceSeries{
				{Date: day(2024, time.December, 30), Close: 90},
				{Date: day(2025, time.January, 2), Close: 100},
				{Date: day(2025, time.March, 3), Close: 120},
			},
			want:   0.20,
			wantOK: true,
		},
		{
			name: "single point in year",
			series: models.PriceSeries{
				{Date: day(2024, time.December, 30), Close: 90},
				{Date: day(2025, time.January, 2), Close: 100},
			},
			wantOK: false,
		},
		{
			name:   "empty",
			series: nil,
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			value, ok := YTDReturn(tt.series)
			if ok != tt.wantOK {
				t.Fatalf("YTDReturn() ok = %v, want %v", ok, tt.wantOK)
			}
			if ok && math.Abs(value-tt.want) > 1e-12 {
				t.Errorf("YTDReturn() = %v, want %v", value, tt.want)
			}
		})
	}
}
