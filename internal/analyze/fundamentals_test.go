package analyze

import (
	"testing"

	"github.com/Alias1177/Analyst/models"
)

func TestFundamentalsSummaryNilInput(t *testing.T) {
	summary := FundamentalsSummary(nil)
	if summary == nil {
		t.Fatal("FundamentalsSummary(nil) = nil, want empty summary")
	}
	if summary.PERatio != nil || summary.MarketCap != nil || summary.CompanyName != "" {
		t.Errorf("FundamentalsSummary(nil) = %+v, want zero value", summary)
	}
}

func TestFundamentalsSummaryAbsentMetricsStayNil(t *testing.T) {
	raw := &models.RawFundamentals{
		CompanyName: "Acme Corp",
		Sector:      "Technology",
		Metrics: map[string]float64{
			"peRatio": 23.5,
		},
	}

	summary := FundamentalsSummary(raw)
	if summary.CompanyName != "Acme Corp" {
		t.Errorf("CompanyName = %q, want %q", summary.CompanyName, "Acme Corp")
	}
	if summary.PERatio == nil || *summary.PERatio != 23.5 {
		t.Errorf("PERatio = %v, want 23.5", summary.PERatio)
	}
	if summary.Beta != nil {
		t.Errorf("Beta = %v, want nil for an unreported metric", *summary.Beta)
	}
	if summary.DividendYield != nil {
		t.Errorf("DividendYield = %v, want nil for an unreported metric", *summary.DividendYield)
	}
}

func TestFundamentalsSummaryKeyAliases(t *testing.T) {
	tests := []struct {
		name    string
		metrics map[string]float64
		check   func(*models.FundamentalsSummary) (got *float64, want float64)
	}{
		{
			name:    "pe under finnhub ttm key",
			metrics: map[string]float64{"peTTM": 18.0},
			check: func(s *models.FundamentalsSummary) (*float64, float64) {
				return s.PERatio, 18.0
			},
		},
		{
			name:    "market cap under profile key",
			metrics: map[string]float64{"mktCap": 2.5e12},
			check: func(s *models.FundamentalsSummary) (*float64, float64) {
				return s.MarketCap, 2.5e12
			},
		},
		{
			name:    "first present alias wins",
			metrics: map[string]float64{"pe": 10.0, "peTTM": 20.0},
			check: func(s *models.FundamentalsSummary) (*float64, float64) {
				return s.PERatio, 10.0
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, want := tt.check(FundamentalsSummary(&models.RawFundamentals{Metrics: tt.metrics}))
			if got == nil || *got != want {
				t.Errorf("metric = %v, want %v", got, want)
			}
		})
	}
}
