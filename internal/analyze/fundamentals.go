package analyze

import "github.com/Alias1177/Analyst/models"

// Metric keys recognized in RawFundamentals.Metrics. The first present key
// wins for metrics reported under several provider names.
var (
	peKeys        = []string{"pe", "peRatio", "peTTM", "peBasicExclExtraTTM", "peInclExtraTTM"}
	marketCapKeys = []string{"mktCap", "marketCap", "marketCapitalization"}
	betaKeys      = []string{"beta"}
	epsKeys       = []string{"epsTTM"}
	dividendKeys  = []string{"dividendYieldIndicatedAnnual", "dividendYieldTTM"}
	highKeys      = []string{"52WeekHigh"}
	lowKeys       = []string{"52WeekLow"}
)

// FundamentalsSummary normalizes the raw fundamentals record. Metrics the
// provider never reported stay nil. A nil input yields an empty summary so a
// failed fundamentals fetch degrades instead of aborting.
func FundamentalsSummary(raw *models.RawFundamentals) *models.FundamentalsSummary {
	if raw == nil {
		return &models.FundamentalsSummary{}
	}

	return &models.FundamentalsSummary{
		CompanyName:   raw.CompanyName,
		Sector:        raw.Sector,
		Industry:      raw.Industry,
		MarketCap:     firstMetric(raw.Metrics, marketCapKeys),
		PERatio:       firstMetric(raw.Metrics, peKeys),
		Beta:          firstMetric(raw.Metrics, betaKeys),
		EPSTTM:        firstMetric(raw.Metrics, epsKeys),
		DividendYield: firstMetric(raw.Metrics, dividendKeys),
		High52W:       firstMetric(raw.Metrics, highKeys),
		Low52W:        firstMetric(raw.Metrics, lowKeys),
	}
}

func firstMetric(metrics map[string]float64, keys []string) *float64 {
	for _, key := range keys {
		if v, ok := metrics[key]; ok {
			value := v
			return &value
		}
	}
	return nil
}
