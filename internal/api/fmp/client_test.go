package fmp

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	platformhttp "github.com/Alias1177/Analyst/internal/platform/http"
	"github.com/Alias1177/Analyst/models"
)

type stubMetrics struct {
	metrics map[string]float64
	err     error
}

func (s *stubMetrics) GetMetrics(ctx context.Context, symbol string) (map[string]float64, error) {
	return s.metrics, s.err
}

func newTestClient(t *testing.T, handler http.HandlerFunc, metrics models.MetricsClient) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	httpClient := platformhttp.NewClient(platformhttp.ClientOptions{
		Timeout:         2 * time.Second,
		RequestsPerSec:  100,
		MaxRetryTimeout: time.Second,
	})
	return NewClient(httpClient, "test-key", metrics).WithBaseURL(server.URL)
}

const profilePayload = `[{
	"companyName": "Apple Inc.",
	"sector": "Technology",
	"industry": "Consumer Electronics",
	"mktCap": 2900000000000,
	"pe": 29.1,
	"beta": 1.25
}]`

func TestGetFundamentals(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(profilePayload))
	}, nil)

	raw, err := client.GetFundamentals(context.Background(), "AAPL")
	if err != nil {
		t.Fatalf("GetFundamentals() error = %v", err)
	}
	if raw.CompanyName != "Apple Inc." || raw.Sector != "Technology" {
		t.Errorf("profile = %+v", raw)
	}
	if raw.Metrics["pe"] != 29.1 || raw.Metrics["mktCap"] != 2.9e12 {
		t.Errorf("Metrics = %v", raw.Metrics)
	}
}

func TestGetFundamentalsEnrichment(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(profilePayload))
	}, &stubMetrics{metrics: map[string]float64{
		"epsTTM": 6.4,
		"pe":     999, // profile value must win
	}})

	raw, err := client.GetFundamentals(context.Background(), "AAPL")
	if err != nil {
		t.Fatalf("GetFundamentals() error = %v", err)
	}
	if raw.Metrics["epsTTM"] != 6.4 {
		t.Errorf("epsTTM = %v, want enrichment merged in", raw.Metrics["epsTTM"])
	}
	if raw.Metrics["pe"] != 29.1 {
		t.Errorf("pe = %v, profile value must not be overwritten", raw.Metrics["pe"])
	}
}

func TestGetFundamentalsEnrichmentFailureTolerated(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(profilePayload))
	}, &stubMetrics{err: errors.New("finnhub down")})

	raw, err := client.GetFundamentals(context.Background(), "AAPL")
	if err != nil {
		t.Fatalf("GetFundamentals() error = %v, enrichment failure must not fail the fetch", err)
	}
	if raw.Metrics["pe"] != 29.1 {
		t.Errorf("pe = %v, profile metrics must survive", raw.Metrics["pe"])
	}
}

func TestGetFundamentalsEmptyProfile(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	}, nil)

	_, err := client.GetFundamentals(context.Background(), "NOPE")
	var unavailable *models.DataUnavailableError
	if !errors.As(err, &unavailable) {
		t.Fatalf("GetFundamentals() error = %v, want DataUnavailableError", err)
	}
}

func TestGetEarningsEvents(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[
			{"date": "2024-04-25", "epsEstimated": 1.5, "revenueEstimated": 90000000000},
			{"date": "bad-date", "epsEstimated": 1.0},
			{"date": "2024-07-25"}
		]`))
	}, nil)

	events, err := client.GetEarningsEvents(context.Background(), "AAPL")
	if err != nil {
		t.Fatalf("GetEarningsEvents() error = %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("len(events) = %d, want malformed date skipped", len(events))
	}
	if events[0].Type != "earnings" {
		t.Errorf("Type = %q, want earnings", events[0].Type)
	}
	if events[0].EPSEstimate == nil || *events[0].EPSEstimate != 1.5 {
		t.Errorf("EPSEstimate = %v, want 1.5", events[0].EPSEstimate)
	}
	if events[1].EPSEstimate != nil {
		t.Error("missing estimate must stay nil")
	}
}
