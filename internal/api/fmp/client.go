package fmp

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	platformhttp "github.com/Alias1177/Analyst/internal/platform/http"
	"github.com/Alias1177/Analyst/models"
)

const defaultBaseURL = "https://financialmodelingprep.com/stable"

// Client fetches company profile and earnings events from
// FinancialModelingPrep. When a metrics client is attached, the fundamentals
// record is enriched with its numeric metrics; enrichment failures never fail
// the fundamentals fetch.
type Client struct {
	httpClient *platformhttp.Client
	apiKey     string
	baseURL    string
	metrics    models.MetricsClient
	logger     zerolog.Logger
}

// NewClient creates a new FMP client. metrics may be nil.
func NewClient(httpClient *platformhttp.Client, apiKey string, metrics models.MetricsClient) *Client {
	return &Client{
		httpClient: httpClient,
		apiKey:     apiKey,
		baseURL:    defaultBaseURL,
		metrics:    metrics,
		logger:     log.With().Str("component", "fmp_client").Logger(),
	}
}

// WithBaseURL overrides the API host, used by tests.
func (c *Client) WithBaseURL(baseURL string) *Client {
	c.baseURL = baseURL
	return c
}

// profile is one entry of the FMP profile response list.
type profile struct {
	CompanyName string   `json:"companyName"`
	Sector      string   `json:"sector"`
	Industry    string   `json:"industry"`
	MktCap      *float64 `json:"mktCap"`
	PE          *float64 `json:"pe"`
	Beta        *float64 `json:"beta"`
}

// GetFundamentals fetches the company profile and merges in enrichment
// metrics when available.
func (c *Client) GetFundamentals(ctx context.Context, symbol string) (*models.RawFundamentals, error) {
	url := fmt.Sprintf("%s/profile?symbol=%s&apikey=%s", c.baseURL, symbol, c.apiKey)

	c.logger.Debug().Str("symbol", symbol).Msg("Fetching fundamentals")

	var profiles []profile
	if err := c.getJSON(ctx, url, models.SourceFundamentals, &profiles); err != nil {
		return nil, err
	}
	if len(profiles) == 0 {
		return nil, &models.DataUnavailableError{
			Source: models.SourceFundamentals,
			Err:    fmt.Errorf("no profile for %s", symbol),
		}
	}

	p := profiles[0]
	raw := &models.RawFundamentals{
		CompanyName: p.CompanyName,
		Sector:      p.Sector,
		Industry:    p.Industry,
		Metrics:     map[string]float64{},
	}
	if p.MktCap != nil {
		raw.Metrics["mktCap"] = *p.MktCap
	}
	if p.PE != nil {
		raw.Metrics["pe"] = *p.PE
	}
	if p.Beta != nil {
		raw.Metrics["beta"] = *p.Beta
	}

	// Optional enrichment; do not fail the whole fetch.
	if c.metrics != nil {
		extra, err := c.metrics.GetMetrics(ctx, symbol)
		if err != nil {
			c.logger.Warn().Err(err).Str("symbol", symbol).Msg("Could not fetch enrichment metrics")
		} else {
			for key, v := range extra {
				if _, exists := raw.Metrics[key]; !exists {
					raw.Metrics[key] = v
				}
			}
		}
	}

	return raw, nil
}

// earning is one entry of the FMP earnings response.
type earning struct {
	Date             string   `json:"date"`
	EPSEstimated     *float64 `json:"epsEstimated"`
	RevenueEstimated *float64 `json:"revenueEstimated"`
}

// GetEarningsEvents fetches earnings dates with estimates where provided.
func (c *Client) GetEarningsEvents(ctx context.Context, symbol string) ([]models.Event, error) {
	url := fmt.Sprintf("%s/earnings?symbol=%s&apikey=%s", c.baseURL, symbol, c.apiKey)

	c.logger.Debug().Str("symbol", symbol).Msg("Fetching events")

	var raw []earning
	if err := c.getJSON(ctx, url, models.SourceEvents, &raw); err != nil {
		return nil, err
	}

	events := make([]models.Event, 0, len(raw))
	for _, e := range raw {
		date, err := time.Parse("2006-01-02", e.Date)
		if err != nil {
			continue
		}
		events = append(events, models.Event{
			Type:            "earnings",
			Date:            date,
			EPSEstimate:     e.EPSEstimated,
			RevenueEstimate: e.RevenueEstimated,
		})
	}
	return events, nil
}

func (c *Client) getJSON(ctx context.Context, url, source string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}

	resp, err := c.httpClient.DoRequest(ctx, req, source)
	if err != nil {
		return &models.DataUnavailableError{Source: source, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return &models.DataUnavailableError{Source: source, Err: err}
	}
	if err := json.Unmarshal(body, out); err != nil {
		c.logger.Error().Err(err).Str("source", source).Msg("Error parsing JSON")
		return &models.DataUnavailableError{Source: source, Err: err}
	}
	return nil
}
