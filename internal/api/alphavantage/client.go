package alphavantage

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strconv"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	platformhttp "github.com/Alias1177/Analyst/internal/platform/http"
	"github.com/Alias1177/Analyst/models"
)

const defaultBaseURL = "https://www.alphavantage.co"

// Client fetches daily price history from Alpha Vantage.
type Client struct {
	httpClient *platformhttp.Client
	apiKey     string
	baseURL    string
	logger     zerolog.Logger
}

// NewClient creates a new Alpha Vantage client.
func NewClient(httpClient *platformhttp.Client, apiKey string) *Client {
	return &Client{
		httpClient: httpClient,
		apiKey:     apiKey,
		baseURL:    defaultBaseURL,
		logger:     log.With().Str("component", "alphavantage_client").Logger(),
	}
}

// WithBaseURL overrides the API host, used by tests.
func (c *Client) WithBaseURL(baseURL string) *Client {
	c.baseURL = baseURL
	return c
}

// dailyResponse mirrors the TIME_SERIES_DAILY payload. Field values arrive as
// strings keyed like "1. open".
type dailyResponse struct {
	TimeSeries map[string]map[string]string `json:"Time Series (Daily)"`
	Note       string                       `json:"Note"`
	Error      string                       `json:"Error Message"`
}

// GetDailySeries fetches the full daily history for symbol, sorted ascending
// and validated. An empty or error payload fails with
// *models.DataUnavailableError; a throttling note maps to
// *models.RateLimitedError.
func (c *Client) GetDailySeries(ctx context.Context, symbol string) (models.PriceSeries, error) {
	url := fmt.Sprintf(
		"%s/query?function=TIME_SERIES_DAILY&symbol=%s&outputsize=full&apikey=%s",
		c.baseURL, symbol, c.apiKey,
	)

	c.logger.Debug().Str("symbol", symbol).Msg("Fetching price history")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	resp, err := c.httpClient.DoRequest(ctx, req, models.SourcePrices)
	if err != nil {
		return nil, &models.DataUnavailableError{Source: models.SourcePrices, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &models.DataUnavailableError{Source: models.SourcePrices, Err: err}
	}

	var data dailyResponse
	if err := json.Unmarshal(body, &data); err != nil {
		c.logger.Error().Err(err).Msg("Error parsing JSON")
		return nil, &models.DataUnavailableError{Source: models.SourcePrices, Err: err}
	}

	// Alpha Vantage reports throttling as a 200 with a "Note" body.
	if data.Note != "" {
		c.logger.Warn().Str("note", data.Note).Msg("Alpha Vantage throttled the request")
		return nil, &models.RateLimitedError{Source: models.SourcePrices, RetryAfter: time.Minute}
	}
	if data.Error != "" {
		return nil, &models.DataUnavailableError{
			Source: models.SourcePrices,
			Err:    fmt.Errorf("alpha vantage: %s", data.Error),
		}
	}
	if len(data.TimeSeries) == 0 {
		return nil, &models.DataUnavailableError{
			Source: models.SourcePrices,
			Err:    fmt.Errorf("no time series for %s", symbol),
		}
	}

	series := make(models.PriceSeries, 0, len(data.TimeSeries))
	for dateStr, fields := range data.TimeSeries {
		date, err := time.Parse("2006-01-02", dateStr)
		if err != nil {
			continue
		}
		point, err := parsePoint(date, fields)
		if err != nil {
			return nil, &models.DataUnavailableError{Source: models.SourcePrices, Err: err}
		}
		series = append(series, point)
	}

	sort.Slice(series, func(i, j int) bool {
		return series[i].Date.Before(series[j].Date)
	})

	if err := series.Validate(); err != nil {
		return nil, err
	}

	c.logger.Debug().Int("count", len(series)).Msg("Fetched price history")
	return series, nil
}

func parsePoint(date time.Time, fields map[string]string) (models.PricePoint, error) {
	point := models.PricePoint{Date: date}
	for key, raw := range fields {
		switch key {
		case "1. open", "2. high", "3. low", "4. close":
			v, err := strconv.ParseFloat(raw, 64)
			if err != nil {
				return point, fmt.Errorf("parsing %q on %s: %w", key, date.Format("2006-01-02"), err)
			}
			switch key {
			case "1. open":
				point.Open = v
			case "2. high":
				point.High = v
			case "3. low":
				point.Low = v
			case "4. close":
				point.Close = v
			}
		case "5. volume":
			v, err := strconv.ParseInt(raw, 10, 64)
			if err != nil {
				return point, fmt.Errorf("parsing volume on %s: %w", date.Format("2006-01-02"), err)
			}
			point.Volume = v
		}
	}
	return point, nil
}
