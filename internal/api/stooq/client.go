package stooq

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	platformhttp "github.com/Alias1177/Analyst/internal/platform/http"
	"github.com/Alias1177/Analyst/models"
)

const defaultBaseURL = "https://stooq.com"

// Client fetches daily EOD history from Stooq as CSV. Stooq needs no API key,
// which makes it the keyless fallback provider.
type Client struct {
	httpClient *platformhttp.Client
	baseURL    string
	logger     zerolog.Logger
}

// NewClient creates a new Stooq client.
func NewClient(httpClient *platformhttp.Client) *Client {
	return &Client{
		httpClient: httpClient,
		baseURL:    defaultBaseURL,
		logger:     log.With().Str("component", "stooq_client").Logger(),
	}
}

// WithBaseURL overrides the API host, used by tests.
func (c *Client) WithBaseURL(baseURL string) *Client {
	c.baseURL = baseURL
	return c
}

// toStooqSymbol lowercases the symbol and appends the .us market suffix
// unless already present.
func toStooqSymbol(symbol string) (string, error) {
	s := strings.ToLower(strings.TrimSpace(symbol))
	if s == "" {
		return "", fmt.Errorf("symbol is required")
	}
	if !strings.HasSuffix(s, ".us") {
		s += ".us"
	}
	return s, nil
}

// GetDailySeries downloads and parses the daily CSV for symbol, sorted
// ascending (Stooq already serves oldest-first) and validated.
func (c *Client) GetDailySeries(ctx context.Context, symbol string) (models.PriceSeries, error) {
	stooqSymbol, err := toStooqSymbol(symbol)
	if err != nil {
		return nil, &models.DataUnavailableError{Source: models.SourcePrices, Err: err}
	}

	url := fmt.Sprintf("%s/q/d/l/?s=%s&i=d", c.baseURL, stooqSymbol)
	c.logger.Debug().Str("symbol", symbol).Msg("Fetching Stooq EOD history")

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
	text := strings.TrimSpace(string(body))

	// A bad request occasionally comes back as an HTML page.
	lower := strings.ToLower(text)
	if text == "" || strings.HasPrefix(lower, "<!doctype html") || strings.HasPrefix(lower, "<html") {
		return nil, &models.DataUnavailableError{
			Source: models.SourcePrices,
			Err:    fmt.Errorf("no CSV data for %s", symbol),
		}
	}

	series, err := parseCSV(text)
	if err != nil {
		return nil, &models.DataUnavailableError{Source: models.SourcePrices, Err: err}
	}
	if err := series.Validate(); err != nil {
		return nil, err
	}

	c.logger.Debug().Int("count", len(series)).Msg("Fetched Stooq history")
	return series, nil
}

func parseCSV(text string) (models.PriceSeries, error) {
	reader := csv.NewReader(strings.NewReader(text))
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parsing CSV: %w", err)
	}
	if len(records) < 2 {
		return nil, fmt.Errorf("empty CSV")
	}

	cols := map[string]int{}
	for i, name := range records[0] {
		cols[strings.ToLower(strings.TrimSpace(name))] = i
	}
	for _, required := range []string{"date", "open", "high", "low", "close"} {
		if _, ok := cols[required]; !ok {
			return nil, fmt.Errorf("missing %q column", required)
		}
	}

	series := make(models.PriceSeries, 0, len(records)-1)
	for _, row := range records[1:] {
		date, err := time.Parse("2006-01-02", row[cols["date"]])
		if err != nil {
			continue // skip malformed rows, matches lenient CSV handling
		}
		point := models.PricePoint{Date: date}
		if point.Open, err = strconv.ParseFloat(row[cols["open"]], 64); err != nil {
			continue
		}
		if point.High, err = strconv.ParseFloat(row[cols["high"]], 64); err != nil {
			continue
		}
		if point.Low, err = strconv.ParseFloat(row[cols["low"]], 64); err != nil {
			continue
		}
		if point.Close, err = strconv.ParseFloat(row[cols["close"]], 64); err != nil {
			continue
		}
		if vi, ok := cols["volume"]; ok && vi < len(row) && row[vi] != "" {
			if v, err := strconv.ParseFloat(row[vi], 64); err == nil {
				point.Volume = int64(v)
			}
		}
		series = append(series, point)
	}
	if len(series) == 0 {
		return nil, fmt.Errorf("no parseable rows")
	}
	return series, nil
}
