package finnhub

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sort"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	platformhttp "github.com/Alias1177/Analyst/internal/platform/http"
	"github.com/Alias1177/Analyst/models"
)

const defaultBaseURL = "https://finnhub.io/api/v1"

// Client fetches company news and fundamental metrics from Finnhub.
type Client struct {
	httpClient *platformhttp.Client
	token      string
	baseURL    string
	newsDays   int
	logger     zerolog.Logger
}

// NewClient creates a new Finnhub client. newsDays is the news lookback
// window in calendar days.
func NewClient(httpClient *platformhttp.Client, token string, newsDays int) *Client {
	if newsDays <= 0 {
		newsDays = 7
	}
	return &Client{
		httpClient: httpClient,
		token:      token,
		baseURL:    defaultBaseURL,
		newsDays:   newsDays,
		logger:     log.With().Str("component", "finnhub_client").Logger(),
	}
}

// WithBaseURL overrides the API host, used by tests.
func (c *Client) WithBaseURL(baseURL string) *Client {
	c.baseURL = baseURL
	return c
}

type newsItem struct {
	Headline string `json:"headline"`
	Source   string `json:"source"`
	Datetime int64  `json:"datetime"`
	URL      string `json:"url"`
}

// GetCompanyNews fetches recent headlines for symbol, most recent first,
// truncated to limit.
func (c *Client) GetCompanyNews(ctx context.Context, symbol string, limit int) ([]models.NewsItem, error) {
	to := time.Now()
	from := to.AddDate(0, 0, -c.newsDays)
	url := fmt.Sprintf(
		"%s/company-news?symbol=%s&from=%s&to=%s&token=%s",
		c.baseURL, symbol, from.Format("2006-01-02"), to.Format("2006-01-02"), c.token,
	)

	c.logger.Debug().Str("symbol", symbol).Msg("Fetching news")

	var raw []newsItem
	if err := c.getJSON(ctx, url, models.SourceNews, &raw); err != nil {
		return nil, err
	}

	items := make([]models.NewsItem, 0, len(raw))
	for _, n := range raw {
		if n.Headline == "" {
			continue
		}
		items = append(items, models.NewsItem{
			Headline:  n.Headline,
			Source:    n.Source,
			Timestamp: time.Unix(n.Datetime, 0).UTC(),
			URL:       n.URL,
		})
	}
	sort.Slice(items, func(i, j int) bool {
		return items[i].Timestamp.After(items[j].Timestamp)
	})
	if limit > 0 && len(items) > limit {
		items = items[:limit]
	}
	return items, nil
}

type metricResponse struct {
	Metric map[string]any `json:"metric"`
}

// GetMetrics fetches the named numeric metrics for symbol. Non-numeric
// entries are dropped; absent keys are never fabricated.
func (c *Client) GetMetrics(ctx context.Context, symbol string) (map[string]float64, error) {
	url := fmt.Sprintf("%s/stock/metric?symbol=%s&metric=all&token=%s", c.baseURL, symbol, c.token)

	c.logger.Debug().Str("symbol", symbol).Msg("Fetching metrics")

	var raw metricResponse
	if err := c.getJSON(ctx, url, models.SourceFundamentals, &raw); err != nil {
		return nil, err
	}

	metrics := make(map[string]float64, len(raw.Metric))
	for key, value := range raw.Metric {
		if v, ok := value.(float64); ok {
			metrics[key] = v
		}
	}
	return metrics, nil
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
