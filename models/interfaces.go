package models

import "context"

// PriceClient fetches the daily price history for a symbol, sorted ascending.
type PriceClient interface {
	GetDailySeries(ctx context.Context, symbol string) (PriceSeries, error)
}

// FundamentalsClient fetches the provider-agnostic fundamentals record.
type FundamentalsClient interface {
	GetFundamentals(ctx context.Context, symbol string) (*RawFundamentals, error)
}

// NewsClient fetches recent company news, most recent first.
type NewsClient interface {
	GetCompanyNews(ctx context.Context, symbol string, limit int) ([]NewsItem, error)
}

// EventsClient fetches corporate events such as earnings dates.
type EventsClient interface {
	GetEarningsEvents(ctx context.Context, symbol string) ([]Event, error)
}

// MetricsClient provides named numeric metrics used to enrich fundamentals.
type MetricsClient interface {
	GetMetrics(ctx context.Context, symbol string) (map[string]float64, error)
}

// Narrator turns a prompt pair into free-text narrative. Implementations are
// selected at startup (Azure vs standard endpoint); callers depend only on
// this capability and must tolerate failures.
type Narrator interface {
	Narrate(ctx context.Context, system, user string) (string, error)
}
