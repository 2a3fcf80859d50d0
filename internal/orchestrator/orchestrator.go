package orchestrator

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/Alias1177/Analyst/internal/analyze"
	"github.com/Alias1177/Analyst/internal/calculate"
	"github.com/Alias1177/Analyst/internal/metrics"
	"github.com/Alias1177/Analyst/internal/recommend"
	"github.com/Alias1177/Analyst/models"
)

// ResultCache caches consolidated results keyed by symbol and freshness
// window. Implementations must return the whole result or nothing.
type ResultCache interface {
	Get(ctx context.Context, symbol string) *models.AnalysisResult
	Set(ctx context.Context, result *models.AnalysisResult)
}

// RunRecorder persists completed analyses.
type RunRecorder interface {
	Record(ctx context.Context, result *models.AnalysisResult) error
}

// Orchestrator drives one analysis per call: it fetches each data source at
// most once, computes the technical summary from the single price fetch, and
// assembles the consolidated result.
type Orchestrator struct {
	prices       models.PriceClient
	fundamentals models.FundamentalsClient
	news         models.NewsClient
	events       models.EventsClient
	generator    *recommend.Generator
	params       calculate.Params
	newsLimit    int
	cache        ResultCache
	recorder     RunRecorder
	logger       zerolog.Logger
}

// Options configures optional orchestrator collaborators.
type Options struct {
	Params    calculate.Params
	NewsLimit int
	Cache     ResultCache
	Recorder  RunRecorder
}

// New creates an orchestrator over the four data source adapters and the
// recommendation generator.
func New(
	prices models.PriceClient,
	fundamentals models.FundamentalsClient,
	news models.NewsClient,
	events models.EventsClient,
	generator *recommend.Generator,
	opts Options,
) *Orchestrator {
	if opts.NewsLimit <= 0 {
		opts.NewsLimit = 6
	}
	if opts.Params == (calculate.Params{}) {
		opts.Params = calculate.DefaultParams()
	}
	return &Orchestrator{
		prices:       prices,
		fundamentals: fundamentals,
		news:         news,
		events:       events,
		generator:    generator,
		params:       opts.Params,
		newsLimit:    opts.NewsLimit,
		cache:        opts.Cache,
		recorder:     opts.Recorder,
		logger:       log.With().Str("component", "orchestrator").Logger(),
	}
}

type priceResult struct {
	series models.PriceSeries
	err    error
}

type fundamentalsResult struct {
	raw *models.RawFundamentals
	err error
}

type newsResult struct {
	items []models.NewsItem
	err   error
}

type eventsResult struct {
	events []models.Event
	err    error
}

// Analyze runs the full pipeline for one symbol.
//
// The price series is fetched exactly once; the identical slice reaches both
// the technical summarizer and the returned result, so chart data and
// indicators can never disagree. The four adapter fetches run concurrently
// and the technical summary is computed as soon as the price fetch resolves,
// without waiting on the other three. Failures of the non-critical sources
// degrade their section and are recorded in Partial; a price failure aborts
// with *models.DataUnavailableError (or the validation error).
func (o *Orchestrator) Analyze(ctx context.Context, symbol string) (*models.AnalysisResult, error) {
	started := time.Now()
	o.logger.Info().Str("symbol", symbol).Msg("Starting analysis")

	if o.cache != nil {
		if cached := o.cache.Get(ctx, symbol); cached != nil {
			metrics.CacheHits.WithLabelValues("hit").Inc()
			o.logger.Debug().Str("symbol", symbol).Msg("Serving cached result")
			return cached, nil
		}
		metrics.CacheHits.WithLabelValues("miss").Inc()
	}

	priceCh := make(chan priceResult, 1)
	fundCh := make(chan fundamentalsResult, 1)
	newsCh := make(chan newsResult, 1)
	eventsCh := make(chan eventsResult, 1)

	go func() {
		series, err := o.prices.GetDailySeries(ctx, symbol)
		priceCh <- priceResult{series: series, err: err}
	}()
	go func() {
		raw, err := o.fundamentals.GetFundamentals(ctx, symbol)
		fundCh <- fundamentalsResult{raw: raw, err: err}
	}()
	go func() {
		items, err := o.news.GetCompanyNews(ctx, symbol, o.newsLimit)
		newsCh <- newsResult{items: items, err: err}
	}()
	go func() {
		events, err := o.events.GetEarningsEvents(ctx, symbol)
		eventsCh <- eventsResult{events: events, err: err}
	}()

	// Indicators depend only on the price fetch; start on it immediately.
	price := <-priceCh
	if price.err != nil {
		metrics.AdapterFailures.WithLabelValues(models.SourcePrices).Inc()
		metrics.AnalysesTotal.WithLabelValues("error").Inc()
		o.logger.Error().Err(price.err).Str("symbol", symbol).Msg("Price history unavailable, aborting")
		return nil, price.err
	}

	technical, err := analyze.TechnicalSummary(price.series, o.params)
	if err != nil {
		metrics.AnalysesTotal.WithLabelValues("error").Inc()
		return nil, err
	}

	partial := map[string]string{}

	fund := <-fundCh
	var fundamentals *models.FundamentalsSummary
	if fund.err != nil {
		metrics.AdapterFailures.WithLabelValues(models.SourceFundamentals).Inc()
		o.logger.Warn().Err(fund.err).Str("symbol", symbol).Msg("Fundamentals degraded to empty")
		partial[models.SourceFundamentals] = fund.err.Error()
		fundamentals = &models.FundamentalsSummary{}
	} else {
		fundamentals = analyze.FundamentalsSummary(fund.raw)
	}

	news := <-newsCh
	if news.err != nil {
		metrics.AdapterFailures.WithLabelValues(models.SourceNews).Inc()
		o.logger.Warn().Err(news.err).Str("symbol", symbol).Msg("News degraded to empty")
		partial[models.SourceNews] = news.err.Error()
		news.items = nil
	}

	events := <-eventsCh
	if events.err != nil {
		metrics.AdapterFailures.WithLabelValues(models.SourceEvents).Inc()
		o.logger.Warn().Err(events.err).Str("symbol", symbol).Msg("Events degraded to empty")
		partial[models.SourceEvents] = events.err.Error()
		events.events = nil
	}

	actx := &models.AnalysisContext{
		Symbol:       symbol,
		Prices:       price.series,
		Technical:    technical,
		Fundamentals: fundamentals,
		News:         news.items,
		Events:       events.events,
		Partial:      partial,
	}

	recommendation := o.generator.Recommend(ctx, actx)
	if recommendation.Degraded {
		partial[models.SourceLLM] = recommendation.DegradedReason
	}

	result := &models.AnalysisResult{
		Symbol:         symbol,
		Prices:         price.series,
		Technical:      technical,
		Fundamentals:   fundamentals,
		News:           news.items,
		Events:         events.events,
		Recommendation: recommendation,
		Partial:        partial,
		GeneratedAt:    time.Now().UTC(),
	}

	if o.cache != nil {
		o.cache.Set(ctx, result)
	}
	if o.recorder != nil {
		if err := o.recorder.Record(ctx, result); err != nil {
			o.logger.Warn().Err(err).Str("symbol", symbol).Msg("Could not record analysis run")
		}
	}

	outcome := "ok"
	if recommendation.Degraded || len(partial) > 0 {
		outcome = "degraded"
	}
	metrics.AnalysesTotal.WithLabelValues(outcome).Inc()
	metrics.AnalysisDuration.Observe(time.Since(started).Seconds())

	o.logger.Info().
		Str("symbol", symbol).
		Str("trend", technical.Trend).
		Str("short_term", recommendation.ShortTerm).
		Str("long_term", recommendation.LongTerm).
		Bool("degraded", recommendation.Degraded).
		Dur("elapsed", time.Since(started)).
		Msg("Analysis complete")

	return result, nil
}
