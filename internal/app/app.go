package app

import (
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/Alias1177/Analyst/internal/api/alphavantage"
	"github.com/Alias1177/Analyst/internal/api/finnhub"
	"github.com/Alias1177/Analyst/internal/api/fmp"
	"github.com/Alias1177/Analyst/internal/api/openai"
	"github.com/Alias1177/Analyst/internal/api/stooq"
	"github.com/Alias1177/Analyst/internal/cache"
	"github.com/Alias1177/Analyst/internal/calculate"
	"github.com/Alias1177/Analyst/internal/config"
	"github.com/Alias1177/Analyst/internal/orchestrator"
	platformhttp "github.com/Alias1177/Analyst/internal/platform/http"
	"github.com/Alias1177/Analyst/internal/recommend"
	"github.com/Alias1177/Analyst/internal/recorder"
	"github.com/Alias1177/Analyst/models"
)

// Build wires the orchestrator and its collaborators from configuration.
// Optional pieces (narrator, cache, recorder) are attached only when their
// configuration is present. The recorder is also returned so the HTTP server
// can serve run history; it is nil when DATABASE_URL is not set.
func Build(cfg *config.Config) (*orchestrator.Orchestrator, *recorder.Recorder, error) {
	httpClient := platformhttp.NewClient(platformhttp.ClientOptions{
		Timeout: time.Duration(cfg.RequestTimeout) * time.Second,
	})

	prices, err := priceClient(cfg, httpClient)
	if err != nil {
		return nil, nil, err
	}

	finnhubClient := finnhub.NewClient(httpClient, cfg.FinnhubKey, cfg.NewsDays)
	fmpClient := fmp.NewClient(httpClient, cfg.FMPKey, finnhubClient)

	generator := recommend.NewGenerator(narrator(cfg), time.Duration(cfg.LLMTimeout)*time.Second)

	opts := orchestrator.Options{
		Params: calculate.Params{
			EMAFast:    cfg.EMAFast,
			EMASlow:    cfg.EMASlow,
			RSIPeriod:  cfg.RSIPeriod,
			MACDFast:   cfg.MACDFast,
			MACDSlow:   cfg.MACDSlow,
			MACDSignal: cfg.MACDSignal,
			VolWindow:  cfg.VolWindow,
		},
		NewsLimit: cfg.NewsLimit,
	}

	if cfg.RedisAddr != "" {
		opts.Cache = cache.New(
			cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB,
			time.Duration(cfg.CacheTTL)*time.Minute,
		)
	}
	var rec *recorder.Recorder
	if cfg.DatabaseURL != "" {
		rec, err = recorder.New(cfg.DatabaseURL)
		if err != nil {
			return nil, nil, fmt.Errorf("connecting recorder: %w", err)
		}
		opts.Recorder = rec
	}

	return orchestrator.New(prices, fmpClient, finnhubClient, fmpClient, generator, opts), rec, nil
}

func priceClient(cfg *config.Config, httpClient *platformhttp.Client) (models.PriceClient, error) {
	switch cfg.PriceProvider {
	case config.ProviderAlphaVantage:
		return alphavantage.NewClient(httpClient, cfg.AlphaVantageKey), nil
	case config.ProviderStooq:
		return stooq.NewClient(httpClient), nil
	default:
		return nil, fmt.Errorf("unknown price provider %q", cfg.PriceProvider)
	}
}

// narrator picks the LLM endpoint variant: Azure when its credentials are
// configured, otherwise the standard endpoint, otherwise none.
func narrator(cfg *config.Config) models.Narrator {
	switch {
	case cfg.AzureOpenAIKey != "" && cfg.AzureOpenAIEndpoint != "":
		return openai.NewAzureClient(cfg.AzureOpenAIKey, cfg.AzureOpenAIEndpoint, cfg.OpenAIModel)
	case cfg.OpenAIAPIKey != "":
		return openai.NewClient(cfg.OpenAIAPIKey, cfg.OpenAIModel)
	default:
		log.Warn().Msg("No LLM credentials configured, recommendations will be rule-based only")
		return nil
	}
}
