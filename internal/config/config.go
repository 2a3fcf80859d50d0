package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"
)

// Supported price providers.
const (
	ProviderAlphaVantage = "alphavantage"
	ProviderStooq        = "stooq"
)

// Config holds all application configuration. It is loaded once at startup
// and read-only afterwards; components receive it through their constructors.
type Config struct {
	// Data providers
	PriceProvider   string `env:"PRICE_PROVIDER" envDefault:"alphavantage"`
	AlphaVantageKey string `env:"ALPHA_VANTAGE_KEY"`
	FinnhubKey      string `env:"FINNHUB_KEY"`
	FMPKey          string `env:"FMP_KEY"`

	// LLM endpoint selection: Azure is preferred when both Azure values are
	// set, otherwise the standard OpenAI endpoint is used.
	OpenAIAPIKey        string `env:"OPENAI_API_KEY"`
	AzureOpenAIKey      string `env:"AZURE_OPENAI_KEY"`
	AzureOpenAIEndpoint string `env:"AZURE_OPENAI_ENDPOINT"`
	OpenAIModel         string `env:"OPENAI_ENGINE" envDefault:"gpt-4o"`
	LLMTimeout          int    `env:"LLM_TIMEOUT" envDefault:"45"` // seconds

	// Analysis parameters
	Symbol     string `env:"SYMBOL" envDefault:"AAPL"`
	EMAFast    int    `env:"EMA_FAST_PERIOD" envDefault:"50"`
	EMASlow    int    `env:"EMA_SLOW_PERIOD" envDefault:"200"`
	RSIPeriod  int    `env:"RSI_PERIOD" envDefault:"14"`
	MACDFast   int    `env:"MACD_FAST_PERIOD" envDefault:"12"`
	MACDSlow   int    `env:"MACD_SLOW_PERIOD" envDefault:"26"`
	MACDSignal int    `env:"MACD_SIGNAL_PERIOD" envDefault:"9"`
	VolWindow  int    `env:"VOL_WINDOW" envDefault:"21"`
	NewsLimit  int    `env:"NEWS_LIMIT" envDefault:"6"`
	NewsDays   int    `env:"NEWS_DAYS" envDefault:"7"`

	// Infrastructure
	RequestTimeout int    `env:"REQUEST_TIMEOUT" envDefault:"15"` // seconds
	LogLevel       string `env:"LOG_LEVEL" envDefault:"info"`
	ListenAddr     string `env:"LISTEN_ADDR" envDefault:":8080"`
	RedisAddr      string `env:"REDIS_ADDR"`
	RedisPassword  string `env:"REDIS_PASSWORD"`
	RedisDB        int    `env:"REDIS_DB" envDefault:"0"`
	CacheTTL       int    `env:"CACHE_TTL" envDefault:"15"` // minutes
	DatabaseURL    string `env:"DATABASE_URL"`
	WatchlistFile  string `env:"WATCHLIST_FILE"`

	// Watchlist symbols loaded from WatchlistFile, if configured.
	Watchlist []string
}

// Load initializes configuration from environment variables.
func Load() (*Config, error) {
	// Load environment variables from .env file if present
	if err := godotenv.Load(); err != nil {
		log.Warn().Msg(".env file not found, relying on actual environment variables")
	}

	cfg := &Config{
		PriceProvider:       getEnvWithDefault("PRICE_PROVIDER", ProviderAlphaVantage),
		AlphaVantageKey:     os.Getenv("ALPHA_VANTAGE_KEY"),
		FinnhubKey:          os.Getenv("FINNHUB_KEY"),
		FMPKey:              os.Getenv("FMP_KEY"),
		OpenAIAPIKey:        os.Getenv("OPENAI_API_KEY"),
		AzureOpenAIKey:      os.Getenv("AZURE_OPENAI_KEY"),
		AzureOpenAIEndpoint: os.Getenv("AZURE_OPENAI_ENDPOINT"),
		OpenAIModel:         getEnvWithDefault("OPENAI_ENGINE", "gpt-4o"),
		LLMTimeout:          getEnvIntWithDefault("LLM_TIMEOUT", 45),
		Symbol:              getEnvWithDefault("SYMBOL", "AAPL"),
		EMAFast:             getEnvIntWithDefault("EMA_FAST_PERIOD", 50),
		EMASlow:             getEnvIntWithDefault("EMA_SLOW_PERIOD", 200),
		RSIPeriod:           getEnvIntWithDefault("RSI_PERIOD", 14),
		MACDFast:            getEnvIntWithDefault("MACD_FAST_PERIOD", 12),
		MACDSlow:            getEnvIntWithDefault("MACD_SLOW_PERIOD", 26),
		MACDSignal:          getEnvIntWithDefault("MACD_SIGNAL_PERIOD", 9),
		VolWindow:           getEnvIntWithDefault("VOL_WINDOW", 21),
		NewsLimit:           getEnvIntWithDefault("NEWS_LIMIT", 6),
		NewsDays:            getEnvIntWithDefault("NEWS_DAYS", 7),
		RequestTimeout:      getEnvIntWithDefault("REQUEST_TIMEOUT", 15),
		LogLevel:            getEnvWithDefault("LOG_LEVEL", "info"),
		ListenAddr:          getEnvWithDefault("LISTEN_ADDR", ":8080"),
		RedisAddr:           os.Getenv("REDIS_ADDR"),
		RedisPassword:       os.Getenv("REDIS_PASSWORD"),
		RedisDB:             getEnvIntWithDefault("REDIS_DB", 0),
		CacheTTL:            getEnvIntWithDefault("CACHE_TTL", 15),
		DatabaseURL:         os.Getenv("DATABASE_URL"),
		WatchlistFile:       os.Getenv("WATCHLIST_FILE"),
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	if cfg.WatchlistFile != "" {
		symbols, err := loadWatchlist(cfg.WatchlistFile)
		if err != nil {
			return nil, fmt.Errorf("loading watchlist: %w", err)
		}
		cfg.Watchlist = symbols
	}

	return cfg, nil
}

func (c *Config) validate() error {
	switch c.PriceProvider {
	case ProviderAlphaVantage:
		if c.AlphaVantageKey == "" {
			return fmt.Errorf("ALPHA_VANTAGE_KEY not set for provider %q", c.PriceProvider)
		}
	case ProviderStooq:
		// keyless provider
	default:
		return fmt.Errorf("unknown PRICE_PROVIDER %q", c.PriceProvider)
	}
	return nil
}

// watchlistFile is the YAML shape of the optional watchlist config file.
type watchlistFile struct {
	Symbols []string `yaml:"symbols"`
}

func loadWatchlist(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var wf watchlistFile
	if err := yaml.Unmarshal(data, &wf); err != nil {
		return nil, err
	}
	return wf.Symbols, nil
}

// Helper functions for environment variable handling
func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntWithDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}
