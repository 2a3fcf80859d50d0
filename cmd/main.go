package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/Alias1177/Analyst/internal/app"
	"github.com/Alias1177/Analyst/internal/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Invalid configuration")
	}

	lvl, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		lvl = zerolog.InfoLevel
	}
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr}).Level(lvl)

	symbol := cfg.Symbol
	if len(os.Args) > 1 {
		symbol = os.Args[1]
	}

	orch, rec, err := app.Build(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Could not build pipeline")
	}
	if rec != nil {
		defer rec.Close()
	}

	result, err := orch.Analyze(context.Background(), symbol)
	if err != nil {
		log.Fatal().Err(err).Str("symbol", symbol).Msg("Analysis failed")
	}

	out, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		log.Fatal().Err(err).Msg("Could not serialize result")
	}
	fmt.Println(string(out))

	if result.Recommendation.Narrative != nil {
		fmt.Println("\n" + result.Recommendation.Narrative.Raw)
	}
}
