package models

import (
	"fmt"
	"time"
)

// InvalidPriceDataError reports malformed input rejected at ingestion, before
// any indicator computation runs.
type InvalidPriceDataError struct {
	Index  int
	Reason string
}

func (e *InvalidPriceDataError) Error() string {
	return fmt.Sprintf("invalid price data at index %d: %s", e.Index, e.Reason)
}

// InsufficientDataError reports a series too short for the requested
// computation. Indicators degrade to fractional windows instead of returning
// this; only a fully empty series surfaces it.
type InsufficientDataError struct {
	Have int
	Need int
}

func (e *InsufficientDataError) Error() string {
	return fmt.Sprintf("insufficient price data: have %d points, need %d", e.Have, e.Need)
}

// DataUnavailableError reports an adapter that could not produce its data.
// Fatal for the price source, a partial-failure marker for the others.
type DataUnavailableError struct {
	Source string
	Err    error
}

func (e *DataUnavailableError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s data unavailable: %v", e.Source, e.Err)
	}
	return fmt.Sprintf("%s data unavailable", e.Source)
}

func (e *DataUnavailableError) Unwrap() error { return e.Err }

// RateLimitedError reports provider throttling. It is surfaced to the caller
// with retry guidance instead of being retried indefinitely.
type RateLimitedError struct {
	Source     string
	RetryAfter time.Duration
}

func (e *RateLimitedError) Error() string {
	if e.RetryAfter > 0 {
		return fmt.Sprintf("%s rate limited, retry after %s", e.Source, e.RetryAfter)
	}
	return fmt.Sprintf("%s rate limited", e.Source)
}

// RecommendationUnavailableError reports an LLM narrative failure. It is
// never fatal: the rule-based stance is still returned, marked degraded.
type RecommendationUnavailableError struct {
	Err error
}

func (e *RecommendationUnavailableError) Error() string {
	return fmt.Sprintf("recommendation narrative unavailable: %v", e.Err)
}

func (e *RecommendationUnavailableError) Unwrap() error { return e.Err }
