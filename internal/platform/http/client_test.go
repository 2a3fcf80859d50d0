package http

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/Alias1177/Analyst/models"
)

func newTestClient() *Client {
	return NewClient(ClientOptions{
		Timeout:         2 * time.Second,
		RequestsPerSec:  100,
		MaxRetryTimeout: 5 * time.Second,
	})
}

func TestDoRequestRetriesServerErrors(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	req, _ := http.NewRequest(http.MethodGet, server.URL, nil)
	resp, err := newTestClient().DoRequest(context.Background(), req, models.SourcePrices)
	if err != nil {
		t.Fatalf("DoRequest() error = %v", err)
	}
	resp.Body.Close()

	if got := atomic.LoadInt32(&calls); got < 3 {
		t.Errorf("calls = %d, want the 502s retried", got)
	}
}

func TestDoRequestRateLimitNotRetried(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.Header().Set("Retry-After", "30")
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	req, _ := http.NewRequest(http.MethodGet, server.URL, nil)
	_, err := newTestClient().DoRequest(context.Background(), req, models.SourceNews)

	var limited *models.RateLimitedError
	if !errors.As(err, &limited) {
		t.Fatalf("DoRequest() error = %v, want RateLimitedError", err)
	}
	if limited.Source != models.SourceNews {
		t.Errorf("Source = %v, want %v", limited.Source, models.SourceNews)
	}
	if limited.RetryAfter != 30*time.Second {
		t.Errorf("RetryAfter = %v, want 30s", limited.RetryAfter)
	}
	if got := atomic.LoadInt32(&calls); got != 1 {
		t.Errorf("calls = %d, a 429 must not be retried", got)
	}
}

func TestDoRequestContextCancelled(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	req, _ := http.NewRequestWithContext(ctx, http.MethodGet, server.URL, nil)
	if _, err := newTestClient().DoRequest(ctx, req, models.SourcePrices); err == nil {
		t.Fatal("DoRequest() = nil error, want context cancellation surfaced")
	}
}

func TestParseRetryAfter(t *testing.T) {
	tests := []struct {
		header string
		want   time.Duration
	}{
		{header: "", want: 0},
		{header: "60", want: 60 * time.Second},
		{header: "0", want: 0},
		{header: "Wed, 21 Oct 2015 07:28:00 GMT", want: 0},
	}
	for _, tt := range tests {
		if got := parseRetryAfter(tt.header); got != tt.want {
			t.Errorf("parseRetryAfter(%q) = %v, want %v", tt.header, got, tt.want)
		}
	}
}
