package cache

import (
	"testing"
	"time"
)

func TestKeyBucketsByFreshnessWindow(t *testing.T) {
	c := New("localhost:6379", "", 0, 15*time.Minute)

	base := time.Date(2024, time.March, 1, 10, 0, 0, 0, time.UTC)

	inside := c.Key("AAPL", base.Add(14*time.Minute))
	if got := c.Key("AAPL", base); got != inside {
		t.Errorf("keys inside one window differ: %q vs %q", got, inside)
	}

	next := c.Key("AAPL", base.Add(15*time.Minute))
	if next == inside {
		t.Error("keys across windows must differ")
	}
}

func TestKeyIncludesSymbol(t *testing.T) {
	c := New("localhost:6379", "", 0, 15*time.Minute)
	now := time.Now()

	if c.Key("AAPL", now) == c.Key("MSFT", now) {
		t.Error("different symbols share a cache key")
	}
}
