package recommend

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/Alias1177/Analyst/models"
)

func TestBuildPrompt(t *testing.T) {
	actx := testContext()
	actx.News = []models.NewsItem{{Headline: "Acme beats estimates"}}
	actx.Partial = map[string]string{models.SourceEvents: "timeout"}

	prompt, err := BuildPrompt(actx)
	if err != nil {
		t.Fatalf("BuildPrompt() error = %v", err)
	}

	body, ok := strings.CutPrefix(prompt, "Please analyze this context:\n")
	if !ok {
		t.Fatalf("prompt missing preamble: %q", prompt[:40])
	}

	var decoded map[string]any
	if err := json.Unmarshal([]byte(body), &decoded); err != nil {
		t.Fatalf("prompt body is not valid JSON: %v", err)
	}
	if decoded["symbol"] != "AAPL" {
		t.Errorf("symbol = %v, want AAPL", decoded["symbol"])
	}
	if decoded["recent_news_count"] != float64(1) {
		t.Errorf("recent_news_count = %v, want 1", decoded["recent_news_count"])
	}
	if !strings.Contains(body, "Acme beats estimates") {
		t.Error("news highlight missing from prompt")
	}
	if !strings.Contains(body, "timeout") {
		t.Error("partial-failure marker missing from prompt")
	}
}

func TestBuildPromptTruncatesHighlights(t *testing.T) {
	actx := testContext()
	for i := 0; i < 20; i++ {
		actx.News = append(actx.News, models.NewsItem{Headline: "wire story"})
	}

	prompt, err := BuildPrompt(actx)
	if err != nil {
		t.Fatalf("BuildPrompt() error = %v", err)
	}

	if got := strings.Count(prompt, `"wire story"`); got > maxHighlights {
		t.Errorf("serialized %d highlights, want at most %d", got, maxHighlights)
	}
	if !strings.Contains(prompt, `"recent_news_count": 20`) {
		t.Error("full news count must still be reported")
	}
}

func TestBuildPromptOmitsPriceSeries(t *testing.T) {
	actx := testContext()
	actx.Prices = models.PriceSeries{{Close: 123.456789}}

	prompt, err := BuildPrompt(actx)
	if err != nil {
		t.Fatalf("BuildPrompt() error = %v", err)
	}
	if strings.Contains(prompt, "123.456789") {
		t.Error("raw price series must not be serialized into the prompt")
	}
}
