package enrichment

import (
	"testing"
	"time"

	"feedlens/aurora/pkg/providers"
)

func TestNormalizeCategory(t *testing.T) {
	tests := []struct {
		name     string
		category string
		want     string
	}{
		{name: "known value", category: "politics", want: CategoryPolitics},
		{name: "uppercase", category: "POLITICS", want: CategoryPolitics},
		{name: "surrounding whitespace", category: " Economics ", want: CategoryEconomics},
		{name: "unknown value", category: "MADE_UP", want: CategoryOther},
		{name: "empty", category: "", want: CategoryOther},
		{name: "other stays other", category: "other", want: CategoryOther},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeCategory(tt.category); got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestNormalizeSentiment(t *testing.T) {
	tests := []struct {
		name      string
		sentiment string
		want      string
	}{
		{name: "known value", sentiment: "positive", want: SentimentPositive},
		{name: "mixed case", sentiment: "Negative", want: SentimentNegative},
		{name: "unknown value", sentiment: "HAPPY", want: SentimentNeutral},
		{name: "empty", sentiment: "", want: SentimentNeutral},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeSentiment(tt.sentiment); got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestEmptyMetadata(t *testing.T) {
	metadata := EmptyMetadata()

	if metadata.Category != CategoryOther {
		t.Errorf("expected category other, got %q", metadata.Category)
	}
	if metadata.Sentiment != SentimentNeutral {
		t.Errorf("expected sentiment neutral, got %q", metadata.Sentiment)
	}
	if len(metadata.ExplicitKeywords) != 0 || metadata.ExplicitKeywords == nil {
		t.Errorf("expected empty non-nil explicit keywords, got %v", metadata.ExplicitKeywords)
	}
	for _, kind := range []string{EntityPersons, EntityOrganizations, EntityLocations} {
		names, ok := metadata.Entities[kind]
		if !ok {
			t.Errorf("expected entity key %q to be present", kind)
		}
		if len(names) != 0 {
			t.Errorf("expected empty %q list, got %v", kind, names)
		}
	}
}

func TestSuccessResult(t *testing.T) {
	metadata := &Metadata{Category: CategoryEconomics, Sentiment: SentimentPositive}
	result := SuccessResult("post-1", metadata, "gpt-4o-mini", 100, 50, 250*time.Millisecond)

	if !result.Succeeded() {
		t.Fatal("expected successful result")
	}
	if result.Failure() != nil {
		t.Error("successful result must not carry a failure")
	}
	if result.Metadata() != metadata {
		t.Error("expected metadata to be attached")
	}
	if result.TotalTokens() != 150 {
		t.Errorf("expected 150 total tokens, got %d", result.TotalTokens())
	}
	if result.Model != "gpt-4o-mini" {
		t.Errorf("unexpected model %q", result.Model)
	}
}

func TestSuccessResultNilMetadata(t *testing.T) {
	result := SuccessResult("post-1", nil, "", 0, 0, 0)

	if result.Metadata() == nil {
		t.Fatal("expected nil metadata to default to empty metadata")
	}
	if result.Metadata().Category != CategoryOther {
		t.Errorf("expected category other, got %q", result.Metadata().Category)
	}
}

func TestFailureResult(t *testing.T) {
	err := &providers.RateLimitError{Provider: "openai", Message: "rate limit exceeded"}
	result := FailureResult("post-1", err)

	if result.Succeeded() {
		t.Fatal("expected failed result")
	}
	if result.Metadata() != nil {
		t.Error("failed result must not carry metadata")
	}

	failure := result.Failure()
	if failure == nil {
		t.Fatal("expected failure details")
	}
	if failure.Kind != providers.KindRateLimit {
		t.Errorf("expected rate limit kind, got %v", failure.Kind)
	}
	if !failure.Retryable() {
		t.Error("expected rate limit failure to be retryable")
	}
	if failure.Message == "" {
		t.Error("expected failure message to be set")
	}
}
