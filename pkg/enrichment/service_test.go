package enrichment

import (
	"context"
	"reflect"
	"strings"
	"testing"
	"time"

	"feedlens/aurora/pkg/limits/ratelimit"
	"feedlens/aurora/pkg/providers"
)

// fakeProvider implements providers.Provider for service tests.
type fakeProvider struct {
	result   *providers.CompletionResult
	err      error
	calls    int
	lastReq  *providers.CompletionRequest
	notReady error

	// failOn makes only the n-th call (1-based) fail with failErr.
	failOn  int
	failErr error
}

func (f *fakeProvider) CompleteJSON(ctx context.Context, req *providers.CompletionRequest) (*providers.CompletionResult, error) {
	f.calls++
	f.lastReq = req
	if f.failOn > 0 && f.calls == f.failOn {
		return nil, f.failErr
	}
	if f.err != nil {
		return nil, f.err
	}
	return f.result, nil
}

func (f *fakeProvider) GetName() string { return "fake" }
func (f *fakeProvider) Ready() error    { return f.notReady }
func (f *fakeProvider) Close() error    { return nil }

func newTestService(provider providers.Provider, config ServiceConfig) *Service {
	return NewService(provider, nil, config, nil)
}

func TestEnrichPostEmptyText(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{name: "empty string", text: ""},
		{name: "whitespace only", text: "  \n\t  "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := &fakeProvider{}
			service := newTestService(fake, DefaultServiceConfig())

			result := service.EnrichPost(context.Background(), "post-1", tt.text)

			if fake.calls != 0 {
				t.Errorf("expected no provider call, got %d", fake.calls)
			}
			if !result.Succeeded() {
				t.Fatal("expected successful result")
			}
			if result.TotalTokens() != 0 {
				t.Errorf("expected zero tokens, got %d", result.TotalTokens())
			}
			if result.Model != "" {
				t.Errorf("expected empty model for short-circuit, got %q", result.Model)
			}

			metadata := result.Metadata()
			if len(metadata.ExplicitKeywords) != 0 || len(metadata.ImplicitKeywords) != 0 {
				t.Error("expected empty keyword sets")
			}
			if metadata.Category != CategoryOther || metadata.Sentiment != SentimentNeutral {
				t.Errorf("expected other/neutral defaults, got %q/%q", metadata.Category, metadata.Sentiment)
			}
		})
	}
}

func TestEnrichPostSuccess(t *testing.T) {
	fake := &fakeProvider{
		result: &providers.CompletionResult{
			Payload: map[string]any{
				"explicit_keywords": []any{"BTC", "ETF", "btc"},
				"implicit_keywords": []any{"Cryptocurrency", "regulation"},
				"category":          "ECONOMICS",
				"sentiment":         "bullish",
				"entities": map[string]any{
					"organizations": []any{"SEC"},
				},
			},
			Model: "gpt-4o-mini-2024-07-18",
			Usage: providers.TokenUsage{
				PromptTokens:     120,
				CompletionTokens: 40,
				TotalTokens:      160,
			},
			Duration: 250 * time.Millisecond,
		},
	}
	service := newTestService(fake, DefaultServiceConfig())

	result := service.EnrichPost(context.Background(), "post-1", "Bitcoin ETF approved")

	if fake.calls != 1 {
		t.Fatalf("expected 1 provider call, got %d", fake.calls)
	}
	if !result.Succeeded() {
		t.Fatalf("expected success, got failure %+v", result.Failure())
	}

	metadata := result.Metadata()
	if !reflect.DeepEqual(metadata.ExplicitKeywords, []string{"btc", "etf"}) {
		t.Errorf("unexpected explicit keywords: %v", metadata.ExplicitKeywords)
	}
	if metadata.Category != CategoryEconomics {
		t.Errorf("expected economics, got %q", metadata.Category)
	}
	if metadata.Sentiment != SentimentNeutral {
		t.Errorf("expected unknown sentiment to coerce to neutral, got %q", metadata.Sentiment)
	}
	if !reflect.DeepEqual(metadata.Entities[EntityOrganizations], []string{"SEC"}) {
		t.Errorf("unexpected organizations: %v", metadata.Entities[EntityOrganizations])
	}
	if len(metadata.Entities[EntityPersons]) != 0 {
		t.Errorf("expected empty persons default, got %v", metadata.Entities[EntityPersons])
	}

	if result.InputTokens != 120 || result.OutputTokens != 40 {
		t.Errorf("unexpected token counts: %d/%d", result.InputTokens, result.OutputTokens)
	}
	if result.Model != "gpt-4o-mini-2024-07-18" {
		t.Errorf("expected model from completion, got %q", result.Model)
	}
	if result.ProcessingTime != 250*time.Millisecond {
		t.Errorf("expected 250ms processing time, got %v", result.ProcessingTime)
	}
}

func TestEnrichPostTruncatesText(t *testing.T) {
	fake := &fakeProvider{
		result: &providers.CompletionResult{Payload: map[string]any{}},
	}
	config := DefaultServiceConfig()
	config.MaxTextLength = 10
	service := newTestService(fake, config)

	long := strings.Repeat("a", 50)
	service.EnrichPost(context.Background(), "post-1", long)

	if fake.lastReq == nil {
		t.Fatal("expected a provider call")
	}
	user := fake.lastReq.Messages[len(fake.lastReq.Messages)-1].Content
	if strings.Contains(user, strings.Repeat("a", 11)) {
		t.Error("expected text to be truncated to 10 runes")
	}
	if !strings.Contains(user, strings.Repeat("a", 10)) {
		t.Error("expected the first 10 runes to survive")
	}
}

func TestEnrichPostUsesConfiguredModel(t *testing.T) {
	fake := &fakeProvider{
		result: &providers.CompletionResult{Payload: map[string]any{}},
	}
	config := DefaultServiceConfig()
	config.Model = "gpt-4.1-nano"
	config.MaxTokens = 700
	service := newTestService(fake, config)

	service.EnrichPost(context.Background(), "post-1", "some text")

	if fake.lastReq.Model != "gpt-4.1-nano" {
		t.Errorf("expected configured model, got %q", fake.lastReq.Model)
	}
	if fake.lastReq.MaxTokens != 700 {
		t.Errorf("expected configured max tokens, got %d", fake.lastReq.MaxTokens)
	}
}

func TestEnrichPostProviderFailure(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		wantKind  providers.ErrorKind
		retryable bool
	}{
		{
			name:      "rate limit",
			err:       &providers.RateLimitError{Provider: "openai", Message: "rate limit exceeded"},
			wantKind:  providers.KindRateLimit,
			retryable: true,
		},
		{
			name:      "timeout",
			err:       &providers.TimeoutError{Provider: "openai", Timeout: time.Second},
			wantKind:  providers.KindTimeout,
			retryable: true,
		},
		{
			name:      "auth",
			err:       &providers.AuthError{Provider: "openai", Message: "invalid api key"},
			wantKind:  providers.KindAuth,
			retryable: false,
		},
		{
			name:      "parse",
			err:       &providers.ParseError{Provider: "openai", RawResponse: "not json"},
			wantKind:  providers.KindParse,
			retryable: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := &fakeProvider{err: tt.err}
			service := newTestService(fake, DefaultServiceConfig())

			result := service.EnrichPost(context.Background(), "post-1", "some text")

			if result.Succeeded() {
				t.Fatal("expected failed result")
			}
			if result.Metadata() != nil {
				t.Error("failed result must not carry metadata")
			}

			failure := result.Failure()
			if failure.Kind != tt.wantKind {
				t.Errorf("expected kind %v, got %v", tt.wantKind, failure.Kind)
			}
			if failure.Retryable() != tt.retryable {
				t.Errorf("expected retryable=%v", tt.retryable)
			}
		})
	}
}

func TestEnrichPostPacerRespectsContext(t *testing.T) {
	fake := &fakeProvider{
		result: &providers.CompletionResult{Payload: map[string]any{}},
	}
	pacer := ratelimit.NewPacer(ratelimit.Config{RequestsPerMinute: 1})
	service := NewService(fake, pacer, DefaultServiceConfig(), nil)

	// First call consumes the free slot
	first := service.EnrichPost(context.Background(), "post-1", "text one")
	if !first.Succeeded() {
		t.Fatalf("expected first call to succeed, got %+v", first.Failure())
	}

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	start := time.Now()
	second := service.EnrichPost(ctx, "post-2", "text two")
	elapsed := time.Since(start)

	if second.Succeeded() {
		t.Fatal("expected second call to fail while waiting on the pacer")
	}
	if elapsed > 5*time.Second {
		t.Errorf("expected fast failure, took %v", elapsed)
	}
	if fake.calls != 1 {
		t.Errorf("expected provider untouched on pacer failure, got %d calls", fake.calls)
	}
}

func TestEnrichBatch(t *testing.T) {
	fake := &fakeProvider{
		result: &providers.CompletionResult{
			Payload: map[string]any{"category": "technology"},
			Model:   "gpt-4o-mini",
			Usage:   providers.TokenUsage{PromptTokens: 100, CompletionTokens: 20, TotalTokens: 120},
		},
		failOn:  2,
		failErr: &providers.RateLimitError{Provider: "fake"},
	}
	service := newTestService(fake, DefaultServiceConfig())

	items := []BatchItem{
		{PostID: "post-1", Text: "first post"},
		{PostID: "post-2", Text: "second post"},
		{PostID: "post-3", Text: "   "},
		{PostID: "post-4", Text: "fourth post"},
	}

	results := service.EnrichBatch(context.Background(), items)

	if len(results) != len(items) {
		t.Fatalf("expected %d results, got %d", len(items), len(results))
	}
	for i, result := range results {
		if result.PostID != items[i].PostID {
			t.Errorf("result %d: expected post %q, got %q", i, items[i].PostID, result.PostID)
		}
	}

	// Empty-text item makes no provider call
	if fake.calls != 3 {
		t.Errorf("expected 3 provider calls, got %d", fake.calls)
	}

	// The failing item does not stop later items
	if !results[0].Succeeded() {
		t.Error("expected first item to succeed")
	}
	if results[1].Succeeded() {
		t.Error("expected second item to fail")
	}
	if results[1].Failure().Kind != providers.KindRateLimit {
		t.Errorf("expected rate limit failure, got %v", results[1].Failure().Kind)
	}
	if !results[2].Succeeded() || results[2].Model != "" {
		t.Error("expected empty-text item to short-circuit successfully")
	}
	if !results[3].Succeeded() {
		t.Error("expected item after the failure to succeed")
	}
}
