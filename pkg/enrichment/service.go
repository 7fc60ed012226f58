package enrichment

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"feedlens/aurora/pkg/limits/ratelimit"
	"feedlens/aurora/pkg/providers"
)

// ServiceConfig configures the enrichment service.
type ServiceConfig struct {
	// Model is the model name sent to the provider.
	Model string

	// MaxTextLength caps post text at this many runes before prompt
	// construction. Default: 4000
	MaxTextLength int

	// MaxTokens caps the completion length per request. Default: 1000
	MaxTokens int

	// Temperature is the sampling temperature. Default: 0.2
	Temperature float64
}

// DefaultServiceConfig returns the default service configuration.
func DefaultServiceConfig() ServiceConfig {
	return ServiceConfig{
		Model:         "gpt-4o-mini",
		MaxTextLength: 4000,
		MaxTokens:     1000,
		Temperature:   0.2,
	}
}

// Service enriches post text through an LLM provider, pacing calls with a
// shared rate limiter.
type Service struct {
	provider providers.Provider
	pacer    *ratelimit.Pacer
	config   ServiceConfig
	logger   *slog.Logger
}

// NewService creates an enrichment service. A nil pacer disables pacing.
func NewService(provider providers.Provider, pacer *ratelimit.Pacer, config ServiceConfig, logger *slog.Logger) *Service {
	if pacer == nil {
		pacer = ratelimit.NewPacer(ratelimit.Config{})
	}
	if config.MaxTextLength <= 0 {
		config.MaxTextLength = 4000
	}
	if config.MaxTokens <= 0 {
		config.MaxTokens = 1000
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &Service{
		provider: provider,
		pacer:    pacer,
		config:   config,
		logger:   logger.With("component", "enrichment.service"),
	}
}

// Ready reports whether the underlying provider is usable.
func (s *Service) Ready() error {
	return s.provider.Ready()
}

// EnrichPost extracts metadata for one post. It never returns a Go error;
// every call produces a Result that is either successful or failed.
//
// Empty or whitespace-only text short-circuits to an empty successful
// result with zero tokens and no provider call.
func (s *Service) EnrichPost(ctx context.Context, postID, text string) *Result {
	if strings.TrimSpace(text) == "" {
		s.logger.Debug("post has no text, skipping provider call", "post_id", postID)
		return SuccessResult(postID, EmptyMetadata(), "", 0, 0, 0)
	}

	text = Truncate(text, s.config.MaxTextLength)

	if err := s.pacer.Acquire(ctx); err != nil {
		return FailureResult(postID, err)
	}

	start := time.Now()
	completion, err := s.provider.CompleteJSON(ctx, &providers.CompletionRequest{
		Model:       s.config.Model,
		Messages:    BuildPrompt(text),
		Temperature: s.config.Temperature,
		MaxTokens:   s.config.MaxTokens,
	})
	if err != nil {
		s.logger.Warn("enrichment call failed",
			"post_id", postID,
			"kind", providers.KindOf(err).String(),
			"error", err,
		)
		return FailureResult(postID, err)
	}

	metadata := MetadataFromPayload(completion.Payload)

	duration := completion.Duration
	if duration == 0 {
		duration = time.Since(start)
	}

	s.logger.Debug("post enriched",
		"post_id", postID,
		"category", metadata.Category,
		"sentiment", metadata.Sentiment,
		"total_tokens", completion.Usage.TotalTokens,
		"duration_ms", duration.Milliseconds(),
	)

	return SuccessResult(
		postID,
		metadata,
		completion.Model,
		completion.Usage.PromptTokens,
		completion.Usage.CompletionTokens,
		duration,
	)
}

// BatchItem is one post to enrich in a batch.
type BatchItem struct {
	PostID string
	Text   string
}

// EnrichBatch enriches items strictly in input order, one paced provider
// call per non-empty item. A failure on one item does not stop the rest;
// the returned slice matches the input 1:1.
func (s *Service) EnrichBatch(ctx context.Context, items []BatchItem) []*Result {
	results := make([]*Result, 0, len(items))
	for _, item := range items {
		results = append(results, s.EnrichPost(ctx, item.PostID, item.Text))
	}
	return results
}
