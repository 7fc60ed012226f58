package openai

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"feedlens/aurora/pkg/providers"
)

// Client is the OpenAI provider adapter.
// It implements the providers.Provider interface for OpenAI-compatible
// chat completions APIs.
type Client struct {
	*providers.HTTPClient
}

const (
	// DefaultBaseURL is the OpenAI API endpoint.
	DefaultBaseURL = "https://api.openai.com/v1"

	// DefaultTimeout bounds a single completion request.
	DefaultTimeout = 60 * time.Second
)

// New creates a new OpenAI provider instance.
//
// A missing API key does not fail construction: the client is built but
// reports not Ready, so jobs can classify the pipeline as unavailable
// instead of crashing at startup.
func New(config providers.ProviderConfig) (*Client, error) {
	if config.Name == "" {
		config.Name = "openai"
	}
	if config.BaseURL == "" {
		config.BaseURL = DefaultBaseURL
	}
	if config.Timeout == 0 {
		config.Timeout = DefaultTimeout
	}
	if config.MaxIdleConns == 0 {
		config.MaxIdleConns = 100
	}
	if config.MaxIdleConnsPerHost == 0 {
		config.MaxIdleConnsPerHost = 10
	}
	if config.IdleConnTimeout == 0 {
		config.IdleConnTimeout = 90 * time.Second
	}

	c := &Client{
		HTTPClient: providers.NewHTTPClient(config),
	}

	slog.Info("OpenAI provider initialized",
		"provider", config.Name,
		"base_url", config.BaseURL,
		"ready", c.Ready() == nil,
	)

	return c, nil
}

// Ready reports whether the client is configured to send requests.
func (c *Client) Ready() error {
	if c.GetConfig().APIKey == "" {
		return &providers.ConfigError{
			Provider: c.GetName(),
			Field:    "api_key",
			Message:  "API key is required",
		}
	}
	return nil
}

// CompleteJSON sends a completion request and parses the response content as
// a JSON object. The call is a single attempt; retry policy belongs to the
// caller.
func (c *Client) CompleteJSON(ctx context.Context, req *providers.CompletionRequest) (*providers.CompletionResult, error) {
	if err := c.Ready(); err != nil {
		return nil, err
	}
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	chatReq := transformRequest(req)
	url := fmt.Sprintf("%s/chat/completions", strings.TrimSuffix(c.GetConfig().BaseURL, "/"))
	headers := map[string]string{
		"Authorization": "Bearer " + c.GetConfig().APIKey,
		"Content-Type":  "application/json",
	}

	start := time.Now()
	var chatResp ChatResponse
	if err := c.DoJSONRequest(ctx, "POST", url, chatReq, &chatResp, headers); err != nil {
		return nil, err
	}
	duration := time.Since(start)

	content, err := extractContent(&chatResp)
	if err != nil {
		return nil, &providers.ParseError{
			Provider: c.GetName(),
			Cause:    err,
		}
	}

	payload, err := parsePayload(content)
	if err != nil {
		return nil, &providers.ParseError{
			Provider:    c.GetName(),
			RawResponse: content,
			Cause:       err,
		}
	}

	result := &providers.CompletionResult{
		Content: content,
		Payload: payload,
		Model:   chatResp.Model,
		Usage: providers.TokenUsage{
			PromptTokens:     chatResp.Usage.PromptTokens,
			CompletionTokens: chatResp.Usage.CompletionTokens,
			TotalTokens:      chatResp.Usage.TotalTokens,
		},
		Duration: duration,
	}
	if result.Model == "" {
		result.Model = req.Model
	}

	slog.Debug("completion request succeeded",
		"provider", c.GetName(),
		"model", result.Model,
		"tokens", result.Usage.TotalTokens,
		"duration", duration,
	)

	return result, nil
}

// validateRequest validates the completion request.
func validateRequest(req *providers.CompletionRequest) error {
	if req == nil {
		return &providers.ValidationError{
			Field:   "request",
			Message: "request cannot be nil",
		}
	}

	if req.Model == "" {
		return &providers.ValidationError{
			Field:   "model",
			Message: "model is required",
		}
	}

	if len(req.Messages) == 0 {
		return &providers.ValidationError{
			Field:   "messages",
			Message: "at least one message is required",
		}
	}

	return nil
}
