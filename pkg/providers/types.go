package providers

import "time"

// Message represents a single message in a conversation.
// It is provider-agnostic and transformed to provider-specific formats by
// each adapter.
type Message struct {
	// Role identifies the message sender (system, user, assistant)
	Role string `json:"role"`

	// Content is the message text content
	Content string `json:"content"`
}

// TokenUsage tracks token consumption for a request.
type TokenUsage struct {
	// PromptTokens is the number of tokens in the prompt
	PromptTokens int `json:"prompt_tokens"`

	// CompletionTokens is the number of tokens in the completion
	CompletionTokens int `json:"completion_tokens"`

	// TotalTokens is the total number of tokens used (prompt + completion)
	TotalTokens int `json:"total_tokens"`
}

// CompletionRequest represents a provider-agnostic completion request.
// Adapters transform it to their wire format and always ask the provider for
// a JSON object response.
type CompletionRequest struct {
	// Model is the model identifier (e.g., "gpt-4o-mini")
	Model string `json:"model"`

	// Messages is the conversation to complete, usually one system message
	// carrying the extraction instructions and one user message carrying
	// the post text
	Messages []Message `json:"messages"`

	// Temperature controls randomness (0.0 to 2.0)
	Temperature float64 `json:"temperature,omitempty"`

	// MaxTokens is the maximum number of tokens to generate
	MaxTokens int `json:"max_tokens,omitempty"`
}

// CompletionResult represents a completed JSON request, normalized from the
// provider-specific response format.
type CompletionResult struct {
	// Content is the raw text content returned by the model
	Content string `json:"content"`

	// Payload is the parsed JSON object from Content
	Payload map[string]any `json:"payload"`

	// Model is the model that generated the response, as reported by the
	// provider
	Model string `json:"model"`

	// Usage contains token consumption information
	Usage TokenUsage `json:"usage"`

	// Duration is the wall-clock time the request took
	Duration time.Duration `json:"duration"`
}

// ClientStats tracks request counts for a client instance.
type ClientStats struct {
	// TotalRequests is the total number of requests sent
	TotalRequests int64

	// FailedRequests is the total number of failed requests
	FailedRequests int64

	// LastSuccess is the timestamp of the last successful request
	LastSuccess time.Time

	// LastError is the most recent error encountered (nil if none)
	LastError error
}

// ProviderConfig contains configuration for a single provider instance.
// This is a subset of config.ProviderConfig with only the fields needed by
// adapters.
type ProviderConfig struct {
	// Name is the provider identifier (e.g., "openai")
	Name string

	// BaseURL is the API endpoint base URL
	BaseURL string

	// APIKey is the authentication key. An empty key leaves the provider
	// constructible but not Ready; jobs report it as unavailable instead
	// of failing at startup.
	APIKey string

	// Timeout is the request timeout duration
	Timeout time.Duration

	// MaxIdleConns is the maximum number of idle connections in the pool
	MaxIdleConns int

	// MaxIdleConnsPerHost is the maximum idle connections per host
	MaxIdleConnsPerHost int

	// IdleConnTimeout is how long an idle connection remains in the pool
	IdleConnTimeout time.Duration
}

// Message role constants
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)
