package providers

import (
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"
)

func TestErrorKindString(t *testing.T) {
	tests := []struct {
		kind ErrorKind
		want string
	}{
		{KindUnknown, "unknown"},
		{KindProvider, "provider"},
		{KindAuth, "auth"},
		{KindRateLimit, "rate_limit"},
		{KindTimeout, "timeout"},
		{KindParse, "parse"},
		{KindConfig, "config"},
	}

	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.want {
			t.Errorf("ErrorKind(%d).String() = %q, want %q", int(tt.kind), got, tt.want)
		}
	}
}

func TestErrorKindRetryable(t *testing.T) {
	retryable := []ErrorKind{KindRateLimit, KindTimeout}
	fatal := []ErrorKind{KindUnknown, KindProvider, KindAuth, KindParse, KindConfig}

	for _, k := range retryable {
		if !k.Retryable() {
			t.Errorf("expected %s to be retryable", k)
		}
	}
	for _, k := range fatal {
		if k.Retryable() {
			t.Errorf("expected %s to not be retryable", k)
		}
	}
}

func TestKindOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want ErrorKind
	}{
		{"provider error", &ProviderError{Provider: "openai", Message: "boom"}, KindProvider},
		{"auth error", &AuthError{Provider: "openai"}, KindAuth},
		{"rate limit error", &RateLimitError{Provider: "openai"}, KindRateLimit},
		{"timeout error", &TimeoutError{Provider: "openai", Timeout: time.Second}, KindTimeout},
		{"parse error", &ParseError{Provider: "openai"}, KindParse},
		{"config error", &ConfigError{Provider: "openai", Field: "api_key"}, KindConfig},
		{"validation error", &ValidationError{Field: "model"}, KindConfig},
		{"plain error", errors.New("boom"), KindUnknown},
		{"nil", nil, KindUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := KindOf(tt.err); got != tt.want {
				t.Errorf("KindOf() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestKindOfWrapped(t *testing.T) {
	inner := &RateLimitError{Provider: "openai", Message: "slow down"}
	wrapped := fmt.Errorf("enrich post: %w", inner)

	if got := KindOf(wrapped); got != KindRateLimit {
		t.Errorf("KindOf(wrapped) = %s, want rate_limit", got)
	}
	if !IsRetryable(wrapped) {
		t.Error("expected wrapped rate limit error to be retryable")
	}
}

func TestProviderError(t *testing.T) {
	t.Run("with status code", func(t *testing.T) {
		err := &ProviderError{
			Provider:   "openai",
			StatusCode: 500,
			Message:    "internal error",
		}

		expected := `provider "openai" error (status 500): internal error`
		if err.Error() != expected {
			t.Errorf("expected %q, got %q", expected, err.Error())
		}
	})

	t.Run("without status code", func(t *testing.T) {
		err := &ProviderError{
			Provider: "openai",
			Message:  "connection failed",
		}

		expected := `provider "openai" error: connection failed`
		if err.Error() != expected {
			t.Errorf("expected %q, got %q", expected, err.Error())
		}
	})

	t.Run("with cause", func(t *testing.T) {
		cause := errors.New("connection refused")
		err := &ProviderError{
			Provider: "openai",
			Message:  "request failed",
			Cause:    cause,
		}

		if !errors.Is(err, cause) {
			t.Error("expected error to wrap cause")
		}
	})
}

func TestAuthError(t *testing.T) {
	err := &AuthError{
		Provider: "openai",
		Message:  "Invalid API key",
	}

	expected := `provider "openai" authentication failed: Invalid API key`
	if err.Error() != expected {
		t.Errorf("expected %q, got %q", expected, err.Error())
	}
}

func TestRateLimitError(t *testing.T) {
	t.Run("with retry after", func(t *testing.T) {
		err := &RateLimitError{
			Provider:   "openai",
			RetryAfter: 10 * time.Second,
			Message:    "Too many requests",
		}

		errStr := err.Error()
		if !strings.Contains(errStr, "rate limit exceeded") {
			t.Errorf("expected error to contain 'rate limit exceeded', got %q", errStr)
		}
		if !strings.Contains(errStr, "10s") {
			t.Errorf("expected error to contain retry duration, got %q", errStr)
		}
	})

	t.Run("without retry after", func(t *testing.T) {
		err := &RateLimitError{
			Provider: "openai",
			Message:  "Too many requests",
		}

		expected := `provider "openai" rate limit exceeded: Too many requests`
		if err.Error() != expected {
			t.Errorf("expected %q, got %q", expected, err.Error())
		}
	})
}

func TestTimeoutError(t *testing.T) {
	err := &TimeoutError{
		Provider: "openai",
		Timeout:  30 * time.Second,
	}

	errStr := err.Error()
	if !strings.Contains(errStr, "timed out") {
		t.Errorf("expected error to contain 'timed out', got %q", errStr)
	}
	if !strings.Contains(errStr, "30s") {
		t.Errorf("expected error to contain timeout duration, got %q", errStr)
	}
}

func TestParseError(t *testing.T) {
	cause := errors.New("unexpected end of json input")
	err := &ParseError{
		Provider:    "openai",
		RawResponse: `{"broken":`,
		Cause:       cause,
	}

	errStr := err.Error()
	if !strings.Contains(errStr, "parse error") {
		t.Errorf("expected error to contain 'parse error', got %q", errStr)
	}
	if !errors.Is(err, cause) {
		t.Error("expected error to wrap cause")
	}
	if err.RawResponse != `{"broken":` {
		t.Error("expected RawResponse to be preserved")
	}
}

func TestConfigError(t *testing.T) {
	err := &ConfigError{
		Provider: "openai",
		Field:    "api_key",
		Message:  "API key is required",
	}

	errStr := err.Error()
	if !strings.Contains(errStr, "openai") {
		t.Errorf("expected error to contain provider name, got %q", errStr)
	}
	if !strings.Contains(errStr, "api_key") {
		t.Errorf("expected error to contain field name, got %q", errStr)
	}
}

func TestValidationError(t *testing.T) {
	err := &ValidationError{
		Field:   "model",
		Message: "model is required",
	}

	expected := `validation error for field "model": model is required`
	if err.Error() != expected {
		t.Errorf("expected %q, got %q", expected, err.Error())
	}
}
