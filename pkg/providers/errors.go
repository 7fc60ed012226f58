package providers

import (
	"errors"
	"fmt"
	"time"
)

// ErrorKind classifies provider failures into a closed set.
// Retry decisions and job statuses are derived from the kind, never from
// matching substrings of the error message.
type ErrorKind int

const (
	// KindUnknown is the zero value, reported for errors that did not
	// originate in this package.
	KindUnknown ErrorKind = iota

	// KindProvider covers unclassified provider failures: bad requests,
	// server errors, transport faults.
	KindProvider

	// KindAuth covers rejected credentials (HTTP 401/403).
	KindAuth

	// KindRateLimit covers rate limiting by the provider (HTTP 429).
	KindRateLimit

	// KindTimeout covers requests that exceeded the configured timeout.
	KindTimeout

	// KindParse covers malformed provider responses.
	KindParse

	// KindConfig covers invalid provider configuration, detected before any
	// request is sent.
	KindConfig
)

// String returns the stable snake_case name of the kind, used in logs and
// job failure records.
func (k ErrorKind) String() string {
	switch k {
	case KindProvider:
		return "provider"
	case KindAuth:
		return "auth"
	case KindRateLimit:
		return "rate_limit"
	case KindTimeout:
		return "timeout"
	case KindParse:
		return "parse"
	case KindConfig:
		return "config"
	default:
		return "unknown"
	}
}

// Retryable reports whether failures of this kind are transient.
// Only rate limiting and timeouts qualify; everything else will fail the
// same way on a second attempt.
func (k ErrorKind) Retryable() bool {
	return k == KindRateLimit || k == KindTimeout
}

// kinded is implemented by every error type in this package.
type kinded interface {
	Kind() ErrorKind
}

// KindOf returns the classification of err, unwrapping as needed.
// Errors that did not come from this package report KindUnknown.
func KindOf(err error) ErrorKind {
	var k kinded
	if errors.As(err, &k) {
		return k.Kind()
	}
	return KindUnknown
}

// IsRetryable reports whether err is transient according to its kind.
func IsRetryable(err error) bool {
	return KindOf(err).Retryable()
}

// ProviderError represents a general provider error.
// It includes the provider name, HTTP status code, and underlying error.
type ProviderError struct {
	// Provider is the name of the provider that returned the error
	Provider string

	// StatusCode is the HTTP status code (0 if not applicable)
	StatusCode int

	// Message is the error message
	Message string

	// Cause is the underlying error (if any)
	Cause error
}

// Error implements the error interface.
func (e *ProviderError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("provider %q error (status %d): %s", e.Provider, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("provider %q error: %s", e.Provider, e.Message)
}

// Unwrap returns the underlying error for error chain support.
func (e *ProviderError) Unwrap() error {
	return e.Cause
}

// Kind returns KindProvider.
func (e *ProviderError) Kind() ErrorKind {
	return KindProvider
}

// AuthError represents an authentication failure.
// This occurs when the provider rejects the API key (HTTP 401 or 403).
type AuthError struct {
	// Provider is the name of the provider that rejected authentication
	Provider string

	// Message is the error message from the provider
	Message string
}

// Error implements the error interface.
func (e *AuthError) Error() string {
	return fmt.Sprintf("provider %q authentication failed: %s", e.Provider, e.Message)
}

// Kind returns KindAuth.
func (e *AuthError) Kind() ErrorKind {
	return KindAuth
}

// RateLimitError represents a rate limit exceeded error (HTTP 429).
// It includes the retry-after duration if provided by the provider.
type RateLimitError struct {
	// Provider is the name of the provider that rate limited the request
	Provider string

	// RetryAfter is the duration to wait before retrying (if provided)
	RetryAfter time.Duration

	// Message is the error message from the provider
	Message string
}

// Error implements the error interface.
func (e *RateLimitError) Error() string {
	if e.RetryAfter > 0 {
		return fmt.Sprintf("provider %q rate limit exceeded (retry after %s): %s",
			e.Provider, e.RetryAfter, e.Message)
	}
	return fmt.Sprintf("provider %q rate limit exceeded: %s", e.Provider, e.Message)
}

// Kind returns KindRateLimit.
func (e *RateLimitError) Kind() ErrorKind {
	return KindRateLimit
}

// TimeoutError represents a request timeout.
// This occurs when a request exceeds the configured timeout duration.
type TimeoutError struct {
	// Provider is the name of the provider where the timeout occurred
	Provider string

	// Timeout is the configured timeout duration
	Timeout time.Duration
}

// Error implements the error interface.
func (e *TimeoutError) Error() string {
	return fmt.Sprintf("provider %q request timed out after %s", e.Provider, e.Timeout)
}

// Kind returns KindTimeout.
func (e *TimeoutError) Kind() ErrorKind {
	return KindTimeout
}

// ParseError represents a response parsing failure.
// This occurs when the provider returns a malformed response.
type ParseError struct {
	// Provider is the name of the provider that returned the malformed response
	Provider string

	// RawResponse is the raw response body that failed to parse
	RawResponse string

	// Cause is the underlying parse error
	Cause error
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	return fmt.Sprintf("provider %q response parse error: %v", e.Provider, e.Cause)
}

// Unwrap returns the underlying error for error chain support.
func (e *ParseError) Unwrap() error {
	return e.Cause
}

// Kind returns KindParse.
func (e *ParseError) Kind() ErrorKind {
	return KindParse
}

// ConfigError represents a provider configuration error.
// This occurs when the provider configuration is invalid.
type ConfigError struct {
	// Provider is the name of the provider with invalid configuration
	Provider string

	// Field is the configuration field that is invalid
	Field string

	// Message describes the configuration error
	Message string
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	return fmt.Sprintf("provider %q configuration error for field %q: %s",
		e.Provider, e.Field, e.Message)
}

// Kind returns KindConfig.
func (e *ConfigError) Kind() ErrorKind {
	return KindConfig
}

// ValidationError represents a request validation failure.
// This occurs when the request has invalid fields before sending to the provider.
type ValidationError struct {
	// Field is the name of the invalid field
	Field string

	// Message describes what is invalid about the field
	Message string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error for field %q: %s", e.Field, e.Message)
}

// Kind returns KindConfig.
func (e *ValidationError) Kind() ErrorKind {
	return KindConfig
}
