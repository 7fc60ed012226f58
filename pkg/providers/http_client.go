package providers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"sync"
	"time"
)

// HTTPClient is the base implementation for HTTP-based provider adapters.
// It provides connection pooling, timeout handling, and status code
// classification into the package's error kinds.
//
// Concrete adapters (openai, and any future OpenAI-compatible endpoint)
// embed this struct and implement the Provider interface methods.
//
// HTTPClient performs exactly one attempt per request. Retry policy belongs
// to the caller, which knows whether the failure kind is worth retrying.
type HTTPClient struct {
	// config contains the provider configuration
	config ProviderConfig

	// client is the HTTP client with connection pooling
	client *http.Client

	// stats tracks request counts
	stats ClientStats

	// statsMu protects concurrent access to stats
	statsMu sync.RWMutex
}

// NewHTTPClient creates a new base HTTP client with connection pooling.
func NewHTTPClient(config ProviderConfig) *HTTPClient {
	transport := &http.Transport{
		MaxIdleConns:        config.MaxIdleConns,
		MaxIdleConnsPerHost: config.MaxIdleConnsPerHost,
		IdleConnTimeout:     config.IdleConnTimeout,
		DisableCompression:  false,
		// Enable HTTP/2
		ForceAttemptHTTP2: true,
	}

	client := &http.Client{
		Transport: transport,
		Timeout:   config.Timeout,
	}

	return &HTTPClient{
		config: config,
		client: client,
	}
}

// GetName returns the provider's configured name.
func (c *HTTPClient) GetName() string {
	return c.config.Name
}

// GetConfig returns the provider's configuration.
func (c *HTTPClient) GetConfig() ProviderConfig {
	return c.config
}

// GetStats returns a snapshot of the request counters.
func (c *HTTPClient) GetStats() ClientStats {
	c.statsMu.RLock()
	defer c.statsMu.RUnlock()
	return c.stats
}

// recordRequest records request metrics.
func (c *HTTPClient) recordRequest(success bool, err error) {
	c.statsMu.Lock()
	defer c.statsMu.Unlock()

	c.stats.TotalRequests++
	if success {
		c.stats.LastSuccess = time.Now()
		c.stats.LastError = nil
	} else {
		c.stats.FailedRequests++
		c.stats.LastError = err
	}
}

// DoRequest performs a single HTTP request and classifies the outcome.
// Non-2xx responses are mapped to typed errors: 401/403 to AuthError,
// 429 to RateLimitError with the parsed Retry-After, everything else to
// ProviderError with the status code.
func (c *HTTPClient) DoRequest(ctx context.Context, method, requestURL string, body []byte, headers map[string]string) (*http.Response, error) {
	var bodyReader io.Reader
	if body != nil {
		bodyReader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, requestURL, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	for key, value := range headers {
		req.Header.Set(key, value)
	}
	if req.Header.Get("Content-Type") == "" && body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	slog.Debug("sending request to provider",
		"provider", c.config.Name,
		"method", method,
		"url", requestURL,
	)

	resp, err := c.client.Do(req)
	if err != nil {
		timeoutErr := &TimeoutError{
			Provider: c.config.Name,
			Timeout:  c.config.Timeout,
		}

		// Deadline expiry (from the context or the client timeout) is a
		// timeout; plain cancellation propagates as ctx.Err().
		if ctxErr := ctx.Err(); ctxErr != nil {
			if errors.Is(ctxErr, context.DeadlineExceeded) {
				c.recordRequest(false, timeoutErr)
				return nil, timeoutErr
			}
			c.recordRequest(false, ctxErr)
			return nil, ctxErr
		}

		var urlErr *url.Error
		if errors.As(err, &urlErr) && urlErr.Timeout() {
			c.recordRequest(false, timeoutErr)
			return nil, timeoutErr
		}

		provErr := &ProviderError{
			Provider: c.config.Name,
			Message:  "request failed",
			Cause:    err,
		}
		c.recordRequest(false, provErr)
		return nil, provErr
	}

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		c.recordRequest(true, nil)
		return resp, nil
	}

	// Read error response body
	errorBody, _ := io.ReadAll(resp.Body)
	resp.Body.Close()

	var respErr error
	switch resp.StatusCode {
	case http.StatusUnauthorized, http.StatusForbidden:
		respErr = &AuthError{
			Provider: c.config.Name,
			Message:  string(errorBody),
		}

	case http.StatusTooManyRequests:
		respErr = &RateLimitError{
			Provider:   c.config.Name,
			RetryAfter: parseRetryAfter(resp.Header.Get("Retry-After")),
			Message:    string(errorBody),
		}

	default:
		respErr = &ProviderError{
			Provider:   c.config.Name,
			StatusCode: resp.StatusCode,
			Message:    string(errorBody),
		}
	}

	c.recordRequest(false, respErr)
	slog.Warn("provider request failed",
		"provider", c.config.Name,
		"status", resp.StatusCode,
		"kind", KindOf(respErr).String(),
	)
	return nil, respErr
}

// DoJSONRequest performs a JSON request and decodes the response.
func (c *HTTPClient) DoJSONRequest(ctx context.Context, method, requestURL string, reqBody interface{}, respBody interface{}, headers map[string]string) error {
	var bodyBytes []byte
	var err error
	if reqBody != nil {
		bodyBytes, err = json.Marshal(reqBody)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
	}

	resp, err := c.DoRequest(ctx, method, requestURL, bodyBytes, headers)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	responseBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return &ParseError{
			Provider: c.config.Name,
			Cause:    fmt.Errorf("failed to read response: %w", err),
		}
	}

	if respBody != nil && len(responseBytes) > 0 {
		if err := json.Unmarshal(responseBytes, respBody); err != nil {
			return &ParseError{
				Provider:    c.config.Name,
				RawResponse: string(responseBytes),
				Cause:       fmt.Errorf("failed to unmarshal json response: %w", err),
			}
		}
	}

	return nil
}

// Close closes idle connections. The client must not be used afterwards.
func (c *HTTPClient) Close() error {
	c.client.CloseIdleConnections()
	slog.Debug("provider client closed", "provider", c.config.Name)
	return nil
}

// parseRetryAfter parses the Retry-After header value.
// It supports both delay-seconds and HTTP-date formats.
func parseRetryAfter(header string) time.Duration {
	if header == "" {
		return 0
	}

	// Try parsing as seconds
	var seconds int
	if _, err := fmt.Sscanf(header, "%d", &seconds); err == nil {
		return time.Duration(seconds) * time.Second
	}

	// Try parsing as HTTP date
	if t, err := http.ParseTime(header); err == nil {
		return time.Until(t)
	}

	return 0
}
