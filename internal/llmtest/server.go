// Package llmtest provides a fake OpenAI-compatible HTTP server for testing
// provider adapters and the enrichment pipeline without network access.
package llmtest

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"time"
)

// Server is a fake OpenAI-compatible API server.
// Responses are configured per path; every request body is captured for
// assertions.
type Server struct {
	server       *httptest.Server
	responses    map[string]Response
	requestCount int
	lastBody     []byte
	mu           sync.Mutex
}

// Response defines a canned response for one endpoint.
type Response struct {
	StatusCode int
	Body       interface{}
	Delay      time.Duration
	Headers    map[string]string
}

// NewServer creates a fake server with no configured endpoints.
// Unconfigured paths answer 404.
func NewServer() *Server {
	s := &Server{
		responses: make(map[string]Response),
	}
	s.server = httptest.NewServer(http.HandlerFunc(s.handler))
	return s
}

// URL returns the fake server's base URL.
func (s *Server) URL() string {
	return s.server.URL
}

// Close shuts the fake server down.
func (s *Server) Close() {
	s.server.Close()
}

// SetResponse sets the canned response for a path.
func (s *Server) SetResponse(path string, response Response) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.responses[path] = response
}

// RequestCount returns the number of requests received.
func (s *Server) RequestCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.requestCount
}

// LastBody returns the raw body of the most recent request.
func (s *Server) LastBody() []byte {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastBody
}

func (s *Server) handler(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)

	s.mu.Lock()
	s.requestCount++
	s.lastBody = body
	response, ok := s.responses[r.URL.Path]
	s.mu.Unlock()

	if !ok {
		http.NotFound(w, r)
		return
	}

	if response.Delay > 0 {
		time.Sleep(response.Delay)
	}

	for key, value := range response.Headers {
		w.Header().Set(key, value)
	}
	w.WriteHeader(response.StatusCode)

	if response.Body != nil {
		switch v := response.Body.(type) {
		case string:
			_, _ = w.Write([]byte(v))
		case []byte:
			_, _ = w.Write(v)
		default:
			_ = json.NewEncoder(w).Encode(response.Body)
		}
	}
}

// CompletionBody builds a chat completion response body with the given
// content and token counts.
func CompletionBody(content, model string, promptTokens, completionTokens int) map[string]interface{} {
	return map[string]interface{}{
		"id":      "chatcmpl-test",
		"object":  "chat.completion",
		"created": time.Now().Unix(),
		"model":   model,
		"choices": []map[string]interface{}{
			{
				"index": 0,
				"message": map[string]interface{}{
					"role":    "assistant",
					"content": content,
				},
				"finish_reason": "stop",
			},
		},
		"usage": map[string]interface{}{
			"prompt_tokens":     promptTokens,
			"completion_tokens": completionTokens,
			"total_tokens":      promptTokens + completionTokens,
		},
	}
}

// CompletionResponse builds a 200 response carrying content as the model
// output.
func CompletionResponse(content, model string, promptTokens, completionTokens int) Response {
	return Response{
		StatusCode: http.StatusOK,
		Body:       CompletionBody(content, model, promptTokens, completionTokens),
	}
}

// ErrorResponse builds a provider-style error response.
func ErrorResponse(statusCode int, message string) Response {
	return Response{
		StatusCode: statusCode,
		Body: map[string]interface{}{
			"error": map[string]interface{}{
				"message": message,
				"type":    "invalid_request_error",
				"code":    statusCode,
			},
		},
	}
}

// AuthErrorResponse builds a 401 authentication error.
func AuthErrorResponse() Response {
	return ErrorResponse(http.StatusUnauthorized, "Invalid API key")
}

// RateLimitResponse builds a 429 error with a Retry-After header.
func RateLimitResponse(retryAfter int) Response {
	response := ErrorResponse(http.StatusTooManyRequests, "Rate limit exceeded")
	response.Headers = map[string]string{
		"Retry-After": fmt.Sprintf("%d", retryAfter),
	}
	return response
}

// ServerErrorResponse builds a 500 internal server error.
func ServerErrorResponse() Response {
	return ErrorResponse(http.StatusInternalServerError, "Internal server error")
}
