package providers

import "context"

// Provider is the core interface the enrichment pipeline uses to call an LLM.
//
// All methods accept a context.Context for cancellation and timeout control.
// Implementations must respect context cancellation and return immediately
// when the context is cancelled.
//
// Example usage:
//
//	req := &CompletionRequest{
//	    Model: "gpt-4o-mini",
//	    Messages: []Message{
//	        {Role: RoleSystem, Content: systemPrompt},
//	        {Role: RoleUser, Content: postText},
//	    },
//	}
//
//	result, err := provider.CompleteJSON(ctx, req)
//	if err != nil {
//	    return err
//	}
//	fmt.Println(result.Payload)
type Provider interface {
	// CompleteJSON sends a completion request and returns the response with
	// its content parsed as a JSON object. The request is transformed to the
	// provider-specific format and the response is normalized back.
	//
	// The call is a single attempt: no internal retries. Errors carry an
	// ErrorKind; callers decide whether to retry from KindOf(err).
	CompleteJSON(ctx context.Context, req *CompletionRequest) (*CompletionResult, error)

	// GetName returns the provider's configured name (e.g., "openai").
	GetName() string

	// Ready reports whether the provider is configured well enough to send
	// requests. It returns a ConfigError (KindConfig) when a required setting
	// such as the API key is missing, and nil otherwise. Ready never performs
	// network I/O.
	Ready() error

	// Close releases any resources (HTTP connections, etc.).
	// After calling Close, the provider should not be used.
	Close() error
}
