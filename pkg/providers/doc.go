// Package providers implements a unified abstraction layer for LLM providers.
//
// # Overview
//
// The providers package defines the contract the enrichment pipeline uses to
// talk to an external LLM API. It normalizes requests and responses, manages
// pooled HTTP connections, and classifies failures into a closed set of error
// kinds that callers dispatch on.
//
// # Architecture
//
// The package is organized into three layers:
//
//  1. Provider Interface - the contract all adapters implement (CompleteJSON)
//  2. Base HTTP Client - common HTTP logic (connection pooling, timeouts,
//     status code classification)
//  3. Provider Adapters - provider-specific wire formats (openai subpackage)
//
// # Basic Usage
//
//	config := providers.ProviderConfig{
//	    Name:    "openai",
//	    BaseURL: "https://api.openai.com/v1",
//	    APIKey:  os.Getenv("AURORA_PROVIDER_API_KEY"),
//	    Timeout: 60 * time.Second,
//	}
//
//	provider, err := openai.New(config)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer provider.Close()
//
//	req := &providers.CompletionRequest{
//	    Model: "gpt-4o-mini",
//	    Messages: []providers.Message{
//	        {Role: providers.RoleSystem, Content: "Reply with a JSON object."},
//	        {Role: providers.RoleUser, Content: "Classify this post."},
//	    },
//	}
//
//	result, err := provider.CompleteJSON(context.Background(), req)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(result.Payload)
//
// # Error Handling
//
// Every error returned by this package carries an ErrorKind. Callers decide
// retry and reporting behavior from the kind, never from message text:
//
//	result, err := provider.CompleteJSON(ctx, req)
//	if err != nil {
//	    switch providers.KindOf(err) {
//	    case providers.KindRateLimit, providers.KindTimeout:
//	        // transient, safe to retry
//	    case providers.KindAuth, providers.KindConfig:
//	        // fatal, fix credentials or configuration
//	    case providers.KindParse:
//	        // the model returned malformed JSON
//	    }
//	}
//
// The base client performs exactly one attempt per call. Retry policy is the
// caller's concern (see the jobs package), which keeps backoff decisions next
// to the code that knows whether a retry is still worth paying for.
//
// # Thread Safety
//
// All adapters and the base HTTP client are safe for concurrent use from
// multiple goroutines.
package providers
