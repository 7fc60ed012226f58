// Package openai implements the provider adapter for OpenAI-compatible
// chat completions APIs.
//
// The adapter works against api.openai.com and against any endpoint that
// speaks the same wire format (Azure OpenAI deployments, vLLM, Ollama,
// LM Studio). Requests always set response_format to json_object and the
// response content is parsed into a JSON payload before it is returned.
//
// Usage:
//
//	provider, err := openai.New(providers.ProviderConfig{
//	    APIKey: os.Getenv("AURORA_PROVIDER_API_KEY"),
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer provider.Close()
//
//	result, err := provider.CompleteJSON(ctx, req)
package openai
