// Package enrichment extracts structured metadata from post text using an
// LLM provider.
//
// # Overview
//
// The Service builds a JSON-only prompt from post text, paces calls through
// a shared rate limiter, and normalizes the model's response into Metadata:
// lowercase deduplicated keywords, a closed category set, a closed sentiment
// set, and an entity map. Unrecognized categories coerce to "other" and
// unrecognized sentiments to "neutral"; missing response fields default to
// empty values rather than failing the call.
//
// # Results
//
// EnrichPost never returns a Go error. Every call produces a Result that is
// either successful (carrying Metadata and token usage) or failed (carrying
// a Failure with the provider error kind and message). The two states are
// mutually exclusive and enforced by the constructors, so a failed result
// can never carry metadata and a successful one can never carry a failure
// reason.
//
// # Cost Avoidance
//
// Posts with empty or whitespace-only text short-circuit to an empty
// successful result without calling the provider. The rate limiter is not
// consulted in that path.
package enrichment
