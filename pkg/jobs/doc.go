// Package jobs orchestrates batch enrichment runs.
//
// # Overview
//
// The Orchestrator drives the enrichment service over candidate posts and
// owns everything around the LLM call: candidate selection, the
// already-enriched and no-text skip checks, persistence of records and
// usage-log rows, per-item failure isolation, and run reports.
//
// Three entry points mirror the scheduler's triggers:
//
//   - EnrichPost: one post by id, with retry for transient failures.
//   - EnrichNewPosts: up to limit posts lacking an enrichment record.
//   - EnrichChannelPosts: same, filtered to one channel.
//
// # Failure Isolation
//
// Batch items are processed strictly sequentially. A failure on one item
// (provider error, store error, even a panic) is recorded in the report's
// failure list and the batch moves on. Batch jobs never retry individual
// items; only the single-post job applies the retry policy.
//
// # Statuses
//
// Every run terminates with one of completed, partial, error, or skipped.
// A batch with no failures is completed, a mix of successes and failures
// is partial, all failures is error. A run that cannot start (provider
// not configured) is skipped.
package jobs
