// Package metrics provides Prometheus metrics for the enrichment pipeline.
//
// The Collector owns a private registry and exposes domain metrics in two
// groups:
//
//   - Enrichment metrics: posts processed by task and outcome, per-post
//     durations, token consumption by model and direction, batch run counts.
//   - Budget metrics: accumulated LLM spend by model, per-call cost
//     distribution, and the current position against the daily cost limit.
//
// All recording methods are no-ops when metrics are disabled, so callers
// never need to guard call sites. The Handler method exposes the registry
// in OpenMetrics format for scraping.
//
// Example:
//
//	collector := metrics.NewCollector(metrics.Config{Enabled: true}, nil)
//	collector.RecordPost("enrich_new_posts_job", "enriched", 1200*time.Millisecond)
//	http.Handle("/metrics", collector.Handler())
package metrics
