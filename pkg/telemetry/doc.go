// Package telemetry provides observability for the aurora pipeline.
//
// # Components
//
//   - logging: slog construction (level, format, output)
//   - metrics: Prometheus metrics for posts, tokens, cost, and budget
//
// # Usage
//
//	logger, err := logging.New(logging.Config{Level: "info", Format: "json"})
//	if err != nil {
//		return err
//	}
//
//	collector := metrics.NewCollector(metrics.Config{Enabled: true}, nil)
//	collector.RecordPost("enrich_new_posts_job", "enriched", 1200*time.Millisecond)
//
// The collector registers on a private Prometheus registry; mount
// collector.Handler() on an HTTP mux to expose /metrics.
package telemetry
