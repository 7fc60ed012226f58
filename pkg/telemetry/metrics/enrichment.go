package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// EnrichmentMetrics tracks post processing throughput and token consumption.
//
// Metrics:
//   - aurora_pipeline_posts_total: Posts processed by task and outcome
//   - aurora_pipeline_post_duration_seconds: Per-post processing duration
//   - aurora_pipeline_tokens_total: Tokens consumed by model and type
//   - aurora_pipeline_batch_runs_total: Batch runs by task and status
type EnrichmentMetrics struct {
	// Posts processed counter
	postsTotal *prometheus.CounterVec

	// Per-post processing duration histogram
	postDuration *prometheus.HistogramVec

	// Token consumption counter
	tokensTotal *prometheus.CounterVec

	// Batch run counter
	batchRunsTotal *prometheus.CounterVec
}

// NewEnrichmentMetrics creates and registers enrichment metrics with the
// provided registry.
func NewEnrichmentMetrics(cfg Config, registry *prometheus.Registry) *EnrichmentMetrics {
	em := &EnrichmentMetrics{
		postsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "posts_total",
				Help:      "Posts processed by task and outcome",
			},
			[]string{"task", "outcome"},
		),

		postDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "post_duration_seconds",
				Help:      "Per-post processing duration in seconds",
				Buckets:   cfg.DurationBuckets,
			},
			[]string{"task"},
		),

		tokensTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "tokens_total",
				Help:      "Tokens consumed by model and type",
			},
			[]string{"model", "type"},
		),

		batchRunsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "batch_runs_total",
				Help:      "Batch runs by task and status",
			},
			[]string{"task", "status"},
		),
	}

	// Register all metrics
	registry.MustRegister(
		em.postsTotal,
		em.postDuration,
		em.tokensTotal,
		em.batchRunsTotal,
	)

	return em
}

// RecordPost records a processed post and its duration.
func (em *EnrichmentMetrics) RecordPost(task, outcome string, duration time.Duration) {
	em.postsTotal.WithLabelValues(task, outcome).Inc()
	em.postDuration.WithLabelValues(task).Observe(duration.Seconds())
}

// RecordTokens records token consumption for a completed LLM call.
// Prompt and completion tokens are recorded separately along with
// their sum under the "total" type.
func (em *EnrichmentMetrics) RecordTokens(model string, promptTokens, completionTokens int) {
	if promptTokens > 0 {
		em.tokensTotal.WithLabelValues(model, "prompt").Add(float64(promptTokens))
	}
	if completionTokens > 0 {
		em.tokensTotal.WithLabelValues(model, "completion").Add(float64(completionTokens))
	}
	if promptTokens+completionTokens > 0 {
		em.tokensTotal.WithLabelValues(model, "total").Add(float64(promptTokens + completionTokens))
	}
}

// RecordBatch records the terminal status of a batch run.
func (em *EnrichmentMetrics) RecordBatch(task, status string) {
	em.batchRunsTotal.WithLabelValues(task, status).Inc()
}
