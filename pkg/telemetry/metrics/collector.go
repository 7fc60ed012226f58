package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Config contains configuration for the metrics collector.
type Config struct {
	// Enabled turns metric recording on. When false every recording
	// method is a no-op and the registry stays empty of domain metrics.
	Enabled bool

	// Namespace is the Prometheus namespace prefix (default "aurora").
	Namespace string

	// Subsystem is the Prometheus subsystem prefix (default "pipeline").
	Subsystem string

	// DurationBuckets are the histogram buckets for per-post processing
	// durations, in seconds.
	DurationBuckets []float64

	// CostBuckets are the histogram buckets for per-call cost, in USD.
	CostBuckets []float64
}

// Collector manages metric registration and provides a unified interface
// for recording pipeline metrics.
type Collector struct {
	config   Config
	registry *prometheus.Registry

	// Enrichment metrics
	enrichmentMetrics *EnrichmentMetrics

	// Budget metrics
	budgetMetrics *BudgetMetrics

	// Cardinality tracking for the model label
	cardinalityLimiter *CardinalityLimiter
}

// NewCollector creates a new metrics collector with the specified
// configuration and Prometheus registry. If registry is nil, a private
// registry is created.
//
// Example:
//
//	cfg := metrics.Config{
//		Enabled:   true,
//		Namespace: "aurora",
//	}
//	collector := metrics.NewCollector(cfg, nil)
func NewCollector(cfg Config, registry *prometheus.Registry) *Collector {
	if registry == nil {
		registry = prometheus.NewRegistry()
	}

	// Set defaults if not specified
	if cfg.Namespace == "" {
		cfg.Namespace = "aurora"
	}
	if cfg.Subsystem == "" {
		cfg.Subsystem = "pipeline"
	}
	if len(cfg.DurationBuckets) == 0 {
		// Optimized for LLM call latencies (100ms - 30s)
		cfg.DurationBuckets = []float64{0.1, 0.25, 0.5, 1.0, 2.0, 5.0, 10.0, 30.0}
	}
	if len(cfg.CostBuckets) == 0 {
		// Optimized for per-post costs on small models ($0.0001 - $0.50)
		cfg.CostBuckets = []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5}
	}

	c := &Collector{
		config:             cfg,
		registry:           registry,
		cardinalityLimiter: NewCardinalityLimiter(1000), // Max 1K unique label sets
	}

	// Initialize metric subsystems
	c.enrichmentMetrics = NewEnrichmentMetrics(cfg, registry)
	c.budgetMetrics = NewBudgetMetrics(cfg, registry)

	return c
}

// RecordPost records the outcome of processing a single post.
//
// Parameters:
//   - task: Job name (e.g., "enrich_new_posts_job")
//   - outcome: Processing outcome ("enriched", "skipped", "failed")
//   - duration: Time spent processing the post
func (c *Collector) RecordPost(task, outcome string, duration time.Duration) {
	if !c.config.Enabled {
		return
	}

	c.enrichmentMetrics.RecordPost(task, outcome, duration)
}

// RecordUsage records token consumption and cost for a completed LLM call.
//
// The model label is cardinality-limited: once the limiter fills up,
// previously unseen models are aggregated under "other".
//
// Parameters:
//   - model: Model name reported by the provider
//   - promptTokens: Tokens in the request
//   - completionTokens: Tokens in the response
//   - costUSD: Estimated call cost in USD
func (c *Collector) RecordUsage(model string, promptTokens, completionTokens int, costUSD float64) {
	if !c.config.Enabled {
		return
	}

	if !c.cardinalityLimiter.Allow("usage:" + model) {
		model = "other"
	}

	c.enrichmentMetrics.RecordTokens(model, promptTokens, completionTokens)
	c.budgetMetrics.RecordCallCost(model, costUSD)
}

// RecordBatch records the terminal status of a batch run.
//
// Parameters:
//   - task: Job name
//   - status: Run status ("completed", "partial", "error", "skipped")
func (c *Collector) RecordBatch(task, status string) {
	if !c.config.Enabled {
		return
	}

	c.enrichmentMetrics.RecordBatch(task, status)
}

// UpdateDailyBudget updates the gauges tracking position against the
// daily cost limit. Called after each budget check.
//
// Parameters:
//   - spentUSD: Cost accumulated so far today
//   - percentUsed: Percentage of the daily limit consumed (0-100+)
func (c *Collector) UpdateDailyBudget(spentUSD, percentUsed float64) {
	if !c.config.Enabled {
		return
	}

	c.budgetMetrics.UpdateDailyBudget(spentUSD, percentUsed)
}

// Registry returns the Prometheus registry used by this collector.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// CardinalityLimiter prevents metric cardinality explosion by limiting
// the number of unique label combinations per metric.
type CardinalityLimiter struct {
	maxCardinality int
	current        map[string]struct{}
	mu             sync.RWMutex
}

// NewCardinalityLimiter creates a new cardinality limiter with the
// specified maximum cardinality.
func NewCardinalityLimiter(maxCardinality int) *CardinalityLimiter {
	return &CardinalityLimiter{
		maxCardinality: maxCardinality,
		current:        make(map[string]struct{}),
	}
}

// Allow checks if a label set is allowed. Returns true if the label set
// already exists or if the cardinality limit has not been reached yet.
func (cl *CardinalityLimiter) Allow(labelSet string) bool {
	cl.mu.RLock()
	if _, exists := cl.current[labelSet]; exists {
		cl.mu.RUnlock()
		return true
	}
	cl.mu.RUnlock()

	cl.mu.Lock()
	defer cl.mu.Unlock()

	// Double-check after acquiring write lock
	if _, exists := cl.current[labelSet]; exists {
		return true
	}

	if len(cl.current) >= cl.maxCardinality {
		return false
	}

	cl.current[labelSet] = struct{}{}
	return true
}

// Count returns the current cardinality.
func (cl *CardinalityLimiter) Count() int {
	cl.mu.RLock()
	defer cl.mu.RUnlock()
	return len(cl.current)
}
