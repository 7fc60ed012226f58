package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// BudgetMetrics tracks LLM spend and the position against the daily
// cost limit.
//
// Metrics:
//   - aurora_pipeline_cost_total: Accumulated cost in USD by model
//   - aurora_pipeline_cost_per_call: Cost distribution per LLM call (histogram)
//   - aurora_pipeline_daily_cost_usd: Cost accumulated so far today
//   - aurora_pipeline_daily_budget_used_percent: Percentage of the daily limit consumed
type BudgetMetrics struct {
	// Total cost counter (in USD)
	costTotal *prometheus.CounterVec

	// Cost per call histogram (in USD)
	costPerCall *prometheus.HistogramVec

	// Daily spend gauges, updated on each budget check
	dailyCostUSD       prometheus.Gauge
	dailyBudgetPercent prometheus.Gauge
}

// NewBudgetMetrics creates and registers budget metrics with the provided
// registry.
func NewBudgetMetrics(cfg Config, registry *prometheus.Registry) *BudgetMetrics {
	bm := &BudgetMetrics{
		costTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "cost_total",
				Help:      "Accumulated cost in USD by model",
			},
			[]string{"model"},
		),

		costPerCall: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "cost_per_call",
				Help:      "Cost distribution per LLM call in USD",
				Buckets:   cfg.CostBuckets,
			},
			[]string{"model"},
		),

		dailyCostUSD: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "daily_cost_usd",
				Help:      "Cost accumulated so far in the current UTC day",
			},
		),

		dailyBudgetPercent: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "daily_budget_used_percent",
				Help:      "Percentage of the daily cost limit consumed",
			},
		),
	}

	// Register all metrics
	registry.MustRegister(
		bm.costTotal,
		bm.costPerCall,
		bm.dailyCostUSD,
		bm.dailyBudgetPercent,
	)

	return bm
}

// RecordCallCost records the cost of a single LLM call.
func (bm *BudgetMetrics) RecordCallCost(model string, costUSD float64) {
	if costUSD <= 0 {
		return
	}

	bm.costTotal.WithLabelValues(model).Add(costUSD)
	bm.costPerCall.WithLabelValues(model).Observe(costUSD)
}

// UpdateDailyBudget updates the daily spend gauges.
func (bm *BudgetMetrics) UpdateDailyBudget(spentUSD, percentUsed float64) {
	bm.dailyCostUSD.Set(spentUSD)
	bm.dailyBudgetPercent.Set(percentUsed)
}
