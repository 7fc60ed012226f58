package costs

import (
	"log/slog"
	"math"
	"sync"
)

// Estimator computes USD costs from token counts and a pricing table.
// It is thread-safe and supports hot-swapping the table while in use.
type Estimator struct {
	mu    sync.RWMutex
	table Table
}

// NewEstimator creates an estimator over the given table.
// A nil table falls back to the built-in defaults.
func NewEstimator(table Table) *Estimator {
	if table == nil {
		table = DefaultTable()
	}
	return &Estimator{table: table}
}

// Estimate returns the USD cost for a call, rounded to six decimal places.
// Unknown models use the longest-prefix entry, then the default entry; with
// no default configured the cost is zero.
func (e *Estimator) Estimate(model string, promptTokens, completionTokens int) float64 {
	pricing, ok := e.lookup(model)
	if !ok {
		slog.Warn("no pricing entry for model, assuming zero cost", "model", model)
		return 0
	}

	cost := tokenCost(promptTokens, pricing.Input) + tokenCost(completionTokens, pricing.Output)
	return math.Round(cost*1e6) / 1e6
}

// EstimateMicro returns the cost in integer microdollars.
// It is exactly Estimate scaled by 1e6, suitable for fixed-point storage.
func (e *Estimator) EstimateMicro(model string, promptTokens, completionTokens int) int64 {
	pricing, ok := e.lookup(model)
	if !ok {
		return 0
	}

	cost := tokenCost(promptTokens, pricing.Input) + tokenCost(completionTokens, pricing.Output)
	return int64(math.Round(cost * 1e6))
}

// UpdateTable swaps the pricing table (hot-reload support).
// This is thread-safe and can be called while the estimator is in use.
func (e *Estimator) UpdateTable(table Table) {
	if table == nil {
		return
	}
	if _, ok := table[DefaultModelKey]; !ok {
		slog.Warn("pricing table has no default entry; unknown models will cost zero")
	}

	e.mu.Lock()
	e.table = table
	e.mu.Unlock()

	slog.Info("pricing table updated", "models", len(table))
}

// GetTable returns a copy of the current table.
func (e *Estimator) GetTable() Table {
	e.mu.RLock()
	defer e.mu.RUnlock()

	table := make(Table, len(e.table))
	for model, pricing := range e.table {
		table[model] = pricing
	}
	return table
}

func (e *Estimator) lookup(model string) (ModelPricing, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.table.Lookup(model)
}

// tokenCost converts a token count to USD given a rate per 1M tokens.
func tokenCost(tokens int, ratePer1M float64) float64 {
	if tokens <= 0 {
		return 0
	}
	return float64(tokens) / 1e6 * ratePer1M
}
