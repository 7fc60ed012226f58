// Package ledger records LLM token usage and computes cost aggregates.
//
// # Overview
//
// Every successful LLM call appends one Entry to an append-only usage log.
// Entries are never updated or deleted; the log is the sole source of truth
// for cost reporting. Aggregates (daily, weekly, monthly) are computed on
// demand by summing entries over a UTC time window.
//
// Two storage backends are provided:
//
//   - Memory: in-memory log for tests
//   - SQLite: file-based persistence for production
//
// # Usage
//
//	store, err := ledger.NewSQLiteStore(nil)
//	if err != nil {
//	    return err
//	}
//	defer store.Close()
//
//	tracker := ledger.NewTracker(store, estimator, ledger.TrackerConfig{
//	    DailyLimitUSD: 10.00,
//	}, logger)
//
//	entry, err := tracker.LogUsage(ctx, "gpt-4o-mini", 1200, 400, "enrich_new_posts", 1)
//	status, err := tracker.CheckDailyLimit(ctx)
//
// # Cost Representation
//
// Costs are stored as int64 microdollars (USD * 1e6), which preserves the
// six decimal places the estimator produces without floating-point drift
// in sums. CostUSD converts back for display.
//
// # Thread Safety
//
// All stores are safe for concurrent use. Because the log is append-only,
// readers computing aggregates never observe a torn write.
package ledger
