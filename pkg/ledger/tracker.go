package ledger

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/google/uuid"

	"feedlens/aurora/pkg/costs"
)

// TrackerConfig configures a Tracker.
type TrackerConfig struct {
	// DailyLimitUSD is the daily spend limit in dollars.
	// 0 disables limit checking.
	DailyLimitUSD float64
}

// Tracker prices token usage, appends usage log entries, and classifies
// current spend against the configured daily budget.
type Tracker struct {
	store     Store
	estimator *costs.Estimator
	config    TrackerConfig
	logger    *slog.Logger
}

// NewTracker creates a cost tracker over the given store and estimator.
// A nil estimator falls back to the built-in pricing table.
func NewTracker(store Store, estimator *costs.Estimator, config TrackerConfig, logger *slog.Logger) *Tracker {
	if estimator == nil {
		estimator = costs.NewEstimator(nil)
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &Tracker{
		store:     store,
		estimator: estimator,
		config:    config,
		logger:    logger.With("component", "ledger.tracker"),
	}
}

// LogUsage prices one LLM call and appends it to the usage log.
// The entry timestamp is the current UTC time.
func (t *Tracker) LogUsage(ctx context.Context, model string, promptTokens, completionTokens int, taskName string, postsProcessed int) (*Entry, error) {
	entry := &Entry{
		ID:               uuid.NewString(),
		Model:            model,
		PromptTokens:     promptTokens,
		CompletionTokens: completionTokens,
		TotalTokens:      promptTokens + completionTokens,
		CostMicro:        t.estimator.EstimateMicro(model, promptTokens, completionTokens),
		TaskName:         taskName,
		PostsProcessed:   postsProcessed,
		CreatedAt:        time.Now().UTC(),
	}

	if err := t.store.Append(ctx, entry); err != nil {
		return nil, fmt.Errorf("failed to log usage: %w", err)
	}

	t.logger.Debug("usage logged",
		"model", model,
		"total_tokens", entry.TotalTokens,
		"cost_usd", entry.CostUSD(),
		"task", taskName,
	)

	return entry, nil
}

// DailyStats aggregates usage for the current UTC day.
func (t *Tracker) DailyStats(ctx context.Context) (*Stats, error) {
	from := DayStart(time.Now())
	return t.store.StatsBetween(ctx, from, from.AddDate(0, 0, 1))
}

// WeeklyStats aggregates usage for the current week, starting Monday UTC.
func (t *Tracker) WeeklyStats(ctx context.Context) (*Stats, error) {
	from := WeekStart(time.Now())
	return t.store.StatsBetween(ctx, from, from.AddDate(0, 0, 7))
}

// MonthlyStats aggregates usage for the current calendar month (UTC).
func (t *Tracker) MonthlyStats(ctx context.Context) (*Stats, error) {
	from := MonthStart(time.Now())
	return t.store.StatsBetween(ctx, from, from.AddDate(0, 1, 0))
}

// CheckDailyLimit classifies today's spend against the configured limit.
// It emits a warning-level log event when the warning or exceeded
// threshold is crossed.
func (t *Tracker) CheckDailyLimit(ctx context.Context) (*CostStatus, error) {
	stats, err := t.DailyStats(ctx)
	if err != nil {
		return nil, err
	}

	status := &CostStatus{
		Status:      StatusOK,
		CurrentCost: stats.CostUSD(),
		Limit:       t.config.DailyLimitUSD,
	}

	if t.config.DailyLimitUSD <= 0 {
		return status, nil
	}

	status.PercentageUsed = math.Round(status.CurrentCost/t.config.DailyLimitUSD*100*100) / 100

	switch {
	case status.PercentageUsed >= 100:
		status.Status = StatusExceeded
		t.logger.Warn("daily cost limit exceeded",
			"current_cost_usd", status.CurrentCost,
			"limit_usd", status.Limit,
			"percentage_used", status.PercentageUsed,
		)
	case status.PercentageUsed >= 80:
		status.Status = StatusWarning
		t.logger.Warn("daily cost limit approaching",
			"current_cost_usd", status.CurrentCost,
			"limit_usd", status.Limit,
			"percentage_used", status.PercentageUsed,
		)
	}

	return status, nil
}
