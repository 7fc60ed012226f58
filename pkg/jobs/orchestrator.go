package jobs

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"feedlens/aurora/pkg/enrichment"
	"feedlens/aurora/pkg/ledger"
	"feedlens/aurora/pkg/store"
	"feedlens/aurora/pkg/telemetry/metrics"
)

// Enricher is the slice of the enrichment service the orchestrator needs.
type Enricher interface {
	// Ready reports whether the service can make provider calls.
	Ready() error

	// EnrichPost extracts metadata for one post. Never returns a Go
	// error; failures are carried inside the Result.
	EnrichPost(ctx context.Context, postID, text string) *enrichment.Result
}

var _ Enricher = (*enrichment.Service)(nil)

// DefaultBatchLimit is the candidate limit used when a batch job is
// invoked with no explicit limit.
const DefaultBatchLimit = 50

// Config contains configuration for the Orchestrator.
type Config struct {
	// BatchLimit is the default candidate limit for batch jobs.
	// Default: 50
	BatchLimit int

	// Retry is the policy applied by the single-post job.
	// A zero policy falls back to DefaultPolicy.
	Retry Policy
}

// Orchestrator drives enrichment runs over the post store. All
// collaborators are injected; the orchestrator holds no global state.
type Orchestrator struct {
	service Enricher
	store   store.Store
	tracker *ledger.Tracker
	metrics *metrics.Collector
	config  Config
	logger  *slog.Logger
}

// NewOrchestrator creates an orchestrator over the given service, post
// store, and cost tracker. A nil collector disables metric recording.
func NewOrchestrator(service Enricher, st store.Store, tracker *ledger.Tracker, collector *metrics.Collector, config Config, logger *slog.Logger) *Orchestrator {
	if config.BatchLimit <= 0 {
		config.BatchLimit = DefaultBatchLimit
	}
	if config.Retry.MaxAttempts == 0 {
		config.Retry = DefaultPolicy()
	}
	if collector == nil {
		collector = metrics.NewCollector(metrics.Config{Enabled: false}, nil)
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &Orchestrator{
		service: service,
		store:   st,
		tracker: tracker,
		metrics: collector,
		config:  config,
		logger:  logger.With("component", "jobs.orchestrator"),
	}
}

// EnrichPost enriches a single post by id. Transient provider failures
// (rate limit, timeout) are retried per the configured policy; fatal
// failures are not. The job never panics; an unexpected panic is
// converted into an error report.
func (o *Orchestrator) EnrichPost(ctx context.Context, postID string) *PostReport {
	start := time.Now()
	report := &PostReport{PostID: postID, Status: StatusCompleted}

	func() {
		defer func() {
			if r := recover(); r != nil {
				o.logger.Error("panic while enriching post",
					"post_id", postID,
					"panic", r,
				)
				report.Status = StatusError
				report.Reason = fmt.Sprintf("panic: %v", r)
			}
		}()
		o.enrichOne(ctx, postID, report)
	}()

	report.DurationMs = time.Since(start).Milliseconds()
	o.metrics.RecordPost(TaskEnrichPost, outcomeForStatus(report.Status), time.Since(start))

	if report.Status == StatusCompleted {
		o.checkBudget(ctx)
	}

	o.logger.Info("post job finished",
		"post_id", postID,
		"status", report.Status,
		"reason", report.Reason,
		"attempts", report.Attempts,
		"total_tokens", report.TotalTokens,
	)

	return report
}

// enrichOne runs the single-post sequence: readiness, fetch, skip checks,
// enrich with retry, persist.
func (o *Orchestrator) enrichOne(ctx context.Context, postID string, report *PostReport) {
	if err := o.service.Ready(); err != nil {
		report.Status = StatusSkipped
		report.Reason = fmt.Sprintf("%s: %v", ReasonServiceUnavailable, err)
		o.logger.Warn("enrichment service unavailable", "post_id", postID, "error", err)
		return
	}

	post, err := o.store.GetPost(ctx, postID)
	if err != nil {
		report.Status = StatusError
		if errors.Is(err, store.ErrNotFound) {
			report.Reason = "post not found"
		} else {
			report.Reason = fmt.Sprintf("failed to fetch post: %v", err)
		}
		return
	}

	has, err := o.store.HasEnrichment(ctx, postID)
	if err != nil {
		report.Status = StatusError
		report.Reason = fmt.Sprintf("failed to check enrichment: %v", err)
		return
	}
	if has {
		report.Status = StatusSkipped
		report.Reason = ReasonAlreadyEnriched
		return
	}

	if post.MediaOnly || strings.TrimSpace(post.Content) == "" {
		report.Status = StatusSkipped
		report.Reason = ReasonNoTextContent
		return
	}

	result, attempts := Retry(ctx, o.config.Retry, o.logger, func(ctx context.Context) *enrichment.Result {
		return o.service.EnrichPost(ctx, postID, post.Content)
	})
	report.Attempts = attempts

	if !result.Succeeded() {
		report.Status = StatusError
		report.Reason = result.Failure().Message
		return
	}

	if err := o.persistResult(ctx, TaskEnrichPost, result); err != nil {
		report.Status = StatusError
		report.Reason = err.Error()
		return
	}

	report.Status = StatusCompleted
	report.TotalTokens = result.TotalTokens()
}

// EnrichNewPosts enriches up to limit posts that have no enrichment
// record yet, oldest first. A limit of 0 or below uses the configured
// default.
func (o *Orchestrator) EnrichNewPosts(ctx context.Context, limit int) *BatchReport {
	return o.runBatch(ctx, TaskEnrichNewPosts, limit, func(ctx context.Context, limit int) ([]*store.Post, error) {
		return o.store.ListUnenriched(ctx, limit)
	})
}

// EnrichChannelPosts is EnrichNewPosts restricted to one channel. The
// channel id must be a UUID; anything else fails without touching the
// store.
func (o *Orchestrator) EnrichChannelPosts(ctx context.Context, channelID string, limit int) *BatchReport {
	if _, err := uuid.Parse(channelID); err != nil {
		o.logger.Error("invalid channel id", "channel_id", channelID, "error", err)
		report := &BatchReport{
			RunID:     uuid.NewString(),
			TaskName:  TaskEnrichChannelPosts,
			Status:    StatusError,
			Reason:    fmt.Sprintf("invalid channel id %q", channelID),
			StartedAt: time.Now().UTC(),
		}
		o.metrics.RecordBatch(TaskEnrichChannelPosts, StatusError)
		return report
	}

	return o.runBatch(ctx, TaskEnrichChannelPosts, limit, func(ctx context.Context, limit int) ([]*store.Post, error) {
		return o.store.ListUnenrichedByChannel(ctx, channelID, limit)
	})
}

// runBatch selects candidates and processes them strictly sequentially,
// sharing one pacer across the whole run through the service.
func (o *Orchestrator) runBatch(ctx context.Context, taskName string, limit int, candidates func(context.Context, int) ([]*store.Post, error)) *BatchReport {
	start := time.Now()
	report := &BatchReport{
		RunID:     uuid.NewString(),
		TaskName:  taskName,
		Status:    StatusCompleted,
		StartedAt: start.UTC(),
	}

	if err := o.service.Ready(); err != nil {
		report.Status = StatusSkipped
		report.Reason = fmt.Sprintf("%s: %v", ReasonServiceUnavailable, err)
		report.DurationMs = time.Since(start).Milliseconds()
		o.logger.Warn("batch skipped",
			"run_id", report.RunID,
			"task", taskName,
			"reason", report.Reason,
		)
		o.metrics.RecordBatch(taskName, report.Status)
		return report
	}

	if limit <= 0 {
		limit = o.config.BatchLimit
	}

	posts, err := candidates(ctx, limit)
	if err != nil {
		report.Status = StatusError
		report.Reason = fmt.Sprintf("failed to list candidates: %v", err)
		report.DurationMs = time.Since(start).Milliseconds()
		o.logger.Error("candidate query failed",
			"run_id", report.RunID,
			"task", taskName,
			"error", err,
		)
		o.metrics.RecordBatch(taskName, report.Status)
		return report
	}

	o.logger.Info("batch started",
		"run_id", report.RunID,
		"task", taskName,
		"candidates", len(posts),
		"limit", limit,
	)

	for _, post := range posts {
		if ctx.Err() != nil {
			o.logger.Warn("batch cancelled",
				"run_id", report.RunID,
				"processed", report.PostsProcessed,
				"error", ctx.Err(),
			)
			break
		}
		o.processItem(ctx, taskName, post, report)
	}

	switch {
	case report.PostsFailed == 0:
		report.Status = StatusCompleted
	case report.PostsEnriched > 0:
		report.Status = StatusPartial
	default:
		report.Status = StatusError
	}
	report.DurationMs = time.Since(start).Milliseconds()

	if report.PostsEnriched > 0 {
		o.checkBudget(ctx)
	}

	o.logger.Info("batch finished",
		"run_id", report.RunID,
		"task", taskName,
		"status", report.Status,
		"processed", report.PostsProcessed,
		"enriched", report.PostsEnriched,
		"failed", report.PostsFailed,
		"skipped", report.PostsSkipped,
		"total_tokens", report.TotalTokens,
		"duration_ms", report.DurationMs,
	)
	o.metrics.RecordBatch(taskName, report.Status)

	return report
}

// processItem applies the per-item sequence to one candidate. Failures,
// including panics, are contained at the item boundary so the batch
// always proceeds. Batch items are never retried.
func (o *Orchestrator) processItem(ctx context.Context, taskName string, post *store.Post, report *BatchReport) {
	report.PostsProcessed++
	itemStart := time.Now()
	outcome := "failed"

	defer func() {
		if r := recover(); r != nil {
			o.logger.Error("panic while enriching post",
				"post_id", post.ID,
				"panic", r,
			)
			report.PostsFailed++
			report.Failures = append(report.Failures, ItemFailure{
				PostID: post.ID,
				Error:  fmt.Sprintf("panic: %v", r),
			})
			outcome = "failed"
		}
		o.metrics.RecordPost(taskName, outcome, time.Since(itemStart))
	}()

	// Re-check even though candidates were unenriched at selection time:
	// another run may have enriched this post since the query.
	has, err := o.store.HasEnrichment(ctx, post.ID)
	if err != nil {
		report.PostsFailed++
		report.Failures = append(report.Failures, ItemFailure{
			PostID: post.ID,
			Error:  fmt.Sprintf("failed to check enrichment: %v", err),
		})
		return
	}
	if has {
		report.PostsSkipped++
		outcome = "skipped"
		o.logger.Debug("post already enriched", "post_id", post.ID)
		return
	}

	if post.MediaOnly || strings.TrimSpace(post.Content) == "" {
		report.PostsSkipped++
		outcome = "skipped"
		o.logger.Debug("post has no text content", "post_id", post.ID)
		return
	}

	result := o.service.EnrichPost(ctx, post.ID, post.Content)
	if !result.Succeeded() {
		report.PostsFailed++
		report.Failures = append(report.Failures, ItemFailure{
			PostID: post.ID,
			Error:  result.Failure().Message,
		})
		return
	}

	if err := o.persistResult(ctx, taskName, result); err != nil {
		report.PostsFailed++
		report.Failures = append(report.Failures, ItemFailure{
			PostID: post.ID,
			Error:  err.Error(),
		})
		return
	}

	report.PostsEnriched++
	report.TotalTokens += result.TotalTokens()
	outcome = "enriched"
}

// persistResult writes the enrichment record and, when a provider call
// was actually made, the usage-log row. Losing the insert to a
// concurrent run is not an error: the tokens were spent either way, so
// the usage row is still written.
func (o *Orchestrator) persistResult(ctx context.Context, taskName string, result *enrichment.Result) error {
	metadata := result.Metadata()
	record := &store.EnrichmentRecord{
		PostID:           result.PostID,
		ExplicitKeywords: metadata.ExplicitKeywords,
		ImplicitKeywords: metadata.ImplicitKeywords,
		Category:         metadata.Category,
		Sentiment:        metadata.Sentiment,
		Entities:         metadata.Entities,
		InputTokens:      result.InputTokens,
		OutputTokens:     result.OutputTokens,
		ProcessingTimeMs: result.ProcessingTime.Milliseconds(),
		Model:            result.Model,
	}

	inserted, err := o.store.SaveEnrichment(ctx, record)
	if err != nil {
		return fmt.Errorf("failed to persist enrichment: %w", err)
	}
	if !inserted {
		o.logger.Warn("enrichment already recorded by a concurrent run",
			"post_id", result.PostID,
		)
	}

	// An empty model marks the no-text short-circuit: no call, no cost.
	if result.Model != "" {
		entry, err := o.tracker.LogUsage(ctx, result.Model, result.InputTokens, result.OutputTokens, taskName, 1)
		if err != nil {
			return fmt.Errorf("failed to log usage: %w", err)
		}
		o.metrics.RecordUsage(result.Model, result.InputTokens, result.OutputTokens, entry.CostUSD())
	}

	return nil
}

// checkBudget refreshes the daily budget position after a run that spent
// tokens. Threshold logging happens inside the tracker.
func (o *Orchestrator) checkBudget(ctx context.Context) {
	status, err := o.tracker.CheckDailyLimit(ctx)
	if err != nil {
		o.logger.Warn("failed to check daily cost limit", "error", err)
		return
	}
	o.metrics.UpdateDailyBudget(status.CurrentCost, status.PercentageUsed)
}

// outcomeForStatus maps a single-post job status onto a metric outcome.
func outcomeForStatus(status string) string {
	switch status {
	case StatusCompleted:
		return "enriched"
	case StatusSkipped:
		return "skipped"
	default:
		return "failed"
	}
}
