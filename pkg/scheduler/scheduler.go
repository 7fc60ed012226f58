package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"feedlens/aurora/pkg/jobs"
)

// DefaultSchedule is the interval used when no schedule is configured.
const DefaultSchedule = "@every 5m"

// BatchRunner is the job the scheduler triggers.
type BatchRunner interface {
	EnrichNewPosts(ctx context.Context, limit int) *jobs.BatchReport
}

var _ BatchRunner = (*jobs.Orchestrator)(nil)

// Config controls the schedule and the per-run batch size.
type Config struct {
	// Schedule is a cron expression or descriptor ("0 */6 * * *",
	// "@every 5m"). Empty means DefaultSchedule.
	Schedule string

	// BatchLimit is the maximum number of posts per scheduled run.
	// Zero or negative means jobs.DefaultBatchLimit.
	BatchLimit int
}

// Scheduler triggers the batch enrichment job on a cron schedule.
type Scheduler struct {
	runner  BatchRunner
	config  Config
	cron    *cron.Cron
	entryID cron.EntryID
	mu      sync.Mutex
	running bool
	logger  *slog.Logger
}

// New creates a scheduler for the given runner. A nil logger falls
// back to slog.Default().
func New(runner BatchRunner, config Config, logger *slog.Logger) *Scheduler {
	if config.Schedule == "" {
		config.Schedule = DefaultSchedule
	}
	if config.BatchLimit <= 0 {
		config.BatchLimit = jobs.DefaultBatchLimit
	}
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("component", "scheduler")

	cl := cronLogger{logger: logger}
	return &Scheduler{
		runner: runner,
		config: config,
		cron: cron.New(cron.WithChain(
			cron.SkipIfStillRunning(cl),
			cron.Recover(cl),
		)),
		logger: logger,
	}
}

// Start validates the schedule and begins triggering runs. The
// scheduler stops itself when ctx is cancelled.
func (s *Scheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return nil
	}

	if _, err := cron.ParseStandard(s.config.Schedule); err != nil {
		return fmt.Errorf("invalid schedule %q: %w", s.config.Schedule, err)
	}

	// Re-register on restart so the entry binds the fresh context.
	if s.entryID != 0 {
		s.cron.Remove(s.entryID)
	}
	entryID, err := s.cron.AddFunc(s.config.Schedule, func() {
		s.runBatch(ctx)
	})
	if err != nil {
		return fmt.Errorf("failed to schedule enrichment job: %w", err)
	}
	s.entryID = entryID

	s.cron.Start()
	s.running = true

	s.logger.Info("scheduler started",
		"schedule", s.config.Schedule,
		"batch_limit", s.config.BatchLimit,
	)

	go func() {
		<-ctx.Done()
		s.Stop()
	}()

	return nil
}

func (s *Scheduler) runBatch(ctx context.Context) {
	s.logger.Debug("starting scheduled enrichment run")

	report := s.runner.EnrichNewPosts(ctx, s.config.BatchLimit)

	switch report.Status {
	case jobs.StatusError:
		s.logger.Error("scheduled enrichment run failed",
			"run_id", report.RunID,
			"reason", report.Reason,
			"posts_failed", report.PostsFailed,
		)
	case jobs.StatusSkipped:
		s.logger.Warn("scheduled enrichment run skipped",
			"run_id", report.RunID,
			"reason", report.Reason,
		)
	default:
		if report.PostsProcessed == 0 {
			s.logger.Debug("scheduled enrichment run completed, no new posts",
				"run_id", report.RunID,
			)
			return
		}
		s.logger.Info("scheduled enrichment run completed",
			"run_id", report.RunID,
			"status", report.Status,
			"posts_processed", report.PostsProcessed,
			"posts_enriched", report.PostsEnriched,
			"posts_failed", report.PostsFailed,
			"posts_skipped", report.PostsSkipped,
			"total_tokens", report.TotalTokens,
			"duration_ms", report.DurationMs,
		)
	}
}

// Stop halts scheduling and waits for an in-flight run to finish.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cron != nil && s.running {
		stopCtx := s.cron.Stop()
		<-stopCtx.Done()
		s.running = false
		s.logger.Info("scheduler stopped")
	}
}

// IsRunning reports whether the scheduler is started.
func (s *Scheduler) IsRunning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.running
}

// NextRun returns the next scheduled run time, or nil before Start.
func (s *Scheduler) NextRun() *time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries := s.cron.Entries()
	if len(entries) == 0 {
		return nil
	}

	next := entries[0].Next
	return &next
}

// cronLogger adapts slog to the cron.Logger interface. Cron's own
// chatter (wake-ups, skip events) lands at debug level.
type cronLogger struct {
	logger *slog.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.logger.Debug(msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	args := append([]interface{}{"error", err}, keysAndValues...)
	l.logger.Error(msg, args...)
}
