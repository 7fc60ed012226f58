package jobs

import "time"

// Task names reported in job results and usage-log rows.
const (
	TaskEnrichPost         = "enrich_post_job"
	TaskEnrichNewPosts     = "enrich_new_posts_job"
	TaskEnrichChannelPosts = "enrich_channel_posts_job"
)

// Terminal statuses for jobs and batch runs.
const (
	// StatusCompleted means the run finished with no failures.
	StatusCompleted = "completed"

	// StatusPartial means some items succeeded and some failed.
	StatusPartial = "partial"

	// StatusError means the run failed, or every item in it failed.
	StatusError = "error"

	// StatusSkipped means the run did not process anything.
	StatusSkipped = "skipped"
)

// Skip reasons reported on PostReport.Reason.
const (
	ReasonAlreadyEnriched    = "already enriched"
	ReasonNoTextContent      = "no text content"
	ReasonServiceUnavailable = "enrichment service unavailable"
)

// ItemFailure records one failed post inside a batch run.
type ItemFailure struct {
	PostID string `json:"post_id"`
	Error  string `json:"error"`
}

// PostReport is the outcome of a single-post job.
type PostReport struct {
	PostID      string `json:"post_id"`
	Status      string `json:"status"`
	Reason      string `json:"reason,omitempty"`
	Attempts    int    `json:"attempts"`
	TotalTokens int    `json:"total_tokens"`
	DurationMs  int64  `json:"duration_ms"`
}

// BatchReport is the aggregate outcome of one batch run.
type BatchReport struct {
	RunID          string        `json:"run_id"`
	TaskName       string        `json:"task_name"`
	Status         string        `json:"status"`
	Reason         string        `json:"reason,omitempty"`
	PostsProcessed int           `json:"posts_processed"`
	PostsEnriched  int           `json:"posts_enriched"`
	PostsFailed    int           `json:"posts_failed"`
	PostsSkipped   int           `json:"posts_skipped"`
	TotalTokens    int           `json:"total_tokens"`
	Failures       []ItemFailure `json:"failures,omitempty"`
	StartedAt      time.Time     `json:"started_at"`
	DurationMs     int64         `json:"duration_ms"`
}
