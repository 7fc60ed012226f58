package ledger

import (
	"context"
	"time"
)

// Entry is one append-only usage log row, written exactly once per
// successful LLM call.
type Entry struct {
	// ID is a unique identifier for the entry (UUID).
	ID string

	// Model is the model name reported by the provider.
	Model string

	// PromptTokens is the number of input tokens billed.
	PromptTokens int

	// CompletionTokens is the number of output tokens billed.
	CompletionTokens int

	// TotalTokens is the sum of prompt and completion tokens.
	TotalTokens int

	// CostMicro is the estimated cost in microdollars (USD * 1e6).
	CostMicro int64

	// TaskName identifies the job that made the call
	// (e.g. "enrich_post", "enrich_new_posts").
	TaskName string

	// PostsProcessed is the number of posts covered by this call.
	PostsProcessed int

	// CreatedAt is the UTC timestamp of the call.
	CreatedAt time.Time
}

// CostUSD returns the entry cost in dollars.
func (e *Entry) CostUSD() float64 {
	return float64(e.CostMicro) / 1e6
}

// Stats aggregates usage log entries over a time window.
type Stats struct {
	// From is the inclusive window start (UTC).
	From time.Time `json:"from"`

	// To is the exclusive window end (UTC).
	To time.Time `json:"to"`

	// Calls is the number of usage log entries in the window.
	Calls int64 `json:"calls"`

	// PostsProcessed is the total number of posts covered.
	PostsProcessed int64 `json:"posts_processed"`

	// PromptTokens is the sum of prompt tokens.
	PromptTokens int64 `json:"prompt_tokens"`

	// CompletionTokens is the sum of completion tokens.
	CompletionTokens int64 `json:"completion_tokens"`

	// TotalTokens is the sum of total tokens.
	TotalTokens int64 `json:"total_tokens"`

	// CostMicro is the summed cost in microdollars.
	CostMicro int64 `json:"cost_micro"`
}

// CostUSD returns the aggregate cost in dollars.
func (s *Stats) CostUSD() float64 {
	return float64(s.CostMicro) / 1e6
}

// AvgTokensPerPost returns total tokens divided by posts processed,
// using integer division. Returns 0 when no posts were processed.
func (s *Stats) AvgTokensPerPost() int64 {
	if s.PostsProcessed == 0 {
		return 0
	}
	return s.TotalTokens / s.PostsProcessed
}

// Budget classification values returned by Tracker.CheckDailyLimit.
const (
	StatusOK       = "ok"
	StatusWarning  = "warning"
	StatusExceeded = "exceeded"
)

// CostStatus reports current spend against the configured daily limit.
// It is derived on demand and never stored.
type CostStatus struct {
	// Status is one of StatusOK, StatusWarning, or StatusExceeded.
	Status string `json:"status"`

	// CurrentCost is today's spend in dollars.
	CurrentCost float64 `json:"current_cost"`

	// Limit is the configured daily limit in dollars (0 means unlimited).
	Limit float64 `json:"limit"`

	// PercentageUsed is CurrentCost/Limit*100 rounded to 2 decimals,
	// 0 when no limit is configured.
	PercentageUsed float64 `json:"percentage_used"`
}

// Store is the persistence interface for the usage log.
type Store interface {
	// Append persists one entry. Entries are immutable once written.
	Append(ctx context.Context, entry *Entry) error

	// StatsBetween sums entries with CreatedAt in [from, to).
	StatsBetween(ctx context.Context, from, to time.Time) (*Stats, error)

	// Close releases resources held by the store.
	Close() error
}

// DayStart returns 00:00:00 UTC on the day containing t.
func DayStart(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// WeekStart returns 00:00:00 UTC on the Monday of the week containing t.
func WeekStart(t time.Time) time.Time {
	day := DayStart(t)
	// time.Weekday numbers Sunday as 0; shift so Monday is 0
	offset := (int(day.Weekday()) + 6) % 7
	return day.AddDate(0, 0, -offset)
}

// MonthStart returns 00:00:00 UTC on the first day of the month containing t.
func MonthStart(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}
