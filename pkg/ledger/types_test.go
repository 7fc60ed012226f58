package ledger

import (
	"testing"
	"time"
)

func TestDayStart(t *testing.T) {
	tests := []struct {
		name string
		at   time.Time
		want time.Time
	}{
		{
			name: "midday utc",
			at:   time.Date(2025, 6, 17, 14, 30, 45, 0, time.UTC),
			want: time.Date(2025, 6, 17, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "already midnight",
			at:   time.Date(2025, 6, 17, 0, 0, 0, 0, time.UTC),
			want: time.Date(2025, 6, 17, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "non-utc zone normalizes first",
			at:   time.Date(2025, 6, 18, 1, 30, 0, 0, time.FixedZone("UTC+5", 5*3600)),
			want: time.Date(2025, 6, 17, 0, 0, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DayStart(tt.at)
			if !got.Equal(tt.want) {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestWeekStart(t *testing.T) {
	tests := []struct {
		name string
		at   time.Time
		want time.Time
	}{
		{
			name: "wednesday rolls back to monday",
			at:   time.Date(2025, 6, 18, 9, 0, 0, 0, time.UTC),
			want: time.Date(2025, 6, 16, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "monday stays",
			at:   time.Date(2025, 6, 16, 23, 59, 59, 0, time.UTC),
			want: time.Date(2025, 6, 16, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "sunday rolls back six days",
			at:   time.Date(2025, 6, 22, 12, 0, 0, 0, time.UTC),
			want: time.Date(2025, 6, 16, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "week spanning a month boundary",
			at:   time.Date(2025, 7, 1, 8, 0, 0, 0, time.UTC),
			want: time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := WeekStart(tt.at)
			if !got.Equal(tt.want) {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
			if got.Weekday() != time.Monday {
				t.Errorf("expected Monday, got %v", got.Weekday())
			}
		})
	}
}

func TestMonthStart(t *testing.T) {
	got := MonthStart(time.Date(2025, 6, 18, 9, 0, 0, 0, time.UTC))
	want := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("expected %v, got %v", want, got)
	}

	got = MonthStart(time.Date(2025, 2, 28, 23, 0, 0, 0, time.UTC))
	want = time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestStatsAvgTokensPerPost(t *testing.T) {
	tests := []struct {
		name  string
		stats Stats
		want  int64
	}{
		{
			name:  "integer division",
			stats: Stats{TotalTokens: 1000, PostsProcessed: 3},
			want:  333,
		},
		{
			name:  "exact division",
			stats: Stats{TotalTokens: 1500, PostsProcessed: 3},
			want:  500,
		},
		{
			name:  "zero posts",
			stats: Stats{TotalTokens: 1000, PostsProcessed: 0},
			want:  0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.stats.AvgTokensPerPost(); got != tt.want {
				t.Errorf("expected %d, got %d", tt.want, got)
			}
		})
	}
}

func TestCostUSD(t *testing.T) {
	entry := &Entry{CostMicro: 450}
	if got := entry.CostUSD(); got != 0.00045 {
		t.Errorf("expected 0.00045, got %v", got)
	}

	stats := &Stats{CostMicro: 1250000}
	if got := stats.CostUSD(); got != 1.25 {
		t.Errorf("expected 1.25, got %v", got)
	}
}
