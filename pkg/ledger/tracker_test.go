package ledger

import (
	"context"
	"testing"
	"time"

	"feedlens/aurora/pkg/costs"
)

func TestLogUsage(t *testing.T) {
	store := NewMemoryStore()
	tracker := NewTracker(store, costs.NewEstimator(nil), TrackerConfig{}, nil)

	entry, err := tracker.LogUsage(context.Background(), "gpt-4o-mini", 1000, 500, "enrich_post", 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if entry.ID == "" {
		t.Error("expected entry ID to be set")
	}
	if entry.TotalTokens != 1500 {
		t.Errorf("expected 1500 total tokens, got %d", entry.TotalTokens)
	}
	// 1000/1M*0.15 + 500/1M*0.60 = $0.000450
	if entry.CostMicro != 450 {
		t.Errorf("expected 450 microdollars, got %d", entry.CostMicro)
	}
	if entry.TaskName != "enrich_post" {
		t.Errorf("unexpected task name %q", entry.TaskName)
	}
	if entry.CreatedAt.Location() != time.UTC {
		t.Errorf("expected UTC timestamp, got %v", entry.CreatedAt.Location())
	}
	if store.Size() != 1 {
		t.Errorf("expected 1 stored entry, got %d", store.Size())
	}
}

func TestDailyStatsIncludesTodaysUsage(t *testing.T) {
	store := NewMemoryStore()
	tracker := NewTracker(store, costs.NewEstimator(nil), TrackerConfig{}, nil)

	ctx := context.Background()
	if _, err := tracker.LogUsage(ctx, "gpt-4o-mini", 1000, 500, "enrich_new_posts", 3); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := tracker.LogUsage(ctx, "gpt-4o-mini", 2000, 1000, "enrich_new_posts", 5); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	stats, err := tracker.DailyStats(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if stats.Calls != 2 {
		t.Errorf("expected 2 calls, got %d", stats.Calls)
	}
	if stats.TotalTokens != 4500 {
		t.Errorf("expected 4500 total tokens, got %d", stats.TotalTokens)
	}
	if stats.PostsProcessed != 8 {
		t.Errorf("expected 8 posts, got %d", stats.PostsProcessed)
	}
	if stats.AvgTokensPerPost() != 562 {
		t.Errorf("expected 562 avg tokens per post, got %d", stats.AvgTokensPerPost())
	}
}

func TestWeeklyAndMonthlyStatsIncludeNow(t *testing.T) {
	store := NewMemoryStore()
	tracker := NewTracker(store, costs.NewEstimator(nil), TrackerConfig{}, nil)

	ctx := context.Background()
	if _, err := tracker.LogUsage(ctx, "gpt-4o-mini", 100, 50, "enrich_post", 1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	weekly, err := tracker.WeeklyStats(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if weekly.Calls != 1 {
		t.Errorf("expected current entry in weekly window, got %d calls", weekly.Calls)
	}

	monthly, err := tracker.MonthlyStats(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if monthly.Calls != 1 {
		t.Errorf("expected current entry in monthly window, got %d calls", monthly.Calls)
	}
}

func TestCheckDailyLimit(t *testing.T) {
	tests := []struct {
		name       string
		limitUSD   float64
		spentMicro int64
		wantStatus string
		wantPct    float64
	}{
		{
			name:       "no limit configured",
			limitUSD:   0,
			spentMicro: 5000000,
			wantStatus: StatusOK,
			wantPct:    0,
		},
		{
			name:       "well under limit",
			limitUSD:   10,
			spentMicro: 1000000, // $1
			wantStatus: StatusOK,
			wantPct:    10,
		},
		{
			name:       "at warning threshold",
			limitUSD:   10,
			spentMicro: 8000000, // $8
			wantStatus: StatusWarning,
			wantPct:    80,
		},
		{
			name:       "just under warning threshold",
			limitUSD:   10,
			spentMicro: 7999000, // $7.999
			wantStatus: StatusOK,
			wantPct:    79.99,
		},
		{
			name:       "at limit",
			limitUSD:   10,
			spentMicro: 10000000, // $10
			wantStatus: StatusExceeded,
			wantPct:    100,
		},
		{
			name:       "over limit",
			limitUSD:   10,
			spentMicro: 12000000, // $12
			wantStatus: StatusExceeded,
			wantPct:    120,
		},
		{
			name:       "percentage rounds to two decimals",
			limitUSD:   1,
			spentMicro: 333333, // $0.333333 -> 33.3333%
			wantStatus: StatusOK,
			wantPct:    33.33,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := NewMemoryStore()
			tracker := NewTracker(store, costs.NewEstimator(nil), TrackerConfig{DailyLimitUSD: tt.limitUSD}, nil)

			ctx := context.Background()
			if tt.spentMicro > 0 {
				entry := &Entry{Model: "gpt-4o", TotalTokens: 1, CostMicro: tt.spentMicro, PostsProcessed: 1, CreatedAt: time.Now().UTC()}
				if err := store.Append(ctx, entry); err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
			}

			status, err := tracker.CheckDailyLimit(ctx)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if status.Status != tt.wantStatus {
				t.Errorf("expected status %q, got %q", tt.wantStatus, status.Status)
			}
			if status.PercentageUsed != tt.wantPct {
				t.Errorf("expected %.2f%% used, got %v", tt.wantPct, status.PercentageUsed)
			}
			if status.Limit != tt.limitUSD {
				t.Errorf("expected limit %v, got %v", tt.limitUSD, status.Limit)
			}
		})
	}
}
