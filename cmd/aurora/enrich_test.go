package main

import (
	"strings"
	"testing"

	"feedlens/aurora/pkg/jobs"
)

func TestBatchExitError(t *testing.T) {
	tests := []struct {
		name    string
		report  *jobs.BatchReport
		wantErr bool
		wantMsg string
	}{
		{
			name:    "completed run",
			report:  &jobs.BatchReport{Status: jobs.StatusCompleted},
			wantErr: false,
		},
		{
			name:    "partial run",
			report:  &jobs.BatchReport{Status: jobs.StatusPartial, PostsFailed: 1},
			wantErr: false,
		},
		{
			name:    "error with reason",
			report:  &jobs.BatchReport{Status: jobs.StatusError, Reason: "invalid channel id"},
			wantErr: true,
			wantMsg: "invalid channel id",
		},
		{
			name: "error without reason",
			report: &jobs.BatchReport{
				Status:         jobs.StatusError,
				PostsProcessed: 5,
				PostsFailed:    5,
			},
			wantErr: true,
			wantMsg: "5 of 5 posts failed",
		},
		{
			name: "skipped run",
			report: &jobs.BatchReport{
				Status: jobs.StatusSkipped,
				Reason: jobs.ReasonServiceUnavailable,
			},
			wantErr: true,
			wantMsg: jobs.ReasonServiceUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := batchExitError("enrich new", tt.report)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected an error")
				}
				if !strings.Contains(err.Error(), tt.wantMsg) {
					t.Errorf("error = %q, want it to contain %q", err.Error(), tt.wantMsg)
				}
				return
			}
			if err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}
