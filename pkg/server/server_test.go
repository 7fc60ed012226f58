package server

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"feedlens/aurora/pkg/config"
	"feedlens/aurora/pkg/telemetry/metrics"
)

func testServerConfig() *config.ServerConfig {
	return &config.ServerConfig{
		ListenAddress:   "127.0.0.1:0",
		ReadTimeout:     5 * time.Second,
		WriteTimeout:    5 * time.Second,
		IdleTimeout:     30 * time.Second,
		ShutdownTimeout: 2 * time.Second,
	}
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestHealthz(t *testing.T) {
	srv := New(testServerConfig(), nil, nil, testLogger())
	ts := httptest.NewServer(srv.routes())
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/healthz")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d, want 200", resp.StatusCode)
	}

	var body map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode body: %v", err)
	}
	if body["status"] != "ok" {
		t.Errorf("status field = %v, want ok", body["status"])
	}
}

func TestHealthzMethodNotAllowed(t *testing.T) {
	srv := New(testServerConfig(), nil, nil, testLogger())
	ts := httptest.NewServer(srv.routes())
	defer ts.Close()

	resp, err := http.Post(ts.URL+"/healthz", "application/json", nil)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusMethodNotAllowed {
		t.Errorf("status = %d, want 405", resp.StatusCode)
	}
}

func TestReadyz(t *testing.T) {
	tests := []struct {
		name       string
		ready      func() error
		wantStatus int
		wantField  string
	}{
		{
			name:       "ready",
			ready:      func() error { return nil },
			wantStatus: http.StatusOK,
			wantField:  "ready",
		},
		{
			name:       "not ready",
			ready:      func() error { return errors.New("API key is required") },
			wantStatus: http.StatusServiceUnavailable,
			wantField:  "not_ready",
		},
		{
			name:       "no readiness check",
			ready:      nil,
			wantStatus: http.StatusOK,
			wantField:  "ready",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := New(testServerConfig(), nil, tt.ready, testLogger())
			ts := httptest.NewServer(srv.routes())
			defer ts.Close()

			resp, err := http.Get(ts.URL + "/readyz")
			if err != nil {
				t.Fatalf("request failed: %v", err)
			}
			defer resp.Body.Close()

			if resp.StatusCode != tt.wantStatus {
				t.Errorf("status = %d, want %d", resp.StatusCode, tt.wantStatus)
			}

			var body map[string]interface{}
			if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
				t.Fatalf("failed to decode body: %v", err)
			}
			if body["status"] != tt.wantField {
				t.Errorf("status field = %v, want %q", body["status"], tt.wantField)
			}
		})
	}
}

func TestMetricsEndpoint(t *testing.T) {
	collector := metrics.NewCollector(
		metrics.Config{Enabled: true, Namespace: "test"},
		prometheus.NewRegistry(),
	)
	collector.RecordPost("enrich_post_job", "enriched", 100*time.Millisecond)

	srv := New(testServerConfig(), collector.Handler(), nil, testLogger())
	ts := httptest.NewServer(srv.routes())
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/metrics")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d, want 200", resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("failed to read body: %v", err)
	}
	if !strings.Contains(string(data), "test_pipeline_posts_total") {
		t.Error("expected posts counter in metrics output")
	}
}

func TestStartStopsOnContextCancel(t *testing.T) {
	srv := New(testServerConfig(), nil, nil, testLogger())

	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() {
		done <- srv.Start(ctx)
	}()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Start() = %v, want nil after cancel", err)
		}
	case <-time.After(3 * time.Second):
		t.Fatal("server did not stop after context cancel")
	}

	if srv.IsRunning() {
		t.Error("server still marked running")
	}
}
