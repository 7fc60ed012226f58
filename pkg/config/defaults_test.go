package config

import (
	"testing"
	"time"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Provider.Name != "openai" {
		t.Errorf("provider name = %q, want openai", cfg.Provider.Name)
	}
	if cfg.Provider.BaseURL != DefaultProviderBaseURL {
		t.Errorf("base URL = %q, want %q", cfg.Provider.BaseURL, DefaultProviderBaseURL)
	}
	if cfg.Provider.Timeout != 60*time.Second {
		t.Errorf("provider timeout = %v, want 60s", cfg.Provider.Timeout)
	}
	if cfg.Enrichment.Model != "gpt-4o-mini" {
		t.Errorf("model = %q, want gpt-4o-mini", cfg.Enrichment.Model)
	}
	if cfg.Enrichment.Temperature != 0.2 {
		t.Errorf("temperature = %v, want 0.2", cfg.Enrichment.Temperature)
	}
	if cfg.RateLimit.RequestsPerMinute != 60 {
		t.Errorf("requests per minute = %d, want 60", cfg.RateLimit.RequestsPerMinute)
	}
	if cfg.Store.Path != "data/posts.db" {
		t.Errorf("store path = %q, want data/posts.db", cfg.Store.Path)
	}
	if cfg.Ledger.Path != "data/usage.db" {
		t.Errorf("ledger path = %q, want data/usage.db", cfg.Ledger.Path)
	}
	if cfg.Ledger.DailyLimitUSD != 0 {
		t.Errorf("daily limit = %v, want 0 (disabled)", cfg.Ledger.DailyLimitUSD)
	}
	if cfg.Jobs.BatchLimit != 50 {
		t.Errorf("batch limit = %d, want 50", cfg.Jobs.BatchLimit)
	}
	if cfg.Jobs.MaxAttempts != 3 {
		t.Errorf("max attempts = %d, want 3", cfg.Jobs.MaxAttempts)
	}
	if cfg.Scheduler.Schedule != "@every 5m" {
		t.Errorf("schedule = %q, want @every 5m", cfg.Scheduler.Schedule)
	}
	if cfg.Server.ListenAddress != "127.0.0.1:9090" {
		t.Errorf("listen address = %q, want 127.0.0.1:9090", cfg.Server.ListenAddress)
	}
	if cfg.Telemetry.Logging.Level != "info" {
		t.Errorf("log level = %q, want info", cfg.Telemetry.Logging.Level)
	}
	if cfg.Telemetry.Logging.Format != "json" {
		t.Errorf("log format = %q, want json", cfg.Telemetry.Logging.Format)
	}
	if cfg.Telemetry.Metrics.Enabled {
		t.Error("metrics enabled by default, want disabled")
	}
	if cfg.Telemetry.Metrics.Namespace != "aurora" {
		t.Errorf("metrics namespace = %q, want aurora", cfg.Telemetry.Metrics.Namespace)
	}
}

func TestApplyDefaultsPreservesSetValues(t *testing.T) {
	cfg := &Config{}
	cfg.Provider.Timeout = 5 * time.Second
	cfg.Enrichment.Model = "gpt-4o"
	cfg.Jobs.BatchLimit = 10
	cfg.RateLimit.RequestsPerMinute = -1

	ApplyDefaults(cfg)

	if cfg.Provider.Timeout != 5*time.Second {
		t.Errorf("timeout overwritten: %v", cfg.Provider.Timeout)
	}
	if cfg.Enrichment.Model != "gpt-4o" {
		t.Errorf("model overwritten: %q", cfg.Enrichment.Model)
	}
	if cfg.Jobs.BatchLimit != 10 {
		t.Errorf("batch limit overwritten: %d", cfg.Jobs.BatchLimit)
	}
	if cfg.RateLimit.RequestsPerMinute != -1 {
		t.Errorf("disabled pacing overwritten: %d", cfg.RateLimit.RequestsPerMinute)
	}
}

func TestApplyDefaultsIdempotent(t *testing.T) {
	cfg := Default()
	before := *cfg

	ApplyDefaults(cfg)

	if *cfg != before {
		t.Error("second ApplyDefaults changed the configuration")
	}
}
