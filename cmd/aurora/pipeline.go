package main

import (
	"fmt"
	"log/slog"
	"os"

	"feedlens/aurora/pkg/cli"
	"feedlens/aurora/pkg/config"
	"feedlens/aurora/pkg/costs"
	"feedlens/aurora/pkg/enrichment"
	"feedlens/aurora/pkg/jobs"
	"feedlens/aurora/pkg/ledger"
	"feedlens/aurora/pkg/limits/ratelimit"
	"feedlens/aurora/pkg/providers"
	"feedlens/aurora/pkg/providers/openai"
	"feedlens/aurora/pkg/store"
	"feedlens/aurora/pkg/telemetry/logging"
	"feedlens/aurora/pkg/telemetry/metrics"
)

// pipeline bundles the components the enrichment commands wire together.
type pipeline struct {
	posts        *store.SQLiteStore
	usage        *ledger.SQLiteStore
	estimator    *costs.Estimator
	service      *enrichment.Service
	orchestrator *jobs.Orchestrator
}

// loadConfig loads configuration honoring the global --config and
// --verbose flags.
func loadConfig() (*config.Config, error) {
	cfg, err := config.LoadConfigWithEnvOverrides(cfgFile)
	if err != nil {
		return nil, err
	}
	if verbose {
		cfg.Telemetry.Logging.Level = "debug"
	}
	return cfg, nil
}

// newCommandLogger builds the logger for one-shot commands. Logs go to
// stderr so stdout stays clean for command output.
func newCommandLogger(cfg *config.Config) (*slog.Logger, error) {
	logger, err := logging.New(logging.Config{
		Level:     cfg.Telemetry.Logging.Level,
		Format:    cfg.Telemetry.Logging.Format,
		AddSource: cfg.Telemetry.Logging.AddSource,
		Writer:    os.Stderr,
	})
	if err != nil {
		return nil, cli.NewConfigError("telemetry.logging", err.Error())
	}
	slog.SetDefault(logger)
	return logger, nil
}

// newPipeline wires the enrichment pipeline from configuration: post
// store, usage ledger, pricing estimator, provider client, pacer, and
// orchestrator. A nil collector disables metric recording. The caller
// owns Close.
func newPipeline(cfg *config.Config, collector *metrics.Collector, logger *slog.Logger) (*pipeline, error) {
	posts, err := store.NewSQLiteStore(&store.SQLiteConfig{
		Path:        cfg.Store.Path,
		BusyTimeout: cfg.Store.BusyTimeout,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open post store: %w", err)
	}

	usage, err := ledger.NewSQLiteStore(&ledger.SQLiteConfig{
		Path:        cfg.Ledger.Path,
		WALMode:     true,
		BusyTimeout: cfg.Ledger.BusyTimeout,
	})
	if err != nil {
		posts.Close()
		return nil, fmt.Errorf("failed to open usage ledger: %w", err)
	}

	table := costs.DefaultTable()
	if cfg.Costs.PricingPath != "" {
		table, err = costs.LoadTable(cfg.Costs.PricingPath)
		if err != nil {
			usage.Close()
			posts.Close()
			return nil, fmt.Errorf("failed to load pricing table: %w", err)
		}
	}
	estimator := costs.NewEstimator(table)

	tracker := ledger.NewTracker(usage, estimator, ledger.TrackerConfig{
		DailyLimitUSD: cfg.Ledger.DailyLimitUSD,
	}, logger)

	provider, err := openai.New(providers.ProviderConfig{
		Name:    cfg.Provider.Name,
		BaseURL: cfg.Provider.BaseURL,
		APIKey:  cfg.Provider.APIKey,
		Timeout: cfg.Provider.Timeout,
	})
	if err != nil {
		usage.Close()
		posts.Close()
		return nil, fmt.Errorf("failed to create provider: %w", err)
	}

	pacer := ratelimit.NewPacer(ratelimit.Config{
		RequestsPerMinute: cfg.RateLimit.RequestsPerMinute,
	})

	service := enrichment.NewService(provider, pacer, enrichment.ServiceConfig{
		Model:         cfg.Enrichment.Model,
		MaxTextLength: cfg.Enrichment.MaxTextLength,
		MaxTokens:     cfg.Enrichment.MaxTokens,
		Temperature:   cfg.Enrichment.Temperature,
	}, logger)

	orchestrator := jobs.NewOrchestrator(service, posts, tracker, collector, jobs.Config{
		BatchLimit: cfg.Jobs.BatchLimit,
		Retry:      retryPolicyFromConfig(cfg),
	}, logger)

	return &pipeline{
		posts:        posts,
		usage:        usage,
		estimator:    estimator,
		service:      service,
		orchestrator: orchestrator,
	}, nil
}

// retryPolicyFromConfig builds the single-post retry policy, falling
// back to the default policy for unset fields.
func retryPolicyFromConfig(cfg *config.Config) jobs.Policy {
	policy := jobs.DefaultPolicy()
	if cfg.Jobs.MaxAttempts > 0 {
		policy.MaxAttempts = cfg.Jobs.MaxAttempts
	}
	if cfg.Jobs.RetryBaseDelay > 0 {
		policy.BaseDelay = cfg.Jobs.RetryBaseDelay
	}
	if cfg.Jobs.RetryMaxDelay > 0 {
		policy.MaxDelay = cfg.Jobs.RetryMaxDelay
	}
	return policy
}

// Close releases the pipeline's stores.
func (p *pipeline) Close() {
	if err := p.usage.Close(); err != nil {
		slog.Warn("failed to close usage ledger", "error", err)
	}
	if err := p.posts.Close(); err != nil {
		slog.Warn("failed to close post store", "error", err)
	}
}
