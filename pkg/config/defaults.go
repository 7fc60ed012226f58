package config

import "time"

// Default values for configuration fields.
const (
	// Provider defaults
	DefaultProviderName    = "openai"
	DefaultProviderBaseURL = "https://api.openai.com/v1"
	DefaultProviderTimeout = 60 * time.Second

	// Enrichment defaults
	DefaultModel         = "gpt-4o-mini"
	DefaultMaxTextLength = 4000
	DefaultMaxTokens     = 1000
	DefaultTemperature   = 0.2

	// Rate limit defaults
	DefaultRequestsPerMinute = 60

	// Storage defaults
	DefaultStorePath   = "data/posts.db"
	DefaultLedgerPath  = "data/usage.db"
	DefaultBusyTimeout = 5 * time.Second

	// Jobs defaults
	DefaultBatchLimit     = 50
	DefaultMaxAttempts    = 3
	DefaultRetryBaseDelay = 2 * time.Second
	DefaultRetryMaxDelay  = 30 * time.Second

	// Scheduler defaults
	DefaultSchedule = "@every 5m"

	// Server defaults
	DefaultListenAddress   = "127.0.0.1:9090"
	DefaultReadTimeout     = 10 * time.Second
	DefaultWriteTimeout    = 10 * time.Second
	DefaultIdleTimeout     = 120 * time.Second
	DefaultShutdownTimeout = 10 * time.Second

	// Telemetry defaults
	DefaultLogLevel         = "info"
	DefaultLogFormat        = "json"
	DefaultMetricsNamespace = "aurora"
	DefaultMetricsSubsystem = "pipeline"
)

// Default returns a configuration with every default applied.
func Default() *Config {
	cfg := &Config{}
	ApplyDefaults(cfg)
	return cfg
}

// ApplyDefaults fills zero-valued fields with defaults. It is
// idempotent and safe to call multiple times.
func ApplyDefaults(cfg *Config) {
	// Provider
	if cfg.Provider.Name == "" {
		cfg.Provider.Name = DefaultProviderName
	}
	if cfg.Provider.BaseURL == "" {
		cfg.Provider.BaseURL = DefaultProviderBaseURL
	}
	if cfg.Provider.Timeout == 0 {
		cfg.Provider.Timeout = DefaultProviderTimeout
	}

	// Enrichment
	if cfg.Enrichment.Model == "" {
		cfg.Enrichment.Model = DefaultModel
	}
	if cfg.Enrichment.MaxTextLength == 0 {
		cfg.Enrichment.MaxTextLength = DefaultMaxTextLength
	}
	if cfg.Enrichment.MaxTokens == 0 {
		cfg.Enrichment.MaxTokens = DefaultMaxTokens
	}
	if cfg.Enrichment.Temperature == 0 {
		cfg.Enrichment.Temperature = DefaultTemperature
	}

	// Rate limit: zero means unset; negative means pacing disabled
	if cfg.RateLimit.RequestsPerMinute == 0 {
		cfg.RateLimit.RequestsPerMinute = DefaultRequestsPerMinute
	}

	// Store
	if cfg.Store.Path == "" {
		cfg.Store.Path = DefaultStorePath
	}
	if cfg.Store.BusyTimeout == 0 {
		cfg.Store.BusyTimeout = DefaultBusyTimeout
	}

	// Ledger
	if cfg.Ledger.Path == "" {
		cfg.Ledger.Path = DefaultLedgerPath
	}
	if cfg.Ledger.BusyTimeout == 0 {
		cfg.Ledger.BusyTimeout = DefaultBusyTimeout
	}

	// Jobs
	if cfg.Jobs.BatchLimit == 0 {
		cfg.Jobs.BatchLimit = DefaultBatchLimit
	}
	if cfg.Jobs.MaxAttempts == 0 {
		cfg.Jobs.MaxAttempts = DefaultMaxAttempts
	}
	if cfg.Jobs.RetryBaseDelay == 0 {
		cfg.Jobs.RetryBaseDelay = DefaultRetryBaseDelay
	}
	if cfg.Jobs.RetryMaxDelay == 0 {
		cfg.Jobs.RetryMaxDelay = DefaultRetryMaxDelay
	}

	// Scheduler
	if cfg.Scheduler.Schedule == "" {
		cfg.Scheduler.Schedule = DefaultSchedule
	}

	// Server
	if cfg.Server.ListenAddress == "" {
		cfg.Server.ListenAddress = DefaultListenAddress
	}
	if cfg.Server.ReadTimeout == 0 {
		cfg.Server.ReadTimeout = DefaultReadTimeout
	}
	if cfg.Server.WriteTimeout == 0 {
		cfg.Server.WriteTimeout = DefaultWriteTimeout
	}
	if cfg.Server.IdleTimeout == 0 {
		cfg.Server.IdleTimeout = DefaultIdleTimeout
	}
	if cfg.Server.ShutdownTimeout == 0 {
		cfg.Server.ShutdownTimeout = DefaultShutdownTimeout
	}

	// Telemetry
	if cfg.Telemetry.Logging.Level == "" {
		cfg.Telemetry.Logging.Level = DefaultLogLevel
	}
	if cfg.Telemetry.Logging.Format == "" {
		cfg.Telemetry.Logging.Format = DefaultLogFormat
	}
	if cfg.Telemetry.Metrics.Namespace == "" {
		cfg.Telemetry.Metrics.Namespace = DefaultMetricsNamespace
	}
	if cfg.Telemetry.Metrics.Subsystem == "" {
		cfg.Telemetry.Metrics.Subsystem = DefaultMetricsSubsystem
	}
}
