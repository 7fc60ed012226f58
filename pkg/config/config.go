package config

import "time"

// Config is the root configuration for the enrichment pipeline. It
// covers the LLM provider, the enrichment service, call pacing, cost
// tracking, persistence, job orchestration, scheduling, the telemetry
// HTTP server, and logging/metrics.
type Config struct {
	// Provider configures the LLM provider connection.
	Provider ProviderConfig `yaml:"provider"`

	// Enrichment configures prompt construction and model parameters.
	Enrichment EnrichmentConfig `yaml:"enrichment"`

	// RateLimit configures the minimum spacing between provider calls.
	RateLimit RateLimitConfig `yaml:"rate_limit"`

	// Costs configures the pricing table used to price token usage.
	Costs CostsConfig `yaml:"costs"`

	// Store configures the posts and enrichment records database.
	Store StoreConfig `yaml:"store"`

	// Ledger configures the usage ledger database and the daily budget.
	Ledger LedgerConfig `yaml:"ledger"`

	// Jobs configures batch sizing and the retry policy for the
	// single-post job.
	Jobs JobsConfig `yaml:"jobs"`

	// Scheduler configures the periodic batch enrichment run.
	Scheduler SchedulerConfig `yaml:"scheduler"`

	// Server configures the HTTP listener serving /metrics and /healthz.
	Server ServerConfig `yaml:"server"`

	// Telemetry configures logging and metrics collection.
	Telemetry TelemetryConfig `yaml:"telemetry"`
}

// ProviderConfig configures the LLM provider connection.
type ProviderConfig struct {
	// Name is the provider identifier. Only "openai" (any
	// OpenAI-compatible endpoint) is supported.
	// Default: "openai"
	Name string `yaml:"name"`

	// BaseURL is the API endpoint base URL.
	// Default: "https://api.openai.com/v1"
	BaseURL string `yaml:"base_url"`

	// APIKey authenticates requests. Usually supplied via
	// AURORA_PROVIDER_API_KEY rather than the file. An empty key is
	// not a load error; enrichment jobs report the service as
	// unavailable until one is set.
	APIKey string `yaml:"api_key"`

	// Timeout bounds a single completion request.
	// Default: 60s
	Timeout time.Duration `yaml:"timeout"`
}

// EnrichmentConfig configures prompt construction and model parameters.
type EnrichmentConfig struct {
	// Model is the model name sent to the provider.
	// Default: "gpt-4o-mini"
	Model string `yaml:"model"`

	// MaxTextLength caps post text at this many runes before the
	// prompt is built.
	// Default: 4000
	MaxTextLength int `yaml:"max_text_length"`

	// MaxTokens caps the completion length per request.
	// Default: 1000
	MaxTokens int `yaml:"max_tokens"`

	// Temperature is the sampling temperature, between 0 and 2.
	// Default: 0.2
	Temperature float64 `yaml:"temperature"`
}

// RateLimitConfig configures the spacing between provider calls.
type RateLimitConfig struct {
	// RequestsPerMinute caps the sustained provider call rate. A
	// negative value disables pacing.
	// Default: 60
	RequestsPerMinute int `yaml:"requests_per_minute"`
}

// CostsConfig configures pricing for token usage.
type CostsConfig struct {
	// PricingPath is a YAML file of per-1M-token rates. Empty uses the
	// built-in table.
	PricingPath string `yaml:"pricing_path"`

	// Watch reloads the pricing file when it changes on disk.
	// Default: false
	Watch bool `yaml:"watch"`
}

// StoreConfig configures the posts database.
type StoreConfig struct {
	// Path is the SQLite database file path.
	// Default: "data/posts.db"
	Path string `yaml:"path"`

	// BusyTimeout is how long to wait when the database is locked.
	// Default: 5s
	BusyTimeout time.Duration `yaml:"busy_timeout"`
}

// LedgerConfig configures the usage ledger and the daily budget.
type LedgerConfig struct {
	// Path is the SQLite database file path.
	// Default: "data/usage.db"
	Path string `yaml:"path"`

	// BusyTimeout is how long to wait when the database is locked.
	// Default: 5s
	BusyTimeout time.Duration `yaml:"busy_timeout"`

	// DailyLimitUSD is the daily spend limit in dollars. Zero disables
	// budget checking.
	DailyLimitUSD float64 `yaml:"daily_limit_usd"`
}

// JobsConfig configures batch sizing and retry behavior.
type JobsConfig struct {
	// BatchLimit is the default maximum posts per batch run.
	// Default: 50
	BatchLimit int `yaml:"batch_limit"`

	// MaxAttempts is the attempt ceiling for the single-post job.
	// Batch items are never retried.
	// Default: 3
	MaxAttempts int `yaml:"max_attempts"`

	// RetryBaseDelay is the first retry delay; later delays double.
	// Default: 2s
	RetryBaseDelay time.Duration `yaml:"retry_base_delay"`

	// RetryMaxDelay caps the per-retry delay.
	// Default: 30s
	RetryMaxDelay time.Duration `yaml:"retry_max_delay"`
}

// SchedulerConfig configures the periodic batch run.
type SchedulerConfig struct {
	// Schedule is a cron expression or descriptor.
	// Default: "@every 5m"
	Schedule string `yaml:"schedule"`
}

// ServerConfig configures the telemetry HTTP listener.
type ServerConfig struct {
	// ListenAddress is the host:port to listen on.
	// Default: "127.0.0.1:9090"
	ListenAddress string `yaml:"listen_address"`

	// ReadTimeout is the maximum duration for reading a request.
	// Default: 10s
	ReadTimeout time.Duration `yaml:"read_timeout"`

	// WriteTimeout is the maximum duration for writing a response.
	// Default: 10s
	WriteTimeout time.Duration `yaml:"write_timeout"`

	// IdleTimeout is how long to keep idle connections open.
	// Default: 120s
	IdleTimeout time.Duration `yaml:"idle_timeout"`

	// ShutdownTimeout bounds graceful shutdown.
	// Default: 10s
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

// TelemetryConfig configures logging and metrics.
type TelemetryConfig struct {
	// Logging configures the structured logger.
	Logging LoggingConfig `yaml:"logging"`

	// Metrics configures Prometheus metrics collection.
	Metrics MetricsConfig `yaml:"metrics"`
}

// LoggingConfig configures the structured logger.
type LoggingConfig struct {
	// Level is the minimum log level: debug, info, warn, or error.
	// Default: "info"
	Level string `yaml:"level"`

	// Format is the output format: json or text.
	// Default: "json"
	Format string `yaml:"format"`

	// AddSource includes source file and line in log records.
	// Default: false
	AddSource bool `yaml:"add_source"`
}

// MetricsConfig configures Prometheus metrics collection.
type MetricsConfig struct {
	// Enabled turns metric recording on. When false every recording
	// call is a no-op and /metrics serves an empty registry.
	// Default: false
	Enabled bool `yaml:"enabled"`

	// Namespace is the metric name prefix.
	// Default: "aurora"
	Namespace string `yaml:"namespace"`

	// Subsystem is the second metric name segment.
	// Default: "pipeline"
	Subsystem string `yaml:"subsystem"`
}
