package config

import (
	"fmt"
	"net"
	"net/url"
	"strings"

	"github.com/robfig/cron/v3"
)

// FieldError is a validation error for one configuration field.
type FieldError struct {
	// Field is the dotted path to the field (e.g., "provider.timeout").
	Field string

	// Message is a human-readable error message.
	Message string
}

// Error returns the error message for this field error.
func (e FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationError collects every field error found in a configuration.
type ValidationError struct {
	Errors []FieldError
}

// Error returns a formatted string containing all validation errors.
func (e ValidationError) Error() string {
	if len(e.Errors) == 0 {
		return "configuration validation failed"
	}
	if len(e.Errors) == 1 {
		return fmt.Sprintf("configuration validation failed: %s", e.Errors[0].Error())
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("configuration validation failed with %d errors:\n", len(e.Errors)))
	for _, err := range e.Errors {
		sb.WriteString(fmt.Sprintf("  - %s\n", err.Error()))
	}
	return sb.String()
}

// Validate checks the whole configuration and returns a
// ValidationError listing every failed field, or nil when valid.
func Validate(cfg *Config) error {
	var errs []FieldError

	errs = append(errs, validateProvider(&cfg.Provider)...)
	errs = append(errs, validateEnrichment(&cfg.Enrichment)...)
	errs = append(errs, validateStorage(cfg)...)
	errs = append(errs, validateJobs(&cfg.Jobs)...)
	errs = append(errs, validateScheduler(&cfg.Scheduler)...)
	errs = append(errs, validateServer(&cfg.Server)...)
	errs = append(errs, validateTelemetry(&cfg.Telemetry)...)

	if len(errs) > 0 {
		return ValidationError{Errors: errs}
	}
	return nil
}

func validateProvider(cfg *ProviderConfig) []FieldError {
	var errs []FieldError

	if cfg.Name != "openai" {
		errs = append(errs, FieldError{
			Field:   "provider.name",
			Message: fmt.Sprintf("unsupported provider %q, must be \"openai\"", cfg.Name),
		})
	}

	if cfg.BaseURL != "" {
		u, err := url.Parse(cfg.BaseURL)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			errs = append(errs, FieldError{
				Field:   "provider.base_url",
				Message: fmt.Sprintf("invalid URL %q, must be http(s)://host[/path]", cfg.BaseURL),
			})
		}
	}

	if cfg.Timeout <= 0 {
		errs = append(errs, FieldError{
			Field:   "provider.timeout",
			Message: "must be positive",
		})
	}

	return errs
}

func validateEnrichment(cfg *EnrichmentConfig) []FieldError {
	var errs []FieldError

	if cfg.Model == "" {
		errs = append(errs, FieldError{Field: "enrichment.model", Message: "must not be empty"})
	}
	if cfg.MaxTextLength <= 0 {
		errs = append(errs, FieldError{Field: "enrichment.max_text_length", Message: "must be positive"})
	}
	if cfg.MaxTokens <= 0 {
		errs = append(errs, FieldError{Field: "enrichment.max_tokens", Message: "must be positive"})
	}
	if cfg.Temperature < 0 || cfg.Temperature > 2 {
		errs = append(errs, FieldError{
			Field:   "enrichment.temperature",
			Message: fmt.Sprintf("must be between 0 and 2, got %v", cfg.Temperature),
		})
	}

	return errs
}

func validateStorage(cfg *Config) []FieldError {
	var errs []FieldError

	if cfg.Store.Path == "" {
		errs = append(errs, FieldError{Field: "store.path", Message: "must not be empty"})
	}
	if cfg.Ledger.Path == "" {
		errs = append(errs, FieldError{Field: "ledger.path", Message: "must not be empty"})
	}
	if cfg.Ledger.DailyLimitUSD < 0 {
		errs = append(errs, FieldError{Field: "ledger.daily_limit_usd", Message: "must not be negative"})
	}

	return errs
}

func validateJobs(cfg *JobsConfig) []FieldError {
	var errs []FieldError

	if cfg.BatchLimit <= 0 {
		errs = append(errs, FieldError{Field: "jobs.batch_limit", Message: "must be positive"})
	}
	if cfg.MaxAttempts < 1 {
		errs = append(errs, FieldError{Field: "jobs.max_attempts", Message: "must be at least 1"})
	}
	if cfg.RetryBaseDelay < 0 {
		errs = append(errs, FieldError{Field: "jobs.retry_base_delay", Message: "must not be negative"})
	}
	if cfg.RetryMaxDelay < 0 {
		errs = append(errs, FieldError{Field: "jobs.retry_max_delay", Message: "must not be negative"})
	}

	return errs
}

func validateScheduler(cfg *SchedulerConfig) []FieldError {
	var errs []FieldError

	if _, err := cron.ParseStandard(cfg.Schedule); err != nil {
		errs = append(errs, FieldError{
			Field:   "scheduler.schedule",
			Message: fmt.Sprintf("invalid cron schedule %q: %v", cfg.Schedule, err),
		})
	}

	return errs
}

func validateServer(cfg *ServerConfig) []FieldError {
	var errs []FieldError

	if _, _, err := net.SplitHostPort(cfg.ListenAddress); err != nil {
		errs = append(errs, FieldError{
			Field:   "server.listen_address",
			Message: fmt.Sprintf("invalid address %q, must be host:port", cfg.ListenAddress),
		})
	}

	if cfg.ReadTimeout < 0 {
		errs = append(errs, FieldError{Field: "server.read_timeout", Message: "must not be negative"})
	}
	if cfg.WriteTimeout < 0 {
		errs = append(errs, FieldError{Field: "server.write_timeout", Message: "must not be negative"})
	}
	if cfg.IdleTimeout < 0 {
		errs = append(errs, FieldError{Field: "server.idle_timeout", Message: "must not be negative"})
	}
	if cfg.ShutdownTimeout < 0 {
		errs = append(errs, FieldError{Field: "server.shutdown_timeout", Message: "must not be negative"})
	}

	return errs
}

func validateTelemetry(cfg *TelemetryConfig) []FieldError {
	var errs []FieldError

	switch cfg.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, FieldError{
			Field:   "telemetry.logging.level",
			Message: fmt.Sprintf("invalid level %q, must be one of: debug, info, warn, error", cfg.Logging.Level),
		})
	}

	switch cfg.Logging.Format {
	case "json", "text":
	default:
		errs = append(errs, FieldError{
			Field:   "telemetry.logging.format",
			Message: fmt.Sprintf("invalid format %q, must be json or text", cfg.Logging.Format),
		})
	}

	return errs
}
