// Package config loads and validates the pipeline configuration.
//
// Configuration is read from a YAML file, filled in with defaults, and
// optionally overridden from the environment:
//
//	cfg, err := config.LoadConfig("aurora.yaml")
//	cfg, err := config.LoadConfigWithEnvOverrides("aurora.yaml")
//
// Environment variables follow the naming convention AURORA_SECTION_FIELD
// and always take precedence over file values. For example:
//
//   - AURORA_PROVIDER_API_KEY overrides provider.api_key
//   - AURORA_LEDGER_DAILY_LIMIT_USD overrides ledger.daily_limit_usd
//   - AURORA_TELEMETRY_LOGGING_LEVEL overrides telemetry.logging.level
//
// A missing API key is not a validation error: the pipeline starts and
// reports enrichment as unavailable until a key is provided. Everything
// else that would make the process misbehave fails at load time, with
// all field errors collected into one ValidationError.
package config
