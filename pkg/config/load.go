package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// LoadConfig reads a YAML configuration file, applies defaults, and
// validates the result. Environment variables are not consulted; use
// LoadConfigWithEnvOverrides for that.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read configuration file %q: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse configuration file %q: %w", path, err)
	}

	ApplyDefaults(&cfg)

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// LoadConfigWithEnvOverrides loads configuration from a YAML file and
// applies AURORA_SECTION_FIELD environment overrides on top. An empty
// path starts from defaults, which makes a file-less, env-only setup
// possible. The result is validated after the overrides.
func LoadConfigWithEnvOverrides(path string) (*Config, error) {
	var cfg *Config

	if path == "" {
		cfg = Default()
	} else {
		loaded, err := LoadConfig(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	applyEnvOverrides(cfg)

	if err := Validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// applyEnvOverrides copies AURORA_* environment values into the
// configuration. Unparseable numeric or duration values are ignored
// rather than failing the load.
func applyEnvOverrides(cfg *Config) {
	// Provider
	if val := os.Getenv("AURORA_PROVIDER_NAME"); val != "" {
		cfg.Provider.Name = val
	}
	if val := os.Getenv("AURORA_PROVIDER_BASE_URL"); val != "" {
		cfg.Provider.BaseURL = val
	}
	if val := os.Getenv("AURORA_PROVIDER_API_KEY"); val != "" {
		cfg.Provider.APIKey = val
	}
	if val := os.Getenv("AURORA_PROVIDER_TIMEOUT"); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			cfg.Provider.Timeout = d
		}
	}

	// Enrichment
	if val := os.Getenv("AURORA_ENRICHMENT_MODEL"); val != "" {
		cfg.Enrichment.Model = val
	}
	if val := os.Getenv("AURORA_ENRICHMENT_MAX_TEXT_LENGTH"); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			cfg.Enrichment.MaxTextLength = i
		}
	}
	if val := os.Getenv("AURORA_ENRICHMENT_MAX_TOKENS"); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			cfg.Enrichment.MaxTokens = i
		}
	}
	if val := os.Getenv("AURORA_ENRICHMENT_TEMPERATURE"); val != "" {
		if f, err := strconv.ParseFloat(val, 64); err == nil {
			cfg.Enrichment.Temperature = f
		}
	}

	// Rate limit
	if val := os.Getenv("AURORA_RATE_LIMIT_REQUESTS_PER_MINUTE"); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			cfg.RateLimit.RequestsPerMinute = i
		}
	}

	// Costs
	if val := os.Getenv("AURORA_COSTS_PRICING_PATH"); val != "" {
		cfg.Costs.PricingPath = val
	}
	if val := os.Getenv("AURORA_COSTS_WATCH"); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			cfg.Costs.Watch = b
		}
	}

	// Store
	if val := os.Getenv("AURORA_STORE_PATH"); val != "" {
		cfg.Store.Path = val
	}
	if val := os.Getenv("AURORA_STORE_BUSY_TIMEOUT"); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			cfg.Store.BusyTimeout = d
		}
	}

	// Ledger
	if val := os.Getenv("AURORA_LEDGER_PATH"); val != "" {
		cfg.Ledger.Path = val
	}
	if val := os.Getenv("AURORA_LEDGER_DAILY_LIMIT_USD"); val != "" {
		if f, err := strconv.ParseFloat(val, 64); err == nil {
			cfg.Ledger.DailyLimitUSD = f
		}
	}

	// Jobs
	if val := os.Getenv("AURORA_JOBS_BATCH_LIMIT"); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			cfg.Jobs.BatchLimit = i
		}
	}
	if val := os.Getenv("AURORA_JOBS_MAX_ATTEMPTS"); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			cfg.Jobs.MaxAttempts = i
		}
	}
	if val := os.Getenv("AURORA_JOBS_RETRY_BASE_DELAY"); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			cfg.Jobs.RetryBaseDelay = d
		}
	}
	if val := os.Getenv("AURORA_JOBS_RETRY_MAX_DELAY"); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			cfg.Jobs.RetryMaxDelay = d
		}
	}

	// Scheduler
	if val := os.Getenv("AURORA_SCHEDULER_SCHEDULE"); val != "" {
		cfg.Scheduler.Schedule = val
	}

	// Server
	if val := os.Getenv("AURORA_SERVER_LISTEN_ADDRESS"); val != "" {
		cfg.Server.ListenAddress = val
	}

	// Telemetry
	if val := os.Getenv("AURORA_TELEMETRY_LOGGING_LEVEL"); val != "" {
		cfg.Telemetry.Logging.Level = val
	}
	if val := os.Getenv("AURORA_TELEMETRY_LOGGING_FORMAT"); val != "" {
		cfg.Telemetry.Logging.Format = val
	}
	if val := os.Getenv("AURORA_TELEMETRY_METRICS_ENABLED"); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			cfg.Telemetry.Metrics.Enabled = b
		}
	}
}
