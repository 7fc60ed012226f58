package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"feedlens/aurora/pkg/cli"
	"feedlens/aurora/pkg/config"
	"feedlens/aurora/pkg/costs"
	"feedlens/aurora/pkg/scheduler"
	"feedlens/aurora/pkg/server"
	"feedlens/aurora/pkg/telemetry/logging"
	"feedlens/aurora/pkg/telemetry/metrics"
)

var runFlags struct {
	listenAddress string
	logLevel      string
	dryRun        bool
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Start the aurora enrichment daemon",
	Long: `Start the aurora enrichment daemon with the specified configuration.

The daemon periodically sweeps the post store for unenriched posts and
runs them through the LLM provider. A telemetry server exposes Prometheus
metrics and health endpoints.

Examples:
  # Start with default config
  aurora run

  # Start with custom config
  aurora run --config /etc/aurora/config.yaml

  # Override telemetry listen address
  aurora run --listen 0.0.0.0:9090

  # Validate config without starting the daemon
  aurora run --dry-run`,
	RunE: runDaemon,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVarP(&runFlags.listenAddress, "listen", "l", "", "override telemetry listen address")
	runCmd.Flags().StringVar(&runFlags.logLevel, "log-level", "", "override log level (debug, info, warn, error)")
	runCmd.Flags().BoolVar(&runFlags.dryRun, "dry-run", false, "validate config without starting the daemon")
}

func runDaemon(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return cli.NewConfigError("", fmt.Sprintf("failed to load config: %v", err))
	}

	// Apply flag overrides
	if runFlags.listenAddress != "" {
		cfg.Server.ListenAddress = runFlags.listenAddress
	}
	if runFlags.logLevel != "" {
		cfg.Telemetry.Logging.Level = runFlags.logLevel
	}

	logger, err := logging.New(logging.Config{
		Level:     cfg.Telemetry.Logging.Level,
		Format:    cfg.Telemetry.Logging.Format,
		AddSource: cfg.Telemetry.Logging.AddSource,
	})
	if err != nil {
		return cli.NewConfigError("telemetry.logging", err.Error())
	}
	slog.SetDefault(logger)

	if runFlags.dryRun {
		fmt.Println("✓ Configuration valid")
		return nil
	}

	printBanner(cfg)

	collector := metrics.NewCollector(metrics.Config{
		Enabled:   cfg.Telemetry.Metrics.Enabled,
		Namespace: cfg.Telemetry.Metrics.Namespace,
		Subsystem: cfg.Telemetry.Metrics.Subsystem,
	}, nil)

	p, err := newPipeline(cfg, collector, logger)
	if err != nil {
		return cli.NewCommandError("run", err)
	}
	defer p.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	total, countErr := p.posts.CountPosts(ctx)
	enriched, enrichedErr := p.posts.CountEnriched(ctx)
	if countErr == nil && enrichedErr == nil {
		fmt.Printf("✓ Post store opened (%d posts, %d enriched)\n", total, enriched)
	} else {
		fmt.Println("✓ Post store opened")
	}

	if err := p.service.Ready(); err != nil {
		slog.Warn("enrichment service not ready, runs will be skipped until configured", "error", err)
	}

	// Hot-reload the pricing table when the file changes
	if cfg.Costs.Watch && cfg.Costs.PricingPath != "" {
		watcher, err := costs.NewWatcher(cfg.Costs.PricingPath, logger)
		if err != nil {
			slog.Warn("pricing watcher unavailable", "error", err)
		} else {
			defer watcher.Stop()
			go func() {
				err := watcher.Watch(ctx, func() error {
					table, err := costs.LoadTable(cfg.Costs.PricingPath)
					if err != nil {
						return err
					}
					p.estimator.UpdateTable(table)
					return nil
				})
				if err != nil && ctx.Err() == nil {
					slog.Error("pricing watcher stopped", "error", err)
				}
			}()
			fmt.Printf("✓ Pricing watcher started (%s)\n", cfg.Costs.PricingPath)
		}
	}

	fmt.Println("✓ Enrichment pipeline ready")

	// Scheduler for periodic batch runs
	sched := scheduler.New(p.orchestrator, scheduler.Config{
		Schedule:   cfg.Scheduler.Schedule,
		BatchLimit: cfg.Jobs.BatchLimit,
	}, logger)
	if err := sched.Start(ctx); err != nil {
		return cli.NewCommandError("run", fmt.Errorf("failed to start scheduler: %w", err))
	}
	defer sched.Stop()

	if next := sched.NextRun(); next != nil {
		fmt.Printf("✓ Scheduler started (next run %s)\n", next.Format(time.RFC3339))
	} else {
		fmt.Println("✓ Scheduler started")
	}

	// Telemetry server
	srv := server.New(&cfg.Server, collector.Handler(), p.service.Ready, logger)

	errChan := make(chan error, 1)
	go func() {
		if err := srv.Start(ctx); err != nil {
			errChan <- fmt.Errorf("server error: %w", err)
		}
	}()

	fmt.Println()
	fmt.Printf("✓ Telemetry server listening on %s\n", cfg.Server.ListenAddress)
	fmt.Printf("✓ Metrics endpoint: http://%s/metrics\n", cfg.Server.ListenAddress)
	fmt.Printf("✓ Health endpoint: http://%s/healthz\n", cfg.Server.ListenAddress)
	fmt.Println("\nPress Ctrl+C to stop")

	// Wait for shutdown signal or server error
	sigChan := cli.WaitForShutdown()

	select {
	case err := <-errChan:
		return cli.NewCommandError("run", err)
	case sig := <-sigChan:
		fmt.Printf("\nReceived signal %s, shutting down gracefully...\n", sig)
		cancel()

		// Drain any in-flight batch run before closing the stores
		sched.Stop()

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer shutdownCancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("shutdown failed", "error", err)
			return cli.NewCommandError("run", err)
		}

		fmt.Println("✓ Daemon stopped")
		return nil
	}
}

func printBanner(cfg *config.Config) {
	fmt.Printf("Aurora v%s\n", Version)
	if cfgFile != "" {
		fmt.Printf("Loading configuration from: %s\n", cfgFile)
	} else {
		fmt.Println("Loading configuration from environment")
	}
	fmt.Println("✓ Configuration loaded")

	slog.Debug("provider configured",
		"name", cfg.Provider.Name,
		"model", cfg.Enrichment.Model,
		"requests_per_minute", cfg.RateLimit.RequestsPerMinute,
	)
	if cfg.Ledger.DailyLimitUSD > 0 {
		slog.Debug("daily budget configured", "limit_usd", cfg.Ledger.DailyLimitUSD)
	}
}
