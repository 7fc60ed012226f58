package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"feedlens/aurora/pkg/cli"
	"feedlens/aurora/pkg/costs"
	"feedlens/aurora/pkg/ledger"
	"feedlens/aurora/pkg/report"
)

var costsFlags struct {
	output string
}

var costsCmd = &cobra.Command{
	Use:   "costs",
	Short: "Show token usage and cost for the current day, week, and month",
	Long: `Show aggregated token usage and estimated cost from the usage ledger,
broken down by the current day, week, and month, plus today's position
against the daily budget.

Examples:
  # Plain text report
  aurora costs

  # Machine-readable report
  aurora costs --output json`,
	RunE: runCosts,
}

func init() {
	rootCmd.AddCommand(costsCmd)

	costsCmd.Flags().StringVarP(&costsFlags.output, "output", "o", "text", "output format (text, json)")
}

func runCosts(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return cli.NewConfigError("", fmt.Sprintf("failed to load config: %v", err))
	}

	logger, err := newCommandLogger(cfg)
	if err != nil {
		return err
	}

	usage, err := ledger.NewSQLiteStore(&ledger.SQLiteConfig{
		Path:        cfg.Ledger.Path,
		WALMode:     true,
		BusyTimeout: cfg.Ledger.BusyTimeout,
	})
	if err != nil {
		return cli.NewCommandError("costs", fmt.Errorf("failed to open usage ledger: %w", err))
	}
	defer usage.Close()

	table := costs.DefaultTable()
	if cfg.Costs.PricingPath != "" {
		table, err = costs.LoadTable(cfg.Costs.PricingPath)
		if err != nil {
			return cli.NewCommandError("costs", fmt.Errorf("failed to load pricing table: %w", err))
		}
	}

	tracker := ledger.NewTracker(usage, costs.NewEstimator(table), ledger.TrackerConfig{
		DailyLimitUSD: cfg.Ledger.DailyLimitUSD,
	}, logger)

	ctx := cli.SetupSignalHandler()

	daily, err := tracker.DailyStats(ctx)
	if err != nil {
		return cli.NewCommandError("costs", err)
	}
	weekly, err := tracker.WeeklyStats(ctx)
	if err != nil {
		return cli.NewCommandError("costs", err)
	}
	monthly, err := tracker.MonthlyStats(ctx)
	if err != nil {
		return cli.NewCommandError("costs", err)
	}
	status, err := tracker.CheckDailyLimit(ctx)
	if err != nil {
		return cli.NewCommandError("costs", err)
	}

	if costsFlags.output == string(cli.FormatJSON) {
		formatter := cli.NewFormatter(cli.FormatJSON)
		return formatter.FormatTo(os.Stdout, map[string]interface{}{
			"daily":   daily,
			"weekly":  weekly,
			"monthly": monthly,
			"budget":  status,
		})
	}

	fmt.Print(report.Render(daily, weekly, monthly, status))
	return nil
}
