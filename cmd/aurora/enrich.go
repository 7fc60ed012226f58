package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"feedlens/aurora/pkg/cli"
	"feedlens/aurora/pkg/jobs"
)

var enrichFlags struct {
	limit  int
	output string
}

var enrichCmd = &cobra.Command{
	Use:   "enrich",
	Short: "Run enrichment jobs against the post store",
	Long: `Run enrichment jobs against the post store and print a job report.

Reports go to stdout, logs to stderr. The command exits nonzero when the
run fails or the enrichment service is unavailable.

Examples:
  # Enrich one post
  aurora enrich post 7c9e6679-7425-40de-944b-e07fc1f90ae7

  # Enrich up to 100 pending posts
  aurora enrich new --limit 100

  # Enrich pending posts in one channel
  aurora enrich channel 16fd2706-8baf-433b-82eb-8c7fada847da`,
}

var enrichPostCmd = &cobra.Command{
	Use:   "post <post-id>",
	Short: "Enrich a single post by id",
	Args:  cobra.ExactArgs(1),
	RunE:  runEnrichPost,
}

var enrichNewCmd = &cobra.Command{
	Use:   "new",
	Short: "Enrich posts that have no enrichment record yet",
	RunE:  runEnrichNew,
}

var enrichChannelCmd = &cobra.Command{
	Use:   "channel <channel-id>",
	Short: "Enrich pending posts in a single channel",
	Args:  cobra.ExactArgs(1),
	RunE:  runEnrichChannel,
}

func init() {
	rootCmd.AddCommand(enrichCmd)
	enrichCmd.AddCommand(enrichPostCmd)
	enrichCmd.AddCommand(enrichNewCmd)
	enrichCmd.AddCommand(enrichChannelCmd)

	enrichCmd.PersistentFlags().StringVarP(&enrichFlags.output, "output", "o", "json", "output format (text, json)")
	enrichNewCmd.Flags().IntVar(&enrichFlags.limit, "limit", 0, "maximum posts to process (0 uses jobs.batch_limit)")
	enrichChannelCmd.Flags().IntVar(&enrichFlags.limit, "limit", 0, "maximum posts to process (0 uses jobs.batch_limit)")
}

func runEnrichPost(cmd *cobra.Command, args []string) error {
	p, ctx, err := setupEnrich()
	if err != nil {
		return err
	}
	defer p.Close()

	report := p.orchestrator.EnrichPost(ctx, args[0])
	if err := printReport(report); err != nil {
		return err
	}

	if report.Status == jobs.StatusError {
		return cli.NewCommandError("enrich post", errors.New(report.Reason))
	}
	if strings.HasPrefix(report.Reason, jobs.ReasonServiceUnavailable) {
		return cli.NewCommandError("enrich post", errors.New(report.Reason))
	}
	return nil
}

func runEnrichNew(cmd *cobra.Command, args []string) error {
	p, ctx, err := setupEnrich()
	if err != nil {
		return err
	}
	defer p.Close()

	report := p.orchestrator.EnrichNewPosts(ctx, enrichFlags.limit)
	if err := printReport(report); err != nil {
		return err
	}
	return batchExitError("enrich new", report)
}

func runEnrichChannel(cmd *cobra.Command, args []string) error {
	p, ctx, err := setupEnrich()
	if err != nil {
		return err
	}
	defer p.Close()

	report := p.orchestrator.EnrichChannelPosts(ctx, args[0], enrichFlags.limit)
	if err := printReport(report); err != nil {
		return err
	}
	return batchExitError("enrich channel", report)
}

// setupEnrich loads configuration, builds the logger, and wires the
// pipeline shared by the enrich subcommands.
func setupEnrich() (*pipeline, context.Context, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, cli.NewConfigError("", fmt.Sprintf("failed to load config: %v", err))
	}

	logger, err := newCommandLogger(cfg)
	if err != nil {
		return nil, nil, err
	}

	p, err := newPipeline(cfg, nil, logger)
	if err != nil {
		return nil, nil, cli.NewCommandError("enrich", err)
	}

	return p, cli.SetupSignalHandler(), nil
}

// printReport renders a job report to stdout per the --output flag.
func printReport(report interface{}) error {
	formatter := cli.NewFormatter(cli.OutputFormat(enrichFlags.output))
	return formatter.FormatTo(os.Stdout, report)
}

// batchExitError maps a failed batch run to a command error so the
// process exits nonzero after the report has been printed. A skipped
// run means the enrichment service was unavailable.
func batchExitError(command string, report *jobs.BatchReport) error {
	switch report.Status {
	case jobs.StatusError:
		reason := report.Reason
		if reason == "" {
			reason = fmt.Sprintf("%d of %d posts failed", report.PostsFailed, report.PostsProcessed)
		}
		return cli.NewCommandError(command, errors.New(reason))
	case jobs.StatusSkipped:
		return cli.NewCommandError(command, errors.New(report.Reason))
	default:
		return nil
	}
}
