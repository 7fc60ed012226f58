package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "aurora",
	Short: "Aurora - LLM post-enrichment pipeline",
	Long: `Aurora enriches feed posts with LLM-extracted metadata: keywords,
topic category, sentiment, and named entities.

It runs as a daemon that periodically sweeps the post store for
unenriched posts, or as one-shot commands for single posts and batches.
Provider calls are rate-paced and every call is priced into a usage
ledger with a configurable daily budget.

Configuration is read from a YAML file, overridable through AURORA_*
environment variables. With no config file, defaults plus environment
variables apply.`,
	Version: Version,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Global persistent flags (available to all subcommands)
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file path (omit to configure from environment)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
