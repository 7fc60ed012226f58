// Package report renders usage and cost summaries as plain text for
// the CLI. Token counts are abbreviated (45.2K, 1.3M) and costs are
// formatted with four decimal places.
package report
