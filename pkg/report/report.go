package report

import (
	"fmt"
	"strconv"
	"strings"
	"text/tabwriter"

	"feedlens/aurora/pkg/ledger"
)

// Render formats daily, weekly, and monthly usage stats as aligned
// plain-text blocks. The budget block is included when status is
// non-nil.
func Render(daily, weekly, monthly *ledger.Stats, status *ledger.CostStatus) string {
	var b strings.Builder
	b.WriteString("Enrichment Cost Report\n")

	writeStats(&b, fmt.Sprintf("Today (%s)", daily.From.Format("2006-01-02")), daily)
	writeStats(&b, fmt.Sprintf("Week of %s", weekly.From.Format("2006-01-02")), weekly)
	writeStats(&b, fmt.Sprintf("Month of %s", monthly.From.Format("January 2006")), monthly)

	if status != nil {
		writeBudget(&b, status)
	}

	return b.String()
}

func writeStats(b *strings.Builder, title string, stats *ledger.Stats) {
	b.WriteString("\n" + title + "\n")

	w := tabwriter.NewWriter(b, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  Calls:\t%d\n", stats.Calls)
	fmt.Fprintf(w, "  Posts processed:\t%d\n", stats.PostsProcessed)
	fmt.Fprintf(w, "  Prompt tokens:\t%s\n", FormatTokens(stats.PromptTokens))
	fmt.Fprintf(w, "  Completion tokens:\t%s\n", FormatTokens(stats.CompletionTokens))
	fmt.Fprintf(w, "  Total tokens:\t%s\n", FormatTokens(stats.TotalTokens))
	fmt.Fprintf(w, "  Avg tokens/post:\t%d\n", stats.AvgTokensPerPost())
	fmt.Fprintf(w, "  Cost:\t%s\n", FormatCost(stats.CostUSD()))
	w.Flush()
}

func writeBudget(b *strings.Builder, status *ledger.CostStatus) {
	b.WriteString("\nDaily Budget\n")

	w := tabwriter.NewWriter(b, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  Spent:\t%s\n", FormatCost(status.CurrentCost))
	if status.Limit > 0 {
		fmt.Fprintf(w, "  Limit:\t%s (%.2f%% used)\n", FormatCost(status.Limit), status.PercentageUsed)
		fmt.Fprintf(w, "  Status:\t%s\n", status.Status)
	} else {
		fmt.Fprintf(w, "  Limit:\tnot configured\n")
	}
	w.Flush()
}

// FormatTokens abbreviates a token count: values above one million
// render as M, values above one thousand as K, both with one decimal.
func FormatTokens(n int64) string {
	switch {
	case n > 1_000_000:
		return fmt.Sprintf("%.1fM", float64(n)/1_000_000)
	case n > 1_000:
		return fmt.Sprintf("%.1fK", float64(n)/1_000)
	default:
		return strconv.FormatInt(n, 10)
	}
}

// FormatCost formats a dollar amount with four decimal places.
func FormatCost(usd float64) string {
	return fmt.Sprintf("$%.4f", usd)
}
