// Package scheduler runs the batch enrichment job on a cron schedule.
//
// Scheduler wraps robfig/cron and triggers EnrichNewPosts at the
// configured interval (default every 5 minutes). Scheduled runs are
// chained through cron.SkipIfStillRunning and cron.Recover, so a slow
// run is never overlapped by the next tick and a panicking run never
// kills the process.
//
// Stop drains: it waits for an in-flight run to finish before
// returning, which makes it safe to call from a shutdown path.
package scheduler
