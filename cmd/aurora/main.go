// Aurora is an LLM post-enrichment pipeline for feed aggregators.
//
// It pulls ingested posts from a SQLite store and runs each one through
// an LLM provider, extracting:
//   - Explicit and implicit keywords
//   - Topic category and sentiment
//   - Named entities (persons, organizations, locations)
//
// Every provider call is paced against a shared rate limit and logged to
// a usage ledger that prices token consumption and enforces a daily
// budget.
//
// Usage:
//
//	# Start the daemon (scheduler + telemetry server)
//	aurora run
//
//	# Start with a custom configuration file
//	aurora run --config /etc/aurora/config.yaml
//
//	# Enrich a single post
//	aurora enrich post 7c9e6679-7425-40de-944b-e07fc1f90ae7
//
//	# Enrich pending posts once and exit
//	aurora enrich new --limit 100
//
//	# Import posts from an NDJSON file
//	aurora ingest posts.ndjson
//
//	# Show the cost report
//	aurora costs
package main

func main() {
	Execute()
}
