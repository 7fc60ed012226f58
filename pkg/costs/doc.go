// Package costs estimates the monetary cost of LLM token usage.
//
// Pricing is a table of USD rates per one million tokens, keyed by model
// name. Lookup tries an exact match, then the longest matching model prefix
// (so "gpt-4o-mini-2024-07-18" finds the "gpt-4o-mini" entry), then the
// "default" entry. The estimator is pure and deterministic: the same token
// counts and table always produce the same cost, rounded to six decimal
// places.
//
// The table can be hot-reloaded from a YAML pricing file:
//
//	models:
//	  gpt-4o-mini:
//	    input: 0.15
//	    output: 0.60
//	  default:
//	    input: 0.50
//	    output: 1.50
//
// A Watcher observes the file and swaps the estimator's table on change, so
// price updates do not require a restart.
package costs
