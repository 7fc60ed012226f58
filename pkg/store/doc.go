// Package store persists posts and their enrichment records.
//
// # Overview
//
// A Post is a feed item awaiting metadata enrichment. Each post has at most
// one EnrichmentRecord, written once when enrichment succeeds and never
// updated. The one-per-post invariant is enforced at write time: SaveEnrichment
// reports whether the row was actually inserted, so two racing writers agree
// on a single winner.
//
// Two backends are provided:
//
//   - Memory: in-memory maps for tests
//   - SQLite: file-based persistence (pure Go driver, no cgo)
//
// # Thread Safety
//
// All backends are safe for concurrent use.
package store
