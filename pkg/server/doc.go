// Package server provides the telemetry HTTP server for the pipeline
// daemon. It exposes Prometheus metrics on /metrics, a liveness probe
// on /healthz, and a readiness probe on /readyz that reflects whether
// the enrichment service can reach its provider.
package server
