package ratelimit

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// Config holds pacing configuration.
type Config struct {
	// RequestsPerMinute caps the sustained call rate.
	// Zero or negative disables pacing entirely.
	RequestsPerMinute int
}

// Stats reports what the pacer has done so far.
type Stats struct {
	// Acquired is the number of successful acquisitions
	Acquired int64

	// TotalWait is the cumulative time spent waiting
	TotalWait time.Duration
}

// Pacer spaces out calls so consecutive acquisitions are at least one
// interval apart. Safe for concurrent use, though the enrichment pipeline
// acquires sequentially.
type Pacer struct {
	limiter  *rate.Limiter
	interval time.Duration

	mu    sync.Mutex
	stats Stats
}

// NewPacer creates a pacer from the given configuration.
//
// The limiter starts with one token available, so the first Acquire returns
// immediately; after that, tokens regenerate once per interval.
func NewPacer(config Config) *Pacer {
	if config.RequestsPerMinute <= 0 {
		return &Pacer{}
	}

	interval := time.Minute / time.Duration(config.RequestsPerMinute)
	return &Pacer{
		limiter:  rate.NewLimiter(rate.Every(interval), 1),
		interval: interval,
	}
}

// Interval returns the minimum spacing between acquisitions.
// Zero means pacing is disabled.
func (p *Pacer) Interval() time.Duration {
	return p.interval
}

// Acquire blocks until the caller may proceed, or until ctx is done.
// When pacing is disabled it returns immediately.
func (p *Pacer) Acquire(ctx context.Context) error {
	if p.limiter == nil {
		return nil
	}

	start := time.Now()
	if err := p.limiter.Wait(ctx); err != nil {
		return err
	}

	p.mu.Lock()
	p.stats.Acquired++
	p.stats.TotalWait += time.Since(start)
	p.mu.Unlock()
	return nil
}

// GetStats returns a snapshot of acquisition counters.
func (p *Pacer) GetStats() Stats {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.stats
}
