package jobs

import (
	"context"
	"log/slog"
	"math"
	"time"

	"feedlens/aurora/pkg/enrichment"
	"feedlens/aurora/pkg/providers"
)

// Policy controls retry behavior for the single-post job. Which failure
// kinds are worth retrying is part of the policy, not a property hidden
// inside the error types.
type Policy struct {
	// MaxAttempts is the total number of attempts including the first.
	// Values below 1 are treated as 1.
	MaxAttempts int

	// BaseDelay is the backoff before the first retry.
	BaseDelay time.Duration

	// MaxDelay caps the exponentially growing backoff. 0 means no cap.
	MaxDelay time.Duration

	// RetryableKinds lists the failure kinds that trigger a retry.
	RetryableKinds []providers.ErrorKind
}

// DefaultPolicy returns the retry policy used by the single-post job:
// three attempts, exponential backoff from 2s capped at 30s, retrying
// rate limits and timeouts only.
func DefaultPolicy() Policy {
	return Policy{
		MaxAttempts: 3,
		BaseDelay:   2 * time.Second,
		MaxDelay:    30 * time.Second,
		RetryableKinds: []providers.ErrorKind{
			providers.KindRateLimit,
			providers.KindTimeout,
		},
	}
}

// Retryable reports whether the policy retries failures of the given kind.
func (p Policy) Retryable(kind providers.ErrorKind) bool {
	for _, k := range p.RetryableKinds {
		if k == kind {
			return true
		}
	}
	return false
}

// Delay returns the backoff before retry n (1-based): BaseDelay doubled
// per retry, capped at MaxDelay.
func (p Policy) Delay(retry int) time.Duration {
	if retry < 1 {
		retry = 1
	}
	delay := time.Duration(float64(p.BaseDelay) * math.Pow(2, float64(retry-1)))
	if p.MaxDelay > 0 && delay > p.MaxDelay {
		delay = p.MaxDelay
	}
	return delay
}

// Retry runs op until it succeeds, fails with a kind the policy does not
// retry, or attempts are exhausted. It returns the last result and the
// number of attempts made. The backoff sleep respects context
// cancellation; a cancelled wait returns the last failure immediately.
func Retry(ctx context.Context, policy Policy, logger *slog.Logger, op func(context.Context) *enrichment.Result) (*enrichment.Result, int) {
	maxAttempts := policy.MaxAttempts
	if maxAttempts < 1 {
		maxAttempts = 1
	}

	var result *enrichment.Result
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		result = op(ctx)
		if result.Succeeded() {
			return result, attempt
		}

		failure := result.Failure()
		if !policy.Retryable(failure.Kind) {
			return result, attempt
		}
		if attempt == maxAttempts {
			return result, attempt
		}

		delay := policy.Delay(attempt)
		logger.Debug("retrying enrichment",
			"post_id", result.PostID,
			"attempt", attempt,
			"max_attempts", maxAttempts,
			"kind", failure.Kind.String(),
			"delay", delay,
		)

		select {
		case <-ctx.Done():
			return result, attempt
		case <-time.After(delay):
		}
	}

	return result, maxAttempts
}
