// Package ratelimit paces outbound LLM calls.
//
// The Pacer enforces a minimum interval between consecutive calls, derived
// from a requests-per-minute budget (60s / rpm). The first acquisition never
// waits; each subsequent one waits until the interval since the previous
// acquisition has elapsed. A single Pacer is shared by every call in a batch
// run so the spacing holds across the whole run, not per item.
//
// Usage:
//
//	pacer := ratelimit.NewPacer(ratelimit.Config{RequestsPerMinute: 20})
//
//	for _, post := range posts {
//	    if err := pacer.Acquire(ctx); err != nil {
//	        return err // context cancelled while waiting
//	    }
//	    callProvider(ctx, post)
//	}
//
// The Pacer is in-process only. Multiple processes each pace independently;
// coordinating a shared budget across processes is out of scope.
package ratelimit
