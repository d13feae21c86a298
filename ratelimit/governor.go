// Package ratelimit provides cooperative pacing for sequences of Quip API
// calls.
//
// Quip reports the remaining request quota and a suggested wait on every
// response. The Governor inspects that metadata after each call and, when
// the quota runs low, blocks the caller for the suggested wait before the
// next call in the same sequence is made. This is best-effort throttling
// between calls made through this process; it never preempts a call already
// in flight.
package ratelimit

import (
	"time"
)

// DefaultThreshold is the remaining-quota level below which the Governor
// starts pacing. Matches the level at which Quip begins returning 429s
// shortly after.
const DefaultThreshold = 10

// Governor paces a strictly sequential call sequence. It is not safe for
// concurrent use; the batch engine runs one document at a time, so no
// locking is needed.
type Governor struct {
	threshold int
	sleep     func(time.Duration)

	lastRemaining int
}

// Option configures the Governor.
type Option func(*Governor)

// WithThreshold sets the remaining-quota level that triggers pacing.
func WithThreshold(n int) Option {
	return func(g *Governor) {
		g.threshold = n
	}
}

// WithSleep replaces the blocking sleep. Tests use this to observe pacing
// without waiting.
func WithSleep(fn func(time.Duration)) Option {
	return func(g *Governor) {
		g.sleep = fn
	}
}

// New creates a Governor with the default threshold.
func New(opts ...Option) *Governor {
	g := &Governor{
		threshold:     DefaultThreshold,
		sleep:         time.Sleep,
		lastRemaining: -1,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Observe records the rate-limit metadata from a completed call and blocks
// for retryAfter seconds when the remaining quota has dropped below the
// threshold. A negative remaining means the response carried no quota
// header; no pacing is applied for it.
func (g *Governor) Observe(remaining, retryAfter int) {
	if remaining < 0 {
		return
	}
	g.lastRemaining = remaining
	if remaining < g.threshold && retryAfter > 0 {
		g.sleep(time.Duration(retryAfter) * time.Second)
	}
}

// LastRemaining reports the most recently observed quota, or -1 if no
// response has carried one yet.
func (g *Governor) LastRemaining() int {
	return g.lastRemaining
}
