// Package ratelimit implements Component D, the token-bucket Rate Limiter
// (SPEC_FULL §4.D), wrapping golang.org/x/time/rate — grounded on
// other_examples/teyenc-go-redpanda-streaming-api__stream.go's per-stream
// *rate.Limiter field — instead of hand-rolling token accounting. x/time/rate
// already refills from a monotonic clock internally, which satisfies the
// spec's "backward wall-clock jumps must not yield negative durations"
// invariant for free.
package ratelimit

import (
	"context"
	"time"

	"golang.org/x/time/rate"
)

// Limiter paces record emission for one entity. Rate 0 disables limiting
// entirely: Reserve always returns 0 without consuming a token.
type Limiter struct {
	rl   *rate.Limiter
	zero bool
}

// New builds a limiter for recordsPerSecond. Bucket capacity is pinned to
// one second of burst, matching spec.md §4.D ("bucket capacity equal to
// rate").
func New(recordsPerSecond float64) *Limiter {
	if recordsPerSecond <= 0 {
		return &Limiter{zero: true}
	}
	burst := int(recordsPerSecond)
	if burst < 1 {
		burst = 1
	}
	return &Limiter{rl: rate.NewLimiter(rate.Limit(recordsPerSecond), burst)}
}

// Reserve subtracts one token and returns the duration the caller must
// wait before it may proceed — 0 if a token was immediately available.
// Reserve never blocks and does not read ctx; the wait itself is the
// caller's responsibility (Wait does it while honoring ctx cancellation).
func (l *Limiter) Reserve(ctx context.Context) time.Duration {
	if l.zero {
		return 0
	}
	r := l.rl.Reserve()
	if !r.OK() {
		// Should not happen with an unbounded burst-sized bucket, but
		// fail safe rather than block forever.
		return 0
	}
	d := r.Delay()
	if d < 0 {
		return 0
	}
	return d
}

// Wait blocks the caller for the duration Reserve returns, honoring ctx
// cancellation (SPEC_FULL §5 cancellation propagation).
func (l *Limiter) Wait(ctx context.Context) error {
	d := l.Reserve(ctx)
	if d == 0 {
		return nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
