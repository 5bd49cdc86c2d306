package broker

import (
	"math"
	"math/rand"
	"time"
)

// backoff implements the bounded exponential backoff spec.md §7 prescribes
// for QueueFull: "sleep a bounded backoff (e.g. 10-100ms exponential,
// capped) and retry; after N retries, count as failure." Shape is
// grounded on the teacher's internal/pipeline/retry.go
// calculateNextRetryTime (exponential-with-jitter, capped at a max delay),
// generalized from job-retry scheduling to a single publish attempt's
// immediate retry loop.
type backoff struct {
	initial    time.Duration
	max        time.Duration
	multiplier float64
	maxRetries int
}

func defaultBackoff() backoff {
	return backoff{
		initial:    10 * time.Millisecond,
		max:        100 * time.Millisecond,
		multiplier: 2.0,
		maxRetries: 5,
	}
}

func (b backoff) delay(attempt int) time.Duration {
	d := float64(b.initial) * math.Pow(b.multiplier, float64(attempt))
	if d > float64(b.max) {
		d = float64(b.max)
	}
	jitter := d * 0.2 * rand.Float64()
	return time.Duration(d + jitter)
}
