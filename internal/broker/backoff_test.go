package broker

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestBackoffDelayIsBoundedAndIncreasing(t *testing.T) {
	b := defaultBackoff()

	var prevCeiling time.Duration
	for attempt := 0; attempt < b.maxRetries; attempt++ {
		d := b.delay(attempt)
		require.GreaterOrEqual(t, d, time.Duration(0))
		require.LessOrEqual(t, d, b.max+b.max/5) // max plus max jitter headroom

		ceiling := time.Duration(float64(b.initial) * pow(b.multiplier, float64(attempt)))
		if ceiling > b.max {
			ceiling = b.max
		}
		require.GreaterOrEqual(t, ceiling, prevCeiling)
		prevCeiling = ceiling
	}
}

func pow(base, exp float64) float64 {
	result := 1.0
	for i := 0; i < int(exp); i++ {
		result *= base
	}
	return result
}
