package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestZeroRateNeverWaits(t *testing.T) {
	l := New(0)
	ctx := context.Background()
	for i := 0; i < 5; i++ {
		require.Equal(t, time.Duration(0), l.Reserve(ctx))
	}
}

func TestLimiterPacesToApproximateRate(t *testing.T) {
	const rate = 50.0
	const duration = 200 * time.Millisecond

	l := New(rate)
	ctx := context.Background()

	// The bucket starts full (one second of burst); drain that warm-up
	// so the measurement sees only the steady refill rate.
	for i := 0; i < int(rate); i++ {
		l.Reserve(ctx)
	}

	deadline := time.Now().Add(duration)
	count := 0
	for time.Now().Before(deadline) {
		if err := l.Wait(ctx); err != nil {
			break
		}
		count++
	}

	expected := rate * duration.Seconds()
	require.InDelta(t, expected, float64(count), expected*0.5+2)
}

func TestLimiterHonorsCancellation(t *testing.T) {
	l := New(1) // slow rate, burst of 1 exhausted immediately by a prior reservation
	l.Reserve(context.Background())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := l.Wait(ctx)
	require.Error(t, err)
}
