package sevenseg

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEveryRepeatsUntilStopped(t *testing.T) {
	var calls atomic.Int32
	s := Every(5*time.Millisecond, func() bool {
		calls.Add(1)
		return true
	})

	require.Eventually(t, func() bool { return calls.Load() >= 3 }, time.Second, time.Millisecond)
	s.Stop()

	n := calls.Load()
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, n, calls.Load(), "no calls after Stop")

	select {
	case <-s.Done():
	default:
		t.Fatal("Done not closed after Stop")
	}
	s.Stop()
}

func TestEveryEndsWhenCallbackDeclines(t *testing.T) {
	var calls atomic.Int32
	s := Every(time.Millisecond, func() bool {
		return calls.Add(1) < 3
	})

	select {
	case <-s.Done():
	case <-time.After(time.Second):
		t.Fatal("schedule did not end")
	}
	assert.Equal(t, int32(3), calls.Load())
	s.Stop()
}

func TestEveryDrivesCounter(t *testing.T) {
	c := NewCounter(9997)
	s := Every(2*time.Millisecond, c.Tick)
	defer s.Stop()

	require.Eventually(t, func() bool { return c.Value() < 9997 }, time.Second, time.Millisecond,
		"counter wraps past 9999")
}

func TestEveryFloorsPeriod(t *testing.T) {
	for _, period := range []time.Duration{0, -time.Second, time.Nanosecond} {
		var calls atomic.Int32
		s := Every(period, func() bool {
			calls.Add(1)
			return true
		})
		require.Eventually(t, func() bool { return calls.Load() >= 2 }, time.Second, time.Millisecond,
			"period %v", period)
		s.Stop()
	}
}
