package sevenseg

import (
	"sync"
	"time"
)

const (
	// CounterPeriod is the wall-clock interval between counter ticks.
	CounterPeriod = time.Second

	// MinPeriod is the shortest period Every will run at.
	MinPeriod = time.Millisecond
)

// Schedule runs a callback on a fixed period in its own goroutine.
type Schedule struct {
	stop     chan struct{}
	done     chan struct{}
	stopOnce sync.Once
}

// Every calls fn once per period until fn returns false or Stop is called.
// The first call happens one period after Every returns. fn runs alongside
// the refresh loop and must not block. Periods below MinPeriod, including
// zero and negative ones, run at MinPeriod.
func Every(period time.Duration, fn func() bool) *Schedule {
	if period < MinPeriod {
		period = MinPeriod
	}
	s := &Schedule{
		stop: make(chan struct{}),
		done: make(chan struct{}),
	}
	go s.run(period, fn)
	return s
}

func (s *Schedule) run(period time.Duration, fn func() bool) {
	defer close(s.done)

	ticker := time.NewTicker(period)
	defer ticker.Stop()

	for {
		select {
		case <-s.stop:
			return
		case <-ticker.C:
			if !fn() {
				return
			}
		}
	}
}

// Stop cancels the schedule and waits for an in-flight call to finish.
func (s *Schedule) Stop() {
	s.stopOnce.Do(func() { close(s.stop) })
	<-s.done
}

// Done is closed once the schedule has ended, either via Stop or because the
// callback asked not to be rescheduled.
func (s *Schedule) Done() <-chan struct{} {
	return s.done
}
