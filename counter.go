package sevenseg

import "sync/atomic"

// Counter is the value shown on the display, bounded to [0, MaxValue].
//
// It has a single writer (the periodic tick) and lock-free readers. A reader
// may see the value just before or just after an in-flight tick; the
// multiplexer samples it once per scan, so the worst case is one scan showing
// the previous value. The value is one word, so a read is never torn.
type Counter struct {
	v atomic.Uint32
}

// NewCounter returns a counter starting at start%10000.
func NewCounter(start uint32) *Counter {
	c := &Counter{}
	c.v.Store(start % (MaxValue + 1))
	return c
}

// Value returns the current count.
func (c *Counter) Value() uint32 {
	return c.v.Load()
}

// Tick advances the count by one, wrapping past MaxValue to 0. It always
// returns true so a Schedule keeps running it.
func (c *Counter) Tick() bool {
	n := c.v.Load() + 1
	if n > MaxValue {
		n = 0
	}
	c.v.Store(n)
	return true
}
