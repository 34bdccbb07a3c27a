package sevenseg

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCounterTick(t *testing.T) {
	c := NewCounter(0)
	assert.Equal(t, uint32(0), c.Value())

	for n := uint32(1); n <= 5; n++ {
		assert.True(t, c.Tick(), "tick always asks to be rescheduled")
		assert.Equal(t, n, c.Value())
	}
}

func TestCounterWraps(t *testing.T) {
	c := NewCounter(9998)
	c.Tick()
	assert.Equal(t, uint32(9999), c.Value())
	assert.True(t, c.Tick())
	assert.Equal(t, uint32(0), c.Value())
}

func TestCounterFullCycle(t *testing.T) {
	c := NewCounter(0)
	for i := 0; i <= int(MaxValue); i++ {
		c.Tick()
	}
	assert.Equal(t, uint32(0), c.Value())
}

func TestNewCounterReducesStart(t *testing.T) {
	assert.Equal(t, uint32(0), NewCounter(10000).Value())
	assert.Equal(t, uint32(42), NewCounter(20042).Value())
}

func TestCounterConcurrentRead(t *testing.T) {
	c := NewCounter(0)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < 20000; i++ {
			c.Tick()
		}
	}()

	for i := 0; i < 20000; i++ {
		assert.LessOrEqual(t, c.Value(), MaxValue)
	}
	wg.Wait()
	assert.Equal(t, uint32(20000%10000), c.Value())
}
