// Package rpiopins drives display lines through memory-mapped GPIO on a
// Raspberry Pi using go-rpio. Lines are BCM GPIO numbers.
package rpiopins

import (
	"errors"
	"fmt"
	"sync"

	"github.com/stianeikeland/go-rpio/v4"

	sevenseg "github.com/rpi-sevenseg"
)

var ErrClosed = errors.New("rpio pins closed")

// Pins is a sevenseg.Output backed by go-rpio.
type Pins struct {
	mu         sync.Mutex
	configured sevenseg.LineMask
	closed     bool
}

// Open maps the GPIO registers. Needs /dev/gpiomem or root.
func Open() (*Pins, error) {
	// Open and map memory to access gpio, check for errors
	if err := rpio.Open(); err != nil {
		return nil, fmt.Errorf("failed to open rpio: %w", err)
	}
	return &Pins{}, nil
}

// ConfigureOutputs sets every line in mask to output mode, driven low.
func (p *Pins) ConfigureOutputs(mask sevenseg.LineMask) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return ErrClosed
	}
	for _, l := range mask.Lines() {
		pin := rpio.Pin(l)
		pin.Output()
		pin.Low()
	}
	p.configured |= mask
	return nil
}

// Set drives one line.
func (p *Pins) Set(line sevenseg.Line, level sevenseg.Level) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if err := p.usable(sevenseg.MaskOf(line)); err != nil {
		return err
	}
	rpio.Pin(line).Write(state(level))
	return nil
}

// SetMasked drives every line in mask. go-rpio has no multi-pin write, so
// the lines are written one after another; the multiplexer only does this
// while the digits are off or for a single digit's segments, and the whole
// sequence takes well under a microsecond per line.
func (p *Pins) SetMasked(mask, values sevenseg.LineMask) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if err := p.usable(mask); err != nil {
		return err
	}
	for _, l := range mask.Lines() {
		if values.Has(l) {
			rpio.Pin(l).High()
		} else {
			rpio.Pin(l).Low()
		}
	}
	return nil
}

// Close drives configured lines low and releases rpio resources.
// rpio.Close is process-wide, so only one Pins should be open at a time.
func (p *Pins) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return nil
	}
	for _, l := range p.configured.Lines() {
		rpio.Pin(l).Low()
	}
	p.closed = true
	if err := rpio.Close(); err != nil {
		return fmt.Errorf("failed to close rpio: %w", err)
	}
	return nil
}

// usable checks mask against the configured lines. Caller holds mu.
func (p *Pins) usable(mask sevenseg.LineMask) error {
	if p.closed {
		return ErrClosed
	}
	if stray := mask &^ p.configured; stray != 0 {
		return fmt.Errorf("%w: %v", sevenseg.ErrNotOutput, stray.Lines())
	}
	return nil
}

func state(l sevenseg.Level) rpio.State {
	if l == sevenseg.High {
		return rpio.High
	}
	return rpio.Low
}
