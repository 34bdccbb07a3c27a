// Package periphpins drives display lines through periph.io GPIO pins.
package periphpins

import (
	"errors"
	"fmt"
	"sync"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/host/v3"

	sevenseg "github.com/rpi-sevenseg"
)

var ErrUnknownPin = errors.New("no such gpio pin")

// Resolver looks a pin up by name; gpioreg.ByName is the usual one.
type Resolver func(name string) gpio.PinIO

// Pins is a sevenseg.Output over periph.io pins named "GPIO<n>".
type Pins struct {
	resolve Resolver

	mu   sync.Mutex
	pins map[sevenseg.Line]gpio.PinOut
}

// Open initializes the periph host drivers and resolves pins from the
// global registry.
func Open() (*Pins, error) {
	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("failed to init periph host: %w", err)
	}
	return New(gpioreg.ByName), nil
}

// New returns Pins that resolve lines through r.
func New(r Resolver) *Pins {
	return &Pins{
		resolve: r,
		pins:    make(map[sevenseg.Line]gpio.PinOut),
	}
}

// PinName is the registry name used for a line.
func PinName(l sevenseg.Line) string {
	return fmt.Sprintf("GPIO%d", l)
}

// ConfigureOutputs resolves each line in mask and drives it low.
func (p *Pins) ConfigureOutputs(mask sevenseg.LineMask) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	for _, l := range mask.Lines() {
		if _, ok := p.pins[l]; ok {
			continue
		}
		pin := p.resolve(PinName(l))
		if pin == nil {
			return fmt.Errorf("%w: %s", ErrUnknownPin, PinName(l))
		}
		if err := pin.Out(gpio.Low); err != nil {
			return fmt.Errorf("failed to set %s as output: %w", pin, err)
		}
		p.pins[l] = pin
	}
	return nil
}

// Set drives one line.
func (p *Pins) Set(line sevenseg.Line, level sevenseg.Level) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	pin, ok := p.pins[line]
	if !ok {
		return fmt.Errorf("%w: %d", sevenseg.ErrNotOutput, line)
	}
	return pin.Out(level == sevenseg.High)
}

// SetMasked drives every line in mask, one pin at a time.
func (p *Pins) SetMasked(mask, values sevenseg.LineMask) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	lines := mask.Lines()
	for _, l := range lines {
		if _, ok := p.pins[l]; !ok {
			return fmt.Errorf("%w: %d", sevenseg.ErrNotOutput, l)
		}
	}
	for _, l := range lines {
		if err := p.pins[l].Out(gpio.Level(values.Has(l))); err != nil {
			return fmt.Errorf("failed to drive %s: %w", p.pins[l], err)
		}
	}
	return nil
}

// Close drives every configured line low and halts it.
func (p *Pins) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	var errs []error
	for l, pin := range p.pins {
		if err := pin.Out(gpio.Low); err != nil {
			errs = append(errs, err)
		}
		if err := pin.Halt(); err != nil {
			errs = append(errs, err)
		}
		delete(p.pins, l)
	}
	return errors.Join(errs...)
}
