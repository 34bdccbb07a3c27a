//go:build tinygo

// Package picopins drives display lines from an RP2040 (Raspberry Pi Pico)
// with TinyGo. Lines are GPIO numbers, as in machine.GPIO6.
//
// Build with:
//
//	tinygo build -target=pico -o sevenseg.uf2 ./cmd/pico
package picopins

import (
	"machine"

	sevenseg "github.com/rpi-sevenseg"
)

// Pins is a sevenseg.Output over machine.Pin.
type Pins struct {
	configured sevenseg.LineMask
}

func New() *Pins {
	return &Pins{}
}

// ConfigureOutputs sets every line in mask to output mode, driven low.
func (p *Pins) ConfigureOutputs(mask sevenseg.LineMask) error {
	for _, l := range mask.Lines() {
		pin := machine.Pin(l)
		pin.Configure(machine.PinConfig{Mode: machine.PinOutput})
		pin.Low()
	}
	p.configured |= mask
	return nil
}

func (p *Pins) Set(line sevenseg.Line, level sevenseg.Level) error {
	if !p.configured.Has(line) {
		return sevenseg.ErrNotOutput
	}
	machine.Pin(line).Set(level == sevenseg.High)
	return nil
}

// SetMasked writes the lines one by one; each write is a single SIO
// register store, so the whole group settles in a few cycles.
func (p *Pins) SetMasked(mask, values sevenseg.LineMask) error {
	if mask&^p.configured != 0 {
		return sevenseg.ErrNotOutput
	}
	for _, l := range mask.Lines() {
		machine.Pin(l).Set(values.Has(l))
	}
	return nil
}
