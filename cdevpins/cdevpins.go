//go:build linux

// Package cdevpins drives display lines through the Linux GPIO character
// device. All lines are held in a single kernel request, so a masked write
// changes every line in one ioctl and no partial segment pattern is ever
// driven.
package cdevpins

import (
	"errors"
	"fmt"
	"sync"

	"github.com/warthog618/go-gpiocdev"

	sevenseg "github.com/rpi-sevenseg"
)

const consumer = "sevenseg"

var ErrClosed = errors.New("gpio lines closed")

// lineRequest is the part of *gpiocdev.Lines used here.
type lineRequest interface {
	SetValues(values []int) error
	Close() error
}

type requestFunc func(chip string, offsets []int, values []int) (lineRequest, error)

func requestLines(chip string, offsets []int, values []int) (lineRequest, error) {
	return gpiocdev.RequestLines(chip, offsets,
		gpiocdev.AsOutput(values...),
		gpiocdev.WithConsumer(consumer))
}

// Pins is a sevenseg.Output on one gpiochip.
type Pins struct {
	chip    string
	request requestFunc

	mu      sync.Mutex
	lines   lineRequest
	offsets []sevenseg.Line
	index   map[sevenseg.Line]int
	values  []int
	closed  bool
}

// Open prepares output on chip, e.g. "gpiochip0". No lines are requested
// until ConfigureOutputs.
func Open(chip string) *Pins {
	return &Pins{chip: chip, request: requestLines}
}

// ConfigureOutputs requests the lines in mask as outputs, initially low.
// Lines already held keep their current level.
func (p *Pins) ConfigureOutputs(mask sevenseg.LineMask) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return ErrClosed
	}

	var have sevenseg.LineMask
	for _, l := range p.offsets {
		have |= sevenseg.MaskOf(l)
	}
	if mask&^have == 0 {
		return nil
	}

	lines := (have | mask).Lines()
	offsets := make([]int, len(lines))
	values := make([]int, len(lines))
	index := make(map[sevenseg.Line]int, len(lines))
	for i, l := range lines {
		offsets[i] = int(l)
		index[l] = i
		if j, ok := p.index[l]; ok {
			values[i] = p.values[j]
		}
	}

	// A line can only be held by one request, so the old one goes first.
	if p.lines != nil {
		if err := p.lines.Close(); err != nil {
			return fmt.Errorf("failed to release lines on %s: %w", p.chip, err)
		}
		p.lines = nil
		p.offsets = nil
		p.index = nil
		p.values = nil
	}
	req, err := p.request(p.chip, offsets, values)
	if err != nil {
		return fmt.Errorf("failed to request lines %v on %s: %w", offsets, p.chip, err)
	}

	p.lines = req
	p.offsets = lines
	p.index = index
	p.values = values
	return nil
}

// Set drives one line.
func (p *Pins) Set(line sevenseg.Line, level sevenseg.Level) error {
	values := sevenseg.LineMask(0)
	if level == sevenseg.High {
		values = sevenseg.MaskOf(line)
	}
	return p.SetMasked(sevenseg.MaskOf(line), values)
}

// SetMasked updates the lines in mask and pushes the full set of levels to
// the kernel in one call.
func (p *Pins) SetMasked(mask, values sevenseg.LineMask) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return ErrClosed
	}
	if p.lines == nil {
		return fmt.Errorf("%w: no lines requested on %s", sevenseg.ErrNotOutput, p.chip)
	}
	for _, l := range mask.Lines() {
		i, ok := p.index[l]
		if !ok {
			return fmt.Errorf("%w: %d", sevenseg.ErrNotOutput, l)
		}
		if values.Has(l) {
			p.values[i] = 1
		} else {
			p.values[i] = 0
		}
	}
	if err := p.lines.SetValues(p.values); err != nil {
		return fmt.Errorf("failed to set lines on %s: %w", p.chip, err)
	}
	return nil
}

// Close releases the lines back to the kernel.
func (p *Pins) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return nil
	}
	p.closed = true
	if p.lines == nil {
		return nil
	}
	if err := p.lines.Close(); err != nil {
		return fmt.Errorf("failed to release lines on %s: %w", p.chip, err)
	}
	return nil
}
