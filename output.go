package sevenseg

import "math/bits"

// Line identifies one digital output line (a GPIO number on most boards).
type Line uint8

// Level is the logic level driven onto a line.
type Level uint8

const (
	Low  Level = 0
	High Level = 1
)

// MaxLine is the highest line number a LineMask can address.
const MaxLine Line = 63

// LineMask is a set of lines, one bit per line number.
type LineMask uint64

// MaskOf builds a LineMask from the given lines.
func MaskOf(lines ...Line) LineMask {
	var m LineMask
	for _, l := range lines {
		m |= 1 << (l & 63)
	}
	return m
}

// Has reports whether l is part of the mask.
func (m LineMask) Has(l Line) bool {
	return m&(1<<(l&63)) != 0
}

// Lines returns the lines in the mask in ascending order.
func (m LineMask) Lines() []Line {
	lines := make([]Line, 0, bits.OnesCount64(uint64(m)))
	for v := uint64(m); v != 0; v &= v - 1 {
		lines = append(lines, Line(bits.TrailingZeros64(v)))
	}
	return lines
}

// Output is the digital output facility the multiplexer drives.
//
// SetMasked changes every line in mask at once: a line takes High when its
// bit in values is set and Low otherwise. Lines outside mask are untouched.
// Drivers that can update a group of lines in one hardware operation should
// do so here, since it keeps intermediate segment patterns off the display.
type Output interface {
	ConfigureOutputs(mask LineMask) error
	Set(line Line, level Level) error
	SetMasked(mask, values LineMask) error
}
