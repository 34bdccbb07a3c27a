// Package sevenseg drives a 4-digit 7-segment display whose digits share one
// set of segment lines. Digits are lit one at a time, fast enough that
// persistence of vision shows all four at once.
package sevenseg

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/rpi-sevenseg/internal/logging"
)

const (
	// DefaultDwell is how long each digit stays lit per scan. Four digits at
	// 2ms give an 8ms scan, about 125Hz full refresh.
	DefaultDwell = 2 * time.Millisecond

	spinWindow = 200 * time.Microsecond
)

var (
	ErrDuplicateLine = errors.New("line assigned twice")
	ErrLinesOverlap  = errors.New("segment and digit lines overlap")
	ErrLineRange     = errors.New("line number out of range")
)

// Polarity selects the electrical sense of the display.
type Polarity uint8

const (
	// CommonCathode: segment lines are active high, a digit is enabled by
	// pulling its cathode line low.
	CommonCathode Polarity = iota
	// CommonAnode: segment lines are active low, a digit is enabled by
	// driving its anode line high.
	CommonAnode
)

func (p Polarity) String() string {
	switch p {
	case CommonCathode:
		return "common-cathode"
	case CommonAnode:
		return "common-anode"
	default:
		return fmt.Sprintf("Polarity(%d)", uint8(p))
	}
}

// Option configures a Multiplexer.
type Option func(*Multiplexer)

// WithDwell sets the per-digit hold time.
func WithDwell(d time.Duration) Option {
	return func(m *Multiplexer) { m.dwell = d }
}

// WithPolarity selects common cathode (default) or common anode wiring.
func WithPolarity(p Polarity) Option {
	return func(m *Multiplexer) { m.polarity = p }
}

// WithHold replaces the dwell delay. Tests use it to observe each digit
// without waiting in real time.
func WithHold(hold func(time.Duration)) Option {
	return func(m *Multiplexer) { m.hold = hold }
}

// WithLogger sets the logger used for output failures.
func WithLogger(l *slog.Logger) Option {
	return func(m *Multiplexer) { m.log = l }
}

// Multiplexer scans a value onto the display.
//
// Render and Blank must be called from a single goroutine. Nothing carries
// over between scans except the failure bookkeeping.
type Multiplexer struct {
	out      Output
	segments [NumSegments]Line
	digits   [NumDigits]Line

	segMask   LineMask
	digitMask LineMask

	// Precomputed line levels, polarity already applied.
	glyphLines [10]LineMask
	segsOff    LineMask
	digitsOff  LineMask
	digitOn    Level

	dwell    time.Duration
	hold     func(time.Duration)
	polarity Polarity
	log      *slog.Logger

	failures atomic.Uint64
	scanErr  error
	failing  bool
}

// NewMultiplexer configures the segment lines (a-g, in that order) and the
// digit-select lines (most significant first) as outputs and blanks the
// display.
func NewMultiplexer(out Output, segments [NumSegments]Line, digits [NumDigits]Line, opts ...Option) (*Multiplexer, error) {
	m := &Multiplexer{
		out:      out,
		segments: segments,
		digits:   digits,
		dwell:    DefaultDwell,
		hold:     preciseHold,
		polarity: CommonCathode,
		log:      logging.For("mux"),
	}
	for _, opt := range opts {
		opt(m)
	}

	var err error
	if m.segMask, err = lineSet(segments[:]); err != nil {
		return nil, fmt.Errorf("segment lines: %w", err)
	}
	if m.digitMask, err = lineSet(digits[:]); err != nil {
		return nil, fmt.Errorf("digit lines: %w", err)
	}
	if m.segMask&m.digitMask != 0 {
		return nil, fmt.Errorf("%w: %v", ErrLinesOverlap, (m.segMask & m.digitMask).Lines())
	}

	m.buildTables()

	if err := out.ConfigureOutputs(m.segMask | m.digitMask); err != nil {
		return nil, fmt.Errorf("failed to configure outputs: %w", err)
	}
	m.Blank()

	m.log.Debug("multiplexer ready",
		"segments", segments, "digits", digits,
		"polarity", m.polarity.String(), "dwell", m.dwell)
	return m, nil
}

func lineSet(lines []Line) (LineMask, error) {
	var mask LineMask
	for _, l := range lines {
		if l > MaxLine {
			return 0, fmt.Errorf("%w: %d", ErrLineRange, l)
		}
		if mask.Has(l) {
			return 0, fmt.Errorf("%w: %d", ErrDuplicateLine, l)
		}
		mask |= MaskOf(l)
	}
	return mask, nil
}

// buildTables turns the glyph table into line masks for this wiring.
func (m *Multiplexer) buildTables() {
	for d := range m.glyphLines {
		var lit LineMask
		g := Glyph(uint32(d))
		for i, l := range m.segments {
			if g&(1<<i) != 0 {
				lit |= MaskOf(l)
			}
		}
		if m.polarity == CommonAnode {
			lit = m.segMask &^ lit
		}
		m.glyphLines[d] = lit
	}

	if m.polarity == CommonAnode {
		m.segsOff = m.segMask
		m.digitsOff = 0
		m.digitOn = High
	} else {
		m.segsOff = 0
		m.digitsOff = m.digitMask
		m.digitOn = Low
	}
}

// Render performs one scan cycle of value. Digits are extracted least
// significant first while positions are walked from the last one back, so
// position 0 ends up with the thousands digit. Exactly four digits are
// drawn: leading zeros are shown and anything above 9999 is dropped.
func (m *Multiplexer) Render(value uint32) {
	m.check(m.out.SetMasked(m.digitMask, m.digitsOff))
	m.check(m.out.SetMasked(m.segMask, m.segsOff))

	for i := 0; i < NumDigits; i++ {
		m.check(m.out.SetMasked(m.digitMask, m.digitsOff))
		m.check(m.out.Set(m.digits[NumDigits-1-i], m.digitOn))
		m.check(m.out.SetMasked(m.segMask, m.glyphLines[value%10]))
		value /= 10
		m.hold(m.dwell)
	}
	m.report()
}

// Run refreshes the display until ctx is done. source is read once per scan,
// so a concurrent update shows up on the next scan and never mid-scan.
func (m *Multiplexer) Run(ctx context.Context, source func() uint32) {
	m.log.Debug("refresh loop started", "dwell", m.dwell)
	for ctx.Err() == nil {
		m.Render(source())
	}
	m.log.Debug("refresh loop stopped", "failures", m.failures.Load())
}

// Blank disables every digit and clears every segment.
func (m *Multiplexer) Blank() {
	m.check(m.out.SetMasked(m.digitMask, m.digitsOff))
	m.check(m.out.SetMasked(m.segMask, m.segsOff))
	m.report()
}

// Failures returns the number of output writes that failed so far.
func (m *Multiplexer) Failures() uint64 {
	return m.failures.Load()
}

// check counts a failed write. The display must keep scanning, so errors
// never propagate out of Render.
func (m *Multiplexer) check(err error) {
	if err != nil {
		m.failures.Add(1)
		if m.scanErr == nil {
			m.scanErr = err
		}
	}
}

// report logs when writes start failing and when a whole pass succeeds
// again, rather than once per failed write.
func (m *Multiplexer) report() {
	err := m.scanErr
	m.scanErr = nil
	switch {
	case err != nil && !m.failing:
		m.failing = true
		m.log.Warn("output write failed", "err", err)
	case err == nil && m.failing:
		m.failing = false
		m.log.Info("output writes recovered", "failures", m.failures.Load())
	}
}

// preciseHold sleeps for most of d and spins for the remainder, so a late
// wakeup from the scheduler does not stretch a digit past its slot.
func preciseHold(d time.Duration) {
	deadline := time.Now().Add(d)
	if d > spinWindow {
		time.Sleep(d - spinWindow)
	}
	for time.Now().Before(deadline) {
	}
}
