package sevenseg

import (
	"errors"
	"fmt"
	"strings"
	"sync"
)

var ErrNotOutput = errors.New("line not configured as output")

// Recorder is an in-memory Output that models the display attached to it.
// It tracks line levels, which digit is lit, and the pattern each digit last
// showed while it was the only one enabled.
type Recorder struct {
	mu sync.Mutex

	segments [NumSegments]Line
	digits   [NumDigits]Line
	polarity Polarity

	configured LineMask
	high       LineMask

	frame      [NumDigits]Segments
	maxEnabled int
	writes     uint64
}

// NewRecorder returns a simulated display wired like a Multiplexer with the
// same segment and digit lines.
func NewRecorder(segments [NumSegments]Line, digits [NumDigits]Line, polarity Polarity) *Recorder {
	return &Recorder{
		segments: segments,
		digits:   digits,
		polarity: polarity,
	}
}

func (r *Recorder) ConfigureOutputs(mask LineMask) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.configured |= mask
	return nil
}

func (r *Recorder) Set(line Line, level Level) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.configured.Has(line) {
		return fmt.Errorf("%w: %d", ErrNotOutput, line)
	}
	if level == High {
		r.high |= MaskOf(line)
	} else {
		r.high &^= MaskOf(line)
	}
	r.settle()
	return nil
}

func (r *Recorder) SetMasked(mask, values LineMask) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if stray := mask &^ r.configured; stray != 0 {
		return fmt.Errorf("%w: %v", ErrNotOutput, stray.Lines())
	}
	r.high = r.high&^mask | values&mask
	r.settle()
	return nil
}

// settle updates the derived display state after a write. Caller holds mu.
func (r *Recorder) settle() {
	r.writes++

	pos, n := r.enabled()
	if n > r.maxEnabled {
		r.maxEnabled = n
	}
	if n == 1 {
		r.frame[pos] = r.segmentsLocked()
	}
}

func (r *Recorder) enabled() (pos, n int) {
	pos = -1
	for i, l := range r.digits {
		on := r.high.Has(l)
		if r.polarity == CommonCathode {
			on = !on
		}
		if on {
			if pos < 0 {
				pos = i
			}
			n++
		}
	}
	return pos, n
}

func (r *Recorder) segmentsLocked() Segments {
	var s Segments
	for i, l := range r.segments {
		on := r.high.Has(l)
		if r.polarity == CommonAnode {
			on = !on
		}
		if on {
			s |= 1 << i
		}
	}
	return s
}

// Lit returns the digit position currently enabled and the segments it
// shows. ok is false unless exactly one digit is enabled.
func (r *Recorder) Lit() (pos int, seg Segments, ok bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	pos, n := r.enabled()
	if n != 1 {
		return -1, 0, false
	}
	return pos, r.segmentsLocked(), true
}

// Frame returns what each digit position last showed.
func (r *Recorder) Frame() [NumDigits]Segments {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.frame
}

// MaxEnabled returns the largest number of digits ever enabled at once.
func (r *Recorder) MaxEnabled() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.maxEnabled
}

// Writes returns the number of accepted write operations.
func (r *Recorder) Writes() uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.writes
}

// String decodes the frame, e.g. "0042". Blank positions read as ' ' and
// patterns that are not digits as '?'.
func (r *Recorder) String() string {
	frame := r.Frame()

	var b strings.Builder
	for _, s := range frame {
		if s == 0 {
			b.WriteByte(' ')
			continue
		}
		if d, ok := DigitOf(s); ok {
			b.WriteByte('0' + byte(d))
		} else {
			b.WriteByte('?')
		}
	}
	return b.String()
}
