package sevenseg

const (
	// NumDigits is the number of digit positions on the display.
	NumDigits = 4
	// NumSegments is the number of shared segment lines (a-g, no DP).
	NumSegments = 7

	// MaxValue is the largest value the display can show.
	MaxValue uint32 = 9999
)

// Segments is a 7-segment pattern. Bit order: G.F.E.D.C.B.A (bit6=G ... bit0=A).
//
//	 a
//	---
//	f| g |b
//	---
//	e|   |c
//	---
//	 d
type Segments uint8

const (
	SegA Segments = 1 << iota
	SegB
	SegC
	SegD
	SegE
	SegF
	SegG

	AllSegments = SegA | SegB | SegC | SegD | SegE | SegF | SegG
)

var glyphs = [10]Segments{
	SegA | SegB | SegC | SegD | SegE | SegF, // 0x3f
	SegB | SegC,                             // 0x06
	SegA | SegB | SegD | SegE | SegG,        // 0x5b
	SegA | SegB | SegC | SegD | SegG,        // 0x4f
	SegB | SegC | SegF | SegG,               // 0x66
	SegA | SegC | SegD | SegF | SegG,        // 0x6d
	SegA | SegC | SegD | SegE | SegF | SegG, // 0x7d
	SegA | SegB | SegC,                      // 0x07
	AllSegments,                             // 0x7f
	SegA | SegB | SegC | SegD | SegF | SegG, // 0x6f
}

// Glyph returns the segment pattern for the decimal digit d%10.
func Glyph(d uint32) Segments {
	return glyphs[d%10]
}

// DigitOf maps a segment pattern back to its decimal digit.
// ok is false if the pattern is not a digit glyph.
func DigitOf(s Segments) (digit uint32, ok bool) {
	for d, g := range glyphs {
		if g == s {
			return uint32(d), true
		}
	}
	return 0, false
}

// Has reports whether every segment of o is lit in s.
func (s Segments) Has(o Segments) bool {
	return s&o == o
}

// String renders the lit segments as letters, e.g. "abcdg" for 3.
func (s Segments) String() string {
	out := make([]byte, 0, NumSegments)
	for i := 0; i < NumSegments; i++ {
		if s&(1<<i) != 0 {
			out = append(out, 'a'+byte(i))
		}
	}
	return string(out)
}
