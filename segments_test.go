package sevenseg

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGlyphShapes(t *testing.T) {
	want := map[uint32]string{
		0: "abcdef",
		1: "bc",
		2: "abdeg",
		3: "abcdg",
		4: "bcfg",
		5: "acdfg",
		6: "acdefg",
		7: "abc",
		8: "abcdefg",
		9: "abcdfg",
	}
	for d, segs := range want {
		assert.Equal(t, segs, Glyph(d).String(), "digit %d", d)
	}
}

func TestGlyphEncoding(t *testing.T) {
	// Same byte values as the usual DP.G.F.E.D.C.B.A tables.
	want := [10]byte{0x3f, 0x06, 0x5b, 0x4f, 0x66, 0x6d, 0x7d, 0x07, 0x7f, 0x6f}
	for d, b := range want {
		assert.Equal(t, Segments(b), Glyph(uint32(d)), "digit %d", d)
	}
	assert.Equal(t, AllSegments, Glyph(8))
}

func TestGlyphsAreDistinct(t *testing.T) {
	seen := make(map[Segments]uint32)
	for d := uint32(0); d < 10; d++ {
		g := Glyph(d)
		prev, dup := seen[g]
		assert.False(t, dup, "digits %d and %d share a glyph", prev, d)
		seen[g] = d

		back, ok := DigitOf(g)
		assert.True(t, ok)
		assert.Equal(t, d, back)
	}
}

func TestGlyphWrapsOutOfRange(t *testing.T) {
	assert.Equal(t, Glyph(3), Glyph(13))
	assert.Equal(t, Glyph(0), Glyph(4294967290))
}

func TestDigitOfUnknown(t *testing.T) {
	_, ok := DigitOf(0)
	assert.False(t, ok)
	_, ok = DigitOf(SegG)
	assert.False(t, ok)
}

func TestSegmentsHas(t *testing.T) {
	assert.True(t, Glyph(8).Has(Glyph(3)))
	assert.False(t, Glyph(1).Has(SegA))
}
