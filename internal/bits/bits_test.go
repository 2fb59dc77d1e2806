package bits

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPopCount(t *testing.T) {
	assert.Equal(t, 0, PopCount(0))
	assert.Equal(t, 64, PopCount(^uint64(0)))
	assert.Equal(t, 1, PopCount(1))
	assert.Equal(t, 3, PopCount(0b111))
}

func TestBitScan(t *testing.T) {
	assert.Equal(t, 0, BitScanForward(1))
	assert.Equal(t, 63, BitScanForward(uint64(1)<<63))
	assert.Equal(t, 64, BitScanForward(0))
	assert.Equal(t, 63, BitScanReverse(^uint64(0)))
	assert.Equal(t, 64, BitScanReverse(0))
}

func TestByteSwapIsVerticalMirror(t *testing.T) {
	// row A1..H1 (low byte) should move to row A8..H8 (high byte)
	row1 := uint64(0xFF)
	mirrored := VerticalMirror(row1)
	assert.Equal(t, uint64(0xFF)<<56, mirrored)
}

func TestHorizontalMirror(t *testing.T) {
	// A1 (bit 0) mirrors to H1 (bit 7) within the row
	assert.Equal(t, uint64(1)<<7, HorizontalMirror(1))
	assert.Equal(t, uint64(0), HorizontalMirror(0))
}

func TestTransposeSelfInverse(t *testing.T) {
	b := uint64(0x0102040810204080)
	assert.Equal(t, b, Transpose(Transpose(b)))
}

func TestTransposeDiagonalFixed(t *testing.T) {
	// the A1-H8 diagonal bits are fixed points of transpose
	var diag uint64
	for i := 0; i < 8; i++ {
		diag |= uint64(1) << uint(9*i)
	}
	assert.Equal(t, diag, Transpose(diag))
}

func TestSymmetryIdentity(t *testing.T) {
	b := uint64(0x0000001008000000)
	assert.Equal(t, b, Symmetry(b, 0))
}

func TestSymmetryFixedPointsForPassAndNomove(t *testing.T) {
	for sym := 0; sym < 8; sym++ {
		assert.Equal(t, PassSquare, SymmetrySquare(PassSquare, sym))
		assert.Equal(t, NoSquare, SymmetrySquare(NoSquare, sym))
	}
}

func TestSymmetryIsBijectionOnSquares(t *testing.T) {
	for sym := 0; sym < 8; sym++ {
		seen := map[Square]bool{}
		for sq := 0; sq < 64; sq++ {
			s := SymmetrySquare(sq, sym)
			assert.False(t, seen[s], "symmetry %d not injective at square %d", sym, sq)
			seen[s] = true
		}
	}
}

func TestUniqueIsLexicographicMinimum(t *testing.T) {
	p := uint64(0x0000000810000000)
	o := uint64(0x0000001008000000)
	cp, co, _ := Unique(p, o)
	for sym := 0; sym < 8; sym++ {
		sp := Symmetry(p, sym)
		so := Symmetry(o, sym)
		assert.False(t, less2(sp, so, cp, co), "found a smaller symmetry than Unique()'s choice")
	}
}

func TestUniqueIdempotentUnderReapplication(t *testing.T) {
	p := uint64(0x0000000810000000)
	o := uint64(0x0000001008000000)
	cp, co, _ := Unique(p, o)
	for sym := 0; sym < 8; sym++ {
		sp := Symmetry(cp, sym)
		so := Symmetry(co, sym)
		cp2, co2, _ := Unique(sp, so)
		assert.Equal(t, cp, cp2)
		assert.Equal(t, co, co2)
	}
}

func TestCRC32CWordStable(t *testing.T) {
	a := CRC32CWord(0xFFFFFFFF, 0x123456789ABCDEF0)
	b := CRC32CWord(0xFFFFFFFF, 0x123456789ABCDEF0)
	assert.Equal(t, a, b)
	c := CRC32CWord(0xFFFFFFFF, 0x123456789ABCDEF1)
	assert.NotEqual(t, a, c)
}
