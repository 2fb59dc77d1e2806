package empties

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewListCountsAllEmpties(t *testing.T) {
	empties := uint64(0xFFFFFFFFFFFFFFFF) &^ (1<<27 | 1<<28 | 1<<35 | 1<<36)
	l := NewList(empties)
	assert.Equal(t, 60, l.Count())
}

func TestListIterationVisitsEverySquare(t *testing.T) {
	empties := uint64(1)<<5 | uint64(1)<<10 | uint64(1)<<40
	l := NewList(empties)
	var seen []int
	for sq := l.First(); sq != NoMove; sq = l.Next(sq) {
		seen = append(seen, sq)
	}
	assert.ElementsMatch(t, []int{5, 10, 40}, seen)
}

func TestRemoveAndRestoreRoundTrip(t *testing.T) {
	empties := uint64(1)<<5 | uint64(1)<<10 | uint64(1)<<40
	l := NewList(empties)
	before := l.Count()
	l.Remove(10)
	assert.Equal(t, before-1, l.Count())
	l.Restore(10)
	assert.Equal(t, before, l.Count())
	var seen []int
	for sq := l.First(); sq != NoMove; sq = l.Next(sq) {
		seen = append(seen, sq)
	}
	assert.ElementsMatch(t, []int{5, 10, 40}, seen)
}

func TestParityTogglesOnRemoveAndRestore(t *testing.T) {
	empties := uint64(1) << 5 // quadrant 1 (row 0, col 5 >= 4)
	l := NewList(empties)
	p0 := l.Parity()
	l.Remove(5)
	assert.NotEqual(t, p0, l.Parity())
	l.Restore(5)
	assert.Equal(t, p0, l.Parity())
}

func TestQuadrantOfPartitionsBoard(t *testing.T) {
	// A1 (sq 0) is quadrant 0; H1 (sq 7) is quadrant 1; A8 (sq 56) is
	// quadrant 2; H8 (sq 63) is quadrant 3.
	empties := uint64(1) | uint64(1)<<7 | uint64(1)<<56 | uint64(1)<<63
	l := NewList(empties)
	assert.Equal(t, 0, l.QuadrantOf(0))
	assert.Equal(t, 1, l.QuadrantOf(7))
	assert.Equal(t, 2, l.QuadrantOf(56))
	assert.Equal(t, 3, l.QuadrantOf(63))
}
