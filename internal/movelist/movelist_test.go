package movelist

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func iterate(ml *MoveList) []int {
	var squares []int
	for i := ml.Head(); i != NoLink; i = ml.NextIndex(i) {
		squares = append(squares, ml.At(i).Square)
	}
	return squares
}

func TestAddPreservesInsertionOrder(t *testing.T) {
	ml := NewMoveList()
	ml.Add(10, 0, 0, 0)
	ml.Add(20, 0, 0, 0)
	ml.Add(30, 0, 0, 0)
	assert.Equal(t, []int{10, 20, 30}, iterate(ml))
	assert.Equal(t, 3, ml.Len())
}

func TestResetClearsList(t *testing.T) {
	ml := NewMoveList()
	ml.Add(1, 0, 0, 0)
	ml.Reset()
	assert.Equal(t, 0, ml.Len())
	assert.Equal(t, NoLink, ml.Head())
}

func TestSetBestMoveMovesToFront(t *testing.T) {
	ml := NewMoveList()
	ml.Add(1, 0, 0, 0)
	ml.Add(2, 0, 0, 0)
	ml.Add(3, 0, 0, 0)
	ml.SetBestMove(2) // array index 2 holds square 3
	assert.Equal(t, []int{3, 1, 2}, iterate(ml))
}

func TestSetBestMoveAlreadyFrontIsNoop(t *testing.T) {
	ml := NewMoveList()
	ml.Add(1, 0, 0, 0)
	ml.Add(2, 0, 0, 0)
	ml.SetBestMove(0)
	assert.Equal(t, []int{1, 2}, iterate(ml))
}

func TestSortByScoreDescendingStable(t *testing.T) {
	ml := NewMoveList()
	ml.Add(1, 0, 5, 0)
	ml.Add(2, 0, 9, 0)
	ml.Add(3, 0, 9, 0)
	ml.Add(4, 0, 1, 0)
	ml.SortByScoreDescending()
	assert.Equal(t, []int{2, 3, 1, 4}, iterate(ml))
}

func TestMoveNextBestFromHead(t *testing.T) {
	ml := NewMoveList()
	ml.Add(1, 0, 3, 0)
	ml.Add(2, 0, 7, 0)
	ml.Add(3, 0, 1, 0)
	idx, ok := ml.MoveNextBest(NoLink)
	require.True(t, ok)
	assert.Equal(t, 2, ml.At(idx).Square)
	assert.Equal(t, []int{2, 1, 3}, iterate(ml))
}

func TestMoveNextBestFromMiddle(t *testing.T) {
	ml := NewMoveList()
	ml.Add(1, 0, 9, 0) // already "done" / best, stays at head
	ml.Add(2, 0, 3, 0)
	ml.Add(3, 0, 8, 0)
	ml.Add(4, 0, 1, 0)
	// caller has already consumed index 0 (square 1); pick best among the rest.
	idx, ok := ml.MoveNextBest(0)
	require.True(t, ok)
	assert.Equal(t, 3, ml.At(idx).Square)
	assert.Equal(t, []int{1, 3, 2, 4}, iterate(ml))
}

func TestMoveNextBestEmptyTail(t *testing.T) {
	ml := NewMoveList()
	ml.Add(1, 0, 0, 0)
	_, ok := ml.MoveNextBest(0)
	assert.False(t, ok)
}

func TestGenerateFromUsesFlipFunction(t *testing.T) {
	ml := NewMoveList()
	called := 0
	flip := func(sq int, p, o uint64) uint64 {
		called++
		return uint64(1) << uint(sq)
	}
	moves := uint64(1)<<3 | uint64(1)<<10
	ml.GenerateFrom(moves, flip, 0, 0)
	assert.Equal(t, 2, called)
	assert.Equal(t, []int{3, 10}, iterate(ml))
	assert.Equal(t, uint64(1)<<3, ml.At(ml.Head()).Flipped)
}

func TestAddPanicsPastCapacity(t *testing.T) {
	ml := NewMoveList()
	assert.Panics(t, func() {
		for i := 0; i < MaxMove+1; i++ {
			ml.Add(i, 0, 0, 0)
		}
	})
}
