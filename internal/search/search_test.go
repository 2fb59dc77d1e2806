package search

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/frankkopp/edaxgo/internal/bits"
	"github.com/frankkopp/edaxgo/internal/board"
	"github.com/frankkopp/edaxgo/internal/eval"
	"github.com/frankkopp/edaxgo/internal/tt"
)

func newTestSearch() *Search {
	return NewSearch(tt.New(1), eval.DefaultWeights())
}

func TestNewSearchIsNotSearchingInitially(t *testing.T) {
	s := newTestSearch()
	assert.False(t, s.IsSearching())
	assert.Nil(t, s.LastResult())
}

func TestStartSearchSyncFindsALegalMoveFromStartPosition(t *testing.T) {
	s := newTestSearch()
	pos := board.NewPosition()

	result := s.StartSearchSync(pos, Limits{Depth: 4})

	require.NotNil(t, result)
	assert.NotEqual(t, NoMove, result.BestMove)
	assert.Contains(t, legalStartMoves(), result.BestMove)
	assert.False(t, s.IsSearching())
}

func legalStartMoves() []int {
	pos := board.NewPosition()
	var moves []int
	rest := pos.GetMoves()
	for rest != 0 {
		sq := bits.BitScanForward(rest)
		rest &= rest - 1
		moves = append(moves, sq)
	}
	return moves
}

func TestStartSearchRejectsConcurrentCall(t *testing.T) {
	s := newTestSearch()
	pos := board.NewPosition()

	s.StartSearch(pos, Limits{Depth: 2, TimeControl: true, MoveTime: 50 * time.Millisecond})
	s.StartSearch(pos, Limits{Depth: 2}) // should be rejected, not block
	s.WaitWhileSearching()

	assert.False(t, s.IsSearching())
}

func TestStopSearchHaltsAnInFlightSearch(t *testing.T) {
	s := newTestSearch()
	pos := board.NewPosition()

	s.StartSearch(pos, Limits{Depth: 60})
	s.StopSearch()
	s.WaitWhileSearching()

	result := s.LastResult()
	require.NotNil(t, result)
	assert.True(t, result.TimedOut)
}

func TestClampScoreBoundsToScoreRange(t *testing.T) {
	assert.Equal(t, ScoreMax, clampScore(1000))
	assert.Equal(t, -ScoreMax, clampScore(-1000))
	assert.Equal(t, 10, clampScore(10))
}

func TestCostFromNodesIsMonotonic(t *testing.T) {
	assert.Equal(t, uint8(0), costFromNodes(0))
	assert.Less(t, costFromNodes(4), costFromNodes(4096))
}
