package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/frankkopp/edaxgo/internal/board"
	"github.com/frankkopp/edaxgo/internal/movelist"
)

func newTestSearchForOrdering() *Search {
	return newTestSearch()
}

func TestOrderMovesRanksHashMoveAboveEverythingElse(t *testing.T) {
	s := newTestSearchForOrdering()
	pos := board.NewPosition()
	e := newTestEval()

	ml := movelist.NewMoveList()
	ml.GenerateFrom(pos.GetMoves(), board.Flip, pos.P, pos.O)
	require.Greater(t, ml.Len(), 1)

	hashMove := ml.At(ml.Head()).Square
	other := ml.At(ml.NextIndex(ml.Head())).Square

	s.orderMoves(ml, pos, e, pos.EmptyCount(), nil, hashMove, NoMove, 1, fullSelectivity)
	ml.SortByScoreDescending()

	assert.Equal(t, hashMove, ml.At(ml.Head()).Square)
	assert.Greater(t, ml.At(ml.Head()).Score, findScore(ml, other))
}

func findScore(ml *movelist.MoveList, sq int) int32 {
	for i := ml.Head(); i != movelist.NoLink; i = ml.NextIndex(i) {
		if ml.At(i).Square == sq {
			return ml.At(i).Score
		}
	}
	return 0
}

func TestOrderMovesGivesWipeoutTheHighestScore(t *testing.T) {
	s := newTestSearchForOrdering()
	e := newTestEval()

	// A position where the opponent holds a single disc, sandwiched
	// between the player's disc and the square about to be played: the
	// only move available wipes the opponent out completely.
	var p, o uint64
	p |= 1 << uint(2) // c1 = X
	o |= 1 << uint(3) // d1 = O, the opponent's only disc
	pos := &board.Position{P: p, O: o}

	ml := movelist.NewMoveList()
	ml.GenerateFrom(pos.GetMoves(), board.Flip, pos.P, pos.O)
	require.Greater(t, ml.Len(), 0)

	s.orderMoves(ml, pos, e, pos.EmptyCount(), nil, NoMove, NoMove, 1, fullSelectivity)

	wipeout := ml.At(ml.Head())
	for i := ml.Head(); i != movelist.NoLink; i = ml.NextIndex(i) {
		mv := ml.At(i)
		if mv.Score > wipeout.Score {
			wipeout = mv
		}
	}
	assert.Equal(t, wipeoutScore, wipeout.Score)
}
