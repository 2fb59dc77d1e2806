package search

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/frankkopp/edaxgo/internal/board"
	"github.com/frankkopp/edaxgo/internal/eval"
)

func newTestEval() *eval.Eval {
	e := eval.New(eval.DefaultWeights())
	e.InitEval(board.NewPosition().P, board.NewPosition().O)
	return e
}

// oneEmptyPosition sets up a nearly-full board where only square sq
// remains empty, with every other square belonging to the majority
// side named by playerWins. Used to exercise solveLast1 directly.
func oneEmptyPosition(t *testing.T, sq int, playerWins bool) *board.Position {
	t.Helper()
	var p, o uint64
	for s := 0; s < 64; s++ {
		if s == sq {
			continue
		}
		if playerWins {
			p |= uint64(1) << uint(s)
		} else {
			o |= uint64(1) << uint(s)
		}
	}
	return &board.Position{P: p, O: o}
}

func TestSolveLast1NoOneCanPlayAwardsMajority(t *testing.T) {
	pos := oneEmptyPosition(t, 0, true)
	// every other square is the player's: nobody can outflank into the
	// lone empty square, so it goes to the majority holder (the player).
	score := solveLast1(pos)
	assert.Equal(t, 63+1, score)
}

func TestSolveLast1OpponentMajorityIsNegative(t *testing.T) {
	pos := oneEmptyPosition(t, 0, false)
	score := solveLast1(pos)
	assert.Equal(t, -(63 + 1), score)
}

func TestSolveLast2FindsTheBetterOfTwoPlayableSquares(t *testing.T) {
	// Build a concrete 2-empty position: a single row where P=X can
	// flip into one of the two empty squares (classic X-O-O-. shape)
	// and not the other.
	var p, o uint64
	p |= 1 << uint(0) // a1 = X
	o |= 1 << uint(1) // b1 = O
	o |= 1 << uint(2) // c1 = O
	// squares 3 (d1) and 4 (e1) left empty; fill the rest of the board
	// with X so the position is otherwise full.
	for s := 5; s < 64; s++ {
		p |= 1 << uint(s)
	}
	pos2 := &board.Position{P: p, O: o}

	score := solveLast2(pos2, -ScoreInf, ScoreInf)
	// playing d1 flips b1,c1 to X, wiping out O entirely: best possible
	// outcome for the player to move.
	assert.Equal(t, 64, score)
}

func TestNegamaxRespectsStopFlag(t *testing.T) {
	s := newTestSearch()
	s.StopSearch()
	pos := board.NewPosition()
	e := newTestEval()

	score := s.negamax(pos, e, nil, -ScoreMax, ScoreMax, 6, fullSelectivity, false)
	assert.Equal(t, -ScoreMax, score)
}
