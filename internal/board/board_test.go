package board

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPositionStartingMobility(t *testing.T) {
	p := NewPosition()
	// the classic Othello opening has exactly 4 legal moves for black
	assert.Equal(t, 4, GetMobility(p.P, p.O))
	assert.False(t, p.IsGameOver())
}

func TestInvariantNoOverlap(t *testing.T) {
	p := NewPosition()
	assert.Equal(t, uint64(0), p.P&p.O)
}

func TestDoMoveUndoMoveRoundTrip(t *testing.T) {
	p := NewPosition()
	beforeP, beforeO := p.P, p.O
	moves := p.GetMoves()
	sq := trailingZero(moves)
	p.DoMove(sq)
	assert.NotEqual(t, beforeP, p.P)
	p.UndoMove()
	assert.Equal(t, beforeP, p.P)
	assert.Equal(t, beforeO, p.O)
}

func TestDoMoveFlipsAtLeastOneDisc(t *testing.T) {
	p := NewPosition()
	moves := p.GetMoves()
	sq := trailingZero(moves)
	flipped := Flip(sq, p.P, p.O)
	assert.NotEqual(t, uint64(0), flipped)
}

func TestPassWhenNoMoves(t *testing.T) {
	// construct a position where the side to move has no legal move: a
	// single isolated disc pair with no outflank.
	p := &Position{P: bitAt(0), O: bitAt(63)}
	assert.Equal(t, uint64(0), p.GetMoves())
}

func TestFinalScoreMajorityTakesEmpties(t *testing.T) {
	// P holds every square but one, O holds one, one empty square left:
	// the empty should be awarded to P.
	all := ^uint64(0)
	o := bitAt(0)
	empty := bitAt(1)
	p := &Position{P: all &^ o &^ empty, O: o}
	score := p.FinalScore()
	assert.Equal(t, popcount(p.P)-popcount(p.O)+1, score)
}

func TestHashcodeStableAndSensitive(t *testing.T) {
	p := NewPosition()
	h1 := p.Hashcode()
	h2 := p.Hashcode()
	assert.Equal(t, h1, h2)

	q := NewPosition()
	q.DoMove(trailingZero(q.GetMoves()))
	assert.NotEqual(t, h1, q.Hashcode())
}

func TestBoardStringRoundTrip(t *testing.T) {
	p := NewPosition()
	s := p.String()
	require.Len(t, s, 65)
	p2, err := ParseBoardString(s)
	require.NoError(t, err)
	assert.Equal(t, p.P, p2.P)
	assert.Equal(t, p.O, p2.O)
}

func TestParseBoardStringRejectsBadLength(t *testing.T) {
	_, err := ParseBoardString("too short")
	assert.Error(t, err)
}

func TestParseBoardStringRejectsBadSideToMove(t *testing.T) {
	s := "-----------------------------------------------------------------" // 64 dashes + one more
	_, err := ParseBoardString(s[:64] + "Z")
	assert.Error(t, err)
}

func TestFENRoundTrip(t *testing.T) {
	p := NewPosition()
	f := p.FEN()
	require.Len(t, f, 66)
	p2, err := ParseFEN(f)
	require.NoError(t, err)
	assert.Equal(t, p.P, p2.P)
	assert.Equal(t, p.O, p2.O)
}

func TestParseFENRejectsMissingSeparator(t *testing.T) {
	_, err := ParseFEN(NewPosition().String() + "X")
	assert.Error(t, err)
}

func TestMoveStringRoundTrip(t *testing.T) {
	for sq := 0; sq < 64; sq++ {
		s := MoveString(sq)
		back, err := ParseMoveString(s)
		require.NoError(t, err)
		assert.Equal(t, sq, back)
	}
	assert.Equal(t, "pa", MoveString(PassMove))
	back, err := ParseMoveString("pa")
	require.NoError(t, err)
	assert.Equal(t, PassMove, back)
}

func TestParseMoveStringRejectsGarbage(t *testing.T) {
	_, err := ParseMoveString("z9")
	assert.Error(t, err)
	_, err = ParseMoveString("a9")
	assert.Error(t, err)
}

func TestGetWeightedMobilityCountsCornersTwice(t *testing.T) {
	// an O disc on B2 backed by P on C3 makes corner A1 legal for P;
	// weighted mobility should count that corner move twice.
	p := &Position{P: bitAt(18), O: bitAt(9)} // C3, B2 -> outflank toward A1
	moves := GetMoves(p.P, p.O)
	if moves&bitAt(0) != 0 {
		w := GetWeightedMobility(p.P, p.O)
		plain := GetMobility(p.P, p.O)
		assert.Equal(t, plain+1, w)
	}
}

func TestUniqueCanonicalizesSymmetricPositions(t *testing.T) {
	p := NewPosition()
	canon, _ := p.Unique()
	// the starting position is itself symmetric under the board's
	// point-symmetry, so Unique() should reproduce a stable fixed point
	// when applied twice.
	again, _ := canon.Unique()
	assert.Equal(t, canon.P, again.P)
	assert.Equal(t, canon.O, again.O)
}

func TestMoves6x6StaysWithinMask(t *testing.T) {
	p := NewPosition()
	moves := GetMoves6x6(p.P, p.O)
	assert.Equal(t, moves, moves&mask6x6)
}

func TestPerftStartingPosition(t *testing.T) {
	p := NewPosition()
	// well-known Othello perft counts from the standard opening.
	assert.Equal(t, uint64(1), Perft(p, 0))
	assert.Equal(t, uint64(4), Perft(p, 1))
	assert.Equal(t, uint64(12), Perft(p, 2))
}

// --- small test-local helpers (kept private to avoid growing the
// package's public surface just for test convenience) ---

func bitAt(sq int) uint64 { return uint64(1) << uint(sq) }

func popcount(b uint64) int {
	n := 0
	for b != 0 {
		b &= b - 1
		n++
	}
	return n
}

func trailingZero(b uint64) int {
	for i := 0; i < 64; i++ {
		if b&(uint64(1)<<uint(i)) != 0 {
			return i
		}
	}
	return 64
}
