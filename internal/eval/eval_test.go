package eval

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitEvalFromStartingPosition(t *testing.T) {
	// D4=O, E4=X, D5=X, E5=O as in board.NewPosition; all four are
	// "center" squares so the absolute feature sum is zero and the
	// score should be exactly zero at the start of the game.
	e := New(DefaultWeights())
	p := uint64(1)<<(3*8+4) | uint64(1)<<(4*8+3)
	o := uint64(1)<<(3*8+3) | uint64(1)<<(4*8+4)
	e.InitEval(p, o)
	assert.Equal(t, int32(0), e.Score(60))
}

func TestUpdateThenRestoreRoundTrips(t *testing.T) {
	e := New(DefaultWeights())
	p := uint64(1) << 0 // corner, player
	o := uint64(1) << 9 // X-square-ish, opponent
	e.InitEval(p, o)
	before := e.feature
	beforeSign := e.sign

	e.Update(18, uint64(1)<<9) // plays C3, flips the opponent's B2 disc
	assert.NotEqual(t, before, e.feature)

	e.Restore(18, uint64(1)<<9)
	assert.Equal(t, before, e.feature)
	assert.Equal(t, beforeSign, e.sign)
}

func TestPassFlipsSignOnly(t *testing.T) {
	e := New(DefaultWeights())
	e.InitEval(uint64(1), uint64(1)<<63)
	before := e.feature
	beforeSign := e.sign
	e.Pass()
	assert.Equal(t, before, e.feature)
	assert.Equal(t, -beforeSign, e.sign)
	e.Restore(0, 0)
	assert.Equal(t, beforeSign, e.sign)
}

func TestScoreClampedToRange(t *testing.T) {
	e := New(DefaultWeights())
	allP := ^uint64(0)
	e.InitEval(allP, 0)
	s := e.Score(0)
	assert.LessOrEqual(t, s, int32(ScoreMax-1))
	assert.GreaterOrEqual(t, s, int32(-ScoreMax+1))
}

func TestRestorePanicsOnEmptyStack(t *testing.T) {
	e := New(DefaultWeights())
	e.InitEval(0, 0)
	assert.Panics(t, func() { e.Restore(0, 0) })
}

func TestGroupOfClassifiesCornersAndCenterDistinctly(t *testing.T) {
	assert.Equal(t, groupCorner, GroupOf(0))
	assert.Equal(t, groupCorner, GroupOf(63))
	assert.NotEqual(t, GroupOf(0), GroupOf(27))
}

func TestWeightFileRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "weights.bin")
	w := DefaultWeights()
	require.NoError(t, SaveWeights(path, w))

	loaded, err := LoadWeights(path)
	require.NoError(t, err)
	assert.Equal(t, w.rows, loaded.rows)
}

func TestLoadWeightsRejectsMissingFile(t *testing.T) {
	_, err := LoadWeights(filepath.Join(t.TempDir(), "nope.bin"))
	assert.Error(t, err)
}

func TestLoadWeightsRejectsBadMagic(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.bin")
	require.NoError(t, os.WriteFile(path, []byte{0, 0, 0, 0, 0, 0, 0, 1}, 0o644))
	_, err := LoadWeights(path)
	assert.Error(t, err)
}
