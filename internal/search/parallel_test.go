package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/frankkopp/edaxgo/internal/board"
	"github.com/frankkopp/edaxgo/internal/eval"
	"github.com/frankkopp/edaxgo/internal/parallel"
	"github.com/frankkopp/edaxgo/internal/tt"
)

func TestStartSearchSyncWithPoolFindsALegalMove(t *testing.T) {
	pool := parallel.NewPool(2)
	defer pool.Close()

	s := NewSearch(tt.New(1), eval.DefaultWeights())
	s.UsePool(pool)

	pos := board.NewPosition()
	result := s.StartSearchSync(pos, Limits{Depth: 6})

	require.NotNil(t, result)
	assert.NotEqual(t, NoMove, result.BestMove)
	assert.Contains(t, legalStartMoves(), result.BestMove)
}
