package stability

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCornerStabilityImmediate(t *testing.T) {
	o := uint64(1) | uint64(1)<<63
	assert.Equal(t, o, GetCornerStability(o))
}

func TestFullBoardEverythingStable(t *testing.T) {
	o := ^uint64(0)
	p := uint64(0)
	assert.Equal(t, 64, GetStability(p, o))
}

func TestEmptyBoardNoStability(t *testing.T) {
	assert.Equal(t, 0, GetStability(0, 0))
}

func TestEdgeStabilityRequiresFullEdge(t *testing.T) {
	// a lone opponent corner disc with an otherwise empty edge is
	// corner-stable but the rest of that edge is not.
	o := uint64(1) // A1
	p := uint64(0)
	edge := GetEdgeStability(p, o)
	assert.Equal(t, uint64(0), edge&^uint64(1))
}

func TestStabilityMonotonicWithMoreDiscs(t *testing.T) {
	// adding more opponent discs around an already-stable disc should
	// never reduce the stable count.
	o1 := uint64(1) // A1 corner
	o2 := o1 | 1<<1 | 1<<8 | 1<<9
	p := uint64(0)
	assert.LessOrEqual(t, GetStability(p, o1), GetStability(p, o2))
}

func TestGetAllFullLinesRequiresCompleteOccupancy(t *testing.T) {
	assert.Equal(t, uint64(0), GetAllFullLines(0))
	assert.Equal(t, ^uint64(0), GetAllFullLines(^uint64(0)))
}
