package parallel

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEligibleRespectsAllThreeLimits(t *testing.T) {
	assert.True(t, Eligible(5, 1, 0))
	assert.False(t, Eligible(4, 1, 0)) // below SplitMinDepth
	assert.False(t, Eligible(5, 0, 0)) // below SplitMinMovesTodo... but default is 1, so 0<1
	assert.False(t, Eligible(5, 1, 3)) // SplitMaxSlaves already reached
}

func TestRaiseAlphaOnlyEverIncreases(t *testing.T) {
	n := NewNode(nil, 0, 64, 10, 0, 3)
	assert.True(t, n.RaiseAlpha(10))
	assert.Equal(t, 10, n.Alpha())
	assert.False(t, n.RaiseAlpha(5))
	assert.Equal(t, 10, n.Alpha())
}

func TestUpdateBestKeepsTheHigherScore(t *testing.T) {
	n := NewNode(nil, -64, 64, 10, 0, 2)
	assert.True(t, n.UpdateBest(3, 20))
	assert.False(t, n.UpdateBest(1, 21))
	score, move := n.Best()
	assert.Equal(t, 3, score)
	assert.Equal(t, 20, move)
}

func TestPoolAcquireReleaseRoundTrips(t *testing.T) {
	p := NewPool(2)
	defer p.Close()
	require.Equal(t, 2, p.Size())

	var ran int32
	task := p.Acquire()
	require.NotNil(t, task)
	done := make(chan struct{})
	task.Assign(func() {
		atomic.AddInt32(&ran, 1)
		close(done)
	})
	<-done
	// the task releases itself back to the idle stack right after job()
	// returns; poll briefly rather than assume it has happened already.
	deadline := time.Now().Add(time.Second)
	for p.Idle() < 2 && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}
	assert.Equal(t, int32(1), ran)
	assert.Equal(t, 2, p.Idle())
}

func TestSplitRunsAllSiblingsSeriallyWithoutAPool(t *testing.T) {
	node := NewNode(nil, 0, 64, 10, 0, 2)
	var ran []int
	siblings := []Sibling{
		{Move: 1, Scout: func(a int) int { ran = append(ran, 1); return a - 1 }},
		{Move: 2, Scout: func(a int) int { ran = append(ran, 2); return a - 1 }},
	}
	Split(nil, node, siblings)
	assert.Len(t, ran, 2)
	assert.Equal(t, int32(2), node.NMovesDone)
}

func TestSplitResearchesAMoveThatFailsHighAgainstTheNullWindow(t *testing.T) {
	node := NewNode(nil, 10, 64, 10, 0, 1)
	researched := false
	siblings := []Sibling{
		{
			Move:  5,
			Scout: func(a int) int { return a + 1 }, // fails high against the null window
			Research: func(a int) int {
				researched = true
				return 20
			},
		},
	}
	Split(nil, node, siblings)
	assert.True(t, researched)
	score, move := node.Best()
	assert.Equal(t, 20, score)
	assert.Equal(t, 5, move)
	assert.Equal(t, 20, node.Alpha())
}

func TestSplitStopsOnImmediateBetaCutoff(t *testing.T) {
	node := NewNode(nil, 10, 20, 10, 0, 1)
	siblings := []Sibling{
		{Move: 7, Scout: func(a int) int { return 25 }}, // >= beta
	}
	Split(nil, node, siblings)
	assert.True(t, node.Stopped())
	score, move := node.Best()
	assert.Equal(t, 25, score)
	assert.Equal(t, 7, move)
}

func TestSplitDispatchesToPooledWorkersWhenAvailable(t *testing.T) {
	pool := NewPool(2)
	defer pool.Close()

	node := NewNode(nil, 0, 64, 10, 0, 2)
	siblings := []Sibling{
		{Move: 1, Scout: func(a int) int { return a - 1 }},
		{Move: 2, Scout: func(a int) int { return a - 2 }},
	}
	Split(pool, node, siblings)
	assert.Equal(t, int32(2), node.NMovesDone)
}
