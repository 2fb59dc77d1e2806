//
// edaxgo - an Othello engine in GO, built in the idiom of FrankyGo
//
// MIT License
//
// Copyright (c) 2018-2020 Frank Kopp
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.
//

package parallel

import (
	"sync"
	"sync/atomic"

	"github.com/frankkopp/edaxgo/internal/config"
)

// Node is a split-point record, shared by the master and every slave
// task attached to it, per spec 4.9: alpha only ever increases, beta
// is fixed for the node's lifetime, and bestscore/bestmove/has_slave
// are read and written by multiple goroutines, so they sit behind a
// mutex while alpha and stop_point - the two fields every slave polls
// on the hot path - are plain atomics.
type Node struct {
	alpha int32 // atomic; monotonically increasing

	Beta       int
	Depth      int
	Height     int
	NMovesTodo int32
	NMovesDone int32 // atomic
	Parent     *Node

	stopPoint int32 // atomic bool

	mu        sync.Mutex
	bestScore int
	bestMove  int
	hasSlave  bool
}

// NewNode opens a split point: alpha/beta as negotiated by the move
// already searched serially (the "young brother" that established the
// PV), depth/height for eligibility bookkeeping, and the count of
// sibling moves still to search.
func NewNode(parent *Node, alpha, beta, depth, height, movesTodo int) *Node {
	n := &Node{
		Beta:       beta,
		Depth:      depth,
		Height:     height,
		NMovesTodo: int32(movesTodo),
		Parent:     parent,
		bestMove:   -1,
		bestScore:  alpha,
	}
	atomic.StoreInt32(&n.alpha, int32(alpha))
	return n
}

// Alpha returns the node's current live lower bound.
func (n *Node) Alpha() int {
	return int(atomic.LoadInt32(&n.alpha))
}

// RaiseAlpha advances the node's alpha to v, if v improves on the
// current value. Safe for concurrent callers; never lowers alpha.
func (n *Node) RaiseAlpha(v int) bool {
	for {
		cur := atomic.LoadInt32(&n.alpha)
		if int32(v) <= cur {
			return false
		}
		if atomic.CompareAndSwapInt32(&n.alpha, cur, int32(v)) {
			return true
		}
	}
}

// Stopped reports whether a beta cutoff has already been proven at
// this node, so any slave still iterating its own subtree should
// abandon it.
func (n *Node) Stopped() bool {
	return atomic.LoadInt32(&n.stopPoint) == 1
}

// Stop marks the node as cut off.
func (n *Node) Stop() {
	atomic.StoreInt32(&n.stopPoint, 1)
}

// UpdateBest records score/move as the node's best if score improves
// on the current best, guarded so concurrent slaves never race each
// other's writes. Returns whether it updated.
func (n *Node) UpdateBest(score, move int) bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	if move < 0 {
		return false
	}
	if n.bestMove < 0 || score > n.bestScore {
		n.bestScore = score
		n.bestMove = move
		return true
	}
	return false
}

// Best returns the node's current best score and move.
func (n *Node) Best() (score, move int) {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.bestScore, n.bestMove
}

// HasSlave reports whether a slave is currently attached to this node.
func (n *Node) HasSlave() bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.hasSlave
}

func (n *Node) setHasSlave(v bool) {
	n.mu.Lock()
	n.hasSlave = v
	n.mu.Unlock()
}

func (n *Node) markMoveDone() {
	atomic.AddInt32(&n.NMovesDone, 1)
}

// Eligible reports whether a split-eligible node (spec 4.9's three
// gating limits) is worth splitting at all: deep enough, with at least
// one sibling left to do, and not already saturated with slaves.
func Eligible(depth, movesTodo, activeSlaves int) bool {
	return config.Settings.Parallel.UseParallelSearch &&
		depth >= config.Settings.Parallel.SplitMinDepth &&
		movesTodo >= config.Settings.Parallel.SplitMinMovesTodo &&
		activeSlaves < config.Settings.Parallel.SplitMaxSlaves
}

// Sibling is one not-yet-searched PVS move at a split node. Scout runs
// the null-window probe against the alpha snapshot Split captured when
// it dispatched this sibling; Research re-runs it with the full window
// and is only ever invoked by Split's own goroutine, never by a worker,
// preserving spec 4.9 step 5's "re-search is always serialized" rule.
type Sibling struct {
	Move     int
	Scout    func(alphaSnapshot int) int
	Research func(alphaAtResearch int) int
}

// Split is the YBWC fan-out of spec 4.9: the master hands each sibling
// to an idle worker from pool if one is available, or searches it
// itself otherwise (step 1's "if none available, proceed serially").
// Every dispatched Scout runs concurrently against the alpha it saw at
// dispatch time; once all have reported, Split serially re-searches
// (step 5) whichever ones failed high against their null window,
// updating node's live alpha between each one exactly as a sequential
// PVS loop would. Split returns once every sibling is accounted for or
// node.Stopped() becomes true.
func Split(pool *Pool, node *Node, siblings []Sibling) {
	var mu sync.Mutex
	var pending []Sibling
	var wg sync.WaitGroup

	dispatch := func(sib Sibling, a int) {
		score := sib.Scout(a)
		node.markMoveDone()
		mu.Lock()
		defer mu.Unlock()
		switch {
		case score >= node.Beta:
			node.UpdateBest(score, sib.Move)
			node.RaiseAlpha(score)
			node.Stop()
		case score > a:
			pending = append(pending, sib)
		default:
			node.UpdateBest(score, sib.Move)
		}
	}

	for _, sib := range siblings {
		if node.Stopped() {
			break
		}
		a := node.Alpha()
		sib := sib
		var task *Task
		if pool != nil {
			task = pool.Acquire()
		}
		if task != nil {
			node.setHasSlave(true)
			wg.Add(1)
			task.Assign(func() {
				defer wg.Done()
				dispatch(sib, a)
			})
		} else {
			dispatch(sib, a)
		}
	}
	wg.Wait()
	node.setHasSlave(false)

	for _, sib := range pending {
		if node.Stopped() {
			break
		}
		a := node.Alpha()
		score := sib.Research(a)
		node.UpdateBest(score, sib.Move)
		if score > a {
			node.RaiseAlpha(score)
		}
		if score >= node.Beta {
			node.Stop()
			break
		}
	}
}
