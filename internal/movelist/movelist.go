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

// Package movelist provides the candidate-move container the search
// iterates and reorders while walking a node: a fixed-capacity array
// of Move plus a next-index chain standing in for the original's
// intrusive pointer list (see spec design notes on intrusive lists —
// a small-vector of indices is an accepted substitute as long as
// iteration order and best-move promotion are preserved).
package movelist

import "github.com/frankkopp/edaxgo/internal/bits"

// MaxMove bounds the number of simultaneously legal moves in any
// reachable Othello position (there are never more than 34).
const MaxMove = 34

// NoLink marks the end of the chain, mirroring a nil "next" pointer.
const NoLink = -1

// Move is a single candidate move: the square played, the set of
// opponent discs it flips, its ordering score, the "cost" used for
// tie-breaking against shallow-search bonuses, and the index of the
// next move in iteration order (NoLink if last).
type Move struct {
	Square  int
	Flipped uint64
	Score   int32
	Cost    uint32
	Next    int
}

// MoveList is a head sentinel plus up to MaxMove moves, threaded
// through the Next index chain. Moves are stored in an array and
// never reallocated during a single node's lifetime: Add appends to
// the backing array and relinks Next pointers, matching the
// intrusive-list iteration and removal semantics the search relies on
// (§4.6 move ordering, §4.7 PVS loop).
type MoveList struct {
	moves [MaxMove]Move
	n     int
	head  int
}

// NewMoveList returns an empty move list.
func NewMoveList() *MoveList {
	return &MoveList{head: NoLink}
}

// Reset empties the list for reuse at a new search node, avoiding a
// fresh allocation per node.
func (ml *MoveList) Reset() {
	ml.n = 0
	ml.head = NoLink
}

// Len returns the number of moves currently stored.
func (ml *MoveList) Len() int {
	return ml.n
}

// Add appends a move to the end of the list, threading it onto the
// Next chain. Panics if the list is already at MaxMove, mirroring the
// teacher's MoveSlice panic-on-empty-pop convention for programmer
// errors rather than silently dropping a move.
func (ml *MoveList) Add(square int, flipped uint64, score int32, cost uint32) {
	if ml.n >= MaxMove {
		panic("movelist: Add() exceeds MaxMove")
	}
	idx := ml.n
	ml.moves[idx] = Move{Square: square, Flipped: flipped, Score: score, Cost: cost, Next: NoLink}
	ml.n++
	if ml.head == NoLink {
		ml.head = idx
		return
	}
	last := ml.head
	for ml.moves[last].Next != NoLink {
		last = ml.moves[last].Next
	}
	ml.moves[last].Next = idx
}

// GenerateFrom populates the list from a legal-moves bitset, with
// Flipped computed via the supplied flip function (normally
// board.Flip). Score/Cost are left at zero for the caller's move
// ordering pass to fill in.
func (ml *MoveList) GenerateFrom(moves uint64, flip func(sq int, p, o uint64) uint64, p, o uint64) {
	ml.Reset()
	rest := moves
	for rest != 0 {
		sq := bits.BitScanForward(rest)
		rest &= rest - 1
		ml.Add(sq, flip(sq, p, o), 0, 0)
	}
}

// At returns a pointer to the move at array index i (not list
// position), letting move-ordering code mutate Score/Cost in place.
func (ml *MoveList) At(i int) *Move {
	return &ml.moves[i]
}

// Head returns the array index of the first move in iteration order,
// or NoLink if the list is empty.
func (ml *MoveList) Head() int {
	return ml.head
}

// NextIndex returns the array index following i in the chain, or
// NoLink if i is the last move.
func (ml *MoveList) NextIndex(i int) int {
	return ml.moves[i].Next
}

// SetBestMove moves the move at array index best to the front of the
// chain without reallocating, so the caller's "try the hash move
// first" ordering rule (§4.6) can be satisfied in O(n) rather than by
// re-sorting the whole list.
func (ml *MoveList) SetBestMove(best int) {
	if ml.head == best {
		return
	}
	prev := ml.head
	for prev != NoLink && ml.moves[prev].Next != best {
		prev = ml.moves[prev].Next
	}
	if prev == NoLink {
		return // best is not a member of this list
	}
	ml.moves[prev].Next = ml.moves[best].Next
	ml.moves[best].Next = ml.head
	ml.head = best
}

// SortByScoreDescending reorders the Next chain so moves are visited
// highest-Score-first, stable on ties (ties keep their relative array
// order). §4.6 only requires the first few moves to be in exact order;
// this sorts the whole chain for simplicity, which is cheap at
// MaxMove=34.
func (ml *MoveList) SortByScoreDescending() {
	order := make([]int, 0, ml.n)
	for i := 0; i < ml.n; i++ {
		order = append(order, i)
	}
	// stable insertion sort: n <= 34, and stability matters for tied scores.
	for i := 1; i < len(order); i++ {
		j := i
		for j > 0 && ml.moves[order[j-1]].Score < ml.moves[order[j]].Score {
			order[j-1], order[j] = order[j], order[j-1]
			j--
		}
	}
	if len(order) == 0 {
		ml.head = NoLink
		return
	}
	ml.head = order[0]
	for i := 0; i < len(order)-1; i++ {
		ml.moves[order[i]].Next = order[i+1]
	}
	ml.moves[order[len(order)-1]].Next = NoLink
}

// MoveNextBest finds the highest-Score move remaining after array
// index prevOfFrom in the chain (NoLink to search from the head) and
// splices it to be the very next move after prevOfFrom, so the caller
// can then simply follow Next to visit it. Used when only a prefix of
// the list has been fully ordered and the rest is selected lazily
// (§4.6 "later moves may be selected-best on demand").
func (ml *MoveList) MoveNextBest(prevOfFrom int) (idx int, ok bool) {
	start := ml.head
	if prevOfFrom != NoLink {
		start = ml.moves[prevOfFrom].Next
	}
	if start == NoLink {
		return NoLink, false
	}
	bestPrev := NoLink
	best := start
	prev := start
	cur := ml.moves[start].Next
	for cur != NoLink {
		if ml.moves[cur].Score > ml.moves[best].Score {
			best = cur
			bestPrev = prev
		}
		prev = cur
		cur = ml.moves[cur].Next
	}
	if bestPrev == NoLink {
		// best is already first from prevOfFrom; nothing to splice.
		return best, true
	}
	ml.moves[bestPrev].Next = ml.moves[best].Next
	ml.moves[best].Next = start
	if prevOfFrom == NoLink {
		ml.head = best
	} else {
		ml.moves[prevOfFrom].Next = best
	}
	return best, true
}
