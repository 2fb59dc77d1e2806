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

// Package empties maintains a doubly-linked list of empty squares for
// the exact endgame search, together with the 4-bit quadrant parity
// that search's move ordering reads. The search still generates moves
// with the board's full move generator at every ply; the list supplies
// parity information, not the moves.
package empties

import "github.com/frankkopp/edaxgo/internal/bits"

// link node indices mirror the board's own square-index space
// (64=pass, 65=nomove) so EmptiesList can be indexed uniformly
// alongside a Position's square numbering. NOMOVE is the list's
// head/tail sentinel; the PASS node exists but is never linked.
const (
	Pass   = 64
	NoMove = 65
	// NumLinks is 66: one node per board square plus the PASS and
	// NOMOVE nodes.
	NumLinks = 66
)

// link is one node of the doubly-linked list: the square it
// represents, its neighbours in list order, and the quadrant (0..3)
// that square belongs to for parity bookkeeping.
type link struct {
	square   int
	prev     int
	next     int
	quadrant int
}

// quadrantOf maps a square to one of the four 4x4 quadrants: bit 0 of
// the result is the column half, bit 1 is the row half.
func quadrantOf(sq int) int {
	row, col := sq/8, sq%8
	q := 0
	if col >= 4 {
		q |= 1
	}
	if row >= 4 {
		q |= 2
	}
	return q
}

// List is a doubly-linked list of the board's empty squares in
// increasing square order, anchored at a NoMove head/tail sentinel. It also tracks the
// 4-bit occupancy parity of each quadrant, used by endgame move
// ordering to prefer squares in odd-parity quadrants (§4.8).
type List struct {
	links  [NumLinks]link
	parity int
}

// NewList builds an empties list from the bitset of empty squares,
// threaded in increasing square order (callers reorder via
// Remove/Reinsert-on-undo as the search descends; the initial order
// only matters as the starting point parity-based move ordering sorts
// from).
func NewList(empties uint64) *List {
	l := &List{}
	for i := range l.links {
		l.links[i] = link{square: i, prev: NoMove, next: NoMove, quadrant: -1}
	}
	prev := NoMove
	rest := empties
	for rest != 0 {
		sq := bits.BitScanForward(rest)
		rest &= rest - 1
		l.links[sq].quadrant = quadrantOf(sq)
		l.links[prev].next = sq
		l.links[sq].prev = prev
		prev = sq
		l.parity ^= 1 << uint(l.links[sq].quadrant)
	}
	l.links[prev].next = NoMove
	l.links[NoMove].prev = prev
	return l
}

// First returns the first empty square in list order, or NoMove if
// the list is empty.
func (l *List) First() int {
	return l.links[NoMove].next
}

// Next returns the square following sq in list order.
func (l *List) Next(sq int) int {
	return l.links[sq].next
}

// Parity returns the current 4-bit quadrant-occupancy parity.
func (l *List) Parity() int {
	return l.parity
}

// QuadrantOf returns the quadrant (0..3) of square sq.
func (l *List) QuadrantOf(sq int) int {
	return l.links[sq].quadrant
}

// IsOddParity reports whether sq's quadrant currently has odd
// occupancy parity, the endgame move-ordering preference signal.
func (l *List) IsOddParity(sq int) bool {
	q := l.links[sq].quadrant
	return l.parity&(1<<uint(q)) != 0
}

// Remove unlinks sq from the list (the square has just been played)
// and flips its quadrant's parity bit. The node's prev/next are left
// intact so Restore can relink it without searching.
func (l *List) Remove(sq int) {
	n := &l.links[sq]
	l.links[n.prev].next = n.next
	l.links[n.next].prev = n.prev
	l.parity ^= 1 << uint(n.quadrant)
}

// Restore relinks sq back into the list (undoing the matching
// Remove), restoring its quadrant's parity bit. Must be called in
// exact LIFO order with Remove, matching the search's move stack
// discipline.
func (l *List) Restore(sq int) {
	n := &l.links[sq]
	l.links[n.prev].next = sq
	l.links[n.next].prev = sq
	l.parity ^= 1 << uint(n.quadrant)
}

// Count returns the number of empty squares currently linked.
func (l *List) Count() int {
	n := 0
	for sq := l.First(); sq != NoMove; sq = l.Next(sq) {
		n++
	}
	return n
}
