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

// Package stability computes lower bounds on the number of discs that
// can never be flipped for the remainder of a game. The search uses
// this as a pruning signal: once the opponent holds enough stable
// discs, the final score is already bounded no matter how the rest of
// the game plays out.
package stability

import (
	"github.com/frankkopp/edaxgo/internal/bits"
)

// the four edge lines, as bit masks, and the squares that belong to
// each, used to build the A1..H1-style edge lookup independently of
// which edge (top/bottom/left/right) is being queried. Edges are
// mapped onto the "bottom row" byte shape the edgeStable table is
// indexed by via the same mirror/transpose primitives board geometry
// already provides.
const (
	rowMask = uint64(0xFF)
)

// edgeStable[edgeP][edgeO] is a precomputed 256x256 table mapping one
// edge's (player-bits, opponent-bits) byte pair to the mask of O-discs
// on that edge that are stable (never flippable for the rest of the
// game, considering only that single line of 8 squares).
//
// It is built once at init time by a fixed-point iteration restricted
// to a single 8-square line. Only a completely filled edge contributes:
// an edge with any empty square maps to 0. On a full edge an O-disc
// stays in the stable set while both of its line neighbours (or the
// board boundary) are still in it; since non-O squares are never in
// the set, only an edge held entirely by O yields stable discs here.
var edgeStable [256][256]uint8

func init() {
	for p := 0; p < 256; p++ {
		for o := 0; o < 256; o++ {
			edgeStable[p][o] = computeEdgeStable(uint8(p), uint8(o))
		}
	}
}

// computeEdgeStable derives the stable-O mask for one edge line by
// fixed-point iteration: start from "full line is automatically
// stable", then relax squares whose two line-neighbours (or the board
// boundary) are themselves stable same-color discs.
func computeEdgeStable(p, o uint8) uint8 {
	full := p | o
	if full != 0xFF {
		// an edge with empty squares has no discs trivially protected
		// by full-line closure; interior fixed point handles these via
		// the general solver, so the edge table only contributes the
		// full-line case.
		return 0
	}
	stable := o
	for {
		next := stable
		for sq := 0; sq < 8; sq++ {
			bit := uint8(1) << uint(sq)
			if o&bit == 0 {
				next &^= bit
				continue
			}
			leftStable := sq == 0 || stable&(uint8(1)<<uint(sq-1)) != 0
			rightStable := sq == 7 || stable&(uint8(1)<<uint(sq+1)) != 0
			if !(leftStable && rightStable) {
				next &^= bit
			}
		}
		if next == stable {
			break
		}
		stable = next
	}
	return stable
}

// edge extraction: each of the 4 board edges read out as an 8-bit
// line, ordered A1..H1 (bottom), A8..H8 (top), A1..A8 (left), H1..H8
// (right), so the same 256x256 table serves all four after a
// transpose for the verticals.
func bottomEdge(b uint64) uint8 { return uint8(b & rowMask) }
func topEdge(b uint64) uint8    { return uint8(b >> 56) }

func leftEdge(b uint64) uint8 {
	t := bits.Transpose(b)
	return uint8(t & rowMask)
}

func rightEdge(b uint64) uint8 {
	t := bits.Transpose(b)
	return uint8(t >> 56)
}

func bottomEdgeFromByte(v uint8) uint64 { return uint64(v) }
func topEdgeFromByte(v uint8) uint64    { return uint64(v) << 56 }

func leftEdgeFromByte(v uint8) uint64 {
	return bits.Transpose(uint64(v))
}

func rightEdgeFromByte(v uint8) uint64 {
	return bits.Transpose(uint64(v) << 56)
}

// GetEdgeStability returns the bitset of O-discs on the four board
// edges that are stable considering only edge-line full-closure.
func GetEdgeStability(p, o uint64) uint64 {
	var stable uint64
	stable |= bottomEdgeFromByte(edgeStable[bottomEdge(p)][bottomEdge(o)])
	stable |= topEdgeFromByte(edgeStable[topEdge(p)][topEdge(o)])
	stable |= leftEdgeFromByte(edgeStable[leftEdge(p)][leftEdge(o)])
	stable |= rightEdgeFromByte(edgeStable[rightEdge(p)][rightEdge(o)])
	return stable & o
}

// cornerMask is the four corners, which are always stable the instant
// an opponent disc occupies them (nothing can ever outflank a corner).
const cornerMask = uint64(1) | uint64(1)<<7 | uint64(1)<<56 | uint64(1)<<63

// GetCornerStability is the cheap special case of edge stability:
// corners are unconditionally stable once occupied.
func GetCornerStability(o uint64) uint64 {
	return o & cornerMask
}

// the 4 full-line directions used by the interior fixed point: each
// direction pairs a "positive" and "negative" ray shift so a square's
// line is fully determined by looking both ways.
var lineDirShift = [4]int{1, 8, 9, 7}

const (
	fileA = uint64(0x0101010101010101)
	fileH = uint64(0x8080808080808080)
)

// GetAllFullLines returns, for each of the 4 line directions, whether
// every square on that square's line (horizontal, vertical, the two
// diagonals) is occupied (by either color); the returned bitset is
// the AND across all 4 directions, i.e. squares that lie on a
// completely-filled line in every orientation simultaneously.
func GetAllFullLines(occupied uint64) uint64 {
	full := fullHorizontal(occupied) & fullVertical(occupied) & fullDiagonalA1H8(occupied) & fullDiagonalA8H1(occupied)
	return full
}

func fullHorizontal(occ uint64) uint64 {
	var full uint64
	for r := 0; r < 8; r++ {
		row := (occ >> uint(8*r)) & rowMask
		if row == rowMask {
			full |= rowMask << uint(8*r)
		}
	}
	return full
}

func fullVertical(occ uint64) uint64 {
	var full uint64
	for c := 0; c < 8; c++ {
		col := (occ >> uint(c)) & fileA
		if col == fileA {
			full |= fileA << uint(c)
		}
	}
	return full
}

func fullDiagonalA1H8(occ uint64) uint64 {
	var full uint64
	for d := -7; d <= 7; d++ {
		mask := diagMaskA1H8(d)
		if mask == 0 {
			continue
		}
		if occ&mask == mask {
			full |= mask
		}
	}
	return full
}

func fullDiagonalA8H1(occ uint64) uint64 {
	var full uint64
	for d := 0; d <= 14; d++ {
		mask := diagMaskA8H1(d)
		if mask == 0 {
			continue
		}
		if occ&mask == mask {
			full |= mask
		}
	}
	return full
}

func diagMaskA1H8(d int) uint64 {
	var mask uint64
	for sq := 0; sq < 64; sq++ {
		row, col := sq/8, sq%8
		if col-row == d {
			mask |= uint64(1) << uint(sq)
		}
	}
	return mask
}

func diagMaskA8H1(d int) uint64 {
	var mask uint64
	for sq := 0; sq < 64; sq++ {
		row, col := sq/8, sq%8
		if row+col == d {
			mask |= uint64(1) << uint(sq)
		}
	}
	return mask
}

// GetStability returns a lower bound on the number of O-discs stable
// for the rest of the game: edge stability plus an interior fixed
// point over the 4 line directions, iterated until no more squares
// can be proven stable (at most a handful of passes in practice).
//
// A non-edge O-disc is interior-stable once either all 4 of its lines
// are completely filled, or in every one of the 4 line directions it is
// flanked on both sides by already-known-stable same-color discs (see
// flankedOrEdge). A disc whose lines are full in some directions and
// flanked only in the others is not counted.
func GetStability(p, o uint64) int {
	return bits.PopCount(stableMask(p, o))
}

func stableMask(p, o uint64) uint64 {
	occupied := p | o
	fullLines := GetAllFullLines(occupied)
	stable := GetEdgeStability(p, o) | GetCornerStability(o) | (fullLines & o)

	for {
		next := stable
		candidates := o &^ stable
		rest := candidates
		for rest != 0 {
			sq := bits.BitScanForward(rest)
			rest &= rest - 1
			if isInteriorStable(sq, o, stable, fullLines) {
				next |= bits.Bit(sq)
			}
		}
		if next == stable {
			break
		}
		stable = next
	}
	return stable
}

// isInteriorStable checks the 4-direction flanking condition for a
// single square, given the stable set known so far.
func isInteriorStable(sq int, o, stable, fullLines uint64) bool {
	sqBit := bits.Bit(sq)
	if fullLines&sqBit != 0 {
		return true
	}
	row, col := sq/8, sq%8
	// horizontal
	if !flankedOrEdge(sq, 1, -1, o, stable, row, col) {
		return false
	}
	// vertical
	if !flankedOrEdge(sq, 8, -8, o, stable, row, col) {
		return false
	}
	// diagonal A1-H8 direction
	if !flankedOrEdge(sq, 9, -9, o, stable, row, col) {
		return false
	}
	// diagonal A8-H1 direction
	if !flankedOrEdge(sq, 7, -7, o, stable, row, col) {
		return false
	}
	return true
}

// flankedOrEdge reports whether, walking from sq in direction +d and
// -d, each side either runs off the board or reaches an already
// stable same-color (o) disc before reaching an empty square or an
// opposite-color disc.
func flankedOrEdge(sq, posDir, negDir int, o, stable uint64, row, col int) bool {
	return rayIsClosed(sq, posDir, o, stable, row, col) && rayIsClosed(sq, negDir, o, stable, row, col)
}

func rayIsClosed(sq, dir int, o, stable uint64, row, col int) bool {
	r, c := row, col
	cur := sq
	for {
		nr, nc, ok := stepRC(r, c, dir)
		if !ok {
			return true // ran off the board: this side is closed
		}
		_ = cur
		next := nr*8 + nc
		nb := bits.Bit(next)
		if o&nb == 0 {
			return false // empty or opponent disc: this side is open
		}
		if stable&nb != 0 {
			return true
		}
		r, c, cur = nr, nc, next
	}
}

func stepRC(row, col, dir int) (int, int, bool) {
	switch dir {
	case 1:
		if col == 7 {
			return 0, 0, false
		}
		return row, col + 1, true
	case -1:
		if col == 0 {
			return 0, 0, false
		}
		return row, col - 1, true
	case 8:
		if row == 7 {
			return 0, 0, false
		}
		return row + 1, col, true
	case -8:
		if row == 0 {
			return 0, 0, false
		}
		return row - 1, col, true
	case 9:
		if row == 7 || col == 7 {
			return 0, 0, false
		}
		return row + 1, col + 1, true
	case -9:
		if row == 0 || col == 0 {
			return 0, 0, false
		}
		return row - 1, col - 1, true
	case 7:
		if row == 7 || col == 0 {
			return 0, 0, false
		}
		return row + 1, col - 1, true
	case -7:
		if row == 0 || col == 7 {
			return 0, 0, false
		}
		return row - 1, col + 1, true
	}
	return 0, 0, false
}
