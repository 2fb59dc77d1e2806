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

// Package board implements the Othello bitboard substrate: a Position
// is a pair of 64-bit sets (P, O) for the player to move and the
// opponent, plus move generation, flip computation, apply/undo,
// canonicalization and simple text I/O.
package board

import (
	"fmt"
	"strings"

	"github.com/frankkopp/edaxgo/internal/assert"
	"github.com/frankkopp/edaxgo/internal/bits"
)

// Key is a 64-bit position hash derived from (P, O) via CRC32C.
type Key uint64

const (
	// PassMove is the synthetic "pass" move (spec square index 64).
	PassMove = bits.PassSquare
	// NoMove is the "no move" sentinel (spec square index 65).
	NoMove = bits.NoSquare
)

// direction shift amounts, matched with the wrap-around mask that must
// be applied after the shift. North/South need no mask: bits that run
// off the top/bottom of the board are simply discarded by the uint64
// shift. East/West/NE/SW/NW/SE wrap into the opposite file and must be
// masked out.
var dirShift = [8]int{1, -1, 8, -8, 9, -9, 7, -7}

const (
	fileA = uint64(0x0101010101010101)
	fileH = uint64(0x8080808080808080)
)

var dirMask = [8]uint64{
	^fileA, ^fileH, ^uint64(0), ^uint64(0), ^fileA, ^fileH, ^fileH, ^fileA,
}

func shiftDir(b uint64, i int) uint64 {
	d := dirShift[i]
	if d > 0 {
		return (b << uint(d)) & dirMask[i]
	}
	return (b >> uint(-d)) & dirMask[i]
}

// GetMoves returns the bitset of legal moves for the side to move.
// Parallel-prefix ("dumb7fill") directional outflank search: for each
// of the 8 ray directions, run over opponent discs from an empty
// square and land on a player disc.
func GetMoves(p, o uint64) uint64 {
	empty := ^(p | o)
	var moves uint64
	for i := 0; i < 8; i++ {
		x := shiftDir(p, i) & o
		for k := 0; k < 5; k++ {
			x |= shiftDir(x, i) & o
		}
		moves |= shiftDir(x, i) & empty
	}
	return moves
}

// Flip returns the set of opponent discs captured by playing sq. It
// returns 0 iff the move is illegal (including sq being pass/nomove or
// already occupied).
func Flip(sq int, p, o uint64) uint64 {
	if sq == PassMove || sq == NoMove {
		return 0
	}
	sqBit := bits.Bit(sq)
	if sqBit&(p|o) != 0 {
		return 0
	}
	var flipped uint64
	for i := 0; i < 8; i++ {
		x := shiftDir(sqBit, i) & o
		for k := 0; k < 5; k++ {
			x |= shiftDir(x, i) & o
		}
		if shiftDir(x, i)&p != 0 {
			flipped |= x
		}
	}
	return flipped
}

// CanMove reports whether the side to move has at least one legal move.
func CanMove(p, o uint64) bool {
	return GetMoves(p, o) != 0
}

// IsGameOver reports whether neither side has a legal move.
func IsGameOver(p, o uint64) bool {
	return !CanMove(p, o) && !CanMove(o, p)
}

// GetMobility returns the number of legal moves for the side to move.
func GetMobility(p, o uint64) int {
	return bits.PopCount(GetMoves(p, o))
}

// cornerMask is the bitset of the four corner squares (A1, H1, A8, H8).
const cornerMask = uint64(1) | uint64(1)<<7 | uint64(1)<<56 | uint64(1)<<63

// GetWeightedMobility counts each legal-move bit once, with corner
// moves counted twice.
func GetWeightedMobility(p, o uint64) int {
	moves := GetMoves(p, o)
	return bits.PopCount(moves) + bits.PopCount(moves&cornerMask)
}

// neighbourMask is precomputed once: the up-to-8 squares adjacent to
// each square, used both as a legality pre-filter and by potential
// mobility.
var neighbourMask [64]uint64

func init() {
	for sq := 0; sq < 64; sq++ {
		b := bits.Bit(sq)
		var n uint64
		for i := 0; i < 8; i++ {
			n |= shiftDir(b, i)
		}
		neighbourMask[sq] = n
	}
}

// Neighbour returns the bitmask of squares adjacent to sq.
func Neighbour(sq int) uint64 {
	return neighbourMask[sq]
}

// GetPotentialMobility counts empty squares adjacent to an opponent
// disc, with corner squares weighted twice.
func GetPotentialMobility(p, o uint64) int {
	empty := ^(p | o)
	var candidates uint64
	rest := o
	for rest != 0 {
		sq := bits.BitScanForward(rest)
		rest &= rest - 1
		candidates |= neighbourMask[sq]
	}
	candidates &= empty
	return bits.PopCount(candidates) + bits.PopCount(candidates&cornerMask)
}

// mask6x6 restricts the board to the central 6x6 region used by the
// 6x6 test mode (spec section 4.2).
const mask6x6 = uint64(0x007e7e7e7e7e7e00)

// GetMoves6x6 is the 6x6 board variant of GetMoves: legal moves are
// restricted to the central region.
func GetMoves6x6(p, o uint64) uint64 {
	return GetMoves(p, o) & mask6x6
}

// Flip6x6 is the 6x6 board variant of Flip.
func Flip6x6(sq int, p, o uint64) uint64 {
	if bits.Bit(sq)&mask6x6 == 0 && sq != PassMove && sq != NoMove {
		return 0
	}
	return Flip(sq, p, o)
}

// undoEntry records enough to reverse one applied move.
type undoEntry struct {
	square  int
	flipped uint64
	pass    bool
}

// Position is a single Othello position: two bitboards, P (the side to
// move) and O (the opponent), plus an undo stack of applied moves.
// Invariant: P & O == 0.
type Position struct {
	P, O      uint64
	moveStack []undoEntry
}

// NewPosition returns the canonical Othello starting position:
// D4=O, E4=X, D5=X, E5=O, side to move = X (black).
func NewPosition() *Position {
	const (
		d4 = 3*8 + 3
		e4 = 3*8 + 4
		d5 = 4*8 + 3
		e5 = 4*8 + 4
	)
	return &Position{
		P: bits.Bit(e4) | bits.Bit(d5), // X discs
		O: bits.Bit(d4) | bits.Bit(e5), // O discs
	}
}

// Clone returns a deep copy of p (the move stack is copied too, so
// Clone() followed by UndoMove() on the copy never affects p).
func (p *Position) Clone() *Position {
	cp := &Position{P: p.P, O: p.O}
	if len(p.moveStack) > 0 {
		cp.moveStack = make([]undoEntry, len(p.moveStack))
		copy(cp.moveStack, p.moveStack)
	}
	return cp
}

// GetMoves returns the legal moves bitset for the side to move.
func (p *Position) GetMoves() uint64 {
	return GetMoves(p.P, p.O)
}

// CanMove reports whether the side to move has a legal move.
func (p *Position) CanMove() bool {
	return CanMove(p.P, p.O)
}

// IsGameOver reports whether neither side can move.
func (p *Position) IsGameOver() bool {
	return IsGameOver(p.P, p.O)
}

// Empties returns the bitset of empty squares.
func (p *Position) Empties() uint64 {
	return ^(p.P | p.O)
}

// EmptyCount returns the number of empty squares.
func (p *Position) EmptyCount() int {
	return bits.PopCount(p.Empties())
}

// DoMove applies sq (a legal move square, or PassMove) and pushes an
// undo record. Passing PassMove simply swaps P and O. The caller is
// responsible for only ever calling DoMove with a square drawn from
// GetMoves() (or PassMove when GetMoves()==0); DoMove does not
// re-validate legality, mirroring Flip()'s narrow contract.
func (p *Position) DoMove(sq int) {
	if sq == PassMove {
		p.P, p.O = p.O, p.P
		p.moveStack = append(p.moveStack, undoEntry{square: PassMove, pass: true})
		return
	}
	flipped := Flip(sq, p.P, p.O)
	newP := p.O ^ flipped
	newO := p.P ^ flipped ^ bits.Bit(sq)
	p.P, p.O = newP, newO
	p.moveStack = append(p.moveStack, undoEntry{square: sq, flipped: flipped})
	if assert.DEBUG {
		assert.Assert(p.P&p.O == 0, "board: DoMove(%d) broke the P&O==0 invariant", sq)
	}
}

// UndoMove reverses the most recently applied move. Panics if the
// stack is empty, mirroring moveslice.PopBack's contract.
func (p *Position) UndoMove() {
	n := len(p.moveStack)
	if n == 0 {
		panic("board: UndoMove() called with empty move stack")
	}
	last := p.moveStack[n-1]
	p.moveStack = p.moveStack[:n-1]
	if last.pass {
		p.P, p.O = p.O, p.P
		return
	}
	// after DoMove, P = old O ^ flipped and O = old P ^ flipped ^ bit(sq);
	// we invert DoMove's transform.
	prevP := p.O ^ last.flipped ^ bits.Bit(last.square)
	prevO := p.P ^ last.flipped
	p.P, p.O = prevP, prevO
}

// LastMove returns the square of the most recently applied move, or
// NoMove if the stack is empty.
func (p *Position) LastMove() int {
	if len(p.moveStack) == 0 {
		return NoMove
	}
	return p.moveStack[len(p.moveStack)-1].square
}

// DiscDiff returns popcount(P) - popcount(O), the raw disc difference
// from the perspective of the side to move, ignoring empty squares.
func (p *Position) DiscDiff() int {
	return bits.PopCount(p.P) - bits.PopCount(p.O)
}

// FinalScore returns the exact game-ending score (from the perspective
// of the side to move) once IsGameOver() holds: remaining empty
// squares are awarded to whichever side holds the majority of discs
// (the standard Othello end-of-game scoring rule); a tie in discs
// leaves the empties unscored.
func (p *Position) FinalScore() int {
	diff := p.DiscDiff()
	empties := p.EmptyCount()
	switch {
	case diff > 0:
		return diff + empties
	case diff < 0:
		return diff - empties
	default:
		return 0
	}
}

// Hashcode derives a 64-bit position key from (P, O) via CRC32C,
// accumulating both words into two independently-seeded 32-bit halves
// per spec 4.5. Board equality is still checked explicitly by callers;
// this code is never sole proof of identity.
func (p *Position) Hashcode() Key {
	hi := bits.CRC32CWord(0xFFFFFFFF, p.P)
	hi = bits.CRC32CWord(hi, p.O)
	lo := bits.CRC32CWord(0x12345678, p.O)
	lo = bits.CRC32CWord(lo, p.P)
	return Key(uint64(hi)<<32 | uint64(lo))
}

// Unique returns the canonical (lexicographically smallest) symmetry
// of p together with the symmetry index that produced it.
func (p *Position) Unique() (canonical Position, sym int) {
	cp, co, s := bits.Unique(p.P, p.O)
	return Position{P: cp, O: co}, s
}

// String renders the position as the 65-character board string of
// spec section 6: 64 square values from A1 row-major ('X'=player to
// move, 'O'=opponent, '-'=empty), followed by one side-to-move
// character. Since P is always the side to move, the trailing
// character is always 'X'; it exists so the format round-trips when
// fed back through ParseBoardString with a different side to move.
func (p *Position) String() string {
	var sb strings.Builder
	for sq := 0; sq < 64; sq++ {
		b := bits.Bit(sq)
		switch {
		case p.P&b != 0:
			sb.WriteByte('X')
		case p.O&b != 0:
			sb.WriteByte('O')
		default:
			sb.WriteByte('-')
		}
	}
	sb.WriteByte('X')
	return sb.String()
}

// ParseBoardString parses the 65-character board string format of
// spec section 6. The 65th character ('X' or 'O') tells us which
// color is the side to move; the returned Position's P is always that
// color's discs so that P invariably represents "the side to move".
func ParseBoardString(s string) (*Position, error) {
	if len(s) != 65 {
		return nil, fmt.Errorf("board: invalid board string length %d, want 65", len(s))
	}
	var black, white uint64
	for sq := 0; sq < 64; sq++ {
		switch s[sq] {
		case 'X', 'x':
			black |= bits.Bit(sq)
		case 'O', 'o':
			white |= bits.Bit(sq)
		case '-', '.':
			// empty
		default:
			return nil, fmt.Errorf("board: invalid square character %q at index %d", s[sq], sq)
		}
	}
	if black&white != 0 {
		return nil, fmt.Errorf("board: overlapping discs in board string")
	}
	switch s[64] {
	case 'X', 'x':
		return &Position{P: black, O: white}, nil
	case 'O', 'o':
		return &Position{P: white, O: black}, nil
	default:
		return nil, fmt.Errorf("board: invalid side-to-move character %q", s[64])
	}
}

// FEN renders a light FEN-like form of p: the same 64 square
// characters as String, followed by a space and a single side-to-move
// character. Othello has no standard FEN; this exists only because
// spec section 6 names a FEN/board-string pair of core-facing
// contracts, and some front ends prefer the space-delimited form over
// the bare 65-character one.
func (p *Position) FEN() string {
	s := p.String()
	return s[:64] + " " + s[64:]
}

// ParseFEN parses the space-delimited form produced by FEN.
func ParseFEN(s string) (*Position, error) {
	if len(s) != 66 || s[64] != ' ' {
		return nil, fmt.Errorf("board: invalid FEN %q", s)
	}
	return ParseBoardString(s[:64] + s[65:])
}

var fileNames = "abcdefgh"

// MoveString renders a move square as its two-character algebraic
// form ("d3"), or "pa" for pass.
func MoveString(sq int) string {
	if sq == PassMove {
		return "pa"
	}
	if sq < 0 || sq > 63 {
		return "--"
	}
	file := sq % 8
	rank := sq/8 + 1
	return fmt.Sprintf("%c%d", fileNames[file], rank)
}

// ParseMoveString parses a two-character algebraic move ("d3") or
// "pa"/"PA" for pass.
func ParseMoveString(s string) (int, error) {
	if s == "pa" || s == "PA" {
		return PassMove, nil
	}
	if len(s) != 2 {
		return NoMove, fmt.Errorf("board: invalid move string %q", s)
	}
	file := strings.IndexByte(fileNames, s[0]|0x20)
	if file < 0 {
		return NoMove, fmt.Errorf("board: invalid file in move string %q", s)
	}
	if s[1] < '1' || s[1] > '8' {
		return NoMove, fmt.Errorf("board: invalid rank in move string %q", s)
	}
	rank := int(s[1] - '1')
	return rank*8 + file, nil
}
