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

// Package eval implements the incremental feature-vector evaluator:
// InitEval/Update/Restore/Pass/Score mirror the evaluator lifecycle
// FrankyGo's evaluator.Evaluator exposes to its search (InitEval then
// Evaluate per node), adapted to Othello's affine, sign-flipping
// feature model (spec 4.4) instead of chess material/PST/pawn terms.
package eval

import (
	"github.com/frankkopp/edaxgo/internal/bits"
)

// NumGroups partitions the 64 squares into positional-value classes;
// the evaluator's feature vector has one running sum per class rather
// than one per square, which is what makes the update affine and
// cheap: moving a disc only ever changes a handful of group sums.
const NumGroups = 6

const (
	groupCorner = iota // A1,H1,A8,H8
	groupX             // diagonal-adjacent-to-corner (B2-type) squares
	groupC             // orthogonally-adjacent-to-corner (B1-type) squares
	groupEdge          // remaining edge squares (not corner/C)
	groupInner         // squares one ring in from the edge
	groupCenter        // the central 4x4 minus the inner ring
)

// squareGroup classifies every square once at init time.
var squareGroup [64]int

func init() {
	for sq := 0; sq < 64; sq++ {
		squareGroup[sq] = classify(sq)
	}
}

func classify(sq int) int {
	row, col := sq/8, sq%8
	isCorner := (row == 0 || row == 7) && (col == 0 || col == 7)
	if isCorner {
		return groupCorner
	}
	isCornerAdjRow := row == 0 || row == 7
	isCornerAdjCol := col == 0 || col == 7
	nearCornerRow := row == 1 || row == 6
	nearCornerCol := col == 1 || col == 6
	if nearCornerRow && nearCornerCol {
		return groupX
	}
	if (isCornerAdjRow && nearCornerCol) || (isCornerAdjCol && nearCornerRow) {
		return groupC
	}
	if isCornerAdjRow || isCornerAdjCol {
		return groupEdge
	}
	if row == 1 || row == 6 || col == 1 || col == 6 {
		return groupInner
	}
	return groupCenter
}

// baseWeight is the phase-independent per-disc contribution of each
// group, used to scale a feature's delta on every incremental update;
// the phase-dependent weighting happens later, in Score, via the
// loaded Weights table. Values follow the classical static Othello
// piece-square ranking (corners best, X-squares worst).
var baseWeight = [NumGroups]int32{
	groupCorner: 20,
	groupX:      -8,
	groupC:      -4,
	groupEdge:   5,
	groupInner:  1,
	groupCenter: 2,
}

// GroupOf exposes the square classification for callers (e.g. move
// ordering's square positional-value term, spec 4.6).
func GroupOf(sq int) int {
	if sq < 0 || sq > 63 {
		return groupCenter
	}
	return squareGroup[sq]
}

// undoEntry lets Restore exactly reverse one Update/Pass without
// recomputation, mirroring board.Position's own move/undo stack idiom.
type undoEntry struct {
	signBefore int32
	isPass     bool
}

// Eval is the per-search-node incremental evaluator state. feature[g]
// is the running sum, from a fixed absolute-color reference, of
// baseWeight[g] for every group-g square that reference color
// occupies, minus the same for the opponent. sign flips every ply
// (move or pass) and turns that absolute sum into "from the side to
// move's perspective" at Score time, exactly matching spec 4.4's
// "single bit of eval state tracks n_empties parity".
type Eval struct {
	feature   [NumGroups]int32
	sign      int32
	weights   *Weights
	undoStack []undoEntry
}

// New returns an evaluator using w (use DefaultWeights() if no
// external weight file is configured).
func New(w *Weights) *Eval {
	return &Eval{weights: w, sign: 1}
}

// InitEval (eval_set) recomputes the feature vector from scratch for
// position (p, o), with p (the side to move) as the positive
// reference color and sign reset to +1.
func (e *Eval) InitEval(p, o uint64) {
	for i := range e.feature {
		e.feature[i] = 0
	}
	e.sign = 1
	e.undoStack = e.undoStack[:0]
	rest := p
	for rest != 0 {
		sq := bits.BitScanForward(rest)
		rest &= rest - 1
		e.feature[squareGroup[sq]] += baseWeight[squareGroup[sq]]
	}
	rest = o
	for rest != 0 {
		sq := bits.BitScanForward(rest)
		rest &= rest - 1
		e.feature[squareGroup[sq]] -= baseWeight[squareGroup[sq]]
	}
}

// Update (eval_update) applies the incremental delta of playing x and
// flipping the disc set in `flipped`: x and every flipped square
// become the mover's color in absolute terms (relative to the current
// sign), then the side flips for the next ply.
func (e *Eval) Update(x int, flipped uint64) {
	e.undoStack = append(e.undoStack, undoEntry{signBefore: e.sign})
	s := e.sign
	g := squareGroup[x]
	e.feature[g] += s * baseWeight[g]
	rest := flipped
	for rest != 0 {
		sq := bits.BitScanForward(rest)
		rest &= rest - 1
		fg := squareGroup[sq]
		e.feature[fg] += 2 * s * baseWeight[fg]
	}
	e.sign = -e.sign
}

// Pass (eval_pass) records a pass: no square changes color, only the
// side-to-move parity bit flips.
func (e *Eval) Pass() {
	e.undoStack = append(e.undoStack, undoEntry{signBefore: e.sign, isPass: true})
	e.sign = -e.sign
}

// Restore (eval_restore) undoes the most recent Update or Pass. Panics
// on an empty stack, mirroring board.Position.UndoMove's contract.
func (e *Eval) Restore(x int, flipped uint64) {
	n := len(e.undoStack)
	if n == 0 {
		panic("eval: Restore() called with empty undo stack")
	}
	last := e.undoStack[n-1]
	e.undoStack = e.undoStack[:n-1]
	e.sign = last.signBefore
	if last.isPass {
		return
	}
	s := e.sign
	g := squareGroup[x]
	e.feature[g] -= s * baseWeight[g]
	rest := flipped
	for rest != 0 {
		sq := bits.BitScanForward(rest)
		rest &= rest - 1
		fg := squareGroup[sq]
		e.feature[fg] -= 2 * s * baseWeight[fg]
	}
}

// ScoreMax bounds the returned score per spec 4.4.
const ScoreMax = 64

// Score (eval_score) dots the feature vector with the depth-indexed
// weight row for nEmpties, divides by scoreScale (integer division),
// and clamps to [-ScoreMax+1, +ScoreMax-1].
func (e *Eval) Score(nEmpties int) int32 {
	row := e.weights.row(nEmpties)
	var sum int32
	for g := 0; g < NumGroups; g++ {
		sum += e.feature[g] * row[g]
	}
	scaled := e.sign * sum / scoreScale
	if scaled > ScoreMax-1 {
		scaled = ScoreMax - 1
	}
	if scaled < -ScoreMax+1 {
		scaled = -ScoreMax + 1
	}
	return scaled
}

// scoreScale is the divisor that converts the raw feature/weight dot
// product into the returned score. With the default weight table a
// flipped corner disc moves the dot product by 2*20*20 = 800 (12
// points) at 60 empties, while a flipped center disc moves it by only
// 2*2*2 = 8, which is below one point.
const scoreScale = 64
