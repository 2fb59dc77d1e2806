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

package search

import (
	"sync/atomic"

	"github.com/frankkopp/edaxgo/internal/bits"
	"github.com/frankkopp/edaxgo/internal/board"
	"github.com/frankkopp/edaxgo/internal/config"
	"github.com/frankkopp/edaxgo/internal/empties"
	"github.com/frankkopp/edaxgo/internal/eval"
	"github.com/frankkopp/edaxgo/internal/movelist"
	"github.com/frankkopp/edaxgo/internal/parallel"
	"github.com/frankkopp/edaxgo/internal/stability"
)

// negamax is the recursive midgame/endgame PVS of spec 4.7. depth and
// exact travel together: when exact is true, depth always equals the
// remaining empty-square count at every node of the subtree (the root
// of an exact search sets depth=nEmpties, and every ply decrements both
// in lockstep), so "depth==0" under exact is precisely "board full" and
// DiscDiff is an exact final score rather than a heuristic leaf. el is
// non-nil exactly when exact is true, tracking empty squares for
// parity-based move ordering (spec 4.8) and the last-1/last-2
// specialized solvers below.
func (s *Search) negamax(p *board.Position, e *eval.Eval, el *empties.List, alpha, beta, depth int, selectivity uint8, exact bool) int {
	atomic.AddUint64(&s.nodesVisited, 1)

	if s.stopped() {
		return alpha
	}

	moves := p.GetMoves()
	if moves == 0 {
		if !board.CanMove(p.O, p.P) {
			return p.FinalScore()
		}
		e.Pass()
		p.DoMove(board.PassMove)
		score := -s.negamax(p, e, el, -beta, -alpha, depth, selectivity, exact)
		p.UndoMove()
		e.Restore(board.PassMove, 0)
		return score
	}

	if exact {
		switch depth {
		case 1:
			return solveLast1(p)
		case 2:
			return solveLast2(p, alpha, beta)
		}
	}

	if depth == 0 {
		return int(e.Score(p.EmptyCount()))
	}

	if config.Settings.Search.UseStabilityCutoff {
		bound := 64 - 2*stability.GetStability(p.P, p.O)
		if bound <= alpha {
			return bound
		}
	}

	hashcode := uint64(p.Hashcode())
	ttMove0, ttMove1 := NoMove, NoMove
	origAlpha, origBeta := alpha, beta
	if config.Settings.Search.UseTT {
		data := s.table.Get(p.P, p.O, hashcode)
		if int(data.Depth()) >= depth && data.Selectivity() >= selectivity {
			lower, upper := int(data.Lower), int(data.Upper)
			if upper <= alpha {
				return upper
			}
			if lower >= beta {
				return lower
			}
			if lower == upper {
				return lower
			}
			if lower > alpha {
				alpha = lower
			}
			if upper < beta {
				beta = upper
			}
		}
		if config.Settings.Search.UseTTMove {
			ttMove0, ttMove1 = int(data.Move[0]), int(data.Move[1])
		}
	}

	if config.Settings.Search.UseProbCut && !exact && selectivity < fullSelectivity && depth >= probcutMinDepth {
		if v, cut := s.probCut(p, e, el, alpha, beta, depth, selectivity); cut {
			return v
		}
	}

	// Internal Iterative Deepening (spec 9's USE_IID): no hash move is
	// known, so search this same node to a reduced depth purely to seed
	// one for move ordering, then re-read whatever the reduced search
	// stored. Never used in exact search: depth there must stay in
	// lockstep with the empty-square count (see negamax's doc comment),
	// which a reduced-depth probe would break.
	if config.Settings.Search.UseIID && !exact && ttMove0 == NoMove && depth >= config.Settings.Search.IIDDepth {
		newDepth := depth - config.Settings.Search.IIDReduction
		if newDepth < 0 {
			newDepth = 0
		}
		s.negamax(p, e, el, alpha, beta, newDepth, selectivity, exact)
		if s.stopped() {
			return alpha
		}
		iidData := s.table.Get(p.P, p.O, hashcode)
		ttMove0 = int(iidData.Move[0])
	}

	ml := movelist.NewMoveList()
	ml.GenerateFrom(moves, board.Flip, p.P, p.O)
	s.orderMoves(ml, p, e, p.EmptyCount(), el, ttMove0, ttMove1, depth, selectivity)
	ml.SortByScoreDescending()

	nodesBefore := s.NodesVisited()
	a := alpha

	// the first move is always searched serially, with the full window,
	// to establish a PV before any split point opens (spec 4.9's Young
	// Brothers Wait rule).
	head := ml.Head()
	firstMv := ml.At(head)
	e.Update(firstMv.Square, firstMv.Flipped)
	p.DoMove(firstMv.Square)
	if el != nil {
		el.Remove(firstMv.Square)
	}
	best := -s.negamax(p, e, el, -beta, -a, depth-1, selectivity, exact)
	if el != nil {
		el.Restore(firstMv.Square)
	}
	p.UndoMove()
	e.Restore(firstMv.Square, firstMv.Flipped)

	bestMove := firstMv.Square
	if best > a {
		a = best
	}

	if rest := ml.NextIndex(head); !s.stopped() && a < beta && rest != movelist.NoLink {
		if s.pool != nil && parallel.Eligible(depth, remainingMoves(ml, rest), 0) {
			best, bestMove = s.splitSiblings(p, rest, ml, a, beta, depth, selectivity, exact, best, bestMove)
		} else {
			best, bestMove, a = s.searchSiblingsSerially(p, e, el, rest, ml, a, beta, depth, selectivity, exact, best, bestMove)
		}
	}

	if config.Settings.Search.UseTT && !s.stopped() {
		cost := costFromNodes(s.NodesVisited() - nodesBefore)
		s.table.Put(p.P, p.O, hashcode, int8(best), int8(origAlpha), int8(origBeta), uint8(depth), selectivity, cost, uint8(bestMove))
	}

	return best
}

// remainingMoves counts the move-list nodes from from to the end of
// the chain, used only to decide split eligibility against
// config.Settings.Parallel.SplitMinMovesTodo.
func remainingMoves(ml *movelist.MoveList, from int) int {
	n := 0
	for i := from; i != movelist.NoLink; i = ml.NextIndex(i) {
		n++
	}
	return n
}

// searchSiblingsSerially runs the classic PVS scout/re-search loop
// over every sibling from rest onward, with ETC peeks ahead of each
// one; the non-split fallback, used whenever no pool is attached or
// the node doesn't clear spec 4.9's split thresholds.
func (s *Search) searchSiblingsSerially(p *board.Position, e *eval.Eval, el *empties.List, rest int, ml *movelist.MoveList, a, beta, depth int, selectivity uint8, exact bool, best, bestMove int) (int, int, int) {
	for i := rest; i != movelist.NoLink; i = ml.NextIndex(i) {
		if s.stopped() || a >= beta {
			break
		}
		mv := ml.At(i)

		if config.Settings.Search.UseTT {
			if cut, v := s.etc(p, mv, a, beta, depth, selectivity); cut {
				if v > best {
					best = v
					bestMove = mv.Square
				}
				if v > a {
					a = v
				}
				continue
			}
		}

		e.Update(mv.Square, mv.Flipped)
		p.DoMove(mv.Square)
		if el != nil {
			el.Remove(mv.Square)
		}

		score := -s.negamax(p, e, el, -a-1, -a, depth-1, selectivity, exact)
		if score > a && score < beta {
			score = -s.negamax(p, e, el, -beta, -a, depth-1, selectivity, exact)
		}

		if el != nil {
			el.Restore(mv.Square)
		}
		p.UndoMove()
		e.Restore(mv.Square, mv.Flipped)

		if score > best {
			best = score
			bestMove = mv.Square
		}
		if score > a {
			a = score
		}
	}
	return best, bestMove, a
}

// splitSiblings is the YBWC fan-out: every sibling from rest onward is
// handed to internal/parallel.Split at once, each scouted (and, if
// needed, re-searched) against its own freshly cloned position and
// Eval via SearchChild rather than the shared p/e/el this node is
// still using for bookkeeping - concurrent siblings can never share
// that mutable state.
func (s *Search) splitSiblings(p *board.Position, rest int, ml *movelist.MoveList, a, beta, depth int, selectivity uint8, exact bool, best, bestMove int) (int, int) {
	var siblings []parallel.Sibling
	for i := rest; i != movelist.NoLink; i = ml.NextIndex(i) {
		mv := ml.At(i)
		siblings = append(siblings, parallel.Sibling{
			Move: mv.Square,
			Scout: func(snapshot int) int {
				child := p.Clone()
				child.DoMove(mv.Square)
				return -s.SearchChild(child, -snapshot-1, -snapshot, depth-1, selectivity, exact)
			},
			Research: func(liveAlpha int) int {
				child := p.Clone()
				child.DoMove(mv.Square)
				return -s.SearchChild(child, -beta, -liveAlpha, depth-1, selectivity, exact)
			},
		})
	}

	node := parallel.NewNode(nil, a, beta, depth, 0, len(siblings))
	parallel.Split(s.pool, node, siblings)

	score, move := node.Best()
	if score > best {
		best = score
		bestMove = move
	}
	return best, bestMove
}

// SearchChild searches an independent child position in its own fresh
// Eval and (when exact) EmptiesList; internal/parallel dispatches
// these across the worker pool's goroutines, every one sharing this
// Search's transposition table, whose own lock striping is what makes
// that safe (spec 4.9/4.5).
func (s *Search) SearchChild(pos *board.Position, alpha, beta, depth int, selectivity uint8, exact bool) int {
	e := eval.New(s.weights)
	e.InitEval(pos.P, pos.O)
	var el *empties.List
	if exact {
		el = empties.NewList(pos.Empties())
	}
	return s.negamax(pos, e, el, alpha, beta, depth, selectivity, exact)
}

// probCut attempts a shallow null-window search offset by a
// selectivity-indexed margin to prove a cutoff without exploring the
// full-depth subtree (spec 4.7 step 4). Returns (bound, true) when it
// proves either score>=beta or score<=alpha.
func (s *Search) probCut(p *board.Position, e *eval.Eval, el *empties.List, alpha, beta, depth int, selectivity uint8) (int, bool) {
	margin := selectivityMargin[selectivity]
	if margin == 0 {
		return 0, false
	}
	shallow := depth / 2
	if shallow < 1 {
		return 0, false
	}
	probSelectivity := selectivity + 1

	probBeta := clampScore(beta + margin)
	if probBeta <= ScoreMax {
		v := s.negamax(p, e, el, probBeta-1, probBeta, shallow, probSelectivity, false)
		if v >= probBeta {
			return beta, true
		}
	}

	probAlpha := clampScore(alpha - margin)
	if probAlpha >= -ScoreMax {
		v := s.negamax(p, e, el, probAlpha, probAlpha+1, shallow, probSelectivity, false)
		if v <= probAlpha {
			return alpha, true
		}
	}

	return 0, false
}

// etc is the enhanced transposition cutoff (spec 4.7 step 7): before
// actually searching a non-first move, peek at its child's stored TT
// bounds, which are already known from a prior visit via a different
// move order, to cut without descending at all.
func (s *Search) etc(p *board.Position, mv *movelist.Move, alpha, beta, depth int, selectivity uint8) (bool, int) {
	if depth < 2 {
		return false, 0
	}
	p.DoMove(mv.Square)
	hashcode := uint64(p.Hashcode())
	data := s.table.Get(p.P, p.O, hashcode)
	p.UndoMove()

	if int(data.Depth()) < depth-1 || data.Selectivity() < selectivity {
		return false, 0
	}
	ourLower, ourUpper := -int(data.Upper), -int(data.Lower)
	if ourUpper <= alpha {
		return true, ourUpper
	}
	if ourLower >= beta {
		return true, ourLower
	}
	return false, 0
}

// solveLast1 resolves the single-empty-square endgame directly: the side
// to move plays there if it can, otherwise the opponent does if it can,
// and if neither can the remaining square goes to whichever side holds
// the disc majority.
func solveLast1(p *board.Position) int {
	sq := bits.BitScanForward(p.Empties())

	if flipped := board.Flip(sq, p.P, p.O); flipped != 0 {
		newP := bits.PopCount(p.P) + 1 + bits.PopCount(flipped)
		newO := bits.PopCount(p.O) - bits.PopCount(flipped)
		return newP - newO
	}
	if flipped := board.Flip(sq, p.O, p.P); flipped != 0 {
		newO := bits.PopCount(p.O) + 1 + bits.PopCount(flipped)
		newP := bits.PopCount(p.P) - bits.PopCount(flipped)
		return newP - newO
	}
	diff := bits.PopCount(p.P) - bits.PopCount(p.O)
	switch {
	case diff > 0:
		return diff + 1
	case diff < 0:
		return diff - 1
	default:
		return 0
	}
}

// solveLast2 resolves the two-empty-square endgame by trying both
// playable squares directly (falling into solveLast1 for the
// resulting one-empty position) rather than paying for full move
// generation and ordering over a two-move list.
func solveLast2(p *board.Position, alpha, beta int) int {
	empty := p.Empties()
	sq1 := bits.BitScanForward(empty)
	sq2 := bits.BitScanForward(empty &^ bits.Bit(sq1))

	best := -ScoreInf
	for _, sq := range [2]int{sq1, sq2} {
		flipped := board.Flip(sq, p.P, p.O)
		if flipped == 0 {
			continue
		}
		p.DoMove(sq)
		score := -solveLast1(p)
		p.UndoMove()
		if score > best {
			best = score
		}
		if best >= beta {
			return best
		}
	}

	if best != -ScoreInf {
		return best
	}

	// neither empty square is playable for us: pass, or the game is over.
	if board.CanMove(p.O, p.P) {
		p.DoMove(board.PassMove)
		best = -solveLast2(p, -beta, -alpha)
		p.UndoMove()
		return best
	}
	diff := bits.PopCount(p.P) - bits.PopCount(p.O)
	switch {
	case diff > 0:
		return diff + 2
	case diff < 0:
		return diff - 2
	default:
		return 0
	}
}
