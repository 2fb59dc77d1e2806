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
	"time"

	"github.com/frankkopp/edaxgo/internal/board"
	"github.com/frankkopp/edaxgo/internal/config"
	"github.com/frankkopp/edaxgo/internal/empties"
	"github.com/frankkopp/edaxgo/internal/eval"
	"github.com/frankkopp/edaxgo/internal/movelist"
	"github.com/frankkopp/edaxgo/internal/obs"
)

// aspirationMargin is the half-width of the window iterativeDeepening
// reopens around the previous iteration's score before falling back to
// a full re-search on failure.
const aspirationMargin = 4

// iterativeDeepening drives searchRoot at increasing depths, switching
// to an exact full-game solve once the position is shallow enough
// (spec 4.9's "near the end of the game the engine always solves
// exactly" rule, gated by config.Settings.Search.EndgameDepth).
func (s *Search) iterativeDeepening(pos *board.Position) *Result {
	nEmpties := pos.EmptyCount()

	maxDepth := s.limits.Depth
	if maxDepth <= 0 || maxDepth > nEmpties {
		maxDepth = nEmpties
	}
	if nEmpties <= config.Settings.Search.EndgameDepth {
		maxDepth = nEmpties
	}

	e := eval.New(s.weights)
	e.InitEval(pos.P, pos.O)

	result := &Result{BestMove: NoMove, PonderMove: NoMove, Score: 0}

	run := func(depth int) {
		if s.stopped() {
			return
		}
		exact := depth >= nEmpties
		selectivity := uint8(config.Settings.Search.DefaultSelectivity)
		if exact {
			selectivity = fullSelectivity
		}

		alpha, beta := -ScoreMax, ScoreMax
		if result.BestMove != NoMove && !exact {
			alpha = clampScore(result.Score - aspirationMargin)
			beta = clampScore(result.Score + aspirationMargin)
		}

		score, bestMove, pv := s.searchRoot(pos, e, alpha, beta, depth, selectivity, exact, result.BestMove)
		for !s.stopped() && (score <= alpha && alpha > -ScoreMax || score >= beta && beta < ScoreMax) {
			if score <= alpha {
				alpha = -ScoreMax
			} else {
				beta = ScoreMax
			}
			score, bestMove, pv = s.searchRoot(pos, e, alpha, beta, depth, selectivity, exact, result.BestMove)
		}

		if s.stopped() && result.BestMove != NoMove {
			return
		}

		result = &Result{BestMove: bestMove, Score: score, Depth: depth, Selectivity: selectivity, PV: pv}
		result.PonderMove = NoMove
		if len(pv) > 1 {
			result.PonderMove = pv[1]
		}

		s.observer.OnIteration(obs.Info{
			Depth:       depth,
			Selectivity: selectivity,
			Score:       score,
			Nodes:       s.NodesVisited(),
			Time:        time.Since(s.startTime),
			PV:          pv,
			Hashfull:    s.table.Hashfull(),
		})
	}

	lastDepth := 0
	for depth := 2; depth <= maxDepth; depth += 2 {
		run(depth)
		lastDepth = depth
		if s.stopped() {
			break
		}
	}
	if !s.stopped() && lastDepth != maxDepth {
		run(maxDepth)
	}
	if maxDepth < 2 && lastDepth == 0 {
		run(maxDepth)
	}

	return result
}

// searchRoot is the top-level move loop: like negamax's, but it also
// tracks which move produced the best score so the caller gets a move
// to play rather than just a number, and it owns the empties.List for
// the lifetime of an exact search.
func (s *Search) searchRoot(pos *board.Position, e *eval.Eval, alpha, beta, depth int, selectivity uint8, exact bool, prevBest int) (score int, bestMove int, pv []int) {
	moves := pos.GetMoves()
	if moves == 0 {
		if board.IsGameOver(pos.P, pos.O) {
			return pos.FinalScore(), PassMove, []int{PassMove}
		}
		e.Pass()
		pos.DoMove(PassMove)
		var pel *empties.List
		if exact {
			pel = empties.NewList(pos.Empties())
		}
		sc := -s.negamax(pos, e, pel, -beta, -alpha, depth, selectivity, exact)
		pos.UndoMove()
		e.Restore(PassMove, 0)
		return sc, PassMove, []int{PassMove}
	}

	var el *empties.List
	if exact {
		el = empties.NewList(pos.Empties())
	}

	ml := movelist.NewMoveList()
	ml.GenerateFrom(moves, board.Flip, pos.P, pos.O)
	s.orderMoves(ml, pos, e, pos.EmptyCount(), el, prevBest, NoMove, depth, selectivity)
	ml.SortByScoreDescending()

	best := -ScoreInf
	bestMove = NoMove
	a := alpha
	first := true

	for i := ml.Head(); i != movelist.NoLink; i = ml.NextIndex(i) {
		if s.stopped() {
			break
		}
		mv := ml.At(i)

		e.Update(mv.Square, mv.Flipped)
		pos.DoMove(mv.Square)
		if el != nil {
			el.Remove(mv.Square)
		}

		var sc int
		if first {
			sc = -s.negamax(pos, e, el, -beta, -a, depth-1, selectivity, exact)
		} else {
			sc = -s.negamax(pos, e, el, -a-1, -a, depth-1, selectivity, exact)
			if sc > a && sc < beta {
				sc = -s.negamax(pos, e, el, -beta, -a, depth-1, selectivity, exact)
			}
		}

		if el != nil {
			el.Restore(mv.Square)
		}
		pos.UndoMove()
		e.Restore(mv.Square, mv.Flipped)

		if sc > best {
			best = sc
			bestMove = mv.Square
		}
		if sc > a {
			a = sc
		}
		first = false
		if a >= beta {
			break
		}
	}

	return best, bestMove, []int{bestMove}
}
