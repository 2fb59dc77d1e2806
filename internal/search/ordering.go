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
	"github.com/frankkopp/edaxgo/internal/board"
	"github.com/frankkopp/edaxgo/internal/config"
	"github.com/frankkopp/edaxgo/internal/empties"
	"github.com/frankkopp/edaxgo/internal/eval"
	"github.com/frankkopp/edaxgo/internal/movelist"
	"github.com/frankkopp/edaxgo/internal/stability"
)

// Move-ordering tier weights, per spec 4.6's priority chain: wipeout >
// hash move 0 > hash move 1 > mobility > evaluation > edge-stability >
// potential-mobility > parity > positional value. The weights are
// spaced one to two orders of magnitude apart so that a lower tier
// usually stays below one unit of the tier above it. The separation is
// not strict: evalScore spans [-63,63], so two moves' eval terms can
// differ by 126*150_000 = 18.9M, more than one mobility unit (10M),
// and the shallow probe adds to that same tier (see DESIGN.md).
const (
	wipeoutScore = int32(2_000_000_000)
	hash0Score   = int32(1_000_000_000)
	hash1Score   = int32(500_000_000)

	mobilityWeight  = int32(10_000_000)
	evalWeight      = int32(150_000)
	stabilityWeight = int32(2_000)
	potentialWeight = int32(50)
	parityWeight    = int32(25)

	// shallowWeight folds spec 4.6 step 4's shallow-search probe into the
	// weight at the same tier as evalWeight: both are a (negated) score
	// in the same [-64,64] range and serve the same "how good is this
	// child" purpose, so the probe simply refines evalScore rather than
	// opening a new tier of its own.
	shallowWeight    = evalWeight
	shallowHashBonus = int32(10)
)

// shallowSortMinDepth is spec 4.6 step 4's MIN_DEPTH threshold: below
// it the extra search isn't worth its own cost. Spec.md names this as
// a per-n_empties table without giving values; this module uses one
// constant depth threshold instead of a full table, since no
// calibration data for the table exists anywhere in the retrieval pack
// (see DESIGN.md).
const shallowSortMinDepth = 9

// shallowSortDepth is the "levels 0-3" shallow probe depth.
const shallowSortDepth = 2

// positionalValue mirrors eval's square-group classification (corner,
// X, C, edge, inner, center, in that index order) with move ordering's
// own small bonus table, kept independent of eval's tuning since the
// two tables serve different purposes (one a static heuristic used only
// to break ties, the other a learned phase-dependent weight).
var positionalValue = [eval.NumGroups]int32{
	20, // corner
	-8, // X
	-4, // C
	5,  // edge
	1,  // inner
	2,  // center
}

// orderMoves scores every move in ml according to spec 4.6 and leaves
// ml unsorted; the caller sorts by calling SortByScoreDescending. p is
// mutated and restored via DoMove/UndoMove as each candidate is probed.
// el is non-nil only once the search has switched to the exact endgame
// solver, where parity ordering additionally applies.
func (s *Search) orderMoves(ml *movelist.MoveList, p *board.Position, e *eval.Eval, nEmpties int, el *empties.List, hashMove0, hashMove1 int, depth int, selectivity uint8) {
	for i := ml.Head(); i != movelist.NoLink; i = ml.NextIndex(i) {
		mv := ml.At(i)

		if mv.Square == hashMove0 {
			mv.Score = hash0Score
			continue
		}
		if mv.Square == hashMove1 {
			mv.Score = hash1Score
			continue
		}

		e.Update(mv.Square, mv.Flipped)
		p.DoMove(mv.Square)
		if el != nil {
			el.Remove(mv.Square)
		}

		wipeout := p.P == 0

		var score int32
		if wipeout {
			score = wipeoutScore
		} else {
			mobility := int32(board.GetWeightedMobility(p.P, p.O))
			potential := int32(board.GetPotentialMobility(p.P, p.O))
			ourStable := int32(stability.GetStability(p.P, p.O))
			evalScore := -e.Score(nEmpties - 1)

			var parityBonus int32
			if el != nil && el.IsOddParity(mv.Square) {
				parityBonus = 1
			}

			// spec 4.6 step 4: above shallowSortMinDepth, refine the static
			// evalScore with a shallow PVS probe on the child itself, plus a
			// bonus if the child already has a hash entry (cheap evidence
			// it's been visited before and is worth ranking higher).
			var shallowScore int32
			if el == nil && depth >= shallowSortMinDepth {
				shallowScore = int32(-s.negamax(p, e, nil, -ScoreMax, ScoreMax, shallowSortDepth, selectivity, false))
				if config.Settings.Search.UseTT {
					data := s.table.Get(p.P, p.O, uint64(p.Hashcode()))
					if int(data.Move[0]) != NoMove {
						shallowScore += shallowHashBonus
					}
				}
			}

			score = -mobility*mobilityWeight +
				evalScore*evalWeight +
				shallowScore*shallowWeight +
				ourStable*stabilityWeight -
				potential*potentialWeight +
				parityBonus*parityWeight +
				positionalValue[eval.GroupOf(mv.Square)]
		}

		if el != nil {
			el.Restore(mv.Square)
		}
		p.UndoMove()
		e.Restore(mv.Square, mv.Flipped)

		mv.Score = score
	}
}
