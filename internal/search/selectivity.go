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

// fullSelectivity marks an exact search: no forward pruning (ProbCut)
// is ever applied at this level, matching the endgame solver's need for
// a provably correct result.
const fullSelectivity = uint8(5)

// selectivityLevel pairs a ProbCut t-value with the confidence
// percentile it corresponds to under a normal error model, copied
// verbatim from spec section 6's fixed calibration table rather than
// re-derived.
type selectivityLevel struct {
	tValue     float64
	percentile float64
}

// selectivityTable indexes level 0..4 by increasing confidence; level 5
// (fullSelectivity) is exact and carries no entry here.
var selectivityTable = [5]selectivityLevel{
	{tValue: 1.1, percentile: 0.73},
	{tValue: 1.5, percentile: 0.87},
	{tValue: 2.0, percentile: 0.95},
	{tValue: 2.6, percentile: 0.98},
	{tValue: 3.3, percentile: 0.99},
}

// selectivityMargin maps a selectivity level to the ProbCut
// disc-difference margin used for the shallow-search safety cut: wider
// at low confidence, shrinking to zero (no cut) at fullSelectivity.
// These are not given numerically by the distilled spec (the original
// Edax sources were not part of the retrieval pack); they are a fixed
// decreasing schedule chosen by this module over the same 0..5 levels
// the t-value table indexes, documented as an assumption in DESIGN.md.
var selectivityMargin = [6]int{16, 12, 9, 6, 3, 0}

// probcutMinDepth is the shallowest depth at which a ProbCut probe is
// worth its own recursive search.
const probcutMinDepth = 4
