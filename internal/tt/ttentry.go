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

package tt

// NoMove marks an empty preferred-move slot, mirroring board's own
// square-index numbering (65 = "no move").
const NoMove = 65

// vmeta bit layout, generalized from FrankyGo's TtEntry.vmeta (a
// uint16 packing depth/valueType/age into one word for a cheap single
// compare in writeable-level comparisons). Spec requires a single
// uint32 whose most significant byte is `date`, per the "type punning
// for HashData" design note: date in the top byte means a plain
// numeric comparison of the packed word already sorts by date first,
// exactly the lexicographic (date, cost, selectivity, depth) ordering
// the replacement policy needs.
const (
	depthShift       = 0
	selectivityShift = 8
	costShift        = 16
	dateShift        = 24
)

// HashData is the packed metadata stored per slot: bounds, moves, and
// a single writable-level word combining date/cost/selectivity/depth.
type HashData struct {
	Lower, Upper int8
	Move         [2]uint8
	level        uint32
}

func packLevel(date, cost, selectivity, depth uint8) uint32 {
	return uint32(date)<<dateShift | uint32(cost)<<costShift | uint32(selectivity)<<selectivityShift | uint32(depth)<<depthShift
}

// Date returns the generation counter (1..127).
func (d HashData) Date() uint8 { return uint8(d.level >> dateShift) }

// Cost returns log2(nodes spent) at write time.
func (d HashData) Cost() uint8 { return uint8(d.level >> costShift) }

// Selectivity returns the 0..5 probabilistic-width index.
func (d HashData) Selectivity() uint8 { return uint8(d.level >> selectivityShift) }

// Depth returns the search depth the entry was stored at.
func (d HashData) Depth() uint8 { return uint8(d.level >> depthShift) }

// Level returns the raw packed writable-level word; a plain numeric
// comparison of two Level() values is exactly the lexicographic
// (date, cost, selectivity, depth) ordering the replacement policy
// compares victims by.
func (d HashData) Level() uint32 { return d.level }

func (d *HashData) setLevel(date, cost, selectivity, depth uint8) {
	d.level = packLevel(date, cost, selectivity, depth)
}

// emptyData is the sentinel returned by a miss: infinite bounds, no
// preferred move.
func emptyData() HashData {
	return HashData{Lower: -ScoreInf, Upper: ScoreInf, Move: [2]uint8{NoMove, NoMove}}
}

// ScoreInf is one past the largest representable disc-difference
// score, used as the sentinel "no bound known" value.
const ScoreInf = 65

// HashEntry is one bucket slot: a verbatim copy of the board the
// entry describes (since the hashcode alone is never sole proof of
// identity, per spec 4.5) plus its packed metadata.
type HashEntry struct {
	P, O uint64
	Data HashData
}

func (e *HashEntry) isEmpty() bool {
	return e.P == 0 && e.O == 0 && e.Data.level == 0
}

func (e *HashEntry) matches(p, o uint64) bool {
	return e.P == p && e.O == o
}

// reinit restores the invariant Lower <= Upper by resetting to the
// empty sentinel bounds, per spec 3's "if a store would violate it,
// the slot is reinitialized".
func (d *HashData) reinit() {
	d.Lower = -ScoreInf
	d.Upper = ScoreInf
}
