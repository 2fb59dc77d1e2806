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

// Package obs decouples search's progress reporting from any particular
// front end, generalizing FrankyGo's uciInterface.UciDriver (a UCI-specific
// callback surface) into a protocol-agnostic Observer a CLI, a GTP driver or
// a test harness can all implement.
package obs

import "time"

// Info is one iteration's worth of search progress, passed to
// Observer.OnIteration after each completed depth of iterative deepening.
type Info struct {
	Depth     int
	Selectivity uint8
	Score     int
	Nodes     uint64
	Nps       uint64
	Time      time.Duration
	PV        []int
	Hashfull  int
}

// Result is the final, committed outcome of a search.
type Result struct {
	BestMove   int
	PonderMove int
	Score      int
	SearchTime time.Duration
}

// Observer receives progress notifications from a running search. All
// methods must return quickly; a slow observer stalls the search thread
// that calls it.
type Observer interface {
	OnIteration(info Info)
	OnBestMove(result Result)
	OnInfoString(s string)
}

// NullObserver discards every notification; it is the default Observer for
// a Search that nobody is watching.
type NullObserver struct{}

func (NullObserver) OnIteration(Info)    {}
func (NullObserver) OnBestMove(Result)   {}
func (NullObserver) OnInfoString(string) {}
