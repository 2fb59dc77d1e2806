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

// Package search implements the midgame/endgame principal variation
// search over a board.Position: iterative deepening with aspiration
// windows, a transposition table, stability cutoffs, ProbCut-style
// selectivity and an exact endgame solver with parity move ordering. Its
// asynchronous Start/Stop/IsSearching lifecycle mirrors FrankyGo's
// search.Search, generalized from chess's alpha-beta to Othello's
// disc-difference PVS (spec section 4.7).
package search

import (
	"context"
	stdbits "math/bits"
	"sync"
	"sync/atomic"
	"time"

	"github.com/op/go-logging"
	"golang.org/x/sync/semaphore"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/frankkopp/edaxgo/internal/board"
	"github.com/frankkopp/edaxgo/internal/eval"
	myLogging "github.com/frankkopp/edaxgo/internal/logging"
	"github.com/frankkopp/edaxgo/internal/obs"
	"github.com/frankkopp/edaxgo/internal/parallel"
	"github.com/frankkopp/edaxgo/internal/tt"
)

var out = message.NewPrinter(language.German)

// Score domain, per spec section 6: a disc-difference score always
// lies in [-64, 64]; ScoreInf is one past the largest representable
// value, used as the "unbounded" sentinel in alpha-beta windows.
const (
	ScoreMin = -64
	ScoreMax = 64
	ScoreInf = 65
)

// NoMove/PassMove reuse board's own square numbering, so a Result's
// BestMove is directly comparable with a Position's own move squares.
const (
	NoMove   = board.NoMove
	PassMove = board.PassMove
)

// Limits bounds one search: Depth caps iterative deepening (0 means
// "search to the end of the game"), MoveTime optionally caps wall-clock
// time when TimeControl is set.
type Limits struct {
	Depth       int
	MoveTime    time.Duration
	TimeControl bool
}

// NewSearchLimits returns depth-unbounded limits (search to game end),
// the default a caller overrides field-by-field.
func NewSearchLimits() *Limits {
	return &Limits{Depth: 60}
}

// Result is one completed search's outcome: the move to play, the
// score from the side-to-move's perspective, and bookkeeping useful to
// a caller deciding how much to trust the result.
type Result struct {
	BestMove    int
	PonderMove  int
	Score       int
	Depth       int
	Selectivity uint8
	Nodes       uint64
	SearchTime  time.Duration
	PV          []int
	TimedOut    bool
}

func (r *Result) String() string {
	return out.Sprintf("bestmove=%s score=%d depth=%d selectivity=%d nodes=%d time=%s",
		board.MoveString(r.BestMove), r.Score, r.Depth, r.Selectivity, r.Nodes, r.SearchTime)
}

// Search is one engine's search state: its transposition table, its
// evaluator weights, and the semaphore/atomic-flag machinery that gates
// StartSearch/StopSearch/IsSearching exactly the way FrankyGo's
// search.Search gates UCI "go"/"stop" against a single in-flight
// search, generalized away from UCI specifics (obs.Observer stands in
// for uciInterface.UciDriver).
type Search struct {
	log  *logging.Logger
	slog *logging.Logger

	table   *tt.Table
	weights *eval.Weights

	pool *parallel.Pool

	observer obs.Observer

	sem      *semaphore.Weighted
	running  int32
	stopFlag int32

	nodesVisited uint64

	startTime time.Time
	deadline  time.Time
	limits    Limits

	mu         sync.Mutex
	lastResult *Result
}

// NewSearch returns a Search backed by table and weights; table may be
// shared across successive searches of the same game (its date advances
// via NewSearch() at the start of each one).
func NewSearch(table *tt.Table, weights *eval.Weights) *Search {
	return &Search{
		log:      myLogging.GetLog(),
		slog:     myLogging.GetSearchLog(),
		table:    table,
		weights:  weights,
		observer: obs.NullObserver{},
		sem:      semaphore.NewWeighted(1),
	}
}

// SetObserver installs the progress/result callback; nil restores the
// null observer.
func (s *Search) SetObserver(o obs.Observer) {
	if o == nil {
		o = obs.NullObserver{}
	}
	s.observer = o
}

// UsePool attaches a worker pool so negamax splits at eligible nodes
// per spec 4.9; a nil pool (the default) means every search runs
// single-threaded. Must not be called while a search is in flight.
func (s *Search) UsePool(pool *parallel.Pool) {
	s.pool = pool
}

// IsSearching reports whether a search is currently in flight.
func (s *Search) IsSearching() bool {
	return atomic.LoadInt32(&s.running) == 1
}

// StopSearch requests the current search to return as soon as it next
// checks the stop flag. A no-op if no search is running.
func (s *Search) StopSearch() {
	atomic.StoreInt32(&s.stopFlag, 1)
}

// stopped reports whether the search should unwind: either StopSearch
// was called, or a configured move-time deadline has passed.
func (s *Search) stopped() bool {
	if atomic.LoadInt32(&s.stopFlag) == 1 {
		return true
	}
	if s.limits.TimeControl && !s.deadline.IsZero() && time.Now().After(s.deadline) {
		atomic.StoreInt32(&s.stopFlag, 1)
		return true
	}
	return false
}

// WaitWhileSearching blocks the caller until the in-flight search (if
// any) completes.
func (s *Search) WaitWhileSearching() {
	_ = s.sem.Acquire(context.Background(), 1)
	s.sem.Release(1)
}

// NodesVisited returns the node count of the most recent (or currently
// running) search.
func (s *Search) NodesVisited() uint64 {
	return atomic.LoadUint64(&s.nodesVisited)
}

// LastResult returns the most recently completed search's Result, or
// nil if none has completed yet.
func (s *Search) LastResult() *Result {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastResult
}

// StartSearch begins an asynchronous iterative-deepening search of p
// under limits. Call WaitWhileSearching or poll IsSearching to learn
// when it completes; the Observer set via SetObserver is notified of
// each iteration and the final result. A second call while a search is
// already running is rejected with a log warning, mirroring the
// teacher's single-in-flight-search invariant.
func (s *Search) StartSearch(p *board.Position, limits Limits) {
	if !s.sem.TryAcquire(1) {
		s.log.Warning("StartSearch called while a search is already running")
		return
	}
	atomic.StoreInt32(&s.running, 1)
	atomic.StoreInt32(&s.stopFlag, 0)
	atomic.StoreUint64(&s.nodesVisited, 0)
	s.limits = limits
	s.startTime = time.Now()
	s.deadline = time.Time{}
	if limits.TimeControl && limits.MoveTime > 0 {
		s.deadline = s.startTime.Add(limits.MoveTime)
	}

	s.table.NewSearch()
	pos := p.Clone()

	go func() {
		defer func() {
			atomic.StoreInt32(&s.running, 0)
			s.sem.Release(1)
		}()

		result := s.iterativeDeepening(pos)
		result.SearchTime = time.Since(s.startTime)
		result.Nodes = s.NodesVisited()
		result.TimedOut = atomic.LoadInt32(&s.stopFlag) == 1

		s.mu.Lock()
		s.lastResult = result
		s.mu.Unlock()

		s.observer.OnBestMove(obs.Result{
			BestMove:   result.BestMove,
			PonderMove: result.PonderMove,
			Score:      result.Score,
			SearchTime: result.SearchTime,
		})
		s.slog.Info(out.Sprintf("search finished: %s", result.String()))
	}()
}

// StartSearchSync runs StartSearch and blocks until it completes,
// returning the Result directly; convenient for tests and the CLI's
// non-interactive "analyze one position" mode.
func (s *Search) StartSearchSync(p *board.Position, limits Limits) *Result {
	s.StartSearch(p, limits)
	s.WaitWhileSearching()
	return s.LastResult()
}

func clampScore(v int) int {
	if v > ScoreMax {
		return ScoreMax
	}
	if v < -ScoreMax {
		return -ScoreMax
	}
	return v
}

// costFromNodes derives the TT "cost" field (log2 of nodes spent
// resolving this subtree) from a node-count delta, per spec 4.5's
// (date, cost, selectivity, depth) replacement ranking.
func costFromNodes(n uint64) uint8 {
	if n == 0 {
		return 0
	}
	bl := stdbits.Len64(n)
	if bl > 255 {
		return 255
	}
	return uint8(bl)
}
