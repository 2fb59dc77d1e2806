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

// Package parallel implements the Young-Brothers-Wait-Concept (YBWC)
// split protocol of spec section 4.9: a fixed pool of idle workers that
// a master attaches to a split-eligible Node, each independently
// scouting one sibling move and reporting back through the Node's
// atomic/mutex-guarded fields. Where the spec describes OS threads
// blocking on condition variables in a TaskStack, this package uses
// goroutines parked on a channel-backed idle stack instead -
// Goroutines-and-channels are the idiomatic Go rendition of the same
// wait/wake protocol (see DESIGN.md).
package parallel

import (
	"runtime"
	"sync"

	"github.com/frankkopp/edaxgo/internal/config"
)

// Job is one unit of work handed to an idle Task: search one sibling
// and report the result through whatever closure state it captured.
type Job func()

// Task is a worker: a goroutine that sits idle until the Pool assigns
// it a Job, runs it, then returns itself to the idle TaskStack. It is
// the direct analogue of spec 4.9's per-worker "Task" handle hanging
// off a Node.
type Task struct {
	id    int
	inbox chan Job
	pool  *Pool
}

func (t *Task) run() {
	for job := range t.inbox {
		job()
		t.pool.release(t)
	}
}

// Assign hands job to this task for execution. The caller must only
// Assign to a Task it has just Acquired from a Pool.
func (t *Task) Assign(job Job) {
	t.inbox <- job
}

// TaskStack is the idle-worker registry spec 4.9 calls the TaskStack:
// a LIFO of Tasks with no work, protected by a plain mutex rather than
// the spec's condition variable, since Pool.Acquire never blocks - a
// master with no idle worker available simply searches the sibling
// itself (spec 4.9 step 1, "if none available, proceed serially").
type TaskStack struct {
	mu   sync.Mutex
	idle []*Task
}

func (ts *TaskStack) push(t *Task) {
	ts.mu.Lock()
	ts.idle = append(ts.idle, t)
	ts.mu.Unlock()
}

func (ts *TaskStack) pop() *Task {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	n := len(ts.idle)
	if n == 0 {
		return nil
	}
	t := ts.idle[n-1]
	ts.idle = ts.idle[:n-1]
	return t
}

// Len reports the number of currently idle workers.
func (ts *TaskStack) Len() int {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	return len(ts.idle)
}

// Pool is the fixed worker pool spec 4.9 describes as "parallel OS
// threads (one per logical CPU by default)": NewPool starts len(tasks)
// goroutines once and parks them all on the idle TaskStack, matching
// config.Settings.Parallel.NumWorkers (0 meaning runtime.NumCPU()).
type Pool struct {
	tasks []*Task
	idle  TaskStack
	wg    sync.WaitGroup
}

// NewPool starts a pool of n workers (n<=0 defaults to
// config.Settings.Parallel.NumWorkers, itself defaulting to
// runtime.NumCPU()).
func NewPool(n int) *Pool {
	if n <= 0 {
		n = config.Settings.Parallel.NumWorkers
	}
	if n <= 0 {
		n = runtime.NumCPU()
	}
	p := &Pool{}
	for i := 0; i < n; i++ {
		t := &Task{id: i, inbox: make(chan Job), pool: p}
		p.tasks = append(p.tasks, t)
		p.idle.push(t)
		p.wg.Add(1)
		go func(t *Task) {
			defer p.wg.Done()
			t.run()
		}(t)
	}
	return p
}

// Size returns the number of workers in the pool.
func (p *Pool) Size() int {
	return len(p.tasks)
}

// Idle returns the number of workers currently idle.
func (p *Pool) Idle() int {
	return p.idle.Len()
}

// Acquire returns an idle Task, or nil if none is available. The
// caller owns the returned Task until its Job completes and it
// releases itself back to the pool.
func (p *Pool) Acquire() *Task {
	return p.idle.pop()
}

func (p *Pool) release(t *Task) {
	p.idle.push(t)
}

// Close stops every worker goroutine and waits for them to exit. A
// closed Pool must not be used again.
func (p *Pool) Close() {
	for _, t := range p.tasks {
		close(t.inbox)
	}
	p.wg.Wait()
}
