// SPDX-License-Identifier: MIT

package memo

import (
	"context"
	"fmt"
	"runtime/debug"
	"sync"
	"sync/atomic"
)

// State is the lifecycle position of a Cell.
type State int32

const (
	// Unstarted: nobody asked for the value yet.
	Unstarted State = iota
	// Scheduled: handed to an executor (or left for the first waiter).
	Scheduled
	// Running: the computation has been claimed and is executing.
	Running
	// Done: a value or an error is published.
	Done
)

// String returns a lower-case state name.
func (s State) String() string {
	switch s {
	case Unstarted:
		return "unstarted"
	case Scheduled:
		return "scheduled"
	case Running:
		return "running"
	case Done:
		return "done"
	default:
		return fmt.Sprintf("state(%d)", int32(s))
	}
}

// Executor accepts tasks for asynchronous execution.
// Submit must not block; a non-nil error means the task was NOT accepted.
type Executor interface {
	Submit(task func()) error
}

// ExecutorFunc adapts a plain function to Executor.
type ExecutorFunc func(task func()) error

// Submit calls f(task).
func (f ExecutorFunc) Submit(task func()) error { return f(task) }

// PanicError is the error a Cell publishes when its computation panics.
type PanicError struct {
	Value any
	Stack []byte
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("memo: computation panicked: %v", e.Value)
}

// Unwrap exposes a panic value that was itself an error.
func (e *PanicError) Unwrap() error {
	if err, ok := e.Value.(error); ok {
		return err
	}

	return nil
}

type outcome[V any] struct {
	value V
	err   error
}

// Cell is a one-shot memoized computation. The zero value is not usable;
// construct with New.
type Cell[V any] struct {
	mu    sync.Mutex
	state State
	fn    func() (V, error) // nil once Done, so captured inputs can be collected
	done  chan struct{}

	result atomic.Pointer[outcome[V]] // lock-free fast path for Done cells
}

// New returns an Unstarted cell that will compute fn at most once.
func New[V any](fn func() (V, error)) *Cell[V] {
	return &Cell[V]{fn: fn, done: make(chan struct{})}
}

// State returns the current lifecycle state.
func (c *Cell[V]) State() State {
	if c.result.Load() != nil {
		return Done
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.state
}

// Done returns a channel closed when the result is published.
func (c *Cell[V]) Done() <-chan struct{} { return c.done }

// Peek returns the published result without blocking.
// ok is false while the cell is not Done.
func (c *Cell[V]) Peek() (value V, err error, ok bool) {
	if o := c.result.Load(); o != nil {
		return o.value, o.err, true
	}

	return value, nil, false
}

// Schedule moves an Unstarted cell to Scheduled and submits it to ex.
// It reports whether this call performed the transition; later calls are no-ops.
// A nil executor, or one that refuses the task, leaves the cell Scheduled
// for the first waiter to claim.
func (c *Cell[V]) Schedule(ex Executor) bool {
	c.mu.Lock()
	if c.state != Unstarted {
		c.mu.Unlock()
		return false
	}
	c.state = Scheduled
	c.mu.Unlock()

	if ex != nil {
		_ = ex.Submit(c.run)
	}

	return true
}

// WhileUnstarted runs f with the cell held in the Unstarted state and reports
// whether it ran. Schedule and Wait block until f returns, so whatever f
// decides about the cell happens strictly before anyone starts it.
// f must not call back into c.
func (c *Cell[V]) WhileUnstarted(f func()) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state != Unstarted {
		return false
	}
	f()

	return true
}

// Wait schedules the cell if needed and blocks until it is Done.
func (c *Cell[V]) Wait(ex Executor) (V, error) {
	return c.WaitContext(context.Background(), ex)
}

// WaitContext is Wait with cancellation. Cancelling ctx abandons the wait only;
// the computation itself keeps going and still publishes its result.
func (c *Cell[V]) WaitContext(ctx context.Context, ex Executor) (V, error) {
	if o := c.result.Load(); o != nil {
		return o.value, o.err
	}

	c.Schedule(ex)
	if c.claim() {
		c.execute()
	} else {
		select {
		case <-c.done:
		case <-ctx.Done():
			var zero V
			return zero, ctx.Err()
		}
	}

	o := c.result.Load()

	return o.value, o.err
}

// run is the task handed to the executor. A no-op if a waiter got there first.
func (c *Cell[V]) run() {
	if c.claim() {
		c.execute()
	}
}

func (c *Cell[V]) claim() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state != Scheduled {
		return false
	}
	c.state = Running

	return true
}

func (c *Cell[V]) execute() {
	v, err := c.call()

	c.mu.Lock()
	c.fn = nil
	c.state = Done
	c.result.Store(&outcome[V]{value: v, err: err})
	close(c.done)
	c.mu.Unlock()
}

func (c *Cell[V]) call() (v V, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &PanicError{Value: r, Stack: debug.Stack()}
		}
	}()

	return c.fn()
}
