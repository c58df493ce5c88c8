// SPDX-License-Identifier: MIT

// Package pool - fixed-size worker pool with an unbounded task queue.
//
// Purpose:
//   - Run submitted tasks on a fixed set of long-lived workers.
//   - Never block the submitter: the queue grows as needed.
//   - Survive misbehaving tasks: a panic is recovered, logged and counted.
//
// Ordering:
//   - FIFO (default): the oldest queued task runs first.
//   - LIFO: the newest queued task runs first (depth-first over nested work).
//
// Shutdown:
//   - Close stops accepting tasks, lets workers drain the queue, then waits
//     for every worker to exit. Submit after Close returns ErrClosed.
package pool

import (
	"errors"
	"fmt"
	"runtime/debug"
	"strings"
	"sync"

	"github.com/rs/zerolog"
)

var (
	// ErrClosed is returned by Submit after Close.
	ErrClosed = errors.New("pool: closed")

	// ErrNilTask is returned by Submit for a nil task.
	ErrNilTask = errors.New("pool: nil task")
)

// Order selects which queued task a free worker takes next.
type Order int

const (
	// FIFO runs tasks in submission order.
	FIFO Order = iota
	// LIFO runs the most recently submitted task first.
	LIFO
)

// String returns "fifo" or "lifo".
func (o Order) String() string {
	if o == LIFO {
		return "lifo"
	}

	return "fifo"
}

// ParseOrder maps "fifo"/"lifo" (case-insensitive) to an Order.
func ParseOrder(s string) (Order, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "fifo":
		return FIFO, nil
	case "lifo":
		return LIFO, nil
	default:
		return FIFO, fmt.Errorf("pool: unknown queue order %q", s)
	}
}

// Option configures a Pool.
type Option func(*Pool)

// WithOrder sets the dequeue order.
func WithOrder(o Order) Option {
	return func(p *Pool) { p.order = o }
}

// WithLogger sets the logger used for worker lifecycle and task panics.
func WithLogger(l zerolog.Logger) Option {
	return func(p *Pool) { p.log = l }
}

// Pool is a fixed-size set of workers consuming a shared queue.
// All methods are safe for concurrent use.
type Pool struct {
	mu      sync.Mutex
	cond    *sync.Cond
	queue   []func()
	closed  bool
	workers int
	order   Order
	log     zerolog.Logger
	wg      sync.WaitGroup
}

// New starts a pool with the given number of workers (minimum 1).
func New(workers int, opts ...Option) *Pool {
	if workers < 1 {
		workers = 1
	}
	p := &Pool{workers: workers, log: zerolog.Nop()}
	p.cond = sync.NewCond(&p.mu)
	for _, opt := range opts {
		opt(p)
	}

	p.wg.Add(workers)
	for i := 0; i < workers; i++ {
		go p.loop(i)
	}
	p.log.Debug().Int("workers", workers).Str("order", p.order.String()).Msg("pool started")

	return p
}

// Workers returns the number of workers.
func (p *Pool) Workers() int { return p.workers }

// Pending returns the number of queued, not yet started tasks.
func (p *Pool) Pending() int {
	p.mu.Lock()
	defer p.mu.Unlock()

	return len(p.queue)
}

// Submit enqueues task. It never blocks.
func (p *Pool) Submit(task func()) error {
	if task == nil {
		return ErrNilTask
	}

	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return ErrClosed
	}
	p.queue = append(p.queue, task)
	tasksSubmitted.Inc()
	queueDepth.Inc()
	p.mu.Unlock()
	p.cond.Signal()

	return nil
}

// Close stops accepting tasks, drains the queue and waits for the workers.
// Calling Close more than once is safe.
func (p *Pool) Close() {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		p.wg.Wait()
		return
	}
	p.closed = true
	p.mu.Unlock()
	p.cond.Broadcast()

	p.wg.Wait()
	p.log.Debug().Msg("pool stopped")
}

func (p *Pool) loop(id int) {
	defer p.wg.Done()
	for {
		task, ok := p.next()
		if !ok {
			return
		}
		p.runTask(id, task)
	}
}

// next blocks until a task is available; ok is false once closed and drained.
func (p *Pool) next() (func(), bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	for len(p.queue) == 0 && !p.closed {
		p.cond.Wait()
	}
	n := len(p.queue)
	if n == 0 {
		return nil, false
	}

	var task func()
	if p.order == LIFO {
		task = p.queue[n-1]
		p.queue[n-1] = nil
		p.queue = p.queue[:n-1]
	} else {
		task = p.queue[0]
		p.queue[0] = nil
		p.queue = p.queue[1:]
	}
	queueDepth.Dec()

	return task, true
}

func (p *Pool) runTask(id int, task func()) {
	defer func() {
		if r := recover(); r != nil {
			taskPanics.Inc()
			p.log.Error().
				Int("worker", id).
				Interface("panic", r).
				Bytes("stack", debug.Stack()).
				Msg("task panicked")
		}
		tasksCompleted.Inc()
	}()
	task()
}
