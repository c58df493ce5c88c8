// SPDX-License-Identifier: MIT

// Package matrix - shared machinery of lazily realized nodes.
//
// Purpose:
//   - Hold the one-shot memo cell that turns an expression into a realized *Dense.
//   - Hold the node's inputs until the result is installed, then drop them.
//   - Serve At/Materialize from the realized value, bounds-checked first.
//
// Lifecycle:
//   - Unstarted -> Scheduled (Optimize) -> Running (worker or helping waiter) -> Done.
//   - A failure is published like a value: every reader gets the same error, forever.
//   - Inputs are released only after a successful computation, so a failed node
//     can still be cloned and retried as a fresh expression.

package matrix

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/katalvlaran/lazymat/memo"
)

// computeFunc realizes a node from its held inputs. ctx carries the tracing span only.
type computeFunc[T Number] func(ctx context.Context, in []View[T]) (*Dense[T], error)

// lazy is embedded by Sum, Product and the optimizer's derived nodes.
type lazy[T Number] struct {
	rows, cols int
	label      string // display name, e.g. "Product"
	kind       string // metric/span label, e.g. "chain"
	engine     *Engine
	cell       *memo.Cell[*Dense[T]]
	realized   atomic.Pointer[Dense[T]] // cached after the first successful wait

	mu     sync.Mutex
	inputs []View[T] // nil once released
}

func (l *lazy[T]) init(e *Engine, label, kind string, rows, cols int, inputs []View[T], compute computeFunc[T]) {
	l.engine, l.label, l.kind = e, label, kind
	l.rows, l.cols = rows, cols
	l.inputs = inputs
	l.cell = memo.New(func() (*Dense[T], error) {
		in := l.held()
		d, err := runOptimization(e, kind, rows, cols, func(ctx context.Context) (*Dense[T], error) {
			return compute(ctx, in)
		})
		if err == nil {
			l.release()
		}

		return d, err
	})
}

// Rows returns the row count.
func (l *lazy[T]) Rows() int { return l.rows }

// Cols returns the column count.
func (l *lazy[T]) Cols() int { return l.cols }

// State reports the optimization state.
func (l *lazy[T]) State() memo.State { return l.cell.State() }

// Optimize schedules the computation on the engine pool without blocking.
// Calling it again, or after a read already started the work, is a no-op.
func (l *lazy[T]) Optimize() {
	if l.cell.Schedule(l.engine) {
		l.engine.log.Debug().
			Str("node", l.label).
			Int("rows", l.rows).
			Int("cols", l.cols).
			Msg("optimization scheduled")
	}
}

// Wait schedules the node if needed and blocks until it is Done or ctx ends.
// A cancelled wait leaves the computation running.
func (l *lazy[T]) Wait(ctx context.Context) error {
	if l.realized.Load() != nil {
		return nil
	}
	d, err := l.cell.WaitContext(ctx, l.engine)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil && errors.Is(err, ctxErr) {
			return err
		}
		return fmt.Errorf("%s %dx%d: %w", l.label, l.rows, l.cols, err)
	}
	l.realized.Store(d)

	return nil
}

// result returns the realized value, computing it on first demand.
func (l *lazy[T]) result() (*Dense[T], error) {
	if d := l.realized.Load(); d != nil {
		return d, nil
	}
	d, err := l.cell.Wait(l.engine)
	if err != nil {
		return nil, fmt.Errorf("%s %dx%d: %w", l.label, l.rows, l.cols, err)
	}
	l.realized.Store(d)

	return d, nil
}

// At returns element (i, j) of the realized value.
func (l *lazy[T]) At(i, j int) (T, error) {
	var zero T
	if err := checkIndex(l.label+"."+ctxAt, i, j, l.rows, l.cols); err != nil {
		return zero, err
	}
	d, err := l.result()
	if err != nil {
		return zero, err
	}

	return d.data[i*d.c+j], nil
}

// Set always fails: lazy nodes are read-only.
func (l *lazy[T]) Set(i, j int, _ T) error {
	if err := checkIndex(l.label+"."+ctxSet, i, j, l.rows, l.cols); err != nil {
		return err
	}

	return fmt.Errorf("%s.Set(%d,%d): %w", l.label, i, j, ErrUnsupported)
}

// Materialize copies a region of the realized value.
func (l *lazy[T]) Materialize(r0, c0, rows, cols int) (*Dense[T], error) {
	if err := checkRegion(l.label+"."+ctxMaterialize, r0, c0, rows, cols, l.rows, l.cols); err != nil {
		return nil, err
	}
	d, err := l.result()
	if err != nil {
		return nil, err
	}

	return d.Materialize(r0, c0, rows, cols)
}

// Describe implements Describer.
func (l *lazy[T]) Describe() string {
	return fmt.Sprintf("%s %dx%d [%s]", l.label, l.rows, l.cols, l.cell.State())
}

// Inputs implements Describer; empty once the inputs have been released.
func (l *lazy[T]) Inputs() []Describer {
	in := l.held()
	if in == nil {
		return nil
	}
	out := make([]Describer, len(in))
	for k, v := range in {
		out[k] = describerOf(v)
	}

	return out
}

func (l *lazy[T]) engineOf() *Engine { return l.engine }

func (l *lazy[T]) held() []View[T] {
	l.mu.Lock()
	defer l.mu.Unlock()

	return l.inputs
}

// unstartedInputs returns the inputs only while nobody has started the node.
// The check runs under the cell lock, so a concurrent Optimize either sees
// the node before this call or finds it already absorbed by the caller.
// Lock order: cell, then l.mu.
func (l *lazy[T]) unstartedInputs() []View[T] {
	var in []View[T]
	l.cell.WhileUnstarted(func() { in = l.held() })

	return in
}

func (l *lazy[T]) release() {
	l.mu.Lock()
	l.inputs = nil
	l.mu.Unlock()
}

// cloneWith deep-clones the held inputs and rebuilds the node from them.
// Once inputs are released, the clone is a copy of the realized value.
func (l *lazy[T]) cloneWith(rebuild func(in []View[T]) View[T]) View[T] {
	if in := l.held(); in != nil {
		cl := make([]View[T], len(in))
		for k, v := range in {
			cl[k] = v.Clone()
		}
		return rebuild(cl)
	}

	d, err := l.result()
	if err != nil {
		// inputs are released only after success
		panic(fmt.Sprintf("matrix: %s released its inputs without a result: %v", l.label, err))
	}

	return d.Copy()
}
