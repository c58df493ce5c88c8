// SPDX-License-Identifier: MIT
// Package matrix: public API facades.
//
// Purpose:
//   - Thin entry points that compose the canonical implementations.
//   - No algorithm lives here; facades only forward or fan out.
//
// AI-Hints:
//   - Call Warm right after building a large expression to start every lazy
//     node on the pool before the first read.
//   - Use Realize to get the whole value of any view as a *Dense.

package matrix

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
)

// ---------- Constructors & Utilities ----------

// NewZeros returns a new zero-initialized rows×cols *Dense.
// Thin alias of NewDense with an intention-revealing name.
func NewZeros[T Number](rows, cols int) (*Dense[T], error) {
	return NewDense[T](rows, cols)
}

// NewIdentity returns I_n.
// Complexity: O(n^2) zeroing + O(n) diagonal writes.
func NewIdentity[T Number](n int) (*Dense[T], error) {
	id, err := NewDense[T](n, n)
	if err != nil {
		return nil, err
	}
	for i := 0; i < n; i++ {
		id.data[i*n+i] = 1
	}

	return id, nil
}

// Realize materializes the whole of v.
func Realize[T Number](v View[T]) (*Dense[T], error) {
	if err := ValidateNotNil(v); err != nil {
		return nil, fmt.Errorf("Realize: %w", err)
	}

	return v.Materialize(0, 0, v.Rows(), v.Cols())
}

// ---------- Optimization hooks ----------

// Optimize schedules v in the background if it is a lazy node and reports
// whether it was. Non-blocking; idempotent.
func Optimize(v any) bool {
	o, ok := v.(Optimizable)
	if ok {
		o.Optimize()
	}

	return ok
}

// Warm schedules every lazy view in vs, then waits for all of them.
// Plain views are ignored. Returns the first failure; cancelling ctx stops
// the wait but not the computations.
func Warm[T Number](ctx context.Context, vs ...View[T]) error {
	nodes := make([]Optimizable, 0, len(vs))
	for _, v := range vs {
		if o, ok := v.(Optimizable); ok {
			o.Optimize()
			nodes = append(nodes, o)
		}
	}

	g, ctx := errgroup.WithContext(ctx)
	for _, n := range nodes {
		g.Go(func() error { return n.Wait(ctx) })
	}

	return g.Wait()
}

// ---------- Comparison ----------

// Equal reports whether a and b have the same shape and equal elements.
// Errors from materializing either side are returned unchanged.
func Equal[T Number](a, b View[T]) (bool, error) {
	if err := ValidateNotNil(a, b); err != nil {
		return false, fmt.Errorf("Equal: %w", err)
	}
	if a.Rows() != b.Rows() || a.Cols() != b.Cols() {
		return false, nil
	}
	da, err := Realize(a)
	if err != nil {
		return false, err
	}
	db, err := Realize(b)
	if err != nil {
		return false, err
	}
	for k := range da.data {
		if da.data[k] != db.data[k] {
			return false, nil
		}
	}

	return true, nil
}
