// SPDX-License-Identifier: MIT

// Package matrix: the public capability set every matrix expression shares.
// This file contains ONLY interfaces and type constraints; concrete views live
// in impl_*.go and lazy nodes in impl_sum.go / impl_product.go.
package matrix

import (
	"context"

	"github.com/katalvlaran/lazymat/memo"
)

// Number is the element constraint: every built-in integer and floating kind.
// Arithmetic is native Go arithmetic (integer overflow wraps).
type Number interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uintptr |
		~float32 | ~float64
}

// View is a rectangular, possibly lazy, matrix expression over T.
//
// Contract:
//   - At/Set check bounds first and return ErrOutOfRange on violation.
//   - Read-only expressions return ErrUnsupported from Set.
//   - Materialize copies the region [r0,r0+rows)×[c0,c0+cols) into a fresh Dense;
//     zero-area regions are legal as long as the origin is in [0,Rows]×[0,Cols].
//   - Clone returns an independent deep copy; writes to the clone never reach the original.
//
// Complexity: At/Set O(1) amortized for views over Dense; Materialize O(rows*cols).
type View[T Number] interface {
	Rows() int
	Cols() int
	At(i, j int) (T, error)
	Set(i, j int, v T) error
	Materialize(r0, c0, rows, cols int) (*Dense[T], error)
	Clone() View[T]
}

// Describer is implemented by every expression in this package and drives PrintTree.
type Describer interface {
	// Describe returns a one-line label, e.g. "Dense 4x9".
	Describe() string
	// Inputs returns the currently held child expressions (nil once released).
	Inputs() []Describer
}

// Optimizable is the lazily realized subset of expressions (Sum, Product and
// the derived nodes the optimizer creates).
type Optimizable interface {
	// Optimize schedules the one-shot computation on the engine's pool. Idempotent.
	Optimize()
	// Wait schedules if needed and blocks until the node is Done or ctx ends.
	Wait(ctx context.Context) error
	// State reports Unstarted, Scheduled, Running or Done.
	State() memo.State
}
