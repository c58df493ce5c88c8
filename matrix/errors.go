// SPDX-License-Identifier: MIT
// Package matrix: sentinel error set.
// Every failure returned by this package wraps exactly one of these sentinels;
// tests and callers match them with errors.Is. User-triggered conditions never panic.

package matrix

import "errors"

// NOTE ON NAMING & PREFIXING
// --------------------------
// Every message is prefixed with "matrix: ..." so log lines are easy to grep.
// Call sites add context as fmt.Errorf("Type.Method(i,j): %w", ErrX).
//
// ERROR PRIORITY (enforced in tests):
// nil operand -> shape/dimension -> index -> unsupported mutation -> engine state.

var (
	// ErrNilMatrix is returned when a required operand is nil.
	ErrNilMatrix = errors.New("matrix: nil matrix")

	// ErrInvalidDimensions indicates a non-positive dimension where one is required
	// (NewDense, empty operand lists, non-positive grid sizes).
	ErrInvalidDimensions = errors.New("matrix: invalid dimensions")

	// ErrOutOfRange indicates a row/column index or a region outside the view.
	ErrOutOfRange = errors.New("matrix: index out of range")

	// ErrShapeMismatch indicates an operand with the wrong shape: Sum/MultiSum
	// operands that differ, a non-square Diagonal source, a non-column
	// DiagonalMatrix source, inconsistent Concat blocks, or Dense constructors
	// fed the wrong data length.
	ErrShapeMismatch = errors.New("matrix: shape mismatch")

	// ErrIncompatibleDimensions indicates a product whose inner dimensions differ
	// (a.Cols != b.Rows).
	ErrIncompatibleDimensions = errors.New("matrix: incompatible dimensions")

	// ErrUnsupported is returned by Set on read-only expressions.
	ErrUnsupported = errors.New("matrix: operation not supported")

	// ErrIllegalState marks an internal invariant violation discovered while
	// optimizing (mis-shaped chain, recovered panic). The affected node is
	// permanently failed and every reader sees the same error.
	ErrIllegalState = errors.New("matrix: illegal state")
)

// ErrIndexOutOfBounds is an alias of ErrOutOfRange.
//
// Deprecated: use ErrOutOfRange.
var ErrIndexOutOfBounds = ErrOutOfRange
