// SPDX-License-Identifier: MIT
// Package: matrix
//
// Purpose:
//  - Single source of truth for shape, index and region checks.
//  - Constructors and accessors delegate here so guard logic never drifts.
//
// Determinism & Performance:
//  - All checks are pure, O(1) and allocate only on the error path.
//
// Note:
//  - Composite validators follow a fixed sequence (NotNil -> Shape).

package matrix

import "fmt"

// validatorErrorf wraps an underlying sentinel with the validator tag.
func validatorErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

// ValidateNotNil ensures every operand is a non-nil View.
// Returns ErrNilMatrix on the first nil. Complexity: O(n).
func ValidateNotNil[T Number](vs ...View[T]) error {
	for k, v := range vs {
		if v == nil {
			return validatorErrorf(fmt.Sprintf("ValidateNotNil: operand %d", k), ErrNilMatrix)
		}
	}

	return nil
}

// ValidateSameShape ensures a and b have equal dimensions.
// Assumes both are non-nil. Returns ErrShapeMismatch.
func ValidateSameShape[T Number](a, b View[T]) error {
	if a.Rows() != b.Rows() {
		return validatorErrorf(fmt.Sprintf("ValidateSameShape: rows %d != %d", a.Rows(), b.Rows()), ErrShapeMismatch)
	}
	if a.Cols() != b.Cols() {
		return validatorErrorf(fmt.Sprintf("ValidateSameShape: cols %d != %d", a.Cols(), b.Cols()), ErrShapeMismatch)
	}

	return nil
}

// ValidateMulCompatible ensures a.Cols == b.Rows.
// Assumes both are non-nil. Returns ErrIncompatibleDimensions.
func ValidateMulCompatible[T Number](a, b View[T]) error {
	if a.Cols() != b.Rows() {
		return validatorErrorf(
			fmt.Sprintf("ValidateMulCompatible: %dx%d * %dx%d", a.Rows(), a.Cols(), b.Rows(), b.Cols()),
			ErrIncompatibleDimensions,
		)
	}

	return nil
}

// ValidateSquare ensures v.Rows == v.Cols. Returns ErrShapeMismatch.
func ValidateSquare[T Number](v View[T]) error {
	if v.Rows() != v.Cols() {
		return validatorErrorf(fmt.Sprintf("ValidateSquare: %dx%d", v.Rows(), v.Cols()), ErrShapeMismatch)
	}

	return nil
}

// ValidateColumnVector ensures v has exactly one column. Returns ErrShapeMismatch.
func ValidateColumnVector[T Number](v View[T]) error {
	if v.Cols() != 1 {
		return validatorErrorf(fmt.Sprintf("ValidateColumnVector: %dx%d", v.Rows(), v.Cols()), ErrShapeMismatch)
	}

	return nil
}

// checkIndex verifies 0 <= i < rows and 0 <= j < cols.
func checkIndex(tag string, i, j, rows, cols int) error {
	if i < 0 || i >= rows || j < 0 || j >= cols {
		return fmt.Errorf("%s(%d,%d): %w", tag, i, j, ErrOutOfRange)
	}

	return nil
}

// checkRegion verifies that [r0,r0+h)×[c0,c0+w) lies inside a rows×cols view.
// Zero-area regions are accepted when the origin is in [0,rows]×[0,cols].
func checkRegion(tag string, r0, c0, h, w, rows, cols int) error {
	if r0 < 0 || c0 < 0 || h < 0 || w < 0 || r0+h > rows || c0+w > cols {
		return fmt.Errorf("%s(%d,%d,%d,%d) on %dx%d: %w", tag, r0, c0, h, w, rows, cols, ErrOutOfRange)
	}

	return nil
}

// checkExtent verifies a requested shape is non-negative.
func checkExtent(tag string, rows, cols int) error {
	if rows < 0 || cols < 0 {
		return fmt.Errorf("%s(%d,%d): %w", tag, rows, cols, ErrInvalidDimensions)
	}

	return nil
}

// ceilDiv returns ceil(a/b) for a >= 0, b > 0.
func ceilDiv(a, b int) int {
	if a <= 0 {
		return 0
	}

	return 1 + (a-1)/b
}
