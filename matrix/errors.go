// SPDX-License-Identifier: MIT

package matrix

import "errors"

// Sentinels, possibly wrapped with the failing method and coordinates;
// match with errors.Is.
var (
	// ErrInvalidDimensions: rows or columns ≤ 0.
	ErrInvalidDimensions = errors.New("matrix: dimensions must be > 0")

	// ErrOutOfRange: row or column index outside the matrix.
	ErrOutOfRange = errors.New("matrix: index out of range")

	// ErrDimensionMismatch: ragged input rows, a short Fill buffer, or a
	// matrix whose order differs from the instance size.
	ErrDimensionMismatch = errors.New("matrix: dimension mismatch")

	// ErrNonSquare: an arc matrix must be n×n.
	ErrNonSquare = errors.New("matrix: matrix is not square")

	// ErrNaNInf: NaN anywhere, or ±Inf in a matrix built without WithAllowInf.
	ErrNaNInf = errors.New("matrix: NaN or Inf encountered")

	// ErrNilMatrix: nil receiver or argument.
	ErrNilMatrix = errors.New("matrix: nil matrix")
)
