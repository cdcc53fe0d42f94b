// SPDX-License-Identifier: MIT

// Package matrix: shape validators shared by model construction and kernels.
package matrix

import "fmt"

func validatorErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

// ValidateNotNil ensures the matrix reference is non-nil.
// Complexity: O(1).
func ValidateNotNil(m Matrix) error {
	if m == nil {
		return validatorErrorf("ValidateNotNil", ErrNilMatrix)
	}
	if d, ok := m.(*Dense); ok && d == nil {
		return validatorErrorf("ValidateNotNil", ErrNilMatrix)
	}

	return nil
}

// ValidateSquare checks that m is non-nil and square (Rows == Cols).
// Complexity: O(1).
func ValidateSquare(m Matrix) error {
	if err := ValidateNotNil(m); err != nil {
		return err
	}
	if m.Rows() != m.Cols() {
		return validatorErrorf("ValidateSquare", ErrNonSquare)
	}

	return nil
}

// ValidateOrder checks that m is square with exactly n rows.
// Complexity: O(1).
func ValidateOrder(m Matrix, n int) error {
	if err := ValidateSquare(m); err != nil {
		return err
	}
	if m.Rows() != n {
		return validatorErrorf("ValidateOrder", ErrDimensionMismatch)
	}

	return nil
}
