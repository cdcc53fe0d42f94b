// SPDX-License-Identifier: MIT
// Package matrix_test contains shared fixtures for matrix tests.

package matrix_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lvroute/matrix"
)

// hide wraps any Matrix to hide its concrete type, forcing interface
// fallback paths in code that type-switches on *Dense.
type hide struct{ matrix.Matrix }

// fillInfOffDiagZeroDiag initializes a distance fixture: diagonal 0,
// off-diagonal +Inf.
func fillInfOffDiagZeroDiag(t *testing.T, d *matrix.Dense) {
	t.Helper()

	n := d.Rows()
	require.Equal(t, n, d.Cols(), "fixture must be square")

	inf := math.Inf(1)
	data := make([]float64, n*n)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if i != j {
				data[i*n+j] = inf
			}
		}
	}
	require.NoError(t, d.Fill(data))
}

// clrsArcs is the 5-vertex directed example with negative arcs and no
// negative cycle (Cormen et al., Fig. 25.4).
func clrsArcs(t *testing.T) *matrix.Dense {
	t.Helper()

	d, err := matrix.NewDense(5, 5, matrix.WithAllowInf())
	require.NoError(t, err)
	fillInfOffDiagZeroDiag(t, d)
	for _, e := range []struct {
		u, v int
		w    float64
	}{
		{0, 1, 3}, {0, 2, 8}, {0, 4, -4},
		{1, 3, 1}, {1, 4, 7},
		{2, 1, 4},
		{3, 0, 2}, {3, 2, -5},
		{4, 3, 6},
	} {
		require.NoError(t, d.Set(e.u, e.v, e.w))
	}

	return d
}

var clrsWant = [][]float64{
	{0, 1, -3, 2, -4},
	{3, 0, -4, 1, -1},
	{7, 4, 0, 5, 3},
	{2, -1, -5, 0, -2},
	{8, 5, 1, 6, 0},
}
