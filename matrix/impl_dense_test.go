// SPDX-License-Identifier: MIT

package matrix_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lvroute/matrix"
)

func TestNewDense_InvalidDimensions(t *testing.T) {
	t.Parallel()

	for _, dims := range [][2]int{{0, 1}, {1, 0}, {-1, 3}} {
		_, err := matrix.NewDense(dims[0], dims[1])
		require.ErrorIs(t, err, matrix.ErrInvalidDimensions)
	}
}

func TestDense_AtSetBounds(t *testing.T) {
	t.Parallel()

	m, err := matrix.NewDense(2, 3)
	require.NoError(t, err)
	require.Equal(t, 2, m.Rows())
	require.Equal(t, 3, m.Cols())

	require.NoError(t, m.Set(1, 2, 4.5))
	v, err := m.At(1, 2)
	require.NoError(t, err)
	require.Equal(t, 4.5, v)
	require.Equal(t, 4.5, m.Get(1, 2))

	_, err = m.At(2, 0)
	require.ErrorIs(t, err, matrix.ErrOutOfRange)
	require.ErrorIs(t, m.Set(0, -1, 1), matrix.ErrOutOfRange)
}

func TestDense_NumericPolicy(t *testing.T) {
	t.Parallel()

	finite, _ := matrix.NewDense(2, 2)
	require.ErrorIs(t, finite.Set(0, 1, math.NaN()), matrix.ErrNaNInf)
	require.ErrorIs(t, finite.Set(0, 1, math.Inf(1)), matrix.ErrNaNInf)
	require.False(t, finite.AllowsInf())

	inf, _ := matrix.NewDense(2, 2, matrix.WithAllowInf())
	require.NoError(t, inf.Set(0, 1, math.Inf(1)))
	require.ErrorIs(t, inf.Set(0, 1, math.Inf(-1)), matrix.ErrNaNInf)
	require.ErrorIs(t, inf.Set(0, 1, math.NaN()), matrix.ErrNaNInf)
	require.True(t, inf.AllowsInf())
}

func TestFromRows(t *testing.T) {
	t.Parallel()

	m, err := matrix.FromRows([][]float64{{1, 2}, {3, 4}})
	require.NoError(t, err)
	require.Equal(t, []float64{1, 2, 3, 4}, m.Data())

	row, err := m.Row(1)
	require.NoError(t, err)
	require.Equal(t, []float64{3, 4}, row)

	_, err = matrix.FromRows([][]float64{{1, 2}, {3}})
	require.ErrorIs(t, err, matrix.ErrDimensionMismatch)

	_, err = matrix.FromRows(nil)
	require.ErrorIs(t, err, matrix.ErrInvalidDimensions)

	_, err = matrix.FromRows([][]float64{{0, math.Inf(1)}, {1, 0}})
	require.ErrorIs(t, err, matrix.ErrNaNInf)

	_, err = matrix.FromRows([][]float64{{0, math.Inf(1)}, {1, 0}}, matrix.WithAllowInf())
	require.NoError(t, err)
}

func TestDense_CloneIsDeep(t *testing.T) {
	t.Parallel()

	m, _ := matrix.FromRows([][]float64{{1, 2}, {3, 4}}, matrix.WithAllowInf())
	c := m.CloneDense()
	require.NoError(t, c.Set(0, 0, 9))
	require.Equal(t, 1.0, m.Get(0, 0))
	require.True(t, c.AllowsInf())

	var generic matrix.Matrix = m
	cp := generic.Clone()
	require.NoError(t, cp.Set(1, 1, -1))
	require.Equal(t, 4.0, m.Get(1, 1))
}

func TestDense_FillRejectsWithoutMutation(t *testing.T) {
	t.Parallel()

	m, _ := matrix.FromRows([][]float64{{1, 2}, {3, 4}})
	require.ErrorIs(t, m.Fill([]float64{1, 2, 3}), matrix.ErrDimensionMismatch)
	require.ErrorIs(t, m.Fill([]float64{0, 0, math.NaN(), 0}), matrix.ErrNaNInf)
	require.Equal(t, []float64{1, 2, 3, 4}, m.Data())
}

func TestValidators(t *testing.T) {
	t.Parallel()

	require.ErrorIs(t, matrix.ValidateNotNil(nil), matrix.ErrNilMatrix)
	var d *matrix.Dense
	require.ErrorIs(t, matrix.ValidateNotNil(d), matrix.ErrNilMatrix)

	rect, _ := matrix.NewDense(2, 3)
	require.ErrorIs(t, matrix.ValidateSquare(rect), matrix.ErrNonSquare)

	sq, _ := matrix.NewDense(3, 3)
	require.NoError(t, matrix.ValidateOrder(sq, 3))
	require.ErrorIs(t, matrix.ValidateOrder(sq, 4), matrix.ErrDimensionMismatch)
}
