package matrix_test

import (
	"testing"

	"github.com/aleaf/pestools-1/matrix"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dense(t *testing.T, rows [][]float64) *matrix.Dense {
	t.Helper()
	m, err := matrix.NewDenseFromRows(rows)
	require.NoError(t, err)
	return m
}

// TestMul covers the product and its dimension guard.
func TestMul(t *testing.T) {
	a := dense(t, [][]float64{{1, 2, 3}, {4, 5, 6}})
	b := dense(t, [][]float64{{7, 8}, {9, 10}, {11, 12}})

	c, err := matrix.Mul(a, b)
	require.NoError(t, err)
	assert.Equal(t, []float64{58, 64, 139, 154}, c.RawRowMajor())

	_, err = matrix.Mul(a, a)
	require.ErrorIs(t, err, matrix.ErrDimensionMismatch)

	_, err = matrix.Mul(nil, a)
	require.ErrorIs(t, err, matrix.ErrNilMatrix)
}

// TestMulGramIsExactlySymmetric relies on identical accumulation order for XᵀX.
func TestMulGramIsExactlySymmetric(t *testing.T) {
	x := dense(t, [][]float64{{0.1, 0.7, -3.3}, {1e-3, 0, 2.2}, {5.5, 0.3, 0.0}, {-0.9, 1.1, 0.01}})
	xt, err := matrix.Transpose(x)
	require.NoError(t, err)

	g, err := matrix.Mul(xt, x)
	require.NoError(t, err)
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			a, _ := g.At(i, j)
			b, _ := g.At(j, i)
			assert.Equal(t, a, b)
		}
	}
}

// TestTransposeAndScale covers the remaining kernels.
func TestTransposeAndScale(t *testing.T) {
	a := dense(t, [][]float64{{1, 2, 3}, {4, 5, 6}})

	at, err := matrix.Transpose(a)
	require.NoError(t, err)
	assert.Equal(t, 3, at.Rows())
	assert.Equal(t, []float64{1, 4, 2, 5, 3, 6}, at.RawRowMajor())

	s, err := matrix.Scale(a, -2)
	require.NoError(t, err)
	assert.Equal(t, []float64{-2, -4, -6, -8, -10, -12}, s.RawRowMajor())

	r, err := matrix.ScaleRows(a, []float64{0, 10})
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 0, 0, 40, 50, 60}, r.RawRowMajor())

	_, err = matrix.ScaleRows(a, []float64{1})
	require.ErrorIs(t, err, matrix.ErrDimensionMismatch)
}
