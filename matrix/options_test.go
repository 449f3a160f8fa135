// SPDX-License-Identifier: MIT

package matrix_test

import (
	"math"
	"testing"

	"github.com/aleaf/pestools-1/matrix"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestWithEpsilonPanics rejects nonsensical tolerances at option construction.
func TestWithEpsilonPanics(t *testing.T) {
	for _, eps := range []float64{-1e-9, math.NaN(), math.Inf(1)} {
		assert.Panics(t, func() { matrix.WithEpsilon(eps) }, "eps=%v", eps)
	}
	assert.NotPanics(t, func() { matrix.WithEpsilon(0) })
}

// TestEpsilonDrivesIsSymmetric: the tolerance is honoured and last writer wins.
func TestEpsilonDrivesIsSymmetric(t *testing.T) {
	vals := [][]float64{{1, 2 + 1e-7}, {2, 1}}
	names := []string{"a", "b"}

	def, err := matrix.NewLabeled(vals, names, names)
	require.NoError(t, err)
	assert.False(t, def.IsSymmetric())

	loose, err := matrix.NewLabeled(vals, names, names, matrix.WithEpsilon(1e-6))
	require.NoError(t, err)
	assert.True(t, loose.IsSymmetric())

	back, err := matrix.NewLabeled(vals, names, names, matrix.WithEpsilon(1e-6), matrix.WithEpsilon(0))
	require.NoError(t, err)
	assert.False(t, back.IsSymmetric())
}

// TestNaNPolicy toggles finite-value validation on construction.
func TestNaNPolicy(t *testing.T) {
	vals := [][]float64{{math.NaN()}}
	names := []string{"x"}

	_, err := matrix.NewLabeled(vals, names, names)
	require.ErrorIs(t, err, matrix.ErrNaNInf)

	m, err := matrix.NewLabeled(vals, names, names, matrix.WithNoValidateNaNInf())
	require.NoError(t, err)
	v, err := m.At(0, 0)
	require.NoError(t, err)
	assert.True(t, math.IsNaN(v))

	_, err = matrix.NewLabeled(vals, names, names, matrix.WithNoValidateNaNInf(), matrix.WithValidateNaNInf())
	require.ErrorIs(t, err, matrix.ErrNaNInf)
}
