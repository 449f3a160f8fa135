// SPDX-License-Identifier: MIT

package covariance_test

import (
	"bytes"
	"errors"
	"log/slog"
	"math"
	"math/rand"
	"testing"

	"github.com/aleaf/pestools-1/covariance"
	"github.com/aleaf/pestools-1/matrix"
	"github.com/aleaf/pestools-1/matrix/ops"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/floats"
)

var (
	obs5 = []string{"h1", "h2", "h3", "q1", "q2"}
	par3 = []string{"hk", "rch", "sy"}
)

// jac5x3 is the fixed Jacobian of the worked example; JᵀJ = [[2,1,0],[1,3,1],[0,1,2]].
func jac5x3(t *testing.T) *matrix.Labeled {
	t.Helper()
	j, err := matrix.NewLabeled([][]float64{
		{1, 0, 0},
		{0, 1, 0},
		{0, 0, 1},
		{1, 1, 0},
		{0, 1, 1},
	}, obs5, par3)
	require.NoError(t, err)
	return j
}

func flat(m *matrix.Labeled) []float64 { return m.Dense().RawRowMajor() }

func ones(n int) []float64 {
	w := make([]float64, n)
	for i := range w {
		w[i] = 1
	}
	return w
}

// TestComputeWorkedExample: 5 observations, 3 parameters, unit weights, phi = 2
// ⇒ dof = 2 and Cov = (JᵀJ)⁻¹ = 1/8·[[5,-2,1],[-2,4,-2],[1,-2,5]].
func TestComputeWorkedExample(t *testing.T) {
	est, err := covariance.New().Estimate(jac5x3(t), ones(5), 2.0)
	require.NoError(t, err)

	assert.Equal(t, 2, est.DOF)
	assert.Equal(t, 1.0, est.Scale)
	assert.Equal(t, ops.SolverCholesky, est.Solver)
	assert.Greater(t, est.RCond, 0.1)

	want := []float64{
		0.625, -0.25, 0.125,
		-0.25, 0.5, -0.25,
		0.125, -0.25, 0.625,
	}
	assert.True(t, floats.EqualApprox(want, flat(est.Covariance), 1e-12), "got %v", flat(est.Covariance))
	assert.Equal(t, par3, est.Covariance.RowNames())
	assert.Equal(t, par3, est.Covariance.ColNames())
}

// TestComputeWeights checks Q = diag(w²): doubling every weight quarters (JᵀQJ)⁻¹.
func TestComputeWeights(t *testing.T) {
	w := []float64{2, 2, 2, 2, 2}
	cov, err := covariance.Compute(jac5x3(t), w, 2.0)
	require.NoError(t, err)

	want := []float64{
		0.625 / 4, -0.25 / 4, 0.125 / 4,
		-0.25 / 4, 0.5 / 4, -0.25 / 4,
		0.125 / 4, -0.25 / 4, 0.625 / 4,
	}
	assert.True(t, floats.EqualApprox(want, flat(cov), 1e-12))
}

// TestZeroWeightsReduceDOF shows zero-weighted observations drop out of dof and JᵀQJ.
func TestZeroWeightsReduceDOF(t *testing.T) {
	est, err := covariance.New().Estimate(jac5x3(t), []float64{1, 1, 1, 1, 0}, 3.0)
	require.NoError(t, err)
	assert.Equal(t, 1, est.DOF)
	assert.Equal(t, 3.0, est.Scale)

	// Remaining rows give A = [[2,1,0],[1,2,0],[0,0,1]], A⁻¹ = [[2/3,-1/3,0],[-1/3,2/3,0],[0,0,1]].
	want := []float64{2, -1, 0, -1, 2, 0, 0, 0, 3}
	assert.True(t, floats.EqualApprox(want, flat(est.Covariance), 1e-12), "got %v", flat(est.Covariance))
}

// TestPreconditions walks the structural error paths.
func TestPreconditions(t *testing.T) {
	square, err := matrix.NewLabeled([][]float64{{1, 0}, {0, 1}}, []string{"a", "b"}, []string{"p", "q"})
	require.NoError(t, err)

	cases := []struct {
		name    string
		jac     *matrix.Labeled
		weights []float64
		phi     float64
		want    error
	}{
		{"nil jacobian", nil, nil, 1, matrix.ErrNilMatrix},
		{"weight count", jac5x3(t), ones(4), 1, covariance.ErrWeightCount},
		{"negative weight", jac5x3(t), []float64{1, 1, -1, 1, 1}, 1, covariance.ErrInvalidWeight},
		{"NaN weight", jac5x3(t), []float64{1, 1, math.NaN(), 1, 1}, 1, covariance.ErrInvalidWeight},
		{"negative objective", jac5x3(t), ones(5), -1, covariance.ErrInvalidObjective},
		{"infinite objective", jac5x3(t), ones(5), math.Inf(1), covariance.ErrInvalidObjective},
		{"square system", square, ones(2), 1, covariance.ErrUnderdetermined},
		{"dof equals zero", jac5x3(t), []float64{1, 1, 1, 0, 0}, 1, covariance.ErrInsufficientDOF},
		{"all zero weights", jac5x3(t), make([]float64, 5), 1, covariance.ErrInsufficientDOF},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cov, err := covariance.Compute(tc.jac, tc.weights, tc.phi)
			require.ErrorIs(t, err, tc.want)
			assert.Nil(t, cov)
		})
	}
}

// TestNonFiniteJacobian rejects a Jacobian decoded with NaN sensitivities.
func TestNonFiniteJacobian(t *testing.T) {
	j, err := matrix.NewLabeled([][]float64{{1}, {math.NaN()}}, []string{"a", "b"}, []string{"p"}, matrix.WithNoValidateNaNInf())
	require.NoError(t, err)

	_, err = covariance.Compute(j, ones(2), 1)
	require.ErrorIs(t, err, matrix.ErrNaNInf)
}

// TestSingular covers exact and threshold-driven singularity.
func TestSingular(t *testing.T) {
	// JᵀJ = [[4,4],[4,4]]: the second Cholesky pivot is exactly zero.
	collinear, err := matrix.NewLabeled([][]float64{{1, 1}, {1, 1}, {1, 1}, {1, 1}}, []string{"a", "b", "c", "d"}, []string{"p", "q"})
	require.NoError(t, err)

	_, err = covariance.Compute(collinear, ones(4), 1)
	require.ErrorIs(t, err, covariance.ErrSingular)
	var se *covariance.SingularMatrixError
	require.True(t, errors.As(err, &se))
	assert.Less(t, se.RCond, covariance.DefaultRCondThreshold)

	illPosed, err := matrix.NewLabeled([][]float64{{1, 0}, {0, 0.1}, {0, 0}, {1, 0}}, []string{"a", "b", "c", "d"}, []string{"p", "q"})
	require.NoError(t, err)

	_, err = covariance.Compute(illPosed, ones(4), 1)
	require.NoError(t, err, "rcond ≈ 1/200 passes the default threshold")

	_, err = covariance.Compute(illPosed, ones(4), 1, covariance.WithRCondThreshold(0.5))
	require.True(t, errors.As(err, &se))
	assert.Equal(t, ops.SolverCholesky, se.Solver)
	assert.Less(t, se.RCond, 0.5)
	assert.Equal(t, 0.5, se.Threshold)
}

// TestLabelAlignment checks the optional identity lists.
func TestLabelAlignment(t *testing.T) {
	_, err := covariance.Compute(jac5x3(t), ones(5), 1,
		covariance.WithObservationNames([]string{"H1", "H2", "H3", "Q1", "Q2"}),
		covariance.WithParameterNames([]string{"HK", "RCH", "SY"}))
	require.NoError(t, err)

	_, err = covariance.Compute(jac5x3(t), ones(5), 1,
		covariance.WithObservationNames([]string{"h1", "h2", "h3", "q2", "q1"}))
	require.ErrorIs(t, err, matrix.ErrLabelMismatch)

	_, err = covariance.Compute(jac5x3(t), ones(5), 1, covariance.WithParameterNames([]string{"hk", "rch"}))
	require.ErrorIs(t, err, matrix.ErrLabelMismatch)
}

// TestSymmetryProperty checks |Cov_ij - Cov_ji| within 1e-9 relative on random well-posed input.
func TestSymmetryProperty(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for trial := 0; trial < 20; trial++ {
		n, p := 12+rng.Intn(20), 2+rng.Intn(6)
		values := make([][]float64, n)
		rows := make([]string, n)
		weights := make([]float64, n)
		for i := range values {
			values[i] = make([]float64, p)
			for j := range values[i] {
				values[i][j] = rng.NormFloat64() * math.Pow(10, float64(rng.Intn(4)-2))
			}
			rows[i] = string(rune('a'+i%26)) + string(rune('0'+i/26))
			weights[i] = rng.Float64() + 0.1
		}
		cols := make([]string, p)
		for j := range cols {
			cols[j] = string(rune('p')) + string(rune('0'+j))
		}
		jac, err := matrix.NewLabeled(values, rows, cols)
		require.NoError(t, err)

		cov, err := covariance.Compute(jac, weights, rng.Float64()*100)
		require.NoError(t, err)
		for i := 0; i < p; i++ {
			for j := 0; j < p; j++ {
				a, _ := cov.At(i, j)
				b, _ := cov.At(j, i)
				scale := math.Max(1e-300, math.Max(math.Abs(a), math.Abs(b)))
				assert.LessOrEqual(t, math.Abs(a-b)/scale, 1e-9)
			}
		}
	}
}

// TestInputsUntouched verifies Compute has no side effects on its inputs.
func TestInputsUntouched(t *testing.T) {
	j := jac5x3(t)
	before := flat(j)
	w := []float64{1, 2, 3, 4, 5}

	_, err := covariance.Compute(j, w, 1)
	require.NoError(t, err)
	assert.Equal(t, before, flat(j))
	assert.Equal(t, []float64{1, 2, 3, 4, 5}, w)
}

// TestLogging checks the debug record carries dof and solver.
func TestLogging(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	_, err := covariance.Compute(jac5x3(t), ones(5), 2, covariance.WithLogger(logger))
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "computed parameter covariance")
	assert.Contains(t, buf.String(), "dof=2")
	assert.Contains(t, buf.String(), "solver=cholesky")
}

// TestOptionPanics documents programmer-error panics.
func TestOptionPanics(t *testing.T) {
	assert.Panics(t, func() { covariance.WithRCondThreshold(-1) })
	assert.Panics(t, func() { covariance.WithRCondThreshold(2) })
	assert.NotPanics(t, func() { covariance.WithRCondThreshold(0) })
}
