// SPDX-License-Identifier: MIT

package ops

import (
	"fmt"
	"math"

	"github.com/aleaf/pestools-1/matrix"
	"gonum.org/v1/gonum/mat"
)

// Solver names the factorization that produced an inverse.
type Solver string

const (
	// SolverCholesky is used when the matrix is symmetric positive definite.
	SolverCholesky Solver = "cholesky"
	// SolverLU is the general fallback (partial pivoting).
	SolverLU Solver = "lu"
)

// DefaultRCondThreshold is the smallest reciprocal condition number accepted by InvertSPD.
const DefaultRCondThreshold = 1e-12

const opInvertSPD = "InvertSPD"

// Inverse is the outcome of a successful InvertSPD.
type Inverse struct {
	Inv    *matrix.Dense // symmetric inverse
	RCond  float64       // reciprocal condition estimate of the input
	Solver Solver        // factorization used
}

// InvertSPD returns the inverse of the symmetric matrix m.
// Blueprint:
//
//	Stage 1 (Validate): m non-nil and square; rcondMin finite and ≥ 0.
//	Stage 2 (Adapt): copy the upper triangle of m into a gonum SymDense.
//	Stage 3 (Cholesky): if the factorization succeeds and rcond ≥ rcondMin, invert from it.
//	Stage 4 (LU): otherwise factorize with pivoted LU; rcond < rcondMin is singular.
//	Stage 5 (Finalize): symmetrize the LU inverse ((X + Xᵀ)/2) and copy out.
//
// Only the upper triangle of m is read; callers are responsible for symmetry.
// Errors: matrix.ErrNilMatrix, matrix.ErrNonSquare, *SingularMatrixError.
// Complexity: O(n³) time, O(n²) memory, where n = m.Rows().
func InvertSPD(m matrix.Matrix, rcondMin float64) (*Inverse, error) {
	// Stage 1: Validate
	if err := matrix.ValidateNotNil(m); err != nil {
		return nil, fmt.Errorf("%s: %w", opInvertSPD, err)
	}
	if err := matrix.ValidateSquare(m); err != nil {
		return nil, fmt.Errorf("%s: %w", opInvertSPD, err)
	}
	if math.IsNaN(rcondMin) || math.IsInf(rcondMin, 0) || rcondMin < 0 {
		return nil, fmt.Errorf("%s: rcond threshold %v: %w", opInvertSPD, rcondMin, matrix.ErrNaNInf)
	}

	// Stage 2: Adapt to gonum
	n := m.Rows()
	sym := mat.NewSymDense(n, nil)
	var (
		i, j int
		v    float64
		err  error
	)
	for i = 0; i < n; i++ {
		for j = i; j < n; j++ {
			if v, err = m.At(i, j); err != nil {
				return nil, fmt.Errorf("%s: %w", opInvertSPD, err)
			}
			sym.SetSym(i, j, v)
		}
	}

	// Stage 3: Cholesky
	var ch mat.Cholesky
	if ch.Factorize(sym) {
		rcond := reciprocal(ch.Cond())
		if !(rcond >= rcondMin) {
			return nil, &SingularMatrixError{RCond: rcond, Threshold: rcondMin, Solver: SolverCholesky}
		}
		var inv mat.SymDense
		if err = ch.InverseTo(&inv); err != nil {
			return nil, &SingularMatrixError{RCond: rcond, Threshold: rcondMin, Solver: SolverCholesky}
		}
		out, err := toDense(&inv, n)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", opInvertSPD, err)
		}

		return &Inverse{Inv: out, RCond: rcond, Solver: SolverCholesky}, nil
	}

	// Stage 4: LU fallback
	a := mat.DenseCopyOf(sym)
	var lu mat.LU
	lu.Factorize(a)
	rcond := reciprocal(lu.Cond())
	if !(rcond >= rcondMin) {
		return nil, &SingularMatrixError{RCond: rcond, Threshold: rcondMin, Solver: SolverLU}
	}
	var inv mat.Dense
	if err = inv.Inverse(a); err != nil {
		// mat.Condition or mat.ErrSingular: either way the result is not trustworthy.
		return nil, &SingularMatrixError{RCond: rcond, Threshold: rcondMin, Solver: SolverLU}
	}

	// Stage 5: symmetrize and copy out
	symInv := mat.NewSymDense(n, nil)
	for i = 0; i < n; i++ {
		for j = i; j < n; j++ {
			symInv.SetSym(i, j, 0.5*(inv.At(i, j)+inv.At(j, i)))
		}
	}
	out, err := toDense(symInv, n)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", opInvertSPD, err)
	}

	return &Inverse{Inv: out, RCond: rcond, Solver: SolverLU}, nil
}

// reciprocal maps a condition number to its reciprocal; +Inf and NaN map to 0.
func reciprocal(cond float64) float64 {
	if math.IsInf(cond, 0) || math.IsNaN(cond) || cond == 0 {
		return 0
	}

	return 1 / cond
}

// toDense copies an n×n gonum matrix into a matrix.Dense.
func toDense(src mat.Matrix, n int) (*matrix.Dense, error) {
	out, err := matrix.NewDense(n, n)
	if err != nil {
		return nil, err
	}
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if err = out.Set(i, j, src.At(i, j)); err != nil {
				return nil, err
			}
		}
	}

	return out, nil
}
