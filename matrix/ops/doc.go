// SPDX-License-Identifier: MIT

// Package ops provides the dense solvers used on top of package matrix.
//
// InvertSPD inverts a symmetric matrix, preferring a Cholesky factorization
// (the normal-equation matrix JᵀQJ of a well-posed calibration is symmetric
// positive definite) and falling back to a partially pivoted LU factorization
// when Cholesky fails. Both paths estimate the reciprocal condition number and
// refuse to return an inverse below a caller-supplied threshold.
//
// The heavy lifting is delegated to gonum.org/v1/gonum/mat; this package only
// adapts between matrix.Matrix and gonum types and owns the error policy.
package ops
