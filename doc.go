// Package pestools is the post-calibration uncertainty kernel for PEST runs:
// read a binary Jacobian, derive the parameter covariance, normalise it to
// correlation.
//
// 🚀 What is inside?
//
//	• matrix/       – labelled dense matrices, products, tabular projections
//	• matrix/ops/   – symmetric inversion with conditioning checks (Cholesky, LU fallback)
//	• jco/          – reader and writer for the PEST .jco binary Jacobian format
//	• covariance/   – Cov = phi/dof · (JᵀQJ)⁻¹ with Q = diag(w²)
//	• correlation/  – Corr_ij = Cov_ij / sqrt(Cov_ii·Cov_jj)
//	• pest/         – one run on disk, memoised Jacobian/covariance/correlation
//	• config/       – environment, YAML and .env settings, validated
//	• logging/      – slog logger factory
//
// ✨ Guarantees
//
//   - No partial results: every kernel either returns a complete matrix or an error.
//   - Typed errors (jco.FormatError, ops.SingularMatrixError,
//     correlation.DegenerateVarianceError) unwrap to package sentinels.
//   - Kernels are synchronous and safe for concurrent use on shared inputs.
//
// Quick start:
//
//	jac, err := jco.DecodeFile("case.jco")
//	cov, err := covariance.Compute(jac, weights, phi)
//	corr, err := correlation.Normalize(cov)
package pestools
