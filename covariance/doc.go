// SPDX-License-Identifier: MIT

// Package covariance derives the parameter covariance matrix of a completed
// weighted-least-squares calibration from its Jacobian and run statistics:
//
//	Cov = phi / dof · (JᵀQJ)⁻¹,   Q = diag(w²),   dof = #{w > 0} − #parameters
//
// where phi is the weighted sum of squared residuals. Zero-weighted observations
// carry no information and do not count toward the degrees of freedom.
//
// Weights are aligned to Jacobian rows by position, never by name. When the
// caller also holds observation/parameter identity lists (from a control file),
// WithObservationNames and WithParameterNames check that the Jacobian labels line
// up with them before any arithmetic happens.
//
// The engine is a pure function of its inputs: an *Engine holds only
// configuration and may be shared across goroutines.
package covariance
