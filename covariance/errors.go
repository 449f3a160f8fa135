// SPDX-License-Identifier: MIT

package covariance

import (
	"errors"

	"github.com/aleaf/pestools-1/matrix/ops"
)

var (
	// ErrWeightCount is returned when len(weights) != Jacobian rows.
	ErrWeightCount = errors.New("covariance: weight count does not match observations")

	// ErrInvalidWeight is returned for a negative, NaN or infinite weight.
	ErrInvalidWeight = errors.New("covariance: invalid weight")

	// ErrInvalidObjective is returned for a negative, NaN or infinite objective value.
	ErrInvalidObjective = errors.New("covariance: invalid objective value")

	// ErrUnderdetermined is returned when observations do not outnumber parameters.
	ErrUnderdetermined = errors.New("covariance: underdetermined system")

	// ErrInsufficientDOF is returned when the positively weighted observations do
	// not outnumber parameters, leaving a non-positive denominator.
	ErrInsufficientDOF = errors.New("covariance: insufficient degrees of freedom")

	// ErrSingular is matched by *SingularMatrixError.
	ErrSingular = ops.ErrSingular
)

// SingularMatrixError reports that JᵀQJ is numerically singular; RCond carries
// the reciprocal condition estimate that tripped the threshold.
type SingularMatrixError = ops.SingularMatrixError
