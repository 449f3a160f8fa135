// SPDX-License-Identifier: MIT

package ops

import (
	"errors"
	"fmt"
)

// ErrSingular is matched (errors.Is) by every SingularMatrixError.
var ErrSingular = errors.New("ops: matrix is singular")

// SingularMatrixError reports an inversion refused because the matrix is
// numerically singular: its reciprocal condition estimate fell below Threshold.
type SingularMatrixError struct {
	RCond     float64 // estimated reciprocal condition number (0 for exact singularity)
	Threshold float64 // minimum accepted reciprocal condition number
	Solver    Solver  // factorization that produced the estimate
}

// Error implements error.
func (e *SingularMatrixError) Error() string {
	return fmt.Sprintf("ops: matrix is singular: rcond %.3g < %.3g (%s)", e.RCond, e.Threshold, e.Solver)
}

// Unwrap exposes ErrSingular to errors.Is.
func (e *SingularMatrixError) Unwrap() error { return ErrSingular }
