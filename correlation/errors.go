// SPDX-License-Identifier: MIT

package correlation

import (
	"errors"
	"fmt"
)

var (
	// ErrNotSquare is returned for a non-square input.
	ErrNotSquare = errors.New("correlation: covariance matrix is not square")

	// ErrDegenerateVariance is matched by every *DegenerateVarianceError.
	ErrDegenerateVariance = errors.New("correlation: degenerate variance")
)

// DegenerateVarianceError identifies one diagonal entry that is not strictly positive.
type DegenerateVarianceError struct {
	Index    int     // position on the diagonal
	Name     string  // row label at Index
	Variance float64 // offending value
}

func (e *DegenerateVarianceError) Error() string {
	return fmt.Sprintf("correlation: degenerate variance %g for %q (index %d)", e.Variance, e.Name, e.Index)
}

// Unwrap exposes ErrDegenerateVariance to errors.Is.
func (e *DegenerateVarianceError) Unwrap() error { return ErrDegenerateVariance }
