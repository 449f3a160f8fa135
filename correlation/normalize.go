// SPDX-License-Identifier: MIT

package correlation

import (
	"errors"
	"fmt"
	"math"

	"github.com/aleaf/pestools-1/matrix"
)

const opNormalize = "correlation.Normalize"

// Normalize returns the correlation matrix of cov with cov's labels.
// Implementation:
//   - Stage 1: cov non-nil and square (ErrNotSquare).
//   - Stage 2: collect every diagonal entry that is not > 0 as a
//     *DegenerateVarianceError; return them joined.
//   - Stage 3: c_ij/(s_i·s_j) off the diagonal with s_i = sqrt(c_ii); 1 on the diagonal.
//
// Off-diagonal magnitudes may exceed 1 by a rounding error when cov is not
// positive semi-definite to machine precision; they are not clamped.
// Complexity: O(n²).
func Normalize(cov *matrix.Labeled) (*matrix.Labeled, error) {
	// Stage 1
	if cov == nil {
		return nil, fmt.Errorf("%s: %w", opNormalize, matrix.ErrNilMatrix)
	}
	if !cov.IsSquare() {
		return nil, fmt.Errorf("%s: %dx%d: %w", opNormalize, cov.Rows(), cov.Cols(), ErrNotSquare)
	}

	// Stage 2
	n := cov.Rows()
	names := cov.RowNames()
	diag := cov.Diagonal()
	var bad []error
	for i, v := range diag {
		if !(v > 0) {
			bad = append(bad, &DegenerateVarianceError{Index: i, Name: names[i], Variance: v})
		}
	}
	if len(bad) > 0 {
		return nil, fmt.Errorf("%s: %w", opNormalize, errors.Join(bad...))
	}

	// Stage 3
	sd := make([]float64, n)
	for i, v := range diag {
		sd[i] = math.Sqrt(v)
	}
	out := make([][]float64, n)
	for i := range out {
		out[i] = make([]float64, n)
	}
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if i == j {
				out[i][j] = 1.0
				continue
			}
			cij, err := cov.At(i, j)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", opNormalize, err)
			}
			out[i][j] = cij / (sd[i] * sd[j])
		}
	}

	corr, err := matrix.NewLabeled(out, names, cov.ColNames(), matrix.WithNoValidateNaNInf())
	if err != nil {
		return nil, fmt.Errorf("%s: %w", opNormalize, err)
	}

	return corr, nil
}
