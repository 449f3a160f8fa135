// SPDX-License-Identifier: MIT

// Package correlation normalizes a parameter covariance matrix into a
// correlation matrix: Corr[i][j] = Cov[i][j] / sqrt(Cov[i][i]·Cov[j][j]).
//
// The diagonal is assigned 1.0 directly rather than computed as a ratio, so it
// is exactly one regardless of rounding. A variance that is zero, negative or NaN
// makes every correlation on that row undefined; Normalize reports each such
// index and returns no matrix.
package correlation
