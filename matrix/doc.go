// SPDX-License-Identifier: MIT

// Package matrix provides the labelled dense matrix shared by the codec and
// the uncertainty kernels.
//
// The package provides:
//
//   - Dense, a row-major float64 matrix with bounds-checked access and an
//     optional NaN/±Inf guard.
//   - Labeled, an immutable Dense with one name per row and per column.
//     Names are unique under case-insensitive comparison; lookup folds case,
//     and stored names keep their original spelling.
//   - Mul, Transpose, Scale and ScaleRows, the products needed to build a
//     weighted normal matrix Jᵀ·diag(w²)·J.
//   - Tabular projections (Table, Triples, FromTriples) for callers that
//     export to frames or spreadsheets.
//
// Alignment between matrices is positional. Labeled.Mul additionally checks
// that the inner labels agree, so a product of mismatched parameter lists fails
// instead of silently mixing columns.
//
// Errors are sentinel values (ErrBadShape, ErrOutOfRange, ErrLabelMismatch, ...)
// wrapped with operation context; use errors.Is.
//
// Labeled values are safe for concurrent reads. Dense is not safe for
// concurrent mutation.
package matrix
