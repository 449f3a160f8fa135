// SPDX-License-Identifier: MIT

// Package jco reads and writes the binary Jacobian matrix file produced by
// PEST-style calibration runs.
//
// File layout (little-endian unless WithByteOrder says otherwise):
//
//	int32   n_cols      negative: sparse body, |n_cols| columns
//	int32   n_rows
//	body    dense:  n_rows*n_cols float64, column-major (column outer, row inner)
//	        sparse: int32 count, then count × (int32 row, int32 col, float64 value), 1-based
//	names   n_rows row names, RowNameWidth bytes each (default 20)
//	names   n_cols column names, ColNameWidth bytes each (default 20)
//
// Names are space padded on disk; Decode trims trailing spaces and NUL bytes and
// keeps case. Encode always writes the dense layout; sparse is read-only. Names
// longer than the configured width are truncated on Encode, which is lossy: such a
// matrix does not survive a round trip.
//
// Decoding is eager: sparse bodies are expanded into a dense matrix because the
// downstream linear algebra needs dense access.
package jco
