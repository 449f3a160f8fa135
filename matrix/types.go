// SPDX-License-Identifier: MIT

// Package matrix: domain types shared by the dense kernels and the labeled
// wrapper. Errors and options live in dedicated files (errors.go, options.go).
package matrix

// Matrix represents a two-dimensional mutable array of float64 values.
// Dense is the only implementation shipped here; Labeled wraps a Dense and
// exposes a read-only surface.
//
// Complexity notes: all methods are expected O(1) except Clone (O(r*c)).
type Matrix interface {
	// Rows returns the number of rows in the matrix.
	Rows() int

	// Cols returns the number of columns in the matrix.
	Cols() int

	// At retrieves the element at position (i, j).
	// Returns ErrOutOfRange if i<0, i>=Rows(), j<0 or j>=Cols().
	At(i, j int) (float64, error)

	// Set assigns the value v at position (i, j).
	// Returns ErrOutOfRange if indices are invalid.
	Set(i, j int, v float64) error

	// Clone returns a deep copy of the matrix.
	// The returned Matrix is independent of the original.
	Clone() Matrix
}

// Triple is one cell of a labeled matrix projected into long (tidy) form.
// Reporting layers consume []Triple or a Table; both are lossless projections.
type Triple struct {
	Row   string  // row label, verbatim
	Col   string  // column label, verbatim
	Value float64 // cell value
}

// Table is the dense tabular projection of a labeled matrix.
// Header[0] is empty (the corner cell), Header[1:] are the column labels;
// Index[i] labels Data[i].
type Table struct {
	Header []string
	Index  []string
	Data   [][]float64
}
