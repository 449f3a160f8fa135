// SPDX-License-Identifier: MIT

// Package matrix - Labeled: a Dense paired with ordered row and column names.
//
// Purpose:
//   - Carry observation/parameter identity alongside numeric values so that every
//     derived matrix (Jᵀ, JᵀQJ, covariance, correlation) keeps its labels.
//   - Enforce the invariant len(rowNames)==Rows and len(colNames)==Cols at construction.
//   - Stay immutable: accessors return copies, operations return new values, so a
//     *Labeled may be shared freely across goroutines.
//
// Identity rule:
//   - Names are stored verbatim (case preserved). Lookups fold case (strings.ToLower).
//   - Names are not required to be unique at the storage layer; lookups resolve to
//     the first match.

package matrix

import (
	"fmt"
	"math"
	"strings"
)

const (
	opNewLabeled = "NewLabeled"
	opLabeledMul = "Labeled.Mul"
	opSelect     = "Labeled.Select"
	opValue      = "Labeled.Value"
)

// Labeled is an immutable r×c matrix with row and column names.
type Labeled struct {
	m        *Dense
	rowNames []string
	colNames []string
	rowIndex map[string]int // folded name -> first position
	colIndex map[string]int
	eps      float64
}

// NewLabeled builds a Labeled from rectangular values and label tables.
// Implementation:
//   - Stage 1: copy values into a Dense (ErrBadShape on ragged/empty, ErrNaNInf per policy).
//   - Stage 2: check label counts against the shape (ErrLabelMismatch).
//   - Stage 3: copy labels and build folded lookup indexes.
//
// Complexity:
//   - Time O(r*c + r + c), Space O(r*c + r + c).
func NewLabeled(values [][]float64, rowNames, colNames []string, opts ...Option) (*Labeled, error) {
	d, err := NewDenseFromRows(values, opts...)
	if err != nil {
		return nil, matrixErrorf(opNewLabeled, err)
	}

	return newLabeled(d, rowNames, colNames, gatherOptions(opts...))
}

// NewLabeledFromDense wraps a copy of d with the given labels.
// The numeric policy is re-checked on the copy when validation is enabled.
func NewLabeledFromDense(d *Dense, rowNames, colNames []string, opts ...Option) (*Labeled, error) {
	if d == nil {
		return nil, matrixErrorf(opNewLabeled, ErrNilMatrix)
	}
	o := gatherOptions(opts...)
	if o.validateNaNInf {
		if err := ValidateFinite(d.data); err != nil {
			return nil, matrixErrorf(opNewLabeled, err)
		}
	}
	c := d.clone()
	c.validateNaNInf = o.validateNaNInf

	return newLabeled(c, rowNames, colNames, o)
}

// newLabeled takes ownership of d; callers pass a private copy.
func newLabeled(d *Dense, rowNames, colNames []string, o Options) (*Labeled, error) {
	if err := ValidateLabels(rowNames, d.r); err != nil {
		return nil, matrixErrorf(opNewLabeled, fmt.Errorf("rows: %d names for %d rows: %w", len(rowNames), d.r, err))
	}
	if err := ValidateLabels(colNames, d.c); err != nil {
		return nil, matrixErrorf(opNewLabeled, fmt.Errorf("cols: %d names for %d cols: %w", len(colNames), d.c, err))
	}

	l := &Labeled{
		m:        d,
		rowNames: append([]string(nil), rowNames...),
		colNames: append([]string(nil), colNames...),
		eps:      o.eps,
	}
	l.rowIndex = buildIndex(l.rowNames)
	l.colIndex = buildIndex(l.colNames)

	return l, nil
}

// buildIndex maps folded names to their first position.
func buildIndex(names []string) map[string]int {
	idx := make(map[string]int, len(names))
	for i, n := range names {
		key := foldLabel(n)
		if _, dup := idx[key]; !dup {
			idx[key] = i
		}
	}

	return idx
}

// Rows returns the row count.
func (l *Labeled) Rows() int { return l.m.r }

// Cols returns the column count.
func (l *Labeled) Cols() int { return l.m.c }

// IsSquare reports Rows() == Cols().
func (l *Labeled) IsSquare() bool { return l.m.r == l.m.c }

// At returns the value at (i, j) or ErrOutOfRange.
func (l *Labeled) At(i, j int) (float64, error) { return l.m.At(i, j) }

// RowNames returns a copy of the row labels.
func (l *Labeled) RowNames() []string { return append([]string(nil), l.rowNames...) }

// ColNames returns a copy of the column labels.
func (l *Labeled) ColNames() []string { return append([]string(nil), l.colNames...) }

// RowIndex resolves a row name case-insensitively.
func (l *Labeled) RowIndex(name string) (int, bool) {
	i, ok := l.rowIndex[foldLabel(name)]
	return i, ok
}

// ColIndex resolves a column name case-insensitively.
func (l *Labeled) ColIndex(name string) (int, bool) {
	j, ok := l.colIndex[foldLabel(name)]
	return j, ok
}

// Value returns the cell addressed by labels.
// Errors: ErrUnknownLabel when either name is absent.
func (l *Labeled) Value(row, col string) (float64, error) {
	i, ok := l.RowIndex(row)
	if !ok {
		return 0, matrixErrorf(opValue, fmt.Errorf("row %q: %w", row, ErrUnknownLabel))
	}
	j, ok := l.ColIndex(col)
	if !ok {
		return 0, matrixErrorf(opValue, fmt.Errorf("col %q: %w", col, ErrUnknownLabel))
	}

	return l.m.data[i*l.m.c+j], nil
}

// Values returns a [][]float64 copy of the data.
// Complexity: O(r*c).
func (l *Labeled) Values() [][]float64 {
	out := make([][]float64, l.m.r)
	for i := range out {
		row := make([]float64, l.m.c)
		copy(row, l.m.data[i*l.m.c:(i+1)*l.m.c])
		out[i] = row
	}

	return out
}

// Dense returns a private copy of the underlying storage.
func (l *Labeled) Dense() *Dense { return l.m.clone() }

// Diagonal returns a copy of the main diagonal (length min(r, c)).
func (l *Labeled) Diagonal() []float64 {
	n := min(l.m.r, l.m.c)
	out := make([]float64, n)
	for i := 0; i < n; i++ {
		out[i] = l.m.data[i*l.m.c+i]
	}

	return out
}

// T returns the transpose with row and column labels swapped.
func (l *Labeled) T() *Labeled {
	t, _ := Transpose(l.m) // l.m is never nil and already validated
	t.validateNaNInf = l.m.validateNaNInf

	return &Labeled{
		m:        t,
		rowNames: l.ColNames(),
		colNames: l.RowNames(),
		rowIndex: l.colIndex,
		colIndex: l.rowIndex,
		eps:      l.eps,
	}
}

// Mul returns l × b labelled (l.RowNames, b.ColNames).
// Implementation:
//   - Stage 1: shapes must conform (ErrDimensionMismatch).
//   - Stage 2: inner labels must agree case-insensitively (ErrLabelMismatch);
//     this is what keeps observations aligned in JᵀQJ.
//   - Stage 3: delegate arithmetic to Mul.
//
// Complexity:
//   - Time O(r*n*c), Space O(r*c).
func (l *Labeled) Mul(b *Labeled) (*Labeled, error) {
	if b == nil {
		return nil, matrixErrorf(opLabeledMul, ErrNilMatrix)
	}
	if l.m.c != b.m.r {
		return nil, matrixErrorf(opLabeledMul, fmt.Errorf("%dx%d × %dx%d: %w", l.m.r, l.m.c, b.m.r, b.m.c, ErrDimensionMismatch))
	}
	if err := ValidateSameLabels(l.colNames, b.rowNames); err != nil {
		return nil, matrixErrorf(opLabeledMul, err)
	}
	p, err := Mul(l.m, b.m)
	if err != nil {
		return nil, matrixErrorf(opLabeledMul, err)
	}
	p.validateNaNInf = l.m.validateNaNInf

	return &Labeled{
		m:        p,
		rowNames: l.RowNames(),
		colNames: b.ColNames(),
		rowIndex: l.rowIndex,
		colIndex: b.colIndex,
		eps:      l.eps,
	}, nil
}

// ScaleRows returns diag(w) × l with the same labels.
// Errors: ErrDimensionMismatch when len(w) != Rows().
func (l *Labeled) ScaleRows(w []float64) (*Labeled, error) {
	s, err := ScaleRows(l.m, w)
	if err != nil {
		return nil, err
	}

	return l.withValues(s), nil
}

// Scale returns alpha × l with the same labels.
func (l *Labeled) Scale(alpha float64) *Labeled {
	s, _ := Scale(l.m, alpha) // l.m is never nil

	return l.withValues(s)
}

// withValues shares the (immutable) label tables with a new value buffer.
func (l *Labeled) withValues(d *Dense) *Labeled {
	d.validateNaNInf = l.m.validateNaNInf

	return &Labeled{
		m:        d,
		rowNames: l.rowNames,
		colNames: l.colNames,
		rowIndex: l.rowIndex,
		colIndex: l.colIndex,
		eps:      l.eps,
	}
}

// Select extracts the sub-matrix addressed by the given row and column names,
// in the order requested. Lookups are case-insensitive; the stored spelling is
// kept in the result.
//
// Errors:
//   - ErrBadShape (empty selection), ErrUnknownLabel (name not present).
//
// Complexity:
//   - Time O(len(rows)*len(cols)).
func (l *Labeled) Select(rows, cols []string) (*Labeled, error) {
	if len(rows) == 0 || len(cols) == 0 {
		return nil, matrixErrorf(opSelect, ErrBadShape)
	}
	ri := make([]int, len(rows))
	for k, name := range rows {
		i, ok := l.RowIndex(name)
		if !ok {
			return nil, matrixErrorf(opSelect, fmt.Errorf("row %q: %w", name, ErrUnknownLabel))
		}
		ri[k] = i
	}
	ci := make([]int, len(cols))
	for k, name := range cols {
		j, ok := l.ColIndex(name)
		if !ok {
			return nil, matrixErrorf(opSelect, fmt.Errorf("col %q: %w", name, ErrUnknownLabel))
		}
		ci[k] = j
	}

	d, err := NewDense(len(ri), len(ci))
	if err != nil {
		return nil, matrixErrorf(opSelect, err)
	}
	rn := make([]string, len(ri))
	cn := make([]string, len(ci))
	for a, i := range ri {
		rn[a] = l.rowNames[i]
		for b, j := range ci {
			d.data[a*d.c+b] = l.m.data[i*l.m.c+j]
		}
	}
	for b, j := range ci {
		cn[b] = l.colNames[j]
	}

	return newLabeled(d, rn, cn, Options{eps: l.eps, validateNaNInf: l.m.validateNaNInf})
}

// Equal reports bit-identical values and identical (case-sensitive) names.
// NaN cells compare equal to NaN cells with the same bit pattern.
func (l *Labeled) Equal(b *Labeled) bool {
	if l == nil || b == nil {
		return l == b
	}
	if l.m.r != b.m.r || l.m.c != b.m.c {
		return false
	}
	for i := range l.m.data {
		if math.Float64bits(l.m.data[i]) != math.Float64bits(b.m.data[i]) {
			return false
		}
	}

	return equalStrings(l.rowNames, b.rowNames) && equalStrings(l.colNames, b.colNames)
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}

	return true
}

// IsSymmetric reports whether l is square and |a_ij - a_ji| <= eps·max(1, |a_ij|, |a_ji|)
// for every pair, with eps taken from WithEpsilon at construction.
func (l *Labeled) IsSymmetric() bool {
	if !l.IsSquare() {
		return false
	}
	n := l.m.r
	var a, b float64
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			a, b = l.m.data[i*n+j], l.m.data[j*n+i]
			scale := math.Max(1, math.Max(math.Abs(a), math.Abs(b)))
			if math.Abs(a-b) > l.eps*scale {
				return false
			}
		}
	}

	return true
}

// String renders labels and values for debugging.
func (l *Labeled) String() string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%v\n", l.colNames))
	for i := 0; i < l.m.r; i++ {
		sb.WriteString(l.rowNames[i])
		sb.WriteString(" ")
		sb.WriteString(_fmtRowOpen)
		for j := 0; j < l.m.c; j++ {
			sb.WriteString(fmt.Sprintf("%g", l.m.data[i*l.m.c+j]))
			if j < l.m.c-1 {
				sb.WriteString(_fmtSep)
			}
		}
		sb.WriteString(_fmtRowClose)
	}

	return sb.String()
}
