// SPDX-License-Identifier: MIT

// Package matrix - lossless projections of a Labeled into generic tabular shapes
// for reporting layers (long-form triples and a dense table).
package matrix

// Triples returns every cell as (row label, column label, value) in row-major order.
// Complexity: O(r*c).
func (l *Labeled) Triples() []Triple {
	out := make([]Triple, 0, l.m.r*l.m.c)
	for i := 0; i < l.m.r; i++ {
		for j := 0; j < l.m.c; j++ {
			out = append(out, Triple{
				Row:   l.rowNames[i],
				Col:   l.colNames[j],
				Value: l.m.data[i*l.m.c+j],
			})
		}
	}

	return out
}

// Table returns the dense projection: a header row, a row index and a copy of the values.
// Complexity: O(r*c).
func (l *Labeled) Table() Table {
	header := make([]string, 0, l.m.c+1)
	header = append(header, "")
	header = append(header, l.colNames...)

	return Table{
		Header: header,
		Index:  l.RowNames(),
		Data:   l.Values(),
	}
}

// FromTriples rebuilds a Labeled from long-form cells. Row and column order is the
// order of first appearance; cells missing from the input are zero. A repeated
// (row, col) pair keeps the last value.
//
// Errors:
//   - ErrBadShape for an empty input, ErrNaNInf per numeric policy.
func FromTriples(cells []Triple, opts ...Option) (*Labeled, error) {
	if len(cells) == 0 {
		return nil, matrixErrorf(opNewLabeled, ErrBadShape)
	}
	var rows, cols []string
	ri := map[string]int{}
	ci := map[string]int{}
	for _, t := range cells {
		if _, ok := ri[t.Row]; !ok {
			ri[t.Row] = len(rows)
			rows = append(rows, t.Row)
		}
		if _, ok := ci[t.Col]; !ok {
			ci[t.Col] = len(cols)
			cols = append(cols, t.Col)
		}
	}
	values := make([][]float64, len(rows))
	for i := range values {
		values[i] = make([]float64, len(cols))
	}
	for _, t := range cells {
		values[ri[t.Row]][ci[t.Col]] = t.Value
	}

	return NewLabeled(values, rows, cols, opts...)
}
