// SPDX-License-Identifier: MIT

package jco

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"os"
	"unicode/utf8"

	"github.com/aleaf/pestools-1/matrix"
)

// Encode writes m to dst in the dense layout.
// Name widths are byte counts. Longer names are truncated to the last whole
// UTF-8 character that fits, so a record never holds a split character;
// shorter names are padded with spaces.
//
// Errors: matrix.ErrNilMatrix, *FormatError (dimensions beyond int32), or a wrapped write error.
// Complexity: O(rows*cols) time, O(1) extra memory.
func Encode(dst io.Writer, m *matrix.Labeled, opts ...Option) error {
	if m == nil {
		return fmt.Errorf("jco: encode: %w", matrix.ErrNilMatrix)
	}
	o := gatherOptions(opts...)
	rows, cols := m.Rows(), m.Cols()
	if rows > math.MaxInt32 || cols > math.MaxInt32 {
		return formatErrorf(fieldHeader, 0, "%d×%d does not fit the int32 header", rows, cols)
	}

	w := bufio.NewWriter(dst)
	var buf [float64Size]byte

	// header: n_cols, n_rows
	o.order.PutUint32(buf[:4], uint32(int32(cols)))
	o.order.PutUint32(buf[4:8], uint32(int32(rows)))
	if _, err := w.Write(buf[:headerSize]); err != nil {
		return fmt.Errorf("jco: write %s: %w", fieldHeader, err)
	}

	// body: column-major
	d := m.Dense()
	var (
		i, j int
		v    float64
		err  error
	)
	for j = 0; j < cols; j++ {
		for i = 0; i < rows; i++ {
			if v, err = d.At(i, j); err != nil {
				return fmt.Errorf("jco: encode: %w", err)
			}
			o.order.PutUint64(buf[:], math.Float64bits(v))
			if _, err = w.Write(buf[:]); err != nil {
				return fmt.Errorf("jco: write %s: %w", fieldDense, err)
			}
		}
	}

	// names
	if err = writeNames(w, m.RowNames(), o.rowNameWidth); err != nil {
		return fmt.Errorf("jco: write %s: %w", fieldRowNames, err)
	}
	if err = writeNames(w, m.ColNames(), o.colNameWidth); err != nil {
		return fmt.Errorf("jco: write %s: %w", fieldColNames, err)
	}
	if err = w.Flush(); err != nil {
		return fmt.Errorf("jco: flush: %w", err)
	}
	o.logger.Debug("encoded matrix", "rows", rows, "cols", cols)

	return nil
}

// writeNames writes fixed-width, space-padded records.
func writeNames(w io.Writer, names []string, width int) error {
	rec := make([]byte, width)
	for _, name := range names {
		n := copy(rec, fitName(name, width))
		for k := n; k < width; k++ {
			rec[k] = ' '
		}
		if _, err := w.Write(rec); err != nil {
			return err
		}
	}

	return nil
}

// fitName cuts name to at most width bytes without splitting a UTF-8 sequence.
func fitName(name string, width int) string {
	if len(name) <= width {
		return name
	}
	cut := width
	for cut > 0 && !utf8.RuneStart(name[cut]) {
		cut--
	}

	return name[:cut]
}

// EncodeFile creates (or truncates) path and writes m to it.
func EncodeFile(path string, m *matrix.Labeled, opts ...Option) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("jco: create: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("jco: close: %w", cerr)
		}
	}()

	return Encode(f, m, opts...)
}
