// SPDX-License-Identifier: MIT

package jco

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strings"

	"github.com/aleaf/pestools-1/matrix"
)

// Field names used in error reports.
const (
	fieldHeader      = "header"
	fieldDense       = "body.dense"
	fieldSparseCount = "body.sparse.count"
	fieldSparse      = "body.sparse"
	fieldRowNames    = "names.row"
	fieldColNames    = "names.col"
	fieldTrailer     = "trailer"
)

const (
	int32Size   = 4
	float64Size = 8
	headerSize  = 2 * int32Size
	tripleSize  = 2*int32Size + float64Size

	// maxPrealloc caps the capacity reserved from header counts; buffers grow
	// past it only as the stream actually delivers data.
	maxPrealloc = 1 << 16
)

// Header is the fixed-size prologue of a matrix file.
type Header struct {
	Rows   int
	Cols   int
	Sparse bool
}

// Cells returns Rows*Cols.
func (h Header) Cells() int64 { return int64(h.Rows) * int64(h.Cols) }

// reader tracks the byte offset of a buffered stream so errors can point at it.
type reader struct {
	r   *bufio.Reader
	off int64
	o   options
	buf [tripleSize]byte
}

func newReader(r io.Reader, o options) *reader {
	return &reader{r: bufio.NewReader(r), o: o}
}

// fill reads exactly len(p) bytes. It returns the count read and the raw error
// from io.ReadFull (io.EOF when nothing was read, io.ErrUnexpectedEOF when short).
func (r *reader) fill(p []byte) (int, error) {
	n, err := io.ReadFull(r.r, p)
	r.off += int64(n)

	return n, err
}

// isEOF reports the two end-of-stream conditions io.ReadFull can produce.
func isEOF(err error) bool {
	return errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF)
}

// ioErr wraps a non-EOF read failure with field context.
func (r *reader) ioErr(field string, err error) error {
	return fmt.Errorf("jco: read %s at byte %d: %w", field, r.off, err)
}

func (r *reader) int32At(p []byte) int32 {
	return int32(r.o.order.Uint32(p))
}

func (r *reader) float64At(p []byte) float64 {
	return math.Float64frombits(r.o.order.Uint64(p))
}

// readHeader decodes and validates the header pair.
func (r *reader) readHeader() (Header, error) {
	p := r.buf[:headerSize]
	if n, err := r.fill(p); err != nil {
		if isEOF(err) {
			return Header{}, formatErrorf(fieldHeader, r.off, "cannot read header: got %d of %d bytes", n, headerSize)
		}
		return Header{}, r.ioErr(fieldHeader, err)
	}
	nCols := int64(r.int32At(p[0:4]))
	nRows := int64(r.int32At(p[4:8]))

	if nCols == 0 {
		return Header{}, formatErrorf(fieldHeader, 0, "column count is zero")
	}
	if nRows <= 0 {
		return Header{}, formatErrorf(fieldHeader, int32Size, "row count %d is not positive", nRows)
	}
	h := Header{Rows: int(nRows), Cols: int(nCols), Sparse: nCols < 0}
	if h.Sparse {
		h.Cols = int(-nCols)
	}
	if h.Cells() > int64(r.o.maxCells) {
		return Header{}, formatErrorf(fieldHeader, 0, "%d×%d exceeds the %d cell limit", h.Rows, h.Cols, r.o.maxCells)
	}

	return h, nil
}

// readDense reads the column-major body.
func (r *reader) readDense(h Header) ([]float64, error) {
	n := int(h.Cells())
	out := make([]float64, 0, min(n, maxPrealloc))
	p := r.buf[:float64Size]
	for k := 0; k < n; k++ {
		got, err := r.fill(p)
		if err != nil {
			if isEOF(err) {
				return nil, &TruncatedInputError{Field: fieldDense, Offset: r.off, Want: float64Size, Got: got}
			}
			return nil, r.ioErr(fieldDense, err)
		}
		out = append(out, r.float64At(p))
	}

	return out, nil
}

// entry is one decoded sparse cell, 0-based.
type entry struct {
	row, col int
	value    float64
}

// readSparse reads the coordinate list. Expansion into a dense buffer waits
// until the name tables have confirmed the declared shape.
func (r *reader) readSparse(h Header) ([]entry, error) {
	p := r.buf[:int32Size]
	if got, err := r.fill(p); err != nil {
		if isEOF(err) {
			return nil, &TruncatedInputError{Field: fieldSparseCount, Offset: r.off, Want: int32Size, Got: got}
		}
		return nil, r.ioErr(fieldSparseCount, err)
	}
	count := int(r.int32At(p))
	if count < 0 {
		return nil, formatErrorf(fieldSparseCount, r.off-int32Size, "negative entry count %d", count)
	}

	entries := make([]entry, 0, min(count, maxPrealloc))
	p = r.buf[:tripleSize]
	for k := 0; k < count; k++ {
		start := r.off
		if _, err := r.fill(p); err != nil {
			if isEOF(err) {
				return nil, formatErrorf(fieldSparse, start, "declared %d entries, stream holds %d", count, k)
			}
			return nil, r.ioErr(fieldSparse, err)
		}
		row := int(r.int32At(p[0:4]))
		col := int(r.int32At(p[4:8]))
		if row < 1 || row > h.Rows || col < 1 || col > h.Cols {
			return nil, formatErrorf(fieldSparse, start, "entry %d: index (%d,%d) outside %d×%d", k, row, col, h.Rows, h.Cols)
		}
		entries = append(entries, entry{row: row - 1, col: col - 1, value: r.float64At(p[8:16])})
	}

	return entries, nil
}

// expand scatters entries into a column-major buffer. Repeated coordinates keep the last value.
func expand(h Header, entries []entry) []float64 {
	out := make([]float64, int(h.Cells()))
	for _, e := range entries {
		out[e.col*h.Rows+e.row] = e.value
	}

	return out
}

// readNames reads n fixed-width name records.
func (r *reader) readNames(field string, n, width int) ([]string, error) {
	names := make([]string, 0, min(n, maxPrealloc))
	p := make([]byte, width)
	for k := 0; k < n; k++ {
		got, err := r.fill(p)
		if err != nil {
			if errors.Is(err, io.EOF) && got == 0 {
				return nil, formatErrorf(field, r.off, "table has %d entries, header declares %d", k, n)
			}
			if isEOF(err) {
				return nil, &TruncatedInputError{Field: field, Offset: r.off, Want: width, Got: got}
			}
			return nil, r.ioErr(field, err)
		}
		names = append(names, strings.TrimRight(string(p), " \x00"))
	}

	return names, nil
}

// expectEOF fails when bytes remain after the column-name table.
func (r *reader) expectEOF() error {
	if _, err := r.r.Peek(1); err == nil {
		return formatErrorf(fieldTrailer, r.off, "unexpected bytes after column names")
	} else if !errors.Is(err, io.EOF) {
		return r.ioErr(fieldTrailer, err)
	}

	return nil
}

// Decode reads one matrix file from src.
// Blueprint:
//
//	Stage 1 (Header): read (n_cols, n_rows); validate signs and size limit.
//	Stage 2 (Body): dense column-major values, or the sparse triples.
//	Stage 3 (Names): row table then column table, fixed-width records.
//	Stage 4 (Finalize): reject trailing bytes; expand sparse entries; build the Labeled value.
//
// Buffers grow with the bytes actually read, so a short file with a huge
// header fails before anything of the declared size is allocated.
//
// Values are taken verbatim (no NaN/Inf policy is applied); the consumer decides.
// Errors: *FormatError, *TruncatedInputError, or a wrapped I/O error.
// Complexity: O(rows*cols + count) time, O(rows*cols) memory.
func Decode(src io.Reader, opts ...Option) (*matrix.Labeled, error) {
	o := gatherOptions(opts...)
	r := newReader(src, o)

	// Stage 1
	h, err := r.readHeader()
	if err != nil {
		return nil, err
	}

	// Stage 2
	var (
		body    []float64
		sparse  []entry
		entries int
	)
	if h.Sparse {
		sparse, err = r.readSparse(h)
		entries = len(sparse)
	} else {
		body, err = r.readDense(h)
		entries = len(body)
	}
	if err != nil {
		return nil, err
	}

	// Stage 3
	rowNames, err := r.readNames(fieldRowNames, h.Rows, o.rowNameWidth)
	if err != nil {
		return nil, err
	}
	colNames, err := r.readNames(fieldColNames, h.Cols, o.colNameWidth)
	if err != nil {
		return nil, err
	}

	// Stage 4
	if err = r.expectEOF(); err != nil {
		return nil, err
	}
	if h.Sparse {
		body = expand(h, sparse)
	}
	d, err := matrix.NewDenseColMajor(h.Rows, h.Cols, body, matrix.WithNoValidateNaNInf())
	if err != nil {
		return nil, fmt.Errorf("jco: %w", err)
	}
	m, err := matrix.NewLabeledFromDense(d, rowNames, colNames, matrix.WithNoValidateNaNInf())
	if err != nil {
		return nil, fmt.Errorf("jco: %w", err)
	}
	o.logger.Debug("decoded matrix",
		"rows", h.Rows, "cols", h.Cols, "sparse", h.Sparse, "entries", entries, "bytes", r.off)

	return m, nil
}

// DecodeHeader reads only the header from src.
func DecodeHeader(src io.Reader, opts ...Option) (Header, error) {
	return newReader(src, gatherOptions(opts...)).readHeader()
}

// DecodeFile opens path and decodes it.
func DecodeFile(path string, opts ...Option) (*matrix.Labeled, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("jco: open: %w", err)
	}
	defer f.Close()

	m, err := Decode(f, opts...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return m, nil
}
