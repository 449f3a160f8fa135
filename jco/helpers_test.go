// SPDX-License-Identifier: MIT

package jco_test

import (
	"bytes"
	"encoding/binary"
	"strings"
	"testing"

	"github.com/aleaf/pestools-1/matrix"
	"github.com/stretchr/testify/require"
)

// rawFile assembles matrix files byte by byte so tests can produce layouts that
// Encode never writes (sparse bodies, broken tables).
type rawFile struct {
	order binary.ByteOrder
	buf   bytes.Buffer
}

func newRaw() *rawFile { return &rawFile{order: binary.LittleEndian} }

func (f *rawFile) i32(vs ...int32) *rawFile {
	for _, v := range vs {
		_ = binary.Write(&f.buf, f.order, v)
	}
	return f
}

func (f *rawFile) f64(vs ...float64) *rawFile {
	for _, v := range vs {
		_ = binary.Write(&f.buf, f.order, v)
	}
	return f
}

func (f *rawFile) triple(row, col int32, v float64) *rawFile {
	return f.i32(row, col).f64(v)
}

func (f *rawFile) names(width int, ns ...string) *rawFile {
	for _, n := range ns {
		f.buf.WriteString(n + strings.Repeat(" ", width-len(n)))
	}
	return f
}

func (f *rawFile) raw(b ...byte) *rawFile {
	f.buf.Write(b)
	return f
}

func (f *rawFile) reader() *bytes.Reader { return bytes.NewReader(f.buf.Bytes()) }

// mustLabeled builds a Labeled or fails the test.
func mustLabeled(t *testing.T, values [][]float64, rows, cols []string) *matrix.Labeled {
	t.Helper()
	m, err := matrix.NewLabeled(values, rows, cols)
	require.NoError(t, err)
	return m
}
