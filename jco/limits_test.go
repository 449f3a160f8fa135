// SPDX-License-Identifier: MIT

package jco_test

import (
	"runtime"
	"testing"

	"github.com/aleaf/pestools-1/jco"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// allocatedBy returns the bytes allocated while f runs.
func allocatedBy(f func()) uint64 {
	var before, after runtime.MemStats
	runtime.GC()
	runtime.ReadMemStats(&before)
	f()
	runtime.ReadMemStats(&after)

	return after.TotalAlloc - before.TotalAlloc
}

// TestShortFileWithHugeHeader: a header declaring 8192×16384 cells (1 GiB of
// values) followed by almost nothing fails without allocating the declared size.
func TestShortFileWithHugeHeader(t *testing.T) {
	const budget = 16 << 20

	cases := []struct {
		name      string
		file      *rawFile
		truncated bool
	}{
		{"dense header only", newRaw().i32(8192, 16384), true},
		{"dense few values", newRaw().i32(8192, 16384).f64(1, 2, 3), true},
		{"sparse empty list", newRaw().i32(-8192, 16384, 0), false},
		{"sparse one entry", newRaw().i32(-8192, 16384, 1).triple(1, 1, 5), false},
		{"sparse huge count", newRaw().i32(-8192, 16384, 1<<31-1).triple(1, 1, 5), false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var err error
			used := allocatedBy(func() {
				_, err = jco.Decode(tc.file.reader())
			})
			require.Error(t, err)
			if tc.truncated {
				assert.ErrorIs(t, err, jco.ErrTruncated)
			} else {
				assert.ErrorIs(t, err, jco.ErrFormat)
			}
			assert.Less(t, used, uint64(budget), "allocated %d bytes", used)
		})
	}
}

// TestSparseExpandsAfterNames keeps sparse decoding correct after deferring expansion.
func TestSparseExpandsAfterNames(t *testing.T) {
	f := newRaw().i32(-2, 3, 2).triple(3, 2, 7).triple(1, 1, -1).
		names(20, "o1", "o2", "o3").names(20, "p1", "p2")

	m, err := jco.Decode(f.reader())
	require.NoError(t, err)
	assert.Equal(t, [][]float64{{-1, 0}, {0, 0}, {0, 7}}, m.Values())
}
