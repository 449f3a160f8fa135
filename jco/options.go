// SPDX-License-Identifier: MIT

package jco

import (
	"encoding/binary"
	"io"
	"log/slog"
)

const (
	// DefaultNameWidth is the on-disk width of a row or column name record.
	DefaultNameWidth = 20

	// DefaultMaxCells bounds n_rows*n_cols accepted from a header (1 GiB of float64).
	DefaultMaxCells = 1 << 27
)

const (
	panicWidthInvalid    = "jco: name width must be > 0"
	panicMaxCellsInvalid = "jco: WithMaxCells: limit must be > 0"
	panicByteOrderNil    = "jco: WithByteOrder: nil byte order"
)

// Option configures Decode and Encode.
type Option func(*options)

type options struct {
	order        binary.ByteOrder
	rowNameWidth int
	colNameWidth int
	maxCells     int
	logger       *slog.Logger
}

// WithByteOrder selects the byte order of integers and floats (default little-endian).
func WithByteOrder(order binary.ByteOrder) Option {
	if order == nil {
		panic(panicByteOrderNil)
	}

	return func(o *options) { o.order = order }
}

// WithRowNameWidth sets the record width of the row-name table.
func WithRowNameWidth(n int) Option {
	if n <= 0 {
		panic(panicWidthInvalid)
	}

	return func(o *options) { o.rowNameWidth = n }
}

// WithColNameWidth sets the record width of the column-name table.
// Classic PEST writes 12-character parameter names; use WithColNameWidth(12) for those files.
func WithColNameWidth(n int) Option {
	if n <= 0 {
		panic(panicWidthInvalid)
	}

	return func(o *options) { o.colNameWidth = n }
}

// WithMaxCells caps the dense size a header may declare before any allocation happens.
func WithMaxCells(n int) Option {
	if n <= 0 {
		panic(panicMaxCellsInvalid)
	}

	return func(o *options) { o.maxCells = n }
}

// WithLogger attaches a logger; Decode and Encode emit debug records only.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

func gatherOptions(user ...Option) options {
	o := options{
		order:        binary.LittleEndian,
		rowNameWidth: DefaultNameWidth,
		colNameWidth: DefaultNameWidth,
		maxCells:     DefaultMaxCells,
		logger:       slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, set := range user {
		set(&o)
	}

	return o
}
