// SPDX-License-Identifier: MIT

package jco

import (
	"errors"
	"fmt"
)

var (
	// ErrFormat is matched by every *FormatError.
	ErrFormat = errors.New("jco: malformed matrix file")

	// ErrTruncated is matched by every *TruncatedInputError.
	ErrTruncated = errors.New("jco: truncated matrix file")
)

// FormatError reports structurally invalid input: an unreadable or illegal
// header, a sparse block that disagrees with its declared count, an index out of
// range, or a name table whose length disagrees with the header.
type FormatError struct {
	Field  string // field being decoded, e.g. "header", "sparse.count", "names.col"
	Offset int64  // byte offset where the problem was detected
	Reason string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("jco: format error in %s at byte %d: %s", e.Field, e.Offset, e.Reason)
}

// Unwrap exposes ErrFormat to errors.Is.
func (e *FormatError) Unwrap() error { return ErrFormat }

// TruncatedInputError reports a stream that ended inside a declared field.
type TruncatedInputError struct {
	Field  string // field being decoded
	Offset int64  // byte offset at which the stream ended
	Want   int    // bytes the field needed
	Got    int    // bytes actually read
}

func (e *TruncatedInputError) Error() string {
	return fmt.Sprintf("jco: truncated input in %s at byte %d: need %d bytes, got %d", e.Field, e.Offset, e.Want, e.Got)
}

// Unwrap exposes ErrTruncated to errors.Is.
func (e *TruncatedInputError) Unwrap() error { return ErrTruncated }

func formatErrorf(field string, off int64, format string, args ...any) error {
	return &FormatError{Field: field, Offset: off, Reason: fmt.Sprintf(format, args...)}
}
