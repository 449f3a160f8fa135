// SPDX-License-Identifier: MIT

package pest

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ErrEmptyBasename is returned by NewRun when path has no file name.
var ErrEmptyBasename = errors.New("pest: empty run basename")

const (
	// ControlExt is the control-file extension.
	ControlExt = ".pst"
	// JacobianExt is the binary Jacobian extension.
	JacobianExt = ".jco"
)

// Run identifies a PEST run on disk.
type Run struct {
	Basename string // file name up to its first '.'
	Folder   string // absolute or as given; the working directory when path had none
}

// NewRun derives a Run from a control-file path or a bare basename.
// Everything after the first '.' of the file name is dropped, so
// "dir/case.pst" and "dir/case" name the same run.
func NewRun(path string) (Run, error) {
	folder, file := filepath.Split(path)
	base, _, _ := strings.Cut(file, ".")
	if base == "" {
		return Run{}, fmt.Errorf("pest: run %q: %w", path, ErrEmptyBasename)
	}

	folder = filepath.Clean(folder)
	if folder == "." {
		wd, err := os.Getwd()
		if err != nil {
			return Run{}, fmt.Errorf("pest: run %q: %w", path, err)
		}
		folder = wd
	}

	return Run{Basename: base, Folder: folder}, nil
}

// ControlFile returns the path of the run's control file.
func (r Run) ControlFile() string {
	return filepath.Join(r.Folder, r.Basename+ControlExt)
}

// JacobianFile returns the path of the run's Jacobian file.
func (r Run) JacobianFile() string {
	return filepath.Join(r.Folder, r.Basename+JacobianExt)
}

// String returns the path of the run without extension.
func (r Run) String() string {
	return filepath.Join(r.Folder, r.Basename)
}
