package models

import (
	"errors"
	"fmt"
)

// ErrRowCount indicates a cluster file does not carry exactly SlotCount data rows.
var ErrRowCount = errors.New("wrong number of data rows")

// ErrNotNumeric indicates a value column could not be parsed as a finite number.
var ErrNotNumeric = errors.New("value is not a finite number")

// ErrBadClusterID indicates the file name does not end in a 3-digit cluster id.
var ErrBadClusterID = errors.New("file name has no numeric cluster id")

// ErrDuplicateOutput indicates two inputs would write the same output file.
var ErrDuplicateOutput = errors.New("duplicate output path")

// DiscoveryError is returned when the input directory cannot be enumerated.
// It aborts the whole batch.
type DiscoveryError struct {
	Dir string
	Err error
}

func (e *DiscoveryError) Error() string {
	return fmt.Sprintf("discover inputs in %q: %v", e.Dir, e.Err)
}

func (e *DiscoveryError) Unwrap() error {
	return e.Err
}

// MalformedInputError describes a cluster file that cannot be rendered.
// Row is the 1-based data row (header excluded), or 0 when the problem
// concerns the whole file.
type MalformedInputError struct {
	Path string
	Row  int
	Err  error
}

func (e *MalformedInputError) Error() string {
	if e.Row > 0 {
		return fmt.Sprintf("malformed input %q (row %d): %v", e.Path, e.Row, e.Err)
	}
	return fmt.Sprintf("malformed input %q: %v", e.Path, e.Err)
}

func (e *MalformedInputError) Unwrap() error {
	return e.Err
}

// NewMalformedInputError creates a new MalformedInputError.
func NewMalformedInputError(path string, row int, err error) *MalformedInputError {
	return &MalformedInputError{Path: path, Row: row, Err: err}
}

// RenderError is returned when the drawing backend cannot produce or
// save an image.
type RenderError struct {
	Path string
	Err  error
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("render %q: %v", e.Path, e.Err)
}

func (e *RenderError) Unwrap() error {
	return e.Err
}
