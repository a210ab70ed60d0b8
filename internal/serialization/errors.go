package serialization

import (
	"errors"
	"fmt"
)

// Common errors.
var (
	ErrSizeMismatch = errors.New("file size does not match parameter block")
	ErrShortRead    = errors.New("parameter data ended early")
)

// SizeError reports a file whose length does not match the parameter block
// it is read into.
type SizeError struct {
	Path string // File path
	Got  int64  // Actual size in bytes
	Want int64  // Expected size in bytes
}

// Error implements the error interface.
func (e *SizeError) Error() string {
	return fmt.Sprintf("%s: %q is %d bytes, want %d", ErrSizeMismatch, e.Path, e.Got, e.Want)
}

// Unwrap returns ErrSizeMismatch.
func (e *SizeError) Unwrap() error {
	return ErrSizeMismatch
}
