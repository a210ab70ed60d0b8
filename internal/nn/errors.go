package nn

import "errors"

// Composition errors returned by NewSequential.
var (
	ErrEmptyComposition = errors.New("composition has no stages")
	ErrTypeMismatch     = errors.New("stage types do not chain")
	ErrShapeMismatch    = errors.New("stage widths do not chain")
)
