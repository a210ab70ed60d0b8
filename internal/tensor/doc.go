// Package tensor provides the fixed-width numeric primitives used by evalnet
// layers: dense vectors, row-major matrices, sparse feature lists and the
// elementwise activations that parameterize layers.
//
// Widths are fixed when a value is constructed. Operations never resize
// their operands; a width mismatch is a programming error and panics.
package tensor
