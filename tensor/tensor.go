// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package tensor

import (
	"github.com/born-ml/evalnet/internal/tensor"
)

// Vector is a fixed-width list of float32 lanes.
type Vector = tensor.Vector

// Matrix is a row-major float32 matrix.
type Matrix = tensor.Matrix

// SparseVector is an ordered list of active feature indices.
type SparseVector = tensor.SparseVector

// Activation is an elementwise activation function.
type Activation = tensor.Activation

// Activations.
type (
	Identity    = tensor.Identity
	ReLU        = tensor.ReLU
	ClippedReLU = tensor.ClippedReLU
	Sigmoid     = tensor.Sigmoid
)

// AdamHyper holds the per-lane Adam constants.
type AdamHyper = tensor.AdamHyper

// ErrFeatureOutOfRange is returned by SparseVector.Validate.
var ErrFeatureOutOfRange = tensor.ErrFeatureOutOfRange

// NewVector creates a zeroed vector of width n.
func NewVector(n int) Vector {
	return tensor.NewVector(n)
}

// VectorOf creates a vector holding a copy of lanes.
//
// Example:
//
//	v := tensor.VectorOf(1, 0, 0)
func VectorOf(lanes ...float32) Vector {
	return tensor.VectorOf(lanes...)
}

// VectorFromFn creates a vector of width n whose i-th lane is f(i).
func VectorFromFn(n int, f func(i int) float32) Vector {
	return tensor.VectorFromFn(n, f)
}

// NewMatrix creates a zeroed rows x cols matrix.
func NewMatrix(rows, cols int) Matrix {
	return tensor.NewMatrix(rows, cols)
}

// MatrixFromRows creates a matrix from equally wide rows.
func MatrixFromRows(rows ...Vector) Matrix {
	return tensor.MatrixFromRows(rows...)
}

// NewSparseVector creates an empty sparse vector with room for capacity
// features.
func NewSparseVector(capacity int) SparseVector {
	return tensor.NewSparseVector(capacity)
}

// SparseOf creates a sparse vector with the given active features.
//
// Example:
//
//	x := tensor.SparseOf(0, 12, 40)
func SparseOf(idx ...int) SparseVector {
	return tensor.SparseOf(idx...)
}
