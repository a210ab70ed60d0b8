// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package tensor provides the fixed-width vectors and matrices evalnet
// networks are built from.
//
// # Overview
//
// This package provides:
//   - Vector: dense float32 lanes with elementwise arithmetic
//   - Matrix: row-major matrix with forward and transposed products
//   - SparseVector: list of active feature indices with implicit value 1
//   - Activations: Identity, ReLU, ClippedReLU, Sigmoid
//
// Widths are fixed when a value is created. Combining values of different
// widths is a programming error and panics.
//
// # Basic Usage
//
//	x := tensor.VectorOf(1, 0, 0)
//	w := tensor.MatrixFromRows(
//	    tensor.VectorOf(1, 1, 1),
//	    tensor.VectorOf(1, 1, 0),
//	)
//	y := w.Mul(x).Activate(tensor.ReLU{})
//
//	features := tensor.SparseOf(0, 12, 40)
package tensor
