// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package nn provides the layers and composition containers of evalnet.
//
// # Overview
//
// This package contains:
//   - Layers: DenseConnected, SparseConnected, Conv1D, Add
//   - Composition: Chain (static), Sequential (named stages), Incremental
//   - Perspective: two sub-networks scored from each side's point of view
//   - Gradients: Zeroed accumulators, Accumulate, Reset, BatchGradient
//   - Persistence: WriteToBin, ReadFromBin
//
// # Basic Usage
//
//	import (
//	    "github.com/born-ml/evalnet/nn"
//	    "github.com/born-ml/evalnet/tensor"
//	)
//
//	func main() {
//	    net, err := nn.NewSequential[tensor.SparseVector, tensor.Vector](
//	        nn.NamedSparse("ft", nn.NewSparseConnected[tensor.ReLU](768, 32)),
//	        nn.NamedDense("out", nn.NewDenseConnected[tensor.Identity](32, 1)),
//	    )
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//
//	    grad := net.Zeroed()
//	    cache := net.Forward(tensor.SparseOf(0, 12, 40))
//	    net.Backprop(tensor.SparseOf(0, 12, 40), grad, outErr, cache)
//	}
//
// # Gradients
//
// Backprop never allocates a gradient. It adds into an accumulator of the
// same type, obtained from Zeroed, so a batch of samples can share one
// accumulator and per-worker accumulators can be merged with Accumulate.
package nn
