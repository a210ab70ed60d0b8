// Package nn implements the layer protocol of evalnet and the layers built on it.
//
// This package provides:
//   - Layer interface: forward, backward and zero-initialization contract
//   - DenseConnected, SparseConnected, Conv1D: leaf layers
//   - Add: parallel sum of two layers sharing input and output
//   - Chain, Sequential: sequential composition
//   - Incremental: sparse-first networks with O(1) feature toggling
//   - Perspective: two symmetric sub-networks over two sparse inputs
//
// Every value is a fixed-shape parameter block. A gradient accumulator is
// simply another value of the same type obtained from Zeroed, and optimizer
// moments are values of the same shape as well.
package nn

import (
	"fmt"

	"github.com/born-ml/evalnet/internal/tensor"
)

// Cache holds the activations of one forward pass.
//
// A cache is created by Forward, owned by its caller and consumed by the
// matching Backprop call. Output returns the layer's output; the returned
// value shares storage with the cache and must not be modified.
type Cache[Out any] interface {
	Output() Out
}

// Parameterized is anything that exposes its trainable parameters.
//
// Params returns every parameter block as a flat vector in a fixed field
// order. The vectors alias the value's storage, so writes through them
// modify the parameters. The order is also the serialization order.
type Parameterized interface {
	Params() []tensor.Vector
}

// Shaped is a parameter block with known input and output widths.
type Shaped interface {
	Parameterized
	Shape() (in, out int)
}

// Layer is the contract every layer and every composed network implements.
//
// Type parameters In and Out are the input and output types, tensor.Vector
// or tensor.SparseVector for all built-in layers.
//
// Example:
//
//	net := nn.NewChain[tensor.SparseVector, tensor.Vector, tensor.Vector](
//	    nn.NewSparseConnected[tensor.ReLU](768, 32),
//	    nn.NewDenseConnected[tensor.Identity](32, 1),
//	)
//	grad := net.Zeroed()
//
//	cache := net.Forward(input)
//	net.Backprop(input, grad, outErr, cache)
type Layer[In, Out any] interface {
	Shaped

	// Forward evaluates the layer and returns every activation Backprop
	// needs. It does not modify the layer.
	Forward(input In) Cache[Out]

	// Backprop adds the parameter gradient for outErr into grad and returns
	// the error with respect to input.
	//
	// grad must be a value of the same concrete type as the receiver,
	// usually obtained from Zeroed. Contributions are accumulated with +=
	// so one accumulator can collect a whole batch. input, outErr and
	// cache are not modified.
	Backprop(input In, grad Layer[In, Out], outErr Out, cache Cache[Out]) In

	// Zeroed returns a new value of the same type and shape whose
	// parameters are all exactly zero.
	Zeroed() Layer[In, Out]
}

// Out evaluates l on input without keeping the intermediate activations.
func Out[In, Out any](l Layer[In, Out], input In) Out {
	return l.Forward(input).Output()
}

// vectorCache is the cache of every leaf layer: its activated output.
type vectorCache struct {
	out tensor.Vector
}

func (c *vectorCache) Output() tensor.Vector {
	return c.out
}

// accumulatorOf asserts that grad has the receiver's concrete type.
func accumulatorOf[T any](method string, grad any) T {
	g, ok := grad.(T)
	if !ok {
		var want T
		panic(fmt.Sprintf("%s: gradient accumulator is %T, want %T", method, grad, want))
	}
	return g
}

// cacheOf asserts that cache was produced by the receiver's Forward.
func cacheOf[T any](method string, cache any) T {
	c, ok := cache.(T)
	if !ok {
		var want T
		panic(fmt.Sprintf("%s: cache is %T, want %T", method, cache, want))
	}
	return c
}
