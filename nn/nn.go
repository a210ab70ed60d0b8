// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package nn

import (
	"context"
	"math/rand/v2"

	"github.com/born-ml/evalnet/internal/nn"
	"github.com/born-ml/evalnet/internal/parallel"
	"github.com/born-ml/evalnet/internal/tensor"
)

// Layer is the contract every layer and composed network implements.
type Layer[In, Out any] = nn.Layer[In, Out]

// Cache holds the activations of one forward pass.
type Cache[Out any] = nn.Cache[Out]

// Parameterized is anything that exposes its trainable parameters.
type Parameterized = nn.Parameterized

// Shaped is a parameter block with known input and output widths.
type Shaped = nn.Shaped

// ParamSet is a standalone parameter-shaped value.
type ParamSet = nn.ParamSet

// Out evaluates l on input without keeping the intermediate activations.
func Out[In, O any](l Layer[In, O], input In) O {
	return nn.Out(l, input)
}

// Layers

// DenseConnected represents a fully connected layer.
type DenseConnected[A tensor.Activation] = nn.DenseConnected[A]

// NewDenseConnected creates a zero-initialized dense layer.
//
// Example:
//
//	layer := nn.NewDenseConnected[tensor.ReLU](32, 16)
func NewDenseConnected[A tensor.Activation](in, out int) *DenseConnected[A] {
	return nn.NewDenseConnected[A](in, out)
}

// DenseConnectedFromRaw creates a dense layer from weights (one row per
// output) and bias.
func DenseConnectedFromRaw[A tensor.Activation](weights tensor.Matrix, bias tensor.Vector) *DenseConnected[A] {
	return nn.DenseConnectedFromRaw[A](weights, bias)
}

// SparseConnected represents a fully connected layer over a sparse input.
type SparseConnected[A tensor.Activation] = nn.SparseConnected[A]

// NewSparseConnected creates a zero-initialized sparse-input layer.
//
// Example:
//
//	ft := nn.NewSparseConnected[tensor.ReLU](768, 512)
func NewSparseConnected[A tensor.Activation](in, out int) *SparseConnected[A] {
	return nn.NewSparseConnected[A](in, out)
}

// SparseConnectedFromRaw creates a sparse-input layer from weights (one row
// per feature) and bias.
func SparseConnectedFromRaw[A tensor.Activation](weights tensor.Matrix, bias tensor.Vector) *SparseConnected[A] {
	return nn.SparseConnectedFromRaw[A](weights, bias)
}

// Conv1D represents a one-dimensional convolution with a shared kernel.
type Conv1D[A tensor.Activation] = nn.Conv1D[A]

// NewConv1D creates a zero-initialized convolution from width in to width out.
func NewConv1D[A tensor.Activation](in, out int) *Conv1D[A] {
	return nn.NewConv1D[A](in, out)
}

// Summable is satisfied by values that can be added to a value of the same type.
type Summable[T any] = nn.Summable[T]

// Add represents the parallel sum of two layers.
type Add[In Summable[In], Out Summable[Out]] = nn.Add[In, Out]

// NewAdd creates the parallel sum of a and b.
func NewAdd[In Summable[In], O Summable[O]](a, b Layer[In, O]) *Add[In, O] {
	return nn.NewAdd(a, b)
}

// Composition

// Chain composes two layers sequentially.
type Chain[In, Mid, Out any] = nn.Chain[In, Mid, Out]

// NewChain composes first and rest.
func NewChain[In, Mid, O any](first Layer[In, Mid], rest Layer[Mid, O]) *Chain[In, Mid, O] {
	return nn.NewChain(first, rest)
}

// Stage is a named layer inside a Sequential container.
type Stage = nn.Stage

// Sequential is a container that chains an ordered list of named stages.
type Sequential[In, Out any] = nn.Sequential[In, Out]

// Named wraps a layer into a Sequential stage.
func Named[In, O any](name string, layer Layer[In, O]) Stage {
	return nn.Named(name, layer)
}

// NamedDense wraps a layer with dense input and output.
func NamedDense(name string, layer Layer[tensor.Vector, tensor.Vector]) Stage {
	return nn.NamedDense(name, layer)
}

// NamedSparse wraps a layer with sparse input and dense output.
func NamedSparse(name string, layer Layer[tensor.SparseVector, tensor.Vector]) Stage {
	return nn.NamedSparse(name, layer)
}

// NewSequential creates a Sequential container.
//
// Example:
//
//	net, err := nn.NewSequential[tensor.SparseVector, tensor.Vector](
//	    nn.NamedSparse("ft", nn.NewSparseConnected[tensor.ReLU](768, 512)),
//	    nn.NamedDense("l2", nn.NewDenseConnected[tensor.Identity](512, 1)),
//	)
func NewSequential[In, O any](stages ...Stage) (*Sequential[In, O], error) {
	return nn.NewSequential[In, O](stages...)
}

// Incremental is a network whose first layer is a SparseConnected layer.
type Incremental[A tensor.Activation, Out any] = nn.Incremental[A, Out]

// NewIncremental composes a sparse first layer with the remaining layers.
func NewIncremental[A tensor.Activation, O any](first *SparseConnected[A], rest Layer[tensor.Vector, O]) *Incremental[A, O] {
	return nn.NewIncremental(first, rest)
}

// Perspective evaluates two structurally identical sub-networks.
type Perspective = nn.Perspective

// NewPerspective pairs own and other.
func NewPerspective(own, other Layer[tensor.SparseVector, tensor.Vector]) *Perspective {
	return nn.NewPerspective(own, other)
}

// Composition errors.
var (
	ErrEmptyComposition = nn.ErrEmptyComposition
	ErrTypeMismatch     = nn.ErrTypeMismatch
	ErrShapeMismatch    = nn.ErrShapeMismatch
)

// Parameters

// ZeroLike returns a zeroed ParamSet with the same block widths as p.
func ZeroLike(p Parameterized) ParamSet {
	return nn.ZeroLike(p)
}

// Accumulate adds every parameter of src into dst.
func Accumulate(dst, src Parameterized) {
	nn.Accumulate(dst, src)
}

// Reset sets every parameter of p to zero.
func Reset(p Parameterized) {
	nn.Reset(p)
}

// Copy overwrites the parameters of dst with those of src.
func Copy(dst, src Parameterized) {
	nn.Copy(dst, src)
}

// NumParams returns the number of scalar parameters of p.
func NumParams(p Parameterized) int {
	return nn.NumParams(p)
}

// IsZero reports whether every parameter of p is exactly zero.
func IsZero(p Parameterized) bool {
	return nn.IsZero(p)
}

// Initialization

// Xavier initializes every parameter of l from U(-sqrt(6/(in+out)), sqrt(6/(in+out))).
// Composed layers are initialized leaf by leaf, each with its own widths.
//
// Example:
//
//	nn.Xavier(layer, rand.New(rand.NewPCG(1, 2)))
func Xavier(l Shaped, rng *rand.Rand) {
	nn.Xavier(l, rng)
}

// Uniform fills every parameter of p with values from U(-bound, bound).
func Uniform(p Parameterized, rng *rand.Rand, bound float32) {
	nn.Uniform(p, rng, bound)
}

// Training

// LossGrad returns the error with respect to the output of sample i.
type LossGrad[Out any] = nn.LossGrad[Out]

// ParallelConfig controls how BatchGradient spreads work across goroutines.
type ParallelConfig = parallel.Config

// DefaultParallelConfig returns defaults based on CPU count.
func DefaultParallelConfig() ParallelConfig {
	return parallel.DefaultConfig()
}

// BatchGradient accumulates the parameter gradient of net over inputs.
func BatchGradient[In, O any](ctx context.Context, net Layer[In, O], inputs []In, lossGrad LossGrad[O], cfg ParallelConfig) (Layer[In, O], error) {
	return nn.BatchGradient(ctx, net, inputs, lossGrad, cfg)
}

// WriteToBin writes the parameters of p to path as a flat little-endian
// float32 dump.
func WriteToBin(path string, p Parameterized) error {
	return nn.WriteToBin(path, p)
}

// ReadFromBin loads parameters written by WriteToBin into p.
func ReadFromBin(path string, p Parameterized) error {
	return nn.ReadFromBin(path, p)
}
