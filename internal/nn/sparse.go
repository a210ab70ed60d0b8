package nn

import (
	"fmt"

	"github.com/born-ml/evalnet/internal/tensor"
)

// SparseConnected is a fully connected layer over a sparse input.
//
// The input is a list of active feature indices in [0, in), each with an
// implicit value of 1. Instead of a matrix-vector product the layer sums the
// weight rows of the active features:
//
//	y = A(b + Σ W.Row(idx))  for idx in input
//
// The weight matrix has one row per input feature, shape [in, out].
//
// The layer does not produce an input gradient: Backprop returns an empty
// SparseVector, so a sparse layer is always the first layer of a network.
//
// Besides the Layer contract the layer supports incremental evaluation on a
// pre-activation accumulator with AddFeature and SubFeature, which touch one
// weight row each instead of recomputing the whole sum.
type SparseConnected[A tensor.Activation] struct {
	weights tensor.Matrix // [in, out]
	bias    tensor.Vector // [out]
}

// NewSparseConnected creates a zero-initialized sparse-input layer.
func NewSparseConnected[A tensor.Activation](in, out int) *SparseConnected[A] {
	if in < 1 || out < 1 {
		panic(fmt.Sprintf("NewSparseConnected: invalid shape %d -> %d", in, out))
	}
	return &SparseConnected[A]{
		weights: tensor.NewMatrix(in, out),
		bias:    tensor.NewVector(out),
	}
}

// SparseConnectedFromRaw creates a sparse-input layer from existing
// parameters. weights must have one row per input feature.
func SparseConnectedFromRaw[A tensor.Activation](weights tensor.Matrix, bias tensor.Vector) *SparseConnected[A] {
	if weights.Cols() != bias.Len() {
		panic(fmt.Sprintf("SparseConnectedFromRaw: weight rows of width %d for bias width %d", weights.Cols(), bias.Len()))
	}
	return &SparseConnected[A]{weights: weights, bias: bias}
}

// WeightsRow returns the weight row of feature idx.
func (l *SparseConnected[A]) WeightsRow(idx int) tensor.Vector { return l.weights.Row(idx) }

// Weights returns the weight matrix, one row per input feature.
func (l *SparseConnected[A]) Weights() tensor.Matrix { return l.weights }

// Bias returns the bias vector.
func (l *SparseConnected[A]) Bias() tensor.Vector { return l.bias }

// Shape returns the feature-space width and the output width.
func (l *SparseConnected[A]) Shape() (in, out int) {
	return l.weights.Rows(), l.weights.Cols()
}

// CheckInput validates untrusted feature indices against the layer width.
// Forward itself does not check.
func (l *SparseConnected[A]) CheckInput(input tensor.SparseVector) error {
	in, _ := l.Shape()
	return input.Validate(in)
}

// Forward computes y = A(b + Σ W.Row(idx)).
func (l *SparseConnected[A]) Forward(input tensor.SparseVector) Cache[tensor.Vector] {
	var act A
	acc := l.NewAccumulator()
	l.Refresh(acc, input)
	return &vectorCache{out: acc.Activate(act)}
}

// Backprop scatter-adds δ = outErr ⊙ A'(y) into the weight row of every
// active feature and into the bias. It returns an empty SparseVector.
func (l *SparseConnected[A]) Backprop(
	input tensor.SparseVector,
	grad Layer[tensor.SparseVector, tensor.Vector],
	outErr tensor.Vector,
	cache Cache[tensor.Vector],
) tensor.SparseVector {
	var act A
	g := accumulatorOf[*SparseConnected[A]]("SparseConnected.Backprop", grad)
	c := cacheOf[*vectorCache]("SparseConnected.Backprop", cache)

	delta := outErr.Mul(c.out.Derivative(act))

	for _, idx := range input.Features() {
		g.weights.Row(idx).AddAssign(delta)
	}
	g.bias.AddAssign(delta)

	return tensor.NewSparseVector(0)
}

// Zeroed returns a zero-initialized layer of the same shape.
func (l *SparseConnected[A]) Zeroed() Layer[tensor.SparseVector, tensor.Vector] {
	in, out := l.Shape()
	return NewSparseConnected[A](in, out)
}

// Params returns [weights, bias].
func (l *SparseConnected[A]) Params() []tensor.Vector {
	return []tensor.Vector{l.weights.Data(), l.bias}
}

// NewAccumulator returns a pre-activation accumulator for an empty input,
// which is a copy of the bias.
func (l *SparseConnected[A]) NewAccumulator() tensor.Vector {
	return l.bias.Clone()
}

// Refresh recomputes acc from scratch as b + Σ W.Row(idx) over input.
func (l *SparseConnected[A]) Refresh(acc tensor.Vector, input tensor.SparseVector) {
	copy(acc, l.bias)
	for _, idx := range input.Features() {
		acc.AddAssign(l.weights.Row(idx))
	}
}

// AddFeature activates feature idx in acc.
func (l *SparseConnected[A]) AddFeature(acc tensor.Vector, idx int) {
	acc.AddAssign(l.weights.Row(idx))
}

// SubFeature deactivates feature idx in acc.
func (l *SparseConnected[A]) SubFeature(acc tensor.Vector, idx int) {
	acc.SubAssign(l.weights.Row(idx))
}

// OutFromAccumulator applies the activation to a pre-activation accumulator.
func (l *SparseConnected[A]) OutFromAccumulator(acc tensor.Vector) tensor.Vector {
	var act A
	return acc.Activate(act)
}
