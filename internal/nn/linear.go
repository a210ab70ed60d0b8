package nn

import (
	"fmt"

	"github.com/born-ml/evalnet/internal/tensor"
)

// DenseConnected implements a fully connected layer.
//
// Performs the transformation: y = A(W·x + b)
// where:
//   - x is the input vector with width in
//   - W is the weight matrix with one row per output, shape [out, in]
//   - b is the bias vector with width out
//   - A is the activation, fixed by the type parameter
//
// The layer caches only y. Backprop reconstructs A'(·) from y.
//
// Example:
//
//	layer := nn.NewDenseConnected[tensor.ReLU](32, 16)
//	y := nn.Out(layer, x) // width 16
type DenseConnected[A tensor.Activation] struct {
	weights tensor.Matrix // [out, in]
	bias    tensor.Vector // [out]
}

// NewDenseConnected creates a zero-initialized dense layer.
//
// Parameters:
//   - in: Input width
//   - out: Output width
//
// Returns a new DenseConnected layer.
func NewDenseConnected[A tensor.Activation](in, out int) *DenseConnected[A] {
	if in < 1 || out < 1 {
		panic(fmt.Sprintf("NewDenseConnected: invalid shape %d -> %d", in, out))
	}
	return &DenseConnected[A]{
		weights: tensor.NewMatrix(out, in),
		bias:    tensor.NewVector(out),
	}
}

// DenseConnectedFromRaw creates a dense layer from existing parameters.
//
// weights must have one row per output. Both arguments are used as-is,
// not copied.
func DenseConnectedFromRaw[A tensor.Activation](weights tensor.Matrix, bias tensor.Vector) *DenseConnected[A] {
	if weights.Rows() != bias.Len() {
		panic(fmt.Sprintf("DenseConnectedFromRaw: %d weight rows for bias width %d", weights.Rows(), bias.Len()))
	}
	return &DenseConnected[A]{weights: weights, bias: bias}
}

// Weights returns the weight matrix, one row per output.
func (l *DenseConnected[A]) Weights() tensor.Matrix { return l.weights }

// Bias returns the bias vector.
func (l *DenseConnected[A]) Bias() tensor.Vector { return l.bias }

// Shape returns the input and output widths.
func (l *DenseConnected[A]) Shape() (in, out int) {
	return l.weights.Cols(), l.weights.Rows()
}

// Forward computes y = A(W·x + b).
func (l *DenseConnected[A]) Forward(input tensor.Vector) Cache[tensor.Vector] {
	var act A
	pre := l.weights.Mul(input)
	pre.AddAssign(l.bias)
	return &vectorCache{out: pre.Activate(act)}
}

// Backprop accumulates the weight and bias gradients and returns Wᵀ·δ,
// where δ = outErr ⊙ A'(y).
func (l *DenseConnected[A]) Backprop(
	input tensor.Vector,
	grad Layer[tensor.Vector, tensor.Vector],
	outErr tensor.Vector,
	cache Cache[tensor.Vector],
) tensor.Vector {
	var act A
	g := accumulatorOf[*DenseConnected[A]]("DenseConnected.Backprop", grad)
	c := cacheOf[*vectorCache]("DenseConnected.Backprop", cache)

	delta := outErr.Mul(c.out.Derivative(act))

	for i, d := range delta {
		g.weights.Row(i).MAdd(d, input)
	}
	g.bias.AddAssign(delta)

	return l.weights.TransposeMul(delta)
}

// Zeroed returns a zero-initialized layer of the same shape.
func (l *DenseConnected[A]) Zeroed() Layer[tensor.Vector, tensor.Vector] {
	in, out := l.Shape()
	return NewDenseConnected[A](in, out)
}

// Params returns [weights, bias].
func (l *DenseConnected[A]) Params() []tensor.Vector {
	return []tensor.Vector{l.weights.Data(), l.bias}
}
