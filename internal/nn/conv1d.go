package nn

import (
	"fmt"

	"github.com/born-ml/evalnet/internal/tensor"
)

// Conv1D applies a depthwise one-dimensional convolution.
//
// A single kernel of width k = in - out + 1 slides over the input with stride
// 1 and no padding:
//
//	y[i] = A(b[i] + Σ_j w[j]·x[i+j])
//
// The kernel is shared by all output positions, so its gradient collects
// contributions from every position.
type Conv1D[A tensor.Activation] struct {
	weights tensor.Vector // [k]
	bias    tensor.Vector // [out]
}

// NewConv1D creates a zero-initialized convolution from width in to width out.
func NewConv1D[A tensor.Activation](in, out int) *Conv1D[A] {
	if out < 1 || out > in {
		panic(fmt.Sprintf("NewConv1D: invalid shape %d -> %d", in, out))
	}
	return &Conv1D[A]{
		weights: tensor.NewVector(in - out + 1),
		bias:    tensor.NewVector(out),
	}
}

// Conv1DFromRaw creates a convolution from a kernel and an output bias.
// The input width is kernel width + bias width - 1.
func Conv1DFromRaw[A tensor.Activation](kernel, bias tensor.Vector) *Conv1D[A] {
	if kernel.Len() < 1 || bias.Len() < 1 {
		panic(fmt.Sprintf("Conv1DFromRaw: invalid kernel width %d or bias width %d", kernel.Len(), bias.Len()))
	}
	return &Conv1D[A]{weights: kernel, bias: bias}
}

// Kernel returns the shared kernel.
func (l *Conv1D[A]) Kernel() tensor.Vector { return l.weights }

// Bias returns the bias vector.
func (l *Conv1D[A]) Bias() tensor.Vector { return l.bias }

// Shape returns the input and output widths.
func (l *Conv1D[A]) Shape() (in, out int) {
	return l.weights.Len() + l.bias.Len() - 1, l.bias.Len()
}

// Forward computes y[i] = A(b[i] + Σ_j w[j]·x[i+j]).
func (l *Conv1D[A]) Forward(input tensor.Vector) Cache[tensor.Vector] {
	var act A
	if in, _ := l.Shape(); input.Len() != in {
		panic(fmt.Sprintf("Conv1D.Forward: input width %d, want %d", input.Len(), in))
	}

	k := l.weights.Len()
	out := tensor.VectorFromFn(l.bias.Len(), func(i int) float32 {
		return l.bias[i] + l.weights.Dot(input[i:i+k])
	})
	return &vectorCache{out: out.Activate(act)}
}

// Backprop accumulates the kernel and bias gradients and returns the input
// gradient. Input positions near the borders are covered by fewer output
// positions and receive fewer contributions.
func (l *Conv1D[A]) Backprop(
	input tensor.Vector,
	grad Layer[tensor.Vector, tensor.Vector],
	outErr tensor.Vector,
	cache Cache[tensor.Vector],
) tensor.Vector {
	var act A
	g := accumulatorOf[*Conv1D[A]]("Conv1D.Backprop", grad)
	c := cacheOf[*vectorCache]("Conv1D.Backprop", cache)

	delta := outErr.Mul(c.out.Derivative(act))
	k := l.weights.Len()
	inErr := tensor.NewVector(input.Len())

	for i, d := range delta {
		window := input[i : i+k]
		g.weights.MAdd(d, window)
		inErr[i:i+k].MAdd(d, l.weights)
	}
	g.bias.AddAssign(delta)

	return inErr
}

// Zeroed returns a zero-initialized convolution of the same shape.
func (l *Conv1D[A]) Zeroed() Layer[tensor.Vector, tensor.Vector] {
	in, out := l.Shape()
	return NewConv1D[A](in, out)
}

// Params returns [kernel, bias].
func (l *Conv1D[A]) Params() []tensor.Vector {
	return []tensor.Vector{l.weights, l.bias}
}
