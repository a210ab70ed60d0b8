package nn

import "github.com/born-ml/evalnet/internal/tensor"

// Incremental is a network whose first layer is a SparseConnected layer.
//
// It behaves like Chain(First, Rest) and adds an alternate entry point for
// inference: the caller keeps First's pre-activation accumulator up to date
// with AddFeature and SubFeature as single features toggle, then evaluates
// the remaining layers with OutFromFirst. Each toggle costs one weight row
// instead of a sum over every active feature.
//
// Example:
//
//	acc := net.NewAccumulator()
//	net.AddFeature(acc, 12)
//	net.AddFeature(acc, 40)
//	net.SubFeature(acc, 12)
//	score := net.OutFromFirst(acc) // same as nn.Out(net, tensor.SparseOf(40))
type Incremental[A tensor.Activation, Out any] struct {
	First *SparseConnected[A]
	Rest  Layer[tensor.Vector, Out]
}

// NewIncremental composes a sparse first layer with the remaining layers.
//
// Panics if the widths do not chain.
func NewIncremental[A tensor.Activation, Out any](first *SparseConnected[A], rest Layer[tensor.Vector, Out]) *Incremental[A, Out] {
	mustChain("NewIncremental", first, rest)
	return &Incremental[A, Out]{First: first, Rest: rest}
}

func (n *Incremental[A, Out]) chain() *Chain[tensor.SparseVector, tensor.Vector, Out] {
	return &Chain[tensor.SparseVector, tensor.Vector, Out]{First: n.First, Rest: n.Rest}
}

// Shape returns the feature-space width and the output width.
func (n *Incremental[A, Out]) Shape() (in, out int) {
	return n.chain().Shape()
}

// Forward evaluates the full network on a sparse input.
func (n *Incremental[A, Out]) Forward(input tensor.SparseVector) Cache[Out] {
	return n.chain().Forward(input)
}

// Backprop propagates outErr through Rest and then into First.
func (n *Incremental[A, Out]) Backprop(
	input tensor.SparseVector,
	grad Layer[tensor.SparseVector, Out],
	outErr Out,
	cache Cache[Out],
) tensor.SparseVector {
	g := accumulatorOf[*Incremental[A, Out]]("Incremental.Backprop", grad)
	return n.chain().Backprop(input, g.chain(), outErr, cache)
}

// Zeroed returns a zero-initialized network of the same shape.
func (n *Incremental[A, Out]) Zeroed() Layer[tensor.SparseVector, Out] {
	first := accumulatorOf[*SparseConnected[A]]("Incremental.Zeroed", n.First.Zeroed())
	return &Incremental[A, Out]{First: first, Rest: n.Rest.Zeroed()}
}

// Params returns the parameters of First followed by those of Rest.
func (n *Incremental[A, Out]) Params() []tensor.Vector {
	return n.chain().Params()
}

func (n *Incremental[A, Out]) sublayers() []Shaped { return []Shaped{n.First, n.Rest} }

// NewAccumulator returns First's accumulator for an empty input.
func (n *Incremental[A, Out]) NewAccumulator() tensor.Vector {
	return n.First.NewAccumulator()
}

// Refresh recomputes acc from scratch for input.
func (n *Incremental[A, Out]) Refresh(acc tensor.Vector, input tensor.SparseVector) {
	n.First.Refresh(acc, input)
}

// AddFeature activates feature idx in acc.
func (n *Incremental[A, Out]) AddFeature(acc tensor.Vector, idx int) {
	n.First.AddFeature(acc, idx)
}

// SubFeature deactivates feature idx in acc.
func (n *Incremental[A, Out]) SubFeature(acc tensor.Vector, idx int) {
	n.First.SubFeature(acc, idx)
}

// OutFromFirst evaluates the remaining layers on First's accumulator.
func (n *Incremental[A, Out]) OutFromFirst(acc tensor.Vector) Out {
	return n.Rest.Forward(n.First.OutFromAccumulator(acc)).Output()
}
