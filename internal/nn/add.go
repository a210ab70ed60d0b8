package nn

import (
	"fmt"

	"github.com/born-ml/evalnet/internal/tensor"
)

// Summable is satisfied by values that can be added to a value of the same
// type. tensor.Vector and tensor.SparseVector both qualify.
type Summable[T any] interface {
	Add(T) T
}

// Add sums two layers that share their input and output types and widths.
//
// Forward evaluates both branches on the same input and adds the outputs.
// Backprop hands the same output error to both branches and adds the two
// input gradients. The branches never share parameters.
type Add[In Summable[In], Out Summable[Out]] struct {
	A Layer[In, Out]
	B Layer[In, Out]
}

// AddCache holds the caches of both branches and their summed output.
type AddCache[Out any] struct {
	A   Cache[Out]
	B   Cache[Out]
	out Out
}

// Output returns the sum of both branch outputs.
func (c *AddCache[Out]) Output() Out { return c.out }

// NewAdd creates the parallel sum of a and b.
func NewAdd[In Summable[In], Out Summable[Out]](a, b Layer[In, Out]) *Add[In, Out] {
	aIn, aOut := a.Shape()
	bIn, bOut := b.Shape()
	if aIn != bIn || aOut != bOut {
		panic(fmt.Sprintf("NewAdd: branch shapes differ: %d -> %d and %d -> %d", aIn, aOut, bIn, bOut))
	}
	return &Add[In, Out]{A: a, B: b}
}

// Shape returns the shared input and output widths.
func (l *Add[In, Out]) Shape() (in, out int) {
	return l.A.Shape()
}

// Forward evaluates both branches and sums their outputs.
func (l *Add[In, Out]) Forward(input In) Cache[Out] {
	a := l.A.Forward(input)
	b := l.B.Forward(input)
	return &AddCache[Out]{A: a, B: b, out: a.Output().Add(b.Output())}
}

// Backprop propagates outErr unchanged into both branches and returns the
// sum of their input gradients.
func (l *Add[In, Out]) Backprop(input In, grad Layer[In, Out], outErr Out, cache Cache[Out]) In {
	g := accumulatorOf[*Add[In, Out]]("Add.Backprop", grad)
	c := cacheOf[*AddCache[Out]]("Add.Backprop", cache)

	aErr := l.A.Backprop(input, g.A, outErr, c.A)
	bErr := l.B.Backprop(input, g.B, outErr, c.B)
	return aErr.Add(bErr)
}

// Zeroed returns a zero-initialized copy with both branches zeroed.
func (l *Add[In, Out]) Zeroed() Layer[In, Out] {
	return &Add[In, Out]{A: l.A.Zeroed(), B: l.B.Zeroed()}
}

// Params returns the parameters of A followed by those of B.
func (l *Add[In, Out]) Params() []tensor.Vector {
	return append(l.A.Params(), l.B.Params()...)
}

func (l *Add[In, Out]) sublayers() []Shaped { return []Shaped{l.A, l.B} }
