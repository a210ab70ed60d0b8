package nn

import (
	"fmt"

	"github.com/born-ml/evalnet/internal/tensor"
)

// Chain composes two layers sequentially: the output of First is the input
// of Rest.
//
// Chains nest, so a network of k layers is k-1 chains, and the input and
// output types of every link are checked by the compiler:
//
//	type dense = tensor.Vector
//
//	net := nn.NewChain[tensor.SparseVector, dense, dense](
//	    nn.NewSparseConnected[tensor.ReLU](768, 32),
//	    nn.NewChain[dense, dense, dense](
//	        nn.NewDenseConnected[tensor.ReLU](32, 16),
//	        nn.NewDenseConnected[tensor.Identity](16, 1),
//	    ),
//	)
//
// Backprop runs Rest before First, since Rest produces the error First
// consumes.
type Chain[In, Mid, Out any] struct {
	First Layer[In, Mid]
	Rest  Layer[Mid, Out]
}

// ChainCache holds one cache per link.
type ChainCache[Mid, Out any] struct {
	First Cache[Mid]
	Rest  Cache[Out]
}

// Output returns the output of the last link.
func (c *ChainCache[Mid, Out]) Output() Out { return c.Rest.Output() }

// NewChain composes first and rest.
//
// Panics if the output width of first differs from the input width of rest.
func NewChain[In, Mid, Out any](first Layer[In, Mid], rest Layer[Mid, Out]) *Chain[In, Mid, Out] {
	mustChain("NewChain", first, rest)
	return &Chain[In, Mid, Out]{First: first, Rest: rest}
}

// Shape returns the input width of First and the output width of Rest.
func (c *Chain[In, Mid, Out]) Shape() (in, out int) {
	in, _ = c.First.Shape()
	_, out = c.Rest.Shape()
	return in, out
}

// Forward evaluates First on input and Rest on First's output.
func (c *Chain[In, Mid, Out]) Forward(input In) Cache[Out] {
	first := c.First.Forward(input)
	rest := c.Rest.Forward(first.Output())
	return &ChainCache[Mid, Out]{First: first, Rest: rest}
}

// Backprop propagates outErr through Rest, then through First.
func (c *Chain[In, Mid, Out]) Backprop(input In, grad Layer[In, Out], outErr Out, cache Cache[Out]) In {
	g := accumulatorOf[*Chain[In, Mid, Out]]("Chain.Backprop", grad)
	cc := cacheOf[*ChainCache[Mid, Out]]("Chain.Backprop", cache)

	midErr := c.Rest.Backprop(cc.First.Output(), g.Rest, outErr, cc.Rest)
	return c.First.Backprop(input, g.First, midErr, cc.First)
}

// Zeroed returns a zero-initialized chain of the same shape.
func (c *Chain[In, Mid, Out]) Zeroed() Layer[In, Out] {
	return &Chain[In, Mid, Out]{First: c.First.Zeroed(), Rest: c.Rest.Zeroed()}
}

// Params returns the parameters of First followed by those of Rest.
func (c *Chain[In, Mid, Out]) Params() []tensor.Vector {
	return append(c.First.Params(), c.Rest.Params()...)
}

func (c *Chain[In, Mid, Out]) sublayers() []Shaped { return []Shaped{c.First, c.Rest} }

func mustChain(method string, first, rest Shaped) {
	_, firstOut := first.Shape()
	if restIn, _ := rest.Shape(); restIn != firstOut {
		panic(fmt.Sprintf("%s: first layer outputs width %d, rest expects %d", method, firstOut, restIn))
	}
}
