package nn

import (
	"fmt"

	"github.com/born-ml/evalnet/internal/tensor"
)

// Perspective evaluates two structurally identical sub-networks, one for the
// side to move (Own) and one for its opponent (Other), each on its own
// sparse input.
//
// Both sub-networks produce a single score. Combining the two scores, for
// instance summing and scaling them, is left to the caller. The two
// sub-networks never share parameters or gradients.
type Perspective struct {
	Own   Layer[tensor.SparseVector, tensor.Vector]
	Other Layer[tensor.SparseVector, tensor.Vector]
}

// PerspectiveCache holds the forward caches of both sub-networks.
type PerspectiveCache struct {
	Own   Cache[tensor.Vector]
	Other Cache[tensor.Vector]
}

// Scores returns the single-lane outputs of both sub-networks.
func (c *PerspectiveCache) Scores() (own, other float32) {
	return c.Own.Output()[0], c.Other.Output()[0]
}

// NewPerspective pairs own and other.
//
// Panics unless both sub-networks have the same shape and a single output.
func NewPerspective(own, other Layer[tensor.SparseVector, tensor.Vector]) *Perspective {
	ownIn, ownOut := own.Shape()
	otherIn, otherOut := other.Shape()
	if ownIn != otherIn || ownOut != otherOut {
		panic(fmt.Sprintf("NewPerspective: sub-network shapes differ: %d -> %d and %d -> %d", ownIn, ownOut, otherIn, otherOut))
	}
	if ownOut != 1 {
		panic(fmt.Sprintf("NewPerspective: sub-networks must output a single score, got width %d", ownOut))
	}
	return &Perspective{Own: own, Other: other}
}

// Forward evaluates Own on own and Other on other.
func (p *Perspective) Forward(own, other tensor.SparseVector) *PerspectiveCache {
	return &PerspectiveCache{
		Own:   p.Own.Forward(own),
		Other: p.Other.Forward(other),
	}
}

// Eval returns both scores without keeping the activations.
func (p *Perspective) Eval(own, other tensor.SparseVector) (float32, float32) {
	return p.Forward(own, other).Scores()
}

// Backprop turns the scalar error err into a one-lane error vector and
// propagates it into both sub-networks, accumulating into grad.
func (p *Perspective) Backprop(own, other tensor.SparseVector, grad *Perspective, err float32, cache *PerspectiveCache) {
	outErr := tensor.VectorOf(err)
	p.Own.Backprop(own, grad.Own, outErr, cache.Own)
	p.Other.Backprop(other, grad.Other, outErr, cache.Other)
}

// Zeroed returns a zero-initialized pair of the same shape.
func (p *Perspective) Zeroed() *Perspective {
	return &Perspective{Own: p.Own.Zeroed(), Other: p.Other.Zeroed()}
}

// Params returns the parameters of Own followed by those of Other.
func (p *Perspective) Params() []tensor.Vector {
	return append(p.Own.Params(), p.Other.Params()...)
}
