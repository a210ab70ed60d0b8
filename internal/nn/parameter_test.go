package nn

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/evalnet/internal/tensor"
)

func TestParamSetHelpers(t *testing.T) {
	a := ParamSet{tensor.VectorOf(1, 2), tensor.VectorOf(3)}
	b := ParamSet{tensor.VectorOf(10, 20), tensor.VectorOf(30)}

	zero := ZeroLike(a)
	assert.Equal(t, ParamSet{tensor.VectorOf(0, 0), tensor.VectorOf(0)}, zero)
	assert.True(t, IsZero(zero))
	assert.Equal(t, 3, NumParams(a))

	Accumulate(a, b)
	assert.Equal(t, ParamSet{tensor.VectorOf(11, 22), tensor.VectorOf(33)}, a)
	// src is untouched.
	assert.Equal(t, ParamSet{tensor.VectorOf(10, 20), tensor.VectorOf(30)}, b)

	Copy(zero, b)
	assert.Equal(t, b, zero)
	zero[0][0] = -1
	assert.Equal(t, float32(10), b[0][0])

	Reset(a)
	assert.True(t, IsZero(a))
}

func TestParamSetShapeMismatchPanics(t *testing.T) {
	a := ParamSet{tensor.VectorOf(1, 2)}
	assert.PanicsWithValue(t, "Accumulate: block 0 has width 3, want 2", func() {
		Accumulate(a, ParamSet{tensor.VectorOf(1, 2, 3)})
	})
	assert.PanicsWithValue(t, "Copy: 1 parameter blocks != 2", func() {
		Copy(a, ParamSet{tensor.VectorOf(1), tensor.VectorOf(2)})
	})
}

func TestAccumulateLayers(t *testing.T) {
	net := newTestLayers(3).chain()
	g1, g2 := net.Zeroed(), net.Zeroed()
	Uniform(g1, newRNG(1), 1)
	Uniform(g2, newRNG(2), 1)

	sum := net.Zeroed()
	Accumulate(sum, g1)
	Accumulate(sum, g2)

	s, a, b := sum.Params(), g1.Params(), g2.Params()
	for i := range s {
		assert.Equal(t, a[i].Add(b[i]), s[i])
	}
}

func TestXavierBounds(t *testing.T) {
	layer := NewDenseConnected[tensor.ReLU](10, 6)
	Xavier(layer, newRNG(7))

	bound := float32(1) // sqrt(6/16) < 1
	assert.False(t, IsZero(layer))
	for _, v := range layer.Params() {
		for _, x := range v {
			assert.Less(t, x, bound)
			assert.Greater(t, x, -bound)
		}
	}

	// Same seed, same parameters.
	other := NewDenseConnected[tensor.ReLU](10, 6)
	Xavier(other, newRNG(7))
	assert.Equal(t, layer.Params(), other.Params())
}

func TestXavierNestedLayers(t *testing.T) {
	chain := NewChain[tensor.Vector, tensor.Vector, tensor.Vector](
		NewDenseConnected[tensor.ReLU](32, 16),
		NewDenseConnected[tensor.ReLU](16, 1),
	)
	Xavier(chain, newRNG(3))

	first := NewDenseConnected[tensor.ReLU](32, 16)
	rest := NewDenseConnected[tensor.ReLU](16, 1)
	rng := newRNG(3)
	Xavier(first, rng)
	Xavier(rest, rng)

	// Each link uses its own widths, not the chain's 32 -> 1.
	assert.Equal(t, first.Params(), chain.First.Params())
	assert.Equal(t, rest.Params(), chain.Rest.Params())

	bound := float32(math.Sqrt(6.0 / 48))
	for _, v := range chain.First.Params() {
		for _, x := range v {
			assert.LessOrEqual(t, x, bound)
			assert.GreaterOrEqual(t, x, -bound)
		}
	}
}

func TestXavierSequentialStages(t *testing.T) {
	net, err := NewSequential[tensor.Vector, tensor.Vector](
		NamedDense("a", NewDenseConnected[tensor.ReLU](8, 4)),
		NamedDense("b", NewChain[tensor.Vector, tensor.Vector, tensor.Vector](
			NewDenseConnected[tensor.ReLU](4, 3),
			NewDenseConnected[tensor.Identity](3, 1),
		)),
	)
	require.NoError(t, err)
	Xavier(net, newRNG(11))

	a := NewDenseConnected[tensor.ReLU](8, 4)
	b1 := NewDenseConnected[tensor.ReLU](4, 3)
	b2 := NewDenseConnected[tensor.Identity](3, 1)
	rng := newRNG(11)
	for _, l := range []Shaped{a, b1, b2} {
		Xavier(l, rng)
	}

	var want []tensor.Vector
	for _, l := range []Shaped{a, b1, b2} {
		want = append(want, l.Params()...)
	}
	assert.Equal(t, want, net.Params())
}
