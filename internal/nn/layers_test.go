package nn

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/evalnet/internal/tensor"
)

func assertVectorInDelta(t *testing.T, want, got tensor.Vector, delta float64, msgAndArgs ...any) {
	t.Helper()
	require.Equal(t, want.Len(), got.Len(), msgAndArgs...)
	for i := range want {
		assert.InDelta(t, want[i], got[i], delta, msgAndArgs...)
	}
}

func transpose(m tensor.Matrix) tensor.Matrix {
	rows := make([]tensor.Vector, m.Cols())
	for j := range rows {
		rows[j] = tensor.VectorFromFn(m.Rows(), func(i int) float32 { return m.Row(i)[j] })
	}
	return tensor.MatrixFromRows(rows...)
}

func TestDenseConnectedBackprop(t *testing.T) {
	layer := DenseConnectedFromRaw[tensor.Identity](
		tensor.MatrixFromRows(tensor.VectorOf(1, 2, 3), tensor.VectorOf(-1, 0, 1)),
		tensor.VectorOf(0.5, -0.5),
	)
	x := tensor.VectorOf(1, 2, 3)
	cache := layer.Forward(x)
	assert.Equal(t, tensor.VectorOf(14.5, 1.5), cache.Output())

	grad := layer.Zeroed()
	outErr := tensor.VectorOf(1, 2)
	inErr := layer.Backprop(x, grad, outErr, cache)

	g := grad.(*DenseConnected[tensor.Identity])
	assert.Equal(t, tensor.VectorOf(1, 2, 3), g.Weights().Row(0))
	assert.Equal(t, tensor.VectorOf(2, 4, 6), g.Weights().Row(1))
	assert.Equal(t, tensor.VectorOf(1, 2), g.Bias())
	assert.Equal(t, tensor.VectorOf(-1, 2, 5), inErr)

	// A second pass accumulates.
	layer.Backprop(x, grad, outErr, cache)
	assert.Equal(t, tensor.VectorOf(2, 4), g.Bias())

	// Arguments are left untouched.
	assert.Equal(t, tensor.VectorOf(1, 2, 3), x)
	assert.Equal(t, tensor.VectorOf(1, 2), outErr)
	assert.Equal(t, tensor.VectorOf(14.5, 1.5), cache.Output())
}

func TestSparseDenseEquivalence(t *testing.T) {
	const in, out = 5, 3
	rng := newRNG(3)

	sparse := NewSparseConnected[tensor.ReLU](in, out)
	Uniform(sparse, rng, 1)
	dense := DenseConnectedFromRaw[tensor.ReLU](transpose(sparse.Weights()), sparse.Bias().Clone())

	for mask := range 1 << in {
		input := tensor.NewSparseVector(in)
		for idx := range in {
			if mask&(1<<idx) != 0 {
				input.Push(idx)
			}
		}
		got := Out[tensor.SparseVector, tensor.Vector](sparse, input)
		want := Out[tensor.Vector, tensor.Vector](dense, input.Dense(in))
		assertVectorInDelta(t, want, got, 1e-5, "mask %05b", mask)
	}
}

func TestSparseConnectedBackprop(t *testing.T) {
	layer := NewSparseConnected[tensor.Identity](4, 2)
	input := tensor.SparseOf(1, 3, 3)
	cache := layer.Forward(input)

	grad := layer.Zeroed()
	inErr := layer.Backprop(input, grad, tensor.VectorOf(1, -2), cache)
	assert.Equal(t, 0, inErr.Len())

	g := grad.(*SparseConnected[tensor.Identity])
	assert.Equal(t, tensor.VectorOf(0, 0), g.WeightsRow(0))
	assert.Equal(t, tensor.VectorOf(1, -2), g.WeightsRow(1))
	assert.Equal(t, tensor.VectorOf(0, 0), g.WeightsRow(2))
	assert.Equal(t, tensor.VectorOf(2, -4), g.WeightsRow(3))
	assert.Equal(t, tensor.VectorOf(1, -2), g.Bias())
}

func TestSparseConnectedCheckInput(t *testing.T) {
	layer := NewSparseConnected[tensor.ReLU](4, 2)
	assert.NoError(t, layer.CheckInput(tensor.SparseOf(0, 3)))
	assert.ErrorIs(t, layer.CheckInput(tensor.SparseOf(0, 4)), tensor.ErrFeatureOutOfRange)
}

func TestSparseIncrementalEquivalence(t *testing.T) {
	const in = 16
	rng := newRNG(11)
	layer := NewSparseConnected[tensor.ReLU](in, 4)
	Uniform(layer, rng, 1)

	active := make([]bool, in)
	acc := layer.NewAccumulator()
	assert.Equal(t, layer.Bias(), acc)

	for step := range 500 {
		idx := rng.IntN(in)
		if active[idx] {
			layer.SubFeature(acc, idx)
		} else {
			layer.AddFeature(acc, idx)
		}
		active[idx] = !active[idx]

		input := tensor.NewSparseVector(in)
		for i, on := range active {
			if on {
				input.Push(i)
			}
		}
		want := layer.NewAccumulator()
		layer.Refresh(want, input)
		assertVectorInDelta(t, want, acc, 1e-4, "step %d", step)
		assertVectorInDelta(t, Out[tensor.SparseVector, tensor.Vector](layer, input), layer.OutFromAccumulator(acc), 1e-4, "step %d", step)
	}
}

func TestConv1DForwardBackprop(t *testing.T) {
	layer := Conv1DFromRaw[tensor.Identity](tensor.VectorOf(1, 2), tensor.VectorOf(0.5, 0, -1))
	in, out := layer.Shape()
	require.Equal(t, 4, in)
	require.Equal(t, 3, out)

	x := tensor.VectorOf(1, 2, 3, 4)
	cache := layer.Forward(x)
	assert.Equal(t, tensor.VectorOf(5.5, 8, 10), cache.Output())

	grad := layer.Zeroed()
	inErr := layer.Backprop(x, grad, tensor.VectorOf(1, 1, 1), cache)

	g := grad.(*Conv1D[tensor.Identity])
	assert.Equal(t, tensor.VectorOf(6, 9), g.Kernel())
	assert.Equal(t, tensor.VectorOf(1, 1, 1), g.Bias())
	// Border lanes are covered by a single output position.
	assert.Equal(t, tensor.VectorOf(1, 3, 3, 2), inErr)
}

func TestConv1DInvalidShape(t *testing.T) {
	assert.Panics(t, func() { NewConv1D[tensor.ReLU](3, 4) })
	assert.Panics(t, func() { NewConv1D[tensor.ReLU](3, 0) })
	assert.Panics(t, func() {
		Out[tensor.Vector, tensor.Vector](NewConv1D[tensor.ReLU](4, 2), tensor.VectorOf(1, 2))
	})

	in, out := NewConv1D[tensor.ReLU](5, 5).Shape()
	assert.Equal(t, 5, in)
	assert.Equal(t, 5, out)
}

func TestAddLinearity(t *testing.T) {
	rng := newRNG(5)
	a := NewDenseConnected[tensor.Sigmoid](4, 3)
	b := NewConv1D[tensor.Identity](4, 3)
	Uniform(a, rng, 1)
	Uniform(b, rng, 1)
	add := NewAdd[tensor.Vector, tensor.Vector](a, b)

	for range 5 {
		x := randVector(rng, 4)
		want := Out[tensor.Vector, tensor.Vector](a, x).Add(Out[tensor.Vector, tensor.Vector](b, x))
		assertVectorInDelta(t, want, Out[tensor.Vector, tensor.Vector](add, x), 1e-6)

		outErr := randVector(rng, 3)
		ga, gb := a.Zeroed(), b.Zeroed()
		ea := a.Backprop(x, ga, outErr, a.Forward(x))
		eb := b.Backprop(x, gb, outErr, b.Forward(x))

		grad := add.Zeroed()
		inErr := add.Backprop(x, grad, outErr, add.Forward(x))

		assertVectorInDelta(t, ea.Add(eb), inErr, 1e-6)
		assert.Equal(t, append(ga.Params(), gb.Params()...), grad.Params())
	}
}

func TestAddSparseBranches(t *testing.T) {
	rng := newRNG(9)
	a := NewSparseConnected[tensor.ReLU](8, 2)
	b := NewSparseConnected[tensor.Identity](8, 2)
	Uniform(a, rng, 1)
	Uniform(b, rng, 1)
	add := NewAdd[tensor.SparseVector, tensor.Vector](a, b)

	input := tensor.SparseOf(0, 5, 7)
	want := Out[tensor.SparseVector, tensor.Vector](a, input).Add(Out[tensor.SparseVector, tensor.Vector](b, input))
	assertVectorInDelta(t, want, Out[tensor.SparseVector, tensor.Vector](add, input), 1e-6)

	grad := add.Zeroed()
	inErr := add.Backprop(input, grad, tensor.VectorOf(1, 1), add.Forward(input))
	assert.Equal(t, 0, inErr.Len())
	assert.False(t, IsZero(grad))
}

func TestAddShapeMismatchPanics(t *testing.T) {
	assert.Panics(t, func() {
		NewAdd[tensor.Vector, tensor.Vector](NewDenseConnected[tensor.ReLU](4, 3), NewDenseConnected[tensor.ReLU](4, 2))
	})
}

func TestZeroed(t *testing.T) {
	rng := newRNG(13)
	layers := map[string]Parameterized{
		"dense":  NewDenseConnected[tensor.ReLU](3, 2),
		"sparse": NewSparseConnected[tensor.ReLU](6, 2),
		"conv":   NewConv1D[tensor.ReLU](5, 2),
	}
	for name, l := range layers {
		t.Run(name, func(t *testing.T) {
			Uniform(l, rng, 1)
			require.False(t, IsZero(l))

			var zero Parameterized
			switch l := l.(type) {
			case Layer[tensor.Vector, tensor.Vector]:
				zero = l.Zeroed()
				assertSameShape(t, l, zero.(Shaped))
			case Layer[tensor.SparseVector, tensor.Vector]:
				zero = l.Zeroed()
				assertSameShape(t, l, zero.(Shaped))
			}
			assert.True(t, IsZero(zero))
			assert.Equal(t, NumParams(l), NumParams(zero))
		})
	}
}

func assertSameShape(t *testing.T, a, b Shaped) {
	t.Helper()
	aIn, aOut := a.Shape()
	bIn, bOut := b.Shape()
	assert.Equal(t, aIn, bIn)
	assert.Equal(t, aOut, bOut)
}

func TestBackpropWrongAccumulatorPanics(t *testing.T) {
	layer := NewDenseConnected[tensor.Identity](2, 2)
	x := tensor.VectorOf(1, 1)
	cache := layer.Forward(x)

	assert.Panics(t, func() {
		layer.Backprop(x, NewDenseConnected[tensor.ReLU](2, 2), tensor.VectorOf(1, 1), cache)
	})
	assert.Panics(t, func() {
		layer.Backprop(x, NewConv1D[tensor.Identity](2, 2), tensor.VectorOf(1, 1), cache)
	})
}
