package archs

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/evalnet/internal/nn"
	"github.com/born-ml/evalnet/internal/serialization"
	"github.com/born-ml/evalnet/internal/tensor"
)

func TestShapes(t *testing.T) {
	tests := []struct {
		name   string
		params int
		stages []string
	}{
		{"subnet", 768*16 + 16, []string{"ft"}},
		{"sidenet", 768*512 + 512 + 512 + 1, []string{"ft", "l2"}},
		{"testnet", 768*32 + 32 + 32*16 + 16 + 16 + 1, []string{"l1", "l2"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			arch, err := Lookup(tt.name)
			require.NoError(t, err)

			net := arch.Build()
			in, out := net.Shape()
			assert.Equal(t, Features, in)
			if tt.name == "subnet" {
				assert.Equal(t, 16, out)
			} else {
				assert.Equal(t, 1, out)
			}

			assert.True(t, nn.IsZero(net))
			assert.Equal(t, tt.params, nn.NumParams(net))
			assert.Equal(t, int64(tt.params*4), serialization.Size(net))

			var names []string
			for _, st := range net.Stages() {
				names = append(names, st.Name())
			}
			assert.Equal(t, tt.stages, names)
		})
	}
}

func TestLookupUnknown(t *testing.T) {
	_, err := Lookup("bignet")
	assert.Error(t, err)
	assert.Equal(t, []string{"sidenet", "subnet", "testnet"}, Names())
}

func TestZeroedTestNetOutputsZero(t *testing.T) {
	net := NewTestNet()
	input := tensor.VectorFromFn(Features, func(int) float32 { return 1 })
	assert.Equal(t, tensor.VectorOf(0), nn.Out[tensor.Vector, tensor.Vector](net, input))
}

func TestInitIsReproducible(t *testing.T) {
	a, b := NewSideNet(), NewSideNet()
	Init(a, rand.New(rand.NewPCG(1, 2)))
	Init(b, rand.New(rand.NewPCG(1, 2)))

	assert.False(t, nn.IsZero(a))
	assert.Equal(t, serialization.ComputeChecksum(a), serialization.ComputeChecksum(b))

	out := nn.Out[tensor.SparseVector, tensor.Vector](a, tensor.SparseOf(0, 100, 700))
	assert.Equal(t, 1, out.Len())
}

func TestInitNestedStage(t *testing.T) {
	net := NewTestNet()
	Init(net, rand.New(rand.NewPCG(5, 6)))

	want := NewTestNet()
	rng := rand.New(rand.NewPCG(5, 6))
	l1, ok := nn.StageLayer[tensor.Vector, tensor.Vector](want.Stage(0))
	require.True(t, ok)
	nn.Xavier(l1, rng)

	l2, ok := nn.StageLayer[tensor.Vector, tensor.Vector](want.Stage(1))
	require.True(t, ok)
	sub, ok := l2.(*nn.Chain[tensor.Vector, tensor.Vector, tensor.Vector])
	require.True(t, ok)
	nn.Xavier(sub.First, rng)
	nn.Xavier(sub.Rest, rng)

	assert.Equal(t, want.Params(), net.Params())
}
