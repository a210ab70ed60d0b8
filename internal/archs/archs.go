// Package archs defines the reference evaluation networks.
//
// Every network is a Sequential container with named stages, so its
// parameter file layout is the stage order and each stage's Params order.
package archs

import (
	"fmt"
	"math/rand/v2"
	"sort"

	"github.com/born-ml/evalnet/internal/nn"
	"github.com/born-ml/evalnet/internal/tensor"
)

// Input feature-space width shared by all reference networks: 12 piece
// types on 64 squares.
const Features = 768

// Network is a reference network with its stages exposed.
type Network interface {
	nn.Shaped
	Stages() []nn.Stage
}

// Arch describes a buildable reference network.
type Arch struct {
	Name        string
	Description string
	Build       func() Network
}

var registry = map[string]Arch{
	"subnet": {
		Name:        "subnet",
		Description: "sparse 768 -> 16 feature transformer",
		Build:       func() Network { return NewSubNet() },
	},
	"sidenet": {
		Name:        "sidenet",
		Description: "sparse 768 -> 512 ReLU, dense 512 -> 1",
		Build:       func() Network { return NewSideNet() },
	},
	"testnet": {
		Name:        "testnet",
		Description: "dense 768 -> 32 -> 16 -> 1, ReLU throughout",
		Build:       func() Network { return NewTestNet() },
	},
}

// Lookup returns the architecture registered under name.
func Lookup(name string) (Arch, error) {
	a, ok := registry[name]
	if !ok {
		return Arch{}, fmt.Errorf("unknown architecture %q (known: %v)", name, Names())
	}
	return a, nil
}

// Names returns the registered architecture names in sorted order.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// NewSubNet returns a zeroed single sparse layer, 768 -> 16.
func NewSubNet() *nn.Sequential[tensor.SparseVector, tensor.Vector] {
	return must(nn.NewSequential[tensor.SparseVector, tensor.Vector](
		nn.NamedSparse("ft", nn.NewSparseConnected[tensor.ReLU](Features, 16)),
	))
}

// NewSideNet returns a zeroed sparse feature transformer with a linear
// output, 768 -> 512 -> 1.
func NewSideNet() *nn.Sequential[tensor.SparseVector, tensor.Vector] {
	return must(nn.NewSequential[tensor.SparseVector, tensor.Vector](
		nn.NamedSparse("ft", nn.NewSparseConnected[tensor.ReLU](Features, 512)),
		nn.NamedDense("l2", nn.NewDenseConnected[tensor.Identity](512, 1)),
	))
}

// NewTestNet returns a zeroed dense network, 768 -> 32 -> 16 -> 1. The last
// two layers form a nested sub-network.
func NewTestNet() *nn.Sequential[tensor.Vector, tensor.Vector] {
	sub := nn.NewChain[tensor.Vector, tensor.Vector, tensor.Vector](
		nn.NewDenseConnected[tensor.ReLU](32, 16),
		nn.NewDenseConnected[tensor.ReLU](16, 1),
	)
	return must(nn.NewSequential[tensor.Vector, tensor.Vector](
		nn.NamedDense("l1", nn.NewDenseConnected[tensor.ReLU](Features, 32)),
		nn.NamedDense("l2", sub),
	))
}

// Init fills every layer of n with Xavier-initialized parameters, nested
// layers included.
func Init(n Network, rng *rand.Rand) {
	for _, st := range n.Stages() {
		nn.Xavier(st, rng)
	}
}

func must[T any](v T, err error) T {
	if err != nil {
		panic(fmt.Sprintf("archs: invalid reference network: %v", err))
	}
	return v
}
