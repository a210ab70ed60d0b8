package nn

import (
	"math"
	"math/rand/v2"
)

// composite is implemented by layers built from other layers.
type composite interface {
	sublayers() []Shaped
}

// Xavier (Glorot) initialization for every parameter of l.
//
// Initializes parameters with values drawn from a uniform distribution:
// U(-sqrt(6/(fan_in + fan_out)), sqrt(6/(fan_in + fan_out)))
// where fan_in and fan_out are the widths reported by Shape().
//
// Composed layers (Chain, Add, Incremental, Sequential) are initialized
// leaf by leaf in parameter order, each leaf with its own widths.
//
// Parameters:
//   - l: Layer to initialize in place
//   - rng: Random source, seeded by the caller for reproducibility
func Xavier(l Shaped, rng *rand.Rand) {
	if c, ok := l.(composite); ok {
		for _, sub := range c.sublayers() {
			Xavier(sub, rng)
		}
		return
	}
	fanIn, fanOut := l.Shape()
	bound := float32(math.Sqrt(6.0 / float64(fanIn+fanOut)))
	Uniform(l, rng, bound)
}

// Uniform fills every parameter of p with values from U(-bound, bound).
func Uniform(p Parameterized, rng *rand.Rand, bound float32) {
	for _, v := range p.Params() {
		for i := range v {
			v[i] = (rng.Float32()*2 - 1) * bound
		}
	}
}
