package nn

import (
	"fmt"

	"github.com/born-ml/evalnet/internal/tensor"
)

// ParamSet is a standalone parameter-shaped value.
//
// It is used for values that only need the shape of a network's parameters,
// such as Adam moment buffers.
//
// Example:
//
//	momentum := nn.ZeroLike(net)
//	velocity := nn.ZeroLike(net)
type ParamSet []tensor.Vector

// Params returns the parameter blocks.
func (p ParamSet) Params() []tensor.Vector {
	return p
}

// ZeroLike returns a zeroed ParamSet with the same block widths as p.
func ZeroLike(p Parameterized) ParamSet {
	params := p.Params()
	out := make(ParamSet, len(params))
	for i, v := range params {
		out[i] = tensor.NewVector(v.Len())
	}
	return out
}

// Accumulate adds every parameter of src into dst (dst += src).
//
// Accumulation is elementwise addition, so per-worker gradient accumulators
// can be merged in any order up to floating-point rounding.
//
// Panics if the shapes differ.
func Accumulate(dst, src Parameterized) {
	d, s := dst.Params(), src.Params()
	mustSameShape("Accumulate", d, s)
	for i := range d {
		d[i].AddAssign(s[i])
	}
}

// Reset sets every parameter of p to zero in place.
//
// Used to clear a gradient accumulator between batches without reallocating.
func Reset(p Parameterized) {
	for _, v := range p.Params() {
		v.Zero()
	}
}

// Copy overwrites the parameters of dst with those of src.
//
// Panics if the shapes differ.
func Copy(dst, src Parameterized) {
	d, s := dst.Params(), src.Params()
	mustSameShape("Copy", d, s)
	for i := range d {
		copy(d[i], s[i])
	}
}

// NumParams returns the number of scalar parameters of p.
func NumParams(p Parameterized) int {
	n := 0
	for _, v := range p.Params() {
		n += v.Len()
	}
	return n
}

// IsZero reports whether every parameter of p is exactly zero.
func IsZero(p Parameterized) bool {
	for _, v := range p.Params() {
		for _, x := range v {
			if x != 0 {
				return false
			}
		}
	}
	return true
}

func mustSameShape(op string, a, b []tensor.Vector) {
	if len(a) != len(b) {
		panic(fmt.Sprintf("%s: %d parameter blocks != %d", op, len(a), len(b)))
	}
	for i := range a {
		if a[i].Len() != b[i].Len() {
			panic(fmt.Sprintf("%s: block %d has width %d, want %d", op, i, b[i].Len(), a[i].Len()))
		}
	}
}
