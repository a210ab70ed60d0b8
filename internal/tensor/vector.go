package tensor

import (
	"fmt"

	"github.com/chewxy/math32"
)

// Vector is a fixed-width run of float32 lanes.
//
// The width is chosen once at construction and never changes afterwards.
// Every binary operation requires both operands to have the same width and
// panics otherwise, the same way a shape mismatch is treated as a
// programming error elsewhere in the framework.
//
// Methods named after an operator (Add, Sub, Mul, Scale) return a new vector.
// Methods with an Assign suffix, MAdd and Zero update the receiver in place
// and are the ones used on hot paths.
type Vector []float32

// NewVector returns a zeroed vector of width n.
func NewVector(n int) Vector {
	if n < 0 {
		panic(fmt.Sprintf("NewVector: negative width %d", n))
	}
	return make(Vector, n)
}

// VectorOf returns a vector holding a copy of lanes.
//
// Example:
//
//	v := tensor.VectorOf(1, 0, 0)
func VectorOf(lanes ...float32) Vector {
	v := make(Vector, len(lanes))
	copy(v, lanes)
	return v
}

// VectorFromFn returns a vector of width n whose i-th lane is f(i).
func VectorFromFn(n int, f func(i int) float32) Vector {
	v := NewVector(n)
	for i := range v {
		v[i] = f(i)
	}
	return v
}

// Len returns the width of the vector.
func (v Vector) Len() int {
	return len(v)
}

// Clone returns an independent copy of v.
func (v Vector) Clone() Vector {
	out := make(Vector, len(v))
	copy(out, v)
	return out
}

// Zero sets every lane to zero in place.
func (v Vector) Zero() {
	clear(v)
}

// Add returns v + o.
func (v Vector) Add(o Vector) Vector {
	mustMatch("Vector.Add", v, o)
	out := v.Clone()
	out.AddAssign(o)
	return out
}

// Sub returns v - o.
func (v Vector) Sub(o Vector) Vector {
	mustMatch("Vector.Sub", v, o)
	out := v.Clone()
	out.SubAssign(o)
	return out
}

// Mul returns the elementwise product of v and o.
func (v Vector) Mul(o Vector) Vector {
	mustMatch("Vector.Mul", v, o)
	out := v.Clone()
	out.MulAssign(o)
	return out
}

// Scale returns s * v.
func (v Vector) Scale(s float32) Vector {
	out := make(Vector, len(v))
	for i, x := range v {
		out[i] = s * x
	}
	return out
}

// AddAssign performs v += o.
func (v Vector) AddAssign(o Vector) {
	mustMatch("Vector.AddAssign", v, o)
	for i := range v {
		v[i] += o[i]
	}
}

// SubAssign performs v -= o.
func (v Vector) SubAssign(o Vector) {
	mustMatch("Vector.SubAssign", v, o)
	for i := range v {
		v[i] -= o[i]
	}
}

// MulAssign performs v *= o elementwise.
func (v Vector) MulAssign(o Vector) {
	mustMatch("Vector.MulAssign", v, o)
	for i := range v {
		v[i] *= o[i]
	}
}

// MAdd performs v += s * o.
func (v Vector) MAdd(s float32, o Vector) {
	mustMatch("Vector.MAdd", v, o)
	for i := range v {
		v[i] += s * o[i]
	}
}

// Dot returns the inner product of v and o.
func (v Vector) Dot(o Vector) float32 {
	mustMatch("Vector.Dot", v, o)
	var sum float32
	for i := range v {
		sum += v[i] * o[i]
	}
	return sum
}

// Sum returns the sum of all lanes.
func (v Vector) Sum() float32 {
	var sum float32
	for _, x := range v {
		sum += x
	}
	return sum
}

// Activate returns a applied lane-wise to v.
func (v Vector) Activate(a Activation) Vector {
	out := make(Vector, len(v))
	for i, x := range v {
		out[i] = a.Activate(x)
	}
	return out
}

// Derivative returns the derivative of a lane-wise, evaluated on v.
//
// v is expected to hold activated outputs, see Activation.
func (v Vector) Derivative(a Activation) Vector {
	out := make(Vector, len(v))
	for i, y := range v {
		out[i] = a.Derivative(y)
	}
	return out
}

// AdamHyper holds the process-independent Adam constants.
type AdamHyper struct {
	Beta1 float32
	Beta2 float32
	Eps   float32
}

// Adam applies one Adam step to v treating it as a parameter vector.
//
// For every lane:
//
//	m = beta1*m + (1-beta1)*g
//	v = beta2*v + (1-beta2)*g²
//	p -= lr * adj * m / (sqrt(v) + eps)
//
// m and vel are updated in place. With eps > 0 a gradient that stays zero
// for the whole run leaves p unchanged and never produces NaN.
func (v Vector) Adam(g, m, vel Vector, adj, lr float32, h AdamHyper) {
	mustMatch("Vector.Adam", v, g)
	mustMatch("Vector.Adam", v, m)
	mustMatch("Vector.Adam", v, vel)

	for i := range v {
		grad := g[i]
		m[i] = h.Beta1*m[i] + (1-h.Beta1)*grad
		vel[i] = h.Beta2*vel[i] + (1-h.Beta2)*grad*grad
		v[i] -= lr * adj * m[i] / (math32.Sqrt(vel[i]) + h.Eps)
	}
}

func mustMatch(op string, a, b Vector) {
	if len(a) != len(b) {
		panic(fmt.Sprintf("%s: width mismatch %d != %d", op, len(a), len(b)))
	}
}
