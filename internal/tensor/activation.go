package tensor

import "github.com/chewxy/math32"

// Activation is an elementwise non-linearity used to parameterize layers.
//
// Derivative is evaluated on the activated output y = Activate(x), not on
// the pre-activation x, because layers only cache their outputs. Every
// built-in activation expresses its derivative in terms of y.
type Activation interface {
	Activate(x float32) float32
	Derivative(y float32) float32
}

// Identity passes values through unchanged.
type Identity struct{}

// Activate returns x.
func (Identity) Activate(x float32) float32 { return x }

// Derivative returns 1.
func (Identity) Derivative(float32) float32 { return 1 }

// ReLU is the rectified linear unit max(0, x).
//
// The derivative at 0 is defined as 0.
type ReLU struct{}

// Activate returns max(0, x).
func (ReLU) Activate(x float32) float32 { return math32.Max(x, 0) }

// Derivative returns 1 for positive outputs and 0 otherwise.
func (ReLU) Derivative(y float32) float32 {
	if y > 0 {
		return 1
	}
	return 0
}

// ClippedReLU clamps values into [0, 1].
type ClippedReLU struct{}

// Activate returns min(max(0, x), 1).
func (ClippedReLU) Activate(x float32) float32 { return math32.Min(math32.Max(x, 0), 1) }

// Derivative returns 1 strictly inside (0, 1) and 0 at or beyond the clip points.
func (ClippedReLU) Derivative(y float32) float32 {
	if y > 0 && y < 1 {
		return 1
	}
	return 0
}

// Sigmoid is the logistic function 1 / (1 + e^-x).
type Sigmoid struct{}

// Activate returns 1 / (1 + e^-x).
func (Sigmoid) Activate(x float32) float32 { return 1 / (1 + math32.Exp(-x)) }

// Derivative returns y(1-y).
func (Sigmoid) Derivative(y float32) float32 { return y * (1 - y) }
