package optim

import (
	"fmt"

	"github.com/chewxy/math32"

	"github.com/born-ml/evalnet/internal/nn"
)

// Update applies one Adam step to every parameter of param.
//
// grad, m and v must have the same parameter shape as param; m and v are the
// first and second moment buffers and are updated in place. For every scalar:
//
//	m = beta1*m + (1-beta1)*g
//	v = beta2*v + (1-beta2)*g²
//	p -= lr * adj * m / (sqrt(v) + eps)
//
// adj is the caller-supplied bias-correction factor, see BiasCorrection.
// cfg is used as given; call WithDefaults first for a zero-valued config.
//
// Panics if the parameter shapes differ.
func Update(param, grad, m, v nn.Parameterized, adj, lr float32, cfg AdamConfig) {
	p, g, mm, vv := param.Params(), grad.Params(), m.Params(), v.Params()
	if len(g) != len(p) || len(mm) != len(p) || len(vv) != len(p) {
		panic(fmt.Sprintf("optim.Update: parameter blocks %d, gradient %d, moments %d/%d", len(p), len(g), len(mm), len(vv)))
	}

	hyper := cfg.Hyper()
	for i := range p {
		p[i].Adam(g[i], mm[i], vv[i], adj, lr, hyper)
	}
}

// BiasCorrection returns the Adam bias-correction factor for timestep t
// (1-based):
//
//	adj = sqrt(1 - beta2^t) / (1 - beta1^t)
//
// Multiplying the step by adj is equivalent to dividing m by (1-beta1^t) and
// v by (1-beta2^t), with eps left uncorrected.
func BiasCorrection(t int, cfg AdamConfig) float32 {
	n := float32(t)
	b1 := 1 - math32.Pow(cfg.Betas[0], n)
	b2 := 1 - math32.Pow(cfg.Betas[1], n)
	return math32.Sqrt(b2) / b1
}

// Adam implements the Adam (Adaptive Moment Estimation) optimizer over a
// fixed-shape network.
//
// Adam combines ideas from RMSprop and momentum:
//   - Maintains exponential moving averages of gradients (first moment)
//   - Maintains exponential moving averages of squared gradients (second moment)
//   - Applies bias correction to compensate for initialization at zero
//
// The moments are allocated once with the shape of the network, so Step never
// allocates.
//
// Reference: "Adam: A Method for Stochastic Optimization" (Kingma & Ba, 2014)
//
// Example:
//
//	optimizer := optim.NewAdam(net, optim.AdamConfig{LR: 0.001})
//	grad := net.Zeroed()
//
//	for _, batch := range batches {
//	    nn.Reset(grad)
//	    for _, x := range batch {
//	        cache := net.Forward(x.Input)
//	        net.Backprop(x.Input, grad, lossGrad(x, cache.Output()), cache)
//	    }
//	    optimizer.Step(grad)
//	}
type Adam struct {
	params nn.Parameterized
	cfg    AdamConfig
	t      int         // Timestep for bias correction
	m      nn.ParamSet // First moment estimates
	v      nn.ParamSet // Second moment estimates
}

// NewAdam creates a new Adam optimizer for params.
//
// Zero fields of config take their defaults:
//   - LR: 0.001
//   - Beta1: 0.9
//   - Beta2: 0.999
//   - Eps: 1e-8
func NewAdam(params nn.Parameterized, config AdamConfig) *Adam {
	return &Adam{
		params: params,
		cfg:    config.WithDefaults(),
		m:      nn.ZeroLike(params),
		v:      nn.ZeroLike(params),
	}
}

// Step performs a single optimization step with the bias correction of the
// next timestep.
func (a *Adam) Step(grad nn.Parameterized) {
	a.t++
	Update(a.params, grad, a.m, a.v, BiasCorrection(a.t, a.cfg), a.cfg.LR, a.cfg)
}

// GetLR returns the current learning rate.
func (a *Adam) GetLR() float32 {
	return a.cfg.LR
}

// SetLR sets the learning rate (useful for learning rate scheduling).
func (a *Adam) SetLR(lr float32) {
	a.cfg.LR = lr
}

// GetTimestep returns the number of steps taken.
func (a *Adam) GetTimestep() int {
	return a.t
}

// Config returns the effective configuration.
func (a *Adam) Config() AdamConfig {
	return a.cfg
}

// Moments returns the first and second moment buffers.
//
// The buffers alias the optimizer state; they can be written with
// serialization.WriteFile to checkpoint a training run.
func (a *Adam) Moments() (m, v nn.ParamSet) {
	return a.m, a.v
}

var _ Optimizer = (*Adam)(nil)
