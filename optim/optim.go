// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package optim

import (
	"github.com/born-ml/evalnet/internal/nn"
	"github.com/born-ml/evalnet/internal/optim"
)

// Optimizer interface defines the common interface for all optimizers.
type Optimizer = optim.Optimizer

// Adam (Adaptive Moment Estimation)

// Adam represents the Adam optimizer.
type Adam = optim.Adam

// AdamConfig contains configuration for the Adam optimizer.
type AdamConfig = optim.AdamConfig

// NewAdam creates a new Adam optimizer for params.
//
// Example:
//
//	optimizer := optim.NewAdam(net, optim.AdamConfig{
//	    LR:    0.001,
//	    Betas: [2]float32{0.9, 0.999},
//	    Eps:   1e-8,
//	})
func NewAdam(params nn.Parameterized, config AdamConfig) *Adam {
	return optim.NewAdam(params, config)
}

// Update applies one Adam step to every parameter of param with
// bias-correction factor adj.
func Update(param, grad, m, v nn.Parameterized, adj, lr float32, cfg AdamConfig) {
	optim.Update(param, grad, m, v, adj, lr, cfg)
}

// BiasCorrection returns sqrt(1 - beta2^t) / (1 - beta1^t).
func BiasCorrection(t int, cfg AdamConfig) float32 {
	return optim.BiasCorrection(t, cfg)
}

// ParseAdamConfig decodes a YAML document into an AdamConfig.
func ParseAdamConfig(data []byte) (AdamConfig, error) {
	return optim.ParseAdamConfig(data)
}

// LoadAdamConfig reads and parses the YAML file at path.
func LoadAdamConfig(path string) (AdamConfig, error) {
	return optim.LoadAdamConfig(path)
}
