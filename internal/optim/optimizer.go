// Package optim implements the parameter update of evalnet networks.
//
// This package provides:
//   - Update: one Adam step over any parameter block and its moments
//   - Adam: stateful optimizer owning the moments and the timestep
//   - AdamConfig: hyperparameters, loadable from YAML
//
// Example usage:
//
//	optimizer := optim.NewAdam(net, optim.AdamConfig{LR: 0.001})
//
//	for range epochs {
//	    grad, err := nn.BatchGradient(ctx, net, inputs, lossGrad, cfg)
//	    if err != nil {
//	        return err
//	    }
//	    optimizer.Step(grad)
//	}
package optim

import (
	"github.com/born-ml/evalnet/internal/nn"
)

// Optimizer is the base interface for optimization algorithms.
//
// All optimizers must implement:
//   - Step: Apply one gradient to the parameters
//   - GetLR: Get current learning rate (for monitoring/scheduling)
//   - SetLR: Set learning rate (for learning rate schedules)
type Optimizer interface {
	// Step applies grad to the optimized parameters in place.
	//
	// grad must have the same parameter shape as the optimized network,
	// usually an accumulator obtained from Zeroed.
	Step(grad nn.Parameterized)

	// GetLR returns the current learning rate.
	GetLR() float32

	// SetLR sets the learning rate.
	SetLR(lr float32)
}
