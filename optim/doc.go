// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package optim provides the Adam optimizer for evalnet networks.
//
// # Overview
//
// Update applies one Adam step to any parameter block given its gradient
// and two moment buffers of the same shape. Adam wraps Update with owned
// moments and a timestep for bias correction.
//
// Hyperparameters live in AdamConfig and can be loaded from YAML:
//
//	lr: 0.001
//	betas: [0.9, 0.999]
//	eps: 1e-8
//
// # Basic Usage
//
//	cfg, err := optim.LoadAdamConfig("adam.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	optimizer := optim.NewAdam(net, cfg)
//
//	grad := net.Zeroed()
//	// ... Backprop a batch into grad ...
//	optimizer.Step(grad)
package optim
