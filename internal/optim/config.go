package optim

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/born-ml/evalnet/internal/tensor"
)

// Default Adam hyperparameters, applied to zero-valued config fields.
const (
	DefaultLR    = 0.001
	DefaultBeta1 = 0.9
	DefaultBeta2 = 0.999
	DefaultEps   = 1e-8
)

// AdamConfig holds configuration for the Adam optimizer.
//
// In YAML:
//
//	lr: 0.001
//	betas: [0.9, 0.999]
//	eps: 1e-8
type AdamConfig struct {
	LR    float32    `yaml:"lr"`    // Learning rate (default: 0.001)
	Betas [2]float32 `yaml:"betas"` // Coefficients for computing running averages (default: [0.9, 0.999])
	Eps   float32    `yaml:"eps"`   // Term for numerical stability (default: 1e-8)
}

// WithDefaults returns c with every zero field replaced by its default.
func (c AdamConfig) WithDefaults() AdamConfig {
	if c.LR == 0 {
		c.LR = DefaultLR
	}
	if c.Betas[0] == 0 {
		c.Betas[0] = DefaultBeta1
	}
	if c.Betas[1] == 0 {
		c.Betas[1] = DefaultBeta2
	}
	if c.Eps == 0 {
		c.Eps = DefaultEps
	}
	return c
}

// Validate checks that the hyperparameters describe a stable update.
func (c AdamConfig) Validate() error {
	if c.LR < 0 {
		return fmt.Errorf("adam: negative learning rate %g", c.LR)
	}
	for i, b := range c.Betas {
		if b < 0 || b >= 1 {
			return fmt.Errorf("adam: beta%d = %g outside [0, 1)", i+1, b)
		}
	}
	if c.Eps <= 0 {
		return fmt.Errorf("adam: eps must be positive, got %g", c.Eps)
	}
	return nil
}

// Hyper returns the per-lane constants of the update.
func (c AdamConfig) Hyper() tensor.AdamHyper {
	return tensor.AdamHyper{Beta1: c.Betas[0], Beta2: c.Betas[1], Eps: c.Eps}
}

// ParseAdamConfig decodes a YAML document into an AdamConfig.
//
// Missing fields take their defaults. Unknown fields are rejected.
func ParseAdamConfig(data []byte) (AdamConfig, error) {
	var raw struct {
		LR    float32   `yaml:"lr"`
		Betas []float32 `yaml:"betas"`
		Eps   float32   `yaml:"eps"`
	}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&raw); err != nil && !errors.Is(err, io.EOF) {
		return AdamConfig{}, fmt.Errorf("failed to parse adam config: %w", err)
	}
	if len(raw.Betas) > 2 {
		return AdamConfig{}, fmt.Errorf("failed to parse adam config: betas has %d values, want 2", len(raw.Betas))
	}

	cfg := AdamConfig{LR: raw.LR, Eps: raw.Eps}
	copy(cfg.Betas[:], raw.Betas)
	cfg = cfg.WithDefaults()
	if err := cfg.Validate(); err != nil {
		return AdamConfig{}, err
	}
	return cfg, nil
}

// LoadAdamConfig reads and parses the YAML file at path.
func LoadAdamConfig(path string) (AdamConfig, error) {
	//nolint:gosec // G304: File path provided by user, this is expected for config loading
	data, err := os.ReadFile(path)
	if err != nil {
		return AdamConfig{}, fmt.Errorf("failed to read file: %w", err)
	}
	return ParseAdamConfig(data)
}
