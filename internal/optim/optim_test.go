package optim_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/chewxy/math32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/evalnet/internal/nn"
	"github.com/born-ml/evalnet/internal/optim"
	"github.com/born-ml/evalnet/internal/tensor"
)

// Helper to check float equality with tolerance.
func floatEqual(a, b, eps float32) bool {
	diff := a - b
	if diff < 0 {
		diff = -diff
	}
	return diff < eps
}

// TestBiasCorrection_FirstStep checks adj at t=1 against its closed form.
func TestBiasCorrection_FirstStep(t *testing.T) {
	cfg := optim.AdamConfig{}.WithDefaults()

	got := optim.BiasCorrection(1, cfg)
	want := math32.Sqrt(1-0.999) / (1 - 0.9)
	if !floatEqual(got, want, 1e-5) {
		t.Errorf("Expected %f, got %f", want, got)
	}

	// Converges to 1 as t grows.
	if late := optim.BiasCorrection(100000, cfg); !floatEqual(late, 1, 1e-3) {
		t.Errorf("Expected bias correction near 1 late in training, got %f", late)
	}
}

// TestAdam_FirstStep tests that the first bias-corrected step moves each
// parameter by about lr against the gradient sign.
func TestAdam_FirstStep(t *testing.T) {
	layer := nn.DenseConnectedFromRaw[tensor.Identity](
		tensor.MatrixFromRows(tensor.VectorOf(2, -1)),
		tensor.VectorOf(0.5),
	)
	grad := nn.ParamSet{tensor.VectorOf(1, -3), tensor.VectorOf(0)}

	optimizer := optim.NewAdam(layer, optim.AdamConfig{LR: 0.01})
	optimizer.Step(grad)

	w := layer.Weights().Row(0)
	if !floatEqual(w[0], 1.99, 1e-5) {
		t.Errorf("Expected w[0]=1.99, got %f", w[0])
	}
	if !floatEqual(w[1], -0.99, 1e-5) {
		t.Errorf("Expected w[1]=-0.99, got %f", w[1])
	}
	// Zero gradient leaves the bias untouched.
	if layer.Bias()[0] != 0.5 {
		t.Errorf("Expected bias 0.5, got %f", layer.Bias()[0])
	}
	if optimizer.GetTimestep() != 1 {
		t.Errorf("Expected timestep 1, got %d", optimizer.GetTimestep())
	}
}

// TestUpdate_MatchesManualFormula checks one Update against the scalar rule.
func TestUpdate_MatchesManualFormula(t *testing.T) {
	cfg := optim.AdamConfig{LR: 0.1, Betas: [2]float32{0.5, 0.75}, Eps: 1e-3}
	param := nn.ParamSet{tensor.VectorOf(1)}
	grad := nn.ParamSet{tensor.VectorOf(2)}
	m := nn.ParamSet{tensor.VectorOf(0.4)}
	v := nn.ParamSet{tensor.VectorOf(1)}

	optim.Update(param, grad, m, v, 0.5, cfg.LR, cfg)

	wantM := float32(0.5*0.4 + 0.5*2)
	wantV := float32(0.75*1 + 0.25*4)
	wantP := 1 - 0.1*0.5*wantM/(math32.Sqrt(wantV)+1e-3)

	assert.InDelta(t, wantM, m[0][0], 1e-6)
	assert.InDelta(t, wantV, v[0][0], 1e-6)
	assert.InDelta(t, wantP, param[0][0], 1e-6)
}

// TestAdam_ZeroGradientStable runs many steps with a zero gradient.
func TestAdam_ZeroGradientStable(t *testing.T) {
	layer := nn.DenseConnectedFromRaw[tensor.Identity](
		tensor.MatrixFromRows(tensor.VectorOf(0.25, -4)),
		tensor.VectorOf(1),
	)
	before := nn.ZeroLike(layer)
	nn.Copy(before, layer)

	optimizer := optim.NewAdam(layer, optim.AdamConfig{})
	grad := layer.Zeroed()
	for range 10000 {
		optimizer.Step(grad)
	}

	for i, block := range layer.Params() {
		for j, x := range block {
			if math32.IsNaN(x) || math32.IsInf(x, 0) {
				t.Fatalf("block %d lane %d is %f", i, j, x)
			}
			if x != before[i][j] {
				t.Errorf("block %d lane %d moved from %f to %f", i, j, before[i][j], x)
			}
		}
	}
}

// TestAdam_Converges minimizes (w - 3)² for a single weight.
func TestAdam_Converges(t *testing.T) {
	param := nn.ParamSet{tensor.VectorOf(0)}
	optimizer := optim.NewAdam(param, optim.AdamConfig{LR: 0.05})

	for range 2000 {
		grad := nn.ParamSet{tensor.VectorOf(2 * (param[0][0] - 3))}
		optimizer.Step(grad)
	}

	if !floatEqual(param[0][0], 3, 1e-2) {
		t.Errorf("Expected w close to 3, got %f", param[0][0])
	}
}

func TestAdam_LR(t *testing.T) {
	optimizer := optim.NewAdam(nn.ParamSet{tensor.VectorOf(0)}, optim.AdamConfig{})
	assert.InDelta(t, 0.001, optimizer.GetLR(), 1e-9)

	optimizer.SetLR(0.01)
	assert.InDelta(t, 0.01, optimizer.GetLR(), 1e-9)
	assert.InDelta(t, 0.9, optimizer.Config().Betas[0], 1e-7)

	m, v := optimizer.Moments()
	assert.True(t, nn.IsZero(m))
	assert.True(t, nn.IsZero(v))
}

func TestUpdate_ShapeMismatchPanics(t *testing.T) {
	param := nn.ParamSet{tensor.VectorOf(1)}
	assert.Panics(t, func() {
		optim.Update(param, nn.ParamSet{}, param, param, 1, 0.1, optim.AdamConfig{}.WithDefaults())
	})
}

func TestParseAdamConfig(t *testing.T) {
	cfg, err := optim.ParseAdamConfig([]byte("lr: 0.01\nbetas: [0.8, 0.99]\neps: 1e-6\n"))
	require.NoError(t, err)
	assert.InDelta(t, 0.01, cfg.LR, 1e-9)
	assert.InDelta(t, 0.8, cfg.Betas[0], 1e-7)
	assert.InDelta(t, 0.99, cfg.Betas[1], 1e-7)
	assert.InDelta(t, 1e-6, cfg.Eps, 1e-12)
}

func TestParseAdamConfig_Defaults(t *testing.T) {
	cfg, err := optim.ParseAdamConfig([]byte("lr: 0.002\n"))
	require.NoError(t, err)
	assert.InDelta(t, 0.002, cfg.LR, 1e-9)
	assert.Equal(t, [2]float32{optim.DefaultBeta1, optim.DefaultBeta2}, cfg.Betas)
	assert.Equal(t, float32(optim.DefaultEps), cfg.Eps)

	cfg, err = optim.ParseAdamConfig(nil)
	require.NoError(t, err)
	assert.Equal(t, optim.AdamConfig{}.WithDefaults(), cfg)
}

func TestParseAdamConfig_Invalid(t *testing.T) {
	for name, doc := range map[string]string{
		"unknown field": "lr: 0.01\nmomentum: 0.9\n",
		"beta of one":   "betas: [1, 0.999]\n",
		"three betas":   "betas: [0.9, 0.99, 0.999]\n",
		"negative eps":  "eps: -1\n",
		"not yaml":      "lr: [\n",
	} {
		t.Run(name, func(t *testing.T) {
			_, err := optim.ParseAdamConfig([]byte(doc))
			assert.Error(t, err)
		})
	}
}

func TestLoadAdamConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "adam.yaml")
	require.NoError(t, os.WriteFile(path, []byte("lr: 0.005\n"), 0o600))

	cfg, err := optim.LoadAdamConfig(path)
	require.NoError(t, err)
	assert.InDelta(t, 0.005, cfg.LR, 1e-9)

	_, err = optim.LoadAdamConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
