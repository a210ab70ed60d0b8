package main

import (
	"context"
	"encoding/hex"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"math/rand/v2"
	"os"
	"strings"

	"github.com/born-ml/evalnet/internal/archs"
	"github.com/born-ml/evalnet/internal/serialization"
	"github.com/born-ml/evalnet/nn"
	"github.com/born-ml/evalnet/optim"
	"github.com/born-ml/evalnet/tensor"
)

func describe(args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("describe", flag.ContinueOnError)
	archName := fs.String("arch", "sidenet", "Network architecture ("+strings.Join(archs.Names(), ", ")+")")
	if err := fs.Parse(args); err != nil {
		return err
	}

	arch, err := archs.Lookup(*archName)
	if err != nil {
		return err
	}
	net := arch.Build()
	in, out := net.Shape()

	fmt.Fprintf(stdout, "%s: %s\n", arch.Name, arch.Description)
	fmt.Fprintf(stdout, "  input %d, output %d\n", in, out)
	for i, st := range net.Stages() {
		sIn, sOut := st.Shape()
		fmt.Fprintf(stdout, "  [%d] %-4s %4d -> %-4d %9d params\n", i, st.Name(), sIn, sOut, nn.NumParams(st))
	}
	fmt.Fprintf(stdout, "  total %d params, %d bytes\n", nn.NumParams(net), serialization.Size(net))
	return nil
}

func export(args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("export", flag.ContinueOnError)
	archName := fs.String("arch", "sidenet", "Network architecture ("+strings.Join(archs.Names(), ", ")+")")
	outPath := fs.String("out", "", "Output parameter file (required)")
	seed := fs.Uint64("seed", 1, "Random seed for initialization and synthetic samples")
	configPath := fs.String("config", "", "Adam configuration YAML (defaults if empty)")
	samples := fs.Int("samples", 256, "Synthetic samples in the training step")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *outPath == "" {
		return errors.New("export: -out is required")
	}
	if *samples < 1 {
		return fmt.Errorf("export: -samples must be positive, got %d", *samples)
	}

	cfg := optim.AdamConfig{}
	if *configPath != "" {
		var err error
		if cfg, err = optim.LoadAdamConfig(*configPath); err != nil {
			return err
		}
	}

	arch, err := archs.Lookup(*archName)
	if err != nil {
		return err
	}
	net := arch.Build()
	rng := rand.New(rand.NewPCG(*seed, *seed^0x5851f42d4c957f2d))
	archs.Init(net, rng)

	optimizer := optim.NewAdam(net, cfg)
	var loss float32
	switch n := net.(type) {
	case nn.Layer[tensor.SparseVector, tensor.Vector]:
		loss, err = trainStep(n, optimizer, sparseSamples(rng, *samples, n))
	case nn.Layer[tensor.Vector, tensor.Vector]:
		loss, err = trainStep(n, optimizer, denseSamples(rng, *samples, n))
	default:
		err = fmt.Errorf("export: unsupported network type %T", net)
	}
	if err != nil {
		return err
	}
	log.Printf("%s: one Adam step (lr %g) on %d samples, loss %.6f", arch.Name, optimizer.GetLR(), *samples, loss)

	if err := nn.WriteToBin(*outPath, net); err != nil {
		return err
	}
	sum, size, err := fileChecksum(*outPath)
	if err != nil {
		return err
	}
	fmt.Fprintf(stdout, "%s  %s (%d bytes)\n", hex.EncodeToString(sum[:]), *outPath, size)
	return nil
}

// fileChecksum hashes the exported file as it is on disk.
func fileChecksum(path string) ([32]byte, int64, error) {
	f, err := os.Open(path) //nolint:gosec // G304: path comes from the -out flag
	if err != nil {
		return [32]byte{}, 0, fmt.Errorf("export: open %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	info, err := f.Stat()
	if err != nil {
		return [32]byte{}, 0, fmt.Errorf("export: stat %s: %w", path, err)
	}
	sum, err := serialization.ComputeChecksumReader(f)
	if err != nil {
		return [32]byte{}, 0, fmt.Errorf("export: checksum %s: %w", path, err)
	}
	return sum, info.Size(), nil
}

// sample is an input with a regression target for the synthetic step.
type sample[In any] struct {
	input  In
	target float32
}

func sparseSamples(rng *rand.Rand, n int, net nn.Shaped) []sample[tensor.SparseVector] {
	width, _ := net.Shape()
	out := make([]sample[tensor.SparseVector], n)
	for i := range out {
		active := 2 + rng.IntN(30)
		x := tensor.NewSparseVector(active)
		for range active {
			x.Push(rng.IntN(width))
		}
		out[i] = sample[tensor.SparseVector]{input: x, target: rng.Float32()*2 - 1}
	}
	return out
}

func denseSamples(rng *rand.Rand, n int, net nn.Shaped) []sample[tensor.Vector] {
	width, _ := net.Shape()
	out := make([]sample[tensor.Vector], n)
	for i := range out {
		x := tensor.VectorFromFn(width, func(int) float32 { return float32(rng.IntN(2)) })
		out[i] = sample[tensor.Vector]{input: x, target: rng.Float32()*2 - 1}
	}
	return out
}

// trainStep computes the mean squared error gradient of the first output
// lane over samples and applies it with one optimizer step. It returns the
// loss before the step.
func trainStep[In any](net nn.Layer[In, tensor.Vector], optimizer *optim.Adam, samples []sample[In]) (float32, error) {
	inputs := make([]In, len(samples))
	for i, s := range samples {
		inputs[i] = s.input
	}

	scale := 1 / float32(len(samples))
	lossGrad := func(i int, out tensor.Vector) tensor.Vector {
		e := tensor.NewVector(out.Len())
		e[0] = 2 * scale * (out[0] - samples[i].target)
		return e
	}

	grad, err := nn.BatchGradient(context.Background(), net, inputs, lossGrad, nn.DefaultParallelConfig())
	if err != nil {
		return 0, fmt.Errorf("export: gradient: %w", err)
	}

	var loss float32
	for i, x := range inputs {
		d := nn.Out(net, x)[0] - samples[i].target
		loss += d * d * scale
	}

	optimizer.Step(grad)
	return loss, nil
}
