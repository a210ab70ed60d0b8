package nn

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/born-ml/evalnet/internal/parallel"
)

// LossGrad returns the error with respect to the output of sample i.
//
// It is called concurrently from several goroutines when cfg enables
// parallelism and must not modify out.
type LossGrad[Out any] func(i int, out Out) Out

// BatchGradient accumulates the parameter gradient of net over inputs.
//
// The batch is split into contiguous shards by parallel.Shards. Each shard
// runs on its own goroutine with its own zeroed accumulator, at most
// cfg.Workers() at a time, and the shard accumulators are merged in shard
// order. The result is therefore deterministic for a fixed cfg, and equal to
// sequential accumulation up to floating-point rounding.
//
// net itself is only read. The context is checked between samples; on
// cancellation the context error is returned and the partial gradient is
// discarded.
//
// Example:
//
//	grad, err := nn.BatchGradient(ctx, net, positions,
//	    func(i int, out tensor.Vector) tensor.Vector {
//	        return out.Sub(targets[i])
//	    },
//	    parallel.DefaultConfig(),
//	)
func BatchGradient[In, Out any](
	ctx context.Context,
	net Layer[In, Out],
	inputs []In,
	lossGrad LossGrad[Out],
	cfg parallel.Config,
) (Layer[In, Out], error) {
	shards := parallel.Shards(len(inputs), cfg)
	if len(shards) == 0 {
		return net.Zeroed(), nil
	}

	accs := make([]Layer[In, Out], len(shards))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.Workers())

	for s, r := range shards {
		acc := net.Zeroed()
		accs[s] = acc
		g.Go(func() error {
			for i := r.Start; i < r.End; i++ {
				if err := ctx.Err(); err != nil {
					return err
				}
				cache := net.Forward(inputs[i])
				net.Backprop(inputs[i], acc, lossGrad(i, cache.Output()), cache)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	total := accs[0]
	for _, acc := range accs[1:] {
		Accumulate(total, acc)
	}
	return total, nil
}
