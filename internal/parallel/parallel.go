// Package parallel splits batch work across worker goroutines.
package parallel

import (
	"runtime"
)

// Config controls parallel execution behavior.
type Config struct {
	Enabled      bool // Whether parallel execution is enabled.
	NumWorkers   int  // Number of worker goroutines to use.
	MinChunkSize int  // Minimum items per shard to avoid overhead.
}

// DefaultConfig returns sensible defaults based on CPU count.
func DefaultConfig() Config {
	n := runtime.NumCPU()
	return Config{
		Enabled:      n > 1,
		NumWorkers:   n,
		MinChunkSize: 64,
	}
}

// Sequential returns a config that runs everything on the calling goroutine.
func Sequential() Config {
	return Config{NumWorkers: 1}
}

// Workers returns the number of goroutines cfg allows, at least 1.
func (c Config) Workers() int {
	if !c.Enabled || c.NumWorkers < 1 {
		return 1
	}
	return c.NumWorkers
}

// Range is a half-open interval [Start, End) of item indices.
type Range struct {
	Start, End int
}

// Shards splits [0, n) into contiguous ranges in ascending order.
//
// Falls back to a single shard if parallelism is disabled or n is too small.
// No shard is shorter than MinChunkSize except possibly the last one, and
// there are never more shards than workers. Returns nil for n <= 0.
func Shards(n int, cfg Config) []Range {
	if n <= 0 {
		return nil
	}
	workers := cfg.Workers()
	if workers == 1 || n < cfg.MinChunkSize {
		return []Range{{Start: 0, End: n}}
	}

	chunkSize := max((n+workers-1)/workers, cfg.MinChunkSize, 1)
	shards := make([]Range, 0, (n+chunkSize-1)/chunkSize)
	for start := 0; start < n; start += chunkSize {
		shards = append(shards, Range{Start: start, End: min(start+chunkSize, n)})
	}
	return shards
}
