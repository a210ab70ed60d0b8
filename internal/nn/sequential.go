package nn

import (
	"fmt"

	"github.com/born-ml/evalnet/internal/tensor"
)

// Stage is a named layer inside a Sequential container.
//
// Stages erase the input and output types of their layer so layers of
// different kinds can share one ordered list. NewSequential restores type
// safety by checking that adjacent stages chain.
type Stage interface {
	// Name returns the stage name given to Named.
	Name() string

	// Shape returns the input and output widths of the stage's layer.
	Shape() (in, out int)

	// Params returns the parameters of the stage's layer.
	Params() []tensor.Vector

	forward(input any) any
	output(cache any) any
	backprop(input any, grad Stage, outErr any, cache any) any
	zeroed() Stage
	accepts(prev Stage) bool
}

// consumer and producer are implemented by stage[In, Out] for its own In and
// Out, which lets NewSequential compare erased types with type assertions.
type consumer[T any] interface{ consume(T) }

type producer[T any] interface{ produce() T }

type stage[In, Out any] struct {
	name  string
	layer Layer[In, Out]
}

// Named wraps a layer into a Sequential stage.
//
// In and Out cannot be inferred from a concrete layer type, so they are
// usually given explicitly; NamedDense and NamedSparse cover the built-in
// layer kinds.
func Named[In, Out any](name string, layer Layer[In, Out]) Stage {
	return &stage[In, Out]{name: name, layer: layer}
}

// NamedDense wraps a layer with dense input and output.
func NamedDense(name string, layer Layer[tensor.Vector, tensor.Vector]) Stage {
	return Named(name, layer)
}

// NamedSparse wraps a layer with sparse input and dense output.
func NamedSparse(name string, layer Layer[tensor.SparseVector, tensor.Vector]) Stage {
	return Named(name, layer)
}

// StageLayer returns the layer of s if its types are In and Out.
func StageLayer[In, Out any](s Stage) (Layer[In, Out], bool) {
	st, ok := s.(*stage[In, Out])
	if !ok {
		return nil, false
	}
	return st.layer, true
}

func (s *stage[In, Out]) Name() string            { return s.name }
func (s *stage[In, Out]) Shape() (in, out int)    { return s.layer.Shape() }
func (s *stage[In, Out]) Params() []tensor.Vector { return s.layer.Params() }
func (s *stage[In, Out]) sublayers() []Shaped     { return []Shaped{s.layer} }
func (s *stage[In, Out]) consume(In)              {}
func (s *stage[In, Out]) produce() (out Out)      { return out }

func (s *stage[In, Out]) accepts(prev Stage) bool {
	_, ok := prev.(producer[In])
	return ok
}

func (s *stage[In, Out]) forward(input any) any {
	return s.layer.Forward(input.(In))
}

func (s *stage[In, Out]) output(cache any) any {
	return cache.(Cache[Out]).Output()
}

func (s *stage[In, Out]) backprop(input any, grad Stage, outErr any, cache any) any {
	g := accumulatorOf[*stage[In, Out]]("Sequential.Backprop", grad)
	return s.layer.Backprop(input.(In), g.layer, outErr.(Out), cache.(Cache[Out]))
}

func (s *stage[In, Out]) zeroed() Stage {
	return &stage[In, Out]{name: s.name, layer: s.layer.Zeroed()}
}

// Sequential is a container that chains an ordered list of named stages.
//
// The first stage consumes In, the last produces Out and each stage's output
// is the next stage's input. The cache keeps one entry per stage, in order.
//
// Example:
//
//	net, err := nn.NewSequential[tensor.SparseVector, tensor.Vector](
//	    nn.NamedSparse("ft", nn.NewSparseConnected[tensor.ReLU](768, 32)),
//	    nn.NamedDense("l1", nn.NewDenseConnected[tensor.ReLU](32, 16)),
//	    nn.NamedDense("out", nn.NewDenseConnected[tensor.Identity](16, 1)),
//	)
//
// This is equivalent to nesting the same layers in Chains.
type Sequential[In, Out any] struct {
	stages []Stage
}

// SequentialCache holds the cache of every stage in order.
type SequentialCache[Out any] struct {
	caches []any
	out    Out
}

// Output returns the output of the last stage.
func (c *SequentialCache[Out]) Output() Out { return c.out }

// NewSequential creates a Sequential container.
//
// Returns ErrEmptyComposition without stages, ErrTypeMismatch when the ends
// or two adjacent stages have incompatible types and ErrShapeMismatch when
// adjacent widths differ.
func NewSequential[In, Out any](stages ...Stage) (*Sequential[In, Out], error) {
	if len(stages) == 0 {
		return nil, ErrEmptyComposition
	}

	if _, ok := stages[0].(consumer[In]); !ok {
		return nil, fmt.Errorf("%w: first stage %q does not accept %T", ErrTypeMismatch, stages[0].Name(), *new(In))
	}
	last := stages[len(stages)-1]
	if _, ok := last.(producer[Out]); !ok {
		return nil, fmt.Errorf("%w: last stage %q does not produce %T", ErrTypeMismatch, last.Name(), *new(Out))
	}

	for i := 1; i < len(stages); i++ {
		prev, next := stages[i-1], stages[i]
		if !next.accepts(prev) {
			return nil, fmt.Errorf("%w: stage %q cannot consume the output of %q", ErrTypeMismatch, next.Name(), prev.Name())
		}
		_, prevOut := prev.Shape()
		if nextIn, _ := next.Shape(); nextIn != prevOut {
			return nil, fmt.Errorf("%w: stage %q outputs width %d, stage %q expects %d",
				ErrShapeMismatch, prev.Name(), prevOut, next.Name(), nextIn)
		}
	}

	return &Sequential[In, Out]{stages: stages}, nil
}

// Len returns the number of stages.
func (s *Sequential[In, Out]) Len() int {
	return len(s.stages)
}

// Stage returns the stage at the given index.
//
// Panics if index is out of bounds.
func (s *Sequential[In, Out]) Stage(index int) Stage {
	if index < 0 || index >= len(s.stages) {
		panic("Sequential.Stage: index out of bounds")
	}
	return s.stages[index]
}

// Stages returns the stages in order. The returned slice is a copy; the
// stages themselves are shared.
func (s *Sequential[In, Out]) Stages() []Stage {
	return append([]Stage(nil), s.stages...)
}

// Lookup returns the stage with the given name.
func (s *Sequential[In, Out]) Lookup(name string) (Stage, bool) {
	for _, st := range s.stages {
		if st.Name() == name {
			return st, true
		}
	}
	return nil, false
}

// Shape returns the input width of the first stage and the output width of
// the last.
func (s *Sequential[In, Out]) Shape() (in, out int) {
	in, _ = s.stages[0].Shape()
	_, out = s.stages[len(s.stages)-1].Shape()
	return in, out
}

// Forward applies all stages in order, keeping every stage cache.
func (s *Sequential[In, Out]) Forward(input In) Cache[Out] {
	caches := make([]any, len(s.stages))

	var x any = input
	for i, st := range s.stages {
		caches[i] = st.forward(x)
		x = st.output(caches[i])
	}

	return &SequentialCache[Out]{caches: caches, out: x.(Out)}
}

// Backprop walks the stages in reverse order. Stage i receives the cached
// output of stage i-1 as its input (the network input for the first stage)
// and the error returned by stage i+1 (outErr for the last stage).
func (s *Sequential[In, Out]) Backprop(input In, grad Layer[In, Out], outErr Out, cache Cache[Out]) In {
	g := accumulatorOf[*Sequential[In, Out]]("Sequential.Backprop", grad)
	c := cacheOf[*SequentialCache[Out]]("Sequential.Backprop", cache)

	var err any = outErr
	for i := len(s.stages) - 1; i >= 0; i-- {
		var in any = input
		if i > 0 {
			in = s.stages[i-1].output(c.caches[i-1])
		}
		err = s.stages[i].backprop(in, g.stages[i], err, c.caches[i])
	}

	return err.(In)
}

// Zeroed returns a zero-initialized container with the same stages.
func (s *Sequential[In, Out]) Zeroed() Layer[In, Out] {
	stages := make([]Stage, len(s.stages))
	for i, st := range s.stages {
		stages[i] = st.zeroed()
	}
	return &Sequential[In, Out]{stages: stages}
}

// Params returns the parameters of all stages in order.
func (s *Sequential[In, Out]) Params() []tensor.Vector {
	var params []tensor.Vector
	for _, st := range s.stages {
		params = append(params, st.Params()...)
	}
	return params
}

func (s *Sequential[In, Out]) sublayers() []Shaped {
	subs := make([]Shaped, len(s.stages))
	for i, st := range s.stages {
		subs[i] = st
	}
	return subs
}
