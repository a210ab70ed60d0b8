package tensor

import (
	"errors"
	"fmt"
)

// ErrFeatureOutOfRange is returned by SparseVector.Validate when an index does
// not fit the consuming layer's input width.
var ErrFeatureOutOfRange = errors.New("feature index out of range")

// SparseVector is an ordered list of active feature indices.
//
// Every listed index carries an implicit value of 1.0, every other index
// 0.0. Indices are kept in insertion order and duplicates are allowed; a
// duplicated index counts twice.
type SparseVector struct {
	feats []int
}

// NewSparseVector returns an empty sparse vector with room for capacity
// indices. The capacity is a hint, not a limit.
func NewSparseVector(capacity int) SparseVector {
	return SparseVector{feats: make([]int, 0, capacity)}
}

// SparseOf returns a sparse vector holding idx in order.
func SparseOf(idx ...int) SparseVector {
	s := NewSparseVector(len(idx))
	s.feats = append(s.feats, idx...)
	return s
}

// Push appends a feature index.
func (s *SparseVector) Push(idx int) {
	s.feats = append(s.feats, idx)
}

// Clear removes all indices, keeping the allocated capacity.
func (s *SparseVector) Clear() {
	s.feats = s.feats[:0]
}

// Len returns the number of active indices, duplicates included.
func (s SparseVector) Len() int {
	return len(s.feats)
}

// At returns the i-th active index.
func (s SparseVector) At(i int) int {
	return s.feats[i]
}

// Features returns the active indices in insertion order.
// The returned slice must not be modified.
func (s SparseVector) Features() []int {
	return s.feats
}

// Add returns the concatenation of s and o, which is the sparse form of the
// sum of their dense expansions.
func (s SparseVector) Add(o SparseVector) SparseVector {
	out := NewSparseVector(len(s.feats) + len(o.feats))
	out.feats = append(out.feats, s.feats...)
	out.feats = append(out.feats, o.feats...)
	return out
}

// Validate reports whether every index lies in [0, width).
func (s SparseVector) Validate(width int) error {
	for i, idx := range s.feats {
		if idx < 0 || idx >= width {
			return fmt.Errorf("%w: index %d at position %d, width %d", ErrFeatureOutOfRange, idx, i, width)
		}
	}
	return nil
}

// Dense expands s into a width-wide vector.
func (s SparseVector) Dense(width int) Vector {
	out := NewVector(width)
	for _, idx := range s.feats {
		out[idx]++
	}
	return out
}
