// Package graphs provides the incidence-structure abstraction used by
// graph-typed domains: node/edge existence queries and adjacency sets,
// independent of the directed or undirected representation.
package graphs

import (
	"math/bits"

	"github.com/Xabibax/choco-solver/pkg/trail"
)

// Set is a set over a fixed index space [0, Max()). Add and Remove report
// whether membership actually changed.
type Set interface {
	Contains(x int) bool
	Add(x int) bool
	Remove(x int) bool
	Size() int
	ForEach(fn func(x int))
	Max() int
}

// BitSet is a plain, non-backtrackable Set.
type BitSet struct {
	words []uint64
	size  int
	max   int
}

func NewBitSet(max int) *BitSet {
	return &BitSet{words: make([]uint64, (max+63)/64), max: max}
}

func (s *BitSet) Contains(x int) bool {
	if x < 0 || x >= s.max {
		return false
	}
	return s.words[x/64]&(uint64(1)<<uint(x%64)) != 0
}

func (s *BitSet) Add(x int) bool {
	if s.Contains(x) {
		return false
	}
	s.words[x/64] |= uint64(1) << uint(x%64)
	s.size++
	return true
}

func (s *BitSet) Remove(x int) bool {
	if !s.Contains(x) {
		return false
	}
	s.words[x/64] &^= uint64(1) << uint(x%64)
	s.size--
	return true
}

func (s *BitSet) Size() int { return s.size }

func (s *BitSet) Max() int { return s.max }

func (s *BitSet) ForEach(fn func(x int)) {
	for i, w := range s.words {
		for w != 0 {
			b := bits.TrailingZeros64(w)
			fn(i*64 + b)
			w &^= uint64(1) << uint(b)
		}
	}
}

// StoredBitSet is a backtrackable Set: its words and size live in trailed
// cells, so a Store backtrack restores its contents. This is the
// composition point between graph domains and the memory model.
type StoredBitSet struct {
	words []*trail.Stored[uint64]
	size  *trail.Stored[int]
	max   int
}

func NewStoredBitSet(store *trail.Store, max int) *StoredBitSet {
	words := make([]*trail.Stored[uint64], (max+63)/64)
	for i := range words {
		words[i] = trail.NewStored(store, uint64(0))
	}
	return &StoredBitSet{words: words, size: trail.NewInt(store, 0), max: max}
}

func (s *StoredBitSet) Contains(x int) bool {
	if x < 0 || x >= s.max {
		return false
	}
	return s.words[x/64].Get()&(uint64(1)<<uint(x%64)) != 0
}

func (s *StoredBitSet) Add(x int) bool {
	if s.Contains(x) {
		return false
	}
	w := s.words[x/64]
	w.Set(w.Get() | uint64(1)<<uint(x%64))
	s.size.Set(s.size.Get() + 1)
	return true
}

func (s *StoredBitSet) Remove(x int) bool {
	if !s.Contains(x) {
		return false
	}
	w := s.words[x/64]
	w.Set(w.Get() &^ (uint64(1) << uint(x%64)))
	s.size.Set(s.size.Get() - 1)
	return true
}

func (s *StoredBitSet) Size() int { return s.size.Get() }

func (s *StoredBitSet) Max() int { return s.max }

func (s *StoredBitSet) ForEach(fn func(x int)) {
	for i, sw := range s.words {
		w := sw.Get()
		for w != 0 {
			b := bits.TrailingZeros64(w)
			fn(i*64 + b)
			w &^= uint64(1) << uint(b)
		}
	}
}
