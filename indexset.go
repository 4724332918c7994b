package hexmesh

import (
	"github.com/emirpasic/gods/sets/treeset"
)

// indexSet is an ordered set of integer indices. Iteration is always
// ascending which keeps candidate enumeration deterministic.
// The zero value is ready to use.
type indexSet struct {
	s *treeset.Set
}

func (is *indexSet) init() {
	if is.s == nil {
		is.s = treeset.NewWithIntComparator()
	}
}

// add inserts i and reports whether it was not present before.
func (is *indexSet) add(i int) bool {
	is.init()
	if is.s.Contains(i) {
		return false
	}
	is.s.Add(i)
	return true
}

func (is *indexSet) has(i int) bool {
	return is.s != nil && is.s.Contains(i)
}

func (is *indexSet) len() int {
	if is.s == nil {
		return 0
	}
	return is.s.Size()
}

func (is *indexSet) clear() {
	if is.s != nil {
		is.s.Clear()
	}
}

// slice returns the indices in ascending order.
func (is *indexSet) slice() []int {
	if is.s == nil {
		return nil
	}
	out := make([]int, 0, is.s.Size())
	it := is.s.Iterator()
	for it.Next() {
		out = append(out, it.Value().(int))
	}
	return out
}
