package collections

import (
	"cmp"
	"slices"
)

// HashSet is a set without a defined iteration order.
type HashSet[T comparable] struct {
	items map[T]struct{}
}

func NewHashSet[T comparable](values ...T) *HashSet[T] {
	s := &HashSet[T]{items: make(map[T]struct{}, len(values))}
	for _, v := range values {
		s.Add(v)
	}
	return s
}

// Add inserts v and reports whether it was not already present.
func (s *HashSet[T]) Add(v T) bool {
	if _, ok := s.items[v]; ok {
		return false
	}
	s.items[v] = struct{}{}
	return true
}

func (s *HashSet[T]) Contains(v T) bool {
	_, ok := s.items[v]
	return ok
}

func (s *HashSet[T]) Remove(v T) {
	delete(s.items, v)
}

func (s *HashSet[T]) Len() int { return len(s.items) }

func (s *HashSet[T]) Category() Category { return Hash }

// Values returns the elements ordered by their string form.
func (s *HashSet[T]) Values() []any {
	values := make([]any, 0, len(s.items))
	for v := range s.items {
		values = append(values, v)
	}
	return sortedByString(values)
}

func (s *HashSet[T]) String() string { return render(s.Values()) }

// LinkedSet is a set iterating in insertion order.
type LinkedSet[T comparable] struct {
	order []T
	index map[T]struct{}
}

func NewLinkedSet[T comparable](values ...T) *LinkedSet[T] {
	s := &LinkedSet[T]{index: make(map[T]struct{}, len(values))}
	for _, v := range values {
		s.Add(v)
	}
	return s
}

// Add appends v and reports whether it was not already present.
func (s *LinkedSet[T]) Add(v T) bool {
	if _, ok := s.index[v]; ok {
		return false
	}
	s.index[v] = struct{}{}
	s.order = append(s.order, v)
	return true
}

func (s *LinkedSet[T]) Contains(v T) bool {
	_, ok := s.index[v]
	return ok
}

func (s *LinkedSet[T]) Remove(v T) {
	if _, ok := s.index[v]; !ok {
		return
	}
	delete(s.index, v)
	s.order = slices.DeleteFunc(s.order, func(e T) bool { return e == v })
}

func (s *LinkedSet[T]) Len() int { return len(s.order) }

func (s *LinkedSet[T]) Category() Category { return InsertionOrdered }

func (s *LinkedSet[T]) Values() []any {
	values := make([]any, len(s.order))
	for i, v := range s.order {
		values[i] = v
	}
	return values
}

// Slice returns a copy of the elements in insertion order.
func (s *LinkedSet[T]) Slice() []T { return slices.Clone(s.order) }

func (s *LinkedSet[T]) String() string { return render(s.Values()) }

// SortedSet is a set iterating in the order defined by its comparison function.
type SortedSet[T any] struct {
	items   []T
	compare func(a, b T) int
}

// NewSortedSet creates a set ordered by cmp.Compare.
func NewSortedSet[T cmp.Ordered](values ...T) *SortedSet[T] {
	return NewSortedSetFunc(cmp.Compare[T], values...)
}

// NewSortedSetFunc creates a set ordered by compare. Elements comparing as
// zero are considered duplicates.
func NewSortedSetFunc[T any](compare func(a, b T) int, values ...T) *SortedSet[T] {
	s := &SortedSet[T]{compare: compare}
	for _, v := range values {
		s.Add(v)
	}
	return s
}

func (s *SortedSet[T]) Add(v T) bool {
	i, found := slices.BinarySearchFunc(s.items, v, s.compare)
	if found {
		return false
	}
	s.items = slices.Insert(s.items, i, v)
	return true
}

func (s *SortedSet[T]) Contains(v T) bool {
	_, found := slices.BinarySearchFunc(s.items, v, s.compare)
	return found
}

func (s *SortedSet[T]) Remove(v T) {
	if i, found := slices.BinarySearchFunc(s.items, v, s.compare); found {
		s.items = slices.Delete(s.items, i, i+1)
	}
}

func (s *SortedSet[T]) Len() int { return len(s.items) }

func (s *SortedSet[T]) Category() Category { return Sorted }

func (s *SortedSet[T]) Values() []any {
	values := make([]any, len(s.items))
	for i, v := range s.items {
		values[i] = v
	}
	return values
}

func (s *SortedSet[T]) Slice() []T { return slices.Clone(s.items) }

func (s *SortedSet[T]) String() string { return render(s.Values()) }
