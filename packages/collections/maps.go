package collections

import (
	"cmp"
	"fmt"
	"slices"
	"strings"
)

// LinkedMap is a map iterating in key insertion order.
type LinkedMap[K comparable, V any] struct {
	keys   []K
	values map[K]V
}

func NewLinkedMap[K comparable, V any]() *LinkedMap[K, V] {
	return &LinkedMap[K, V]{values: make(map[K]V)}
}

// Put sets the value for key. Updating an existing key keeps its position.
func (m *LinkedMap[K, V]) Put(key K, value V) *LinkedMap[K, V] {
	if _, ok := m.values[key]; !ok {
		m.keys = append(m.keys, key)
	}
	m.values[key] = value
	return m
}

func (m *LinkedMap[K, V]) Lookup(key K) (V, bool) {
	v, ok := m.values[key]
	return v, ok
}

func (m *LinkedMap[K, V]) Delete(key K) {
	if _, ok := m.values[key]; !ok {
		return
	}
	delete(m.values, key)
	m.keys = slices.DeleteFunc(m.keys, func(k K) bool { return k == key })
}

func (m *LinkedMap[K, V]) Len() int { return len(m.keys) }

func (m *LinkedMap[K, V]) Category() Category { return InsertionOrdered }

func (m *LinkedMap[K, V]) Keys() []any {
	keys := make([]any, len(m.keys))
	for i, k := range m.keys {
		keys[i] = k
	}
	return keys
}

func (m *LinkedMap[K, V]) Get(key any) (any, bool) {
	k, ok := key.(K)
	if !ok {
		return nil, false
	}
	v, ok := m.values[k]
	return v, ok
}

func (m *LinkedMap[K, V]) String() string {
	return renderEntries(m.Keys(), m.Get)
}

// SortedMap is a map iterating in key order.
type SortedMap[K comparable, V any] struct {
	keys    []K
	values  map[K]V
	compare func(a, b K) int
}

func NewSortedMap[K cmp.Ordered, V any]() *SortedMap[K, V] {
	return NewSortedMapFunc[K, V](cmp.Compare[K])
}

func NewSortedMapFunc[K comparable, V any](compare func(a, b K) int) *SortedMap[K, V] {
	return &SortedMap[K, V]{values: make(map[K]V), compare: compare}
}

func (m *SortedMap[K, V]) Put(key K, value V) *SortedMap[K, V] {
	if _, ok := m.values[key]; !ok {
		i, _ := slices.BinarySearchFunc(m.keys, key, m.compare)
		m.keys = slices.Insert(m.keys, i, key)
	}
	m.values[key] = value
	return m
}

func (m *SortedMap[K, V]) Lookup(key K) (V, bool) {
	v, ok := m.values[key]
	return v, ok
}

func (m *SortedMap[K, V]) Delete(key K) {
	if _, ok := m.values[key]; !ok {
		return
	}
	delete(m.values, key)
	if i, found := slices.BinarySearchFunc(m.keys, key, m.compare); found {
		m.keys = slices.Delete(m.keys, i, i+1)
	}
}

func (m *SortedMap[K, V]) Len() int { return len(m.keys) }

func (m *SortedMap[K, V]) Category() Category { return Sorted }

func (m *SortedMap[K, V]) Keys() []any {
	keys := make([]any, len(m.keys))
	for i, k := range m.keys {
		keys[i] = k
	}
	return keys
}

func (m *SortedMap[K, V]) Get(key any) (any, bool) {
	k, ok := key.(K)
	if !ok {
		return nil, false
	}
	v, ok := m.values[k]
	return v, ok
}

func (m *SortedMap[K, V]) String() string {
	return renderEntries(m.Keys(), m.Get)
}

func renderEntries(keys []any, get func(any) (any, bool)) string {
	var sb strings.Builder
	sb.WriteString("{")
	for i, k := range keys {
		if i > 0 {
			sb.WriteString(", ")
		}
		v, _ := get(k)
		fmt.Fprintf(&sb, "%v=%v", k, v)
	}
	sb.WriteString("}")
	return sb.String()
}
