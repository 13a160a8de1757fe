package collections

import (
	"fmt"
	"sort"
)

// Category identifies how a container orders its elements.
type Category int

const (
	Hash Category = iota
	InsertionOrdered
	Sorted
)

func (c Category) String() string {
	switch c {
	case Hash:
		return "hash"
	case InsertionOrdered:
		return "insertion-ordered"
	case Sorted:
		return "sorted"
	default:
		return fmt.Sprintf("Category(%d)", int(c))
	}
}

// Set is implemented by containers holding distinct elements.
type Set interface {
	Len() int
	// Values returns the elements in iteration order.
	Values() []any
	Category() Category
}

// Map is implemented by key/value containers other than Go maps.
type Map interface {
	Len() int
	// Keys returns the keys in iteration order.
	Keys() []any
	Get(key any) (any, bool)
	Category() Category
}

// sortedByString orders values by their default formatting so hash
// containers render deterministically.
func sortedByString(values []any) []any {
	sort.SliceStable(values, func(i, j int) bool {
		return fmt.Sprint(values[i]) < fmt.Sprint(values[j])
	})
	return values
}

func render(values []any) string {
	return fmt.Sprint(values)
}
