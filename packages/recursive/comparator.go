package recursive

import "fmt"

// Comparator is an equality oracle used instead of the recursive walk for
// the fields or types it is registered for.
type Comparator interface {
	Equal(actual, other any) bool
}

// ComparatorFunc adapts a function to Comparator.
type ComparatorFunc func(actual, other any) bool

func (f ComparatorFunc) Equal(actual, other any) bool { return f(actual, other) }

// ComparatorFor adapts a typed equality function. Values that are not of type
// T are equal only when both are nil.
func ComparatorFor[T any](eq func(actual, other T) bool) Comparator {
	return ComparatorFunc(func(actual, other any) bool {
		a, aok := actual.(T)
		o, ook := other.(T)
		if !aok || !ook {
			return actual == nil && other == nil
		}
		return eq(a, o)
	})
}

// Named gives a comparator a name used when describing the configuration.
func Named(name string, c Comparator) Comparator {
	if c == nil {
		return nil
	}
	return namedComparator{name: name, Comparator: c}
}

type namedComparator struct {
	name string
	Comparator
}

func (n namedComparator) String() string { return n.name }

func describeComparator(c Comparator) string {
	if s, ok := c.(fmt.Stringer); ok {
		return s.String()
	}
	return fmt.Sprintf("%T", c)
}
