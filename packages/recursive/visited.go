package recursive

import (
	"maps"
	"reflect"
)

type visitKey struct {
	actual, expected         uintptr
	actualType, expectedType reflect.Type
	length                   int
}

// visitedPairs records the reference pairs already entered by one Compare
// call. Meeting a pair again means it is being compared higher up the stack.
type visitedPairs map[visitKey]struct{}

// enter registers the pair and reports whether it was new. Only references
// that can form cycles (pointers, maps, non-empty slices) are tracked; other
// values always enter.
func (v visitedPairs) enter(actual, expected reflect.Value) bool {
	if !isReference(actual) || !isReference(expected) {
		return true
	}
	key := visitKey{
		actual:       actual.Pointer(),
		expected:     expected.Pointer(),
		actualType:   actual.Type(),
		expectedType: expected.Type(),
	}
	if actual.Kind() == reflect.Slice {
		key.length = actual.Len()
	}
	if _, seen := v[key]; seen {
		return false
	}
	v[key] = struct{}{}
	return true
}

func (v visitedPairs) clone() visitedPairs {
	return maps.Clone(v)
}

func isReference(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.Pointer, reflect.Map:
		return !v.IsNil()
	case reflect.Slice:
		return !v.IsNil() && v.Len() > 0
	default:
		return false
	}
}
