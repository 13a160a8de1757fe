package assertions

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/abdul-hamid-achik/structeq/packages/recursive"
)

// ComparisonStrategy decides when two elements are equal.
type ComparisonStrategy interface {
	AreEqual(actual, other any) bool
	String() string
}

// StandardComparisonStrategy uses reflect.DeepEqual, treating numbers of
// different types as equal when their values are.
type StandardComparisonStrategy struct{}

func (StandardComparisonStrategy) AreEqual(actual, other any) bool {
	if reflect.DeepEqual(actual, other) {
		return true
	}
	a, aOk := toFloat64(actual)
	o, oOk := toFloat64(other)
	return aOk && oOk && a == o
}

func (StandardComparisonStrategy) String() string { return "StandardComparisonStrategy" }

// ComparatorStrategy delegates to a recursive.Comparator.
type ComparatorStrategy struct {
	Comparator recursive.Comparator
}

// NewComparatorStrategy wraps a typed equality function.
func NewComparatorStrategy[T any](name string, eq func(actual, other T) bool) ComparatorStrategy {
	return ComparatorStrategy{Comparator: recursive.Named(name, recursive.ComparatorFor(eq))}
}

func (s ComparatorStrategy) AreEqual(actual, other any) bool {
	return s.Comparator.Equal(actual, other)
}

func (s ComparatorStrategy) String() string {
	if n, ok := s.Comparator.(fmt.Stringer); ok {
		return fmt.Sprintf("ComparatorStrategy[%s]", n)
	}
	return fmt.Sprintf("ComparatorStrategy[%T]", s.Comparator)
}

// CaseInsensitiveStrategy compares strings ignoring case and everything else
// like StandardComparisonStrategy.
type CaseInsensitiveStrategy struct{}

func (CaseInsensitiveStrategy) AreEqual(actual, other any) bool {
	a, aOk := actual.(string)
	o, oOk := other.(string)
	if aOk && oOk {
		return strings.EqualFold(a, o)
	}
	return StandardComparisonStrategy{}.AreEqual(actual, other)
}

func (CaseInsensitiveStrategy) String() string { return "CaseInsensitiveStrategy" }

// RecursiveStrategy compares elements field by field. A nil Configuration
// uses the comparator defaults. Elements that cannot be compared are unequal.
type RecursiveStrategy struct {
	Configuration *recursive.Configuration
}

func (s RecursiveStrategy) AreEqual(actual, other any) bool {
	diffs, err := recursive.Compare(actual, other, s.Configuration)
	return err == nil && len(diffs) == 0
}

func (RecursiveStrategy) String() string { return "RecursiveStrategy" }

func toFloat64(v any) (float64, bool) {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return float64(rv.Uint()), true
	case reflect.Float32, reflect.Float64:
		return rv.Float(), true
	default:
		return 0, false
	}
}
