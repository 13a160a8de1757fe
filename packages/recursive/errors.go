package recursive

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
)

var (
	// ErrNilComparator is returned when a nil comparator is registered.
	ErrNilComparator = errors.New("comparator must not be nil")
	// ErrNilType is returned when a comparator is registered for a nil type.
	ErrNilType = errors.New("type must not be nil")
)

// MissingFieldsError reports that the actual value declares fields the
// expected value's type does not have, so the two cannot be compared.
type MissingFieldsError struct {
	Path         Path
	ActualType   reflect.Type
	ExpectedType reflect.Type
	Missing      []string
}

func (e *MissingFieldsError) Error() string {
	return fmt.Sprintf("%s can't be compared to %s as %s does not declare all %s fields, it lacks these: [%s]",
		e.ActualType, e.ExpectedType, e.ExpectedType.Name(), e.ActualType.Name(), strings.Join(e.Missing, ", "))
}

// Failure is returned by AssertEqual when the compared values differ.
type Failure struct {
	Actual        any
	Expected      any
	Differences   []Difference
	Configuration *Configuration
}

func (f *Failure) Error() string {
	paths := make([]string, len(f.Differences))
	for i, d := range f.Differences {
		paths[i] = d.Path.String()
	}
	return fmt.Sprintf("expected values to be equal when compared field by field recursively, but found %d difference(s): %s",
		len(f.Differences), strings.Join(paths, ", "))
}

// IsFailure reports whether err is an assertion failure as opposed to a
// comparison that could not be evaluated.
func IsFailure(err error) bool {
	var f *Failure
	return errors.As(err, &f)
}
