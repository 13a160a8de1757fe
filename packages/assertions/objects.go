package assertions

import (
	"fmt"
	"reflect"
	"slices"

	"github.com/abdul-hamid-achik/structeq/packages/recursive"
)

func (e *Evaluator) fieldsOf(r *Result, v any) ([]recursive.FieldValue, bool) {
	fields, ok := recursive.Fields(v)
	if !ok {
		r.abort(fmt.Errorf("%w: %T", ErrNotStruct, v))
	}
	return fields, ok
}

// HasAllNilFieldsExcept passes when every field of actual not named in
// except is nil. Fields of non-nilable kinds are never nil.
func (e *Evaluator) HasAllNilFieldsExcept(actual any, except ...string) *Result {
	r := e.newResult("hasAllNilFieldsExcept", actual, except)
	fields, ok := e.fieldsOf(r, actual)
	if !ok {
		return r
	}

	var notNil []string
	for _, f := range fields {
		if !slices.Contains(except, f.Name) && !isNilValue(f.Value) {
			notNil = append(notNil, f.Name)
		}
	}
	if len(notNil) > 0 {
		return r.fail("expected %v to only have nil fields except %v but these fields were not nil: %v", actual, except, notNil)
	}
	return r.pass()
}

// HasNoNilFieldsExcept passes when no field of actual outside except is nil.
func (e *Evaluator) HasNoNilFieldsExcept(actual any, except ...string) *Result {
	r := e.newResult("hasNoNilFieldsExcept", actual, except)
	fields, ok := e.fieldsOf(r, actual)
	if !ok {
		return r
	}

	var nilFields []string
	for _, f := range fields {
		if !slices.Contains(except, f.Name) && isNilValue(f.Value) {
			nilFields = append(nilFields, f.Name)
		}
	}
	if len(nilFields) > 0 {
		return r.fail("expected %v to have no nil fields except %v but these fields were nil: %v", actual, except, nilFields)
	}
	return r.pass()
}

// HasSameTypeAs passes when actual and other have the same dynamic type.
func (e *Evaluator) HasSameTypeAs(actual, other any) *Result {
	at, ot := reflect.TypeOf(actual), reflect.TypeOf(other)
	r := e.newResult("hasSameTypeAs", at, ot)
	if at == ot {
		return r.pass()
	}
	return r.fail("expected %v to have the same type as %v but %v is not %v", actual, other, at, ot)
}

// HasString passes when actual formats as expected, through its String
// method when it has one.
func (e *Evaluator) HasString(actual any, expected string) *Result {
	s := fmt.Sprint(actual)
	r := e.newResult("hasString", s, expected)
	if s == expected {
		return r.pass()
	}
	return r.fail("expected string form %q but was %q", expected, s)
}

// IsEqualComparingOnlyFields passes when the named fields of actual and
// other are equal according to the strategy. Other fields are not looked at.
func (e *Evaluator) IsEqualComparingOnlyFields(actual, other any, names ...string) *Result {
	r := e.newResult("isEqualComparingOnlyFields", actual, other)
	actualFields, ok := e.fieldsOf(r, actual)
	if !ok {
		return r
	}
	otherFields, ok := e.fieldsOf(r, other)
	if !ok {
		return r
	}

	var differing []string
	for _, name := range names {
		av, aOk := fieldNamed(actualFields, name)
		ov, oOk := fieldNamed(otherFields, name)
		if !aOk || !oOk {
			return r.abort(fmt.Errorf("%w: %s", ErrUnknownField, name))
		}
		if !e.equals(av, ov) {
			differing = append(differing, name)
		}
	}
	if len(differing) > 0 {
		return r.fail("expected %v to be equal to %v when comparing only fields %v but these fields differed: %v",
			actual, other, names, differing)
	}
	return r.pass()
}

func fieldNamed(fields []recursive.FieldValue, name string) (any, bool) {
	for _, f := range fields {
		if f.Name == name {
			return f.Value, true
		}
	}
	return nil, false
}
