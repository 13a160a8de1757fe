package recursive

import (
	"fmt"
	"math"
	"reflect"
	"strings"
)

const (
	differentSizeNote  = "actual and expected values are %s of different size, actual size=%d when expected size=%d"
	differentKindsNote = "expected field is %s but actual field is not (%s)"
	differentTypesNote = "actual value type %s differs from expected value type %s"
	strictTypeNote     = "the values are considered different since the comparison enforces strict type checking and the actual type %s is not the expected type %s"
)

var defaultConfiguration = MustConfiguration()

// Compare walks actual and expected and returns every difference found, in
// traversal order. An empty result means the values are equal. A nil cfg
// uses the default configuration.
//
// The returned error is non-nil only when the values cannot be compared, for
// example a *MissingFieldsError.
func Compare(actual, expected any, cfg *Configuration) ([]Difference, error) {
	if cfg == nil {
		cfg = defaultConfiguration
	}
	c := &comparison{cfg: cfg, visited: make(visitedPairs)}
	if err := c.compare(nil, reflect.ValueOf(actual), reflect.ValueOf(expected)); err != nil {
		return nil, err
	}
	return c.differences, nil
}

// AssertEqual returns a *Failure holding the differences when actual and
// expected differ, and the comparison error when they cannot be compared.
func AssertEqual(actual, expected any, cfg *Configuration) error {
	if cfg == nil {
		cfg = defaultConfiguration
	}
	differences, err := Compare(actual, expected, cfg)
	if err != nil {
		return err
	}
	if len(differences) == 0 {
		return nil
	}
	return &Failure{
		Actual:        actual,
		Expected:      expected,
		Differences:   differences,
		Configuration: cfg,
	}
}

type comparison struct {
	cfg         *Configuration
	visited     visitedPairs
	differences []Difference
}

func (c *comparison) addDifference(path Path, actual, expected reflect.Value, info string) {
	c.differences = append(c.differences, Difference{
		Path:                  path,
		Actual:                interfaceOf(actual),
		Other:                 interfaceOf(expected),
		AdditionalInformation: info,
	})
}

func (c *comparison) compare(path Path, actual, expected reflect.Value) error {
	actual, expected = unwrap(actual), unwrap(expected)
	location := path.Location()

	actualNil, expectedNil := isNil(actual), isNil(expected)
	if actualNil && expectedNil {
		return nil
	}
	if sameReference(actual, expected) {
		return nil
	}

	if cmp, ok := c.cfg.comparatorFor(location, actual, expected); ok {
		if !cmp.Equal(interfaceOf(actual), interfaceOf(expected)) {
			c.addDifference(path, actual, expected, "")
		}
		return nil
	}

	if actualNil || expectedNil {
		if c.cfg.treatNilAndEmptyAsEqual && isNilOrEmpty(actual) && isNilOrEmpty(expected) {
			return nil
		}
		c.addDifference(path, actual, expected, "")
		return nil
	}

	if c.cfg.strictTypeChecking && actual.Type() != expected.Type() {
		c.addDifference(path, actual, expected, fmt.Sprintf(strictTypeNote, actual.Type(), expected.Type()))
		return nil
	}

	actualKind, expectedKind := classify(actual), classify(expected)
	if actualKind == kindPointer || expectedKind == kindPointer {
		return c.comparePointers(path, actual, expected)
	}

	if !actualKind.isContainer() && !expectedKind.isContainer() {
		if equal, ok := c.overriddenEquals(location, actual, expected); ok {
			if !equal {
				c.addDifference(path, actual, expected, "")
			}
			return nil
		}
	}

	switch expectedKind {
	case kindOrdered:
		return c.compareOrdered(path, actual, expected)
	case kindSet:
		return c.compareSets(path, actual, expected)
	case kindMap:
		return c.compareMaps(path, actual, expected)
	case kindStruct:
		return c.compareStructs(path, actual, expected)
	case kindOpaque:
		// funcs and channels are only equal to themselves
		c.addDifference(path, actual, expected, "")
		return nil
	default:
		c.compareScalars(path, actual, expected)
		return nil
	}
}

func (c *comparison) comparePointers(path Path, actual, expected reflect.Value) error {
	if actual.Kind() != reflect.Pointer {
		return c.compare(path, actual, expected.Elem())
	}
	if expected.Kind() != reflect.Pointer {
		return c.compare(path, actual.Elem(), expected)
	}
	if !c.visited.enter(actual, expected) {
		return nil
	}
	if equal, ok := c.overriddenEquals(path.Location(), actual, expected); ok {
		if !equal {
			c.addDifference(path, actual, expected, "")
		}
		return nil
	}
	return c.compare(path, actual.Elem(), expected.Elem())
}

// overriddenEquals calls actual's Equal method with expected when the type
// declares one, the argument fits and the configuration does not suppress it.
// ok is false when no Equal method was used.
func (c *comparison) overriddenEquals(location string, actual, expected reflect.Value) (equal, ok bool) {
	t := actual.Type()
	info := infoOf(t)
	method, receiver := info.equal, actual
	if !info.hasEqual {
		if t.Kind() == reflect.Pointer {
			return false, false
		}
		pointerInfo := infoOf(reflect.PointerTo(t))
		if !pointerInfo.hasEqual {
			return false, false
		}
		method, receiver = pointerInfo.equal, addressable(actual).Addr()
	}
	if !isStandardLibrary(t) && c.cfg.shouldIgnoreOverriddenEqualsOf(location, t) {
		return false, false
	}

	arg := expected
	param := method.Type.In(1)
	if !arg.Type().AssignableTo(param) {
		if arg.Kind() == reflect.Pointer || !reflect.PointerTo(arg.Type()).AssignableTo(param) {
			return false, false
		}
		arg = addressable(arg).Addr()
	}
	out := method.Func.Call([]reflect.Value{receiver, arg})
	return out[0].Bool(), true
}

// isStandardLibrary reports whether t (or the type it points to) is declared
// in a standard library package. Their Equal methods are always honoured.
func isStandardLibrary(t reflect.Type) bool {
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	pkg := t.PkgPath()
	if pkg == "" || pkg == "main" {
		return false
	}
	first, _, _ := strings.Cut(pkg, "/")
	return !strings.Contains(first, ".")
}

func (c *comparison) compareScalars(path Path, actual, expected reflect.Value) {
	if actual.Type() != expected.Type() {
		c.addDifference(path, actual, expected, fmt.Sprintf(differentTypesNote, actual.Type(), expected.Type()))
		return
	}
	if !scalarsEqual(actual, expected) {
		c.addDifference(path, actual, expected, "")
	}
}

// scalarsEqual compares two values of the same basic type. NaN is equal to
// NaN so that every value is equal to itself.
func scalarsEqual(a, b reflect.Value) bool {
	switch a.Kind() {
	case reflect.Bool:
		return a.Bool() == b.Bool()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return a.Int() == b.Int()
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return a.Uint() == b.Uint()
	case reflect.Float32, reflect.Float64:
		return floatsEqual(a.Float(), b.Float())
	case reflect.Complex64, reflect.Complex128:
		x, y := a.Complex(), b.Complex()
		return floatsEqual(real(x), real(y)) && floatsEqual(imag(x), imag(y))
	case reflect.String:
		return a.String() == b.String()
	default:
		return false
	}
}

func floatsEqual(x, y float64) bool {
	return x == y || (math.IsNaN(x) && math.IsNaN(y))
}

func unwrap(v reflect.Value) reflect.Value {
	for v.IsValid() && v.Kind() == reflect.Interface {
		if v.IsNil() {
			return reflect.Value{}
		}
		v = v.Elem()
	}
	return v
}

func isNil(v reflect.Value) bool {
	if !v.IsValid() {
		return true
	}
	switch v.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Interface, reflect.Func, reflect.Chan, reflect.UnsafePointer:
		return v.IsNil()
	default:
		return false
	}
}

func sameReference(a, b reflect.Value) bool {
	if !a.IsValid() || !b.IsValid() || a.Type() != b.Type() {
		return false
	}
	switch a.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Chan, reflect.Func, reflect.UnsafePointer:
		return a.Pointer() == b.Pointer()
	case reflect.Slice:
		return a.Pointer() == b.Pointer() && a.Len() == b.Len()
	default:
		return false
	}
}

func typeOf(v reflect.Value) reflect.Type {
	if !v.IsValid() {
		return nil
	}
	return v.Type()
}
