package recursive

import (
	"cmp"
	"fmt"
	"reflect"
	"slices"

	"github.com/abdul-hamid-achik/structeq/packages/collections"
)

type kind int

const (
	kindScalar kind = iota
	kindPointer
	kindOrdered
	kindSet
	kindMap
	kindStruct
	kindOpaque
)

func (k kind) isContainer() bool {
	return k == kindOrdered || k == kindSet || k == kindMap
}

func (k kind) String() string {
	switch k {
	case kindOrdered:
		return "an ordered collection"
	case kindSet:
		return "a set"
	case kindMap:
		return "a map"
	case kindStruct:
		return "a struct"
	default:
		return "a value"
	}
}

// classify puts v in the category that decides how it is compared. The
// collections interfaces win over the Go kind so that *LinkedSet is a set
// rather than a pointer.
func classify(v reflect.Value) kind {
	if v.CanInterface() {
		switch v.Interface().(type) {
		case collections.Set:
			return kindSet
		case collections.Map:
			return kindMap
		}
	}
	switch v.Kind() {
	case reflect.Pointer:
		return kindPointer
	case reflect.Map:
		return kindMap
	case reflect.Slice, reflect.Array:
		return kindOrdered
	case reflect.Struct:
		return kindStruct
	case reflect.Func, reflect.Chan, reflect.UnsafePointer:
		return kindOpaque
	default:
		return kindScalar
	}
}

func isNilOrEmpty(v reflect.Value) bool {
	if isNil(v) {
		return true
	}
	switch classify(v) {
	case kindOrdered:
		return v.Len() == 0
	case kindSet:
		return v.Interface().(collections.Set).Len() == 0
	case kindMap:
		m, _ := asMap(v)
		return m.Len() == 0
	default:
		return false
	}
}

func (c *comparison) compareOrdered(path Path, actual, expected reflect.Value) error {
	if classify(actual) != kindOrdered {
		c.addDifference(path, actual, expected, fmt.Sprintf(differentKindsNote, kindOrdered, actual.Type()))
		return nil
	}
	if actual.Len() != expected.Len() {
		c.addDifference(path, actual, expected, fmt.Sprintf(differentSizeNote, "collections", actual.Len(), expected.Len()))
		return nil
	}
	if !c.visited.enter(actual, expected) {
		return nil
	}
	for i := 0; i < actual.Len(); i++ {
		if err := c.compare(path.element(i), actual.Index(i), expected.Index(i)); err != nil {
			return err
		}
	}
	return nil
}

func (c *comparison) compareSets(path Path, actual, expected reflect.Value) error {
	expectedSet := expected.Interface().(collections.Set)
	if classify(actual) != kindSet {
		c.addDifference(path, actual, expected, fmt.Sprintf(differentKindsNote, kindSet, actual.Type()))
		return nil
	}
	actualSet := actual.Interface().(collections.Set)

	if actualSet.Category() != expectedSet.Category() {
		c.addDifference(path, actual, expected, fmt.Sprintf(
			"actual set is %s %v but expected set is %s %v",
			actualSet.Category(), actualSet.Values(), expectedSet.Category(), expectedSet.Values()))
		return nil
	}
	if actualSet.Len() != expectedSet.Len() {
		c.addDifference(path, actual, expected, fmt.Sprintf(differentSizeNote, "sets", actualSet.Len(), expectedSet.Len()))
		return nil
	}
	if !c.visited.enter(actual, expected) {
		return nil
	}

	remaining := expectedSet.Values()
	var unmatched []any
	for _, a := range actualSet.Values() {
		found := false
		for j, e := range remaining {
			ok, err := c.matches(path, a, e)
			if err != nil {
				return err
			}
			if ok {
				remaining = slices.Delete(remaining, j, j+1)
				found = true
				break
			}
		}
		if !found {
			unmatched = append(unmatched, a)
		}
	}
	if len(unmatched) > 0 {
		c.addDifference(path, actual, expected, fmt.Sprintf(
			"the following actual elements could not be matched: %v, expected elements left unmatched: %v",
			unmatched, remaining))
	}
	return nil
}

// matches runs a throwaway comparison of one element pair. It shares the
// visited pairs seen so far but records nothing in c.
func (c *comparison) matches(path Path, actual, expected any) (bool, error) {
	trial := &comparison{cfg: c.cfg, visited: c.visited.clone()}
	if err := trial.compare(path, reflect.ValueOf(actual), reflect.ValueOf(expected)); err != nil {
		return false, err
	}
	return len(trial.differences) == 0, nil
}

func (c *comparison) compareMaps(path Path, actual, expected reflect.Value) error {
	expectedMap, _ := asMap(expected)
	actualMap, ok := asMap(actual)
	if !ok {
		c.addDifference(path, actual, expected, fmt.Sprintf(differentKindsNote, kindMap, actual.Type()))
		return nil
	}
	if actualMap.Category() != expectedMap.Category() {
		c.addDifference(path, actual, expected, fmt.Sprintf(
			"actual map is %s but expected map is %s", actualMap.Category(), expectedMap.Category()))
		return nil
	}
	if !c.visited.enter(actual, expected) {
		return nil
	}

	for _, key := range actualMap.Keys() {
		entryPath := path.key(key)
		if c.cfg.shouldIgnoreLocation(entryPath.Location()) {
			continue
		}
		actualValue, _ := actualMap.Get(key)
		av := reflect.ValueOf(actualValue)
		if c.cfg.shouldIgnoreValue(av) {
			continue
		}
		expectedValue, found := expectedMap.Get(key)
		if !found {
			c.differences = append(c.differences, Difference{
				Path:                  entryPath,
				Actual:                actualValue,
				AdditionalInformation: fmt.Sprintf("expected map has no entry for key %v", key),
			})
			continue
		}
		if err := c.compare(entryPath, av, reflect.ValueOf(expectedValue)); err != nil {
			return err
		}
	}

	for _, key := range expectedMap.Keys() {
		if _, found := actualMap.Get(key); found {
			continue
		}
		entryPath := path.key(key)
		if c.cfg.shouldIgnoreLocation(entryPath.Location()) {
			continue
		}
		expectedValue, _ := expectedMap.Get(key)
		c.differences = append(c.differences, Difference{
			Path:                  entryPath,
			Other:                 expectedValue,
			AdditionalInformation: fmt.Sprintf("actual map has no entry for key %v", key),
		})
	}
	return nil
}

func (c *comparison) compareStructs(path Path, actual, expected reflect.Value) error {
	if actual.Kind() != reflect.Struct {
		c.addDifference(path, actual, expected, fmt.Sprintf(differentKindsNote, kindStruct, actual.Type()))
		return nil
	}

	exportedOnly := c.cfg.ignoreUnexportedFields
	actualInfo, expectedInfo := infoOf(actual.Type()), infoOf(expected.Type())

	type pair struct{ actual, expected field }
	var pairs []pair
	var missing []string
	for _, f := range actualInfo.visibleFields(exportedOnly) {
		if c.cfg.shouldIgnoreLocation(path.child(f.name).Location()) {
			continue
		}
		ef, ok := expectedInfo.field(f.name)
		if !ok || (exportedOnly && !ef.exported) {
			missing = append(missing, f.name)
			continue
		}
		pairs = append(pairs, pair{actual: f, expected: ef})
	}
	if len(missing) > 0 {
		return &MissingFieldsError{
			Path:         path,
			ActualType:   actual.Type(),
			ExpectedType: expected.Type(),
			Missing:      missing,
		}
	}

	actual, expected = addressable(actual), addressable(expected)
	for _, p := range pairs {
		av := p.actual.value(actual)
		if c.cfg.shouldIgnoreValue(unwrap(av)) {
			continue
		}
		if err := c.compare(path.child(p.actual.name), av, p.expected.value(expected)); err != nil {
			return err
		}
	}
	return nil
}

// mapView is the read side shared by Go maps and collections.Map.
type mapView interface {
	Len() int
	Keys() []any
	Get(key any) (any, bool)
	Category() collections.Category
}

func asMap(v reflect.Value) (mapView, bool) {
	if v.CanInterface() {
		if m, ok := v.Interface().(collections.Map); ok {
			return m, true
		}
	}
	if v.Kind() == reflect.Map {
		return nativeMap{v: v}, true
	}
	return nil, false
}

// nativeMap adapts a Go map. Its keys are listed in a stable order so that
// differences come out the same on every run.
type nativeMap struct {
	v reflect.Value
}

func (m nativeMap) Len() int { return m.v.Len() }

func (m nativeMap) Category() collections.Category { return collections.Hash }

func (m nativeMap) Keys() []any {
	keys := m.v.MapKeys()
	slices.SortStableFunc(keys, compareKeys)
	out := make([]any, len(keys))
	for i, k := range keys {
		out[i] = interfaceOf(k)
	}
	return out
}

func (m nativeMap) Get(key any) (any, bool) {
	kt := m.v.Type().Key()
	kv := reflect.ValueOf(key)
	if !kv.IsValid() {
		switch kt.Kind() {
		case reflect.Interface, reflect.Pointer, reflect.Chan:
			kv = reflect.Zero(kt)
		default:
			return nil, false
		}
	}
	if !kv.Type().AssignableTo(kt) {
		return nil, false
	}
	value := m.v.MapIndex(kv)
	if !value.IsValid() {
		return nil, false
	}
	return interfaceOf(value), true
}

func compareKeys(a, b reflect.Value) int {
	a, b = unwrap(a), unwrap(b)
	if a.IsValid() && b.IsValid() && a.Kind() == b.Kind() {
		switch a.Kind() {
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
			return cmp.Compare(a.Int(), b.Int())
		case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
			return cmp.Compare(a.Uint(), b.Uint())
		case reflect.Float32, reflect.Float64:
			return cmp.Compare(a.Float(), b.Float())
		case reflect.String:
			return cmp.Compare(a.String(), b.String())
		}
	}
	return cmp.Compare(fmt.Sprint(interfaceOf(a)), fmt.Sprint(interfaceOf(b)))
}
