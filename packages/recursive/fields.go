package recursive

import (
	"reflect"
	"unsafe"

	lru "github.com/hashicorp/golang-lru/v2"
)

const typeCacheSize = 1024

// typeCache holds the field accessors and Equal method of every type seen by
// a comparison, so struct introspection happens once per type.
var typeCache *lru.Cache[reflect.Type, *typeInfo]

func init() {
	var err error
	typeCache, err = lru.New[reflect.Type, *typeInfo](typeCacheSize)
	if err != nil {
		panic(err)
	}
}

type field struct {
	name     string
	index    []int
	exported bool
}

// value returns the field of the addressable struct v. Unexported fields are
// re-read through their address so the result can be passed to Interface.
func (f field) value(v reflect.Value) reflect.Value {
	fv := v.FieldByIndex(f.index)
	if !fv.CanInterface() && fv.CanAddr() {
		fv = reflect.NewAt(fv.Type(), unsafe.Pointer(fv.UnsafeAddr())).Elem()
	}
	return fv
}

type typeInfo struct {
	fields []field
	byName map[string]int
	// equal is the Equal method on the type itself, valid when hasEqual.
	equal    reflect.Method
	hasEqual bool
}

func (ti *typeInfo) visibleFields(exportedOnly bool) []field {
	if !exportedOnly {
		return ti.fields
	}
	visible := make([]field, 0, len(ti.fields))
	for _, f := range ti.fields {
		if f.exported {
			visible = append(visible, f)
		}
	}
	return visible
}

func (ti *typeInfo) field(name string) (field, bool) {
	i, ok := ti.byName[name]
	if !ok {
		return field{}, false
	}
	return ti.fields[i], true
}

func infoOf(t reflect.Type) *typeInfo {
	if ti, ok := typeCache.Get(t); ok {
		return ti
	}
	ti := &typeInfo{}
	ti.equal, ti.hasEqual = equalMethod(t)
	if t.Kind() == reflect.Struct {
		ti.fields = structFields(t)
		ti.byName = make(map[string]int, len(ti.fields))
		for i, f := range ti.fields {
			ti.byName[f.name] = i
		}
	}
	typeCache.Add(t, ti)
	return ti
}

// equalMethod finds func (T) Equal(U) bool where T is assignable to U, which
// covers Equal(T), Equal(any) and Equal(SomeInterface).
func equalMethod(t reflect.Type) (reflect.Method, bool) {
	m, ok := t.MethodByName("Equal")
	if !ok {
		return reflect.Method{}, false
	}
	mt := m.Type
	if mt.NumIn() != 2 || mt.NumOut() != 1 || mt.Out(0).Kind() != reflect.Bool {
		return reflect.Method{}, false
	}
	if !t.AssignableTo(mt.In(1)) {
		return reflect.Method{}, false
	}
	return m, true
}

type candidate struct {
	field
	depth int
}

// structFields lists the fields of t in declaration order. Fields of embedded
// structs are promoted in place of the embedded field, following Go's
// selector rules: a shallower field hides deeper ones and two fields with the
// same name at the same depth hide each other. Blank fields are skipped.
func structFields(t reflect.Type) []field {
	var all []candidate
	collectFields(t, nil, 0, &all)

	minDepth := make(map[string]int)
	count := make(map[string]int)
	for _, c := range all {
		d, seen := minDepth[c.name]
		switch {
		case !seen || c.depth < d:
			minDepth[c.name] = c.depth
			count[c.name] = 1
		case c.depth == d:
			count[c.name]++
		}
	}

	fields := make([]field, 0, len(all))
	for _, c := range all {
		if c.depth == minDepth[c.name] && count[c.name] == 1 {
			fields = append(fields, c.field)
		}
	}
	return fields
}

func collectFields(t reflect.Type, prefix []int, depth int, out *[]candidate) {
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		if sf.Name == "_" {
			continue
		}
		index := make([]int, len(prefix), len(prefix)+1)
		copy(index, prefix)
		index = append(index, i)
		if sf.Anonymous && sf.Type.Kind() == reflect.Struct {
			if _, ok := equalMethod(sf.Type); !ok {
				collectFields(sf.Type, index, depth+1, out)
				continue
			}
		}
		*out = append(*out, candidate{
			field: field{name: sf.Name, index: index, exported: sf.IsExported()},
			depth: depth,
		})
	}
}

// addressable returns v or an addressable copy of it.
func addressable(v reflect.Value) reflect.Value {
	if v.CanAddr() {
		return v
	}
	c := reflect.New(v.Type()).Elem()
	c.Set(v)
	return c
}

// FieldValue is one named field read from a struct.
type FieldValue struct {
	Name  string
	Value any
}

// Fields returns the comparable fields of the struct (or pointer to struct)
// v in declaration order, using the same accessors as Compare.
func Fields(v any) ([]FieldValue, bool) {
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return nil, false
		}
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return nil, false
	}
	rv = addressable(rv)
	ti := infoOf(rv.Type())
	values := make([]FieldValue, len(ti.fields))
	for i, f := range ti.fields {
		values[i] = FieldValue{Name: f.name, Value: interfaceOf(f.value(rv))}
	}
	return values, true
}

// interfaceOf returns the value held by v, or nil for the zero Value.
func interfaceOf(v reflect.Value) any {
	if !v.IsValid() {
		return nil
	}
	if v.CanInterface() {
		return v.Interface()
	}
	if v.CanAddr() {
		return reflect.NewAt(v.Type(), unsafe.Pointer(v.UnsafeAddr())).Elem().Interface()
	}
	return v.String()
}
