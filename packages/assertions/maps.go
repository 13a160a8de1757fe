package assertions

import (
	"cmp"
	"fmt"
	"reflect"
	"slices"

	"github.com/abdul-hamid-achik/structeq/packages/collections"
)

type entry struct {
	key   any
	value any
}

// entriesOf lists the entries of a Go map, sorted by formatted key, or of a
// collections.Map in its own order.
func entriesOf(v any) ([]entry, bool) {
	if m, ok := v.(collections.Map); ok {
		keys := m.Keys()
		entries := make([]entry, len(keys))
		for i, k := range keys {
			value, _ := m.Get(k)
			entries[i] = entry{key: k, value: value}
		}
		return entries, true
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Map {
		return nil, false
	}
	entries := make([]entry, 0, rv.Len())
	iter := rv.MapRange()
	for iter.Next() {
		entries = append(entries, entry{key: iter.Key().Interface(), value: iter.Value().Interface()})
	}
	slices.SortFunc(entries, func(a, b entry) int {
		return cmp.Compare(fmt.Sprint(a.key), fmt.Sprint(b.key))
	})
	return entries, true
}

func (e *Evaluator) lookup(entries []entry, key any) (entry, bool) {
	for _, en := range entries {
		if e.equals(en.key, key) {
			return en, true
		}
	}
	return entry{}, false
}

func (e *Evaluator) mapEntries(r *Result, actual any) ([]entry, bool) {
	entries, ok := entriesOf(actual)
	if !ok {
		r.abort(fmt.Errorf("%w: %T", ErrNotMap, actual))
	}
	return entries, ok
}

func (e *Evaluator) missingKeys(entries []entry, keys []any) []any {
	var missing []any
	for _, k := range keys {
		if _, found := e.lookup(entries, k); !found {
			missing = append(missing, k)
		}
	}
	return missing
}

// ContainsKeys passes when every key is present in actual.
func (e *Evaluator) ContainsKeys(actual any, keys ...any) *Result {
	r := e.newResult("containsKeys", actual, keys)
	entries, ok := e.mapEntries(r, actual)
	if !ok {
		return r
	}
	if missing := e.missingKeys(entries, keys); len(missing) > 0 {
		return r.fail("expected %v to contain keys %v but could not find %v", actual, keys, missing)
	}
	return r.pass()
}

// ContainsOnlyKeys passes when actual has exactly the given keys.
func (e *Evaluator) ContainsOnlyKeys(actual any, keys ...any) *Result {
	r := e.newResult("containsOnlyKeys", actual, keys)
	entries, ok := e.mapEntries(r, actual)
	if !ok {
		return r
	}

	missing := e.missingKeys(entries, keys)
	var unexpected []any
	for _, en := range entries {
		if !e.contains(keys, en.key) {
			unexpected = append(unexpected, en.key)
		}
	}
	if len(missing) > 0 || len(unexpected) > 0 {
		return r.fail("expected %v to contain only keys %v but could not find %v and found unexpected %v",
			actual, keys, missing, unexpected)
	}
	return r.pass()
}

// ContainsEntry passes when actual maps key to a value equal to value.
func (e *Evaluator) ContainsEntry(actual, key, value any) *Result {
	r := e.newResult("containsEntry", actual, fmt.Sprintf("%v=%v", key, value))
	entries, ok := e.mapEntries(r, actual)
	if !ok {
		return r
	}

	en, found := e.lookup(entries, key)
	if !found {
		return r.fail("expected %v to contain entry %v=%v but key %v was not found", actual, key, value, key)
	}
	if !e.equals(en.value, value) {
		return r.fail("expected %v to contain entry %v=%v but key %v was mapped to %v", actual, key, value, key, en.value)
	}
	return r.pass()
}

// DoesNotContainKeys passes when none of the keys is present in actual.
func (e *Evaluator) DoesNotContainKeys(actual any, keys ...any) *Result {
	r := e.newResult("doesNotContainKeys", actual, keys)
	entries, ok := e.mapEntries(r, actual)
	if !ok {
		return r
	}

	var found []any
	for _, k := range keys {
		if _, present := e.lookup(entries, k); present {
			found = append(found, k)
		}
	}
	if len(found) > 0 {
		return r.fail("expected %v not to contain keys %v but found %v", actual, keys, found)
	}
	return r.pass()
}
