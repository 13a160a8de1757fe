package assertions

import (
	"fmt"
	"slices"
)

// iterables converts actual and values, aborting r when either is not a
// collection.
func iterables(r *Result, actual, values any) (elems, vals []any, ok bool) {
	if elems, ok = elementsOf(actual); !ok {
		r.abort(fmt.Errorf("%w: %T", ErrNotIterable, actual))
		return nil, nil, false
	}
	if vals, ok = elementsOf(values); !ok {
		r.abort(fmt.Errorf("%w: %T", ErrNotIterable, values))
		return nil, nil, false
	}
	return elems, vals, true
}

// unmatched returns the elements of want left over after pairing every
// element of have with a distinct equal element of want.
func (e *Evaluator) unmatched(have, want []any) []any {
	remaining := slices.Clone(want)
	for _, h := range have {
		if i := e.indexOf(remaining, h); i >= 0 {
			remaining = slices.Delete(remaining, i, i+1)
		}
	}
	return remaining
}

// absent returns the elements of values that do not occur in elems.
func (e *Evaluator) absent(elems, values []any) []any {
	var out []any
	for _, v := range values {
		if !e.contains(elems, v) {
			out = append(out, v)
		}
	}
	return out
}

// ContainsExactly passes when actual holds the same elements as values, in
// the same order.
func (e *Evaluator) ContainsExactly(actual, values any) *Result {
	r := e.newResult("containsExactly", actual, values)
	elems, vals, ok := iterables(r, actual, values)
	if !ok {
		return r
	}

	notFound := e.unmatched(elems, vals)
	notExpected := e.unmatched(vals, elems)
	if len(notFound) > 0 || len(notExpected) > 0 {
		return r.fail("expected %v to contain exactly %v but could not find %v and found unexpected %v",
			elems, vals, notFound, notExpected)
	}
	for i := range elems {
		if !e.equals(elems[i], vals[i]) {
			return r.fail("expected %v to contain exactly %v in order but element at index %d was %v instead of %v",
				elems, vals, i, elems[i], vals[i])
		}
	}
	return r.pass()
}

// ContainsExactlyInAnyOrder passes when actual and values hold the same
// elements with the same multiplicity.
func (e *Evaluator) ContainsExactlyInAnyOrder(actual, values any) *Result {
	r := e.newResult("containsExactlyInAnyOrder", actual, values)
	elems, vals, ok := iterables(r, actual, values)
	if !ok {
		return r
	}

	notFound := e.unmatched(elems, vals)
	notExpected := e.unmatched(vals, elems)
	if len(notFound) > 0 || len(notExpected) > 0 {
		return r.fail("expected %v to contain exactly in any order %v but could not find %v and found unexpected %v",
			elems, vals, notFound, notExpected)
	}
	return r.pass()
}

// ContainsOnly passes when every element of actual is one of values and
// every value occurs in actual. Duplicates are allowed on both sides.
func (e *Evaluator) ContainsOnly(actual, values any) *Result {
	r := e.newResult("containsOnly", actual, values)
	elems, vals, ok := iterables(r, actual, values)
	if !ok {
		return r
	}

	notFound := e.absent(elems, vals)
	notExpected := e.absent(vals, elems)
	if len(notFound) > 0 || len(notExpected) > 0 {
		return r.fail("expected %v to contain only %v but could not find %v and found unexpected %v",
			elems, vals, notFound, notExpected)
	}
	return r.pass()
}

// ContainsOnlyOnce passes when every value occurs exactly once in actual.
func (e *Evaluator) ContainsOnlyOnce(actual, values any) *Result {
	r := e.newResult("containsOnlyOnce", actual, values)
	elems, vals, ok := iterables(r, actual, values)
	if !ok {
		return r
	}

	var notFound, duplicated []any
	for _, v := range vals {
		count := 0
		for _, el := range elems {
			if e.equals(el, v) {
				count++
			}
		}
		switch {
		case count == 0:
			notFound = append(notFound, v)
		case count > 1 && !e.contains(duplicated, v):
			duplicated = append(duplicated, v)
		}
	}
	if len(notFound) > 0 || len(duplicated) > 0 {
		return r.fail("expected %v to contain %v only once but could not find %v and found more than once %v",
			elems, vals, notFound, duplicated)
	}
	return r.pass()
}

// ContainsSequence passes when values occur in actual contiguously and in
// order.
func (e *Evaluator) ContainsSequence(actual, values any) *Result {
	r := e.newResult("containsSequence", actual, values)
	elems, vals, ok := iterables(r, actual, values)
	if !ok {
		return r
	}

	if len(vals) == 0 {
		return r.pass()
	}
	for start := 0; start+len(vals) <= len(elems); start++ {
		if e.sequenceAt(elems, vals, start) {
			return r.pass()
		}
	}
	return r.fail("expected %v to contain sequence %v", elems, vals)
}

func (e *Evaluator) sequenceAt(elems, vals []any, start int) bool {
	for i, v := range vals {
		if !e.equals(elems[start+i], v) {
			return false
		}
	}
	return true
}

// ContainsSubsequence passes when values occur in actual in order, possibly
// with other elements in between.
func (e *Evaluator) ContainsSubsequence(actual, values any) *Result {
	r := e.newResult("containsSubsequence", actual, values)
	elems, vals, ok := iterables(r, actual, values)
	if !ok {
		return r
	}

	next := 0
	for _, el := range elems {
		if next < len(vals) && e.equals(el, vals[next]) {
			next++
		}
	}
	if next == len(vals) {
		return r.pass()
	}
	return r.fail("expected %v to contain subsequence %v but could not find %v in order", elems, vals, vals[next])
}

// DoesNotHaveDuplicates passes when no two elements of actual are equal.
func (e *Evaluator) DoesNotHaveDuplicates(actual any) *Result {
	r := e.newResult("doesNotHaveDuplicates", actual, nil)
	elems, ok := elementsOf(actual)
	if !ok {
		return r.abort(fmt.Errorf("%w: %T", ErrNotIterable, actual))
	}

	var duplicates []any
	for i, el := range elems {
		if e.contains(elems[:i], el) && !e.contains(duplicates, el) {
			duplicates = append(duplicates, el)
		}
	}
	if len(duplicates) > 0 {
		return r.fail("found duplicate(s) %v in %v", duplicates, elems)
	}
	return r.pass()
}

// IsSubsetOf passes when every element of actual is one of values.
func (e *Evaluator) IsSubsetOf(actual, values any) *Result {
	r := e.newResult("isSubsetOf", actual, values)
	elems, vals, ok := iterables(r, actual, values)
	if !ok {
		return r
	}

	if unexpected := e.absent(vals, elems); len(unexpected) > 0 {
		return r.fail("expected %v to be a subset of %v but found unexpected %v", elems, vals, unexpected)
	}
	return r.pass()
}
