package assertions

import (
	"testing"

	"github.com/abdul-hamid-achik/structeq/packages/collections"
	"github.com/stretchr/testify/assert"
)

func TestEvaluator_ContainsExactly(t *testing.T) {
	e := NewEvaluator()

	tests := []struct {
		name   string
		actual any
		values any
		passed bool
	}{
		{name: "same order", actual: []string{"a", "b", "c"}, values: []string{"a", "b", "c"}, passed: true},
		{name: "different order", actual: []string{"a", "b", "c"}, values: []string{"b", "a", "c"}, passed: false},
		{name: "missing element", actual: []string{"a", "b"}, values: []string{"a", "b", "c"}, passed: false},
		{name: "duplicates count", actual: []string{"a", "a"}, values: []string{"a"}, passed: false},
		{name: "array against slice", actual: [2]int{1, 2}, values: []any{1, 2.0}, passed: true},
		{name: "linked set keeps order", actual: collections.NewLinkedSet(3, 1, 2), values: []int{3, 1, 2}, passed: true},
		{name: "both empty", actual: []int{}, values: []int(nil), passed: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := e.ContainsExactly(tt.actual, tt.values)
			assert.Equal(t, tt.passed, result.Passed, result.Message)
			assert.NoError(t, result.Err)
		})
	}

	assert.Equal(t,
		"expected [a b c] to contain exactly [a c b] in order but element at index 1 was b instead of c",
		e.ContainsExactly([]string{"a", "b", "c"}, []string{"a", "c", "b"}).Message)
	assert.Equal(t,
		"expected [a b] to contain exactly [a c] but could not find [c] and found unexpected [b]",
		e.ContainsExactly([]string{"a", "b"}, []string{"a", "c"}).Message)
}

func TestEvaluator_ContainsExactly_WithStrategy(t *testing.T) {
	e := NewEvaluator(WithStrategy(CaseInsensitiveStrategy{}))
	assert.True(t, e.ContainsExactly([]string{"Frodo", "SAM"}, []string{"frodo", "sam"}).Passed)
}

func TestEvaluator_ContainsExactlyInAnyOrder(t *testing.T) {
	e := NewEvaluator()

	assert.True(t, e.ContainsExactlyInAnyOrder([]int{1, 2, 2, 3}, []int{2, 3, 2, 1}).Passed)
	assert.False(t, e.ContainsExactlyInAnyOrder([]int{1, 2, 2}, []int{1, 1, 2}).Passed)
	assert.True(t, e.ContainsExactlyInAnyOrder(collections.NewHashSet("x", "y"), []string{"y", "x"}).Passed)
}

func TestEvaluator_ContainsOnly(t *testing.T) {
	e := NewEvaluator()

	assert.True(t, e.ContainsOnly([]int{1, 1, 2}, []int{2, 1}).Passed)
	assert.True(t, e.ContainsOnly([]int{1, 2}, []int{2, 1, 1}).Passed)
	assert.False(t, e.ContainsOnly([]int{1, 2, 3}, []int{1, 2}).Passed)
	assert.False(t, e.ContainsOnly([]int{1}, []int{1, 2}).Passed)
	assert.True(t, e.ContainsOnly([]int{}, []int{}).Passed)
	assert.False(t, e.ContainsOnly([]int{1}, []int{}).Passed)
}

func TestEvaluator_ContainsOnlyOnce(t *testing.T) {
	e := NewEvaluator()

	assert.True(t, e.ContainsOnlyOnce([]string{"a", "b", "c"}, []string{"a", "c"}).Passed)

	result := e.ContainsOnlyOnce([]string{"a", "b", "b"}, []string{"b", "d"})
	assert.False(t, result.Passed)
	assert.Equal(t, "expected [a b b] to contain [b d] only once but could not find [d] and found more than once [b]", result.Message)
}

func TestEvaluator_ContainsSequence(t *testing.T) {
	e := NewEvaluator()
	actual := []int{1, 2, 3, 4}

	assert.True(t, e.ContainsSequence(actual, []int{2, 3}).Passed)
	assert.True(t, e.ContainsSequence(actual, []int{}).Passed)
	assert.True(t, e.ContainsSequence(actual, []int{1, 2, 3, 4}).Passed)
	assert.False(t, e.ContainsSequence(actual, []int{2, 4}).Passed)
	assert.False(t, e.ContainsSequence(actual, []int{3, 4, 5}).Passed)
}

func TestEvaluator_ContainsSubsequence(t *testing.T) {
	e := NewEvaluator()
	actual := []int{1, 2, 3, 4}

	assert.True(t, e.ContainsSubsequence(actual, []int{1, 4}).Passed)
	assert.True(t, e.ContainsSubsequence(actual, []int{2, 3}).Passed)
	assert.True(t, e.ContainsSubsequence(actual, []int{}).Passed)

	result := e.ContainsSubsequence(actual, []int{3, 1})
	assert.False(t, result.Passed)
	assert.Equal(t, "expected [1 2 3 4] to contain subsequence [3 1] but could not find 1 in order", result.Message)
}

func TestEvaluator_DoesNotHaveDuplicates(t *testing.T) {
	e := NewEvaluator()

	assert.True(t, e.DoesNotHaveDuplicates([]int{1, 2, 3}).Passed)

	result := e.DoesNotHaveDuplicates([]int{1, 2, 1, 2, 1})
	assert.False(t, result.Passed)
	assert.Equal(t, "found duplicate(s) [1 2] in [1 2 1 2 1]", result.Message)

	insensitive := NewEvaluator(WithStrategy(CaseInsensitiveStrategy{}))
	assert.False(t, insensitive.DoesNotHaveDuplicates([]string{"a", "A"}).Passed)

	assert.ErrorIs(t, e.DoesNotHaveDuplicates(42).Err, ErrNotIterable)
}

func TestEvaluator_IsSubsetOf(t *testing.T) {
	e := NewEvaluator()

	assert.True(t, e.IsSubsetOf([]int{1, 2}, []int{3, 2, 1}).Passed)
	assert.True(t, e.IsSubsetOf([]int{}, []int{1}).Passed)
	assert.False(t, e.IsSubsetOf([]int{1, 4}, []int{1, 2}).Passed)
}

func TestEvaluator_IterablesRejectNonCollections(t *testing.T) {
	e := NewEvaluator()

	result := e.ContainsExactly("abc", []string{"a"})
	assert.False(t, result.Passed)
	assert.ErrorIs(t, result.Err, ErrNotIterable)

	result = e.ContainsOnly([]string{"a"}, map[string]int{})
	assert.ErrorIs(t, result.Err, ErrNotIterable)
}
