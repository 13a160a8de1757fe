package collections

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLinkedSet_KeepsInsertionOrder(t *testing.T) {
	s := NewLinkedSet("b", "a", "c", "a")

	assert.Equal(t, 3, s.Len())
	assert.Equal(t, []any{"b", "a", "c"}, s.Values())
	assert.Equal(t, InsertionOrdered, s.Category())

	s.Remove("a")
	assert.Equal(t, []string{"b", "c"}, s.Slice())
	assert.False(t, s.Contains("a"))
}

func TestSortedSet_Orders(t *testing.T) {
	s := NewSortedSet(3, 1, 2, 3)

	assert.Equal(t, []any{1, 2, 3}, s.Values())
	assert.True(t, s.Contains(2))
	assert.Equal(t, Sorted, s.Category())

	s.Remove(2)
	assert.Equal(t, []int{1, 3}, s.Slice())
}

func TestSortedSetFunc_UsesComparator(t *testing.T) {
	byLength := func(a, b string) int { return len(a) - len(b) }
	s := NewSortedSetFunc(byLength, "ccc", "a", "bb", "zz")

	// "zz" has the same length as "bb" and is a duplicate for this comparator
	assert.Equal(t, []any{"a", "bb", "ccc"}, s.Values())
}

func TestHashSet_ValuesAreDeterministic(t *testing.T) {
	s := NewHashSet("pear", "apple", "fig")

	assert.Equal(t, []any{"apple", "fig", "pear"}, s.Values())
	assert.Equal(t, Hash, s.Category())
	assert.False(t, s.Add("fig"))
}

func TestLinkedMap(t *testing.T) {
	m := NewLinkedMap[string, int]().Put("z", 1).Put("a", 2).Put("z", 3)

	assert.Equal(t, []any{"z", "a"}, m.Keys())
	v, ok := m.Get("z")
	assert.True(t, ok)
	assert.Equal(t, 3, v)

	_, ok = m.Get(42)
	assert.False(t, ok, "key of the wrong type is never found")

	m.Delete("z")
	assert.Equal(t, 1, m.Len())
	assert.Equal(t, "{a=2}", m.String())
}

func TestSortedMap(t *testing.T) {
	m := NewSortedMap[string, int]().Put("b", 2).Put("a", 1).Put("c", 3)

	assert.Equal(t, []any{"a", "b", "c"}, m.Keys())
	assert.Equal(t, Sorted, m.Category())

	m.Delete("b")
	assert.Equal(t, "{a=1, c=3}", m.String())
}

func TestCategory_String(t *testing.T) {
	tests := []struct {
		category Category
		want     string
	}{
		{Hash, "hash"},
		{InsertionOrdered, "insertion-ordered"},
		{Sorted, "sorted"},
		{Category(9), "Category(9)"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.category.String())
		})
	}
}

func TestSet_String(t *testing.T) {
	assert.True(t, strings.HasPrefix(NewLinkedSet(1, 2).String(), "[1 2"))
}
