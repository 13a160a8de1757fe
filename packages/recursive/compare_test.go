package recursive

import (
	"math"
	"reflect"
	"testing"
	"time"

	"github.com/abdul-hamid-achik/structeq/packages/collections"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type Address struct {
	Number int
	Street string
}

type Home struct {
	Address Address
}

type Person struct {
	Name      string
	Home      Home
	Friends   []Person
	Neighbour *Person
}

type PersonDTO struct {
	Name      string
	Home      Home
	Friends   []Person
	Neighbour *Person
}

type Employee struct {
	Name      string
	Home      Home
	Friends   []Person
	Neighbour *Person
	Company   string
}

func paths(diffs []Difference) []string {
	out := make([]string, len(diffs))
	for i, d := range diffs {
		out[i] = d.Path.String()
	}
	return out
}

func newPerson(name string, number int) Person {
	return Person{Name: name, Home: Home{Address: Address{Number: number, Street: "Main"}}}
}

func TestCompare_EqualValues(t *testing.T) {
	diffs, err := Compare(newPerson("John", 1), newPerson("John", 1), nil)
	require.NoError(t, err)
	assert.Empty(t, diffs)
}

func TestCompare_Reflexive(t *testing.T) {
	p := newPerson("John", 1)
	p.Friends = []Person{newPerson("Jane", 2)}
	p.Neighbour = &p

	values := []any{
		nil,
		1,
		"text",
		math.NaN(),
		[]int{1, 2, 3},
		map[string]int{"a": 1},
		p,
		&p,
		collections.NewLinkedSet("a", "b"),
		collections.NewSortedMap[string, int]().Put("a", 1),
	}
	for _, v := range values {
		diffs, err := Compare(v, v, nil)
		require.NoError(t, err)
		assert.Empty(t, diffs, "%#v", v)
	}
}

func TestCompare_DifferencesInTraversalOrder(t *testing.T) {
	actual := newPerson("John", 1)
	expected := newPerson("Jack", 2)

	diffs, err := Compare(actual, expected, nil)
	require.NoError(t, err)

	want := []string{"Name", "Home.Address.Number"}
	assert.Empty(t, cmp.Diff(want, paths(diffs)))
	assert.Equal(t, "John", diffs[0].Actual)
	assert.Equal(t, "Jack", diffs[0].Other)
	assert.Equal(t, 1, diffs[1].Actual)
	assert.Equal(t, 2, diffs[1].Other)
}

func TestCompare_NestedPath(t *testing.T) {
	type C struct{ Value int }
	type B struct{ C C }
	type A struct{ B B }

	diffs, err := Compare(A{B{C{1}}}, A{B{C{2}}}, nil)
	require.NoError(t, err)
	require.Len(t, diffs, 1)
	assert.Equal(t, Path{"B", "C", "Value"}, diffs[0].Path)
	assert.Equal(t, "B.C.Value", diffs[0].Path.String())
}

func TestCompare_CollectionElementPath(t *testing.T) {
	actual := newPerson("John", 1)
	actual.Friends = []Person{newPerson("Jane", 2), newPerson("Jim", 3)}
	expected := newPerson("John", 1)
	expected.Friends = []Person{newPerson("Jane", 2), newPerson("Joe", 3)}

	diffs, err := Compare(actual, expected, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"Friends[1].Name"}, paths(diffs))
}

func TestCompare_Cycles(t *testing.T) {
	a := newPerson("John", 1)
	a.Neighbour = &a
	b := newPerson("John", 1)
	b.Neighbour = &b

	diffs, err := Compare(&a, &b, nil)
	require.NoError(t, err)
	assert.Empty(t, diffs)

	b.Name = "Jack"
	diffs, err = Compare(&a, &b, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"Name"}, paths(diffs))
}

func TestCompare_MutualCycle(t *testing.T) {
	a1, a2 := newPerson("A", 1), newPerson("B", 2)
	a1.Neighbour, a2.Neighbour = &a2, &a1
	b1, b2 := newPerson("A", 1), newPerson("B", 2)
	b1.Neighbour, b2.Neighbour = &b2, &b1

	diffs, err := Compare(a1, b1, nil)
	require.NoError(t, err)
	assert.Empty(t, diffs)
}

func TestCompare_Nil(t *testing.T) {
	tests := []struct {
		name     string
		actual   any
		expected any
		equal    bool
	}{
		{name: "both nil", actual: nil, expected: nil, equal: true},
		{name: "actual nil", actual: nil, expected: 1, equal: false},
		{name: "expected nil", actual: "x", expected: nil, equal: false},
		{name: "nil pointer vs value", actual: (*Person)(nil), expected: &Person{}, equal: false},
		{name: "typed nil vs untyped nil", actual: (*Person)(nil), expected: nil, equal: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			diffs, err := Compare(tt.actual, tt.expected, nil)
			require.NoError(t, err)
			if tt.equal {
				assert.Empty(t, diffs)
			} else {
				require.Len(t, diffs, 1)
				assert.Equal(t, "<root>", diffs[0].Path.String())
			}
		})
	}
}

func TestCompare_HeterogeneousTypes(t *testing.T) {
	actual := newPerson("John", 1)
	expected := PersonDTO{Name: "John", Home: Home{Address: Address{Number: 1, Street: "Main"}}}

	diffs, err := Compare(actual, expected, nil)
	require.NoError(t, err)
	assert.Empty(t, diffs)

	cfg := MustConfiguration(WithStrictTypeChecking())
	diffs, err = Compare(actual, expected, cfg)
	require.NoError(t, err)
	require.Len(t, diffs, 1)
	assert.Contains(t, diffs[0].AdditionalInformation, "strict type checking")
}

func TestCompare_PointerAndValue(t *testing.T) {
	p := newPerson("John", 1)
	diffs, err := Compare(&p, newPerson("John", 1), nil)
	require.NoError(t, err)
	assert.Empty(t, diffs)
}

func TestCompare_MissingFields(t *testing.T) {
	actual := Employee{Name: "John", Company: "Acme"}
	_, err := Compare(actual, Person{Name: "John"}, nil)
	require.Error(t, err)

	var missing *MissingFieldsError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, []string{"Company"}, missing.Missing)
	assert.Contains(t, err.Error(), "it lacks these: [Company]")
	assert.False(t, IsFailure(err))

	cfg := MustConfiguration(IgnoringFields("Company"))
	diffs, err := Compare(actual, Person{Name: "John"}, cfg)
	require.NoError(t, err)
	assert.Empty(t, diffs)
}

func TestCompare_ExpectedMayHaveMoreFields(t *testing.T) {
	diffs, err := Compare(Person{Name: "John"}, Employee{Name: "John", Company: "Acme"}, nil)
	require.NoError(t, err)
	assert.Empty(t, diffs)
}

func TestCompare_IgnoringFields(t *testing.T) {
	actual := newPerson("John", 1)
	expected := newPerson("Jack", 2)

	tests := []struct {
		name string
		opt  Option
		want []string
	}{
		{name: "exact field", opt: IgnoringFields("Name"), want: []string{"Home.Address.Number"}},
		{name: "parent field", opt: IgnoringFields("Home"), want: []string{"Name"}},
		{name: "nested field", opt: IgnoringFields("Home.Address.Number"), want: []string{"Name"}},
		{name: "prefix is not a parent", opt: IgnoringFields("Nam"), want: []string{"Name", "Home.Address.Number"}},
		{name: "regex", opt: IgnoringFieldsMatchingRegexes(`Home\..*`), want: []string{"Name"}},
		{name: "regex must match whole location", opt: IgnoringFieldsMatchingRegexes("Addr"), want: []string{"Name", "Home.Address.Number"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			diffs, err := Compare(actual, expected, MustConfiguration(tt.opt))
			require.NoError(t, err)
			assert.Equal(t, tt.want, paths(diffs))
		})
	}
}

func TestCompare_IgnoringFieldsAcrossCollections(t *testing.T) {
	actual := Person{Friends: []Person{{Name: "Jane"}, {Name: "Jim"}}}
	expected := Person{Friends: []Person{{Name: "Joan"}, {Name: "Joe"}}}

	diffs, err := Compare(actual, expected, MustConfiguration(IgnoringFields("Friends.Name")))
	require.NoError(t, err)
	assert.Empty(t, diffs)
}

func TestCompare_IgnoredFieldIsIgnoredWhateverTheValues(t *testing.T) {
	cfg := MustConfiguration(IgnoringFields("Neighbour"))
	neighbour := newPerson("Jim", 3)

	pairs := [][2]Person{
		{{Name: "John"}, {Name: "John", Neighbour: &neighbour}},
		{{Name: "John", Neighbour: &neighbour}, {Name: "John"}},
		{{Name: "John", Neighbour: &Person{Name: "Other"}}, {Name: "John", Neighbour: &neighbour}},
	}
	for _, pair := range pairs {
		diffs, err := Compare(pair[0], pair[1], cfg)
		require.NoError(t, err)
		assert.Empty(t, diffs)
	}
}

func TestCompare_IgnoringAllActualNilFields(t *testing.T) {
	cfg := MustConfiguration(IgnoringAllActualNilFields())
	neighbour := newPerson("Jim", 3)

	diffs, err := Compare(Person{Name: "John"}, Person{Name: "John", Neighbour: &neighbour}, cfg)
	require.NoError(t, err)
	assert.Empty(t, diffs)

	diffs, err = Compare(Person{Name: "John", Neighbour: &neighbour}, Person{Name: "John"}, cfg)
	require.NoError(t, err)
	assert.Equal(t, []string{"Neighbour"}, paths(diffs))
}

func TestCompare_TypeComparator(t *testing.T) {
	type Measure struct {
		Label string
		Value float64
	}
	closeEnough := func(a, b float64) bool { return math.Abs(a-b) < 0.1 }

	diffs, err := Compare(Measure{"x", 1.0}, Measure{"x", 1.05}, nil)
	require.NoError(t, err)
	assert.Len(t, diffs, 1)

	cfg := MustConfiguration(WithComparatorForTypeOf(closeEnough))
	diffs, err = Compare(Measure{"x", 1.0}, Measure{"x", 1.05}, cfg)
	require.NoError(t, err)
	assert.Empty(t, diffs)

	diffs, err = Compare(Measure{"x", 1.0}, Measure{"x", 1.5}, cfg)
	require.NoError(t, err)
	assert.Equal(t, []string{"Value"}, paths(diffs))
}

func TestCompare_FieldComparatorTakesPrecedence(t *testing.T) {
	never := ComparatorFunc(func(any, any) bool { return false })
	always := ComparatorFunc(func(any, any) bool { return true })

	cfg := MustConfiguration(
		WithComparatorForTypeOf(func(a, b string) bool { return true }),
		WithComparatorForField(never, "Name"),
	)
	diffs, err := Compare(newPerson("John", 1), newPerson("John", 1), cfg)
	require.NoError(t, err)
	assert.Equal(t, []string{"Name"}, paths(diffs))

	cfg = MustConfiguration(WithComparatorForField(always, "Neighbour"))
	neighbour := newPerson("Jim", 3)
	diffs, err = Compare(Person{}, Person{Neighbour: &neighbour}, cfg)
	require.NoError(t, err)
	assert.Empty(t, diffs)
}

type Money struct {
	Amount   int
	Currency string
}

func (m Money) Equal(other Money) bool { return m.Amount == other.Amount }

type Wallet struct {
	Cash Money
}

type Token struct {
	ID    string
	nonce int
}

func (t *Token) Equal(other *Token) bool { return t.ID == other.ID }

func TestCompare_OverriddenEquals(t *testing.T) {
	actual := Wallet{Cash: Money{Amount: 10, Currency: "EUR"}}
	expected := Wallet{Cash: Money{Amount: 10, Currency: "USD"}}

	tests := []struct {
		name string
		cfg  *Configuration
		want []string
	}{
		{name: "used by default", cfg: nil, want: []string{}},
		{name: "ignored for all", cfg: MustConfiguration(IgnoringAllOverriddenEquals()), want: []string{"Cash.Currency"}},
		{name: "ignored for type", cfg: MustConfiguration(IgnoringOverriddenEqualsForTypes(reflect.TypeOf((*Money)(nil)).Elem())), want: []string{"Cash.Currency"}},
		{name: "ignored for field", cfg: MustConfiguration(IgnoringOverriddenEqualsForFields("Cash")), want: []string{"Cash.Currency"}},
		{name: "ignored for type regex", cfg: MustConfiguration(IgnoringOverriddenEqualsForTypesMatchingRegexes(`recursive\.Mon.*`)), want: []string{"Cash.Currency"}},
		{name: "other field ignored", cfg: MustConfiguration(IgnoringOverriddenEqualsForFields("Other")), want: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			diffs, err := Compare(actual, expected, tt.cfg)
			require.NoError(t, err)
			assert.Equal(t, tt.want, paths(diffs))
		})
	}
}

func TestCompare_OverriddenEqualsAtRoot(t *testing.T) {
	diffs, err := Compare(Money{1, "EUR"}, Money{1, "USD"}, nil)
	require.NoError(t, err)
	assert.Empty(t, diffs)

	diffs, err = Compare(Money{1, "EUR"}, Money{2, "EUR"}, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"<root>"}, paths(diffs))
}

func TestCompare_PointerReceiverEquals(t *testing.T) {
	diffs, err := Compare(&Token{ID: "a", nonce: 1}, &Token{ID: "a", nonce: 2}, nil)
	require.NoError(t, err)
	assert.Empty(t, diffs)

	diffs, err = Compare(Token{ID: "a", nonce: 1}, Token{ID: "a", nonce: 2}, nil)
	require.NoError(t, err)
	assert.Empty(t, diffs)

	diffs, err = Compare(Token{ID: "a", nonce: 1}, Token{ID: "a", nonce: 2}, MustConfiguration(IgnoringAllOverriddenEquals()))
	require.NoError(t, err)
	assert.Equal(t, []string{"nonce"}, paths(diffs))
}

func TestCompare_TimeUsesEqual(t *testing.T) {
	instant := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	other := instant.In(time.FixedZone("plus2", 2*60*60))

	diffs, err := Compare(instant, other, nil)
	require.NoError(t, err)
	assert.Empty(t, diffs)
}

func TestCompare_StandardLibraryEqualIsAlwaysUsed(t *testing.T) {
	type Event struct {
		Name string
		At   time.Time
	}
	now := time.Now()

	tests := []struct {
		name  string
		other time.Time
		cfg   *Configuration
	}{
		{name: "monotonic reading stripped", other: now.Round(0), cfg: MustConfiguration(IgnoringAllOverriddenEquals())},
		{name: "other location", other: now.UTC(), cfg: MustConfiguration(IgnoringAllOverriddenEquals())},
		{name: "ignored by type", other: now.UTC(), cfg: MustConfiguration(IgnoringOverriddenEqualsForTypes(reflect.TypeOf(time.Time{})))},
		{name: "ignored by field", other: now.UTC(), cfg: MustConfiguration(IgnoringOverriddenEqualsForFields("At"))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			diffs, err := Compare(Event{"x", now}, Event{"x", tt.other}, tt.cfg)
			require.NoError(t, err)
			assert.Empty(t, diffs)
		})
	}

	diffs, err := Compare(Event{"x", now}, Event{"x", now.Add(time.Second)}, MustConfiguration(IgnoringAllOverriddenEquals()))
	require.NoError(t, err)
	assert.Equal(t, []string{"At"}, paths(diffs))
}

func TestCompare_MapKeysDoNotCollideWithFields(t *testing.T) {
	actual := map[string]any{"a.b": 1, "a": map[string]any{"b": 1}}
	expected := map[string]any{"a.b": 2, "a": map[string]any{"b": 2}}

	diffs, err := Compare(actual, expected, MustConfiguration(IgnoringFields("a")))
	require.NoError(t, err)
	assert.Equal(t, []string{`"a.b"`}, paths(diffs))

	diffs, err = Compare(actual, expected, MustConfiguration(IgnoringFields(`"a.b"`)))
	require.NoError(t, err)
	assert.Equal(t, []string{"a.b"}, paths(diffs))
}

func TestCompare_UnexportedFields(t *testing.T) {
	type secret struct {
		Public  string
		private int
	}

	diffs, err := Compare(secret{"a", 1}, secret{"a", 2}, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"private"}, paths(diffs))
	assert.Equal(t, 1, diffs[0].Actual)

	diffs, err = Compare(secret{"a", 1}, secret{"a", 2}, MustConfiguration(IgnoringUnexportedFields()))
	require.NoError(t, err)
	assert.Empty(t, diffs)
}

func TestCompare_EmbeddedStructs(t *testing.T) {
	type Base struct {
		ID   int
		Name string
	}
	type Derived struct {
		Base
		Name string
	}
	type Flat struct {
		ID   int
		Name string
	}

	diffs, err := Compare(Derived{Base: Base{ID: 1, Name: "hidden"}, Name: "x"}, Flat{ID: 1, Name: "x"}, nil)
	require.NoError(t, err)
	assert.Empty(t, diffs)

	diffs, err = Compare(Derived{Base: Base{ID: 1}, Name: "x"}, Flat{ID: 2, Name: "x"}, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"ID"}, paths(diffs))
}

func TestCompare_OrderedCollections(t *testing.T) {
	diffs, err := Compare([]int{1, 2}, []int{1, 2, 3}, nil)
	require.NoError(t, err)
	require.Len(t, diffs, 1)
	assert.Equal(t, "actual and expected values are collections of different size, actual size=2 when expected size=3",
		diffs[0].AdditionalInformation)

	diffs, err = Compare([]int{1, 2, 3}, []int{1, 5, 3}, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"[1]"}, paths(diffs))

	diffs, err = Compare([2]string{"a", "b"}, []string{"a", "b"}, nil)
	require.NoError(t, err)
	assert.Empty(t, diffs)

	diffs, err = Compare(1, []int{1}, nil)
	require.NoError(t, err)
	require.Len(t, diffs, 1)
	assert.Contains(t, diffs[0].AdditionalInformation, "expected field is an ordered collection")
}

func TestCompare_NilAndEmpty(t *testing.T) {
	diffs, err := Compare([]int(nil), []int{}, nil)
	require.NoError(t, err)
	assert.Len(t, diffs, 1)

	cfg := MustConfiguration(TreatingNilAndEmptyAsEqual())
	for _, pair := range [][2]any{
		{[]int(nil), []int{}},
		{map[string]int{}, map[string]int(nil)},
		{(*collections.HashSet[int])(nil), collections.NewHashSet[int]()},
	} {
		diffs, err := Compare(pair[0], pair[1], cfg)
		require.NoError(t, err)
		assert.Empty(t, diffs)
	}

	diffs, err = Compare([]int(nil), []int{1}, cfg)
	require.NoError(t, err)
	assert.Len(t, diffs, 1)
}

func TestCompare_Sets(t *testing.T) {
	t.Run("hash sets ignore order", func(t *testing.T) {
		diffs, err := Compare(collections.NewHashSet(3, 1, 2), collections.NewHashSet(1, 2, 3), nil)
		require.NoError(t, err)
		assert.Empty(t, diffs)
	})

	t.Run("elements are compared recursively", func(t *testing.T) {
		actual := collections.NewHashSet(&Address{1, "Main"}, &Address{2, "High"})
		expected := collections.NewHashSet(&Address{2, "High"}, &Address{1, "Main"})
		diffs, err := Compare(actual, expected, nil)
		require.NoError(t, err)
		assert.Empty(t, diffs)
	})

	t.Run("unmatched elements", func(t *testing.T) {
		diffs, err := Compare(collections.NewHashSet(1, 2), collections.NewHashSet(1, 3), nil)
		require.NoError(t, err)
		require.Len(t, diffs, 1)
		assert.Contains(t, diffs[0].AdditionalInformation, "could not be matched: [2]")
	})

	t.Run("different sizes", func(t *testing.T) {
		diffs, err := Compare(collections.NewLinkedSet(1), collections.NewLinkedSet(1, 2), nil)
		require.NoError(t, err)
		require.Len(t, diffs, 1)
		assert.Contains(t, diffs[0].AdditionalInformation, "sets of different size")
	})

	t.Run("category mismatch", func(t *testing.T) {
		diffs, err := Compare(collections.NewLinkedSet("a", "b"), collections.NewSortedSet("a", "b"), nil)
		require.NoError(t, err)
		require.Len(t, diffs, 1)
		assert.Equal(t, "actual set is insertion-ordered [a b] but expected set is sorted [a b]",
			diffs[0].AdditionalInformation)
	})

	t.Run("set against slice", func(t *testing.T) {
		diffs, err := Compare([]string{"a"}, collections.NewLinkedSet("a"), nil)
		require.NoError(t, err)
		require.Len(t, diffs, 1)
		assert.Contains(t, diffs[0].AdditionalInformation, "expected field is a set")
	})
}

func TestCompare_Maps(t *testing.T) {
	t.Run("equal", func(t *testing.T) {
		diffs, err := Compare(map[string]int{"a": 1, "b": 2}, map[string]int{"b": 2, "a": 1}, nil)
		require.NoError(t, err)
		assert.Empty(t, diffs)
	})

	t.Run("value differences use key segments", func(t *testing.T) {
		actual := map[string]Address{"home": {1, "Main"}}
		expected := map[string]Address{"home": {2, "Main"}}
		diffs, err := Compare(actual, expected, nil)
		require.NoError(t, err)
		assert.Equal(t, []string{"home.Number"}, paths(diffs))
	})

	t.Run("extra and missing keys", func(t *testing.T) {
		diffs, err := Compare(map[string]int{"a": 1, "b": 2}, map[string]int{"a": 1, "c": 3}, nil)
		require.NoError(t, err)
		require.Len(t, diffs, 2)
		assert.Equal(t, "b", diffs[0].Path.String())
		assert.Equal(t, "expected map has no entry for key b", diffs[0].AdditionalInformation)
		assert.Equal(t, "c", diffs[1].Path.String())
		assert.Equal(t, "actual map has no entry for key c", diffs[1].AdditionalInformation)
	})

	t.Run("ignored keys", func(t *testing.T) {
		cfg := MustConfiguration(IgnoringFields("b", "c"))
		diffs, err := Compare(map[string]int{"a": 1, "b": 2}, map[string]int{"a": 1, "c": 3}, cfg)
		require.NoError(t, err)
		assert.Empty(t, diffs)
	})

	t.Run("integer keys in numeric order", func(t *testing.T) {
		diffs, err := Compare(map[int]int{10: 0, 9: 0, 1: 0}, map[int]int{10: 1, 9: 1, 1: 1}, nil)
		require.NoError(t, err)
		assert.Equal(t, []string{"1", "9", "10"}, paths(diffs))
	})

	t.Run("category mismatch", func(t *testing.T) {
		diffs, err := Compare(map[string]int{"a": 1}, collections.NewLinkedMap[string, int]().Put("a", 1), nil)
		require.NoError(t, err)
		require.Len(t, diffs, 1)
		assert.Equal(t, "actual map is hash but expected map is insertion-ordered", diffs[0].AdditionalInformation)
	})

	t.Run("sorted maps", func(t *testing.T) {
		actual := collections.NewSortedMap[string, int]().Put("b", 2).Put("a", 1)
		expected := collections.NewSortedMap[string, int]().Put("a", 1).Put("b", 3)
		diffs, err := Compare(actual, expected, nil)
		require.NoError(t, err)
		assert.Equal(t, []string{"b"}, paths(diffs))
	})

	t.Run("JSON documents", func(t *testing.T) {
		actual := map[string]any{"user": map[string]any{"name": "John", "tags": []any{"a", "b"}}}
		expected := map[string]any{"user": map[string]any{"name": "Jack", "tags": []any{"a", "c"}}}
		diffs, err := Compare(actual, expected, nil)
		require.NoError(t, err)
		assert.Equal(t, []string{"user.name", "user.tags[1]"}, paths(diffs))
	})
}

func TestCompare_Scalars(t *testing.T) {
	tests := []struct {
		name     string
		actual   any
		expected any
		equal    bool
	}{
		{name: "same int", actual: 1, expected: 1, equal: true},
		{name: "different int", actual: 1, expected: 2, equal: false},
		{name: "different numeric types", actual: 1, expected: int64(1), equal: false},
		{name: "NaN", actual: math.NaN(), expected: math.NaN(), equal: true},
		{name: "bool", actual: true, expected: false, equal: false},
		{name: "complex", actual: complex(1, 2), expected: complex(1, 2), equal: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			diffs, err := Compare(tt.actual, tt.expected, nil)
			require.NoError(t, err)
			assert.Equal(t, tt.equal, len(diffs) == 0)
		})
	}
}

func TestCompare_Funcs(t *testing.T) {
	f := func() {}
	diffs, err := Compare(f, f, nil)
	require.NoError(t, err)
	assert.Empty(t, diffs)

	diffs, err = Compare(f, func() {}, nil)
	require.NoError(t, err)
	assert.Len(t, diffs, 1)
}

func TestAssertEqual(t *testing.T) {
	require.NoError(t, AssertEqual(newPerson("John", 1), newPerson("John", 1), nil))

	err := AssertEqual(newPerson("John", 1), newPerson("Jack", 1), nil)
	require.Error(t, err)
	assert.True(t, IsFailure(err))

	var failure *Failure
	require.ErrorAs(t, err, &failure)
	assert.Len(t, failure.Differences, 1)
	assert.NotNil(t, failure.Configuration)
	assert.Contains(t, err.Error(), "found 1 difference(s): Name")
}

func TestFields(t *testing.T) {
	type inner struct {
		A int
		b string
	}

	fields, ok := Fields(&inner{A: 1, b: "x"})
	require.True(t, ok)
	assert.Equal(t, []FieldValue{{Name: "A", Value: 1}, {Name: "b", Value: "x"}}, fields)

	_, ok = Fields(3)
	assert.False(t, ok)
}

func TestCompare_IgnoringActualNilName(t *testing.T) {
	type nullable struct {
		Name *string
		Home Home
	}
	john := "John"

	diffs, err := Compare(nullable{}, nullable{Name: &john}, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"Name"}, paths(diffs))

	diffs, err = Compare(nullable{}, nullable{Name: &john}, MustConfiguration(IgnoringAllActualNilFields()))
	require.NoError(t, err)
	assert.Empty(t, diffs)
}
