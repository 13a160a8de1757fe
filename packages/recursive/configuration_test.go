package recursive

import (
	"reflect"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfiguration_Errors(t *testing.T) {
	tests := []struct {
		name string
		opt  Option
		err  error
	}{
		{name: "nil type comparator", opt: WithComparatorForType(nil, reflect.TypeOf((*int)(nil)).Elem()), err: ErrNilComparator},
		{name: "nil type", opt: WithComparatorForType(ComparatorFunc(func(any, any) bool { return true }), nil), err: ErrNilType},
		{name: "nil field comparator", opt: WithComparatorForField(nil, "name"), err: ErrNilComparator},
		{name: "nil typed comparator", opt: WithComparatorForTypeOf[int](nil), err: ErrNilComparator},
		{name: "nil ignored type", opt: IgnoringOverriddenEqualsForTypes(nil), err: ErrNilType},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewConfiguration(tt.opt)
			assert.ErrorIs(t, err, tt.err)
		})
	}
}

func TestNewConfiguration_InvalidRegex(t *testing.T) {
	_, err := NewConfiguration(IgnoringFieldsMatchingRegexes("name", "[unclosed"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), `invalid regex "[unclosed"`)

	_, err = NewConfiguration(IgnoringOverriddenEqualsForTypesMatchingRegexes("("))
	assert.Error(t, err)

	assert.Panics(t, func() { MustConfiguration(IgnoringFieldsMatchingRegexes("(")) })
}

func TestConfiguration_Accessors(t *testing.T) {
	cfg := MustConfiguration(
		IgnoringFields("a", "b.c", "a"),
		IgnoringFieldsMatchingRegexes(`x\..*`),
		IgnoringAllActualNilFields(),
		WithStrictTypeChecking(),
		WithComparatorForField(ComparatorFunc(func(any, any) bool { return true }), "d"),
		WithComparatorForTypeOf(func(a, b time.Time) bool { return a.Equal(b) }),
	)

	assert.Equal(t, []string{"a", "b.c"}, cfg.IgnoredFields())
	assert.Equal(t, []string{`x\..*`}, cfg.IgnoredFieldsRegexes())
	assert.True(t, cfg.IgnoresAllActualNilFields())
	assert.True(t, cfg.IsInStrictTypeCheckingMode())
	assert.True(t, cfg.HasComparatorForField("d"))
	assert.False(t, cfg.HasComparatorForField("e"))
	assert.True(t, cfg.HasComparatorForType(reflect.TypeOf((*time.Time)(nil)).Elem()))
	assert.False(t, cfg.HasComparatorForType(reflect.TypeOf((*string)(nil)).Elem()))

	fields := cfg.IgnoredFields()
	fields[0] = "changed"
	assert.Equal(t, []string{"a", "b.c"}, cfg.IgnoredFields())
}

func TestConfiguration_Describe(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		desc := MustConfiguration().Describe()
		assert.Equal(t, "- overridden equals methods were used in the comparison\n"+
			"- actual and expected objects and their fields were compared field by field recursively even if they were not of the same type\n",
			desc)
	})

	t.Run("all rules", func(t *testing.T) {
		cfg := MustConfiguration(
			IgnoringAllActualNilFields(),
			IgnoringFields("name", "home.address"),
			IgnoringFieldsMatchingRegexes(`.*id`),
			IgnoringOverriddenEqualsForFields("cash"),
			IgnoringOverriddenEqualsForTypes(reflect.TypeOf((*Money)(nil)).Elem()),
			IgnoringOverriddenEqualsForTypesMatchingRegexes(`time\..*`),
			WithComparatorForTypeOf(func(a, b float64) bool { return a == b }),
			WithComparatorForField(Named("always", ComparatorFunc(func(any, any) bool { return true })), "age"),
			TreatingNilAndEmptyAsEqual(),
			WithStrictTypeChecking(),
		)

		want := "- all actual nil fields were ignored in the comparison\n" +
			"- the following fields were ignored in the comparison: name, home.address\n" +
			"- the fields matching the following regexes were ignored in the comparison: .*id\n" +
			"- overridden equals methods were used in the comparison, except for:\n" +
			"  - the following fields: cash\n" +
			"  - the following types: recursive.Money\n" +
			"  - the types matching the following regexes: time\\..*\n" +
			"- these types were compared with the following comparators:\n" +
			"  - float64 -> func(float64, float64) bool\n" +
			"- these fields were compared with the following comparators:\n" +
			"  - age -> always\n" +
			"- field comparators take precedence over type comparators.\n" +
			"- nil and empty slices, maps and sets were considered equal\n" +
			"- actual and expected objects and their fields were considered different when of different types even if all their fields match\n"
		assert.Equal(t, want, cfg.Describe())
	})

	t.Run("no overridden equals", func(t *testing.T) {
		desc := MustConfiguration(IgnoringAllOverriddenEquals(), IgnoringUnexportedFields()).Describe()
		assert.Contains(t, desc, "- unexported fields were ignored in the comparison\n")
		assert.Contains(t, desc, "- no overridden equals methods were used in the comparison\n")
	})
}

func TestComparatorFor(t *testing.T) {
	c := ComparatorFor(func(a, b int) bool { return a%10 == b%10 })

	assert.True(t, c.Equal(1, 11))
	assert.False(t, c.Equal(1, 12))
	assert.False(t, c.Equal(1, "1"))
	assert.True(t, c.Equal(nil, nil))
}

func TestNamed(t *testing.T) {
	assert.Nil(t, Named("x", nil))

	c := Named("mod10", ComparatorFor(func(a, b int) bool { return a%10 == b%10 }))
	assert.Equal(t, "mod10", describeComparator(c))
	assert.True(t, c.Equal(3, 13))
}
