package recursive

import (
	"fmt"
	"reflect"
	"regexp"
	"slices"
	"strings"
)

const indentLevel2 = "  -"

// Configuration controls a recursive comparison. It is built once with
// NewConfiguration and only read during Compare, so one Configuration may be
// shared by concurrent comparisons.
type Configuration struct {
	ignoreAllActualNilFields bool
	ignoredFields            []string
	ignoredFieldsRegexes     []*regexp.Regexp

	ignoreAllOverriddenEquals      bool
	ignoredOverriddenEqualsTypes   []reflect.Type
	ignoredOverriddenEqualsFields  []string
	ignoredOverriddenEqualsRegexes []*regexp.Regexp

	typeComparators  map[reflect.Type]Comparator
	typeOrder        []reflect.Type
	fieldComparators map[string]Comparator
	fieldOrder       []string

	strictTypeChecking      bool
	treatNilAndEmptyAsEqual bool
	ignoreUnexportedFields  bool
}

// Option configures a Configuration.
type Option func(*Configuration) error

// NewConfiguration applies opts in order and returns the first error.
func NewConfiguration(opts ...Option) (*Configuration, error) {
	c := &Configuration{
		typeComparators:  make(map[reflect.Type]Comparator),
		fieldComparators: make(map[string]Comparator),
	}
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// MustConfiguration is like NewConfiguration but panics on error.
func MustConfiguration(opts ...Option) *Configuration {
	c, err := NewConfiguration(opts...)
	if err != nil {
		panic(err)
	}
	return c
}

// IgnoringAllActualNilFields skips every field whose actual value is nil.
// Nil fields on the expected side are still compared.
func IgnoringAllActualNilFields() Option {
	return func(c *Configuration) error {
		c.ignoreAllActualNilFields = true
		return nil
	}
}

// IgnoringFields skips the given dotted field paths and everything below them.
func IgnoringFields(paths ...string) Option {
	return func(c *Configuration) error {
		c.ignoredFields = appendUnique(c.ignoredFields, paths...)
		return nil
	}
}

// IgnoringFieldsMatchingRegexes skips fields whose dotted location fully
// matches one of the patterns.
func IgnoringFieldsMatchingRegexes(patterns ...string) Option {
	return func(c *Configuration) error {
		regexes, err := compileAll(patterns)
		if err != nil {
			return err
		}
		c.ignoredFieldsRegexes = append(c.ignoredFieldsRegexes, regexes...)
		return nil
	}
}

// IgnoringAllOverriddenEquals compares every struct field by field even when
// its type declares an Equal method.
func IgnoringAllOverriddenEquals() Option {
	return func(c *Configuration) error {
		c.ignoreAllOverriddenEquals = true
		return nil
	}
}

// IgnoringOverriddenEqualsForTypes bypasses Equal methods of the given types
// (and of pointers to them).
func IgnoringOverriddenEqualsForTypes(types ...reflect.Type) Option {
	return func(c *Configuration) error {
		for _, t := range types {
			if t == nil {
				return ErrNilType
			}
			if !slices.Contains(c.ignoredOverriddenEqualsTypes, t) {
				c.ignoredOverriddenEqualsTypes = append(c.ignoredOverriddenEqualsTypes, t)
			}
		}
		return nil
	}
}

// IgnoringOverriddenEqualsForFields bypasses Equal methods for values at the
// given field paths.
func IgnoringOverriddenEqualsForFields(paths ...string) Option {
	return func(c *Configuration) error {
		c.ignoredOverriddenEqualsFields = appendUnique(c.ignoredOverriddenEqualsFields, paths...)
		return nil
	}
}

// IgnoringOverriddenEqualsForTypesMatchingRegexes bypasses Equal methods of
// types whose name (as printed by reflect.Type.String, e.g. "time.Time")
// fully matches one of the patterns.
func IgnoringOverriddenEqualsForTypesMatchingRegexes(patterns ...string) Option {
	return func(c *Configuration) error {
		regexes, err := compileAll(patterns)
		if err != nil {
			return err
		}
		c.ignoredOverriddenEqualsRegexes = append(c.ignoredOverriddenEqualsRegexes, regexes...)
		return nil
	}
}

// WithComparatorForType compares every value of type t with cmp.
func WithComparatorForType(cmp Comparator, t reflect.Type) Option {
	return func(c *Configuration) error {
		if cmp == nil {
			return ErrNilComparator
		}
		if t == nil {
			return ErrNilType
		}
		if _, ok := c.typeComparators[t]; !ok {
			c.typeOrder = append(c.typeOrder, t)
		}
		c.typeComparators[t] = cmp
		return nil
	}
}

// WithComparatorForTypeOf registers eq for values of type T.
func WithComparatorForTypeOf[T any](eq func(actual, other T) bool) Option {
	if eq == nil {
		return func(*Configuration) error { return ErrNilComparator }
	}
	t := reflect.TypeOf((*T)(nil)).Elem()
	return WithComparatorForType(Named(fmt.Sprintf("func(%s, %s) bool", t, t), ComparatorFor(eq)), t)
}

// WithComparatorForField compares the values at the given field paths with
// cmp. Field comparators take precedence over type comparators.
func WithComparatorForField(cmp Comparator, paths ...string) Option {
	return func(c *Configuration) error {
		if cmp == nil {
			return ErrNilComparator
		}
		for _, p := range paths {
			if _, ok := c.fieldComparators[p]; !ok {
				c.fieldOrder = append(c.fieldOrder, p)
			}
			c.fieldComparators[p] = cmp
		}
		return nil
	}
}

// WithStrictTypeChecking reports values of different dynamic types as
// different even when all their fields match.
func WithStrictTypeChecking() Option {
	return func(c *Configuration) error {
		c.strictTypeChecking = true
		return nil
	}
}

// TreatingNilAndEmptyAsEqual considers a nil slice, map or set equal to an
// empty one.
func TreatingNilAndEmptyAsEqual() Option {
	return func(c *Configuration) error {
		c.treatNilAndEmptyAsEqual = true
		return nil
	}
}

// IgnoringUnexportedFields restricts struct comparison to exported fields.
func IgnoringUnexportedFields() Option {
	return func(c *Configuration) error {
		c.ignoreUnexportedFields = true
		return nil
	}
}

func (c *Configuration) IgnoresAllActualNilFields() bool { return c.ignoreAllActualNilFields }

func (c *Configuration) IsInStrictTypeCheckingMode() bool { return c.strictTypeChecking }

func (c *Configuration) IgnoredFields() []string { return slices.Clone(c.ignoredFields) }

func (c *Configuration) IgnoredFieldsRegexes() []string { return patternsOf(c.ignoredFieldsRegexes) }

func (c *Configuration) HasComparatorForField(location string) bool {
	_, ok := c.fieldComparators[location]
	return ok
}

func (c *Configuration) HasComparatorForType(t reflect.Type) bool {
	_, ok := c.typeComparators[t]
	return ok
}

// shouldIgnoreLocation reports whether a field location matches an exact
// ignore rule (or is nested below one) or an ignore regex.
func (c *Configuration) shouldIgnoreLocation(location string) bool {
	if matchesAnyLocation(c.ignoredFields, location) {
		return true
	}
	return matchesAnyRegex(c.ignoredFieldsRegexes, location)
}

func (c *Configuration) shouldIgnoreValue(actual reflect.Value) bool {
	return c.ignoreAllActualNilFields && isNil(actual)
}

func (c *Configuration) comparatorFor(location string, actual, expected reflect.Value) (Comparator, bool) {
	if location != "" {
		if cmp, ok := c.fieldComparators[location]; ok {
			return cmp, true
		}
	}
	if len(c.typeComparators) == 0 {
		return nil, false
	}
	t := typeOf(actual)
	if t == nil {
		t = typeOf(expected)
	}
	cmp, ok := c.typeComparators[t]
	return cmp, ok
}

func (c *Configuration) shouldIgnoreOverriddenEqualsOf(location string, t reflect.Type) bool {
	if c.ignoreAllOverriddenEquals {
		return true
	}
	if location != "" && matchesAnyLocation(c.ignoredOverriddenEqualsFields, location) {
		return true
	}
	base := t
	if base.Kind() == reflect.Pointer {
		base = base.Elem()
	}
	if slices.Contains(c.ignoredOverriddenEqualsTypes, t) || slices.Contains(c.ignoredOverriddenEqualsTypes, base) {
		return true
	}
	return matchesAnyRegex(c.ignoredOverriddenEqualsRegexes, t.String()) ||
		matchesAnyRegex(c.ignoredOverriddenEqualsRegexes, base.String())
}

// Describe returns a multi-line summary of the configuration, one rule per
// line, suitable for appending to a failure report.
func (c *Configuration) Describe() string {
	var sb strings.Builder
	if c.ignoreAllActualNilFields {
		sb.WriteString("- all actual nil fields were ignored in the comparison\n")
	}
	if len(c.ignoredFields) > 0 {
		fmt.Fprintf(&sb, "- the following fields were ignored in the comparison: %s\n", strings.Join(c.ignoredFields, ", "))
	}
	if len(c.ignoredFieldsRegexes) > 0 {
		fmt.Fprintf(&sb, "- the fields matching the following regexes were ignored in the comparison: %s\n",
			strings.Join(patternsOf(c.ignoredFieldsRegexes), ", "))
	}
	if c.ignoreUnexportedFields {
		sb.WriteString("- unexported fields were ignored in the comparison\n")
	}
	c.describeOverriddenEquals(&sb)
	if len(c.typeOrder) > 0 {
		sb.WriteString("- these types were compared with the following comparators:\n")
		for _, t := range c.typeOrder {
			fmt.Fprintf(&sb, "%s %s -> %s\n", indentLevel2, t, describeComparator(c.typeComparators[t]))
		}
	}
	if len(c.fieldOrder) > 0 {
		sb.WriteString("- these fields were compared with the following comparators:\n")
		for _, f := range c.fieldOrder {
			fmt.Fprintf(&sb, "%s %s -> %s\n", indentLevel2, f, describeComparator(c.fieldComparators[f]))
		}
		if len(c.typeOrder) > 0 {
			sb.WriteString("- field comparators take precedence over type comparators.\n")
		}
	}
	if c.treatNilAndEmptyAsEqual {
		sb.WriteString("- nil and empty slices, maps and sets were considered equal\n")
	}
	if c.strictTypeChecking {
		sb.WriteString("- actual and expected objects and their fields were considered different when of different types even if all their fields match\n")
	} else {
		sb.WriteString("- actual and expected objects and their fields were compared field by field recursively even if they were not of the same type\n")
	}
	return sb.String()
}

func (c *Configuration) describeOverriddenEquals(sb *strings.Builder) {
	some := len(c.ignoredOverriddenEqualsFields) > 0 || len(c.ignoredOverriddenEqualsTypes) > 0 ||
		len(c.ignoredOverriddenEqualsRegexes) > 0
	if c.ignoreAllOverriddenEquals {
		sb.WriteString("- no overridden equals methods were used in the comparison\n")
		return
	}
	sb.WriteString("- overridden equals methods were used in the comparison")
	if !some {
		sb.WriteString("\n")
		return
	}
	sb.WriteString(", except for:\n")
	if len(c.ignoredOverriddenEqualsFields) > 0 {
		fmt.Fprintf(sb, "%s the following fields: %s\n", indentLevel2, strings.Join(c.ignoredOverriddenEqualsFields, ", "))
	}
	if len(c.ignoredOverriddenEqualsTypes) > 0 {
		names := make([]string, len(c.ignoredOverriddenEqualsTypes))
		for i, t := range c.ignoredOverriddenEqualsTypes {
			names[i] = t.String()
		}
		fmt.Fprintf(sb, "%s the following types: %s\n", indentLevel2, strings.Join(names, ", "))
	}
	if len(c.ignoredOverriddenEqualsRegexes) > 0 {
		fmt.Fprintf(sb, "%s the types matching the following regexes: %s\n", indentLevel2,
			strings.Join(patternsOf(c.ignoredOverriddenEqualsRegexes), ", "))
	}
}

func matchesAnyLocation(rules []string, location string) bool {
	for _, rule := range rules {
		if location == rule || strings.HasPrefix(location, rule+".") {
			return true
		}
	}
	return false
}

func matchesAnyRegex(regexes []*regexp.Regexp, s string) bool {
	for _, re := range regexes {
		if re.MatchString(s) {
			return true
		}
	}
	return false
}

// compileAll anchors each pattern so it must match the whole input.
func compileAll(patterns []string) ([]*regexp.Regexp, error) {
	regexes := make([]*regexp.Regexp, 0, len(patterns))
	for _, p := range patterns {
		re, err := regexp.Compile("^(?:" + p + ")$")
		if err != nil {
			return nil, fmt.Errorf("invalid regex %q: %w", p, err)
		}
		regexes = append(regexes, re)
	}
	return regexes, nil
}

func patternsOf(regexes []*regexp.Regexp) []string {
	patterns := make([]string, len(regexes))
	for i, re := range regexes {
		p := strings.TrimPrefix(re.String(), "^(?:")
		patterns[i] = strings.TrimSuffix(p, ")$")
	}
	return patterns
}

func appendUnique(dst []string, values ...string) []string {
	for _, v := range values {
		if !slices.Contains(dst, v) {
			dst = append(dst, v)
		}
	}
	return dst
}
