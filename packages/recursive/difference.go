package recursive

import (
	"fmt"
	"strconv"
	"strings"
)

// Path is the sequence of field names leading from the compared root to a
// value. Collection elements are recorded with an index segment such as "[2]".
type Path []string

func (p Path) child(name string) Path {
	next := make(Path, len(p), len(p)+1)
	copy(next, p)
	return append(next, name)
}

func (p Path) element(i int) Path {
	return p.child("[" + strconv.Itoa(i) + "]")
}

// key appends a map entry segment. Keys that contain a dot or a bracket, or
// that are empty, are quoted so they cannot be read as a field path or an
// index.
func (p Path) key(k any) Path {
	segment := fmt.Sprint(k)
	if segment == "" || strings.ContainsAny(segment, ".[]") {
		segment = strconv.Quote(segment)
	}
	return p.child(segment)
}

// String renders the path with dots between fields, e.g. "friends[0].name".
func (p Path) String() string {
	if len(p) == 0 {
		return "<root>"
	}
	var sb strings.Builder
	for i, segment := range p {
		if i > 0 && !isIndexSegment(segment) {
			sb.WriteByte('.')
		}
		sb.WriteString(segment)
	}
	return sb.String()
}

// Location returns the dotted field location used by ignore rules and field
// comparators. Index segments are dropped so a rule on "friends.name" applies
// to every element of friends.
func (p Path) Location() string {
	fields := make([]string, 0, len(p))
	for _, segment := range p {
		if !isIndexSegment(segment) {
			fields = append(fields, segment)
		}
	}
	return strings.Join(fields, ".")
}

func isIndexSegment(segment string) bool {
	if len(segment) < 3 || segment[0] != '[' || segment[len(segment)-1] != ']' {
		return false
	}
	_, err := strconv.Atoi(segment[1 : len(segment)-1])
	return err == nil
}

// Difference is one leaf-level mismatch found by Compare.
type Difference struct {
	Path                  Path
	Actual                any
	Other                 any
	AdditionalInformation string
}

func (d Difference) String() string {
	s := fmt.Sprintf("field/property '%s' differ: actual value: %v, expected value: %v", d.Path, d.Actual, d.Other)
	if d.AdditionalInformation != "" {
		s += " (" + d.AdditionalInformation + ")"
	}
	return s
}
