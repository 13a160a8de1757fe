package parser

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Format identifies how a document is encoded on disk.
type Format int

const (
	FormatJSON Format = iota
	FormatYAML
)

func (f Format) String() string {
	switch f {
	case FormatJSON:
		return "json"
	case FormatYAML:
		return "yaml"
	default:
		return "unknown"
	}
}

// FormatFor picks the format from a file extension. Anything that is not
// .yaml or .yml is read as JSON.
func FormatFor(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// Suite is a manifest of document comparisons, usually stored as a
// *.structeq.yaml file next to the documents it references. Document paths,
// select paths and ignore rules may reference {{variables}}.
type Suite struct {
	Path        string            `yaml:"-"`
	Name        string            `yaml:"name,omitempty"`
	Variables   map[string]string `yaml:"variables,omitempty"`
	Comparisons []*Case           `yaml:"comparisons"`
}

// Case is one comparison of an actual document against an expected one.
// Documents are given either as file paths, resolved relative to the suite,
// or inline through ActualValue and ExpectedValue.
type Case struct {
	Name          string   `yaml:"name"`
	Description   string   `yaml:"description,omitempty"`
	Actual        string   `yaml:"actual,omitempty"`
	Expected      string   `yaml:"expected,omitempty"`
	ActualValue   any      `yaml:"actualValue,omitempty"`
	ExpectedValue any      `yaml:"expectedValue,omitempty"`
	Select        string   `yaml:"select,omitempty"`
	IgnoreFields  []string `yaml:"ignoreFields,omitempty"`
	IgnoreRegexes []string `yaml:"ignoreFieldsMatching,omitempty"`
	IgnoreNil     bool     `yaml:"ignoreAllActualNilFields,omitempty"`
	StrictTypes   bool     `yaml:"strictTypeChecking,omitempty"`
	Skip          string   `yaml:"skip,omitempty"`
	Only          bool     `yaml:"only,omitempty"`
	Tags          []string `yaml:"tags,omitempty"`
	Line          int      `yaml:"-"`
}

// HasTag reports whether the case carries any of the given tags.
func (c *Case) HasTag(tags ...string) bool {
	for _, want := range tags {
		for _, have := range c.Tags {
			if strings.EqualFold(strings.TrimSpace(want), have) {
				return true
			}
		}
	}
	return false
}

type ParseError struct {
	File    string
	Line    int
	Column  int
	Message string
}

func (e *ParseError) Error() string {
	if e.File != "" {
		return fmt.Sprintf("%s:%d:%d: %s", e.File, e.Line, e.Column, e.Message)
	}
	return fmt.Sprintf("line %d: %s", e.Line, e.Message)
}
