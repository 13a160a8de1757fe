package parser

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/abdul-hamid-achik/structeq/packages/core/env"
	"gopkg.in/yaml.v3"
)

var ErrEmptyDocument = errors.New("empty document")

// ParseFile reads a JSON or YAML document, choosing the decoder from the
// file extension.
func ParseFile(path string) (any, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	doc, err := Parse(content, FormatFor(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}

func Parse(data []byte, format Format) (any, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, ErrEmptyDocument
	}

	var doc any
	switch format {
	case FormatYAML:
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("parsing yaml: %w", err)
		}
	default:
		if err := json.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("parsing json: %w", err)
		}
	}
	return Normalize(doc), nil
}

// Normalize rewrites a decoded value into the shapes encoding/json produces:
// string-keyed maps, []any slices and float64 numbers.
func Normalize(v any) any {
	switch v := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(v))
		for k, e := range v {
			out[k] = Normalize(e)
		}
		return out
	case map[any]any:
		out := make(map[string]any, len(v))
		for k, e := range v {
			out[fmt.Sprint(k)] = Normalize(e)
		}
		return out
	case []any:
		out := make([]any, len(v))
		for i, e := range v {
			out[i] = Normalize(e)
		}
		return out
	case int:
		return float64(v)
	case int64:
		return float64(v)
	case uint64:
		return float64(v)
	case float32:
		return float64(v)
	default:
		return v
	}
}

func ParseSuite(path string) (*Suite, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseSuiteBytes(content, path)
}

// ParseSuiteBytes decodes a suite manifest. Unknown keys are rejected so a
// misspelt ignore rule does not silently widen a comparison.
func ParseSuiteBytes(data []byte, path string) (*Suite, error) {
	suite := &Suite{Path: path}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, &ParseError{File: path, Line: 1, Column: 1, Message: "no comparisons defined"}
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(suite); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	suite.Path = path

	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	positions := comparisonNodes(&root)

	if len(suite.Comparisons) == 0 {
		return nil, &ParseError{File: path, Line: 1, Column: 1, Message: "no comparisons defined"}
	}

	dir := ""
	if path != "" {
		dir = filepath.Dir(path)
	}
	vars, err := env.LoadVariables(dir, suite.Variables)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	resolver := env.NewResolver(vars)

	seen := make(map[string]int, len(suite.Comparisons))
	for i, c := range suite.Comparisons {
		if c == nil {
			c = &Case{}
			suite.Comparisons[i] = c
		}
		column := 0
		if i < len(positions) {
			c.Line = positions[i].Line
			column = positions[i].Column
		}
		if c.Name == "" {
			c.Name = fmt.Sprintf("comparison %d", i+1)
		}
		c.ActualValue = Normalize(c.ActualValue)
		c.ExpectedValue = Normalize(c.ExpectedValue)

		if err := c.expand(resolver); err != nil {
			return nil, &ParseError{File: path, Line: c.Line, Column: column, Message: fmt.Sprintf("comparison %q: %v", c.Name, err)}
		}

		if msg := c.validate(); msg != "" {
			return nil, &ParseError{File: path, Line: c.Line, Column: column, Message: msg}
		}
		if first, dup := seen[c.Name]; dup {
			return nil, &ParseError{
				File:    path,
				Line:    c.Line,
				Column:  column,
				Message: fmt.Sprintf("duplicate comparison name %q (first defined on line %d)", c.Name, first),
			}
		}
		seen[c.Name] = c.Line
	}

	return suite, nil
}

func (c *Case) validate() string {
	switch {
	case c.Actual == "" && c.ActualValue == nil:
		return fmt.Sprintf("comparison %q: missing actual document", c.Name)
	case c.Actual != "" && c.ActualValue != nil:
		return fmt.Sprintf("comparison %q: sets both actual and actualValue", c.Name)
	case c.Expected == "" && c.ExpectedValue == nil:
		return fmt.Sprintf("comparison %q: missing expected document", c.Name)
	case c.Expected != "" && c.ExpectedValue != nil:
		return fmt.Sprintf("comparison %q: sets both expected and expectedValue", c.Name)
	}
	return ""
}

// expand substitutes variables in the string settings of a case. Inline
// documents are left as written.
func (c *Case) expand(r *env.Resolver) error {
	var err error
	for _, field := range []*string{&c.Actual, &c.Expected, &c.Select} {
		if *field, err = r.ResolveStrict(*field); err != nil {
			return err
		}
	}
	for _, list := range [][]string{c.IgnoreFields, c.IgnoreRegexes} {
		for i := range list {
			if list[i], err = r.ResolveStrict(list[i]); err != nil {
				return err
			}
		}
	}
	return nil
}

func comparisonNodes(root *yaml.Node) []*yaml.Node {
	node := root
	if node.Kind == yaml.DocumentNode && len(node.Content) > 0 {
		node = node.Content[0]
	}
	if node.Kind != yaml.MappingNode {
		return nil
	}
	for i := 0; i+1 < len(node.Content); i += 2 {
		if node.Content[i].Value == "comparisons" && node.Content[i+1].Kind == yaml.SequenceNode {
			return node.Content[i+1].Content
		}
	}
	return nil
}

// Resolve turns a document reference into a path relative to the suite file.
func (s *Suite) Resolve(ref string) string {
	if filepath.IsAbs(ref) || s.Path == "" {
		return ref
	}
	return filepath.Join(filepath.Dir(s.Path), ref)
}

// Load returns the actual and expected documents of a case with its select
// path applied to both.
func (s *Suite) Load(c *Case) (actual, expected any, err error) {
	actual, err = s.document(c.Actual, c.ActualValue)
	if err != nil {
		return nil, nil, fmt.Errorf("loading actual: %w", err)
	}
	expected, err = s.document(c.Expected, c.ExpectedValue)
	if err != nil {
		return nil, nil, fmt.Errorf("loading expected: %w", err)
	}
	if c.Select == "" {
		return actual, expected, nil
	}

	if actual, err = Select(actual, c.Select); err != nil {
		return nil, nil, fmt.Errorf("selecting from actual: %w", err)
	}
	if expected, err = Select(expected, c.Select); err != nil {
		return nil, nil, fmt.Errorf("selecting from expected: %w", err)
	}
	return actual, expected, nil
}

func (s *Suite) document(ref string, inline any) (any, error) {
	if ref == "" {
		return inline, nil
	}
	return ParseFile(s.Resolve(ref))
}
