package assertions

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"slices"
	"strings"

	"github.com/abdul-hamid-achik/structeq/packages/collections"
	"github.com/xeipuuv/gojsonschema"
)

var (
	ErrNotNumber      = errors.New("value is not a number")
	ErrNotIterable    = errors.New("value is not a slice, array or set")
	ErrNotMap         = errors.New("value is not a map")
	ErrNotStruct      = errors.New("value is not a struct")
	ErrNegativeOffset = errors.New("offset must not be negative")
	ErrInvalidRange   = errors.New("range start must not be greater than range end")
	ErrUnknownField   = errors.New("unknown field")
)

// Result is the outcome of one predicate. Err is set when the predicate
// could not be evaluated at all, in which case Passed is false.
type Result struct {
	Passed   bool
	Message  string
	Expected any
	Actual   any
	Subject  string
	Operator string
	Err      error
}

func (r *Result) pass() *Result {
	r.Passed = true
	return r
}

func (r *Result) fail(format string, args ...any) *Result {
	r.Passed = false
	r.Message = fmt.Sprintf(format, args...)
	return r
}

func (r *Result) abort(err error) *Result {
	r.Passed = false
	r.Err = err
	r.Message = err.Error()
	return r
}

type Evaluator struct {
	strategy ComparisonStrategy
	subject  string
	baseDir  string // Base directory for resolving schema file paths
}

// EvaluatorOption is a functional option for configuring an Evaluator.
type EvaluatorOption func(*Evaluator)

// WithStrategy sets the equality used between elements, keys and values.
func WithStrategy(s ComparisonStrategy) EvaluatorOption {
	return func(e *Evaluator) {
		if s != nil {
			e.strategy = s
		}
	}
}

// WithSubject names the value under test in every Result.
func WithSubject(subject string) EvaluatorOption {
	return func(e *Evaluator) {
		e.subject = subject
	}
}

// WithBaseDir sets the directory schema paths are resolved against.
func WithBaseDir(dir string) EvaluatorOption {
	return func(e *Evaluator) {
		e.baseDir = dir
	}
}

func NewEvaluator(opts ...EvaluatorOption) *Evaluator {
	e := &Evaluator{strategy: StandardComparisonStrategy{}}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Strategy returns the comparison strategy in use.
func (e *Evaluator) Strategy() ComparisonStrategy {
	return e.strategy
}

func (e *Evaluator) newResult(op string, actual, expected any) *Result {
	return &Result{
		Subject:  e.subject,
		Operator: op,
		Actual:   actual,
		Expected: expected,
	}
}

func (e *Evaluator) equals(actual, expected any) bool {
	return e.strategy.AreEqual(actual, expected)
}

func (e *Evaluator) indexOf(values []any, v any) int {
	return slices.IndexFunc(values, func(candidate any) bool { return e.equals(candidate, v) })
}

func (e *Evaluator) contains(values []any, v any) bool {
	return e.indexOf(values, v) >= 0
}

// elementsOf lists the elements of a slice, an array or a collections.Set.
func elementsOf(v any) ([]any, bool) {
	if s, ok := v.(collections.Set); ok {
		return s.Values(), true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		out := make([]any, rv.Len())
		for i := range out {
			out[i] = rv.Index(i).Interface()
		}
		return out, true
	default:
		return nil, false
	}
}

func isNilValue(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Interface, reflect.Func, reflect.Chan:
		return rv.IsNil()
	default:
		return false
	}
}

// validatePathWithinBase checks that the resolved path stays within the base directory
// to prevent path traversal attacks
func validatePathWithinBase(path, baseDir string) error {
	if baseDir == "" {
		return nil
	}

	cleanBase, err := filepath.Abs(baseDir)
	if err != nil {
		return fmt.Errorf("failed to resolve base directory: %w", err)
	}

	cleanPath, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("failed to resolve path: %w", err)
	}

	if !strings.HasPrefix(cleanPath, cleanBase+string(filepath.Separator)) && cleanPath != cleanBase {
		return fmt.Errorf("path traversal detected: %s is outside allowed directory %s", path, baseDir)
	}

	return nil
}

// MatchesSchema validates actual, marshalled to JSON, against the JSON schema
// stored at schemaPath.
func (e *Evaluator) MatchesSchema(actual any, schemaPath string) *Result {
	r := e.newResult("matchesSchema", actual, schemaPath)

	if !filepath.IsAbs(schemaPath) && e.baseDir != "" {
		schemaPath = filepath.Join(e.baseDir, schemaPath)
	}
	if err := validatePathWithinBase(schemaPath, e.baseDir); err != nil {
		return r.abort(err)
	}

	schemaData, err := os.ReadFile(schemaPath)
	if err != nil {
		return r.abort(fmt.Errorf("failed to read schema file: %w", err))
	}

	actualJSON, err := json.Marshal(actual)
	if err != nil {
		return r.abort(fmt.Errorf("failed to marshal actual value: %w", err))
	}

	result, err := gojsonschema.Validate(gojsonschema.NewBytesLoader(schemaData), gojsonschema.NewBytesLoader(actualJSON))
	if err != nil {
		return r.abort(fmt.Errorf("schema validation error: %w", err))
	}
	if result.Valid() {
		return r.pass()
	}

	var problems []string
	for _, desc := range result.Errors() {
		problems = append(problems, desc.String())
	}
	return r.fail("schema validation failed: %s", strings.Join(problems, "; "))
}
