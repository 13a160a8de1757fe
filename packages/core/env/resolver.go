package env

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"strings"
	"sync"
)

var variablePattern = regexp.MustCompile(`\{\{([^}]+)\}\}`)

// ErrUnresolved is returned by ResolveStrict when a reference has no value.
var ErrUnresolved = errors.New("unresolved variable")

// Resolver substitutes {{name}} and {{$ENV_NAME}} references.
type Resolver struct {
	mu        sync.RWMutex
	variables map[string]string
}

func NewResolver(vars map[string]string) *Resolver {
	r := &Resolver{variables: make(map[string]string, len(vars))}
	for k, v := range vars {
		r.variables[k] = v
	}
	return r
}

func (r *Resolver) SetVariable(name, value string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.variables[name] = value
}

func (r *Resolver) GetVariable(name string) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	v, ok := r.variables[name]
	return v, ok
}

func (r *Resolver) lookup(expr string) (string, bool) {
	if name, ok := strings.CutPrefix(expr, "$"); ok {
		val := os.Getenv(name)
		return val, val != ""
	}
	return r.GetVariable(expr)
}

// Resolve replaces every reference it can and leaves the rest untouched.
func (r *Resolver) Resolve(input string) string {
	return variablePattern.ReplaceAllStringFunc(input, func(match string) string {
		if val, ok := r.lookup(strings.TrimSpace(match[2 : len(match)-2])); ok {
			return val
		}
		return match
	})
}

// ResolveStrict is Resolve that fails when any reference stays unresolved.
func (r *Resolver) ResolveStrict(input string) (string, error) {
	if missing := r.Unresolved(input); len(missing) > 0 {
		return "", fmt.Errorf("%w: %s", ErrUnresolved, strings.Join(missing, ", "))
	}
	return r.Resolve(input), nil
}

// Unresolved lists the references in input that have no value, once each.
func (r *Resolver) Unresolved(input string) []string {
	var missing []string
	seen := make(map[string]bool)
	for _, m := range variablePattern.FindAllStringSubmatch(input, -1) {
		expr := strings.TrimSpace(m[1])
		if _, ok := r.lookup(expr); ok || seen[expr] {
			continue
		}
		seen[expr] = true
		missing = append(missing, expr)
	}
	return missing
}

func (r *Resolver) HasUnresolvedVariables(input string) bool {
	return len(r.Unresolved(input)) > 0
}
