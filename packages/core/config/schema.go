package config

import (
	_ "embed"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

//go:embed schema.json
var schemaJSON []byte

var profileSchema = gojsonschema.NewBytesLoader(schemaJSON)

// ValidationError lists every schema violation found in a profile.
type ValidationError struct {
	Source   string
	Problems []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid config %s: %s", e.Source, strings.Join(e.Problems, "; "))
}

// Validate checks a decoded profile document against the profile schema.
func Validate(document any, source string) error {
	result, err := gojsonschema.Validate(profileSchema, gojsonschema.NewGoLoader(document))
	if err != nil {
		return fmt.Errorf("validating config %s: %w", source, err)
	}
	if result.Valid() {
		return nil
	}

	problems := make([]string, 0, len(result.Errors()))
	for _, desc := range result.Errors() {
		problems = append(problems, desc.String())
	}
	return &ValidationError{Source: source, Problems: problems}
}

// Schema returns the JSON schema profiles are validated against.
func Schema() []byte {
	out := make([]byte, len(schemaJSON))
	copy(out, schemaJSON)
	return out
}
