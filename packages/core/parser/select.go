package parser

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/tidwall/gjson"
)

var ErrNoMatch = errors.New("path matched nothing")

var bracketIndex = regexp.MustCompile(`\[(\d+)\]`)

// convertBracketNotation converts array bracket notation to gjson dot notation
// e.g., "[0].id" -> "0.id", "items[0].tags[1]" -> "items.0.tags.1"
func convertBracketNotation(path string) string {
	result := bracketIndex.ReplaceAllString(path, ".$1")
	return strings.TrimPrefix(result, ".")
}

// Select returns the part of doc addressed by a gjson path. Bracket indexes
// are accepted alongside gjson's own syntax, so "users[0].name" and
// "users.0.name" are the same path. An empty path selects the whole document.
func Select(doc any, path string) (any, error) {
	if strings.TrimSpace(path) == "" {
		return doc, nil
	}

	data, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("encoding document: %w", err)
	}

	result := gjson.GetBytes(data, convertBracketNotation(path))
	if !result.Exists() {
		return nil, fmt.Errorf("%w: %s", ErrNoMatch, path)
	}
	return result.Value(), nil
}
