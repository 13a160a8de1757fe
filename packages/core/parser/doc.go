// Package parser loads the documents structeq compares.
//
// Documents are JSON or YAML files decoded into generic Go values: objects
// become map[string]any, arrays []any and every number float64, so that a
// JSON document and its YAML twin compare equal.
//
// The package also reads suite manifests, YAML files listing named
// comparisons between pairs of documents, and selects sub-documents with
// gjson paths such as "data.users[0].address".
package parser
