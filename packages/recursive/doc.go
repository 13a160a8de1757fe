// Package recursive compares two object graphs field by field.
//
// Compare walks actual and expected in lock-step and records every leaf-level
// mismatch as a Difference carrying the field path from the root. The walk:
//   - skips fields matched by ignore rules (exact path, regex, actual-side nil)
//   - defers to comparators registered for a field path or a type
//   - honors Equal methods (func (T) Equal(T) bool) unless suppressed
//   - compares slices and arrays by index, sets by matching elements and maps
//     key by key; the container category (hash, insertion-ordered, sorted) is
//     part of the comparison
//   - descends into structs, including unexported and promoted fields
//   - detects cycles through pointers, maps and slices
//
// Structural incompatibility (a field of actual missing from the expected
// type) is returned as a *MissingFieldsError rather than a difference.
package recursive
