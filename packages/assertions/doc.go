// Package assertions provides leaf predicates over in-memory values.
//
// Supported assertions:
//   - Numbers: closeness by offset or percentage, ranges
//   - Iterables: exact, unordered, only, once, sequence and subsequence containment
//   - Maps: key presence and entries
//   - Objects: nil fields, type, string form, field subsets and JSON schemas
//
// Element and value equality is delegated to a ComparisonStrategy, so the same
// predicate can compare case-insensitively or recursively field by field.
package assertions
