// Package runner executes structeq suites.
//
// A suite lists comparisons between pairs of JSON or YAML documents. The
// runner loads each pair, layers the case's own ignore rules over the
// active profile and compares the documents with the recursive comparator.
// Cases may be skipped, focused with only, filtered by name or tag, and run
// in parallel with a bounded number of workers.
package runner
