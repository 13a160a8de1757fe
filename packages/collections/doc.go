// Package collections provides set and map containers that carry an explicit
// container category.
//
// Categories:
//   - Hash: no defined iteration order (Go maps, HashSet)
//   - InsertionOrdered: iteration follows insertion order (LinkedSet, LinkedMap)
//   - Sorted: iteration follows a comparison function (SortedSet, SortedMap)
//
// The recursive comparator treats the category as part of the structural
// contract: two sets holding the same elements but of different categories
// are reported as different.
package collections
