// Package idset holds helpers for the relationship id sets carried by the aggregates.
package idset

import "slices"

// Normalize returns the distinct ids of in, ascending. The result is never nil.
func Normalize(in []int64) []int64 {
	out := make([]int64, len(in))
	copy(out, in)
	slices.Sort(out)
	return slices.Compact(out)
}

// Difference returns the ids of a that are not in b, ascending and distinct.
func Difference(a, b []int64) []int64 {
	exclude := make(map[int64]struct{}, len(b))
	for _, id := range b {
		exclude[id] = struct{}{}
	}
	out := make([]int64, 0)
	for _, id := range Normalize(a) {
		if _, ok := exclude[id]; !ok {
			out = append(out, id)
		}
	}
	return out
}
