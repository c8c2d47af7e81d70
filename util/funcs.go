package util

import (
	"iter"
	"slices"
)

// Reverse yields the elements of slice from last to first.
func Reverse[A any](slice []A) iter.Seq[A] {
	return func(yield func(A) bool) {
		for i := len(slice) - 1; i >= 0; i-- {
			if !yield(slice[i]) {
				return
			}
		}
	}
}

// Reversed returns a reversed copy of slice
func Reversed[A any](slice []A) []A {
	reversed := slices.Clone(slice)
	slices.Reverse(reversed)
	return reversed
}
