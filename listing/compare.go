package listing

import "cmp"

// Ascending builds a comparator ordering items by field, smallest first
func Ascending[T any, N cmp.Ordered](field func(T) N) func(a, b T) int {
	return func(a, b T) int {
		return cmp.Compare(field(a), field(b))
	}
}

// Descending builds a comparator ordering items by field, largest first
func Descending[T any, N cmp.Ordered](field func(T) N) func(a, b T) int {
	return func(a, b T) int {
		return cmp.Compare(field(b), field(a))
	}
}
