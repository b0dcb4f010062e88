// Package slices provides generic helpers that complement the standard
// library's slices package.
package slices

// Filter returns a new slice containing only the elements where f returns true.
// The result is never nil.
func Filter[T any](src []T, f func(T) bool) []T {
	result := make([]T, 0, len(src))
	for _, v := range src {
		if f(v) {
			result = append(result, v)
		}
	}
	return result
}

// Map returns a new slice with f applied to each element.
func Map[T, U any](src []T, f func(T) U) []U {
	result := make([]U, len(src))
	for i, v := range src {
		result[i] = f(v)
	}
	return result
}

// Head returns at most the first n elements of src.
func Head[T any](src []T, n int) []T {
	if n <= 0 {
		return src[:0]
	}
	return src[:min(n, len(src))]
}
