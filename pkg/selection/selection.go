// Package selection extracts the value belonging to one entity from a collection
// computed for every entity.
//
// Pick is the production path. Blend is the equality-gated scan kept as a
// reference: it only uses elementwise comparisons and a reduction, and must
// always agree with Pick.
package selection

// Pick returns values[i], or def when i is out of range.
func Pick[T any](values []T, i int, def T) T {
	if i < 0 || i >= len(values) {
		return def
	}
	return values[i]
}

// Blend scans every candidate and keeps the one whose index equals i.
// O(len(values)) per call.
func Blend[T any](values []T, i int, def T) T {
	acc := def
	for k, v := range values {
		if k == i {
			acc = v
		}
	}
	return acc
}

// Gather samples f for every index in 0..n-1, stopping at the first error.
func Gather[T any](n int, f func(i int) (T, error)) ([]T, error) {
	out := make([]T, n)
	for i := range out {
		v, err := f(i)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}
