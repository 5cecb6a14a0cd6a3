// Package collection holds the ordered-collection operations shared by the
// embedded lists inside aggregates (profile experience/education, post
// likes/comments). Display convention across the app is most-recent-first, so
// inserts always go to the front.
package collection

// Prepend inserts entry at the front of items.
func Prepend[T any](items []T, entry T) []T {
	out := make([]T, 0, len(items)+1)
	out = append(out, entry)
	return append(out, items...)
}

// RemoveFirst removes the first element for which match returns true,
// preserving the relative order of the remainder. The second return value
// reports whether anything was removed; callers decide whether a miss is an
// error or a benign no-op.
func RemoveFirst[T any](items []T, match func(T) bool) ([]T, bool) {
	for i := range items {
		if match(items[i]) {
			out := make([]T, 0, len(items)-1)
			out = append(out, items[:i]...)
			return append(out, items[i+1:]...), true
		}
	}
	return items, false
}

// FindFirst returns the first element for which match returns true.
func FindFirst[T any](items []T, match func(T) bool) (T, bool) {
	for i := range items {
		if match(items[i]) {
			return items[i], true
		}
	}
	var zero T
	return zero, false
}

// ContainsFunc reports whether any element matches.
func ContainsFunc[T any](items []T, match func(T) bool) bool {
	_, ok := FindFirst(items, match)
	return ok
}
