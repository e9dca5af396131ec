package util

// Filter returns the items matching p without touching the backing array of s, so shared slices stay intact
func Filter[T any](s []T, p func(T) bool) []T {
	var filtered []T

	for _, e := range s {
		if p(e) {
			filtered = append(filtered, e)
		}
	}

	return filtered
}
