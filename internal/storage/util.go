package storage

// filter returns the elements of a slice for which the condition is true.
func filter[T any](slice []T, condition func(T) bool) []T {
	var filtered []T
	for _, element := range slice {
		if condition(element) {
			filtered = append(filtered, element)
		}
	}
	return filtered
}
