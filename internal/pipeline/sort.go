package pipeline

import "sort"

// SortBy reorders records in place by the numeric accessor. Accessors
// return 0 for records whose value is missing (e.g. market data still
// loading), so such records sink to the bottom of a descending sort.
// Ties are broken arbitrarily.
func SortBy[T any](records []T, value func(T) float64, desc bool) {
	sort.Slice(records, func(i, j int) bool {
		if desc {
			return value(records[i]) > value(records[j])
		}
		return value(records[i]) < value(records[j])
	})
}

// ToggleDirection resolves the direction for a sort-header click:
// clicking the currently-sorted key flips the direction, clicking a
// different key defaults to descending.
func ToggleDirection(currentKey string, currentDesc bool, clickedKey string) bool {
	if clickedKey == currentKey {
		return !currentDesc
	}
	return true
}
