package pipeline

import "strings"

// FilterAll is the sentinel value that disables a categorical filter.
const FilterAll = "all"

// Config parameterizes one pipeline instance for a record type:
// which string fields the free-text search scans, which fields the
// categorical filters test, which numeric fields are sortable, and
// the page-size policy.
type Config[T any] struct {
	// SearchFields are the accessors the free-text search is OR'd across.
	SearchFields []func(T) string
	// Categorical maps a filter name (e.g. "status", "network") to the
	// accessor it is equality-tested against.
	Categorical map[string]func(T) string
	// SortFields maps a sort key to its numeric accessor. Empty for
	// pages without a sort stage.
	SortFields map[string]func(T) float64
	// PageSize is the default page size. MaxPageSize, when non-zero,
	// allows callers to pick a size in [1, MaxPageSize]; when zero the
	// page size is fixed.
	PageSize    int
	MaxPageSize int
}

// Filter applies the free-text search and the categorical filters,
// preserving input order. Search is a case-insensitive substring match
// OR'd across the configured search fields. Categorical filters are
// AND'd together; an empty value or the "all" sentinel skips that
// filter.
func Filter[T any](records []T, cfg Config[T], search string, filters map[string]string) []T {
	search = strings.ToLower(strings.TrimSpace(search))

	out := make([]T, 0, len(records))
	for _, r := range records {
		if search != "" && !matchesSearch(r, cfg.SearchFields, search) {
			continue
		}
		if !matchesFilters(r, cfg.Categorical, filters) {
			continue
		}
		out = append(out, r)
	}
	return out
}

func matchesSearch[T any](r T, fields []func(T) string, search string) bool {
	for _, field := range fields {
		if strings.Contains(strings.ToLower(field(r)), search) {
			return true
		}
	}
	return false
}

func matchesFilters[T any](r T, accessors map[string]func(T) string, filters map[string]string) bool {
	for name, want := range filters {
		if want == "" || want == FilterAll {
			continue
		}
		accessor, ok := accessors[name]
		if !ok {
			continue
		}
		if accessor(r) != want {
			return false
		}
	}
	return true
}
