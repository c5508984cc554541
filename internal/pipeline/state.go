package pipeline

// State is the explicit state container for one listing index: base
// collection, filter/sort/pagination state, and the filtered view.
// Every transition re-establishes the pagination invariant, so a stale
// page number pointing past the filtered page count is unreachable:
// filter transitions reset the page to 1, page transitions clamp.
type State[T any] struct {
	cfg Config[T]

	records  []T
	filtered []T

	search   string
	filters  map[string]string
	sortKey  string
	sortDesc bool
	page     int
	pageSize int
}

// Page is the paginated view of the current filtered collection.
type Page[T any] struct {
	Items      []T
	Pagination Pagination
}

// NewState builds an empty state for the given pipeline config.
func NewState[T any](cfg Config[T]) *State[T] {
	return &State[T]{
		cfg:      cfg,
		filters:  make(map[string]string),
		page:     1,
		pageSize: cfg.PageSize,
	}
}

// DataLoaded replaces the base collection and re-runs the filter
// stage. The page resets to 1.
func (s *State[T]) DataLoaded(records []T) {
	s.records = records
	s.refilter()
}

// SetSearch updates the free-text search term, refilters, and resets
// the page to 1.
func (s *State[T]) SetSearch(term string) {
	s.search = term
	s.refilter()
}

// SetFilter updates one categorical filter, refilters, and resets the
// page to 1. The FilterAll sentinel disables the filter.
func (s *State[T]) SetFilter(name, value string) {
	s.filters[name] = value
	s.refilter()
}

// SetSort sets the sort key and direction and re-sorts the filtered
// collection. Unknown keys clear the sort. The page is clamped, not
// reset: sorting reorders the same collection.
func (s *State[T]) SetSort(key string, desc bool) {
	s.sortKey = key
	s.sortDesc = desc
	s.resort()
	s.page = ClampPage(s.page, TotalPages(len(s.filtered), s.pageSize))
}

// ToggleSort applies sort-header click semantics: same key flips the
// direction, a new key sorts descending.
func (s *State[T]) ToggleSort(key string) {
	s.SetSort(key, ToggleDirection(s.sortKey, s.sortDesc, key))
}

// SetPage navigates to a page, clamping into [1, totalPages].
func (s *State[T]) SetPage(page int) {
	s.page = ClampPage(page, TotalPages(len(s.filtered), s.pageSize))
}

// SetPageSize changes the page size within the configured bounds and
// clamps the page. A zero MaxPageSize means the size is fixed and the
// call is a no-op.
func (s *State[T]) SetPageSize(size int) {
	if s.cfg.MaxPageSize == 0 {
		return
	}
	if size < 1 {
		size = s.cfg.PageSize
	}
	if size > s.cfg.MaxPageSize {
		size = s.cfg.MaxPageSize
	}
	s.pageSize = size
	s.page = ClampPage(s.page, TotalPages(len(s.filtered), s.pageSize))
}

// CurrentPage returns the paginated view of the filtered collection.
func (s *State[T]) CurrentPage() Page[T] {
	items, pg := Paginate(s.filtered, s.page, s.pageSize)
	return Page[T]{Items: items, Pagination: pg}
}

// Filtered returns the whole filtered (and sorted) collection.
func (s *State[T]) Filtered() []T {
	return s.filtered
}

func (s *State[T]) refilter() {
	s.filtered = Filter(s.records, s.cfg, s.search, s.filters)
	s.resort()
	s.page = 1
}

func (s *State[T]) resort() {
	if s.sortKey == "" {
		return
	}
	value, ok := s.cfg.SortFields[s.sortKey]
	if !ok {
		return
	}
	SortBy(s.filtered, value, s.sortDesc)
}
