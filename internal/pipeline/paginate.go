package pipeline

// Ellipsis is the non-interactive placeholder in a page-number list.
const Ellipsis = "..."

// Pagination describes one page of a filtered collection. PageNumbers
// mixes ints and the "..." placeholder exactly as the UI renders them.
type Pagination struct {
	Page        int           `json:"page"`
	PageSize    int           `json:"page_size"`
	TotalItems  int           `json:"total_items"`
	TotalPages  int           `json:"total_pages"`
	PageNumbers []interface{} `json:"page_numbers"`
	HasPrev     bool          `json:"has_prev"`
	HasNext     bool          `json:"has_next"`
}

// ClampPage forces page into [1, totalPages]. Out-of-range navigation
// clamps rather than errors.
func ClampPage(page, totalPages int) int {
	if page < 1 {
		return 1
	}
	if page > totalPages {
		return totalPages
	}
	return page
}

// TotalPages is max(1, ceil(n/size)); an empty collection still has
// one (empty) page.
func TotalPages(n, size int) int {
	if n <= 0 {
		return 1
	}
	pages := (n + size - 1) / size
	if pages < 1 {
		return 1
	}
	return pages
}

// Paginate slices records into the requested page, clamping the page
// into range first.
func Paginate[T any](records []T, page, size int) ([]T, Pagination) {
	totalPages := TotalPages(len(records), size)
	page = ClampPage(page, totalPages)

	start := (page - 1) * size
	end := start + size
	if start > len(records) {
		start = len(records)
	}
	if end > len(records) {
		end = len(records)
	}

	return records[start:end], Pagination{
		Page:        page,
		PageSize:    size,
		TotalItems:  len(records),
		TotalPages:  totalPages,
		PageNumbers: PageNumbers(totalPages, page),
		HasPrev:     page > 1,
		HasNext:     page < totalPages,
	}
}

// PageNumbers builds the navigable page-number list with ellipsis
// compression. Up to five pages are listed in full; beyond that a
// window around the current page is shown with "..." placeholders:
//
//	page <= 3:            [1 2 3 4 ... N]
//	page >= N-2:          [1 ... N-3 N-2 N-1 N]
//	otherwise:            [1 ... p-1 p p+1 ... N]
func PageNumbers(totalPages, page int) []interface{} {
	if totalPages <= 5 {
		nums := make([]interface{}, 0, totalPages)
		for i := 1; i <= totalPages; i++ {
			nums = append(nums, i)
		}
		return nums
	}
	switch {
	case page <= 3:
		return []interface{}{1, 2, 3, 4, Ellipsis, totalPages}
	case page >= totalPages-2:
		return []interface{}{1, Ellipsis, totalPages - 3, totalPages - 2, totalPages - 1, totalPages}
	default:
		return []interface{}{1, Ellipsis, page - 1, page, page + 1, Ellipsis, totalPages}
	}
}
