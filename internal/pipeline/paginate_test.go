package pipeline

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func numberedRecords(n int) []fakeRecord {
	out := make([]fakeRecord, n)
	for i := range out {
		out[i] = fakeRecord{Name: fmt.Sprintf("record-%d", i+1)}
	}
	return out
}

func TestTotalPages(t *testing.T) {
	assert.Equal(t, 1, TotalPages(0, 15))
	assert.Equal(t, 1, TotalPages(1, 15))
	assert.Equal(t, 1, TotalPages(15, 15))
	assert.Equal(t, 2, TotalPages(16, 15))
	assert.Equal(t, 3, TotalPages(37, 15))
}

func TestPaginate_SliceBounds(t *testing.T) {
	records := numberedRecords(37)

	page1, pg := Paginate(records, 1, 15)
	assert.Len(t, page1, 15)
	assert.Equal(t, "record-1", page1[0].Name)
	assert.Equal(t, 3, pg.TotalPages)
	assert.Equal(t, 37, pg.TotalItems)
	assert.False(t, pg.HasPrev)
	assert.True(t, pg.HasNext)

	page3, pg := Paginate(records, 3, 15)
	assert.Len(t, page3, 7)
	assert.Equal(t, "record-31", page3[0].Name)
	assert.True(t, pg.HasPrev)
	assert.False(t, pg.HasNext)
}

// Out-of-range navigation clamps, never errors or wraps.
func TestPaginate_ClampsOutOfRange(t *testing.T) {
	records := numberedRecords(37)

	_, pg := Paginate(records, 4, 15)
	assert.Equal(t, 3, pg.Page)
	assert.False(t, pg.HasNext)

	_, pg = Paginate(records, 0, 15)
	assert.Equal(t, 1, pg.Page)

	_, pg = Paginate(records, -3, 15)
	assert.Equal(t, 1, pg.Page)
}

func TestPaginate_EmptyCollection(t *testing.T) {
	items, pg := Paginate([]fakeRecord{}, 1, 15)
	assert.Empty(t, items)
	assert.Equal(t, 1, pg.TotalPages)
	assert.Equal(t, 1, pg.Page)
	assert.False(t, pg.HasPrev)
	assert.False(t, pg.HasNext)
}

func TestPageNumbers_ShortList(t *testing.T) {
	assert.Equal(t, []interface{}{1, 2, 3}, PageNumbers(3, 1))
	assert.Equal(t, []interface{}{1, 2, 3, 4, 5}, PageNumbers(5, 4))
}

func TestPageNumbers_HeadWindow(t *testing.T) {
	want := []interface{}{1, 2, 3, 4, Ellipsis, 10}
	assert.Equal(t, want, PageNumbers(10, 1))
	assert.Equal(t, want, PageNumbers(10, 2))
	assert.Equal(t, want, PageNumbers(10, 3))
}

func TestPageNumbers_TailWindow(t *testing.T) {
	want := []interface{}{1, Ellipsis, 7, 8, 9, 10}
	assert.Equal(t, want, PageNumbers(10, 8))
	assert.Equal(t, want, PageNumbers(10, 9))
	assert.Equal(t, want, PageNumbers(10, 10))
}

func TestPageNumbers_MiddleWindow(t *testing.T) {
	assert.Equal(t, []interface{}{1, Ellipsis, 4, 5, 6, Ellipsis, 10}, PageNumbers(10, 5))
}

// Last page satisfies len(slice) == total - (totalPages-1)*pageSize.
func TestPaginate_LastPageLength(t *testing.T) {
	for _, n := range []int{1, 14, 15, 16, 29, 30, 31, 37, 100} {
		records := numberedRecords(n)
		totalPages := TotalPages(n, 15)
		last, pg := Paginate(records, totalPages, 15)
		assert.Equal(t, n-(totalPages-1)*15, len(last), "n=%d", n)
		assert.Equal(t, totalPages, pg.Page)
	}
}
