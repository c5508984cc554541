package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func priceOf(r fakeRecord) float64 { return r.Price }

func TestSortBy_Descending(t *testing.T) {
	records := []fakeRecord{{Name: "a", Price: 1}, {Name: "b", Price: 3}, {Name: "c", Price: 2}}
	SortBy(records, priceOf, true)
	assert.Equal(t, []float64{3, 2, 1}, []float64{records[0].Price, records[1].Price, records[2].Price})
}

// Sorting descending then ascending reverses the order for distinct values.
func TestSortBy_RoundTrip(t *testing.T) {
	records := []fakeRecord{{Price: 5}, {Price: 1}, {Price: 4}, {Price: 2}, {Price: 3}}
	SortBy(records, priceOf, true)
	desc := make([]float64, len(records))
	for i, r := range records {
		desc[i] = r.Price
	}
	SortBy(records, priceOf, false)
	for i, r := range records {
		assert.Equal(t, desc[len(desc)-1-i], r.Price)
	}
}

// Missing values sort as 0 and sink to the bottom of a descending sort.
func TestSortBy_MissingValuesAsZero(t *testing.T) {
	records := []fakeRecord{{Name: "loading"}, {Name: "priced", Price: 7}}
	SortBy(records, priceOf, true)
	assert.Equal(t, "priced", records[0].Name)
	assert.Equal(t, "loading", records[1].Name)
}

func TestToggleDirection(t *testing.T) {
	// Same key flips.
	assert.False(t, ToggleDirection("price", true, "price"))
	assert.True(t, ToggleDirection("price", false, "price"))
	// New key defaults descending.
	assert.True(t, ToggleDirection("price", false, "market_cap"))
	assert.True(t, ToggleDirection("", false, "price"))
}
