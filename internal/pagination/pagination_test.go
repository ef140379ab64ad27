package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intRange(n int) []int {
	items := make([]int, n)
	for i := range items {
		items[i] = i
	}
	return items
}

// sliceQuery adapts a slice into a Query for FromQuery tests.
func sliceQuery(items []int) Query[int] {
	return func(offset, limit int) ([]int, int64, error) {
		lo := offset
		hi := offset + limit
		if lo > len(items) {
			lo = len(items)
		}
		if hi > len(items) {
			hi = len(items)
		}
		return items[lo:hi], int64(len(items)), nil
	}
}

func intPtr(v int) *int { return &v }

func TestResolve_Defaults(t *testing.T) {
	size, page := Resolve(nil, nil)
	assert.Equal(t, InitialPageSize, size)
	assert.Equal(t, InitialPage, page)
}

func TestResolve_PageIsOneBased(t *testing.T) {
	_, page := Resolve(nil, intPtr(3))
	assert.Equal(t, 2, page)

	// Page values below 1 select the first page
	_, page = Resolve(nil, intPtr(0))
	assert.Equal(t, 0, page)
	_, page = Resolve(nil, intPtr(-5))
	assert.Equal(t, 0, page)
}

func TestResolve_RejectsInvalidSize(t *testing.T) {
	size, _ := Resolve(intPtr(0), nil)
	assert.Equal(t, InitialPageSize, size)

	size, _ = Resolve(intPtr(10), nil)
	assert.Equal(t, 10, size)
}

func TestFromQuery_SplitsPages(t *testing.T) {
	q := sliceQuery(intRange(12))

	view, err := FromQuery(q, intPtr(5), intPtr(1))
	require.NoError(t, err)
	assert.Len(t, view.Page.Items, 5)
	assert.Equal(t, 0, view.Page.Number)
	assert.EqualValues(t, 12, view.Page.TotalItems)
	assert.Equal(t, 3, view.Page.TotalPages)

	view, err = FromQuery(q, intPtr(5), intPtr(3))
	require.NoError(t, err)
	assert.Equal(t, []int{10, 11}, view.Page.Items)
	assert.Equal(t, 2, view.Page.Number)
}

func TestFromQuery_ClampsStalePage(t *testing.T) {
	q := sliceQuery(intRange(12))

	// Page 9 no longer exists; the last valid page is served instead
	view, err := FromQuery(q, intPtr(5), intPtr(9))
	require.NoError(t, err)
	assert.Equal(t, 2, view.Page.Number)
	assert.Equal(t, []int{10, 11}, view.Page.Items)
}

func TestFromQuery_Empty(t *testing.T) {
	q := sliceQuery(nil)

	view, err := FromQuery(q, nil, nil)
	require.NoError(t, err)
	assert.Empty(t, view.Page.Items)
	assert.Equal(t, 0, view.Page.Number)
	assert.Equal(t, 0, view.Page.TotalPages)
	assert.Empty(t, view.Pager.Pages)
}

func TestFromSlice_RemainderOnLastPage(t *testing.T) {
	view := FromSlice(intRange(12), intPtr(5), intPtr(3))
	assert.Equal(t, []int{10, 11}, view.Page.Items)
	assert.Equal(t, 2, view.Page.Number)
	assert.Equal(t, 3, view.Page.TotalPages)
}

func TestFromSlice_ClampsOutOfRangePage(t *testing.T) {
	view := FromSlice(intRange(7), intPtr(5), intPtr(99))
	assert.Equal(t, 1, view.Page.Number)
	assert.Equal(t, []int{5, 6}, view.Page.Items)
}

func TestFromSlice_Empty(t *testing.T) {
	view := FromSlice[int](nil, nil, nil)
	assert.Empty(t, view.Page.Items)
	assert.Equal(t, 0, view.Page.TotalPages)
}

func TestNewPager_FewerPagesThanButtons(t *testing.T) {
	pager := NewPager(2, 0, ButtonsToShow)
	assert.Equal(t, []int{0, 1}, pager.Pages)
	assert.False(t, pager.HasPrev())
	assert.True(t, pager.HasNext())
}

func TestNewPager_WindowAtStart(t *testing.T) {
	pager := NewPager(5, 0, ButtonsToShow)
	assert.Equal(t, []int{0, 1, 2}, pager.Pages)
}

func TestNewPager_WindowCentered(t *testing.T) {
	pager := NewPager(5, 2, ButtonsToShow)
	assert.Equal(t, []int{1, 2, 3}, pager.Pages)
	assert.True(t, pager.HasPrev())
	assert.True(t, pager.HasNext())
}

func TestNewPager_WindowAtEnd(t *testing.T) {
	pager := NewPager(5, 4, ButtonsToShow)
	assert.Equal(t, []int{2, 3, 4}, pager.Pages)
	assert.True(t, pager.HasPrev())
	assert.False(t, pager.HasNext())
}

func TestNewPager_NoPages(t *testing.T) {
	pager := NewPager(0, 0, ButtonsToShow)
	assert.Empty(t, pager.Pages)
	assert.False(t, pager.HasPrev())
	assert.False(t, pager.HasNext())
}
