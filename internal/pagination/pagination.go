// Package pagination converts entity collections and paged repository
// queries into a uniform page-of-items plus the pager metadata the list
// templates render.
package pagination

const (
	// ButtonsToShow is the size of the page-number window in the pager.
	ButtonsToShow = 3

	// InitialPage is the zero-based page used when no page is requested.
	InitialPage = 0

	// InitialPageSize is used when no page size is requested.
	InitialPageSize = 5
)

// PageSizes returns the page-size choices offered to the user.
func PageSizes() []int {
	return []int{5, 10}
}

// Pager describes the navigation controls for a paged listing. Pages holds
// a contiguous window of zero-based page indexes centered on CurrentPage
// and clipped to the valid range.
type Pager struct {
	TotalPages  int
	CurrentPage int
	Start       int
	End         int
	Pages       []int
}

// NewPager computes the button window. With zero total pages the window is
// empty.
func NewPager(totalPages, currentPage, buttonsToShow int) Pager {
	pager := Pager{TotalPages: totalPages, CurrentPage: currentPage}
	if totalPages <= 0 {
		return pager
	}

	half := buttonsToShow / 2
	var start, end int
	switch {
	case totalPages <= buttonsToShow:
		start, end = 0, totalPages-1
	case currentPage <= half:
		start, end = 0, buttonsToShow-1
	case currentPage+half >= totalPages:
		start, end = totalPages-buttonsToShow, totalPages-1
	default:
		start, end = currentPage-half, currentPage+half
	}

	pager.Start = start
	pager.End = end
	for i := start; i <= end; i++ {
		pager.Pages = append(pager.Pages, i)
	}
	return pager
}

// HasPrev reports whether a previous page exists.
func (p Pager) HasPrev() bool {
	return p.CurrentPage > 0
}

// HasNext reports whether a next page exists.
func (p Pager) HasNext() bool {
	return p.CurrentPage < p.TotalPages-1
}

// Page is one bounded slice of a larger collection.
type Page[T any] struct {
	Items      []T
	Number     int // zero-based
	Size       int
	TotalItems int64
	TotalPages int
}

// View bundles a page with the page-size choices and the pager, matching
// what every listing template needs.
type View[T any] struct {
	Page  Page[T]
	Size  int
	Sizes []int
	Pager Pager
}

// Query is a paging-capable data source: a repository FindAll.
type Query[T any] func(offset, limit int) ([]T, int64, error)

// Resolve turns the optional request parameters into an effective page
// size and zero-based page index. A missing or sub-1 page selects the
// first page; the page parameter itself is 1-based.
func Resolve(size, page *int) (evalSize, evalPage int) {
	evalSize = InitialPageSize
	if size != nil && *size > 0 {
		evalSize = *size
	}
	evalPage = InitialPage
	if page != nil && *page >= 1 {
		evalPage = *page - 1
	}
	return evalSize, evalPage
}

func pageCount(total int64, size int) int {
	if size <= 0 {
		return 0
	}
	return int((total + int64(size) - 1) / int64(size))
}

func newView[T any](items []T, total int64, page, size int) View[T] {
	totalPages := pageCount(total, size)
	return View[T]{
		Page: Page[T]{
			Items:      items,
			Number:     page,
			Size:       size,
			TotalItems: total,
			TotalPages: totalPages,
		},
		Size:  size,
		Sizes: PageSizes(),
		Pager: NewPager(totalPages, page, ButtonsToShow),
	}
}

// FromQuery builds a view by delegating slicing to a paging-capable
// source. A stale page index beyond the last page (items were deleted
// since the link was rendered) is clamped to the last valid page and the
// source is queried again.
func FromQuery[T any](q Query[T], size, page *int) (View[T], error) {
	evalSize, evalPage := Resolve(size, page)

	items, total, err := q(evalPage*evalSize, evalSize)
	if err != nil {
		return View[T]{}, err
	}

	if totalPages := pageCount(total, evalSize); evalPage >= totalPages {
		evalPage = 0
		if totalPages > 0 {
			evalPage = totalPages - 1
		}
		items, total, err = q(evalPage*evalSize, evalSize)
		if err != nil {
			return View[T]{}, err
		}
	}

	return newView(items, total, evalPage, evalSize), nil
}

// FromSlice builds a view over an already-materialized collection. The
// final page receives the remainder; an out-of-range page clamps to the
// last valid page.
func FromSlice[T any](items []T, size, page *int) View[T] {
	evalSize, evalPage := Resolve(size, page)
	total := int64(len(items))

	if totalPages := pageCount(total, evalSize); evalPage >= totalPages {
		evalPage = 0
		if totalPages > 0 {
			evalPage = totalPages - 1
		}
	}

	lo := evalPage * evalSize
	hi := lo + evalSize
	if lo > len(items) {
		lo = len(items)
	}
	if hi > len(items) {
		hi = len(items)
	}

	return newView(items[lo:hi], total, evalPage, evalSize)
}
