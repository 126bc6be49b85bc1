package dto

// PaginationInfo describes one resolved page of a listing.
// StartIndex and EndIndex are 1-based positions of the first and last item
// on the page, both 0 when the listing is empty.
type PaginationInfo struct {
	CurrentPage int   `json:"currentPage"`
	TotalPages  int   `json:"totalPages"`
	PageSize    int   `json:"pageSize"`
	TotalItems  int64 `json:"totalItems"`
	StartIndex  int64 `json:"startIndex"`
	EndIndex    int64 `json:"endIndex"`
}

// HasNext reports whether a later page exists
func (p PaginationInfo) HasNext() bool {
	return p.CurrentPage < p.TotalPages
}

// HasPrevious reports whether an earlier page exists
func (p PaginationInfo) HasPrevious() bool {
	return p.CurrentPage > 1
}

// HasOtherPages reports whether the listing spans more than one page
func (p PaginationInfo) HasOtherPages() bool {
	return p.TotalPages > 1
}

// NextPage returns the following page number, or the current one on the last page
func (p PaginationInfo) NextPage() int {
	if p.HasNext() {
		return p.CurrentPage + 1
	}
	return p.CurrentPage
}

// PreviousPage returns the preceding page number, or 1 on the first page
func (p PaginationInfo) PreviousPage() int {
	if p.HasPrevious() {
		return p.CurrentPage - 1
	}
	return 1
}

// PageRange lists every page number, for rendering page links
func (p PaginationInfo) PageRange() []int {
	pages := make([]int, 0, p.TotalPages)
	for i := 1; i <= p.TotalPages; i++ {
		pages = append(pages, i)
	}
	return pages
}
