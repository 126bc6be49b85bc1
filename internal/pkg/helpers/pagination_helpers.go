package helpers

import (
	"errors"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/yigit/yatube/internal/app/models/dto"
)

const (
	// DefaultPageSize is the fixed number of posts on every feed page
	DefaultPageSize = 10
	DefaultPage     = 1 // Default page is 1-based
)

// CalculateOffsetLimit calculates the offset and limit for SQL queries based on 1-based page index.
func CalculateOffsetLimit(page, size int) (offset uint64, limit int) {
	if size <= 0 {
		limit = DefaultPageSize
	} else {
		limit = size
	}

	if page < 1 {
		page = DefaultPage
	}

	offset = uint64((page - 1) * limit)
	return offset, limit
}

// TotalPages returns the page count for totalItems. An empty listing still
// has one (empty) page.
func TotalPages(totalItems int64, size int) int {
	if size <= 0 {
		size = DefaultPageSize
	}
	if totalItems <= 0 {
		return 1
	}
	return int((totalItems + int64(size) - 1) / int64(size))
}

// ResolvePage turns a raw page parameter into a valid page of a listing with
// totalItems entries:
//   - missing or non-numeric input resolves to page 1
//   - zero, negative or past-the-end input resolves to the last page,
//     including integers too large for int
func ResolvePage(raw string, totalItems int64, size int) dto.PaginationInfo {
	if size <= 0 {
		size = DefaultPageSize
	}
	totalPages := TotalPages(totalItems, size)

	page, err := strconv.Atoi(strings.TrimSpace(raw))
	switch {
	case errors.Is(err, strconv.ErrRange):
		page = totalPages
	case err != nil:
		page = DefaultPage
	case page < 1 || page > totalPages:
		page = totalPages
	}

	return NewPaginationInfo(totalItems, page, size)
}

// NewPaginationInfo creates a standard PaginationInfo DTO.
// page should be the 1-based page number.
func NewPaginationInfo(totalItems int64, page, size int) dto.PaginationInfo {
	if size <= 0 {
		size = DefaultPageSize
	}
	if page < 1 {
		page = DefaultPage
	}

	totalPages := TotalPages(totalItems, size)

	// Ensure currentPage never exceeds totalPages
	currentPage := page
	if currentPage > totalPages {
		currentPage = totalPages
	}

	info := dto.PaginationInfo{
		CurrentPage: currentPage,
		TotalPages:  totalPages,
		PageSize:    size,
		TotalItems:  totalItems,
	}
	if totalItems > 0 {
		info.StartIndex = int64(size)*int64(currentPage-1) + 1
		if currentPage == totalPages {
			info.EndIndex = totalItems
		} else {
			info.EndIndex = int64(currentPage) * int64(size)
		}
	}
	return info
}

// PageParam extracts the raw page query parameter
func PageParam(c *gin.Context) string {
	return c.Query("page")
}

// CalculateSliceIndices calculates the start and end indices for slicing an array for pagination
func CalculateSliceIndices(page, size, totalItems int) (start, end int) {
	if size <= 0 {
		size = DefaultPageSize
	}
	if page < 1 {
		page = DefaultPage
	}

	start = (page - 1) * size
	end = start + size

	if start >= totalItems {
		start = totalItems
		end = totalItems
	}
	if end > totalItems {
		end = totalItems
	}

	return start, end
}
