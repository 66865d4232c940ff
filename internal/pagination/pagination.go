// Package pagination computes page metadata for list endpoints.
package pagination

// Page carries one page of results together with the metadata clients use
// to drive further requests.
type Page[T any] struct {
	Data      []T  `json:"data"`
	Page      int  `json:"page"`
	Size      int  `json:"size"`
	PageCount int  `json:"page_count"`
	Last      bool `json:"last"`
}

// New builds a Page descriptor from the items of the current page and the
// total number of matching records. An empty result set is reported as
// page 1 of 1 rather than 0 pages.
func New[T any](data []T, page int, totalRecords int64, limit int) Page[T] {
	page = ClampPage(page)
	limit = ClampLimit(limit)

	pageCount := int((totalRecords + int64(limit) - 1) / int64(limit))
	if pageCount < 1 {
		pageCount = 1
	}

	return Page[T]{
		Data:      data,
		Page:      page,
		Size:      len(data),
		PageCount: pageCount,
		Last:      page >= pageCount,
	}
}

// Offset returns the row offset for a 1-based page. Page 0 and page 1 both
// address the first page; the arithmetic saturates so no input produces a
// negative offset.
func Offset(page, limit int) int {
	page = ClampPage(page)
	return (page - 1) * ClampLimit(limit)
}

// ClampPage normalizes a requested page number to be at least 1.
func ClampPage(page int) int {
	if page < 1 {
		return 1
	}
	return page
}

// ClampLimit normalizes a requested page size to be at least 1.
func ClampLimit(limit int) int {
	if limit < 1 {
		return 1
	}
	return limit
}
