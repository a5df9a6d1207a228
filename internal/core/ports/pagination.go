package ports

import "github.com/giftvault/catalog-api/internal/core/domain"

// DefaultPageSize applies when a list request omits pageSize.
const DefaultPageSize = 20

// Pagination carries 1-based list window parameters.
type Pagination struct {
	Page     int
	PageSize int
}

// NewPagination validates the window. Both values must be strictly positive.
func NewPagination(page, pageSize int) (Pagination, error) {
	if page < 1 || pageSize < 1 {
		return Pagination{}, domain.ErrPaginationInvalid
	}
	return Pagination{Page: page, PageSize: pageSize}, nil
}

// Offset returns the number of rows to skip.
func (p Pagination) Offset() int {
	return (p.Page - 1) * p.PageSize
}

// Limit returns the page size.
func (p Pagination) Limit() int {
	return p.PageSize
}
