package handler

import (
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/giftvault/catalog-api/internal/core/domain"
	"github.com/giftvault/catalog-api/internal/core/ports"
)

// paginationParams reads page/pageSize. Absent parameters default to the
// first page of ports.DefaultPageSize; present but non-positive or
// non-numeric values fail with ErrPaginationInvalid.
func paginationParams(c echo.Context) (ports.Pagination, error) {
	page := 1
	pageSize := ports.DefaultPageSize

	if raw := c.QueryParam("page"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil {
			return ports.Pagination{}, domain.ErrPaginationInvalid
		}
		page = v
	}
	if raw := c.QueryParam("pageSize"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil {
			return ports.Pagination{}, domain.ErrPaginationInvalid
		}
		pageSize = v
	}

	return ports.NewPagination(page, pageSize)
}

// pathID parses the :id path segment.
func pathID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return 0, domain.ValidationError{Field: "id", Reason: "must be an integer"}
	}
	return id, nil
}

// selfLinks is the minimal HATEOAS decoration added by the HTTP facade.
type selfLinks struct {
	Self string `json:"self"`
}

// errorBody documents the error envelope produced by the central error
// handler.
type errorBody struct {
	ErrorMessage string `json:"errorMessage"`
	ErrorCode    int    `json:"errorCode"`
}

func itoa(id int64) string {
	return strconv.FormatInt(id, 10)
}
