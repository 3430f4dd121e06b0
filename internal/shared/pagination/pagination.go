package pagination

import (
	"errors"
	"net/http"
	"strconv"
)

var (
	ErrInvalidParams     = errors.New("page number and page length must be greater than 0")
	ErrPageOutOfRange    = errors.New("page number exceeds total pages")
	errNegativeTotalSize = errors.New("total length must be non-negative")
)

// Meta is the list-response metadata envelope.
type Meta struct {
	CurrentPage int   `json:"currentPage"`
	PageSize    int   `json:"pageSize"`
	TotalItems  int64 `json:"totalItems"`
	TotalPages  int64 `json:"totalPages"`
}

// Paginate computes the total page count and row offset for a page request.
// A page beyond the last one is an error, except when the table is empty.
func Paginate(page, limit int, totalItems int64) (Meta, int, error) {
	if page <= 0 || limit <= 0 {
		return Meta{}, 0, ErrInvalidParams
	}
	if totalItems < 0 {
		return Meta{}, 0, errNegativeTotalSize
	}

	totalPages := (totalItems + int64(limit) - 1) / int64(limit)
	if int64(page) > totalPages && totalPages != 0 {
		return Meta{}, 0, ErrPageOutOfRange
	}

	offset := (page - 1) * limit
	return Meta{
		CurrentPage: page,
		PageSize:    limit,
		TotalItems:  totalItems,
		TotalPages:  totalPages,
	}, offset, nil
}

// Params reads page/limit query parameters with the original defaults.
func Params(r *http.Request) (page, limit int) {
	page, limit = 1, 10
	if v, err := strconv.Atoi(r.URL.Query().Get("page")); err == nil && v != 0 {
		page = v
	}
	if v, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil && v != 0 {
		limit = v
	}
	return page, limit
}
