package pagination

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPaginateRejectsBadParams(t *testing.T) {
	for _, tc := range []struct{ page, limit int }{
		{0, 10}, {-1, 10}, {1, 0}, {1, -5},
	} {
		_, _, err := Paginate(tc.page, tc.limit, 100)
		assert.ErrorIs(t, err, ErrInvalidParams, "page=%d limit=%d", tc.page, tc.limit)
	}
}

func TestPaginateOffsetsAndMeta(t *testing.T) {
	meta, offset, err := Paginate(3, 10, 25)
	require.NoError(t, err)

	assert.Equal(t, 20, offset)
	assert.Equal(t, 3, meta.CurrentPage)
	assert.Equal(t, 10, meta.PageSize)
	assert.Equal(t, int64(25), meta.TotalItems)
	assert.Equal(t, int64(3), meta.TotalPages, "25 items at 10 per page round up to 3 pages")
}

func TestPaginatePageOutOfRange(t *testing.T) {
	_, _, err := Paginate(4, 10, 25)
	assert.ErrorIs(t, err, ErrPageOutOfRange)
}

func TestPaginateEmptyTable(t *testing.T) {
	// page 1 of an empty table is valid and returns zero pages
	meta, offset, err := Paginate(1, 10, 0)
	require.NoError(t, err)
	assert.Equal(t, 0, offset)
	assert.Equal(t, int64(0), meta.TotalPages)

	meta, _, err = Paginate(5, 10, 0)
	require.NoError(t, err, "any page of an empty table is allowed")
	assert.Equal(t, 5, meta.CurrentPage)
}

func TestParamsDefaults(t *testing.T) {
	r := httptest.NewRequest("GET", "/api/trucks", nil)
	page, limit := Params(r)
	assert.Equal(t, 1, page)
	assert.Equal(t, 10, limit)

	r = httptest.NewRequest("GET", "/api/trucks?page=2&limit=50", nil)
	page, limit = Params(r)
	assert.Equal(t, 2, page)
	assert.Equal(t, 50, limit)

	r = httptest.NewRequest("GET", "/api/trucks?page=abc&limit=", nil)
	page, limit = Params(r)
	assert.Equal(t, 1, page, "unparseable values fall back to defaults")
	assert.Equal(t, 10, limit)
}
