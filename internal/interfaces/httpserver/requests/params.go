package requests

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"testhub/internal/domain/query"
	"testhub/internal/utils/platformerrors"
)

// ParseID reads the :id path parameter. On failure it writes the error
// response and returns false.
func ParseID(c *gin.Context) (uint, bool) {
	return ParseIDParam(c, "id")
}

// ParseIDParam reads a named numeric path parameter.
func ParseIDParam(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil || id == 0 {
		platformerrors.WriteValidationError(c, name+" must be a positive integer")
		return 0, false
	}
	return uint(id), true
}

// Pagination builds paging parameters from the page/page_size query
// string, clamped to sane bounds.
func Pagination(c *gin.Context) *query.Pagination {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	size, _ := strconv.Atoi(c.DefaultQuery("page_size", "10"))
	if page < 1 {
		page = 1
	}
	p := &query.Pagination{Limit: size}
	p.Normalize()
	p.Offset = (page - 1) * p.Limit
	return p
}
