package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	response "packsite/backend/internal/infra/common"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// parseID reads the :id path parameter. Zero means invalid.
func parseID(c *gin.Context) uint {
	id64, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return 0
	}
	return uint(id64)
}

// parsePagination reads page/page_size query params with sane clamps
// and returns them together with the derived offset.
func parsePagination(c *gin.Context) (page, pageSize, offset int) {
	page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	pageSize, _ = strconv.Atoi(c.DefaultQuery("page_size", strconv.Itoa(defaultPageSize)))
	if pageSize < 1 {
		pageSize = defaultPageSize
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}
	return page, pageSize, (page - 1) * pageSize
}

// pageMeta builds the pagination envelope meta for a list response.
func pageMeta(page, pageSize int, total int64, count int) response.MetaPagination {
	totalPages := int(total) / pageSize
	if int(total)%pageSize != 0 {
		totalPages++
	}
	return response.MetaPagination{
		Page:         page,
		PageSize:     pageSize,
		TotalItems:   total,
		TotalPages:   totalPages,
		CurrentCount: count,
	}
}

// parseLimit reads an optional limit query param, 0 meaning unlimited.
func parseLimit(c *gin.Context) int {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "0"))
	if limit < 0 {
		limit = 0
	}
	return limit
}
