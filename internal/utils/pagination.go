package utils

import (
	"math"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/task-tracker-api/internal/constants"
)

// PaginationParams holds the pagination parameters. Page is zero-based.
type PaginationParams struct {
	Page   int
	Size   int
	Offset int
}

// PaginationResponse represents the pagination metadata in API responses
type PaginationResponse struct {
	Page       int   `json:"page"`
	Size       int   `json:"size"`
	TotalCount int64 `json:"total_count"`
	TotalPages int   `json:"total_pages"`
}

// NewPaginationParams normalizes page and size, falling back to the defaults
// for out-of-range values.
func NewPaginationParams(page, size int) PaginationParams {
	if page < constants.DefaultPage {
		page = constants.DefaultPage
	}
	if size < constants.MinPageSize || size > constants.MaxPageSize {
		size = constants.DefaultPageSize
	}
	// pages whose offset would overflow fall back to the first page
	if page > math.MaxInt/size {
		page = constants.DefaultPage
	}
	return PaginationParams{
		Page:   page,
		Size:   size,
		Offset: page * size,
	}
}

// GetPaginationParams extracts and validates pagination parameters from the request
func GetPaginationParams(c *gin.Context) PaginationParams {
	page, err := strconv.Atoi(c.DefaultQuery("page", strconv.Itoa(constants.DefaultPage)))
	if err != nil {
		page = constants.DefaultPage
	}
	size, err := strconv.Atoi(c.DefaultQuery("size", strconv.Itoa(constants.DefaultPageSize)))
	if err != nil {
		size = constants.DefaultPageSize
	}
	return NewPaginationParams(page, size)
}

// NewPaginationResponse builds the page metadata for a result of total rows.
func NewPaginationResponse(params PaginationParams, total int64) PaginationResponse {
	totalPages := 0
	if params.Size > 0 {
		totalPages = int((total + int64(params.Size) - 1) / int64(params.Size))
	}
	return PaginationResponse{
		Page:       params.Page,
		Size:       params.Size,
		TotalCount: total,
		TotalPages: totalPages,
	}
}
