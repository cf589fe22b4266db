package controllers

import (
	"errors"
	"net/http"

	"github.com/civic-pulse/api-go/services"
	"github.com/gin-gonic/gin"
)

type StandardResponse struct {
	Success    bool            `json:"success"`
	Data       interface{}     `json:"data,omitempty"`
	Meta       interface{}     `json:"meta,omitempty"`
	Pagination *PaginationMeta `json:"pagination,omitempty"`
	Message    string          `json:"message,omitempty"`
}

type PaginationMeta struct {
	CurrentPage int   `json:"currentPage"`
	PageSize    int   `json:"pageSize"`
	TotalItems  int64 `json:"totalItems"`
	TotalPages  int   `json:"totalPages"`
}

// respondServiceError maps a service failure to an HTTP status. Unknown
// errors are reported as internal without leaking details.
func respondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrUnauthorized):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error(), "success": false})
	case errors.Is(err, services.ErrNotFound), errors.Is(err, services.ErrUserNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error(), "success": false})
	case errors.Is(err, services.ErrInvalidStatus), errors.Is(err, services.ErrInvalidPriority), errors.Is(err, services.ErrInvalidCost):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "success": false})
	case errors.Is(err, services.ErrInvalidState), errors.Is(err, services.ErrAlreadyVerified):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error(), "success": false})
	case errors.Is(err, services.ErrBanned):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error(), "success": false})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error", "success": false})
	}
}
