package handlers

import (
	"errors"
	"net/http"

	"employee-records/internal/domain/employee"
	"employee-records/pkg/logger"

	"github.com/gin-gonic/gin"
)

// APIResponse represents a standard API response
type APIResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Errors  interface{} `json:"errors,omitempty"`
}

func respondError(c *gin.Context, status int, message string, errs interface{}) {
	c.JSON(status, APIResponse{
		Success: false,
		Message: message,
		Errors:  errs,
	})
}

// respondServiceError maps a service error to its HTTP status. An unknown sort
// field is treated like any other query failure and answered with a bare 500.
func respondServiceError(c *gin.Context, err error) {
	switch {
	case employee.IsNotFound(err):
		respondError(c, http.StatusNotFound, err.Error(), nil)
	case errors.Is(err, employee.ErrInvalidPageRequest):
		respondError(c, http.StatusBadRequest, err.Error(), nil)
	default:
		_ = c.Error(err)
		logger.Error("Request failed: %v", err)
		respondError(c, http.StatusInternalServerError, "Internal server error", nil)
	}
}
