// Package controller holds the helpers shared by the HTTP controllers.
package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nvalenzuela/selekta/internal/apperr"
	"github.com/nvalenzuela/selekta/internal/dto"
)

// WriteError maps a service error onto the HTTP taxonomy. Transient
// storage failures come back 503 so callers know the operation is safe
// to retry as a whole.
func WriteError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, apperr.ErrValidation):
		status = http.StatusBadRequest
	case errors.Is(err, apperr.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, apperr.ErrAlreadyCompleted),
		errors.Is(err, apperr.ErrDuplicateApplication),
		errors.Is(err, apperr.ErrConflict):
		status = http.StatusConflict
	case apperr.IsRetryable(err):
		status = http.StatusServiceUnavailable
	}
	c.JSON(status, dto.ErrorResponse{Message: err.Error()})
}

// BindError reports a request body that failed binding/validation.
func BindError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, dto.ErrorResponse{
		Message: "invalid request body",
		Details: []string{err.Error()},
	})
}
