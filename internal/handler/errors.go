package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/stemsi/sodaubai-backend/internal/export"
	"github.com/stemsi/sodaubai-backend/internal/repository"
	"github.com/stemsi/sodaubai-backend/internal/response"
	"github.com/stemsi/sodaubai-backend/internal/service"
)

// failFromError maps a service error onto the API error envelope. Unknown
// errors are attached to the context for the access log and reported as 500.
func failFromError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidCredentials):
		response.Fail(c, http.StatusUnauthorized, response.ErrInvalidCredentials)
	case errors.Is(err, service.ErrNotTeacherAccount):
		response.Fail(c, http.StatusForbidden, response.ErrNotTeacherAccount)
	case errors.Is(err, service.ErrNotEntryOwner):
		response.Fail(c, http.StatusForbidden, response.ErrNotEntryOwner)
	case errors.Is(err, repository.ErrEntryNotFound):
		response.Fail(c, http.StatusNotFound, response.ErrNotFound)
	case errors.Is(err, repository.ErrAccountNotFound):
		response.Fail(c, http.StatusNotFound, response.ErrAccountNotFound)
	case errors.Is(err, repository.ErrDuplicateUsername):
		response.Fail(c, http.StatusConflict, response.ErrDuplicateUsername)
	case errors.Is(err, export.ErrNothingToExport):
		response.Fail(c, http.StatusNotFound, response.ErrExportEmpty)
	default:
		_ = c.Error(err)
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
	}
}
