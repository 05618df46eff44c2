package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/stemsi/sodaubai-backend/internal/middleware"
	"github.com/stemsi/sodaubai-backend/internal/model"
	"github.com/stemsi/sodaubai-backend/internal/response"
	"github.com/stemsi/sodaubai-backend/internal/service"
	"github.com/stemsi/sodaubai-backend/internal/validator"
)

// AccountHandler manages teacher accounts for administrators.
type AccountHandler struct {
	accountService *service.AccountService
}

func NewAccountHandler(accountService *service.AccountService) *AccountHandler {
	return &AccountHandler{accountService: accountService}
}

// ListTeachers godoc
// GET /api/v1/admin/teachers
func (h *AccountHandler) ListTeachers(c *gin.Context) {
	teachers, err := h.accountService.ListTeachers(c.Request.Context())
	if err != nil {
		failFromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"teachers": teachers})
}

// CreateTeacher godoc
// POST /api/v1/admin/teachers
func (h *AccountHandler) CreateTeacher(c *gin.Context) {
	var req model.CreateTeacherRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	account, err := h.accountService.CreateTeacher(c.Request.Context(),
		strings.TrimSpace(req.Username), strings.TrimSpace(req.FullName))
	if err != nil {
		failFromError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"teacher": account})
}

// DeleteTeacher godoc
// DELETE /api/v1/admin/teachers/:id
// The teacher's entries stay in the logbook.
func (h *AccountHandler) DeleteTeacher(c *gin.Context) {
	id := c.Param("id")
	if current := middleware.GetAccount(c); current != nil && current.ID == id {
		response.Fail(c, http.StatusForbidden, response.ErrForbidden)
		return
	}

	if err := h.accountService.DeleteTeacher(c.Request.Context(), id); err != nil {
		failFromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "account deleted"})
}
