package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/stemsi/sodaubai-backend/internal/model"
	"github.com/stemsi/sodaubai-backend/internal/response"
	"github.com/stemsi/sodaubai-backend/internal/service"
	"github.com/stemsi/sodaubai-backend/internal/validator"
)

// SubjectHandler exposes subject summaries built from the logbook.
type SubjectHandler struct {
	statsService *service.StatsService
}

func NewSubjectHandler(statsService *service.StatsService) *SubjectHandler {
	return &SubjectHandler{statsService: statsService}
}

// List godoc
// GET /api/v1/admin/subjects?q=
func (h *SubjectHandler) List(c *gin.Context) {
	subjects, err := h.statsService.Subjects(c.Request.Context(), c.Query("q"))
	if err != nil {
		failFromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"subjects": subjects})
}

// Delete godoc
// DELETE /api/v1/admin/subjects?name=
// Removes every entry of every teacher recorded under the subject.
func (h *SubjectHandler) Delete(c *gin.Context) {
	var q model.DeleteSubjectQuery
	if fields := validator.BindQuery(c, &q); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	removed, err := h.statsService.DeleteSubject(c.Request.Context(), q.Name)
	if err != nil {
		failFromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"removed": removed})
}
