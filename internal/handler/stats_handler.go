package handler

import (
	"bytes"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stemsi/sodaubai-backend/internal/export"
	"github.com/stemsi/sodaubai-backend/internal/middleware"
	"github.com/stemsi/sodaubai-backend/internal/response"
	"github.com/stemsi/sodaubai-backend/internal/service"
)

// StatsHandler serves teaching statistics and their PDF export.
type StatsHandler struct {
	statsService *service.StatsService
	fontPath     string
	now          func() time.Time
}

func NewStatsHandler(statsService *service.StatsService, fontPath string, now func() time.Time) *StatsHandler {
	return &StatsHandler{statsService: statsService, fontPath: fontPath, now: now}
}

// Report godoc
// GET /api/v1/stats?teacher_id=
// teacher_id is honored for admins only.
func (h *StatsHandler) Report(c *gin.Context) {
	report, err := h.statsService.Report(c.Request.Context(), *middleware.GetAccount(c), c.Query("teacher_id"))
	if err != nil {
		failFromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, report)
}

// Export godoc
// GET /api/v1/stats/export.pdf?teacher_id=
func (h *StatsHandler) Export(c *gin.Context) {
	report, err := h.statsService.Report(c.Request.Context(), *middleware.GetAccount(c), c.Query("teacher_id"))
	if err != nil {
		failFromError(c, err)
		return
	}

	var buf bytes.Buffer
	if err := export.WriteStatsReport(&buf, *report, h.fontPath); err != nil {
		exportFailed(c, err)
		return
	}
	response.Attachment(c, "application/pdf", export.StatsFileName(report.ScopeName, h.now()), &buf)
}
