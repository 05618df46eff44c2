package handler

import (
	"bytes"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stemsi/sodaubai-backend/internal/export"
	"github.com/stemsi/sodaubai-backend/internal/middleware"
	"github.com/stemsi/sodaubai-backend/internal/model"
	"github.com/stemsi/sodaubai-backend/internal/response"
	"github.com/stemsi/sodaubai-backend/internal/service"
	"github.com/stemsi/sodaubai-backend/internal/validator"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// EntryHandler serves the teacher's own logbook.
type EntryHandler struct {
	entryService *service.EntryService
	now          func() time.Time
}

// NewEntryHandler creates a new EntryHandler. now names export files.
func NewEntryHandler(entryService *service.EntryService, now func() time.Time) *EntryHandler {
	return &EntryHandler{entryService: entryService, now: now}
}

// List godoc
// GET /api/v1/entries?class=&subject=&from=&to=
func (h *EntryHandler) List(c *gin.Context) {
	account := middleware.GetAccount(c)

	var q model.EntryQuery
	if fields := validator.BindQuery(c, &q); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	entries, err := h.entryService.History(c.Request.Context(), *account, q)
	if err != nil {
		failFromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"entries": entries})
}

// Create godoc
// POST /api/v1/entries
func (h *EntryHandler) Create(c *gin.Context) {
	account := middleware.GetAccount(c)

	var req model.EntryRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	entry, err := h.entryService.Create(c.Request.Context(), *account, req)
	if err != nil {
		failFromError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"entry": entry})
}

// Get godoc
// GET /api/v1/entries/:id
func (h *EntryHandler) Get(c *gin.Context) {
	entry, err := h.entryService.Get(c.Request.Context(), *middleware.GetAccount(c), c.Param("id"))
	if err != nil {
		failFromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"entry": entry})
}

// Update godoc
// PUT /api/v1/entries/:id
func (h *EntryHandler) Update(c *gin.Context) {
	account := middleware.GetAccount(c)

	var req model.EntryRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	entry, err := h.entryService.Update(c.Request.Context(), *account, c.Param("id"), req)
	if err != nil {
		failFromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"entry": entry})
}

// Delete godoc
// DELETE /api/v1/entries/:id
func (h *EntryHandler) Delete(c *gin.Context) {
	if err := h.entryService.Delete(c.Request.Context(), *middleware.GetAccount(c), c.Param("id")); err != nil {
		failFromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "entry deleted"})
}

// Today godoc
// GET /api/v1/entries/today
func (h *EntryHandler) Today(c *gin.Context) {
	entries, err := h.entryService.Today(c.Request.Context(), *middleware.GetAccount(c))
	if err != nil {
		failFromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"entries": entries})
}

// RecentSubjects godoc
// GET /api/v1/entries/recent-subjects
func (h *EntryHandler) RecentSubjects(c *gin.Context) {
	subjects, err := h.entryService.RecentSubjects(c.Request.Context(), *middleware.GetAccount(c))
	if err != nil {
		failFromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"subjects": subjects})
}

// Options godoc
// GET /api/v1/entries/options
func (h *EntryHandler) Options(c *gin.Context) {
	opts, err := h.entryService.Options(c.Request.Context(), *middleware.GetAccount(c))
	if err != nil {
		failFromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, opts)
}

// Export godoc
// GET /api/v1/entries/export.xlsx?class=&subject=&from=&to=
// Downloads the filtered history as a spreadsheet.
func (h *EntryHandler) Export(c *gin.Context) {
	account := middleware.GetAccount(c)

	var q model.EntryQuery
	if fields := validator.BindQuery(c, &q); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	entries, err := h.entryService.History(c.Request.Context(), *account, q)
	if err != nil {
		failFromError(c, err)
		return
	}

	var buf bytes.Buffer
	if err := export.WriteHistoryWorkbook(&buf, entries); err != nil {
		exportFailed(c, err)
		return
	}
	response.Attachment(c, xlsxContentType, export.HistoryFileName(account.FullName, h.now()), &buf)
}

func exportFailed(c *gin.Context, err error) {
	if errors.Is(err, export.ErrNothingToExport) {
		failFromError(c, err)
		return
	}
	_ = c.Error(err)
	response.Fail(c, http.StatusInternalServerError, response.ErrExportFailed)
}
