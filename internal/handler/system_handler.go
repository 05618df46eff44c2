package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stemsi/sodaubai-backend/internal/kvstore"
	"github.com/stemsi/sodaubai-backend/internal/response"
)

const healthTimeout = 2 * time.Second

// SystemHandler reports process and store liveness.
type SystemHandler struct {
	store     kvstore.Store
	driver    string
	probeKey  string
	startTime time.Time
	log       zerolog.Logger
}

// NewSystemHandler creates a SystemHandler that probes the store by reading
// probeKey.
func NewSystemHandler(store kvstore.Store, driver, probeKey string, log zerolog.Logger) *SystemHandler {
	return &SystemHandler{
		store:     store,
		driver:    driver,
		probeKey:  probeKey,
		startTime: time.Now(),
		log:       log.With().Str("component", "system_handler").Logger(),
	}
}

// Health godoc
// GET /health
// Answers 503 when the blob store cannot be read.
func (h *SystemHandler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), healthTimeout)
	defer cancel()

	status, code := "ok", http.StatusOK
	if _, _, err := h.store.Get(ctx, h.probeKey); err != nil {
		h.log.Warn().Err(err).Msg("store health check failed")
		status, code = "unavailable", http.StatusServiceUnavailable
	}

	response.Success(c, code, gin.H{
		"status": status,
		"store":  h.driver,
		"uptime": time.Since(h.startTime).Round(time.Second).String(),
	})
}
