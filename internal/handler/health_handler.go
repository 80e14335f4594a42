package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"picdesc/internal/port"
)

// readinessTimeout bounds each dependency check of the readiness probe.
const readinessTimeout = 5 * time.Second

// HealthHandler handles health check endpoints.
type HealthHandler struct {
	backend port.DocumentConverter
	repo    port.ConversionRepository
}

// NewHealthHandler creates a new HealthHandler.
func NewHealthHandler(backend port.DocumentConverter, repo port.ConversionRepository) *HealthHandler {
	return &HealthHandler{backend: backend, repo: repo}
}

// Liveness handles GET /healthz
// @Summary Liveness probe
// @Tags health
// @Produce json
// @Success 200 {object} HealthResponse
// @Router /healthz [get]
func (h *HealthHandler) Liveness(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{Status: "ok"})
}

// Readiness handles GET /readyz
// @Summary Readiness probe
// @Description Checks the conversion backend and the conversion store
// @Tags health
// @Produce json
// @Success 200 {object} HealthResponse
// @Failure 503 {object} HealthResponse
// @Router /readyz [get]
func (h *HealthHandler) Readiness(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), readinessTimeout)
	defer cancel()
	if err := h.repo.Ping(ctx); err != nil {
		log.WithError(err).Warn("readiness: store not reachable")
		c.JSON(http.StatusServiceUnavailable, HealthResponse{Status: "unavailable", Error: "conversion store not reachable"})
		return
	}
	if err := h.backend.Ping(ctx); err != nil {
		log.WithError(err).Warn("readiness: backend not reachable")
		c.JSON(http.StatusServiceUnavailable, HealthResponse{Status: "unavailable", Error: "conversion backend not reachable"})
		return
	}
	c.JSON(http.StatusOK, HealthResponse{Status: "ok"})
}
