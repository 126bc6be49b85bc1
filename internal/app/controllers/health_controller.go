package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/yigit/yatube/internal/app/repositories"
)

// HealthController answers the readiness probe
type HealthController struct {
	repos  *repositories.Repositories
	logger zerolog.Logger
}

// NewHealthController creates a new HealthController
func NewHealthController(repos *repositories.Repositories, logger zerolog.Logger) *HealthController {
	return &HealthController{repos: repos, logger: logger}
}

// Healthz reports 200 when storage answers, 503 otherwise
func (hc *HealthController) Healthz(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	if err := hc.repos.Ping(ctx); err != nil {
		hc.logger.Warn().Err(err).Msg("Health check failed")
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
