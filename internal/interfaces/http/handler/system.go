package handler

import (
	"time"

	"github.com/gin-gonic/gin"
)

// SystemHandler handles health and metadata endpoints
type SystemHandler struct {
	BaseHandler
	appName string
	env     string
	started time.Time
}

// NewSystemHandler creates a new SystemHandler
func NewSystemHandler(appName, env string) *SystemHandler {
	return &SystemHandler{
		appName: appName,
		env:     env,
		started: time.Now(),
	}
}

// RegisterRoutes registers system routes
func (h *SystemHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/health", h.Health)
}

// Health handles GET /health
func (h *SystemHandler) Health(c *gin.Context) {
	h.Success(c, gin.H{
		"status": "ok",
		"app":    h.appName,
		"env":    h.env,
		"uptime": time.Since(h.started).String(),
	})
}
