package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

type DatabaseChecker interface {
	HealthCheck() error
}

type CachePinger interface {
	Ping(ctx context.Context) error
}

type HealthHandler struct {
	db    DatabaseChecker
	cache CachePinger
}

func NewHealthHandler(db DatabaseChecker, cache CachePinger) *HealthHandler {
	return &HealthHandler{db: db, cache: cache}
}

// GetHealth returns basic health status - always returns 200 if server is running
func (h *HealthHandler) GetHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "ok",
		"timestamp": time.Now().UTC(),
		"service":   "nfl-edge",
	})
}

// GetReady returns 200 only when the database and cache both answer
func (h *HealthHandler) GetReady(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	checks := gin.H{"database": "ok", "cache": "ok"}
	ready := true

	if err := h.db.HealthCheck(); err != nil {
		checks["database"] = err.Error()
		ready = false
	}
	if err := h.cache.Ping(ctx); err != nil {
		checks["cache"] = err.Error()
		ready = false
	}

	if !ready {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "not_ready", "checks": checks})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ready", "checks": checks})
}
