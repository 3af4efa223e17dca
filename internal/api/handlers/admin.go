package handlers

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/stitts-dev/nfl-edge/internal/providers"
	"github.com/stitts-dev/nfl-edge/internal/services"
	"github.com/stitts-dev/nfl-edge/pkg/utils"
)

type Warmer interface {
	WarmNow(ctx context.Context) (services.WarmStats, error)
	GetStatus() map[string]interface{}
}

type BreakerReporter interface {
	Status() map[string]providers.BreakerStatus
}

type AdminHandler struct {
	warmer   Warmer
	breakers BreakerReporter
	logger   *logrus.Logger
}

func NewAdminHandler(warmer Warmer, breakers BreakerReporter, logger *logrus.Logger) *AdminHandler {
	return &AdminHandler{warmer: warmer, breakers: breakers, logger: logger}
}

// WarmCache runs a prefetch pass for the current week and reports what it fetched
func (h *AdminHandler) WarmCache(c *gin.Context) {
	stats, err := h.warmer.WarmNow(c.Request.Context())
	if err != nil {
		h.logger.WithError(err).WithField("component", "admin_handler").Error("Manual cache warm failed")
		c.Error(err)
		utils.SendInternalError(c, "Cache warm failed: "+err.Error())
		return
	}
	utils.SendSuccess(c, stats)
}

// GetStatus reports the warmer's job state and each upstream breaker
func (h *AdminHandler) GetStatus(c *gin.Context) {
	utils.SendSuccess(c, gin.H{
		"warmer":           h.warmer.GetStatus(),
		"circuit_breakers": h.breakers.Status(),
	})
}
