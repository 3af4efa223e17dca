package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/stitts-dev/nfl-edge/internal/edge"
	"github.com/stitts-dev/nfl-edge/pkg/logger"
	"github.com/stitts-dev/nfl-edge/pkg/utils"
)

// EdgeAnalyzer is the slice of edge.Analyzer the HTTP layer needs.
type EdgeAnalyzer interface {
	AnalyzePlayer(ctx context.Context, identity string, week *int) (*edge.EdgeAnalysis, error)
	Compare(ctx context.Context, identities []string, week *int) (*edge.Comparison, error)
}

type EdgeHandler struct {
	analyzer   EdgeAnalyzer
	maxCompare int
	logger     *logrus.Logger
}

func NewEdgeHandler(analyzer EdgeAnalyzer, maxCompare int, logger *logrus.Logger) *EdgeHandler {
	if maxCompare < 2 {
		maxCompare = 2
	}
	return &EdgeHandler{
		analyzer:   analyzer,
		maxCompare: maxCompare,
		logger:     logger,
	}
}

type CompareRequest struct {
	Players []string `json:"players" binding:"required"`
	Week    *int     `json:"week"`
}

// GetPlayerEdge analyzes one player for the requested (or current) week
func (h *EdgeHandler) GetPlayerEdge(c *gin.Context) {
	identity := strings.TrimSpace(c.Param("identity"))
	if identity == "" {
		utils.SendValidationError(c, "Player identity is required", "")
		return
	}

	week, err := parseWeek(c.Query("week"))
	if err != nil {
		utils.SendValidationError(c, "Invalid week", err.Error())
		return
	}

	start := time.Now()
	analysis, err := h.analyzer.AnalyzePlayer(c.Request.Context(), identity, week)
	if err != nil {
		h.sendAnalysisError(c, err, identity)
		return
	}

	utils.SendSuccessWithMeta(c, analysis, &utils.Meta{
		Week:    analysis.Week,
		Elapsed: time.Since(start).String(),
	})
}

// ComparePlayers ranks several players side by side
func (h *EdgeHandler) ComparePlayers(c *gin.Context) {
	var req CompareRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, "Invalid request body", err.Error())
		return
	}

	identities := make([]string, 0, len(req.Players))
	seen := make(map[string]bool, len(req.Players))
	for _, p := range req.Players {
		p = strings.TrimSpace(p)
		key := strings.ToLower(p)
		if p == "" || seen[key] {
			continue
		}
		seen[key] = true
		identities = append(identities, p)
	}

	if len(identities) < 2 {
		utils.SendValidationError(c, "At least two distinct players are required", "")
		return
	}
	if len(identities) > h.maxCompare {
		utils.SendValidationError(c, "Too many players", "maximum is "+strconv.Itoa(h.maxCompare))
		return
	}
	if req.Week != nil && *req.Week < 1 {
		utils.SendValidationError(c, "Invalid week", "week must be at least 1")
		return
	}

	start := time.Now()
	cmp, err := h.analyzer.Compare(c.Request.Context(), identities, req.Week)
	if err != nil {
		h.sendAnalysisError(c, err, strings.Join(identities, ","))
		return
	}

	meta := &utils.Meta{Total: int64(len(cmp.Analyses)), Elapsed: time.Since(start).String()}
	if len(cmp.Analyses) > 0 {
		meta.Week = cmp.Analyses[0].Week
	}
	utils.SendSuccessWithMeta(c, cmp, meta)
}

func (h *EdgeHandler) sendAnalysisError(c *gin.Context, err error, identity string) {
	if code, ok := resolutionCode(err); ok {
		utils.SendError(c, http.StatusNotFound, utils.NewAppError(code, err.Error()))
		return
	}
	if errors.Is(err, context.Canceled) {
		c.Status(499)
		return
	}

	logger.WithCorrelationID(c.Request.Context(), h.logger.WithError(err)).WithFields(logrus.Fields{
		"component": "edge_handler",
		"identity":  identity,
	}).Error("Edge analysis failed")
	c.Error(err)
	utils.SendInternalError(c, "Failed to analyze player")
}

func resolutionCode(err error) (string, bool) {
	switch {
	case errors.Is(err, edge.ErrPlayerNotFound):
		return utils.ErrCodePlayerNotFound, true
	case errors.Is(err, edge.ErrNoTeamAssigned):
		return utils.ErrCodeNoTeamAssigned, true
	case errors.Is(err, edge.ErrNoScheduledGame):
		return utils.ErrCodeNoScheduledGame, true
	}
	return "", false
}

func parseWeek(raw string) (*int, error) {
	if raw == "" {
		return nil, nil
	}
	week, err := strconv.Atoi(raw)
	if err != nil {
		return nil, err
	}
	if week < 1 {
		return nil, errors.New("week must be at least 1")
	}
	return &week, nil
}
