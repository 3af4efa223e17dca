package api

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/stitts-dev/nfl-edge/internal/api/handlers"
	"github.com/stitts-dev/nfl-edge/internal/api/middleware"
)

// Dependencies are the collaborators the HTTP layer is built from.
type Dependencies struct {
	Analyzer   handlers.EdgeAnalyzer
	Warmer     handlers.Warmer
	Breakers   handlers.BreakerReporter
	DB         handlers.DatabaseChecker
	Cache      handlers.CachePinger
	JWTSecret  string
	MaxCompare int
	Logger     *logrus.Logger
}

// NewRouter builds the engine with middleware, probes and the /api/v1 group
func NewRouter(deps Dependencies) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.RequestLogger(deps.Logger))
	router.Use(middleware.CORS())

	healthHandler := handlers.NewHealthHandler(deps.DB, deps.Cache)
	router.GET("/health", healthHandler.GetHealth)
	router.GET("/ready", healthHandler.GetReady)

	SetupRoutes(router.Group("/api/v1"), deps)
	return router
}

// SetupRoutes configures all API routes on the given router group
func SetupRoutes(group *gin.RouterGroup, deps Dependencies) {
	edgeHandler := handlers.NewEdgeHandler(deps.Analyzer, deps.MaxCompare, deps.Logger)
	adminHandler := handlers.NewAdminHandler(deps.Warmer, deps.Breakers, deps.Logger)

	group.GET("/edge/players/:identity", edgeHandler.GetPlayerEdge)
	group.POST("/edge/compare", edgeHandler.ComparePlayers)

	admin := group.Group("/admin")
	admin.Use(middleware.AuthRequired(deps.JWTSecret))
	{
		admin.POST("/warm", adminHandler.WarmCache)
		admin.GET("/status", adminHandler.GetStatus)
	}
}
