package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata"

	"github.com/sirupsen/logrus"

	"github.com/stitts-dev/nfl-edge/internal/bootstrap"
	"github.com/stitts-dev/nfl-edge/internal/mcptools"
	"github.com/stitts-dev/nfl-edge/pkg/config"
	"github.com/stitts-dev/nfl-edge/pkg/logger"
)

const version = "0.3.0"

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		logrus.Fatalf("Failed to load config: %v", err)
	}

	log := logger.InitLogger(cfg.LogLevel, cfg.IsDevelopment())

	app, err := bootstrap.New(context.Background(), cfg, log)
	if err != nil {
		log.Fatalf("Failed to initialize: %v", err)
	}
	defer app.Close()

	if cfg.MCPAPIKey == "" {
		log.Warn("MCP_API_KEY not set, MCP endpoint is unauthenticated")
	}

	server, registry := mcptools.New(app.Analyzer, cfg.MaxCompare, log).NewServer(version)

	srv := &http.Server{
		Addr:              cfg.MCPAddr,
		Handler:           mcptools.Handler(server, registry, cfg.MCPPath, cfg.MCPAPIKey),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.WithService(log, "nfl-edge-mcp").WithFields(logrus.Fields{
			"addr":  cfg.MCPAddr,
			"path":  cfg.MCPPath,
			"tools": len(registry),
		}).Info("MCP HTTP server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start MCP server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down MCP server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Errorf("MCP server forced to shutdown: %v", err)
	}
}
