package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/stitts-dev/nfl-edge/internal/api"
	"github.com/stitts-dev/nfl-edge/internal/bootstrap"
	"github.com/stitts-dev/nfl-edge/pkg/config"
	"github.com/stitts-dev/nfl-edge/pkg/logger"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		logrus.Fatalf("Failed to load config: %v", err)
	}

	log := logger.InitLogger(cfg.LogLevel, cfg.IsDevelopment())
	if cfg.IsDevelopment() {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx := context.Background()
	app, err := bootstrap.New(ctx, cfg, log)
	if err != nil {
		log.Fatalf("Failed to initialize: %v", err)
	}
	defer app.Close()

	if err := app.StartBackgroundJobs(); err != nil {
		log.Errorf("Failed to start background jobs: %v", err)
	}

	router := api.NewRouter(api.Dependencies{
		Analyzer:   app.Analyzer,
		Warmer:     app.Warmer,
		Breakers:   app.Breakers,
		DB:         app.DB,
		Cache:      app.Cache,
		JWTSecret:  cfg.JWTSecret,
		MaxCompare: cfg.MaxCompare,
		Logger:     log,
	})

	if cfg.IsDevelopment() {
		for _, route := range router.Routes() {
			log.Debugf("%s %s", route.Method, route.Path)
		}
	}

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.WithService(log, "nfl-edge").WithFields(logrus.Fields{
			"port":   cfg.Port,
			"season": cfg.Season,
			"cache":  cfg.CacheBackend,
		}).Info("Starting edge analysis server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Errorf("Server forced to shutdown: %v", err)
	}

	log.Info("Server exited")
}
