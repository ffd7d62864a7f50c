package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"csv-insight-service/internal/adapters/primary/http/handlers"
	"csv-insight-service/internal/adapters/primary/http/middleware"
	"csv-insight-service/internal/adapters/secondary/chart"
	"csv-insight-service/internal/adapters/secondary/llm"
	"csv-insight-service/internal/adapters/secondary/memory"
	"csv-insight-service/internal/adapters/secondary/prometheus"
	"csv-insight-service/internal/adapters/secondary/tabular"
	"csv-insight-service/internal/config"
	"csv-insight-service/internal/core/services"

	"github.com/gin-gonic/gin"
	promclient "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/afero"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	initLogger(cfg)

	fs := afero.NewOsFs()
	if err := fs.MkdirAll(cfg.Charts.Dir, 0o755); err != nil {
		log.Fatalf("create chart directory: %v", err)
	}

	rootCtx, stop := context.WithCancel(context.Background())
	defer stop()

	// ============================================================================
	// Hexagonal Architecture Wiring
	// ============================================================================

	// Secondary Adapters
	model, err := llm.New(&cfg.LLM)
	if err != nil {
		log.Fatalf("create language model client: %v", err)
	}
	log.WithFields(log.Fields{
		"provider": cfg.LLM.Provider,
		"model":    cfg.LLM.Model,
	}).Info("language model client initialized")

	renderer := chart.NewRenderer(fs, cfg.Charts.Dir, cfg.Charts.TempDir)
	sessionRepo := memory.NewSessionRepository(cfg.Session.TTL)
	parser := tabular.NewParser()

	registry := promclient.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	metrics := prometheus.NewMetricsRecorder(registry)

	// Chart retention (optional - disabled when CHARTS_RETENTION is 0)
	if cfg.Charts.Retention > 0 {
		sweeper := chart.NewSweeper(fs, cfg.Charts.Dir, cfg.Charts.Retention)
		go sweeper.Run(rootCtx, cfg.Charts.SweepInterval)
		log.WithFields(log.Fields{
			"retention": cfg.Charts.Retention,
			"interval":  cfg.Charts.SweepInterval,
		}).Info("chart sweeper started")
	} else {
		log.Info("chart retention disabled; charts accumulate until removed manually")
	}

	// Core Services
	pipelineSvc := services.NewPipelineService(model, renderer, metrics)
	sessionSvc := services.NewSessionService(sessionRepo, parser, cfg.Session.PreviewLines)

	// Primary Adapter (HTTP Handlers)
	h := handlers.New(
		pipelineSvc,
		sessionSvc,
		handlers.SessionCookie{Name: cfg.Session.CookieName, MaxAge: cfg.Session.TTL},
		cfg.Charts.Route,
		cfg.Session.MaxUploadBytes,
	)

	// Setup router
	router := gin.New()
	router.Use(middleware.RequestID(), middleware.Logging(), gin.Recovery())

	api := router.Group("/api/v1/csv-insight")
	h.RegisterRoutes(api)

	router.StaticFS(cfg.Charts.Route, handlers.ChartFileSystem(fs, cfg.Charts.Dir))
	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(registry, promhttp.HandlerOpts{})))

	// Health check with chart directory probe
	router.GET("/healthz", func(c *gin.Context) {
		if _, err := fs.Stat(cfg.Charts.Dir); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unhealthy", "error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Start server
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	go func() {
		log.Infof("starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("shutting down server...")
	stop()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("server forced shutdown: %v", err)
	}

	log.Info("server stopped")
}

func initLogger(cfg *config.Config) {
	level, err := log.ParseLevel(cfg.Logger.Level)
	if err != nil {
		level = log.InfoLevel
	}
	log.SetLevel(level)

	if cfg.Logger.Format == "json" {
		log.SetFormatter(&log.JSONFormatter{})
	} else {
		log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	}
}
