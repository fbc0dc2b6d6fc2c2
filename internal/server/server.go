package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/vzahanych/skyfetch/internal/app"
	"github.com/vzahanych/skyfetch/internal/config"
	"github.com/vzahanych/skyfetch/internal/owm"
	"github.com/vzahanych/skyfetch/internal/render"
	"github.com/vzahanych/skyfetch/internal/server/handlers"
	"github.com/vzahanych/skyfetch/internal/server/middlewares"
	"github.com/vzahanych/skyfetch/pkg/telemetry"
	"go.uber.org/zap"
)

type Server struct {
	engine   *gin.Engine
	server   *http.Server
	searcher *app.Searcher
	metrics  *handlers.MetricsHandler
	logger   *zap.Logger
	tele     *telemetry.Telemetry
}

func NewServer(cfg *config.Config, logger *zap.Logger, tele *telemetry.Telemetry) *Server {
	httpMetrics := middlewares.NewHTTPMetrics()
	metrics := handlers.NewMetricsHandler(httpMetrics)

	client := owm.NewClient(cfg.Weather, logger.Named("owm"), tele)
	client.SetMetricsRecorder(metrics)

	searcher := app.NewSearcher(client, cfg.Forecast.Timezone, logger.Named("search"))
	searcher.SetMetricsRecorder(metrics)

	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.SetHTMLTemplate(render.Templates())

	engine.Use(middlewares.RequestIDMiddleware())
	engine.Use(middlewares.LoggingMiddleware(logger))
	engine.Use(middlewares.RecoveryMiddleware(logger, true))
	engine.Use(middlewares.TelemetryMiddleware(logger, tele))
	engine.Use(httpMetrics.Handler())

	s := &Server{
		engine: engine,
		server: &http.Server{
			Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
			Handler:      engine,
			ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
			WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
			IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
		},
		searcher: searcher,
		metrics:  metrics,
		logger:   logger,
		tele:     tele,
	}

	s.setupRoutes()

	return s
}

func (s *Server) setupRoutes() {
	weather := handlers.NewWeatherHandler(s.searcher, s.logger)
	health := handlers.NewHealthHandler()

	// Page
	s.engine.GET("/", weather.Index)
	s.engine.GET("/search", weather.SearchPage)

	// API
	s.engine.GET("/api/weather", weather.GetWeather)

	// Health endpoints (Kubernetes friendly)
	s.engine.GET("/health", health.Health)
	s.engine.GET("/health/live", health.Liveness)
	s.engine.GET("/health/ready", health.Readiness)

	// Monitoring endpoints
	s.engine.GET("/metrics", s.metrics.ServeMetrics)
}

// Handler returns the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Start blocks until the server stops. A clean Shutdown returns nil.
func (s *Server) Start() error {
	s.logger.Info("Starting server", zap.String("addr", s.server.Addr))
	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}
