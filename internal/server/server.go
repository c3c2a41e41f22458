// Package server wires configuration, the upstream client, the state
// stores, and the HTTP surface into a runnable process.
package server

import (
	"context"
	"net/http"

	"go.uber.org/zap"

	"prize-portal-service/internal/api"
	"prize-portal-service/internal/config"
	"prize-portal-service/internal/httpapi"
	"prize-portal-service/internal/metrics"
	"prize-portal-service/internal/persist"
	"prize-portal-service/internal/refresher"
	"prize-portal-service/internal/services/cart"
	"prize-portal-service/internal/services/champions"
	"prize-portal-service/internal/services/competitions"
	"prize-portal-service/internal/services/content"
	"prize-portal-service/internal/services/draws"
	"prize-portal-service/internal/services/users"
	"prize-portal-service/internal/store/browse"
	"prize-portal-service/internal/store/ui"
)

var metricsSetup = metrics.Setup

// Server owns the process lifecycle.
type Server struct {
	cfg         config.Config
	logger      *zap.Logger
	recorder    *metrics.Recorder
	browse      *browse.Store
	ui          *ui.Store
	refresher   *refresher.Refresher
	httpServer  httpServer
	metricsStop func(context.Context) error
}

// New wires a Server from configuration.
func New(cfg config.Config, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}

	recorder, metricsHandler, metricsStop := buildMetrics(cfg, logger)

	client := api.New(api.Config{
		BaseURL:     cfg.API.BaseURL,
		RefreshPath: cfg.API.RefreshPath,
		UserAgent:   cfg.API.UserAgent,
		HTTPClient:  &http.Client{Timeout: cfg.API.Timeout},
		Logger:      logger,
		Recorder:    recorder,
	})

	blobs := persist.NewFile(cfg.Persist.Path)
	browseStore := browse.New(browse.Options{Persist: blobs, Recorder: recorder, Logger: logger})
	uiStore := ui.New(ui.Options{Persist: blobs, Recorder: recorder, Logger: logger})

	competitionSvc := competitions.NewService(client, logger)

	ref := refresher.New(refresher.Options{
		Fetcher:  competitionSvc,
		Store:    browseStore,
		Logger:   logger,
		Interval: cfg.Refresh.Interval,
		PageSize: uiStore.State().PageSize,
	})

	handler := httpapi.NewHandler(httpapi.HandlerConfig{
		Competitions: competitionSvc,
		Draws:        draws.NewService(client, logger),
		Champions:    champions.NewService(client, logger),
		Cart:         cart.NewService(client, logger),
		Users:        users.NewService(client, logger),
		Content:      content.NewService(client, logger),
		Browse:       browseStore,
		UI:           uiStore,
		Ready:        func() bool { return !cfg.Refresh.Enabled || ref.Status().IsReady() },
		Refresh:      ref.RefreshNow,
		Logger:       logger,
	})
	router := httpapi.NewRouter(httpapi.RouterConfig{
		Handler:  handler,
		Logger:   logger,
		Recorder: recorder,
		Metrics:  metricsHandler,
	})

	return &Server{
		cfg:       cfg,
		logger:    logger,
		recorder:  recorder,
		browse:    browseStore,
		ui:        uiStore,
		refresher: ref,
		httpServer: netHTTPServer{srv: &http.Server{
			Addr:              ":" + cfg.Port,
			Handler:           router,
			ReadTimeout:       readTimeout,
			ReadHeaderTimeout: readHeaderTimeout,
			WriteTimeout:      writeTimeout,
			IdleTimeout:       idleTimeout,
		}},
		metricsStop: metricsStop,
	}
}

// Run starts the refresher and HTTP server, then waits for context
// cancellation to shut down gracefully.
func (s *Server) Run(ctx context.Context, stop context.CancelFunc) {
	if s.cfg.Refresh.Enabled {
		s.refresher.Start(ctx)
	}

	s.logger.Info("http server starting", zap.String("addr", s.httpServer.Addr()))
	go func() {
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			s.logger.Warn("http server failed", zap.Error(err))
			if stop != nil {
				stop()
			}
		}
	}()

	<-ctx.Done()
	s.logger.Info("shutdown signal received")
	s.gracefulShutdown()
}

func (s *Server) gracefulShutdown() {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := s.refresher.Stop(shutdownCtx); err != nil {
		s.logger.Error("failed to stop refresher", zap.Error(err))
	}

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		s.logger.Error("graceful shutdown failed", zap.Error(err))
	}

	if s.metricsStop != nil {
		if err := s.metricsStop(shutdownCtx); err != nil {
			s.logger.Warn("metrics shutdown failed", zap.Error(err))
		}
	}

	s.logger.Info("shutdown complete")
}

// Handler exposes the HTTP handler for tests.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler()
}

func buildMetrics(cfg config.Config, logger *zap.Logger) (*metrics.Recorder, http.Handler, func(context.Context) error) {
	rec, handler, shutdown, err := metricsSetup(context.Background(), metrics.TelemetryConfig{
		Enabled:      cfg.Metrics.Enabled,
		ServiceName:  "prize-portal-service",
		OtlpEndpoint: cfg.Metrics.OtlpEndpoint,
		OtlpInsecure: cfg.Metrics.OtlpInsecure,
	})
	if err != nil {
		logger.Warn("metrics setup failed, continuing without telemetry", zap.Error(err))
		return metrics.NewRecorder(), nil, nil
	}
	return rec, handler, shutdown
}
