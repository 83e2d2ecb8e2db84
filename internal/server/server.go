package server

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"fortuna-data-service/internal/app/fortunes"
	"fortuna-data-service/internal/app/images"
	"fortuna-data-service/internal/app/profile"
	"fortuna-data-service/internal/auth"
	"fortuna-data-service/internal/config"
	"fortuna-data-service/internal/fortune"
	httpserver "fortuna-data-service/internal/http"
	"fortuna-data-service/internal/http/handlers"
	"fortuna-data-service/internal/http/middleware"
	"fortuna-data-service/internal/logging"
	"fortuna-data-service/internal/metrics"
	"fortuna-data-service/internal/providers"
	"fortuna-data-service/internal/scheduler"
)

var metricsSetup = metrics.Setup

// Server owns the assembled service: the fortune store, the app
// services, the janitor, and the HTTP listeners.
type Server struct {
	cfg      config.Config
	logger   *slog.Logger
	metrics  *metrics.Recorder
	store    *fortune.Store
	fortunes *fortunes.Service
	janitor  *scheduler.Janitor

	httpServer    httpServer
	metricsServer httpServer
	metricsStop   func(context.Context) error
	tokenStore    *auth.SQLiteStore
}

// New assembles the server from configuration.
func New(cfg config.Config, logger *slog.Logger) (*Server, error) {
	if logger == nil {
		logger = logging.NewLogger(logging.Config{})
	}

	recorder, metricsSrv, metricsStop := buildMetrics(cfg, logger)

	loc := providers.ResolveTimezone(cfg.Timezone)
	if loc == nil {
		loc = time.UTC
	}

	tokens, tokenStore, err := buildTokens(cfg, logger)
	if err != nil {
		return nil, err
	}

	provider := buildProvider(cfg, logger, recorder)
	store := fortune.NewStore(fortune.Options{
		Provider: provider,
		Tokens:   tokens,
		Logger:   logger,
		Recorder: recorder,
		Location: loc,
	})

	fortuneSvc := fortunes.NewService(store, nil, loc)
	profileSvc := profile.NewService(provider, tokens, logger)
	imageSvc := images.NewService(provider, tokens, logger)

	janitor := scheduler.New(store, fortuneSvc, scheduler.Config{
		CronSpec: cfg.RolloverCron,
		Prefetch: cfg.Prefetch,
	}, nil, loc, logger)

	httpSrv := buildHTTPServer(cfg, fortuneSvc, profileSvc, imageSvc, tokenStore, janitor, logger, recorder)

	return &Server{
		cfg:           cfg,
		logger:        logger,
		metrics:       recorder,
		store:         store,
		fortunes:      fortuneSvc,
		janitor:       janitor,
		httpServer:    httpSrv,
		metricsServer: metricsSrv,
		metricsStop:   metricsStop,
		tokenStore:    tokenStore,
	}, nil
}

// buildTokens picks the credential source: an explicit token wins, then
// the persisted store; with neither, every fetch fails as auth-required
// until a token arrives through the admin surface, which itself needs
// the persisted store to write to.
func buildTokens(cfg config.Config, logger *slog.Logger) (auth.TokenProvider, *auth.SQLiteStore, error) {
	if cfg.Auth.Token != "" {
		return auth.Static{Value: cfg.Auth.Token}, nil, nil
	}
	if cfg.Auth.DBPath != "" {
		store, err := auth.OpenSQLiteStore(cfg.Auth.DBPath, cfg.Auth.Namespace)
		if err != nil {
			return nil, nil, err
		}
		return store, store, nil
	}
	logging.Warn(logger, "no credential source configured, fetches will fail until one is set")
	return auth.Static{}, nil, nil
}

func buildHTTPServer(cfg config.Config, fortuneSvc *fortunes.Service, profileSvc *profile.Service, imageSvc *images.Service, tokenStore *auth.SQLiteStore, janitor *scheduler.Janitor, logger *slog.Logger, recorder *metrics.Recorder) httpServer {
	handler := handlers.NewHandler(fortuneSvc, profileSvc, imageSvc, logger, nil)

	var admin *handlers.AdminHandler
	if cfg.AdminToken != "" {
		var tokens handlers.TokenWriter
		if tokenStore != nil {
			tokens = tokenStore
		}
		admin = handlers.NewAdminHandler(fortuneSvc, tokens, janitor, cfg.AdminToken, logger)
	}

	router := httpserver.NewRouter(handler, admin)
	wrapped := middleware.LoggingMiddleware(logger, recorder, router)

	srv := &http.Server{
		Addr:        ":" + cfg.Port,
		Handler:     wrapped,
		ReadTimeout: readTimeout,
		IdleTimeout: idleTimeout,
		// No write timeout: /fortune/watch holds its response open.
	}
	return netHTTPServer{srv: srv}
}

func buildMetrics(cfg config.Config, logger *slog.Logger) (*metrics.Recorder, httpServer, func(context.Context) error) {
	telemetry := metrics.TelemetryConfig{
		Enabled:      cfg.Metrics.Enabled,
		Port:         cfg.Metrics.Port,
		ServiceName:  cfg.Metrics.ServiceName,
		OtlpEndpoint: cfg.Metrics.OtlpEndpoint,
		OtlpInsecure: cfg.Metrics.OtlpInsecure,
	}

	recorder, handler, shutdown, err := metricsSetup(context.Background(), telemetry)
	if err != nil {
		logging.Warn(logger, "metrics setup failed, continuing without telemetry", "error", err)
		return metrics.NewRecorder(), nil, nil
	}

	var metricsSrv httpServer
	if handler != nil && telemetry.Enabled {
		metricsSrv = netHTTPServer{srv: &http.Server{
			Addr:    ":" + telemetry.Port,
			Handler: handler,
		}}
	}
	return recorder, metricsSrv, shutdown
}

// Run starts the listeners and the janitor, then waits for context
// cancellation to shut down gracefully.
func (s *Server) Run(ctx context.Context, stop context.CancelFunc) {
	s.startMetrics()
	s.startServer(stop)
	if err := s.janitor.Start(); err != nil {
		logging.Error(s.logger, "janitor failed to start", err)
	}

	<-ctx.Done()
	logging.Info(s.logger, "shutdown signal received")
	s.gracefulShutdown()
}

func (s *Server) startServer(stop context.CancelFunc) {
	launchServer("http", s.httpServer, s.logger, func(err error) {
		if stop != nil {
			stop()
		}
	})
}

func (s *Server) startMetrics() {
	if s.metricsServer == nil {
		return
	}
	launchServer("metrics", s.metricsServer, s.logger, nil)
}

func (s *Server) gracefulShutdown() {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	s.janitor.Stop(shutdownCtx)

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		logging.Error(s.logger, "graceful shutdown failed", err)
	}

	if s.metricsStop != nil {
		if err := s.metricsStop(shutdownCtx); err != nil {
			logging.Warn(s.logger, "metrics shutdown failed", "error", err)
		}
	}
	if s.metricsServer != nil {
		if err := s.metricsServer.Shutdown(shutdownCtx); err != nil {
			logging.Warn(s.logger, "metrics server shutdown failed", "error", err)
		}
	}

	if s.tokenStore != nil {
		if err := s.tokenStore.Close(); err != nil {
			logging.Warn(s.logger, "token store close failed", "error", err)
		}
	}

	logging.Info(s.logger, "shutdown complete")
}

func launchServer(name string, srv httpServer, logger *slog.Logger, onError func(error)) {
	go func() {
		logging.Info(logger, "starting "+name+" server", slog.String("addr", srv.Addr()))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logging.Warn(logger, name+" server failed", "error", err)
			if onError != nil {
				onError(err)
			}
		}
	}()
}

// Handler exposes the HTTP handler, useful for tests.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler()
}
