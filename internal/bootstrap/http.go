package bootstrap

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/sportsbazar/catalog-api/config"
	httpx "github.com/sportsbazar/catalog-api/internal/http"
	"github.com/sportsbazar/catalog-api/internal/observability/metrics"
)

// HTTPServerConfig contains configuration for the HTTP server.
type HTTPServerConfig struct {
	Config   *config.AppConfig
	Services ServiceContainer
	Logger   *slog.Logger

	// ErrCh receives a fatal listen error, if one occurs.
	ErrCh chan<- error
}

// StartHTTPServer creates and starts the HTTP server.
// Returns the server instance for graceful shutdown.
func StartHTTPServer(cfg *HTTPServerConfig) *http.Server {
	if cfg == nil {
		return nil
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	appCfg := cfg.Config
	if appCfg == nil {
		appCfg = &config.AppConfig{}
	}

	var metricsHandler http.Handler
	if cfg.Services.Registry != nil {
		metricsHandler = metrics.SetupMetricsRoute(cfg.Services.Registry)
	}

	var recorder httpx.MetricsRecorder
	if cfg.Services.Metrics != nil {
		recorder = cfg.Services.Metrics
	}

	handler := httpx.NewRouter(httpx.RouterServices{
		Categories:     cfg.Services.Categories,
		Items:          cfg.Services.Items,
		Auth:           cfg.Services.Auth,
		Users:          cfg.Services.Users,
		Guard:          cfg.Services.Guard,
		Metrics:        recorder,
		MetricsHandler: metricsHandler,
		RateLimitRPS:   appCfg.HTTP.RateLimitRPS,
		RateLimitBurst: appCfg.HTTP.RateLimitBurst,
		Logger:         logger,
	})

	return startServer(logger, handler, appCfg.HTTP, cfg.ErrCh)
}

func startServer(logger *slog.Logger, handler http.Handler, cfg config.HTTPConfig, errCh chan<- error) *http.Server {
	addr := cfg.Addr
	// Guard against empty addr to avoid listening on Go default
	if addr == "" {
		addr = ":8080"
	}

	server := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		logger.Info("starting HTTP server", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("HTTP server failed", "error", err)
			if errCh != nil {
				errCh <- err
			}
		}
	}()

	return server
}

// ShutdownConfig contains dependencies for HTTP server shutdown.
type ShutdownConfig struct {
	Context context.Context
	Server  *http.Server
	Logger  *slog.Logger
}

// ShutdownHTTPServer gracefully shuts down the HTTP server.
func ShutdownHTTPServer(cfg ShutdownConfig) error {
	if cfg.Server == nil {
		return nil
	}

	if cfg.Logger != nil {
		cfg.Logger.Info("shutting down HTTP server")
	}

	if err := cfg.Server.Shutdown(cfg.Context); err != nil {
		return err
	}

	if cfg.Logger != nil {
		cfg.Logger.Info("HTTP server stopped")
	}

	return nil
}
