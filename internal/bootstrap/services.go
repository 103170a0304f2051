package bootstrap

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"

	"github.com/sportsbazar/catalog-api/config"
	"github.com/sportsbazar/catalog-api/internal/core"
	"github.com/sportsbazar/catalog-api/internal/data"
	domainauth "github.com/sportsbazar/catalog-api/internal/domain/auth"
	"github.com/sportsbazar/catalog-api/internal/observability/metrics"
	"github.com/sportsbazar/catalog-api/internal/service"
)

// ServiceContainer holds all constructed services and shared collaborators.
type ServiceContainer struct {
	Categories *service.CategoryService
	Items      *service.ItemService
	Identity   *service.IdentityService
	Auth       *service.AuthService

	Users core.UserRepository
	Guard domainauth.Guard

	Metrics  *metrics.Collector
	Registry *prometheus.Registry
}

// ServiceDeps contains external dependencies for building services.
type ServiceDeps struct {
	Config      *config.AppConfig
	DB          *sql.DB
	RedisClient redis.UniversalClient
	Logger      *slog.Logger
}

// NewServices wires repositories, services, and observability together. The
// administrator account is provisioned here so category ownership always has
// a valid user to point at.
func NewServices(ctx context.Context, deps *ServiceDeps) (ServiceContainer, error) {
	if deps == nil || deps.Config == nil {
		return ServiceContainer{}, errors.New("service deps with config are required")
	}
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}

	users := data.NewUserRepo(deps.DB)
	categories := data.NewCategoryRepo(deps.DB)
	items := data.NewItemRepo(deps.DB)

	identity := service.NewIdentityService(service.IdentityServiceOptions{Users: users})

	adminID, err := identity.EnsureUser(ctx, domainauth.Identity{
		Name:  "Administrator",
		Email: deps.Config.Auth.AdminEmail,
	})
	if err != nil {
		return ServiceContainer{}, fmt.Errorf("provision admin user %s: %w", deps.Config.Auth.AdminEmail, err)
	}

	authSvc, err := BuildAuthService(ctx, AuthBuildConfig{
		Auth:        deps.Config.Auth,
		RedisClient: deps.RedisClient,
		Identity:    identity,
		Logger:      logger,
	})
	if err != nil {
		return ServiceContainer{}, err
	}

	registry := prometheus.NewRegistry()
	collector := metrics.NewCollector(registry)

	return ServiceContainer{
		Categories: service.NewCategoryService(service.CategoryServiceOptions{
			Categories:  categories,
			Items:       items,
			AdminUserID: adminID,
		}),
		Items: service.NewItemService(service.ItemServiceOptions{
			Items:      items,
			Categories: categories,
		}),
		Identity: identity,
		Auth:     authSvc,
		Users:    users,
		Guard:    domainauth.Guard{AdminEmail: deps.Config.Auth.AdminEmail},
		Metrics:  collector,
		Registry: registry,
	}, nil
}

// ServiceOrchestrationConfig contains everything RunServicesWithShutdown needs.
type ServiceOrchestrationConfig struct {
	Config   *config.AppConfig
	Services ServiceContainer
	Logger   *slog.Logger
}

// RunServicesWithShutdown starts the HTTP server and manages its lifecycle.
// This function blocks until a shutdown signal is received or the server
// fails.
func RunServicesWithShutdown(cfg *ServiceOrchestrationConfig) error {
	if cfg == nil || cfg.Config == nil {
		return errors.New("service orchestration config is required")
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	errCh := make(chan error, 1)
	server := StartHTTPServer(&HTTPServerConfig{
		Config:   cfg.Config,
		Services: cfg.Services,
		Logger:   logger,
		ErrCh:    errCh,
	})

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	shutdownTimeout := cfg.Config.HTTP.ShutdownTimeout
	if shutdownTimeout <= 0 {
		shutdownTimeout = 10 * time.Second
	}

	select {
	case <-quit:
		logger.Info("shutting down services...")
		return shutdownServer(server, shutdownTimeout, logger)
	case err := <-errCh:
		logger.Error("http server error", "error", err)
		if stopErr := shutdownServer(server, shutdownTimeout, logger); stopErr != nil {
			logger.Error("graceful stop failed", "error", stopErr)
		}
		return err
	}
}

func shutdownServer(server *http.Server, timeout time.Duration, logger *slog.Logger) error {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return ShutdownHTTPServer(ShutdownConfig{
		Context: shutdownCtx,
		Server:  server,
		Logger:  logger,
	})
}
