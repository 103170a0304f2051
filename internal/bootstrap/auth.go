package bootstrap

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/redis/go-redis/v9"

	"github.com/sportsbazar/catalog-api/config"
	"github.com/sportsbazar/catalog-api/internal/adapters/devauth"
	"github.com/sportsbazar/catalog-api/internal/adapters/google"
	redisadapter "github.com/sportsbazar/catalog-api/internal/adapters/redis"
	"github.com/sportsbazar/catalog-api/internal/service"
)

const devClientID = "dev-client"

// AuthBuildConfig contains dependencies for building the auth service.
type AuthBuildConfig struct {
	Auth        config.AuthConfig
	RedisClient redis.UniversalClient
	Identity    *service.IdentityService
	Logger      *slog.Logger
}

// BuildAuthService creates an auth service based on the configured auth mode.
func BuildAuthService(ctx context.Context, cfg AuthBuildConfig) (*service.AuthService, error) {
	sessionStore := redisadapter.NewSessionStoreWithPrefix(cfg.RedisClient, "session:")

	switch cfg.Auth.Mode {
	case config.AuthModeMock:
		return buildDevAuthService(cfg, sessionStore)
	case config.AuthModeOAuth:
		return buildGoogleAuthService(ctx, cfg, sessionStore)
	default:
		return nil, fmt.Errorf("unsupported auth mode %q", cfg.Auth.Mode)
	}
}

func buildDevAuthService(cfg AuthBuildConfig, sessionStore *redisadapter.SessionStore) (*service.AuthService, error) {
	prov, err := devauth.NewProvider(devauth.Config{
		Subject:         cfg.Auth.DevAuth.Subject,
		Name:            cfg.Auth.DevAuth.Name,
		Email:           cfg.Auth.DevAuth.Email,
		Picture:         cfg.Auth.DevAuth.Picture,
		ClientID:        devClientID,
		SessionDuration: cfg.Auth.SessionTTL,
	})
	if err != nil {
		return nil, fmt.Errorf("dev auth provider: %w", err)
	}

	if cfg.Logger != nil {
		cfg.Logger.Warn("using dev auth provider; not for production",
			"email", cfg.Auth.DevAuth.Email)
	}

	return service.NewAuthService(service.AuthServiceOptions{
		Provider: prov,
		Sessions: sessionStore,
		Identity: cfg.Identity,
		ClientID: devClientID,
		StateTTL: cfg.Auth.StateTTL,
		Logger:   cfg.Logger,
	}), nil
}

func buildGoogleAuthService(ctx context.Context, cfg AuthBuildConfig, sessionStore *redisadapter.SessionStore) (*service.AuthService, error) {
	g := cfg.Auth.Google
	if g.ClientID == "" || g.ClientSecret == "" {
		return nil, fmt.Errorf("auth mode %q requires GOOGLE_CLIENT_ID and GOOGLE_CLIENT_SECRET", config.AuthModeOAuth)
	}

	prov, err := google.NewProvider(ctx, google.Config{
		ClientID:     g.ClientID,
		ClientSecret: g.ClientSecret,
		RedirectURL:  g.RedirectURL,
		Scopes:       strings.Fields(g.Scope),
		IssuerURL:    g.IssuerURL,
	})
	if err != nil {
		return nil, fmt.Errorf("google provider: %w", err)
	}

	return service.NewAuthService(service.AuthServiceOptions{
		Provider: prov,
		Sessions: sessionStore,
		Identity: cfg.Identity,
		ClientID: g.ClientID,
		StateTTL: cfg.Auth.StateTTL,
		Logger:   cfg.Logger,
	}), nil
}
