package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	env "github.com/caarlos0/env/v11"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppConfig_Defaults(t *testing.T) {
	var cfg AppConfig
	require.NoError(t, env.Parse(&cfg))
	cfg.Sanitize()

	assert.False(t, cfg.IsDev)
	assert.Equal(t, AuthModeOAuth, cfg.Auth.Mode)
	assert.Equal(t, "admin@example.com", cfg.Auth.AdminEmail)
	assert.Equal(t, 8*time.Hour, cfg.Auth.SessionTTL)
	assert.Equal(t, 10*time.Minute, cfg.Auth.StateTTL)

	assert.Equal(t, "localhost", cfg.Postgres.Host)
	assert.Equal(t, 5432, cfg.Postgres.Port)
	assert.Equal(t, "catalog", cfg.Postgres.Name)
	assert.True(t, cfg.Postgres.RunMigrationsOnStart)

	assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
	assert.Equal(t, ":8080", cfg.HTTP.Addr)
	assert.Equal(t, float64(25), cfg.HTTP.RateLimitRPS)
}

func TestAppConfig_EnvOverrides(t *testing.T) {
	t.Setenv("AUTH_MODE", "mock")
	t.Setenv("ADMIN_EMAIL", "owner@sportsbazar.example")
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("DB_PORT", "5433")
	t.Setenv("REDIS_ADDR", "redis.internal:6380")
	t.Setenv("HTTP_ADDR", ":9090")
	t.Setenv("GOOGLE_CLIENT_ID", "client-123")

	var cfg AppConfig
	require.NoError(t, env.Parse(&cfg))
	cfg.Sanitize()

	assert.Equal(t, AuthModeMock, cfg.Auth.Mode)
	assert.Equal(t, "owner@sportsbazar.example", cfg.Auth.AdminEmail)
	assert.Equal(t, "db.internal", cfg.Postgres.Host)
	assert.Equal(t, 5433, cfg.Postgres.Port)
	assert.Equal(t, "redis.internal:6380", cfg.Redis.Addr)
	assert.Equal(t, ":9090", cfg.HTTP.Addr)
	assert.Equal(t, "client-123", cfg.Auth.Google.ClientID)
}

func TestAuthMode_UnmarshalText(t *testing.T) {
	var mode AuthMode
	require.NoError(t, mode.UnmarshalText([]byte("OAuth")))
	assert.Equal(t, AuthModeOAuth, mode)

	require.NoError(t, mode.UnmarshalText([]byte("mock")))
	assert.Equal(t, AuthModeMock, mode)

	err := mode.UnmarshalText([]byte("saml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid AuthMode")
}

func TestAppConfig_DetectDevMode(t *testing.T) {
	t.Setenv("APP_ENV", "development")

	var cfg AppConfig
	require.NoError(t, env.Parse(&cfg))
	cfg.Sanitize()

	assert.True(t, cfg.IsDev)
}

func TestHTTPConfig_Sanitize(t *testing.T) {
	h := HTTPConfig{RateLimitRPS: -3, RateLimitBurst: 0}
	h.Sanitize()
	assert.Equal(t, float64(0), h.RateLimitRPS)
	assert.Equal(t, 10*time.Second, h.ReadTimeout)

	h = HTTPConfig{RateLimitRPS: 10, RateLimitBurst: 0}
	h.Sanitize()
	assert.Equal(t, 10, h.RateLimitBurst)
}

func TestGoogleConfig_ApplyClientSecretsFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "client_secrets.json")
	secrets := `{"web":{"client_id":"file-client","client_secret":"file-secret","redirect_uris":["http://localhost:8080/gconnect"]}}`
	require.NoError(t, os.WriteFile(path, []byte(secrets), 0o600))

	g := GoogleConfig{ClientSecretsFile: path}
	require.NoError(t, g.ApplyClientSecretsFile())
	assert.Equal(t, "file-client", g.ClientID)
	assert.Equal(t, "file-secret", g.ClientSecret)

	// Environment values win over the file.
	g = GoogleConfig{ClientSecretsFile: path, ClientID: "env-client", RedirectURL: "http://env"}
	require.NoError(t, g.ApplyClientSecretsFile())
	assert.Equal(t, "env-client", g.ClientID)
	assert.Equal(t, "http://env", g.RedirectURL)
}

func TestGoogleConfig_ApplyClientSecretsFile_Errors(t *testing.T) {
	g := GoogleConfig{ClientSecretsFile: filepath.Join(t.TempDir(), "missing.json")}
	require.Error(t, g.ApplyClientSecretsFile())

	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"web":{}}`), 0o600))
	g = GoogleConfig{ClientSecretsFile: path}
	err := g.ApplyClientSecretsFile()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no web.client_id")

	// No file configured is not an error.
	g = GoogleConfig{}
	require.NoError(t, g.ApplyClientSecretsFile())
}
