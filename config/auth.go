package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"
)

// AuthMode represents the authentication mode for the application.
type AuthMode string

const (
	// AuthModeOAuth uses the Google sign-in flow for authentication.
	AuthModeOAuth AuthMode = "oauth"
	// AuthModeMock uses mock/dev authentication (for development only).
	AuthModeMock AuthMode = "mock"
)

// UnmarshalText implements encoding.TextUnmarshaler for AuthMode.
func (a *AuthMode) UnmarshalText(text []byte) error {
	v := strings.ToLower(string(text))
	switch v {
	case "oauth", "mock":
		*a = AuthMode(v)
		return nil
	default:
		return fmt.Errorf("invalid AuthMode: %q (valid options: oauth, mock)", v)
	}
}

// GoogleConfig contains the Google OAuth client configuration.
type GoogleConfig struct {
	ClientID     string `env:"CLIENT_ID"`
	ClientSecret string `env:"CLIENT_SECRET"`
	RedirectURL  string `env:"REDIRECT_URL" envDefault:"http://localhost:8080/gconnect"`
	Scope        string `env:"SCOPE"        envDefault:"openid profile email"`
	IssuerURL    string `env:"ISSUER_URL"`

	// ClientSecretsFile points at a Google client_secrets.json download.
	// When set, its values fill in ClientID/ClientSecret/RedirectURL unless
	// those were provided directly.
	ClientSecretsFile string `env:"CLIENT_SECRETS_FILE"`
}

// DevAuthConfig controls mock/dev authentication identity.
// Used when AUTH_MODE=mock for development and testing.
type DevAuthConfig struct {
	Subject string `env:"SUBJECT" envDefault:"dev-subject-1"`
	Name    string `env:"NAME"    envDefault:"Dev User"`
	Email   string `env:"EMAIL"   envDefault:"dev@example.com"`
	Picture string `env:"PICTURE" envDefault:""`
}

// AuthConfig groups all authentication-related configuration.
type AuthConfig struct {
	// Mode determines which authentication provider to use.
	Mode AuthMode `env:"AUTH_MODE" envDefault:"oauth"`

	// Google configuration (used when Mode=oauth).
	Google GoogleConfig `envPrefix:"GOOGLE_"`

	// DevAuth configuration (used when Mode=mock).
	DevAuth DevAuthConfig `envPrefix:"DEV_AUTH_"`

	// AdminEmail identifies the administrator account. Only this user may
	// add, rename, or delete categories.
	AdminEmail string `env:"ADMIN_EMAIL" envDefault:"admin@example.com"`

	// SessionTTL bounds a signed-in session's lifetime.
	SessionTTL time.Duration `env:"SESSION_TTL" envDefault:"8h"`

	// StateTTL bounds how long a pending login may sit between the sign-in
	// page and the provider callback.
	StateTTL time.Duration `env:"STATE_TTL" envDefault:"10m"`
}

// Sanitize applies guardrails to auth configuration values.
func (a *AuthConfig) Sanitize() {
	if a.SessionTTL <= 0 {
		a.SessionTTL = 8 * time.Hour
	}
	if a.StateTTL <= 0 {
		a.StateTTL = 10 * time.Minute
	}
}

// clientSecretsFile mirrors the layout of a client_secrets.json download
// from the Google API console.
type clientSecretsFile struct {
	Web struct {
		ClientID     string   `json:"client_id"`
		ClientSecret string   `json:"client_secret"`
		RedirectURIs []string `json:"redirect_uris"`
	} `json:"web"`
}

// ApplyClientSecretsFile reads the configured secrets file, if any, and fills
// in credentials that were not set through the environment.
func (g *GoogleConfig) ApplyClientSecretsFile() error {
	if g.ClientSecretsFile == "" {
		return nil
	}
	data, err := os.ReadFile(g.ClientSecretsFile)
	if err != nil {
		return fmt.Errorf("read client secrets file: %w", err)
	}
	var secrets clientSecretsFile
	if err := json.Unmarshal(data, &secrets); err != nil {
		return fmt.Errorf("parse client secrets file %s: %w", g.ClientSecretsFile, err)
	}
	if secrets.Web.ClientID == "" {
		return fmt.Errorf("client secrets file %s has no web.client_id", g.ClientSecretsFile)
	}

	if g.ClientID == "" {
		g.ClientID = secrets.Web.ClientID
	}
	if g.ClientSecret == "" {
		g.ClientSecret = secrets.Web.ClientSecret
	}
	if g.RedirectURL == "" && len(secrets.Web.RedirectURIs) > 0 {
		g.RedirectURL = secrets.Web.RedirectURIs[0]
	}
	return nil
}
