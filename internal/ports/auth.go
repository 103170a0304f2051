package ports

// Package ports defines interfaces (hexagonal ports) for auth-related behavior.
// Implementations live in internal/adapters; orchestration in internal/service.

import (
	"context"
	"time"

	domainauth "github.com/sportsbazar/catalog-api/internal/domain/auth"
)

// Credential is the bundle returned by the authorization-code exchange.
type Credential struct {
	AccessToken string
	Subject     string // verified subject of the issued token
	Expiry      time.Time
}

// TokenInfo describes an access token as reported by the provider's
// introspection endpoint.
type TokenInfo struct {
	UserID    string // subject the token was issued for
	Audience  string // client the token was issued to
	Email     string
	ExpiresIn int // seconds until expiry
}

// AuthProvider executes the provider half of the login flow: building the
// consent URL, exchanging the one-time code, validating the resulting token,
// fetching the user profile, and revoking tokens on disconnect.
type AuthProvider interface {
	// AuthCodeURL returns the provider consent URL carrying the state token.
	AuthCodeURL(state string) string

	// Exchange converts an authorization code into a credential bundle.
	Exchange(ctx context.Context, code string) (Credential, error)

	// Introspect validates an access token against the provider's
	// token-introspection endpoint.
	Introspect(ctx context.Context, accessToken string) (TokenInfo, error)

	// UserInfo fetches the provider's profile for the token's user.
	UserInfo(ctx context.Context, accessToken string) (domainauth.Identity, error)

	// Revoke invalidates an access token at the provider.
	Revoke(ctx context.Context, accessToken string) error
}

// SessionStore persists and retrieves browser sessions.
type SessionStore interface {
	Save(ctx context.Context, sess domainauth.Session) error
	Get(ctx context.Context, id string) (domainauth.Session, error)
	Delete(ctx context.Context, id string) error
}
