package devauth

// Package devauth provides a simple, config-driven AuthProvider for local development.

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"net/url"
	"time"

	domainauth "github.com/sportsbazar/catalog-api/internal/domain/auth"
	"github.com/sportsbazar/catalog-api/internal/ports"
)

// Config controls the dev auth provider behavior.
type Config struct {
	Subject         string
	Name            string
	Email           string
	Picture         string
	ClientID        string        // default "dev-client"
	SessionDuration time.Duration // default 8h when zero
}

// Provider implements ports.AuthProvider for local development. It
// short-circuits the OAuth flow: the consent URL points back at our own
// connect endpoint, Exchange ignores the code, and introspection always
// agrees with the configured identity.
type Provider struct {
	identity        domainauth.Identity
	clientID        string
	sessionDuration time.Duration
	revoked         bool
}

// NewProvider constructs a dev auth provider from Config.
func NewProvider(cfg Config) (*Provider, error) {
	if cfg.Subject == "" {
		return nil, errors.New("dev auth: Subject is required")
	}
	if cfg.Email == "" {
		return nil, errors.New("dev auth: Email is required")
	}
	dur := cfg.SessionDuration
	if dur == 0 {
		dur = 8 * time.Hour
	}
	clientID := cfg.ClientID
	if clientID == "" {
		clientID = "dev-client"
	}
	name := cfg.Name
	if name == "" {
		name = cfg.Email
	}
	return &Provider{
		identity: domainauth.Identity{
			Subject: cfg.Subject,
			Name:    name,
			Email:   cfg.Email,
			Picture: cfg.Picture,
		},
		clientID:        clientID,
		sessionDuration: dur,
	}, nil
}

// AuthCodeURL returns a local connect URL carrying the state token.
func (p *Provider) AuthCodeURL(state string) string {
	return "/gconnect?code=dev&state=" + url.QueryEscape(state)
}

// Exchange ignores the provided code and returns a credential for the
// configured identity.
func (p *Provider) Exchange(_ context.Context, code string) (ports.Credential, error) {
	if code == "" {
		return ports.Credential{}, errors.New("authorization code is required")
	}
	token, err := randomString(24)
	if err != nil {
		return ports.Credential{}, err
	}
	p.revoked = false
	return ports.Credential{
		AccessToken: "dev-" + token,
		Subject:     p.identity.Subject,
		Expiry:      time.Now().Add(p.sessionDuration),
	}, nil
}

// Introspect reports the configured identity for any non-revoked dev token.
func (p *Provider) Introspect(_ context.Context, accessToken string) (ports.TokenInfo, error) {
	if accessToken == "" || p.revoked {
		return ports.TokenInfo{}, errors.New("invalid token")
	}
	return ports.TokenInfo{
		UserID:    p.identity.Subject,
		Audience:  p.clientID,
		Email:     p.identity.Email,
		ExpiresIn: int(p.sessionDuration / time.Second),
	}, nil
}

// UserInfo returns the configured identity.
func (p *Provider) UserInfo(_ context.Context, _ string) (domainauth.Identity, error) {
	return p.identity, nil
}

// Revoke marks the dev token revoked.
func (p *Provider) Revoke(_ context.Context, _ string) error {
	p.revoked = true
	return nil
}

func randomString(n int) (string, error) {
	if n <= 0 {
		return "", nil
	}
	bLen := (n*3 + 3) / 4
	b := make([]byte, bLen)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	s := base64.RawURLEncoding.EncodeToString(b)
	if len(s) < n {
		extra := make([]byte, 1)
		if _, err := rand.Read(extra); err != nil {
			return "", err
		}
		s += base64.RawURLEncoding.EncodeToString(extra)
	}
	return s[:n], nil
}
