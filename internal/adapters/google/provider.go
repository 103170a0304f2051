package google

// Package google implements ports.AuthProvider against Google's OAuth2
// endpoints: authorization-code exchange, tokeninfo introspection, userinfo,
// and token revocation.

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	gooidc "github.com/coreos/go-oidc/v3/oidc"
	"golang.org/x/oauth2"

	domainauth "github.com/sportsbazar/catalog-api/internal/domain/auth"
	"github.com/sportsbazar/catalog-api/internal/ports"
)

const (
	defaultIssuerURL    = "https://accounts.google.com"
	defaultTokenInfoURL = "https://www.googleapis.com/oauth2/v1/tokeninfo"
	defaultUserInfoURL  = "https://www.googleapis.com/oauth2/v1/userinfo"
	defaultRevokeURL    = "https://accounts.google.com/o/oauth2/revoke"
)

// Config holds configuration for the Google provider.
type Config struct {
	ClientID     string
	ClientSecret string
	RedirectURL  string
	Scopes       []string

	// IssuerURL is the OIDC issuer used for discovery and ID-token
	// verification. Defaults to Google's issuer.
	IssuerURL string

	// Endpoint overrides the discovered OAuth2 endpoint. When set,
	// discovery is skipped and ID tokens are not signature-verified;
	// intended for tests against local servers.
	Endpoint *oauth2.Endpoint

	// Overridable for tests.
	TokenInfoURL string
	UserInfoURL  string
	RevokeURL    string

	HTTPClient *http.Client // Optional, defaults to a 30s-timeout client
}

// Provider implements ports.AuthProvider using Google's OAuth2 endpoints.
type Provider struct {
	oauth      *oauth2.Config
	verifier   *gooidc.IDTokenVerifier
	httpClient *http.Client

	tokenInfoURL string
	userInfoURL  string
	revokeURL    string
}

// NewProvider creates a new Google provider. Unless cfg.Endpoint is set it
// performs OIDC discovery against the issuer.
func NewProvider(ctx context.Context, cfg Config) (*Provider, error) {
	if cfg.ClientID == "" {
		return nil, errors.New("client ID is required")
	}
	if cfg.ClientSecret == "" {
		return nil, errors.New("client secret is required")
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}

	scopes := cfg.Scopes
	if len(scopes) == 0 {
		scopes = []string{gooidc.ScopeOpenID, "email", "profile"}
	}

	p := &Provider{
		httpClient:   httpClient,
		tokenInfoURL: valueOrDefault(cfg.TokenInfoURL, defaultTokenInfoURL),
		userInfoURL:  valueOrDefault(cfg.UserInfoURL, defaultUserInfoURL),
		revokeURL:    valueOrDefault(cfg.RevokeURL, defaultRevokeURL),
	}

	oc := &oauth2.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		RedirectURL:  cfg.RedirectURL,
		Scopes:       scopes,
	}

	if cfg.Endpoint != nil {
		oc.Endpoint = *cfg.Endpoint
	} else {
		ctx = context.WithValue(ctx, oauth2.HTTPClient, httpClient)
		issuer := valueOrDefault(cfg.IssuerURL, defaultIssuerURL)
		op, err := gooidc.NewProvider(ctx, issuer)
		if err != nil {
			return nil, fmt.Errorf("oidc discovery: %w", err)
		}
		oc.Endpoint = op.Endpoint()
		p.verifier = op.Verifier(&gooidc.Config{ClientID: cfg.ClientID})
	}

	p.oauth = oc
	return p, nil
}

// AuthCodeURL returns the Google consent URL carrying the state token.
func (p *Provider) AuthCodeURL(state string) string {
	return p.oauth.AuthCodeURL(state, oauth2.AccessTypeOnline)
}

// Exchange converts a one-time authorization code into a credential bundle.
// The subject comes from the returned ID token; when a verifier is available
// the token signature is checked as well.
func (p *Provider) Exchange(ctx context.Context, code string) (ports.Credential, error) {
	if code == "" {
		return ports.Credential{}, errors.New("authorization code is required")
	}

	ctx = context.WithValue(ctx, oauth2.HTTPClient, p.httpClient)
	token, err := p.oauth.Exchange(ctx, code)
	if err != nil {
		return ports.Credential{}, fmt.Errorf("exchange code for token: %w", err)
	}

	subject, err := p.subjectFromIDToken(ctx, token)
	if err != nil {
		return ports.Credential{}, err
	}

	expiry := token.Expiry
	if expiry.IsZero() {
		expiry = time.Now().Add(time.Hour)
	}

	return ports.Credential{
		AccessToken: token.AccessToken,
		Subject:     subject,
		Expiry:      expiry,
	}, nil
}

// tokenInfoResponse is Google's tokeninfo payload. Legacy and current field
// names are both accepted.
type tokenInfoResponse struct {
	UserID    string `json:"user_id"`
	Sub       string `json:"sub"`
	IssuedTo  string `json:"issued_to"`
	Audience  string `json:"audience"`
	Email     string `json:"email"`
	ExpiresIn int    `json:"expires_in"`
	Error     string `json:"error"`
	ErrorDesc string `json:"error_description"`
}

// Introspect validates an access token against the tokeninfo endpoint.
func (p *Provider) Introspect(ctx context.Context, accessToken string) (ports.TokenInfo, error) {
	u := p.tokenInfoURL + "?access_token=" + url.QueryEscape(accessToken)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return ports.TokenInfo{}, fmt.Errorf("build tokeninfo request: %w", err)
	}

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return ports.TokenInfo{}, fmt.Errorf("tokeninfo request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return ports.TokenInfo{}, fmt.Errorf("read tokeninfo response: %w", err)
	}

	var info tokenInfoResponse
	if jsonErr := json.Unmarshal(body, &info); jsonErr != nil {
		return ports.TokenInfo{}, fmt.Errorf("parse tokeninfo response: %w", jsonErr)
	}
	if info.Error != "" {
		msg := info.Error
		if info.ErrorDesc != "" {
			msg = info.ErrorDesc
		}
		return ports.TokenInfo{}, fmt.Errorf("%w: %s", domainauth.ErrProviderError, msg)
	}
	if resp.StatusCode != http.StatusOK {
		return ports.TokenInfo{}, fmt.Errorf("%w: tokeninfo returned status %d", domainauth.ErrProviderError, resp.StatusCode)
	}

	return ports.TokenInfo{
		UserID:    firstNonEmpty(info.UserID, info.Sub),
		Audience:  firstNonEmpty(info.IssuedTo, info.Audience),
		Email:     info.Email,
		ExpiresIn: info.ExpiresIn,
	}, nil
}

// userInfoResponse is Google's userinfo payload.
type userInfoResponse struct {
	Sub     string `json:"sub"`
	ID      string `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Picture string `json:"picture"`
}

// UserInfo fetches the Google profile for the token's user.
func (p *Provider) UserInfo(ctx context.Context, accessToken string) (domainauth.Identity, error) {
	u := p.userInfoURL + "?alt=json&access_token=" + url.QueryEscape(accessToken)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return domainauth.Identity{}, fmt.Errorf("build userinfo request: %w", err)
	}

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return domainauth.Identity{}, fmt.Errorf("userinfo request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return domainauth.Identity{}, fmt.Errorf("userinfo returned status %d", resp.StatusCode)
	}

	var ui userInfoResponse
	if decErr := json.NewDecoder(resp.Body).Decode(&ui); decErr != nil {
		return domainauth.Identity{}, fmt.Errorf("parse userinfo response: %w", decErr)
	}

	return domainauth.Identity{
		Subject: firstNonEmpty(ui.Sub, ui.ID),
		Name:    ui.Name,
		Email:   ui.Email,
		Picture: ui.Picture,
	}, nil
}

// Revoke invalidates an access token at Google.
func (p *Provider) Revoke(ctx context.Context, accessToken string) error {
	u := p.revokeURL + "?token=" + url.QueryEscape(accessToken)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("build revoke request: %w", err)
	}

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("revoke request: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("revoke returned status %d", resp.StatusCode)
	}
	return nil
}

// subjectFromIDToken extracts the sub claim from the token response's
// id_token. With a verifier configured the signature is validated first.
func (p *Provider) subjectFromIDToken(ctx context.Context, token *oauth2.Token) (string, error) {
	raw, ok := token.Extra("id_token").(string)
	if !ok || raw == "" {
		return "", errors.New("missing id_token in token response")
	}

	if p.verifier != nil {
		idToken, err := p.verifier.Verify(ctx, raw)
		if err != nil {
			return "", fmt.Errorf("verify id_token: %w", err)
		}
		return idToken.Subject, nil
	}

	// Unverified decode, used only when the endpoint is overridden.
	parts := strings.Split(raw, ".")
	if len(parts) != 3 {
		return "", errors.New("malformed id_token")
	}
	payload, err := base64.RawURLEncoding.DecodeString(parts[1])
	if err != nil {
		return "", fmt.Errorf("decode id_token payload: %w", err)
	}
	var claims struct {
		Sub string `json:"sub"`
	}
	if jsonErr := json.Unmarshal(payload, &claims); jsonErr != nil {
		return "", fmt.Errorf("parse id_token claims: %w", jsonErr)
	}
	if claims.Sub == "" {
		return "", errors.New("id_token has no subject")
	}
	return claims.Sub, nil
}

func valueOrDefault(v, def string) string {
	if v != "" {
		return v
	}
	return def
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
