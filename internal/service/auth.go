package service

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"log/slog"
	"math/big"
	"time"

	"github.com/google/uuid"

	domainauth "github.com/sportsbazar/catalog-api/internal/domain/auth"
	"github.com/sportsbazar/catalog-api/internal/ports"
)

// stateAlphabet matches the anti-forgery token alphabet used by the login page.
const stateAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

const stateLength = 32

// AuthServiceOptions groups dependencies for AuthService.
type AuthServiceOptions struct {
	Provider ports.AuthProvider
	Sessions ports.SessionStore
	Identity *IdentityService
	ClientID string        // audience expected on introspected tokens
	StateTTL time.Duration // lifetime of a pending (pre-connect) session
	Logger   *slog.Logger  // optional
}

// AuthService orchestrates the login flow: anti-forgery state issuance, the
// provider callback with its token checks, and session teardown.
type AuthService struct {
	provider ports.AuthProvider
	sessions ports.SessionStore
	identity *IdentityService
	clientID string
	stateTTL time.Duration
	logger   *slog.Logger
}

// NewAuthService constructs a new AuthService.
func NewAuthService(opts AuthServiceOptions) *AuthService {
	stateTTL := opts.StateTTL
	if stateTTL == 0 {
		stateTTL = 10 * time.Minute
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &AuthService{
		provider: opts.Provider,
		sessions: opts.Sessions,
		identity: opts.Identity,
		clientID: opts.ClientID,
		stateTTL: stateTTL,
		logger:   logger,
	}
}

// PendingLogin describes a freshly issued login attempt.
type PendingLogin struct {
	SessionID string
	State     string
	AuthURL   string
}

// BeginLogin issues a pending session carrying a fresh anti-forgery state
// token and returns the provider consent URL.
func (s *AuthService) BeginLogin(ctx context.Context) (*PendingLogin, error) {
	state, err := generateStateToken()
	if err != nil {
		return nil, fmt.Errorf("generate state token: %w", err)
	}

	sess := domainauth.Session{
		ID:        generateSessionID(),
		State:     state,
		ExpiresAt: time.Now().Add(s.stateTTL),
	}
	if saveErr := s.sessions.Save(ctx, sess); saveErr != nil {
		return nil, fmt.Errorf("save pending session: %w", saveErr)
	}

	return &PendingLogin{
		SessionID: sess.ID,
		State:     state,
		AuthURL:   s.provider.AuthCodeURL(state),
	}, nil
}

// LoginResult is the outcome of a completed provider callback.
type LoginResult struct {
	Session          domainauth.Session
	AlreadyConnected bool
}

// CompleteLogin validates the provider callback and establishes the
// authenticated session. The checks run in a fixed order so each failure maps
// to one sentinel error.
func (s *AuthService) CompleteLogin(ctx context.Context, sessionID, returnedState, code string) (*LoginResult, error) {
	sess, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		if errors.Is(err, domainauth.ErrSessionNotFound) {
			return nil, domainauth.ErrStateMismatch
		}
		return nil, fmt.Errorf("get session: %w", err)
	}
	if returnedState == "" || returnedState != sess.State {
		return nil, domainauth.ErrStateMismatch
	}

	cred, err := s.provider.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domainauth.ErrExchangeFailed, err)
	}

	info, err := s.provider.Introspect(ctx, cred.AccessToken)
	if err != nil {
		if errors.Is(err, domainauth.ErrProviderError) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %w", domainauth.ErrProviderError, err)
	}

	if info.UserID != cred.Subject {
		return nil, domainauth.ErrTokenUserMismatch
	}
	if info.Audience != s.clientID {
		s.logger.Warn("token issued to a different client", "audience", info.Audience)
		return nil, domainauth.ErrClientMismatch
	}

	// Repeat callback for an already-established session is a no-op.
	if sess.Connected() && sess.Provider == domainauth.ProviderGoogle && sess.Subject == cred.Subject {
		return &LoginResult{Session: sess, AlreadyConnected: true}, nil
	}

	identity, err := s.provider.UserInfo(ctx, cred.AccessToken)
	if err != nil {
		return nil, fmt.Errorf("fetch user info: %w", err)
	}
	if identity.Subject == "" {
		identity.Subject = cred.Subject
	}

	userID, err := s.identity.EnsureUser(ctx, identity)
	if err != nil {
		return nil, fmt.Errorf("ensure user: %w", err)
	}

	sess.Provider = domainauth.ProviderGoogle
	sess.AccessToken = cred.AccessToken
	sess.Subject = cred.Subject
	sess.UserID = userID
	sess.Username = identity.Name
	sess.Email = identity.Email
	sess.Picture = identity.Picture
	sess.ExpiresAt = cred.Expiry

	if saveErr := s.sessions.Save(ctx, sess); saveErr != nil {
		return nil, fmt.Errorf("save session: %w", saveErr)
	}

	return &LoginResult{Session: sess}, nil
}

// GetSession retrieves a session by ID with an expiry double-check.
func (s *AuthService) GetSession(ctx context.Context, sessionID string) (*domainauth.Session, error) {
	if sessionID == "" {
		return nil, domainauth.ErrSessionNotFound
	}

	sess, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if time.Now().After(sess.ExpiresAt) {
		if deleteErr := s.sessions.Delete(ctx, sessionID); deleteErr != nil {
			return nil, errors.Join(domainauth.ErrSessionNotFound, fmt.Errorf("delete session: %w", deleteErr))
		}
		return nil, domainauth.ErrSessionNotFound
	}
	return &sess, nil
}

// Disconnect revokes the session's provider token and clears the provider
// fields, keeping the session itself alive.
func (s *AuthService) Disconnect(ctx context.Context, sessionID string) error {
	sess, err := s.GetSession(ctx, sessionID)
	if err != nil {
		if errors.Is(err, domainauth.ErrSessionNotFound) {
			return domainauth.ErrNotConnected
		}
		return fmt.Errorf("get session: %w", err)
	}
	if !sess.Connected() {
		return domainauth.ErrNotConnected
	}

	if revokeErr := s.provider.Revoke(ctx, sess.AccessToken); revokeErr != nil {
		return fmt.Errorf("%w: %w", domainauth.ErrRevokeFailed, revokeErr)
	}

	sess.Provider = ""
	sess.AccessToken = ""
	sess.Subject = ""
	if saveErr := s.sessions.Save(ctx, *sess); saveErr != nil {
		return fmt.Errorf("save session: %w", saveErr)
	}
	return nil
}

// Logout tears down the session. Google sessions get a best-effort token
// revoke first; revoke failures are logged and teardown proceeds.
func (s *AuthService) Logout(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return nil
	}

	sess, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		if errors.Is(err, domainauth.ErrSessionNotFound) {
			return nil
		}
		return fmt.Errorf("get session: %w", err)
	}

	if sess.Provider == domainauth.ProviderGoogle && sess.Connected() {
		if revokeErr := s.provider.Revoke(ctx, sess.AccessToken); revokeErr != nil {
			s.logger.Warn("token revoke failed during logout", "error", revokeErr)
		}
	}

	if deleteErr := s.sessions.Delete(ctx, sessionID); deleteErr != nil {
		return fmt.Errorf("delete session: %w", deleteErr)
	}
	return nil
}

// generateStateToken draws a 32-character token from the uppercase
// alphanumeric alphabet.
func generateStateToken() (string, error) {
	out := make([]byte, stateLength)
	max := big.NewInt(int64(len(stateAlphabet)))
	for i := range out {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		out[i] = stateAlphabet[n.Int64()]
	}
	return string(out), nil
}

// generateSessionID creates a cryptographically secure random session ID.
func generateSessionID() string {
	return uuid.New().String()
}
