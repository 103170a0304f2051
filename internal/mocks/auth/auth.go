package auth

// Package auth contains simple hand-written test doubles for auth ports.
// These are lightweight and suitable for unit tests without codegen.

import (
	"context"
	"errors"
	"time"

	domainauth "github.com/sportsbazar/catalog-api/internal/domain/auth"
	"github.com/sportsbazar/catalog-api/internal/ports"
)

// Ensure compile-time conformance to ports.
var (
	_ ports.AuthProvider = (*MockAuthProvider)(nil)
	_ ports.SessionStore = (*MemorySessionStore)(nil)
)

// MockAuthProvider simulates an OAuth provider for tests. Each operation can
// be overridden with a func field; otherwise deterministic defaults apply.
type MockAuthProvider struct {
	AuthCodeURLFunc func(state string) string
	ExchangeFunc    func(ctx context.Context, code string) (ports.Credential, error)
	IntrospectFunc  func(ctx context.Context, accessToken string) (ports.TokenInfo, error)
	UserInfoFunc    func(ctx context.Context, accessToken string) (domainauth.Identity, error)
	RevokeFunc      func(ctx context.Context, accessToken string) error

	// Deterministic values for predictable testing.
	DefaultClientID string
	DefaultIdentity domainauth.Identity

	// Call tracking.
	RevokedTokens []string
}

// NewMockAuthProvider creates a MockAuthProvider with sensible defaults.
func NewMockAuthProvider() *MockAuthProvider {
	return &MockAuthProvider{
		DefaultClientID: "mock-client",
		DefaultIdentity: domainauth.Identity{
			Subject: "mock-subject-1",
			Name:    "Mock User",
			Email:   "mock.user@example.com",
			Picture: "https://example.com/mock.png",
		},
	}
}

func (m *MockAuthProvider) AuthCodeURL(state string) string {
	if m.AuthCodeURLFunc != nil {
		return m.AuthCodeURLFunc(state)
	}
	return "https://mock-provider/auth?state=" + state
}

func (m *MockAuthProvider) Exchange(ctx context.Context, code string) (ports.Credential, error) {
	if m.ExchangeFunc != nil {
		return m.ExchangeFunc(ctx, code)
	}
	if code == "" {
		return ports.Credential{}, errors.New("authorization code is required")
	}
	return ports.Credential{
		AccessToken: "mock-token-" + code,
		Subject:     m.DefaultIdentity.Subject,
		Expiry:      time.Now().Add(time.Hour),
	}, nil
}

func (m *MockAuthProvider) Introspect(ctx context.Context, accessToken string) (ports.TokenInfo, error) {
	if m.IntrospectFunc != nil {
		return m.IntrospectFunc(ctx, accessToken)
	}
	return ports.TokenInfo{
		UserID:    m.DefaultIdentity.Subject,
		Audience:  m.DefaultClientID,
		Email:     m.DefaultIdentity.Email,
		ExpiresIn: 3600,
	}, nil
}

func (m *MockAuthProvider) UserInfo(ctx context.Context, accessToken string) (domainauth.Identity, error) {
	if m.UserInfoFunc != nil {
		return m.UserInfoFunc(ctx, accessToken)
	}
	return m.DefaultIdentity, nil
}

func (m *MockAuthProvider) Revoke(ctx context.Context, accessToken string) error {
	if m.RevokeFunc != nil {
		return m.RevokeFunc(ctx, accessToken)
	}
	m.RevokedTokens = append(m.RevokedTokens, accessToken)
	return nil
}

// MemorySessionStore is an in-memory session store for unit tests. Set GetErr
// to simulate a store outage on reads.
type MemorySessionStore struct {
	sessions map[string]domainauth.Session

	GetErr error
}

// NewMemorySessionStore creates a new in-memory session store.
func NewMemorySessionStore() *MemorySessionStore {
	return &MemorySessionStore{
		sessions: make(map[string]domainauth.Session),
	}
}

func (m *MemorySessionStore) Save(_ context.Context, sess domainauth.Session) error {
	if sess.ID == "" {
		return errors.New("session ID cannot be empty")
	}
	m.sessions[sess.ID] = sess
	return nil
}

func (m *MemorySessionStore) Get(_ context.Context, id string) (domainauth.Session, error) {
	if m.GetErr != nil {
		return domainauth.Session{}, m.GetErr
	}
	if id == "" {
		return domainauth.Session{}, domainauth.ErrSessionNotFound
	}
	sess, ok := m.sessions[id]
	if !ok {
		return domainauth.Session{}, domainauth.ErrSessionNotFound
	}
	return sess, nil
}

func (m *MemorySessionStore) Delete(_ context.Context, id string) error {
	if id == "" {
		return nil
	}
	delete(m.sessions, id)
	return nil
}

// Len reports the number of stored sessions.
func (m *MemorySessionStore) Len() int { return len(m.sessions) }
