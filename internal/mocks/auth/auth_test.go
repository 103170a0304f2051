package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainauth "github.com/sportsbazar/catalog-api/internal/domain/auth"
	"github.com/sportsbazar/catalog-api/internal/ports"
)

func TestMockAuthProvider_Defaults(t *testing.T) {
	provider := NewMockAuthProvider()
	ctx := context.Background()

	u := provider.AuthCodeURL("state-1")
	assert.Equal(t, "https://mock-provider/auth?state=state-1", u)

	cred, err := provider.Exchange(ctx, "code-1")
	require.NoError(t, err)
	assert.Equal(t, "mock-token-code-1", cred.AccessToken)
	assert.Equal(t, "mock-subject-1", cred.Subject)

	info, err := provider.Introspect(ctx, cred.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "mock-subject-1", info.UserID)
	assert.Equal(t, "mock-client", info.Audience)

	identity, err := provider.UserInfo(ctx, cred.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "mock.user@example.com", identity.Email)

	require.NoError(t, provider.Revoke(ctx, cred.AccessToken))
	assert.Equal(t, []string{cred.AccessToken}, provider.RevokedTokens)
}

func TestMockAuthProvider_Overrides(t *testing.T) {
	provider := &MockAuthProvider{
		ExchangeFunc: func(_ context.Context, _ string) (ports.Credential, error) {
			return ports.Credential{}, errors.New("exchange refused")
		},
		RevokeFunc: func(_ context.Context, _ string) error {
			return errors.New("revoke refused")
		},
	}
	ctx := context.Background()

	_, err := provider.Exchange(ctx, "code")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "exchange refused")

	err = provider.Revoke(ctx, "token")
	require.Error(t, err)
	assert.Empty(t, provider.RevokedTokens)
}

func TestMemorySessionStore(t *testing.T) {
	store := NewMemorySessionStore()
	ctx := context.Background()

	err := store.Save(ctx, domainauth.Session{})
	require.Error(t, err)

	sess := domainauth.Session{ID: "s1", State: "STATE", ExpiresAt: time.Now().Add(time.Hour)}
	require.NoError(t, store.Save(ctx, sess))
	assert.Equal(t, 1, store.Len())

	got, err := store.Get(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, "STATE", got.State)

	_, err = store.Get(ctx, "missing")
	assert.ErrorIs(t, err, domainauth.ErrSessionNotFound)

	require.NoError(t, store.Delete(ctx, "s1"))
	_, err = store.Get(ctx, "s1")
	assert.ErrorIs(t, err, domainauth.ErrSessionNotFound)
}
