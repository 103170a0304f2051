package google

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"

	domainauth "github.com/sportsbazar/catalog-api/internal/domain/auth"
)

// fakeIDToken builds an unsigned JWT carrying the given subject.
func fakeIDToken(t *testing.T, sub string) string {
	t.Helper()
	header := base64.RawURLEncoding.EncodeToString([]byte(`{"alg":"none"}`))
	payload, err := json.Marshal(map[string]string{"sub": sub})
	require.NoError(t, err)
	return header + "." + base64.RawURLEncoding.EncodeToString(payload) + ".sig"
}

func newTestProvider(t *testing.T, srv *httptest.Server) *Provider {
	t.Helper()
	p, err := NewProvider(context.Background(), Config{
		ClientID:     "client-123.apps.googleusercontent.com",
		ClientSecret: "shhh",
		RedirectURL:  "postmessage",
		Endpoint: &oauth2.Endpoint{
			AuthURL:  srv.URL + "/auth",
			TokenURL: srv.URL + "/token",
		},
		TokenInfoURL: srv.URL + "/tokeninfo",
		UserInfoURL:  srv.URL + "/userinfo",
		RevokeURL:    srv.URL + "/revoke",
		HTTPClient:   srv.Client(),
	})
	require.NoError(t, err)
	return p
}

func TestProvider_AuthCodeURL(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()

	p := newTestProvider(t, srv)
	u := p.AuthCodeURL("STATE123")
	assert.Contains(t, u, srv.URL+"/auth")
	assert.Contains(t, u, "state=STATE123")
	assert.Contains(t, u, "client_id=client-123")
}

func TestProvider_Exchange(t *testing.T) {
	var idToken string
	mux := http.NewServeMux()
	mux.HandleFunc("/token", func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		if r.Form.Get("code") != "good-code" {
			w.WriteHeader(http.StatusBadRequest)
			fmt.Fprint(w, `{"error":"invalid_grant"}`)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{"access_token":"tok-1","token_type":"Bearer","expires_in":3600,"id_token":%q}`, idToken)
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	p := newTestProvider(t, srv)
	idToken = fakeIDToken(t, "subject-42")

	cred, err := p.Exchange(context.Background(), "good-code")
	require.NoError(t, err)
	assert.Equal(t, "tok-1", cred.AccessToken)
	assert.Equal(t, "subject-42", cred.Subject)
	assert.False(t, cred.Expiry.IsZero())

	_, err = p.Exchange(context.Background(), "bad-code")
	require.Error(t, err)

	_, err = p.Exchange(context.Background(), "")
	require.Error(t, err)
}

func TestProvider_Introspect(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/tokeninfo", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Query().Get("access_token") {
		case "valid":
			fmt.Fprint(w, `{"user_id":"subject-42","issued_to":"client-123.apps.googleusercontent.com","email":"user@example.com","expires_in":3599}`)
		default:
			w.WriteHeader(http.StatusBadRequest)
			fmt.Fprint(w, `{"error":"invalid_token","error_description":"Invalid Value"}`)
		}
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	p := newTestProvider(t, srv)

	info, err := p.Introspect(context.Background(), "valid")
	require.NoError(t, err)
	assert.Equal(t, "subject-42", info.UserID)
	assert.Equal(t, "client-123.apps.googleusercontent.com", info.Audience)
	assert.Equal(t, "user@example.com", info.Email)
	assert.Equal(t, 3599, info.ExpiresIn)

	_, err = p.Introspect(context.Background(), "expired")
	require.Error(t, err)
	assert.ErrorIs(t, err, domainauth.ErrProviderError)
	assert.Contains(t, err.Error(), "Invalid Value")
}

func TestProvider_UserInfo(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/userinfo", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("access_token") != "valid" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"sub":"subject-42","name":"Test User","email":"user@example.com","picture":"https://example.com/p.png"}`)
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	p := newTestProvider(t, srv)

	identity, err := p.UserInfo(context.Background(), "valid")
	require.NoError(t, err)
	assert.Equal(t, "subject-42", identity.Subject)
	assert.Equal(t, "Test User", identity.Name)
	assert.Equal(t, "user@example.com", identity.Email)
	assert.Equal(t, "https://example.com/p.png", identity.Picture)

	_, err = p.UserInfo(context.Background(), "nope")
	require.Error(t, err)
}

func TestProvider_Revoke(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/revoke", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("token") != "valid" {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	p := newTestProvider(t, srv)

	require.NoError(t, p.Revoke(context.Background(), "valid"))

	err := p.Revoke(context.Background(), "already-revoked")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 400")
}

func TestNewProvider_Validation(t *testing.T) {
	_, err := NewProvider(context.Background(), Config{ClientSecret: "s"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "client ID")

	_, err = NewProvider(context.Background(), Config{ClientID: "c"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "client secret")
}
