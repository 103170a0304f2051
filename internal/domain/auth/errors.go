package auth

import "errors"

// Sentinel errors for the login flow. Handlers translate these into the
// HTTP status/body contract of the /gconnect and /gdisconnect endpoints.
var (
	// ErrStateMismatch indicates the returned state differs from the
	// anti-forgery token issued at login start.
	ErrStateMismatch = errors.New("state token mismatch")

	// ErrExchangeFailed indicates the provider rejected the authorization code.
	ErrExchangeFailed = errors.New("authorization code exchange failed")

	// ErrProviderError indicates token introspection reported an error.
	ErrProviderError = errors.New("provider reported token error")

	// ErrTokenUserMismatch indicates the introspected token's subject does not
	// match the credential bundle's subject.
	ErrTokenUserMismatch = errors.New("token user mismatch")

	// ErrClientMismatch indicates the token was issued to a different client.
	ErrClientMismatch = errors.New("token client mismatch")

	// ErrNotConnected indicates a disconnect was requested for a session that
	// holds no provider access token.
	ErrNotConnected = errors.New("current user not connected")

	// ErrRevokeFailed indicates the provider refused to revoke the access
	// token. The session keeps its credentials.
	ErrRevokeFailed = errors.New("token revoke failed")

	// ErrSessionNotFound indicates no session exists for the presented id.
	ErrSessionNotFound = errors.New("session not found")
)
