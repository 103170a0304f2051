package auth

// Package auth contains domain-level types for authentication, sessions,
// and resource authorization. It is pure and free of framework/adapter concerns.

import (
	"strings"
	"time"
)

// ProviderGoogle identifies sessions established through the Google sign-in flow.
const ProviderGoogle = "google"

// Identity represents the authenticated principal returned by the provider's
// userinfo endpoint. Adapters map provider-specific claims into this shape.
type Identity struct {
	Subject string // stable provider user identifier (the token's "sub")
	Name    string
	Email   string
	Picture string // URL, may be empty
}

// Session is the server-side record persisted for a browser. A pending session
// carries only ID, State, and ExpiresAt; the remaining fields are populated
// when the provider callback completes.
type Session struct {
	ID          string    `json:"id"`
	State       string    `json:"state"`
	Provider    string    `json:"provider,omitempty"`
	AccessToken string    `json:"access_token,omitempty"`
	Subject     string    `json:"subject,omitempty"`
	UserID      int64     `json:"user_id,omitempty"`
	Username    string    `json:"username,omitempty"`
	Email       string    `json:"email,omitempty"`
	Picture     string    `json:"picture,omitempty"`
	ExpiresAt   time.Time `json:"expires_at"`
}

// Authenticated reports whether the session belongs to a signed-in user.
func (s Session) Authenticated() bool { return s.UserID != 0 }

// Connected reports whether the session still holds a provider access token.
func (s Session) Connected() bool { return s.AccessToken != "" }

// ResourceKind distinguishes the owned resource types the guard rules on.
type ResourceKind string

const (
	ResourceCategory ResourceKind = "category"
	ResourceItem     ResourceKind = "item"
)

// Resource is the authorization view of an owned catalog record.
type Resource struct {
	Kind    ResourceKind
	OwnerID int64
}

// DenyReason explains why the guard rejected a request.
type DenyReason string

const (
	DenyUnauthenticated DenyReason = "unauthenticated"
	DenyNotAdmin        DenyReason = "not_admin"
	DenyNotOwner        DenyReason = "not_owner"
)

// Decision is the guard's verdict for a (session, resource) pair.
type Decision struct {
	Allowed bool
	Reason  DenyReason
}

// Guard is the single authorization predicate applied to every mutating
// catalog operation. Category mutations are reserved for the configured
// administrator; item mutations require ownership.
type Guard struct {
	AdminEmail string
}

// Authorize decides whether the session may mutate the resource.
func (g Guard) Authorize(sess *Session, res Resource) Decision {
	if sess == nil || !sess.Authenticated() {
		return Decision{Reason: DenyUnauthenticated}
	}
	switch res.Kind {
	case ResourceCategory:
		if !g.IsAdmin(sess) {
			return Decision{Reason: DenyNotAdmin}
		}
	case ResourceItem:
		if sess.UserID != res.OwnerID {
			return Decision{Reason: DenyNotOwner}
		}
	default:
		return Decision{Reason: DenyNotOwner}
	}
	return Decision{Allowed: true}
}

// IsAdmin reports whether the session's email matches the configured
// administrator email (case-insensitive).
func (g Guard) IsAdmin(sess *Session) bool {
	if sess == nil || g.AdminEmail == "" {
		return false
	}
	return strings.EqualFold(sess.Email, g.AdminEmail)
}
