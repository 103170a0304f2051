package httpx

import (
	"errors"
	"fmt"
	"html"
	"io"
	"log/slog"
	"net/http"
	"strings"

	domainauth "github.com/sportsbazar/catalog-api/internal/domain/auth"
	"github.com/sportsbazar/catalog-api/internal/service"
)

// AuthHandlers serves the login flow endpoints.
type AuthHandlers struct {
	Svc     *service.AuthService
	Metrics LoginRecorder // optional
	Logger  *slog.Logger
}

func (h *AuthHandlers) recordLogin(outcome string) {
	if h.Metrics != nil {
		h.Metrics.RecordLogin(outcome)
	}
}

// Login handles GET /login: issues a pending session with an anti-forgery
// state token and serves the sign-in page.
func (h *AuthHandlers) Login(w http.ResponseWriter, r *http.Request) {
	if sess := GetSessionFromContext(r.Context()); sess != nil && sess.Authenticated() {
		RedirectWithFlash(w, r, "/", FlashAlreadySignedIn)
		return
	}

	pending, err := h.Svc.BeginLogin(r.Context())
	if err != nil {
		h.logger().Error("begin login", "error", err)
		RenderError(w, err)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    pending.SessionID,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	flash, _ := PopFlash(w, r)

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	var b strings.Builder
	b.WriteString("<!DOCTYPE html><html><head><title>Sign in</title></head><body>")
	if flash != "" {
		fmt.Fprintf(&b, "<p class=%q>%s</p>", "flash", html.EscapeString(flash))
	}
	fmt.Fprintf(&b, "<div id=%q data-state=%q></div>", "signin", html.EscapeString(pending.State))
	fmt.Fprintf(&b, "<a href=%q>Sign in with Google</a>", pending.AuthURL)
	b.WriteString("</body></html>")
	_, _ = io.WriteString(w, b.String())
}

// Connect handles POST /gconnect: validates the state token, exchanges the
// one-time code from the request body, and establishes the session.
func (h *AuthHandlers) Connect(w http.ResponseWriter, r *http.Request) {
	sessionCookie, err := r.Cookie(SessionCookieName)
	if err != nil {
		WriteJSON(w, http.StatusUnauthorized, msgInvalidState)
		return
	}

	code, err := io.ReadAll(io.LimitReader(r.Body, 1<<14))
	if err != nil {
		WriteJSON(w, http.StatusBadRequest, "Failed to read authorization code.")
		return
	}

	result, err := h.Svc.CompleteLogin(r.Context(), sessionCookie.Value, r.URL.Query().Get("state"), string(code))
	if err != nil {
		h.renderConnectError(w, err)
		return
	}

	if result.AlreadyConnected {
		h.recordLogin("already_connected")
		WriteJSON(w, http.StatusOK, msgAlreadyConnected)
		return
	}
	h.recordLogin("success")

	sess := result.Session
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	var b strings.Builder
	fmt.Fprintf(&b, "<h1>Welcome, %s!</h1>", html.EscapeString(sess.Username))
	if sess.Picture != "" {
		fmt.Fprintf(&b, "<img src=%q style=%q>", sess.Picture, "width: 300px; height: 300px; border-radius: 150px;")
	}
	_, _ = io.WriteString(w, b.String())
}

func (h *AuthHandlers) renderConnectError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domainauth.ErrStateMismatch):
		h.recordLogin("state_mismatch")
		WriteJSON(w, http.StatusUnauthorized, msgInvalidState)
	case errors.Is(err, domainauth.ErrExchangeFailed):
		h.recordLogin("exchange_failed")
		WriteJSON(w, http.StatusUnauthorized, msgExchangeFailed)
	case errors.Is(err, domainauth.ErrTokenUserMismatch):
		h.recordLogin("token_user_mismatch")
		WriteJSON(w, http.StatusUnauthorized, msgTokenUserMismatch)
	case errors.Is(err, domainauth.ErrClientMismatch):
		h.recordLogin("client_mismatch")
		WriteJSON(w, http.StatusUnauthorized, msgClientMismatch)
	case errors.Is(err, domainauth.ErrProviderError):
		h.recordLogin("provider_error")
		WriteJSON(w, http.StatusInternalServerError, err.Error())
	default:
		h.recordLogin("error")
		h.logger().Error("complete login", "error", err)
		RenderError(w, err)
	}
}

// Disconnect handles /gdisconnect: revokes the provider token while
// keeping the local session alive.
func (h *AuthHandlers) Disconnect(w http.ResponseWriter, r *http.Request) {
	sessionCookie, err := r.Cookie(SessionCookieName)
	if err != nil {
		WriteJSON(w, http.StatusUnauthorized, msgNotConnected)
		return
	}

	switch err := h.Svc.Disconnect(r.Context(), sessionCookie.Value); {
	case err == nil:
		WriteJSON(w, http.StatusOK, msgDisconnected)
	case errors.Is(err, domainauth.ErrNotConnected):
		WriteJSON(w, http.StatusUnauthorized, msgNotConnected)
	case errors.Is(err, domainauth.ErrRevokeFailed):
		h.logger().Warn("token revoke failed", "error", err)
		WriteJSON(w, http.StatusBadRequest, msgRevokeFailed)
	default:
		h.logger().Error("disconnect", "error", err)
		RenderError(w, err)
	}
}

// Logout handles /logout: best-effort provider revoke, session teardown,
// and a redirect home.
func (h *AuthHandlers) Logout(w http.ResponseWriter, r *http.Request) {
	sess := GetSessionFromContext(r.Context())
	if sess == nil || !sess.Authenticated() {
		RedirectWithFlash(w, r, "/", FlashLoginFirst)
		return
	}

	if err := h.Svc.Logout(r.Context(), sess.ID); err != nil {
		h.logger().Error("logout", "error", err)
		RenderError(w, err)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
	RedirectWithFlash(w, r, "/", FlashLoggedOut)
}

func (h *AuthHandlers) logger() *slog.Logger {
	if h.Logger != nil {
		return h.Logger
	}
	return slog.Default()
}
