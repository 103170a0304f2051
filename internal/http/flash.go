package httpx

import (
	"net/http"
	"net/url"
)

// SetFlash stores a one-shot notice in the flash cookie. The next page load
// that calls PopFlash consumes it.
func SetFlash(w http.ResponseWriter, message string) {
	http.SetCookie(w, &http.Cookie{
		Name:     FlashCookieName,
		Value:    url.QueryEscape(message),
		Path:     "/",
		HttpOnly: true,
	})
}

// PopFlash returns the pending flash message, if any, and clears the cookie.
func PopFlash(w http.ResponseWriter, r *http.Request) (string, bool) {
	c, err := r.Cookie(FlashCookieName)
	if err != nil || c.Value == "" {
		return "", false
	}

	http.SetCookie(w, &http.Cookie{
		Name:     FlashCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})

	msg, err := url.QueryUnescape(c.Value)
	if err != nil {
		return "", false
	}
	return msg, true
}

// RedirectWithFlash sets the flash message and redirects in one step.
func RedirectWithFlash(w http.ResponseWriter, r *http.Request, target, message string) {
	SetFlash(w, message)
	http.Redirect(w, r, target, http.StatusSeeOther)
}
