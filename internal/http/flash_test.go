package httpx

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlash_RoundTrip(t *testing.T) {
	// Set the flash on one response, then present its cookie on the next
	// request the way a browser would.
	w1 := httptest.NewRecorder()
	SetFlash(w1, `New category "Soccer" is successfully added.`)

	cookies := w1.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, FlashCookieName, cookies[0].Name)

	r2 := httptest.NewRequest(http.MethodGet, "/catalog/categories", nil)
	r2.AddCookie(cookies[0])
	w2 := httptest.NewRecorder()

	msg, ok := PopFlash(w2, r2)
	require.True(t, ok)
	assert.Equal(t, `New category "Soccer" is successfully added.`, msg)

	// Popping clears the cookie.
	cleared := w2.Result().Cookies()
	require.Len(t, cleared, 1)
	assert.Equal(t, FlashCookieName, cleared[0].Name)
	assert.Equal(t, "", cleared[0].Value)
	assert.Negative(t, cleared[0].MaxAge)
}

func TestPopFlash_NoCookie(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()

	msg, ok := PopFlash(w, r)
	assert.False(t, ok)
	assert.Empty(t, msg)
	assert.Empty(t, w.Result().Cookies())
}

func TestRedirectWithFlash(t *testing.T) {
	r := httptest.NewRequest(http.MethodPost, "/catalog/new", nil)
	w := httptest.NewRecorder()

	RedirectWithFlash(w, r, "/catalog/categories", "Cannot add a category without a name.")

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/catalog/categories", w.Header().Get("Location"))

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, FlashCookieName, cookies[0].Name)
	assert.NotEmpty(t, cookies[0].Value)
}
