package handler

import (
	"net/http"
	"time"

	"weather-dashboard/internal/middleware"
)

// CookieHelper writes the browser session cookie.
type CookieHelper struct {
	secure   bool
	sameSite http.SameSite
}

func NewCookieHelper(secure bool, sameSite http.SameSite) *CookieHelper {
	return &CookieHelper{secure: secure, sameSite: sameSite}
}

// SetSession stores "Bearer <token>" so the cookie reads like an
// Authorization header value.
func (h *CookieHelper) SetSession(w http.ResponseWriter, token string, ttl time.Duration) {
	h.set(w, "Bearer "+token, int(ttl.Seconds()))
}

func (h *CookieHelper) ClearSession(w http.ResponseWriter) {
	h.set(w, "", -1)
}

func (h *CookieHelper) set(w http.ResponseWriter, value string, maxAge int) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.AccessTokenCookie,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   h.secure,
		SameSite: h.sameSite,
	})
}
