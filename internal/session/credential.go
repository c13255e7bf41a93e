package session

import (
	"net/http"
	"strings"
)

// CookieName is the session cookie the auth surface sets at login.
const CookieName = "session_token"

// Credential extracts the session credential from a request. Order matters:
// explicit Authorization header first, then query parameter (browser
// websocket clients cannot set headers), then the cookie the browser sends
// on its own.
func Credential(r *http.Request) string {
	if authHeader := r.Header.Get("Authorization"); authHeader != "" {
		parts := strings.Split(authHeader, " ")
		if len(parts) == 2 {
			return parts[1]
		}
	}

	if token := r.URL.Query().Get("token"); token != "" {
		return token
	}

	if c, err := r.Cookie(CookieName); err == nil {
		return c.Value
	}

	return ""
}
