package middleware

import (
	"context"
	"net/http"

	"event-chat/internal/session"
)

type contextKey string

// IdentityKey holds the authenticated username in the request context.
const IdentityKey contextKey = "identity"

// SessionAuth gates plain HTTP endpoints on the same session store the
// websocket admission uses.
type SessionAuth struct {
	sessions session.Store
}

func NewSessionAuth(s session.Store) *SessionAuth {
	return &SessionAuth{sessions: s}
}

func (sa *SessionAuth) Handle(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		identity, err := sa.sessions.Lookup(r.Context(), session.Credential(r))
		if err != nil {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}

		ctx := context.WithValue(r.Context(), IdentityKey, identity)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
