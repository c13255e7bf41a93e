package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"event-chat/internal/session"
)

type staticSessions map[string]string

func (s staticSessions) Lookup(_ context.Context, credential string) (string, error) {
	identity, ok := s[credential]
	if !ok {
		return "", session.ErrNoSession
	}
	return identity, nil
}

func TestSessionAuthRejectsMissingCredential(t *testing.T) {
	auth := NewSessionAuth(staticSessions{})
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not run")
	})

	rec := httptest.NewRecorder()
	auth.Handle(next).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/history", nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestSessionAuthInjectsIdentity(t *testing.T) {
	auth := NewSessionAuth(staticSessions{"tok": "alice"})

	var got string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, _ = r.Context().Value(IdentityKey).(string)
	})

	rec := httptest.NewRecorder()
	auth.Handle(next).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/history?token=tok", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "alice", got)
}
