// Package session resolves connection credentials against the session
// records written by the site's auth surface. This subsystem only ever
// reads them.
package session

import (
	"context"
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
	"github.com/redis/go-redis/v9"
)

// ErrNoSession is returned when a credential does not resolve to an
// authenticated identity.
var ErrNoSession = errors.New("no authenticated session")

// Store maps an opaque credential to the identity that authenticated it.
type Store interface {
	Lookup(ctx context.Context, credential string) (string, error)
}

// sessionClaims is the payload of a session token: just the session ID,
// signed so a client cannot forge a pointer into someone else's session.
type sessionClaims struct {
	SessionID string `json:"sid"`
	jwt.RegisteredClaims
}

const keyPrefix = "session:"

// RedisStore reads the session records kept by the auth surface under
// session:<sid> -> username.
type RedisStore struct {
	client *redis.Client
	secret []byte
}

func NewRedisStore(client *redis.Client, secret string) *RedisStore {
	return &RedisStore{client: client, secret: []byte(secret)}
}

func (s *RedisStore) Lookup(ctx context.Context, credential string) (string, error) {
	sid, err := s.verify(credential)
	if err != nil {
		return "", err
	}

	identity, err := s.client.Get(ctx, keyPrefix+sid).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrNoSession
	}
	if err != nil {
		return "", fmt.Errorf("session lookup: %w", err)
	}
	if identity == "" {
		return "", ErrNoSession
	}
	return identity, nil
}

// verify checks the credential signature and recovers the session ID. Any
// malformed, expired or foreign-signed token reads as "no session".
func (s *RedisStore) verify(credential string) (string, error) {
	if credential == "" {
		return "", ErrNoSession
	}

	claims := &sessionClaims{}
	token, err := jwt.ParseWithClaims(credential, claims, func(t *jwt.Token) (interface{}, error) {
		return s.secret, nil
	})
	if err != nil || !token.Valid || claims.SessionID == "" {
		return "", ErrNoSession
	}
	return claims.SessionID, nil
}
